// Package db wires the repositories to a shared database handle with an
// explicit lifecycle: construct, Open, verify with Ping, Close.
package db

import (
	"context"

	"github.com/dmitrijs2005/filekeeper/internal/server/files"
	"github.com/dmitrijs2005/filekeeper/internal/server/users"
)

type Manager interface {
	// Open connects and runs migrations. The manager is not usable before
	// Open returns nil.
	Open(ctx context.Context) error
	Close() error
	Ping(ctx context.Context) error

	Users() users.Repository
	Files() files.Repository
}
