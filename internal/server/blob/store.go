// Package blob persists raw file content under generated opaque names,
// separately from the catalog metadata that references it.
package blob

import "context"

type Store interface {
	// Open prepares the backend (creates the root directory, connects the
	// client). Must be called before the first Save.
	Open(ctx context.Context) error
	Close() error
	Ping(ctx context.Context) error

	// Save writes data under a freshly generated unique name and returns
	// that name. On failure no partial content stays addressable.
	Save(ctx context.Context, data []byte) (string, error)

	// Load returns the content stored under name, or common.ErrorNotFound.
	Load(ctx context.Context, name string) ([]byte, error)
}
