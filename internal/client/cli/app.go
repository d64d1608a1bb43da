// Package cli implements the interactive filekeeper command-line client.
package cli

import (
	"bufio"
	"context"
	"log"
	"os"

	"github.com/dmitrijs2005/filekeeper/internal/client/client"
	"github.com/dmitrijs2005/filekeeper/internal/client/config"
)

type App struct {
	config    *config.Config
	api       *client.Client
	userEmail string
	reader    *bufio.Reader
}

func NewApp(c *config.Config) (*App, error) {
	api := client.NewClient(c.ServerEndpointAddr, c.RequestTimeout)
	return &App{config: c, api: api, reader: bufio.NewReader(os.Stdin)}, nil
}

func (a *App) isLoggedIn() bool {
	return a.api.Token() != ""
}

func (a *App) getStatus() string {
	if a.userEmail == "" {
		return ""
	}
	return "(" + a.userEmail + ")"
}

func (a *App) Run(ctx context.Context) {
	log.Println("Welcome to filekeeper CLI (type 'help' for commands)")

	// the REPL and the command prompts share a.reader, so a line typed for
	// a prompt is never consumed by the command loop
	runREPL(ctx, a, a.getStatus, a.reader)
}
