package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	SignUp(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	Whoami(ctx context.Context) error
	Mkdir(ctx context.Context) error
	Put(ctx context.Context) error
	List(ctx context.Context, args []string) error
	Stat(ctx context.Context, args []string) error
	Get(ctx context.Context, args []string) error
	Status(ctx context.Context) error
}

// runREPL starts a simple read-eval-print loop for the filekeeper CLI.
//
// It reads a line from the provided reader, parses the first token as the
// command, and dispatches to methods on 'a'. Unknown commands are reported
// back to the user. The loop exits on reader EOF or when the user types
// "exit" or "quit". Command handlers that prompt for further input must read
// from the same reader, otherwise two buffers would compete for stdin and
// swallow each other's lines.
//
// Prompt & Commands
//
// The prompt shows the current status (from statusFn) and accepts commands:
//
//	Not logged in:
//	  - help           — show available commands
//	  - signup         — create an account
//	  - login          — authenticate
//	  - status         — probe server readiness
//	  - exit | quit    — leave the program
//
//	Logged in:
//	  - help           — show available commands
//	  - mkdir          — create a folder
//	  - put            — upload a local file
//	  - ls [parent] [page]  — list catalog entries
//	  - stat <id>      — show a single entry
//	  - get <id>       — download file content
//	  - whoami         — show the signed-in account
//	  - status         — probe server readiness
//	  - logout         — log out
//	  - exit | quit    — leave the program
//
// Any errors returned by command handlers are ignored here; handlers should
// log their own errors. This keeps the REPL loop resilient and focused on I/O.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		printlnFn(fmt.Sprintf("fk> %s > ", statusFn()))
		line, err := reader.ReadString('\n')
		parts := strings.Fields(line)
		if len(parts) == 0 {
			if err != nil {
				return
			}
			continue
		}
		cmd := parts[0]
		args := parts[1:]

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn("Available commands: mkdir, put, ls, stat, get, whoami, status, logout, exit")
			} else {
				printlnFn("Available commands: signup, login, status, exit")
			}

		case "signup":
			_ = a.SignUp(ctx)

		case "login":
			_ = a.Login(ctx)

		case "logout":
			_ = a.Logout(ctx)

		case "whoami":
			_ = a.Whoami(ctx)

		case "mkdir":
			_ = a.Mkdir(ctx)

		case "put":
			_ = a.Put(ctx)

		case "l", "ls", "list":
			_ = a.List(ctx, args)

		case "stat":
			_ = a.Stat(ctx, args)

		case "get":
			_ = a.Get(ctx, args)

		case "status":
			_ = a.Status(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}

		if err != nil {
			return
		}
	}
}
