package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/dmitrijs2005/memorylane/internal/client/session"
)

// execIface is the command surface the REPL dispatches to.
type execIface interface {
	screen() session.Screen
	Register(ctx context.Context) error
	Login(ctx context.Context) error
	List(ctx context.Context) error
	Add(ctx context.Context) error
	Show(ctx context.Context, args []string) error
	Delete(ctx context.Context, args []string) error
	Logout(ctx context.Context) error
	Whoami(ctx context.Context) error
}

const (
	authHelp = "Available commands: register, login, exit"
	mainHelp = "Available commands: (l)ist, add, show <id>, delete <id>, whoami, logout, exit"
)

// runREPL reads commands until EOF, exit or quit. Commands outside the
// current screen are refused before anything else happens. Handlers print
// their own notices, so their errors are dropped here.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader, w io.Writer) {
	for {
		fmt.Fprintf(w, "ml (%s)> ", statusFn())

		line, err := reader.ReadString('\n')
		if err != nil && line == "" {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			if err != nil {
				return
			}
			continue
		}
		cmd, args := parts[0], parts[1:]

		if a.screen() == session.ScreenAuth {
			switch cmd {
			case "help":
				fmt.Fprintln(w, authHelp)
			case "register":
				_ = a.Register(ctx)
			case "login":
				_ = a.Login(ctx)
			case "exit", "quit":
				fmt.Fprintln(w, "Bye!")
				return
			case "l", "list", "add", "show", "delete", "whoami", "logout":
				fmt.Fprintln(w, "Please sign in first.")
			default:
				fmt.Fprintln(w, "Unknown command:", cmd)
			}
			continue
		}

		switch cmd {
		case "help":
			fmt.Fprintln(w, mainHelp)
		case "l", "list":
			_ = a.List(ctx)
		case "add":
			_ = a.Add(ctx)
		case "show":
			_ = a.Show(ctx, args)
		case "delete":
			_ = a.Delete(ctx, args)
		case "whoami":
			_ = a.Whoami(ctx)
		case "logout":
			_ = a.Logout(ctx)
		case "register", "login":
			fmt.Fprintln(w, "Already signed in. Use 'logout' first.")
		case "exit", "quit":
			fmt.Fprintln(w, "Bye!")
			return
		default:
			fmt.Fprintln(w, "Unknown command:", cmd)
		}
	}
}
