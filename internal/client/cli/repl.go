package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/meherkandukuri/vegtrack/internal/client/notices"
)

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	activeNotices() []notices.Notice
	Signup(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	Add(ctx context.Context) error
	List(ctx context.Context) error
	Edit(ctx context.Context, arg string) error
	Delete(ctx context.Context, arg string) error
	Refresh(ctx context.Context) error
	Sync(ctx context.Context) error
	Suggest(ctx context.Context, query string) error
	Export(ctx context.Context, arg string) error
	Compare(ctx context.Context, args []string) error
}

// runREPL starts a simple read-eval-print loop for the vegtrack CLI.
//
// It reads a line from the provided scanner, parses the first token as the
// command, and dispatches to methods on 'a'. Unknown commands are reported
// back to the user. The loop exits on scanner EOF or when the user types
// "exit" or "quit".
//
// Pending notices (saves, sync results, failures) are flushed above the
// prompt, so background reconciliation outcomes surface on the next
// interaction.
//
// Any errors returned by command handlers are printed here and otherwise
// ignored. This keeps the REPL loop resilient and focused on I/O.
func runREPL(ctx context.Context, a execIface, scanner *bufio.Scanner, w io.Writer) {
	for {
		for _, n := range a.activeNotices() {
			prefix := "ok"
			if n.Level == notices.Failure {
				prefix = "!!"
			}
			fmt.Fprintf(w, "[%s] %s\n", prefix, n.Message)
		}

		status := "offline"
		if a.isLoggedIn() {
			status = "online"
		}
		fmt.Fprintf(w, "vegtrack %s > ", status)

		if !scanner.Scan() {
			return
		}
		parts := strings.Fields(scanner.Text())
		if len(parts) == 0 {
			continue
		}
		cmd := parts[0]
		args := parts[1:]

		var err error
		switch cmd {
		case "help":
			if a.isLoggedIn() {
				fmt.Fprintln(w, "Available commands: add, (l)ist, edit <n>, delete <n>, suggest <text>, refresh, sync, compare <names>, export <name>, logout, exit")
			} else {
				fmt.Fprintln(w, "Available commands: add, (l)ist, edit <n>, delete <n>, signup, login, exit")
			}

		case "signup":
			err = a.Signup(ctx)

		case "login":
			err = a.Login(ctx)

		case "logout":
			err = a.Logout(ctx)

		case "add", "a":
			err = a.Add(ctx)

		case "l", "list":
			err = a.List(ctx)

		case "edit":
			if len(args) == 0 {
				fmt.Fprintln(w, "Usage: edit <n>")
				continue
			}
			err = a.Edit(ctx, args[0])

		case "delete", "del":
			if len(args) == 0 {
				fmt.Fprintln(w, "Usage: delete <n>")
				continue
			}
			err = a.Delete(ctx, args[0])

		case "suggest":
			if len(args) == 0 {
				fmt.Fprintln(w, "Usage: suggest <text>")
				continue
			}
			err = a.Suggest(ctx, strings.Join(args, " "))

		case "refresh":
			err = a.Refresh(ctx)

		case "sync":
			err = a.Sync(ctx)

		case "export":
			if len(args) == 0 {
				fmt.Fprintln(w, "Usage: export <name>")
				continue
			}
			err = a.Export(ctx, strings.Join(args, " "))

		case "compare":
			if len(args) < 2 {
				fmt.Fprintln(w, "Usage: compare <name> <name> [...]")
				continue
			}
			err = a.Compare(ctx, args)

		case "exit", "quit":
			fmt.Fprintln(w, "Bye!")
			return

		default:
			fmt.Fprintln(w, "Unknown command:", cmd)
		}

		if err != nil {
			fmt.Fprintf(w, "error: %v\n", err)
		}
	}
}
