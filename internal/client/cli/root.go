package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
)

func (a *App) getStatus() string {
	if a.session.Active() {
		return fmt.Sprintf("(%s)", a.session.User.Username)
	}
	return ""
}

// Root runs the interactive command loop until EOF or "exit".
func (a *App) Root(ctx context.Context) {

	fmt.Fprintln(a.out, "Welcome to FileVault CLI (type 'help' for commands)")
	scanner := bufio.NewScanner(os.Stdin)

	for {
		fmt.Fprintf(a.out, "fvault %s> ", a.getStatus())
		if !scanner.Scan() {
			break
		}
		line := scanner.Text()
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}

		cmd := parts[0]
		args := parts[1:]

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				fmt.Fprintln(a.out, "Available commands: list, upload <path>, download <id>, delete <id>, health, logout, exit")
			} else {
				fmt.Fprintln(a.out, "Available commands: register, login, health, exit")
			}

		case "register":
			a.Register(ctx)

		case "login":
			a.Login(ctx)

		case "logout":
			a.Logout(ctx)

		case "list":
			a.List(ctx)

		case "upload":
			if len(args) == 0 {
				fmt.Fprintln(a.out, "Usage: upload <path>")
				continue
			}
			a.Upload(ctx, args[0])

		case "download":
			if len(args) == 0 {
				fmt.Fprintln(a.out, "Usage: download <id>")
				continue
			}
			a.Download(ctx, args[0])

		case "delete":
			if len(args) == 0 {
				fmt.Fprintln(a.out, "Usage: delete <id>")
				continue
			}
			a.Delete(ctx, args[0])

		case "health":
			a.Health(ctx)

		case "exit", "quit":
			fmt.Fprintln(a.out, "Bye!")
			return

		default:
			fmt.Fprintf(a.out, "Unknown command: %s\n", cmd)
		}

		select {
		case <-ctx.Done():
			return
		default:
		}
	}
}
