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
	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	Add(ctx context.Context) error
	Edit(ctx context.Context, args []string) error
	Delete(ctx context.Context, args []string) error
	List(ctx context.Context) error
	Day(ctx context.Context, args []string) error
	Month(ctx context.Context, args []string) error
	Pending(ctx context.Context) error
	Sync(ctx context.Context) error
	Import(ctx context.Context, args []string) error
	Export(ctx context.Context, args []string) error
	Status(ctx context.Context) error
}

const (
	helpLoggedOut = "Available commands: register, login, status, exit"
	helpLoggedIn  = "Available commands: add, edit <id>, delete <id>, (l)ist, day [YYYY-MM-DD], month [YYYY-MM], " +
		"pending, sync, import <file>, export [s3] <file>, status, logout, exit"
)

// runREPL starts a simple read–eval–print loop for the daylog CLI.
//
// It reads a line from reader, parses the first token as the
// command, and dispatches to methods on 'a' with the remaining tokens as
// arguments. Command prompts read from the same reader, so no input is lost
// between them. Record commands require a login (online or offline). The
// loop exits on EOF or when the user types "exit" or "quit".
//
// Errors returned by command handlers are printed and the loop goes on.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		printlnFn(fmt.Sprintf("daylog %s> ", statusFn()))
		line, rerr := reader.ReadString('\n')
		if rerr != nil && line == "" {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		var err error
		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn(helpLoggedIn)
			} else {
				printlnFn(helpLoggedOut)
			}
			continue

		case "exit", "quit":
			printlnFn("Bye!")
			return

		case "register":
			err = a.Register(ctx)
		case "login":
			err = a.Login(ctx)
		case "status":
			err = a.Status(ctx)

		case "logout", "add", "edit", "delete", "l", "list", "day", "month", "pending", "sync", "import", "export":
			if !a.isLoggedIn() {
				printlnFn("Please login first")
				continue
			}
			err = dispatch(ctx, a, cmd, args)

		default:
			printlnFn("Unknown command:", cmd)
		}

		if err != nil {
			printlnFn("error:", err)
		}
	}
}

func dispatch(ctx context.Context, a execIface, cmd string, args []string) error {
	switch cmd {
	case "logout":
		return a.Logout(ctx)
	case "add":
		return a.Add(ctx)
	case "edit":
		return a.Edit(ctx, args)
	case "delete":
		return a.Delete(ctx, args)
	case "l", "list":
		return a.List(ctx)
	case "day":
		return a.Day(ctx, args)
	case "month":
		return a.Month(ctx, args)
	case "pending":
		return a.Pending(ctx)
	case "sync":
		return a.Sync(ctx)
	case "import":
		return a.Import(ctx, args)
	case "export":
		return a.Export(ctx, args)
	}
	return nil
}

func (a *App) getStatus() string {
	s := ""
	if a.userName != "" {
		s = a.userName + " "
	}
	s += string(a.mode())
	return fmt.Sprintf("(%s)", s)
}

// Root greets the user, asks for a login and runs the REPL on stdin.
func (a *App) Root(ctx context.Context) {
	a.printf("Welcome to daylog (type 'help' for commands)\n")

	if err := a.Login(ctx); err != nil {
		a.printf("%v\n", err)
	}

	runREPL(ctx, a, a.getStatus, a.reader)
}
