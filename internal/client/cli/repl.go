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
	Signup(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	Show(ctx context.Context) error
	Set(ctx context.Context, args []string) error
	Sex(ctx context.Context, args []string) error
	Activity(ctx context.Context, args []string) error
	Goal(ctx context.Context, args []string) error
	Delivery(ctx context.Context, args []string) error
	Appearance(ctx context.Context, args []string) error
	Prefs(ctx context.Context, args []string) error
	Refresh(ctx context.Context) error
	Flush(ctx context.Context) error
}

// runREPL reads commands from scanner and dispatches them to a until EOF or
// "exit". Handler errors are printed and the loop carries on.
//
//	help                          show available commands
//	signup | login | logout       session management
//	show                          profile, targets and sync status
//	set <field> <value>           age, height, weight or goal weight
//	sex male|female
//	activity|goal [index]         list options or pick one
//	delivery|appearance [index]
//	prefs [kind [item|-]]         show, toggle an item, or clear a set
//	refresh                       reload the profile from the server
//	flush                         save now instead of waiting
//	exit | quit
//
// The loop also returns once ctx is done, even while waiting for input.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	// Lines are read only on request so that prompts issued by a command
	// (login, signup) can read the same input in between.
	next := make(chan struct{})
	lines := make(chan string, 1)
	defer close(next)
	go func() {
		defer close(lines)
		for range next {
			if !scanner.Scan() {
				return
			}
			lines <- scanner.Text()
		}
	}()

	for {
		printlnFn(fmt.Sprintf("fuel %s> ", statusFn()))
		next <- struct{}{}

		var line string
		select {
		case <-ctx.Done():
			return
		case l, ok := <-lines:
			if !ok {
				return
			}
			line = l
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
				printlnFn("Available commands: show, set, sex, activity, goal, delivery, appearance, prefs, refresh, flush, logout, exit")
			} else {
				printlnFn("Available commands: show, set, sex, activity, goal, delivery, appearance, prefs, signup, login, exit")
			}

		case "signup", "register":
			err = a.Signup(ctx)
		case "login":
			err = a.Login(ctx)
		case "logout":
			err = a.Logout(ctx)
		case "show", "s":
			err = a.Show(ctx)
		case "set":
			err = a.Set(ctx, args)
		case "sex":
			err = a.Sex(ctx, args)
		case "activity":
			err = a.Activity(ctx, args)
		case "goal":
			err = a.Goal(ctx, args)
		case "delivery":
			err = a.Delivery(ctx, args)
		case "appearance":
			err = a.Appearance(ctx, args)
		case "prefs":
			err = a.Prefs(ctx, args)
		case "refresh":
			err = a.Refresh(ctx)
		case "flush", "save":
			err = a.Flush(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}

		if err != nil {
			printlnFn("Error:", err)
		}
	}
}
