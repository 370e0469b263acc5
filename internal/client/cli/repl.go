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
	Add(ctx context.Context) error
	List(ctx context.Context) error
	Pending(ctx context.Context) error
	Sync(ctx context.Context) error
	Status(ctx context.Context) error
	Exercises(ctx context.Context) error
	Access(ctx context.Context) error
	Token(ctx context.Context) error
}

const helpText = `Available commands:
  add        record a workout
  (l)ist     show every stored workout with its sync state
  pending    show workouts waiting to be synced
  sync       sync pending workouts now
  status     connectivity, pending count and last sync
  exercises  refresh and show the exercise catalog
  access     check whether this identity is approved
  token      set the bearer token (input is hidden)
  exit       leave the program`

// runREPL reads commands from scanner and dispatches them to a until EOF,
// "exit"/"quit", or ctx cancellation. Command errors are printed and the loop
// goes on.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	for {
		if ctx.Err() != nil {
			return
		}

		printlnFn(fmt.Sprintf("wt (%s) > ", statusFn()))
		if !scanner.Scan() {
			return
		}
		parts := strings.Fields(scanner.Text())
		if len(parts) == 0 {
			continue
		}
		cmd := parts[0]

		var err error
		switch cmd {
		case "help":
			printlnFn(helpText)
		case "add":
			err = a.Add(ctx)
		case "l", "list":
			err = a.List(ctx)
		case "pending":
			err = a.Pending(ctx)
		case "sync":
			err = a.Sync(ctx)
		case "status":
			err = a.Status(ctx)
		case "exercises":
			err = a.Exercises(ctx)
		case "access":
			err = a.Access(ctx)
		case "token":
			err = a.Token(ctx)
		case "exit", "quit":
			printlnFn("Bye!")
			return
		default:
			printlnFn("Unknown command:", cmd)
		}

		if err != nil {
			printlnFn("error:", err)
		}
	}
}
