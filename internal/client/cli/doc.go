// Package cli provides the interactive workout tracker client.
//
// It wires configuration, the local store, the backend client and the sync
// orchestrator, then runs a REPL. Workouts can be recorded online or offline;
// pending ones are synced on reconnect, on the `sync` command, or when the
// process receives SIGUSR1.
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
// See NewApp and runREPL for details.
package cli
