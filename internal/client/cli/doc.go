// Package cli provides the interactive fuel terminal client.
//
// It wires configuration, the local session store, the API client and the
// profile sync coordinator into a read-eval-print loop. Every edit is
// applied locally at once, the targets shown by "show" are recomputed on
// the spot, and the profile is saved in the background after a quiet
// period.
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
// See App, StartOnlineStatusWatcher and runREPL for details.
package cli
