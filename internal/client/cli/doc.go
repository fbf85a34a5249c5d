// Package cli provides the interactive daylog command-line client.
//
// It wires configuration, local storage, the gRPC client and the record,
// sync, auth and transfer services, then runs a REPL that keeps working
// while the server is unreachable. Typical flow: prompt for credentials,
// start the connectivity watcher, and execute user commands. When the
// watcher sees the server come back, queued changes are replayed and the
// summary is printed.
//
// Commands:
//   - register, login, logout (online with offline fallback)
//   - add, edit <id>, delete <id>
//   - list, day [YYYY-MM-DD], month [YYYY-MM]
//   - pending, sync, status
//   - import <file>, export [s3] <file>
//
// Record ids may be abbreviated to any unique prefix.
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
package cli
