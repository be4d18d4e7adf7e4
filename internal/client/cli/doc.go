// Package cli provides the interactive Memory Lane command-line client.
//
// It wires configuration, the local session store, the gateway client and the
// client services, then runs a REPL whose available commands follow the
// session gate: register and login on the authentication screen; list, add,
// show, delete and logout on the main screen. The memory list is refreshed
// every time the main screen is entered and after every change.
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
package cli
