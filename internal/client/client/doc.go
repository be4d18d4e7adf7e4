// Package client talks to the Memory Lane gateway.
//
// The Client interface is the transport-agnostic contract used by the client
// services; GRPCClient implements it over gRPC. GRPCClient injects the access
// token on every call and, when the gateway answers "token expired", refreshes
// the token pair once and retries the call. Status codes are mapped back to the
// sentinel errors in errors.go; the server's message is kept as the error text
// so it can be shown to the user verbatim.
//
// InitDatabase and RunMigrations bootstrap the local SQLite database that
// holds the persisted session.
package client
