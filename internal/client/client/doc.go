// Package client talks to the daylog server.
//
// RecordsClient is the remote record store seen by the mutation and sync
// services; Client adds the session calls the CLI needs. GRPCClient
// implements both over daylog.v1.DaylogService: it injects the access token
// with a unary interceptor, transparently refreshes an expired token once
// and maps gRPC status codes to the sentinel errors in errors.go so callers
// can match them with errors.Is.
package client
