// Package api defines the daylog.v1.DaylogService gRPC contract shared by
// the client and the server: request and response messages, the service
// descriptor, a client stub and the server registration helper.
//
// Messages are plain Go structs carried by a JSON codec registered under the
// "json" content subtype, so the service needs no generated code. Calendar
// dates travel as YYYY-MM-DD strings and timestamps as RFC 3339.
package api
