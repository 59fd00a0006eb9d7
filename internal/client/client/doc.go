// Package client contains the client-side transport and local storage
// bootstrap for fittrack.
//
// # Overview
//
// The package provides:
//  1. A transport-agnostic contract with the hosted backend (see the
//     RemoteStore interface): password sign-in and sign-up, sign-out, user
//     lookup, password recovery, row access on the profiles, workouts and
//     progress tables, and the has_role procedure.
//  2. A concrete gRPC implementation (see GRPCClient). Requests and replies
//     are google.protobuf.Struct values; an interceptor attaches the project
//     API key and records call metrics, and user calls carry a bearer token.
//  3. Local persistence bootstrap (InitDatabase, RunMigrations) wiring an
//     SQLite database and applying embedded goose migrations.
//
// # Error Handling
//
// gRPC statuses are mapped to *RemoteError, whose message is the remote
// text unchanged. Match with errors.Is against ErrUnauthorized,
// ErrUnavailable or common.ErrRemoteService. Rejected sign-in credentials
// match common.ErrInvalidCredentials.
//
// Concurrency & Contexts
//
// GRPCClient is safe for concurrent use. Every call honors the context and
// is additionally bounded by Options.Timeout.
package client
