// Package client talks to the fuel backend.
//
// # Overview
//
// The package provides:
//  1. A transport-agnostic API contract (see the Client interface):
//     Signup/Login/Logout, Ping, GetProfile and UpdateProfile.
//  2. A gRPC implementation (see GRPCClient) that injects the access token
//     via an interceptor, transparently refreshes expired tokens, and maps
//     gRPC status codes to sentinel errors.
//  3. Local persistence bootstrap (InitDatabase, RunMigrations) wiring an
//     SQLite database and applying embedded goose migrations.
//
// # Error Handling
//
// Common conditions are exposed as sentinel errors matched with errors.Is:
// ErrUnavailable, ErrUnauthorized, ErrConflict, ErrInvalid.
//
// GRPCClient is safe for concurrent use; all operations honour ctx.
package client
