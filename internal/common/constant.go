// Package common contains constants, sentinel errors and small helpers shared
// by the client and the server.
package common

// AccessTokenHeaderName is the gRPC metadata key carrying the access token.
const AccessTokenHeaderName = "access_token"

// RequestIDHeaderName is the metadata/HTTP header used to correlate log lines.
const RequestIDHeaderName = "x-request-id"

// MaxHeightTextLen caps the free-form height text, in runes.
const MaxHeightTextLen = 20
