package common

// Outgoing gRPC metadata keys understood by the remote store.
const (
	APIKeyHeaderName        = "apikey"
	AuthorizationHeaderName = "authorization"
)

// MinPasswordLength is the shortest password accepted on sign-up and
// password reset.
const MinPasswordLength = 6
