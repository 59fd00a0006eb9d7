// Package common defines shared constants and sentinel errors used across
// the fittrack client layers. Callers should use errors.Is to match these
// values; concrete error types elsewhere wrap or match them.
package common

import "errors"

var (
	// Authentication errors.
	ErrInvalidCredentials = errors.New("invalid login credentials")
	ErrNotAuthenticated   = errors.New("not authenticated")
	ErrNoRecoveryContext  = errors.New("no password recovery context")

	// Authorization errors. A failed capability check is never surfaced as
	// anything harder than "not an administrator".
	ErrCapabilityCheckFailed = errors.New("capability check failed")
	ErrNotAuthorized         = errors.New("not authorized")

	// Local validation, raised before anything is sent to the remote store.
	ErrValidation = errors.New("validation error")

	// Flow control.
	ErrOperationInProgress = errors.New("operation in progress")

	// Transport or service failure. The remote message is preserved by the
	// concrete error type that matches this sentinel.
	ErrRemoteService = errors.New("remote service error")
)
