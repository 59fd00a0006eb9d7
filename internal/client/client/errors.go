package client

import (
	"errors"
	"fmt"

	"github.com/dmitrijs2005/fittrack/internal/common"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

var (
	ErrUnavailable  = errors.New("remote store unavailable")
	ErrUnauthorized = errors.New("unauthorized")
	// ErrMalformedResponse is returned when a reply lacks a required field.
	ErrMalformedResponse = errors.New("malformed response")
)

// RemoteError carries a failed call's status. Its text is the remote
// message unchanged so it can be shown to the user.
type RemoteError struct {
	Kind    error
	Code    codes.Code
	Message string
}

func (e *RemoteError) Error() string {
	if e.Message == "" {
		return e.Kind.Error()
	}
	return e.Message
}

// Is matches the error's kind and, for every kind, common.ErrRemoteService.
func (e *RemoteError) Is(target error) bool {
	return target == e.Kind || target == common.ErrRemoteService
}

func mapError(err error) error {
	if err == nil {
		return nil
	}
	st, ok := status.FromError(err)
	if !ok {
		return fmt.Errorf("rpc error: %w", err)
	}
	kind := common.ErrRemoteService
	switch st.Code() {
	case codes.Unauthenticated, codes.PermissionDenied:
		kind = ErrUnauthorized
	case codes.Unavailable, codes.DeadlineExceeded:
		kind = ErrUnavailable
	}
	return &RemoteError{Kind: kind, Code: st.Code(), Message: st.Message()}
}

// mapSignInError reports rejected credentials as common.ErrInvalidCredentials,
// keeping the remote wording.
func mapSignInError(err error) error {
	st, ok := status.FromError(err)
	if ok && (st.Code() == codes.Unauthenticated || st.Code() == codes.InvalidArgument) {
		msg := st.Message()
		if msg == "" {
			return common.ErrInvalidCredentials
		}
		return fmt.Errorf("%w: %s", common.ErrInvalidCredentials, msg)
	}
	return mapError(err)
}
