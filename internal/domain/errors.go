package domain

import "errors"

var (
	ErrInvalidConfiguration = errors.New("invalid configuration")
	ErrNotConnected         = errors.New("not connected to console")
	ErrOperationInProgress  = errors.New("operation already in progress")
	ErrAlreadySetUp         = errors.New("game already has compatibility libraries")
	ErrNotSetUp             = errors.New("game has no compatibility libraries")
	ErrEmptySelection       = errors.New("no games selected")
	ErrUnknownGame          = errors.New("unknown game")
	ErrBackendUnreachable   = errors.New("cannot reach backend server")
)

// BackendError carries the reason the backend gave when it answered a
// request with success=false. It is distinct from ErrBackendUnreachable,
// which covers transport failures and malformed responses.
type BackendError struct {
	Reason string
}

func (e *BackendError) Error() string {
	if e.Reason == "" {
		return "backend rejected the request"
	}

	return e.Reason
}
