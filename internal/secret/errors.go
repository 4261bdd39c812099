package secret

import "errors"

// Reason classifies a denial.
type Reason string

const (
	ReasonHeaderMissing Reason = "header_missing"
	ReasonSecretUnset   Reason = "secret_unset"
	ReasonMismatch      Reason = "mismatch"
	ReasonStoreError    Reason = "store_error"
)

// AuthorizationError is returned by Gate.Check.  Every reason maps to the
// same 403 response; Reason only feeds logs and metrics.
type AuthorizationError struct {
	Reason Reason
	Err    error
}

func (e *AuthorizationError) Error() string {
	if e.Err != nil {
		return "secure token: " + string(e.Reason) + ": " + e.Err.Error()
	}
	return "secure token: " + string(e.Reason)
}

func (e *AuthorizationError) Unwrap() error { return e.Err }

// IsAuthorizationError reports whether err carries an *AuthorizationError.
func IsAuthorizationError(err error) bool {
	var aerr *AuthorizationError
	return errors.As(err, &aerr)
}
