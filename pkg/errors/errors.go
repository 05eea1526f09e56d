package errors

import "fmt"

var (
	// Tokens and sessions
	ErrInvalidSigningMethod = fmt.Errorf("unexpected token signing method")
	ErrInvalidToken         = fmt.Errorf("invalid token")
	ErrTokenExpired         = fmt.Errorf("token has expired")
	ErrTokenNotYetValid     = fmt.Errorf("token is not valid yet")
	ErrTokenIsNotRefresh    = fmt.Errorf("token is not a refresh token")
	ErrTokenIsNotAccess     = fmt.Errorf("token is not an access token")
	ErrSessionExpired       = fmt.Errorf("session has expired, please sign in again")

	// Authorization
	ErrEmptyAuthHeader    = fmt.Errorf("authorization header is missing")
	ErrInvalidAuthHeader  = fmt.Errorf("authorization header is malformed")
	ErrInvalidCredentials = fmt.Errorf("invalid username or password")
	ErrUnauthorized       = fmt.Errorf("authentication required")
	ErrForbidden          = fmt.Errorf("access denied")
	ErrUserDisabled       = fmt.Errorf("account is disabled")

	// Request context
	ErrUserIDNotFoundInContext = fmt.Errorf("user id not found in request context")

	// General
	ErrNotFound   = fmt.Errorf("record not found")
	ErrBadRequest = fmt.Errorf("bad request")

	// Booking conflicts (advisory client checks are re-validated here;
	// the service layer is the authority)
	ErrBookingConflict = fmt.Errorf("the room is already booked for this time slot")
)

// HttpError carries an HTTP status, a user-facing message and the wrapped
// cause. Details, when set, is returned in the response body; Context is
// only logged.
type HttpError struct {
	Code    int
	Message string
	Err     error
	Context map[string]interface{}
	Details interface{}
}

func (e *HttpError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *HttpError) Unwrap() error { return e.Err }

func NewHttpError(code int, message string, err error, context map[string]interface{}) *HttpError {
	return &HttpError{
		Code:    code,
		Message: message,
		Err:     err,
		Context: context,
	}
}

// NewConflictError builds a 409 response that names the blocking booking so
// clients can refetch the collection before re-displaying availability.
func NewConflictError(conflictingBookingID uint64) *HttpError {
	return &HttpError{
		Code:    409,
		Message: ErrBookingConflict.Error(),
		Err:     ErrBookingConflict,
		Details: map[string]interface{}{"conflicting_booking_id": conflictingBookingID},
	}
}

type InvalidInputError struct {
	Message string
}

func (e *InvalidInputError) Error() string { return e.Message }

func NewInvalidInputError(format string, args ...interface{}) error {
	return &InvalidInputError{Message: fmt.Sprintf(format, args...)}
}
