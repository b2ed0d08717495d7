// Package apperrors defines the error taxonomy shared by services and
// handlers. Every business failure is one of five kinds; handlers map the
// kind to an HTTP status and a human-readable message.
package apperrors

import "errors"

// Kind classifies an error for propagation policy purposes. Validation and
// Conflict mean "nothing happened, fix your input"; Transient means "try
// again"; Authorization means "not allowed". Conflicts must not be retried.
type Kind int

const (
	KindUnknown Kind = iota
	KindValidation
	KindNotFound
	KindConflict
	KindAuthorization
	KindTransient
)

// Error is a typed, recoverable failure. Failures never abort the process;
// each one is local to the operation attempted.
type Error struct {
	kind Kind
	msg  string
}

func (e *Error) Error() string { return e.msg }

// ErrorKind returns the Kind of err, or KindUnknown for foreign errors.
func ErrorKind(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.kind
	}
	return KindUnknown
}

func newError(kind Kind, msg string) *Error {
	return &Error{kind: kind, msg: msg}
}

var (
	// ErrInvalidAgentCode covers missing and already-used agent codes alike
	ErrInvalidAgentCode = newError(KindValidation, "agent code is not valid or already used")
	// ErrDuplicatePhone is returned when the phone is already registered
	ErrDuplicatePhone = newError(KindConflict, "phone number is already registered")
	// ErrAccountNotFound is returned for an unknown account id
	ErrAccountNotFound = newError(KindNotFound, "account not found")
	// ErrAccountSuspended blocks suspended accounts from authenticating
	ErrAccountSuspended = newError(KindAuthorization, "account is suspended")
	// ErrCodeNotFound deliberately covers unknown, already-redeemed and
	// expired QR codes so callers cannot probe which codes exist
	ErrCodeNotFound = newError(KindNotFound, "QR code is not valid or already used")
	// ErrCodeConflict is the concurrent-redemption loser's outcome
	ErrCodeConflict = newError(KindConflict, "QR code was redeemed by another request")
	// ErrBatchNotFound is returned for an unknown QR batch id
	ErrBatchNotFound = newError(KindNotFound, "QR batch not found")
	// ErrProductNotFound is returned for an unknown reward product id
	ErrProductNotFound = newError(KindNotFound, "reward product not found")
	// ErrInsufficientPoints is returned when the balance cannot cover a deduction
	ErrInsufficientPoints = newError(KindConflict, "insufficient points balance")
	// ErrOutOfStock is returned when a product has no stock left
	ErrOutOfStock = newError(KindConflict, "reward product is out of stock")
	// ErrRequestNotFound is returned for an unknown redemption/withdrawal id
	ErrRequestNotFound = newError(KindNotFound, "request not found")
	// ErrInvalidTransition is returned for any illegal state-machine move
	ErrInvalidTransition = newError(KindConflict, "invalid status transition")
	// ErrBelowMinimum is returned when a withdrawal is under the minimum
	ErrBelowMinimum = newError(KindValidation, "withdrawal amount is below the minimum")
	// ErrInvalidCredentials is returned for failed admin logins and bad OTPs
	ErrInvalidCredentials = newError(KindAuthorization, "invalid credentials")
	// ErrOTPExpired is returned when the OTP challenge has lapsed
	ErrOTPExpired = newError(KindAuthorization, "OTP has expired, request a new one")
	// ErrStoreNotFound is returned for an unknown pickup store id
	ErrStoreNotFound = newError(KindNotFound, "store location not found")
)

// Validation wraps a message as a validation failure
func Validation(msg string) *Error { return newError(KindValidation, msg) }

// Transient wraps a message as a retryable store/network failure
func Transient(msg string) *Error { return newError(KindTransient, msg) }
