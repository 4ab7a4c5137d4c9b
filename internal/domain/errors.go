package domain

import "errors" // Error inspection helpers

// Kind classifies a failure so callers can decide how to report it
type Kind int

const (
	KindUnknown        Kind = iota // Not a domain error
	KindValidation                 // Bad input shape
	KindNotFound                   // Unknown catalog item, account or cart position
	KindConflict                   // Duplicate username or last admin
	KindAuthorization              // Caller may not perform the action
	KindAuthentication             // Login rejected
	KindPersistence                // Durable storage operation failed
)

// String returns a short label for the kind
func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindNotFound:
		return "not_found"
	case KindConflict:
		return "conflict"
	case KindAuthorization:
		return "authorization"
	case KindPersistence:
		return "persistence"
	case KindAuthentication:
		return "authentication"
	default:
		return "unknown"
	}
}

// Error is the error type returned by the catalog, order and account packages
type Error struct {
	Kind Kind   // Failure class
	Msg  string // Human readable message
	Err  error  // Underlying cause, if any
}

// Error implements the error interface
func (e *Error) Error() string {
	if e.Err != nil {
		return e.Msg + ": " + e.Err.Error()
	}
	return e.Msg
}

// Unwrap exposes the underlying cause
func (e *Error) Unwrap() error {
	return e.Err
}

// Sentinel errors, compared with errors.Is
var (
	ErrInvalidSize         = &Error{Kind: KindValidation, Msg: "invalid size, expected small, medium or large"}
	ErrSizeRequired        = &Error{Kind: KindValidation, Msg: "pizza size is required"}
	ErrNoToppingsSelected  = &Error{Kind: KindValidation, Msg: "select at least one topping"}
	ErrInvalidToppingCount = &Error{Kind: KindValidation, Msg: "topping count must not be negative"}
	ErrEmptyCart           = &Error{Kind: KindValidation, Msg: "cart is empty"}
	ErrInvalidPinFormat    = &Error{Kind: KindValidation, Msg: "PIN must be exactly 4 digits"}
	ErrUsernameRequired    = &Error{Kind: KindValidation, Msg: "username is required"}
	ErrInvalidCredentials  = &Error{Kind: KindAuthentication, Msg: "invalid username or PIN"}
	ErrCatalogItemNotFound = &Error{Kind: KindNotFound, Msg: "catalog item not found"}
	ErrAccountNotFound     = &Error{Kind: KindNotFound, Msg: "account not found"}
	ErrOrderNotFound       = &Error{Kind: KindNotFound, Msg: "order not found"}
	ErrIndexOutOfRange     = &Error{Kind: KindNotFound, Msg: "cart index out of range"}
	ErrDuplicateUsername   = &Error{Kind: KindConflict, Msg: "username already exists"}
	ErrLastAdmin           = &Error{Kind: KindConflict, Msg: "at least one admin account must remain"}
	ErrSelfDeletion        = &Error{Kind: KindAuthorization, Msg: "you cannot delete your own account"}
)

// Wrap attaches detail to a sentinel while keeping errors.Is working
func Wrap(sentinel *Error, detail string) error {
	return &wrapped{sentinel: sentinel, detail: detail}
}

type wrapped struct {
	sentinel *Error
	detail   string
}

func (w *wrapped) Error() string { return w.sentinel.Msg + ": " + w.detail }
func (w *wrapped) Unwrap() error { return w.sentinel }

// Persistence wraps a storage failure for the named operation
func Persistence(op string, err error) error {
	return &Error{Kind: KindPersistence, Msg: op + " failed", Err: err}
}

// KindOf reports the kind of the first domain error in err's chain
func KindOf(err error) Kind {
	var de *Error
	if errors.As(err, &de) {
		return de.Kind
	}
	return KindUnknown
}

// IsAuthFailure reports whether err means the login attempt was rejected.
// Callers render both cases identically.
func IsAuthFailure(err error) bool {
	return errors.Is(err, ErrInvalidPinFormat) || errors.Is(err, ErrInvalidCredentials)
}
