package service

import "errors"

var (
	// ErrSessionLookup is returned when the payment gateway is unreachable or
	// the checkout session id is unknown.
	ErrSessionLookup = errors.New("checkout session lookup failed")

	// ErrForbidden is returned when the authenticated identity does not match
	// the requested resource owner.
	ErrForbidden = errors.New("forbidden access")

	// ErrInvalidSessionID is returned when the session id is empty.
	ErrInvalidSessionID = errors.New("invalid session id")

	// ErrInvalidParcelID is returned when the parcel id is empty.
	ErrInvalidParcelID = errors.New("invalid parcel id")

	// ErrInvalidSenderEmail is returned when the sender email is empty.
	ErrInvalidSenderEmail = errors.New("invalid sender email")

	// ErrInvalidCost is returned when the parcel cost is not positive.
	ErrInvalidCost = errors.New("invalid cost")

	// ErrInvalidParcelName is returned when the parcel name is empty.
	ErrInvalidParcelName = errors.New("invalid parcel name")

	// ErrInvalidEmail is returned when a required email is empty.
	ErrInvalidEmail = errors.New("invalid email")
)
