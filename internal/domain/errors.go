package domain

import "errors"

// Sentinel errors returned by the order and menu services. Parse failures
// are not errors: an unparseable segment is a nil Intent, and an unknown
// place is an empty candidate list.
var (
	ErrNoActiveOrder  = errors.New("no active order for channel")
	ErrOrderClosed    = errors.New("order is closed")
	ErrPlaceNotFound  = errors.New("place not found")
	ErrNothingToApply = errors.New("no intents touched the order")
)
