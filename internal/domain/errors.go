package domain

import "errors"

// ErrNotFound is returned by service functions when the requested club
// does not exist in the catalog.
// Handlers should map this to HTTP 404.
var ErrNotFound = errors.New("not found")

// ErrValidation is returned when input fails a business rule
// (e.g. a club without a name, or two clubs sharing a key).
// Handlers should map this to HTTP 400 or 422 depending on the caller.
var ErrValidation = errors.New("validation error")

// ErrUnavailable is returned when the club data provider could not produce a
// catalog and no previously loaded catalog exists.
// Handlers should map this to HTTP 503 with a "data unavailable" body.
var ErrUnavailable = errors.New("data unavailable")
