package types

import "errors"

// Error kinds returned by the tariff engine. Concrete errors wrap one of these
// so callers can match with errors.Is.
var (
	// ErrConfiguration means the tariff schedule cannot serve the request,
	// e.g. an unsupported tariff year.
	ErrConfiguration = errors.New("configuration error")

	// ErrInvalidInput means the caller supplied a negative consumption or an
	// unrecognized customer category.
	ErrInvalidInput = errors.New("invalid input")

	// ErrSearchBound means the kWh search could not bracket the requested
	// bill amount.
	ErrSearchBound = errors.New("search bound exceeded")
)
