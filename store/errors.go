package store

import "errors"

var (
	// ErrDuplicateKey is returned by inserts when the numeric ID is taken.
	ErrDuplicateKey = errors.New("record with that ID already exists")

	// ErrNotFound is returned by updates and lookups on unknown IDs or codes.
	ErrNotFound = errors.New("record not found")

	// ErrUnknownAirline and ErrUnknownAirport are returned by AddRouteChecked
	// when a route names an ID that is not in the store. Dangling references
	// already present in ingested data are not errors; only the add-route
	// boundary enforces existence.
	ErrUnknownAirline = errors.New("unknown airline ID")
	ErrUnknownAirport = errors.New("unknown airport ID")
)
