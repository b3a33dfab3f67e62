package store

import "errors"

var (
	// ErrQueryFailed is returned when DynamoDB rejects or fails a query
	// (throttling, connectivity, missing table or index).
	ErrQueryFailed = errors.New("ratings: query failed")

	// ErrInvalidLookup is returned when a Lookup is missing its attribute or value.
	ErrInvalidLookup = errors.New("ratings: invalid lookup")

	// ErrMalformedRecord is returned when a stored item cannot be decoded into a Rating.
	ErrMalformedRecord = errors.New("ratings: malformed record")
)
