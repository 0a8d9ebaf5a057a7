package types

import "errors"

var (
	// ErrAssetNotFound means a static asset (image, map document) is missing or
	// unreadable. Views recover from it by rendering a placeholder.
	ErrAssetNotFound = errors.New("asset not found")

	// ErrSchemaMismatch means an input table is missing a required column or
	// carries a value that does not parse. Fatal for the view reading it.
	ErrSchemaMismatch = errors.New("table schema mismatch")

	// ErrTableUnavailable means an input table could not be opened at all.
	ErrTableUnavailable = errors.New("table unavailable")

	// ErrPageNotFound is returned for an unknown page slug.
	ErrPageNotFound = errors.New("page not found")
)
