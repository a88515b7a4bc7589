package catalog

import "errors"

var (
	// ErrNotFound is returned by lookups for an id absent from the catalog
	ErrNotFound = errors.New("not found")
	// ErrInvalidCatalog is returned when loaded records break a catalog invariant
	ErrInvalidCatalog = errors.New("invalid catalog")
	// ErrInvalidOrdering is returned by Search for an unsupported ordering key
	ErrInvalidOrdering = errors.New("invalid ordering")
)
