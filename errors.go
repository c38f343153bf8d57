package recall

import "errors"

// Sentinel errors for the recall package.
// Use errors.Is to check: errors.Is(err, recall.ErrInvalidRating)
var (
	ErrInvalidRating     = errors.New("recall: invalid rating")
	ErrInvalidParameters = errors.New("recall: parameters out of bounds")
	ErrItemIDMismatch    = errors.New("recall: item ID mismatch in review log")
	ErrInvalidComponent  = errors.New("recall: invalid component type")
)
