package pollination

import "errors"

// Error kinds returned by the calculation. Callers test them with errors.Is;
// the wrapping message carries the zone or metric involved.
var (
	// ErrDataNotFound means an identifier resolved to no geometry or surface
	ErrDataNotFound = errors.New("data not found")

	// ErrInvalidGeometry means a zone is degenerate or self-intersecting
	ErrInvalidGeometry = errors.New("invalid geometry")

	// ErrAlignment means the ROI cannot be expressed in the CA frame (zero-extent CA, CRS mismatch)
	ErrAlignment = errors.New("alignment error")

	// ErrComputation means a numeric failure was detected before it reached the output
	ErrComputation = errors.New("computation error")
)

// IsClientError reports whether err was caused by the identifiers or data supplied
// rather than by an internal failure
func IsClientError(err error) bool {
	return errors.Is(err, ErrDataNotFound) ||
		errors.Is(err, ErrInvalidGeometry) ||
		errors.Is(err, ErrAlignment)
}
