package explore

import "errors"

var (
	// ErrUnknownMetric is returned when the request names a metric the
	// explorer cannot compute.
	ErrUnknownMetric = errors.New("explore: unknown metric")

	// ErrBadRange is returned when the seed range is empty or inverted.
	ErrBadRange = errors.New("explore: seed_end must be >= seed_start")

	// ErrRangeTooLarge is returned when the range exceeds MaxRange. Every
	// seed costs a full pipeline run, so the range is bounded.
	ErrRangeTooLarge = errors.New("explore: seed range exceeds maximum")

	// ErrUnknownOp is returned for an unrecognized target operation.
	ErrUnknownOp = errors.New("explore: unknown target op")
)
