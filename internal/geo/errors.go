package geo

import "errors"

var (
	// ErrNoPoints indicates a centroid was requested for an empty point set.
	ErrNoPoints = errors.New("geo: centroid requires at least one point")
)
