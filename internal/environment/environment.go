// Package environment captures the point-in-time environmental context
// (weather, air quality, place name) attached to health logs. The
// snapshot is best-effort and taken exactly once per log entry.
package environment

import (
	"context"
	"errors"
)

// Coordinates is a single geographic position.
type Coordinates struct {
	Latitude  float64
	Longitude float64
}

// Location failure causes, surfaced for the caller to render.
var (
	ErrPermissionDenied    = errors.New("location permission denied")
	ErrPositionUnavailable = errors.New("position unavailable")
	ErrLocationTimeout     = errors.New("location timed out")
)

// Locator produces the device's current position with a single read.
type Locator interface {
	Locate(ctx context.Context) (Coordinates, error)
}

// FixedLocator always reports a configured position. It backs installs
// without a location source.
type FixedLocator struct {
	Coords Coordinates
}

func (f FixedLocator) Locate(context.Context) (Coordinates, error) {
	return f.Coords, nil
}
