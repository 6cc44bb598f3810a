package domain

import "fmt"

// TransportMode identifies how a segment is travelled.
type TransportMode string

const (
	ModeHike  TransportMode = "hike"
	ModeBike  TransportMode = "bike"
	ModeDrive TransportMode = "drive"
	ModeFly   TransportMode = "fly"
	ModeTrain TransportMode = "train"

	// ModeWalk has a routing profile and may be used internally, but it is
	// never accepted from the API — ParseTransportMode rejects it.
	ModeWalk TransportMode = "walk"
)

// Modes lists the transport modes exposed to callers, in display order.
var Modes = []TransportMode{ModeHike, ModeBike, ModeDrive, ModeFly, ModeTrain}

// ParseTransportMode converts a raw string into a TransportMode.
// Returns domain.ErrValidation for unknown modes and for ModeWalk.
func ParseTransportMode(s string) (TransportMode, error) {
	switch TransportMode(s) {
	case ModeHike, ModeBike, ModeDrive, ModeFly, ModeTrain:
		return TransportMode(s), nil
	}
	return "", fmt.Errorf("%w: unknown transport mode %q", ErrValidation, s)
}

// Routable reports whether the mode is resolved through the network routing
// provider. Fly and train segments are estimated locally instead.
func (m TransportMode) Routable() bool {
	switch m {
	case ModeHike, ModeBike, ModeDrive, ModeWalk:
		return true
	}
	return false
}
