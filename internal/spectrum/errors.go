package spectrum

import (
	"errors"
	"fmt"
)

// ErrInvalidWidth is returned when a raster is requested with width <= 0.
var ErrInvalidWidth = errors.New("spectrum: width must be > 0")

func validateWidth(width int) error {
	if width <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidWidth, width)
	}
	return nil
}

func validateTransition(z, lower, upper int) error {
	if z < 1 {
		return fmt.Errorf("spectrum: nuclear charge must be >= 1: %d", z)
	}
	if lower < 1 {
		return fmt.Errorf("spectrum: lower level must be >= 1: %d", lower)
	}
	if upper <= lower {
		return fmt.Errorf("spectrum: upper level must be > lower level: %d <= %d", upper, lower)
	}
	return nil
}
