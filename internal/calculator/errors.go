package calculator

import (
	"errors"
	"fmt"
)

var (
	// ErrInsufficientHistory is returned when a series is shorter than the window an indicator needs.
	ErrInsufficientHistory = errors.New("not enough data")
	// ErrInvalidPeriod is returned for non-positive windows.
	ErrInvalidPeriod = errors.New("period must be positive")
	// ErrDegenerateRatio is returned when a ratio has a zero denominator and no saturation value applies.
	ErrDegenerateRatio = errors.New("degenerate ratio")
)

func checkWindow(name string, n, period, need int) error {
	if period <= 0 {
		return fmt.Errorf("%s(%d): %w", name, period, ErrInvalidPeriod)
	}
	if n < need {
		return fmt.Errorf("%s(%d): %w: need %d values, got %d", name, period, ErrInsufficientHistory, need, n)
	}
	return nil
}
