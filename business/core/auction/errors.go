package auction

import (
	"errors"
	"fmt"
)

// Set of rejection values the bid engine hands back to callers. These are
// expected outcomes of validation, never crashes.
var (
	ErrNotFound = errors.New("auction not found")
	ErrClosed   = errors.New("auction has ended")
	ErrNoWallet = errors.New("wallet address missing for a required party")
	ErrExists   = errors.New("auction already exists")
	ErrOpen     = errors.New("auction is still open")
)

// BelowMinimumError is returned when a bid is below the computed minimum.
type BelowMinimumError struct {
	Minimum uint64
}

// Error implements the error interface.
func (e BelowMinimumError) Error() string {
	return fmt.Sprintf("bid must be at least %d", e.Minimum)
}

// AboveMaximumError is returned when a bid exceeds the configured ceiling.
type AboveMaximumError struct {
	Maximum uint64
}

// Error implements the error interface.
func (e AboveMaximumError) Error() string {
	return fmt.Sprintf("bid cannot exceed %d", e.Maximum)
}

// BelowIncrementError is returned when a bid fails to exceed the highest
// bid by the configured percentage.
type BelowIncrementError struct {
	Pct      uint
	Required uint64
}

// Error implements the error interface.
func (e BelowIncrementError) Error() string {
	return fmt.Sprintf("new bid must be at least %d%% higher than the current bid (%d)", e.Pct, e.Required)
}

// IsRejection reports whether the error is one of the bid engine's typed
// rejections rather than an infrastructure failure.
func IsRejection(err error) bool {
	switch {
	case errors.Is(err, ErrNotFound),
		errors.Is(err, ErrClosed),
		errors.Is(err, ErrNoWallet),
		errors.Is(err, ErrExists),
		errors.Is(err, ErrOpen):
		return true
	}

	var bmin BelowMinimumError
	var bmax AboveMaximumError
	var binc BelowIncrementError

	return errors.As(err, &bmin) || errors.As(err, &bmax) || errors.As(err, &binc)
}
