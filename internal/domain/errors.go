package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrConfiguration marks fatal problems with the run parameters.
	ErrConfiguration = errors.New("configuration error")
	// ErrEmptyMutationSet is returned when a mutation set has no edits.
	ErrEmptyMutationSet = fmt.Errorf("%w: no items in mutation set", ErrConfiguration)
	// ErrInvalidMode is returned for an unknown mode when strict mode is on.
	ErrInvalidMode = fmt.Errorf("%w: invalid mode", ErrConfiguration)
	// ErrPositionOutOfRange is returned when a position falls outside the sequence.
	ErrPositionOutOfRange = errors.New("position out of range")
	// ErrRegionOutOfRange is returned when a scan region exceeds the sequence.
	ErrRegionOutOfRange = errors.New("region out of range")
	// ErrInvalidAminoAcid is returned when a target is not a one-letter code.
	ErrInvalidAminoAcid = errors.New("invalid amino acid")
	// ErrLengthMismatch is returned when comparing sequences of different lengths.
	ErrLengthMismatch = errors.New("sequence lengths differ")
)
