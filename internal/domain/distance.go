package domain

import (
	"fmt"

	m "seq2many.dev/pkg/seq2many/internal/model"
)

// HammingDistance counts the positions at which a and b differ.
func HammingDistance(a, b m.Sequence) (int, error) {
	if a.Len() != b.Len() {
		return 0, fmt.Errorf("%w: %d and %d", ErrLengthMismatch, a.Len(), b.Len())
	}

	distance := 0

	for i := 0; i < a.Len(); i++ {
		if a[i] != b[i] {
			distance++
		}
	}

	return distance, nil
}
