// Package domain contains the mutant generation logic and the run workflow.
package domain

import (
	"fmt"

	m "seq2many.dev/pkg/seq2many/internal/model"
)

// Substitute returns a copy of seq with the residue at position replaced by
// the upper-cased aa. Substituting the residue already present is a valid
// no-op and returns an identical sequence.
func Substitute(seq m.Sequence, position int, aa m.AminoAcid) (m.Sequence, error) {
	if position < 0 || position >= seq.Len() {
		return "", fmt.Errorf("%w: %d not in [0, %d)", ErrPositionOutOfRange, position, seq.Len())
	}

	target, err := normalizeAminoAcid(aa)
	if err != nil {
		return "", err
	}

	residues := []byte(seq)
	residues[position] = byte(target)

	return m.Sequence(residues), nil
}

// ApplyMutationSet applies every edit of set to seq in order.
// The last edit for a given position wins.
func ApplyMutationSet(seq m.Sequence, set m.MutationSet) (m.Sequence, error) {
	if len(set) == 0 {
		return "", ErrEmptyMutationSet
	}

	mutated := seq

	for _, edit := range set {
		next, err := Substitute(mutated, edit.Position, edit.AminoAcid)
		if err != nil {
			return "", fmt.Errorf("apply %s:%d: %w", edit.AminoAcid, edit.Position, err)
		}

		mutated = next
	}

	return mutated, nil
}

func normalizeAminoAcid(aa m.AminoAcid) (m.AminoAcid, error) {
	switch {
	case aa >= 'A' && aa <= 'Z':
		return aa, nil
	case aa >= 'a' && aa <= 'z':
		return aa - 'a' + 'A', nil
	}

	return 0, fmt.Errorf("%w: %q", ErrInvalidAminoAcid, rune(aa))
}
