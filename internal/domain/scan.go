package domain

import (
	"fmt"

	m "seq2many.dev/pkg/seq2many/internal/model"
)

// ScanStep is one substitution of a deep mutational scan.
type ScanStep struct {
	Index     int
	Position  int
	AminoAcid m.AminoAcid
	Sequence  m.Sequence
}

// ScanVisitFunc receives every step as soon as it is produced.
// Returning an error stops the scan.
type ScanVisitFunc func(step ScanStep) error

// Scan walks region position by position and, for each position, substitutes
// every amino acid of m.Alphabet in order. Each step mutates the sequence
// produced by the previous step, not the original seq, so substitutions carry
// forward across the scan. It returns the sequence carried out of the last step.
func Scan(seq m.Sequence, region m.Region, visit ScanVisitFunc) (m.Sequence, error) {
	if err := validateRegion(seq, region); err != nil {
		return seq, err
	}

	current := seq
	index := 0

	for position := region.Begin; position < region.End; position++ {
		for _, aa := range m.Alphabet {
			next, err := Substitute(current, position, aa)
			if err != nil {
				return current, err
			}

			current = next

			if visit != nil {
				err := visit(ScanStep{Index: index, Position: position, AminoAcid: aa, Sequence: current})
				if err != nil {
					return current, err
				}
			}

			index++
		}
	}

	return current, nil
}

// DeepMutationalScanning collects every snapshot of Scan, in order.
// The result holds region.Len()*len(m.Alphabet) sequences.
func DeepMutationalScanning(seq m.Sequence, region m.Region) ([]m.Sequence, error) {
	mutants := make([]m.Sequence, 0, region.Len()*len(m.Alphabet))

	_, err := Scan(seq, region, func(step ScanStep) error {
		mutants = append(mutants, step.Sequence)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return mutants, nil
}

func validateRegion(seq m.Sequence, region m.Region) error {
	if region.Len() == 0 {
		return nil
	}

	if region.Begin < 0 || region.End > seq.Len() {
		return fmt.Errorf("%w: [%d, %d) exceeds sequence of length %d", ErrRegionOutOfRange, region.Begin, region.End, seq.Len())
	}

	return nil
}
