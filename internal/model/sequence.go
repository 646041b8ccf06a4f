// Package model defines the data structures for mutant sequence generation.
package model

// Path represents a file system path.
type Path string

// Sequence is an ordered string of one-letter amino-acid codes, indexed from 0.
type Sequence string

// Len returns the number of residues.
func (s Sequence) Len() int {
	return len(s)
}

// At returns the residue at position i.
func (s Sequence) At(i int) AminoAcid {
	return AminoAcid(s[i])
}

// AminoAcid is a single one-letter amino-acid code.
type AminoAcid byte

func (a AminoAcid) String() string {
	return string(rune(a))
}

// Alphabet is the ordered set of the 20 standard amino acids. The order fixes
// the enumeration order of deep mutational scanning.
var Alphabet = [...]AminoAcid{
	'G', 'P', 'A', 'V', 'L', 'I', 'M', 'C', 'F', 'Y',
	'W', 'H', 'K', 'R', 'Q', 'N', 'E', 'D', 'S', 'T',
}

// Edit is a single point substitution.
type Edit struct {
	Position  int
	AminoAcid AminoAcid
}

// MutationSet is an ordered list of edits applied together.
// When two edits share a position the later one wins.
type MutationSet []Edit

// Region is the half-open interval [Begin, End) of residue positions.
type Region struct {
	Begin int `yaml:"begin"`
	End   int `yaml:"end"`
}

// Len returns the number of positions covered, or 0 for an empty region.
func (r Region) Len() int {
	if r.End <= r.Begin {
		return 0
	}

	return r.End - r.Begin
}
