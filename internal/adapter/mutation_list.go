package adapter

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	m "seq2many.dev/pkg/seq2many/internal/model"
)

const (
	listSeparator = ":"
	listComment   = "#"
)

// ErrParse marks malformed mutation list content.
var ErrParse = errors.New("parse error")

// ParseError reports a malformed line of a mutation list.
type ParseError struct {
	Line int
	Text string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("line %d %q: %v", e.Line, e.Text, e.Err)
}

func (e *ParseError) Unwrap() []error {
	return []error{ErrParse, e.Err}
}

// ParseMutationList reads AMINO:POSITION lines into an ordered mutation set.
// Blank lines and lines starting with '#' are ignored.
func ParseMutationList(r io.Reader) (m.MutationSet, error) {
	var set m.MutationSet

	scanner := bufio.NewScanner(r)
	lineNo := 0

	for scanner.Scan() {
		lineNo++

		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, listComment) {
			continue
		}

		edit, err := parseEdit(line)
		if err != nil {
			return nil, &ParseError{Line: lineNo, Text: line, Err: err}
		}

		set = append(set, edit)
	}

	if err := scanner.Err(); err != nil {
		return nil, err
	}

	return set, nil
}

func parseEdit(line string) (m.Edit, error) {
	fields := strings.Split(line, listSeparator)
	if len(fields) != 2 {
		return m.Edit{}, fmt.Errorf("expected AMINO%sPOSITION", listSeparator)
	}

	aa := strings.TrimSpace(fields[0])
	if len(aa) != 1 || !isLetter(aa[0]) {
		return m.Edit{}, fmt.Errorf("amino acid must be a single letter, got %q", aa)
	}

	position, err := strconv.Atoi(strings.TrimSpace(fields[1]))
	if err != nil {
		return m.Edit{}, fmt.Errorf("position: %w", err)
	}

	return m.Edit{Position: position, AminoAcid: m.AminoAcid(aa[0])}, nil
}

func isLetter(c byte) bool {
	return (c >= 'A' && c <= 'Z') || (c >= 'a' && c <= 'z')
}
