// Package adapter contains the filesystem adapters used by the seq2many workflow.
package adapter

import (
	"bufio"
	"compress/gzip"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	m "seq2many.dev/pkg/seq2many/internal/model"
)

const (
	sequenceFileName = "out.seq"
	headerMarker     = ">"
	indexHeader      = "#index, aa\n"
	stdinPath        = "-"
	gzipSuffix       = ".gz"
)

// SequenceFSAdapter hides the flat-file conventions of seq2many from the
// domain layer: reference input, mutation lists, and the sequence and index
// output files.
//
//nolint:interfacebloat // one adapter owns every on-disk format.
type SequenceFSAdapter interface {
	// ReadSequence loads a reference sequence, skipping '>' header lines and
	// concatenating the trimmed remaining lines.
	ReadSequence(ctx context.Context, path m.Path) (m.Sequence, error)

	// ReadMutationList parses an AMINO:POSITION control file.
	ReadMutationList(ctx context.Context, path m.Path) (m.MutationSet, error)

	// WriteSequence writes a single mutant to out.seq inside dir.
	WriteSequence(ctx context.Context, dir m.Path, seq m.Sequence) (m.Path, error)

	// WriteMutant writes the index-th mutant of a list to mutant_{index}.seq.
	WriteMutant(ctx context.Context, dir m.Path, index int, seq m.Sequence) (m.Path, error)

	// WriteIndex writes the position/residue table to index_{label}.out.
	WriteIndex(ctx context.Context, dir m.Path, label string, seq m.Sequence) (m.Path, error)

	// MkdirAll creates dir and any missing parents.
	MkdirAll(ctx context.Context, dir m.Path) error

	// JoinPath joins path elements into a single path.
	JoinPath(elem ...string) m.Path
}

// LocalSequenceFSAdapter implements SequenceFSAdapter on the local disk.
type LocalSequenceFSAdapter struct {
	stdin io.Reader
}

// NewLocalSequenceFSAdapter constructs a LocalSequenceFSAdapter reading "-"
// from os.Stdin.
func NewLocalSequenceFSAdapter() *LocalSequenceFSAdapter {
	return &LocalSequenceFSAdapter{stdin: os.Stdin}
}

// ReadSequence loads and parses a reference sequence file.
func (a *LocalSequenceFSAdapter) ReadSequence(ctx context.Context, path m.Path) (m.Sequence, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	rc, err := a.open(path)
	if err != nil {
		return "", fmt.Errorf("open reference %s: %w", path, err)
	}

	defer func() {
		_ = rc.Close()
	}()

	seq, err := ParseSequence(rc)
	if err != nil {
		return "", fmt.Errorf("read reference %s: %w", path, err)
	}

	slog.Debug("read reference", "path", path, "length", seq.Len())

	return seq, nil
}

// ParseSequence reads a FASTA-like stream into one sequence. Lines whose
// left-trimmed text starts with '>' are headers and are dropped; all other
// lines are trimmed and concatenated.
func ParseSequence(r io.Reader) (m.Sequence, error) {
	var b strings.Builder

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if strings.HasPrefix(line, headerMarker) {
			continue
		}

		b.WriteString(line)
	}

	if err := scanner.Err(); err != nil {
		return "", err
	}

	return m.Sequence(b.String()), nil
}

// ReadMutationList loads and parses a mutation list file.
func (a *LocalSequenceFSAdapter) ReadMutationList(ctx context.Context, path m.Path) (m.MutationSet, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	rc, err := a.open(path)
	if err != nil {
		return nil, fmt.Errorf("open mutation list %s: %w", path, err)
	}

	defer func() {
		_ = rc.Close()
	}()

	set, err := ParseMutationList(rc)
	if err != nil {
		return nil, fmt.Errorf("read mutation list %s: %w", path, err)
	}

	slog.Debug("read mutation list", "path", path, "edits", len(set))

	return set, nil
}

// WriteSequence writes seq to out.seq under a "> mutant " header without a
// trailing newline.
func (a *LocalSequenceFSAdapter) WriteSequence(ctx context.Context, dir m.Path, seq m.Sequence) (m.Path, error) {
	path := a.JoinPath(string(dir), sequenceFileName)

	return path, a.writeFile(ctx, path, func(w *bufio.Writer) error {
		if _, err := w.WriteString("> mutant \n"); err != nil {
			return err
		}

		_, err := w.WriteString(string(seq))

		return err
	})
}

// WriteMutant writes seq to mutant_{index}.seq under a "> mutant {index}" header.
func (a *LocalSequenceFSAdapter) WriteMutant(ctx context.Context, dir m.Path, index int, seq m.Sequence) (m.Path, error) {
	path := a.JoinPath(string(dir), fmt.Sprintf("mutant_%d.seq", index))

	return path, a.writeFile(ctx, path, func(w *bufio.Writer) error {
		_, err := fmt.Fprintf(w, "> mutant %d\n%s\n", index, seq)
		return err
	})
}

// WriteIndex writes one "{position} {residue}" line per residue of seq.
func (a *LocalSequenceFSAdapter) WriteIndex(ctx context.Context, dir m.Path, label string, seq m.Sequence) (m.Path, error) {
	path := a.JoinPath(string(dir), fmt.Sprintf("index_%s.out", label))

	return path, a.writeFile(ctx, path, func(w *bufio.Writer) error {
		return FormatIndex(w, seq)
	})
}

// FormatIndex renders the index table of seq, header included.
func FormatIndex(w io.Writer, seq m.Sequence) error {
	if _, err := io.WriteString(w, indexHeader); err != nil {
		return err
	}

	for i := 0; i < seq.Len(); i++ {
		if _, err := fmt.Fprintf(w, "%d %c\n", i, seq[i]); err != nil {
			return err
		}
	}

	return nil
}

// MkdirAll creates dir with its parents.
func (a *LocalSequenceFSAdapter) MkdirAll(ctx context.Context, dir m.Path) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	return os.MkdirAll(string(dir), 0o750)
}

// JoinPath joins path elements into a single path.
func (a *LocalSequenceFSAdapter) JoinPath(elem ...string) m.Path {
	return m.Path(filepath.Join(elem...))
}

func (a *LocalSequenceFSAdapter) open(path m.Path) (io.ReadCloser, error) {
	if path == stdinPath {
		return io.NopCloser(a.stdin), nil
	}

	f, err := os.Open(string(path))
	if err != nil {
		return nil, err
	}

	if !strings.HasSuffix(string(path), gzipSuffix) {
		return f, nil
	}

	gz, err := gzip.NewReader(f)
	if err != nil {
		_ = f.Close()
		return nil, err
	}

	return struct {
		io.Reader
		io.Closer
	}{Reader: gz, Closer: f}, nil
}

func (a *LocalSequenceFSAdapter) writeFile(ctx context.Context, path m.Path, fill func(w *bufio.Writer) error) (err error) {
	if err := ctx.Err(); err != nil {
		return err
	}

	f, err := os.Create(string(path))
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}

	defer func() {
		if closeErr := f.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("close %s: %w", path, closeErr)
		}
	}()

	w := bufio.NewWriter(f)
	if err := fill(w); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}

	if err := w.Flush(); err != nil {
		return fmt.Errorf("flush %s: %w", path, err)
	}

	slog.Debug("wrote file", "path", path)

	return nil
}
