package domain

import (
	"context"
	"fmt"
	"log/slog"

	"seq2many.dev/pkg/seq2many/internal/adapter"
	"seq2many.dev/pkg/seq2many/internal/controller"
	m "seq2many.dev/pkg/seq2many/internal/model"
	"seq2many.dev/pkg/seq2many/pkg"
)

// RunArgs contains the parameters of one mutant generation run.
type RunArgs struct {
	Reference    m.Path
	Mode         string
	Position     int
	PositionSet  bool
	AminoAcid    string
	MutationList m.Path
	Regions      []m.Region
	Output       m.Path
	StrictMode   bool
	Manifest     bool
	SpillDir     string
}

// DistanceArgs names the two sequence files to compare.
type DistanceArgs struct {
	A m.Path
	B m.Path
}

// Workflow runs the seq2many modes end to end.
type Workflow interface {
	Run(ctx context.Context, args RunArgs) error
	Distance(ctx context.Context, args DistanceArgs) (int, error)
}

type workflow struct {
	adapter.SequenceFSAdapter
	adapter.ManifestStore
	controller.UI
}

// NewWorkflow creates a Workflow with the provided dependencies.
func NewWorkflow(
	fsAdapter adapter.SequenceFSAdapter,
	manifestStore adapter.ManifestStore,
	ui controller.UI,
) Workflow {
	return &workflow{
		SequenceFSAdapter: fsAdapter,
		ManifestStore:     manifestStore,
		UI:                ui,
	}
}

// Run dispatches on args.Mode. An unrecognized mode is reported through the
// UI and returns nil without touching the filesystem, unless args.StrictMode
// is set, in which case ErrInvalidMode is returned.
func (w *workflow) Run(ctx context.Context, args RunArgs) error {
	mode, ok := m.ParseMode(args.Mode)
	if !ok {
		slog.Warn("Invalid mode", "mode", args.Mode, "strict", args.StrictMode)
		w.DisplayInvalidMode(ctx, args.Mode)

		if args.StrictMode {
			return fmt.Errorf("%w: %q", ErrInvalidMode, args.Mode)
		}

		return nil
	}

	if err := validateArgs(mode, args); err != nil {
		return err
	}

	if args.Output == "" {
		args.Output = "."
	}

	if err := w.MkdirAll(ctx, args.Output); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	ref, err := w.ReadSequence(ctx, args.Reference)
	if err != nil {
		return err
	}

	if mode == m.ModeDeep {
		for _, region := range args.Regions {
			if err := validateRegion(ref, region); err != nil {
				return err
			}
		}
	}

	w.DisplayReference(ctx, args.Reference, ref)

	refIndex, err := w.WriteIndex(ctx, args.Output, "ref", ref)
	if err != nil {
		return err
	}

	manifest := m.Manifest{
		Version:   m.ManifestVersion,
		Mode:      mode,
		Reference: args.Reference,
		Length:    ref.Len(),
		Files:     []m.Path{refIndex},
	}

	slog.Info("Starting run", "mode", mode, "reference", args.Reference, "length", ref.Len())

	switch mode {
	case m.ModeSingle:
		err = w.runSingle(ctx, args, ref, &manifest)
	case m.ModeMulti:
		err = w.runMulti(ctx, args, ref, &manifest)
	case m.ModeDeep:
		err = w.runDeep(ctx, args, ref, &manifest)
	}

	if err != nil {
		slog.Error("Run failed", "mode", mode, "error", err)
		return err
	}

	if args.Manifest {
		if err := w.SaveManifest(w.JoinPath(string(args.Output), adapter.ManifestFileName), manifest); err != nil {
			return fmt.Errorf("save manifest: %w", err)
		}
	}

	slog.Info("Run completed", "mode", mode, "mutants", manifest.Mutants, "files", len(manifest.Files))

	return nil
}

func validateArgs(mode m.Mode, args RunArgs) error {
	if args.Reference == "" {
		return fmt.Errorf("%w: reference sequence path is required", ErrConfiguration)
	}

	switch mode {
	case m.ModeSingle:
		if !args.PositionSet {
			return fmt.Errorf("%w: single mode requires a position", ErrConfiguration)
		}

		if len(args.AminoAcid) != 1 {
			return fmt.Errorf("%w: single mode requires a one-letter amino acid, got %q", ErrConfiguration, args.AminoAcid)
		}
	case m.ModeMulti:
		if args.MutationList == "" {
			return fmt.Errorf("%w: multi mode requires a mutation list", ErrConfiguration)
		}
	case m.ModeDeep:
		if len(args.Regions) == 0 {
			return fmt.Errorf("%w: deep mode requires at least one region", ErrConfiguration)
		}
	}

	return nil
}

func (w *workflow) runSingle(ctx context.Context, args RunArgs, ref m.Sequence, manifest *m.Manifest) error {
	mutant, err := Substitute(ref, args.Position, m.AminoAcid(args.AminoAcid[0]))
	if err != nil {
		return err
	}

	return w.writeMutant(ctx, args.Output, m.ModeSingle, ref, mutant, manifest)
}

func (w *workflow) runMulti(ctx context.Context, args RunArgs, ref m.Sequence, manifest *m.Manifest) error {
	set, err := w.ReadMutationList(ctx, args.MutationList)
	if err != nil {
		return err
	}

	mutant, err := ApplyMutationSet(ref, set)
	if err != nil {
		return err
	}

	return w.writeMutant(ctx, args.Output, m.ModeMulti, ref, mutant, manifest)
}

func (w *workflow) writeMutant(ctx context.Context, dir m.Path, mode m.Mode, ref, mutant m.Sequence, manifest *m.Manifest) error {
	seqPath, err := w.WriteSequence(ctx, dir, mutant)
	if err != nil {
		return err
	}

	indexPath, err := w.WriteIndex(ctx, dir, string(mode), mutant)
	if err != nil {
		return err
	}

	manifest.Mutants = 1
	manifest.Files = append(manifest.Files, seqPath, indexPath)

	w.DisplayMutant(ctx, mode, ref, mutant, []m.Path{seqPath, indexPath})

	return nil
}

func (w *workflow) runDeep(ctx context.Context, args RunArgs, ref m.Sequence, manifest *m.Manifest) error {
	summaries := make([]m.ScanSummary, 0, len(args.Regions))

	for _, region := range args.Regions {
		dir := args.Output
		if len(args.Regions) > 1 {
			dir = w.JoinPath(string(args.Output), fmt.Sprintf("region_%d_%d", region.Begin, region.End))
			if err := w.MkdirAll(ctx, dir); err != nil {
				return fmt.Errorf("create region directory: %w", err)
			}
		}

		// Every region starts again from the reference.
		summary, files, err := w.scanRegion(ctx, ref, region, dir, args.SpillDir)
		if err != nil {
			return fmt.Errorf("scan region [%d, %d): %w", region.Begin, region.End, err)
		}

		summaries = append(summaries, summary)
		manifest.Mutants += summary.Mutants
		manifest.Regions = append(manifest.Regions, region)
		manifest.Files = append(manifest.Files, files...)
	}

	w.DisplayScan(ctx, summaries)

	return nil
}

func (w *workflow) scanRegion(ctx context.Context, ref m.Sequence, region m.Region, dir m.Path, spillDir string) (m.ScanSummary, []m.Path, error) {
	spill, err := pkg.NewFileSpill[m.Sequence](spillDir)
	if err != nil {
		return m.ScanSummary{}, nil, err
	}

	defer func() {
		if err := spill.Close(); err != nil {
			slog.Warn("Failed to remove spill", "path", spill.Path(), "error", err)
		}
	}()

	files := make([]m.Path, 0, 2*region.Len()*len(m.Alphabet))

	last, err := Scan(ref, region, func(step ScanStep) error {
		indexPath, err := w.WriteIndex(ctx, dir, fmt.Sprintf("mutant_%d", step.Index), step.Sequence)
		if err != nil {
			return err
		}

		files = append(files, indexPath)

		return spill.Append(step.Sequence)
	})
	if err != nil {
		return m.ScanSummary{}, nil, err
	}

	err = spill.Range(func(index uint64, seq m.Sequence) error {
		path, err := w.WriteMutant(ctx, dir, int(index), seq)
		if err != nil {
			return err
		}

		files = append(files, path)

		return nil
	})
	if err != nil {
		return m.ScanSummary{}, nil, err
	}

	slog.Debug("Scanned region", "begin", region.Begin, "end", region.End, "mutants", spill.Len(), "dir", dir)

	return m.ScanSummary{
		Region:  region,
		Mutants: int(spill.Len()),
		Dir:     dir,
		Last:    last,
	}, files, nil
}

// Distance reads both files and returns their Hamming distance.
func (w *workflow) Distance(ctx context.Context, args DistanceArgs) (int, error) {
	a, err := w.ReadSequence(ctx, args.A)
	if err != nil {
		return 0, err
	}

	b, err := w.ReadSequence(ctx, args.B)
	if err != nil {
		return 0, err
	}

	distance, err := HammingDistance(a, b)
	if err != nil {
		return 0, err
	}

	w.DisplayDistance(ctx, args.A, args.B, distance)

	return distance, nil
}
