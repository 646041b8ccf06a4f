package model

// ManifestVersion is the current manifest schema version.
const ManifestVersion = 1

// Manifest summarizes the files produced by one run.
type Manifest struct {
	Version   int      `yaml:"version"`
	Mode      Mode     `yaml:"mode"`
	Reference Path     `yaml:"reference"`
	Length    int      `yaml:"length"`
	Mutants   int      `yaml:"mutants"`
	Regions   []Region `yaml:"regions,omitempty"`
	Files     []Path   `yaml:"files"`
}

// ScanSummary describes the output of scanning one region.
type ScanSummary struct {
	Region  Region
	Mutants int
	Dir     Path
	Last    Sequence
}
