package adapter

import (
	"fmt"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"

	m "seq2many.dev/pkg/seq2many/internal/model"
)

// ManifestFileName is the file a manifest is saved under inside the output dir.
const ManifestFileName = "manifest.yaml"

// ManifestStore persists run manifests.
type ManifestStore interface {
	SaveManifest(path m.Path, manifest m.Manifest) error
	LoadManifest(path m.Path) (m.Manifest, error)
}

// YAMLManifestStore stores manifests as YAML documents.
type YAMLManifestStore struct{}

// NewManifestStore constructs a YAMLManifestStore.
func NewManifestStore() *YAMLManifestStore {
	return &YAMLManifestStore{}
}

// SaveManifest encodes manifest to path, replacing any existing file.
func (s *YAMLManifestStore) SaveManifest(path m.Path, manifest m.Manifest) (err error) {
	f, err := os.Create(string(path))
	if err != nil {
		return fmt.Errorf("create manifest: %w", err)
	}

	defer func() {
		if closeErr := f.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("close manifest: %w", closeErr)
		}
	}()

	encoder := yaml.NewEncoder(f)
	encoder.SetIndent(2)

	if err := encoder.Encode(manifest); err != nil {
		return fmt.Errorf("encode manifest: %w", err)
	}

	if err := encoder.Close(); err != nil {
		return fmt.Errorf("encode manifest: %w", err)
	}

	slog.Debug("saved manifest", "path", path, "files", len(manifest.Files))

	return nil
}

// LoadManifest decodes the manifest stored at path.
func (s *YAMLManifestStore) LoadManifest(path m.Path) (m.Manifest, error) {
	data, err := os.ReadFile(string(path))
	if err != nil {
		return m.Manifest{}, fmt.Errorf("read manifest: %w", err)
	}

	var manifest m.Manifest
	if err := yaml.Unmarshal(data, &manifest); err != nil {
		return m.Manifest{}, fmt.Errorf("decode manifest: %w", err)
	}

	return manifest, nil
}
