package artifact

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	// MetaName is the per-source metadata file name.
	MetaName = "meta.yaml"
	// ManifestName is the run-level manifest file name.
	ManifestName = "manifest.yaml"
)

// Entry describes one artifact file.
type Entry struct {
	SampleRate int    `yaml:"sample_rate"`
	Rows       int    `yaml:"rows"`
	Cols       int    `yaml:"cols"`
	FFTSize    int    `yaml:"fft_size"`
	File       string `yaml:"file"`
}

// Meta describes a source clip and the artifacts derived from it.
type Meta struct {
	Source     string  `yaml:"source"`
	SampleRate int     `yaml:"sample_rate"`
	Channels   int     `yaml:"channels"`
	BitDepth   int     `yaml:"bit_depth"`
	Samples    int     `yaml:"samples"`
	Artifacts  []Entry `yaml:"artifacts"`
}

// Params records the analysis settings of a run.
type Params struct {
	MinFreq      int     `yaml:"min_freq"`
	MaxFreq      int     `yaml:"max_freq"`
	NumWindows   int     `yaml:"num_windows"`
	ClipDuration float64 `yaml:"clip_duration"`
	FreqBin      int     `yaml:"freq_bin"`
	Window       string  `yaml:"window"`
	Normalize    bool    `yaml:"normalize"`
}

// ManifestFile lists the artifacts committed for one source.
type ManifestFile struct {
	Source    string  `yaml:"source"`
	Dir       string  `yaml:"dir"`
	Artifacts []Entry `yaml:"artifacts"`
}

// Failure records a source that could not be processed.
type Failure struct {
	Source string `yaml:"source"`
	Error  string `yaml:"error"`
}

// Manifest summarises a complete extraction run.
type Manifest struct {
	RunID     string         `yaml:"run_id"`
	CreatedAt time.Time      `yaml:"created_at"`
	Input     string         `yaml:"input"`
	Params    Params         `yaml:"params"`
	Rates     []int          `yaml:"rates"`
	Files     []ManifestFile `yaml:"files"`
	Skipped   []string       `yaml:"skipped,omitempty"`
	Failed    []Failure      `yaml:"failed,omitempty"`
}

// WriteMeta writes m to path.
func WriteMeta(path string, m *Meta) error { return writeYAML(path, m) }

// ReadMeta reads a meta.yaml file.
func ReadMeta(path string) (*Meta, error) {
	var m Meta
	if err := readYAML(path, &m); err != nil {
		return nil, err
	}
	return &m, nil
}

// WriteManifest writes m to path.
func WriteManifest(path string, m *Manifest) error { return writeYAML(path, m) }

// ReadManifest reads a manifest.yaml file.
func ReadManifest(path string) (*Manifest, error) {
	var m Manifest
	if err := readYAML(path, &m); err != nil {
		return nil, err
	}
	return &m, nil
}

// writeYAML encodes v to a temporary file in the target directory and renames
// it into place, so readers never observe a partial document.
func writeYAML(path string, v any) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return err
	}

	cleanup := func() {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())
	}

	enc := yaml.NewEncoder(tmp)
	enc.SetIndent(2)

	if err := enc.Encode(v); err != nil {
		cleanup()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	if err := enc.Close(); err != nil {
		cleanup()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmp.Name())
		return err
	}

	if err := os.Rename(tmp.Name(), path); err != nil {
		_ = os.Remove(tmp.Name())
		return err
	}

	return nil
}

func readYAML(path string, v any) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := yaml.NewDecoder(f).Decode(v); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	return nil
}
