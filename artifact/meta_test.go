package artifact

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestMetaRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), MetaName)
	in := &Meta{
		Source:     "/data/dog.wav",
		SampleRate: 44100,
		Channels:   1,
		BitDepth:   16,
		Samples:    44100,
		Artifacts: []Entry{
			{SampleRate: 2048, Rows: 166, Cols: 128, FFTSize: 256, File: "2048hz.spgm"},
		},
	}

	if err := WriteMeta(path, in); err != nil {
		t.Fatalf("WriteMeta() error = %v", err)
	}

	out, err := ReadMeta(path)
	if err != nil {
		t.Fatalf("ReadMeta() error = %v", err)
	}

	if out.Source != in.Source || out.Samples != in.Samples || len(out.Artifacts) != 1 {
		t.Fatalf("ReadMeta = %+v", out)
	}
	if out.Artifacts[0] != in.Artifacts[0] {
		t.Fatalf("entry = %+v, want %+v", out.Artifacts[0], in.Artifacts[0])
	}
}

func TestManifestYAMLKeys(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ManifestName)
	m := &Manifest{
		RunID:     "run1",
		CreatedAt: time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
		Input:     "in",
		Params:    Params{MinFreq: 2048, MaxFreq: 8192, NumWindows: 168, ClipDuration: 4, FreqBin: 128, Window: "hann"},
		Rates:     []int{2048, 4096, 8192},
		Failed:    []Failure{{Source: "bad.wav", Error: "boom"}},
	}

	if err := WriteManifest(path, m); err != nil {
		t.Fatalf("WriteManifest() error = %v", err)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	for _, key := range []string{"run_id: run1", "min_freq: 2048", "clip_duration: 4", "failed:"} {
		if !strings.Contains(string(raw), key) {
			t.Fatalf("manifest missing %q:\n%s", key, raw)
		}
	}
	if strings.Contains(string(raw), "skipped:") {
		t.Fatalf("empty skipped list should be omitted:\n%s", raw)
	}

	got, err := ReadManifest(path)
	if err != nil {
		t.Fatalf("ReadManifest() error = %v", err)
	}
	if !got.CreatedAt.Equal(m.CreatedAt) || len(got.Rates) != 3 || got.Failed[0].Error != "boom" {
		t.Fatalf("ReadManifest = %+v", got)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Fatalf("temporary files left behind: %v", entries)
	}
}
