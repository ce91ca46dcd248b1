package audio

import (
	"bytes"
	"encoding/binary"
	"errors"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/cwbudde/algo-specprep/internal/testutil"
)

func TestDecodeFileMono16(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tone.wav")
	data := []int{0, 1200, -1200, 32767, -32768}
	testutil.WriteWAV(t, path, 44100, 1, 16, data)

	clip, err := DecodeFile(path)
	if err != nil {
		t.Fatalf("DecodeFile() error = %v", err)
	}

	if clip.SampleRate != 44100 || clip.Channels != 1 || clip.BitDepth != 16 {
		t.Fatalf("unexpected format: rate=%d ch=%d bits=%d", clip.SampleRate, clip.Channels, clip.BitDepth)
	}
	if clip.Path != path {
		t.Fatalf("Path = %q, want %q", clip.Path, path)
	}
	if clip.Len() != len(data) {
		t.Fatalf("Len = %d, want %d", clip.Len(), len(data))
	}
	for i, v := range data {
		if clip.Samples[i] != float64(v) {
			t.Fatalf("sample %d = %v, want %d", i, clip.Samples[i], v)
		}
	}
}

func TestDecodeNormalize(t *testing.T) {
	path := filepath.Join(t.TempDir(), "n.wav")
	testutil.WriteWAV(t, path, 8000, 1, 16, []int{16384, -32768})

	clip, err := DecodeFile(path, WithNormalize())
	if err != nil {
		t.Fatalf("DecodeFile() error = %v", err)
	}

	testutil.RequireSliceNearlyEqual(t, clip.Samples, []float64{0.5, -1}, 1e-12)
}

func TestDecodeStereoDownmix(t *testing.T) {
	path := filepath.Join(t.TempDir(), "st.wav")
	testutil.WriteWAV(t, path, 22050, 2, 16, []int{100, 300, -50, 50, 7, 7})

	clip, err := DecodeFile(path)
	if err != nil {
		t.Fatalf("DecodeFile() error = %v", err)
	}

	if clip.Channels != 2 {
		t.Fatalf("Channels = %d, want 2", clip.Channels)
	}
	testutil.RequireSliceNearlyEqual(t, clip.Samples, []float64{200, 0, 7}, 0)
}

func TestDecodeRejectsGarbage(t *testing.T) {
	_, err := Decode(bytes.NewReader([]byte("this is not a riff file at all")))
	if !errors.Is(err, ErrInvalidWAV) {
		t.Fatalf("Decode() error = %v, want ErrInvalidWAV", err)
	}

	path := filepath.Join(t.TempDir(), "fake.wav")
	if err := os.WriteFile(path, []byte("nope"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := DecodeFile(path); err == nil {
		t.Fatal("expected error decoding fake wav")
	}
}

// wavHeader returns a mono PCM stream at 8 kHz whose fmt chunk claims bits
// per sample, followed by 16 data bytes.
func wavHeader(bits uint16) []byte {
	var b bytes.Buffer
	le := binary.LittleEndian
	data := make([]byte, 16)
	blockAlign := uint16(bits / 8)

	b.WriteString("RIFF")
	_ = binary.Write(&b, le, uint32(36+len(data)))
	b.WriteString("WAVE")
	b.WriteString("fmt ")
	_ = binary.Write(&b, le, uint32(16))
	_ = binary.Write(&b, le, uint16(1))
	_ = binary.Write(&b, le, uint16(1))
	_ = binary.Write(&b, le, uint32(8000))
	_ = binary.Write(&b, le, uint32(8000)*uint32(blockAlign))
	_ = binary.Write(&b, le, blockAlign)
	_ = binary.Write(&b, le, bits)
	b.WriteString("data")
	_ = binary.Write(&b, le, uint32(len(data)))
	b.Write(data)

	return b.Bytes()
}

func TestDecodeRejectsOversizedBitDepth(t *testing.T) {
	_, err := Decode(bytes.NewReader(wavHeader(64)), WithNormalize())
	if !errors.Is(err, ErrInvalidWAV) {
		t.Fatalf("Decode() error = %v, want ErrInvalidWAV", err)
	}
	if !strings.Contains(err.Error(), "bits=64") {
		t.Fatalf("error %q does not name the bit depth", err)
	}
}

func TestScaleForBitDepths(t *testing.T) {
	for _, bits := range []int{8, 16, 24, maxBitDepth} {
		s := scaleFor(bits, true)
		if math.IsInf(s, 0) || s <= 0 {
			t.Fatalf("scaleFor(%d) = %v", bits, s)
		}
	}
	if scaleFor(64, false) != 1 {
		t.Fatal("raw amplitude must not be scaled")
	}
}

func TestDecodeFileMissing(t *testing.T) {
	_, err := DecodeFile(filepath.Join(t.TempDir(), "absent.wav"))
	if !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("error = %v, want os.ErrNotExist", err)
	}
}

func TestClipHelpers(t *testing.T) {
	c := &Clip{SampleRate: 4, Samples: make([]float64, 10)}
	if d := c.DurationSeconds(); math.Abs(d-2.5) > 1e-12 {
		t.Fatalf("DurationSeconds = %v, want 2.5", d)
	}

	for name, want := range map[string]bool{
		"a.wav":        true,
		"B.WAV":        true,
		"c.Wav":        true,
		"d.mp3":        false,
		"wav":          false,
		"dir/e.wav.gz": false,
	} {
		if got := IsWAV(name); got != want {
			t.Fatalf("IsWAV(%q) = %v, want %v", name, got, want)
		}
	}

	if s := Stem("/data/fold1/dog_bark.wav"); s != "dog_bark" {
		t.Fatalf("Stem = %q", s)
	}
}
