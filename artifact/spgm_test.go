package artifact

import (
	"bytes"
	"errors"
	"path/filepath"
	"testing"

	"github.com/cwbudde/algo-specprep/dsp/stft"
)

func sampleSpectrogram() *stft.Spectrogram {
	return &stft.Spectrogram{
		Rows: [][]float64{
			{0, 1.5, 2},
			{3, 4, 5.25},
		},
		Bins:       3,
		SampleRate: 4096,
		FFTSize:    6,
	}
}

func TestWriteReadRoundTrip(t *testing.T) {
	sg := sampleSpectrogram()

	var buf bytes.Buffer
	if err := Write(&buf, sg); err != nil {
		t.Fatalf("Write() error = %v", err)
	}

	if got, want := buf.Len(), headerSize+2*3*4; got != want {
		t.Fatalf("encoded size = %d, want %d", got, want)
	}
	if string(buf.Bytes()[:4]) != Magic {
		t.Fatalf("magic = %q", buf.Bytes()[:4])
	}

	f, err := Read(&buf)
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}

	if f.Rows != 2 || f.Cols != 3 || f.SampleRate != 4096 || f.FFTSize != 6 || f.Version != Version {
		t.Fatalf("header = %+v", f.Header)
	}

	for i, row := range sg.Rows {
		got := f.Row(i)
		for k, v := range row {
			if float64(got[k]) != v {
				t.Fatalf("row %d bin %d = %v, want %v", i, k, got[k], v)
			}
		}
	}
}

func TestWriteEmptySpectrogram(t *testing.T) {
	sg := &stft.Spectrogram{Bins: 128, SampleRate: 2048, FFTSize: 256}

	path := filepath.Join(t.TempDir(), FileName(2048))
	if err := WriteFile(path, sg); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	f, err := ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	if f.Rows != 0 || f.Cols != 128 || len(f.Data) != 0 {
		t.Fatalf("unexpected empty artifact: %+v", f.Header)
	}
}

func TestWriteRejectsRaggedRows(t *testing.T) {
	sg := sampleSpectrogram()
	sg.Rows[1] = sg.Rows[1][:2]

	if err := Write(&bytes.Buffer{}, sg); !errors.Is(err, ErrCorrupt) {
		t.Fatalf("Write() error = %v, want ErrCorrupt", err)
	}
}

func TestReadErrors(t *testing.T) {
	var good bytes.Buffer
	if err := Write(&good, sampleSpectrogram()); err != nil {
		t.Fatal(err)
	}
	raw := good.Bytes()

	badMagic := append([]byte("NOPE"), raw[4:]...)

	badVersion := append([]byte(nil), raw...)
	badVersion[4] = 9

	tests := []struct {
		name string
		data []byte
		want error
	}{
		{"short header", raw[:10], ErrCorrupt},
		{"bad magic", badMagic, ErrBadMagic},
		{"bad version", badVersion, ErrVersion},
		{"truncated payload", raw[:len(raw)-3], ErrCorrupt},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := Read(bytes.NewReader(tc.data)); !errors.Is(err, tc.want) {
				t.Fatalf("Read() error = %v, want %v", err, tc.want)
			}
		})
	}
}

func TestFileName(t *testing.T) {
	if got := FileName(8192); got != "8192hz.spgm" {
		t.Fatalf("FileName = %q", got)
	}
}
