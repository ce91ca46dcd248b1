package artifact

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
	"os"

	"github.com/cwbudde/algo-specprep/dsp/stft"
)

const (
	// Magic identifies a spectrogram artifact.
	Magic = "SPGM"
	// Version is the current format version.
	Version = 1
	// Ext is the artifact file extension.
	Ext = ".spgm"

	headerSize = 24
	maxValues  = 1 << 28
)

var (
	// ErrBadMagic indicates the stream does not start with [Magic].
	ErrBadMagic = errors.New("artifact: bad magic")
	// ErrVersion indicates an unsupported format version.
	ErrVersion = errors.New("artifact: unsupported version")
	// ErrCorrupt indicates an inconsistent header or truncated payload.
	ErrCorrupt = errors.New("artifact: corrupt file")
)

// Header describes the shape and origin of a stored spectrogram.
type Header struct {
	Version    uint16
	Rows       uint32
	Cols       uint32
	SampleRate uint32
	FFTSize    uint32
}

// File is a decoded artifact.
type File struct {
	Header
	// Data holds Rows*Cols magnitudes in row-major order.
	Data []float32
}

// Row returns row i of the magnitude matrix.
func (f *File) Row(i int) []float32 {
	c := int(f.Cols)
	return f.Data[i*c : (i+1)*c]
}

// FileName returns the artifact name for a sample rate, e.g. "2048hz.spgm".
func FileName(rate int) string {
	return fmt.Sprintf("%dhz%s", rate, Ext)
}

// Write encodes sg to w.
func Write(w io.Writer, sg *stft.Spectrogram) error {
	if sg.Bins < 0 || sg.SampleRate < 0 || sg.FFTSize < 0 {
		return fmt.Errorf("%w: negative dimension", ErrCorrupt)
	}

	bw := bufio.NewWriter(w)

	var hdr [headerSize]byte
	copy(hdr[0:4], Magic)
	binary.LittleEndian.PutUint16(hdr[4:6], Version)
	binary.LittleEndian.PutUint32(hdr[8:12], uint32(len(sg.Rows)))
	binary.LittleEndian.PutUint32(hdr[12:16], uint32(sg.Bins))
	binary.LittleEndian.PutUint32(hdr[16:20], uint32(sg.SampleRate))
	binary.LittleEndian.PutUint32(hdr[20:24], uint32(sg.FFTSize))

	if _, err := bw.Write(hdr[:]); err != nil {
		return err
	}

	var word [4]byte
	for i, row := range sg.Rows {
		if len(row) != sg.Bins {
			return fmt.Errorf("%w: row %d has %d bins, want %d", ErrCorrupt, i, len(row), sg.Bins)
		}
		for _, v := range row {
			binary.LittleEndian.PutUint32(word[:], math.Float32bits(float32(v)))
			if _, err := bw.Write(word[:]); err != nil {
				return err
			}
		}
	}

	return bw.Flush()
}

// Read decodes an artifact from r.
func Read(r io.Reader) (*File, error) {
	br := bufio.NewReader(r)

	var hdr [headerSize]byte
	if _, err := io.ReadFull(br, hdr[:]); err != nil {
		return nil, fmt.Errorf("%w: header: %w", ErrCorrupt, err)
	}

	if string(hdr[0:4]) != Magic {
		return nil, ErrBadMagic
	}

	h := Header{
		Version:    binary.LittleEndian.Uint16(hdr[4:6]),
		Rows:       binary.LittleEndian.Uint32(hdr[8:12]),
		Cols:       binary.LittleEndian.Uint32(hdr[12:16]),
		SampleRate: binary.LittleEndian.Uint32(hdr[16:20]),
		FFTSize:    binary.LittleEndian.Uint32(hdr[20:24]),
	}

	if h.Version != Version {
		return nil, fmt.Errorf("%w: %d", ErrVersion, h.Version)
	}

	n := uint64(h.Rows) * uint64(h.Cols)
	if n > maxValues {
		return nil, fmt.Errorf("%w: %dx%d exceeds size limit", ErrCorrupt, h.Rows, h.Cols)
	}

	payload := make([]byte, 4*n)
	if _, err := io.ReadFull(br, payload); err != nil {
		return nil, fmt.Errorf("%w: payload: %w", ErrCorrupt, err)
	}

	data := make([]float32, n)
	for i := range data {
		data[i] = math.Float32frombits(binary.LittleEndian.Uint32(payload[4*i:]))
	}

	return &File{Header: h, Data: data}, nil
}

// WriteFile writes sg to path, creating or truncating it.
func WriteFile(path string, sg *stft.Spectrogram) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}

	if err := Write(f, sg); err != nil {
		_ = f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}

	return f.Close()
}

// ReadFile reads the artifact at path.
func ReadFile(path string) (*File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	af, err := Read(f)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	return af, nil
}
