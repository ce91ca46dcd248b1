package audio

import (
	"errors"
	"fmt"
	"io"
	"os"

	goaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

const (
	wavFormatPCM        = 1
	wavFormatExtensible = 0xFFFE
)

var (
	// ErrInvalidWAV indicates the input is not a readable RIFF/WAVE file.
	ErrInvalidWAV = errors.New("audio: invalid wav file")
	// ErrUnsupportedFormat indicates a WAV encoding other than integer PCM.
	ErrUnsupportedFormat = errors.New("audio: unsupported wav encoding")
)

// Option configures decoding.
type Option func(*decodeConfig)

type decodeConfig struct {
	normalize bool
}

// WithNormalize scales integer samples into [-1, 1) by their bit depth.
func WithNormalize() Option {
	return func(c *decodeConfig) {
		c.normalize = true
	}
}

// DecodeFile opens and decodes the WAV file at path.
func DecodeFile(path string, opts ...Option) (*Clip, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	clip, err := Decode(f, opts...)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}

	clip.Path = path

	return clip, nil
}

// Decode reads a complete WAV stream from r.
func Decode(r io.ReadSeeker, opts ...Option) (*Clip, error) {
	var cfg decodeConfig

	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	d := wav.NewDecoder(r)
	if !d.IsValidFile() {
		if err := d.Err(); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidWAV, err)
		}
		return nil, ErrInvalidWAV
	}

	if d.WavAudioFormat != wavFormatPCM && d.WavAudioFormat != wavFormatExtensible {
		return nil, fmt.Errorf("%w: format tag %d", ErrUnsupportedFormat, d.WavAudioFormat)
	}

	if d.SampleRate == 0 || d.NumChans == 0 || d.BitDepth == 0 || d.BitDepth > maxBitDepth {
		return nil, fmt.Errorf("%w: rate=%d channels=%d bits=%d",
			ErrInvalidWAV, d.SampleRate, d.NumChans, d.BitDepth)
	}

	buf, err := d.FullPCMBuffer()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidWAV, err)
	}

	channels := int(d.NumChans)
	bitDepth := int(d.BitDepth)

	return &Clip{
		SampleRate: int(d.SampleRate),
		Channels:   channels,
		BitDepth:   bitDepth,
		Samples:    downmix(buf, channels, scaleFor(bitDepth, cfg.normalize)),
	}, nil
}

// maxBitDepth bounds the PCM widths go-audio decodes into int samples.
const maxBitDepth = 32

func scaleFor(bitDepth int, normalize bool) float64 {
	if !normalize {
		return 1
	}
	return 1 / float64(int64(1)<<(bitDepth-1))
}

// downmix averages interleaved frames to mono. A trailing partial frame is
// dropped.
func downmix(buf *goaudio.IntBuffer, channels int, scale float64) []float64 {
	frames := len(buf.Data) / channels
	out := make([]float64, frames)

	if channels == 1 {
		for i := range out {
			out[i] = float64(buf.Data[i]) * scale
		}
		return out
	}

	inv := 1 / float64(channels)
	for i := range out {
		sum := 0.0
		for _, v := range buf.Data[i*channels : (i+1)*channels] {
			sum += float64(v)
		}
		out[i] = sum * inv * scale
	}

	return out
}
