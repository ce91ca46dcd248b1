package testutil

import (
	"os"
	"testing"

	goaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

// WriteWAV writes interleaved integer PCM data as a WAV file at path.
func WriteWAV(t *testing.T, path string, sampleRate, channels, bitDepth int, data []int) {
	t.Helper()

	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create %s: %v", path, err)
	}

	enc := wav.NewEncoder(f, sampleRate, bitDepth, channels, 1)
	buf := &goaudio.IntBuffer{
		Format: &goaudio.Format{
			NumChannels: channels,
			SampleRate:  sampleRate,
		},
		Data:           data,
		SourceBitDepth: bitDepth,
	}

	if err := enc.Write(buf); err != nil {
		_ = f.Close()
		t.Fatalf("encode %s: %v", path, err)
	}
	if err := enc.Close(); err != nil {
		_ = f.Close()
		t.Fatalf("finalize %s: %v", path, err)
	}
	if err := f.Close(); err != nil {
		t.Fatalf("close %s: %v", path, err)
	}
}

// WriteSilentWAV writes a mono 16-bit WAV of n zero samples.
func WriteSilentWAV(t *testing.T, path string, sampleRate, n int) {
	t.Helper()
	WriteWAV(t, path, sampleRate, 1, 16, make([]int, n))
}
