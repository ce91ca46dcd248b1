package pipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/cwbudde/algo-specprep/artifact"
	"github.com/cwbudde/algo-specprep/audio"
	"github.com/cwbudde/algo-specprep/dsp/stft"
	"github.com/sirupsen/logrus"
)

// process decodes one source, writes every per-rate artifact and the
// metadata file into a private staging directory, and renames it into the
// output directory. Nothing is visible under the output until the rename.
func (d *Driver) process(ctx context.Context, gen *stft.Generator, staging string, j job) (*FileResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	log := d.log.WithField("file", j.source)

	clip, err := audio.DecodeFile(j.source, d.decodeOpts...)
	if err != nil {
		return nil, err
	}

	tmp, err := os.MkdirTemp(staging, j.dir+"-*")
	if err != nil {
		return nil, fmt.Errorf("create staging directory: %w", err)
	}

	committed := false
	defer func() {
		if !committed {
			_ = os.RemoveAll(tmp)
		}
	}()

	entries := make([]artifact.Entry, 0, len(d.rates))

	for _, rate := range d.rates {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		sg, err := gen.Generate(clip, rate)
		if err != nil {
			return nil, fmt.Errorf("rate %d: %w", rate, err)
		}

		name := artifact.FileName(rate)
		if err := artifact.WriteFile(filepath.Join(tmp, name), sg); err != nil {
			return nil, fmt.Errorf("rate %d: %w", rate, err)
		}

		entries = append(entries, artifact.Entry{
			SampleRate: rate,
			Rows:       sg.Buckets(),
			Cols:       sg.Bins,
			FFTSize:    sg.FFTSize,
			File:       name,
		})

		log.WithFields(logrus.Fields{
			"rate": rate,
			"rows": sg.Buckets(),
		}).Debug("spectrogram written")
	}

	meta := &artifact.Meta{
		Source:     j.source,
		SampleRate: clip.SampleRate,
		Channels:   clip.Channels,
		BitDepth:   clip.BitDepth,
		Samples:    clip.Len(),
		Artifacts:  entries,
	}
	if err := artifact.WriteMeta(filepath.Join(tmp, artifact.MetaName), meta); err != nil {
		return nil, err
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	dst := filepath.Join(d.cfg.Output, j.dir)
	if err := os.Rename(tmp, dst); err != nil {
		return nil, fmt.Errorf("commit %s: %w", j.dir, err)
	}
	committed = true

	log.WithFields(logrus.Fields{
		"dir":       j.dir,
		"artifacts": len(entries),
	}).Info("file processed")

	return &FileResult{
		Source:     j.source,
		Dir:        j.dir,
		SampleRate: clip.SampleRate,
		Samples:    clip.Len(),
		Artifacts:  entries,
	}, nil
}
