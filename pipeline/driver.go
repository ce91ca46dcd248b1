package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/cwbudde/algo-specprep/artifact"
	"github.com/cwbudde/algo-specprep/audio"
	"github.com/cwbudde/algo-specprep/dsp/stft"
	"github.com/cwbudde/algo-specprep/internal/config"
	"github.com/cwbudde/algo-specprep/internal/logging"
	"github.com/rs/xid"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

const stagingPrefix = ".staging-"

// Option configures a [Driver].
type Option func(*Driver)

// WithLogger sets the logger. The default discards output.
func WithLogger(l logrus.FieldLogger) Option {
	return func(d *Driver) {
		if l != nil {
			d.log = l
		}
	}
}

// WithRunID overrides the generated run identifier.
func WithRunID(id string) Option {
	return func(d *Driver) {
		if id != "" {
			d.runID = id
		}
	}
}

// WithClock overrides the time source used for the manifest timestamp.
func WithClock(now func() time.Time) Option {
	return func(d *Driver) {
		if now != nil {
			d.now = now
		}
	}
}

// Driver runs one extraction over cfg.Input into cfg.Output.
type Driver struct {
	cfg        config.Config
	params     stft.Params
	rates      []int
	workers    int
	decodeOpts []audio.Option

	log   logrus.FieldLogger
	runID string
	now   func() time.Time
}

// NewDriver validates cfg and plans the sample-rate sweep.
func NewDriver(cfg config.Config, opts ...Option) (*Driver, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	params, err := cfg.Params()
	if err != nil {
		return nil, err
	}

	d := &Driver{
		cfg:     cfg,
		params:  params,
		rates:   PlanRates(cfg.MinFreq, cfg.MaxFreq),
		workers: cfg.Workers,
		log:     logging.Discard(),
		runID:   xid.New().String(),
		now:     time.Now,
	}

	if d.workers == 0 {
		d.workers = runtime.NumCPU()
	}
	if cfg.Normalize {
		d.decodeOpts = append(d.decodeOpts, audio.WithNormalize())
	}

	for _, opt := range opts {
		if opt != nil {
			opt(d)
		}
	}

	return d, nil
}

// Rates returns a copy of the planned sample rates.
func (d *Driver) Rates() []int { return append([]int(nil), d.rates...) }

// RunID returns the run identifier.
func (d *Driver) RunID() string { return d.runID }

// job is one source file scheduled for processing.
type job struct {
	source string
	dir    string
}

// outcome is what a worker reports back for a job or a skipped entry.
type outcome struct {
	source  string
	skipped bool
	result  *FileResult
	err     error
}

// Run validates the input and output paths, processes every WAV file, and
// writes the manifest. Path validation errors are returned before anything
// is created. With fail-fast disabled, per-file failures are reported in
// the summary and Run returns nil.
func (d *Driver) Run(ctx context.Context) (*Summary, error) {
	if err := d.checkPaths(); err != nil {
		return nil, err
	}

	entries, err := os.ReadDir(d.cfg.Input)
	if err != nil {
		return nil, fmt.Errorf("read input directory: %w", err)
	}

	if err := d.createOutput(); err != nil {
		return nil, err
	}

	staging := filepath.Join(d.cfg.Output, stagingPrefix+d.runID)
	if err := os.Mkdir(staging, 0o755); err != nil {
		return nil, fmt.Errorf("create staging directory: %w", err)
	}
	defer os.RemoveAll(staging)

	if len(d.rates) == 0 {
		d.log.WithFields(logrus.Fields{
			"min_freq": d.cfg.MinFreq,
			"max_freq": d.cfg.MaxFreq,
		}).Warn("empty sample-rate sweep; only metadata will be written")
	}

	d.log.WithFields(logrus.Fields{
		"run_id":  d.runID,
		"input":   d.cfg.Input,
		"output":  d.cfg.Output,
		"rates":   d.rates,
		"workers": d.workers,
	}).Info("starting extraction")

	summary := &Summary{RunID: d.runID, Rates: d.Rates()}
	outcomes := make(chan outcome)
	collected := make(chan struct{})

	go func() {
		defer close(collected)
		for o := range outcomes {
			d.collect(summary, o)
		}
	}()

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(d.workers)

	// Generators are handed out through a free list so each is used by one
	// worker at a time.
	gens := make(chan *stft.Generator, d.workers)
	for range d.workers {
		gen, err := stft.NewGenerator(d.params)
		if err != nil {
			close(outcomes)
			<-collected
			return nil, err
		}
		gens <- gen
	}

	dirs := newDirNames(artifact.ManifestName, stagingPrefix+d.runID)

schedule:
	for _, e := range entries {
		if gctx.Err() != nil {
			break schedule
		}

		path := filepath.Join(d.cfg.Input, e.Name())

		if e.IsDir() || !audio.IsWAV(e.Name()) {
			d.log.WithField("file", path).Info("skipping non-wav entry")
			outcomes <- outcome{source: path, skipped: true}
			continue
		}

		j := job{source: path, dir: dirs.claim(audio.Stem(e.Name()))}

		g.Go(func() error {
			gen := <-gens
			defer func() { gens <- gen }()

			res, err := d.process(gctx, gen, staging, j)
			outcomes <- outcome{source: j.source, result: res, err: err}

			if err != nil && d.cfg.FailFast && !isCancel(err) {
				return fmt.Errorf("%w: %s: %w", ErrAborted, j.source, err)
			}
			return nil
		})
	}

	runErr := g.Wait()
	close(outcomes)
	<-collected

	if runErr == nil {
		runErr = ctx.Err()
	}
	if runErr != nil {
		d.log.WithError(runErr).Error("extraction stopped before completion")
		return summary, runErr
	}

	sortSummary(summary)

	if err := d.writeManifest(summary); err != nil {
		return summary, err
	}

	d.log.WithFields(logrus.Fields{
		"processed": len(summary.Processed),
		"skipped":   len(summary.Skipped),
		"failed":    len(summary.Failed),
		"artifacts": summary.Artifacts(),
	}).Info("extraction finished")

	return summary, nil
}

func (d *Driver) checkPaths() error {
	info, err := os.Stat(d.cfg.Input)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return fmt.Errorf("%w: %s", ErrInputMissing, d.cfg.Input)
	case err != nil:
		return fmt.Errorf("stat input: %w", err)
	case !info.IsDir():
		return fmt.Errorf("%w: %s", ErrInputNotDir, d.cfg.Input)
	}

	if _, err := os.Lstat(d.cfg.Output); err == nil {
		return fmt.Errorf("%w: %s", ErrOutputExists, d.cfg.Output)
	} else if !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("stat output: %w", err)
	}

	return nil
}

// createOutput creates the parents of the output directory, then the
// directory itself with a single mkdir so a concurrent creator is detected.
func (d *Driver) createOutput() error {
	out := filepath.Clean(d.cfg.Output)

	if err := os.MkdirAll(filepath.Dir(out), 0o755); err != nil {
		return fmt.Errorf("create output parent: %w", err)
	}

	if err := os.Mkdir(out, 0o755); err != nil {
		if errors.Is(err, fs.ErrExist) {
			return fmt.Errorf("%w: %s", ErrOutputExists, out)
		}
		return fmt.Errorf("create output directory: %w", err)
	}

	return nil
}

// collect runs on the collector goroutine only.
func (d *Driver) collect(s *Summary, o outcome) {
	switch {
	case o.skipped:
		s.Skipped = append(s.Skipped, o.source)
	case o.err != nil:
		if isCancel(o.err) {
			return
		}
		d.log.WithError(o.err).WithField("file", o.source).Error("file failed")
		s.Failed = append(s.Failed, FileFailure{Source: o.source, Err: o.err})
	case o.result != nil:
		s.Processed = append(s.Processed, *o.result)
	}
}

func (d *Driver) writeManifest(s *Summary) error {
	m := &artifact.Manifest{
		RunID:     s.RunID,
		CreatedAt: d.now().UTC(),
		Input:     d.cfg.Input,
		Params: artifact.Params{
			MinFreq:      d.cfg.MinFreq,
			MaxFreq:      d.cfg.MaxFreq,
			NumWindows:   d.cfg.NumWindows,
			ClipDuration: d.cfg.ClipDuration,
			FreqBin:      d.cfg.FreqBin,
			Window:       d.params.Window.String(),
			Normalize:    d.cfg.Normalize,
		},
		Rates:   s.Rates,
		Skipped: s.Skipped,
	}

	for _, r := range s.Processed {
		m.Files = append(m.Files, artifact.ManifestFile{
			Source:    r.Source,
			Dir:       r.Dir,
			Artifacts: r.Artifacts,
		})
	}
	for _, f := range s.Failed {
		m.Failed = append(m.Failed, artifact.Failure{Source: f.Source, Error: f.Err.Error()})
	}

	return artifact.WriteManifest(filepath.Join(d.cfg.Output, artifact.ManifestName), m)
}

func sortSummary(s *Summary) {
	sort.Slice(s.Processed, func(i, j int) bool { return s.Processed[i].Source < s.Processed[j].Source })
	sort.Slice(s.Failed, func(i, j int) bool { return s.Failed[i].Source < s.Failed[j].Source })
	sort.Strings(s.Skipped)
}

func isCancel(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}

// dirNames hands out collision-free output directory names. Sources whose
// stems differ only in case, or share a stem, get a numeric suffix. Reserved
// names are never handed out.
type dirNames struct {
	used map[string]bool
}

func newDirNames(reserved ...string) *dirNames {
	n := &dirNames{used: make(map[string]bool)}
	for _, r := range reserved {
		n.used[strings.ToLower(r)] = true
	}
	return n
}

func (n *dirNames) claim(stem string) string {
	if stem == "" {
		stem = "_"
	}

	name := stem
	for c := 2; n.used[strings.ToLower(name)]; c++ {
		name = stem + "_" + strconv.Itoa(c)
	}
	n.used[strings.ToLower(name)] = true
	return name
}
