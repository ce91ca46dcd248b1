package main

import (
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/cwbudde/algo-specprep/artifact"
	"github.com/cwbudde/algo-specprep/dsp/spectrum"
	"github.com/cwbudde/algo-specprep/stats/frequency"
	"github.com/spf13/cobra"
)

func newInspectCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "inspect <file.spgm|dir>",
		Short: "Summarise stored spectrograms",
		Long: `inspect prints the shape of each spectrogram artifact and shape descriptors
of its time-averaged spectrum. A directory is searched recursively.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			paths, err := collectArtifacts(args[0])
			if err != nil {
				return err
			}
			if len(paths) == 0 {
				return fmt.Errorf("no %s files under %s", artifact.Ext, args[0])
			}
			return printArtifacts(cmd.OutOrStdout(), paths)
		},
	}
}

func collectArtifacts(root string) ([]string, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return []string{root}, nil
	}

	var paths []string
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.EqualFold(filepath.Ext(path), artifact.Ext) {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Strings(paths)
	return paths, nil
}

func printArtifacts(w io.Writer, paths []string) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	if _, err := fmt.Fprintf(tw, "File\tRate [Hz]\tRows\tCols\tFFT\tPeak Bin\tPeak [Hz]\tCentroid [Hz]\tRolloff [Hz]\tFlatness\n"); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	if _, err := fmt.Fprintf(tw, "----\t---------\t----\t----\t---\t--------\t---------\t-------------\t------------\t--------\n"); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	for _, p := range paths {
		f, err := artifact.ReadFile(p)
		if err != nil {
			return fmt.Errorf("%s: %w", p, err)
		}

		binHz := spectrum.BinFrequency(1, int(f.FFTSize), float64(f.SampleRate))
		feat := frequency.Describe(frequency.Mean(rows(f)), binHz)

		peakHz := 0.0
		if feat.PeakBin >= 0 {
			peakHz = spectrum.BinFrequency(feat.PeakBin, int(f.FFTSize), float64(f.SampleRate))
		}

		if _, err := fmt.Fprintf(tw, "%s\t%d\t%d\t%d\t%d\t%d\t%.1f\t%.1f\t%.1f\t%.4f\n",
			p,
			f.SampleRate,
			f.Rows,
			f.Cols,
			f.FFTSize,
			feat.PeakBin,
			peakHz,
			feat.Centroid,
			feat.Rolloff,
			feat.Flatness,
		); err != nil {
			return fmt.Errorf("write row: %w", err)
		}
	}

	return tw.Flush()
}

// rows widens the stored float32 matrix to float64 rows.
func rows(f *artifact.File) [][]float64 {
	out := make([][]float64, f.Rows)
	for i := range out {
		r := f.Row(i)
		row := make([]float64, len(r))
		for k, v := range r {
			row[k] = float64(v)
		}
		out[i] = row
	}
	return out
}
