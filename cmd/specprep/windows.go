package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/cwbudde/algo-specprep/dsp/window"
	"github.com/spf13/cobra"
)

type windowsOptions struct {
	size     int
	periodic bool
}

func newWindowsCmd() *cobra.Command {
	opts := &windowsOptions{}

	cmd := &cobra.Command{
		Use:   "windows [flags] [window-name ...]",
		Short: "Print spectral properties of the analysis windows",
		Long: `windows prints the gain, bandwidth and leakage figures of each supported
analysis window. Without arguments every window is listed.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.size < 2 {
				return fmt.Errorf("size must be >= 2: %d", opts.size)
			}

			names := args
			if len(names) == 0 {
				names = window.Names()
			}

			types := make([]window.Type, 0, len(names))
			for _, n := range names {
				t, err := window.Parse(n)
				if err != nil {
					return err
				}
				types = append(types, t)
			}

			var wopts []window.Option
			if opts.periodic {
				wopts = append(wopts, window.WithPeriodic())
			}

			return printWindows(cmd.OutOrStdout(), types, opts.size, wopts)
		},
	}

	cmd.Flags().IntVar(&opts.size, "size", 256, "window length in samples (the FFT size of a run)")
	cmd.Flags().BoolVar(&opts.periodic, "periodic", false, "use the periodic form instead of symmetric")

	return cmd
}

func printWindows(w io.Writer, types []window.Type, size int, opts []window.Option) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	if _, err := fmt.Fprintf(tw, "Window\tSize\tCoherent Gain\tENBW [bins]\tBW 3dB [bins]\tSidelobe [dB]\t1st Min [bins]\tScallop [dB]\n"); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	if _, err := fmt.Fprintf(tw, "------\t----\t-------------\t-----------\t-------------\t-------------\t--------------\t------------\n"); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	for _, t := range types {
		a := window.AnalyzeType(t, size, opts...)
		if _, err := fmt.Fprintf(tw, "%s\t%d\t%.6f\t%.4f\t%.4f\t%.2f\t%.4f\t%.4f\n",
			t,
			size,
			a.CoherentGain,
			a.ENBW,
			a.Bandwidth3dB,
			a.HighestSidelobedB,
			a.FirstMinimum,
			a.ScallopLossdB,
		); err != nil {
			return fmt.Errorf("write row: %w", err)
		}
	}

	return tw.Flush()
}
