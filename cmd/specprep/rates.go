package main

import (
	"fmt"

	"github.com/cwbudde/algo-specprep/internal/config"
	"github.com/cwbudde/algo-specprep/pipeline"
	"github.com/spf13/cobra"
)

func newRatesCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rates [--min-freq N] [--max-freq N]",
		Short: "Print the sample-rate sweep a run would use",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			v, err := loadViper(cmd.Flags(), opts.configPath)
			if err != nil {
				return err
			}

			rates := pipeline.PlanRates(v.GetInt("min_freq"), v.GetInt("max_freq"))

			out := cmd.OutOrStdout()
			if len(rates) == 0 {
				_, err := fmt.Fprintln(out, "no rates: min-freq exceeds max-freq")
				return err
			}
			for _, r := range rates {
				if _, err := fmt.Fprintln(out, r); err != nil {
					return err
				}
			}
			return nil
		},
	}

	d := config.Default()
	cmd.Flags().Int("min-freq", d.MinFreq, "lowest target sample rate in Hz")
	cmd.Flags().Int("max-freq", d.MaxFreq, "highest target sample rate in Hz")

	return cmd
}
