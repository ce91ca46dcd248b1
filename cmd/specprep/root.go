package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/cwbudde/algo-specprep/internal/config"
	"github.com/cwbudde/algo-specprep/internal/logging"
	"github.com/cwbudde/algo-specprep/pipeline"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// errFilesFailed is returned when a run completed but some sources failed.
var errFilesFailed = errors.New("one or more files failed")

type rootOptions struct {
	configPath string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:   "specprep [flags] <input-dir> <output-dir>",
		Short: "Extract multi-rate magnitude spectrograms from WAV clips",
		Long: `specprep reads every .wav file in an input directory, resamples each clip
to a doubling sweep of sample rates, and writes one magnitude spectrogram per
clip and rate into a new output directory.

Running specprep without a subcommand is the same as "specprep run".`,
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExtract(cmd, opts, args)
		},
	}

	root.PersistentFlags().StringVar(&opts.configPath, "config", "", "optional YAML settings file")
	config.RegisterFlags(root.Flags())

	root.AddCommand(
		newRunCmd(opts),
		newRatesCmd(opts),
		newInspectCmd(),
		newWindowsCmd(),
	)

	return root
}

func newRunCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run [flags] <input-dir> <output-dir>",
		Short: "Process every WAV file in input-dir into output-dir",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExtract(cmd, opts, args)
		},
	}

	config.RegisterFlags(cmd.Flags())

	return cmd
}

// loadViper layers defaults, the optional config file, the environment, and
// explicitly set flags.
func loadViper(fs *pflag.FlagSet, path string) (*viper.Viper, error) {
	v := config.NewViper()
	if err := config.BindFlags(v, fs); err != nil {
		return nil, err
	}
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	}
	return v, nil
}

func runExtract(cmd *cobra.Command, opts *rootOptions, args []string) error {
	v := config.NewViper()
	if err := config.BindFlags(v, cmd.Flags()); err != nil {
		return err
	}

	v.Set("input", args[0])
	v.Set("output", args[1])

	cfg, err := config.Load(v, opts.configPath)
	if err != nil {
		return err
	}

	log, err := logging.New(cmd.ErrOrStderr(), cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return err
	}

	d, err := pipeline.NewDriver(cfg, pipeline.WithLogger(log))
	if err != nil {
		return err
	}

	sum, err := d.Run(cmd.Context())
	if err != nil {
		log.WithError(err).Error("extraction failed")
		return err
	}

	if len(sum.Failed) > 0 {
		log.WithField("failed", len(sum.Failed)).Warn("extraction finished with failures")
		return errFilesFailed
	}

	return nil
}

// executeRoot runs root and prints any error it returns, including argument
// and flag errors cobra reports before a command runs.
func executeRoot(ctx context.Context, root *cobra.Command) error {
	err := root.ExecuteContext(ctx)
	if err != nil {
		root.PrintErrln("error:", err)
	}
	return err
}
