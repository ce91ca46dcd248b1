// Command specprep turns a directory of WAV clips into multi-rate magnitude
// spectrograms.
//
// Usage:
//
//	specprep [flags] <input-dir> <output-dir>
//	specprep run [flags] <input-dir> <output-dir>
//	specprep rates [--min-freq N] [--max-freq N]
//	specprep inspect <file.spgm|dir>
//
// Every flag may also be set through a SPECPREP_* environment variable or a
// YAML file passed with --config.
//
// Examples:
//
//	specprep ./clips ./features
//	specprep run --workers 4 --fail-fast ./clips ./features
//	SPECPREP_MIN_FREQ=1024 specprep rates
//	specprep inspect ./features/dog-bark
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	root := newRootCmd()
	if err := executeRoot(ctx, root); err != nil {
		stop()
		os.Exit(1)
	}
}
