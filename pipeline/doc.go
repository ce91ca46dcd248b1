// Package pipeline drives batch spectrogram extraction over a directory of
// WAV files.
//
// A [Driver] plans the sample-rate sweep once, then hands each WAV file to a
// bounded pool of workers. A worker decodes its file, generates one
// spectrogram per planned rate with its own [stft.Generator], writes the
// artifacts into a private staging directory, and renames that directory
// into the output tree as a unit. Outcomes travel over a channel to a single
// collector, which owns the run summary.
//
// Per-file failures are logged and recorded, and the run continues unless
// fail-fast is configured. A manifest.yaml is written only when the run
// finishes; its absence marks an interrupted or aborted run.
package pipeline
