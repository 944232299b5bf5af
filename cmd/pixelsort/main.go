// Command pixelsort sorts the pixels of image files from the command line.
//
//	pixelsort sort -k hue -i edges in.png -o out.png
//	pixelsort sort --preset melt --out-dir sorted/ *.jpg
//	pixelsort watch --preset melt.toml in.png -o preview.png
//	pixelsort presets list
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/gogpu/pixelsort"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var logLevel string

	root := &cobra.Command{
		Use:           "pixelsort",
		Short:         "Sort the pixels of images by color",
		Version:       pixelsort.Version,
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return setupLogging(cmd, logLevel)
		},
	}
	root.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "log level (debug, info, warn, error)")

	root.AddCommand(newSortCmd(), newWatchCmd(), newPresetsCmd())
	return root
}

func setupLogging(cmd *cobra.Command, level string) error {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return fmt.Errorf("--log-level: %w", err)
	}
	h := slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: lvl})
	pixelsort.SetLogger(slog.New(h))
	return nil
}
