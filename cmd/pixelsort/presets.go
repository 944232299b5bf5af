package main

import (
	"fmt"
	"os"
	"path/filepath"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/gogpu/pixelsort/config"
)

func newPresetsCmd() *cobra.Command {
	var dir string

	cmd := &cobra.Command{
		Use:   "presets",
		Short: "List and create parameter presets",
	}
	cmd.PersistentFlags().StringVar(&dir, "dir", defaultPresetDir(), "preset directory")

	list := &cobra.Command{
		Use:   "list",
		Short: "List the presets in the preset directory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			presets, err := config.LoadDir(dir)
			if err != nil {
				return err
			}
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "NAME\tDIRECTION\tANGLE\tKEY\tINTERVAL\tJITTER")
			for _, p := range presets {
				fmt.Fprintf(tw, "%s\t%v\t%g\t%v\t%v\t%d\n",
					p.Name, p.Params.Direction, p.Params.Angle, p.Params.Key, p.Params.Interval, p.Params.Jitter)
			}
			return tw.Flush()
		},
	}

	var flags sortFlags
	create := &cobra.Command{
		Use:   "new [flags] FILE",
		Short: "Write a preset built from the sort flags",
		Long: "Write the parameters selected by the sort flags to FILE (.toml, .yaml\n" +
			"or .yml). A bare name is created as NAME.toml in the preset directory.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := flags.params(cmd)
			if err != nil {
				return err
			}
			path, err := presetPath(args[0], dir)
			if err != nil {
				return err
			}
			name := args[0]
			if _, err := config.FormatFromPath(name); err == nil {
				name = ""
			}
			if err := config.Save(path, config.Preset{Name: name, Params: p}); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), path)
			return nil
		},
	}
	flags.register(create.Flags())

	cmd.AddCommand(list, create)
	return cmd
}

// presetPath returns ref when it names a preset file, and NAME.toml in dir
// otherwise, creating dir as needed.
func presetPath(ref, dir string) (string, error) {
	if _, err := config.FormatFromPath(ref); err == nil {
		return ref, nil
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("preset dir: %w", err)
	}
	return filepath.Join(dir, ref+".toml"), nil
}
