package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// buildCmd represents the build command
var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Collect icons and write the output directory",
	Long: `Collect every icon collection below the icon root and write them.

The output directory receives:
- <key>.json for every collection, in Iconify JSON format
- uno.config.json with the content globs and the preset list

Collection files left over from an earlier build whose directory is gone
are removed.`,
	RunE: runBuild,
}

func init() {
	rootCmd.AddCommand(buildCmd)
}

func runBuild(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}
	defer a.close()

	pc, result, err := a.build(cmd.Context())
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	for _, key := range pc.Registry.Keys() {
		entry, _ := pc.Registry.Get(key)
		fmt.Fprintf(out, "  %-32s %3d icons  %s\n", key, entry.Len(), entry.Dir)
	}
	for _, f := range pc.Registry.Skipped() {
		fmt.Fprintf(out, "  skipped %s\n", f)
	}
	for _, name := range result.Removed {
		fmt.Fprintf(out, "  removed %s\n", name)
	}
	fmt.Fprintf(out, "✓ %d collections written to %s\n", pc.Registry.Len(), a.cfg.Output.Dir)
	return nil
}
