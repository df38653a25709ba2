package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ideamans/iconcollect/pkg/usage"
)

// ErrMissingIcons is returned by check when content files use icons that
// do not exist
var ErrMissingIcons = errors.New("missing icons")

var scanDir string

// checkCmd represents the check command
var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Report icon classes that do not resolve to an icon",
	Long: `Collect the icons, then scan the content files named by preset.content
for icon classes such as i-common-arrows-left or i-common-arrows:left.

Classes whose collection exists but whose icon does not are reported and the
command exits with status 1. Classes of unknown collections are ignored.
Nothing is written to the output directory.`,
	RunE: runCheck,
}

func init() {
	checkCmd.Flags().StringVar(&scanDir, "dir", ".", "Directory the content globs are relative to")
	rootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}
	defer a.close()

	pc, err := a.collect(cmd.Context())
	if err != nil {
		return err
	}

	report, err := usage.Scan(cmd.Context(), scanDir, pc.Content.Filesystem, a.cfg.Preset.Prefix, pc.Registry)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	for _, f := range pc.Registry.Skipped() {
		fmt.Fprintf(out, "  skipped %s\n", f)
	}
	for _, ref := range report.Missing {
		fmt.Fprintf(out, "  missing %s (collection %s has no icon %q)\n", ref, ref.Collection, ref.Icon)
	}
	fmt.Fprintf(out, "Scanned %d files: %d icon references, %d missing\n",
		report.Files, len(report.Used)+len(report.Missing), len(report.Missing))

	if !report.OK() {
		return fmt.Errorf("%w: %d", ErrMissingIcons, len(report.Missing))
	}
	fmt.Fprintln(out, "✓ All icon references resolve")
	return nil
}
