package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	cfgFile  string
	rootDir  string
	baseName string
	outDir   string
	logLevel string
	version  = "dev" // Set by build
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "iconcollect",
	Short: "iconcollect - SVG icon collections for utility-class icon presets",
	Long: `iconcollect scans a directory tree of SVG icons and registers every
directory as a named icon collection: the root under the base name and each
nested directory under base-dir[-subdir...].

Every icon has its colours replaced by currentColor (transparent and "none"
are kept), is optimised, and has its path data expanded again. The result is
written as Iconify JSON per collection plus the generator configuration.`,
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
	// Default to build command when no subcommand is specified
	RunE: func(cmd *cobra.Command, args []string) error {
		return buildCmd.RunE(cmd, args)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "iconcollect.yaml", "Path to configuration file (optional when it does not exist)")
	rootCmd.PersistentFlags().StringVarP(&rootDir, "root", "r", "", "Icon root directory (overrides icons.root)")
	rootCmd.PersistentFlags().StringVarP(&baseName, "base", "b", "", "Base collection name (overrides icons.base_name)")
	rootCmd.PersistentFlags().StringVarP(&outDir, "out", "o", "", "Output directory (overrides output.dir)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level: debug, info, warn, error (overrides logging.level)")
}
