package cmd

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ideamans/iconcollect/pkg/config"
)

// testConfigCmd represents the test-config command
var testConfigCmd = &cobra.Command{
	Use:   "test-config",
	Short: "Validate the configuration file",
	Long: `Test and validate the configuration file without collecting icons.

This command will:
- Load the configuration file from the specified path
- Report environment variables referenced without a default that are unset
- Apply defaults and command-line overrides
- Validate all fields

If the configuration is valid, the command exits with status 0.
If there are validation errors, the command exits with status 1.`,
	RunE: runTestConfig,
}

func init() {
	rootCmd.AddCommand(testConfigCmd)
}

func runTestConfig(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Testing configuration file: %s\n", cfgFile)

	if data, err := os.ReadFile(cfgFile); err == nil {
		for _, name := range config.MissingEnvVars(string(data)) {
			fmt.Fprintf(out, "! Environment variable %s is not set\n", name)
		}
	} else if cmd.Flags().Changed("config") {
		return fmt.Errorf("%w: %s", config.ErrConfigFileNotFound, cfgFile)
	} else {
		fmt.Fprintln(out, "  (file not found, using defaults)")
	}

	cfg, err := loadConfig(cfgFile, cmd.Flags().Changed("config"), flagOverrides())
	if err != nil {
		return err
	}

	fmt.Fprintln(out, "✓ Configuration validation passed")
	printSummary(cmd, cfg)
	fmt.Fprintln(out, "\n✓ Configuration is valid and ready to use")
	return nil
}

func printSummary(cmd *cobra.Command, cfg *config.Config) {
	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "\nConfiguration Summary:")
	fmt.Fprintf(out, "  Icon Root: %s\n", cfg.Icons.Root)
	fmt.Fprintf(out, "  Base Name: %s\n", cfg.Icons.BaseName)
	fmt.Fprintf(out, "  Class Prefix: %s (scale %g)\n", cfg.Preset.Prefix, cfg.Preset.Scale)
	fmt.Fprintf(out, "  Content: %s\n", strings.Join(cfg.Preset.Content, ", "))
	fmt.Fprintf(out, "  Output: %s\n", cfg.Output.Dir)

	props := make([]string, 0, len(cfg.Preset.ExtraProperties))
	for k, v := range cfg.Preset.ExtraProperties {
		props = append(props, k+": "+v)
	}
	sort.Strings(props)
	fmt.Fprintf(out, "  Extra Properties: %s\n", strings.Join(props, "; "))

	if cfg.Icons.AllowOverwrite {
		fmt.Fprintln(out, "  Key Conflicts: last directory wins")
	} else {
		fmt.Fprintln(out, "  Key Conflicts: error")
	}

	switch cfg.Cache.Type {
	case "", "none":
		fmt.Fprintln(out, "  Cache: disabled")
	case "redis":
		fmt.Fprintf(out, "  Cache: redis %s (namespace: %s)\n", cfg.Cache.Redis.Addr, cfg.Cache.Namespace)
	default:
		fmt.Fprintf(out, "  Cache: %s (namespace: %s)\n", cfg.Cache.Type, cfg.Cache.Namespace)
	}

	fmt.Fprintf(out, "  Log Level: %s\n", cfg.Logging.Level)
}
