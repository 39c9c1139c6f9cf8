package commands

import (
	"fmt"
	"io"
	"sort"

	"github.com/spf13/cobra"

	"github.com/MarcoKoban/lineage/am"
)

// AmCmd represents the am (configuration) command
var AmCmd = &cobra.Command{
	Use:   "am",
	Short: "Manage lineage configuration",
	Long: `am - Manage lineage configuration ("I am")

Display and manage validation thresholds, calendar handling and import
settings.

Configuration sources (in order of precedence):
1. Environment variables (LINEAGE_* prefix)
2. Project config (./am.toml or ./lineage.toml, searched upwards)
3. User config (~/.lineage/am.toml)
4. System config (/etc/lineage/config.toml)
5. Default values

Examples:
  lineage am show                                  # Show current configuration
  lineage am show --format json                    # Show configuration in JSON format
  lineage am get validation.max_parent_age_gap     # Get specific config value
  lineage am set calendar.default julian           # Store a value in ~/.lineage/am.toml
  lineage am validate                              # Validate current configuration`,
}

var amShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current configuration",
	Long:  "Display the current lineage configuration from all sources",
	RunE:  runAmShow,
}

var amGetCmd = &cobra.Command{
	Use:   "get <key>",
	Short: "Get a specific configuration value",
	Long:  "Get a specific configuration value using dot notation (e.g., calendar.default, validation.min_parent_age_gap)",
	Args:  cobra.ExactArgs(1),
	RunE:  runAmGet,
}

var amSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Store a configuration value in the user config",
	Long: `Store a value in ~/.lineage/am.toml using dot notation.

The previous file is kept as am.toml.back1 (up to three backups).
Values that read as booleans or integers are stored typed.`,
	Args: cobra.ExactArgs(2),
	RunE: runAmSet,
}

var amValidateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate current configuration",
	Long:  "Validate that the current lineage configuration is valid",
	RunE:  runAmValidate,
}

var amWhereCmd = &cobra.Command{
	Use:   "where",
	Short: "Show where configuration is loaded from",
	Long: `Show the configuration cascade and the source of every setting.

Lists all configuration sources in order of precedence, then each
effective setting grouped by the file or variable it came from.`,
	RunE: runAmWhere,
}

var configFormat string

func init() {
	amShowCmd.Flags().StringVar(&configFormat, "format", "toml", "Output format: toml, json, yaml")

	AmCmd.AddCommand(amShowCmd)
	AmCmd.AddCommand(amGetCmd)
	AmCmd.AddCommand(amSetCmd)
	AmCmd.AddCommand(amValidateCmd)
	AmCmd.AddCommand(amWhereCmd)
}

func runAmShow(cmd *cobra.Command, args []string) error {
	cfg, err := am.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	return render(cmd.OutOrStdout(), configFormat, cfg, "lineage configuration", nil)
}

func runAmGet(cmd *cobra.Command, args []string) error {
	key := args[0]

	v := am.GetViper()
	if !v.IsSet(key) {
		return fmt.Errorf("configuration key %q not found", key)
	}

	fmt.Fprintln(cmd.OutOrStdout(), am.Get(key))
	return nil
}

func runAmSet(cmd *cobra.Command, args []string) error {
	if err := am.SetUserValue(args[0], args[1]); err != nil {
		return fmt.Errorf("failed to store %s: %w", args[0], err)
	}
	// Drop the cached config so later reads in this process see the new value
	am.Reset()

	cfg, err := am.Load()
	if err != nil {
		return fmt.Errorf("stored %s but the configuration no longer loads: %w", args[0], err)
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("stored %s but the configuration is now invalid: %w", args[0], err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "✓ %s = %s (%s)\n", args[0], args[1], am.UserConfigPath())
	return nil
}

func runAmValidate(cmd *cobra.Command, args []string) error {
	cfg, err := am.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration validation failed: %w", err)
	}

	fmt.Fprintln(cmd.OutOrStdout(), "✓ Configuration is valid")
	return nil
}

func runAmWhere(cmd *cobra.Command, args []string) error {
	intro, err := am.GetConfigIntrospection()
	if err != nil {
		return fmt.Errorf("failed to get config introspection: %w", err)
	}

	w := cmd.OutOrStdout()
	fmt.Fprintln(w, "Configuration cascade (later overrides earlier):")
	fmt.Fprintln(w, "  1. [DEFAULT]  Built-in defaults")
	fmt.Fprintln(w, "  2. [SYSTEM]   /etc/lineage/config.toml")
	fmt.Fprintln(w, "  3. [USER]     ~/.lineage/am.toml")
	fmt.Fprintln(w, "  4. [PROJECT]  ./am.toml or ./lineage.toml (searches up directories)")
	fmt.Fprintln(w, "  5. [ENV]      LINEAGE_* environment variables")
	fmt.Fprintln(w)

	writeSettingsBySource(w, intro.Settings)
	return nil
}

// writeSettingsBySource prints settings grouped by file, in cascade order.
func writeSettingsBySource(w io.Writer, settings []am.SettingInfo) {
	type fileGroup struct {
		source   am.ConfigSource
		path     string
		settings []am.SettingInfo
	}

	settingsByPath := make(map[string]*fileGroup)
	for _, setting := range settings {
		key := setting.SourcePath
		if key == "" || setting.Source == am.SourceEnvironment {
			// Defaults and env vars group by source
			key = string(setting.Source)
		}

		if group, exists := settingsByPath[key]; exists {
			group.settings = append(group.settings, setting)
		} else {
			settingsByPath[key] = &fileGroup{
				source:   setting.Source,
				path:     setting.SourcePath,
				settings: []am.SettingInfo{setting},
			}
		}
	}

	sourceOrder := []am.ConfigSource{
		am.SourceDefault,
		am.SourceSystem,
		am.SourceUser,
		am.SourceProject,
		am.SourceEnvironment,
	}

	fmt.Fprintln(w, "Active configuration:")
	for _, source := range sourceOrder {
		var groups []*fileGroup
		for _, group := range settingsByPath {
			if group.source == source && len(group.settings) > 0 {
				groups = append(groups, group)
			}
		}
		sort.Slice(groups, func(i, j int) bool { return groups[i].path < groups[j].path })

		for _, group := range groups {
			switch source {
			case am.SourceDefault:
				fmt.Fprintf(w, "\n%s: %d settings\n", source, len(group.settings))
			case am.SourceEnvironment:
				fmt.Fprintf(w, "\n%s: %d settings from environment variables\n", source, len(group.settings))
			default:
				fmt.Fprintf(w, "\n%s: %d settings from %s\n", source, len(group.settings), group.path)
			}

			for _, setting := range group.settings {
				valueStr := fmt.Sprintf("%v", setting.Value)
				if len(valueStr) > 50 {
					valueStr = valueStr[:47] + "..."
				}
				if source == am.SourceEnvironment {
					fmt.Fprintf(w, "  %s = %s (%s)\n", setting.Key, valueStr, setting.SourcePath)
				} else {
					fmt.Fprintf(w, "  %s = %s\n", setting.Key, valueStr)
				}
			}
		}
	}
}
