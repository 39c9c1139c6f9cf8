package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/MarcoKoban/lineage/am"
	"github.com/MarcoKoban/lineage/cmd/lineage/commands"
	"github.com/MarcoKoban/lineage/logger"
)

var rootCmd = &cobra.Command{
	Use:   "lineage",
	Short: "lineage - Genealogy dates, Sosa numbers and family checks",
	Long: `lineage - Genealogical data toolkit.

lineage converts dates between the Gregorian, Julian, French Republican and
Hebrew calendars, works with Sosa-Stradonitz ancestor numbers, and imports
family trees from YAML or TOML documents to check them for implausible
relationships.

Available commands:
  am      - Manage lineage configuration ("I am")
  check   - Import a family document and report rule violations
  date    - Convert dates and guess their calendar
  sosa    - Inspect Sosa ancestor numbers
  version - Show version information

Examples:
  lineage sosa info 38                       # Generation and branch path of 38
  lineage sosa path FFMMF                    # Number reached by a path
  lineage date convert 1793-09-22 --to french
  lineage check family.yaml                  # Import and validate a tree
  lineage am where                           # Show where settings come from`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Keep 'am show' output clean
		if cmd.Name() == "show" {
			return nil
		}
		verbosity, _ := cmd.Flags().GetCount("verbose")
		jsonLogs, _ := cmd.Flags().GetBool("log-json")
		if !cmd.Flags().Changed("log-json") {
			jsonLogs = am.GetBool("log.json")
		}
		if err := logger.InitializeWithVerbosity(jsonLogs, verbosity); err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		logger.Debugw("logger initialized", "level", logger.LevelName(verbosity), "json", jsonLogs)
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		logger.Cleanup()
	},
}

func init() {
	// Add global flags
	rootCmd.PersistentFlags().CountP("verbose", "v", "Increase output verbosity (repeat for more detail: -v, -vv, -vvv)")
	rootCmd.PersistentFlags().Bool("log-json", false, "Emit logs as JSON (overrides log.json)")

	// Add commands
	rootCmd.AddCommand(commands.AmCmd)
	rootCmd.AddCommand(commands.CheckCmd)
	rootCmd.AddCommand(commands.DateCmd)
	rootCmd.AddCommand(commands.SosaCmd)
	rootCmd.AddCommand(commands.VersionCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
