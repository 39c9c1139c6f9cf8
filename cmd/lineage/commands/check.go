package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/MarcoKoban/lineage/am"
	"github.com/MarcoKoban/lineage/calendar"
	"github.com/MarcoKoban/lineage/errors"
	"github.com/MarcoKoban/lineage/ingest"
	"github.com/MarcoKoban/lineage/logger"
)

// CheckCmd imports a family document and reports rule violations
var CheckCmd = &cobra.Command{
	Use:   "check <file>",
	Short: "Import a family document and report rule violations",
	Long: `Import a YAML or TOML family document, number ancestors from its root
and check every family against the relationship rules.

The command exits with a non-zero status when violations are found.

Examples:
  lineage check family.yaml
  lineage check family.toml --json          # Machine-readable report
  lineage check family.yaml --calendar julian
  lineage check family.yaml --no-validate   # Import only`,
	Args: cobra.ExactArgs(1),
	RunE: runCheck,
}

var (
	checkJSON       bool
	checkNoValidate bool
	checkCalendar   string
)

// ErrViolationsFound is returned by check when the tree breaks a rule.
var ErrViolationsFound = errors.New("rule violations found")

func init() {
	CheckCmd.Flags().BoolVarP(&checkJSON, "json", "j", false, "Output the report as JSON")
	CheckCmd.Flags().BoolVar(&checkNoValidate, "no-validate", false, "Skip the relationship rules")
	CheckCmd.Flags().StringVar(&checkCalendar, "calendar", "", "Calendar of untagged dates (overrides calendar.default)")
}

func runCheck(cmd *cobra.Command, args []string) error {
	cfg, err := am.Load()
	if err != nil {
		return errors.Wrap(err, "failed to load config")
	}
	if err := cfg.Validate(); err != nil {
		return errors.Wrap(err, "configuration validation failed")
	}

	opts, err := ingest.OptionsFromConfig(cfg)
	if err != nil {
		return err
	}
	if checkNoValidate {
		opts.Validate = false
	}
	if checkCalendar != "" {
		if opts.DefaultCalendar, err = calendar.ParseCalendar(checkCalendar); err != nil {
			return err
		}
	}

	proc, err := ingest.NewProcessor(opts, logger.ChildLogger(logger.ComponentLogger("ingest"), logger.FieldOperation, "check"))
	if err != nil {
		return err
	}
	result, err := proc.ProcessFile(args[0])
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if checkJSON {
		data, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal report to JSON: %w", err)
		}
		fmt.Fprintln(out, string(data))
	} else if err := writeCheckReport(out, result); err != nil {
		return err
	}

	if result.HasViolations() {
		return errors.Wrapf(ErrViolationsFound, "%d in %s", result.Violations, args[0])
	}
	return nil
}

// writeCheckReport prints a human-readable summary of an import.
func writeCheckReport(w io.Writer, r *ingest.Result) error {
	summary := pterm.TableData{
		{"Source", r.Source},
		{"Format", fmt.Sprintf("%s %s", r.Format, r.Version)},
		{"Persons", fmt.Sprint(r.PersonsImported)},
		{"Families", fmt.Sprint(r.FamiliesImported)},
		{"Sosa numbered", fmt.Sprint(r.SosaNumbered)},
		{"Duration", r.EndTime.Sub(r.StartTime).String()},
	}
	table, err := pterm.DefaultTable.WithData(summary).Srender()
	if err != nil {
		return fmt.Errorf("failed to render table: %w", err)
	}
	fmt.Fprintln(w, table)

	if len(r.UndecodedKeys) > 0 {
		fmt.Fprintf(w, "\nUnknown keys ignored: %s\n", strings.Join(r.UndecodedKeys, ", "))
	}

	if len(r.DateWarnings) > 0 {
		fmt.Fprintf(w, "\nDates partly parsed (%d):\n", len(r.DateWarnings))
		rows := pterm.TableData{{"Person", "Event", "Text", "Calendar"}}
		for _, dw := range r.DateWarnings {
			rows = append(rows, []string{dw.Owner, string(dw.Event), dw.Text, dw.Calendar})
		}
		if err := renderTable(w, rows); err != nil {
			return err
		}
	}

	if !r.Validated {
		fmt.Fprintln(w, "\nValidation skipped")
		return nil
	}
	if !r.HasViolations() {
		fmt.Fprintln(w, "\n✓ No rule violations")
		return nil
	}

	fmt.Fprintf(w, "\n✗ %d rule violations:\n", r.Violations)
	rows := pterm.TableData{{"Family", "Rule", "Message"}}
	for _, fam := range r.Families {
		for _, v := range fam.Violations {
			rows = append(rows, []string{fam.Ref, string(v.Rule), v.Message})
		}
	}
	return renderTable(w, rows)
}
