package commands

import (
	"strconv"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/MarcoKoban/lineage/errors"
	"github.com/MarcoKoban/lineage/logger"
	"github.com/MarcoKoban/lineage/sosa"
)

// SosaCmd groups the ancestor number commands
var SosaCmd = &cobra.Command{
	Use:   "sosa",
	Short: "Inspect Sosa ancestor numbers",
	Long: `sosa - Sosa-Stradonitz ancestor numbers

The reference person is 1, the father of n is 2n and the mother 2n+1.

Examples:
  lineage sosa info 38                 # Generation, line and path of 38
  lineage sosa info "1 024" --format json
  lineage sosa path FFMMF              # 38`,
}

var sosaInfoCmd = &cobra.Command{
	Use:   "info <number>",
	Short: "Describe an ancestor number",
	Long: `Show the generation, line and branch path of an ancestor number,
together with the numbers of its father, mother and child.

Digit groups are accepted: "1 024", "1,024" and "1_024" all read as 1024.`,
	Args: cobra.ExactArgs(1),
	RunE: runSosaInfo,
}

var sosaPathCmd = &cobra.Command{
	Use:   "path <steps>",
	Short: "Number reached by a father/mother path",
	Long: `Walk up from the reference person and print the number reached.

Steps are F (or P) for father and M for mother, or 0 and 1.
Spaces, dashes and slashes between steps are ignored.`,
	Args: cobra.ExactArgs(1),
	RunE: runSosaPath,
}

var sosaFormat string

func init() {
	sosaInfoCmd.Flags().StringVarP(&sosaFormat, "format", "f", "table", "Output format: table, toml, json, yaml")
	sosaPathCmd.Flags().StringVarP(&sosaFormat, "format", "f", "table", "Output format: table, toml, json, yaml")

	SosaCmd.AddCommand(sosaInfoCmd)
	SosaCmd.AddCommand(sosaPathCmd)
}

// SosaInfo describes one ancestor number.
type SosaInfo struct {
	Number     string `json:"number" yaml:"number" toml:"number"`
	Formatted  string `json:"formatted" yaml:"formatted" toml:"formatted"`
	Generation int    `json:"generation" yaml:"generation" toml:"generation"`
	Line       string `json:"line" yaml:"line" toml:"line"`
	Path       string `json:"path" yaml:"path" toml:"path"`
	Father     string `json:"father,omitempty" yaml:"father,omitempty" toml:"father,omitempty"`
	Mother     string `json:"mother,omitempty" yaml:"mother,omitempty" toml:"mother,omitempty"`
	Child      string `json:"child,omitempty" yaml:"child,omitempty" toml:"child,omitempty"`
}

// describeSosa fills SosaInfo. Relatives that do not exist (the child of 1)
// or would overflow are left empty.
func describeSosa(s sosa.Sosa) (SosaInfo, error) {
	if s.IsZero() {
		return SosaInfo{}, errors.WithHint(
			errors.Wrap(errors.ErrMalformedValue, "0 is not an ancestor number"),
			"the reference person is 1",
		)
	}

	info := SosaInfo{
		Number:     s.String(),
		Formatted:  s.FormatWithSeparator(" "),
		Generation: s.Generation(),
		Path:       sosa.FormatBranchPath(s.BranchPath()),
	}
	switch {
	case s.IsRoot():
		info.Line = "root"
	case s.IsFatherLine():
		info.Line = "father"
	case s.IsMotherLine():
		info.Line = "mother"
	}

	if f, err := s.Father(); err == nil {
		info.Father = f.String()
	}
	if m, err := s.Mother(); err == nil {
		info.Mother = m.String()
	}
	if c, err := s.Child(); err == nil {
		info.Child = c.String()
	}
	return info, nil
}

func (i SosaInfo) rows() pterm.TableData {
	rows := pterm.TableData{
		{"Field", "Value"},
		{"Number", i.Formatted},
		{"Generation", strconv.Itoa(i.Generation)},
		{"Line", i.Line},
		{"Path", i.Path},
	}
	for _, r := range [][2]string{{"Father", i.Father}, {"Mother", i.Mother}, {"Child", i.Child}} {
		if r[1] != "" {
			rows = append(rows, []string{r[0], r[1]})
		}
	}
	return rows
}

func runSosaInfo(cmd *cobra.Command, args []string) error {
	s, err := sosa.Parse(args[0])
	if err != nil {
		return err
	}
	info, err := describeSosa(s)
	if err != nil {
		return err
	}
	logger.Logger.Debugw("sosa info", "number", info.Number, "generation", info.Generation)
	return render(cmd.OutOrStdout(), sosaFormat, info, "sosa "+info.Number, info.rows())
}

func runSosaPath(cmd *cobra.Command, args []string) error {
	path, err := sosa.ParseBranchPath(args[0])
	if err != nil {
		return err
	}
	s, err := sosa.FromBranchPath(path)
	if err != nil {
		return err
	}
	info, err := describeSosa(s)
	if err != nil {
		return err
	}
	return render(cmd.OutOrStdout(), sosaFormat, info, "sosa "+info.Number, info.rows())
}
