package commands

import (
	"bytes"
	"encoding/json"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MarcoKoban/lineage/am"
	"github.com/MarcoKoban/lineage/calendar"
	"github.com/MarcoKoban/lineage/errors"
	"github.com/MarcoKoban/lineage/sosa"
	"github.com/MarcoKoban/lineage/version"
)

func init() {
	pterm.DisableStyling()
}

// isolateConfig points the config cascade at empty directories.
func isolateConfig(t *testing.T) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	chdir(t, t.TempDir())
	am.Reset()
	t.Cleanup(am.Reset)
}

// execute runs cmd and returns what it wrote to stdout. Cobra's error and
// usage output goes to a separate buffer so reports stay parseable.
func execute(t *testing.T, cmd *cobra.Command, args ...string) (string, error) {
	t.Helper()
	var out, stderr bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	t.Cleanup(func() {
		cmd.SetOut(nil)
		cmd.SetErr(nil)
		cmd.SetArgs(nil)
	})
	err := cmd.Execute()
	return out.String(), err
}

func TestDescribeSosa(t *testing.T) {
	info, err := describeSosa(sosa.New(38))
	require.NoError(t, err)
	assert.Equal(t, SosaInfo{
		Number:     "38",
		Formatted:  "38",
		Generation: 6,
		Line:       "father",
		Path:       "FFMMF",
		Father:     "76",
		Mother:     "77",
		Child:      "19",
	}, info)

	root, err := describeSosa(sosa.Root)
	require.NoError(t, err)
	assert.Equal(t, "root", root.Line)
	assert.Equal(t, "", root.Path)
	assert.Equal(t, "", root.Child)
	assert.Equal(t, "2", root.Father)

	mother, err := describeSosa(sosa.New(1025))
	require.NoError(t, err)
	assert.Equal(t, "mother", mother.Line)
	assert.Equal(t, "1 025", mother.Formatted)
	assert.Equal(t, 11, mother.Generation)
}

func TestDescribeSosaEdges(t *testing.T) {
	_, err := describeSosa(sosa.Zero)
	assert.True(t, errors.IsMalformedValueError(err))

	top, err := describeSosa(sosa.New(math.MaxUint64))
	require.NoError(t, err)
	assert.Empty(t, top.Father)
	assert.Empty(t, top.Mother)
	assert.Equal(t, 64, top.Generation)
}

func TestRender(t *testing.T) {
	info, err := describeSosa(sosa.New(38))
	require.NoError(t, err)

	tests := []struct {
		format string
		want   []string
	}{
		{"json", []string{`"number": "38"`, `"generation": 6`}},
		{"yaml", []string{"# sosa 38", "generation: 6", "path: FFMMF"}},
		{"toml", []string{"# sosa 38", "generation = 6", "path = 'FFMMF'"}},
		{"table", []string{"Generation", "FFMMF", "76"}},
	}
	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, render(&buf, tt.format, info, "sosa 38", info.rows()))
			for _, want := range tt.want {
				assert.Contains(t, buf.String(), want)
			}
		})
	}

	var buf bytes.Buffer
	assert.Error(t, render(&buf, "xml", info, "sosa 38", nil))
}

func TestRenderTableWithoutRowsFallsBackToTOML(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, render(&buf, "table", map[string]int{"n": 1}, "plain", nil))
	assert.Equal(t, "# plain\nn = 1\n", buf.String())
}

func TestSosaCommands(t *testing.T) {
	t.Cleanup(func() { sosaFormat = "table" })

	out, err := execute(t, SosaCmd, "info", "1 024", "--format", "json")
	require.NoError(t, err)
	var info SosaInfo
	require.NoError(t, json.Unmarshal([]byte(out), &info))
	assert.Equal(t, "1024", info.Number)
	assert.Equal(t, "FFFFFFFFFF", info.Path)

	out, err = execute(t, SosaCmd, "path", "F-F-M-M-F", "--format", "json")
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal([]byte(out), &info))
	assert.Equal(t, "38", info.Number)

	_, err = execute(t, SosaCmd, "path", "FXM")
	assert.True(t, errors.IsMalformedValueError(err))

	_, err = execute(t, SosaCmd, "info", "--", "-3")
	assert.True(t, errors.Is(err, errors.ErrNegativeSosa))
}

func TestConvertDate(t *testing.T) {
	conv := calendar.NewConverter()

	got, err := convertDate(conv, "0001-01-01", calendar.French, calendar.Gregorian)
	require.NoError(t, err)
	assert.Equal(t, "1792-09-22", got.Result)
	assert.Equal(t, calendar.FrenchEpoch, got.SDN)
	assert.Equal(t, "french", got.From)

	got, err = convertDate(conv, "1793-09-22", calendar.Gregorian, calendar.French)
	require.NoError(t, err)
	assert.Equal(t, "0002-01-06 (french)", got.Result)

	_, err = convertDate(conv, "1850-02", calendar.Gregorian, calendar.Julian)
	assert.True(t, errors.Is(err, errors.ErrIncompleteDate))

	_, err = convertDate(conv, "1850-xx-01", calendar.Gregorian, calendar.Julian)
	assert.True(t, errors.IsMalformedValueError(err))

	_, err = convertDate(conv, "  ", calendar.Gregorian, calendar.Julian)
	assert.True(t, errors.Is(err, errors.ErrInvalidRequest))
}

func TestDetectDate(t *testing.T) {
	conv := calendar.NewConverter()

	got, err := detectDate(conv, "5610-01-01")
	require.NoError(t, err)
	assert.Equal(t, "hebrew", got.Period)
	assert.Equal(t, "hebrew", got.ReadAs)
	assert.Equal(t, "1849-01-01", got.Gregorian)

	got, err = detectDate(conv, "1650")
	require.NoError(t, err)
	assert.Equal(t, "gregorian", got.Period)
	assert.Equal(t, "1650", got.Gregorian)

	strict := calendar.NewConverter(calendar.WithDetectRules(calendar.DetectRules{
		HebrewMinYear:    5000,
		FrenchFirstYear:  1792,
		FrenchLastYear:   1805,
		JulianBeforeYear: 1700,
	}))
	got, err = detectDate(strict, "1650-03-01")
	require.NoError(t, err)
	assert.Equal(t, "julian", got.Period)
	assert.Equal(t, "1650-03-11", got.Gregorian)
}

func TestDetectRepublicanPeriodDate(t *testing.T) {
	conv := calendar.NewConverter()

	got, err := detectDate(conv, "1800-03-01")
	require.NoError(t, err)
	assert.Equal(t, "french", got.Period)
	assert.Equal(t, "gregorian", got.ReadAs)
	assert.Contains(t, got.Resolved, "(french)")
	assert.Equal(t, "1800-03-01", got.Gregorian)

	got, err = detectDate(conv, "1800")
	require.NoError(t, err)
	assert.Equal(t, "french", got.Period)
	assert.Equal(t, "gregorian", got.ReadAs)
	assert.Equal(t, "1800", got.Gregorian)
}

func TestDateConvertUsesConfiguredCalendar(t *testing.T) {
	isolateConfig(t)
	t.Setenv("LINEAGE_CALENDAR_DEFAULT", "french")
	t.Cleanup(func() { dateFrom, dateTo, dateFormat = "", "gregorian", "table" })

	out, err := execute(t, DateCmd, "convert", "0001-01-01", "--format", "json")
	require.NoError(t, err)

	var conv DateConversion
	require.NoError(t, json.Unmarshal([]byte(out), &conv))
	assert.Equal(t, "french", conv.From)
	assert.Equal(t, "1792-09-22", conv.Result)
}

func TestWriteSettingsBySource(t *testing.T) {
	settings := []am.SettingInfo{
		{Key: "calendar.default", Value: "julian", Source: am.SourceProject, SourcePath: "/work/lineage.toml"},
		{Key: "log.json", Value: false, Source: am.SourceDefault, SourcePath: "built-in default"},
		{Key: "ingest.validate", Value: false, Source: am.SourceEnvironment, SourcePath: "LINEAGE_INGEST_VALIDATE"},
		{Key: "validation.min_parent_age_gap", Value: 12, Source: am.SourceUser, SourcePath: "/home/u/.lineage/am.toml"},
	}

	var buf bytes.Buffer
	writeSettingsBySource(&buf, settings)
	out := buf.String()

	order := []string{
		"default: 1 settings",
		"user: 1 settings from /home/u/.lineage/am.toml",
		"project: 1 settings from /work/lineage.toml",
		"environment: 1 settings from environment variables",
		"ingest.validate = false (LINEAGE_INGEST_VALIDATE)",
	}
	last := -1
	for _, want := range order {
		idx := strings.Index(out, want)
		require.GreaterOrEqual(t, idx, 0, "missing %q in:\n%s", want, out)
		assert.Greater(t, idx, last, "%q out of order", want)
		last = idx
	}
}

func TestAmCommands(t *testing.T) {
	isolateConfig(t)
	t.Cleanup(func() { configFormat = "toml" })

	out, err := execute(t, AmCmd, "get", "validation.max_parent_age_gap")
	require.NoError(t, err)
	assert.Equal(t, "80\n", out)

	_, err = execute(t, AmCmd, "get", "no.such.key")
	assert.Error(t, err)

	out, err = execute(t, AmCmd, "set", "validation.max_parent_age_gap", "70")
	require.NoError(t, err)
	assert.Contains(t, out, "validation.max_parent_age_gap = 70")

	out, err = execute(t, AmCmd, "show", "--format", "json")
	require.NoError(t, err)
	var cfg am.Config
	require.NoError(t, json.Unmarshal([]byte(out), &cfg))
	assert.Equal(t, 70, cfg.Validation.MaxParentAgeGap)

	out, err = execute(t, AmCmd, "validate")
	require.NoError(t, err)
	assert.Contains(t, out, "Configuration is valid")

	out, err = execute(t, AmCmd, "where")
	require.NoError(t, err)
	assert.Contains(t, out, "/etc/lineage/config.toml")
	assert.Contains(t, out, "user: 1 settings from "+am.UserConfigPath())
}

func TestAmSetRejectsInvalidConfig(t *testing.T) {
	isolateConfig(t)

	_, err := execute(t, AmCmd, "set", "validation.min_parent_age_gap", "90")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "now invalid")
}

func resetCheckFlags(t *testing.T) {
	t.Cleanup(func() {
		checkJSON, checkNoValidate, checkCalendar = false, false, ""
	})
}

func testdata(t *testing.T, name string) string {
	t.Helper()
	path, err := filepath.Abs(filepath.Join("..", "..", "..", "ingest", "testdata", name))
	require.NoError(t, err)
	return path
}

func TestCheckReportsViolations(t *testing.T) {
	path := testdata(t, "violations.yaml")
	isolateConfig(t)
	resetCheckFlags(t)

	out, err := execute(t, CheckCmd, path)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrViolationsFound))
	assert.Contains(t, out, "4 rule violations")
	assert.Contains(t, out, "parent_age_gap")
	assert.Contains(t, out, "marriage_dates")
	assert.Contains(t, out, "bernard")
}

func TestCheckJSON(t *testing.T) {
	path := testdata(t, "violations.yaml")
	isolateConfig(t)
	resetCheckFlags(t)

	out, err := execute(t, CheckCmd, path, "--json")
	require.Error(t, err)
	assert.NotContains(t, out, "Error:")

	var report struct {
		PersonsImported int  `json:"persons_imported"`
		Validated       bool `json:"validated"`
		Violations      int  `json:"violations"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	assert.Equal(t, 3, report.PersonsImported)
	assert.True(t, report.Validated)
	assert.Equal(t, 4, report.Violations)
}

func TestCheckWithoutValidation(t *testing.T) {
	path := testdata(t, "violations.yaml")
	isolateConfig(t)
	resetCheckFlags(t)

	out, err := execute(t, CheckCmd, path, "--no-validate")
	require.NoError(t, err)
	assert.Contains(t, out, "Validation skipped")
}

func TestCheckCleanTree(t *testing.T) {
	path := testdata(t, "family.yaml")
	isolateConfig(t)
	resetCheckFlags(t)

	out, err := execute(t, CheckCmd, path)
	require.NoError(t, err)
	assert.Contains(t, out, "No rule violations")
	assert.Contains(t, out, "Dates partly parsed (1)")
	assert.Contains(t, out, "Marie Durand")
}

func TestCheckRejectsBadCalendarFlag(t *testing.T) {
	path := testdata(t, "family.yaml")
	isolateConfig(t)
	resetCheckFlags(t)

	_, err := execute(t, CheckCmd, path, "--calendar", "mayan")
	assert.True(t, errors.Is(err, errors.ErrInvalidRequest))
}

func TestVersionCommand(t *testing.T) {
	t.Cleanup(func() { require.NoError(t, VersionCmd.Flags().Set("json", "false")) })

	out, err := execute(t, VersionCmd, "--json")
	require.NoError(t, err)
	assert.Contains(t, out, `"go_version"`)
	assert.Contains(t, out, `"document_format": "`+version.DocumentFormat+`"`)
	require.NoError(t, VersionCmd.Flags().Set("json", "false"))

	out, err = execute(t, VersionCmd)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "lineage "))
	assert.Contains(t, out, "Document format: "+version.DocumentFormat)
}

// chdir changes the working directory for the duration of the test,
// mirroring testing.T.Chdir (Go 1.24+) on older toolchains.
func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { require.NoError(t, os.Chdir(prev)) })
}
