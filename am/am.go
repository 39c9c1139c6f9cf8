package am

import (
	"fmt"

	"github.com/MarcoKoban/lineage/calendar"
	"github.com/MarcoKoban/lineage/genealogy"
)

// Config represents the lineage configuration
type Config struct {
	Validation ValidationConfig `mapstructure:"validation" json:"validation" toml:"validation" yaml:"validation"`
	Calendar   CalendarConfig   `mapstructure:"calendar" json:"calendar" toml:"calendar" yaml:"calendar"`
	Ingest     IngestConfig     `mapstructure:"ingest" json:"ingest" toml:"ingest" yaml:"ingest"`
	Log        LogConfig        `mapstructure:"log" json:"log" toml:"log" yaml:"log"`
}

// ValidationConfig configures the relationship plausibility rules
type ValidationConfig struct {
	MinParentAgeGap int `mapstructure:"min_parent_age_gap" json:"min_parent_age_gap" toml:"min_parent_age_gap" yaml:"min_parent_age_gap"` // youngest parent at a child's birth (default: 10)
	MaxParentAgeGap int `mapstructure:"max_parent_age_gap" json:"max_parent_age_gap" toml:"max_parent_age_gap" yaml:"max_parent_age_gap"` // oldest parent at a child's birth (default: 80)
}

// CalendarConfig configures date handling
type CalendarConfig struct {
	Default          string `mapstructure:"default" json:"default" toml:"default" yaml:"default"`                                             // calendar of untagged dates (default: gregorian)
	Detect           bool   `mapstructure:"detect" json:"detect" toml:"detect" yaml:"detect"`                                                 // guess the calendar of untagged dates from the year
	HebrewMinYear    int    `mapstructure:"hebrew_min_year" json:"hebrew_min_year" toml:"hebrew_min_year" yaml:"hebrew_min_year"`             // years above are Hebrew (default: 5000)
	FrenchFirstYear  int    `mapstructure:"french_first_year" json:"french_first_year" toml:"french_first_year" yaml:"french_first_year"`     // default: 1792
	FrenchLastYear   int    `mapstructure:"french_last_year" json:"french_last_year" toml:"french_last_year" yaml:"french_last_year"`         // default: 1805
	JulianBeforeYear int    `mapstructure:"julian_before_year" json:"julian_before_year" toml:"julian_before_year" yaml:"julian_before_year"` // years below are Julian (default: 1582)
}

// IngestConfig configures document import
type IngestConfig struct {
	Validate         bool   `mapstructure:"validate" json:"validate" toml:"validate" yaml:"validate"`                                         // run family rules after import (default: true)
	MaxFormatVersion string `mapstructure:"max_format_version" json:"max_format_version" toml:"max_format_version" yaml:"max_format_version"` // semver constraint on the document version
}

// LogConfig configures logging output
type LogConfig struct {
	JSON bool `mapstructure:"json" json:"json" toml:"json" yaml:"json"`
}

// File system constants
const (
	DefaultDirPermissions  = 0755 // Standard directory permissions (rwxr-xr-x)
	DefaultFilePermissions = 0644 // Standard file permissions (rw-r--r--)
)

// Rules returns the genealogy rule thresholds.
func (c *Config) Rules() genealogy.Rules {
	return genealogy.Rules{
		MinParentAgeGap: c.Validation.MinParentAgeGap,
		MaxParentAgeGap: c.Validation.MaxParentAgeGap,
	}
}

// DetectRules returns the calendar detection thresholds.
func (c *Config) DetectRules() calendar.DetectRules {
	return calendar.DetectRules{
		HebrewMinYear:    c.Calendar.HebrewMinYear,
		FrenchFirstYear:  c.Calendar.FrenchFirstYear,
		FrenchLastYear:   c.Calendar.FrenchLastYear,
		JulianBeforeYear: c.Calendar.JulianBeforeYear,
	}
}

// DefaultCalendar resolves calendar.default, falling back to Gregorian when unset.
func (c *Config) DefaultCalendar() (calendar.Calendar, error) {
	if c.Calendar.Default == "" {
		return calendar.Gregorian, nil
	}
	return calendar.ParseCalendar(c.Calendar.Default)
}

// String returns a string representation of the config
func (c *Config) String() string {
	return fmt.Sprintf("Config{Validation: {%d..%d}, Calendar: {Default: %s, Detect: %t}, Ingest: {Validate: %t, Version: %q}}",
		c.Validation.MinParentAgeGap, c.Validation.MaxParentAgeGap,
		c.Calendar.Default, c.Calendar.Detect,
		c.Ingest.Validate, c.Ingest.MaxFormatVersion)
}
