package am

import (
	"github.com/spf13/viper"
)

// Default values shared by SetDefaults and the Get* fallbacks.
const (
	DefaultMinParentAgeGap  = 10
	DefaultMaxParentAgeGap  = 80
	DefaultFormatConstraint = ">= 1.0, < 2.0"
)

// SetDefaults configures default values for all configuration options
func SetDefaults(v *viper.Viper) {
	// Relationship rules
	v.SetDefault("validation.min_parent_age_gap", DefaultMinParentAgeGap)
	v.SetDefault("validation.max_parent_age_gap", DefaultMaxParentAgeGap)

	// Calendars
	v.SetDefault("calendar.default", "gregorian")
	v.SetDefault("calendar.detect", true)
	v.SetDefault("calendar.hebrew_min_year", 5000)
	v.SetDefault("calendar.french_first_year", 1792) // An I
	v.SetDefault("calendar.french_last_year", 1805)  // abolished 1 January 1806
	v.SetDefault("calendar.julian_before_year", 1582)

	// Ingestion
	v.SetDefault("ingest.validate", true)
	v.SetDefault("ingest.max_format_version", DefaultFormatConstraint)

	v.SetDefault("log.json", false)
}

// BindEnvVars explicitly binds settings that are commonly overridden per run
func BindEnvVars(v *viper.Viper) {
	v.BindEnv("ingest.validate", "LINEAGE_INGEST_VALIDATE")
	v.BindEnv("calendar.default", "LINEAGE_CALENDAR_DEFAULT")
	v.BindEnv("log.json", "LINEAGE_LOG_JSON")
}

// GetFormatConstraint returns the configured document version constraint
func (c *Config) GetFormatConstraint() string {
	if c.Ingest.MaxFormatVersion == "" {
		return DefaultFormatConstraint
	}
	return c.Ingest.MaxFormatVersion
}
