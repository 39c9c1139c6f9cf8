package am

import (
	"github.com/Masterminds/semver/v3"

	"github.com/MarcoKoban/lineage/errors"
)

// Validate checks that the configuration is valid
func (c *Config) Validate() error {
	// Parent age gap: negative is meaningless, and the window must not be empty
	if c.Validation.MinParentAgeGap < 0 {
		return errors.Newf("validation.min_parent_age_gap must be >= 0, got %d", c.Validation.MinParentAgeGap)
	}
	if c.Validation.MaxParentAgeGap <= c.Validation.MinParentAgeGap {
		return errors.Newf("validation.max_parent_age_gap (%d) must be greater than min_parent_age_gap (%d)",
			c.Validation.MaxParentAgeGap, c.Validation.MinParentAgeGap)
	}

	if _, err := c.DefaultCalendar(); err != nil {
		return errors.Wrap(err, "calendar.default")
	}

	if c.Calendar.FrenchLastYear < c.Calendar.FrenchFirstYear {
		return errors.Newf("calendar.french_last_year (%d) precedes french_first_year (%d)",
			c.Calendar.FrenchLastYear, c.Calendar.FrenchFirstYear)
	}
	if c.Calendar.JulianBeforeYear < 0 {
		return errors.Newf("calendar.julian_before_year must be >= 0, got %d", c.Calendar.JulianBeforeYear)
	}
	if c.Calendar.HebrewMinYear <= c.Calendar.FrenchLastYear {
		return errors.Newf("calendar.hebrew_min_year (%d) must be above the French window", c.Calendar.HebrewMinYear)
	}

	if _, err := semver.NewConstraint(c.GetFormatConstraint()); err != nil {
		return errors.WithHint(
			errors.Wrapf(err, "ingest.max_format_version %q", c.Ingest.MaxFormatVersion),
			`use a semver constraint such as ">= 1.0, < 2.0"`,
		)
	}

	return nil
}
