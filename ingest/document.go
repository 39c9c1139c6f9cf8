package ingest

import (
	"path/filepath"
	"strings"

	"github.com/MarcoKoban/lineage/errors"
)

// Format is the serialization of a genealogy document.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
)

// DetectFormat picks the format from the file extension.
func DetectFormat(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".toml":
		return FormatTOML, nil
	default:
		return "", errors.WithHint(
			errors.NewInvalidRequestError("cannot tell the format of %s", path),
			"use a .yaml, .yml or .toml extension",
		)
	}
}

// Document is the import format. Persons are referenced by their key
// ("First.occ Surname") everywhere else in the document.
type Document struct {
	Version  string         `yaml:"version" toml:"version"`
	Calendar string         `yaml:"calendar,omitempty" toml:"calendar"` // calendar of untagged dates
	Root     string         `yaml:"root,omitempty" toml:"root"`         // key of the Sosa 1 person
	Persons  []PersonRecord `yaml:"persons" toml:"persons"`
	Families []FamilyRecord `yaml:"families" toml:"families"`
}

// PersonRecord describes one person.
type PersonRecord struct {
	Key         string       `yaml:"key" toml:"key"`
	Sex         string       `yaml:"sex,omitempty" toml:"sex"`
	Access      string       `yaml:"access,omitempty" toml:"access"`
	PublicName  string       `yaml:"public_name,omitempty" toml:"public_name"`
	Occupation  string       `yaml:"occupation,omitempty" toml:"occupation"`
	Birth       *EventRecord `yaml:"birth,omitempty" toml:"birth"`
	Baptism     *EventRecord `yaml:"baptism,omitempty" toml:"baptism"`
	DeathStatus string       `yaml:"death_status,omitempty" toml:"death_status"`
	Death       *EventRecord `yaml:"death,omitempty" toml:"death"`
	BurialKind  string       `yaml:"burial_kind,omitempty" toml:"burial_kind"`
	Burial      *EventRecord `yaml:"burial,omitempty" toml:"burial"`
	// Sosa numbers are strings so grouped forms like "1 024" survive.
	Sosa []string `yaml:"sosa,omitempty" toml:"sosa"`
}

// EventRecord is a dated, placed fact. Date is kept verbatim and parsed
// leniently; Place uses the "[suburb] - main" form.
type EventRecord struct {
	Date     string `yaml:"date,omitempty" toml:"date"`
	Calendar string `yaml:"calendar,omitempty" toml:"calendar"`
	Place    string `yaml:"place,omitempty" toml:"place"`
	Note     string `yaml:"note,omitempty" toml:"note"`
	Source   string `yaml:"source,omitempty" toml:"source"`
}

// FamilyRecord describes one union and its children.
type FamilyRecord struct {
	ID       string              `yaml:"id,omitempty" toml:"id"`
	Fathers  []string            `yaml:"fathers,omitempty" toml:"fathers"`
	Mothers  []string            `yaml:"mothers,omitempty" toml:"mothers"`
	Children []string            `yaml:"children,omitempty" toml:"children"`
	Relation string              `yaml:"relation,omitempty" toml:"relation"`
	Divorce  *DivorceRecord      `yaml:"divorce,omitempty" toml:"divorce"`
	Events   []FamilyEventRecord `yaml:"events,omitempty" toml:"events"`
	Comment  string              `yaml:"comment,omitempty" toml:"comment"`
	Sources  []string            `yaml:"sources,omitempty" toml:"sources"`
}

// DivorceRecord records how a union ended.
type DivorceRecord struct {
	Status      string `yaml:"status" toml:"status"`
	EventRecord `yaml:",inline"`
}

// FamilyEventRecord is a family event with its witnesses.
type FamilyEventRecord struct {
	Kind        string `yaml:"kind" toml:"kind"`
	EventRecord `yaml:",inline"`
	Witnesses   []WitnessRecord `yaml:"witnesses,omitempty" toml:"witnesses"`
}

// WitnessRecord names a witness by person key.
type WitnessRecord struct {
	Key  string `yaml:"key" toml:"key"`
	Kind string `yaml:"kind,omitempty" toml:"kind"`
}
