package genealogy

import (
	"strings"

	"github.com/MarcoKoban/lineage/errors"
)

// enumNames maps the textual form used in documents and CLI output.
type enumNames[T ~int] map[T]string

func (n enumNames[T]) name(v T) string {
	if s, ok := n[v]; ok {
		return s
	}
	return "unknown"
}

func (n enumNames[T]) parse(kind, s string) (T, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	for v, name := range n {
		if name == key {
			return v, nil
		}
	}
	var zero T
	return zero, errors.NewInvalidRequestError("unknown %s %q", kind, s)
}

// Sex of a person.
type Sex int

const (
	SexUnknown Sex = iota
	Male
	Female
)

var sexNames = enumNames[Sex]{SexUnknown: "unknown", Male: "male", Female: "female"}

func (s Sex) String() string { return sexNames.name(s) }

// ParseSex reads "male", "female" or "unknown"; the empty string is unknown.
func ParseSex(s string) (Sex, error) {
	if strings.TrimSpace(s) == "" {
		return SexUnknown, nil
	}
	return sexNames.parse("sex", s)
}

// Access controls who may see a person's record.
type Access int

const (
	// IfTitles: public only when the person holds a title.
	IfTitles Access = iota
	Public
	SemiPublic
	Private
)

var accessNames = enumNames[Access]{IfTitles: "if_titles", Public: "public", SemiPublic: "semi_public", Private: "private"}

func (a Access) String() string { return accessNames.name(a) }

func ParseAccess(s string) (Access, error) {
	if strings.TrimSpace(s) == "" {
		return IfTitles, nil
	}
	return accessNames.parse("access", s)
}

// DeathStatus records what is known about a person's death.
type DeathStatus int

const (
	NotDead DeathStatus = iota
	Dead
	DeadYoung
	DeadDontKnowWhen
	DontKnowIfDead
	// OfCourseDead: born long enough ago that death is certain.
	OfCourseDead
)

var deathNames = enumNames[DeathStatus]{
	NotDead:          "not_dead",
	Dead:             "dead",
	DeadYoung:        "dead_young",
	DeadDontKnowWhen: "dead_dont_know_when",
	DontKnowIfDead:   "dont_know_if_dead",
	OfCourseDead:     "of_course_dead",
}

func (d DeathStatus) String() string { return deathNames.name(d) }

// ParseDeathStatus reads a status name; the empty string is DontKnowIfDead.
func ParseDeathStatus(s string) (DeathStatus, error) {
	if strings.TrimSpace(s) == "" {
		return DontKnowIfDead, nil
	}
	return deathNames.parse("death status", s)
}

// BurialKind distinguishes burial from cremation.
type BurialKind int

const (
	BurialUnknown BurialKind = iota
	Buried
	Cremated
)

var burialNames = enumNames[BurialKind]{BurialUnknown: "unknown", Buried: "buried", Cremated: "cremated"}

func (b BurialKind) String() string { return burialNames.name(b) }

func ParseBurialKind(s string) (BurialKind, error) {
	if strings.TrimSpace(s) == "" {
		return BurialUnknown, nil
	}
	return burialNames.parse("burial kind", s)
}

// Relation is the kind of union a family records.
type Relation int

const (
	Married Relation = iota
	NotMarried
	Engaged
	NoSexesCheckNotMarried
	NoMention
	NoSexesCheckMarried
	MarriageBann
	MarriageContract
	MarriageLicense
	Pacs
	Residence
)

var relationNames = enumNames[Relation]{
	Married:                "married",
	NotMarried:             "not_married",
	Engaged:                "engaged",
	NoSexesCheckNotMarried: "no_sexes_check_not_married",
	NoMention:              "no_mention",
	NoSexesCheckMarried:    "no_sexes_check_married",
	MarriageBann:           "marriage_bann",
	MarriageContract:       "marriage_contract",
	MarriageLicense:        "marriage_license",
	Pacs:                   "pacs",
	Residence:              "residence",
}

func (r Relation) String() string { return relationNames.name(r) }

func ParseRelation(s string) (Relation, error) {
	if strings.TrimSpace(s) == "" {
		return Married, nil
	}
	return relationNames.parse("relation", s)
}

// DivorceStatus records whether a union ended.
type DivorceStatus int

const (
	NotDivorced DivorceStatus = iota
	Divorced
	Separated
	// SeparatedOld: separation recorded before civil divorce existed.
	SeparatedOld
)

var divorceNames = enumNames[DivorceStatus]{
	NotDivorced:  "not_divorced",
	Divorced:     "divorced",
	Separated:    "separated",
	SeparatedOld: "separated_old",
}

func (d DivorceStatus) String() string { return divorceNames.name(d) }

func ParseDivorceStatus(s string) (DivorceStatus, error) {
	if strings.TrimSpace(s) == "" {
		return NotDivorced, nil
	}
	return divorceNames.parse("divorce status", s)
}

// WitnessKind is the role a witness played at a family event.
type WitnessKind int

const (
	Witness WitnessKind = iota
	GodParent
	CivilOfficer
	ReligiousOfficer
	Informant
	Attended
	Mentioned
	OtherWitness
)

var witnessNames = enumNames[WitnessKind]{
	Witness:          "witness",
	GodParent:        "godparent",
	CivilOfficer:     "civil_officer",
	ReligiousOfficer: "religious_officer",
	Informant:        "informant",
	Attended:         "attended",
	Mentioned:        "mentioned",
	OtherWitness:     "other",
}

func (w WitnessKind) String() string { return witnessNames.name(w) }

func ParseWitnessKind(s string) (WitnessKind, error) {
	if strings.TrimSpace(s) == "" {
		return Witness, nil
	}
	return witnessNames.parse("witness kind", s)
}
