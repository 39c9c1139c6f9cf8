package genealogy

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MarcoKoban/lineage/calendar"
	"github.com/MarcoKoban/lineage/errors"
	"github.com/MarcoKoban/lineage/event"
	"github.com/MarcoKoban/lineage/sosa"
)

func TestPersonDeathStatus(t *testing.T) {
	tests := []struct {
		status  DeathStatus
		alive   bool
		dead    bool
		unknown bool
	}{
		{NotDead, true, false, false},
		{Dead, false, true, false},
		{DeadYoung, false, true, false},
		{DeadDontKnowWhen, false, true, false},
		{OfCourseDead, false, true, false},
		{DontKnowIfDead, false, false, true},
	}
	for _, tt := range tests {
		t.Run(tt.status.String(), func(t *testing.T) {
			p := newPerson(0, Key{FirstName: "Paul", Surname: "Martin"})
			p.SetDeath(tt.status, event.New(event.Death))
			assert.Equal(t, tt.alive, p.IsAlive())
			assert.Equal(t, tt.dead, p.IsDead())
			assert.Equal(t, tt.unknown, p.DeathStatusUnknown())
		})
	}
}

func TestPersonYearsAcrossCalendars(t *testing.T) {
	p := newPerson(0, Key{FirstName: "David", Surname: "Levy"})
	p.SetBirth(event.New(event.Birth).WithDate(calendar.NewDate(calendar.Hebrew, 5610, 1, 1)))
	p.SetDeath(Dead, event.New(event.Death).WithDate(calendar.NewDate(calendar.Gregorian, 1900, 6, 1)))

	y, ok := p.BirthYear()
	require.True(t, ok)
	assert.Equal(t, 5610, y, "birth year is kept as recorded")

	span, ok := p.Lifespan()
	require.True(t, ok)
	assert.Equal(t, 51, span)

	age, ok := p.AgeAt(1870)
	require.True(t, ok)
	assert.Equal(t, 21, age)

	_, ok = p.AgeAt(1800)
	assert.False(t, ok)
}

func TestPersonYearsFromRawText(t *testing.T) {
	p := newPerson(0, Key{FirstName: "Paul", Surname: "Martin"})
	ev, report := event.New(event.Birth).WithDateFromString("vers 1850", calendar.Gregorian)
	assert.False(t, report.OK())
	p.SetBirth(ev)

	_, ok := p.BirthYear()
	assert.False(t, ok)
	age, ok := p.AgeAt(1900)
	require.True(t, ok)
	assert.Equal(t, 50, age)

	_, ok = p.Lifespan()
	assert.False(t, ok)
}

func TestPersonSosaNumbers(t *testing.T) {
	p := newPerson(0, Key{FirstName: "Paul", Surname: "Martin"})
	assert.True(t, p.PrimarySosa().IsZero())

	assert.False(t, p.AddSosa(sosa.Zero))
	assert.True(t, p.AddSosa(sosa.New(12)))
	assert.True(t, p.AddSosa(sosa.New(5)))
	assert.False(t, p.AddSosa(sosa.New(12)))
	assert.True(t, p.AddSosa(sosa.New(40)))

	assert.Equal(t, []sosa.Sosa{sosa.New(5), sosa.New(12), sosa.New(40)}, p.Sosas())
	assert.Equal(t, sosa.New(5), p.PrimarySosa())
	assert.True(t, p.HasSosa(sosa.New(40)))
	assert.False(t, p.HasSosa(sosa.New(6)))
}

func TestPersonEqualityIsByKey(t *testing.T) {
	a := newPerson(0, Key{FirstName: "Paul", Surname: "Martin"})
	b := newPerson(7, Key{FirstName: "Paul", Surname: "Martin"})
	c := newPerson(0, Key{FirstName: "Paul", Surname: "Martin", Occ: 1})

	assert.True(t, a.Equal(b))
	assert.False(t, a.Equal(c))
	assert.False(t, a.Equal(nil))
}

func TestKeyString(t *testing.T) {
	tests := []struct {
		key  Key
		want string
	}{
		{Key{FirstName: "Jean", Surname: "Dupont"}, "Jean Dupont"},
		{Key{FirstName: "Jean", Surname: "Dupont", Occ: 2}, "Jean.2 Dupont"},
		{Key{FirstName: "Jean Pierre", Surname: "Dupont"}, "Jean Pierre.0 Dupont"},
		{Key{FirstName: "Jean", Surname: "de La Fontaine"}, "Jean de La Fontaine"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.key.String())

			back, err := ParseKey(tt.want)
			require.NoError(t, err)
			assert.Equal(t, tt.key, back)
		})
	}
}

func TestParseKeyRejectsMalformed(t *testing.T) {
	for _, s := range []string{"", "Dupont", "  Jean  "} {
		_, err := ParseKey(s)
		assert.True(t, errors.IsMalformedValueError(err), "ParseKey(%q)", s)
	}
}

func TestParseEnums(t *testing.T) {
	sex, err := ParseSex(" Female ")
	require.NoError(t, err)
	assert.Equal(t, Female, sex)

	status, err := ParseDeathStatus("")
	require.NoError(t, err)
	assert.Equal(t, DontKnowIfDead, status)

	rel, err := ParseRelation("no_sexes_check_married")
	require.NoError(t, err)
	assert.Equal(t, NoSexesCheckMarried, rel)

	div, err := ParseDivorceStatus("separated_old")
	require.NoError(t, err)
	assert.Equal(t, SeparatedOld, div)

	w, err := ParseWitnessKind("godparent")
	require.NoError(t, err)
	assert.Equal(t, GodParent, w)

	access, err := ParseAccess("semi_public")
	require.NoError(t, err)
	assert.Equal(t, SemiPublic, access)

	burial, err := ParseBurialKind("cremated")
	require.NoError(t, err)
	assert.Equal(t, Cremated, burial)

	_, err = ParseRelation("handfasting")
	assert.True(t, errors.Is(err, errors.ErrInvalidRequest))

	for r := Married; r <= Residence; r++ {
		back, err := ParseRelation(r.String())
		require.NoError(t, err)
		assert.Equal(t, r, back)
	}
	assert.Equal(t, "unknown", Relation(99).String())
}

func TestFamilyStatus(t *testing.T) {
	f := &Family{}
	assert.True(t, f.IsMarried())
	assert.False(t, f.IsDivorced())

	f.SetRelation(NotMarried)
	assert.False(t, f.IsMarried())
	f.SetRelation(NoSexesCheckMarried)
	assert.True(t, f.IsMarried())

	f.SetDivorce(Divorce{Status: Separated})
	assert.True(t, f.IsDivorced())

	f.AddSource("parish register")
	f.SetComment("second marriage")
	assert.Equal(t, []string{"parish register"}, f.Sources())
	assert.Equal(t, "second marriage", f.Comment())
}
