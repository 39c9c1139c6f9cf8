package genealogy

import (
	"sort"

	"github.com/MarcoKoban/lineage/event"
	"github.com/MarcoKoban/lineage/sosa"
)

// PersonID indexes a person in its Tree.
type PersonID int

// Person is an individual in the tree.
//
// Invariants:
//   - Identity is the Key; the Tree refuses a second person with the same key.
//   - Family links (as parent, as child) are written only by the Tree so the
//     family side and the person side always agree.
//   - Sosa numbers are unique; the primary number is the smallest positive one.
type Person struct {
	id  PersonID
	key Key

	sex        Sex
	access     Access
	publicName string
	occupation string

	birth       event.Event
	baptism     event.Event
	deathStatus DeathStatus
	death       event.Event
	burialKind  BurialKind
	burial      event.Event

	sosas   []sosa.Sosa
	primary sosa.Sosa

	asParent []FamilyID
	asChild  []FamilyID
}

func newPerson(id PersonID, key Key) *Person {
	return &Person{
		id:          id,
		key:         key,
		deathStatus: DontKnowIfDead,
		birth:       event.New(event.Birth),
		baptism:     event.New(event.Baptism),
		death:       event.New(event.Death),
		burial:      event.New(event.Burial),
	}
}

func (p *Person) ID() PersonID { return p.id }
func (p *Person) Key() Key     { return p.key }

// Equal compares identity keys.
func (p *Person) Equal(o *Person) bool {
	return p != nil && o != nil && p.key == o.key
}

func (p *Person) String() string { return p.key.String() }

func (p *Person) Sex() Sex                 { return p.sex }
func (p *Person) Access() Access           { return p.access }
func (p *Person) PublicName() string       { return p.publicName }
func (p *Person) Occupation() string       { return p.occupation }
func (p *Person) Birth() event.Event       { return p.birth }
func (p *Person) Baptism() event.Event     { return p.baptism }
func (p *Person) DeathStatus() DeathStatus { return p.deathStatus }
func (p *Person) Death() event.Event       { return p.death }
func (p *Person) BurialKind() BurialKind   { return p.burialKind }
func (p *Person) Burial() event.Event      { return p.burial }

func (p *Person) SetSex(s Sex)               { p.sex = s }
func (p *Person) SetAccess(a Access)         { p.access = a }
func (p *Person) SetPublicName(name string)  { p.publicName = name }
func (p *Person) SetOccupation(occ string)   { p.occupation = occ }
func (p *Person) SetBirth(ev event.Event)    { p.birth = ev }
func (p *Person) SetBaptism(ev event.Event)  { p.baptism = ev }

// SetDeath records the death status together with the death event.
func (p *Person) SetDeath(status DeathStatus, ev event.Event) {
	p.deathStatus = status
	p.death = ev
}

// SetBurial records how and where the person was laid to rest.
func (p *Person) SetBurial(kind BurialKind, ev event.Event) {
	p.burialKind = kind
	p.burial = ev
}

// IsAlive is true only for NotDead.
func (p *Person) IsAlive() bool {
	return p.deathStatus == NotDead
}

// IsDead covers every status that asserts death.
func (p *Person) IsDead() bool {
	switch p.deathStatus {
	case Dead, DeadYoung, DeadDontKnowWhen, OfCourseDead:
		return true
	default:
		return false
	}
}

func (p *Person) DeathStatusUnknown() bool {
	return p.deathStatus == DontKnowIfDead
}

// BirthYear returns the year component of the birth date as recorded.
func (p *Person) BirthYear() (int, bool) { return p.birth.Year() }

// DeathYear returns the year component of the death date as recorded.
func (p *Person) DeathYear() (int, bool) { return p.death.Year() }

// Lifespan returns death year minus birth year, both on the Gregorian
// scale so mixed-calendar records compare correctly.
func (p *Person) Lifespan() (int, bool) {
	b, ok := p.birth.GregorianYear()
	if !ok {
		return 0, false
	}
	d, ok := p.death.GregorianYear()
	if !ok {
		return 0, false
	}
	return d - b, true
}

// AgeAt returns the age reached in the given Gregorian year. It is unknown
// without a birth year or for years before birth.
func (p *Person) AgeAt(year int) (int, bool) {
	b, ok := p.birth.GregorianYear()
	if !ok || year < b {
		return 0, false
	}
	return year - b, true
}

// AddSosa records an ancestor number. Zero and duplicates are ignored.
// It reports whether the number was added.
func (p *Person) AddSosa(s sosa.Sosa) bool {
	if s.IsZero() || p.HasSosa(s) {
		return false
	}
	p.sosas = append(p.sosas, s)
	if p.primary.IsZero() || s.Less(p.primary) {
		p.primary = s
	}
	return true
}

// HasSosa reports whether the person already holds s.
func (p *Person) HasSosa(s sosa.Sosa) bool {
	for _, have := range p.sosas {
		if have == s {
			return true
		}
	}
	return false
}

// Sosas returns the person's numbers in ascending order.
func (p *Person) Sosas() []sosa.Sosa {
	out := append([]sosa.Sosa(nil), p.sosas...)
	sort.Slice(out, func(i, j int) bool { return out[i].Less(out[j]) })
	return out
}

// PrimarySosa returns the smallest number held, or sosa.Zero.
func (p *Person) PrimarySosa() sosa.Sosa { return p.primary }

// FamiliesAsParent returns the families where the person is a father or mother.
func (p *Person) FamiliesAsParent() []FamilyID {
	return append([]FamilyID(nil), p.asParent...)
}

// FamiliesAsChild returns the families where the person is a child.
func (p *Person) FamiliesAsChild() []FamilyID {
	return append([]FamilyID(nil), p.asChild...)
}
