package genealogy

import (
	"github.com/MarcoKoban/lineage/event"
)

// FamilyID indexes a family in its Tree.
type FamilyID int

// WitnessInfo names a person who witnessed a family event and in what role.
type WitnessInfo struct {
	person PersonID
	kind   WitnessKind
}

func NewWitness(person PersonID, kind WitnessKind) WitnessInfo {
	return WitnessInfo{person: person, kind: kind}
}

func (w WitnessInfo) Person() PersonID  { return w.person }
func (w WitnessInfo) Kind() WitnessKind { return w.kind }

// FamilyEvent is an event of the union together with its witnesses.
type FamilyEvent struct {
	event     event.Event
	witnesses []WitnessInfo
}

func NewFamilyEvent(ev event.Event, witnesses ...WitnessInfo) FamilyEvent {
	return FamilyEvent{event: ev, witnesses: append([]WitnessInfo(nil), witnesses...)}
}

func (fe FamilyEvent) Event() event.Event { return fe.event }

func (fe FamilyEvent) Witnesses() []WitnessInfo {
	return append([]WitnessInfo(nil), fe.witnesses...)
}

// Divorce records the end of a union.
type Divorce struct {
	Status DivorceStatus
	Event  event.Event
}

// Family is a parental union. Parent lists are either nil or non-empty.
//
// Invariants:
//   - No person appears twice in the same role.
//   - Every member lists this family in the matching back-reference.
//   - Members change only through Tree methods.
type Family struct {
	id  FamilyID
	ref string

	fathers  []PersonID
	mothers  []PersonID
	children []PersonID

	relation Relation
	divorce  Divorce
	events   []FamilyEvent
	comment  string
	sources  []string
}

func (f *Family) ID() FamilyID { return f.id }

// Ref is the external reference the family was created with, if any.
func (f *Family) Ref() string { return f.ref }

func (f *Family) Fathers() []PersonID  { return copyIDs(f.fathers) }
func (f *Family) Mothers() []PersonID  { return copyIDs(f.mothers) }
func (f *Family) Children() []PersonID { return copyIDs(f.children) }

func (f *Family) HasFather() bool { return f.fathers != nil }
func (f *Family) HasMother() bool { return f.mothers != nil }

// Parents returns fathers followed by mothers.
func (f *Family) Parents() []PersonID {
	out := make([]PersonID, 0, len(f.fathers)+len(f.mothers))
	out = append(out, f.fathers...)
	return append(out, f.mothers...)
}

func (f *Family) Relation() Relation     { return f.relation }
func (f *Family) SetRelation(r Relation) { f.relation = r }
func (f *Family) Divorce() Divorce       { return f.divorce }
func (f *Family) SetDivorce(d Divorce)   { f.divorce = d }
func (f *Family) Comment() string        { return f.comment }
func (f *Family) SetComment(c string)    { f.comment = c }

func (f *Family) Sources() []string { return append([]string(nil), f.sources...) }

func (f *Family) AddSource(src string) { f.sources = append(f.sources, src) }

// IsMarried is true for Married and NoSexesCheckMarried.
func (f *Family) IsMarried() bool {
	return f.relation == Married || f.relation == NoSexesCheckMarried
}

// IsDivorced is true for any divorce or separation.
func (f *Family) IsDivorced() bool {
	switch f.divorce.Status {
	case Divorced, Separated, SeparatedOld:
		return true
	default:
		return false
	}
}

// Events returns the family events in insertion order.
func (f *Family) Events() []FamilyEvent {
	return append([]FamilyEvent(nil), f.events...)
}

// EventsByType returns the events of one kind in insertion order.
func (f *Family) EventsByType(kind event.Kind) []FamilyEvent {
	var out []FamilyEvent
	for _, fe := range f.events {
		if fe.event.Kind() == kind {
			out = append(out, fe)
		}
	}
	return out
}

// MarriageEvent returns the first marriage event.
func (f *Family) MarriageEvent() (FamilyEvent, bool) {
	for _, fe := range f.events {
		if fe.event.Kind() == event.Marriage {
			return fe, true
		}
	}
	return FamilyEvent{}, false
}

func (f *Family) hasParent(id PersonID) bool {
	return containsID(f.fathers, id) || containsID(f.mothers, id)
}

func containsID(ids []PersonID, id PersonID) bool {
	for _, have := range ids {
		if have == id {
			return true
		}
	}
	return false
}

func copyIDs(ids []PersonID) []PersonID {
	if ids == nil {
		return nil
	}
	return append([]PersonID(nil), ids...)
}

// removeID drops id and collapses an emptied list to nil.
func removeID(ids []PersonID, id PersonID) []PersonID {
	out := ids[:0:0]
	for _, have := range ids {
		if have != id {
			out = append(out, have)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

func removeFamilyID(ids []FamilyID, id FamilyID) []FamilyID {
	out := ids[:0:0]
	for _, have := range ids {
		if have != id {
			out = append(out, have)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

func containsFamilyID(ids []FamilyID, id FamilyID) bool {
	for _, have := range ids {
		if have == id {
			return true
		}
	}
	return false
}
