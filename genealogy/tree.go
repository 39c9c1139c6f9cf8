// Package genealogy holds persons and families in an arena and keeps the
// relationship graph consistent.
//
// Persons and families are addressed by index (PersonID, FamilyID). Every
// structural change goes through a Tree method that updates both sides of
// the edge, runs the relationship rules when asked to, and propagates Sosa
// numbers. A rejected mutation leaves the tree unchanged.
//
// Structural mutators come in two forms:
//
//	err := tree.AddChildChecked(fam, child)   // plausibility rules apply
//	err := tree.AddChildUnchecked(fam, child) // bulk import of messy data
//
// Both forms refuse unknown IDs and duplicate members.
//
// A Tree is not safe for concurrent mutation. Concurrent readers of a tree
// that is no longer mutated are fine.
package genealogy

import (
	"go.uber.org/zap"

	"github.com/MarcoKoban/lineage/errors"
	"github.com/MarcoKoban/lineage/logger"
)

// Tree is the arena owning every person and family.
type Tree struct {
	persons  []*Person
	families []*Family
	byKey    map[Key]PersonID
	byRef    map[string]FamilyID

	validator *Validator
	logger    *zap.SugaredLogger
}

// Option configures a Tree.
type Option func(*Tree)

// WithLogger sets the logger used to trace mutations and rejections.
func WithLogger(l *zap.SugaredLogger) Option {
	return func(t *Tree) { t.logger = l }
}

// WithRules overrides the default plausibility thresholds.
func WithRules(r Rules) Option {
	return func(t *Tree) { t.validator = NewValidator(r) }
}

// NewTree creates an empty tree with default rules and a silent logger.
func NewTree(opts ...Option) *Tree {
	t := &Tree{
		byKey:     make(map[Key]PersonID),
		byRef:     make(map[string]FamilyID),
		validator: NewValidator(DefaultRules()),
		logger:    zap.NewNop().Sugar(),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Validator returns the rule set the checked mutators use.
func (t *Tree) Validator() *Validator { return t.validator }

// AddPerson creates a person. A key already in use is a conflict.
func (t *Tree) AddPerson(key Key) (*Person, error) {
	if key.FirstName == "" || key.Surname == "" {
		return nil, errors.WithHint(
			errors.NewInvalidRequestError("person key %q needs a first name and a surname", key),
			`use "?" for an unknown name`,
		)
	}
	if existing, ok := t.byKey[key]; ok {
		return nil, errors.Wrapf(errors.ErrConflict, "person %s already exists as #%d", key, existing)
	}

	p := newPerson(PersonID(len(t.persons)), key)
	t.persons = append(t.persons, p)
	t.byKey[key] = p.id
	t.logger.Debugw("added person", logger.FieldPerson, key.String(), "id", p.id)
	return p, nil
}

// Person returns the person with the given ID.
func (t *Tree) Person(id PersonID) (*Person, error) {
	if id < 0 || int(id) >= len(t.persons) {
		return nil, errors.NewNotFoundError("person #%d", id)
	}
	return t.persons[id], nil
}

// PersonByKey looks a person up by identity key.
func (t *Tree) PersonByKey(key Key) (*Person, error) {
	id, ok := t.byKey[key]
	if !ok {
		return nil, errors.NewNotFoundError("person %s", key)
	}
	return t.persons[id], nil
}

// Family returns the family with the given ID.
func (t *Tree) Family(id FamilyID) (*Family, error) {
	if id < 0 || int(id) >= len(t.families) {
		return nil, errors.NewNotFoundError("family #%d", id)
	}
	return t.families[id], nil
}

// FamilyByRef looks a family up by the external reference it was created with.
func (t *Tree) FamilyByRef(ref string) (*Family, error) {
	id, ok := t.byRef[ref]
	if !ok {
		return nil, errors.NewNotFoundError("family %q", ref)
	}
	return t.families[id], nil
}

func (t *Tree) PersonCount() int { return len(t.persons) }
func (t *Tree) FamilyCount() int { return len(t.families) }

// Persons returns every person in creation order.
func (t *Tree) Persons() []*Person {
	return append([]*Person(nil), t.persons...)
}

// Families returns every family in creation order.
func (t *Tree) Families() []*Family {
	return append([]*Family(nil), t.families...)
}

// Parents returns the distinct fathers and mothers of a person across all
// families where the person is a child.
func (t *Tree) Parents(id PersonID) ([]PersonID, error) {
	if _, err := t.Person(id); err != nil {
		return nil, err
	}
	return dedupe(t.parentsOf(id)), nil
}

// Children returns the distinct children of a person across all families
// where the person is a parent.
func (t *Tree) Children(id PersonID) ([]PersonID, error) {
	p, err := t.Person(id)
	if err != nil {
		return nil, err
	}
	var out []PersonID
	for _, fid := range p.asParent {
		out = append(out, t.families[fid].children...)
	}
	return dedupe(out), nil
}

// Spouses returns the distinct co-parents of a person.
func (t *Tree) Spouses(id PersonID) ([]PersonID, error) {
	p, err := t.Person(id)
	if err != nil {
		return nil, err
	}
	var out []PersonID
	for _, fid := range p.asParent {
		for _, other := range t.families[fid].Parents() {
			if other != id {
				out = append(out, other)
			}
		}
	}
	return dedupe(out), nil
}

func (t *Tree) parentsOf(id PersonID) []PersonID {
	var out []PersonID
	for _, fid := range t.persons[id].asChild {
		out = append(out, t.families[fid].Parents()...)
	}
	return out
}

func (t *Tree) keyOf(id PersonID) Key {
	if id < 0 || int(id) >= len(t.persons) {
		return Key{}
	}
	return t.persons[id].key
}

func (t *Tree) checkPersons(ids ...PersonID) error {
	for _, id := range ids {
		if _, err := t.Person(id); err != nil {
			return err
		}
	}
	return nil
}

func dedupe(ids []PersonID) []PersonID {
	if len(ids) == 0 {
		return nil
	}
	seen := make(map[PersonID]bool, len(ids))
	out := make([]PersonID, 0, len(ids))
	for _, id := range ids {
		if !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	return out
}
