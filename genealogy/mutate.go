package genealogy

import (
	"github.com/MarcoKoban/lineage/errors"
	"github.com/MarcoKoban/lineage/logger"
)

// Members describes a family to create.
type Members struct {
	// Ref is an optional external reference, unique within the tree.
	Ref      string
	Fathers  []PersonID
	Mothers  []PersonID
	Children []PersonID
	Relation Relation
}

// CreateFamily builds a family in one step, validating every parent/child
// pair and the birth/death order of every member. Either the whole family
// is created or nothing changes.
func (t *Tree) CreateFamily(m Members) (*Family, error) {
	return t.createFamily(m, true)
}

// CreateFamilyUnchecked builds a family without plausibility rules. Unknown
// IDs and duplicate members are still refused.
func (t *Tree) CreateFamilyUnchecked(m Members) (*Family, error) {
	return t.createFamily(m, false)
}

func (t *Tree) createFamily(m Members, checked bool) (*Family, error) {
	if m.Ref != "" {
		if _, taken := t.byRef[m.Ref]; taken {
			return nil, errors.Wrapf(errors.ErrConflict, "family %q already exists", m.Ref)
		}
	}

	roles := []struct {
		name string
		ids  []PersonID
	}{{"father", m.Fathers}, {"mother", m.Mothers}, {"child", m.Children}}
	for _, r := range roles {
		if err := t.checkPersons(r.ids...); err != nil {
			return nil, err
		}
		if dup, ok := firstDuplicate(r.ids); ok {
			return nil, t.reject("create_family", violation(RuleDuplicateMember,
				"%s listed twice as %s", t.keyOf(dup), r.name))
		}
	}

	parents := append(append([]PersonID(nil), m.Fathers...), m.Mothers...)
	if checked {
		for _, c := range m.Children {
			for _, p := range parents {
				if errs := t.validator.linkViolations(t, p, c); len(errs) > 0 {
					return nil, t.reject("create_family", errs[0])
				}
			}
		}
		for _, id := range dedupe(append(append([]PersonID(nil), parents...), m.Children...)) {
			if err := t.validator.BirthDeathOrder(t.persons[id]); err != nil {
				return nil, t.reject("create_family", err)
			}
		}
	}

	var pending []edge
	for _, c := range m.Children {
		for _, p := range m.Fathers {
			pending = append(pending, edge{parent: p, child: c, role: roleFather})
		}
		for _, p := range m.Mothers {
			pending = append(pending, edge{parent: p, child: c, role: roleMother})
		}
	}
	pl := t.newPlan(pending...)
	if err := pl.link(); err != nil {
		return nil, t.reject("create_family", err)
	}

	f := &Family{
		id:       FamilyID(len(t.families)),
		ref:      m.Ref,
		fathers:  nonEmpty(m.Fathers),
		mothers:  nonEmpty(m.Mothers),
		children: nonEmpty(m.Children),
		relation: m.Relation,
	}
	t.families = append(t.families, f)
	if f.ref != "" {
		t.byRef[f.ref] = f.id
	}
	for _, p := range parents {
		t.linkParent(f, p)
	}
	for _, c := range f.children {
		t.linkChild(f, c)
	}
	t.commitPlan(pl, "create_family")

	t.logger.Debugw("created family",
		logger.FieldFamily, f.id,
		logger.FieldCount, len(parents)+len(f.children),
		"checked", checked)
	return f, nil
}

// AddChildChecked adds a child after rejecting duplicates, self-parenting,
// circular ancestry, parent/child age gaps against every present parent and
// a death before birth of the child.
func (t *Tree) AddChildChecked(fid FamilyID, child PersonID) error {
	return t.addChild(fid, child, true)
}

// AddChildUnchecked adds a child, refusing only unknown IDs and duplicates.
func (t *Tree) AddChildUnchecked(fid FamilyID, child PersonID) error {
	return t.addChild(fid, child, false)
}

func (t *Tree) addChild(fid FamilyID, child PersonID, checked bool) error {
	f, err := t.Family(fid)
	if err != nil {
		return err
	}
	if err := t.checkPersons(child); err != nil {
		return err
	}
	if containsID(f.children, child) {
		return t.reject("add_child", violation(RuleDuplicateMember,
			"%s is already a child of family #%d", t.keyOf(child), fid))
	}

	if checked {
		for _, p := range f.Parents() {
			if errs := t.validator.linkViolations(t, p, child); len(errs) > 0 {
				return t.reject("add_child", errs[0])
			}
		}
		if err := t.validator.BirthDeathOrder(t.persons[child]); err != nil {
			return t.reject("add_child", err)
		}
	}

	var pending []edge
	for _, p := range f.fathers {
		pending = append(pending, edge{parent: p, child: child, role: roleFather})
	}
	for _, p := range f.mothers {
		pending = append(pending, edge{parent: p, child: child, role: roleMother})
	}
	pl := t.newPlan(pending...)
	if err := pl.link(); err != nil {
		return t.reject("add_child", err)
	}

	f.children = append(f.children, child)
	t.linkChild(f, child)
	t.commitPlan(pl, "add_child")
	t.logger.Debugw("linked child", logger.FieldFamily, fid, logger.FieldPerson, t.keyOf(child).String())
	return nil
}

// AddFatherChecked adds a father (co-fathers are allowed) after validating
// him against every existing child and his own birth/death order.
func (t *Tree) AddFatherChecked(fid FamilyID, father PersonID) error {
	return t.addParent(fid, father, roleFather, true)
}

// AddFatherUnchecked adds a father, refusing only unknown IDs and duplicates.
func (t *Tree) AddFatherUnchecked(fid FamilyID, father PersonID) error {
	return t.addParent(fid, father, roleFather, false)
}

// AddMotherChecked adds a mother (co-mothers are allowed) after validating
// her against every existing child and her own birth/death order.
func (t *Tree) AddMotherChecked(fid FamilyID, mother PersonID) error {
	return t.addParent(fid, mother, roleMother, true)
}

// AddMotherUnchecked adds a mother, refusing only unknown IDs and duplicates.
func (t *Tree) AddMotherUnchecked(fid FamilyID, mother PersonID) error {
	return t.addParent(fid, mother, roleMother, false)
}

func (t *Tree) addParent(fid FamilyID, parent PersonID, r role, checked bool) error {
	op := "add_" + r.String()
	f, err := t.Family(fid)
	if err != nil {
		return err
	}
	if err := t.checkPersons(parent); err != nil {
		return err
	}

	list := &f.fathers
	if r == roleMother {
		list = &f.mothers
	}
	if containsID(*list, parent) {
		return t.reject(op, violation(RuleDuplicateMember,
			"%s is already a %s in family #%d", t.keyOf(parent), r, fid))
	}

	if checked {
		for _, c := range f.children {
			if errs := t.validator.linkViolations(t, parent, c); len(errs) > 0 {
				return t.reject(op, errs[0])
			}
		}
		if err := t.validator.BirthDeathOrder(t.persons[parent]); err != nil {
			return t.reject(op, err)
		}
	}

	pending := make([]edge, 0, len(f.children))
	for _, c := range f.children {
		pending = append(pending, edge{parent: parent, child: c, role: r})
	}
	pl := t.newPlan(pending...)
	if err := pl.link(); err != nil {
		return t.reject(op, err)
	}

	*list = append(*list, parent)
	t.linkParent(f, parent)
	t.commitPlan(pl, op)
	t.logger.Debugw("linked "+r.String(), logger.FieldFamily, fid, logger.FieldPerson, t.keyOf(parent).String())
	return nil
}

// RemoveChild detaches a child on both sides. Removing a non-member is a
// no-op. Sosa numbers already propagated are kept.
func (t *Tree) RemoveChild(fid FamilyID, child PersonID) error {
	f, err := t.Family(fid)
	if err != nil {
		return err
	}
	if err := t.checkPersons(child); err != nil {
		return err
	}
	if !containsID(f.children, child) {
		return nil
	}
	f.children = removeID(f.children, child)
	p := t.persons[child]
	p.asChild = removeFamilyID(p.asChild, fid)
	t.logger.Debugw("unlinked child", logger.FieldFamily, fid, logger.FieldPerson, p.key.String())
	return nil
}

// RemoveFather detaches a father; an emptied father list becomes nil.
func (t *Tree) RemoveFather(fid FamilyID, father PersonID) error {
	return t.removeParent(fid, father, roleFather)
}

// RemoveMother detaches a mother; an emptied mother list becomes nil.
func (t *Tree) RemoveMother(fid FamilyID, mother PersonID) error {
	return t.removeParent(fid, mother, roleMother)
}

func (t *Tree) removeParent(fid FamilyID, parent PersonID, r role) error {
	f, err := t.Family(fid)
	if err != nil {
		return err
	}
	if err := t.checkPersons(parent); err != nil {
		return err
	}

	list := &f.fathers
	if r == roleMother {
		list = &f.mothers
	}
	if !containsID(*list, parent) {
		return nil
	}
	*list = removeID(*list, parent)

	p := t.persons[parent]
	if !f.hasParent(parent) {
		p.asParent = removeFamilyID(p.asParent, fid)
	}
	t.logger.Debugw("unlinked "+r.String(), logger.FieldFamily, fid, logger.FieldPerson, p.key.String())
	return nil
}

// AddFamilyEvent appends an event. Every witness must exist and must not
// be one of the spouses.
func (t *Tree) AddFamilyEvent(fid FamilyID, fe FamilyEvent) error {
	f, err := t.Family(fid)
	if err != nil {
		return err
	}
	for _, w := range fe.witnesses {
		if err := t.checkPersons(w.person); err != nil {
			return errors.Wrap(err, "witness")
		}
		if f.hasParent(w.person) {
			return t.reject("add_family_event", violation(RuleWitness,
				"%s cannot witness their own %s", t.keyOf(w.person), fe.event.Kind()))
		}
	}
	f.events = append(f.events, NewFamilyEvent(fe.event, fe.witnesses...))
	t.logger.Debugw("added family event", logger.FieldFamily, fid, "kind", fe.event.Kind())
	return nil
}

// ValidateFamily re-runs every parent/child rule, the birth/death order of
// every member and the marriage date checks. It returns the first
// violation found.
func (t *Tree) ValidateFamily(fid FamilyID) error {
	errs, err := t.FamilyViolations(fid)
	if err != nil {
		return err
	}
	if len(errs) > 0 {
		return errs[0]
	}
	return nil
}

// FamilyViolations returns every rule violation in the family, in the
// order ValidateFamily would meet them.
func (t *Tree) FamilyViolations(fid FamilyID) ([]error, error) {
	f, err := t.Family(fid)
	if err != nil {
		return nil, err
	}

	var errs []error
	for _, c := range f.children {
		for _, p := range f.Parents() {
			errs = append(errs, t.validator.linkViolations(t, p, c)...)
		}
	}
	for _, id := range dedupe(append(f.Parents(), f.children...)) {
		if err := t.validator.BirthDeathOrder(t.persons[id]); err != nil {
			errs = append(errs, err)
		}
	}
	errs = append(errs, t.validator.marriageViolations(t, f)...)
	return errs, nil
}

func (t *Tree) linkParent(f *Family, id PersonID) {
	p := t.persons[id]
	if !containsFamilyID(p.asParent, f.id) {
		p.asParent = append(p.asParent, f.id)
	}
}

func (t *Tree) linkChild(f *Family, id PersonID) {
	p := t.persons[id]
	if !containsFamilyID(p.asChild, f.id) {
		p.asChild = append(p.asChild, f.id)
	}
}

func (t *Tree) reject(op string, err error) error {
	rule, _ := RuleOf(err)
	t.logger.Debugw("rejected mutation",
		logger.FieldOperation, op,
		logger.FieldRule, string(rule),
		logger.FieldError, err.Error())
	return err
}

func firstDuplicate(ids []PersonID) (PersonID, bool) {
	seen := make(map[PersonID]bool, len(ids))
	for _, id := range ids {
		if seen[id] {
			return id, true
		}
		seen[id] = true
	}
	return 0, false
}

func nonEmpty(ids []PersonID) []PersonID {
	if len(ids) == 0 {
		return nil
	}
	return append([]PersonID(nil), ids...)
}
