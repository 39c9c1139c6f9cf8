package genealogy

import (
	"github.com/MarcoKoban/lineage/errors"
	"github.com/MarcoKoban/lineage/logger"
	"github.com/MarcoKoban/lineage/sosa"
)

type role int

const (
	roleFather role = iota
	roleMother
	roleChild
)

func (r role) String() string {
	switch r {
	case roleFather:
		return "father"
	case roleMother:
		return "mother"
	default:
		return "child"
	}
}

// edge is a parent/child link, possibly not yet committed.
type edge struct {
	parent PersonID
	child  PersonID
	role   role
}

// sosaPlan collects the Sosa numbers a mutation would add without touching
// the tree. Pending edges are seen as if they were committed. Going up,
// numbers strictly grow and going down they strictly shrink, so both walks
// terminate; going up through a cycle ends in an overflow error.
type sosaPlan struct {
	t       *Tree
	pending []edge
	adds    map[PersonID][]sosa.Sosa
	order   []PersonID
}

func (t *Tree) newPlan(pending ...edge) *sosaPlan {
	return &sosaPlan{t: t, pending: pending, adds: make(map[PersonID][]sosa.Sosa)}
}

func (pl *sosaPlan) holds(id PersonID, s sosa.Sosa) bool {
	if pl.t.persons[id].HasSosa(s) {
		return true
	}
	for _, have := range pl.adds[id] {
		if have == s {
			return true
		}
	}
	return false
}

func (pl *sosaPlan) add(id PersonID, s sosa.Sosa) bool {
	if s.IsZero() || pl.holds(id, s) {
		return false
	}
	if _, seen := pl.adds[id]; !seen {
		pl.order = append(pl.order, id)
	}
	pl.adds[id] = append(pl.adds[id], s)
	return true
}

func (pl *sosaPlan) parentLinks(id PersonID) []edge {
	var out []edge
	for _, fid := range pl.t.persons[id].asChild {
		f := pl.t.families[fid]
		for _, p := range f.fathers {
			out = append(out, edge{parent: p, child: id, role: roleFather})
		}
		for _, p := range f.mothers {
			out = append(out, edge{parent: p, child: id, role: roleMother})
		}
	}
	for _, e := range pl.pending {
		if e.child == id {
			out = append(out, e)
		}
	}
	return out
}

func (pl *sosaPlan) childrenOf(id PersonID) []PersonID {
	var out []PersonID
	for _, fid := range pl.t.persons[id].asParent {
		out = append(out, pl.t.families[fid].children...)
	}
	for _, e := range pl.pending {
		if e.parent == id {
			out = append(out, e.child)
		}
	}
	return dedupe(out)
}

// pushUp gives the parent of e the father or mother number of s and keeps
// climbing from there.
func (pl *sosaPlan) pushUp(e edge, s sosa.Sosa) error {
	var next sosa.Sosa
	var err error
	if e.role == roleMother {
		next, err = s.Mother()
	} else {
		next, err = s.Father()
	}
	if err != nil {
		return errors.Wrapf(err, "propagating sosa %s from %s to %s %s",
			s, pl.t.keyOf(e.child), e.role, pl.t.keyOf(e.parent))
	}
	if pl.add(e.parent, next) {
		return pl.up(e.parent, next)
	}
	return nil
}

func (pl *sosaPlan) up(id PersonID, s sosa.Sosa) error {
	for _, e := range pl.parentLinks(id) {
		if err := pl.pushUp(e, s); err != nil {
			return err
		}
	}
	return nil
}

// pushDown gives child the child number of s and keeps descending. Numbers
// below 2 have no child number and stop here.
func (pl *sosaPlan) pushDown(child PersonID, s sosa.Sosa) {
	next, err := s.Child()
	if err != nil {
		return
	}
	if pl.add(child, next) {
		pl.down(child, next)
	}
}

func (pl *sosaPlan) down(id PersonID, s sosa.Sosa) {
	for _, c := range pl.childrenOf(id) {
		pl.pushDown(c, s)
	}
}

// link plans both directions for newly added edges: the child's numbers go
// up to the parent and the parent's numbers go down to the child.
func (pl *sosaPlan) link() error {
	for _, e := range pl.pending {
		for _, s := range pl.t.persons[e.child].sosas {
			if err := pl.pushUp(e, s); err != nil {
				return err
			}
		}
		for _, s := range pl.t.persons[e.parent].sosas {
			pl.pushDown(e.child, s)
		}
	}
	return nil
}

func (pl *sosaPlan) commit() int {
	n := 0
	for _, id := range pl.order {
		p := pl.t.persons[id]
		for _, s := range pl.adds[id] {
			if p.AddSosa(s) {
				n++
			}
		}
	}
	return n
}

// PropagateSosaToParents pushes every number the person holds up through
// fathers (2n) and mothers (2n+1), recursively. Nothing is written unless
// the whole propagation succeeds.
func (t *Tree) PropagateSosaToParents(id PersonID) error {
	p, err := t.Person(id)
	if err != nil {
		return err
	}
	pl := t.newPlan()
	for _, s := range p.sosas {
		if err := pl.up(id, s); err != nil {
			return err
		}
	}
	t.commitPlan(pl, "propagate_up")
	return nil
}

// PropagateSosaToChildren pushes every number the person holds down to
// children (n/2), recursively. Numbers 0 and 1 have no child number.
func (t *Tree) PropagateSosaToChildren(id PersonID) error {
	p, err := t.Person(id)
	if err != nil {
		return err
	}
	pl := t.newPlan()
	for _, s := range p.sosas {
		pl.down(id, s)
	}
	t.commitPlan(pl, "propagate_down")
	return nil
}

// SetSosaRoot makes the person the reference person (Sosa 1) and numbers
// all known ancestors.
func (t *Tree) SetSosaRoot(id PersonID) error {
	if _, err := t.Person(id); err != nil {
		return err
	}
	pl := t.newPlan()
	pl.add(id, sosa.Root)
	if err := pl.up(id, sosa.Root); err != nil {
		return err
	}
	t.commitPlan(pl, "set_sosa_root")
	return nil
}

func (t *Tree) commitPlan(pl *sosaPlan, op string) {
	n := pl.commit()
	if n > 0 {
		t.logger.Debugw("propagated sosa numbers",
			logger.FieldOperation, op,
			logger.FieldCount, n,
			logger.FieldTotalCount, len(pl.order))
	}
}
