package genealogy

import (
	"fmt"

	"github.com/MarcoKoban/lineage/errors"
	"github.com/MarcoKoban/lineage/event"
)

// Rule names a validation rule.
type Rule string

const (
	RuleDuplicateMember  Rule = "duplicate_member"
	RuleSelfParenting    Rule = "self_parenting"
	RuleCircularAncestry Rule = "circular_ancestry"
	RuleParentAgeGap     Rule = "parent_age_gap"
	RuleBirthDeathOrder  Rule = "birth_death_order"
	RuleMarriageDates    Rule = "marriage_dates"
	RuleWitness          Rule = "witness"
)

// ValidationError reports a graph that is structurally or physically
// impossible. errors.Is(err, errors.ErrValidation) holds for every rule.
type ValidationError struct {
	Rule    Rule
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Rule, e.Message)
}

func (e *ValidationError) Unwrap() error { return errors.ErrValidation }

func violation(rule Rule, format string, args ...interface{}) *ValidationError {
	return &ValidationError{Rule: rule, Message: fmt.Sprintf(format, args...)}
}

// RuleOf extracts the rule name from a validation error anywhere in the chain.
func RuleOf(err error) (Rule, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve.Rule, true
	}
	return "", false
}

// Rules configures the plausibility thresholds.
type Rules struct {
	// MinParentAgeGap is the youngest a parent can be at a child's birth.
	MinParentAgeGap int
	// MaxParentAgeGap is the oldest a parent can be at a child's birth.
	MaxParentAgeGap int
}

// DefaultRules returns a 10 to 80 year parent/child gap.
func DefaultRules() Rules {
	return Rules{MinParentAgeGap: 10, MaxParentAgeGap: 80}
}

// Validator holds the stateless relationship rules. Each rule returns nil
// or a *ValidationError; a rule whose inputs are unknown (no year) passes.
type Validator struct {
	rules Rules
}

func NewValidator(rules Rules) *Validator {
	return &Validator{rules: rules}
}

func (v *Validator) Rules() Rules { return v.rules }

// NoSelfParenting rejects a person as their own parent.
func (v *Validator) NoSelfParenting(child, parent *Person) error {
	if child.Equal(parent) {
		return violation(RuleSelfParenting, "%s cannot be their own parent", child.key)
	}
	return nil
}

// NoCircularAncestry rejects making proposedAncestor an ancestor of person
// when person already is an ancestor of proposedAncestor. It walks up from
// proposedAncestor with its own visited set.
func (v *Validator) NoCircularAncestry(t *Tree, person, proposedAncestor PersonID) error {
	if person == proposedAncestor {
		return violation(RuleCircularAncestry, "%s cannot be their own ancestor", t.keyOf(person))
	}

	visited := map[PersonID]bool{proposedAncestor: true}
	stack := []PersonID{proposedAncestor}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for _, parent := range t.parentsOf(cur) {
			if parent == person {
				return violation(RuleCircularAncestry, "%s is already an ancestor of %s",
					t.keyOf(person), t.keyOf(proposedAncestor))
			}
			if !visited[parent] {
				visited[parent] = true
				stack = append(stack, parent)
			}
		}
	}
	return nil
}

// ParentChildAgeGap rejects a parent younger than MinParentAgeGap or older
// than MaxParentAgeGap at the child's birth.
func (v *Validator) ParentChildAgeGap(parent, child *Person) error {
	pb, ok := ruleYear(parent.birth)
	if !ok {
		return nil
	}
	cb, ok := ruleYear(child.birth)
	if !ok {
		return nil
	}

	gap := cb - pb
	if gap < v.rules.MinParentAgeGap {
		return violation(RuleParentAgeGap, "%s born %d is only %d years older than child %s born %d (minimum %d)",
			parent.key, pb, gap, child.key, cb, v.rules.MinParentAgeGap)
	}
	if gap > v.rules.MaxParentAgeGap {
		return violation(RuleParentAgeGap, "%s born %d is %d years older than child %s born %d (maximum %d)",
			parent.key, pb, gap, child.key, cb, v.rules.MaxParentAgeGap)
	}
	return nil
}

// BirthDeathOrder rejects a death recorded before the birth.
func (v *Validator) BirthDeathOrder(p *Person) error {
	b, ok := ruleYear(p.birth)
	if !ok {
		return nil
	}
	d, ok := ruleYear(p.death)
	if !ok {
		return nil
	}
	if d < b {
		return violation(RuleBirthDeathOrder, "%s died in %d before being born in %d", p.key, d, b)
	}
	return nil
}

// MarriageDates rejects a marriage dated before a spouse's birth or after
// a spouse's death.
func (v *Validator) MarriageDates(t *Tree, f *Family) error {
	errs := v.marriageViolations(t, f)
	if len(errs) > 0 {
		return errs[0]
	}
	return nil
}

func (v *Validator) marriageViolations(t *Tree, f *Family) []error {
	fe, ok := f.MarriageEvent()
	if !ok {
		return nil
	}
	m, ok := ruleYear(fe.event)
	if !ok {
		return nil
	}

	var errs []error
	for _, id := range f.Parents() {
		p := t.persons[id]
		if b, ok := ruleYear(p.birth); ok && m < b {
			errs = append(errs, violation(RuleMarriageDates, "marriage in %d precedes the birth of %s in %d", m, p.key, b))
		}
		if d, ok := ruleYear(p.death); ok && m > d {
			errs = append(errs, violation(RuleMarriageDates, "marriage in %d follows the death of %s in %d", m, p.key, d))
		}
	}
	return errs
}

// ruleYear is the year rules compare: the date normalised to Gregorian,
// or a year found in the raw text.
func ruleYear(ev event.Event) (int, bool) {
	return ev.GregorianYear()
}

// linkViolations checks one parent/child edge. Checks run in a fixed order
// so the first reported violation is stable.
func (v *Validator) linkViolations(t *Tree, parent, child PersonID) []error {
	p, c := t.persons[parent], t.persons[child]
	if err := v.NoSelfParenting(c, p); err != nil {
		return []error{err}
	}
	var errs []error
	if err := v.NoCircularAncestry(t, child, parent); err != nil {
		errs = append(errs, err)
	}
	if err := v.ParentChildAgeGap(p, c); err != nil {
		errs = append(errs, err)
	}
	return errs
}
