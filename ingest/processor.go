// Package ingest rebuilds a genealogy.Tree from a YAML or TOML document.
//
// Documents describe messy historical records, so families are assembled
// with the unchecked mutators and the relationship rules run afterwards as
// a report rather than as a gate. Dates are parsed leniently; whatever
// could not be read is reported per event instead of being dropped silently.
package ingest

import (
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/Masterminds/semver/v3"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/MarcoKoban/lineage/am"
	"github.com/MarcoKoban/lineage/calendar"
	"github.com/MarcoKoban/lineage/errors"
	"github.com/MarcoKoban/lineage/event"
	"github.com/MarcoKoban/lineage/genealogy"
	"github.com/MarcoKoban/lineage/logger"
	"github.com/MarcoKoban/lineage/place"
	"github.com/MarcoKoban/lineage/sosa"
	"github.com/MarcoKoban/lineage/version"
)

// Options controls how a document is turned into a tree.
type Options struct {
	Validate         bool
	FormatConstraint string
	DefaultCalendar  calendar.Calendar
	Detect           bool
	DetectRules      calendar.DetectRules
	Rules            genealogy.Rules
}

// DefaultOptions mirrors the configuration defaults.
func DefaultOptions() Options {
	return Options{
		Validate:         true,
		FormatConstraint: am.DefaultFormatConstraint,
		DefaultCalendar:  calendar.Gregorian,
		Detect:           true,
		DetectRules:      calendar.DefaultDetectRules(),
		Rules:            genealogy.DefaultRules(),
	}
}

// OptionsFromConfig builds Options from a loaded configuration.
func OptionsFromConfig(cfg *am.Config) (Options, error) {
	cal, err := cfg.DefaultCalendar()
	if err != nil {
		return Options{}, errors.Wrap(err, "calendar.default")
	}
	return Options{
		Validate:         cfg.Ingest.Validate,
		FormatConstraint: cfg.GetFormatConstraint(),
		DefaultCalendar:  cal,
		Detect:           cfg.Calendar.Detect,
		DetectRules:      cfg.DetectRules(),
		Rules:            cfg.Rules(),
	}, nil
}

// Processor imports genealogy documents.
type Processor struct {
	opts       Options
	constraint *semver.Constraints
	converter  *calendar.Converter
	logger     *zap.SugaredLogger
}

// Result represents the outcome of one import
type Result struct {
	Source           string          `json:"source"`
	Format           Format          `json:"format,omitempty"`
	Version          string          `json:"version"`
	PersonsImported  int             `json:"persons_imported"`
	FamiliesImported int             `json:"families_imported"`
	SosaNumbered     int             `json:"sosa_numbered"`
	Validated        bool            `json:"validated"`
	Violations       int             `json:"violations"`
	Families         []FamilyReport  `json:"families,omitempty"`
	DateWarnings     []DateWarning   `json:"date_warnings,omitempty"`
	UndecodedKeys    []string        `json:"undecoded_keys,omitempty"`
	Tree             *genealogy.Tree `json:"-"`
	StartTime        time.Time       `json:"start_time"`
	EndTime          time.Time       `json:"end_time"`
}

// FamilyReport lists the rule violations found in one family.
type FamilyReport struct {
	Ref        string      `json:"ref"`
	Violations []Violation `json:"violations"`
}

// Violation is a broken relationship rule.
type Violation struct {
	Rule    genealogy.Rule `json:"rule"`
	Message string         `json:"message"`
}

// DateWarning records a date that was only partly understood.
type DateWarning struct {
	Owner    string           `json:"owner"`
	Event    event.Kind       `json:"event"`
	Text     string           `json:"text"`
	Calendar string           `json:"calendar"`
	Failed   []calendar.Field `json:"failed,omitempty"`
	Ignored  []string         `json:"ignored,omitempty"`
}

// HasViolations reports whether validation found anything.
func (r *Result) HasViolations() bool { return r.Violations > 0 }

// NewProcessor creates a processor. A nil logger discards output.
func NewProcessor(opts Options, log *zap.SugaredLogger) (*Processor, error) {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	constraint, err := semver.NewConstraint(opts.FormatConstraint)
	if err != nil {
		return nil, errors.WithHint(
			errors.Wrapf(err, "format constraint %q", opts.FormatConstraint),
			`use a semver constraint such as ">= 1.0, < 2.0"`,
		)
	}
	return &Processor{
		opts:       opts,
		constraint: constraint,
		converter:  calendar.NewConverter(calendar.WithDetectRules(opts.DetectRules), calendar.WithLogger(log)),
		logger:     log,
	}, nil
}

// ProcessFile decodes the document at path and imports it.
func (p *Processor) ProcessFile(path string) (*Result, error) {
	format, err := DetectFormat(path)
	if err != nil {
		return nil, err
	}

	var doc Document
	var undecoded []string
	switch format {
	case FormatTOML:
		md, err := toml.DecodeFile(path, &doc)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to decode %s", path)
		}
		for _, key := range md.Undecoded() {
			undecoded = append(undecoded, key.String())
		}
	case FormatYAML:
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to read %s", path)
		}
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, errors.Wrapf(err, "failed to decode %s", path)
		}
	}

	if len(undecoded) > 0 {
		p.logger.Warnw("ignoring unknown keys", logger.FieldFile, path, logger.FieldFields, undecoded)
	}

	result, err := p.Process(&doc)
	if err != nil {
		return nil, errors.Wrapf(err, "import %s", path)
	}
	result.Source = path
	result.Format = format
	result.UndecodedKeys = undecoded
	p.logger.Infow("imported document",
		logger.FieldFile, path,
		logger.FieldFormat, string(format),
		logger.FieldVersion, result.Version,
		logger.FieldCount, result.PersonsImported,
		logger.FieldTotalCount, result.FamiliesImported)
	return result, nil
}

// Process imports an already decoded document.
func (p *Processor) Process(doc *Document) (*Result, error) {
	result := &Result{Source: "<memory>", Version: doc.Version, StartTime: time.Now()}

	if err := p.checkVersion(doc.Version); err != nil {
		return nil, err
	}

	defaultCal := p.opts.DefaultCalendar
	if doc.Calendar != "" {
		cal, err := calendar.ParseCalendar(doc.Calendar)
		if err != nil {
			return nil, errors.Wrap(err, "document calendar")
		}
		defaultCal = cal
	}

	tree := genealogy.NewTree(
		genealogy.WithRules(p.opts.Rules),
		genealogy.WithLogger(p.logger.Named("genealogy")),
	)
	result.Tree = tree
	b := &builder{p: p, tree: tree, result: result, cal: defaultCal}

	var numbered []genealogy.PersonID
	for i := range doc.Persons {
		id, hasSosa, err := b.person(&doc.Persons[i])
		if err != nil {
			return nil, errors.Wrapf(err, "person #%d", i+1)
		}
		if hasSosa {
			numbered = append(numbered, id)
		}
	}
	result.PersonsImported = tree.PersonCount()

	for i := range doc.Families {
		if err := b.family(&doc.Families[i]); err != nil {
			return nil, errors.Wrapf(err, "family #%d", i+1)
		}
	}
	result.FamiliesImported = tree.FamilyCount()

	if err := b.sosa(doc.Root, numbered); err != nil {
		return nil, err
	}

	if p.opts.Validate {
		if err := b.validate(); err != nil {
			return nil, err
		}
	}

	result.EndTime = time.Now()
	return result, nil
}

func (p *Processor) checkVersion(raw string) error {
	if raw == "" {
		return errors.WithHint(
			errors.NewInvalidRequestError("document has no version"),
			fmt.Sprintf("add version = %q at the top of the document", version.DocumentFormat),
		)
	}
	v, err := semver.NewVersion(raw)
	if err != nil {
		return errors.Wrapf(errors.ErrInvalidRequest, "document version %q: %v", raw, err)
	}
	if !p.constraint.Check(v) {
		return errors.NewInvalidRequestError("document version %s does not satisfy %s", v, p.constraint)
	}
	return nil
}

// builder carries the state of one import.
type builder struct {
	p      *Processor
	tree   *genealogy.Tree
	result *Result
	cal    calendar.Calendar
}

func (b *builder) person(rec *PersonRecord) (genealogy.PersonID, bool, error) {
	key, err := genealogy.ParseKey(rec.Key)
	if err != nil {
		return 0, false, err
	}
	person, err := b.tree.AddPerson(key)
	if err != nil {
		return 0, false, err
	}

	sex, err := genealogy.ParseSex(rec.Sex)
	if err != nil {
		return 0, false, errors.Wrapf(err, "%s", key)
	}
	access, err := genealogy.ParseAccess(rec.Access)
	if err != nil {
		return 0, false, errors.Wrapf(err, "%s", key)
	}
	status, err := genealogy.ParseDeathStatus(rec.DeathStatus)
	if err != nil {
		return 0, false, errors.Wrapf(err, "%s", key)
	}
	burialKind, err := genealogy.ParseBurialKind(rec.BurialKind)
	if err != nil {
		return 0, false, errors.Wrapf(err, "%s", key)
	}

	owner := key.String()
	records := []struct {
		kind event.Kind
		rec  *EventRecord
	}{
		{event.Birth, rec.Birth},
		{event.Baptism, rec.Baptism},
		{event.Death, rec.Death},
		{event.Burial, rec.Burial},
	}
	events := make(map[event.Kind]event.Event, len(records))
	for _, r := range records {
		ev, err := b.event(owner, r.kind, r.rec)
		if err != nil {
			return 0, false, err
		}
		events[r.kind] = ev
	}

	person.SetSex(sex)
	person.SetAccess(access)
	person.SetPublicName(rec.PublicName)
	person.SetOccupation(rec.Occupation)
	person.SetBirth(events[event.Birth])
	person.SetBaptism(events[event.Baptism])
	person.SetDeath(status, events[event.Death])
	person.SetBurial(burialKind, events[event.Burial])

	for _, raw := range rec.Sosa {
		s, err := sosa.Parse(raw)
		if err != nil {
			return 0, false, errors.Wrapf(err, "sosa of %s", key)
		}
		person.AddSosa(s)
	}
	return person.ID(), len(person.Sosas()) > 0, nil
}

// event builds an event from its record. An untagged date is read in the
// document calendar and, when detection is enabled, resolved against the
// detection thresholds (see calendar.Converter.Interpret).
func (b *builder) event(owner string, kind event.Kind, rec *EventRecord) (event.Event, error) {
	ev := event.New(kind)
	if rec == nil {
		return ev, nil
	}

	if rec.Date != "" {
		cal := b.cal
		detect := b.p.opts.Detect
		if rec.Calendar != "" {
			explicit, err := calendar.ParseCalendar(rec.Calendar)
			if err != nil {
				return ev, errors.Wrapf(err, "%s of %s", kind, owner)
			}
			cal = explicit
			detect = false
		}

		var report calendar.ParseReport
		ev, report = ev.WithDateFromString(rec.Date, cal)
		if d, ok := ev.Date(); ok && detect {
			d = b.p.converter.Interpret(d)
			ev = ev.WithResolvedDate(d)
			cal = d.Calendar()
		}
		if !report.OK() {
			b.warnDate(owner, kind, rec.Date, cal, report)
		}
	}

	return ev.
		WithPlace(place.Parse(rec.Place)).
		WithNote(rec.Note).
		WithSource(rec.Source), nil
}

func (b *builder) warnDate(owner string, kind event.Kind, text string, cal calendar.Calendar, report calendar.ParseReport) {
	b.result.DateWarnings = append(b.result.DateWarnings, DateWarning{
		Owner:    owner,
		Event:    kind,
		Text:     text,
		Calendar: cal.String(),
		Failed:   report.Failed,
		Ignored:  report.Extra,
	})
	b.p.logger.Warnw("date partly parsed",
		logger.FieldPerson, owner,
		"event", string(kind),
		logger.FieldDate, text,
		logger.FieldCalendar, cal.String(),
		logger.FieldFields, report.String())
}

func (b *builder) lookup(keys []string) ([]genealogy.PersonID, error) {
	ids := make([]genealogy.PersonID, 0, len(keys))
	for _, raw := range keys {
		key, err := genealogy.ParseKey(raw)
		if err != nil {
			return nil, err
		}
		p, err := b.tree.PersonByKey(key)
		if err != nil {
			return nil, err
		}
		ids = append(ids, p.ID())
	}
	return ids, nil
}

func (b *builder) family(rec *FamilyRecord) error {
	ref := rec.ID
	if ref == "" {
		ref = uuid.NewString()
	}

	fathers, err := b.lookup(rec.Fathers)
	if err != nil {
		return errors.Wrapf(err, "fathers of %s", ref)
	}
	mothers, err := b.lookup(rec.Mothers)
	if err != nil {
		return errors.Wrapf(err, "mothers of %s", ref)
	}
	children, err := b.lookup(rec.Children)
	if err != nil {
		return errors.Wrapf(err, "children of %s", ref)
	}
	relation, err := genealogy.ParseRelation(rec.Relation)
	if err != nil {
		return errors.Wrapf(err, "relation of %s", ref)
	}

	f, err := b.tree.CreateFamilyUnchecked(genealogy.Members{
		Ref:      ref,
		Fathers:  fathers,
		Mothers:  mothers,
		Children: children,
		Relation: relation,
	})
	if err != nil {
		return errors.Wrapf(err, "family %s", ref)
	}

	f.SetComment(rec.Comment)
	for _, src := range rec.Sources {
		f.AddSource(src)
	}

	if rec.Divorce != nil {
		status, err := genealogy.ParseDivorceStatus(rec.Divorce.Status)
		if err != nil {
			return errors.Wrapf(err, "divorce of %s", ref)
		}
		ev, err := b.event(ref, event.Divorce, &rec.Divorce.EventRecord)
		if err != nil {
			return err
		}
		f.SetDivorce(genealogy.Divorce{Status: status, Event: ev})
	}

	for i := range rec.Events {
		if err := b.familyEvent(f, ref, &rec.Events[i]); err != nil {
			return err
		}
	}
	return nil
}

func (b *builder) familyEvent(f *genealogy.Family, ref string, rec *FamilyEventRecord) error {
	kind := event.Kind(rec.Kind)
	if !kind.IsFamily() {
		return errors.WithHint(
			errors.NewInvalidRequestError("unknown family event %q in %s", rec.Kind, ref),
			"family events are marriage, engagement, marriage_bann, marriage_contract, marriage_license, pacs, residence, divorce or separation",
		)
	}

	ev, err := b.event(ref, kind, &rec.EventRecord)
	if err != nil {
		return err
	}

	witnesses := make([]genealogy.WitnessInfo, 0, len(rec.Witnesses))
	for _, w := range rec.Witnesses {
		ids, err := b.lookup([]string{w.Key})
		if err != nil {
			return errors.Wrapf(err, "witness of %s in %s", kind, ref)
		}
		wk, err := genealogy.ParseWitnessKind(w.Kind)
		if err != nil {
			return errors.Wrapf(err, "witness of %s in %s", kind, ref)
		}
		witnesses = append(witnesses, genealogy.NewWitness(ids[0], wk))
	}

	if err := b.tree.AddFamilyEvent(f.ID(), genealogy.NewFamilyEvent(ev, witnesses...)); err != nil {
		return errors.Wrapf(err, "%s in %s", kind, ref)
	}
	return nil
}

// sosa numbers the root's ancestors and spreads every number listed in
// the document through the assembled graph.
func (b *builder) sosa(root string, numbered []genealogy.PersonID) error {
	if root != "" {
		key, err := genealogy.ParseKey(root)
		if err != nil {
			return errors.Wrap(err, "sosa root")
		}
		p, err := b.tree.PersonByKey(key)
		if err != nil {
			return errors.Wrap(err, "sosa root")
		}
		if err := b.tree.SetSosaRoot(p.ID()); err != nil {
			return errors.Wrap(err, "sosa root")
		}
	}

	for _, id := range numbered {
		if err := b.tree.PropagateSosaToParents(id); err != nil {
			return err
		}
		if err := b.tree.PropagateSosaToChildren(id); err != nil {
			return err
		}
	}

	for _, p := range b.tree.Persons() {
		if !p.PrimarySosa().IsZero() {
			b.result.SosaNumbered++
		}
	}
	return nil
}

func (b *builder) validate() error {
	b.result.Validated = true
	for _, f := range b.tree.Families() {
		errs, err := b.tree.FamilyViolations(f.ID())
		if err != nil {
			return err
		}
		if len(errs) == 0 {
			continue
		}

		report := FamilyReport{Ref: f.Ref()}
		for _, e := range errs {
			rule, _ := genealogy.RuleOf(e)
			report.Violations = append(report.Violations, Violation{Rule: rule, Message: messageOf(e)})
		}
		b.result.Families = append(b.result.Families, report)
		b.result.Violations += len(report.Violations)

		b.p.logger.Debugw("family violates rules",
			logger.FieldFamily, f.Ref(),
			logger.FieldCount, len(report.Violations))
	}
	return nil
}

func messageOf(err error) string {
	var ve *genealogy.ValidationError
	if errors.As(err, &ve) {
		return ve.Message
	}
	return fmt.Sprint(err)
}
