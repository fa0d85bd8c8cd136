// Package app wires configuration, the registry, and the course operations
// behind one service consumed by the CLI.
package app

import (
	"fmt"
	"os"
	"time"

	"coursekit/internal/config"
	"coursekit/internal/course"
	"coursekit/internal/doctor"
	"coursekit/internal/setuplog"
	"coursekit/internal/store"
)

type Options struct {
	ConfigPath string
}

type Service struct {
	ConfigPath  string
	Config      config.Config
	StorageRoot string
}

func New(opts Options) (*Service, error) {
	configPath := opts.ConfigPath
	if configPath == "" {
		configPath = config.DefaultConfigPath()
	}
	cfg, err := config.Ensure(configPath)
	if err != nil {
		return nil, err
	}
	root, err := config.ResolveStorageRoot(cfg)
	if err != nil {
		return nil, err
	}
	return &Service{ConfigPath: configPath, Config: cfg, StorageRoot: root}, nil
}

// UnitParams carries everything needed to construct a unit. Root is the
// parent directory the unit tree is created under; empty means the
// configured storage root.
type UnitParams struct {
	Name    string
	Code    string
	Year    string
	Term    string
	Leader  string
	Root    string
	Subdirs []string
}

// UnitInit scaffolds a new unit tree and registers it. The same offering
// (code, term, year) cannot be registered twice.
func (s *Service) UnitInit(p UnitParams) (store.UnitRecord, error) {
	if !s.termAllowed(p.Term) {
		return store.UnitRecord{}, fmt.Errorf("APP_TERM: term %q not in %v", p.Term, s.Config.Defaults.Terms)
	}
	root := p.Root
	if root == "" {
		root = s.StorageRoot
	}
	subdirs := p.Subdirs
	if len(subdirs) == 0 {
		subdirs = s.Config.Defaults.UnitSubdirs
	}

	st, err := store.LoadState(s.StorageRoot)
	if err != nil {
		return store.UnitRecord{}, err
	}
	candidate := store.UnitRecord{Code: p.Code, Term: p.Term, Year: p.Year}
	for _, u := range st.Units {
		if u.Key() == candidate.Key() {
			return store.UnitRecord{}, fmt.Errorf("APP_DUPLICATE: offering %s already registered at %s", u.Key(), u.Root)
		}
	}

	unit := &course.Unit{
		Name:    p.Name,
		Code:    p.Code,
		Year:    p.Year,
		Term:    p.Term,
		Leader:  p.Leader,
		Root:    root,
		Subdirs: subdirs,
	}
	newRoot, err := unit.Structure()
	if err != nil {
		return store.UnitRecord{}, err
	}

	rec := store.UnitRecord{
		Code:         p.Code,
		Name:         p.Name,
		Year:         p.Year,
		Term:         p.Term,
		Leader:       p.Leader,
		Root:         newRoot,
		StructuredAt: time.Now().UTC(),
	}
	store.UpsertUnit(&st, rec)
	if err := store.SaveState(s.StorageRoot, st); err != nil {
		return store.UnitRecord{}, err
	}
	return rec, nil
}

// Teaching creates the per-week folders for a registered unit. A zero week
// count means the configured default.
func (s *Service) Teaching(code string, weeks int, topics []string) error {
	unit, err := s.lookupUnit(code)
	if err != nil {
		return err
	}
	if weeks == 0 {
		weeks = s.Config.Defaults.TeachingWeeks
	}
	return unit.TeachingStructure(weeks, topics)
}

// DocsCopy copies documents into a registered unit's documents folder.
func (s *Service) DocsCopy(code string, docs []string, confirm course.Confirm) ([]string, error) {
	unit, err := s.lookupUnit(code)
	if err != nil {
		return nil, err
	}
	return unit.CopyDocuments(docs, confirm)
}

type AssessmentParams struct {
	UnitCode string
	Name     string
	Kind     string
	DueDate  time.Time
	Weight   float64
}

// AssessmentCreate scaffolds an assessment directory nested under its
// owning unit's tree. The unit must already be registered; the assessment
// references it by code.
func (s *Service) AssessmentCreate(p AssessmentParams) (store.AssessmentRecord, error) {
	st, err := store.LoadState(s.StorageRoot)
	if err != nil {
		return store.AssessmentRecord{}, err
	}
	unit, ok := store.FindUnit(st, p.UnitCode)
	if !ok {
		return store.AssessmentRecord{}, fmt.Errorf("APP_UNKNOWN_UNIT: no registered unit with code %q", p.UnitCode)
	}

	a := &course.Assessment{
		UnitCode: unit.Code,
		UnitName: unit.Name,
		Year:     unit.Year,
		Kind:     p.Kind,
		Name:     p.Name,
		DueDate:  p.DueDate,
		Weight:   p.Weight,
		Root:     unit.Root,
	}
	newRoot, err := a.Structure()
	if err != nil {
		return store.AssessmentRecord{}, err
	}

	rec := store.AssessmentRecord{
		UnitCode:     unit.Code,
		Name:         p.Name,
		Kind:         p.Kind,
		DueDate:      p.DueDate,
		Weight:       p.Weight,
		Root:         newRoot,
		StructuredAt: time.Now().UTC(),
	}
	store.UpsertAssessment(&st, rec)
	if err := store.SaveState(s.StorageRoot, st); err != nil {
		return store.AssessmentRecord{}, err
	}
	return rec, nil
}

// Graders writes the grader roster for a registered assessment and returns
// the artifact path.
func (s *Service) Graders(unitCode, name, kind string, graders []string) (string, error) {
	st, err := store.LoadState(s.StorageRoot)
	if err != nil {
		return "", err
	}
	rec, ok := store.FindAssessment(st, unitCode, name, kind)
	if !ok {
		return "", fmt.Errorf("APP_UNKNOWN_ASSESSMENT: %s has no assessment %q (%s)", unitCode, name, kind)
	}
	a := &course.Assessment{
		UnitCode: rec.UnitCode,
		Kind:     rec.Kind,
		Name:     rec.Name,
		DueDate:  rec.DueDate,
		Weight:   rec.Weight,
		Root:     rec.Root,
	}
	return a.WriteGraders(graders)
}

// List returns the registry.
func (s *Service) List() (store.State, error) {
	return store.LoadState(s.StorageRoot)
}

// LogEntries decodes the setup log of a registered unit (by code) or of an
// arbitrary directory path.
func (s *Service) LogEntries(target string) ([]setuplog.Entry, error) {
	st, err := store.LoadState(s.StorageRoot)
	if err != nil {
		return nil, err
	}
	dir := target
	if rec, ok := store.FindUnit(st, target); ok {
		dir = rec.Root
	} else if info, statErr := os.Stat(target); statErr != nil || !info.IsDir() {
		return nil, fmt.Errorf("APP_UNKNOWN_TARGET: %q is neither a registered unit code nor a directory", target)
	}
	return setuplog.New(dir).Entries()
}

// Doctor runs the installation health checks.
func (s *Service) Doctor() doctor.Report {
	return (&doctor.Service{ConfigPath: s.ConfigPath, Version: config.Version}).Run()
}

func (s *Service) termAllowed(term string) bool {
	for _, t := range s.Config.Defaults.Terms {
		if t == term {
			return true
		}
	}
	return false
}

func (s *Service) lookupUnit(code string) (*course.Unit, error) {
	st, err := store.LoadState(s.StorageRoot)
	if err != nil {
		return nil, err
	}
	rec, ok := store.FindUnit(st, code)
	if !ok {
		return nil, fmt.Errorf("APP_UNKNOWN_UNIT: no registered unit with code %q", code)
	}
	return &course.Unit{
		Name:   rec.Name,
		Code:   rec.Code,
		Year:   rec.Year,
		Term:   rec.Term,
		Leader: rec.Leader,
		Root:   rec.Root,
	}, nil
}
