package app

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"coursekit/internal/config"
	"coursekit/internal/course"
	"coursekit/internal/setuplog"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	storage := t.TempDir()
	configPath := filepath.Join(t.TempDir(), "config.toml")
	cfg := config.DefaultConfig()
	cfg.Storage.Root = storage
	if err := config.Save(configPath, cfg); err != nil {
		t.Fatalf("save config: %v", err)
	}
	svc, err := New(Options{ConfigPath: configPath})
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return svc
}

func initUnit(t *testing.T, svc *Service) string {
	t.Helper()
	rec, err := svc.UnitInit(UnitParams{
		Name:   "Systems Programming",
		Code:   "CS4006",
		Year:   "2026-27",
		Term:   "AUT",
		Leader: "A. Lecturer",
	})
	if err != nil {
		t.Fatalf("unit init: %v", err)
	}
	return rec.Root
}

func TestUnitInitScaffoldsAndRegisters(t *testing.T) {
	svc := newTestService(t)
	root := initUnit(t, svc)

	if root != filepath.Join(svc.StorageRoot, "CS4006 AUT 2026-27") {
		t.Fatalf("unexpected unit root %q", root)
	}
	for _, sub := range course.DefaultSubdirs() {
		if _, err := os.Stat(filepath.Join(root, sub)); err != nil {
			t.Fatalf("missing subdir %q: %v", sub, err)
		}
	}
	st, err := svc.List()
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(st.Units) != 1 || st.Units[0].Code != "CS4006" {
		t.Fatalf("registry not updated: %+v", st.Units)
	}
}

func TestUnitInitRejectsDuplicateOffering(t *testing.T) {
	svc := newTestService(t)
	initUnit(t, svc)

	_, err := svc.UnitInit(UnitParams{
		Name: "Systems Programming", Code: "CS4006", Year: "2026-27",
		Term: "AUT", Leader: "A. Lecturer",
	})
	if err == nil {
		t.Fatalf("duplicate offering must be rejected")
	}
	// Same code in a different term is a new offering; it scaffolds its
	// own tree next to the first.
	if _, err := svc.UnitInit(UnitParams{
		Name: "Systems Programming", Code: "CS4006", Year: "2026-27",
		Term: "SPR", Leader: "A. Lecturer",
	}); err != nil {
		t.Fatalf("different term should be allowed: %v", err)
	}
}

func TestUnitInitRejectsUnknownTerm(t *testing.T) {
	svc := newTestService(t)
	_, err := svc.UnitInit(UnitParams{
		Name: "n", Code: "c", Year: "y", Term: "WIN", Leader: "l",
	})
	if err == nil {
		t.Fatalf("unknown term must be rejected")
	}
}

func TestTeachingUsesConfiguredDefaultWeeks(t *testing.T) {
	svc := newTestService(t)
	root := initUnit(t, svc)

	if err := svc.Teaching("CS4006", 0, nil); err != nil {
		t.Fatalf("teaching: %v", err)
	}
	entries, err := os.ReadDir(filepath.Join(root, course.TeachingDir))
	if err != nil {
		t.Fatalf("read teaching dir: %v", err)
	}
	if len(entries) != config.DefaultTeachingWeeks {
		t.Fatalf("expected %d week folders, got %d", config.DefaultTeachingWeeks, len(entries))
	}
}

func TestTeachingSecondRunGuarded(t *testing.T) {
	svc := newTestService(t)
	initUnit(t, svc)
	if err := svc.Teaching("CS4006", 2, nil); err != nil {
		t.Fatalf("first teaching: %v", err)
	}
	err := svc.Teaching("CS4006", 2, nil)
	if !errors.Is(err, setuplog.ErrAlreadyRun) {
		t.Fatalf("expected ErrAlreadyRun, got %v", err)
	}
}

func TestTeachingUnknownUnit(t *testing.T) {
	svc := newTestService(t)
	if err := svc.Teaching("CS9999", 2, nil); err == nil {
		t.Fatalf("unknown unit must fail")
	}
}

func TestAssessmentCreateNestsAndRegisters(t *testing.T) {
	svc := newTestService(t)
	root := initUnit(t, svc)

	rec, err := svc.AssessmentCreate(AssessmentParams{
		UnitCode: "CS4006",
		Name:     "Midterm",
		Kind:     "Exam",
		DueDate:  time.Date(2026, 11, 6, 0, 0, 0, 0, time.UTC),
		Weight:   30,
	})
	if err != nil {
		t.Fatalf("assessment create: %v", err)
	}
	want := filepath.Join(root, course.AssessmentParentDir, "Midterm (Exam)")
	if rec.Root != want {
		t.Fatalf("assessment root = %q, want %q", rec.Root, want)
	}
	if _, err := os.Stat(filepath.Join(want, course.AssessmentDocsDir)); err != nil {
		t.Fatalf("missing assessment docs dir: %v", err)
	}
}

func TestAssessmentCreateRequiresRegisteredUnit(t *testing.T) {
	svc := newTestService(t)
	_, err := svc.AssessmentCreate(AssessmentParams{
		UnitCode: "CS9999", Name: "Midterm", Kind: "Exam",
		DueDate: time.Date(2026, 11, 6, 0, 0, 0, 0, time.UTC),
	})
	if err == nil {
		t.Fatalf("assessment for unregistered unit must fail")
	}
}

func TestGradersRoundTripThroughService(t *testing.T) {
	svc := newTestService(t)
	initUnit(t, svc)
	if _, err := svc.AssessmentCreate(AssessmentParams{
		UnitCode: "CS4006", Name: "Midterm", Kind: "Exam",
		DueDate: time.Date(2026, 11, 6, 0, 0, 0, 0, time.UTC), Weight: 30,
	}); err != nil {
		t.Fatalf("assessment create: %v", err)
	}

	path, err := svc.Graders("CS4006", "Midterm", "Exam", []string{"A", "B", "C"})
	if err != nil {
		t.Fatalf("graders: %v", err)
	}
	blob, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read roster: %v", err)
	}
	if string(blob) != "A\nB\nC\n" {
		t.Fatalf("unexpected roster %q", blob)
	}

	if _, err := svc.Graders("CS4006", "Midterm", "Exam", []string{"D"}); !errors.Is(err, setuplog.ErrAlreadyRun) {
		t.Fatalf("second roster write must hit the guard, got %v", err)
	}
}

func TestDocsCopyThroughService(t *testing.T) {
	svc := newTestService(t)
	root := initUnit(t, svc)

	doc := filepath.Join(t.TempDir(), "handbook.md")
	if err := os.WriteFile(doc, []byte("v1"), 0o644); err != nil {
		t.Fatalf("seed doc: %v", err)
	}
	copied, err := svc.DocsCopy("CS4006", []string{doc}, nil)
	if err != nil {
		t.Fatalf("docs copy: %v", err)
	}
	if len(copied) != 1 {
		t.Fatalf("expected 1 copy, got %d", len(copied))
	}
	if _, err := os.Stat(filepath.Join(root, course.DocumentsDir, "handbook.md")); err != nil {
		t.Fatalf("document not copied: %v", err)
	}
}

func TestLogEntriesByCodeAndPath(t *testing.T) {
	svc := newTestService(t)
	root := initUnit(t, svc)

	entries, err := svc.LogEntries("CS4006")
	if err != nil {
		t.Fatalf("log by code: %v", err)
	}
	if len(entries) != 1 || entries[0].Operation != course.OpStructure {
		t.Fatalf("unexpected entries %+v", entries)
	}

	entries, err = svc.LogEntries(root)
	if err != nil {
		t.Fatalf("log by path: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("unexpected entries %+v", entries)
	}

	if _, err := svc.LogEntries("CS9999"); err == nil {
		t.Fatalf("unknown target must fail")
	}
}

func TestDoctorOnFreshService(t *testing.T) {
	svc := newTestService(t)
	initUnit(t, svc)
	report := svc.Doctor()
	if !report.Healthy {
		t.Fatalf("fresh service should be healthy: %+v", report.Findings)
	}
}
