package course

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"coursekit/internal/fsutil"
	"coursekit/internal/setuplog"
)

// Assessment is a graded deliverable belonging to exactly one Unit,
// referenced by UnitCode. It scaffolds its own directory nested under the
// owning unit's tree.
type Assessment struct {
	UnitCode string `validate:"required"`
	UnitName string
	Year     string `validate:"required"`

	Kind    string    `validate:"required"`
	Name    string    `validate:"required"`
	DueDate time.Time `validate:"required"`
	// Weight is the assessment's percentage of the unit grade.
	Weight float64 `validate:"gte=0,lte=100"`

	// Root is the owning unit's structured root until Structure runs,
	// then the assessment's own directory.
	Root string `validate:"required"`
}

// DirName is the assessment's directory name under <unit root>/Assessment.
func (a *Assessment) DirName() string {
	return fmt.Sprintf("%s (%s)", a.Name, a.Kind)
}

// Structure creates the assessment's directory under the unit tree at
// <unit root>/Assessment/<name> (<kind>) with its documents folder, then
// narrows a.Root and records the operation in the new directory's log.
func (a *Assessment) Structure() (string, error) {
	if err := a.Validate(); err != nil {
		return "", err
	}
	if err := setuplog.New(a.Root).Guard(OpAssessStructure); err != nil {
		return "", err
	}

	newRoot := filepath.Join(a.Root, AssessmentParentDir, a.DirName())
	if err := fsutil.Scaffold(newRoot, []string{AssessmentDocsDir}); err != nil {
		return "", err
	}
	a.Root = newRoot

	err := setuplog.New(newRoot).Record(OpAssessStructure, map[string]string{
		"unit":   a.UnitCode,
		"due":    a.DueDate.Format("2006-01-02"),
		"weight": fmt.Sprintf("%g", a.Weight),
	})
	if err != nil {
		return "", err
	}
	return newRoot, nil
}

// WriteGraders persists the ordered grader names, one per line, as
// "Graders List.txt" in the assessment directory and returns its path.
// Duplicates and an empty list are permitted. Guarded like every other
// one-time setup step.
func (a *Assessment) WriteGraders(graders []string) (string, error) {
	log := setuplog.New(a.Root)
	if err := log.Guard(OpGradersList); err != nil {
		return "", err
	}

	var b strings.Builder
	for _, g := range graders {
		b.WriteString(g)
		b.WriteByte('\n')
	}
	path := filepath.Join(a.Root, GradersFilename)
	if err := fsutil.AtomicWrite(path, []byte(b.String()), 0o644); err != nil {
		return "", err
	}

	err := log.Record(OpGradersList, map[string]string{
		"graders": fmt.Sprintf("%d", len(graders)),
	})
	if err != nil {
		return "", err
	}
	return path, nil
}
