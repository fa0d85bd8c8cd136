// Package course models a taught course unit and its assessments, and owns
// the one-time directory-scaffolding operations for both. Every scaffolding
// operation is guarded by the per-directory setup log so it cannot run twice
// against the same tree.
package course

import "errors"

// Guarded operation names as they appear in the setup log.
const (
	OpStructure         = "structure"
	OpTeachingStructure = "teaching_structure"
	OpCopyDocuments     = "copy_documents"
	OpAssessStructure   = "assessment_structure"
	OpGradersList       = "graders_list"
)

// Folder and artifact names inside a unit tree.
const (
	TeachingDir         = "Teaching Material"
	AssessmentsDir      = "Assessments"
	DocumentsDir        = "Module Documents"
	AssessmentParentDir = "Assessment"
	AssessmentDocsDir   = "Assessment Documents and Templates"
	GradersFilename     = "Graders List.txt"
)

// ErrPrecondition reports an invalid argument rejected before any side
// effect (bad week count, topic/week mismatch).
var ErrPrecondition = errors.New("precondition violated")

// ErrDeclined reports that the user declined an overwrite confirmation. It
// is a normal abort, not a failure: nothing was copied and the setup log was
// not updated.
var ErrDeclined = errors.New("declined by user")

// Confirm decides whether a document batch may overwrite the named existing
// files. A nil Confirm declines.
type Confirm func(existing []string) bool

// Structurable is anything that can scaffold its own directory tree exactly
// once. Structure returns the new root on success.
type Structurable interface {
	Structure() (string, error)
}

var (
	_ Structurable = (*Unit)(nil)
	_ Structurable = (*Assessment)(nil)
)

// DefaultSubdirs returns the organizational folders created under a new
// unit root.
func DefaultSubdirs() []string {
	return []string{TeachingDir, AssessmentsDir, DocumentsDir}
}

// Terms returns the recognized term identifiers.
func Terms() []string {
	return []string{"AUT", "SPR", "SUM"}
}
