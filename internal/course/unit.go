package course

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"coursekit/internal/fsutil"
	"coursekit/internal/setuplog"
)

// Unit represents one offering of a taught module in a given year and term.
type Unit struct {
	Name   string `validate:"required"`
	Code   string `validate:"required"`
	Year   string `validate:"required"`
	Term   string `validate:"required"`
	Leader string `validate:"required"`

	// Root starts as the parent directory supplied by the caller and
	// narrows to the dedicated unit subtree on the first successful
	// Structure call. There is no ambient default.
	Root string `validate:"required"`

	// Subdirs overrides the organizational folders created under the
	// root. Empty means DefaultSubdirs.
	Subdirs []string
}

// DirName is the unit's directory name under the provisional root.
func (u *Unit) DirName() string {
	return fmt.Sprintf("%s %s %s", u.Code, u.Term, u.Year)
}

// Structure creates the unit's base tree: a dedicated root named after the
// unit plus the organizational subfolders, then narrows u.Root to the new
// tree and records the operation. A prior recorded run fails with
// setuplog.ErrAlreadyRun; a root already on disk without a log entry fails
// with fsutil.ErrExists.
func (u *Unit) Structure() (string, error) {
	if err := u.Validate(); err != nil {
		return "", err
	}
	if err := setuplog.New(u.Root).Guard(OpStructure); err != nil {
		return "", err
	}

	subdirs := u.Subdirs
	if len(subdirs) == 0 {
		subdirs = DefaultSubdirs()
	}
	newRoot := filepath.Join(u.Root, u.DirName())
	if err := fsutil.Scaffold(newRoot, subdirs); err != nil {
		return "", err
	}
	u.Root = newRoot

	err := setuplog.New(newRoot).Record(OpStructure, map[string]string{
		"unit":    u.Code,
		"subdirs": strings.Join(subdirs, ", "),
	})
	if err != nil {
		return "", err
	}
	return newRoot, nil
}

// WeekFolder is the teaching-material folder name for week i. Topic may be
// empty.
func WeekFolder(i int, topic string) string {
	if topic == "" {
		return fmt.Sprintf("Week %d", i)
	}
	return fmt.Sprintf("Week %d - %s", i, topic)
}

// TeachingStructure creates one folder per teaching week under the unit's
// Teaching Material directory. Topics, when supplied, must match weeks
// exactly; both preconditions are checked before any folder is created.
func (u *Unit) TeachingStructure(weeks int, topics []string) error {
	if weeks <= 0 {
		return fmt.Errorf("COURSE_WEEKS: weeks must be positive, got %d: %w", weeks, ErrPrecondition)
	}
	if len(topics) > 0 && len(topics) != weeks {
		return fmt.Errorf("COURSE_TOPICS: %d topics for %d weeks: %w", len(topics), weeks, ErrPrecondition)
	}

	log := setuplog.New(u.Root)
	if err := log.Guard(OpTeachingStructure); err != nil {
		return err
	}

	material := filepath.Join(u.Root, TeachingDir)
	if err := os.MkdirAll(material, 0o755); err != nil {
		return fmt.Errorf("FS_PARENT_CREATE: %w", err)
	}
	for i := 1; i <= weeks; i++ {
		topic := ""
		if len(topics) > 0 {
			topic = topics[i-1]
		}
		name := WeekFolder(i, topic)
		if err := os.Mkdir(filepath.Join(material, name), 0o755); err != nil {
			if os.IsExist(err) {
				return fmt.Errorf("FS_WEEK_EXISTS: %s: %w", name, fsutil.ErrExists)
			}
			return fmt.Errorf("FS_SUBDIR_CREATE: %s: %w", name, err)
		}
	}

	return log.Record(OpTeachingStructure, map[string]string{
		"weeks":  fmt.Sprintf("%d", weeks),
		"topics": strings.Join(topics, ", "),
	})
}

// CopyDocuments copies the given files byte-for-byte into the unit's
// Module Documents folder, preserving names. Any name collision in the
// destination gates the whole batch behind confirm; declining aborts with
// ErrDeclined and zero files copied. Returns the destination paths.
func (u *Unit) CopyDocuments(docs []string, confirm Confirm) ([]string, error) {
	if len(docs) == 0 {
		return nil, nil
	}
	dest := filepath.Join(u.Root, DocumentsDir)
	log := setuplog.New(u.Root)
	ran, err := log.HasRun(OpCopyDocuments)
	if err != nil {
		return nil, err
	}

	var existing []string
	for _, doc := range docs {
		if _, err := os.Stat(filepath.Join(dest, filepath.Base(doc))); err == nil {
			existing = append(existing, filepath.Base(doc))
		}
	}
	if len(existing) > 0 {
		if confirm == nil || !confirm(existing) {
			return nil, fmt.Errorf("COURSE_COPY: overwrite of %s: %w", strings.Join(existing, ", "), ErrDeclined)
		}
	}

	copied := make([]string, 0, len(docs))
	names := make([]string, 0, len(docs))
	for _, doc := range docs {
		dst, err := fsutil.CopyInto(dest, doc)
		if err != nil {
			return copied, err
		}
		copied = append(copied, dst)
		names = append(names, filepath.Base(doc))
	}

	fields := map[string]string{"documents": strings.Join(names, ", ")}
	if ran {
		fields["rerun"] = "true"
	}
	if err := log.Record(OpCopyDocuments, fields); err != nil {
		return copied, err
	}
	return copied, nil
}
