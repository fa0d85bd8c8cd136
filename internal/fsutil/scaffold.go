package fsutil

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// ErrExists reports that a scaffold target directory is already present on
// disk. It is distinct from the setup log's already-completed condition: a
// directory can exist without a log entry after a partial prior run or
// external interference.
var ErrExists = errors.New("directory already exists")

// Scaffold creates root plus the named subdirectories under it, in order.
// Missing parents of root are created; root itself must not exist — an
// existing root aborts the whole scaffold before any subdirectory is made.
// A failure partway through leaves earlier subdirectories in place.
func Scaffold(root string, subdirs []string) error {
	if err := os.MkdirAll(filepath.Dir(root), 0o755); err != nil {
		return fmt.Errorf("FS_PARENT_CREATE: %w", err)
	}
	if err := os.Mkdir(root, 0o755); err != nil {
		if os.IsExist(err) {
			return fmt.Errorf("FS_ROOT_EXISTS: %s: %w", root, ErrExists)
		}
		return fmt.Errorf("FS_ROOT_CREATE: %w", err)
	}
	for _, name := range subdirs {
		if err := os.Mkdir(filepath.Join(root, name), 0o755); err != nil {
			return fmt.Errorf("FS_SUBDIR_CREATE: %s: %w", name, err)
		}
	}
	return nil
}
