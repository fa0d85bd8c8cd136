package fsutil

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// CopyInto copies src byte-for-byte into dir, keeping its base name, and
// returns the destination path. An existing destination is truncated.
func CopyInto(dir, src string) (string, error) {
	in, err := os.Open(src)
	if err != nil {
		return "", fmt.Errorf("FS_COPY_OPEN: %w", err)
	}
	defer in.Close()

	dst := filepath.Join(dir, filepath.Base(src))
	out, err := os.Create(dst)
	if err != nil {
		return "", fmt.Errorf("FS_COPY_CREATE: %w", err)
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		_ = os.Remove(dst)
		return "", fmt.Errorf("FS_COPY_WRITE: %w", err)
	}
	if err := out.Close(); err != nil {
		return "", fmt.Errorf("FS_COPY_WRITE: %w", err)
	}
	return dst, nil
}
