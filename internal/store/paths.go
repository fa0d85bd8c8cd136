package store

import "path/filepath"

func StatePath(root string) string {
	return filepath.Join(root, "state.toml")
}
