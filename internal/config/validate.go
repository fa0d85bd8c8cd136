package config

import (
	"fmt"
	"strings"

	"golang.org/x/mod/semver"
)

func Validate(cfg Config) error {
	if cfg.Version != SchemaVersion {
		return fmt.Errorf("CFG_VERSION: unsupported version %d", cfg.Version)
	}
	if cfg.Storage.Root == "" {
		return fmt.Errorf("CFG_STORAGE: missing storage root")
	}
	if cfg.Defaults.TeachingWeeks <= 0 {
		return fmt.Errorf("CFG_DEFAULTS: teaching_weeks must be positive, got %d", cfg.Defaults.TeachingWeeks)
	}
	if len(cfg.Defaults.UnitSubdirs) == 0 {
		return fmt.Errorf("CFG_DEFAULTS: unit_subdirs must not be empty")
	}
	seen := map[string]struct{}{}
	for _, name := range cfg.Defaults.UnitSubdirs {
		if strings.TrimSpace(name) == "" {
			return fmt.Errorf("CFG_DEFAULTS: blank unit subdir name")
		}
		if _, ok := seen[name]; ok {
			return fmt.Errorf("CFG_DEFAULTS: duplicate unit subdir %q", name)
		}
		seen[name] = struct{}{}
	}
	if len(cfg.Defaults.Terms) == 0 {
		return fmt.Errorf("CFG_DEFAULTS: terms must not be empty")
	}
	for _, term := range cfg.Defaults.Terms {
		if strings.TrimSpace(term) == "" {
			return fmt.Errorf("CFG_DEFAULTS: blank term identifier")
		}
	}
	if v := cfg.Compat.MinCLIVersion; v != "" {
		if !semver.IsValid(canonicalVersion(v)) {
			return fmt.Errorf("CFG_COMPAT: invalid min_cli_version %q", v)
		}
	}
	return nil
}

func canonicalVersion(v string) string {
	if v == "" {
		return ""
	}
	if !strings.HasPrefix(v, "v") {
		v = "v" + v
	}
	return v
}
