package config

import "coursekit/internal/course"

func Normalize(cfg Config) Config {
	if cfg.Version == 0 {
		cfg.Version = SchemaVersion
	}
	if cfg.Storage.Root == "" {
		cfg.Storage.Root = "~/.coursekit"
	}
	if cfg.Defaults.TeachingWeeks == 0 {
		cfg.Defaults.TeachingWeeks = DefaultTeachingWeeks
	}
	if len(cfg.Defaults.UnitSubdirs) == 0 {
		cfg.Defaults.UnitSubdirs = course.DefaultSubdirs()
	}
	if len(cfg.Defaults.Terms) == 0 {
		cfg.Defaults.Terms = course.Terms()
	}
	return cfg
}
