package config

import "coursekit/internal/course"

const (
	SchemaVersion = 1

	// DefaultTeachingWeeks is the standard number of teaching weeks in a
	// term.
	DefaultTeachingWeeks = 13
)

// DefaultConfig returns a fully-populated v1 config document.
func DefaultConfig() Config {
	return Config{
		Version: SchemaVersion,
		Storage: StorageConfig{
			Root: "~/.coursekit",
		},
		Defaults: DefaultsConfig{
			TeachingWeeks: DefaultTeachingWeeks,
			UnitSubdirs:   course.DefaultSubdirs(),
			Terms:         course.Terms(),
		},
	}
}
