package config

// Config is the frozen v1 schema for the coursekit config document.
type Config struct {
	Version  int            `toml:"version"`
	Storage  StorageConfig  `toml:"storage"`
	Defaults DefaultsConfig `toml:"defaults"`
	Compat   CompatConfig   `toml:"compat"`
}

type StorageConfig struct {
	Root string `toml:"root"`
}

// DefaultsConfig carries the scaffolding defaults applied when a caller does
// not supply them explicitly.
type DefaultsConfig struct {
	TeachingWeeks int      `toml:"teaching_weeks"`
	UnitSubdirs   []string `toml:"unit_subdirs"`
	Terms         []string `toml:"terms"`
}

type CompatConfig struct {
	MinCLIVersion string `toml:"min_cli_version,omitempty"`
}
