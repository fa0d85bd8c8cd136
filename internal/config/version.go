package config

import "golang.org/x/mod/semver"

// Build metadata, overridden at link time.
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// MeetsMinVersion reports whether current satisfies the configured minimum
// CLI version. Non-semver builds (dev, local) are never gated.
func MeetsMinVersion(current, min string) bool {
	if min == "" {
		return true
	}
	c := canonicalVersion(current)
	m := canonicalVersion(min)
	if !semver.IsValid(c) || !semver.IsValid(m) {
		return true
	}
	return semver.Compare(c, m) >= 0
}
