// Package doctor inspects a coursekit installation and reports anything
// that would make the scaffolding operations misbehave.
package doctor

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"coursekit/internal/config"
	"coursekit/internal/course"
	"coursekit/internal/setuplog"
	"coursekit/internal/store"
)

type Finding struct {
	Code    string `json:"code"`
	Level   string `json:"level"`
	Message string `json:"message"`
}

type Report struct {
	Healthy  bool      `json:"healthy"`
	Findings []Finding `json:"findings"`
}

type Service struct {
	ConfigPath string
	Version    string
}

func (s *Service) Run() Report {
	findings := []Finding{}

	var cfg config.Config
	cfgOK := false
	if _, err := os.Stat(s.ConfigPath); err != nil {
		findings = append(findings, Finding{Code: "DOC_CONFIG_MISSING", Level: "error", Message: err.Error()})
	} else if cfg, err = config.Load(s.ConfigPath); err != nil {
		findings = append(findings, Finding{Code: "DOC_CONFIG_INVALID", Level: "error", Message: err.Error()})
	} else {
		cfgOK = true
	}

	if cfgOK {
		if !config.MeetsMinVersion(s.Version, cfg.Compat.MinCLIVersion) {
			findings = append(findings, Finding{
				Code:    "DOC_VERSION_GATE",
				Level:   "error",
				Message: fmt.Sprintf("coursekit %s is older than required %s", s.Version, cfg.Compat.MinCLIVersion),
			})
		}
		findings = append(findings, s.checkStorage(cfg)...)
	}

	healthy := true
	for _, f := range findings {
		if f.Level == "error" {
			healthy = false
		}
	}
	return Report{Healthy: healthy, Findings: findings}
}

func (s *Service) checkStorage(cfg config.Config) []Finding {
	var findings []Finding

	root, err := config.ResolveStorageRoot(cfg)
	if err != nil {
		return append(findings, Finding{Code: "DOC_STORAGE_ROOT", Level: "error", Message: err.Error()})
	}
	if err := writeProbe(root); err != nil {
		findings = append(findings, Finding{Code: "DOC_STORAGE_WRITE", Level: "error", Message: err.Error()})
	}

	st, err := store.LoadState(root)
	if err != nil {
		return append(findings, Finding{Code: "DOC_REGISTRY_INVALID", Level: "error", Message: err.Error()})
	}
	for _, u := range st.Units {
		findings = append(findings, checkTree("unit "+u.Key(), u.Root, course.OpStructure)...)
	}
	for _, a := range st.Assessments {
		findings = append(findings, checkTree("assessment "+a.Key(), a.Root, course.OpAssessStructure)...)
	}
	return findings
}

// checkTree verifies that a registered directory still exists, its setup
// log parses, and the structuring operation the registry claims happened is
// actually recorded there.
func checkTree(label, root, op string) []Finding {
	if info, err := os.Stat(root); err != nil || !info.IsDir() {
		return []Finding{{
			Code:    "DOC_TREE_MISSING",
			Level:   "warn",
			Message: fmt.Sprintf("%s: directory %s is gone", label, root),
		}}
	}
	ran, err := setuplog.New(root).HasRun(op)
	if err != nil {
		return []Finding{{
			Code:    "DOC_LOG_INVALID",
			Level:   "error",
			Message: fmt.Sprintf("%s: %v", label, err),
		}}
	}
	if !ran {
		return []Finding{{
			Code:    "DOC_LOG_INCOMPLETE",
			Level:   "warn",
			Message: fmt.Sprintf("%s: no %q entry in %s", label, op, setuplog.Filename),
		}}
	}
	return nil
}

func writeProbe(root string) error {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return err
	}
	probe := filepath.Join(root, fmt.Sprintf(".writetest-%d", time.Now().UnixNano()))
	if err := os.WriteFile(probe, []byte("ok"), 0o600); err != nil {
		return err
	}
	return os.Remove(probe)
}
