package setuplog

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestHasRunFreshDirectory(t *testing.T) {
	log := New(t.TempDir())
	ran, err := log.HasRun("structure")
	if err != nil {
		t.Fatalf("has_run on fresh dir: %v", err)
	}
	if ran {
		t.Fatalf("fresh directory should report no completed operations")
	}
}

func TestRecordThenHasRunExactMatch(t *testing.T) {
	log := New(t.TempDir())
	if err := log.Record("structure", map[string]string{"subdirs": "a, b"}); err != nil {
		t.Fatalf("record: %v", err)
	}

	ran, err := log.HasRun("structure")
	if err != nil {
		t.Fatalf("has_run: %v", err)
	}
	if !ran {
		t.Fatalf("expected structure to be recorded")
	}

	// Exact lookup: an operation whose name contains another's must not
	// shadow it.
	for _, other := range []string{"teaching_structure", "struct", "graders_list"} {
		ran, err := log.HasRun(other)
		if err != nil {
			t.Fatalf("has_run(%q): %v", other, err)
		}
		if ran {
			t.Fatalf("operation %q should not be reported as run", other)
		}
	}
}

func TestGuardFailsAfterRecord(t *testing.T) {
	log := New(t.TempDir())
	if err := log.Guard("structure"); err != nil {
		t.Fatalf("guard on fresh dir: %v", err)
	}
	if err := log.Record("structure", nil); err != nil {
		t.Fatalf("record: %v", err)
	}
	err := log.Guard("structure")
	if !errors.Is(err, ErrAlreadyRun) {
		t.Fatalf("expected ErrAlreadyRun, got %v", err)
	}
}

func TestEntriesPreserveOrderAndTimestamps(t *testing.T) {
	log := New(t.TempDir())
	ops := []string{"structure", "teaching_structure", "copy_documents"}
	for _, op := range ops {
		if err := log.Record(op, nil); err != nil {
			t.Fatalf("record %q: %v", op, err)
		}
	}

	entries, err := log.Entries()
	if err != nil {
		t.Fatalf("entries: %v", err)
	}
	if len(entries) != len(ops) {
		t.Fatalf("expected %d entries, got %d", len(ops), len(entries))
	}
	for i, e := range entries {
		if e.Operation != ops[i] {
			t.Fatalf("entry %d: expected %q, got %q", i, ops[i], e.Operation)
		}
		if e.Status != "ok" {
			t.Fatalf("entry %d: status %q", i, e.Status)
		}
		if _, err := time.Parse(time.RFC3339Nano, e.Timestamp); err != nil {
			t.Fatalf("entry %d: bad timestamp %q: %v", i, e.Timestamp, err)
		}
	}
}

func TestEntriesAreLineDelimitedJSON(t *testing.T) {
	dir := t.TempDir()
	log := New(dir)
	if err := log.Record("structure", map[string]string{"unit": "CS4006"}); err != nil {
		t.Fatalf("record: %v", err)
	}

	blob, err := os.ReadFile(filepath.Join(dir, Filename))
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(string(blob)), "\n")
	if len(lines) != 1 {
		t.Fatalf("expected 1 line, got %d", len(lines))
	}
	var e Entry
	if err := json.Unmarshal([]byte(lines[0]), &e); err != nil {
		t.Fatalf("log line should be a JSON object: %v", err)
	}
	if e.Fields["unit"] != "CS4006" {
		t.Fatalf("unexpected fields: %+v", e.Fields)
	}
}

func TestEntriesRejectCorruptLine(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, Filename), []byte("not json\n"), 0o644); err != nil {
		t.Fatalf("seed corrupt log: %v", err)
	}
	if _, err := New(dir).Entries(); err == nil {
		t.Fatalf("expected parse error for corrupt log")
	}
}
