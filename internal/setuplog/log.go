// Package setuplog records which one-time setup operations have completed
// inside a directory, and guards against running them twice.
//
// The log is a plain append-only file, one JSON object per line, stored
// alongside the directory it documents. An operation "has run" iff a line
// with a matching operation name exists; lookup is an exact field match,
// never a substring scan.
package setuplog

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// Filename is the per-directory setup log artifact.
const Filename = "setup.log"

// ErrAlreadyRun reports that a guarded operation was already recorded for a
// directory. Callers must not retry automatically.
var ErrAlreadyRun = errors.New("operation already completed")

// Entry is one completed-operation record.
type Entry struct {
	Timestamp string            `json:"timestamp"`
	Operation string            `json:"operation"`
	Status    string            `json:"status"`
	Fields    map[string]string `json:"fields,omitempty"`
}

// Log is the setup log of a single directory.
type Log struct {
	dir string
	mu  sync.Mutex
}

func New(dir string) *Log {
	return &Log{dir: dir}
}

func (l *Log) Path() string {
	return filepath.Join(l.dir, Filename)
}

// Entries returns every recorded entry in append order. A missing log file
// is an empty log, not an error.
func (l *Log) Entries() ([]Entry, error) {
	f, err := os.Open(l.Path())
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("LOG_OPEN: %w", err)
	}
	defer f.Close()

	var entries []Entry
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := sc.Bytes()
		if len(line) == 0 {
			continue
		}
		var e Entry
		if err := json.Unmarshal(line, &e); err != nil {
			return nil, fmt.Errorf("LOG_PARSE: line %d: %w", len(entries)+1, err)
		}
		entries = append(entries, e)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("LOG_READ: %w", err)
	}
	return entries, nil
}

// HasRun reports whether operation was recorded in this directory.
func (l *Log) HasRun(operation string) (bool, error) {
	entries, err := l.Entries()
	if err != nil {
		return false, err
	}
	for _, e := range entries {
		if e.Operation == operation {
			return true, nil
		}
	}
	return false, nil
}

// Guard fails with ErrAlreadyRun if operation was already recorded.
func (l *Log) Guard(operation string) error {
	ran, err := l.HasRun(operation)
	if err != nil {
		return err
	}
	if ran {
		return fmt.Errorf("LOG_GUARD: %q in %s: %w", operation, l.dir, ErrAlreadyRun)
	}
	return nil
}

// Record appends a completed-operation entry, creating the log file if
// absent. Call it only after every side effect of the operation succeeded.
func (l *Log) Record(operation string, fields map[string]string) error {
	e := Entry{
		Timestamp: time.Now().UTC().Format(time.RFC3339Nano),
		Operation: operation,
		Status:    "ok",
		Fields:    fields,
	}
	blob, err := json.Marshal(e)
	if err != nil {
		return err
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	f, err := os.OpenFile(l.Path(), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("LOG_APPEND: %w", err)
	}
	defer f.Close()
	if _, err := f.Write(append(blob, '\n')); err != nil {
		return fmt.Errorf("LOG_APPEND: %w", err)
	}
	return nil
}
