// Package store persists the registry of structured units and assessments
// under the storage root.
package store

import (
	"fmt"
	"os"
	"sort"

	"github.com/pelletier/go-toml/v2"

	"coursekit/internal/fsutil"
)

func LoadState(root string) (State, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return State{}, err
	}
	blob, err := os.ReadFile(StatePath(root))
	if err != nil {
		if os.IsNotExist(err) {
			return State{Version: StateVersion}, nil
		}
		return State{}, err
	}
	var st State
	if err := toml.Unmarshal(blob, &st); err != nil {
		return State{}, fmt.Errorf("REG_PARSE: %w", err)
	}
	if st.Version == 0 {
		st.Version = StateVersion
	}
	if st.Version != StateVersion {
		return State{}, fmt.Errorf("REG_VERSION: unsupported state version %d", st.Version)
	}
	for i := range st.Units {
		if st.Units[i].Code == "" {
			return State{}, fmt.Errorf("REG_SCHEMA: unit entry missing code")
		}
	}
	for i := range st.Assessments {
		if st.Assessments[i].UnitCode == "" {
			return State{}, fmt.Errorf("REG_SCHEMA: assessment entry missing unit_code")
		}
	}
	return st, nil
}

func SaveState(root string, st State) error {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return err
	}
	st.Version = StateVersion
	sort.Slice(st.Units, func(i, j int) bool {
		return st.Units[i].Key() < st.Units[j].Key()
	})
	sort.Slice(st.Assessments, func(i, j int) bool {
		return st.Assessments[i].Key() < st.Assessments[j].Key()
	})
	blob, err := toml.Marshal(st)
	if err != nil {
		return fmt.Errorf("REG_ENCODE: %w", err)
	}
	return fsutil.AtomicWrite(StatePath(root), blob, 0o644)
}

func UpsertUnit(st *State, rec UnitRecord) {
	for i := range st.Units {
		if st.Units[i].Key() == rec.Key() {
			st.Units[i] = rec
			return
		}
	}
	st.Units = append(st.Units, rec)
}

// FindUnit returns the registered unit with the given code. The code alone
// is the lookup key used by assessments; when the same code is registered
// for several offerings the most recently structured one wins.
func FindUnit(st State, code string) (UnitRecord, bool) {
	var (
		found UnitRecord
		ok    bool
	)
	for _, u := range st.Units {
		if u.Code != code {
			continue
		}
		if !ok || u.StructuredAt.After(found.StructuredAt) {
			found = u
			ok = true
		}
	}
	return found, ok
}

func UpsertAssessment(st *State, rec AssessmentRecord) {
	for i := range st.Assessments {
		if st.Assessments[i].Key() == rec.Key() {
			st.Assessments[i] = rec
			return
		}
	}
	st.Assessments = append(st.Assessments, rec)
}

func FindAssessment(st State, unitCode, name, kind string) (AssessmentRecord, bool) {
	key := AssessmentRecord{UnitCode: unitCode, Name: name, Kind: kind}.Key()
	for _, a := range st.Assessments {
		if a.Key() == key {
			return a, true
		}
	}
	return AssessmentRecord{}, false
}
