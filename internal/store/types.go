package store

import "time"

const StateVersion = 1

// State is the registry of every unit and assessment this tool has
// structured, kept as a small human-readable TOML document under the
// storage root.
type State struct {
	Version     int                `toml:"version"`
	Units       []UnitRecord       `toml:"units"`
	Assessments []AssessmentRecord `toml:"assessments"`
}

type UnitRecord struct {
	Code         string    `toml:"code"`
	Name         string    `toml:"name"`
	Year         string    `toml:"year"`
	Term         string    `toml:"term"`
	Leader       string    `toml:"leader"`
	Root         string    `toml:"root"`
	StructuredAt time.Time `toml:"structured_at"`
}

type AssessmentRecord struct {
	UnitCode     string    `toml:"unit_code"`
	Name         string    `toml:"name"`
	Kind         string    `toml:"kind"`
	DueDate      time.Time `toml:"due_date"`
	Weight       float64   `toml:"weight"`
	Root         string    `toml:"root"`
	StructuredAt time.Time `toml:"structured_at"`
}

// Key identifies a unit offering: the same code can be taught in several
// terms and years.
func (u UnitRecord) Key() string {
	return u.Code + " " + u.Term + " " + u.Year
}

func (a AssessmentRecord) Key() string {
	return a.UnitCode + "/" + a.Name + " (" + a.Kind + ")"
}
