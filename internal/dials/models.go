package dials

import "time"

// Status is the qualitative band a dial reports.
type Status string

const (
	StatusGood    Status = "GOOD"
	StatusWarn    Status = "WARN"
	StatusDelayed Status = "DELAYED"
)

// Observation is a single dated data point of a macro series.
type Observation struct {
	Date  time.Time `json:"date"`
	Value float64   `json:"value"`
}

// Series is an ordered sequence of observations, ascending by date with
// unique dates. Providers hand it over already cleaned of sentinel values.
type Series []Observation

// Component is one named, weighted input to a composite dial. A nil score
// means the component is unavailable this run and is excluded from blending.
type Component struct {
	Name   string
	Score  *float64
	Weight float64
}

// CompositeResult is the outcome of blending components. Score is nil only
// when every component was unavailable.
type CompositeResult struct {
	Score    *float64
	Warnings []string
}

// Dial is the externally visible unit published per indicator. Exactly one
// of Value or ValueText is set: ValueText carries the placeholder shown when
// the dial is degraded.
type Dial struct {
	ID        string   `json:"id"`
	Type      string   `json:"type"`
	Title     string   `json:"title"`
	Status    Status   `json:"status"`
	Value     *float64 `json:"value,omitempty"`
	ValueText string   `json:"valueText,omitempty"`
	Pct       int      `json:"pct,omitempty"`
	Unit      string   `json:"unit,omitempty"`
	Min       *float64 `json:"min,omitempty"`
	Max       *float64 `json:"max,omitempty"`
	MinLabel  string   `json:"minLabel"`
	MidLabel  string   `json:"midLabel"`
	MaxLabel  string   `json:"maxLabel"`
	Tooltip   string   `json:"tooltip"`
	UpdatedAt string   `json:"updatedAt"`
}

// Snapshot is the output of one full engine run: every configured dial in
// declaration order plus the run timestamp.
type Snapshot struct {
	AsOf  string `json:"asOf"`
	Cards []Dial `json:"cards"`
}

func ptr(v float64) *float64 { return &v }
