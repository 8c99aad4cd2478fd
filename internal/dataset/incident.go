package dataset

import (
	"time"
)

// MissingHour marks an incident whose time code could not be parsed.
const MissingHour = -1

// MissingAge marks an incident whose victim age could not be parsed.
const MissingAge = -1

// Incident represents a single crime record after normalization.
// Missing values use sentinels; use the Has* predicates instead of
// comparing against them directly.
type Incident struct {
	ReportNumber  string
	Date          time.Time
	Hour          int
	AreaName      string
	CrimeDesc     string
	VictimAge     int
	VictimSex     string
	VictimDescent string
	Lat           float64
	Lon           float64

	// Calendar fields derived once after load; valid only when HasDate.
	Year    int
	Month   time.Month
	Weekday time.Weekday
	Period  string
}

// HasDate reports whether the occurrence date parsed successfully.
func (in *Incident) HasDate() bool {
	return !in.Date.IsZero()
}

// HasHour reports whether a valid hour-of-day was derived from the time code.
func (in *Incident) HasHour() bool {
	return in.Hour != MissingHour
}

// HasAge reports whether the victim age parsed to a number.
func (in *Incident) HasAge() bool {
	return in.VictimAge != MissingAge
}

// Geocoded reports whether the incident carries usable coordinates.
// The source dataset uses 0/0 for records that were never geocoded.
func (in *Incident) Geocoded() bool {
	return in.Lat != 0 || in.Lon != 0
}

// deriveCalendarFields fills the derived calendar columns from the parsed
// date. Must run before any statistic or chart that reads them.
func (in *Incident) deriveCalendarFields() {
	if !in.HasDate() {
		return
	}
	in.Year = in.Date.Year()
	in.Month = in.Date.Month()
	in.Weekday = in.Date.Weekday()
	in.Period = in.Date.Format("2006-01")
}

// Table is the incident table: the one in-memory entity of the pipeline.
// It is built once per run and only read afterwards.
type Table struct {
	Incidents []Incident
	Schema    Schema
}
