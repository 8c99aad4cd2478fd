package dataset

import (
	"regexp"
	"strings"
)

// Schema records which source columns were present in the CSV header.
// Every optional statistic and chart checks its capability here rather
// than probing for absent values at runtime.
type Schema struct {
	HasDate          bool
	HasTime          bool
	HasArea          bool
	HasCrimeType     bool
	HasVictimAge     bool
	HasVictimSex     bool
	HasVictimDescent bool
	HasCoordinates   bool
}

// columnIndices maps the columns we care about to their positions in a row.
// A value of -1 means the column is absent.
type columnIndices struct {
	reportNumber int
	dateOcc      int
	dateRptd     int
	timeOcc      int
	areaName     int
	crimeDesc    int
	victimAge    int
	victimSex    int
	victimDesc   int
	lat          int
	lon          int
}

var nonWordRun = regexp.MustCompile(`[^\w]+`)

// NormalizeColumnName converts a raw CSV header cell to the canonical
// lowercase/underscore form ("DATE OCC" → "date_occ").
func NormalizeColumnName(name string) string {
	trimmed := strings.ToLower(strings.TrimSpace(name))
	return nonWordRun.ReplaceAllString(trimmed, "_")
}

// findColumnIndices maps normalized header names to row positions.
func findColumnIndices(header []string) columnIndices {
	cols := columnIndices{
		reportNumber: -1,
		dateOcc:      -1,
		dateRptd:     -1,
		timeOcc:      -1,
		areaName:     -1,
		crimeDesc:    -1,
		victimAge:    -1,
		victimSex:    -1,
		victimDesc:   -1,
		lat:          -1,
		lon:          -1,
	}

	for i, raw := range header {
		switch NormalizeColumnName(raw) {
		case "dr_no":
			cols.reportNumber = i
		case "date_occ":
			cols.dateOcc = i
		case "date_rptd":
			cols.dateRptd = i
		case "time_occ":
			cols.timeOcc = i
		case "area_name":
			cols.areaName = i
		case "crm_cd_desc":
			cols.crimeDesc = i
		case "vict_age":
			cols.victimAge = i
		case "vict_sex":
			cols.victimSex = i
		case "vict_descent":
			cols.victimDesc = i
		case "lat":
			cols.lat = i
		case "lon":
			cols.lon = i
		}
	}

	return cols
}

// schema derives the capability set from the discovered columns.
// The date capability is satisfied by either the occurrence date or the
// reported date, matching the loader's fallback.
func (c columnIndices) schema() Schema {
	return Schema{
		HasDate:          c.dateOcc >= 0 || c.dateRptd >= 0,
		HasTime:          c.timeOcc >= 0,
		HasArea:          c.areaName >= 0,
		HasCrimeType:     c.crimeDesc >= 0,
		HasVictimAge:     c.victimAge >= 0,
		HasVictimSex:     c.victimSex >= 0,
		HasVictimDescent: c.victimDesc >= 0,
		HasCoordinates:   c.lat >= 0 && c.lon >= 0,
	}
}
