package stats

import (
	"sort"
	"time"

	"gonum.org/v1/gonum/stat"

	"crimelens/internal/dataset"
)

// WeekdayOrder is the fixed Monday…Sunday ordering used by every weekday
// breakdown, regardless of input order or missing days.
var WeekdayOrder = [7]time.Weekday{
	time.Monday,
	time.Tuesday,
	time.Wednesday,
	time.Thursday,
	time.Friday,
	time.Saturday,
	time.Sunday,
}

// weekdaySlot maps a time.Weekday to its position in WeekdayOrder.
func weekdaySlot(day time.Weekday) int {
	if day == time.Sunday {
		return 6
	}
	return int(day) - 1
}

// PeriodCount is one calendar-month bucket of the monthly series.
type PeriodCount struct {
	Period string
	Count  int
}

// LabelCount is a categorical bucket, used by the top-N breakdowns.
type LabelCount struct {
	Label string
	Count int
}

// MonthlyCounts buckets dated incidents by calendar month, ordered by
// period. Undated incidents are ignored.
func MonthlyCounts(table *dataset.Table) []PeriodCount {
	counts := make(map[string]int)
	for i := range table.Incidents {
		in := &table.Incidents[i]
		if !in.HasDate() {
			continue
		}
		counts[in.Period]++
	}

	series := make([]PeriodCount, 0, len(counts))
	for period, count := range counts {
		series = append(series, PeriodCount{Period: period, Count: count})
	}
	// "2006-01" periods sort correctly as strings.
	sort.Slice(series, func(i, j int) bool { return series[i].Period < series[j].Period })
	return series
}

// RollingMean computes the trailing mean over at most window values, with a
// minimum of one period: the first window-1 entries average whatever is
// available so far.
func RollingMean(values []float64, window int) []float64 {
	if window < 1 {
		window = 1
	}
	means := make([]float64, len(values))
	for i := range values {
		start := i - window + 1
		if start < 0 {
			start = 0
		}
		means[i] = stat.Mean(values[start:i+1], nil)
	}
	return means
}

// WeekdayCounts counts dated incidents per weekday in WeekdayOrder.
func WeekdayCounts(table *dataset.Table) [7]int {
	var counts [7]int
	for i := range table.Incidents {
		in := &table.Incidents[i]
		if !in.HasDate() {
			continue
		}
		counts[weekdaySlot(in.Weekday)]++
	}
	return counts
}

// HourlyCounts counts incidents per hour of day 0–23.
func HourlyCounts(table *dataset.Table) [24]int {
	var counts [24]int
	for i := range table.Incidents {
		in := &table.Incidents[i]
		if !in.HasHour() {
			continue
		}
		counts[in.Hour]++
	}
	return counts
}

// HourWeekdayPivot cross-tabulates incidents by hour (rows 0–23) and
// weekday (columns in WeekdayOrder). Combinations absent from the input are
// zero, never missing; every row with a valid hour and date contributes.
func HourWeekdayPivot(table *dataset.Table) [24][7]int {
	var pivot [24][7]int
	for i := range table.Incidents {
		in := &table.Incidents[i]
		if !in.HasHour() || !in.HasDate() {
			continue
		}
		pivot[in.Hour][weekdaySlot(in.Weekday)]++
	}
	return pivot
}

// YearMonthPivot cross-tabulates incidents by year (rows) and month
// (columns Jan…Dec), zero-filled.
type YearMonthPivot struct {
	Years  []int
	Counts [][12]int
}

// YearMonthCounts builds the year-by-month pivot over all dated incidents.
func YearMonthCounts(table *dataset.Table) YearMonthPivot {
	byYear := make(map[int]*[12]int)
	for i := range table.Incidents {
		in := &table.Incidents[i]
		if !in.HasDate() {
			continue
		}
		row, ok := byYear[in.Year]
		if !ok {
			row = &[12]int{}
			byYear[in.Year] = row
		}
		row[int(in.Month)-1]++
	}

	years := make([]int, 0, len(byYear))
	for year := range byYear {
		years = append(years, year)
	}
	sort.Ints(years)

	pivot := YearMonthPivot{Years: years, Counts: make([][12]int, len(years))}
	for i, year := range years {
		pivot.Counts[i] = *byYear[year]
	}
	return pivot
}

// AreaCounts counts incidents per reporting area name.
func AreaCounts(table *dataset.Table) map[string]int {
	counts := make(map[string]int)
	for i := range table.Incidents {
		if area := table.Incidents[i].AreaName; area != "" {
			counts[area]++
		}
	}
	return counts
}

// CrimeTypeCounts counts incidents per crime-type description.
func CrimeTypeCounts(table *dataset.Table) map[string]int {
	counts := make(map[string]int)
	for i := range table.Incidents {
		if desc := table.Incidents[i].CrimeDesc; desc != "" {
			counts[desc]++
		}
	}
	return counts
}

// SexCounts counts incidents per victim sex code, folding missing values
// into "Unknown".
func SexCounts(table *dataset.Table) map[string]int {
	counts := make(map[string]int)
	for i := range table.Incidents {
		sex := table.Incidents[i].VictimSex
		if sex == "" {
			sex = "Unknown"
		}
		counts[sex]++
	}
	return counts
}

// DescentCounts counts incidents per translated victim-descent label.
// Missing codes count under the unknown label.
func DescentCounts(table *dataset.Table) map[string]int {
	counts := make(map[string]int)
	for i := range table.Incidents {
		counts[dataset.DescentLabel(table.Incidents[i].VictimDescent)]++
	}
	return counts
}

// ValidAges returns the victim ages inside the plausible range,
// 0 and 120 both exclusive.
func ValidAges(table *dataset.Table) []float64 {
	var ages []float64
	for i := range table.Incidents {
		in := &table.Incidents[i]
		if !in.HasAge() {
			continue
		}
		if in.VictimAge > 0 && in.VictimAge < 120 {
			ages = append(ages, float64(in.VictimAge))
		}
	}
	return ages
}

// TopCounts returns the n largest buckets, counts descending. Ties resolve
// to the lexicographically smaller label so repeated runs are reproducible.
func TopCounts(counts map[string]int, n int) []LabelCount {
	all := make([]LabelCount, 0, len(counts))
	for label, count := range counts {
		all = append(all, LabelCount{Label: label, Count: count})
	}
	sort.Slice(all, func(i, j int) bool {
		if all[i].Count != all[j].Count {
			return all[i].Count > all[j].Count
		}
		return all[i].Label < all[j].Label
	})
	if n > 0 && len(all) > n {
		all = all[:n]
	}
	return all
}
