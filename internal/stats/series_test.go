package stats

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"crimelens/internal/dataset"
)

// buildTable constructs a fully-capable table from incidents, deriving the
// calendar fields the way the loader does.
func buildTable(incidents ...dataset.Incident) *dataset.Table {
	table := &dataset.Table{
		Schema: dataset.Schema{
			HasDate: true, HasTime: true, HasArea: true, HasCrimeType: true,
			HasVictimAge: true, HasVictimSex: true, HasVictimDescent: true,
			HasCoordinates: true,
		},
	}
	for _, in := range incidents {
		if !in.Date.IsZero() {
			in.Year = in.Date.Year()
			in.Month = in.Date.Month()
			in.Weekday = in.Date.Weekday()
			in.Period = in.Date.Format("2006-01")
		}
		table.Incidents = append(table.Incidents, in)
	}
	return table
}

func dated(year int, month time.Month, day int) dataset.Incident {
	return dataset.Incident{
		Date:      time.Date(year, month, day, 0, 0, 0, 0, time.UTC),
		Hour:      dataset.MissingHour,
		VictimAge: dataset.MissingAge,
	}
}

func TestMonthlyCounts(t *testing.T) {
	t.Run("two periods from three rows", func(t *testing.T) {
		table := buildTable(
			dated(2020, time.January, 5),
			dated(2020, time.January, 20),
			dated(2020, time.February, 1),
		)

		monthly := MonthlyCounts(table)
		require.Len(t, monthly, 2)
		assert.Equal(t, PeriodCount{Period: "2020-01", Count: 2}, monthly[0])
		assert.Equal(t, PeriodCount{Period: "2020-02", Count: 1}, monthly[1])
	})

	t.Run("undated rows ignored", func(t *testing.T) {
		table := buildTable(
			dated(2020, time.January, 5),
			dataset.Incident{Hour: dataset.MissingHour, VictimAge: dataset.MissingAge},
		)
		monthly := MonthlyCounts(table)
		require.Len(t, monthly, 1)
		assert.Equal(t, 1, monthly[0].Count)
	})

	t.Run("periods sorted across years", func(t *testing.T) {
		table := buildTable(
			dated(2021, time.January, 1),
			dated(2020, time.December, 1),
		)
		monthly := MonthlyCounts(table)
		require.Len(t, monthly, 2)
		assert.Equal(t, "2020-12", monthly[0].Period)
		assert.Equal(t, "2021-01", monthly[1].Period)
	})
}

func TestRollingMean(t *testing.T) {
	t.Run("short prefix averages available values", func(t *testing.T) {
		means := RollingMean([]float64{2, 4, 6}, 12)
		require.Len(t, means, 3)
		assert.InDelta(t, 2.0, means[0], 1e-9)
		assert.InDelta(t, 3.0, means[1], 1e-9)
		assert.InDelta(t, 4.0, means[2], 1e-9)
	})

	t.Run("window slides after filling", func(t *testing.T) {
		means := RollingMean([]float64{1, 2, 3, 4}, 2)
		assert.InDelta(t, 1.0, means[0], 1e-9)
		assert.InDelta(t, 1.5, means[1], 1e-9)
		assert.InDelta(t, 2.5, means[2], 1e-9)
		assert.InDelta(t, 3.5, means[3], 1e-9)
	})

	t.Run("empty input", func(t *testing.T) {
		assert.Empty(t, RollingMean(nil, 12))
	})
}

func TestWeekdayCounts(t *testing.T) {
	// 2020-01-06 is a Monday, 2020-01-12 a Sunday.
	table := buildTable(
		dated(2020, time.January, 6),
		dated(2020, time.January, 6),
		dated(2020, time.January, 12),
	)

	counts := WeekdayCounts(table)
	assert.Equal(t, 2, counts[0], "Monday slot")
	assert.Equal(t, 1, counts[6], "Sunday slot")
	for slot := 1; slot < 6; slot++ {
		assert.Zero(t, counts[slot])
	}
}

func TestWeekdayOrderFixed(t *testing.T) {
	assert.Equal(t, time.Monday, WeekdayOrder[0])
	assert.Equal(t, time.Sunday, WeekdayOrder[6])
	for i, day := range WeekdayOrder {
		assert.Equal(t, i, weekdaySlot(day))
	}
}

func TestHourlyCounts(t *testing.T) {
	in := dated(2020, time.January, 6)
	in.Hour = 21
	missing := dated(2020, time.January, 6)
	table := buildTable(in, in, missing)

	counts := HourlyCounts(table)
	assert.Equal(t, 2, counts[21])
	assert.Zero(t, counts[0])
}

func TestHourWeekdayPivotZeroFilled(t *testing.T) {
	monday := dated(2020, time.January, 6)
	monday.Hour = 8
	table := buildTable(monday)

	pivot := HourWeekdayPivot(table)
	assert.Equal(t, 1, pivot[8][0])

	total := 0
	for hour := range pivot {
		for day := range pivot[hour] {
			total += pivot[hour][day]
		}
	}
	assert.Equal(t, 1, total, "absent combinations stay zero")
}

func TestYearMonthCounts(t *testing.T) {
	table := buildTable(
		dated(2020, time.March, 1),
		dated(2020, time.March, 2),
		dated(2022, time.July, 1),
	)

	pivot := YearMonthCounts(table)
	require.Equal(t, []int{2020, 2022}, pivot.Years, "only observed years, sorted")
	assert.Equal(t, 2, pivot.Counts[0][2])
	assert.Equal(t, 1, pivot.Counts[1][6])
	assert.Zero(t, pivot.Counts[0][0], "unobserved months zero filled")
}

func TestDescentCounts(t *testing.T) {
	table := buildTable(
		dataset.Incident{VictimDescent: "B", Hour: dataset.MissingHour, VictimAge: dataset.MissingAge},
		dataset.Incident{VictimDescent: "B", Hour: dataset.MissingHour, VictimAge: dataset.MissingAge},
		dataset.Incident{VictimDescent: "W", Hour: dataset.MissingHour, VictimAge: dataset.MissingAge},
		dataset.Incident{VictimDescent: "H", Hour: dataset.MissingHour, VictimAge: dataset.MissingAge},
	)

	counts := DescentCounts(table)
	top := TopCounts(counts, 1)
	require.Len(t, top, 1)
	assert.Equal(t, "Black", top[0].Label)
	assert.Equal(t, 2, top[0].Count)
}

func TestValidAges(t *testing.T) {
	tests := []struct {
		name     string
		ages     []int
		expected []float64
	}{
		{name: "plausible ages kept", ages: []int{25, 60}, expected: []float64{25, 60}},
		{name: "implausible high age excluded", ages: []int{30, 150}, expected: []float64{30}},
		{name: "boundary values excluded", ages: []int{0, 120}, expected: nil},
		{name: "negative sentinel excluded", ages: []int{-1}, expected: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var incidents []dataset.Incident
			for _, age := range tt.ages {
				incidents = append(incidents, dataset.Incident{
					Hour:      dataset.MissingHour,
					VictimAge: age,
				})
			}
			assert.Equal(t, tt.expected, ValidAges(buildTable(incidents...)))
		})
	}
}

func TestTopCounts(t *testing.T) {
	counts := map[string]int{"b": 3, "a": 3, "c": 5, "d": 1}

	t.Run("descending with alphabetical ties", func(t *testing.T) {
		top := TopCounts(counts, 3)
		require.Len(t, top, 3)
		assert.Equal(t, LabelCount{Label: "c", Count: 5}, top[0])
		assert.Equal(t, LabelCount{Label: "a", Count: 3}, top[1])
		assert.Equal(t, LabelCount{Label: "b", Count: 3}, top[2])
	})

	t.Run("n larger than map returns all", func(t *testing.T) {
		assert.Len(t, TopCounts(counts, 10), 4)
	})

	t.Run("deterministic across runs", func(t *testing.T) {
		first := TopCounts(counts, 4)
		for i := 0; i < 20; i++ {
			assert.Equal(t, first, TopCounts(counts, 4))
		}
	})
}

func TestSexCounts(t *testing.T) {
	table := buildTable(
		dataset.Incident{VictimSex: "M", Hour: dataset.MissingHour, VictimAge: dataset.MissingAge},
		dataset.Incident{VictimSex: "F", Hour: dataset.MissingHour, VictimAge: dataset.MissingAge},
		dataset.Incident{Hour: dataset.MissingHour, VictimAge: dataset.MissingAge},
	)

	counts := SexCounts(table)
	assert.Equal(t, 1, counts["M"])
	assert.Equal(t, 1, counts["F"])
	assert.Equal(t, 1, counts["Unknown"])
}
