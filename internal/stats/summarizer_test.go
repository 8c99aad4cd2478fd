package stats

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"crimelens/internal/dataset"
)

func TestSummarize(t *testing.T) {
	t.Run("full table", func(t *testing.T) {
		a := dated(2020, time.January, 5)
		a.AreaName = "Central"
		a.CrimeDesc = "BURGLARY"
		a.VictimAge = 30
		a.VictimDescent = "B"

		b := dated(2020, time.February, 1)
		b.AreaName = "Central"
		b.CrimeDesc = "ROBBERY"
		b.VictimAge = 40
		b.VictimDescent = "B"

		table := buildTable(a, b)
		summary := NewSummarizer(nil).Summarize(context.Background(), table)

		assert.Equal(t, 2, summary.RecordCount)
		require.True(t, summary.HasDateRange)
		assert.Equal(t, "2020-01-05", summary.DateMin.Format("2006-01-02"))
		assert.Equal(t, "2020-02-01", summary.DateMax.Format("2006-01-02"))
		require.True(t, summary.HasCrimeTypes)
		assert.Equal(t, 2, summary.DistinctCrimeTypes)
		require.True(t, summary.HasTopArea)
		assert.Equal(t, "Central", summary.TopArea)
		assert.Equal(t, 2, summary.TopAreaCount)
		require.True(t, summary.HasMonthlyMean)
		assert.InDelta(t, 1.0, summary.MeanPerMonth, 1e-9)
		require.True(t, summary.HasVictimAge)
		assert.InDelta(t, 35.0, summary.MeanVictimAge, 1e-9)
		require.True(t, summary.HasTopDescent)
		assert.Equal(t, "Black", summary.TopDescentLabel)
	})

	t.Run("implausible age excluded from mean", func(t *testing.T) {
		a := dated(2020, time.January, 5)
		a.VictimAge = 30
		b := dated(2020, time.January, 6)
		b.VictimAge = 150

		summary := NewSummarizer(nil).Summarize(context.Background(), buildTable(a, b))
		require.True(t, summary.HasVictimAge)
		assert.InDelta(t, 30.0, summary.MeanVictimAge, 1e-9)
	})

	t.Run("absent columns leave statistics unset", func(t *testing.T) {
		table := &dataset.Table{
			Schema: dataset.Schema{},
			Incidents: []dataset.Incident{
				{Hour: dataset.MissingHour, VictimAge: dataset.MissingAge},
			},
		}

		summary := NewSummarizer(nil).Summarize(context.Background(), table)
		assert.Equal(t, 1, summary.RecordCount)
		assert.False(t, summary.HasDateRange)
		assert.False(t, summary.HasCrimeTypes)
		assert.False(t, summary.HasTopArea)
		assert.False(t, summary.HasMonthlyMean)
		assert.False(t, summary.HasVictimAge)
		assert.False(t, summary.HasTopDescent)
	})
}

func TestWriteText(t *testing.T) {
	summarizer := NewSummarizer(nil)

	t.Run("renders fixed block", func(t *testing.T) {
		summary := Summary{
			RecordCount:     3,
			HasTopDescent:   true,
			TopDescentLabel: "Black",
			TopDescentCount: 2,
			HasVictimAge:    true,
			MeanVictimAge:   35.25,
		}

		var buf bytes.Buffer
		require.NoError(t, summarizer.WriteText(&buf, summary))

		out := buf.String()
		assert.Contains(t, out, "========= KPI Summary =========")
		assert.Contains(t, out, "Total records:            3")
		assert.Contains(t, out, "Average victim age:       35.2")
		assert.Contains(t, out, "Black: 2")
		assert.Contains(t, out, "===============================")
	})

	t.Run("absent statistics omitted", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, summarizer.WriteText(&buf, Summary{RecordCount: 0}))

		out := buf.String()
		assert.NotContains(t, out, "Date range")
		assert.NotContains(t, out, "victim")
		assert.Contains(t, out, "Total records:            0")
	})

	t.Run("byte identical across runs", func(t *testing.T) {
		a := dated(2020, time.January, 5)
		a.AreaName = "Central"
		a.CrimeDesc = "BURGLARY"
		a.VictimDescent = "B"
		table := buildTable(a)

		summary := summarizer.Summarize(context.Background(), table)

		var first bytes.Buffer
		require.NoError(t, summarizer.WriteText(&first, summary))
		for i := 0; i < 5; i++ {
			again := summarizer.Summarize(context.Background(), table)
			var buf bytes.Buffer
			require.NoError(t, summarizer.WriteText(&buf, again))
			assert.Equal(t, first.String(), buf.String())
		}
	})
}
