package analytics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ordelia/order-insight-be/internal/core/insight"
)

func TestSeriesChart(t *testing.T) {
	series := []insight.Record{
		{"date": "2025-01", "sum": 10.0, "count": 2},
		{"date": "2025-02", "sum": 25.0, "count": 3},
	}

	chart := SeriesChart(series, "Quantity", "sum")

	assert.Equal(t, "line", chart.Type)
	assert.Equal(t, []string{"2025-01", "2025-02"}, chart.Labels)
	require.Len(t, chart.Data, 1)
	assert.Equal(t, "Quantity", chart.Data[0].Name)
	assert.Equal(t, []interface{}{10.0, 25.0}, chart.Data[0].Values)
}

func TestDistributionChart(t *testing.T) {
	chart := DistributionChart(map[string]float64{
		"pickup":  66.67,
		"courier": 33.33,
	})

	assert.Equal(t, "pie", chart.Type)
	assert.Equal(t, []string{"courier", "pickup"}, chart.Labels)
	assert.Equal(t, []float64{33.33, 66.67}, chart.Values)
}

func TestNewStatCard(t *testing.T) {
	card := NewStatCard("Orders", "number", 150, 100, "vs previous period")
	assert.Equal(t, "150", card.Value)
	assert.Equal(t, 50.0, card.Change)
	assert.Equal(t, "up", card.Trend)

	down := NewStatCard("Orders", "number", 80, 100, "")
	assert.Equal(t, "down", down.Trend)

	neutral := NewStatCard("Orders", "number", 80, 0, "")
	assert.Equal(t, "neutral", neutral.Trend)
	assert.Equal(t, 0.0, neutral.Change)
}

func TestPreviousWindow(t *testing.T) {
	end := time.Date(2025, 3, 31, 0, 0, 0, 0, time.UTC)
	start := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)

	prev := PreviousWindow(&DateRange{Start: start, End: end, Field: "created_at"})

	assert.Equal(t, start, prev.End)
	assert.Equal(t, start.Add(-end.Sub(start)), prev.Start)
	assert.Equal(t, "created_at", prev.Field)
}
