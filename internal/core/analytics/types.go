package analytics

import "time"

// AggregateQuery represents a generic database aggregation query.
type AggregateQuery struct {
	Table      string                 // Table or JOIN clause
	GroupBy    []string               // GROUP BY columns
	Aggregates map[string]string      // Aggregate functions: {"total": "SUM(amount)"}
	Filters    map[string]interface{} // WHERE conditions
	DateRange  *DateRange             // Date range filter
	OrderBy    []string               // ORDER BY clauses
	Limit      int                    // LIMIT (0 = no limit)
}

// DateRange represents a time period for filtering.
type DateRange struct {
	Start time.Time
	End   time.Time
	Field string // Date field to filter on (e.g., "created_at")
}

// ChartData is the generic chart payload returned to dashboard consumers.
type ChartData struct {
	Type   string        `json:"type"` // "line", "bar"
	Labels []string      `json:"labels"`
	Data   []ChartSeries `json:"data"`
}

// ChartSeries is one data series in a chart.
type ChartSeries struct {
	Name   string        `json:"name"`
	Values []interface{} `json:"values"`
}

// PieChartData carries label/value pairs for share-style charts.
type PieChartData struct {
	Type   string    `json:"type"` // "pie" or "donut"
	Labels []string  `json:"labels"`
	Values []float64 `json:"values"`
}

// StatCard is a summary statistic with an optional change versus a
// previous period.
type StatCard struct {
	Title       string  `json:"title"`
	Value       string  `json:"value"`
	Change      float64 `json:"change"`
	ChangeLabel string  `json:"change_label,omitempty"`
	Trend       string  `json:"trend"` // "up", "down", "neutral"
}
