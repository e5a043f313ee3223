package analytics

import (
	"fmt"
	"sort"

	"github.com/ordelia/order-insight-be/internal/core/insight"
)

// SeriesChart converts an engine time series into a line chart, one point
// per bucket, reading the given bucket field for Y values.
func SeriesChart(series []insight.Record, name, valueKey string) ChartData {
	labels := make([]string, len(series))
	values := make([]interface{}, len(series))
	for i, bucket := range series {
		labels[i] = bucket.Str("date")
		values[i] = bucket[valueKey]
	}
	return ChartData{
		Type:   "line",
		Labels: labels,
		Data: []ChartSeries{
			{Name: name, Values: values},
		},
	}
}

// DistributionChart converts a share map (e.g., delivery-mode percentages)
// into a pie chart with deterministic label order.
func DistributionChart(shares map[string]float64) PieChartData {
	labels := make([]string, 0, len(shares))
	for label := range shares {
		labels = append(labels, label)
	}
	sort.Strings(labels)

	values := make([]float64, len(labels))
	for i, label := range labels {
		values[i] = shares[label]
	}
	return PieChartData{
		Type:   "pie",
		Labels: labels,
		Values: values,
	}
}

// NewStatCard builds a summary card with a change percentage against a
// previous-period value. A zero previous value yields a neutral trend.
func NewStatCard(title, format string, current, previous float64, changeLabel string) StatCard {
	card := StatCard{
		Title:       title,
		Value:       formatStatValue(current, format),
		ChangeLabel: changeLabel,
		Trend:       "neutral",
	}
	if previous > 0 {
		card.Change = (current - previous) / previous * 100
		if card.Change > 0 {
			card.Trend = "up"
		} else if card.Change < 0 {
			card.Trend = "down"
		}
	}
	return card
}

func formatStatValue(num float64, format string) string {
	switch format {
	case "currency":
		return fmt.Sprintf("Rp %.2f", num)
	case "percentage":
		return fmt.Sprintf("%.1f%%", num)
	case "number":
		if num >= 1000000 {
			return fmt.Sprintf("%.1fM", num/1000000)
		} else if num >= 1000 {
			return fmt.Sprintf("%.1fK", num/1000)
		}
		return fmt.Sprintf("%.0f", num)
	default:
		return fmt.Sprintf("%.2f", num)
	}
}
