package analytics

import (
	"fmt"
	"strings"

	"gorm.io/gorm"
)

// Aggregator provides generic database aggregation helpers over the relay's
// own tables. The insight engine never touches the database; this serves the
// summary endpoint's fleet-wide counters.
type Aggregator struct {
	db *gorm.DB
}

// NewAggregator creates a new aggregator
func NewAggregator(db *gorm.DB) *Aggregator {
	return &Aggregator{db: db}
}

// Aggregate performs a generic aggregation query
func (a *Aggregator) Aggregate(query AggregateQuery) ([]map[string]interface{}, error) {
	selectParts := make([]string, 0, len(query.GroupBy)+len(query.Aggregates))
	selectParts = append(selectParts, query.GroupBy...)
	for alias, agg := range query.Aggregates {
		selectParts = append(selectParts, fmt.Sprintf("%s AS %s", agg, alias))
	}

	db := a.db.Table(query.Table).Select(strings.Join(selectParts, ", "))

	for condition, value := range query.Filters {
		if strings.Contains(condition, "?") {
			// Parameterized condition (e.g., "amount > ?")
			db = db.Where(condition, value)
		} else {
			db = db.Where(fmt.Sprintf("%s = ?", condition), value)
		}
	}

	if query.DateRange != nil {
		db = db.Where(fmt.Sprintf("%s BETWEEN ? AND ?", query.DateRange.Field),
			query.DateRange.Start, query.DateRange.End)
	}

	if len(query.GroupBy) > 0 {
		db = db.Group(strings.Join(query.GroupBy, ", "))
	}
	for _, order := range query.OrderBy {
		db = db.Order(order)
	}
	if query.Limit > 0 {
		db = db.Limit(query.Limit)
	}

	var results []map[string]interface{}
	if err := db.Find(&results).Error; err != nil {
		return nil, fmt.Errorf("aggregate query failed: %w", err)
	}
	return results, nil
}

// Count performs a COUNT query with filters and an optional date range.
func (a *Aggregator) Count(table string, filters map[string]interface{}, dateRange *DateRange) (int64, error) {
	db := a.db.Table(table)
	for condition, value := range filters {
		if strings.Contains(condition, "?") {
			db = db.Where(condition, value)
		} else {
			db = db.Where(fmt.Sprintf("%s = ?", condition), value)
		}
	}
	if dateRange != nil {
		db = db.Where(fmt.Sprintf("%s BETWEEN ? AND ?", dateRange.Field),
			dateRange.Start, dateRange.End)
	}

	var count int64
	if err := db.Count(&count).Error; err != nil {
		return 0, fmt.Errorf("count query failed: %w", err)
	}
	return count, nil
}

// Sum performs a SUM query over a column.
func (a *Aggregator) Sum(table, column string, filters map[string]interface{}, dateRange *DateRange) (float64, error) {
	return a.scalar(table, fmt.Sprintf("SUM(%s)", column), filters, dateRange)
}

// Average performs an AVG query over a column.
func (a *Aggregator) Average(table, column string, filters map[string]interface{}, dateRange *DateRange) (float64, error) {
	return a.scalar(table, fmt.Sprintf("AVG(%s)", column), filters, dateRange)
}

func (a *Aggregator) scalar(table, aggregate string, filters map[string]interface{}, dateRange *DateRange) (float64, error) {
	results, err := a.Aggregate(AggregateQuery{
		Table:      table,
		Aggregates: map[string]string{"value": aggregate},
		Filters:    filters,
		DateRange:  dateRange,
	})
	if err != nil {
		return 0, err
	}
	if len(results) == 0 {
		return 0, nil
	}

	switch v := results[0]["value"].(type) {
	case nil:
		return 0, nil
	case float64:
		return v, nil
	case int64:
		return float64(v), nil
	default:
		return 0, fmt.Errorf("unexpected scalar result type: %T", v)
	}
}
