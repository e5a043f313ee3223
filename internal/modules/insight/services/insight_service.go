package services

import (
	"fmt"
	"time"

	"github.com/ordelia/order-insight-be/internal/core/analytics"
	"github.com/ordelia/order-insight-be/internal/core/insight"
	"github.com/ordelia/order-insight-be/internal/modules/insight/repositories"
)

// InsightService orchestrates the analysis engine over the relay's record
// store. The engine itself is stateless; this layer picks the date window,
// pulls the flat record collections and hands back serializable reports.
type InsightService struct {
	orderRepo    repositories.OrderRepo
	customerRepo repositories.CustomerRepo
	aggregator   *analytics.Aggregator
	analyzer     *insight.Analyzer
	windowDays   int
}

func NewInsightService(
	orderRepo repositories.OrderRepo,
	customerRepo repositories.CustomerRepo,
	aggregator *analytics.Aggregator,
	windowDays int,
) *InsightService {
	return &InsightService{
		orderRepo:    orderRepo,
		customerRepo: customerRepo,
		aggregator:   aggregator,
		analyzer:     insight.NewAnalyzer(),
		windowDays:   windowDays,
	}
}

func (s *InsightService) window(days int) (time.Time, time.Time) {
	if days <= 0 {
		days = s.windowDays
	}
	end := time.Now()
	return end.AddDate(0, 0, -days), end
}

// ProductTrends runs the trend analysis over the trailing window.
func (s *InsightService) ProductTrends(days int) (*insight.TrendReport, error) {
	start, end := s.window(days)

	items, err := s.orderRepo.ItemRecords(start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to load item records: %w", err)
	}
	orders, err := s.orderRepo.Records(start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to load order records: %w", err)
	}

	return s.analyzer.AnalyzeProductTrends(items, orders)
}

// CustomerPatterns runs the customer pattern analysis over the trailing
// window.
func (s *InsightService) CustomerPatterns(days int) (*insight.CustomerReport, error) {
	start, end := s.window(days)

	orders, err := s.orderRepo.Records(start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to load order records: %w", err)
	}
	users, err := s.customerRepo.Records()
	if err != nil {
		return nil, fmt.Errorf("failed to load customer records: %w", err)
	}

	return s.analyzer.AnalyzeCustomerPatterns(orders, users)
}

// Recommendations produces ranked product suggestions, personalized when a
// customer id is given and the customer has history in the window.
func (s *InsightService) Recommendations(customerID string, days int) (*insight.RecommendationResult, error) {
	start, end := s.window(days)

	items, err := s.orderRepo.ItemRecords(start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to load item records: %w", err)
	}
	orders, err := s.orderRepo.Records(start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to load order records: %w", err)
	}

	features, err := s.analyzer.CreateProductFeatures(items, orders)
	if err != nil {
		return nil, err
	}
	return s.analyzer.GenerateRecommendations(features, orders, customerID)
}

// ProductFeatures exposes the raw co-occurrence feature table.
func (s *InsightService) ProductFeatures(days int) (map[string]*insight.ProductFeature, error) {
	start, end := s.window(days)

	items, err := s.orderRepo.ItemRecords(start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to load item records: %w", err)
	}
	orders, err := s.orderRepo.Records(start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to load order records: %w", err)
	}

	return s.analyzer.CreateProductFeatures(items, orders)
}

// Summary builds the dashboard header: fleet-wide counters with
// period-over-period change, plus an order-volume chart for the window.
func (s *InsightService) Summary(days int) (map[string]interface{}, error) {
	if days <= 0 {
		days = s.windowDays
	}
	window := analytics.LastDays(days)
	previous := analytics.PreviousWindow(window)

	orderCount, err := s.aggregator.Count("orders", nil, window)
	if err != nil {
		return nil, err
	}
	prevCount, err := s.aggregator.Count("orders", nil, previous)
	if err != nil {
		return nil, err
	}
	revenue, err := s.aggregator.Sum("orders", "total_amount", nil, window)
	if err != nil {
		return nil, err
	}
	prevRevenue, err := s.aggregator.Sum("orders", "total_amount", nil, previous)
	if err != nil {
		return nil, err
	}
	avgOrder, err := s.aggregator.Average("orders", "total_amount", nil, window)
	if err != nil {
		return nil, err
	}

	orders, err := s.orderRepo.Records(window.Start, window.End)
	if err != nil {
		return nil, err
	}
	volume := insight.TimeSeries(orders, "date", "amount", insight.GranularityDay)

	changeLabel := fmt.Sprintf("vs previous %d days", days)
	return map[string]interface{}{
		"cards": []analytics.StatCard{
			analytics.NewStatCard("Orders", "number", float64(orderCount), float64(prevCount), changeLabel),
			analytics.NewStatCard("Revenue", "currency", revenue, prevRevenue, changeLabel),
			analytics.NewStatCard("Avg Order Value", "currency", avgOrder, 0, ""),
		},
		"order_volume": analytics.SeriesChart(volume, "Revenue", "sum"),
	}, nil
}
