package insight

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// monthlyItems builds one item record per month for a product, starting at
// January 2025.
func monthlyItems(productID, name string, quantities []float64, price float64) []Record {
	records := make([]Record, 0, len(quantities))
	for i, qty := range quantities {
		records = append(records, Record{
			"order_id":  fmt.Sprintf("%s-o%d", productID, i),
			"item_id":   productID,
			"item_name": name,
			"quantity":  qty,
			"price":     price,
			"date":      fmt.Sprintf("2025-%02d-10", i+1),
		})
	}
	return records
}

func TestAnalyzeProductTrendsGrowing(t *testing.T) {
	items := monthlyItems("p-carrot", "Carrot", []float64{10, 12, 14, 18, 22, 30}, 2)

	report, err := NewAnalyzer().AnalyzeProductTrends(items, nil)
	require.NoError(t, err)
	require.Len(t, report.Growing, 1)

	entry := report.Growing[0]
	assert.Equal(t, "p-carrot", entry.ProductID)
	assert.Equal(t, "Carrot", entry.ProductName)
	assert.Equal(t, TrendGrowing, entry.Trend)
	assert.Equal(t, 200.0, entry.GrowthRate)
	assert.Greater(t, entry.Slope, 0.0)
	assert.Len(t, entry.Series, 6)
	assert.Empty(t, report.Declining)
}

func TestAnalyzeProductTrendsDeclining(t *testing.T) {
	items := monthlyItems("p-fax", "Fax Machine", []float64{40, 30, 22, 15, 10}, 99)

	report, err := NewAnalyzer().AnalyzeProductTrends(items, nil)
	require.NoError(t, err)
	require.Len(t, report.Declining, 1)

	entry := report.Declining[0]
	assert.Equal(t, TrendDeclining, entry.Trend)
	assert.Equal(t, -75.0, entry.GrowthRate)
	assert.Less(t, entry.Slope, 0.0)
}

func TestAnalyzeProductTrendsSkipsSparseProducts(t *testing.T) {
	// Only 3 records: below the 5-record minimum, so no classification at
	// all, but the product still ranks among top products.
	items := monthlyItems("p-rare", "Rare", []float64{100, 100, 100}, 5)

	report, err := NewAnalyzer().AnalyzeProductTrends(items, nil)
	require.NoError(t, err)

	assert.Empty(t, report.Growing)
	assert.Empty(t, report.Declining)
	require.Len(t, report.TopProducts, 1)
	assert.Equal(t, 300.0, report.TopProducts[0].TotalQuantity)
}

func TestAnalyzeProductTrendsMutuallyExclusive(t *testing.T) {
	items := append(
		monthlyItems("p-up", "Up", []float64{10, 12, 15, 20, 28}, 3),
		monthlyItems("p-down", "Down", []float64{28, 20, 15, 12, 10}, 3)...,
	)

	report, err := NewAnalyzer().AnalyzeProductTrends(items, nil)
	require.NoError(t, err)

	listed := map[string]int{}
	for _, e := range report.Growing {
		listed[e.ProductID]++
	}
	for _, e := range report.Declining {
		listed[e.ProductID]++
	}
	for id, n := range listed {
		assert.Equal(t, 1, n, "product %s classified twice", id)
	}
}

func TestAnalyzeProductTrendsPriceTrend(t *testing.T) {
	items := monthlyItems("p-cocoa", "Cocoa", []float64{10, 10, 10, 10, 10}, 0)
	for i, rec := range items {
		rec["price"] = 100.0 + float64(i)*10 // +40% over the window
	}

	report, err := NewAnalyzer().AnalyzeProductTrends(items, nil)
	require.NoError(t, err)
	require.Len(t, report.PriceTrends, 1)

	pt := report.PriceTrends[0]
	assert.Equal(t, "p-cocoa", pt.ProductID)
	assert.Equal(t, "up", pt.Direction)
	assert.Equal(t, 40.0, pt.ChangePct)
}

func TestAnalyzeProductTrendsTopProductsCapAndOrder(t *testing.T) {
	var items []Record
	for i := 0; i < 12; i++ {
		items = append(items, Record{
			"order_id":  fmt.Sprintf("o%d", i),
			"item_id":   fmt.Sprintf("p%02d", i),
			"item_name": fmt.Sprintf("Product %d", i),
			"quantity":  float64(i + 1),
			"date":      "2025-01-10",
		})
	}

	report, err := NewAnalyzer().AnalyzeProductTrends(items, nil)
	require.NoError(t, err)

	require.Len(t, report.TopProducts, 10)
	assert.Equal(t, "p11", report.TopProducts[0].ProductID)
	assert.Equal(t, 12, report.AnalyzedProducts)
}

func TestAnalyzeProductTrendsInsufficientData(t *testing.T) {
	report, err := NewAnalyzer().AnalyzeProductTrends(nil, nil)
	require.NoError(t, err)

	assert.Equal(t, ErrInsufficientData, report.Error)
	assert.Empty(t, report.Growing)
	assert.Empty(t, report.TopProducts)
}

func TestAnalyzeProductTrendsInheritsOrderDates(t *testing.T) {
	orders := []Record{
		{"order_id": "o1", "date": "2025-01-10"},
		{"order_id": "o2", "date": "2025-02-10"},
		{"order_id": "o3", "date": "2025-03-10"},
		{"order_id": "o4", "date": "2025-04-10"},
		{"order_id": "o5", "date": "2025-05-10"},
	}
	items := []Record{
		{"order_id": "o1", "item_id": "p1", "quantity": 10.0},
		{"order_id": "o2", "item_id": "p1", "quantity": 14.0},
		{"order_id": "o3", "item_id": "p1", "quantity": 18.0},
		{"order_id": "o4", "item_id": "p1", "quantity": 24.0},
		{"order_id": "o5", "item_id": "p1", "quantity": 30.0},
	}

	report, err := NewAnalyzer().AnalyzeProductTrends(items, orders)
	require.NoError(t, err)

	require.Len(t, report.Growing, 1)
	assert.Equal(t, 200.0, report.Growing[0].GrowthRate)
}

func TestLinearSlope(t *testing.T) {
	assert.Equal(t, 2.0, linearSlope([]float64{1, 3, 5, 7}))
	assert.Equal(t, 0.0, linearSlope([]float64{4, 4, 4}))
	assert.Equal(t, 0.0, linearSlope([]float64{4}))
	assert.Less(t, linearSlope([]float64{9, 5, 1}), 0.0)
}
