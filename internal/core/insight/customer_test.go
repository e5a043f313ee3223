package insight

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedAnalyzer(now string) *Analyzer {
	t, _ := time.Parse("2006-01-02", now)
	return &Analyzer{Now: func() time.Time { return t }}
}

func TestAnalyzeCustomerPatternsBasicMetrics(t *testing.T) {
	orders := []Record{
		{"order_id": "o1", "user_id": "u1", "amount": "100", "date": "2025-01-01", "delivery_mode": "pickup", "payment_method": "cash"},
		{"order_id": "o2", "user_id": "u1", "amount": "50", "date": "2025-01-31", "delivery_mode": "pickup", "payment_method": "transfer"},
	}
	users := []Record{
		{"user_id": "u1", "name": "Sari"},
	}

	report, err := fixedAnalyzer("2025-02-10").AnalyzeCustomerPatterns(orders, users)
	require.NoError(t, err)
	require.Len(t, report.Customers, 1)

	c := report.Customers[0]
	assert.Equal(t, "u1", c.UserID)
	assert.Equal(t, "Sari", c.Name)
	assert.Equal(t, 2, c.OrderCount)
	assert.Equal(t, 150.0, c.TotalSpent)
	assert.Equal(t, 75.0, c.AverageOrderValue)
	assert.Equal(t, 30.0, c.AvgDaysBetweenOrders)
	assert.Equal(t, 10, c.DaysSinceLastOrder)
	assert.Equal(t, "pickup", c.PreferredDeliveryMode)
}

func TestAnalyzeCustomerPatternsSingleOrderGap(t *testing.T) {
	orders := []Record{
		{"order_id": "o1", "user_id": "u1", "amount": 10.0, "date": "2025-01-01"},
	}

	report, err := fixedAnalyzer("2025-01-02").AnalyzeCustomerPatterns(orders, nil)
	require.NoError(t, err)

	assert.Equal(t, 0.0, report.Customers[0].AvgDaysBetweenOrders)
}

func TestAnalyzeCustomerPatternsPreferenceTieBreak(t *testing.T) {
	// cod and courier both appear once; the value seen first wins.
	orders := []Record{
		{"order_id": "o1", "user_id": "u1", "amount": 1.0, "date": "2025-01-01", "delivery_mode": "cod"},
		{"order_id": "o2", "user_id": "u1", "amount": 1.0, "date": "2025-01-02", "delivery_mode": "courier"},
	}

	report, err := fixedAnalyzer("2025-01-03").AnalyzeCustomerPatterns(orders, nil)
	require.NoError(t, err)

	assert.Equal(t, "cod", report.Customers[0].PreferredDeliveryMode)
}

func TestAnalyzeCustomerPatternsDistributions(t *testing.T) {
	orders := []Record{
		{"order_id": "o1", "user_id": "u1", "amount": 1.0, "date": "2025-01-01", "delivery_mode": "pickup", "payment_method": "cash"},
		{"order_id": "o2", "user_id": "u2", "amount": 1.0, "date": "2025-01-02", "delivery_mode": "pickup", "payment_method": "cash"},
		{"order_id": "o3", "user_id": "u3", "amount": 1.0, "date": "2025-01-03", "delivery_mode": "courier", "payment_method": "transfer"},
	}

	report, err := fixedAnalyzer("2025-02-01").AnalyzeCustomerPatterns(orders, nil)
	require.NoError(t, err)

	assert.Equal(t, 66.67, report.DeliveryModes["pickup"])
	assert.Equal(t, 33.33, report.DeliveryModes["courier"])
	assert.Equal(t, 66.67, report.PaymentMethods["cash"])
}

func TestAnalyzeCustomerPatternsCohorts(t *testing.T) {
	orders := []Record{
		// u1 and u2 first order in January; only u1 reorders.
		{"order_id": "o1", "user_id": "u1", "amount": 1.0, "date": "2025-01-05"},
		{"order_id": "o2", "user_id": "u1", "amount": 1.0, "date": "2025-02-05"},
		{"order_id": "o3", "user_id": "u2", "amount": 1.0, "date": "2025-01-20"},
		// u3 first order in February, single order.
		{"order_id": "o4", "user_id": "u3", "amount": 1.0, "date": "2025-02-10"},
	}

	report, err := fixedAnalyzer("2025-03-01").AnalyzeCustomerPatterns(orders, nil)
	require.NoError(t, err)
	require.Len(t, report.Cohorts, 2)

	jan := report.Cohorts[0]
	assert.Equal(t, "2025-01", jan.Month)
	assert.Equal(t, 2, jan.NewCustomers)
	assert.Equal(t, 1, jan.RepeatCustomers)
	assert.Equal(t, 50.0, jan.RetentionRate)

	feb := report.Cohorts[1]
	assert.Equal(t, "2025-02", feb.Month)
	assert.Equal(t, 0.0, feb.RetentionRate)

	for _, cohort := range report.Cohorts {
		assert.GreaterOrEqual(t, cohort.RetentionRate, 0.0)
		assert.LessOrEqual(t, cohort.RetentionRate, 100.0)
	}
}

func TestAnalyzeCustomerPatternsFrequencyBands(t *testing.T) {
	var orders []Record
	addOrders := func(userID string, n int) {
		for i := 0; i < n; i++ {
			orders = append(orders, Record{
				"order_id": userID + "-" + string(rune('a'+i)),
				"user_id":  userID,
				"amount":   1.0,
				"date":     "2025-01-01",
			})
		}
	}
	addOrders("one", 1)
	addOrders("two", 3)
	addOrders("three", 5)
	addOrders("four", 8)
	addOrders("five", 12)

	report, err := fixedAnalyzer("2025-02-01").AnalyzeCustomerPatterns(orders, nil)
	require.NoError(t, err)
	require.Len(t, report.FrequencyBands, 5)

	for _, band := range report.FrequencyBands {
		assert.Equal(t, 1, band.Count, "band %s", band.Label)
		assert.Equal(t, 20.0, band.Percentage)
	}
}

func TestAnalyzeCustomerPatternsInsufficientData(t *testing.T) {
	report, err := NewAnalyzer().AnalyzeCustomerPatterns(nil, nil)
	require.NoError(t, err)

	assert.Equal(t, ErrInsufficientData, report.Error)
	assert.Empty(t, report.Customers)
}

func TestAnalyzeCustomerPatternsSortedBySpend(t *testing.T) {
	orders := []Record{
		{"order_id": "o1", "user_id": "small", "amount": 10.0, "date": "2025-01-01"},
		{"order_id": "o2", "user_id": "big", "amount": 500.0, "date": "2025-01-01"},
	}

	report, err := fixedAnalyzer("2025-01-02").AnalyzeCustomerPatterns(orders, nil)
	require.NoError(t, err)

	require.Len(t, report.Customers, 2)
	assert.Equal(t, "big", report.Customers[0].UserID)
}
