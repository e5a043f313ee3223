package insight

import (
	"sort"
	"time"
)

// CustomerMetric summarizes one customer's order history.
type CustomerMetric struct {
	UserID                 string  `json:"user_id"`
	Name                   string  `json:"name"`
	OrderCount             int     `json:"order_count"`
	TotalSpent             float64 `json:"total_spent"`
	AverageOrderValue      float64 `json:"average_order_value"`
	DaysSinceLastOrder     int     `json:"days_since_last_order"`
	AvgDaysBetweenOrders   float64 `json:"avg_days_between_orders"`
	PreferredDeliveryMode  string  `json:"preferred_delivery_mode"`
	PreferredPaymentMethod string  `json:"preferred_payment_method"`
}

// CohortMetric groups customers by the calendar month of their first order.
type CohortMetric struct {
	Month           string  `json:"month"`
	NewCustomers    int     `json:"new_customers"`
	RepeatCustomers int     `json:"repeat_customers"`
	RetentionRate   float64 `json:"retention_rate"`
}

// FrequencyBand buckets customers into fixed order-count bands.
type FrequencyBand struct {
	Label      string  `json:"label"`
	Count      int     `json:"count"`
	Percentage float64 `json:"percentage"`
}

// CustomerReport is the customer pattern analysis result.
type CustomerReport struct {
	Customers      []CustomerMetric   `json:"customers"`
	DeliveryModes  map[string]float64 `json:"delivery_modes"`
	PaymentMethods map[string]float64 `json:"payment_methods"`
	Cohorts        []CohortMetric     `json:"cohorts"`
	FrequencyBands []FrequencyBand    `json:"frequency_bands"`
	TotalCustomers int                `json:"total_customers"`
	TotalOrders    int                `json:"total_orders"`
	Error          string             `json:"error,omitempty"`
}

// frequencyBands are the fixed purchase-frequency histogram bands.
var frequencyBands = []struct {
	label    string
	min, max int
}{
	{"1", 1, 1},
	{"2-3", 2, 3},
	{"4-6", 4, 6},
	{"7-10", 7, 10},
	{"10+", 11, 1 << 30},
}

// AnalyzeCustomerPatterns aggregates per-customer order history into spend,
// frequency and preference metrics, plus fleet-wide delivery/payment
// distributions, monthly retention cohorts and a purchase-frequency
// histogram. Days-since-last-order is relative to the analyzer clock.
func (a *Analyzer) AnalyzeCustomerPatterns(orders, users []Record) (*CustomerReport, error) {
	report := &CustomerReport{
		Customers:      []CustomerMetric{},
		DeliveryModes:  map[string]float64{},
		PaymentMethods: map[string]float64{},
		Cohorts:        []CohortMetric{},
		FrequencyBands: []FrequencyBand{},
	}

	normalized := Normalize(orders)
	if len(normalized) == 0 {
		report.Error = ErrInsufficientData
		return report, nil
	}

	userNames := make(map[string]string)
	for _, user := range Normalize(users) {
		if id := user.Str("user_id"); id != "" {
			userNames[id] = user.Str("name")
		}
	}

	now := a.now()
	byCustomer := GroupBy(normalized, "user_id")
	report.TotalOrders = len(normalized)
	report.TotalCustomers = len(byCustomer)

	cohortNew := make(map[string]int)
	cohortRepeat := make(map[string]int)
	bandCounts := make([]int, len(frequencyBands))

	ids := make([]string, 0, len(byCustomer))
	for id := range byCustomer {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	for _, id := range ids {
		records := byCustomer[id]

		var totalSpent float64
		var dates []time.Time
		delivery := newPreferenceCounter()
		payment := newPreferenceCounter()

		for _, rec := range records {
			totalSpent += rec.Float("amount")
			if t, ok := orderTime(rec); ok {
				dates = append(dates, t)
			}
			delivery.add(rec.Str("delivery_mode"))
			payment.add(rec.Str("payment_method"))
		}
		sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })

		metric := CustomerMetric{
			UserID:                 id,
			Name:                   customerName(records, userNames, id),
			OrderCount:             len(records),
			TotalSpent:             round2(totalSpent),
			AverageOrderValue:      round2(totalSpent / float64(len(records))),
			PreferredDeliveryMode:  delivery.top(),
			PreferredPaymentMethod: payment.top(),
		}

		if len(dates) > 0 {
			first, last := dates[0], dates[len(dates)-1]
			metric.DaysSinceLastOrder = int(now.Sub(last).Hours() / 24)
			if len(dates) >= 2 {
				span := last.Sub(first).Hours() / 24
				metric.AvgDaysBetweenOrders = round2(span / float64(len(dates)-1))
			}
			month := first.Format("2006-01")
			cohortNew[month]++
			if len(records) > 1 {
				cohortRepeat[month]++
			}
		}

		for i, band := range frequencyBands {
			if len(records) >= band.min && len(records) <= band.max {
				bandCounts[i]++
				break
			}
		}

		report.Customers = append(report.Customers, metric)
	}

	sort.SliceStable(report.Customers, func(i, j int) bool {
		return report.Customers[i].TotalSpent > report.Customers[j].TotalSpent
	})

	report.DeliveryModes = distribution(normalized, "delivery_mode")
	report.PaymentMethods = distribution(normalized, "payment_method")

	months := make([]string, 0, len(cohortNew))
	for month := range cohortNew {
		months = append(months, month)
	}
	sort.Strings(months)
	for _, month := range months {
		newCount := cohortNew[month]
		repeat := cohortRepeat[month]
		report.Cohorts = append(report.Cohorts, CohortMetric{
			Month:           month,
			NewCustomers:    newCount,
			RepeatCustomers: repeat,
			RetentionRate:   round2(float64(repeat) / float64(newCount) * 100),
		})
	}

	for i, band := range frequencyBands {
		report.FrequencyBands = append(report.FrequencyBands, FrequencyBand{
			Label:      band.label,
			Count:      bandCounts[i],
			Percentage: round2(float64(bandCounts[i]) / float64(report.TotalCustomers) * 100),
		})
	}

	return report, nil
}

// orderTime prefers the explicit order date, falling back to created_at.
func orderTime(rec Record) (time.Time, bool) {
	if t, ok := rec.Time("date"); ok {
		return t, true
	}
	return rec.Time("created_at")
}

func customerName(records []Record, userNames map[string]string, id string) string {
	for _, rec := range records {
		if name := rec.Str("user_name"); name != "" {
			return name
		}
	}
	if name := userNames[id]; name != "" {
		return name
	}
	return id
}

// distribution returns each value's share of all orders as a percentage,
// rounded to two decimals. Orders lacking the field are excluded.
func distribution(orders []Record, field string) map[string]float64 {
	counts := make(map[string]int)
	total := 0
	for _, rec := range orders {
		v := rec.Str(field)
		if v == "" {
			continue
		}
		counts[v]++
		total++
	}
	dist := make(map[string]float64, len(counts))
	for v, count := range counts {
		dist[v] = round2(float64(count) / float64(total) * 100)
	}
	return dist
}

// preferenceCounter tracks value frequencies while remembering encounter
// order so ties resolve to the value seen first.
type preferenceCounter struct {
	counts map[string]int
	seen   map[string]int
	next   int
}

func newPreferenceCounter() *preferenceCounter {
	return &preferenceCounter{
		counts: make(map[string]int),
		seen:   make(map[string]int),
	}
}

func (p *preferenceCounter) add(v string) {
	if v == "" {
		return
	}
	if _, ok := p.seen[v]; !ok {
		p.seen[v] = p.next
		p.next++
	}
	p.counts[v]++
}

func (p *preferenceCounter) top() string {
	best := ""
	bestCount := -1
	for v, count := range p.counts {
		if count > bestCount || (count == bestCount && p.seen[v] < p.seen[best]) {
			best = v
			bestCount = count
		}
	}
	return best
}
