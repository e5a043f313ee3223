package insight

import (
	"math"
	"sort"
)

// TrendEntry is one product classified as growing or declining.
type TrendEntry struct {
	ProductID   string   `json:"product_id"`
	ProductName string   `json:"product_name"`
	Trend       string   `json:"trend"`
	GrowthRate  float64  `json:"growth_rate"`
	Slope       float64  `json:"slope"`
	Series      []Record `json:"series"`
}

// PriceTrend reports a significant shift in a product's average price.
type PriceTrend struct {
	ProductID   string  `json:"product_id"`
	ProductName string  `json:"product_name"`
	ChangePct   float64 `json:"change_pct"`
	Direction   string  `json:"direction"`
}

// TopProduct ranks a product by total quantity sold.
type TopProduct struct {
	ProductID     string  `json:"product_id"`
	ProductName   string  `json:"product_name"`
	TotalQuantity float64 `json:"total_quantity"`
}

// TrendReport is the product trend analysis result. Products that are neither
// strongly growing nor declining appear in no list; there is deliberately no
// "stable" bucket, since consumers depend on the two-list shape.
type TrendReport struct {
	Growing          []TrendEntry `json:"growing"`
	Declining        []TrendEntry `json:"declining"`
	PriceTrends      []PriceTrend `json:"price_trends"`
	TopProducts      []TopProduct `json:"top_products"`
	AnalyzedProducts int          `json:"analyzed_products"`
	Error            string       `json:"error,omitempty"`
}

const (
	TrendGrowing   = "growing"
	TrendDeclining = "declining"
)

// AnalyzeProductTrends classifies per-product monthly quantity series as
// growing or declining, detects price shifts, and ranks top sellers. Items
// missing a date inherit it from the owning order.
func (a *Analyzer) AnalyzeProductTrends(items, orders []Record) (*TrendReport, error) {
	report := &TrendReport{
		Growing:     []TrendEntry{},
		Declining:   []TrendEntry{},
		PriceTrends: []PriceTrend{},
		TopProducts: []TopProduct{},
	}

	prepared := prepareItems(items, orders)
	if len(prepared) == 0 {
		report.Error = ErrInsufficientData
		return report, nil
	}

	byProduct := GroupBy(prepared, "item_id")
	report.AnalyzedProducts = len(byProduct)

	ids := make([]string, 0, len(byProduct))
	for id := range byProduct {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	for _, id := range ids {
		records := byProduct[id]
		name := productName(records, id)

		total := 0.0
		for _, rec := range records {
			total += rec.Float("quantity")
		}
		report.TopProducts = append(report.TopProducts, TopProduct{
			ProductID:     id,
			ProductName:   name,
			TotalQuantity: total,
		})

		if len(records) < minTrendRecords {
			continue
		}

		series := TimeSeries(records, "date", "quantity", GranularityMonth)
		if len(series) < minTrendBuckets {
			continue
		}

		sums := make([]float64, len(series))
		for i, bucket := range series {
			sums[i] = bucket.Float("sum")
		}
		slope := linearSlope(sums)

		first, last := sums[0], sums[len(sums)-1]
		if first != 0 {
			growthRate := (last/first - 1) * 100
			entry := TrendEntry{
				ProductID:   id,
				ProductName: name,
				GrowthRate:  round2(growthRate),
				Slope:       slope,
				Series:      series,
			}
			switch {
			case slope > 0 && growthRate > growthThresholdPct:
				entry.Trend = TrendGrowing
				report.Growing = append(report.Growing, entry)
			case slope < 0 && growthRate < -growthThresholdPct:
				entry.Trend = TrendDeclining
				report.Declining = append(report.Declining, entry)
			}
		}

		if pt, ok := detectPriceTrend(id, name, records); ok {
			report.PriceTrends = append(report.PriceTrends, pt)
		}
	}

	sort.SliceStable(report.Growing, func(i, j int) bool {
		return report.Growing[i].GrowthRate > report.Growing[j].GrowthRate
	})
	sort.SliceStable(report.Declining, func(i, j int) bool {
		return report.Declining[i].GrowthRate < report.Declining[j].GrowthRate
	})
	sort.SliceStable(report.PriceTrends, func(i, j int) bool {
		return math.Abs(report.PriceTrends[i].ChangePct) > math.Abs(report.PriceTrends[j].ChangePct)
	})
	sort.SliceStable(report.TopProducts, func(i, j int) bool {
		return report.TopProducts[i].TotalQuantity > report.TopProducts[j].TotalQuantity
	})

	report.Growing = capTrendEntries(report.Growing, maxTrendResults)
	report.Declining = capTrendEntries(report.Declining, maxTrendResults)
	if len(report.PriceTrends) > maxTrendResults {
		report.PriceTrends = report.PriceTrends[:maxTrendResults]
	}
	if len(report.TopProducts) > maxTopProducts {
		report.TopProducts = report.TopProducts[:maxTopProducts]
	}

	return report, nil
}

// detectPriceTrend compares the first and last monthly average price and
// reports the signed change when it exceeds the threshold either way.
func detectPriceTrend(id, name string, records []Record) (PriceTrend, bool) {
	series := TimeSeries(records, "date", "price", GranularityMonth)
	if len(series) < 2 {
		return PriceTrend{}, false
	}
	firstAvg := series[0].Float("average")
	lastAvg := series[len(series)-1].Float("average")
	if firstAvg == 0 {
		return PriceTrend{}, false
	}
	change := (lastAvg/firstAvg - 1) * 100
	if math.Abs(change) <= priceThresholdPct {
		return PriceTrend{}, false
	}
	direction := "up"
	if change < 0 {
		direction = "down"
	}
	return PriceTrend{
		ProductID:   id,
		ProductName: name,
		ChangePct:   round2(change),
		Direction:   direction,
	}, true
}

// linearSlope fits an ordinary least-squares line over index 0..n-1 versus
// the values and returns its slope. A degenerate series yields 0.
func linearSlope(ys []float64) float64 {
	n := len(ys)
	if n < 2 {
		return 0
	}
	xbar := float64(n-1) / 2
	ybar := 0.0
	for _, y := range ys {
		ybar += y
	}
	ybar /= float64(n)

	var num, den float64
	for i, y := range ys {
		dx := float64(i) - xbar
		num += dx * (y - ybar)
		den += dx * dx
	}
	if den == 0 {
		return 0
	}
	return num / den
}

// prepareItems normalizes item records, fills in the defaults the data model
// guarantees (quantity 1, price 0) and inherits missing dates from the
// owning order so time bucketing does not drop otherwise valid items.
func prepareItems(items, orders []Record) []Record {
	prepared := Normalize(items)

	orderDates := make(map[string]interface{})
	for _, order := range Normalize(orders) {
		id := order.Str("order_id")
		if id == "" {
			continue
		}
		if t, ok := order.Time("date"); ok {
			orderDates[id] = t
		} else if t, ok := order.Time("created_at"); ok {
			orderDates[id] = t
		}
	}

	for _, rec := range prepared {
		if !rec.Has("quantity") {
			rec["quantity"] = float64(1)
		}
		if !rec.Has("price") {
			rec["price"] = float64(0)
		}
		if _, ok := rec.Time("date"); !ok {
			if d, found := orderDates[rec.Str("order_id")]; found {
				rec["date"] = d
			}
		}
	}
	return prepared
}

func productName(records []Record, fallback string) string {
	for _, rec := range records {
		if name := rec.Str("item_name"); name != "" {
			return name
		}
	}
	return fallback
}

func capTrendEntries(entries []TrendEntry, max int) []TrendEntry {
	if len(entries) > max {
		return entries[:max]
	}
	return entries
}
