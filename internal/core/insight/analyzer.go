package insight

import (
	"math"
	"time"
)

// ErrInsufficientData marks a result computed from an empty or undersized
// collection. It is a normal outcome carried inside the result, never a
// hard failure: callers distinguish "nothing to report" from "cannot
// compute" by checking the marker.
const ErrInsufficientData = "insufficient data"

const (
	// minTrendRecords is the minimum item records a product needs before
	// trend analysis is attempted at all.
	minTrendRecords = 5
	// minTrendBuckets is the minimum monthly buckets required to fit a line.
	minTrendBuckets = 3

	growthThresholdPct = 10.0
	priceThresholdPct  = 5.0

	maxTrendResults    = 5
	maxTopProducts     = 10
	maxCommonPurchases = 5
	maxRecommendations = 5
)

// Analyzer is the trend-and-recommendation engine. It holds no state between
// calls aside from the injected clock, so independent analyses may run
// concurrently.
type Analyzer struct {
	// Now supplies the analysis time for recency metrics. Tests override it.
	Now func() time.Time
}

// NewAnalyzer returns an analyzer using the wall clock.
func NewAnalyzer() *Analyzer {
	return &Analyzer{Now: time.Now}
}

func (a *Analyzer) now() time.Time {
	if a.Now != nil {
		return a.Now()
	}
	return time.Now()
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
