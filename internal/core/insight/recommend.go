package insight

import (
	"fmt"
	"sort"
)

// Recommendation modes.
const (
	ModePersonalized = "personalized"
	ModePopular      = "popular"
)

// PopularReason is the rationale attached to cold-start recommendations.
const PopularReason = "Popular product"

// Recommendation is one ranked product suggestion.
type Recommendation struct {
	ProductID   string  `json:"product_id"`
	ProductName string  `json:"product_name"`
	Score       float64 `json:"score"`
	Reason      string  `json:"reason"`
}

// RecommendationResult carries the ranked suggestions plus the mode that
// produced them.
type RecommendationResult struct {
	CustomerID      string           `json:"customer_id,omitempty"`
	Mode            string           `json:"mode,omitempty"`
	Recommendations []Recommendation `json:"recommendations"`
	Error           string           `json:"error,omitempty"`
}

// GenerateRecommendations ranks products for a customer by co-purchase
// affinity against their known product set, falling back to overall
// popularity when no customer id is given or the customer has no history.
// With no feature data at all the result carries the insufficient-data
// marker so callers can tell "no recommendations" from "cannot compute".
func (a *Analyzer) GenerateRecommendations(features map[string]*ProductFeature, recentOrders []Record, customerID string) (*RecommendationResult, error) {
	result := &RecommendationResult{
		CustomerID:      customerID,
		Recommendations: []Recommendation{},
	}

	if len(features) == 0 {
		result.Error = ErrInsufficientData
		return result, nil
	}

	if customerID != "" {
		owned := purchasedProducts(recentOrders, customerID)
		if len(owned) > 0 {
			result.Mode = ModePersonalized
			result.Recommendations = personalized(features, owned)
			return result, nil
		}
	}

	result.Mode = ModePopular
	result.Recommendations = popular(features)
	return result, nil
}

// purchasedProducts collects the distinct product set from the customer's
// order history. Orders may embed their items as nested records.
func purchasedProducts(orders []Record, customerID string) map[string]bool {
	owned := make(map[string]bool)
	for _, order := range Normalize(orders) {
		if order.Str("user_id") != customerID {
			continue
		}
		if id := itemProductID(order); id != "" {
			// Flat item rows joined with the order's user work too.
			owned[id] = true
		}
		for _, item := range embeddedItems(order) {
			if id := itemProductID(item); id != "" {
				owned[id] = true
			}
		}
	}
	return owned
}

func itemProductID(rec Record) string {
	if id := rec.Str("item_id"); id != "" {
		return id
	}
	return rec.Str("product_id")
}

// embeddedItems extracts an order's nested item records, tolerating the
// shapes JSON decoding produces.
func embeddedItems(order Record) []Record {
	switch items := order["items"].(type) {
	case []Record:
		return items
	case []map[string]interface{}:
		out := make([]Record, len(items))
		for i, item := range items {
			out[i] = Record(item)
		}
		return out
	case []interface{}:
		out := make([]Record, 0, len(items))
		for _, item := range items {
			if m, ok := item.(map[string]interface{}); ok {
				out = append(out, Record(m))
			}
		}
		return out
	}
	return nil
}

func personalized(features map[string]*ProductFeature, owned map[string]bool) []Recommendation {
	best := make(map[string]Recommendation)
	for pid := range owned {
		f, ok := features[pid]
		if !ok {
			continue
		}
		for _, related := range f.CommonPurchases {
			if owned[related.ProductID] {
				continue
			}
			score := float64(related.Count)
			if current, ok := best[related.ProductID]; ok && current.Score >= score {
				continue
			}
			best[related.ProductID] = Recommendation{
				ProductID:   related.ProductID,
				ProductName: related.ProductName,
				Score:       score,
				Reason:      fmt.Sprintf("Frequently bought with %s", f.Name),
			}
		}
	}

	recs := make([]Recommendation, 0, len(best))
	for _, rec := range best {
		recs = append(recs, rec)
	}
	return rankRecommendations(recs)
}

func popular(features map[string]*ProductFeature) []Recommendation {
	recs := make([]Recommendation, 0, len(features))
	for _, f := range features {
		recs = append(recs, Recommendation{
			ProductID:   f.ID,
			ProductName: f.Name,
			Score:       float64(f.PurchaseCount),
			Reason:      PopularReason,
		})
	}
	return rankRecommendations(recs)
}

func rankRecommendations(recs []Recommendation) []Recommendation {
	sort.Slice(recs, func(i, j int) bool {
		if recs[i].Score != recs[j].Score {
			return recs[i].Score > recs[j].Score
		}
		return recs[i].ProductID < recs[j].ProductID
	})
	if len(recs) > maxRecommendations {
		recs = recs[:maxRecommendations]
	}
	return recs
}
