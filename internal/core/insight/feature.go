package insight

import "sort"

// RelatedProduct is a co-purchased product with the number of orders in
// which both products appear.
type RelatedProduct struct {
	ProductID   string `json:"id"`
	ProductName string `json:"name"`
	Count       int    `json:"count"`
}

// ProductFeature aggregates purchase statistics for one product.
type ProductFeature struct {
	ID              string           `json:"id"`
	Name            string           `json:"name"`
	PurchaseCount   int              `json:"purchase_count"`
	TotalQuantity   float64          `json:"total_quantity"`
	AveragePrice    float64          `json:"average_price"`
	OrderCount      int              `json:"order_count"`
	CommonPurchases []RelatedProduct `json:"common_purchases"`
}

// CreateProductFeatures builds per-product purchase statistics and the
// ranked co-occurrence list. Co-occurrence is computed over a pre-built
// order→products index so each order's item set is walked once. Items whose
// order_id does not reference a supplied order are counted in the per-product
// stats but excluded from co-occurrence. A product purchased only ever alone
// keeps an empty CommonPurchases list; that is valid output.
func (a *Analyzer) CreateProductFeatures(items, orders []Record) (map[string]*ProductFeature, error) {
	prepared := prepareItems(items, orders)

	validOrders := make(map[string]bool)
	for _, order := range Normalize(orders) {
		if id := order.Str("order_id"); id != "" {
			validOrders[id] = true
		}
	}

	features := make(map[string]*ProductFeature)
	priceSums := make(map[string]float64)
	orderSets := make(map[string]map[string]bool)
	orderIndex := make(map[string]map[string]bool)

	for _, rec := range prepared {
		productID := rec.Str("item_id")
		if productID == "" {
			continue
		}

		f := features[productID]
		if f == nil {
			f = &ProductFeature{
				ID:              productID,
				Name:            productID,
				CommonPurchases: []RelatedProduct{},
			}
			features[productID] = f
			orderSets[productID] = make(map[string]bool)
		}
		if name := rec.Str("item_name"); name != "" && f.Name == productID {
			f.Name = name
		}

		f.PurchaseCount++
		f.TotalQuantity += rec.Float("quantity")
		priceSums[productID] += rec.Float("price")

		orderID := rec.Str("order_id")
		if orderID == "" {
			continue
		}
		orderSets[productID][orderID] = true

		// Items pointing at an order we never saw cannot participate in
		// pairing; skip the index when the caller supplied the order list.
		if len(validOrders) > 0 && !validOrders[orderID] {
			continue
		}
		if orderIndex[orderID] == nil {
			orderIndex[orderID] = make(map[string]bool)
		}
		orderIndex[orderID][productID] = true
	}

	cooccurrence := make(map[string]map[string]int)
	for _, products := range orderIndex {
		for p := range products {
			for q := range products {
				if p == q {
					continue
				}
				if cooccurrence[p] == nil {
					cooccurrence[p] = make(map[string]int)
				}
				cooccurrence[p][q]++
			}
		}
	}

	for id, f := range features {
		if f.PurchaseCount > 0 {
			f.AveragePrice = priceSums[id] / float64(f.PurchaseCount)
		}
		f.OrderCount = len(orderSets[id])
		f.CommonPurchases = rankRelated(cooccurrence[id], features)
	}

	return features, nil
}

// rankRelated sorts co-occurrence counts descending (ties by product id for
// a stable output), caps the list, and resolves display names from the
// feature table, falling back to the raw id.
func rankRelated(counts map[string]int, features map[string]*ProductFeature) []RelatedProduct {
	related := make([]RelatedProduct, 0, len(counts))
	for id, count := range counts {
		name := id
		if f, ok := features[id]; ok {
			name = f.Name
		}
		related = append(related, RelatedProduct{
			ProductID:   id,
			ProductName: name,
			Count:       count,
		})
	}
	sort.Slice(related, func(i, j int) bool {
		if related[i].Count != related[j].Count {
			return related[i].Count > related[j].Count
		}
		return related[i].ProductID < related[j].ProductID
	})
	if len(related) > maxCommonPurchases {
		related = related[:maxCommonPurchases]
	}
	return related
}
