package report

import (
	"sort"
	"time"

	"github.com/NileMind-Team/pahray-sub001/internal/locale"
	"github.com/NileMind-Team/pahray-sub001/internal/model"
)

const unknownProductLabel = "منتج غير معروف"

const topProductsLimit = 5

type TopProduct struct {
	Name     string  `json:"name"`
	Quantity int     `json:"quantity"`
	Revenue  float64 `json:"revenue"`
}

// Summary is derived from a single order snapshot. It is recomputed on
// every fetch and never stored.
type Summary struct {
	TotalSales     float64      `json:"totalSales"`
	TotalOrders    int          `json:"totalOrders"`
	DeliveryOrders int          `json:"deliveryOrders"`
	PickupOrders   int          `json:"pickupOrders"`
	TopProducts    []TopProduct `json:"topProducts"`
	DateRange      string       `json:"dateRange"`
}

// Summarize computes the sales summary for a fetched order collection.
// The date bounds only label the result; filtering happens upstream at the
// fetch boundary. Malformed records never fail: missing numerics count as
// zero and missing item lists as empty.
func Summarize(orders []model.OrderRecord, start, end *time.Time) Summary {
	summary := Summary{
		TotalOrders: len(orders),
		TopProducts: []TopProduct{},
		DateRange:   locale.FormatDateRange(start, end),
	}

	products := make(map[string]int)
	ranked := make([]TopProduct, 0)

	for i := range orders {
		order := &orders[i]
		summary.TotalSales += order.TotalWithFeeValue()
		if order.IsDelivery() {
			summary.DeliveryOrders++
		} else {
			summary.PickupOrders++
		}

		for j := range order.Items {
			item := &order.Items[j]
			name := resolveItemName(item)

			idx, seen := products[name]
			if !seen {
				idx = len(ranked)
				products[name] = idx
				ranked = append(ranked, TopProduct{Name: name})
			}

			quantity := 1
			if item.Quantity != nil {
				quantity = *item.Quantity
			}
			ranked[idx].Quantity += quantity
			if item.TotalPrice != nil {
				ranked[idx].Revenue += *item.TotalPrice
			}
		}
	}

	// Stable sort so revenue ties keep first-occurrence order.
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Revenue > ranked[j].Revenue
	})
	if len(ranked) > topProductsLimit {
		ranked = ranked[:topProductsLimit]
	}
	summary.TopProducts = ranked

	return summary
}

// resolveItemName picks the display name for aggregation: the live product
// name when the reference survived, the snapshot taken at order time
// otherwise, and a fixed fallback when both are gone. Keys are exact
// strings; no fuzzy merging.
func resolveItemName(item *model.OrderItem) string {
	if item.Product != nil && item.Product.Name != "" {
		return item.Product.Name
	}
	if item.NameSnapshot != nil && *item.NameSnapshot != "" {
		return *item.NameSnapshot
	}
	return unknownProductLabel
}
