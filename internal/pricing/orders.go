package pricing

import "go-inventory-orders/internal/model"

// OrderSummary aggregates derived order totals for reporting.
type OrderSummary struct {
	Orders      int                       `json:"orders"`
	Revenue     float64                   `json:"revenue"`
	Cost        float64                   `json:"cost"`
	Shipping    float64                   `json:"shipping"`
	Discount    float64                   `json:"discount"`
	Profit      float64                   `json:"profit"`
	Outstanding float64                   `json:"outstanding"`
	ByStatus    map[model.OrderStatus]int `json:"byStatus"`
}

// SummarizeOrders re-derives each order before adding it up, so stale stored
// totals never leak into reports.
func SummarizeOrders(orders []model.Order) OrderSummary {
	s := OrderSummary{ByStatus: make(map[model.OrderStatus]int, len(model.OrderStatuses))}
	for _, st := range model.OrderStatuses {
		s.ByStatus[st] = 0
	}
	for i := range orders {
		t := ComputeOrderTotals(orders[i].Items, AdjustmentsOf(&orders[i]))
		s.Orders++
		s.Revenue += t.Net
		s.Cost += t.Cost
		s.Shipping += t.Shipping
		s.Discount += t.Discount
		s.Profit += t.Profit
		s.Outstanding += t.Balance
		s.ByStatus[model.NormalizeOrderStatus(string(orders[i].Status))]++
	}
	return s
}
