// Package pricing derives every financial field of products and orders.
// All arithmetic is float64; only currency conversion rounds.
package pricing

import (
	"math"

	"go-inventory-orders/internal/model"
)

// Adjustments are the order-level scalars entered by staff.
type Adjustments struct {
	Shipping float64
	Deposit  float64
	Discount float64
}

// Totals is the full derivation for one order.
type Totals struct {
	Gross    float64 `json:"gross"`
	Discount float64 `json:"discount"`
	Net      float64 `json:"net"`
	Cost     float64 `json:"cost"`
	Shipping float64 `json:"shipping"`
	Deposit  float64 `json:"deposit"`
	Profit   float64 `json:"profit"`
	Balance  float64 `json:"balance"`
}

// ComputeOrderTotals sums the line items and applies the adjustments.
// Net and profit may go negative; nothing is clamped.
func ComputeOrderTotals(items []model.OrderItem, adj Adjustments) Totals {
	var gross, cost float64
	for _, it := range items {
		qty := float64(it.Quantity)
		gross += finite(it.SellingPrice) * qty
		cost += finite(it.CostThb) * qty
	}

	t := Totals{
		Gross:    gross,
		Discount: finite(adj.Discount),
		Cost:     cost,
		Shipping: finite(adj.Shipping),
		Deposit:  finite(adj.Deposit),
	}
	t.Net = t.Gross - t.Discount
	t.Profit = t.Net - t.Cost - t.Shipping
	t.Balance = t.Net - t.Deposit
	return t
}

// AdjustmentsOf reads the adjustments already stored on an order.
func AdjustmentsOf(o *model.Order) Adjustments {
	return Adjustments{Shipping: o.ShippingCost, Deposit: o.Deposit, Discount: o.Discount}
}

// ApplyTotals recomputes and writes every derived field of the order.
func ApplyTotals(o *model.Order) Totals {
	t := ComputeOrderTotals(o.Items, AdjustmentsOf(o))
	o.ShippingCost = t.Shipping
	o.Deposit = t.Deposit
	o.Discount = t.Discount
	o.TotalSellingPrice = t.Net
	o.TotalCost = t.Cost
	o.Profit = t.Profit
	o.RemainingBalance = t.Balance
	return t
}

func finite(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}
