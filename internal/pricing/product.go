package pricing

import (
	"github.com/shopspring/decimal"

	"go-inventory-orders/internal/model"
)

// ConvertCurrency converts a source-currency price at the given rate, rounded to
// two decimals. This is the only rounded value in the package.
func ConvertCurrency(price, rate float64) float64 {
	v, _ := decimal.NewFromFloat(finite(price)).
		Mul(decimal.NewFromFloat(finite(rate))).
		Round(2).
		Float64()
	return v
}

// OptionProfit is selling price minus cost.
func OptionProfit(sellingPrice, cost float64) float64 {
	return finite(sellingPrice) - finite(cost)
}

// RecomputeOptionProfit overwrites whatever profit the option carried.
func RecomputeOptionProfit(o *model.ProductOption) {
	o.Profit = OptionProfit(o.SellingPrice, o.CostThb)
}

// ApplyProductCosts fills PriceThb, CostThb and every option profit. A product
// with options carries the sum of their quantities as its own.
func ApplyProductCosts(p *model.Product) {
	p.Quantity = p.StockQuantity()
	p.PriceThb = ConvertCurrency(p.PriceYuan, p.ExchangeRate)
	p.CostThb = p.PriceThb + finite(p.ImportCost)
	for i := range p.Options {
		RecomputeOptionProfit(&p.Options[i])
	}
}

// StockSummary aggregates on-hand stock across the catalog.
type StockSummary struct {
	Products int     `json:"products"`
	Units    int     `json:"units"`
	Cost     float64 `json:"cost"`
	Value    float64 `json:"value"`
	Profit   float64 `json:"profit"`
}

// SummarizeStock values every unit at its own cost and selling price: option
// prices for products with options, product prices otherwise.
func SummarizeStock(products []model.Product) StockSummary {
	s := StockSummary{Products: len(products)}
	for _, p := range products {
		if len(p.Options) == 0 {
			qty := float64(p.Quantity)
			s.Units += p.Quantity
			s.Cost += finite(p.CostThb) * qty
			s.Value += finite(p.SellingPrice) * qty
			continue
		}
		for _, o := range p.Options {
			qty := float64(o.Quantity)
			s.Units += o.Quantity
			s.Cost += finite(o.CostThb) * qty
			s.Value += finite(o.SellingPrice) * qty
		}
	}
	s.Profit = s.Value - s.Cost
	return s
}
