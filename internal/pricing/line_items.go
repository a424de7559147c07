package pricing

import "go-inventory-orders/internal/model"

// AddLineItem adds one unit of product (or of option, when given) to items.
// An existing line for the same product/option pair is incremented; otherwise a
// snapshot line is appended. The input slice is not modified.
func AddLineItem(items []model.OrderItem, p model.Product, opt *model.ProductOption) []model.OrderItem {
	optionID := ""
	if opt != nil {
		optionID = opt.ID
	}

	out := make([]model.OrderItem, len(items), len(items)+1)
	copy(out, items)

	for i := range out {
		if out[i].SameLine(p.ID, optionID) {
			out[i].Quantity++
			return out
		}
	}
	return append(out, Snapshot(p, opt))
}

// Snapshot captures the current catalog values for a new order line.
func Snapshot(p model.Product, opt *model.ProductOption) model.OrderItem {
	item := model.OrderItem{
		ProductID:    p.ID,
		SKU:          p.SKU,
		Name:         p.Name,
		Image:        p.Image,
		Quantity:     1,
		SellingPrice: p.SellingPrice,
		CostThb:      p.CostThb,
	}
	if opt == nil {
		return item
	}

	item.OptionID = opt.ID
	item.SKU = opt.ID
	if opt.Name != "" {
		item.Name = p.Name + " - " + opt.Name
	}
	if opt.Image != "" {
		item.Image = opt.Image
	}
	item.SellingPrice = opt.SellingPrice
	item.CostThb = opt.CostThb
	return item
}
