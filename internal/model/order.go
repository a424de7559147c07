package model

import (
	"time"

	"github.com/google/uuid"
)

// Order totals are derived from Items plus the shipping/deposit/discount
// adjustments; see pricing.ApplyTotals.
type Order struct {
	ID                uuid.UUID   `json:"id"`
	Items             []OrderItem `json:"items"`
	TotalSellingPrice float64     `json:"totalSellingPrice"`
	TotalCost         float64     `json:"totalCost"`
	ShippingCost      float64     `json:"shippingCost"`
	Deposit           float64     `json:"deposit"`
	Discount          float64     `json:"discount"`
	Profit            float64     `json:"profit"`
	RemainingBalance  float64     `json:"remainingBalance"`
	Status            OrderStatus `json:"status"`
	OrderDate         string      `json:"orderDate"`
	PaymentDate       string      `json:"paymentDate"`
	PaymentSlip       string      `json:"paymentSlip"`
	Username          string      `json:"username"`
	Address           string      `json:"address"`
	CreatedAt         time.Time   `json:"createdAt"`
	UpdatedAt         time.Time   `json:"updatedAt"`
}

// OrderItem snapshots the product at the time it was added so later catalog
// edits do not rewrite history. Unit price and cost stay editable.
type OrderItem struct {
	ProductID    uuid.UUID `json:"productId"`
	OptionID     string    `json:"optionId,omitempty"`
	SKU          string    `json:"sku"`
	Name         string    `json:"name"`
	Image        string    `json:"image"`
	Quantity     int       `json:"quantity"`
	SellingPrice float64   `json:"sellingPrice"`
	CostThb      float64   `json:"costThb"`
}

// SameLine reports whether two items refer to the same product option.
func (i OrderItem) SameLine(productID uuid.UUID, optionID string) bool {
	return i.ProductID == productID && i.OptionID == optionID
}
