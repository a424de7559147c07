package model

import (
	"time"

	"github.com/google/uuid"
)

// Product is the catalog entry as served to the admin panel. Derived fields
// (PriceThb, CostThb, option profits) are filled by the pricing package.
type Product struct {
	ID           uuid.UUID       `json:"id"`
	SKU          string          `json:"sku"`
	Name         string          `json:"name"`
	Categories   []string        `json:"categories"`
	ProductType  string          `json:"productType"`
	Image        string          `json:"image"`
	PriceYuan    float64         `json:"priceYuan"`
	ExchangeRate float64         `json:"exchangeRate"`
	PriceThb     float64         `json:"priceThb"`
	ImportCost   float64         `json:"importCost"`
	CostThb      float64         `json:"costThb"`
	SellingPrice float64         `json:"sellingPrice"`
	Status       ProductStatus   `json:"status"`
	ShipmentDate string          `json:"shipmentDate"`
	Link         string          `json:"link"`
	Description  string          `json:"description"`
	Quantity     int             `json:"quantity"`
	Options      []ProductOption `json:"options"`
	Images       []ProductImage  `json:"images,omitempty"`
	CreatedAt    time.Time       `json:"createdAt"`
	UpdatedAt    time.Time       `json:"updatedAt"`
}

// ProductOption is a sellable variant. ID doubles as the variant SKU.
type ProductOption struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	Image        string  `json:"image"`
	CostThb      float64 `json:"costThb"`
	SellingPrice float64 `json:"sellingPrice"`
	Quantity     int     `json:"quantity"`
	Profit       float64 `json:"profit"`
}

// PrimaryCategory is the first category label, or "" when there is none.
func (p Product) PrimaryCategory() string {
	if len(p.Categories) == 0 {
		return ""
	}
	return p.Categories[0]
}

// StockQuantity is the sum of option quantities when the product has options,
// otherwise its own quantity.
func (p Product) StockQuantity() int {
	if len(p.Options) == 0 {
		return p.Quantity
	}
	total := 0
	for _, o := range p.Options {
		total += o.Quantity
	}
	return total
}

// Option returns the option with the given id.
func (p Product) Option(id string) (ProductOption, bool) {
	for _, o := range p.Options {
		if o.ID == id {
			return o, true
		}
	}
	return ProductOption{}, false
}
