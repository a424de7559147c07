package repository

import (
	"encoding/json"
	"time"

	"go-inventory-orders/internal/model"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

const (
	tableProducts      = "products"
	tableProductImages = "product_images"
	tableProductTags   = "product_tags"
	tableCategories    = "categories"
	tableOrders        = "orders"
)

// Rows mirror the hosted tables. Nullable columns are pointers and are resolved
// to domain defaults in the to* functions, nowhere else.

type productRow struct {
	ID           uuid.UUID      `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()"`
	SKU          *string        `gorm:"column:sku;type:varchar(64);index"`
	Name         *string        `gorm:"column:name;type:varchar(255)"`
	Category     datatypes.JSON `gorm:"column:category;type:jsonb"`
	ProductType  *string        `gorm:"column:product_type;type:varchar(100)"`
	Image        *string        `gorm:"column:image;type:text"`
	PriceYuan    *float64       `gorm:"column:price_yuan"`
	ExchangeRate *float64       `gorm:"column:exchange_rate"`
	PriceThb     *float64       `gorm:"column:price_thb"`
	ImportCost   *float64       `gorm:"column:import_cost"`
	CostThb      *float64       `gorm:"column:cost_thb"`
	SellingPrice *float64       `gorm:"column:selling_price"`
	Status       *string        `gorm:"column:status;type:varchar(50)"`
	ShipmentDate *string        `gorm:"column:shipment_date;type:varchar(10)"`
	Link         *string        `gorm:"column:link;type:text"`
	Description  *string        `gorm:"column:description;type:text"`
	Quantity     *int           `gorm:"column:quantity"`
	Options      datatypes.JSON `gorm:"column:options;type:jsonb"`
	CreatedAt    time.Time      `gorm:"column:created_at"`
	UpdatedAt    time.Time      `gorm:"column:updated_at"`
}

func (productRow) TableName() string { return tableProducts }

// optionRow is one element of products.options.
type optionRow struct {
	ID           string   `json:"id"`
	Name         *string  `json:"name"`
	Image        *string  `json:"image"`
	CostThb      *float64 `json:"costThb"`
	SellingPrice *float64 `json:"sellingPrice"`
	Quantity     *int     `json:"quantity"`
	Profit       *float64 `json:"profit"`
}

type orderRow struct {
	ID                uuid.UUID      `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()"`
	Items             datatypes.JSON `gorm:"column:items;type:jsonb"`
	TotalSellingPrice *float64       `gorm:"column:total_selling_price"`
	TotalCost         *float64       `gorm:"column:total_cost"`
	ShippingCost      *float64       `gorm:"column:shipping_cost"`
	Deposit           *float64       `gorm:"column:deposit"`
	Discount          *float64       `gorm:"column:discount"`
	Profit            *float64       `gorm:"column:profit"`
	Status            *string        `gorm:"column:status;type:varchar(50)"`
	OrderDate         *string        `gorm:"column:order_date;type:varchar(10)"`
	PaymentDate       *string        `gorm:"column:payment_date;type:varchar(10)"`
	PaymentSlip       *string        `gorm:"column:payment_slip;type:text"`
	Username          *string        `gorm:"column:username;type:varchar(255)"`
	Address           *string        `gorm:"column:address;type:text"`
	CreatedAt         time.Time      `gorm:"column:created_at"`
	UpdatedAt         time.Time      `gorm:"column:updated_at"`
}

func (orderRow) TableName() string { return tableOrders }

type itemRow struct {
	ProductID    uuid.UUID `json:"productId"`
	OptionID     *string   `json:"optionId"`
	SKU          *string   `json:"sku"`
	Name         *string   `json:"name"`
	Image        *string   `json:"image"`
	Quantity     *int      `json:"quantity"`
	SellingPrice *float64  `json:"sellingPrice"`
	CostThb      *float64  `json:"costThb"`
}

type imageRow struct {
	ID          uuid.UUID `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()"`
	ProductID   uuid.UUID `gorm:"column:product_id;type:uuid;index"`
	ImageURL    *string   `gorm:"column:image_url;type:text"`
	Order       *int      `gorm:"column:order"`
	VariantID   *string   `gorm:"column:variant_id;type:varchar(64)"`
	VariantName *string   `gorm:"column:variant_name;type:varchar(255)"`
	CreatedAt   time.Time `gorm:"column:created_at"`
}

func (imageRow) TableName() string { return tableProductImages }

type categoryRow struct {
	ID        uuid.UUID `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()"`
	Name      string    `gorm:"column:name;type:varchar(100);uniqueIndex"`
	CreatedAt time.Time `gorm:"column:created_at"`
}

func (categoryRow) TableName() string { return tableCategories }

type productTagRow struct {
	ProductID  uuid.UUID `gorm:"column:product_id;type:uuid;primaryKey"`
	CategoryID uuid.UUID `gorm:"column:category_id;type:uuid;primaryKey"`
}

func (productTagRow) TableName() string { return tableProductTags }

// Models lists the row types for schema migration.
func Models() []any {
	return []any{&productRow{}, &orderRow{}, &imageRow{}, &categoryRow{}, &productTagRow{}}
}

func toProduct(r productRow) model.Product {
	p := model.Product{
		ID:           r.ID,
		SKU:          str(r.SKU),
		Name:         str(r.Name),
		Categories:   decodeList[string](r.Category),
		ProductType:  str(r.ProductType),
		Image:        str(r.Image),
		PriceYuan:    num(r.PriceYuan),
		ExchangeRate: num(r.ExchangeRate),
		PriceThb:     num(r.PriceThb),
		ImportCost:   num(r.ImportCost),
		CostThb:      num(r.CostThb),
		SellingPrice: num(r.SellingPrice),
		Status:       model.NormalizeProductStatus(str(r.Status)),
		ShipmentDate: str(r.ShipmentDate),
		Link:         str(r.Link),
		Description:  str(r.Description),
		Quantity:     integer(r.Quantity),
		CreatedAt:    r.CreatedAt,
		UpdatedAt:    r.UpdatedAt,
	}

	opts := decodeList[optionRow](r.Options)
	p.Options = make([]model.ProductOption, 0, len(opts))
	for _, o := range opts {
		p.Options = append(p.Options, model.ProductOption{
			ID:           o.ID,
			Name:         str(o.Name),
			Image:        str(o.Image),
			CostThb:      num(o.CostThb),
			SellingPrice: num(o.SellingPrice),
			Quantity:     integer(o.Quantity),
			Profit:       num(o.Profit),
		})
	}
	p.Quantity = p.StockQuantity()
	return p
}

func fromProduct(p model.Product) productRow {
	opts := make([]optionRow, 0, len(p.Options))
	for _, o := range p.Options {
		opts = append(opts, optionRow{
			ID:           o.ID,
			Name:         &o.Name,
			Image:        &o.Image,
			CostThb:      &o.CostThb,
			SellingPrice: &o.SellingPrice,
			Quantity:     &o.Quantity,
			Profit:       &o.Profit,
		})
	}
	categories := p.Categories
	if categories == nil {
		categories = []string{}
	}
	status := string(model.NormalizeProductStatus(string(p.Status)))

	return productRow{
		ID:           p.ID,
		SKU:          &p.SKU,
		Name:         &p.Name,
		Category:     encode(categories),
		ProductType:  &p.ProductType,
		Image:        &p.Image,
		PriceYuan:    &p.PriceYuan,
		ExchangeRate: &p.ExchangeRate,
		PriceThb:     &p.PriceThb,
		ImportCost:   &p.ImportCost,
		CostThb:      &p.CostThb,
		SellingPrice: &p.SellingPrice,
		Status:       &status,
		ShipmentDate: &p.ShipmentDate,
		Link:         &p.Link,
		Description:  &p.Description,
		Quantity:     &p.Quantity,
		Options:      encode(opts),
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}
}

func toOrder(r orderRow) model.Order {
	o := model.Order{
		ID:                r.ID,
		TotalSellingPrice: num(r.TotalSellingPrice),
		TotalCost:         num(r.TotalCost),
		ShippingCost:      num(r.ShippingCost),
		Deposit:           num(r.Deposit),
		Discount:          num(r.Discount),
		Profit:            num(r.Profit),
		Status:            model.NormalizeOrderStatus(str(r.Status)),
		OrderDate:         str(r.OrderDate),
		PaymentDate:       str(r.PaymentDate),
		PaymentSlip:       str(r.PaymentSlip),
		Username:          str(r.Username),
		Address:           str(r.Address),
		CreatedAt:         r.CreatedAt,
		UpdatedAt:         r.UpdatedAt,
	}

	items := decodeList[itemRow](r.Items)
	o.Items = make([]model.OrderItem, 0, len(items))
	for _, it := range items {
		o.Items = append(o.Items, model.OrderItem{
			ProductID:    it.ProductID,
			OptionID:     str(it.OptionID),
			SKU:          str(it.SKU),
			Name:         str(it.Name),
			Image:        str(it.Image),
			Quantity:     integer(it.Quantity),
			SellingPrice: num(it.SellingPrice),
			CostThb:      num(it.CostThb),
		})
	}
	// remaining balance is not stored
	o.RemainingBalance = o.TotalSellingPrice - o.Deposit
	return o
}

func fromOrder(o model.Order) orderRow {
	items := make([]itemRow, 0, len(o.Items))
	for _, it := range o.Items {
		items = append(items, itemRow{
			ProductID:    it.ProductID,
			OptionID:     &it.OptionID,
			SKU:          &it.SKU,
			Name:         &it.Name,
			Image:        &it.Image,
			Quantity:     &it.Quantity,
			SellingPrice: &it.SellingPrice,
			CostThb:      &it.CostThb,
		})
	}
	status := string(model.NormalizeOrderStatus(string(o.Status)))

	return orderRow{
		ID:                o.ID,
		Items:             encode(items),
		TotalSellingPrice: &o.TotalSellingPrice,
		TotalCost:         &o.TotalCost,
		ShippingCost:      &o.ShippingCost,
		Deposit:           &o.Deposit,
		Discount:          &o.Discount,
		Profit:            &o.Profit,
		Status:            &status,
		OrderDate:         &o.OrderDate,
		PaymentDate:       &o.PaymentDate,
		PaymentSlip:       &o.PaymentSlip,
		Username:          &o.Username,
		Address:           &o.Address,
		CreatedAt:         o.CreatedAt,
		UpdatedAt:         o.UpdatedAt,
	}
}

func toImage(r imageRow) model.ProductImage {
	return model.ProductImage{
		ID:          r.ID,
		ProductID:   r.ProductID,
		ImageURL:    str(r.ImageURL),
		Order:       integer(r.Order),
		VariantID:   str(r.VariantID),
		VariantName: str(r.VariantName),
		CreatedAt:   r.CreatedAt,
	}
}

func fromImage(img model.ProductImage) imageRow {
	r := imageRow{
		ID:        img.ID,
		ProductID: img.ProductID,
		ImageURL:  &img.ImageURL,
		Order:     &img.Order,
		CreatedAt: img.CreatedAt,
	}
	if img.VariantID != "" {
		r.VariantID = &img.VariantID
		r.VariantName = &img.VariantName
	}
	return r
}

func toCategory(r categoryRow) model.Category {
	return model.Category{ID: r.ID, Name: r.Name, CreatedAt: r.CreatedAt}
}

func str(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}

func num(p *float64) float64 {
	if p == nil {
		return 0
	}
	return *p
}

func integer(p *int) int {
	if p == nil {
		return 0
	}
	return *p
}

// decodeList reads a JSON array column. NULL or malformed content yields an
// empty, non-nil slice.
func decodeList[T any](raw datatypes.JSON) []T {
	out := []T{}
	if len(raw) == 0 {
		return out
	}
	if err := json.Unmarshal(raw, &out); err != nil || out == nil {
		return []T{}
	}
	return out
}

func encode(v any) datatypes.JSON {
	b, err := json.Marshal(v)
	if err != nil {
		return datatypes.JSON("[]")
	}
	return datatypes.JSON(b)
}
