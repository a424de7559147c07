package model

import "strings"

// OrderStatus is stored as the Thai stage label shown to staff.
type OrderStatus string

const (
	OrderAwaitingPayment OrderStatus = "รอชำระเงิน"
	OrderAwaitingFactory OrderStatus = "รอโรงงานจัดส่ง"
	OrderInTransit       OrderStatus = "กำลังขนส่งมาไทย"
	OrderDelivered       OrderStatus = "จัดส่งสำเร็จ"
)

// OrderStatuses lists the stages in their conventional forward order.
// Any stage may be written from any other; the order is only a display hint.
var OrderStatuses = []OrderStatus{
	OrderAwaitingPayment,
	OrderAwaitingFactory,
	OrderInTransit,
	OrderDelivered,
}

var orderStatusCodes = map[OrderStatus]string{
	OrderAwaitingPayment: "awaiting-payment",
	OrderAwaitingFactory: "awaiting-factory-shipment",
	OrderInTransit:       "in-transit",
	OrderDelivered:       "delivered",
}

// Code returns the stable ASCII code for the stage.
func (s OrderStatus) Code() string {
	return orderStatusCodes[NormalizeOrderStatus(string(s))]
}

func (s OrderStatus) Valid() bool {
	_, ok := orderStatusCodes[s]
	return ok
}

// NormalizeOrderStatus accepts a Thai label or an ASCII code. Empty and unknown
// values resolve to OrderAwaitingPayment.
func NormalizeOrderStatus(raw string) OrderStatus {
	raw = strings.TrimSpace(raw)
	if s := OrderStatus(raw); s.Valid() {
		return s
	}
	lower := strings.ToLower(raw)
	for status, code := range orderStatusCodes {
		if code == lower {
			return status
		}
	}
	return OrderAwaitingPayment
}

// ProductStatus tells whether stock is on hand or still coming from the factory.
type ProductStatus string

const (
	ProductPreOrder    ProductStatus = "พรีออเดอร์"
	ProductReadyToShip ProductStatus = "พร้อมส่ง"
)

// NormalizeProductStatus maps labels and codes ("pre-order", "ready-to-ship") to a
// ProductStatus, defaulting to pre-order.
func NormalizeProductStatus(raw string) ProductStatus {
	switch s := strings.TrimSpace(raw); {
	case s == string(ProductReadyToShip), strings.EqualFold(s, "ready-to-ship"):
		return ProductReadyToShip
	default:
		return ProductPreOrder
	}
}
