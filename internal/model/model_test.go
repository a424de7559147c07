package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeOrderStatus(t *testing.T) {
	cases := map[string]OrderStatus{
		"":                          OrderAwaitingPayment,
		"   ":                       OrderAwaitingPayment,
		"shipped":                   OrderAwaitingPayment,
		"รอชำระเงิน":                OrderAwaitingPayment,
		"รอโรงงานจัดส่ง":            OrderAwaitingFactory,
		" กำลังขนส่งมาไทย ":         OrderInTransit,
		"จัดส่งสำเร็จ":              OrderDelivered,
		"awaiting-factory-shipment": OrderAwaitingFactory,
		"IN-TRANSIT":                OrderInTransit,
		"delivered":                 OrderDelivered,
	}
	for raw, want := range cases {
		assert.Equal(t, want, NormalizeOrderStatus(raw), "raw %q", raw)
	}
}

func TestOrderStatusCode(t *testing.T) {
	assert.Equal(t, "awaiting-payment", OrderAwaitingPayment.Code())
	assert.Equal(t, "delivered", OrderDelivered.Code())
	assert.Equal(t, "awaiting-payment", OrderStatus("bogus").Code())
}

func TestNormalizeProductStatus(t *testing.T) {
	assert.Equal(t, ProductReadyToShip, NormalizeProductStatus("พร้อมส่ง"))
	assert.Equal(t, ProductReadyToShip, NormalizeProductStatus("Ready-To-Ship"))
	assert.Equal(t, ProductPreOrder, NormalizeProductStatus(""))
	assert.Equal(t, ProductPreOrder, NormalizeProductStatus("whatever"))
}

func TestNumber_UnmarshalJSON(t *testing.T) {
	var body struct {
		A Number `json:"a"`
		B Number `json:"b"`
		C Number `json:"c"`
		D Number `json:"d"`
		E Number `json:"e"`
	}
	err := json.Unmarshal([]byte(`{"a": 12.5, "b": "1,200", "c": "abc", "d": null, "e": ""}`), &body)

	require.NoError(t, err)
	assert.Equal(t, 12.5, body.A.Float())
	assert.Equal(t, 1200.0, body.B.Float())
	assert.Equal(t, 0.0, body.C.Float())
	assert.Equal(t, 0.0, body.D.Float())
	assert.Equal(t, 0.0, body.E.Float())
}

func TestProduct_StockQuantity(t *testing.T) {
	p := Product{Quantity: 7}
	assert.Equal(t, 7, p.StockQuantity())

	p.Options = []ProductOption{{Quantity: 2}, {Quantity: 0}, {Quantity: 5}}
	assert.Equal(t, 7, p.StockQuantity())

	p.Quantity = 100
	assert.Equal(t, 7, p.StockQuantity())
}

func TestProductImage_Role(t *testing.T) {
	assert.Equal(t, ImageMain, ProductImage{Order: 1}.Role())
	assert.Equal(t, ImageAdditional, ProductImage{Order: 2}.Role())
	assert.Equal(t, ImageVariant, ProductImage{Order: 1, VariantID: "X-01"}.Role())
}

func TestUser_PrivilegeCodes(t *testing.T) {
	u := User{
		Privileges: []Privilege{{Code: PrivOrderView}},
		Role:       &Role{Privileges: []Privilege{{Code: PrivOrderView}, {Code: PrivProductView}}},
	}
	assert.ElementsMatch(t, []string{PrivOrderView, PrivProductView}, u.PrivilegeCodes())
}
