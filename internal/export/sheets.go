// Package export pushes orders out to spreadsheets: a webhook row per new
// order and an on-demand XLSX workbook.
package export

import (
	"fmt"
	"strings"
	"time"

	"go-inventory-orders/internal/model"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

// SheetRow is the flat record posted to the spreadsheet webhook.
type SheetRow struct {
	OrderID           string  `json:"orderId"`
	OrderDate         string  `json:"orderDate"`
	Username          string  `json:"username"`
	Address           string  `json:"address"`
	Status            string  `json:"status"`
	Items             string  `json:"items"`
	Quantity          int     `json:"quantity"`
	TotalSellingPrice float64 `json:"totalSellingPrice"`
	TotalCost         float64 `json:"totalCost"`
	ShippingCost      float64 `json:"shippingCost"`
	Deposit           float64 `json:"deposit"`
	Discount          float64 `json:"discount"`
	Profit            float64 `json:"profit"`
	RemainingBalance  float64 `json:"remainingBalance"`
	PaymentDate       string  `json:"paymentDate"`
}

func NewSheetRow(o model.Order) SheetRow {
	return SheetRow{
		OrderID:           o.ID.String(),
		OrderDate:         o.OrderDate,
		Username:          o.Username,
		Address:           o.Address,
		Status:            string(o.Status),
		Items:             describeItems(o.Items),
		Quantity:          totalQuantity(o.Items),
		TotalSellingPrice: o.TotalSellingPrice,
		TotalCost:         o.TotalCost,
		ShippingCost:      o.ShippingCost,
		Deposit:           o.Deposit,
		Discount:          o.Discount,
		Profit:            o.Profit,
		RemainingBalance:  o.RemainingBalance,
		PaymentDate:       o.PaymentDate,
	}
}

// SheetsExporter posts new orders to a spreadsheet webhook. An exporter with an
// empty URL does nothing.
type SheetsExporter struct {
	url     string
	timeout time.Duration
	log     *logrus.Entry
	post    func(url string, row SheetRow, timeout time.Duration) error
}

func NewSheetsExporter(url string, log *logrus.Entry) *SheetsExporter {
	return &SheetsExporter{url: url, timeout: 10 * time.Second, log: log, post: postJSON}
}

func (e *SheetsExporter) Enabled() bool {
	return e != nil && e.url != ""
}

// ExportOrder sends the order in the background. Failures are logged only;
// the returned channel is closed once the attempt finishes.
func (e *SheetsExporter) ExportOrder(o model.Order) <-chan struct{} {
	done := make(chan struct{})
	if !e.Enabled() {
		close(done)
		return done
	}
	row := NewSheetRow(o)
	go func() {
		defer close(done)
		if err := e.post(e.url, row, e.timeout); err != nil {
			e.log.WithError(err).WithField("order_id", row.OrderID).Warn("spreadsheet export failed")
			return
		}
		e.log.WithField("order_id", row.OrderID).Debug("order exported to spreadsheet")
	}()
	return done
}

func postJSON(url string, row SheetRow, timeout time.Duration) error {
	agent := fiber.Post(url).JSON(row).Timeout(timeout)
	code, body, errs := agent.Bytes()
	if len(errs) > 0 {
		return errs[0]
	}
	if code >= fiber.StatusBadRequest {
		return fmt.Errorf("webhook responded %d: %s", code, truncate(string(body), 200))
	}
	return nil
}

func describeItems(items []model.OrderItem) string {
	parts := make([]string, 0, len(items))
	for _, it := range items {
		parts = append(parts, fmt.Sprintf("%s x%d", it.Name, it.Quantity))
	}
	return strings.Join(parts, ", ")
}

func totalQuantity(items []model.OrderItem) int {
	n := 0
	for _, it := range items {
		n += it.Quantity
	}
	return n
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
