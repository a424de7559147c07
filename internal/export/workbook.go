package export

import (
	"github.com/xuri/excelize/v2"

	"go-inventory-orders/internal/model"
	"go-inventory-orders/internal/pricing"
)

const ordersSheet = "Orders"

var orderColumns = []struct {
	title string
	width float64
}{
	{"Order ID", 38},
	{"Order Date", 12},
	{"Customer", 20},
	{"Address", 40},
	{"Status", 18},
	{"Items", 50},
	{"Quantity", 10},
	{"Selling Price", 14},
	{"Cost", 14},
	{"Shipping", 12},
	{"Deposit", 12},
	{"Discount", 12},
	{"Profit", 14},
	{"Remaining", 14},
	{"Payment Date", 12},
}

// OrdersWorkbook lays out one row per order followed by a totals row. Totals are
// re-derived from the line items. The caller closes the file.
func OrdersWorkbook(orders []model.Order) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", ordersSheet); err != nil {
		f.Close()
		return nil, err
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"4472C4"}, Pattern: 1},
	})
	if err != nil {
		f.Close()
		return nil, err
	}
	totalStyle, _ := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})

	for i, col := range orderColumns {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(ordersSheet, cell, col.title)
		f.SetCellStyle(ordersSheet, cell, cell, headerStyle)
		name, _ := excelize.ColumnNumberToName(i + 1)
		f.SetColWidth(ordersSheet, name, name, col.width)
	}

	var sum pricing.Totals
	var qty int
	for i, o := range orders {
		pricing.ApplyTotals(&o)
		row := NewSheetRow(o)
		values := []any{
			row.OrderID, row.OrderDate, row.Username, row.Address, row.Status, row.Items,
			row.Quantity, row.TotalSellingPrice, row.TotalCost, row.ShippingCost,
			row.Deposit, row.Discount, row.Profit, row.RemainingBalance, row.PaymentDate,
		}
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := f.SetSheetRow(ordersSheet, cell, &values); err != nil {
			f.Close()
			return nil, err
		}

		qty += row.Quantity
		sum.Net += o.TotalSellingPrice
		sum.Cost += o.TotalCost
		sum.Shipping += o.ShippingCost
		sum.Deposit += o.Deposit
		sum.Discount += o.Discount
		sum.Profit += o.Profit
		sum.Balance += o.RemainingBalance
	}

	totalRow := len(orders) + 2
	totals := []any{
		"Total", "", "", "", "", "",
		qty, sum.Net, sum.Cost, sum.Shipping, sum.Deposit, sum.Discount, sum.Profit, sum.Balance, "",
	}
	first, _ := excelize.CoordinatesToCellName(1, totalRow)
	last, _ := excelize.CoordinatesToCellName(len(orderColumns), totalRow)
	if err := f.SetSheetRow(ordersSheet, first, &totals); err != nil {
		f.Close()
		return nil, err
	}
	f.SetCellStyle(ordersSheet, first, last, totalStyle)
	f.SetPanes(ordersSheet, &excelize.Panes{Freeze: true, YSplit: 1, TopLeftCell: "A2", ActivePane: "bottomLeft"})

	return f, nil
}
