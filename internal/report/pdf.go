package report

import (
	"bytes"
	"fmt"
	"time"

	"github.com/NileMind-Team/pahray-sub001/internal/model"

	"github.com/phpdave11/gofpdf"
)

// BuildPDF renders the same report sections as BuildDocument with gofpdf.
// The built-in core fonts carry no Arabic glyphs, so the PDF export uses
// Latin labels and ASCII numerals; the HTML document stays the localized
// artifact of record.
func (b *DocumentBuilder) BuildPDF(orders []model.OrderRecord, summary Summary, generatedAt time.Time, resolve NameResolver) ([]byte, error) {
	if resolve == nil {
		resolve = func(userID string) string { return userID }
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(12, 12, 12)
	pdf.SetFillColor(240, 240, 240)
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 16)
	pdf.CellFormat(0, 9, "Sales Report", "", 1, "C", false, 0, "")

	pdf.SetFont("Arial", "", 9)
	pdf.CellFormat(0, 5, fmt.Sprintf("Generated: %s", generatedAt.Format("2006-01-02 15:04")), "", 1, "C", false, 0, "")
	pdf.CellFormat(0, 5, fmt.Sprintf("Orders: %d", len(orders)), "", 1, "C", false, 0, "")
	pdf.Ln(3)

	pdf.SetFont("Arial", "B", 10)
	statWidth := 46.5
	pdf.CellFormat(statWidth, 8, fmt.Sprintf("Sales: %.2f", summary.TotalSales), "1", 0, "C", false, 0, "")
	pdf.CellFormat(statWidth, 8, fmt.Sprintf("Orders: %d", summary.TotalOrders), "1", 0, "C", false, 0, "")
	pdf.CellFormat(statWidth, 8, fmt.Sprintf("Delivery: %d", summary.DeliveryOrders), "1", 0, "C", false, 0, "")
	pdf.CellFormat(statWidth, 8, fmt.Sprintf("Pickup: %d", summary.PickupOrders), "1", 1, "C", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont("Arial", "B", 9)
	pdf.CellFormat(30, 7, "Order", "1", 0, "C", true, 0, "")
	pdf.CellFormat(42, 7, "Customer", "1", 0, "C", true, 0, "")
	pdf.CellFormat(30, 7, "Type", "1", 0, "C", true, 0, "")
	pdf.CellFormat(40, 7, "Status", "1", 0, "C", true, 0, "")
	pdf.CellFormat(44, 7, "Total", "1", 1, "C", true, 0, "")

	pdf.SetFont("Arial", "", 9)
	var grandTotal float64
	for i := range orders {
		order := &orders[i]
		grandTotal += order.TotalWithFeeValue()

		kind := "Pickup"
		if order.IsDelivery() {
			kind = "Delivery"
		}
		pdf.CellFormat(30, 6, order.OrderNumber, "1", 0, "C", false, 0, "")
		pdf.CellFormat(42, 6, resolve(order.UserID), "1", 0, "C", false, 0, "")
		pdf.CellFormat(30, 6, kind, "1", 0, "C", false, 0, "")
		pdf.CellFormat(40, 6, string(order.Status), "1", 0, "C", false, 0, "")
		pdf.CellFormat(44, 6, fmt.Sprintf("%.2f", order.TotalWithFeeValue()), "1", 1, "C", false, 0, "")
	}

	pdf.SetFont("Arial", "B", 9)
	pdf.CellFormat(142, 7, "Grand Total", "1", 0, "C", false, 0, "")
	pdf.CellFormat(44, 7, fmt.Sprintf("%.2f", grandTotal), "1", 1, "C", false, 0, "")

	if len(summary.TopProducts) > 0 {
		pdf.Ln(5)
		pdf.SetFont("Arial", "B", 11)
		pdf.CellFormat(0, 7, "Top Products", "", 1, "L", false, 0, "")

		pdf.SetFont("Arial", "B", 9)
		pdf.CellFormat(12, 7, "#", "1", 0, "C", true, 0, "")
		pdf.CellFormat(90, 7, "Product", "1", 0, "C", true, 0, "")
		pdf.CellFormat(36, 7, "Quantity", "1", 0, "C", true, 0, "")
		pdf.CellFormat(48, 7, "Revenue", "1", 1, "C", true, 0, "")

		pdf.SetFont("Arial", "", 9)
		for i, product := range summary.TopProducts {
			pdf.CellFormat(12, 6, fmt.Sprintf("%d", i+1), "1", 0, "C", false, 0, "")
			pdf.CellFormat(90, 6, product.Name, "1", 0, "L", false, 0, "")
			pdf.CellFormat(36, 6, fmt.Sprintf("%d", product.Quantity), "1", 0, "C", false, 0, "")
			pdf.CellFormat(48, 6, fmt.Sprintf("%.2f", product.Revenue), "1", 1, "C", false, 0, "")
		}
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render sales report pdf: %w", err)
	}
	return buf.Bytes(), nil
}
