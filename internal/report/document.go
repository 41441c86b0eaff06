package report

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"
	"time"

	"github.com/NileMind-Team/pahray-sub001/internal/locale"
	"github.com/NileMind-Team/pahray-sub001/internal/model"
)

// NameResolver maps a user id to a display name. The controller supplies
// one backed by its user cache; the builder never fetches anything itself.
type NameResolver func(userID string) string

type statusDisplay struct {
	Label string
	Class string
}

var statusDisplays = map[model.OrderStatus]statusDisplay{
	model.StatusPending:        {Label: "قيد الانتظار", Class: "status-pending"},
	model.StatusConfirmed:      {Label: "تم التأكيد", Class: "status-confirmed"},
	model.StatusPreparing:      {Label: "قيد التحضير", Class: "status-preparing"},
	model.StatusOutForDelivery: {Label: "في الطريق", Class: "status-delivering"},
	model.StatusDelivered:      {Label: "تم التوصيل", Class: "status-delivered"},
	model.StatusCancelled:      {Label: "ملغي", Class: "status-cancelled"},
}

// displayForStatus keeps unknown backend statuses renderable: the raw value
// becomes the label and the styling stays neutral.
func displayForStatus(status model.OrderStatus) statusDisplay {
	if display, ok := statusDisplays[status]; ok {
		return display
	}
	return statusDisplay{Label: string(status), Class: "status-neutral"}
}

type documentRow struct {
	OrderNumber  string
	CustomerName string
	Phone        string
	OrderKind    string
	Address      string
	StatusLabel  string
	StatusClass  string
	Total        string
}

type documentProduct struct {
	Rank     string
	Name     string
	Quantity string
	Revenue  string
}

type documentData struct {
	GeneratedAt    string
	DateRange      string
	RecordCount    string
	TotalSales     string
	TotalOrders    string
	DeliveryOrders string
	PickupOrders   string
	Rows           []documentRow
	GrandTotal     string
	TopProducts    []documentProduct
}

const reportHTMLTemplate = `<!DOCTYPE html>
<html lang="ar" dir="rtl">
<head>
  <meta charset="UTF-8" />
  <title>تقرير المبيعات</title>
  <style>
    * { box-sizing: border-box; }
    body { font-family: 'Segoe UI', Tahoma, sans-serif; font-size: 13px; padding: 16px; color: #1a1a1a; }
    .header { text-align: center; border-bottom: 2px solid #b71c1c; padding-bottom: 10px; margin-bottom: 10px; }
    .title { font-size: 20px; font-weight: bold; color: #b71c1c; }
    .meta { text-align: center; color: #555; margin-bottom: 12px; }
    .stats { display: flex; gap: 8px; margin-bottom: 14px; }
    .stat { flex: 1; border: 1px solid #ddd; border-radius: 6px; padding: 10px; text-align: center; }
    .stat .value { font-size: 16px; font-weight: bold; }
    .stat .label { font-size: 11px; color: #777; }
    table { width: 100%; border-collapse: collapse; margin-bottom: 14px; }
    th, td { border: 1px solid #ccc; padding: 6px 8px; text-align: right; }
    th { background: #f5f5f5; }
    tr.total-row td { font-weight: bold; background: #fafafa; }
    .status-pending { color: #e65100; }
    .status-confirmed { color: #1565c0; }
    .status-preparing { color: #6a1b9a; }
    .status-delivering { color: #00695c; }
    .status-delivered { color: #2e7d32; }
    .status-cancelled { color: #b71c1c; }
    .status-neutral { color: #555; }
    .section-title { font-weight: bold; margin: 10px 0 6px; }
  </style>
</head>
<body>
  <div class="header">
    <div class="title">تقرير المبيعات</div>
  </div>
  <div class="meta">
    <div>تاريخ الإنشاء: {{.GeneratedAt}}</div>
    <div>الفترة: {{.DateRange}}</div>
    <div>عدد الطلبات: {{.RecordCount}}</div>
  </div>
  <div class="stats">
    <div class="stat"><div class="value">{{.TotalSales}}</div><div class="label">إجمالي المبيعات</div></div>
    <div class="stat"><div class="value">{{.TotalOrders}}</div><div class="label">عدد الطلبات</div></div>
    <div class="stat"><div class="value">{{.DeliveryOrders}}</div><div class="label">طلبات التوصيل</div></div>
    <div class="stat"><div class="value">{{.PickupOrders}}</div><div class="label">طلبات الاستلام</div></div>
  </div>
  <table>
    <thead>
      <tr>
        <th>رقم الطلب</th>
        <th>العميل</th>
        <th>الهاتف</th>
        <th>النوع</th>
        <th>العنوان</th>
        <th>الحالة</th>
        <th>الإجمالي</th>
      </tr>
    </thead>
    <tbody>
      {{range .Rows}}
      <tr>
        <td>{{.OrderNumber}}</td>
        <td>{{.CustomerName}}</td>
        <td>{{.Phone}}</td>
        <td>{{.OrderKind}}</td>
        <td>{{.Address}}</td>
        <td class="{{.StatusClass}}">{{.StatusLabel}}</td>
        <td>{{.Total}}</td>
      </tr>
      {{end}}
      <tr class="total-row">
        <td colspan="6">الإجمالي الكلي</td>
        <td>{{.GrandTotal}}</td>
      </tr>
    </tbody>
  </table>
  {{if .TopProducts}}
  <div class="section-title">الأصناف الأكثر مبيعاً</div>
  <table>
    <thead>
      <tr><th>#</th><th>الصنف</th><th>الكمية</th><th>الإيراد</th></tr>
    </thead>
    <tbody>
      {{range .TopProducts}}
      <tr><td>{{.Rank}}</td><td>{{.Name}}</td><td>{{.Quantity}}</td><td>{{.Revenue}}</td></tr>
      {{end}}
    </tbody>
  </table>
  {{end}}
</body>
</html>`

var reportTemplate = template.Must(template.New("sales-report").Parse(reportHTMLTemplate))

// DocumentBuilder renders the aggregated summary plus raw order rows into a
// standalone printable artifact. It holds no request state; every call is a
// pure function of its arguments.
type DocumentBuilder struct {
	// TimeOffsetHours shifts the generation timestamp into the display
	// timezone before rendering.
	TimeOffsetHours int
}

// BuildDocument serializes the report as a self-contained HTML page. The
// result references nothing in live memory and prints as-is.
func (b *DocumentBuilder) BuildDocument(orders []model.OrderRecord, summary Summary, generatedAt time.Time, resolve NameResolver) (string, error) {
	data := b.assemble(orders, summary, generatedAt, resolve)

	var buf bytes.Buffer
	if err := reportTemplate.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("render sales report: %w", err)
	}
	return buf.String(), nil
}

func (b *DocumentBuilder) assemble(orders []model.OrderRecord, summary Summary, generatedAt time.Time, resolve NameResolver) documentData {
	if resolve == nil {
		resolve = func(userID string) string { return userID }
	}

	data := documentData{
		GeneratedAt:    locale.FormatClockTime(generatedAt.Format("2006-01-02T15:04"), b.TimeOffsetHours),
		DateRange:      summary.DateRange,
		RecordCount:    locale.ToArabicDigits(fmt.Sprintf("%d", len(orders))),
		TotalSales:     locale.FormatCurrencyValue(summary.TotalSales),
		TotalOrders:    locale.ToArabicDigits(fmt.Sprintf("%d", summary.TotalOrders)),
		DeliveryOrders: locale.ToArabicDigits(fmt.Sprintf("%d", summary.DeliveryOrders)),
		PickupOrders:   locale.ToArabicDigits(fmt.Sprintf("%d", summary.PickupOrders)),
	}

	var grandTotal float64
	for i := range orders {
		order := &orders[i]
		grandTotal += order.TotalWithFeeValue()

		display := displayForStatus(order.Status)
		data.Rows = append(data.Rows, documentRow{
			OrderNumber:  locale.ToArabicDigits(order.OrderNumber),
			CustomerName: resolve(order.UserID),
			Phone:        orderPhone(order),
			OrderKind:    orderKindLabel(order),
			Address:      orderAddress(order),
			StatusLabel:  display.Label,
			StatusClass:  display.Class,
			Total:        locale.FormatCurrency(order.TotalWithFee),
		})
	}
	data.GrandTotal = locale.FormatCurrencyValue(grandTotal)

	for i, product := range summary.TopProducts {
		data.TopProducts = append(data.TopProducts, documentProduct{
			Rank:     locale.ToArabicDigits(fmt.Sprintf("%d", i+1)),
			Name:     product.Name,
			Quantity: locale.ToArabicDigits(fmt.Sprintf("%d", product.Quantity)),
			Revenue:  locale.FormatCurrencyValue(product.Revenue),
		})
	}

	return data
}

func orderKindLabel(order *model.OrderRecord) string {
	if order.IsDelivery() {
		return "توصيل"
	}
	return "استلام"
}

func orderPhone(order *model.OrderRecord) string {
	if order.Location == nil || order.Location.PhoneNumber == "" {
		return "—"
	}
	return locale.ToArabicDigits(order.Location.PhoneNumber)
}

func orderAddress(order *model.OrderRecord) string {
	parts := make([]string, 0, 2)
	if order.DeliveryFee != nil && order.DeliveryFee.AreaName != "" {
		parts = append(parts, order.DeliveryFee.AreaName)
	}
	if order.Location != nil && order.Location.StreetName != "" {
		parts = append(parts, order.Location.StreetName)
	}
	if len(parts) == 0 {
		return "—"
	}
	return strings.Join(parts, " - ")
}
