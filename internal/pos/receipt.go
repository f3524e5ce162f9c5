package pos

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/peakers/pos-api/internal/domain/enum"
	"github.com/peakers/pos-api/pkg/printer"
)

// ReceiptLine is one printed item line.
type ReceiptLine struct {
	Name      string
	Quantity  int
	LineTotal int64
	IsBundle  bool
}

// Receipt is the printable record of a completed sale. It is built from
// the checkout snapshot before the session resets, so its totals reflect
// what was actually charged.
type Receipt struct {
	Company      Company
	CustomerName string
	SaleNumber   string
	Lines        []ReceiptLine
	Totals       Totals
	PaymentType  enum.PaymentType
	Currency     string
	IssuedAt     time.Time
}

// FormatAmount renders cents as a decimal amount, e.g. 111000 -> "1110.00".
func FormatAmount(cents int64) string {
	return fmt.Sprintf("%.2f", float64(cents)/100)
}

// vatPercent renders a rate as a percentage without trailing zeros,
// e.g. 0.16 -> "16".
func vatPercent(rate float64) string {
	return strconv.FormatFloat(rate*100, 'f', -1, 64)
}

// Render produces the plain-text receipt. Missing company details fall
// back to placeholders rather than failing the print.
func (r *Receipt) Render() string {
	var b strings.Builder

	company := r.Company.Name
	if company == "" {
		company = "Company Name"
	}
	phone := r.Company.Phone
	if phone == "" {
		phone = "N/A"
	}

	b.WriteString(company + "\n")
	b.WriteString("Tel: " + phone + "\n")
	if r.Company.Address != "" {
		b.WriteString(r.Company.Address + "\n")
	}
	b.WriteString(strings.Repeat("-", 32) + "\n")

	customer := r.CustomerName
	if customer == "" {
		customer = "Guest"
	}
	b.WriteString("Customer: " + customer + "\n")
	if r.SaleNumber != "" {
		b.WriteString("Sale #: " + r.SaleNumber + "\n")
	}
	if !r.IssuedAt.IsZero() {
		b.WriteString("Date: " + r.IssuedAt.Format("2006-01-02 15:04") + "\n")
	}
	b.WriteString(strings.Repeat("-", 32) + "\n")

	for _, line := range r.Lines {
		name := line.Name
		if line.IsBundle {
			name += " (Bundle)"
		}
		b.WriteString(fmt.Sprintf("%d x %s = %s %s\n",
			line.Quantity, name, r.Currency, FormatAmount(line.LineTotal)))
	}
	b.WriteString(strings.Repeat("-", 32) + "\n")

	b.WriteString(fmt.Sprintf("Subtotal: %s %s\n", r.Currency, FormatAmount(r.Totals.Subtotal)))
	b.WriteString(fmt.Sprintf("VAT (%s%%): %s %s\n",
		vatPercent(r.Totals.VATRate), r.Currency, FormatAmount(r.Totals.VATAmount)))
	if r.Totals.Discount != 0 {
		b.WriteString(fmt.Sprintf("Discount: %s %s\n", r.Currency, FormatAmount(r.Totals.Discount)))
	}
	b.WriteString(fmt.Sprintf("Total: %s %s\n", r.Currency, FormatAmount(r.Totals.GrandTotal)))
	b.WriteString(fmt.Sprintf("Paid via: %s\n", r.PaymentType))
	b.WriteString("\nThank you for your business!\n")

	return b.String()
}

// ToDocument builds the ESC/POS document for thermal printing.
func (r *Receipt) ToDocument(width int) *printer.Document {
	doc := printer.NewDocument(width)

	company := r.Company.Name
	if company == "" {
		company = "Company Name"
	}
	phone := r.Company.Phone
	if phone == "" {
		phone = "N/A"
	}

	doc.SetAlign(printer.AlignCenter).
		SetBold(true).
		Text(company).
		SetBold(false).
		Text("Tel: " + phone)
	if r.Company.Address != "" {
		doc.Text(r.Company.Address)
	}

	doc.SetAlign(printer.AlignLeft).Separator('-')

	customer := r.CustomerName
	if customer == "" {
		customer = "Guest"
	}
	doc.Text("Customer: " + customer)
	if r.SaleNumber != "" {
		doc.Text("Sale #: " + r.SaleNumber)
	}
	if !r.IssuedAt.IsZero() {
		doc.Text("Date: " + r.IssuedAt.Format("2006-01-02 15:04"))
	}
	doc.Separator('-')

	for _, line := range r.Lines {
		name := line.Name
		if line.IsBundle {
			name += " (Bundle)"
		}
		doc.ItemLine(line.Quantity, name, r.Currency+" "+FormatAmount(line.LineTotal))
	}
	doc.Separator('-')

	doc.KeyValue("Subtotal", r.Currency+" "+FormatAmount(r.Totals.Subtotal))
	doc.KeyValue("VAT ("+vatPercent(r.Totals.VATRate)+"%)", r.Currency+" "+FormatAmount(r.Totals.VATAmount))
	if r.Totals.Discount != 0 {
		doc.KeyValue("Discount", r.Currency+" "+FormatAmount(r.Totals.Discount))
	}
	doc.SetBold(true).
		KeyValue("Total", r.Currency+" "+FormatAmount(r.Totals.GrandTotal)).
		SetBold(false)
	doc.KeyValue("Paid via", r.PaymentType.String())

	doc.LineFeed().
		SetAlign(printer.AlignCenter).
		Text("Thank you for your business!").
		FeedLines(3).
		Cut()

	return doc
}
