package invoice

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"salonhub/models"

	"github.com/go-pdf/fpdf"
	"github.com/google/uuid"
)

// Number derives a stable invoice number from the booking id.
func Number(bookingID string) string {
	id := uuid.NewSHA1(uuid.NameSpaceOID, []byte("salonhub/invoice/"+bookingID))
	return "INV-" + strings.ToUpper(strings.ReplaceAll(id.String(), "-", "")[:10])
}

// Document is everything printed on an invoice.
type Document struct {
	Number   string
	Issued   time.Time
	Booking  *models.Booking
	Branding models.Branding
	Currency string
	TaxRate  float64
	Lines    []Line
	Totals   Totals
}

// Render writes the invoice as a single-page A4 PDF.
func Render(doc Document) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(doc.Number, true)
	pdf.SetMargins(15, 15, 15)
	pdf.AddPage()
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	company := doc.Branding.CompanyName
	if company == "" {
		company = "Invoice"
	}
	pdf.SetFont("Helvetica", "B", 18)
	pdf.CellFormat(0, 10, tr(company), "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 9)
	for _, l := range []string{doc.Branding.Address, doc.Branding.ContactEmail, doc.Branding.ContactPhone} {
		if l != "" {
			pdf.CellFormat(0, 5, tr(l), "", 1, "L", false, 0, "")
		}
	}
	pdf.Ln(6)

	b := doc.Booking
	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(0, 7, tr("Invoice "+doc.Number), "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	meta := [][2]string{
		{"Issued", doc.Issued.Format("2006-01-02")},
		{"Customer", b.CustomerName},
		{"Phone", b.CustomerPhone},
		{"Email", b.CustomerEmail},
		{"Appointment", strings.TrimSpace(b.Date.Day() + " " + b.Time)},
		{"Branch", b.BranchName},
		{"Staff", b.Staff},
		{"Tax number", b.TaxNumber},
	}
	for _, kv := range meta {
		if kv[1] == "" {
			continue
		}
		pdf.CellFormat(35, 6, tr(kv[0]), "", 0, "L", false, 0, "")
		pdf.CellFormat(0, 6, tr(kv[1]), "", 1, "L", false, 0, "")
	}
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "B", 10)
	pdf.SetFillColor(235, 235, 235)
	pdf.CellFormat(95, 8, "Service", "B", 0, "L", true, 0, "")
	pdf.CellFormat(20, 8, "Qty", "B", 0, "R", true, 0, "")
	pdf.CellFormat(30, 8, "Unit", "B", 0, "R", true, 0, "")
	pdf.CellFormat(35, 8, "Amount", "B", 1, "R", true, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	for _, l := range doc.Lines {
		pdf.CellFormat(95, 7, tr(l.Description), "", 0, "L", false, 0, "")
		pdf.CellFormat(20, 7, l.Quantity.String(), "", 0, "R", false, 0, "")
		pdf.CellFormat(30, 7, l.UnitPrice.StringFixed(2), "", 0, "R", false, 0, "")
		pdf.CellFormat(35, 7, l.Amount.StringFixed(2), "", 1, "R", false, 0, "")
	}
	pdf.Ln(3)

	t := doc.Totals
	rows := [][2]string{
		{"Subtotal", t.Subtotal.StringFixed(2)},
		{"Discount", "-" + t.Discount.StringFixed(2)},
		{fmt.Sprintf("Tax (%.2f%%)", doc.TaxRate*100), t.Tax.StringFixed(2)},
		{"Tip", t.Tip.StringFixed(2)},
	}
	for _, r := range rows {
		pdf.CellFormat(145, 6, r[0], "", 0, "R", false, 0, "")
		pdf.CellFormat(35, 6, r[1], "", 1, "R", false, 0, "")
	}
	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(145, 8, "Total "+doc.Currency, "T", 0, "R", false, 0, "")
	pdf.CellFormat(35, 8, t.Total.StringFixed(2), "T", 1, "R", false, 0, "")

	if b.PaymentMethod != "" || b.PaymentStatus != "" {
		pdf.Ln(4)
		pdf.SetFont("Helvetica", "", 9)
		payment := strings.TrimSpace(b.PaymentMethod + " " + b.PaymentStatus)
		if b.CardLast4 != "" {
			payment += " (card ending " + b.CardLast4 + ")"
		}
		pdf.CellFormat(0, 5, tr("Payment: "+payment), "", 1, "L", false, 0, "")
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render invoice: %w", err)
	}
	return buf.Bytes(), nil
}
