package invoice

import (
	"fmt"
	"io"
	"strconv"

	"github.com/go-pdf/fpdf"

	"github.com/fatflowers/console/internal/app/service/subscription"
	"github.com/fatflowers/console/pkg/types"
)

const (
	pageMargin = 15.0
	rowHeight  = 7.0
	dateLayout = "02 Jan 2006"
)

// WritePDF renders v as an A4 invoice.
func WritePDF(w io.Writer, v *View) error {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(pageMargin, pageMargin, pageMargin)
	pdf.SetAutoPageBreak(true, pageMargin)
	pdf.SetTitle("Invoice "+v.OrderID, true)
	pdf.SetCreator("console", true)
	pdf.SetCreationDate(v.InvoiceDate)
	pdf.SetModificationDate(v.InvoiceDate)
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.AddPage()

	width, _ := pdf.GetPageSize()
	content := width - 2*pageMargin

	pdf.SetFont("Helvetica", "B", 18)
	pdf.CellFormat(content/2, 10, tr(v.Seller.Name), "", 0, "L", false, 0, "")
	pdf.CellFormat(content/2, 10, "TAX INVOICE", "", 1, "R", false, 0, "")
	pdf.SetFont("Helvetica", "", 9)
	for _, l := range partyLines(v.Seller) {
		pdf.CellFormat(content, 5, tr(l), "", 1, "L", false, 0, "")
	}
	pdf.Ln(4)

	meta := [][2]string{
		{"Invoice No.", v.OrderID},
		{"Invoice Date", v.InvoiceDate.Format(dateLayout)},
		{"Billing Period", v.PeriodStart.Format(dateLayout) + " - " + v.PeriodEnd.Format(dateLayout)},
		{"Payment", paymentLabel(v)},
	}
	for _, m := range meta {
		pdf.SetFont("Helvetica", "B", 10)
		pdf.CellFormat(35, 6, m[0], "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 10)
		pdf.CellFormat(content-35, 6, tr(m[1]), "", 1, "L", false, 0, "")
	}
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(content, 7, "Bill To", "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(content, 6, tr(v.BillTo.Name), "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 9)
	for _, l := range partyLines(v.BillTo) {
		pdf.CellFormat(content, 5, tr(l), "", 1, "L", false, 0, "")
	}
	pdf.Ln(4)

	cols := []float64{content * 0.46, content * 0.14, content * 0.2, content * 0.2}
	pdf.SetFont("Helvetica", "B", 10)
	pdf.SetFillColor(235, 235, 235)
	for i, h := range []string{"Plan", "Users", "Rate / User", "Amount"} {
		align := "R"
		if i == 0 {
			align = "L"
		}
		pdf.CellFormat(cols[i], rowHeight, h, "1", 0, align, true, 0, "")
	}
	pdf.Ln(-1)
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(cols[0], rowHeight, tr(v.Item.PlanName), "1", 0, "L", false, 0, "")
	pdf.CellFormat(cols[1], rowHeight, strconv.Itoa(v.Item.Users), "1", 0, "R", false, 0, "")
	pdf.CellFormat(cols[2], rowHeight, FormatMoney(v.Item.PerUserRate), "1", 0, "R", false, 0, "")
	pdf.CellFormat(cols[3], rowHeight, FormatMoney(v.Item.Amount), "1", 1, "R", false, 0, "")
	pdf.Ln(3)

	labelW, amountW := content*0.3, content*0.2
	for _, l := range v.Lines {
		pdf.SetX(pageMargin + content - labelW - amountW)
		style := ""
		if l.Highlight {
			style = "B"
			pdf.SetFillColor(220, 235, 250)
		}
		pdf.SetFont("Helvetica", style, 10)
		pdf.CellFormat(labelW, rowHeight, l.Label, "1", 0, "L", l.Highlight, 0, "")
		pdf.CellFormat(amountW, rowHeight, FormatMoney(l.Amount), "1", 1, "R", l.Highlight, 0, "")
	}
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "I", 10)
	pdf.MultiCell(content, 6, "Amount in words: "+v.AmountInWords, "", "L", false)
	pdf.Ln(8)
	pdf.SetFont("Helvetica", "", 8)
	pdf.CellFormat(content, 5, "This is a computer generated invoice and does not require a signature.", "", 1, "C", false, 0, "")

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("render invoice %s: %w", v.OrderID, err)
	}
	return nil
}

func partyLines(p Party) []string {
	var out []string
	if p.Contact != "" {
		out = append(out, p.Contact)
	}
	if p.Address != "" {
		out = append(out, p.Address)
	}
	if p.GSTIN != "" {
		out = append(out, "GSTIN: "+p.GSTIN)
	}
	if p.Email != "" {
		out = append(out, p.Email)
	}
	if p.Phone != "" {
		out = append(out, p.Phone)
	}
	return out
}

func paymentLabel(v *View) string {
	if v.Payment != types.PaymentPaid {
		return "Pending"
	}
	label := "Paid"
	if v.PaymentDate != nil {
		label += " on " + v.PaymentDate.Format(dateLayout)
	}
	if v.PaymentDetail != "" && v.PaymentDetail != subscription.NoPaymentDetail {
		label += " (" + v.PaymentDetail + ")"
	}
	return label
}
