package invoice

import (
	"bytes"
	"fmt"
	"html/template"
	"time"

	"github.com/shopspring/decimal"
)

var emailTemplate = template.Must(template.New("invoice").Parse(`<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif; color: #222;">
<p>Dear {{.CompanyName}},</p>
<p>Please find your invoice <strong>{{.OrderID}}</strong> for the period {{.PeriodStart}} to {{.PeriodEnd}}.</p>
<table cellpadding="6" style="border-collapse: collapse;">
<tr><td>Plan</td><td>{{.PlanName}}</td></tr>
<tr><td>Total Order Value</td><td><strong>{{.Amount}}</strong></td></tr>
<tr><td>Amount in words</td><td>{{.AmountInWords}}</td></tr>
</table>
<p><a href="{{.Link}}">Download invoice (PDF)</a>. The link is valid until {{.LinkExpiry}}.</p>
<p>Regards,<br>{{.Seller}}</p>
</body>
</html>
`))

type emailData struct {
	CompanyName   string
	OrderID       string
	PeriodStart   string
	PeriodEnd     string
	PlanName      string
	Amount        string
	AmountInWords string
	Link          string
	LinkExpiry    string
	Seller        string
}

func emailSubject(v *View) string {
	return fmt.Sprintf("Invoice %s from %s", v.OrderID, v.Seller.Name)
}

func renderEmail(v *View, link string, linkExpiry time.Time) (string, error) {
	var buf bytes.Buffer
	err := emailTemplate.Execute(&buf, emailData{
		CompanyName:   v.BillTo.Name,
		OrderID:       v.OrderID,
		PeriodStart:   v.PeriodStart.Format(dateLayout),
		PeriodEnd:     v.PeriodEnd.Format(dateLayout),
		PlanName:      v.Item.PlanName,
		Amount:        FormatMoney(decimal.NewFromInt(v.TotalOrderValue)),
		AmountInWords: v.AmountInWords,
		Link:          link,
		LinkExpiry:    linkExpiry.Format(dateLayout),
		Seller:        v.Seller.Name,
	})
	if err != nil {
		return "", fmt.Errorf("render invoice email: %w", err)
	}
	return buf.String(), nil
}
