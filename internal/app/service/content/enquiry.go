package content

import (
	"bytes"
	"context"
	"fmt"
	"html/template"

	"github.com/fatflowers/console/internal/models"
	"github.com/fatflowers/console/internal/platform/mail"
	"github.com/fatflowers/console/pkg/logctx"
	"github.com/fatflowers/console/pkg/tool"
	"github.com/fatflowers/console/pkg/types"
)

var enquiryScan = types.ScanSpec{
	Fields:      []string{"c_id", "email", "name", "created_at"},
	DefaultSort: "created_at",
}

var enquiryTemplate = template.Must(template.New("enquiry").Parse(`<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif; color: #222;">
<p>A new enquiry was submitted on {{.Domain}}.</p>
<table cellpadding="6" style="border-collapse: collapse;">
<tr><td>Name</td><td>{{.Name}}</td></tr>
<tr><td>Email</td><td>{{.Email}}</td></tr>
<tr><td>Phone</td><td>{{.Phone}}</td></tr>
<tr><td>Subject</td><td>{{.Subject}}</td></tr>
</table>
<p style="white-space: pre-wrap;">{{.Message}}</p>
</body>
</html>
`))

type EnquiryRequest struct {
	Name    string `json:"name" binding:"required,max=255"`
	Email   string `json:"email" binding:"required,email"`
	Phone   string `json:"phone" binding:"max=32"`
	Subject string `json:"subject" binding:"max=255"`
	Message string `json:"message" binding:"required,max=5000"`
}

// SubmitEnquiry stores a contact form for the storefront on domain and emails
// the tenant in the background. Email failures are logged, never returned.
func (s *Service) SubmitEnquiry(ctx context.Context, domain string, req *EnquiryRequest) (*models.Enquiry, error) {
	c, err := s.tenants.GetLiveByDomain(ctx, domain)
	if err != nil {
		return nil, tenantErr(err)
	}
	e := &models.Enquiry{
		ID:         tool.GenerateUUIDV7(),
		CustomerID: c.ID,
		Name:       trimmed(req.Name),
		Email:      trimmed(req.Email),
		Phone:      trimmed(req.Phone),
		Subject:    trimmed(req.Subject),
		Message:    trimmed(req.Message),
	}
	if err := s.db.WithContext(ctx).Create(e).Error; err != nil {
		return nil, fmt.Errorf("failed to save enquiry: %w", err)
	}

	s.pending.Add(1)
	go func(ctx context.Context) {
		defer s.pending.Done()
		s.notifyTenant(ctx, c, e)
	}(context.WithoutCancel(ctx))
	return e, nil
}

func (s *Service) notifyTenant(ctx context.Context, c *models.Customer, e *models.Enquiry) {
	l := logctx.FromCtx(ctx, s.log)
	if c.Email == "" {
		l.Warnw("tenant has no email, enquiry not forwarded", "c_id", c.ID, "enquiry_id", e.ID)
		return
	}

	var body bytes.Buffer
	err := enquiryTemplate.Execute(&body, map[string]string{
		"Domain": c.Domain, "Name": e.Name, "Email": e.Email, "Phone": e.Phone, "Subject": e.Subject, "Message": e.Message,
	})
	if err != nil {
		l.Errorf("failed to render enquiry email: %v", err)
		return
	}

	entry, err := s.notifications.Received(ctx, types.NotificationKindEnquiry, e.ID, c.Email, map[string]any{"c_id": c.ID})
	if err != nil {
		l.Errorf("failed to record enquiry notification: %v", err)
	}
	subject := "New enquiry from " + e.Name
	if e.Subject != "" {
		subject += ": " + e.Subject
	}
	sendErr := s.mailer.Send(ctx, &mail.Message{To: []string{c.Email}, ReplyTo: e.Email, Subject: subject, HTML: body.String()})
	s.notifications.Finish(ctx, entry, sendErr)
	if sendErr != nil {
		l.Errorw("enquiry email failed", "c_id", c.ID, "enquiry_id", e.ID, "err", sendErr)
	}
}

func (s *Service) ListEnquiries(ctx context.Context, req *types.ScanRequest) (*types.ScanResponse[*models.Enquiry], error) {
	return types.Scan[*models.Enquiry](s.db.WithContext(ctx).Model(&models.Enquiry{}), req, enquiryScan)
}
