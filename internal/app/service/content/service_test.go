package content

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/fatflowers/console/internal/app/service/notification_log"
	"github.com/fatflowers/console/internal/app/service/tenant"
	"github.com/fatflowers/console/internal/models"
	"github.com/fatflowers/console/internal/platform/mail"
	"github.com/fatflowers/console/internal/testutil"
	"github.com/fatflowers/console/pkg/config"
	"github.com/fatflowers/console/pkg/types"
)

type fakeMailer struct {
	mu   sync.Mutex
	sent []*mail.Message
	err  error
}

func (m *fakeMailer) Send(_ context.Context, msg *mail.Message) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, msg)
	return nil
}

type fixture struct {
	svc    *Service
	db     *gorm.DB
	live   *models.Customer
	draft  *models.Customer
	mailer *fakeMailer
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()
	db := testutil.NewTestDB(t)
	log := zap.NewNop().Sugar()
	cfg := &config.Config{ImageBaseURL: "https://cdn.example.com/assets/"}
	tenants := tenant.NewService(db, log)

	live, err := tenants.Create(ctx, &tenant.CustomerRequest{CompanyName: "Acme", Email: "owner@acme.test", Domain: "acme.example.com", Logo: "logos/acme.png"})
	require.NoError(t, err)
	live, err = tenants.Approve(ctx, live.ID)
	require.NoError(t, err)
	draft, err := tenants.Create(ctx, &tenant.CustomerRequest{CompanyName: "Draft", Email: "d@draft.test", Domain: "draft.example.com"})
	require.NoError(t, err)

	mailer := &fakeMailer{}
	svc := NewService(cfg, db, log, tenants, mailer, notification_log.New(db, log))
	t.Cleanup(svc.Wait)
	return &fixture{svc: svc, db: db, live: live, draft: draft, mailer: mailer}
}

func TestFaqs(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	global, err := f.svc.CreateFaq(ctx, &FaqRequest{Question: "What is GST?", Answer: "A tax.", SortOrder: 2})
	require.NoError(t, err)
	own, err := f.svc.CreateFaq(ctx, &FaqRequest{CustomerID: f.live.ID, Question: "Delivery?", Answer: "Yes.", SortOrder: 1})
	require.NoError(t, err)
	_, err = f.svc.CreateFaq(ctx, &FaqRequest{CustomerID: f.draft.ID, Question: "Other", Answer: "Tenant"})
	require.NoError(t, err)

	_, err = f.svc.CreateFaq(ctx, &FaqRequest{CustomerID: "missing", Question: "q", Answer: "a"})
	require.ErrorIs(t, err, tenant.ErrCustomerNotFound)

	faqs, err := f.svc.PublicFaqs(ctx, "https://ACME.example.com/faq")
	require.NoError(t, err)
	require.Len(t, faqs, 2)
	assert.Equal(t, own.ID, faqs[0].ID)
	assert.Equal(t, global.ID, faqs[1].ID)

	_, err = f.svc.PublicFaqs(ctx, "draft.example.com")
	require.ErrorIs(t, err, tenant.ErrCustomerNotFound)

	updated, err := f.svc.UpdateFaq(ctx, global.ID, &FaqRequest{Question: "What is GST?", Answer: "Goods and Services Tax.", SortOrder: 0})
	require.NoError(t, err)
	assert.Equal(t, "Goods and Services Tax.", updated.Answer)

	list, err := f.svc.ListFaqs(ctx, &types.ScanRequest{})
	require.NoError(t, err)
	require.EqualValues(t, 3, list.Total)

	require.NoError(t, f.svc.DeleteFaq(ctx, own.ID))
	require.ErrorIs(t, f.svc.DeleteFaq(ctx, own.ID), ErrFaqNotFound)
	_, err = f.svc.UpdateFaq(ctx, own.ID, &FaqRequest{Question: "q", Answer: "a"})
	require.ErrorIs(t, err, ErrFaqNotFound)
}

func TestSiteContent(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	empty, err := f.svc.GetSite(ctx, f.live.ID)
	require.NoError(t, err)
	require.Empty(t, empty.Gallery.Data())

	_, err = f.svc.UpdateSite(ctx, f.live.ID, &SiteContentRequest{
		Socials:      []models.SocialLink{{Name: "instagram", URL: "https://instagram.com/acme"}},
		Gallery:      []models.Image{{Path: "/gallery/1.jpg", Caption: "Hall"}, {Path: "https://other.test/2.jpg"}},
		Testimonials: []models.Testimonial{{Author: "Ravi", Quote: "Great food", Picture: "people/ravi.jpg"}},
	})
	require.NoError(t, err)

	stored, err := f.svc.GetSite(ctx, f.live.ID)
	require.NoError(t, err)
	assert.Equal(t, "/gallery/1.jpg", stored.Gallery.Data()[0].Path, "admin view keeps relative paths")

	site, err := f.svc.PublicSite(ctx, "acme.example.com")
	require.NoError(t, err)
	assert.Equal(t, "Acme", site.CompanyName)
	assert.Equal(t, "https://cdn.example.com/assets/logos/acme.png", site.Logo)
	assert.Equal(t, "https://cdn.example.com/assets/gallery/1.jpg", site.Gallery[0].Path)
	assert.Equal(t, "https://other.test/2.jpg", site.Gallery[1].Path)
	assert.Equal(t, "https://cdn.example.com/assets/people/ravi.jpg", site.Testimonials[0].Picture)
	assert.NotNil(t, site.Sliders)

	_, err = f.svc.UpdateSite(ctx, "missing", &SiteContentRequest{})
	require.ErrorIs(t, err, tenant.ErrCustomerNotFound)
}

func TestSubmitEnquiry(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	e, err := f.svc.SubmitEnquiry(ctx, "acme.example.com", &EnquiryRequest{
		Name: " Priya ", Email: "priya@example.com", Subject: "Wedding", Message: "Need catering for 200 <guests>",
	})
	require.NoError(t, err)
	assert.Equal(t, "Priya", e.Name)
	assert.Equal(t, f.live.ID, e.CustomerID)
	f.svc.Wait()

	require.Len(t, f.mailer.sent, 1)
	msg := f.mailer.sent[0]
	assert.Equal(t, []string{"owner@acme.test"}, msg.To)
	assert.Equal(t, "priya@example.com", msg.ReplyTo)
	assert.Equal(t, "New enquiry from Priya: Wedding", msg.Subject)
	assert.Contains(t, msg.HTML, "200 &lt;guests&gt;")

	var entry models.NotificationLog
	require.NoError(t, f.db.Where("kind = ?", types.NotificationKindEnquiry).First(&entry).Error)
	assert.Equal(t, types.NotificationStatusSent, entry.Status)

	list, err := f.svc.ListEnquiries(ctx, nil)
	require.NoError(t, err)
	assert.EqualValues(t, 1, list.Total)

	_, err = f.svc.SubmitEnquiry(ctx, "draft.example.com", &EnquiryRequest{Name: "x", Email: "x@y.z", Message: "hi"})
	require.ErrorIs(t, err, tenant.ErrCustomerNotFound)
}

func TestSubmitEnquiryMailFailureIsNotReturned(t *testing.T) {
	f := newFixture(t)
	f.mailer.err = errors.New("relay down")

	_, err := f.svc.SubmitEnquiry(context.Background(), "acme.example.com", &EnquiryRequest{Name: "A", Email: "a@b.c", Message: "hello"})
	require.NoError(t, err)
	f.svc.Wait()

	var entry models.NotificationLog
	require.NoError(t, f.db.First(&entry).Error)
	assert.Equal(t, types.NotificationStatusFailed, entry.Status)
	assert.Equal(t, "relay down", entry.Error)
}
