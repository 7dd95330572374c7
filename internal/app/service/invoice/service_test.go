package invoice

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/fatflowers/console/internal/app/service/catalog"
	"github.com/fatflowers/console/internal/app/service/notification_log"
	"github.com/fatflowers/console/internal/app/service/subscription"
	"github.com/fatflowers/console/internal/app/service/tenant"
	"github.com/fatflowers/console/internal/models"
	"github.com/fatflowers/console/internal/platform/cache"
	"github.com/fatflowers/console/internal/platform/mail"
	"github.com/fatflowers/console/internal/testutil"
	"github.com/fatflowers/console/pkg/config"
	"github.com/fatflowers/console/pkg/types"
)

type fakeStore struct {
	mu   sync.Mutex
	puts map[string][]byte
	err  error
}

func (s *fakeStore) Put(_ context.Context, key string, body []byte, _ string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return "", s.err
	}
	if s.puts == nil {
		s.puts = map[string][]byte{}
	}
	s.puts[key] = body
	return "mem://" + key, nil
}

type fakeMailer struct {
	sent []*mail.Message
	err  error
}

func (m *fakeMailer) Send(_ context.Context, msg *mail.Message) error {
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, msg)
	return nil
}

type fixture struct {
	svc       *Service
	db        *gorm.DB
	subs      *subscription.Service
	customers *tenant.Service
	sub       *models.Subscription
	store     *fakeStore
	mailer    *fakeMailer
	redis     *miniredis.Miniredis
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()
	db := testutil.NewTestDB(t)
	log := zap.NewNop().Sugar()
	cfg := &config.Config{
		Server:    config.ServerConfig{PublicBaseURL: "https://console.example.com/"},
		Storage:   config.StorageConfig{Prefix: "invoices"},
		Billing:   config.BillingConfig{Timezone: "Asia/Kolkata", Seller: config.SellerConfig{Name: "Console Software", Email: "billing@console.test"}},
		PlanCache: config.PlanCacheConfig{Size: 8, TTL: time.Minute},
	}

	plans := catalog.NewService(cfg, db, log)
	customers := tenant.NewService(db, log)
	subs := subscription.NewService(cfg, db, log, plans, customers, nil)
	t.Cleanup(subs.Wait)

	plan, err := plans.CreatePlan(ctx, &catalog.PlanRequest{Name: "Gold", Price: 1000, DefaultUsers: 5})
	require.NoError(t, err)
	customer, err := customers.Create(ctx, &tenant.CustomerRequest{
		CompanyName: "Acme Caterers", Email: "owner@acme.test", Domain: "acme.example.com", GSTType: "INTRA",
	})
	require.NoError(t, err)
	sub, err := subs.Create(ctx, &subscription.UpsertRequest{
		QuoteRequest: subscription.QuoteRequest{PlanID: plan.ID, CustomerID: customer.ID, Discount: 500, DiscountType: "Amount"},
		Created:      "2024-01-15",
	})
	require.NoError(t, err)

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	links, err := NewLinkSigner("test-secret", time.Hour)
	require.NoError(t, err)

	f := &fixture{db: db, subs: subs, customers: customers, sub: sub, store: &fakeStore{}, mailer: &fakeMailer{}, redis: mr}
	f.svc = &Service{
		cfg:           cfg,
		log:           log,
		subscriptions: subs,
		plans:         plans,
		customers:     customers,
		cache:         cache.NewRedis(client, "test:", time.Hour),
		store:         f.store,
		mailer:        f.mailer,
		notifications: notification_log.New(db, log),
		links:         links,
	}
	return f
}

func TestServiceView(t *testing.T) {
	f := newFixture(t)
	v, err := f.svc.View(context.Background(), f.sub.ID)
	require.NoError(t, err)
	assert.Equal(t, "Console Software", v.Seller.Name)
	assert.Equal(t, "Acme Caterers", v.BillTo.Name)
	assert.Equal(t, "Gold", v.Item.PlanName)
	assert.Equal(t, int64(5310), v.TotalOrderValue)

	_, err = f.svc.View(context.Background(), "missing")
	require.ErrorIs(t, err, subscription.ErrNotFound)
}

func TestServiceViewAfterCustomerDeleted(t *testing.T) {
	f := newFixture(t)
	// Bypass the tenant service, which refuses to delete customers with subscriptions.
	require.NoError(t, f.db.Delete(&models.Customer{}, "id = ?", f.sub.CustomerID).Error)

	v, err := f.svc.View(context.Background(), f.sub.ID)
	require.NoError(t, err)
	assert.Equal(t, "Acme Caterers", v.BillTo.Name)
	assert.Equal(t, "owner@acme.test", v.BillTo.Email)
}

func TestServicePDFCached(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	doc, err := f.svc.PDF(ctx, f.sub.ID)
	require.NoError(t, err)
	require.Equal(t, "invoice"+f.sub.OrderID+".pdf", doc.FileName)
	require.True(t, strings.HasPrefix(string(doc.Body), "%PDF-"))
	require.Len(t, f.redis.Keys(), 1)

	require.NoError(t, f.redis.Set(f.redis.Keys()[0], "cached"))
	doc, err = f.svc.PDF(ctx, f.sub.ID)
	require.NoError(t, err)
	require.Equal(t, "cached", string(doc.Body))

	// Any change to the subscription moves it to a new cache key.
	_, err = f.subs.SetPayment(ctx, f.sub.ID, types.PaymentPaid, "UPI")
	require.NoError(t, err)
	doc, err = f.svc.PDF(ctx, f.sub.ID)
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(string(doc.Body), "%PDF-"))
}

func TestServicePDFSellerChangeMissesCache(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.PDF(ctx, f.sub.ID)
	require.NoError(t, err)
	require.Len(t, f.redis.Keys(), 1)
	require.NoError(t, f.redis.Set(f.redis.Keys()[0], "cached"))

	f.svc.cfg.Billing.Seller.Address = "12 MG Road, Bengaluru"
	doc, err := f.svc.PDF(ctx, f.sub.ID)
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(string(doc.Body), "%PDF-"))
	require.Len(t, f.redis.Keys(), 2)
}

func TestServicePDFByToken(t *testing.T) {
	f := newFixture(t)
	link, _, err := f.svc.Link(f.sub.ID)
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(link, "https://console.example.com/api/v1/public/invoice/"))

	token := strings.TrimPrefix(link, "https://console.example.com/api/v1/public/invoice/")
	doc, err := f.svc.PDFByToken(context.Background(), token)
	require.NoError(t, err)
	require.NotEmpty(t, doc.Body)

	_, err = f.svc.PDFByToken(context.Background(), token+"x")
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestSendInvoice(t *testing.T) {
	f := newFixture(t)
	res, err := f.svc.SendInvoice(context.Background(), f.sub.ID)
	require.NoError(t, err)
	require.Equal(t, "true", res.Result)
	require.Equal(t, "owner@acme.test", res.Recipient)
	require.Equal(t, "mem://invoices/invoice"+f.sub.OrderID+".pdf", res.ArchiveURL)
	require.Contains(t, f.store.puts, "invoices/invoice"+f.sub.OrderID+".pdf")

	require.Len(t, f.mailer.sent, 1)
	msg := f.mailer.sent[0]
	require.Equal(t, []string{"owner@acme.test"}, msg.To)
	require.Equal(t, "billing@console.test", msg.ReplyTo)
	require.Contains(t, msg.Subject, f.sub.OrderID)
	require.Contains(t, msg.HTML, "Rs. 5,310.00")
	require.Contains(t, msg.HTML, "Five Thousand Three Hundred Ten Rupees Only")
	require.Contains(t, msg.HTML, "https://console.example.com/api/v1/public/invoice/")

	var logs []models.NotificationLog
	require.NoError(t, f.db.Find(&logs).Error)
	require.Len(t, logs, 1)
	require.Equal(t, types.NotificationStatusSent, logs[0].Status)
	require.Equal(t, f.sub.ID, logs[0].RefID)
}

func TestSendInvoiceFailures(t *testing.T) {
	f := newFixture(t)
	f.store.err = errors.New("bucket gone")
	f.mailer.err = errors.New("relay refused")

	_, err := f.svc.SendInvoice(context.Background(), f.sub.ID)
	require.ErrorContains(t, err, "relay refused")

	var entry models.NotificationLog
	require.NoError(t, f.db.First(&entry).Error)
	require.Equal(t, types.NotificationStatusFailed, entry.Status)
	require.Equal(t, "relay refused", entry.Error)

	_, err = f.svc.SendInvoice(context.Background(), "missing")
	require.ErrorIs(t, err, subscription.ErrNotFound)
}

func TestSendInvoiceNoRecipient(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.db.Model(&models.Customer{}).Where("id = ?", f.sub.CustomerID).Update("email", "").Error)
	require.NoError(t, f.db.Model(&models.Subscription{}).Where("id = ?", f.sub.ID).
		Update("customer_snapshot", `{"company_name":"Acme Caterers"}`).Error)

	_, err := f.svc.SendInvoice(context.Background(), f.sub.ID)
	require.ErrorIs(t, err, mail.ErrNoRecipient)
	require.Empty(t, f.mailer.sent)
}
