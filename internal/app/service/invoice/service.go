package invoice

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"hash/fnv"
	"strconv"
	"strings"
	"time"

	"go.uber.org/fx"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/fatflowers/console/internal/app/service/catalog"
	"github.com/fatflowers/console/internal/app/service/notification_log"
	"github.com/fatflowers/console/internal/app/service/subscription"
	"github.com/fatflowers/console/internal/app/service/tenant"
	"github.com/fatflowers/console/internal/models"
	"github.com/fatflowers/console/internal/platform/cache"
	"github.com/fatflowers/console/internal/platform/mail"
	"github.com/fatflowers/console/internal/platform/storage"
	"github.com/fatflowers/console/pkg/config"
	"github.com/fatflowers/console/pkg/logctx"
	"github.com/fatflowers/console/pkg/metrics"
	"github.com/fatflowers/console/pkg/types"
)

const (
	PDFContentType = "application/pdf"
	pdfCachePrefix = "invoice:pdf:"
	PublicLinkPath = "/api/v1/public/invoice/"
)

var Module = fx.Options(
	fx.Provide(NewLinkSignerFromConfig),
	fx.Provide(NewService),
)

type SubscriptionReader interface {
	GetSubscription(ctx context.Context, id string) (*models.Subscription, error)
}

// NotificationRecorder persists the lifecycle of an outgoing email.
type NotificationRecorder interface {
	Received(ctx context.Context, kind types.NotificationKind, refID, recipient string, data map[string]any) (*models.NotificationLog, error)
	Finish(ctx context.Context, entry *models.NotificationLog, sendErr error)
}

type Service struct {
	cfg           *config.Config
	log           *zap.SugaredLogger
	subscriptions SubscriptionReader
	plans         subscription.PlanReader
	customers     subscription.CustomerReader
	cache         cache.Cache
	store         storage.Store
	mailer        mail.Sender
	notifications NotificationRecorder
	links         *LinkSigner
	metrics       *metrics.Business
}

type Params struct {
	fx.In

	Config        *config.Config
	Log           *zap.SugaredLogger
	Subscriptions *subscription.Service
	Plans         *catalog.Service
	Customers     *tenant.Service
	Cache         cache.Cache
	Store         storage.Store
	Mailer        mail.Sender
	Notifications *notification_log.Service
	Links         *LinkSigner
	Metrics       *metrics.Business
}

func NewService(p Params) *Service {
	return &Service{
		cfg:           p.Config,
		log:           p.Log,
		subscriptions: p.Subscriptions,
		plans:         p.Plans,
		customers:     p.Customers,
		cache:         p.Cache,
		store:         p.Store,
		mailer:        p.Mailer,
		notifications: p.Notifications,
		links:         p.Links,
		metrics:       p.Metrics,
	}
}

func NewLinkSignerFromConfig(cfg *config.Config, log *zap.SugaredLogger) (*LinkSigner, error) {
	if cfg.InvoiceLink.Secret == "" {
		log.Warnw("invoice link secret not configured, links will not survive a restart")
	}
	return NewLinkSigner(cfg.InvoiceLink.Secret, cfg.InvoiceLink.TTL)
}

// Document is a rendered invoice file.
type Document struct {
	FileName string
	Body     []byte
}

// SendResult is returned by SendInvoice. Result is the string "true" on success.
type SendResult struct {
	Result     string    `json:"result"`
	Recipient  string    `json:"recipient"`
	ArchiveURL string    `json:"archive_url,omitempty"`
	LinkExpiry time.Time `json:"link_expiry"`
}

// View loads the subscription and builds its invoice. Plan and customer are
// fetched concurrently; if either no longer exists the stored snapshot is used.
func (s *Service) View(ctx context.Context, id string) (*View, error) {
	sub, err := s.subscriptions.GetSubscription(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.view(ctx, sub)
}

func (s *Service) view(ctx context.Context, sub *models.Subscription) (*View, error) {
	var (
		plan     *models.Plan
		customer *models.Customer
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		p, err := s.plans.GetPlan(gctx, sub.PlanID)
		if errors.Is(err, catalog.ErrPlanNotFound) {
			return nil
		}
		plan = p
		return err
	})
	g.Go(func() error {
		c, err := s.customers.GetCustomer(gctx, sub.CustomerID)
		if errors.Is(err, tenant.ErrCustomerNotFound) {
			return nil
		}
		customer = c
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	v, err := BuildView(sub, plan, customer)
	if err != nil {
		return nil, err
	}
	v.Seller = SellerParty(s.cfg.Billing.Seller)
	// Email follows the live record so resends reach a corrected address.
	if customer != nil && customer.Email != "" {
		v.BillTo.Email = customer.Email
	}
	return v, nil
}

// PDF renders the invoice, reusing a cached copy while the subscription is unchanged.
func (s *Service) PDF(ctx context.Context, id string) (*Document, error) {
	sub, err := s.subscriptions.GetSubscription(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.pdf(ctx, sub)
}

// PDFByToken serves a signed public link.
func (s *Service) PDFByToken(ctx context.Context, token string) (*Document, error) {
	id, err := s.links.Verify(token)
	if err != nil {
		return nil, err
	}
	return s.PDF(ctx, id)
}

func (s *Service) pdf(ctx context.Context, sub *models.Subscription) (*Document, error) {
	l := logctx.FromCtx(ctx, s.log)
	key := pdfCacheKey(sub, s.cfg.Billing.Seller)
	doc := &Document{FileName: sub.InvoiceFileName() + ".pdf"}

	body, ok, err := s.cache.Get(ctx, key)
	if err != nil {
		l.Warnw("invoice cache read failed", "id", sub.ID, "err", err)
	}
	if ok {
		doc.Body = body
		return doc, nil
	}

	start := time.Now()
	v, err := s.view(ctx, sub)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	err = WritePDF(&buf, v)
	s.metrics.ObserveProcess("invoice_pdf", start, err)
	if err != nil {
		return nil, err
	}
	doc.Body = buf.Bytes()

	if err := s.cache.Set(ctx, key, doc.Body, 0); err != nil {
		l.Warnw("invoice cache write failed", "id", sub.ID, "err", err)
	}
	return doc, nil
}

// Link returns a signed public download URL for the invoice.
func (s *Service) Link(id string) (string, time.Time, error) {
	token, exp, err := s.links.Sign(id)
	if err != nil {
		return "", time.Time{}, err
	}
	return strings.TrimRight(s.cfg.Server.PublicBaseURL, "/") + PublicLinkPath + token, exp, nil
}

// SendInvoice archives the PDF and emails the customer a download link. The
// attempt is recorded in the notification log whatever the outcome.
func (s *Service) SendInvoice(ctx context.Context, id string) (*SendResult, error) {
	l := logctx.FromCtx(ctx, s.log)
	start := time.Now()

	sub, err := s.subscriptions.GetSubscription(ctx, id)
	if err != nil {
		return nil, err
	}
	v, err := s.view(ctx, sub)
	if err != nil {
		return nil, err
	}
	if v.BillTo.Email == "" {
		s.metrics.InvoiceDispatched(mail.ErrNoRecipient)
		return nil, fmt.Errorf("send invoice %s: %w", v.OrderID, mail.ErrNoRecipient)
	}
	doc, err := s.pdf(ctx, sub)
	if err != nil {
		return nil, err
	}

	res := &SendResult{Recipient: v.BillTo.Email}
	archiveKey := storage.ObjectKey(s.cfg.Storage.Prefix, doc.FileName)
	if res.ArchiveURL, err = s.store.Put(ctx, archiveKey, doc.Body, PDFContentType); err != nil {
		// The email carries a link rendered on demand, so a missing archive copy is not fatal.
		l.Errorw("invoice archive failed", "id", sub.ID, "key", archiveKey, "err", err)
	}

	link, exp, err := s.Link(sub.ID)
	if err != nil {
		return nil, err
	}
	res.LinkExpiry = exp
	html, err := renderEmail(v, link, exp)
	if err != nil {
		return nil, err
	}

	entry, err := s.notifications.Received(ctx, types.NotificationKindInvoice, sub.ID, v.BillTo.Email, map[string]any{
		"order_id":    v.OrderID,
		"total":       strconv.FormatInt(v.TotalOrderValue, 10),
		"archive_url": res.ArchiveURL,
	})
	if err != nil {
		l.Errorw("failed to record invoice notification", "id", sub.ID, "err", err)
	}

	sendErr := s.mailer.Send(ctx, &mail.Message{
		To:      []string{v.BillTo.Email},
		ReplyTo: v.Seller.Email,
		Subject: emailSubject(v),
		HTML:    html,
	})
	s.notifications.Finish(ctx, entry, sendErr)
	s.metrics.InvoiceDispatched(sendErr)
	s.metrics.ObserveProcess("invoice_send", start, sendErr)
	if sendErr != nil {
		l.Errorw("invoice email failed", "id", sub.ID, "to", v.BillTo.Email, "err", sendErr)
		return nil, fmt.Errorf("send invoice %s: %w", v.OrderID, sendErr)
	}

	l.Infow("invoice sent", "id", sub.ID, "order_id", v.OrderID, "to", v.BillTo.Email)
	res.Result = "true"
	return res, nil
}

// pdfCacheKey changes whenever the subscription or the seller block printed on the invoice does.
func pdfCacheKey(sub *models.Subscription, seller config.SellerConfig) string {
	h := fnv.New32a()
	for _, f := range []string{seller.Name, seller.Address, seller.GSTIN, seller.Email, seller.Phone} {
		_, _ = h.Write([]byte(f))
		_, _ = h.Write([]byte{0})
	}
	return fmt.Sprintf("%s%s:%d:%08x", pdfCachePrefix, sub.ID, sub.UpdatedAt.UnixNano(), h.Sum32())
}
