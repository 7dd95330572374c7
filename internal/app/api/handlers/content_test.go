package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/fatflowers/console/internal/app/api/middleware"
	"github.com/fatflowers/console/internal/app/service/content"
	"github.com/fatflowers/console/internal/app/service/notification_log"
	"github.com/fatflowers/console/internal/app/service/tenant"
	"github.com/fatflowers/console/internal/models"
	"github.com/fatflowers/console/internal/platform/mail"
	"github.com/fatflowers/console/internal/testutil"
	"github.com/fatflowers/console/pkg/config"
	"github.com/fatflowers/console/pkg/response"
)

func newContentRouter(t *testing.T) (http.Handler, *models.Customer) {
	t.Helper()
	ctx := context.Background()
	db := testutil.NewTestDB(t)
	log := zap.NewNop().Sugar()
	tenants := tenant.NewService(db, log)

	c, err := tenants.Create(ctx, &tenant.CustomerRequest{CompanyName: "Acme", Email: "owner@acme.test", Domain: "acme.example.com"})
	require.NoError(t, err)
	c, err = tenants.Approve(ctx, c.ID)
	require.NoError(t, err)

	svc := content.NewService(&config.Config{}, db, log, tenants, mail.NewLog(log), notification_log.New(db, log))
	t.Cleanup(svc.Wait)

	r := newTestRouter()
	admin := r.Group("/api/v1/admin")
	RegisterFaqRoutes(admin.Group("/faq"), svc)
	RegisterContentRoutes(admin.Group("/content"), svc)
	RegisterEnquiryRoutes(admin.Group("/enquiry"), svc)
	site := r.Group("/api/v1/site")
	site.Use(middleware.SiteDomainMiddleware())
	RegisterSiteRoutes(site, svc)
	return r, c
}

func TestSiteFaqs_ByDomain(t *testing.T) {
	r, c := newContentRouter(t)

	_, env := doJSON(t, r, http.MethodPost, "/api/v1/admin/faq/create", map[string]any{"c_id": c.ID, "question": "Refunds?", "answer": "Within 7 days.", "sort_order": 1})
	require.Equal(t, int(response.APIResponseCodeOK), env.Code, string(env.Data))
	_, env = doJSON(t, r, http.MethodPost, "/api/v1/admin/faq/create", map[string]any{"question": "What is GST?", "answer": "Tax.", "sort_order": 2})
	require.Equal(t, int(response.APIResponseCodeOK), env.Code, string(env.Data))

	_, env = doJSON(t, r, http.MethodGet, "/api/v1/site/faq?domain=acme.example.com", nil)
	require.Equal(t, int(response.APIResponseCodeOK), env.Code, string(env.Data))
	var faqs []models.Faq
	require.NoError(t, json.Unmarshal(env.Data, &faqs))
	require.Len(t, faqs, 2)
	assert.Equal(t, "Refunds?", faqs[0].Question)

	_, env = doJSON(t, r, http.MethodGet, "/api/v1/site/faq?domain=unknown.example.com", nil)
	assert.Equal(t, int(response.APIResponseCodeNotFound), env.Code)
}

func TestAdminFaq_Validation(t *testing.T) {
	r, _ := newContentRouter(t)

	_, env := doJSON(t, r, http.MethodPost, "/api/v1/admin/faq/create", map[string]any{"question": "No answer"})
	assert.Equal(t, int(response.APIResponseCodeBadRequest), env.Code)

	_, env = doJSON(t, r, http.MethodPost, "/api/v1/admin/faq/delete", map[string]any{"id": "00000000-0000-0000-0000-000000000000"})
	assert.Equal(t, int(response.APIResponseCodeNotFound), env.Code)
}

func TestSiteEnquiry(t *testing.T) {
	r, c := newContentRouter(t)

	_, env := doJSON(t, r, http.MethodPost, "/api/v1/site/enquiry?domain=acme.example.com", map[string]any{"name": "Ravi", "email": "not-an-email", "message": "hi"})
	assert.Equal(t, int(response.APIResponseCodeBadRequest), env.Code)

	_, env = doJSON(t, r, http.MethodPost, "/api/v1/site/enquiry?domain=acme.example.com", map[string]any{"name": "Ravi", "email": "ravi@example.com", "message": "Need 20 seats"})
	require.Equal(t, int(response.APIResponseCodeOK), env.Code, string(env.Data))

	_, env = doJSON(t, r, http.MethodPost, "/api/v1/admin/enquiry/list", map[string]any{"filters": []map[string]any{{"field": "c_id", "operator": "eq", "values": []string{c.ID}}}})
	require.Equal(t, int(response.APIResponseCodeOK), env.Code, string(env.Data))
	assert.Contains(t, string(env.Data), `"total":1`)
}

func TestAdminSiteContent(t *testing.T) {
	r, c := newContentRouter(t)

	_, env := doJSON(t, r, http.MethodPost, "/api/v1/admin/content/update", map[string]any{
		"c_id":    c.ID,
		"socials": []map[string]string{{"name": "x", "url": "https://x.com/acme"}},
	})
	require.Equal(t, int(response.APIResponseCodeOK), env.Code, string(env.Data))

	_, env = doJSON(t, r, http.MethodGet, "/api/v1/admin/content/get?c_id="+c.ID, nil)
	require.Equal(t, int(response.APIResponseCodeOK), env.Code, string(env.Data))
	assert.Contains(t, string(env.Data), "https://x.com/acme")

	_, env = doJSON(t, r, http.MethodGet, "/api/v1/admin/content/get", nil)
	assert.Equal(t, int(response.APIResponseCodeBadRequest), env.Code)
}
