package handlers

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fatflowers/console/internal/app/service/invoice"
	subsvc "github.com/fatflowers/console/internal/app/service/subscription"
	"github.com/fatflowers/console/internal/platform/mail"
	"github.com/fatflowers/console/pkg/response"
)

type stubInvoices struct{}

func (stubInvoices) View(_ context.Context, id string) (*invoice.View, error) {
	if id != "sub-1" {
		return nil, fmt.Errorf("%w: %s", subsvc.ErrNotFound, id)
	}
	return &invoice.View{SubscriptionID: id, OrderID: "ORD-1", AmountInWords: "Five Thousand Rupees Only"}, nil
}

func (stubInvoices) PDF(_ context.Context, id string) (*invoice.Document, error) {
	return &invoice.Document{FileName: "Invoice-ORD-1.pdf", Body: []byte("%PDF-1.3 stub")}, nil
}

func (stubInvoices) PDFByToken(_ context.Context, token string) (*invoice.Document, error) {
	if token != "good" {
		return nil, invoice.ErrInvalidToken
	}
	return &invoice.Document{FileName: "Invoice-ORD-1.pdf", Body: []byte("%PDF-1.3 stub")}, nil
}

func (stubInvoices) SendInvoice(_ context.Context, id string) (*invoice.SendResult, error) {
	if id == "no-mail" {
		return nil, mail.ErrNoRecipient
	}
	return &invoice.SendResult{Result: "true", Recipient: "billing@acme.test"}, nil
}

func newInvoiceRouter() http.Handler {
	r := newTestRouter()
	RegisterSubscriptionRoutes(r.Group("/api/v1/admin/subscription"), newStubSubscriptions(), stubInvoices{})
	RegisterPublicInvoiceRoutes(r.Group("/api/v1/public"), stubInvoices{})
	return r
}

func TestApiInvoiceView(t *testing.T) {
	r := newInvoiceRouter()

	_, env := doJSON(t, r, http.MethodGet, "/api/v1/admin/subscription/invoice?id=sub-1", nil)
	require.Equal(t, int(response.APIResponseCodeOK), env.Code)
	assert.Contains(t, string(env.Data), "Five Thousand Rupees Only")

	_, env = doJSON(t, r, http.MethodGet, "/api/v1/admin/subscription/invoice?id=nope", nil)
	assert.Equal(t, int(response.APIResponseCodeNotFound), env.Code)

	_, env = doJSON(t, r, http.MethodGet, "/api/v1/admin/subscription/invoice", nil)
	assert.Equal(t, int(response.APIResponseCodeBadRequest), env.Code)
}

func TestApiInvoicePDF_Headers(t *testing.T) {
	r := newInvoiceRouter()
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/admin/subscription/invoice/pdf?id=sub-1", nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, invoice.PDFContentType, w.Header().Get("Content-Type"))
	assert.Equal(t, `attachment; filename="Invoice-ORD-1.pdf"`, w.Header().Get("Content-Disposition"))
	assert.Equal(t, "%PDF-1.3 stub", w.Body.String())
}

func TestApiPublicInvoice(t *testing.T) {
	r := newInvoiceRouter()

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/public/invoice/good", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, invoice.PDFContentType, w.Header().Get("Content-Type"))

	_, env := doJSON(t, r, http.MethodGet, "/api/v1/public/invoice/forged", nil)
	assert.Equal(t, int(response.APIResponseCodeNotFound), env.Code)
}

func TestApiSendInvoice(t *testing.T) {
	r := newInvoiceRouter()

	_, env := doJSON(t, r, http.MethodPost, "/api/v1/admin/subscription/send_invoice", map[string]string{"id": "sub-1"})
	require.Equal(t, int(response.APIResponseCodeOK), env.Code)
	assert.Contains(t, string(env.Data), `"result":"true"`)

	_, env = doJSON(t, r, http.MethodPost, "/api/v1/admin/subscription/send_invoice", map[string]string{"id": "no-mail"})
	assert.Equal(t, int(response.APIResponseCodeBadRequest), env.Code)
}
