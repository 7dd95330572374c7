package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/fatflowers/console/internal/app/service/invoice"
	"github.com/fatflowers/console/pkg/response"
)

type InvoiceService interface {
	View(ctx context.Context, id string) (*invoice.View, error)
	PDF(ctx context.Context, id string) (*invoice.Document, error)
	PDFByToken(ctx context.Context, token string) (*invoice.Document, error)
	SendInvoice(ctx context.Context, id string) (*invoice.SendResult, error)
}

func writePDF(c *gin.Context, doc *invoice.Document) {
	c.Header("Content-Disposition", `attachment; filename="`+doc.FileName+`"`)
	c.Data(http.StatusOK, invoice.PDFContentType, doc.Body)
}

// @Summary      Invoice view
// @Description  Returns the invoice lines, totals and amount in words.
// @Tags         Invoice
// @Produce      json
// @Param        id query string true "Subscription id"
// @Success      200  {object}  handlers.RespInvoiceView
// @Router       /api/v1/admin/subscription/invoice [get]
func ApiInvoiceView(svc InvoiceService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req IDRequest
		if err := c.ShouldBindQuery(&req); err != nil {
			writeBadRequest(c, err)
			return
		}
		v, err := svc.View(c.Request.Context(), req.ID)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, response.OKT(v))
	}
}

// @Summary      Download invoice PDF
// @Tags         Invoice
// @Produce      application/pdf
// @Param        id query string true "Subscription id"
// @Success      200  {file}  file
// @Router       /api/v1/admin/subscription/invoice/pdf [get]
func ApiInvoicePDF(svc InvoiceService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req IDRequest
		if err := c.ShouldBindQuery(&req); err != nil {
			writeBadRequest(c, err)
			return
		}
		doc, err := svc.PDF(c.Request.Context(), req.ID)
		if err != nil {
			writeError(c, err)
			return
		}
		writePDF(c, doc)
	}
}

// @Summary      Email invoice
// @Description  Emails the customer a signed download link and archives the PDF. data.result is "true" on success.
// @Tags         Invoice
// @Accept       json
// @Produce      json
// @Param        request body handlers.IDRequest true "Subscription id"
// @Success      200  {object}  handlers.RespSendInvoice
// @Router       /api/v1/admin/subscription/send_invoice [post]
func ApiSendInvoice(svc InvoiceService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req IDRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			writeBadRequest(c, err)
			return
		}
		res, err := svc.SendInvoice(c.Request.Context(), req.ID)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, response.OKT(res))
	}
}

// @Summary      Public invoice download
// @Description  Serves the PDF behind a signed link sent by email.
// @Tags         Public
// @Produce      application/pdf
// @Param        token path string true "Signed link token"
// @Success      200  {file}  file
// @Router       /api/v1/public/invoice/{token} [get]
func ApiPublicInvoice(svc InvoiceService) gin.HandlerFunc {
	return func(c *gin.Context) {
		doc, err := svc.PDFByToken(c.Request.Context(), c.Param("token"))
		if err != nil {
			writeError(c, err)
			return
		}
		writePDF(c, doc)
	}
}

func RegisterPublicInvoiceRoutes(r gin.IRouter, svc InvoiceService) {
	r.GET("/invoice/:token", ApiPublicInvoice(svc))
}
