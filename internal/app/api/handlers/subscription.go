package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/samber/lo"

	subsvc "github.com/fatflowers/console/internal/app/service/subscription"
	"github.com/fatflowers/console/internal/models"
	"github.com/fatflowers/console/pkg/response"
	"github.com/fatflowers/console/pkg/types"
)

// SubscriptionService is the part of subscription.Service the admin API uses.
type SubscriptionService interface {
	Quote(ctx context.Context, req *subsvc.QuoteRequest) (*subsvc.QuoteResponse, error)
	Create(ctx context.Context, req *subsvc.UpsertRequest) (*models.Subscription, error)
	Update(ctx context.Context, req *subsvc.UpsertRequest) (*models.Subscription, error)
	Get(ctx context.Context, id string) (*models.Subscription, error)
	List(ctx context.Context, req *subsvc.ListRequest) (*types.ScanResponse[*models.Subscription], error)
	SetStatus(ctx context.Context, id string, status types.ActiveStatus) (*models.Subscription, error)
	SetPayment(ctx context.Context, id string, paid types.PaymentStatus, detail string) (*models.Subscription, error)
	DisplayStatus(sub *models.Subscription) types.DisplayStatus
}

// SubscriptionItem is a subscription with its derived display status.
type SubscriptionItem struct {
	*models.Subscription
	DisplayStatus types.DisplayStatus `json:"display_status"`
}

type ListSubscriptionsResponse struct {
	Items []*SubscriptionItem `json:"items"`
	Total int64               `json:"total"`
}

type SetSubscriptionStatusRequest struct {
	ID     string              `json:"id" binding:"required"`
	Status *types.ActiveStatus `json:"status" binding:"required" swaggertype:"string" enums:"Y,N"`
}

type SetPaymentRequest struct {
	ID            string               `json:"id" binding:"required"`
	IsDrop        *types.PaymentStatus `json:"isdrop" binding:"required" swaggertype:"string" enums:"Y,N"`
	PaymentDetail string               `json:"payment_detail"`
}

func toSubscriptionItem(svc SubscriptionService, sub *models.Subscription) *SubscriptionItem {
	return &SubscriptionItem{Subscription: sub, DisplayStatus: svc.DisplayStatus(sub)}
}

// @Summary      Quote subscription
// @Description  Prices a subscription form without saving it.
// @Tags         Subscription
// @Accept       json
// @Produce      json
// @Param        request body subscription.QuoteRequest true "Subscription form"
// @Success      200  {object}  handlers.RespQuote
// @Router       /api/v1/admin/subscription/quote [post]
func ApiQuoteSubscription(svc SubscriptionService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req subsvc.QuoteRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			writeBadRequest(c, err)
			return
		}
		res, err := svc.Quote(c.Request.Context(), &req)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, response.OKT(res))
	}
}

// @Summary      Create subscription
// @Tags         Subscription
// @Accept       json
// @Produce      json
// @Param        request body subscription.UpsertRequest true "Subscription form"
// @Success      200  {object}  handlers.RespSubscription
// @Router       /api/v1/admin/subscription/create [post]
func ApiCreateSubscription(svc SubscriptionService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req subsvc.UpsertRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			writeBadRequest(c, err)
			return
		}
		sub, err := svc.Create(c.Request.Context(), &req)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, response.OKT(toSubscriptionItem(svc, sub)))
	}
}

// @Summary      Update subscription
// @Description  Reprices an existing subscription. Payment and status flags are kept.
// @Tags         Subscription
// @Accept       json
// @Produce      json
// @Param        request body subscription.UpsertRequest true "Subscription form with id"
// @Success      200  {object}  handlers.RespSubscription
// @Router       /api/v1/admin/subscription/update [post]
func ApiUpdateSubscription(svc SubscriptionService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req subsvc.UpsertRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			writeBadRequest(c, err)
			return
		}
		if req.ID == "" {
			c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeBadRequest, "missing id"))
			return
		}
		sub, err := svc.Update(c.Request.Context(), &req)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, response.OKT(toSubscriptionItem(svc, sub)))
	}
}

// @Summary      List subscriptions
// @Description  Paginated, filterable list. search matches order ids and company names.
// @Tags         Subscription
// @Accept       json
// @Produce      json
// @Param        request body subscription.ListRequest true "Filters, paging and sorting"
// @Success      200  {object}  handlers.RespListSubscriptions
// @Router       /api/v1/admin/subscription/list [post]
func ApiListSubscriptions(svc SubscriptionService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req subsvc.ListRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			writeBadRequest(c, err)
			return
		}
		res, err := svc.List(c.Request.Context(), &req)
		if err != nil {
			writeError(c, err)
			return
		}
		items := lo.Map(res.Items, func(sub *models.Subscription, _ int) *SubscriptionItem { return toSubscriptionItem(svc, sub) })
		c.JSON(http.StatusOK, response.OKT(&ListSubscriptionsResponse{Items: items, Total: res.Total}))
	}
}

// @Summary      Get subscription
// @Tags         Subscription
// @Produce      json
// @Param        id query string true "Subscription id"
// @Success      200  {object}  handlers.RespSubscription
// @Router       /api/v1/admin/subscription/get [get]
func ApiGetSubscription(svc SubscriptionService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req IDRequest
		if err := c.ShouldBindQuery(&req); err != nil {
			writeBadRequest(c, err)
			return
		}
		sub, err := svc.Get(c.Request.Context(), req.ID)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, response.OKT(toSubscriptionItem(svc, sub)))
	}
}

// @Summary      Set subscription status
// @Tags         Subscription
// @Accept       json
// @Produce      json
// @Param        request body handlers.SetSubscriptionStatusRequest true "id and status Y or N"
// @Success      200  {object}  handlers.RespSubscription
// @Router       /api/v1/admin/subscription/status [post]
func ApiSetSubscriptionStatus(svc SubscriptionService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req SetSubscriptionStatusRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			writeBadRequest(c, err)
			return
		}
		sub, err := svc.SetStatus(c.Request.Context(), req.ID, *req.Status)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, response.OKT(toSubscriptionItem(svc, sub)))
	}
}

// @Summary      Set payment status
// @Description  Marks a subscription paid (Y) or pending (N).
// @Tags         Subscription
// @Accept       json
// @Produce      json
// @Param        request body handlers.SetPaymentRequest true "id, isdrop Y or N and optional payment detail"
// @Success      200  {object}  handlers.RespSubscription
// @Router       /api/v1/admin/subscription/payment [post]
func ApiSetPayment(svc SubscriptionService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req SetPaymentRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			writeBadRequest(c, err)
			return
		}
		sub, err := svc.SetPayment(c.Request.Context(), req.ID, *req.IsDrop, req.PaymentDetail)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, response.OKT(toSubscriptionItem(svc, sub)))
	}
}

func RegisterSubscriptionRoutes(r gin.IRouter, svc SubscriptionService, inv InvoiceService) {
	r.POST("/quote", ApiQuoteSubscription(svc))
	r.POST("/create", ApiCreateSubscription(svc))
	r.POST("/update", ApiUpdateSubscription(svc))
	r.POST("/list", ApiListSubscriptions(svc))
	r.GET("/get", ApiGetSubscription(svc))
	r.POST("/status", ApiSetSubscriptionStatus(svc))
	r.POST("/payment", ApiSetPayment(svc))
	r.GET("/invoice", ApiInvoiceView(inv))
	r.GET("/invoice/pdf", ApiInvoicePDF(inv))
	r.POST("/send_invoice", ApiSendInvoice(inv))
}
