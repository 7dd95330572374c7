package handlers

import (
	"github.com/fatflowers/console/internal/app/service/content"
	"github.com/fatflowers/console/internal/app/service/invoice"
	"github.com/fatflowers/console/internal/app/service/statistics"
	subsvc "github.com/fatflowers/console/internal/app/service/subscription"
	"github.com/fatflowers/console/internal/models"
	"github.com/fatflowers/console/pkg/response"
	"github.com/fatflowers/console/pkg/types"
)

// Envelopes below exist for swagger only; handlers reply with response.APIResponse.

// RespOK is a generic OK envelope for endpoints returning no specific data.
type RespOK struct {
	Code    response.APIResponseCode `json:"code"`
	Message string                   `json:"message"`
	Data    interface{}              `json:"data"`
}

type RespQuote struct {
	Code    response.APIResponseCode `json:"code"`
	Message string                   `json:"message"`
	Data    subsvc.QuoteResponse     `json:"data"`
}

type RespSubscription struct {
	Code    response.APIResponseCode `json:"code"`
	Message string                   `json:"message"`
	Data    SubscriptionItem         `json:"data"`
}

type RespListSubscriptions struct {
	Code    response.APIResponseCode  `json:"code"`
	Message string                    `json:"message"`
	Data    ListSubscriptionsResponse `json:"data"`
}

type RespInvoiceView struct {
	Code    response.APIResponseCode `json:"code"`
	Message string                   `json:"message"`
	Data    invoice.View             `json:"data"`
}

type RespSendInvoice struct {
	Code    response.APIResponseCode `json:"code"`
	Message string                   `json:"message"`
	Data    invoice.SendResult       `json:"data"`
}

type RespPlan struct {
	Code    response.APIResponseCode `json:"code"`
	Message string                   `json:"message"`
	Data    models.Plan              `json:"data"`
}

type RespListPlans struct {
	Code    response.APIResponseCode          `json:"code"`
	Message string                            `json:"message"`
	Data    types.ScanResponse[*models.Plan] `json:"data"`
}

type RespActivePlans struct {
	Code    response.APIResponseCode `json:"code"`
	Message string                   `json:"message"`
	Data    []models.Plan            `json:"data"`
}

type RespCustomer struct {
	Code    response.APIResponseCode `json:"code"`
	Message string                   `json:"message"`
	Data    models.Customer          `json:"data"`
}

type RespListCustomers struct {
	Code    response.APIResponseCode              `json:"code"`
	Message string                                `json:"message"`
	Data    types.ScanResponse[*models.Customer] `json:"data"`
}

type RespFaq struct {
	Code    response.APIResponseCode `json:"code"`
	Message string                   `json:"message"`
	Data    models.Faq               `json:"data"`
}

type RespListFaqs struct {
	Code    response.APIResponseCode         `json:"code"`
	Message string                           `json:"message"`
	Data    types.ScanResponse[*models.Faq] `json:"data"`
}

type RespPublicFaqs struct {
	Code    response.APIResponseCode `json:"code"`
	Message string                   `json:"message"`
	Data    []models.Faq             `json:"data"`
}

type RespSiteContent struct {
	Code    response.APIResponseCode `json:"code"`
	Message string                   `json:"message"`
	Data    models.SiteContent       `json:"data"`
}

type RespPublicSite struct {
	Code    response.APIResponseCode `json:"code"`
	Message string                   `json:"message"`
	Data    content.PublicSite       `json:"data"`
}

type RespListEnquiries struct {
	Code    response.APIResponseCode             `json:"code"`
	Message string                               `json:"message"`
	Data    types.ScanResponse[*models.Enquiry] `json:"data"`
}

type RespStatistic struct {
	Code    response.APIResponseCode      `json:"code"`
	Message string                        `json:"message"`
	Data    statistics.StatisticResponse `json:"data"`
}

type RespListNotifications struct {
	Code    response.APIResponseCode                     `json:"code"`
	Message string                                       `json:"message"`
	Data    types.ScanResponse[*models.NotificationLog] `json:"data"`
}
