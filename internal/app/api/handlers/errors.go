package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/fatflowers/console/internal/app/service/catalog"
	"github.com/fatflowers/console/internal/app/service/content"
	"github.com/fatflowers/console/internal/app/service/invoice"
	"github.com/fatflowers/console/internal/app/service/statistics"
	subsvc "github.com/fatflowers/console/internal/app/service/subscription"
	"github.com/fatflowers/console/internal/app/service/tenant"
	"github.com/fatflowers/console/internal/platform/mail"
	"github.com/fatflowers/console/pkg/response"
	"github.com/fatflowers/console/pkg/types"
)

var notFoundErrors = []error{
	subsvc.ErrNotFound,
	catalog.ErrPlanNotFound,
	tenant.ErrCustomerNotFound,
	content.ErrFaqNotFound,
	invoice.ErrInvalidToken,
}

var badRequestErrors = []error{
	types.ErrUnsupportedField,
	statistics.ErrInvalidWindow,
	tenant.ErrDomainTaken,
	tenant.ErrInvalidGSTIN,
	tenant.ErrInvalidCustomer,
	catalog.ErrInvalidPlan,
	tenant.ErrCustomerInUse,
	mail.ErrNoRecipient,
	invoice.ErrNegativeAmount,
}

func errorCode(err error) response.APIResponseCode {
	for _, target := range notFoundErrors {
		if errors.Is(err, target) {
			return response.APIResponseCodeNotFound
		}
	}
	for _, target := range badRequestErrors {
		if errors.Is(err, target) {
			return response.APIResponseCodeBadRequest
		}
	}
	return response.APIResponseCodeError
}

func writeError(c *gin.Context, err error) {
	c.JSON(http.StatusOK, response.ErrorT[any](errorCode(err), err.Error()))
}

func writeBadRequest(c *gin.Context, err error) {
	c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeBadRequest, err.Error()))
}

// IDRequest is the body of endpoints acting on one record.
type IDRequest struct {
	ID string `json:"id" form:"id" binding:"required"`
}
