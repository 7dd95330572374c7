package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/fatflowers/console/internal/app/service/tenant"
	"github.com/fatflowers/console/pkg/response"
	"github.com/fatflowers/console/pkg/types"
)

type UpdateTenantRequest struct {
	ID string `json:"id" binding:"required"`
	tenant.CustomerRequest
}

type SetTenantStatusRequest struct {
	ID     string              `json:"id" binding:"required"`
	Status *types.ActiveStatus `json:"status" binding:"required" swaggertype:"string" enums:"Y,N"`
}

// @Summary      Create tenant
// @Description  Registers a customer. New tenants are unapproved and inactive.
// @Tags         Tenant
// @Accept       json
// @Produce      json
// @Param        request body tenant.CustomerRequest true "Customer"
// @Success      200  {object}  handlers.RespCustomer
// @Router       /api/v1/admin/tenant/create [post]
func ApiCreateTenant(svc *tenant.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req tenant.CustomerRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			writeBadRequest(c, err)
			return
		}
		cust, err := svc.Create(c.Request.Context(), &req)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, response.OKT(cust))
	}
}

// @Summary      Update tenant
// @Tags         Tenant
// @Accept       json
// @Produce      json
// @Param        request body handlers.UpdateTenantRequest true "Customer with id"
// @Success      200  {object}  handlers.RespCustomer
// @Router       /api/v1/admin/tenant/update [post]
func ApiUpdateTenant(svc *tenant.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req UpdateTenantRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			writeBadRequest(c, err)
			return
		}
		cust, err := svc.Update(c.Request.Context(), req.ID, &req.CustomerRequest)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, response.OKT(cust))
	}
}

// @Summary      Approve tenant
// @Description  Approves and activates a tenant so its storefront goes live.
// @Tags         Tenant
// @Accept       json
// @Produce      json
// @Param        request body handlers.IDRequest true "Customer id"
// @Success      200  {object}  handlers.RespCustomer
// @Router       /api/v1/admin/tenant/approve [post]
func ApiApproveTenant(svc *tenant.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req IDRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			writeBadRequest(c, err)
			return
		}
		cust, err := svc.Approve(c.Request.Context(), req.ID)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, response.OKT(cust))
	}
}

// @Summary      Set tenant status
// @Tags         Tenant
// @Accept       json
// @Produce      json
// @Param        request body handlers.SetTenantStatusRequest true "id and status Y or N"
// @Success      200  {object}  handlers.RespCustomer
// @Router       /api/v1/admin/tenant/status [post]
func ApiSetTenantStatus(svc *tenant.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req SetTenantStatusRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			writeBadRequest(c, err)
			return
		}
		cust, err := svc.SetStatus(c.Request.Context(), req.ID, *req.Status)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, response.OKT(cust))
	}
}

// @Summary      Delete tenant
// @Description  Refused while the tenant still has subscriptions.
// @Tags         Tenant
// @Accept       json
// @Produce      json
// @Param        request body handlers.IDRequest true "Customer id"
// @Success      200  {object}  handlers.RespOK
// @Router       /api/v1/admin/tenant/delete [post]
func ApiDeleteTenant(svc *tenant.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req IDRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			writeBadRequest(c, err)
			return
		}
		if err := svc.Delete(c.Request.Context(), req.ID); err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, response.OKT[any](nil))
	}
}

// @Summary      Get tenant
// @Tags         Tenant
// @Produce      json
// @Param        id query string true "Customer id"
// @Success      200  {object}  handlers.RespCustomer
// @Router       /api/v1/admin/tenant/get [get]
func ApiGetTenant(svc *tenant.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req IDRequest
		if err := c.ShouldBindQuery(&req); err != nil {
			writeBadRequest(c, err)
			return
		}
		cust, err := svc.GetCustomer(c.Request.Context(), req.ID)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, response.OKT(cust))
	}
}

// @Summary      List tenants
// @Tags         Tenant
// @Accept       json
// @Produce      json
// @Param        request body types.ScanRequest true "Filters, paging and sorting"
// @Success      200  {object}  handlers.RespListCustomers
// @Router       /api/v1/admin/tenant/list [post]
func ApiListTenants(svc *tenant.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req types.ScanRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			writeBadRequest(c, err)
			return
		}
		res, err := svc.List(c.Request.Context(), &req)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, response.OKT(res))
	}
}

func RegisterTenantRoutes(r gin.IRouter, svc *tenant.Service) {
	r.POST("/create", ApiCreateTenant(svc))
	r.POST("/update", ApiUpdateTenant(svc))
	r.POST("/approve", ApiApproveTenant(svc))
	r.POST("/status", ApiSetTenantStatus(svc))
	r.POST("/delete", ApiDeleteTenant(svc))
	r.GET("/get", ApiGetTenant(svc))
	r.POST("/list", ApiListTenants(svc))
}
