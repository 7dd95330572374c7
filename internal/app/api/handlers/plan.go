package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/fatflowers/console/internal/app/service/catalog"
	"github.com/fatflowers/console/pkg/response"
	"github.com/fatflowers/console/pkg/types"
)

type UpdatePlanRequest struct {
	ID string `json:"id" binding:"required"`
	catalog.PlanRequest
}

// @Summary      Create plan
// @Tags         Plan
// @Accept       json
// @Produce      json
// @Param        request body catalog.PlanRequest true "Plan"
// @Success      200  {object}  handlers.RespPlan
// @Router       /api/v1/admin/plan/create [post]
func ApiCreatePlan(svc *catalog.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req catalog.PlanRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			writeBadRequest(c, err)
			return
		}
		p, err := svc.CreatePlan(c.Request.Context(), &req)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, response.OKT(p))
	}
}

// @Summary      Update plan
// @Tags         Plan
// @Accept       json
// @Produce      json
// @Param        request body handlers.UpdatePlanRequest true "Plan with id"
// @Success      200  {object}  handlers.RespPlan
// @Router       /api/v1/admin/plan/update [post]
func ApiUpdatePlan(svc *catalog.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req UpdatePlanRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			writeBadRequest(c, err)
			return
		}
		p, err := svc.UpdatePlan(c.Request.Context(), req.ID, &req.PlanRequest)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, response.OKT(p))
	}
}

// @Summary      Get plan
// @Tags         Plan
// @Produce      json
// @Param        id query string true "Plan id"
// @Success      200  {object}  handlers.RespPlan
// @Router       /api/v1/admin/plan/get [get]
func ApiGetPlan(svc *catalog.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req IDRequest
		if err := c.ShouldBindQuery(&req); err != nil {
			writeBadRequest(c, err)
			return
		}
		p, err := svc.GetPlan(c.Request.Context(), req.ID)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, response.OKT(p))
	}
}

// @Summary      List plans
// @Tags         Plan
// @Accept       json
// @Produce      json
// @Param        request body types.ScanRequest true "Filters, paging and sorting"
// @Success      200  {object}  handlers.RespListPlans
// @Router       /api/v1/admin/plan/list [post]
func ApiListPlans(svc *catalog.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req types.ScanRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			writeBadRequest(c, err)
			return
		}
		res, err := svc.ListPlans(c.Request.Context(), &req)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, response.OKT(res))
	}
}

// @Summary      Active plans
// @Description  Plans offered in the subscription form, cheapest first.
// @Tags         Plan
// @Produce      json
// @Success      200  {object}  handlers.RespActivePlans
// @Router       /api/v1/admin/plan/active [get]
func ApiActivePlans(svc *catalog.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		plans, err := svc.ActivePlans(c.Request.Context())
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, response.OKT(plans))
	}
}

func RegisterPlanRoutes(r gin.IRouter, svc *catalog.Service) {
	r.POST("/create", ApiCreatePlan(svc))
	r.POST("/update", ApiUpdatePlan(svc))
	r.GET("/get", ApiGetPlan(svc))
	r.POST("/list", ApiListPlans(svc))
	r.GET("/active", ApiActivePlans(svc))
}
