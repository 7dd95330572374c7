package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/fatflowers/console/internal/app/service/notification_log"
	"github.com/fatflowers/console/internal/app/service/statistics"
	"github.com/fatflowers/console/pkg/response"
	"github.com/fatflowers/console/pkg/types"
)

// @Summary      Dashboard statistics
// @Description  Daily revenue, new subscriptions and status counts for the console dashboard.
// @Tags         Statistic
// @Accept       json
// @Produce      json
// @Param        request body statistics.StatisticRequest true "Statistic request parameters"
// @Success      200  {object}  handlers.RespStatistic
// @Router       /api/v1/admin/statistic [post]
func ApiGetStatistic(svc *statistics.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req statistics.StatisticRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			writeBadRequest(c, err)
			return
		}
		res, err := svc.GetStatistic(c.Request.Context(), &req)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, response.OKT(res))
	}
}

// @Summary      List notification logs
// @Description  Delivery history of invoice and enquiry emails.
// @Tags         Statistic
// @Accept       json
// @Produce      json
// @Param        request body types.ScanRequest true "Filters, paging and sorting"
// @Success      200  {object}  handlers.RespListNotifications
// @Router       /api/v1/admin/notification/list [post]
func ApiListNotifications(svc *notification_log.Service) gin.HandlerFunc {
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

func RegisterStatisticRoutes(r gin.IRouter, stats *statistics.Service, notifications *notification_log.Service) {
	r.POST("/statistic", ApiGetStatistic(stats))
	r.POST("/notification/list", ApiListNotifications(notifications))
}
