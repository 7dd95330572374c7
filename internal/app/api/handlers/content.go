package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/fatflowers/console/internal/app/api/middleware"
	"github.com/fatflowers/console/internal/app/service/content"
	"github.com/fatflowers/console/pkg/response"
	"github.com/fatflowers/console/pkg/types"
)

type UpdateFaqRequest struct {
	ID string `json:"id" binding:"required"`
	content.FaqRequest
}

type UpdateSiteRequest struct {
	CustomerID string `json:"c_id" binding:"required"`
	content.SiteContentRequest
}

type CustomerIDRequest struct {
	CustomerID string `form:"c_id" binding:"required"`
}

// @Summary      Create FAQ
// @Description  An empty c_id creates a FAQ shown on every storefront.
// @Tags         Content
// @Accept       json
// @Produce      json
// @Param        request body content.FaqRequest true "FAQ"
// @Success      200  {object}  handlers.RespFaq
// @Router       /api/v1/admin/faq/create [post]
func ApiCreateFaq(svc *content.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req content.FaqRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			writeBadRequest(c, err)
			return
		}
		f, err := svc.CreateFaq(c.Request.Context(), &req)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, response.OKT(f))
	}
}

// @Summary      Update FAQ
// @Tags         Content
// @Accept       json
// @Produce      json
// @Param        request body handlers.UpdateFaqRequest true "FAQ with id"
// @Success      200  {object}  handlers.RespFaq
// @Router       /api/v1/admin/faq/update [post]
func ApiUpdateFaq(svc *content.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req UpdateFaqRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			writeBadRequest(c, err)
			return
		}
		f, err := svc.UpdateFaq(c.Request.Context(), req.ID, &req.FaqRequest)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, response.OKT(f))
	}
}

// @Summary      Delete FAQ
// @Tags         Content
// @Accept       json
// @Produce      json
// @Param        request body handlers.IDRequest true "FAQ id"
// @Success      200  {object}  handlers.RespOK
// @Router       /api/v1/admin/faq/delete [post]
func ApiDeleteFaq(svc *content.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req IDRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			writeBadRequest(c, err)
			return
		}
		if err := svc.DeleteFaq(c.Request.Context(), req.ID); err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, response.OKT[any](nil))
	}
}

// @Summary      List FAQs
// @Tags         Content
// @Accept       json
// @Produce      json
// @Param        request body types.ScanRequest true "Filters, paging and sorting"
// @Success      200  {object}  handlers.RespListFaqs
// @Router       /api/v1/admin/faq/list [post]
func ApiListFaqs(svc *content.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req types.ScanRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			writeBadRequest(c, err)
			return
		}
		res, err := svc.ListFaqs(c.Request.Context(), &req)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, response.OKT(res))
	}
}

// @Summary      Get site content
// @Tags         Content
// @Produce      json
// @Param        c_id query string true "Tenant id"
// @Success      200  {object}  handlers.RespSiteContent
// @Router       /api/v1/admin/content/get [get]
func ApiGetSite(svc *content.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req CustomerIDRequest
		if err := c.ShouldBindQuery(&req); err != nil {
			writeBadRequest(c, err)
			return
		}
		sc, err := svc.GetSite(c.Request.Context(), req.CustomerID)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, response.OKT(sc))
	}
}

// @Summary      Update site content
// @Description  Replaces socials, gallery, sliders and testimonials of a tenant.
// @Tags         Content
// @Accept       json
// @Produce      json
// @Param        request body handlers.UpdateSiteRequest true "Site content"
// @Success      200  {object}  handlers.RespSiteContent
// @Router       /api/v1/admin/content/update [post]
func ApiUpdateSite(svc *content.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req UpdateSiteRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			writeBadRequest(c, err)
			return
		}
		sc, err := svc.UpdateSite(c.Request.Context(), req.CustomerID, &req.SiteContentRequest)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, response.OKT(sc))
	}
}

// @Summary      List enquiries
// @Tags         Content
// @Accept       json
// @Produce      json
// @Param        request body types.ScanRequest true "Filters, paging and sorting"
// @Success      200  {object}  handlers.RespListEnquiries
// @Router       /api/v1/admin/enquiry/list [post]
func ApiListEnquiries(svc *content.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req types.ScanRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			writeBadRequest(c, err)
			return
		}
		res, err := svc.ListEnquiries(c.Request.Context(), &req)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, response.OKT(res))
	}
}

// @Summary      Storefront FAQs
// @Description  FAQs of the storefront's tenant followed by the shared ones.
// @Tags         Site
// @Produce      json
// @Param        X-Site-Domain header string false "Storefront domain, defaults to Host"
// @Success      200  {object}  handlers.RespPublicFaqs
// @Router       /api/v1/site/faq [get]
func ApiSiteFaqs(svc *content.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		faqs, err := svc.PublicFaqs(c.Request.Context(), middleware.SiteDomain(c))
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, response.OKT(faqs))
	}
}

// @Summary      Storefront content
// @Tags         Site
// @Produce      json
// @Param        X-Site-Domain header string false "Storefront domain, defaults to Host"
// @Success      200  {object}  handlers.RespPublicSite
// @Router       /api/v1/site/content [get]
func ApiSiteContent(svc *content.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		site, err := svc.PublicSite(c.Request.Context(), middleware.SiteDomain(c))
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, response.OKT(site))
	}
}

// @Summary      Submit enquiry
// @Description  Stores a contact form and emails the tenant.
// @Tags         Site
// @Accept       json
// @Produce      json
// @Param        X-Site-Domain header string false "Storefront domain, defaults to Host"
// @Param        request body content.EnquiryRequest true "Enquiry"
// @Success      200  {object}  handlers.RespOK
// @Router       /api/v1/site/enquiry [post]
func ApiSubmitEnquiry(svc *content.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req content.EnquiryRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			writeBadRequest(c, err)
			return
		}
		e, err := svc.SubmitEnquiry(c.Request.Context(), middleware.SiteDomain(c), &req)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, response.OKT(map[string]string{"id": e.ID}))
	}
}

func RegisterFaqRoutes(r gin.IRouter, svc *content.Service) {
	r.POST("/create", ApiCreateFaq(svc))
	r.POST("/update", ApiUpdateFaq(svc))
	r.POST("/delete", ApiDeleteFaq(svc))
	r.POST("/list", ApiListFaqs(svc))
}

func RegisterContentRoutes(r gin.IRouter, svc *content.Service) {
	r.GET("/get", ApiGetSite(svc))
	r.POST("/update", ApiUpdateSite(svc))
}

func RegisterEnquiryRoutes(r gin.IRouter, svc *content.Service) {
	r.POST("/list", ApiListEnquiries(svc))
}

// RegisterSiteRoutes expects middleware.SiteDomainMiddleware on r.
func RegisterSiteRoutes(r gin.IRouter, svc *content.Service) {
	r.GET("/faq", ApiSiteFaqs(svc))
	r.GET("/content", ApiSiteContent(svc))
	r.POST("/enquiry", ApiSubmitEnquiry(svc))
}
