package handler

import (
	"net/http"
	"strconv"

	"digiwave-backend/internal/middleware"
	"digiwave-backend/internal/service"
	"digiwave-backend/pkg/pagination"
	"digiwave-backend/pkg/response"

	"github.com/gin-gonic/gin"
)

type HostingHandler struct {
	hostingService service.HostingService
}

func NewHostingHandler(hostingService service.HostingService) *HostingHandler {
	return &HostingHandler{hostingService: hostingService}
}

func (h *HostingHandler) RegisterRoutes(router *gin.RouterGroup) {
	hosting := router.Group("/api/hosting")
	{
		hosting.POST("", middleware.RequirePermission("hosting.write"), h.CreateHosting)
		hosting.GET("", middleware.RequirePermission("hosting.read"), h.ListHosting)
		hosting.GET("/expiring", middleware.RequirePermission("hosting.read"), h.ListExpiring)
		hosting.GET("/:id", middleware.RequirePermission("hosting.read"), h.GetHosting)
		hosting.PUT("/:id", middleware.RequirePermission("hosting.write"), h.UpdateHosting)
		hosting.DELETE("/:id", middleware.RequirePermission("hosting.delete"), h.DeleteHosting)
	}
}

// CreateHosting records a hosting or domain service entry
// @Summary      Create hosting entry
// @Description  Records a domain, server, SSL or email hosting service with renewal dates
// @Tags         hosting
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        payload  body      service.CreateHostingRequest  true  "Create Hosting Payload"
// @Success      201      {object}  response.Response{data=service.HostingResponse}
// @Failure      400      {object}  response.Response
// @Router       /api/hosting [post]
func (h *HostingHandler) CreateHosting(c *gin.Context) {
	var req service.CreateHostingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	hosting, err := h.hostingService.CreateHosting(c.Request.Context(), req)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}

	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, hosting))
}

// ListHosting returns a paginated list of hosting entries
// @Summary      List hosting entries
// @Description  Retrieves a paginated list of hosting entries ordered by expiry date
// @Tags         hosting
// @Security     BearerAuth
// @Produce      json
// @Param        project_id    query     string  false  "Filter by project ID"
// @Param        service_type  query     string  false  "Filter by service type (DOMAIN, SERVER, SSL, EMAIL)"
// @Param        search        query     string  false  "Search by provider or domain name"
// @Param        page          query     int     false  "Page number (default 1)"
// @Param        limit         query     int     false  "Number of items per page (default 20)"
// @Success      200           {object}  response.Response{data=object}
// @Failure      500           {object}  response.Response
// @Router       /api/hosting [get]
func (h *HostingHandler) ListHosting(c *gin.Context) {
	params := pagination.Parse(c)

	filter := service.HostingFilter{
		ProjectID:   c.Query("project_id"),
		ServiceType: c.Query("service_type"),
		Search:      params.Search,
		Page:        params.Page,
		Limit:       params.Limit,
	}

	entries, total, err := h.hostingService.ListHosting(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, map[string]interface{}{
		"hosting": entries,
		"total":   total,
		"page":    params.Page,
		"limit":   params.Limit,
	}))
}

// ListExpiring returns hosting entries expiring within a window
// @Summary      List expiring hosting
// @Description  Returns hosting entries whose expiry date falls within the given number of days
// @Tags         hosting
// @Security     BearerAuth
// @Produce      json
// @Param        within_days  query     int  false  "Expiry window in days (default 30)"
// @Success      200          {object}  response.Response{data=[]service.HostingResponse}
// @Failure      500          {object}  response.Response
// @Router       /api/hosting/expiring [get]
func (h *HostingHandler) ListExpiring(c *gin.Context) {
	withinDays, _ := strconv.Atoi(c.DefaultQuery("within_days", "30"))

	entries, err := h.hostingService.ListExpiring(c.Request.Context(), withinDays)
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, entries))
}

// GetHosting returns a single hosting entry
// @Summary      Get hosting by ID
// @Description  Fetch a single hosting entry's detail
// @Tags         hosting
// @Security     BearerAuth
// @Produce      json
// @Param        id   path      string  true  "Hosting ID"
// @Success      200  {object}  response.Response{data=service.HostingResponse}
// @Failure      404  {object}  response.Response
// @Router       /api/hosting/{id} [get]
func (h *HostingHandler) GetHosting(c *gin.Context) {
	id := c.Param("id")

	hosting, err := h.hostingService.GetHosting(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusNotFound, response.Error(http.StatusNotFound, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, hosting))
}

// UpdateHosting updates a hosting entry
// @Summary      Update hosting
// @Description  Updates a hosting entry's details; only provided fields are changed
// @Tags         hosting
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id       path      string                        true  "Hosting ID"
// @Param        payload  body      service.UpdateHostingRequest  true  "Update Hosting Payload"
// @Success      200      {object}  response.Response{data=service.HostingResponse}
// @Failure      400      {object}  response.Response
// @Router       /api/hosting/{id} [put]
func (h *HostingHandler) UpdateHosting(c *gin.Context) {
	id := c.Param("id")
	var req service.UpdateHostingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	hosting, err := h.hostingService.UpdateHosting(c.Request.Context(), id, req)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, hosting))
}

// DeleteHosting removes a hosting entry
// @Summary      Delete hosting
// @Description  Deletes a hosting entry by ID
// @Tags         hosting
// @Security     BearerAuth
// @Produce      json
// @Param        id   path      string  true  "Hosting ID"
// @Success      200  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Router       /api/hosting/{id} [delete]
func (h *HostingHandler) DeleteHosting(c *gin.Context) {
	id := c.Param("id")

	err := h.hostingService.DeleteHosting(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, "Hosting entry deleted successfully"))
}
