package handler

import (
	"net/http"

	"digiwave-backend/internal/middleware"
	"digiwave-backend/internal/service"
	"digiwave-backend/pkg/response"

	"github.com/gin-gonic/gin"
)

// LookupHandler serves the small reference tables used by dropdowns:
// technologies, app modes and designations.
type LookupHandler struct {
	lookupService service.LookupService
}

func NewLookupHandler(lookupService service.LookupService) *LookupHandler {
	return &LookupHandler{lookupService: lookupService}
}

func (h *LookupHandler) RegisterRoutes(router *gin.RouterGroup) {
	technologies := router.Group("/api/technologies")
	{
		technologies.GET("", middleware.RequirePermission("projects.read"), h.ListTechnologies)
		technologies.POST("", middleware.RequirePermission("lookups.write"), h.CreateTechnology)
		technologies.DELETE("/:id", middleware.RequirePermission("lookups.write"), h.DeleteTechnology)
	}

	appModes := router.Group("/api/app-modes")
	{
		appModes.GET("", middleware.RequirePermission("projects.read"), h.ListAppModes)
		appModes.POST("", middleware.RequirePermission("lookups.write"), h.CreateAppMode)
		appModes.DELETE("/:id", middleware.RequirePermission("lookups.write"), h.DeleteAppMode)
	}

	designations := router.Group("/api/designations")
	{
		designations.GET("", middleware.RequirePermission("users.read"), h.ListDesignations)
		designations.POST("", middleware.RequirePermission("lookups.write"), h.CreateDesignation)
		designations.DELETE("/:id", middleware.RequirePermission("lookups.write"), h.DeleteDesignation)
	}
}

// ListTechnologies lists all technologies
// @Summary      List technologies
// @Tags         lookups
// @Security     BearerAuth
// @Produce      json
// @Success      200  {object}  response.Response{data=[]service.LookupResponse}
// @Router       /api/technologies [get]
func (h *LookupHandler) ListTechnologies(c *gin.Context) {
	items, err := h.lookupService.ListTechnologies(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, err.Error()))
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, items))
}

// CreateTechnology creates a technology
// @Summary      Create technology
// @Tags         lookups
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        payload  body      service.CreateLookupRequest  true  "Name"
// @Success      201      {object}  response.Response{data=service.LookupResponse}
// @Failure      400      {object}  response.Response
// @Router       /api/technologies [post]
func (h *LookupHandler) CreateTechnology(c *gin.Context) {
	var req service.CreateLookupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	item, err := h.lookupService.CreateTechnology(c.Request.Context(), req)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}
	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, item))
}

// DeleteTechnology removes a technology
// @Summary      Delete technology
// @Tags         lookups
// @Security     BearerAuth
// @Produce      json
// @Param        id   path      string  true  "Technology ID"
// @Success      200  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Router       /api/technologies/{id} [delete]
func (h *LookupHandler) DeleteTechnology(c *gin.Context) {
	if err := h.lookupService.DeleteTechnology(c.Request.Context(), c.Param("id")); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, "Technology deleted successfully"))
}

// ListAppModes lists all app modes
// @Summary      List app modes
// @Tags         lookups
// @Security     BearerAuth
// @Produce      json
// @Success      200  {object}  response.Response{data=[]service.LookupResponse}
// @Router       /api/app-modes [get]
func (h *LookupHandler) ListAppModes(c *gin.Context) {
	items, err := h.lookupService.ListAppModes(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, err.Error()))
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, items))
}

// CreateAppMode creates an app mode
// @Summary      Create app mode
// @Tags         lookups
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        payload  body      service.CreateLookupRequest  true  "Name"
// @Success      201      {object}  response.Response{data=service.LookupResponse}
// @Failure      400      {object}  response.Response
// @Router       /api/app-modes [post]
func (h *LookupHandler) CreateAppMode(c *gin.Context) {
	var req service.CreateLookupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	item, err := h.lookupService.CreateAppMode(c.Request.Context(), req)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}
	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, item))
}

// DeleteAppMode removes an app mode
// @Summary      Delete app mode
// @Tags         lookups
// @Security     BearerAuth
// @Produce      json
// @Param        id   path      string  true  "App Mode ID"
// @Success      200  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Router       /api/app-modes/{id} [delete]
func (h *LookupHandler) DeleteAppMode(c *gin.Context) {
	if err := h.lookupService.DeleteAppMode(c.Request.Context(), c.Param("id")); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, "App mode deleted successfully"))
}

// ListDesignations lists all designations
// @Summary      List designations
// @Tags         lookups
// @Security     BearerAuth
// @Produce      json
// @Success      200  {object}  response.Response{data=[]service.LookupResponse}
// @Router       /api/designations [get]
func (h *LookupHandler) ListDesignations(c *gin.Context) {
	items, err := h.lookupService.ListDesignations(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, err.Error()))
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, items))
}

// CreateDesignation creates a designation
// @Summary      Create designation
// @Tags         lookups
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        payload  body      service.CreateLookupRequest  true  "Name"
// @Success      201      {object}  response.Response{data=service.LookupResponse}
// @Failure      400      {object}  response.Response
// @Router       /api/designations [post]
func (h *LookupHandler) CreateDesignation(c *gin.Context) {
	var req service.CreateLookupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	item, err := h.lookupService.CreateDesignation(c.Request.Context(), req)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}
	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, item))
}

// DeleteDesignation removes a designation
// @Summary      Delete designation
// @Tags         lookups
// @Security     BearerAuth
// @Produce      json
// @Param        id   path      string  true  "Designation ID"
// @Success      200  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Router       /api/designations/{id} [delete]
func (h *LookupHandler) DeleteDesignation(c *gin.Context) {
	if err := h.lookupService.DeleteDesignation(c.Request.Context(), c.Param("id")); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, "Designation deleted successfully"))
}
