package handler

import (
	"errors"
	"fmt"
	"net/http"

	"digiwave-backend/internal/middleware"
	"digiwave-backend/internal/service"
	"digiwave-backend/pkg/pagination"
	"digiwave-backend/pkg/response"

	"github.com/gin-gonic/gin"
)

type QuotationHandler struct {
	quotationService service.QuotationService
}

func NewQuotationHandler(quotationService service.QuotationService) *QuotationHandler {
	return &QuotationHandler{quotationService: quotationService}
}

func (h *QuotationHandler) RegisterRoutes(router *gin.RouterGroup) {
	quotations := router.Group("/api/quotations")
	{
		quotations.POST("", middleware.RequirePermission("quotations.write"), h.CreateQuotation)
		quotations.GET("", middleware.RequirePermission("quotations.read"), h.ListQuotations)
		quotations.GET("/:id", middleware.RequirePermission("quotations.read"), h.GetQuotation)
		quotations.PUT("/:id", middleware.RequirePermission("quotations.write"), h.UpdateQuotation)
		quotations.DELETE("/:id", middleware.RequirePermission("quotations.delete"), h.DeleteQuotation)
		quotations.GET("/:id/pdf", middleware.RequirePermission("quotations.export"), h.ExportPDF)
		quotations.GET("/:id/print", middleware.RequirePermission("quotations.read"), h.RenderPrint)
	}
}

// CreateQuotation creates a new quotation with computed totals
// @Summary      Create quotation
// @Description  Creates a new quotation, computing service, discount, tax and grand totals
// @Tags         quotations
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        payload  body      service.CreateQuotationRequest  true  "Create Quotation Payload"
// @Success      201      {object}  response.Response{data=service.QuotationResponse}
// @Failure      400      {object}  response.Response
// @Router       /api/quotations [post]
func (h *QuotationHandler) CreateQuotation(c *gin.Context) {
	var req service.CreateQuotationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	userID, _ := c.Get("userID")
	userIDStr, _ := userID.(string)

	quotation, err := h.quotationService.CreateQuotation(c.Request.Context(), req, userIDStr)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}

	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, quotation))
}

// ListQuotations returns a paginated list of quotations
// @Summary      List quotations
// @Description  Retrieves a paginated list of quotations, optionally filtered by status or search term
// @Tags         quotations
// @Security     BearerAuth
// @Produce      json
// @Param        status  query     string  false  "Filter by status (DRAFT, SENT, ACCEPTED, REJECTED)"
// @Param        search  query     string  false  "Search by quotation number or client name"
// @Param        page    query     int     false  "Page number (default 1)"
// @Param        limit   query     int     false  "Number of items per page (default 20)"
// @Success      200     {object}  response.Response{data=object}
// @Failure      500     {object}  response.Response
// @Router       /api/quotations [get]
func (h *QuotationHandler) ListQuotations(c *gin.Context) {
	params := pagination.Parse(c)

	filter := service.QuotationFilter{
		Status: c.Query("status"),
		Search: params.Search,
		Page:   params.Page,
		Limit:  params.Limit,
	}

	quotations, total, err := h.quotationService.ListQuotations(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, map[string]interface{}{
		"quotations": quotations,
		"total":      total,
		"page":       params.Page,
		"limit":      params.Limit,
	}))
}

// GetQuotation returns a single quotation with its service lines
// @Summary      Get quotation by ID
// @Description  Fetch a single quotation's detail including service lines and addon charges
// @Tags         quotations
// @Security     BearerAuth
// @Produce      json
// @Param        id   path      string  true  "Quotation ID"
// @Success      200  {object}  response.Response{data=service.QuotationResponse}
// @Failure      404  {object}  response.Response
// @Router       /api/quotations/{id} [get]
func (h *QuotationHandler) GetQuotation(c *gin.Context) {
	id := c.Param("id")

	quotation, err := h.quotationService.GetQuotation(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusNotFound, response.Error(http.StatusNotFound, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, quotation))
}

// UpdateQuotation replaces a quotation's content and recomputes totals
// @Summary      Update quotation
// @Description  Updates a quotation, bumping its revision and recomputing all totals
// @Tags         quotations
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id       path      string                          true  "Quotation ID"
// @Param        payload  body      service.UpdateQuotationRequest  true  "Update Quotation Payload"
// @Success      200      {object}  response.Response{data=service.QuotationResponse}
// @Failure      400      {object}  response.Response
// @Router       /api/quotations/{id} [put]
func (h *QuotationHandler) UpdateQuotation(c *gin.Context) {
	id := c.Param("id")
	var req service.UpdateQuotationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	userID, _ := c.Get("userID")
	userIDStr, _ := userID.(string)

	quotation, err := h.quotationService.UpdateQuotation(c.Request.Context(), id, req, userIDStr)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, quotation))
}

// DeleteQuotation soft deletes a quotation
// @Summary      Delete quotation
// @Description  Soft deletes a quotation. Non-admin users may only delete quotations they created
// @Tags         quotations
// @Security     BearerAuth
// @Produce      json
// @Param        id   path      string  true  "Quotation ID"
// @Success      200  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Failure      403  {object}  response.Response
// @Router       /api/quotations/{id} [delete]
func (h *QuotationHandler) DeleteQuotation(c *gin.Context) {
	id := c.Param("id")
	userID, _ := c.Get("userID")
	userIDStr, _ := userID.(string)
	userRole, _ := c.Get("userRole")
	roleStr, _ := userRole.(string)

	err := h.quotationService.DeleteQuotation(c.Request.Context(), id, userIDStr, roleStr)
	if err != nil {
		if errors.Is(err, service.ErrNotOwner) {
			c.JSON(http.StatusForbidden, response.Error(http.StatusForbidden, err.Error()))
			return
		}
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, "Quotation deleted successfully"))
}

// ExportPDF streams the quotation as a PDF attachment
// @Summary      Export quotation PDF
// @Description  Renders the quotation as a PDF document and streams it as an attachment
// @Tags         quotations
// @Security     BearerAuth
// @Produce      application/pdf
// @Param        id   path      string  true  "Quotation ID"
// @Success      200  {file}    binary
// @Failure      404  {object}  response.Response
// @Failure      409  {object}  response.Response
// @Failure      500  {object}  response.Response
// @Router       /api/quotations/{id}/pdf [get]
func (h *QuotationHandler) ExportPDF(c *gin.Context) {
	id := c.Param("id")
	userID, _ := c.Get("userID")
	userIDStr, _ := userID.(string)

	filename, data, err := h.quotationService.ExportPDF(c.Request.Context(), id, userIDStr)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrExportInProgress):
			c.JSON(http.StatusConflict, response.Error(http.StatusConflict, err.Error()))
		case errors.Is(err, service.ErrQuotationNotFound):
			c.JSON(http.StatusNotFound, response.Error(http.StatusNotFound, err.Error()))
		default:
			c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, err.Error()))
		}
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))
	c.Data(http.StatusOK, "application/pdf", data)
}

// RenderPrint returns a print-friendly HTML view of the quotation
// @Summary      Print quotation
// @Description  Renders the quotation as a standalone HTML page suitable for browser printing
// @Tags         quotations
// @Security     BearerAuth
// @Produce      html
// @Param        id   path      string  true  "Quotation ID"
// @Success      200  {string}  string
// @Failure      404  {object}  response.Response
// @Failure      500  {object}  response.Response
// @Router       /api/quotations/{id}/print [get]
func (h *QuotationHandler) RenderPrint(c *gin.Context) {
	id := c.Param("id")

	html, err := h.quotationService.RenderPrint(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrQuotationNotFound) {
			c.JSON(http.StatusNotFound, response.Error(http.StatusNotFound, err.Error()))
			return
		}
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, err.Error()))
		return
	}

	c.Data(http.StatusOK, "text/html; charset=utf-8", html)
}
