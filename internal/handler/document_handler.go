package handler

import (
	"net/http"

	"digiwave-backend/internal/middleware"
	"digiwave-backend/internal/service"
	"digiwave-backend/pkg/pagination"
	"digiwave-backend/pkg/response"

	"github.com/gin-gonic/gin"
)

type DocumentHandler struct {
	documentService service.DocumentService
}

func NewDocumentHandler(documentService service.DocumentService) *DocumentHandler {
	return &DocumentHandler{documentService: documentService}
}

func (h *DocumentHandler) RegisterRoutes(router *gin.RouterGroup) {
	documents := router.Group("/api/documents")
	{
		documents.POST("", middleware.RequirePermission("documents.write"), h.CreateDocument)
		documents.GET("", middleware.RequirePermission("documents.read"), h.ListDocuments)
		documents.GET("/:id", middleware.RequirePermission("documents.read"), h.GetDocument)
		documents.DELETE("/:id", middleware.RequirePermission("documents.delete"), h.DeleteDocument)
	}
}

// CreateDocument registers an uploaded file's metadata
// @Summary      Create document
// @Description  Registers an uploaded file's metadata, optionally linked to a project
// @Tags         documents
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        payload  body      service.CreateDocumentRequest  true  "Create Document Payload"
// @Success      201      {object}  response.Response{data=service.DocumentResponse}
// @Failure      400      {object}  response.Response
// @Router       /api/documents [post]
func (h *DocumentHandler) CreateDocument(c *gin.Context) {
	var req service.CreateDocumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	userID, _ := c.Get("userID")
	userIDStr, _ := userID.(string)

	doc, err := h.documentService.CreateDocument(c.Request.Context(), req, userIDStr)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}

	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, doc))
}

// ListDocuments returns a paginated list of documents
// @Summary      List documents
// @Description  Retrieves a paginated list of documents, optionally filtered by project or category
// @Tags         documents
// @Security     BearerAuth
// @Produce      json
// @Param        project_id  query     string  false  "Filter by project ID"
// @Param        category    query     string  false  "Filter by category (CONTRACT, INVOICE, IDENTITY, OTHER)"
// @Param        search      query     string  false  "Search by document name"
// @Param        page        query     int     false  "Page number (default 1)"
// @Param        limit       query     int     false  "Number of items per page (default 20)"
// @Success      200         {object}  response.Response{data=object}
// @Failure      500         {object}  response.Response
// @Router       /api/documents [get]
func (h *DocumentHandler) ListDocuments(c *gin.Context) {
	params := pagination.Parse(c)

	filter := service.DocumentFilter{
		ProjectID: c.Query("project_id"),
		Category:  c.Query("category"),
		Search:    params.Search,
		Page:      params.Page,
		Limit:     params.Limit,
	}

	documents, total, err := h.documentService.ListDocuments(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, map[string]interface{}{
		"documents": documents,
		"total":     total,
		"page":      params.Page,
		"limit":     params.Limit,
	}))
}

// GetDocument returns a single document's metadata
// @Summary      Get document by ID
// @Tags         documents
// @Security     BearerAuth
// @Produce      json
// @Param        id   path      string  true  "Document ID"
// @Success      200  {object}  response.Response{data=service.DocumentResponse}
// @Failure      404  {object}  response.Response
// @Router       /api/documents/{id} [get]
func (h *DocumentHandler) GetDocument(c *gin.Context) {
	id := c.Param("id")

	doc, err := h.documentService.GetDocument(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusNotFound, response.Error(http.StatusNotFound, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, doc))
}

// DeleteDocument soft deletes a document
// @Summary      Delete document
// @Tags         documents
// @Security     BearerAuth
// @Produce      json
// @Param        id   path      string  true  "Document ID"
// @Success      200  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Router       /api/documents/{id} [delete]
func (h *DocumentHandler) DeleteDocument(c *gin.Context) {
	id := c.Param("id")

	err := h.documentService.DeleteDocument(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, "Document deleted successfully"))
}
