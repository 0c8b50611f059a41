package handler

import (
	"net/http"

	"digiwave-backend/internal/middleware"
	"digiwave-backend/internal/service"
	"digiwave-backend/pkg/pagination"
	"digiwave-backend/pkg/response"

	"github.com/gin-gonic/gin"
)

type ProjectHandler struct {
	projectService service.ProjectService
}

func NewProjectHandler(projectService service.ProjectService) *ProjectHandler {
	return &ProjectHandler{projectService: projectService}
}

func (h *ProjectHandler) RegisterRoutes(router *gin.RouterGroup) {
	projects := router.Group("/api/projects")
	{
		projects.POST("", middleware.RequirePermission("projects.write"), h.CreateProject)
		projects.GET("", middleware.RequirePermission("projects.read"), h.ListProjects)
		projects.GET("/:id", middleware.RequirePermission("projects.read"), h.GetProject)
		projects.PUT("/:id", middleware.RequirePermission("projects.write"), h.UpdateProject)
		projects.DELETE("/:id", middleware.RequirePermission("projects.delete"), h.DeleteProject)
	}
}

// CreateProject creates a new project
// @Summary      Create project
// @Description  Creates a new project with client details and technologies
// @Tags         projects
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        payload  body      service.CreateProjectRequest  true  "Create Project Payload"
// @Success      201      {object}  response.Response{data=service.ProjectResponse}
// @Failure      400      {object}  response.Response
// @Router       /api/projects [post]
func (h *ProjectHandler) CreateProject(c *gin.Context) {
	var req service.CreateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	userID, _ := c.Get("userID")
	userIDStr, _ := userID.(string)

	project, err := h.projectService.CreateProject(c.Request.Context(), req, userIDStr)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}

	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, project))
}

// ListProjects returns a paginated list of projects
// @Summary      List projects
// @Description  Retrieves a paginated list of projects, optionally filtered by status or search term
// @Tags         projects
// @Security     BearerAuth
// @Produce      json
// @Param        status  query     string  false  "Filter by status (UPCOMING, IN_PROGRESS, ON_HOLD, COMPLETED, CANCELLED)"
// @Param        search  query     string  false  "Search by project or client name"
// @Param        page    query     int     false  "Page number (default 1)"
// @Param        limit   query     int     false  "Number of items per page (default 20)"
// @Success      200     {object}  response.Response{data=object}
// @Failure      500     {object}  response.Response
// @Router       /api/projects [get]
func (h *ProjectHandler) ListProjects(c *gin.Context) {
	params := pagination.Parse(c)

	filter := service.ProjectFilter{
		Status: c.Query("status"),
		Search: params.Search,
		Page:   params.Page,
		Limit:  params.Limit,
	}

	projects, total, err := h.projectService.ListProjects(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, map[string]interface{}{
		"projects": projects,
		"total":    total,
		"page":     params.Page,
		"limit":    params.Limit,
	}))
}

// GetProject returns a single project
// @Summary      Get project by ID
// @Description  Fetch a single project's detail including technologies
// @Tags         projects
// @Security     BearerAuth
// @Produce      json
// @Param        id   path      string  true  "Project ID"
// @Success      200  {object}  response.Response{data=service.ProjectResponse}
// @Failure      404  {object}  response.Response
// @Router       /api/projects/{id} [get]
func (h *ProjectHandler) GetProject(c *gin.Context) {
	id := c.Param("id")

	project, err := h.projectService.GetProject(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusNotFound, response.Error(http.StatusNotFound, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, project))
}

// UpdateProject updates a project's details
// @Summary      Update project
// @Description  Updates a project's details; only provided fields are changed
// @Tags         projects
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id       path      string                        true  "Project ID"
// @Param        payload  body      service.UpdateProjectRequest  true  "Update Project Payload"
// @Success      200      {object}  response.Response{data=service.ProjectResponse}
// @Failure      400      {object}  response.Response
// @Router       /api/projects/{id} [put]
func (h *ProjectHandler) UpdateProject(c *gin.Context) {
	id := c.Param("id")
	var req service.UpdateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	userID, _ := c.Get("userID")
	userIDStr, _ := userID.(string)

	project, err := h.projectService.UpdateProject(c.Request.Context(), id, req, userIDStr)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, project))
}

// DeleteProject soft deletes a project
// @Summary      Delete project
// @Description  Soft deletes a project by ID
// @Tags         projects
// @Security     BearerAuth
// @Produce      json
// @Param        id   path      string  true  "Project ID"
// @Success      200  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Router       /api/projects/{id} [delete]
func (h *ProjectHandler) DeleteProject(c *gin.Context) {
	id := c.Param("id")
	userID, _ := c.Get("userID")
	userIDStr, _ := userID.(string)

	err := h.projectService.DeleteProject(c.Request.Context(), id, userIDStr)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, "Project deleted successfully"))
}
