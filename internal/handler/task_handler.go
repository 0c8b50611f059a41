package handler

import (
	"net/http"

	"digiwave-backend/internal/middleware"
	"digiwave-backend/internal/service"
	"digiwave-backend/pkg/pagination"
	"digiwave-backend/pkg/response"

	"github.com/gin-gonic/gin"
)

type TaskHandler struct {
	taskService service.TaskService
}

func NewTaskHandler(taskService service.TaskService) *TaskHandler {
	return &TaskHandler{taskService: taskService}
}

func (h *TaskHandler) RegisterRoutes(router *gin.RouterGroup) {
	tasks := router.Group("/api/tasks")
	{
		tasks.POST("", middleware.RequirePermission("tasks.write"), h.CreateTask)
		tasks.GET("", middleware.RequirePermission("tasks.read"), h.ListTasks)
		tasks.GET("/:id", middleware.RequirePermission("tasks.read"), h.GetTask)
		tasks.PUT("/:id", middleware.RequirePermission("tasks.write"), h.UpdateTask)
		tasks.DELETE("/:id", middleware.RequirePermission("tasks.delete"), h.DeleteTask)
	}
}

// CreateTask creates a task under a project
// @Summary      Create task
// @Description  Creates a task under a project, optionally assigned to a user
// @Tags         tasks
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        payload  body      service.CreateTaskRequest  true  "Create Task Payload"
// @Success      201      {object}  response.Response{data=service.TaskResponse}
// @Failure      400      {object}  response.Response
// @Router       /api/tasks [post]
func (h *TaskHandler) CreateTask(c *gin.Context) {
	var req service.CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	task, err := h.taskService.CreateTask(c.Request.Context(), req)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}

	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, task))
}

// ListTasks returns a paginated list of tasks
// @Summary      List tasks
// @Description  Retrieves a paginated list of tasks, optionally filtered by project, assignee or status
// @Tags         tasks
// @Security     BearerAuth
// @Produce      json
// @Param        project_id   query     string  false  "Filter by project ID"
// @Param        assignee_id  query     string  false  "Filter by assignee ID"
// @Param        status       query     string  false  "Filter by status (TODO, IN_PROGRESS, DONE)"
// @Param        search       query     string  false  "Search by task title"
// @Param        page         query     int     false  "Page number (default 1)"
// @Param        limit        query     int     false  "Number of items per page (default 20)"
// @Success      200          {object}  response.Response{data=object}
// @Failure      500          {object}  response.Response
// @Router       /api/tasks [get]
func (h *TaskHandler) ListTasks(c *gin.Context) {
	params := pagination.Parse(c)

	filter := service.TaskFilter{
		ProjectID:  c.Query("project_id"),
		AssigneeID: c.Query("assignee_id"),
		Status:     c.Query("status"),
		Search:     params.Search,
		Page:       params.Page,
		Limit:      params.Limit,
	}

	tasks, total, err := h.taskService.ListTasks(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, map[string]interface{}{
		"tasks": tasks,
		"total": total,
		"page":  params.Page,
		"limit": params.Limit,
	}))
}

// GetTask returns a single task
// @Summary      Get task by ID
// @Tags         tasks
// @Security     BearerAuth
// @Produce      json
// @Param        id   path      string  true  "Task ID"
// @Success      200  {object}  response.Response{data=service.TaskResponse}
// @Failure      404  {object}  response.Response
// @Router       /api/tasks/{id} [get]
func (h *TaskHandler) GetTask(c *gin.Context) {
	id := c.Param("id")

	task, err := h.taskService.GetTask(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusNotFound, response.Error(http.StatusNotFound, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, task))
}

// UpdateTask updates a task's details
// @Summary      Update task
// @Description  Updates a task's details; only provided fields are changed
// @Tags         tasks
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id       path      string                     true  "Task ID"
// @Param        payload  body      service.UpdateTaskRequest  true  "Update Task Payload"
// @Success      200      {object}  response.Response{data=service.TaskResponse}
// @Failure      400      {object}  response.Response
// @Router       /api/tasks/{id} [put]
func (h *TaskHandler) UpdateTask(c *gin.Context) {
	id := c.Param("id")
	var req service.UpdateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	task, err := h.taskService.UpdateTask(c.Request.Context(), id, req)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, task))
}

// DeleteTask removes a task
// @Summary      Delete task
// @Tags         tasks
// @Security     BearerAuth
// @Produce      json
// @Param        id   path      string  true  "Task ID"
// @Success      200  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Router       /api/tasks/{id} [delete]
func (h *TaskHandler) DeleteTask(c *gin.Context) {
	id := c.Param("id")

	err := h.taskService.DeleteTask(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, "Task deleted successfully"))
}
