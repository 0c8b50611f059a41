package handler

import (
	"errors"
	"net/http"

	"digiwave-backend/internal/middleware"
	"digiwave-backend/internal/service"
	"digiwave-backend/pkg/pagination"
	"digiwave-backend/pkg/response"

	"github.com/gin-gonic/gin"
)

type LeaveHandler struct {
	leaveService service.LeaveService
}

func NewLeaveHandler(leaveService service.LeaveService) *LeaveHandler {
	return &LeaveHandler{leaveService: leaveService}
}

func (h *LeaveHandler) RegisterRoutes(router *gin.RouterGroup) {
	leaves := router.Group("/api/leaves")
	{
		leaves.POST("", middleware.RequirePermission("leaves.write"), h.ApplyLeave)
		leaves.GET("", middleware.RequirePermission("leaves.read"), h.ListLeaves)
		leaves.PUT("/:id/approve", middleware.RequirePermission("leaves.approve"), h.ApproveLeave)
		leaves.PUT("/:id/reject", middleware.RequirePermission("leaves.approve"), h.RejectLeave)
	}
}

// ApplyLeave files a leave request for the authenticated user
// @Summary      Apply for leave
// @Description  Files a leave request for the authenticated user
// @Tags         leaves
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        payload  body      service.ApplyLeaveRequest  true  "Apply Leave Payload"
// @Success      201      {object}  response.Response{data=service.LeaveResponse}
// @Failure      400      {object}  response.Response
// @Router       /api/leaves [post]
func (h *LeaveHandler) ApplyLeave(c *gin.Context) {
	var req service.ApplyLeaveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	userID, _ := c.Get("userID")
	userIDStr, _ := userID.(string)

	leave, err := h.leaveService.ApplyLeave(c.Request.Context(), req, userIDStr)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}

	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, leave))
}

// ListLeaves returns a paginated list of leave requests
// @Summary      List leaves
// @Description  Retrieves a paginated list of leave requests, optionally filtered by user or status
// @Tags         leaves
// @Security     BearerAuth
// @Produce      json
// @Param        user_id  query     string  false  "Filter by user ID"
// @Param        status   query     string  false  "Filter by status (PENDING, APPROVED, REJECTED)"
// @Param        page     query     int     false  "Page number (default 1)"
// @Param        limit    query     int     false  "Number of items per page (default 20)"
// @Success      200      {object}  response.Response{data=object}
// @Failure      500      {object}  response.Response
// @Router       /api/leaves [get]
func (h *LeaveHandler) ListLeaves(c *gin.Context) {
	params := pagination.Parse(c)

	filter := service.LeaveFilter{
		UserID: c.Query("user_id"),
		Status: c.Query("status"),
		Page:   params.Page,
		Limit:  params.Limit,
	}

	leaves, total, err := h.leaveService.ListLeaves(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, map[string]interface{}{
		"leaves": leaves,
		"total":  total,
		"page":   params.Page,
		"limit":  params.Limit,
	}))
}

// ApproveLeave approves a pending leave request
// @Summary      Approve leave
// @Description  Approves a pending leave request by ID
// @Tags         leaves
// @Security     BearerAuth
// @Produce      json
// @Param        id   path      string  true  "Leave ID"
// @Success      200  {object}  response.Response{data=service.LeaveResponse}
// @Failure      400  {object}  response.Response
// @Failure      409  {object}  response.Response
// @Router       /api/leaves/{id}/approve [put]
func (h *LeaveHandler) ApproveLeave(c *gin.Context) {
	id := c.Param("id")
	userID, _ := c.Get("userID")
	userIDStr, _ := userID.(string)

	leave, err := h.leaveService.ApproveLeave(c.Request.Context(), id, userIDStr)
	if err != nil {
		if errors.Is(err, service.ErrLeaveAlreadyDecided) {
			c.JSON(http.StatusConflict, response.Error(http.StatusConflict, err.Error()))
			return
		}
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, leave))
}

// RejectLeave rejects a pending leave request with a reason
// @Summary      Reject leave
// @Description  Rejects a pending leave request by ID with a rejection reason
// @Tags         leaves
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id       path      string                      true  "Leave ID"
// @Param        payload  body      service.RejectLeaveRequest  true  "Rejection Reason"
// @Success      200      {object}  response.Response{data=service.LeaveResponse}
// @Failure      400      {object}  response.Response
// @Failure      409      {object}  response.Response
// @Router       /api/leaves/{id}/reject [put]
func (h *LeaveHandler) RejectLeave(c *gin.Context) {
	id := c.Param("id")
	var req service.RejectLeaveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	userID, _ := c.Get("userID")
	userIDStr, _ := userID.(string)

	leave, err := h.leaveService.RejectLeave(c.Request.Context(), id, userIDStr, req.Reason)
	if err != nil {
		if errors.Is(err, service.ErrLeaveAlreadyDecided) {
			c.JSON(http.StatusConflict, response.Error(http.StatusConflict, err.Error()))
			return
		}
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, leave))
}
