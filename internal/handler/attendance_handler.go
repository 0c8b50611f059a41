package handler

import (
	"net/http"
	"strconv"
	"time"

	"digiwave-backend/internal/middleware"
	"digiwave-backend/internal/service"
	"digiwave-backend/pkg/pagination"
	"digiwave-backend/pkg/response"

	"github.com/gin-gonic/gin"
)

type AttendanceHandler struct {
	attendanceService service.AttendanceService
}

func NewAttendanceHandler(attendanceService service.AttendanceService) *AttendanceHandler {
	return &AttendanceHandler{attendanceService: attendanceService}
}

func (h *AttendanceHandler) RegisterRoutes(router *gin.RouterGroup) {
	attendance := router.Group("/api/attendance")
	{
		attendance.POST("", middleware.RequirePermission("attendance.write"), h.MarkAttendance)
		attendance.GET("", middleware.RequirePermission("attendance.read"), h.ListAttendance)
		attendance.GET("/monthly", middleware.RequirePermission("attendance.read"), h.MonthlyReport)
	}
}

// MarkAttendance records or updates attendance for a user on a date
// @Summary      Mark attendance
// @Description  Records attendance for a user on a date. Marking the same user and date again overwrites the earlier entry
// @Tags         attendance
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        payload  body      service.MarkAttendanceRequest  true  "Mark Attendance Payload"
// @Success      200      {object}  response.Response{data=service.AttendanceResponse}
// @Failure      400      {object}  response.Response
// @Router       /api/attendance [post]
func (h *AttendanceHandler) MarkAttendance(c *gin.Context) {
	var req service.MarkAttendanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	attendance, err := h.attendanceService.MarkAttendance(c.Request.Context(), req)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, attendance))
}

// ListAttendance returns a paginated list of attendance entries
// @Summary      List attendance
// @Description  Retrieves a paginated list of attendance entries, optionally filtered by user, status or date range
// @Tags         attendance
// @Security     BearerAuth
// @Produce      json
// @Param        user_id  query     string  false  "Filter by user ID"
// @Param        status   query     string  false  "Filter by status (PRESENT, ABSENT, HALF_DAY, LEAVE)"
// @Param        from     query     string  false  "Start date (YYYY-MM-DD)"
// @Param        to       query     string  false  "End date (YYYY-MM-DD)"
// @Param        page     query     int     false  "Page number (default 1)"
// @Param        limit    query     int     false  "Number of items per page (default 20)"
// @Success      200      {object}  response.Response{data=object}
// @Failure      500      {object}  response.Response
// @Router       /api/attendance [get]
func (h *AttendanceHandler) ListAttendance(c *gin.Context) {
	params := pagination.Parse(c)

	filter := service.AttendanceFilter{
		UserID: c.Query("user_id"),
		Status: c.Query("status"),
		From:   c.Query("from"),
		To:     c.Query("to"),
		Page:   params.Page,
		Limit:  params.Limit,
	}

	entries, total, err := h.attendanceService.ListAttendance(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, map[string]interface{}{
		"attendance": entries,
		"total":      total,
		"page":       params.Page,
		"limit":      params.Limit,
	}))
}

// MonthlyReport returns per-user attendance summaries for a month
// @Summary      Monthly attendance report
// @Description  Returns per-user counts of present, absent, half-day and leave days for a month
// @Tags         attendance
// @Security     BearerAuth
// @Produce      json
// @Param        year   query     int  false  "Year (default current)"
// @Param        month  query     int  false  "Month 1-12 (default current)"
// @Success      200    {object}  response.Response{data=[]service.MonthlySummary}
// @Failure      400    {object}  response.Response
// @Router       /api/attendance/monthly [get]
func (h *AttendanceHandler) MonthlyReport(c *gin.Context) {
	now := time.Now()
	year, _ := strconv.Atoi(c.DefaultQuery("year", strconv.Itoa(now.Year())))
	monthNum, _ := strconv.Atoi(c.DefaultQuery("month", strconv.Itoa(int(now.Month()))))
	if monthNum < 1 || monthNum > 12 {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "month must be between 1 and 12"))
		return
	}

	summaries, err := h.attendanceService.MonthlyReport(c.Request.Context(), year, time.Month(monthNum))
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, summaries))
}
