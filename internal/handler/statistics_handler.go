package handler

import (
	"net/http"
	"strconv"
	"time"

	"digiwave-backend/internal/middleware"
	"digiwave-backend/internal/service"
	"digiwave-backend/pkg/response"

	"github.com/gin-gonic/gin"
)

type StatisticsHandler struct {
	statisticsService service.StatisticsService
}

func NewStatisticsHandler(statisticsService service.StatisticsService) *StatisticsHandler {
	return &StatisticsHandler{statisticsService: statisticsService}
}

func (h *StatisticsHandler) RegisterRoutes(router *gin.RouterGroup) {
	stats := router.Group("/api/statistics")
	{
		stats.GET("/dashboard", middleware.RequirePermission("dashboard.read"), h.GetDashboard)
		stats.GET("/top-projects", middleware.RequirePermission("dashboard.read"), h.GetTopProjects)
	}
}

// parseTimeRange reads from/to query params, defaulting to the current month.
func parseTimeRange(c *gin.Context) (time.Time, time.Time, error) {
	now := time.Now()
	from := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	to := now

	if s := c.Query("from"); s != "" {
		parsed, err := time.Parse("2006-01-02", s)
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
		from = parsed
	}
	if s := c.Query("to"); s != "" {
		parsed, err := time.Parse("2006-01-02", s)
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
		// Include the whole end day
		to = parsed.Add(24*time.Hour - time.Nanosecond)
	}

	return from, to, nil
}

// GetDashboard returns aggregate counts and sums for the dashboard
// @Summary      Dashboard statistics
// @Description  Returns project, quotation, payment, leave and hosting aggregates for a time range
// @Tags         statistics
// @Security     BearerAuth
// @Produce      json
// @Param        from  query     string  false  "Start date (YYYY-MM-DD, default first of current month)"
// @Param        to    query     string  false  "End date (YYYY-MM-DD, default today)"
// @Success      200   {object}  response.Response{data=model.DashboardResponse}
// @Failure      400   {object}  response.Response
// @Router       /api/statistics/dashboard [get]
func (h *StatisticsHandler) GetDashboard(c *gin.Context) {
	from, to, err := parseTimeRange(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid date format, expected YYYY-MM-DD"))
		return
	}

	dashboard, err := h.statisticsService.GetDashboard(c.Request.Context(), from, to)
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, dashboard))
}

// GetTopProjects returns projects ranked by payments received
// @Summary      Top projects by revenue
// @Description  Returns projects ranked by total payments received within a time range
// @Tags         statistics
// @Security     BearerAuth
// @Produce      json
// @Param        from   query     string  false  "Start date (YYYY-MM-DD, default first of current month)"
// @Param        to     query     string  false  "End date (YYYY-MM-DD, default today)"
// @Param        limit  query     int     false  "Number of projects to return (default 5)"
// @Success      200    {object}  response.Response{data=[]model.ProjectRevenue}
// @Failure      400    {object}  response.Response
// @Router       /api/statistics/top-projects [get]
func (h *StatisticsHandler) GetTopProjects(c *gin.Context) {
	from, to, err := parseTimeRange(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid date format, expected YYYY-MM-DD"))
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "5"))

	projects, err := h.statisticsService.GetTopProjects(c.Request.Context(), from, to, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, projects))
}
