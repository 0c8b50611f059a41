package handler

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"digiwave-backend/internal/middleware"
	"digiwave-backend/internal/service"
	"digiwave-backend/pkg/response"

	"github.com/gin-gonic/gin"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type ReportHandler struct {
	reportService service.ReportService
}

func NewReportHandler(reportService service.ReportService) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

func (h *ReportHandler) RegisterRoutes(router *gin.RouterGroup) {
	reports := router.Group("/api/reports")
	reports.Use(middleware.RequirePermission("reports.read"))
	{
		reports.GET("/attendance", h.AttendanceReport)
		reports.GET("/payments", h.PaymentReport)
	}
}

// AttendanceReport streams a monthly attendance summary as an Excel file
// @Summary      Attendance report
// @Description  Generates a monthly attendance summary workbook and streams it as an attachment
// @Tags         reports
// @Security     BearerAuth
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param        year   query     int  false  "Year (default current)"
// @Param        month  query     int  false  "Month 1-12 (default current)"
// @Success      200    {file}    binary
// @Failure      400    {object}  response.Response
// @Router       /api/reports/attendance [get]
func (h *ReportHandler) AttendanceReport(c *gin.Context) {
	now := time.Now()
	year, _ := strconv.Atoi(c.DefaultQuery("year", strconv.Itoa(now.Year())))
	monthNum, _ := strconv.Atoi(c.DefaultQuery("month", strconv.Itoa(int(now.Month()))))
	if monthNum < 1 || monthNum > 12 {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "month must be between 1 and 12"))
		return
	}

	filename, data, err := h.reportService.AttendanceReport(c.Request.Context(), year, time.Month(monthNum))
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, err.Error()))
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))
	c.Data(http.StatusOK, xlsxContentType, data)
}

// PaymentReport streams payments within a date range as an Excel file
// @Summary      Payment report
// @Description  Generates a payment listing workbook for a date range and streams it as an attachment
// @Tags         reports
// @Security     BearerAuth
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param        from  query     string  false  "Start date (YYYY-MM-DD, default first of current month)"
// @Param        to    query     string  false  "End date (YYYY-MM-DD, default today)"
// @Success      200   {file}    binary
// @Failure      400   {object}  response.Response
// @Router       /api/reports/payments [get]
func (h *ReportHandler) PaymentReport(c *gin.Context) {
	from, to, err := parseTimeRange(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid date format, expected YYYY-MM-DD"))
		return
	}

	filename, data, err := h.reportService.PaymentReport(c.Request.Context(), from, to)
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, err.Error()))
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))
	c.Data(http.StatusOK, xlsxContentType, data)
}
