package handler

import (
	"net/http"

	"digiwave-backend/internal/middleware"
	"digiwave-backend/internal/service"
	"digiwave-backend/pkg/pagination"
	"digiwave-backend/pkg/response"

	"github.com/gin-gonic/gin"
)

type PaymentHandler struct {
	paymentService service.PaymentService
}

func NewPaymentHandler(paymentService service.PaymentService) *PaymentHandler {
	return &PaymentHandler{paymentService: paymentService}
}

func (h *PaymentHandler) RegisterRoutes(router *gin.RouterGroup) {
	payments := router.Group("/api/payments")
	{
		payments.POST("", middleware.RequirePermission("payments.write"), h.CreatePayment)
		payments.GET("", middleware.RequirePermission("payments.read"), h.ListPayments)
		payments.GET("/:id", middleware.RequirePermission("payments.read"), h.GetPayment)
		payments.DELETE("/:id", middleware.RequirePermission("payments.delete"), h.DeletePayment)
	}
}

// CreatePayment records a payment received against a project
// @Summary      Record payment
// @Description  Records a payment received against a project
// @Tags         payments
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        payload  body      service.CreatePaymentRequest  true  "Create Payment Payload"
// @Success      201      {object}  response.Response{data=service.PaymentResponse}
// @Failure      400      {object}  response.Response
// @Router       /api/payments [post]
func (h *PaymentHandler) CreatePayment(c *gin.Context) {
	var req service.CreatePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	userID, _ := c.Get("userID")
	userIDStr, _ := userID.(string)

	payment, err := h.paymentService.CreatePayment(c.Request.Context(), req, userIDStr)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}

	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, payment))
}

// ListPayments returns a paginated list of payments
// @Summary      List payments
// @Description  Retrieves a paginated list of payments, optionally filtered by project or date range
// @Tags         payments
// @Security     BearerAuth
// @Produce      json
// @Param        project_id  query     string  false  "Filter by project ID"
// @Param        from        query     string  false  "Start date (YYYY-MM-DD)"
// @Param        to          query     string  false  "End date (YYYY-MM-DD)"
// @Param        search      query     string  false  "Search by reference or note"
// @Param        page        query     int     false  "Page number (default 1)"
// @Param        limit       query     int     false  "Number of items per page (default 20)"
// @Success      200         {object}  response.Response{data=object}
// @Failure      500         {object}  response.Response
// @Router       /api/payments [get]
func (h *PaymentHandler) ListPayments(c *gin.Context) {
	params := pagination.Parse(c)

	filter := service.PaymentFilter{
		ProjectID: c.Query("project_id"),
		From:      c.Query("from"),
		To:        c.Query("to"),
		Search:    params.Search,
		Page:      params.Page,
		Limit:     params.Limit,
	}

	payments, total, err := h.paymentService.ListPayments(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, map[string]interface{}{
		"payments": payments,
		"total":    total,
		"page":     params.Page,
		"limit":    params.Limit,
	}))
}

// GetPayment returns a single payment
// @Summary      Get payment by ID
// @Description  Fetch a single payment's detail
// @Tags         payments
// @Security     BearerAuth
// @Produce      json
// @Param        id   path      string  true  "Payment ID"
// @Success      200  {object}  response.Response{data=service.PaymentResponse}
// @Failure      404  {object}  response.Response
// @Router       /api/payments/{id} [get]
func (h *PaymentHandler) GetPayment(c *gin.Context) {
	id := c.Param("id")

	payment, err := h.paymentService.GetPayment(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusNotFound, response.Error(http.StatusNotFound, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, payment))
}

// DeletePayment removes a payment record
// @Summary      Delete payment
// @Description  Deletes a payment record by ID
// @Tags         payments
// @Security     BearerAuth
// @Produce      json
// @Param        id   path      string  true  "Payment ID"
// @Success      200  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Router       /api/payments/{id} [delete]
func (h *PaymentHandler) DeletePayment(c *gin.Context) {
	id := c.Param("id")
	userID, _ := c.Get("userID")
	userIDStr, _ := userID.(string)

	err := h.paymentService.DeletePayment(c.Request.Context(), id, userIDStr)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, "Payment deleted successfully"))
}
