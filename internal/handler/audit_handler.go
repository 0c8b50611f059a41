package handler

import (
	"net/http"

	"digiwave-backend/internal/middleware"
	"digiwave-backend/internal/service"
	"digiwave-backend/pkg/pagination"
	"digiwave-backend/pkg/response"

	"github.com/gin-gonic/gin"
)

type AuditHandler struct {
	auditService service.AuditService
}

func NewAuditHandler(auditService service.AuditService) *AuditHandler {
	return &AuditHandler{auditService: auditService}
}

func (h *AuditHandler) RegisterRoutes(router *gin.RouterGroup) {
	audit := router.Group("/api/audit-logs")
	{
		audit.GET("", middleware.RequirePermission("audit.read"), h.ListAuditLogs)
	}
}

// ListAuditLogs returns a paginated trail of recorded actions
// @Summary      List audit logs
// @Description  Retrieves a paginated audit trail, newest first, optionally filtered by user or action
// @Tags         audit
// @Security     BearerAuth
// @Produce      json
// @Param        user_id  query     string  false  "Filter by acting user ID"
// @Param        action   query     string  false  "Filter by action (e.g. CREATE_QUOTATION, APPROVE_LEAVE)"
// @Param        page     query     int     false  "Page number (default 1)"
// @Param        limit    query     int     false  "Number of items per page (default 20)"
// @Success      200      {object}  response.Response{data=object}
// @Failure      500      {object}  response.Response
// @Router       /api/audit-logs [get]
func (h *AuditHandler) ListAuditLogs(c *gin.Context) {
	params := pagination.Parse(c)

	filter := service.AuditFilter{
		UserID: c.Query("user_id"),
		Action: c.Query("action"),
		Page:   params.Page,
		Limit:  params.Limit,
	}

	logs, total, err := h.auditService.ListAuditLogs(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, map[string]interface{}{
		"logs":  logs,
		"total": total,
		"page":  params.Page,
		"limit": params.Limit,
	}))
}
