package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/hengrui/sitecms-backend/internal/common"
	"github.com/hengrui/sitecms-backend/internal/service"
	"github.com/hengrui/sitecms-backend/pkg/ginutil"
)

// AuditHandler serves the admin audit log view
type AuditHandler struct {
	service *service.AuditService
}

// NewAuditHandler creates a new AuditHandler
func NewAuditHandler(service *service.AuditService) *AuditHandler {
	return &AuditHandler{service: service}
}

// ListAuditLogs godoc
// @Summary      Audit log
// @Tags         audit
// @Produce      json
// @Param        action    query  string  false  "Action filter (e.g. CONTENT_APPROVAL_APPROVED)"
// @Param        severity  query  string  false  "Severity filter (INFO, WARNING)"
// @Param        user_id   query  string  false  "User ID filter"
// @Param        page      query  int     false  "Page number"
// @Param        limit     query  int     false  "Items per page"
// @Success      200  {object}  common.APIResponse{data=[]domain.AuditLog}
// @Security     BearerAuth
// @Router       /admin/audit-logs [get]
func (h *AuditHandler) ListAuditLogs(c *gin.Context) {
	page := ginutil.QueryInt(c, "page", 1)
	limit := ginutil.QueryInt(c, "limit", 50)
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 200 {
		limit = 50
	}

	logs, total, err := h.service.List(c.Query("action"), c.Query("severity"), c.Query("user_id"), page, limit)
	if err != nil {
		common.ErrorResponse(c, 500, "Failed to fetch audit logs", err)
		return
	}

	common.SuccessResponse(c, logs, &common.Meta{Page: page, Limit: limit, Total: total})
}
