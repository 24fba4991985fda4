package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"khata/internal/pagination"
	"khata/internal/services"
)

// AuditHandler exposes the company's audit trail.
type AuditHandler struct {
	auditService services.AuditServicer
}

// NewAuditHandler creates a new AuditHandler.
func NewAuditHandler(auditService services.AuditServicer) *AuditHandler {
	return &AuditHandler{auditService: auditService}
}

// GetAuditLogs handles listing audit entries
// @Summary     List audit log entries
// @Description Get the company's audit trail, newest first
// @Tags        audit
// @Produce     json
// @Security    BearerAuth
// @Param       page          query int    false "Page number (default 1)"
// @Param       page_size     query int    false "Items per page (default 20, max 100)"
// @Param       resource_type query string false "Filter by resource type (payment, contact, bank_account, bank_transfer)"
// @Param       resource_id   query string false "Filter by resource ID"
// @Param       action        query string false "Filter by action, e.g. DELETE_PAYMENT"
// @Success     200 {object} pagination.PageResponse[models.AuditLog] "Paginated audit entries"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /audit-logs [get]
func (h *AuditHandler) GetAuditLogs(c *gin.Context) {
	companyID, err := getCompanyID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var page pagination.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		respondWithError(c, bindError(err))
		return
	}

	result, err := h.auditService.GetCompanyAuditLogs(companyID, page, services.AuditFilter{
		ResourceType: c.Query("resource_type"),
		ResourceID:   c.Query("resource_id"),
		Action:       c.Query("action"),
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}
