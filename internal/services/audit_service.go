package services

import (
	"encoding/json"

	"gorm.io/gorm"

	apperrors "khata/internal/errors"
	"khata/internal/logger"
	"khata/internal/models"
	"khata/internal/pagination"
)

// auditService records and lists the company's audit trail.
type auditService struct {
	db *gorm.DB
}

// NewAuditService creates a new AuditServicer.
func NewAuditService(db *gorm.DB) AuditServicer {
	return &auditService{db: db}
}

// Log records an audit event after the ledger change it describes has
// committed. Failures are logged and swallowed: the ledger write already
// happened and must still be reported as a success.
func (s *auditService) Log(companyID, userID, action, resourceType, resourceID, ipAddress string, changes map[string]interface{}) {
	log := logger.Named("audit").With(
		"company_id", companyID,
		"user_id", userID,
		"action", action,
		"resource_type", resourceType,
		"resource_id", resourceID,
	)

	entry := &models.AuditLog{
		CompanyID:    companyID,
		UserID:       userID,
		Action:       action,
		ResourceType: resourceType,
		ResourceID:   resourceID,
		IPAddress:    ipAddress,
	}
	if len(changes) > 0 {
		data, err := json.Marshal(changes)
		if err != nil {
			log.Errorw("failed to marshal audit changes", "error", err)
			data = []byte("{}")
		}
		entry.Changes = string(data)
	}

	if err := s.db.Create(entry).Error; err != nil {
		log.Errorw("failed to create audit log entry", "error", err)
	}
}

// GetCompanyAuditLogs lists the company's audit entries, newest first.
func (s *auditService) GetCompanyAuditLogs(companyID string, page pagination.PageRequest, filter AuditFilter) (*pagination.PageResponse[models.AuditLog], error) {
	base := s.db.Model(&models.AuditLog{}).Where("company_id = ?", companyID)
	if filter.ResourceType != "" {
		base = base.Where("resource_type = ?", filter.ResourceType)
	}
	if filter.ResourceID != "" {
		base = base.Where("resource_id = ?", filter.ResourceID)
	}
	if filter.Action != "" {
		base = base.Where("action = ?", filter.Action)
	}

	result, err := pagination.Fetch[models.AuditLog](base, page, pagination.OrderBy("created_at DESC", "id DESC"))
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return result, nil
}
