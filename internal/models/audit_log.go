package models

// AuditLog records mutating operations on ledger records for compliance.
type AuditLog struct {
	Base
	CompanyID    string `gorm:"type:uuid;not null;index" json:"company_id"`
	UserID       string `gorm:"index" json:"user_id"`
	Action       string `gorm:"not null" json:"action"`
	ResourceType string `gorm:"not null" json:"resource_type"`
	ResourceID   string `json:"resource_id"`
	IPAddress    string `json:"ip_address"`
	Changes      string `json:"changes,omitempty"`
}
