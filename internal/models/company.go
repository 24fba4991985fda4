package models

// Company is the tenant root. Every other record belongs to exactly one company.
type Company struct {
	Base
	Name     string `gorm:"not null" json:"name"`
	GSTIN    string `gorm:"column:gstin" json:"gstin,omitempty"`
	IsActive bool   `gorm:"default:true" json:"is_active"`
}
