package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// AuditLog rows are append only.
type AuditLog struct {
	ID        uuid.UUID      `json:"id" gorm:"type:uuid;primaryKey"`
	AdminID   uuid.UUID      `json:"admin_id" gorm:"type:uuid;index;not null"`
	Action    string         `json:"action" gorm:"size:64;index;not null"`
	TargetID  *uuid.UUID     `json:"target_id" gorm:"type:uuid;index"`
	Details   datatypes.JSON `json:"details"`
	IPAddress string         `json:"ip_address" gorm:"size:64"`
	Timestamp time.Time      `json:"timestamp" gorm:"index;not null"`
}

func (a *AuditLog) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	if a.Timestamp.IsZero() {
		a.Timestamp = time.Now().UTC()
	}
	return nil
}
