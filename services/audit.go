package services

import (
	"encoding/json"
	"log"

	"residency-server/models"
	"residency-server/utils"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const (
	ActionCreateUser            = "CREATE_USER"
	ActionCreateServiceProvider = "CREATE_SERVICE_PROVIDER"
	ActionCreateTower           = "CREATE_TOWER"
	ActionCreateUnit            = "CREATE_UNIT"
	ActionUpdateUnit            = "UPDATE_UNIT"
	ActionCreateAmenity         = "CREATE_AMENITY"
	ActionAssignAmenity         = "ASSIGN_AMENITY"
	ActionApproveBooking        = "APPROVE_BOOKING"
	ActionRejectBooking         = "REJECT_BOOKING"
	ActionUploadUnitPhoto       = "UPLOAD_UNIT_PHOTO"
)

const auditSavepoint = "audit_entry"

// RecordAudit appends an audit row inside the caller's transaction. It never
// fails the caller: a broken entry is logged and rolled back to a savepoint
// so the surrounding writes still commit.
func RecordAudit(db *gorm.DB, actor utils.Actor, action string, targetID *uuid.UUID, details interface{}) {
	entry := models.AuditLog{
		AdminID:   actor.ID,
		Action:    action,
		TargetID:  targetID,
		IPAddress: actor.IP,
	}

	if details != nil {
		raw, err := json.Marshal(details)
		if err != nil {
			log.Printf("audit: could not encode details for %s: %v", action, err)
			return
		}
		entry.Details = datatypes.JSON(raw)
	}

	if _, inTx := db.Statement.ConnPool.(gorm.TxCommitter); !inTx {
		if err := db.Create(&entry).Error; err != nil {
			log.Printf("audit: failed to record %s: %v", action, err)
		}
		return
	}

	if err := db.SavePoint(auditSavepoint).Error; err != nil {
		log.Printf("audit: savepoint failed for %s: %v", action, err)
		return
	}
	if err := db.Create(&entry).Error; err != nil {
		log.Printf("audit: failed to record %s: %v", action, err)
		if err := db.RollbackTo(auditSavepoint).Error; err != nil {
			log.Printf("audit: rollback to savepoint failed: %v", err)
		}
	}
}

type AuditFilter struct {
	Action string
	Limit  int
}

const (
	defaultAuditLimit = 100
	maxAuditLimit     = 500
)

// ListAuditLogs returns entries newest first.
func ListAuditLogs(db *gorm.DB, actor utils.Actor, filter AuditFilter) ([]models.AuditLog, error) {
	if err := utils.Authorize(actor, utils.AdminOnly); err != nil {
		return nil, err
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = defaultAuditLimit
	}
	if limit > maxAuditLimit {
		limit = maxAuditLimit
	}

	query := db.Order(clause.OrderByColumn{Column: clause.Column{Name: "timestamp"}, Desc: true}).Limit(limit)
	if filter.Action != "" {
		query = query.Where("action = ?", filter.Action)
	}

	var logs []models.AuditLog
	if err := query.Find(&logs).Error; err != nil {
		return nil, err
	}
	return logs, nil
}
