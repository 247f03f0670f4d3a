package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Base is embedded by every entity. IDs are assigned client side so callers
// can reference a row (audit target, response body) before the commit.
type Base struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (b *Base) BeforeCreate(tx *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return nil
}

// All returns every model in creation order for AutoMigrate.
func All() []interface{} {
	return []interface{}{
		&User{},
		&Tower{},
		&Amenity{},
		&Unit{},
		&Booking{},
		&Lease{},
		&Payment{},
		&ServiceProvider{},
		&AuditLog{},
	}
}
