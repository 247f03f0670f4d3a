package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	LeaseActive     = "Active"
	LeaseTerminated = "Terminated"
	LeaseExpired    = "Expired"
)

type Lease struct {
	Base
	UnitID     uuid.UUID       `json:"unit_id" gorm:"type:uuid;not null;index"`
	ResidentID uuid.UUID       `json:"resident_id" gorm:"type:uuid;not null;index"`
	BookingID  *uuid.UUID      `json:"booking_id,omitempty" gorm:"type:uuid;uniqueIndex"`
	StartDate  time.Time       `json:"start_date" gorm:"type:date;not null"`
	EndDate    time.Time       `json:"end_date" gorm:"type:date;not null"`
	RentAmount decimal.Decimal `json:"rent_amount" gorm:"type:numeric(10,2);not null"`
	Status     string          `json:"status" gorm:"size:50;not null;index"`

	Unit     *Unit     `json:"-" gorm:"foreignKey:UnitID"`
	Resident *User     `json:"-" gorm:"foreignKey:ResidentID"`
	Payments []Payment `json:"-" gorm:"foreignKey:LeaseID"`
}
