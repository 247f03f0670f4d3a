package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	PaymentRent    = "Rent"
	PaymentDeposit = "Deposit"
	PaymentFee     = "Fee"

	PaymentPending   = "Pending"
	PaymentCompleted = "Completed"
	PaymentFailed    = "Failed"
)

var PaymentTypes = []string{PaymentRent, PaymentDeposit, PaymentFee}

type Payment struct {
	Base
	LeaseID     uuid.UUID       `json:"lease_id" gorm:"type:uuid;not null;index"`
	Amount      decimal.Decimal `json:"amount" gorm:"type:numeric(10,2);not null"`
	PaymentDate time.Time       `json:"date" gorm:"not null"`
	PaymentType string          `json:"type" gorm:"size:50;not null"`
	Status      string          `json:"status" gorm:"size:50;not null"`

	Lease *Lease `json:"-" gorm:"foreignKey:LeaseID"`
}
