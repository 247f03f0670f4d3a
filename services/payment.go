package services

import (
	"errors"
	"strings"

	"residency-server/models"
	"residency-server/utils"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/exp/slices"
	"gorm.io/gorm"
)

type PaymentInput struct {
	LeaseID uuid.UUID
	Amount  decimal.Decimal
	Type    string
}

// RecordPayment stores a payment as already Completed; there is no gateway.
// Residents may only pay against their own leases.
func RecordPayment(db *gorm.DB, actor utils.Actor, in PaymentInput) (models.Payment, error) {
	if err := utils.Authorize(actor, utils.Authenticated); err != nil {
		return models.Payment{}, err
	}
	if in.Type == "" {
		in.Type = models.PaymentRent
	}
	if !slices.Contains(models.PaymentTypes, in.Type) {
		return models.Payment{}, utils.ErrValidationf("Invalid payment type. Must be one of: %s", strings.Join(models.PaymentTypes, ", "))
	}
	if !in.Amount.IsPositive() {
		return models.Payment{}, utils.ErrValidation("amount must be greater than zero")
	}

	var lease models.Lease
	if err := db.First(&lease, "id = ?", in.LeaseID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Payment{}, utils.ErrNotFound("Lease not found")
		}
		return models.Payment{}, err
	}
	if !actor.IsAdmin() && lease.ResidentID != actor.ID {
		return models.Payment{}, utils.ErrForbidden("You can only pay for your own lease")
	}

	payment := models.Payment{
		LeaseID:     lease.ID,
		Amount:      in.Amount.Round(2),
		PaymentDate: now(),
		PaymentType: in.Type,
		Status:      models.PaymentCompleted,
	}
	if err := db.Create(&payment).Error; err != nil {
		return models.Payment{}, err
	}
	return payment, nil
}

// ListPayments returns all payments to admins, otherwise those on leases the
// caller holds. Newest first.
func ListPayments(db *gorm.DB, actor utils.Actor) ([]models.Payment, error) {
	if err := utils.Authorize(actor, utils.Authenticated); err != nil {
		return nil, err
	}

	query := db.Preload("Lease.Resident").Preload("Lease.Unit.Tower").Order("payments.payment_date DESC")
	if !actor.IsAdmin() {
		query = query.Joins("JOIN leases ON leases.id = payments.lease_id").
			Where("leases.resident_id = ?", actor.ID)
	}

	var payments []models.Payment
	if err := query.Find(&payments).Error; err != nil {
		return nil, err
	}
	return payments, nil
}
