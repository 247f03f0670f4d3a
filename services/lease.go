package services

import (
	"errors"

	"residency-server/models"
	"residency-server/utils"

	"gorm.io/gorm"
)

// CurrentLease is the caller's Active lease. With several, the most recent
// start date wins.
func CurrentLease(db *gorm.DB, actor utils.Actor) (models.Lease, error) {
	if err := utils.Authorize(actor, utils.Authenticated); err != nil {
		return models.Lease{}, err
	}

	var lease models.Lease
	err := db.Preload("Unit.Tower").
		Where("resident_id = ? AND status = ?", actor.ID, models.LeaseActive).
		Order("start_date DESC").
		First(&lease).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return lease, utils.ErrNotFound("No active lease found")
		}
		return lease, err
	}
	return lease, nil
}

// ListLeases returns the caller's Active leases.
func ListLeases(db *gorm.DB, actor utils.Actor) ([]models.Lease, error) {
	if err := utils.Authorize(actor, utils.Authenticated); err != nil {
		return nil, err
	}

	var leases []models.Lease
	err := db.Preload("Unit.Tower").
		Where("resident_id = ? AND status = ?", actor.ID, models.LeaseActive).
		Order("start_date DESC").
		Find(&leases).Error
	if err != nil {
		return nil, err
	}
	return leases, nil
}

// ListTenants returns every Active lease with its resident and unit, one
// entry per lease.
func ListTenants(db *gorm.DB, actor utils.Actor) ([]models.Lease, error) {
	if err := utils.Authorize(actor, utils.AdminOnly); err != nil {
		return nil, err
	}

	var leases []models.Lease
	err := db.Preload("Resident").Preload("Unit.Tower").
		Where("status = ?", models.LeaseActive).
		Order("start_date DESC").
		Find(&leases).Error
	if err != nil {
		return nil, err
	}
	return leases, nil
}
