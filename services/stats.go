package services

import (
	"math"

	"residency-server/models"
	"residency-server/utils"

	"gorm.io/gorm"
)

type OccupancyStats struct {
	TotalUnits     int64   `json:"total_units"`
	OccupiedUnits  int64   `json:"occupied_units"`
	AvailableUnits int64   `json:"available_units"`
	OccupancyRate  float64 `json:"occupancy_rate"`
}

// Occupancy counts units by status. The rate is a percentage rounded to two
// decimals, 0 when there are no units.
func Occupancy(db *gorm.DB, actor utils.Actor) (OccupancyStats, error) {
	var stats OccupancyStats
	if err := utils.Authorize(actor, utils.AdminOnly); err != nil {
		return stats, err
	}

	if err := db.Model(&models.Unit{}).Count(&stats.TotalUnits).Error; err != nil {
		return stats, err
	}
	if err := db.Model(&models.Unit{}).Where("status = ?", models.UnitOccupied).Count(&stats.OccupiedUnits).Error; err != nil {
		return stats, err
	}
	if err := db.Model(&models.Unit{}).Where("status = ?", models.UnitVacant).Count(&stats.AvailableUnits).Error; err != nil {
		return stats, err
	}

	if stats.TotalUnits > 0 {
		rate := float64(stats.OccupiedUnits) / float64(stats.TotalUnits) * 100
		stats.OccupancyRate = math.Round(rate*100) / 100
	}
	return stats, nil
}
