package models

import (
	"encoding/json"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

const (
	UnitVacant      = "Vacant"
	UnitOccupied    = "Occupied"
	UnitMaintenance = "Maintenance"
)

var UnitStatuses = []string{UnitVacant, UnitOccupied, UnitMaintenance}

type Unit struct {
	Base
	TowerID      uuid.UUID       `json:"tower_id" gorm:"type:uuid;not null;index"`
	UnitNumber   string          `json:"unit_number" gorm:"size:20;not null"`
	Floor        int             `json:"floor" gorm:"not null"`
	Status       string          `json:"status" gorm:"size:50;not null;index"` // Vacant, Occupied, Maintenance
	MonthlyRent  decimal.Decimal `json:"monthly_rent" gorm:"type:numeric(10,2)"`
	Photos       datatypes.JSON  `json:"photos"`
	NearbyPlaces datatypes.JSON  `json:"nearby_places"`

	Tower     *Tower    `json:"-" gorm:"foreignKey:TowerID"`
	Amenities []Amenity `json:"-" gorm:"many2many:unit_amenities;"`
}

// UnitAmenity is the join row behind Unit.Amenities.
type UnitAmenity struct {
	UnitID    uuid.UUID `gorm:"type:uuid;primaryKey"`
	AmenityID uuid.UUID `gorm:"type:uuid;primaryKey"`
}

// StringList encodes a list for a JSON column. A nil list is stored as [].
func StringList(items []string) datatypes.JSON {
	if items == nil {
		items = []string{}
	}
	b, _ := json.Marshal(items)
	return datatypes.JSON(b)
}

// Strings decodes a JSON list column, returning an empty list for NULL or
// malformed values.
func Strings(raw datatypes.JSON) []string {
	out := []string{}
	if len(raw) == 0 {
		return out
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		return []string{}
	}
	return out
}
