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

func CreateTower(db *gorm.DB, actor utils.Actor, name, location string) (models.Tower, error) {
	if err := utils.Authorize(actor, utils.AdminOnly); err != nil {
		return models.Tower{}, err
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return models.Tower{}, utils.ErrValidation("Missing required field: name")
	}

	var count int64
	if err := db.Model(&models.Tower{}).Where("name = ?", name).Count(&count).Error; err != nil {
		return models.Tower{}, err
	}
	if count > 0 {
		return models.Tower{}, utils.ErrConflict("Tower with this name already exists")
	}

	tower := models.Tower{Name: name, Location: strings.TrimSpace(location)}
	if err := db.Create(&tower).Error; err != nil {
		return models.Tower{}, conflictOr(err, "Tower with this name already exists")
	}

	RecordAudit(db, actor, ActionCreateTower, &tower.ID, map[string]string{"name": tower.Name})
	return tower, nil
}

func ListTowers(db *gorm.DB) ([]models.Tower, error) {
	var towers []models.Tower
	if err := db.Order("name ASC").Find(&towers).Error; err != nil {
		return nil, err
	}
	return towers, nil
}

type UnitInput struct {
	TowerID      uuid.UUID
	UnitNumber   string
	Floor        int
	Status       string
	MonthlyRent  decimal.Decimal
	Photos       []string
	NearbyPlaces []string
	AmenityIDs   []uuid.UUID
}

// UnitPatch carries only the fields a caller supplied. A non-nil AmenityIDs
// replaces the whole amenity set.
type UnitPatch struct {
	UnitNumber   *string
	Floor        *int
	Status       *string
	MonthlyRent  *decimal.Decimal
	Photos       *[]string
	NearbyPlaces *[]string
	AmenityIDs   *[]uuid.UUID
}

func CreateUnit(db *gorm.DB, actor utils.Actor, in UnitInput) (models.Unit, error) {
	if err := utils.Authorize(actor, utils.AdminOnly); err != nil {
		return models.Unit{}, err
	}
	if strings.TrimSpace(in.UnitNumber) == "" {
		return models.Unit{}, utils.ErrValidation("Missing required field: unit_number")
	}
	if in.Status == "" {
		in.Status = models.UnitVacant
	}
	if err := validateAdminUnitStatus(in.Status); err != nil {
		return models.Unit{}, err
	}
	if in.MonthlyRent.IsNegative() {
		return models.Unit{}, utils.ErrValidation("monthly_rent cannot be negative")
	}

	var tower models.Tower
	if err := db.First(&tower, "id = ?", in.TowerID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Unit{}, utils.ErrNotFound("Tower not found")
		}
		return models.Unit{}, err
	}

	amenities, err := knownAmenities(db, in.AmenityIDs)
	if err != nil {
		return models.Unit{}, err
	}

	unit := models.Unit{
		TowerID:      tower.ID,
		UnitNumber:   strings.TrimSpace(in.UnitNumber),
		Floor:        in.Floor,
		Status:       in.Status,
		MonthlyRent:  in.MonthlyRent,
		Photos:       models.StringList(in.Photos),
		NearbyPlaces: models.StringList(in.NearbyPlaces),
		Amenities:    amenities,
	}
	if err := db.Omit("Amenities.*").Create(&unit).Error; err != nil {
		return models.Unit{}, err
	}
	unit.Tower = &tower

	RecordAudit(db, actor, ActionCreateUnit, &unit.ID, map[string]interface{}{
		"tower":       tower.Name,
		"unit_number": unit.UnitNumber,
		"amenities":   len(amenities),
	})
	return unit, nil
}

func UpdateUnit(db *gorm.DB, actor utils.Actor, id uuid.UUID, patch UnitPatch) (models.Unit, error) {
	if err := utils.Authorize(actor, utils.AdminOnly); err != nil {
		return models.Unit{}, err
	}

	unit, err := loadUnit(db, id)
	if err != nil {
		return models.Unit{}, err
	}

	changed := []string{}
	if patch.UnitNumber != nil {
		number := strings.TrimSpace(*patch.UnitNumber)
		if number == "" {
			return models.Unit{}, utils.ErrValidation("unit_number cannot be empty")
		}
		unit.UnitNumber = number
		changed = append(changed, "unit_number")
	}
	if patch.Floor != nil {
		unit.Floor = *patch.Floor
		changed = append(changed, "floor")
	}
	if patch.Status != nil && *patch.Status != unit.Status {
		if err := validateAdminUnitStatus(*patch.Status); err != nil {
			return models.Unit{}, err
		}
		if unit.Status == models.UnitOccupied {
			if err := ensureNoActiveLease(db, unit.ID); err != nil {
				return models.Unit{}, err
			}
		}
		unit.Status = *patch.Status
		changed = append(changed, "status")
	}
	if patch.MonthlyRent != nil {
		if patch.MonthlyRent.IsNegative() {
			return models.Unit{}, utils.ErrValidation("monthly_rent cannot be negative")
		}
		unit.MonthlyRent = *patch.MonthlyRent
		changed = append(changed, "monthly_rent")
	}
	if patch.Photos != nil {
		unit.Photos = models.StringList(*patch.Photos)
		changed = append(changed, "photos")
	}
	if patch.NearbyPlaces != nil {
		unit.NearbyPlaces = models.StringList(*patch.NearbyPlaces)
		changed = append(changed, "nearby_places")
	}

	if err := db.Omit(unitAssociations...).Save(&unit).Error; err != nil {
		return models.Unit{}, err
	}

	if patch.AmenityIDs != nil {
		amenities, err := knownAmenities(db, *patch.AmenityIDs)
		if err != nil {
			return models.Unit{}, err
		}
		association := db.Model(&unit).Association("Amenities")
		if len(amenities) == 0 {
			err = association.Clear()
		} else {
			err = association.Replace(amenities)
		}
		if err != nil {
			return models.Unit{}, err
		}
		unit.Amenities = amenities
		changed = append(changed, "amenities")
	}

	RecordAudit(db, actor, ActionUpdateUnit, &unit.ID, map[string]interface{}{"fields": changed})
	return unit, nil
}

// ListUnits shows every unit to admins and only Vacant units to everyone
// else.
func ListUnits(db *gorm.DB, actor utils.Actor) ([]models.Unit, error) {
	query := db.Preload("Tower").Preload("Amenities", func(tx *gorm.DB) *gorm.DB {
		return tx.Order("name ASC")
	}).Order("unit_number ASC")
	if !actor.IsAdmin() {
		query = query.Where("status = ?", models.UnitVacant)
	}

	var units []models.Unit
	if err := query.Find(&units).Error; err != nil {
		return nil, err
	}
	return units, nil
}

func GetUnit(db *gorm.DB, id uuid.UUID) (models.Unit, error) {
	return loadUnit(db, id)
}

// AddUnitPhoto appends an already stored photo URL to the unit.
func AddUnitPhoto(db *gorm.DB, actor utils.Actor, id uuid.UUID, url string) (models.Unit, error) {
	if err := utils.Authorize(actor, utils.AdminOnly); err != nil {
		return models.Unit{}, err
	}
	unit, err := loadUnit(db, id)
	if err != nil {
		return models.Unit{}, err
	}

	photos := append(models.Strings(unit.Photos), url)
	unit.Photos = models.StringList(photos)
	if err := db.Model(&unit).Update("photos", unit.Photos).Error; err != nil {
		return models.Unit{}, err
	}

	RecordAudit(db, actor, ActionUploadUnitPhoto, &unit.ID, map[string]string{"url": url})
	return unit, nil
}

type AmenityInput struct {
	Name        string
	Category    string
	Description string
	IsBookable  bool
}

func CreateAmenity(db *gorm.DB, actor utils.Actor, in AmenityInput) (models.Amenity, error) {
	if err := utils.Authorize(actor, utils.AdminOnly); err != nil {
		return models.Amenity{}, err
	}
	in.Name = strings.TrimSpace(in.Name)
	if in.Name == "" {
		return models.Amenity{}, utils.ErrValidation("Missing required field: name")
	}
	if in.Category == "" {
		in.Category = models.AmenityUnitFeature
	}
	if !slices.Contains(models.AmenityCategories, in.Category) {
		return models.Amenity{}, utils.ErrValidationf("Invalid category. Must be one of: %s", strings.Join(models.AmenityCategories, ", "))
	}

	var count int64
	if err := db.Model(&models.Amenity{}).Where("name = ?", in.Name).Count(&count).Error; err != nil {
		return models.Amenity{}, err
	}
	if count > 0 {
		return models.Amenity{}, utils.ErrConflict("Amenity with this name already exists")
	}

	amenity := models.Amenity{
		Name:        in.Name,
		Category:    in.Category,
		Description: in.Description,
		IsBookable:  in.IsBookable,
	}
	if err := db.Create(&amenity).Error; err != nil {
		return models.Amenity{}, conflictOr(err, "Amenity with this name already exists")
	}

	RecordAudit(db, actor, ActionCreateAmenity, &amenity.ID, map[string]string{
		"name":     amenity.Name,
		"category": amenity.Category,
	})
	return amenity, nil
}

func ListAmenities(db *gorm.DB) ([]models.Amenity, error) {
	var amenities []models.Amenity
	if err := db.Order("name ASC").Find(&amenities).Error; err != nil {
		return nil, err
	}
	return amenities, nil
}

// AssignAmenity adds one amenity to a unit. Assigning a pair twice is a
// conflict.
func AssignAmenity(db *gorm.DB, actor utils.Actor, unitID, amenityID uuid.UUID) error {
	if err := utils.Authorize(actor, utils.AdminOnly); err != nil {
		return err
	}

	unit, err := loadUnit(db, unitID)
	if err != nil {
		return err
	}

	var amenity models.Amenity
	if err := db.First(&amenity, "id = ?", amenityID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.ErrNotFound("Amenity not found")
		}
		return err
	}

	var count int64
	if err := db.Model(&models.UnitAmenity{}).
		Where("unit_id = ? AND amenity_id = ?", unit.ID, amenity.ID).
		Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return utils.ErrConflict("Amenity already assigned to this unit")
	}

	link := models.UnitAmenity{UnitID: unit.ID, AmenityID: amenity.ID}
	if err := db.Create(&link).Error; err != nil {
		return conflictOr(err, "Amenity already assigned to this unit")
	}

	RecordAudit(db, actor, ActionAssignAmenity, &unit.ID, map[string]string{
		"amenity_id": amenity.ID.String(),
		"amenity":    amenity.Name,
	})
	return nil
}

var unitAssociations = []string{"Tower", "Amenities"}

// Occupied is reached only through booking approval.
func validateAdminUnitStatus(status string) error {
	if !slices.Contains(models.UnitStatuses, status) {
		return utils.ErrValidationf("Invalid status. Must be one of: %s", strings.Join(models.UnitStatuses, ", "))
	}
	if status == models.UnitOccupied {
		return utils.ErrState("Units become Occupied only when a booking is approved")
	}
	return nil
}

// ensureNoActiveLease keeps a leased unit Occupied.
func ensureNoActiveLease(db *gorm.DB, unitID uuid.UUID) error {
	var count int64
	if err := db.Model(&models.Lease{}).
		Where("unit_id = ? AND status = ?", unitID, models.LeaseActive).
		Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return utils.ErrState("Unit has an active lease")
	}
	return nil
}

func loadUnit(db *gorm.DB, id uuid.UUID) (models.Unit, error) {
	var unit models.Unit
	err := db.Preload("Tower").Preload("Amenities", func(tx *gorm.DB) *gorm.DB {
		return tx.Order("name ASC")
	}).First(&unit, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return unit, utils.ErrNotFound("Unit not found")
		}
		return unit, err
	}
	return unit, nil
}

// knownAmenities resolves ids to amenities, dropping any that do not exist.
func knownAmenities(db *gorm.DB, ids []uuid.UUID) ([]models.Amenity, error) {
	amenities := []models.Amenity{}
	if len(ids) == 0 {
		return amenities, nil
	}
	if err := db.Where("id IN ?", ids).Order("name ASC").Find(&amenities).Error; err != nil {
		return nil, err
	}
	return amenities, nil
}
