package services

import (
	"fmt"
	"log"

	"residency-server/models"
	"residency-server/storage"
	"residency-server/utils"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Seed loads demo fixtures. Every row is looked up by its natural key first,
// so running it twice changes nothing.
func Seed(db *gorm.DB, f storage.Fixtures) error {
	users := map[string]models.User{}
	for _, uf := range f.Users {
		user, err := seedUser(db, uf)
		if err != nil {
			return err
		}
		users[user.Email] = user
	}

	amenities := make([]models.Amenity, 0, len(f.Amenities))
	for _, af := range f.Amenities {
		amenity := models.Amenity{Name: af.Name}
		err := db.Where("name = ?", af.Name).Attrs(models.Amenity{
			Category:    af.Category,
			Description: af.Description,
			IsBookable:  af.Bookable,
		}).FirstOrCreate(&amenity).Error
		if err != nil {
			return fmt.Errorf("seed amenity %s: %w", af.Name, err)
		}
		amenities = append(amenities, amenity)
	}

	unitFeatures := []models.Amenity{}
	for _, a := range amenities {
		if a.Category == models.AmenityUnitFeature {
			unitFeatures = append(unitFeatures, a)
		}
	}

	rent, err := decimal.NewFromString(f.UnitTemplate.MonthlyRent)
	if err != nil {
		return fmt.Errorf("seed unit rent: %w", err)
	}

	for _, tf := range f.Towers {
		tower := models.Tower{Name: tf.Name}
		if err := db.Where("name = ?", tf.Name).Attrs(models.Tower{Location: tf.Location}).FirstOrCreate(&tower).Error; err != nil {
			return fmt.Errorf("seed tower %s: %w", tf.Name, err)
		}

		for i := 1; i <= tf.Units; i++ {
			number := fmt.Sprintf("%s-10%d", tf.UnitPrefix, i)
			var count int64
			if err := db.Model(&models.Unit{}).Where("tower_id = ? AND unit_number = ?", tower.ID, number).Count(&count).Error; err != nil {
				return err
			}
			if count > 0 {
				continue
			}

			// units get a rotating slice of the in-unit features
			features := []models.Amenity{}
			if len(unitFeatures) > 0 {
				features = unitFeatures[:1+(i-1)%len(unitFeatures)]
			}

			unit := models.Unit{
				TowerID:      tower.ID,
				UnitNumber:   number,
				Floor:        f.UnitTemplate.Floor,
				Status:       models.UnitVacant,
				MonthlyRent:  rent,
				Photos:       models.StringList(f.UnitTemplate.Photos),
				NearbyPlaces: models.StringList(f.UnitTemplate.NearbyPlaces),
				Amenities:    features,
			}
			if err := db.Omit("Amenities.*").Create(&unit).Error; err != nil {
				return fmt.Errorf("seed unit %s: %w", number, err)
			}
			log.Printf("seed: created unit %s", number)
		}
	}

	if resident, ok := users[f.Lease.Resident]; ok {
		if err := seedLease(db, resident, f.Lease); err != nil {
			return err
		}
	}

	for _, pf := range f.Providers {
		var count int64
		if err := db.Model(&models.ServiceProvider{}).Where("phone_number = ?", utils.NormalizePhoneNumber(pf.PhoneNumber)).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			continue
		}
		provider := models.ServiceProvider{
			Name:         pf.Name,
			ServiceType:  pf.ServiceType,
			PhoneNumber:  utils.NormalizePhoneNumber(pf.PhoneNumber),
			Rating:       pf.Rating,
			IsVerified:   true,
			Availability: pf.Availability,
		}
		if err := db.Create(&provider).Error; err != nil {
			return fmt.Errorf("seed provider %s: %w", pf.Name, err)
		}
	}

	return nil
}

// seedUser creates the fixture user, or re-asserts role and super-admin flag
// on an existing one.
func seedUser(db *gorm.DB, uf storage.UserFixture) (models.User, error) {
	var user models.User
	found, err := findUserByEmail(db, &user, uf.Email)
	if err != nil {
		return user, err
	}

	if found {
		if user.Role != uf.Role || user.IsSuperAdmin != uf.SuperAdmin {
			err := db.Model(&user).Updates(map[string]interface{}{
				"role":           uf.Role,
				"is_super_admin": uf.SuperAdmin,
			}).Error
			if err != nil {
				return user, err
			}
			user.Role, user.IsSuperAdmin = uf.Role, uf.SuperAdmin
		}
		return user, nil
	}

	hashed, err := HashPassword(uf.Password)
	if err != nil {
		return user, err
	}
	user = models.User{
		Email:        normalizeEmail(uf.Email),
		Password:     hashed,
		Role:         uf.Role,
		IsSuperAdmin: uf.SuperAdmin,
		FirstName:    uf.FirstName,
		LastName:     uf.LastName,
		Phone:        utils.NormalizePhoneNumber(uf.Phone),
	}
	if err := db.Create(&user).Error; err != nil {
		return user, fmt.Errorf("seed user %s: %w", uf.Email, err)
	}
	log.Printf("seed: created %s user %s", user.Role, user.Email)
	return user, nil
}

// seedLease gives the resident an Active lease on the first vacant unit,
// backed by an Approved booking, unless they already hold one.
func seedLease(db *gorm.DB, resident models.User, lf storage.LeaseFixture) error {
	var count int64
	if err := db.Model(&models.Lease{}).Where("resident_id = ? AND status = ?", resident.ID, models.LeaseActive).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	var unit models.Unit
	res := db.Where("status = ?", models.UnitVacant).Order("unit_number ASC").Limit(1).Find(&unit)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return nil
	}

	rent, err := decimal.NewFromString(lf.Rent)
	if err != nil {
		return fmt.Errorf("seed lease rent: %w", err)
	}

	start := now()
	booking := models.NewBooking(resident.ID, models.UnitTarget(unit.ID), start, start.AddDate(0, 0, lf.Days))
	booking.Status = models.BookingApproved
	if err := db.Create(&booking).Error; err != nil {
		return err
	}

	today := startOfDay(start)
	lease := models.Lease{
		UnitID:     unit.ID,
		ResidentID: resident.ID,
		BookingID:  &booking.ID,
		StartDate:  today,
		EndDate:    today.AddDate(0, 0, lf.Days),
		RentAmount: rent,
		Status:     models.LeaseActive,
	}
	if err := db.Create(&lease).Error; err != nil {
		return err
	}

	log.Printf("seed: leased unit %s to %s", unit.UnitNumber, resident.Email)
	return db.Model(&unit).Update("status", models.UnitOccupied).Error
}
