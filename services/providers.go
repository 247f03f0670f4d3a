package services

import (
	"strings"

	"residency-server/models"
	"residency-server/utils"

	"golang.org/x/exp/slices"
	"gorm.io/gorm"
)

const (
	defaultProviderRating       = 4.5
	defaultProviderAvailability = "9 AM - 6 PM"

	// AllServiceTypes disables the type filter.
	AllServiceTypes = "All"
)

type ProviderInput struct {
	Name         string
	ServiceType  string
	PhoneNumber  string
	Rating       *float64
	PhotoURL     string
	Availability string
}

// CreateProvider adds a directory entry. Admin-entered providers are always
// verified.
func CreateProvider(db *gorm.DB, actor utils.Actor, in ProviderInput) (models.ServiceProvider, error) {
	if err := utils.Authorize(actor, utils.AdminOnly); err != nil {
		return models.ServiceProvider{}, err
	}

	required := []struct{ name, value string }{
		{"name", in.Name},
		{"service_type", in.ServiceType},
		{"phone_number", in.PhoneNumber},
	}
	for _, f := range required {
		if strings.TrimSpace(f.value) == "" {
			return models.ServiceProvider{}, utils.ErrValidationf("Missing required field: %s", f.name)
		}
	}
	if !slices.Contains(models.ServiceTypes, in.ServiceType) {
		return models.ServiceProvider{}, utils.ErrValidationf("Invalid service type. Must be one of: %s", strings.Join(models.ServiceTypes, ", "))
	}
	if !utils.ValidatePhoneNumber(in.PhoneNumber) {
		return models.ServiceProvider{}, utils.ErrValidation("Invalid phone number")
	}

	rating := defaultProviderRating
	if in.Rating != nil {
		if *in.Rating < 0 || *in.Rating > 5 {
			return models.ServiceProvider{}, utils.ErrValidation("rating must be between 0 and 5")
		}
		rating = *in.Rating
	}
	availability := strings.TrimSpace(in.Availability)
	if availability == "" {
		availability = defaultProviderAvailability
	}

	provider := models.ServiceProvider{
		Name:         strings.TrimSpace(in.Name),
		ServiceType:  in.ServiceType,
		PhoneNumber:  utils.NormalizePhoneNumber(in.PhoneNumber),
		Rating:       rating,
		IsVerified:   true,
		PhotoURL:     in.PhotoURL,
		Availability: availability,
	}
	if err := db.Create(&provider).Error; err != nil {
		return models.ServiceProvider{}, err
	}

	RecordAudit(db, actor, ActionCreateServiceProvider, &provider.ID, map[string]string{
		"name":         provider.Name,
		"service_type": provider.ServiceType,
	})
	return provider, nil
}

// ListProviders filters by service type unless the filter is empty or "All".
func ListProviders(db *gorm.DB, serviceType string) ([]models.ServiceProvider, error) {
	query := db.Order("rating DESC").Order("name ASC")
	if serviceType != "" && serviceType != AllServiceTypes {
		query = query.Where("service_type = ?", serviceType)
	}

	var providers []models.ServiceProvider
	if err := query.Find(&providers).Error; err != nil {
		return nil, err
	}
	return providers, nil
}
