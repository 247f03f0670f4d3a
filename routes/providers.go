package routes

import (
	"residency-server/models"
	"residency-server/services"
	"residency-server/storage"
	"residency-server/utils"

	"github.com/kataras/iris/v12"
	"gorm.io/gorm"
)

type ServiceProviderInput struct {
	Name         string   `json:"name"`
	ServiceType  string   `json:"service_type"`
	PhoneNumber  string   `json:"phone_number"`
	Rating       *float64 `json:"rating"`
	PhotoURL     string   `json:"photo_url" validate:"omitempty,url"`
	Availability string   `json:"availability"`
}

// GetServiceProviders accepts ?type=<service type>; "All" or no value lists
// everyone.
func GetServiceProviders(ctx iris.Context) {
	providers, err := services.ListProviders(storage.DB, ctx.URLParamDefault("type", ""))
	if err != nil {
		utils.WriteError(ctx, err)
		return
	}
	utils.JSONList(ctx, providers)
}

func CreateServiceProvider(ctx iris.Context) {
	var input ServiceProviderInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	var provider models.ServiceProvider
	err := inTx(func(tx *gorm.DB) error {
		var err error
		provider, err = services.CreateProvider(tx, utils.GetActor(ctx), services.ProviderInput{
			Name:         input.Name,
			ServiceType:  input.ServiceType,
			PhoneNumber:  input.PhoneNumber,
			Rating:       input.Rating,
			PhotoURL:     input.PhotoURL,
			Availability: input.Availability,
		})
		return err
	})
	if err != nil {
		utils.WriteError(ctx, err)
		return
	}

	utils.JSONCreated(ctx, "Service provider added", provider.ID)
}
