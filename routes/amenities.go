package routes

import (
	"residency-server/models"
	"residency-server/services"
	"residency-server/storage"
	"residency-server/utils"

	"github.com/kataras/iris/v12"
	"gorm.io/gorm"
)

type AmenityInput struct {
	Name        string `json:"name" validate:"required,max=100"`
	Category    string `json:"category"`
	Description string `json:"description"`
	IsBookable  bool   `json:"is_bookable"`
}

func GetAmenities(ctx iris.Context) {
	amenities, err := services.ListAmenities(storage.DB)
	if err != nil {
		utils.WriteError(ctx, err)
		return
	}

	utils.JSONList(ctx, mapViews(amenities, func(a models.Amenity) amenityView {
		return amenityView{ID: a.ID, Name: a.Name, Category: a.Category, Description: a.Description, IsBookable: a.IsBookable}
	}))
}

func CreateAmenity(ctx iris.Context) {
	var input AmenityInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	var amenity models.Amenity
	err := inTx(func(tx *gorm.DB) error {
		var err error
		amenity, err = services.CreateAmenity(tx, utils.GetActor(ctx), services.AmenityInput{
			Name:        input.Name,
			Category:    input.Category,
			Description: input.Description,
			IsBookable:  input.IsBookable,
		})
		return err
	})
	if err != nil {
		utils.WriteError(ctx, err)
		return
	}

	utils.JSONCreated(ctx, "Amenity created", amenity.ID)
}
