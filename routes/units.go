package routes

import (
	"fmt"
	"net/http"
	"strings"

	"residency-server/models"
	"residency-server/services"
	"residency-server/storage"
	"residency-server/utils"

	"github.com/google/uuid"
	"github.com/kataras/iris/v12"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type CreateUnitInput struct {
	TowerID      string          `json:"tower_id" validate:"required,uuid"`
	UnitNumber   string          `json:"unit_number" validate:"required,max=20"`
	Floor        *int            `json:"floor" validate:"required"`
	Status       string          `json:"status"`
	MonthlyRent  decimal.Decimal `json:"monthly_rent"`
	Photos       []string        `json:"photos"`
	NearbyPlaces []string        `json:"nearby_places"`
	Amenities    []string        `json:"amenities"`
}

// UpdateUnitInput fields left out of the body stay untouched.
type UpdateUnitInput struct {
	UnitNumber   *string          `json:"unit_number" validate:"omitempty,max=20"`
	Floor        *int             `json:"floor"`
	Status       *string          `json:"status"`
	MonthlyRent  *decimal.Decimal `json:"monthly_rent"`
	Photos       *[]string        `json:"photos"`
	NearbyPlaces *[]string        `json:"nearby_places"`
	Amenities    *[]string        `json:"amenities"`
}

type AssignAmenityInput struct {
	AmenityID string `json:"amenity_id" validate:"required,uuid"`
}

type UnitPhotoInput struct {
	Image string `json:"image" validate:"required"`
}

func GetUnits(ctx iris.Context) {
	units, err := services.ListUnits(storage.DB, utils.GetActor(ctx))
	if err != nil {
		utils.WriteError(ctx, err)
		return
	}
	utils.JSONList(ctx, mapViews(units, newUnitView))
}

func GetUnit(ctx iris.Context) {
	id, ok := idParam(ctx)
	if !ok {
		return
	}

	unit, err := services.GetUnit(storage.DB, id)
	if err != nil {
		utils.WriteError(ctx, err)
		return
	}
	if !utils.GetActor(ctx).IsAdmin() && unit.Status != models.UnitVacant {
		utils.WriteError(ctx, utils.ErrNotFound("Unit not found"))
		return
	}

	ctx.JSON(newUnitView(unit))
}

func CreateUnit(ctx iris.Context) {
	var input CreateUnitInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	towerID, err := uuid.Parse(input.TowerID)
	if err != nil {
		utils.WriteError(ctx, utils.ErrValidation("Invalid tower_id"))
		return
	}

	var unit models.Unit
	err = inTx(func(tx *gorm.DB) error {
		var err error
		unit, err = services.CreateUnit(tx, utils.GetActor(ctx), services.UnitInput{
			TowerID:      towerID,
			UnitNumber:   input.UnitNumber,
			Floor:        *input.Floor,
			Status:       input.Status,
			MonthlyRent:  input.MonthlyRent,
			Photos:       input.Photos,
			NearbyPlaces: input.NearbyPlaces,
			AmenityIDs:   parseIDs(input.Amenities),
		})
		return err
	})
	if err != nil {
		utils.WriteError(ctx, err)
		return
	}

	utils.JSONCreated(ctx, "Unit created", unit.ID)
}

func UpdateUnit(ctx iris.Context) {
	id, ok := idParam(ctx)
	if !ok {
		return
	}

	var input UpdateUnitInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	patch := services.UnitPatch{
		UnitNumber:   input.UnitNumber,
		Floor:        input.Floor,
		Status:       input.Status,
		MonthlyRent:  input.MonthlyRent,
		Photos:       input.Photos,
		NearbyPlaces: input.NearbyPlaces,
	}
	if input.Amenities != nil {
		ids := parseIDs(*input.Amenities)
		patch.AmenityIDs = &ids
	}

	err := inTx(func(tx *gorm.DB) error {
		_, err := services.UpdateUnit(tx, utils.GetActor(ctx), id, patch)
		return err
	})
	if err != nil {
		utils.WriteError(ctx, err)
		return
	}

	utils.JSONUpdated(ctx, "Unit updated", id)
}

func AssignAmenity(ctx iris.Context) {
	unitID, ok := idParam(ctx)
	if !ok {
		return
	}

	var input AssignAmenityInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	amenityID, err := uuid.Parse(input.AmenityID)
	if err != nil {
		utils.WriteError(ctx, utils.ErrValidation("Invalid amenity_id"))
		return
	}

	err = inTx(func(tx *gorm.DB) error {
		return services.AssignAmenity(tx, utils.GetActor(ctx), unitID, amenityID)
	})
	if err != nil {
		utils.WriteError(ctx, err)
		return
	}

	utils.JSONCreated(ctx, "Amenity assigned", unitID)
}

// UploadUnitPhoto stores a base64 image in the photo bucket and appends its
// URL to the unit.
func UploadUnitPhoto(ctx iris.Context) {
	unitID, ok := idParam(ctx)
	if !ok {
		return
	}

	var input UnitPhotoInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	data, err := storage.DecodeBase64Image(input.Image)
	if err != nil {
		utils.WriteError(ctx, utils.ErrValidation(err.Error()))
		return
	}

	if _, err := services.GetUnit(storage.DB, unitID); err != nil {
		utils.WriteError(ctx, err)
		return
	}

	ext := strings.TrimPrefix(http.DetectContentType(data), "image/")
	key := fmt.Sprintf("units/%s/%s.%s", unitID, uuid.NewString(), ext)
	url, err := storage.Photos.Save(ctx.Request().Context(), key, data)
	if err != nil {
		utils.WriteError(ctx, err)
		return
	}

	err = inTx(func(tx *gorm.DB) error {
		_, err := services.AddUnitPhoto(tx, utils.GetActor(ctx), unitID, url)
		return err
	})
	if err != nil {
		utils.WriteError(ctx, err)
		return
	}

	ctx.StatusCode(iris.StatusCreated)
	ctx.JSON(iris.Map{"message": "Photo uploaded", "id": unitID, "url": url})
}
