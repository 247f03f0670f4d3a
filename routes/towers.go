package routes

import (
	"residency-server/models"
	"residency-server/services"
	"residency-server/storage"
	"residency-server/utils"

	"github.com/kataras/iris/v12"
	"gorm.io/gorm"
)

type TowerInput struct {
	Name     string `json:"name" validate:"required,max=100"`
	Location string `json:"location" validate:"max=255"`
}

func GetTowers(ctx iris.Context) {
	towers, err := services.ListTowers(storage.DB)
	if err != nil {
		utils.WriteError(ctx, err)
		return
	}

	utils.JSONList(ctx, mapViews(towers, func(t models.Tower) towerView {
		return towerView{ID: t.ID, Name: t.Name, Location: t.Location}
	}))
}

func CreateTower(ctx iris.Context) {
	var input TowerInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	var tower models.Tower
	err := inTx(func(tx *gorm.DB) error {
		var err error
		tower, err = services.CreateTower(tx, utils.GetActor(ctx), input.Name, input.Location)
		return err
	})
	if err != nil {
		utils.WriteError(ctx, err)
		return
	}

	utils.JSONCreated(ctx, "Tower created", tower.ID)
}
