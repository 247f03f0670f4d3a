package routes

import (
	"residency-server/services"
	"residency-server/storage"
	"residency-server/utils"

	"github.com/kataras/iris/v12"
)

// GET /stats
func GetStats(ctx iris.Context) {
	stats, err := services.Occupancy(storage.DB, utils.GetActor(ctx))
	if err != nil {
		utils.WriteError(ctx, err)
		return
	}
	ctx.JSON(stats)
}
