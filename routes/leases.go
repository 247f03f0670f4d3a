package routes

import (
	"residency-server/services"
	"residency-server/storage"
	"residency-server/utils"

	"github.com/kataras/iris/v12"
)

func GetCurrentLease(ctx iris.Context) {
	lease, err := services.CurrentLease(storage.DB, utils.GetActor(ctx))
	if err != nil {
		utils.WriteError(ctx, err)
		return
	}
	ctx.JSON(newLeaseView(lease))
}

func GetLeases(ctx iris.Context) {
	leases, err := services.ListLeases(storage.DB, utils.GetActor(ctx))
	if err != nil {
		utils.WriteError(ctx, err)
		return
	}
	utils.JSONList(ctx, mapViews(leases, newLeaseView))
}

// GetTenants lists residents holding an Active lease.
func GetTenants(ctx iris.Context) {
	leases, err := services.ListTenants(storage.DB, utils.GetActor(ctx))
	if err != nil {
		utils.WriteError(ctx, err)
		return
	}
	utils.JSONList(ctx, mapViews(leases, newTenantView))
}
