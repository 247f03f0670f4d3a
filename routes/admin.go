package routes

import (
	"strings"

	"residency-server/models"
	"residency-server/services"
	"residency-server/storage"
	"residency-server/utils"

	"github.com/kataras/iris/v12"
	"gorm.io/gorm"
)

// CreateUserInput is checked field by field in the service so the role rules
// are reported in a fixed order.
type CreateUserInput struct {
	Email     string `json:"email" validate:"max=255"`
	Password  string `json:"password" validate:"max=256"`
	Role      string `json:"role"`
	FirstName string `json:"first_name" validate:"max=100"`
	LastName  string `json:"last_name" validate:"max=100"`
	Phone     string `json:"phone" validate:"max=20"`
}

// POST /admin/users
func AdminCreateUser(ctx iris.Context) {
	var input CreateUserInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	var user models.User
	err := inTx(func(tx *gorm.DB) error {
		var err error
		user, err = services.CreateUser(tx, utils.GetActor(ctx), services.NewUser{
			Email:     input.Email,
			Password:  input.Password,
			Role:      input.Role,
			FirstName: input.FirstName,
			LastName:  input.LastName,
			Phone:     input.Phone,
		})
		return err
	})
	if err != nil {
		utils.WriteError(ctx, err)
		return
	}

	utils.JSONCreated(ctx, "User created successfully", user.ID)
}

// GET /admin/users
func AdminListUsers(ctx iris.Context) {
	users, err := services.ListUsers(storage.DB, utils.GetActor(ctx))
	if err != nil {
		utils.WriteError(ctx, err)
		return
	}
	utils.JSONList(ctx, mapViews(users, newUserView))
}

// GET /admin/audit-logs?action=&limit=
func AdminAuditLogs(ctx iris.Context) {
	filter := services.AuditFilter{
		Action: strings.ToUpper(strings.TrimSpace(ctx.URLParamDefault("action", ""))),
		Limit:  ctx.URLParamIntDefault("limit", 0),
	}

	logs, err := services.ListAuditLogs(storage.DB, utils.GetActor(ctx), filter)
	if err != nil {
		utils.WriteError(ctx, err)
		return
	}
	utils.JSONList(ctx, logs)
}
