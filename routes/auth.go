package routes

import (
	"residency-server/models"
	"residency-server/services"
	"residency-server/storage"
	"residency-server/utils"

	"github.com/kataras/iris/v12"
	"gorm.io/gorm"
)

type LoginUserInput struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type RegisterUserInput struct {
	Email     string `json:"email" validate:"required,max=255,email"`
	Password  string `json:"password" validate:"required,max=256"`
	Role      string `json:"role"`
	FirstName string `json:"first_name" validate:"required,max=100"`
	LastName  string `json:"last_name" validate:"required,max=100"`
	Phone     string `json:"phone" validate:"max=20"`
}

type RefreshTokenInput struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

func Login(ctx iris.Context) {
	var input LoginUserInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	user, err := services.Authenticate(storage.DB, input.Email, input.Password)
	if err != nil {
		utils.WriteError(ctx, err)
		return
	}

	returnUser(ctx, user)
}

func Register(ctx iris.Context) {
	var input RegisterUserInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	var user models.User
	err := inTx(func(tx *gorm.DB) error {
		var err error
		user, err = services.Register(tx, services.NewUser{
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

// Refresh trades a live refresh token for a new pair. The old token cannot
// be used again.
func Refresh(ctx iris.Context) {
	var input RefreshTokenInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	userID, err := utils.RedeemRefreshToken(ctx.Request().Context(), input.RefreshToken)
	if err != nil {
		utils.WriteError(ctx, err)
		return
	}

	user, err := services.GetUser(storage.DB, userID)
	if err != nil {
		if utils.KindOf(err) == utils.KindNotFound {
			err = utils.ErrAuthentication("Invalid refresh token")
		}
		utils.WriteError(ctx, err)
		return
	}

	returnUser(ctx, user)
}

func returnUser(ctx iris.Context, user models.User) {
	tokenPair, err := utils.CreateTokenPair(ctx.Request().Context(), user)
	if err != nil {
		utils.WriteError(ctx, err)
		return
	}

	ctx.JSON(iris.Map{
		"access_token":  tokenPair.AccessToken,
		"refresh_token": tokenPair.RefreshToken,
		"user":          newUserView(user),
	})
}
