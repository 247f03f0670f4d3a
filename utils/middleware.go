package utils

import (
	"residency-server/models"

	"github.com/google/uuid"
	"github.com/kataras/iris/v12"
	"github.com/kataras/iris/v12/middleware/jwt"
)

// Actor is the authenticated caller as seen by the domain services.
type Actor struct {
	ID           uuid.UUID
	Role         string
	IsSuperAdmin bool
	IP           string
}

func (a Actor) IsAdmin() bool { return a.Role == models.RoleAdmin }

type Capability int

const (
	Authenticated Capability = iota
	AdminOnly
	SuperAdminOnly
)

// Authorize is the single role gate used by route middleware and by services
// that need a finer check than their route.
func Authorize(actor Actor, c Capability) error {
	if actor.ID == uuid.Nil {
		return ErrAuthentication("Missing or invalid token")
	}
	switch c {
	case AdminOnly:
		if !actor.IsAdmin() {
			return ErrForbidden("Admin access required")
		}
	case SuperAdminOnly:
		if !actor.IsAdmin() || !actor.IsSuperAdmin {
			return &AppError{Kind: KindAuthorization, Code: "super_admin_required", Message: "Only Super Admins can create Admin users"}
		}
	}
	return nil
}

const actorKey = "actor"

// Require runs after VerifyAccessToken. It turns the verified claims into an
// Actor, applies Authorize and stores the actor for the handler.
func Require(c Capability) iris.Handler {
	return func(ctx iris.Context) {
		claims, ok := jwt.Get(ctx).(*AccessToken)
		if !ok {
			JSONError(ctx, iris.StatusUnauthorized, "unauthorized", "Missing or invalid token")
			return
		}

		id, err := uuid.Parse(claims.ID)
		if err != nil {
			JSONError(ctx, iris.StatusUnauthorized, "unauthorized", "Missing or invalid token")
			return
		}

		actor := Actor{ID: id, Role: claims.Role, IsSuperAdmin: claims.IsSuperAdmin, IP: clientIP(ctx)}
		if err := Authorize(actor, c); err != nil {
			WriteError(ctx, err)
			return
		}

		ctx.Values().Set(actorKey, actor)
		ctx.Next()
	}
}

func GetActor(ctx iris.Context) Actor {
	actor, _ := ctx.Values().Get(actorKey).(Actor)
	return actor
}
