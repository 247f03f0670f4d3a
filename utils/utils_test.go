package utils

import (
	"errors"
	"testing"

	"residency-server/models"

	"github.com/google/uuid"
	"github.com/kataras/iris/v12"
	"github.com/stretchr/testify/assert"
)

func TestErrorKindStatus(t *testing.T) {
	cases := map[error]int{
		ErrValidation("x"):         iris.StatusBadRequest,
		ErrState("x"):              iris.StatusBadRequest,
		ErrConflict("x"):           iris.StatusConflict,
		ErrAuthentication("x"):     iris.StatusUnauthorized,
		ErrForbidden("x"):          iris.StatusForbidden,
		ErrNotFound("x"):           iris.StatusNotFound,
		errors.New("db exploded"): iris.StatusInternalServerError,
	}
	for err, status := range cases {
		assert.Equal(t, status, KindOf(err).Status(), err.Error())
	}
}

func TestAuthorize(t *testing.T) {
	resident := Actor{ID: uuid.New(), Role: models.RoleResident}
	admin := Actor{ID: uuid.New(), Role: models.RoleAdmin}
	superAdmin := Actor{ID: uuid.New(), Role: models.RoleAdmin, IsSuperAdmin: true}

	assert.Equal(t, KindAuthentication, KindOf(Authorize(Actor{}, Authenticated)))

	assert.NoError(t, Authorize(resident, Authenticated))
	assert.Equal(t, KindAuthorization, KindOf(Authorize(resident, AdminOnly)))
	assert.NoError(t, Authorize(admin, AdminOnly))

	err := Authorize(admin, SuperAdminOnly)
	var appErr *AppError
	if assert.ErrorAs(t, err, &appErr) {
		assert.Equal(t, KindAuthorization, appErr.Kind)
		assert.Equal(t, "super_admin_required", appErr.Code)
	}
	assert.NoError(t, Authorize(superAdmin, SuperAdminOnly))

	// a super-admin flag on a non-admin role grants nothing
	assert.Error(t, Authorize(Actor{ID: uuid.New(), Role: models.RoleResident, IsSuperAdmin: true}, SuperAdminOnly))
}

func TestNormalizePhoneNumber(t *testing.T) {
	assert.Equal(t, "1234567890", NormalizePhoneNumber("(123) 456-7890"))
	assert.Equal(t, "+919876543210", NormalizePhoneNumber(" +91 98765 43210"))
	assert.Equal(t, "", NormalizePhoneNumber("n/a"))

	assert.True(t, ValidatePhoneNumber("987-654-3210"))
	assert.False(t, ValidatePhoneNumber("12345"))
	assert.False(t, ValidatePhoneNumber("1234567890123456"))
}

type sampleInput struct {
	UnitID string `json:"unit_id" validate:"required"`
}

func TestNewValidatorUsesJSONNames(t *testing.T) {
	err := NewValidator().Struct(sampleInput{})
	if assert.Error(t, err) {
		assert.Contains(t, err.Error(), "unit_id")
	}
}
