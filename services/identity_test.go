package services

import (
	"testing"

	"residency-server/models"
	"residency-server/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func profile(email, role string) NewUser {
	return NewUser{Email: email, Password: "password1", Role: role, FirstName: "Jane", LastName: "Roe", Phone: "+1 (555) 010-2030"}
}

func TestAuthenticate(t *testing.T) {
	f := newFixture(t)
	user, err := Register(f.db, profile("Jane@Example.com", ""))
	require.NoError(t, err)
	assert.Equal(t, "jane@example.com", user.Email)
	assert.Equal(t, models.RoleResident, user.Role)
	assert.Equal(t, "+15550102030", user.Phone)

	got, err := Authenticate(f.db, "jane@example.com", "password1")
	require.NoError(t, err)
	assert.Equal(t, user.ID, got.ID)

	_, wrongPassword := Authenticate(f.db, "jane@example.com", "nope")
	_, unknownEmail := Authenticate(f.db, "who@example.com", "password1")
	assert.Equal(t, utils.KindAuthentication, kindOf(wrongPassword))
	assert.Equal(t, wrongPassword.Error(), unknownEmail.Error())
}

func TestRegister(t *testing.T) {
	f := newFixture(t)

	_, err := Register(f.db, profile("a@example.com", models.RoleStaff))
	require.NoError(t, err)

	_, err = Register(f.db, profile("A@example.com", ""))
	assert.Equal(t, utils.KindConflict, kindOf(err))

	_, err = Register(f.db, profile("boss@example.com", models.RoleAdmin))
	assert.Equal(t, utils.KindAuthorization, kindOf(err))

	_, err = Register(f.db, profile("x@example.com", "Landlord"))
	assert.Equal(t, utils.KindValidation, kindOf(err))

	missing := profile("y@example.com", "")
	missing.LastName = " "
	_, err = Register(f.db, missing)
	assert.Equal(t, utils.KindValidation, kindOf(err))

	short := profile("z@example.com", "")
	short.Password = "abc"
	_, err = Register(f.db, short)
	assert.Equal(t, utils.KindValidation, kindOf(err))
}

func TestCreateUserAdminHierarchy(t *testing.T) {
	f := newFixture(t)
	superAdmin := f.superAdmin()
	admin := f.admin()
	resident := f.resident()

	_, err := CreateUser(f.db, resident, profile("r@example.com", models.RoleResident))
	assert.Equal(t, utils.KindAuthorization, kindOf(err))

	_, err = CreateUser(f.db, admin, profile("second-admin@example.com", models.RoleAdmin))
	var appErr *utils.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, utils.KindAuthorization, appErr.Kind)
	assert.Equal(t, "super_admin_required", appErr.Code)
	assert.Zero(t, f.count(&models.User{}, "email = ?", "second-admin@example.com"))

	created, err := CreateUser(f.db, superAdmin, profile("second-admin@example.com", models.RoleAdmin))
	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, created.Role)
	assert.False(t, created.IsSuperAdmin)

	var stored models.User
	require.NoError(t, f.db.First(&stored, "id = ?", created.ID).Error)
	assert.False(t, stored.IsSuperAdmin)

	staff, err := CreateUser(f.db, admin, profile("staff@example.com", models.RoleStaff))
	require.NoError(t, err)
	assert.Equal(t, models.RoleStaff, staff.Role)
}

func TestCreateUserValidation(t *testing.T) {
	f := newFixture(t)
	admin := f.admin()

	noRole := profile("n@example.com", "")
	_, err := CreateUser(f.db, admin, noRole)
	assert.Equal(t, utils.KindValidation, kindOf(err))

	_, err = CreateUser(f.db, admin, profile("n@example.com", "Janitor"))
	assert.Equal(t, utils.KindValidation, kindOf(err))

	_, err = CreateUser(f.db, admin, profile("n@example.com", models.RoleResident))
	require.NoError(t, err)

	_, err = CreateUser(f.db, admin, profile("n@example.com", models.RoleResident))
	assert.Equal(t, utils.KindConflict, kindOf(err))
}

func TestCreateUserIsAudited(t *testing.T) {
	f := newFixture(t)
	admin := f.admin()

	var created models.User
	err := f.db.Transaction(func(tx *gorm.DB) error {
		var err error
		created, err = CreateUser(tx, admin, profile("audited@example.com", models.RoleResident))
		return err
	})
	require.NoError(t, err)

	var entry models.AuditLog
	require.NoError(t, f.db.Where("action = ?", ActionCreateUser).First(&entry).Error)
	assert.Equal(t, admin.ID, entry.AdminID)
	assert.Equal(t, created.ID, *entry.TargetID)
	assert.Equal(t, "127.0.0.1", entry.IPAddress)
	assert.JSONEq(t, `{"email":"audited@example.com","role":"Resident"}`, string(entry.Details))
}

func TestListUsersHidesAdminsFromRegularAdmins(t *testing.T) {
	f := newFixture(t)
	superAdmin := f.superAdmin()
	admin := f.admin()
	f.resident()
	f.user(models.RoleStaff, false)

	visible, err := ListUsers(f.db, admin)
	require.NoError(t, err)
	assert.Len(t, visible, 2)
	for _, u := range visible {
		assert.NotEqual(t, models.RoleAdmin, u.Role)
	}

	everyone, err := ListUsers(f.db, superAdmin)
	require.NoError(t, err)
	assert.Len(t, everyone, 4)

	_, err = ListUsers(f.db, f.resident())
	assert.Equal(t, utils.KindAuthorization, kindOf(err))
}
