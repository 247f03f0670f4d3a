package services

import (
	"fmt"
	"testing"

	"residency-server/models"
	"residency-server/storage"
	"residency-server/utils"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fixture struct {
	t  *testing.T
	db *gorm.DB
	n  int
}

func newFixture(t *testing.T) *fixture {
	return &fixture{t: t, db: storage.OpenTest(t)}
}

func (f *fixture) user(role string, superAdmin bool) (models.User, utils.Actor) {
	f.t.Helper()
	f.n++
	hashed, err := HashPassword("secret123")
	require.NoError(f.t, err)

	user := models.User{
		Email:        fmt.Sprintf("user%d@example.com", f.n),
		Password:     hashed,
		Role:         role,
		IsSuperAdmin: superAdmin,
		FirstName:    "Test",
		LastName:     fmt.Sprintf("User%d", f.n),
	}
	require.NoError(f.t, f.db.Create(&user).Error)
	return user, actorFor(user)
}

func (f *fixture) superAdmin() utils.Actor {
	_, actor := f.user(models.RoleAdmin, true)
	return actor
}

func (f *fixture) admin() utils.Actor {
	_, actor := f.user(models.RoleAdmin, false)
	return actor
}

func (f *fixture) resident() utils.Actor {
	_, actor := f.user(models.RoleResident, false)
	return actor
}

func (f *fixture) tower() models.Tower {
	f.t.Helper()
	f.n++
	tower := models.Tower{Name: fmt.Sprintf("Tower %d", f.n), Location: "North Wing"}
	require.NoError(f.t, f.db.Create(&tower).Error)
	return tower
}

func (f *fixture) unit(status string, rent int64) models.Unit {
	f.t.Helper()
	tower := f.tower()
	unit := models.Unit{
		TowerID:     tower.ID,
		UnitNumber:  fmt.Sprintf("U-%d", f.n),
		Floor:       1,
		Status:      status,
		MonthlyRent: decimal.NewFromInt(rent),
	}
	require.NoError(f.t, f.db.Create(&unit).Error)
	return unit
}

func (f *fixture) amenity(name, category string, bookable bool) models.Amenity {
	f.t.Helper()
	amenity := models.Amenity{Name: name, Category: category, IsBookable: bookable}
	require.NoError(f.t, f.db.Create(&amenity).Error)
	return amenity
}

func (f *fixture) count(model interface{}, query string, args ...interface{}) int64 {
	f.t.Helper()
	var n int64
	q := f.db.Model(model)
	if query != "" {
		q = q.Where(query, args...)
	}
	require.NoError(f.t, q.Count(&n).Error)
	return n
}

// inTx runs fn the way a request handler does.
func (f *fixture) inTx(fn func(tx *gorm.DB) error) error {
	return f.db.Transaction(fn)
}

func actorFor(user models.User) utils.Actor {
	return utils.Actor{ID: user.ID, Role: user.Role, IsSuperAdmin: user.IsSuperAdmin, IP: "127.0.0.1"}
}

func kindOf(err error) utils.ErrorKind {
	return utils.KindOf(err)
}

func ptr[T any](v T) *T { return &v }
