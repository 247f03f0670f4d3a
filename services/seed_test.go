package services

import (
	"testing"

	"residency-server/models"
	"residency-server/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeedIsIdempotent(t *testing.T) {
	f := newFixture(t)
	fixtures, err := storage.LoadFixtures()
	require.NoError(t, err)

	require.NoError(t, Seed(f.db, fixtures))
	require.NoError(t, Seed(f.db, fixtures))

	assert.Equal(t, int64(3), f.count(&models.User{}, ""))
	assert.Equal(t, int64(2), f.count(&models.Tower{}, ""))
	assert.Equal(t, int64(10), f.count(&models.Unit{}, ""))
	assert.Equal(t, int64(6), f.count(&models.Amenity{}, ""))
	assert.Equal(t, int64(5), f.count(&models.ServiceProvider{}, ""))
	assert.Equal(t, int64(1), f.count(&models.Lease{}, "status = ?", models.LeaseActive))
	assert.Equal(t, int64(1), f.count(&models.Booking{}, "status = ?", models.BookingApproved))
	assert.Equal(t, int64(1), f.count(&models.Unit{}, "status = ?", models.UnitOccupied))

	admin, err := Authenticate(f.db, "admin@example.com", "admin123")
	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, admin.Role)
	assert.True(t, admin.IsSuperAdmin)

	regular, err := Authenticate(f.db, "regular_admin@example.com", "regadmin123")
	require.NoError(t, err)
	assert.False(t, regular.IsSuperAdmin)

	resident, err := Authenticate(f.db, "resident@example.com", "resident123")
	require.NoError(t, err)
	lease, err := CurrentLease(f.db, actorFor(resident))
	require.NoError(t, err)
	assert.Equal(t, "1500.00", lease.RentAmount.StringFixed(2))
	assert.Equal(t, "A-101", lease.Unit.UnitNumber)
}
