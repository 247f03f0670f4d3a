package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFixtures(t *testing.T) {
	f, err := LoadFixtures()
	require.NoError(t, err)

	assert.Len(t, f.Users, 3)
	assert.Equal(t, "admin@example.com", f.Users[0].Email)
	assert.True(t, f.Users[0].SuperAdmin)
	assert.False(t, f.Users[1].SuperAdmin)

	require.Len(t, f.Towers, 2)
	assert.Equal(t, 5, f.Towers[0].Units)
	assert.Len(t, f.Amenities, 6)
	assert.Len(t, f.Providers, 5)
	assert.Equal(t, "resident@example.com", f.Lease.Resident)
	assert.Equal(t, 365, f.Lease.Days)
}

func TestOpenTestMigratesSchema(t *testing.T) {
	db := OpenTest(t)
	for _, table := range []string{"users", "towers", "units", "amenities", "unit_amenities", "bookings", "leases", "payments", "service_providers", "audit_logs"} {
		assert.True(t, db.Migrator().HasTable(table), table)
	}
}
