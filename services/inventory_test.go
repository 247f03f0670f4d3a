package services

import (
	"testing"

	"residency-server/models"
	"residency-server/utils"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func amenityNames(unit models.Unit) []string {
	names := []string{}
	for _, a := range unit.Amenities {
		names = append(names, a.Name)
	}
	return names
}

func TestCreateTower(t *testing.T) {
	f := newFixture(t)
	admin := f.admin()

	tower, err := CreateTower(f.db, admin, "Tower A", "North Wing")
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, tower.ID)

	_, err = CreateTower(f.db, admin, "Tower A", "Elsewhere")
	assert.Equal(t, utils.KindConflict, kindOf(err))

	_, err = CreateTower(f.db, admin, "  ", "")
	assert.Equal(t, utils.KindValidation, kindOf(err))

	_, err = CreateTower(f.db, f.resident(), "Tower B", "")
	assert.Equal(t, utils.KindAuthorization, kindOf(err))

	towers, err := ListTowers(f.db)
	require.NoError(t, err)
	assert.Len(t, towers, 1)
}

func TestCreateUnitSkipsUnknownAmenities(t *testing.T) {
	f := newFixture(t)
	admin := f.admin()
	tower := f.tower()
	balcony := f.amenity("Balcony", models.AmenityUnitFeature, false)

	unit, err := CreateUnit(f.db, admin, UnitInput{
		TowerID:     tower.ID,
		UnitNumber:  "A-101",
		Floor:       1,
		MonthlyRent: decimal.NewFromInt(1500),
		Photos:      []string{"https://example.com/1.jpg"},
		AmenityIDs:  []uuid.UUID{balcony.ID, uuid.New()},
	})
	require.NoError(t, err)
	assert.Equal(t, models.UnitVacant, unit.Status)

	got, err := GetUnit(f.db, unit.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"Balcony"}, amenityNames(got))
	assert.Equal(t, []string{"https://example.com/1.jpg"}, models.Strings(got.Photos))
	assert.Equal(t, []string{}, models.Strings(got.NearbyPlaces))
	assert.Equal(t, tower.Name, got.Tower.Name)
}

func TestCreateUnitValidation(t *testing.T) {
	f := newFixture(t)
	admin := f.admin()
	tower := f.tower()

	_, err := CreateUnit(f.db, admin, UnitInput{TowerID: uuid.New(), UnitNumber: "X-1"})
	assert.Equal(t, utils.KindNotFound, kindOf(err))

	_, err = CreateUnit(f.db, admin, UnitInput{TowerID: tower.ID, UnitNumber: "X-1", Status: "Haunted"})
	assert.Equal(t, utils.KindValidation, kindOf(err))

	_, err = CreateUnit(f.db, admin, UnitInput{TowerID: tower.ID, UnitNumber: "X-1", Status: models.UnitOccupied})
	assert.Equal(t, utils.KindState, kindOf(err))

	_, err = CreateUnit(f.db, admin, UnitInput{TowerID: tower.ID})
	assert.Equal(t, utils.KindValidation, kindOf(err))

	_, err = CreateUnit(f.db, admin, UnitInput{TowerID: tower.ID, UnitNumber: "X-1", MonthlyRent: decimal.NewFromInt(-5)})
	assert.Equal(t, utils.KindValidation, kindOf(err))
}

func TestUpdateUnitAppliesOnlySuppliedFields(t *testing.T) {
	f := newFixture(t)
	admin := f.admin()
	unit := f.unit(models.UnitVacant, 900)

	updated, err := UpdateUnit(f.db, admin, unit.ID, UnitPatch{
		Floor:        ptr(7),
		NearbyPlaces: ptr([]string{"Central Park"}),
	})
	require.NoError(t, err)
	assert.Equal(t, 7, updated.Floor)

	got, err := GetUnit(f.db, unit.ID)
	require.NoError(t, err)
	assert.Equal(t, 7, got.Floor)
	assert.Equal(t, unit.UnitNumber, got.UnitNumber)
	assert.Equal(t, models.UnitVacant, got.Status)
	assert.Equal(t, "900.00", got.MonthlyRent.StringFixed(2))
	assert.Equal(t, []string{"Central Park"}, models.Strings(got.NearbyPlaces))

	_, err = UpdateUnit(f.db, admin, unit.ID, UnitPatch{Status: ptr(models.UnitOccupied)})
	assert.Equal(t, utils.KindState, kindOf(err))

	_, err = UpdateUnit(f.db, admin, unit.ID, UnitPatch{Status: ptr(models.UnitMaintenance)})
	require.NoError(t, err)

	_, err = UpdateUnit(f.db, admin, uuid.New(), UnitPatch{})
	assert.Equal(t, utils.KindNotFound, kindOf(err))
}

func TestAmenityAssignmentAndReplacement(t *testing.T) {
	f := newFixture(t)
	admin := f.admin()
	unit := f.unit(models.UnitVacant, 1000)
	balcony := f.amenity("Balcony", models.AmenityUnitFeature, false)
	kitchen := f.amenity("Modern Kitchen", models.AmenityUnitFeature, false)
	ac := f.amenity("Central AC", models.AmenityUnitFeature, false)

	require.NoError(t, AssignAmenity(f.db, admin, unit.ID, balcony.ID))
	got, err := GetUnit(f.db, unit.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"Balcony"}, amenityNames(got))

	err = AssignAmenity(f.db, admin, unit.ID, balcony.ID)
	assert.Equal(t, utils.KindConflict, kindOf(err))

	err = AssignAmenity(f.db, admin, unit.ID, uuid.New())
	assert.Equal(t, utils.KindNotFound, kindOf(err))

	err = AssignAmenity(f.db, admin, uuid.New(), balcony.ID)
	assert.Equal(t, utils.KindNotFound, kindOf(err))

	_, err = UpdateUnit(f.db, admin, unit.ID, UnitPatch{AmenityIDs: ptr([]uuid.UUID{ac.ID, kitchen.ID, uuid.New()})})
	require.NoError(t, err)
	got, err = GetUnit(f.db, unit.ID)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"Central AC", "Modern Kitchen"}, amenityNames(got))

	_, err = UpdateUnit(f.db, admin, unit.ID, UnitPatch{AmenityIDs: ptr([]uuid.UUID{})})
	require.NoError(t, err)
	got, err = GetUnit(f.db, unit.ID)
	require.NoError(t, err)
	assert.Empty(t, got.Amenities)
	assert.Equal(t, int64(3), f.count(&models.Amenity{}, ""))
}

func TestListUnitsByRole(t *testing.T) {
	f := newFixture(t)
	f.unit(models.UnitVacant, 1000)
	f.unit(models.UnitOccupied, 1000)
	f.unit(models.UnitMaintenance, 1000)

	all, err := ListUnits(f.db, f.admin())
	require.NoError(t, err)
	assert.Len(t, all, 3)

	_, staff := f.user(models.RoleStaff, false)
	for _, actor := range []utils.Actor{f.resident(), staff} {
		visible, err := ListUnits(f.db, actor)
		require.NoError(t, err)
		require.Len(t, visible, 1)
		for _, u := range visible {
			assert.Equal(t, models.UnitVacant, u.Status)
		}
	}
}

func TestCreateAmenity(t *testing.T) {
	f := newFixture(t)
	admin := f.admin()

	amenity, err := CreateAmenity(f.db, admin, AmenityInput{Name: "Gym Access", Category: models.AmenityCommonArea, IsBookable: true})
	require.NoError(t, err)
	assert.True(t, amenity.IsBookable)

	defaulted, err := CreateAmenity(f.db, admin, AmenityInput{Name: "Balcony"})
	require.NoError(t, err)
	assert.Equal(t, models.AmenityUnitFeature, defaulted.Category)

	_, err = CreateAmenity(f.db, admin, AmenityInput{Name: "Gym Access"})
	assert.Equal(t, utils.KindConflict, kindOf(err))

	_, err = CreateAmenity(f.db, admin, AmenityInput{Name: "Roof", Category: "Outdoor"})
	assert.Equal(t, utils.KindValidation, kindOf(err))

	list, err := ListAmenities(f.db)
	require.NoError(t, err)
	assert.Len(t, list, 2)
}

func TestAddUnitPhoto(t *testing.T) {
	f := newFixture(t)
	unit := f.unit(models.UnitVacant, 1000)

	_, err := AddUnitPhoto(f.db, f.admin(), unit.ID, "memory://photos/a.png")
	require.NoError(t, err)
	got, err := GetUnit(f.db, unit.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"memory://photos/a.png"}, models.Strings(got.Photos))
}

func TestAuditFailureDoesNotAbortParent(t *testing.T) {
	f := newFixture(t)
	admin := f.admin()
	require.NoError(t, f.db.Migrator().DropTable(&models.AuditLog{}))

	err := f.db.Transaction(func(tx *gorm.DB) error {
		_, err := CreateTower(tx, admin, "Tower Z", "")
		return err
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), f.count(&models.Tower{}, "name = ?", "Tower Z"))
}

func TestListAuditLogs(t *testing.T) {
	f := newFixture(t)
	admin := f.admin()

	_, err := CreateTower(f.db, admin, "Tower A", "")
	require.NoError(t, err)
	_, err = CreateAmenity(f.db, admin, AmenityInput{Name: "Balcony"})
	require.NoError(t, err)

	logs, err := ListAuditLogs(f.db, admin, AuditFilter{})
	require.NoError(t, err)
	assert.Len(t, logs, 2)

	towers, err := ListAuditLogs(f.db, admin, AuditFilter{Action: ActionCreateTower, Limit: 10000})
	require.NoError(t, err)
	require.Len(t, towers, 1)
	assert.Equal(t, ActionCreateTower, towers[0].Action)

	_, err = ListAuditLogs(f.db, f.resident(), AuditFilter{})
	assert.Equal(t, utils.KindAuthorization, kindOf(err))
}

func TestLeasedUnitStaysOccupied(t *testing.T) {
	f := newFixture(t)
	admin := f.admin()
	unit := f.unit(models.UnitVacant, 1000)
	booking, err := RequestBooking(f.db, f.resident(), BookingRequest{Target: models.UnitTarget(unit.ID)})
	require.NoError(t, err)
	_, err = ApproveBooking(f.db, admin, booking.ID)
	require.NoError(t, err)

	for _, status := range []string{models.UnitVacant, models.UnitMaintenance} {
		_, err = UpdateUnit(f.db, admin, unit.ID, UnitPatch{Status: ptr(status)})
		assert.Equal(t, utils.KindState, kindOf(err), status)
	}

	got, err := GetUnit(f.db, unit.ID)
	require.NoError(t, err)
	assert.Equal(t, models.UnitOccupied, got.Status)

	_, err = RequestBooking(f.db, f.resident(), BookingRequest{Target: models.UnitTarget(unit.ID)})
	assert.Equal(t, utils.KindState, kindOf(err))

	require.NoError(t, f.db.Model(&models.Lease{}).Where("unit_id = ?", unit.ID).
		Update("status", models.LeaseTerminated).Error)
	_, err = UpdateUnit(f.db, admin, unit.ID, UnitPatch{Status: ptr(models.UnitVacant)})
	require.NoError(t, err)
}
