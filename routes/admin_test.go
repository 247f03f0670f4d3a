package routes

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"residency-server/config"
	"residency-server/models"
	"residency-server/storage"
	"residency-server/utils"

	"github.com/google/uuid"
	"github.com/kataras/iris/v12"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// buildTestApp mounts the admin user routes behind the real token verifier.
func buildTestApp(t *testing.T) *iris.Application {
	t.Helper()

	storage.DB = storage.OpenTest(t)
	utils.InitTokens(config.Config{
		AccessTokenSecret:  "testsecret",
		RefreshTokenSecret: "testrefreshsecret",
		AccessTokenTTL:     time.Hour,
		RefreshTokenTTL:    time.Hour,
	})

	app := iris.New()
	admin := app.Party("/admin", utils.VerifyAccessToken(), utils.Require(utils.AdminOnly))
	{
		admin.Get("/users", AdminListUsers)
	}
	require.NoError(t, app.Build())
	return app
}

func signTestToken(t *testing.T, role string) string {
	t.Helper()
	token, err := utils.SignAccessToken(models.User{Base: models.Base{ID: uuid.New()}, Role: role})
	require.NoError(t, err)
	return token
}

func TestAdminUsersRBAC(t *testing.T) {
	app := buildTestApp(t)

	req := httptest.NewRequest(http.MethodGet, "/admin/users", nil)
	resp := httptest.NewRecorder()
	app.ServeHTTP(resp, req)
	assert.Equal(t, http.StatusUnauthorized, resp.Code)

	req = httptest.NewRequest(http.MethodGet, "/admin/users", nil)
	req.Header.Set("Authorization", "Bearer "+signTestToken(t, models.RoleResident))
	resp = httptest.NewRecorder()
	app.ServeHTTP(resp, req)
	assert.Equal(t, http.StatusForbidden, resp.Code)

	req = httptest.NewRequest(http.MethodGet, "/admin/users", nil)
	req.Header.Set("Authorization", "Bearer "+signTestToken(t, models.RoleAdmin))
	resp = httptest.NewRecorder()
	app.ServeHTTP(resp, req)
	assert.Equal(t, http.StatusOK, resp.Code)
	assert.JSONEq(t, `[]`, resp.Body.String())
}

func TestBookingInputRequest(t *testing.T) {
	unitID := uuid.New()
	amenityID := uuid.New()
	start := time.Date(2026, 1, 10, 9, 0, 0, 0, time.UTC)
	end := start.Add(time.Hour)

	req, err := BookingInput{UnitID: unitID.String()}.request()
	require.NoError(t, err)
	assert.Equal(t, models.UnitTarget(unitID), req.Target)

	req, err = BookingInput{AmenityID: amenityID.String(), StartTime: &start, EndTime: &end}.request()
	require.NoError(t, err)
	assert.Equal(t, models.AmenityTarget(amenityID), req.Target)
	assert.Equal(t, start, req.Start)
	assert.Equal(t, end, req.End)

	_, err = BookingInput{UnitID: unitID.String(), AmenityID: amenityID.String()}.request()
	assert.Equal(t, utils.KindValidation, utils.KindOf(err))

	_, err = BookingInput{}.request()
	assert.Equal(t, utils.KindValidation, utils.KindOf(err))

	_, err = BookingInput{UnitID: "not-a-uuid"}.request()
	assert.Equal(t, utils.KindValidation, utils.KindOf(err))
}

func TestParseIDsSkipsGarbage(t *testing.T) {
	id := uuid.New()
	assert.Equal(t, []uuid.UUID{id}, parseIDs([]string{"nope", id.String(), ""}))
	assert.Empty(t, parseIDs(nil))
}
