package app

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"fichaje_backend/database"
	"fichaje_backend/internal/config"
	"fichaje_backend/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func newTestServer(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, database.AutoMigrate(db))

	return SetupRouter(config.GetConfig(), db), db
}

func sendJSON(t *testing.T, router *gin.Engine, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reqBody *bytes.Buffer
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reqBody = bytes.NewBuffer(payload)
	} else {
		reqBody = bytes.NewBuffer(nil)
	}

	req := httptest.NewRequest(method, path, reqBody)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()

	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), "body: %s", rec.Body.String())
	return out
}

func registerUser(t *testing.T, router *gin.Engine, email string) (token, userID string) {
	t.Helper()

	rec := sendJSON(t, router, http.MethodPost, "/api/users/register", "", map[string]interface{}{
		"name":        "Ana",
		"email":       email,
		"password":    "secret123",
		"hourly_rate": 10,
	})
	require.Equal(t, http.StatusCreated, rec.Code, "body: %s", rec.Body.String())

	body := decodeBody(t, rec)
	token = body["token"].(string)
	userID = body["user"].(map[string]interface{})["id"].(string)
	require.NotEmpty(t, token)
	require.NotEmpty(t, userID)
	return token, userID
}

func TestHealthEndpoint(t *testing.T) {
	router, _ := newTestServer(t)

	rec := sendJSON(t, router, http.MethodGet, "/", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "ok")
}

func TestRegisterAndGetMe(t *testing.T) {
	router, _ := newTestServer(t)
	token, _ := registerUser(t, router, "ana@example.com")

	rec := sendJSON(t, router, http.MethodGet, "/api/users/me", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "ana@example.com")
	assert.NotContains(t, rec.Body.String(), "password", "hash never leaves the server")
}

func TestRegister_InvalidPayload(t *testing.T) {
	router, _ := newTestServer(t)

	rec := sendJSON(t, router, http.MethodPost, "/api/users/register", "", map[string]interface{}{
		"name":     "Ana",
		"email":    "not-an-email",
		"password": "secret123",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	router, _ := newTestServer(t)
	registerUser(t, router, "ana@example.com")

	rec := sendJSON(t, router, http.MethodPost, "/api/users/register", "", map[string]interface{}{
		"name":     "Impostor",
		"email":    "ana@example.com",
		"password": "secret123",
	})
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestLogin(t *testing.T) {
	router, _ := newTestServer(t)
	registerUser(t, router, "ana@example.com")

	rec := sendJSON(t, router, http.MethodPost, "/api/users/login", "", map[string]interface{}{
		"email":    "ana@example.com",
		"password": "secret123",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, decodeBody(t, rec)["token"])

	rec = sendJSON(t, router, http.MethodPost, "/api/users/login", "", map[string]interface{}{
		"email":    "ana@example.com",
		"password": "wrong-password",
	})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = sendJSON(t, router, http.MethodPost, "/api/users/login", "", map[string]interface{}{
		"email":    "nobody@example.com",
		"password": "secret123",
	})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestAuthRequired(t *testing.T) {
	router, _ := newTestServer(t)

	rec := sendJSON(t, router, http.MethodGet, "/api/users/me", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = sendJSON(t, router, http.MethodGet, "/api/fichajes/current", "garbage-token", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestClockFlow(t *testing.T) {
	router, _ := newTestServer(t)
	token, _ := registerUser(t, router, "ana@example.com")

	// Clock in.
	rec := sendJSON(t, router, http.MethodPost, "/api/fichajes/clock-in", token, nil)
	require.Equal(t, http.StatusCreated, rec.Code, "body: %s", rec.Body.String())
	fichajeID := decodeBody(t, rec)["id"].(string)
	require.NotEmpty(t, fichajeID)

	// A second open session is refused.
	rec = sendJSON(t, router, http.MethodPost, "/api/fichajes/clock-in", token, nil)
	assert.Equal(t, http.StatusConflict, rec.Code)

	// The open session shows up as current.
	rec = sendJSON(t, router, http.MethodGet, "/api/fichajes/current", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	current := decodeBody(t, rec)
	require.NotNil(t, current["open_session"])

	// Clock out, then current is empty again.
	rec = sendJSON(t, router, http.MethodPut, "/api/fichajes/clock-out/"+fichajeID, token, nil)
	require.Equal(t, http.StatusOK, rec.Code, "body: %s", rec.Body.String())
	closed := decodeBody(t, rec)
	assert.NotNil(t, closed["clock_out_at"])

	rec = sendJSON(t, router, http.MethodGet, "/api/fichajes/current", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Nil(t, decodeBody(t, rec)["open_session"])

	// Closing twice is a conflict.
	rec = sendJSON(t, router, http.MethodPut, "/api/fichajes/clock-out/"+fichajeID, token, nil)
	assert.Equal(t, http.StatusConflict, rec.Code)

	// Overtime flag.
	rec = sendJSON(t, router, http.MethodPut, "/api/fichajes/overtime/"+fichajeID, token, map[string]interface{}{"flag": true})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, true, decodeBody(t, rec)["is_overtime"])

	// History carries the session and the totals.
	rec = sendJSON(t, router, http.MethodGet, "/api/fichajes/history", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	history := decodeBody(t, rec)
	assert.Len(t, history["history"], 1)
	require.Contains(t, history, "totals")

	// Delete it.
	rec = sendJSON(t, router, http.MethodDelete, "/api/fichajes/"+fichajeID, token, nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = sendJSON(t, router, http.MethodDelete, "/api/fichajes/"+fichajeID, token, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestFichajeOwnership(t *testing.T) {
	router, _ := newTestServer(t)
	anaToken, _ := registerUser(t, router, "ana@example.com")
	luisToken, _ := registerUser(t, router, "luis@example.com")

	rec := sendJSON(t, router, http.MethodPost, "/api/fichajes/clock-in", anaToken, nil)
	require.Equal(t, http.StatusCreated, rec.Code)
	fichajeID := decodeBody(t, rec)["id"].(string)

	rec = sendJSON(t, router, http.MethodPut, "/api/fichajes/clock-out/"+fichajeID, luisToken, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestStaleTokenAfterPasswordChange(t *testing.T) {
	router, _ := newTestServer(t)
	oldToken, _ := registerUser(t, router, "ana@example.com")

	// iat has second precision; make sure the change lands in a later second.
	time.Sleep(1100 * time.Millisecond)

	rec := sendJSON(t, router, http.MethodPut, "/api/users/me", oldToken, map[string]interface{}{
		"password": "brand-new-pass",
	})
	require.Equal(t, http.StatusOK, rec.Code, "body: %s", rec.Body.String())
	body := decodeBody(t, rec)
	assert.Equal(t, true, body["password_changed"])
	newToken := body["token"].(string)
	require.NotEmpty(t, newToken)

	rec = sendJSON(t, router, http.MethodGet, "/api/users/me", oldToken, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code, "pre-change token is dead")

	rec = sendJSON(t, router, http.MethodGet, "/api/users/me", newToken, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRecoveryFlow(t *testing.T) {
	router, db := newTestServer(t)
	_, userID := registerUser(t, router, "ana@example.com")

	rec := sendJSON(t, router, http.MethodPost, "/api/recovery/request", "", map[string]interface{}{
		"email":       "ana@example.com",
		"destination": "ana@example.com",
	})
	require.Equal(t, http.StatusOK, rec.Code, "body: %s", rec.Body.String())

	// Only one code per day.
	rec = sendJSON(t, router, http.MethodPost, "/api/recovery/request", "", map[string]interface{}{
		"email":       "ana@example.com",
		"destination": "ana@example.com",
	})
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)

	var code models.RecoveryCode
	require.NoError(t, db.First(&code, "user_id = ?", userID).Error)

	rec = sendJSON(t, router, http.MethodPost, "/api/recovery/reset", "", map[string]interface{}{
		"email":        "ana@example.com",
		"code":         code.Code,
		"new_password": "fresh-password",
	})
	require.Equal(t, http.StatusOK, rec.Code, "body: %s", rec.Body.String())

	rec = sendJSON(t, router, http.MethodPost, "/api/users/login", "", map[string]interface{}{
		"email":    "ana@example.com",
		"password": "fresh-password",
	})
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRecoveryRequest_UnknownEmail(t *testing.T) {
	router, _ := newTestServer(t)

	rec := sendJSON(t, router, http.MethodPost, "/api/recovery/request", "", map[string]interface{}{
		"email":       "nobody@example.com",
		"destination": "nobody@example.com",
	})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestDeleteAccount(t *testing.T) {
	router, db := newTestServer(t)
	token, userID := registerUser(t, router, "ana@example.com")

	rec := sendJSON(t, router, http.MethodPost, "/api/fichajes/clock-in", token, nil)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = sendJSON(t, router, http.MethodDelete, "/api/users/me", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var users int64
	db.Model(&models.User{}).Where("id = ?", userID).Count(&users)
	assert.Zero(t, users)

	var fichajes int64
	db.Model(&models.Fichaje{}).Where("user_id = ?", userID).Count(&fichajes)
	assert.Zero(t, fichajes)

	// The token dies with the account.
	rec = sendJSON(t, router, http.MethodGet, "/api/users/me", token, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestCORSPreflight(t *testing.T) {
	router, _ := newTestServer(t)

	req := httptest.NewRequest(http.MethodOptions, "/api/users/login", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}
