package services

import (
	"errors"
	"testing"
	"time"

	"fichaje_backend/internal/email"
	"fichaje_backend/internal/models"
	"fichaje_backend/internal/repositories"
	"fichaje_backend/internal/services/dto"
	"fichaje_backend/pkg/apperrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newRecoveryService(mailer email.Provider) RecoveryService {
	return NewRecoveryService(
		repositories.NewUserRepository(),
		repositories.NewRecoveryCodeRepository(),
		mailer,
	)
}

func createRecoveryCode(t *testing.T, db *gorm.DB, userID, code string, expiresAt time.Time) *models.RecoveryCode {
	t.Helper()

	rc := &models.RecoveryCode{
		UserID:    userID,
		Code:      code,
		IssuedOn:  time.Now().Format("2006-01-02"),
		ExpiresAt: expiresAt,
	}
	require.NoError(t, db.Create(rc).Error)
	return rc
}

func TestRecoveryService_RequestCode(t *testing.T) {
	db := newTestDB(t)
	mailer := &email.MockProvider{}
	svc := newRecoveryService(mailer)
	user := createTestUser(t, db, "ana@example.com", "secret123", 10)

	err := svc.RequestCode(db, &dto.RecoveryRequest{
		Email:       "ana@example.com",
		Destination: "backup@example.com",
	})
	require.NoError(t, err)

	require.Len(t, mailer.Sent, 1)
	assert.Equal(t, "backup@example.com", mailer.Sent[0].To)

	var rc models.RecoveryCode
	require.NoError(t, db.First(&rc, "user_id = ?", user.ID).Error)
	assert.Len(t, rc.Code, 6)
	assert.Contains(t, mailer.Sent[0].Body, rc.Code)
	assert.False(t, rc.Used)
	assert.WithinDuration(t, time.Now().Add(5*time.Minute), rc.ExpiresAt, 10*time.Second)
}

func TestRecoveryService_RequestCode_OncePerDay(t *testing.T) {
	db := newTestDB(t)
	mailer := &email.MockProvider{}
	svc := newRecoveryService(mailer)
	createTestUser(t, db, "ana@example.com", "secret123", 10)

	req := &dto.RecoveryRequest{Email: "ana@example.com", Destination: "ana@example.com"}
	require.NoError(t, svc.RequestCode(db, req))

	err := svc.RequestCode(db, req)
	assert.ErrorIs(t, err, apperrors.ErrRecoveryRateLimited)
	assert.Len(t, mailer.Sent, 1, "no second email goes out")
}

func TestRecoveryService_RequestCode_ExpiredCodeStillCounts(t *testing.T) {
	db := newTestDB(t)
	mailer := &email.MockProvider{}
	svc := newRecoveryService(mailer)
	user := createTestUser(t, db, "ana@example.com", "secret123", 10)

	// A code issued earlier today that already expired.
	createRecoveryCode(t, db, user.ID, "111111", time.Now().Add(-time.Hour))

	err := svc.RequestCode(db, &dto.RecoveryRequest{
		Email:       "ana@example.com",
		Destination: "ana@example.com",
	})
	assert.ErrorIs(t, err, apperrors.ErrRecoveryRateLimited)
}

func TestRecoveryService_RequestCode_UnknownEmail(t *testing.T) {
	db := newTestDB(t)
	svc := newRecoveryService(&email.MockProvider{})

	err := svc.RequestCode(db, &dto.RecoveryRequest{
		Email:       "nobody@example.com",
		Destination: "nobody@example.com",
	})
	assert.ErrorIs(t, err, apperrors.ErrUserNotFound)
}

func TestRecoveryService_RequestCode_DeliveryFailure(t *testing.T) {
	db := newTestDB(t)
	mailer := &email.MockProvider{Err: errors.New("smtp unreachable")}
	svc := newRecoveryService(mailer)
	createTestUser(t, db, "ana@example.com", "secret123", 10)

	err := svc.RequestCode(db, &dto.RecoveryRequest{
		Email:       "ana@example.com",
		Destination: "ana@example.com",
	})
	require.Error(t, err)

	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, 500, appErr.HTTPCode)
}

func TestRecoveryService_ResetPassword(t *testing.T) {
	db := newTestDB(t)
	svc := newRecoveryService(&email.MockProvider{})
	userSvc := newUserService()
	user := createTestUser(t, db, "ana@example.com", "secret123", 10)
	createRecoveryCode(t, db, user.ID, "123456", time.Now().Add(5*time.Minute))

	err := svc.ResetPassword(db, &dto.ResetPasswordRequest{
		Email:       "ana@example.com",
		Code:        "123456",
		NewPassword: "fresh-password",
	})
	require.NoError(t, err)

	_, err = userSvc.Login(db, &dto.LoginRequest{Email: "ana@example.com", Password: "fresh-password"})
	require.NoError(t, err)
	_, err = userSvc.Login(db, &dto.LoginRequest{Email: "ana@example.com", Password: "secret123"})
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)

	var stored models.User
	require.NoError(t, db.First(&stored, "id = ?", user.ID).Error)
	assert.NotNil(t, stored.PasswordChangedAt, "old tokens are cut off")
}

func TestRecoveryService_ResetPassword_CodeIsSingleUse(t *testing.T) {
	db := newTestDB(t)
	svc := newRecoveryService(&email.MockProvider{})
	user := createTestUser(t, db, "ana@example.com", "secret123", 10)
	createRecoveryCode(t, db, user.ID, "123456", time.Now().Add(5*time.Minute))

	req := &dto.ResetPasswordRequest{
		Email:       "ana@example.com",
		Code:        "123456",
		NewPassword: "fresh-password",
	}
	require.NoError(t, svc.ResetPassword(db, req))

	err := svc.ResetPassword(db, req)
	assert.ErrorIs(t, err, apperrors.ErrRecoveryCodeInvalid)
}

func TestRecoveryService_ResetPassword_Expired(t *testing.T) {
	db := newTestDB(t)
	svc := newRecoveryService(&email.MockProvider{})
	user := createTestUser(t, db, "ana@example.com", "secret123", 10)
	createRecoveryCode(t, db, user.ID, "123456", time.Now().Add(-time.Minute))

	err := svc.ResetPassword(db, &dto.ResetPasswordRequest{
		Email:       "ana@example.com",
		Code:        "123456",
		NewPassword: "fresh-password",
	})
	assert.ErrorIs(t, err, apperrors.ErrRecoveryCodeExpired)
}

func TestRecoveryService_ResetPassword_WrongCode(t *testing.T) {
	db := newTestDB(t)
	svc := newRecoveryService(&email.MockProvider{})
	user := createTestUser(t, db, "ana@example.com", "secret123", 10)
	createRecoveryCode(t, db, user.ID, "123456", time.Now().Add(5*time.Minute))

	err := svc.ResetPassword(db, &dto.ResetPasswordRequest{
		Email:       "ana@example.com",
		Code:        "654321",
		NewPassword: "fresh-password",
	})
	assert.ErrorIs(t, err, apperrors.ErrRecoveryCodeInvalid)
}

func TestRecoveryService_ResetPassword_WeakPassword(t *testing.T) {
	db := newTestDB(t)
	svc := newRecoveryService(&email.MockProvider{})
	user := createTestUser(t, db, "ana@example.com", "secret123", 10)
	createRecoveryCode(t, db, user.ID, "123456", time.Now().Add(5*time.Minute))

	err := svc.ResetPassword(db, &dto.ResetPasswordRequest{
		Email:       "ana@example.com",
		Code:        "123456",
		NewPassword: "abc",
	})
	assert.ErrorIs(t, err, apperrors.ErrWeakPassword)
}

func TestGenerateCode_Format(t *testing.T) {
	for i := 0; i < 50; i++ {
		code, err := generateCode()
		require.NoError(t, err)
		require.Len(t, code, 6)
		for _, ch := range code {
			assert.GreaterOrEqual(t, ch, '0')
			assert.LessOrEqual(t, ch, '9')
		}
	}
}
