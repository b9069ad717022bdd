package services

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"time"

	"fichaje_backend/internal/auth"
	"fichaje_backend/internal/email"
	"fichaje_backend/internal/models"
	"fichaje_backend/internal/repositories"
	"fichaje_backend/internal/services/dto"
	"fichaje_backend/pkg/apperrors"

	"gorm.io/gorm"
)

const (
	recoveryCodeTTL = 5 * time.Minute
	issuedOnLayout  = "2006-01-02"
)

type RecoveryService interface {
	RequestCode(db *gorm.DB, req *dto.RecoveryRequest) error
	ResetPassword(db *gorm.DB, req *dto.ResetPasswordRequest) error
}

type RecoveryServiceImpl struct {
	userRepo repositories.UserRepository
	codeRepo repositories.RecoveryCodeRepository
	mailer   email.Provider
}

func NewRecoveryService(
	userRepo repositories.UserRepository,
	codeRepo repositories.RecoveryCodeRepository,
	mailer email.Provider,
) RecoveryService {
	return &RecoveryServiceImpl{
		userRepo: userRepo,
		codeRepo: codeRepo,
		mailer:   mailer,
	}
}

// RequestCode issues at most one code per user per local calendar day, valid
// for five minutes, and mails it to the requested destination. An expired or
// used code from today still counts against the daily limit.
func (s *RecoveryServiceImpl) RequestCode(db *gorm.DB, req *dto.RecoveryRequest) error {
	user, err := s.userRepo.FindByEmail(db, req.Email)
	if err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return apperrors.ErrUserNotFound
		}
		return apperrors.InternalError(err)
	}

	now := time.Now()
	today := now.Format(issuedOnLayout)

	issued, err := s.codeRepo.FindIssuedOn(db, user.ID, today)
	if err != nil {
		return apperrors.InternalError(err)
	}
	if issued != nil {
		return apperrors.ErrRecoveryRateLimited
	}

	// Drop stale codes from previous days before inserting today's.
	if err := s.codeRepo.PurgeExpired(db, user.ID, now); err != nil {
		return apperrors.InternalError(err)
	}

	code, err := generateCode()
	if err != nil {
		return apperrors.InternalError(err)
	}

	rc := &models.RecoveryCode{
		UserID:    user.ID,
		Code:      code,
		IssuedOn:  today,
		ExpiresAt: now.Add(recoveryCodeTTL),
	}

	if err := s.codeRepo.Create(db, rc); err != nil {
		if apperrors.Is(err, gorm.ErrDuplicatedKey) {
			// A concurrent request won the per-day slot.
			return apperrors.ErrRecoveryRateLimited
		}
		return apperrors.InternalError(err)
	}

	body := fmt.Sprintf(
		"Hola %s, tu código de recuperación es: %s (válido 5 minutos).",
		user.Name, code,
	)
	if err := s.mailer.Send(req.Destination, "Código de recuperación de contraseña", body); err != nil {
		return apperrors.ErrEmailDelivery(err)
	}

	return nil
}

// ResetPassword consumes a code. Used and expired codes never succeed again.
func (s *RecoveryServiceImpl) ResetPassword(db *gorm.DB, req *dto.ResetPasswordRequest) error {
	if len(req.NewPassword) < 6 {
		return apperrors.ErrWeakPassword
	}

	user, err := s.userRepo.FindByEmail(db, req.Email)
	if err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return apperrors.ErrUserNotFound
		}
		return apperrors.InternalError(err)
	}

	rc, err := s.codeRepo.FindUnused(db, user.ID, req.Code)
	if err != nil {
		if apperrors.Is(err, repositories.ErrRecoveryCodeNotFound) {
			return apperrors.ErrRecoveryCodeInvalid
		}
		return apperrors.InternalError(err)
	}

	if time.Now().After(rc.ExpiresAt) {
		return apperrors.ErrRecoveryCodeExpired
	}

	hash, err := auth.HashPassword(req.NewPassword)
	if err != nil {
		return apperrors.InternalError(err)
	}

	if err := s.userRepo.UpdatePassword(db, user.ID, hash, time.Now()); err != nil {
		return apperrors.InternalError(err)
	}

	if err := s.codeRepo.MarkUsed(db, rc.ID); err != nil {
		return apperrors.InternalError(err)
	}

	return nil
}

// generateCode draws a uniform 6-digit numeric code from crypto/rand.
func generateCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()+100000), nil
}
