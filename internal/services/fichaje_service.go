package services

import (
	"time"

	"fichaje_backend/internal/models"
	"fichaje_backend/internal/repositories"
	"fichaje_backend/internal/services/dto"
	"fichaje_backend/pkg/apperrors"

	"gorm.io/gorm"
)

type FichajeService interface {
	ClockIn(db *gorm.DB, userID string) (*models.Fichaje, error)
	ClockOut(db *gorm.DB, userID, fichajeID string) (*models.Fichaje, error)
	SetOvertime(db *gorm.DB, userID, fichajeID string, flag bool) (*models.Fichaje, error)
	CurrentSession(db *gorm.DB, userID string) (*models.Fichaje, error)
	History(db *gorm.DB, userID string) (*dto.HistoryResponse, error)
	Delete(db *gorm.DB, userID, fichajeID string) error
	DeleteAll(db *gorm.DB, userID string) error
}

type FichajeServiceImpl struct {
	fichajeRepo repositories.FichajeRepository
	userRepo    repositories.UserRepository
}

func NewFichajeService(
	fichajeRepo repositories.FichajeRepository,
	userRepo repositories.UserRepository,
) FichajeService {
	return &FichajeServiceImpl{
		fichajeRepo: fichajeRepo,
		userRepo:    userRepo,
	}
}

// ClockIn opens a new session for the user. The pre-check gives a clean
// conflict on the common path; the partial unique index catches the race
// where two clock-ins pass the check concurrently.
func (s *FichajeServiceImpl) ClockIn(db *gorm.DB, userID string) (*models.Fichaje, error) {
	open, err := s.fichajeRepo.FindOpenByUser(db, userID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	if open != nil {
		return nil, apperrors.ErrSessionAlreadyOpen
	}

	fichaje := &models.Fichaje{
		UserID:    userID,
		ClockInAt: time.Now(),
	}

	if err := s.fichajeRepo.Create(db, fichaje); err != nil {
		if apperrors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperrors.ErrSessionAlreadyOpen
		}
		return nil, apperrors.InternalError(err)
	}

	return fichaje, nil
}

// ClockOut closes the session, computing duration and pay from the owner's
// hourly rate.
func (s *FichajeServiceImpl) ClockOut(db *gorm.DB, userID, fichajeID string) (*models.Fichaje, error) {
	fichaje, err := s.findOwned(db, userID, fichajeID)
	if err != nil {
		return nil, err
	}
	if !fichaje.IsOpen() {
		return nil, apperrors.ErrSessionAlreadyClosed
	}

	user, err := s.userRepo.FindByID(db, fichaje.UserID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, apperrors.InternalError(err)
	}

	now := time.Now()
	hours := roundTo2(elapsedHours(fichaje.ClockInAt, now))

	fichaje.ClockOutAt = &now
	fichaje.DurationHours = hours
	fichaje.PayAmount = payAmount(hours, user.HourlyRate)

	if err := s.fichajeRepo.Save(db, fichaje); err != nil {
		return nil, apperrors.InternalError(err)
	}

	return fichaje, nil
}

// SetOvertime flips the overtime flag; the flag is independent of the
// open/closed state.
func (s *FichajeServiceImpl) SetOvertime(db *gorm.DB, userID, fichajeID string, flag bool) (*models.Fichaje, error) {
	fichaje, err := s.findOwned(db, userID, fichajeID)
	if err != nil {
		return nil, err
	}

	fichaje.IsOvertime = flag
	if err := s.fichajeRepo.Save(db, fichaje); err != nil {
		return nil, apperrors.InternalError(err)
	}

	return fichaje, nil
}

// CurrentSession returns the open session or nil when there is none.
func (s *FichajeServiceImpl) CurrentSession(db *gorm.DB, userID string) (*models.Fichaje, error) {
	open, err := s.fichajeRepo.FindOpenByUser(db, userID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return open, nil
}

// History returns all sessions newest-first plus the week and month pay
// totals. Both windows are anchored at the current moment: the week runs
// Sunday through Saturday, the month is the current calendar month.
func (s *FichajeServiceImpl) History(db *gorm.DB, userID string) (*dto.HistoryResponse, error) {
	fichajes, err := s.fichajeRepo.FindAllByUser(db, userID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	now := time.Now()
	weekStart, weekEnd := weekBounds(now)
	monthStart, monthEnd := monthBounds(now)

	var week, month float64
	for _, f := range fichajes {
		if inWindow(f.ClockInAt, weekStart, weekEnd) {
			week += f.PayAmount
		}
		if inWindow(f.ClockInAt, monthStart, monthEnd) {
			month += f.PayAmount
		}
	}

	return &dto.HistoryResponse{
		History: fichajes,
		Totals: dto.Totals{
			Week:  roundTo2(week),
			Month: roundTo2(month),
		},
	}, nil
}

func (s *FichajeServiceImpl) Delete(db *gorm.DB, userID, fichajeID string) error {
	if err := s.fichajeRepo.Delete(db, fichajeID, userID); err != nil {
		if apperrors.Is(err, repositories.ErrFichajeNotFound) {
			return apperrors.ErrSessionNotFound
		}
		return apperrors.InternalError(err)
	}
	return nil
}

func (s *FichajeServiceImpl) DeleteAll(db *gorm.DB, userID string) error {
	if err := s.fichajeRepo.DeleteAllByUser(db, userID); err != nil {
		return apperrors.InternalError(err)
	}
	return nil
}

// findOwned loads a session and verifies it belongs to the caller. A session
// owned by someone else reads as not found, leaking nothing.
func (s *FichajeServiceImpl) findOwned(db *gorm.DB, userID, fichajeID string) (*models.Fichaje, error) {
	fichaje, err := s.fichajeRepo.FindByID(db, fichajeID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrFichajeNotFound) {
			return nil, apperrors.ErrSessionNotFound
		}
		return nil, apperrors.InternalError(err)
	}
	if fichaje.UserID != userID {
		return nil, apperrors.ErrSessionNotFound
	}
	return fichaje, nil
}
