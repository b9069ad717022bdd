package services

import (
	"fichaje_backend/internal/email"
)

// ServiceContainer holds every service the handlers depend on.
type ServiceContainer struct {
	UserService     UserService
	FichajeService  FichajeService
	RecoveryService RecoveryService
	EmailService    email.Provider
}
