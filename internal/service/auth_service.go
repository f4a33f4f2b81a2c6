package service

import (
	"context"
	"log/slog"

	"chayen/internal/dal"
	"chayen/internal/models"
	"chayen/internal/session"
)

type AuthService interface {
	Login(ctx context.Context, pin string) (models.Staff, string, error)
	Validate(ctx context.Context, token string) (models.Staff, error)
	Logout(ctx context.Context, token string) error
}

type authService struct {
	catalogRepo dal.CatalogRepository
	sessions    session.Store
	logger      *slog.Logger
}

func NewAuthService(catalogRepo dal.CatalogRepository, sessions session.Store, logger *slog.Logger) AuthService {
	return &authService{
		catalogRepo: catalogRepo,
		sessions:    sessions,
		logger:      logger,
	}
}

func (s *authService) Login(ctx context.Context, pin string) (models.Staff, string, error) {
	if pin == "" {
		return models.Staff{}, "", models.ErrInvalidPIN
	}

	staff, err := s.catalogRepo.GetStaffByPIN(ctx, pin)
	if err != nil {
		return models.Staff{}, "", err
	}

	token, err := s.sessions.Create(ctx, staff)
	if err != nil {
		return models.Staff{}, "", err
	}

	s.logger.Info("staff logged in", "staff_id", staff.ID, "role", staff.Role)

	return staff, token, nil
}

func (s *authService) Validate(ctx context.Context, token string) (models.Staff, error) {
	if token == "" {
		return models.Staff{}, models.ErrSessionNotFound
	}
	return s.sessions.Get(ctx, token)
}

func (s *authService) Logout(ctx context.Context, token string) error {
	return s.sessions.Delete(ctx, token)
}
