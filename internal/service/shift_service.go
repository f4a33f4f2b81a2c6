package service

import (
	"context"
	"log/slog"

	"chayen/internal/dal"
	"chayen/internal/models"

	"github.com/google/uuid"
)

type ShiftService interface {
	OpenShift(ctx context.Context, req models.OpenShiftRequest) (models.Shift, error)
	GetShift(ctx context.Context, id string) (models.Shift, error)
	ListShifts(ctx context.Context, filters models.ShiftFilters) ([]models.Shift, error)
	GetSummary(ctx context.Context, id string) (models.ShiftSummary, error)
	CloseShift(ctx context.Context, id string, req models.CloseShiftRequest) (models.Shift, error)
}

type shiftService struct {
	shiftRepo   dal.ShiftRepository
	catalogRepo dal.CatalogRepository
	logger      *slog.Logger
}

func NewShiftService(shiftRepo dal.ShiftRepository, catalogRepo dal.CatalogRepository, logger *slog.Logger) ShiftService {
	return &shiftService{
		shiftRepo:   shiftRepo,
		catalogRepo: catalogRepo,
		logger:      logger,
	}
}

// OpenShift enforces at most one open shift per staff member. The pre-check
// gives the common case a clean error; the partial unique index in the
// database settles concurrent opens.
func (s *shiftService) OpenShift(ctx context.Context, req models.OpenShiftRequest) (models.Shift, error) {
	if req.StartingCash < 0 {
		return models.Shift{}, models.ErrNegativeCash
	}

	staff, err := s.catalogRepo.GetStaffByID(ctx, req.StaffID)
	if err != nil {
		return models.Shift{}, err
	}

	open, err := s.shiftRepo.HasOpenShift(ctx, req.StaffID)
	if err != nil {
		return models.Shift{}, err
	}
	if open {
		return models.Shift{}, models.ErrShiftAlreadyOpen
	}

	shift, err := s.shiftRepo.CreateShift(ctx, models.Shift{
		ID:           uuid.NewString(),
		StaffID:      staff.ID,
		StaffName:    staff.Name,
		Status:       models.ShiftOpen,
		StartingCash: req.StartingCash,
	})
	if err != nil {
		return models.Shift{}, err
	}

	s.logger.Info("shift opened",
		"shift_id", shift.ID,
		"staff_id", shift.StaffID,
		"starting_cash", shift.StartingCash,
	)

	return shift, nil
}

func (s *shiftService) GetShift(ctx context.Context, id string) (models.Shift, error) {
	if id == "" {
		return models.Shift{}, models.ErrShiftNotFound
	}
	return s.shiftRepo.GetShiftByID(ctx, id)
}

func (s *shiftService) ListShifts(ctx context.Context, filters models.ShiftFilters) ([]models.Shift, error) {
	return s.shiftRepo.ListShifts(ctx, filters)
}

func (s *shiftService) GetSummary(ctx context.Context, id string) (models.ShiftSummary, error) {
	if _, err := s.shiftRepo.GetShiftByID(ctx, id); err != nil {
		return models.ShiftSummary{}, err
	}
	return s.shiftRepo.GetShiftSummary(ctx, id)
}

// CloseShift reconciles the drawer. Expected cash is the starting float plus
// the cash-sales subtotal; when the counted amount differs, the operator must
// explain the difference in the note before the close is accepted.
func (s *shiftService) CloseShift(ctx context.Context, id string, req models.CloseShiftRequest) (models.Shift, error) {
	if req.EndingCash < 0 || req.CashSales < 0 || req.QRSales < 0 {
		return models.Shift{}, models.ErrNegativeCash
	}

	shift, err := s.shiftRepo.GetShiftByID(ctx, id)
	if err != nil {
		return models.Shift{}, err
	}
	if shift.Status == models.ShiftClosed {
		return models.Shift{}, models.ErrShiftAlreadyClosed
	}

	expected := shift.StartingCash + req.CashSales
	if req.EndingCash != expected && req.Note == "" {
		return models.Shift{}, models.ErrReconciliationNote
	}

	closed, err := s.shiftRepo.CloseShift(ctx, id, req)
	if err != nil {
		return models.Shift{}, err
	}

	s.logger.Info("shift closed",
		"shift_id", closed.ID,
		"staff_id", closed.StaffID,
		"expected_cash", expected,
		"counted_cash", req.EndingCash,
		"difference", req.EndingCash-expected,
	)

	return closed, nil
}
