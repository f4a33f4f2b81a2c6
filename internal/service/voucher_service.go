package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"chayen/internal/dal"
	"chayen/internal/loyalty"
	"chayen/internal/models"
)

// Vouchers expire a day after issue, matching the shop's one-visit promo
// window.
const voucherTTL = 24 * time.Hour

type VoucherService interface {
	Issue(ctx context.Context, memberID string, req models.IssueVoucherRequest) (models.Voucher, error)
	Validate(ctx context.Context, code string) (models.Voucher, error)
	Redeem(ctx context.Context, code string) (models.Voucher, error)
	ListForMember(ctx context.Context, memberID string) ([]models.Voucher, error)
}

type voucherService struct {
	voucherRepo dal.VoucherRepository
	memberRepo  dal.MemberRepository
	logger      *slog.Logger
}

func NewVoucherService(voucherRepo dal.VoucherRepository, memberRepo dal.MemberRepository, logger *slog.Logger) VoucherService {
	return &voucherService{
		voucherRepo: voucherRepo,
		memberRepo:  memberRepo,
		logger:      logger,
	}
}

// Issue converts points into a single-use discount code. The baht value is
// computed server-side from the points at the standard redemption rate; the
// repository debits the balance under the member row lock.
func (s *voucherService) Issue(ctx context.Context, memberID string, req models.IssueVoucherRequest) (models.Voucher, error) {
	if req.PointsUsed <= 0 || req.PointsUsed%loyalty.RedeemUnit != 0 {
		return models.Voucher{}, models.ErrInvalidRedemption
	}

	voucher, err := s.voucherRepo.CreateVoucher(ctx, models.Voucher{
		Code:        voucherCode(memberID),
		MemberID:    memberID,
		Description: req.Description,
		Amount:      loyalty.RedemptionValue(req.PointsUsed),
		PointsUsed:  req.PointsUsed,
		ExpiresAt:   time.Now().Add(voucherTTL),
	})
	if err != nil {
		return models.Voucher{}, err
	}

	s.logger.Info("voucher issued",
		"code", voucher.Code,
		"member_id", voucher.MemberID,
		"amount", voucher.Amount,
		"points_used", voucher.PointsUsed,
	)

	return voucher, nil
}

// Validate reports whether a presented code is still good, without consuming
// it.
func (s *voucherService) Validate(ctx context.Context, code string) (models.Voucher, error) {
	voucher, err := s.voucherRepo.GetVoucherByCode(ctx, code)
	if err != nil {
		return models.Voucher{}, err
	}
	if voucher.IsUsed {
		return models.Voucher{}, models.ErrVoucherUsed
	}
	if time.Now().After(voucher.ExpiresAt) {
		return models.Voucher{}, models.ErrVoucherExpired
	}
	return voucher, nil
}

func (s *voucherService) Redeem(ctx context.Context, code string) (models.Voucher, error) {
	voucher, err := s.voucherRepo.RedeemVoucher(ctx, code)
	if err != nil {
		return models.Voucher{}, err
	}

	s.logger.Info("voucher redeemed", "code", voucher.Code, "amount", voucher.Amount)

	return voucher, nil
}

func (s *voucherService) ListForMember(ctx context.Context, memberID string) ([]models.Voucher, error) {
	if _, err := s.memberRepo.GetMemberByID(ctx, memberID); err != nil {
		return nil, err
	}
	return s.voucherRepo.ListMemberVouchers(ctx, memberID)
}

func voucherCode(memberID string) string {
	return fmt.Sprintf("DISCOUNT_%s_%d", memberID, time.Now().UnixMilli())
}
