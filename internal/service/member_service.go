package service

import (
	"context"

	"chayen/internal/dal"
	"chayen/internal/loyalty"
	"chayen/internal/models"
	"chayen/internal/pricing"

	"github.com/google/uuid"
)

type MemberService interface {
	Register(ctx context.Context, req models.CreateMemberRequest) (models.Member, error)
	GetMember(ctx context.Context, id string) (models.Member, error)
	LookupByPhone(ctx context.Context, phone string) (models.Member, error)
	GetBenefits(ctx context.Context, id string, subtotal int64) (models.MemberBenefits, error)
}

type memberService struct {
	memberRepo dal.MemberRepository
}

func NewMemberService(memberRepo dal.MemberRepository) MemberService {
	return &memberService{memberRepo: memberRepo}
}

func (s *memberService) Register(ctx context.Context, req models.CreateMemberRequest) (models.Member, error) {
	if req.Phone == "" {
		return models.Member{}, models.ErrInvalidPhone
	}
	if req.Name == "" {
		return models.Member{}, models.ErrInvalidName
	}

	return s.memberRepo.CreateMember(ctx, models.Member{
		ID:    uuid.NewString(),
		Phone: req.Phone,
		Name:  req.Name,
		Tier:  models.TierBronze,
	})
}

func (s *memberService) GetMember(ctx context.Context, id string) (models.Member, error) {
	if id == "" {
		return models.Member{}, models.ErrMemberNotFound
	}
	return s.memberRepo.GetMemberByID(ctx, id)
}

func (s *memberService) LookupByPhone(ctx context.Context, phone string) (models.Member, error) {
	if phone == "" {
		return models.Member{}, models.ErrInvalidPhone
	}
	return s.memberRepo.GetMemberByPhone(ctx, phone)
}

// GetBenefits derives what the POS shows before settlement: the member's
// tier, the discount percentage, the redeemable-points cap for the cart's
// subtotal, and the lifetime glass count behind the tier.
func (s *memberService) GetBenefits(ctx context.Context, id string, subtotal int64) (models.MemberBenefits, error) {
	if subtotal < 0 {
		return models.MemberBenefits{}, models.ErrInvalidSubtotal
	}

	member, err := s.memberRepo.GetMemberByID(ctx, id)
	if err != nil {
		return models.MemberBenefits{}, err
	}

	glasses, err := s.memberRepo.CountCompletedGlasses(ctx, id)
	if err != nil {
		return models.MemberBenefits{}, err
	}

	percent := loyalty.DiscountPercent(member.Tier)
	afterTier := subtotal - pricing.TierDiscount(subtotal, percent)

	return models.MemberBenefits{
		MemberID:        member.ID,
		Tier:            member.Tier,
		DiscountPercent: percent,
		Points:          member.Points,
		MaxRedeemable:   loyalty.MaxRedeemable(member.Points, afterTier),
		LifetimeGlasses: glasses,
	}, nil
}
