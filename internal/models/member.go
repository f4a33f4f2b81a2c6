package models

import "time"

type Tier string

const (
	TierBronze   Tier = "BRONZE"
	TierSilver   Tier = "SILVER"
	TierGold     Tier = "GOLD"
	TierPlatinum Tier = "PLATINUM"
)

type Member struct {
	ID        string    `json:"id"`
	Phone     string    `json:"phone"`
	Name      string    `json:"name"`
	Points    int64     `json:"points"`
	Tier      Tier      `json:"tier"`
	CreatedAt time.Time `json:"created_at"`
}

type CreateMemberRequest struct {
	Phone string `json:"phone"`
	Name  string `json:"name"`
}

// MemberBenefits is the derived view the POS consumes before settlement:
// what discount the member gets and how many points they may redeem against
// a given subtotal.
type MemberBenefits struct {
	MemberID        string `json:"member_id"`
	Tier            Tier   `json:"tier"`
	DiscountPercent int64  `json:"discount_percent"`
	Points          int64  `json:"points"`
	MaxRedeemable   int64  `json:"max_redeemable_points"`
	LifetimeGlasses int64  `json:"lifetime_glasses"`
}
