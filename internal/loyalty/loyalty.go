// Package loyalty holds the membership tier engine and the points ledger
// arithmetic. Tiers derive from lifetime completed-purchase volume in
// glasses, not from monetary spend, and points convert to baht at a fixed
// rate in ten-point increments.
package loyalty

import "chayen/internal/models"

const (
	// One point is earned per glass not paid for with redeemed points.
	PointsPerGlass = 1

	// Points redeem in blocks of ten; a full block is worth 25 baht, so one
	// block offsets one glass when computing points earned.
	RedeemUnit      = 10
	RedeemUnitValue = 25
)

// Tier thresholds in lifetime completed glasses, inclusive lower bounds.
const (
	silverGlasses   = 10
	goldGlasses     = 50
	platinumGlasses = 100
)

func TierFor(glasses int64) models.Tier {
	switch {
	case glasses >= platinumGlasses:
		return models.TierPlatinum
	case glasses >= goldGlasses:
		return models.TierGold
	case glasses >= silverGlasses:
		return models.TierSilver
	default:
		return models.TierBronze
	}
}

func DiscountPercent(tier models.Tier) int64 {
	switch tier {
	case models.TierSilver:
		return 5
	case models.TierGold:
		return 10
	case models.TierPlatinum:
		return 15
	default:
		return 0
	}
}

// RedemptionValue converts points to baht at 2.5 baht per point, truncating.
// For the multiples of ten the redemption rules allow, the result is exact.
func RedemptionValue(points int64) int64 {
	return points * RedeemUnitValue / RedeemUnit
}

// MaxRedeemable caps redemption at the smaller of the member's balance and
// the points equivalent of the amount left after the tier discount, floored
// to the nearest multiple of ten. A balance under ten redeems nothing.
func MaxRedeemable(balance, afterTierDiscount int64) int64 {
	if balance < 0 || afterTierDiscount < 0 {
		return 0
	}
	byAmount := afterTierDiscount * RedeemUnit / RedeemUnitValue // floor(amount / 2.5)
	limit := balance
	if byAmount < limit {
		limit = byAmount
	}
	return limit / RedeemUnit * RedeemUnit
}

// ValidRedemption reports whether a requested redemption is a non-negative
// multiple of ten within the cap.
func ValidRedemption(points, balance, afterTierDiscount int64) bool {
	if points < 0 || points%RedeemUnit != 0 {
		return false
	}
	return points <= MaxRedeemable(balance, afterTierDiscount)
}

// PointsEarned awards one point per glass, less the glasses already paid for
// by the redemption on the same order (one glass per 25 baht of points
// discount). Never negative.
func PointsEarned(glasses, pointsDiscount int64) int64 {
	earning := glasses - pointsDiscount/RedeemUnitValue
	if earning < 0 {
		earning = 0
	}
	return earning * PointsPerGlass
}
