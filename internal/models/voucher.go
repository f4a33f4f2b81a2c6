package models

import "time"

// Voucher is a single-use discount code bought with loyalty points. Issuing
// one debits the member's balance immediately; the code then carries the baht
// value until it is redeemed or expires.
type Voucher struct {
	Code        string     `json:"code"`
	MemberID    string     `json:"member_id"`
	Description string     `json:"description,omitempty"`
	Amount      int64      `json:"amount"`
	PointsUsed  int64      `json:"points_used"`
	IsUsed      bool       `json:"is_used"`
	UsedAt      *time.Time `json:"used_at,omitempty"`
	ExpiresAt   time.Time  `json:"expires_at"`
	CreatedAt   time.Time  `json:"created_at"`
}

type IssueVoucherRequest struct {
	PointsUsed  int64  `json:"points_used"`
	Description string `json:"description,omitempty"`
}
