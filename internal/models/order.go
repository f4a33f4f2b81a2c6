package models

import (
	"time"
)

type OrderStatus string

const (
	StatusPending    OrderStatus = "PENDING"
	StatusProcessing OrderStatus = "PROCESSING"
	StatusCompleted  OrderStatus = "COMPLETED"
	StatusCancelled  OrderStatus = "CANCELLED"
)

func (s OrderStatus) Valid() bool {
	switch s {
	case StatusPending, StatusProcessing, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

type PaymentMethod string

const (
	PaymentCash PaymentMethod = "CASH"
	// PaymentBankTransfer covers QR payments; the terminal records the
	// transfer, it does not process it.
	PaymentBankTransfer PaymentMethod = "BANK_TRANSFER"
)

func (m PaymentMethod) Valid() bool {
	return m == PaymentCash || m == PaymentBankTransfer
}

type Sweetness string

const (
	SweetnessZero        Sweetness = "ZERO"
	SweetnessTwentyFive  Sweetness = "TWENTY_FIVE"
	SweetnessFifty       Sweetness = "FIFTY"
	SweetnessSeventyFive Sweetness = "SEVENTY_FIVE"
	SweetnessNormal      Sweetness = "NORMAL"
	SweetnessExtra       Sweetness = "EXTRA"
)

func (s Sweetness) Valid() bool {
	switch s {
	case SweetnessZero, SweetnessTwentyFive, SweetnessFifty,
		SweetnessSeventyFive, SweetnessNormal, SweetnessExtra:
		return true
	}
	return false
}

// All monetary amounts are whole Thai baht.
type Order struct {
	ID             string        `json:"id"`
	MemberID       *string       `json:"member_id,omitempty"`
	StaffID        *string       `json:"staff_id,omitempty"`
	ShiftID        *string       `json:"shift_id,omitempty"`
	Status         OrderStatus   `json:"status"`
	PaymentMethod  PaymentMethod `json:"payment_method"`
	TotalPrice     int64         `json:"total_price"`
	DiscountAmount int64         `json:"discount_amount"`
	PointsEarned   int64         `json:"points_earned"`
	PointsUsed     int64         `json:"points_used"`
	AmountReceived int64         `json:"amount_received"`
	Change         int64         `json:"change"`
	Note           string        `json:"note,omitempty"`
	Items          []OrderItem   `json:"items"`
	Member         *Member       `json:"member,omitempty"`
	CreatedAt      time.Time     `json:"created_at"`
}

type OrderItem struct {
	ID        string    `json:"id"`
	OrderID   string    `json:"order_id"`
	MenuID    string    `json:"menu_id"`
	MenuName  string    `json:"menu_name,omitempty"`
	UnitPrice int64     `json:"unit_price"`
	Quantity  int64     `json:"quantity"`
	Sweetness Sweetness `json:"sweetness"`
	Note      string    `json:"note,omitempty"`
	Toppings  []Topping `json:"toppings,omitempty"`
}

// CreateOrderRequest is the typed settlement payload. The totals and points
// fields are the client's computation; the server recomputes all of them from
// catalog prices and rejects on mismatch.
type CreateOrderRequest struct {
	MemberID       *string            `json:"member_id,omitempty"`
	StaffID        *string            `json:"staff_id,omitempty"`
	ShiftID        *string            `json:"shift_id,omitempty"`
	// Status may be PENDING for a deferred ticket; empty defaults to
	// COMPLETED, the walk-up counter flow.
	Status         OrderStatus        `json:"status,omitempty"`
	PaymentMethod  PaymentMethod      `json:"payment_method"`
	AmountReceived int64              `json:"amount_received"`
	Note           string             `json:"note,omitempty"`
	Items          []OrderItemRequest `json:"items"`
	TotalPrice     int64              `json:"total_price"`
	DiscountAmount int64              `json:"discount_amount"`
	PointsEarned   int64              `json:"points_earned"`
	PointsUsed     int64              `json:"points_used"`
}

type OrderItemRequest struct {
	MenuID     string    `json:"menu_id"`
	Quantity   int64     `json:"quantity"`
	Sweetness  Sweetness `json:"sweetness"`
	Note       string    `json:"note,omitempty"`
	ToppingIDs []string  `json:"topping_ids"`
}

type StatusUpdateRequest struct {
	Status OrderStatus `json:"status"`
	Note   string      `json:"note,omitempty"`
}

type OrderFilters struct {
	Date    time.Time
	Status  OrderStatus
	ShiftID string
}
