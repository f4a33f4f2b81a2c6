package models

import "time"

type ShiftStatus string

const (
	ShiftOpen   ShiftStatus = "OPEN"
	ShiftClosed ShiftStatus = "CLOSED"
)

type Shift struct {
	ID           string      `json:"id"`
	StaffID      string      `json:"staff_id"`
	StaffName    string      `json:"staff_name,omitempty"`
	Status       ShiftStatus `json:"status"`
	OpenedAt     time.Time   `json:"opened_at"`
	ClosedAt     *time.Time  `json:"closed_at,omitempty"`
	StartingCash int64       `json:"starting_cash"`
	EndingCash   *int64      `json:"ending_cash,omitempty"`
	CashSales    *int64      `json:"cash_sales,omitempty"`
	QRSales      *int64      `json:"qr_sales,omitempty"`
	TotalSales   *int64      `json:"total_sales,omitempty"`
	Note         string      `json:"note,omitempty"`
}

type OpenShiftRequest struct {
	StaffID      string `json:"staff_id"`
	StartingCash int64  `json:"starting_cash"`
}

type CloseShiftRequest struct {
	EndingCash int64  `json:"ending_cash"`
	CashSales  int64  `json:"cash_sales"`
	QRSales    int64  `json:"qr_sales"`
	Note       string `json:"note,omitempty"`
}

// ShiftSummary aggregates the completed orders of one shift, split by
// payment method.
type ShiftSummary struct {
	ShiftID     string `json:"shift_id"`
	TotalSales  int64  `json:"total_sales"`
	TotalOrders int64  `json:"total_orders"`
	CashSales   int64  `json:"cash_sales"`
	QRSales     int64  `json:"qr_sales"`
}

type ShiftFilters struct {
	StaffID string
	Status  ShiftStatus
}
