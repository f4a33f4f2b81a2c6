package models

import "errors"

var (
	ErrOrderNotFound   = errors.New("order not found")
	ErrMemberNotFound  = errors.New("member not found")
	ErrStaffNotFound   = errors.New("staff not found")
	ErrShiftNotFound   = errors.New("shift not found")
	ErrMenuNotFound    = errors.New("menu item not found")
	ErrToppingNotFound = errors.New("topping not found")

	ErrEmptyOrder            = errors.New("order must contain at least one item")
	ErrInvalidQuantity       = errors.New("line item quantity must be positive")
	ErrInvalidPaymentMethod  = errors.New("invalid payment method")
	ErrInvalidSweetness      = errors.New("invalid sweetness level")
	ErrInvalidStatus         = errors.New("invalid order status")
	ErrInvalidTransition     = errors.New("invalid order status transition")
	ErrOrderAlreadyCancelled = errors.New("order is already cancelled")
	ErrTotalMismatch         = errors.New("submitted totals do not match server computation")
	ErrPointsMismatch        = errors.New("submitted points do not match server computation")
	ErrInvalidRedemption     = errors.New("points to redeem must be a non-negative multiple of 10 within the redeemable cap")
	ErrInsufficientCash      = errors.New("amount received is less than the order total")
	ErrMenuUnavailable       = errors.New("menu item is not available")
	ErrToppingUnavailable    = errors.New("topping is not available")

	ErrShiftAlreadyOpen   = errors.New("staff already has an open shift")
	ErrShiftAlreadyClosed = errors.New("shift is already closed")
	ErrNegativeCash       = errors.New("cash amount cannot be negative")
	ErrReconciliationNote = errors.New("a note is required when counted cash differs from the expected amount")

	ErrVoucherNotFound = errors.New("discount code not found")
	ErrVoucherExpired  = errors.New("discount code has expired")
	ErrVoucherUsed     = errors.New("discount code has already been used")

	ErrPhoneTaken      = errors.New("phone number already registered")
	ErrInvalidPhone    = errors.New("phone number is required")
	ErrInvalidName     = errors.New("name is required")
	ErrInvalidPIN      = errors.New("invalid staff PIN")
	ErrSessionNotFound = errors.New("session not found or expired")

	ErrInvalidDateRange = errors.New("invalid date range")
	ErrInvalidSubtotal  = errors.New("subtotal must be non-negative")
)
