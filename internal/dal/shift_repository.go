package dal

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"chayen/internal/models"
)

type ShiftRepository interface {
	CreateShift(ctx context.Context, shift models.Shift) (models.Shift, error)
	GetShiftByID(ctx context.Context, id string) (models.Shift, error)
	ListShifts(ctx context.Context, filters models.ShiftFilters) ([]models.Shift, error)
	HasOpenShift(ctx context.Context, staffID string) (bool, error)
	CloseShift(ctx context.Context, id string, req models.CloseShiftRequest) (models.Shift, error)
	GetShiftSummary(ctx context.Context, id string) (models.ShiftSummary, error)
}

type shiftRepository struct {
	*Repository
}

func NewShiftRepository(db *sql.DB) ShiftRepository {
	return &shiftRepository{NewRepository(db)}
}

const shiftColumns = `
	s.id, s.staff_id, st.name, s.status, s.opened_at, s.closed_at,
	s.starting_cash, s.ending_cash, s.cash_sales, s.qr_sales, s.total_sales,
	COALESCE(s.note, '')`

// CreateShift relies on the partial unique index on (staff_id) WHERE status =
// 'OPEN' to close the race between two concurrent opens; the service-level
// pre-check only gives a friendlier fast path.
func (r *shiftRepository) CreateShift(ctx context.Context, shift models.Shift) (models.Shift, error) {
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO shifts (id, staff_id, status, starting_cash)
		VALUES ($1, $2, $3, $4)
		RETURNING opened_at`,
		shift.ID, shift.StaffID, shift.Status, shift.StartingCash,
	).Scan(&shift.OpenedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return models.Shift{}, models.ErrShiftAlreadyOpen
		}
		return models.Shift{}, fmt.Errorf("failed to create shift: %w", err)
	}
	return shift, nil
}

func (r *shiftRepository) GetShiftByID(ctx context.Context, id string) (models.Shift, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT `+shiftColumns+`
		FROM shifts s
		JOIN staff st ON st.id = s.staff_id
		WHERE s.id = $1`, id)

	shift, err := scanShift(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Shift{}, models.ErrShiftNotFound
		}
		return models.Shift{}, fmt.Errorf("failed to get shift: %w", err)
	}
	return shift, nil
}

func (r *shiftRepository) ListShifts(ctx context.Context, filters models.ShiftFilters) ([]models.Shift, error) {
	query := `
		SELECT ` + shiftColumns + `
		FROM shifts s
		JOIN staff st ON st.id = s.staff_id
		WHERE 1=1`

	var args []interface{}
	if filters.StaffID != "" {
		args = append(args, filters.StaffID)
		query += fmt.Sprintf(" AND s.staff_id = $%d", len(args))
	}
	if filters.Status != "" {
		args = append(args, filters.Status)
		query += fmt.Sprintf(" AND s.status = $%d", len(args))
	}

	query += " ORDER BY s.opened_at DESC"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list shifts: %w", err)
	}
	defer rows.Close()

	var shifts []models.Shift
	for rows.Next() {
		shift, err := scanShift(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("failed to scan shift: %w", err)
		}
		shifts = append(shifts, shift)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}

	return shifts, nil
}

func scanShift(scan func(dest ...interface{}) error) (models.Shift, error) {
	var s models.Shift
	err := scan(
		&s.ID,
		&s.StaffID,
		&s.StaffName,
		&s.Status,
		&s.OpenedAt,
		&s.ClosedAt,
		&s.StartingCash,
		&s.EndingCash,
		&s.CashSales,
		&s.QRSales,
		&s.TotalSales,
		&s.Note,
	)
	return s, err
}

func (r *shiftRepository) HasOpenShift(ctx context.Context, staffID string) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM shifts WHERE staff_id = $1 AND status = 'OPEN'
		)`, staffID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check open shift: %w", err)
	}
	return exists, nil
}

// CloseShift re-checks the status under a row lock so a shift can only close
// once, whatever the service saw earlier.
func (r *shiftRepository) CloseShift(ctx context.Context, id string, req models.CloseShiftRequest) (models.Shift, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return models.Shift{}, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var status models.ShiftStatus
	err = tx.QueryRowContext(ctx, `
		SELECT status FROM shifts WHERE id = $1 FOR UPDATE`, id).Scan(&status)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Shift{}, models.ErrShiftNotFound
		}
		return models.Shift{}, fmt.Errorf("failed to lock shift: %w", err)
	}
	if status == models.ShiftClosed {
		return models.Shift{}, models.ErrShiftAlreadyClosed
	}

	totalSales := req.CashSales + req.QRSales
	_, err = tx.ExecContext(ctx, `
		UPDATE shifts
		SET status = 'CLOSED',
		    closed_at = $1,
		    ending_cash = $2,
		    cash_sales = $3,
		    qr_sales = $4,
		    total_sales = $5,
		    note = NULLIF($6, '')
		WHERE id = $7`,
		time.Now(), req.EndingCash, req.CashSales, req.QRSales,
		totalSales, req.Note, id,
	)
	if err != nil {
		return models.Shift{}, fmt.Errorf("failed to close shift: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return models.Shift{}, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return r.GetShiftByID(ctx, id)
}

// GetShiftSummary sums the shift's COMPLETED orders split by payment method.
func (r *shiftRepository) GetShiftSummary(ctx context.Context, id string) (models.ShiftSummary, error) {
	summary := models.ShiftSummary{ShiftID: id}
	err := r.db.QueryRowContext(ctx, `
		SELECT
			COUNT(*),
			COALESCE(SUM(total_price), 0),
			COALESCE(SUM(total_price) FILTER (WHERE payment_method = 'CASH'), 0),
			COALESCE(SUM(total_price) FILTER (WHERE payment_method = 'BANK_TRANSFER'), 0)
		FROM orders
		WHERE shift_id = $1 AND status = 'COMPLETED'`, id).Scan(
		&summary.TotalOrders,
		&summary.TotalSales,
		&summary.CashSales,
		&summary.QRSales,
	)
	if err != nil {
		return models.ShiftSummary{}, fmt.Errorf("failed to get shift summary: %w", err)
	}
	return summary, nil
}
