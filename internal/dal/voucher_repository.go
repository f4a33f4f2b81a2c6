package dal

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"chayen/internal/models"
)

type VoucherRepository interface {
	CreateVoucher(ctx context.Context, voucher models.Voucher) (models.Voucher, error)
	GetVoucherByCode(ctx context.Context, code string) (models.Voucher, error)
	RedeemVoucher(ctx context.Context, code string) (models.Voucher, error)
	ListMemberVouchers(ctx context.Context, memberID string) ([]models.Voucher, error)
}

type voucherRepository struct {
	*Repository
}

func NewVoucherRepository(db *sql.DB) VoucherRepository {
	return &voucherRepository{NewRepository(db)}
}

const voucherColumns = `
	code, member_id, COALESCE(description, ''), amount, points_used,
	is_used, used_at, expires_at, created_at`

// CreateVoucher debits the member's points and writes the code in one
// transaction, with the balance checked under the member row lock so two
// concurrent issues cannot both spend the same points.
func (r *voucherRepository) CreateVoucher(ctx context.Context, voucher models.Voucher) (models.Voucher, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return models.Voucher{}, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var points int64
	err = tx.QueryRowContext(ctx, `
		SELECT points FROM members WHERE id = $1 FOR UPDATE`, voucher.MemberID).Scan(&points)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Voucher{}, models.ErrMemberNotFound
		}
		return models.Voucher{}, fmt.Errorf("failed to lock member: %w", err)
	}
	if err := checkRedeemable(points, voucher.PointsUsed); err != nil {
		return models.Voucher{}, err
	}

	_, err = tx.ExecContext(ctx, `
		UPDATE members SET points = points - $1 WHERE id = $2`,
		voucher.PointsUsed, voucher.MemberID)
	if err != nil {
		return models.Voucher{}, fmt.Errorf("failed to debit member points: %w", err)
	}

	err = tx.QueryRowContext(ctx, `
		INSERT INTO discount_codes (code, member_id, description, amount, points_used, expires_at)
		VALUES ($1, $2, NULLIF($3, ''), $4, $5, $6)
		RETURNING created_at`,
		voucher.Code, voucher.MemberID, voucher.Description, voucher.Amount,
		voucher.PointsUsed, voucher.ExpiresAt,
	).Scan(&voucher.CreatedAt)
	if err != nil {
		return models.Voucher{}, fmt.Errorf("failed to create voucher: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return models.Voucher{}, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return voucher, nil
}

func (r *voucherRepository) GetVoucherByCode(ctx context.Context, code string) (models.Voucher, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT `+voucherColumns+`
		FROM discount_codes WHERE code = $1`, code)

	voucher, err := scanVoucher(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Voucher{}, models.ErrVoucherNotFound
		}
		return models.Voucher{}, fmt.Errorf("failed to get voucher: %w", err)
	}
	return voucher, nil
}

// RedeemVoucher marks the code used under a row lock, so a code presented at
// two terminals at once is honored exactly once.
func (r *voucherRepository) RedeemVoucher(ctx context.Context, code string) (models.Voucher, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return models.Voucher{}, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var (
		isUsed    bool
		expiresAt time.Time
	)
	err = tx.QueryRowContext(ctx, `
		SELECT is_used, expires_at FROM discount_codes WHERE code = $1 FOR UPDATE`, code).
		Scan(&isUsed, &expiresAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Voucher{}, models.ErrVoucherNotFound
		}
		return models.Voucher{}, fmt.Errorf("failed to lock voucher: %w", err)
	}
	if isUsed {
		return models.Voucher{}, models.ErrVoucherUsed
	}
	if time.Now().After(expiresAt) {
		return models.Voucher{}, models.ErrVoucherExpired
	}

	_, err = tx.ExecContext(ctx, `
		UPDATE discount_codes SET is_used = TRUE, used_at = $1 WHERE code = $2`,
		time.Now(), code)
	if err != nil {
		return models.Voucher{}, fmt.Errorf("failed to redeem voucher: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return models.Voucher{}, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return r.GetVoucherByCode(ctx, code)
}

func (r *voucherRepository) ListMemberVouchers(ctx context.Context, memberID string) ([]models.Voucher, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+voucherColumns+`
		FROM discount_codes
		WHERE member_id = $1
		ORDER BY created_at DESC`, memberID)
	if err != nil {
		return nil, fmt.Errorf("failed to list vouchers: %w", err)
	}
	defer rows.Close()

	var vouchers []models.Voucher
	for rows.Next() {
		voucher, err := scanVoucher(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("failed to scan voucher: %w", err)
		}
		vouchers = append(vouchers, voucher)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}

	return vouchers, nil
}

func scanVoucher(scan func(dest ...interface{}) error) (models.Voucher, error) {
	var v models.Voucher
	err := scan(
		&v.Code,
		&v.MemberID,
		&v.Description,
		&v.Amount,
		&v.PointsUsed,
		&v.IsUsed,
		&v.UsedAt,
		&v.ExpiresAt,
		&v.CreatedAt,
	)
	return v, err
}
