package dal

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"chayen/internal/models"
)

type MemberRepository interface {
	CreateMember(ctx context.Context, member models.Member) (models.Member, error)
	GetMemberByID(ctx context.Context, id string) (models.Member, error)
	GetMemberByPhone(ctx context.Context, phone string) (models.Member, error)
	CountCompletedGlasses(ctx context.Context, memberID string) (int64, error)
}

type memberRepository struct {
	*Repository
}

func NewMemberRepository(db *sql.DB) MemberRepository {
	return &memberRepository{NewRepository(db)}
}

func (r *memberRepository) CreateMember(ctx context.Context, member models.Member) (models.Member, error) {
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO members (id, phone, name, points, tier)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at`,
		member.ID, member.Phone, member.Name, member.Points, member.Tier,
	).Scan(&member.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return models.Member{}, models.ErrPhoneTaken
		}
		return models.Member{}, fmt.Errorf("failed to create member: %w", err)
	}
	return member, nil
}

func (r *memberRepository) GetMemberByID(ctx context.Context, id string) (models.Member, error) {
	return scanMember(r.db.QueryRowContext(ctx, `
		SELECT id, phone, name, points, tier, created_at
		FROM members WHERE id = $1`, id))
}

func (r *memberRepository) GetMemberByPhone(ctx context.Context, phone string) (models.Member, error) {
	return scanMember(r.db.QueryRowContext(ctx, `
		SELECT id, phone, name, points, tier, created_at
		FROM members WHERE phone = $1`, phone))
}

func scanMember(row *sql.Row) (models.Member, error) {
	var m models.Member
	err := row.Scan(&m.ID, &m.Phone, &m.Name, &m.Points, &m.Tier, &m.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Member{}, models.ErrMemberNotFound
		}
		return models.Member{}, fmt.Errorf("failed to get member: %w", err)
	}
	return m, nil
}

// CountCompletedGlasses sums line-item quantities over the member's COMPLETED
// orders. This is the tier engine's input.
func (r *memberRepository) CountCompletedGlasses(ctx context.Context, memberID string) (int64, error) {
	return completedGlasses(ctx, r.db, memberID)
}

type queryRower interface {
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
}

// completedGlasses runs the glass aggregate on either the pool or an open
// transaction, so settlement and cancellation see their own writes.
func completedGlasses(ctx context.Context, q queryRower, memberID string) (int64, error) {
	var glasses int64
	err := q.QueryRowContext(ctx, `
		SELECT COALESCE(SUM(oi.quantity), 0)
		FROM order_items oi
		JOIN orders o ON o.id = oi.order_id
		WHERE o.member_id = $1 AND o.status = 'COMPLETED'`, memberID).Scan(&glasses)
	if err != nil {
		return 0, fmt.Errorf("failed to count completed glasses: %w", err)
	}
	return glasses, nil
}
