package dal

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"chayen/internal/models"

	"github.com/lib/pq"
)

// CatalogRepository is the read-only lookup surface for menu items, toppings
// and staff. Catalog management itself lives elsewhere; settlement only needs
// prices and availability.
type CatalogRepository interface {
	GetMenuItems(ctx context.Context, ids []string) (map[string]models.MenuItem, error)
	GetToppings(ctx context.Context, ids []string) (map[string]models.Topping, error)
	GetStaffByID(ctx context.Context, id string) (models.Staff, error)
	GetStaffByPIN(ctx context.Context, pin string) (models.Staff, error)
}

type catalogRepository struct {
	*Repository
}

func NewCatalogRepository(db *sql.DB) CatalogRepository {
	return &catalogRepository{NewRepository(db)}
}

func (r *catalogRepository) GetMenuItems(ctx context.Context, ids []string) (map[string]models.MenuItem, error) {
	items := make(map[string]models.MenuItem, len(ids))
	if len(ids) == 0 {
		return items, nil
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT m.id, m.name, m.price, m.category_id, c.name, m.is_active, m.created_at
		FROM menu_items m
		JOIN categories c ON c.id = m.category_id
		WHERE m.id = ANY($1)`, pq.Array(ids))
	if err != nil {
		return nil, fmt.Errorf("failed to get menu items: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var item models.MenuItem
		if err := rows.Scan(
			&item.ID,
			&item.Name,
			&item.Price,
			&item.CategoryID,
			&item.Category,
			&item.IsActive,
			&item.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan menu item: %w", err)
		}
		items[item.ID] = item
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}

	return items, nil
}

func (r *catalogRepository) GetToppings(ctx context.Context, ids []string) (map[string]models.Topping, error) {
	toppings := make(map[string]models.Topping, len(ids))
	if len(ids) == 0 {
		return toppings, nil
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT id, name, price, is_active
		FROM toppings
		WHERE id = ANY($1)`, pq.Array(ids))
	if err != nil {
		return nil, fmt.Errorf("failed to get toppings: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var t models.Topping
		if err := rows.Scan(&t.ID, &t.Name, &t.Price, &t.IsActive); err != nil {
			return nil, fmt.Errorf("failed to scan topping: %w", err)
		}
		toppings[t.ID] = t
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}

	return toppings, nil
}

func (r *catalogRepository) GetStaffByID(ctx context.Context, id string) (models.Staff, error) {
	var staff models.Staff
	err := r.db.QueryRowContext(ctx, `
		SELECT id, name, role FROM staff WHERE id = $1`, id).
		Scan(&staff.ID, &staff.Name, &staff.Role)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Staff{}, models.ErrStaffNotFound
		}
		return models.Staff{}, fmt.Errorf("failed to get staff: %w", err)
	}
	return staff, nil
}

func (r *catalogRepository) GetStaffByPIN(ctx context.Context, pin string) (models.Staff, error) {
	var staff models.Staff
	err := r.db.QueryRowContext(ctx, `
		SELECT id, name, role FROM staff WHERE pin = $1`, pin).
		Scan(&staff.ID, &staff.Name, &staff.Role)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Staff{}, models.ErrInvalidPIN
		}
		return models.Staff{}, fmt.Errorf("failed to get staff by pin: %w", err)
	}
	return staff, nil
}
