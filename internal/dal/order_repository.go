package dal

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"chayen/internal/loyalty"
	"chayen/internal/models"
)

type OrderRepository interface {
	CreateOrder(ctx context.Context, order models.Order) (models.Order, error)
	GetOrderByID(ctx context.Context, id string) (models.Order, error)
	ListOrders(ctx context.Context, filters models.OrderFilters) ([]models.Order, error)
	UpdateOrderStatus(ctx context.Context, id string, status models.OrderStatus, note string) (models.Order, error)
}

type orderRepository struct {
	*Repository
}

func NewOrderRepository(db *sql.DB) OrderRepository {
	return &orderRepository{NewRepository(db)}
}

// CreateOrder persists the order, its line items and topping links, and — when
// a member is attached — the member's points increment and tier recompute, all
// in one transaction. The member row is locked first so concurrent settlements
// against the same member serialize, and the redemption is re-checked against
// the locked balance: the service validated it on an earlier read that may be
// stale by now.
func (r *orderRepository) CreateOrder(ctx context.Context, order models.Order) (models.Order, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return models.Order{}, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if order.MemberID != nil {
		var points int64
		err := tx.QueryRowContext(ctx, `
			SELECT points FROM members WHERE id = $1 FOR UPDATE`, *order.MemberID).Scan(&points)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return models.Order{}, models.ErrMemberNotFound
			}
			return models.Order{}, fmt.Errorf("failed to lock member: %w", err)
		}
		if err := checkRedeemable(points, order.PointsUsed); err != nil {
			return models.Order{}, err
		}
	}

	err = tx.QueryRowContext(ctx, `
		INSERT INTO orders (
			id, member_id, staff_id, shift_id, status, payment_method,
			total_price, discount_amount, points_earned, points_used,
			amount_received, change, note
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING created_at`,
		order.ID, order.MemberID, order.StaffID, order.ShiftID, order.Status,
		order.PaymentMethod, order.TotalPrice, order.DiscountAmount,
		order.PointsEarned, order.PointsUsed, order.AmountReceived,
		order.Change, order.Note,
	).Scan(&order.CreatedAt)
	if err != nil {
		return models.Order{}, fmt.Errorf("failed to create order: %w", err)
	}

	for i, item := range order.Items {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO order_items (id, order_id, menu_id, quantity, sweetness, note)
			VALUES ($1, $2, $3, $4, $5, $6)`,
			item.ID, order.ID, item.MenuID, item.Quantity, item.Sweetness, item.Note,
		)
		if err != nil {
			return models.Order{}, fmt.Errorf("failed to add order item: %w", err)
		}

		for _, topping := range item.Toppings {
			_, err := tx.ExecContext(ctx, `
				INSERT INTO order_item_toppings (order_item_id, topping_id)
				VALUES ($1, $2)`,
				item.ID, topping.ID,
			)
			if err != nil {
				return models.Order{}, fmt.Errorf("failed to add order item topping: %w", err)
			}
		}
		order.Items[i].OrderID = order.ID
	}

	// Points and tier apply when the order completes; a PENDING ticket has
	// not changed the COMPLETED set yet.
	if order.MemberID != nil && order.Status == models.StatusCompleted {
		if err := r.applyMemberMutation(ctx, tx, *order.MemberID, order.PointsEarned-order.PointsUsed); err != nil {
			return models.Order{}, err
		}
	}

	if err := tx.Commit(); err != nil {
		return models.Order{}, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return order, nil
}

// checkRedeemable compares a redemption against the balance as it stands
// under the member row lock.
func checkRedeemable(balance, pointsUsed int64) error {
	if pointsUsed > balance {
		return models.ErrInvalidRedemption
	}
	return nil
}

// applyMemberMutation adjusts the member's points balance by delta and
// recomputes the tier from the member's COMPLETED orders as they stand inside
// the current transaction. The tier recompute runs even when delta is zero:
// a fully redeemed order still moves glasses in or out of the COMPLETED set.
// Callers must already hold the member row lock.
func (r *orderRepository) applyMemberMutation(ctx context.Context, tx *sql.Tx, memberID string, delta int64) error {
	if delta != 0 {
		_, err := tx.ExecContext(ctx, `
			UPDATE members SET points = points + $1 WHERE id = $2`, delta, memberID)
		if err != nil {
			return fmt.Errorf("failed to update member points: %w", err)
		}
	}

	glasses, err := completedGlasses(ctx, tx, memberID)
	if err != nil {
		return err
	}

	_, err = tx.ExecContext(ctx, `
		UPDATE members SET tier = $1 WHERE id = $2`, loyalty.TierFor(glasses), memberID)
	if err != nil {
		return fmt.Errorf("failed to update member tier: %w", err)
	}

	return nil
}

func (r *orderRepository) GetOrderByID(ctx context.Context, id string) (models.Order, error) {
	var order models.Order
	err := r.db.QueryRowContext(ctx, `
		SELECT id, member_id, staff_id, shift_id, status, payment_method,
		       total_price, discount_amount, points_earned, points_used,
		       amount_received, change, COALESCE(note, ''), created_at
		FROM orders
		WHERE id = $1`, id).Scan(
		&order.ID,
		&order.MemberID,
		&order.StaffID,
		&order.ShiftID,
		&order.Status,
		&order.PaymentMethod,
		&order.TotalPrice,
		&order.DiscountAmount,
		&order.PointsEarned,
		&order.PointsUsed,
		&order.AmountReceived,
		&order.Change,
		&order.Note,
		&order.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Order{}, models.ErrOrderNotFound
		}
		return models.Order{}, fmt.Errorf("failed to get order: %w", err)
	}

	items, err := r.loadOrderItems(ctx, order.ID)
	if err != nil {
		return models.Order{}, err
	}
	order.Items = items

	return order, nil
}

func (r *orderRepository) loadOrderItems(ctx context.Context, orderID string) ([]models.OrderItem, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT oi.id, oi.menu_id, m.name, m.price, oi.quantity, oi.sweetness, COALESCE(oi.note, '')
		FROM order_items oi
		JOIN menu_items m ON m.id = oi.menu_id
		WHERE oi.order_id = $1`, orderID)
	if err != nil {
		return nil, fmt.Errorf("failed to get order items: %w", err)
	}
	defer rows.Close()

	var items []models.OrderItem
	for rows.Next() {
		var item models.OrderItem
		item.OrderID = orderID
		if err := rows.Scan(
			&item.ID,
			&item.MenuID,
			&item.MenuName,
			&item.UnitPrice,
			&item.Quantity,
			&item.Sweetness,
			&item.Note,
		); err != nil {
			return nil, fmt.Errorf("failed to scan order item: %w", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error after scanning order items: %w", err)
	}

	for i := range items {
		toppings, err := r.loadItemToppings(ctx, items[i].ID)
		if err != nil {
			return nil, err
		}
		items[i].Toppings = toppings
	}

	return items, nil
}

func (r *orderRepository) loadItemToppings(ctx context.Context, itemID string) ([]models.Topping, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT t.id, t.name, t.price, t.is_active
		FROM order_item_toppings oit
		JOIN toppings t ON t.id = oit.topping_id
		WHERE oit.order_item_id = $1`, itemID)
	if err != nil {
		return nil, fmt.Errorf("failed to get item toppings: %w", err)
	}
	defer rows.Close()

	var toppings []models.Topping
	for rows.Next() {
		var t models.Topping
		if err := rows.Scan(&t.ID, &t.Name, &t.Price, &t.IsActive); err != nil {
			return nil, fmt.Errorf("failed to scan topping: %w", err)
		}
		toppings = append(toppings, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}

	return toppings, nil
}

func (r *orderRepository) ListOrders(ctx context.Context, filters models.OrderFilters) ([]models.Order, error) {
	query := `
		SELECT id, member_id, staff_id, shift_id, status, payment_method,
		       total_price, discount_amount, points_earned, points_used,
		       amount_received, change, COALESCE(note, ''), created_at
		FROM orders
		WHERE 1=1`

	var args []interface{}

	if !filters.Date.IsZero() {
		args = append(args, filters.Date)
		query += fmt.Sprintf(" AND created_at >= $%d", len(args))
		args = append(args, filters.Date.AddDate(0, 0, 1))
		query += fmt.Sprintf(" AND created_at < $%d", len(args))
	}
	if filters.Status != "" {
		args = append(args, filters.Status)
		query += fmt.Sprintf(" AND status = $%d", len(args))
	}
	if filters.ShiftID != "" {
		args = append(args, filters.ShiftID)
		query += fmt.Sprintf(" AND shift_id = $%d", len(args))
	}

	query += " ORDER BY created_at DESC"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	defer rows.Close()

	var orders []models.Order
	for rows.Next() {
		var order models.Order
		if err := rows.Scan(
			&order.ID,
			&order.MemberID,
			&order.StaffID,
			&order.ShiftID,
			&order.Status,
			&order.PaymentMethod,
			&order.TotalPrice,
			&order.DiscountAmount,
			&order.PointsEarned,
			&order.PointsUsed,
			&order.AmountReceived,
			&order.Change,
			&order.Note,
			&order.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan order: %w", err)
		}
		orders = append(orders, order)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}

	for i := range orders {
		items, err := r.loadOrderItems(ctx, orders[i].ID)
		if err != nil {
			return nil, err
		}
		orders[i].Items = items
	}

	return orders, nil
}

// UpdateOrderStatus performs a guarded state transition. Completing a
// deferred order applies the member's points and tier; cancelling a COMPLETED
// order reverses them. Both run in the same transaction as the status change,
// so a transition can never leave the ledger half applied.
func (r *orderRepository) UpdateOrderStatus(ctx context.Context, id string, status models.OrderStatus, note string) (models.Order, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return models.Order{}, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var (
		current      models.OrderStatus
		memberID     *string
		pointsEarned int64
		pointsUsed   int64
	)
	err = tx.QueryRowContext(ctx, `
		SELECT status, member_id, points_earned, points_used
		FROM orders WHERE id = $1 FOR UPDATE`, id).
		Scan(&current, &memberID, &pointsEarned, &pointsUsed)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Order{}, models.ErrOrderNotFound
		}
		return models.Order{}, fmt.Errorf("failed to lock order: %w", err)
	}

	if err := validateTransition(current, status); err != nil {
		return models.Order{}, err
	}

	completing := status == models.StatusCompleted
	reversing := status == models.StatusCancelled && current == models.StatusCompleted

	if memberID != nil && (completing || reversing) {
		var points int64
		err := tx.QueryRowContext(ctx, `
			SELECT points FROM members WHERE id = $1 FOR UPDATE`, *memberID).Scan(&points)
		if err != nil {
			return models.Order{}, fmt.Errorf("failed to lock member: %w", err)
		}
		// The redemption was validated when the ticket was taken; the balance
		// may have moved since.
		if completing {
			if err := checkRedeemable(points, pointsUsed); err != nil {
				return models.Order{}, err
			}
		}
	}

	if note != "" {
		_, err = tx.ExecContext(ctx, `
			UPDATE orders SET status = $1, note = $2 WHERE id = $3`, status, note, id)
	} else {
		_, err = tx.ExecContext(ctx, `
			UPDATE orders SET status = $1 WHERE id = $2`, status, id)
	}
	if err != nil {
		return models.Order{}, fmt.Errorf("failed to update order status: %w", err)
	}

	// The status update above has already taken effect inside this
	// transaction, so the glass aggregate sees the order's new status.
	if memberID != nil {
		switch {
		case completing:
			if err := r.applyMemberMutation(ctx, tx, *memberID, pointsEarned-pointsUsed); err != nil {
				return models.Order{}, err
			}
		case reversing:
			if err := r.applyMemberMutation(ctx, tx, *memberID, -(pointsEarned - pointsUsed)); err != nil {
				return models.Order{}, err
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return models.Order{}, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return r.GetOrderByID(ctx, id)
}

// validateTransition enforces the order state machine: PENDING may move to
// PROCESSING or CANCELLED, PROCESSING to COMPLETED, COMPLETED to CANCELLED
// (the refund path). CANCELLED is terminal.
func validateTransition(from, to models.OrderStatus) error {
	if from == models.StatusCancelled {
		if to == models.StatusCancelled {
			return models.ErrOrderAlreadyCancelled
		}
		return models.ErrInvalidTransition
	}

	switch to {
	case models.StatusProcessing:
		if from != models.StatusPending {
			return models.ErrInvalidTransition
		}
	case models.StatusCompleted:
		if from != models.StatusProcessing {
			return models.ErrInvalidTransition
		}
	case models.StatusCancelled:
		if from != models.StatusPending && from != models.StatusCompleted {
			return models.ErrInvalidTransition
		}
	default:
		return models.ErrInvalidTransition
	}

	return nil
}
