package dal

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"chayen/internal/models"
)

type ReportRepository interface {
	GetSalesReport(ctx context.Context, startDate, endDate time.Time) (models.SalesReport, error)
	GetBestsellers(ctx context.Context, startDate, endDate time.Time, limit int) ([]models.Bestseller, error)
	GetCategorySales(ctx context.Context, startDate, endDate time.Time) ([]models.CategorySales, error)
}

type reportRepository struct {
	*Repository
}

func NewReportRepository(db *sql.DB) ReportRepository {
	return &reportRepository{NewRepository(db)}
}

// Reports only count COMPLETED orders; cancellations and refunds drop out of
// every aggregate.
func (r *reportRepository) GetSalesReport(ctx context.Context, startDate, endDate time.Time) (models.SalesReport, error) {
	report := models.SalesReport{
		StartDate: startDate.Format("2006-01-02"),
		EndDate:   endDate.Format("2006-01-02"),
	}

	err := r.db.QueryRowContext(ctx, `
		SELECT COUNT(*), COALESCE(SUM(total_price), 0), COALESCE(AVG(total_price), 0)::bigint
		FROM orders
		WHERE status = 'COMPLETED' AND created_at >= $1 AND created_at < $2`,
		startDate, endDate).Scan(&report.TotalOrders, &report.TotalSales, &report.AvgOrder)
	if err != nil {
		return models.SalesReport{}, fmt.Errorf("failed to get sales totals: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT date_trunc('day', created_at) AS day,
		       COALESCE(SUM(total_price), 0),
		       COUNT(*)
		FROM orders
		WHERE status = 'COMPLETED' AND created_at >= $1 AND created_at < $2
		GROUP BY day
		ORDER BY day`, startDate, endDate)
	if err != nil {
		return models.SalesReport{}, fmt.Errorf("failed to get daily sales: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var d models.DailySales
		if err := rows.Scan(&d.Date, &d.TotalSales, &d.OrderCount); err != nil {
			return models.SalesReport{}, fmt.Errorf("failed to scan daily sales: %w", err)
		}
		report.Daily = append(report.Daily, d)
	}
	if err := rows.Err(); err != nil {
		return models.SalesReport{}, fmt.Errorf("rows error: %w", err)
	}

	return report, nil
}

func (r *reportRepository) GetBestsellers(ctx context.Context, startDate, endDate time.Time, limit int) ([]models.Bestseller, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT m.id,
		       m.name,
		       c.name,
		       COUNT(DISTINCT oi.order_id) AS order_count,
		       SUM(oi.quantity) AS total_quantity,
		       SUM(oi.quantity * m.price) AS revenue
		FROM order_items oi
		JOIN orders o ON o.id = oi.order_id
		JOIN menu_items m ON m.id = oi.menu_id
		JOIN categories c ON c.id = m.category_id
		WHERE o.status = 'COMPLETED' AND o.created_at >= $1 AND o.created_at < $2
		GROUP BY m.id, m.name, c.name
		ORDER BY total_quantity DESC
		LIMIT $3`, startDate, endDate, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get bestsellers: %w", err)
	}
	defer rows.Close()

	var bestsellers []models.Bestseller
	for rows.Next() {
		var b models.Bestseller
		if err := rows.Scan(&b.MenuID, &b.Name, &b.Category, &b.OrderCount, &b.TotalQuantity, &b.Revenue); err != nil {
			return nil, fmt.Errorf("failed to scan bestseller: %w", err)
		}
		bestsellers = append(bestsellers, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}

	return bestsellers, nil
}

func (r *reportRepository) GetCategorySales(ctx context.Context, startDate, endDate time.Time) ([]models.CategorySales, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT c.id,
		       c.name,
		       COALESCE(SUM(oi.quantity) FILTER (WHERE o.id IS NOT NULL), 0) AS total_quantity,
		       COALESCE(SUM(oi.quantity * m.price) FILTER (WHERE o.id IS NOT NULL), 0) AS revenue
		FROM categories c
		LEFT JOIN menu_items m ON m.category_id = c.id
		LEFT JOIN order_items oi ON oi.menu_id = m.id
		LEFT JOIN orders o ON o.id = oi.order_id
			AND o.status = 'COMPLETED'
			AND o.created_at >= $1 AND o.created_at < $2
		GROUP BY c.id, c.name
		ORDER BY revenue DESC`, startDate, endDate)
	if err != nil {
		return nil, fmt.Errorf("failed to get category sales: %w", err)
	}
	defer rows.Close()

	var categories []models.CategorySales
	for rows.Next() {
		var c models.CategorySales
		if err := rows.Scan(&c.CategoryID, &c.Name, &c.TotalQuantity, &c.Revenue); err != nil {
			return nil, fmt.Errorf("failed to scan category sales: %w", err)
		}
		categories = append(categories, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}

	return categories, nil
}
