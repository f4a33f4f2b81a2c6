package models

import "time"

// SalesReport - For GET /reports/sales
type SalesReport struct {
	TotalSales  int64        `json:"total_sales"`
	TotalOrders int64        `json:"total_orders"`
	AvgOrder    int64        `json:"average_order_value"`
	StartDate   string       `json:"start_date"`
	EndDate     string       `json:"end_date"`
	Daily       []DailySales `json:"daily"`
}

type DailySales struct {
	Date       time.Time `json:"date"`
	TotalSales int64     `json:"total_sales"`
	OrderCount int64     `json:"order_count"`
}

// Bestseller - For GET /reports/bestsellers
type Bestseller struct {
	MenuID        string `json:"menu_id"`
	Name          string `json:"name"`
	Category      string `json:"category"`
	OrderCount    int64  `json:"order_count"`
	TotalQuantity int64  `json:"total_quantity"`
	Revenue       int64  `json:"revenue"`
}

// CategorySales - For GET /reports/categories
type CategorySales struct {
	CategoryID    string `json:"category_id"`
	Name          string `json:"name"`
	TotalQuantity int64  `json:"total_quantity"`
	Revenue       int64  `json:"revenue"`
}
