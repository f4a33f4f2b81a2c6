package service

import (
	"context"
	"time"

	"chayen/internal/dal"
	"chayen/internal/models"
)

const defaultBestsellerLimit = 10

type ReportService interface {
	GetSalesReport(ctx context.Context, startDate, endDate time.Time) (models.SalesReport, error)
	GetBestsellers(ctx context.Context, startDate, endDate time.Time, limit int) ([]models.Bestseller, error)
	GetCategorySales(ctx context.Context, startDate, endDate time.Time) ([]models.CategorySales, error)
}

type reportService struct {
	reportRepo dal.ReportRepository
}

func NewReportService(reportRepo dal.ReportRepository) ReportService {
	return &reportService{reportRepo: reportRepo}
}

func (s *reportService) GetSalesReport(ctx context.Context, startDate, endDate time.Time) (models.SalesReport, error) {
	if err := validateRange(startDate, endDate); err != nil {
		return models.SalesReport{}, err
	}
	return s.reportRepo.GetSalesReport(ctx, startDate, endDate)
}

func (s *reportService) GetBestsellers(ctx context.Context, startDate, endDate time.Time, limit int) ([]models.Bestseller, error) {
	if err := validateRange(startDate, endDate); err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = defaultBestsellerLimit
	}
	return s.reportRepo.GetBestsellers(ctx, startDate, endDate, limit)
}

func (s *reportService) GetCategorySales(ctx context.Context, startDate, endDate time.Time) ([]models.CategorySales, error) {
	if err := validateRange(startDate, endDate); err != nil {
		return nil, err
	}
	return s.reportRepo.GetCategorySales(ctx, startDate, endDate)
}

func validateRange(startDate, endDate time.Time) error {
	if startDate.IsZero() || endDate.IsZero() || startDate.After(endDate) {
		return models.ErrInvalidDateRange
	}
	return nil
}
