package service

import (
	"go-commerce-api/internal/apperr"
	"go-commerce-api/internal/repository"
)

type DashboardService interface {
	GetMonthlySalesTrend(months int) ([]repository.MonthlySales, error)
	GetTopSellingProducts(limit int) ([]repository.ProductSalesCount, error)
	GetDashboardStats() (*repository.DashboardStats, error)
}

type dashboardService struct {
	reportRepo repository.ReportRepository
}

func NewDashboardService(reportRepo repository.ReportRepository) DashboardService {
	return &dashboardService{reportRepo: reportRepo}
}

func (s *dashboardService) GetMonthlySalesTrend(months int) ([]repository.MonthlySales, error) {
	if months <= 0 {
		months = 12
	}
	trend, err := s.reportRepo.MonthlySalesTrend(months)
	if err != nil {
		return nil, apperr.Classify(err)
	}
	return trend, nil
}

func (s *dashboardService) GetTopSellingProducts(limit int) ([]repository.ProductSalesCount, error) {
	if limit <= 0 {
		limit = 5
	}
	top, err := s.reportRepo.TopSellingProducts(limit)
	if err != nil {
		return nil, apperr.Classify(err)
	}
	return top, nil
}

func (s *dashboardService) GetDashboardStats() (*repository.DashboardStats, error) {
	stats, err := s.reportRepo.GetDashboardStats()
	if err != nil {
		return nil, apperr.Classify(err)
	}
	return stats, nil
}
