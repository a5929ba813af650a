package repository

import (
	"fmt"

	"go-commerce-api/internal/model"

	"gorm.io/gorm"
)

type ReportRepository interface {
	MonthlySalesTrend(months int) ([]MonthlySales, error)
	TopSellingProducts(limit int) ([]ProductSalesCount, error)
	GetDashboardStats() (*DashboardStats, error)
}

// MonthlySales is one point of the sales trend chart data.
type MonthlySales struct {
	Month string  `json:"month"` // "YYYY-MM"
	Total float64 `json:"total"`
}

// ProductSalesCount ranks a product by total quantity sold.
type ProductSalesCount struct {
	ProductName       string `json:"product_name"`
	TotalQuantitySold int    `json:"total_quantity_sold"`
}

// DashboardStats for the overview cards.
type DashboardStats struct {
	TotalProducts  int64   `json:"total_products"`
	TotalCustomers int64   `json:"total_customers"`
	LowStockCount  int64   `json:"low_stock_count"`
	StockValuation float64 `json:"stock_valuation"`
}

type reportRepo struct {
	db *gorm.DB
}

func NewReportRepo(db *gorm.DB) ReportRepository {
	return &reportRepo{db}
}

// MonthlySalesTrend aggregates committed sales per calendar month over a
// trailing window.
func (r *reportRepo) MonthlySalesTrend(months int) ([]MonthlySales, error) {
	var results []MonthlySales

	rows, err := r.db.Model(&model.Sale{}).
		Select("strftime('%Y-%m', sale_date) AS month, SUM(total_amount) AS total").
		Where("date(sale_date) >= date('now', ?)", fmt.Sprintf("-%d months", months)).
		Group("month").
		Order("month ASC").
		Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var data MonthlySales
		if err := rows.Scan(&data.Month, &data.Total); err != nil {
			return nil, err
		}
		results = append(results, data)
	}

	return results, rows.Err()
}

// TopSellingProducts ranks products by total quantity across all sale
// items.
func (r *reportRepo) TopSellingProducts(limit int) ([]ProductSalesCount, error) {
	var results []ProductSalesCount
	err := r.db.Model(&model.SaleItem{}).
		Select("products.name AS product_name, SUM(sale_items.quantity) AS total_quantity_sold").
		Joins("JOIN products ON products.id = sale_items.product_id").
		Group("sale_items.product_id, products.name").
		Order("total_quantity_sold DESC").
		Limit(limit).
		Scan(&results).Error
	return results, err
}

func (r *reportRepo) GetDashboardStats() (*DashboardStats, error) {
	var stats DashboardStats

	if err := r.db.Model(&model.Product{}).Count(&stats.TotalProducts).Error; err != nil {
		return nil, err
	}
	if err := r.db.Model(&model.Customer{}).Count(&stats.TotalCustomers).Error; err != nil {
		return nil, err
	}
	// Low stock threshold mirrors the dashboard card (stock < 10).
	if err := r.db.Model(&model.Product{}).Where("quantity_in_stock < ?", 10).Count(&stats.LowStockCount).Error; err != nil {
		return nil, err
	}
	if err := r.db.Model(&model.Product{}).
		Select("COALESCE(SUM(quantity_in_stock * purchase_price), 0)").
		Scan(&stats.StockValuation).Error; err != nil {
		return nil, err
	}

	return &stats, nil
}
