package repository

import (
	"time"

	"go-commerce-api/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type SaleRepository interface {
	CreateSale(tx *gorm.DB, sale *model.Sale) error
	CreateItem(tx *gorm.DB, item *model.SaleItem) error
	FindByID(id uuid.UUID) (*model.Sale, error)
	History(limit int) ([]SaleHistoryEntry, error)
	ItemsBySale(saleID uuid.UUID) ([]SaleItemDetail, error)
	FindByCustomer(customerID uuid.UUID) ([]model.Sale, error)
}

// SaleHistoryEntry joins the sale row with the customer name. The name
// is nil for anonymous sales and for sales whose customer was deleted.
type SaleHistoryEntry struct {
	ID           uuid.UUID `json:"id"`
	SaleDate     time.Time `json:"sale_date"`
	CustomerName *string   `json:"customer_name,omitempty"`
	TotalAmount  float64   `json:"total_amount"`
}

// SaleItemDetail is one line of a sale joined with its product name.
type SaleItemDetail struct {
	ID          uuid.UUID `json:"id"`
	ProductID   uuid.UUID `json:"product_id"`
	ProductName string    `json:"product_name"`
	Quantity    int       `json:"quantity"`
	PriceAtSale float64   `json:"price_at_sale"`
}

type saleRepo struct {
	db *gorm.DB
}

func NewSaleRepo(db *gorm.DB) SaleRepository {
	return &saleRepo{db}
}

func (r *saleRepo) CreateSale(tx *gorm.DB, sale *model.Sale) error {
	return tx.Create(sale).Error
}

func (r *saleRepo) CreateItem(tx *gorm.DB, item *model.SaleItem) error {
	return tx.Create(item).Error
}

func (r *saleRepo) FindByID(id uuid.UUID) (*model.Sale, error) {
	var sale model.Sale
	err := r.db.Preload("Items").First(&sale, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &sale, nil
}

func (r *saleRepo) History(limit int) ([]SaleHistoryEntry, error) {
	var entries []SaleHistoryEntry
	// LEFT JOIN keeps anonymous sales in the history.
	err := r.db.Model(&model.Sale{}).
		Select("sales.id, sales.sale_date, customers.name AS customer_name, sales.total_amount").
		Joins("LEFT JOIN customers ON customers.id = sales.customer_id").
		Order("sales.sale_date DESC").
		Limit(limit).
		Scan(&entries).Error
	return entries, err
}

func (r *saleRepo) ItemsBySale(saleID uuid.UUID) ([]SaleItemDetail, error) {
	var items []SaleItemDetail
	err := r.db.Model(&model.SaleItem{}).
		Select("sale_items.id, sale_items.product_id, products.name AS product_name, sale_items.quantity, sale_items.price_at_sale").
		Joins("JOIN products ON products.id = sale_items.product_id").
		Where("sale_items.sale_id = ?", saleID).
		Order("products.name COLLATE NOCASE").
		Scan(&items).Error
	return items, err
}

func (r *saleRepo) FindByCustomer(customerID uuid.UUID) ([]model.Sale, error) {
	var sales []model.Sale
	err := r.db.Where("customer_id = ?", customerID).
		Order("sale_date DESC").
		Find(&sales).Error
	return sales, err
}
