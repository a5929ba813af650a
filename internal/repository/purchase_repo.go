package repository

import (
	"time"

	"go-commerce-api/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PurchaseRepository interface {
	Create(tx *gorm.DB, purchase *model.Purchase) error
	History(limit int) ([]PurchaseHistoryEntry, error)
}

// PurchaseHistoryEntry joins the purchase row with its product name for
// display.
type PurchaseHistoryEntry struct {
	ID           uuid.UUID `json:"id"`
	PurchaseDate time.Time `json:"purchase_date"`
	ProductName  string    `json:"product_name"`
	Quantity     int       `json:"quantity"`
	CostPerUnit  float64   `json:"cost_per_unit"`
	Supplier     *string   `json:"supplier,omitempty"`
}

type purchaseRepo struct {
	db *gorm.DB
}

func NewPurchaseRepo(db *gorm.DB) PurchaseRepository {
	return &purchaseRepo{db}
}

// Create inserts the purchase using the caller's transaction so the
// stock increment commits or rolls back together with the row.
func (r *purchaseRepo) Create(tx *gorm.DB, purchase *model.Purchase) error {
	return tx.Create(purchase).Error
}

func (r *purchaseRepo) History(limit int) ([]PurchaseHistoryEntry, error) {
	var entries []PurchaseHistoryEntry
	err := r.db.Model(&model.Purchase{}).
		Select("purchases.id, purchases.purchase_date, products.name AS product_name, purchases.quantity, purchases.cost_per_unit, purchases.supplier").
		Joins("JOIN products ON products.id = purchases.product_id").
		Order("purchases.purchase_date DESC").
		Limit(limit).
		Scan(&entries).Error
	return entries, err
}
