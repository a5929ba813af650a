package repository

import (
	"go-commerce-api/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ProductRepository interface {
	Create(product *model.Product) error
	FindAll() ([]model.Product, error)
	FindByID(id uuid.UUID) (*model.Product, error)
	Search(query, category string) ([]model.Product, error)
	Categories() ([]string, error)
	Update(id uuid.UUID, product *model.Product) error
	Delete(id uuid.UUID) error
	AdjustStock(tx *gorm.DB, id uuid.UUID, delta int) error
}

type productRepo struct {
	db *gorm.DB
}

func NewProductRepo(db *gorm.DB) ProductRepository {
	return &productRepo{db}
}

func (r *productRepo) Create(product *model.Product) error {
	return r.db.Create(product).Error
}

func (r *productRepo) FindAll() ([]model.Product, error) {
	var products []model.Product
	err := r.db.Order("name COLLATE NOCASE").Find(&products).Error
	return products, err
}

func (r *productRepo) FindByID(id uuid.UUID) (*model.Product, error) {
	var product model.Product
	err := r.db.First(&product, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *productRepo) Search(query, category string) ([]model.Product, error) {
	tx := r.db.Model(&model.Product{})
	if query != "" {
		like := "%" + query + "%"
		tx = tx.Where("LOWER(name) LIKE LOWER(?) OR LOWER(description) LIKE LOWER(?)", like, like)
	}
	if category != "" {
		tx = tx.Where("category = ?", category)
	}

	var products []model.Product
	err := tx.Order("name COLLATE NOCASE").Find(&products).Error
	return products, err
}

func (r *productRepo) Categories() ([]string, error) {
	var categories []string
	err := r.db.Model(&model.Product{}).
		Distinct("category").
		Where("category IS NOT NULL AND category != ''").
		Order("category COLLATE NOCASE").
		Pluck("category", &categories).Error
	return categories, err
}

// Update changes the descriptive fields only. Stock is never written
// here: it moves exclusively through purchase and sale-item events.
func (r *productRepo) Update(id uuid.UUID, product *model.Product) error {
	res := r.db.Model(&model.Product{}).
		Where("id = ?", id).
		Select("name", "description", "category", "purchase_price", "selling_price").
		Updates(product)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *productRepo) Delete(id uuid.UUID) error {
	res := r.db.Delete(&model.Product{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// AdjustStock applies a relative stock change inside the caller's
// transaction. The quantity_in_stock >= 0 check constraint aborts the
// whole transaction on oversell.
func (r *productRepo) AdjustStock(tx *gorm.DB, id uuid.UUID, delta int) error {
	res := tx.Model(&model.Product{}).
		Where("id = ?", id).
		Update("quantity_in_stock", gorm.Expr("quantity_in_stock + ?", delta))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
