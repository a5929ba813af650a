package service

import (
	"log"
	"time"

	"go-commerce-api/internal/apperr"
	"go-commerce-api/internal/model"
	"go-commerce-api/internal/repository"
	"go-commerce-api/internal/ws"
	"go-commerce-api/pkg/validator"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SaleItemInput is one line of a sale as supplied by the caller. The
// sale total is always recomputed from these lines, never trusted from
// the request.
type SaleItemInput struct {
	ProductID   uuid.UUID `json:"product_id" validate:"uuid_required"`
	Quantity    int       `json:"quantity" validate:"required,gt=0"`
	PriceAtSale float64   `json:"price_at_sale" validate:"gte=0"`
}

type SalesService interface {
	AddSale(items []SaleItemInput, customerID *uuid.UUID, saleDate *time.Time) (uuid.UUID, error)
	AddPurchase(productID uuid.UUID, quantity int, costPerUnit float64, supplier *string, date *time.Time) (uuid.UUID, error)
	GetSale(id uuid.UUID) (*model.Sale, error)
	SalesHistory(limit int) ([]repository.SaleHistoryEntry, error)
	SaleItems(saleID uuid.UUID) ([]repository.SaleItemDetail, error)
	SalesByCustomer(customerID uuid.UUID) ([]model.Sale, error)
	PurchaseHistory(limit int) ([]repository.PurchaseHistoryEntry, error)
}

type salesService struct {
	productRepo  repository.ProductRepository
	saleRepo     repository.SaleRepository
	purchaseRepo repository.PurchaseRepository
	db           *gorm.DB
	hub          *ws.Hub
}

func NewSalesService(pRepo repository.ProductRepository, sRepo repository.SaleRepository, puRepo repository.PurchaseRepository, db *gorm.DB, hub *ws.Hub) SalesService {
	return &salesService{
		productRepo:  pRepo,
		saleRepo:     sRepo,
		purchaseRepo: puRepo,
		db:           db,
		hub:          hub,
	}
}

// AddSale records a sale and its line items atomically. Each item insert
// is paired with the matching stock decrement inside the same
// transaction; an oversell trips the quantity_in_stock >= 0 check
// constraint and rolls the whole sale back, leaving stock untouched.
//
// Stock sufficiency is deliberately not pre-checked: the constraint is
// the arbiter, so failure is detected late but atomically.
func (s *salesService) AddSale(items []SaleItemInput, customerID *uuid.UUID, saleDate *time.Time) (uuid.UUID, error) {
	if len(items) == 0 {
		return uuid.Nil, apperr.NewValidation("items", apperr.RuleRequired, "cannot record a sale with no items")
	}

	// 1. Validate every line and derive the total before any write.
	var total float64
	for _, item := range items {
		if err := validator.FirstError(&item); err != nil {
			return uuid.Nil, err
		}
		total += float64(item.Quantity) * item.PriceAtSale
	}

	when := time.Now()
	if saleDate != nil {
		when = *saleDate
	}

	// 2. One transaction boundary, explicit writes: sale row, then per
	// item the sale_items row plus its stock decrement.
	sale := &model.Sale{
		CustomerID:  customerID,
		SaleDate:    when,
		TotalAmount: total,
	}
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := s.saleRepo.CreateSale(tx, sale); err != nil {
			return apperr.ClassifyCreate(err)
		}
		for _, item := range items {
			line := &model.SaleItem{
				SaleID:      sale.ID,
				ProductID:   item.ProductID,
				Quantity:    item.Quantity,
				PriceAtSale: item.PriceAtSale,
			}
			if err := s.saleRepo.CreateItem(tx, line); err != nil {
				return apperr.ClassifyCreate(err)
			}
			if err := s.productRepo.AdjustStock(tx, item.ProductID, -item.Quantity); err != nil {
				return apperr.Classify(err)
			}
		}
		return nil
	})
	if err != nil {
		log.Printf("sale transaction rolled back: %v", err)
		return uuid.Nil, err
	}

	log.Printf("Sale %s recorded with %d item(s), total %.2f", sale.ID, len(items), total)
	if s.hub != nil {
		s.hub.Publish("sale_recorded", map[string]interface{}{
			"sale_id":      sale.ID,
			"total_amount": total,
			"items":        len(items),
		})
	}
	return sale.ID, nil
}

// AddPurchase records goods received and increments the product's stock
// in the same transaction.
func (s *salesService) AddPurchase(productID uuid.UUID, quantity int, costPerUnit float64, supplier *string, date *time.Time) (uuid.UUID, error) {
	if err := validator.Required(productID, "product id"); err != nil {
		return uuid.Nil, err
	}
	qty, err := validator.Integer(quantity, "purchase quantity", validator.Int(1), nil)
	if err != nil {
		return uuid.Nil, err
	}
	cost, err := validator.Numeric(costPerUnit, "cost per unit", validator.Float(0), nil)
	if err != nil {
		return uuid.Nil, err
	}

	when := time.Now()
	if date != nil {
		when = *date
	}

	purchase := &model.Purchase{
		ProductID:    productID,
		Quantity:     qty,
		CostPerUnit:  cost,
		Supplier:     supplier,
		PurchaseDate: when,
	}
	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := s.purchaseRepo.Create(tx, purchase); err != nil {
			return apperr.ClassifyCreate(err)
		}
		return apperr.Classify(s.productRepo.AdjustStock(tx, productID, qty))
	})
	if err != nil {
		log.Printf("purchase transaction rolled back: %v", err)
		return uuid.Nil, err
	}

	log.Printf("Purchase %s recorded: product %s, quantity %d", purchase.ID, productID, qty)
	if s.hub != nil {
		s.hub.Publish("purchase_recorded", map[string]interface{}{
			"purchase_id": purchase.ID,
			"product_id":  productID,
			"quantity":    qty,
		})
	}
	return purchase.ID, nil
}

func (s *salesService) GetSale(id uuid.UUID) (*model.Sale, error) {
	if err := validator.Required(id, "sale id"); err != nil {
		return nil, err
	}
	sale, err := s.saleRepo.FindByID(id)
	if err != nil {
		return nil, apperr.Classify(err)
	}
	return sale, nil
}

func (s *salesService) SalesHistory(limit int) ([]repository.SaleHistoryEntry, error) {
	if limit <= 0 {
		limit = 100
	}
	entries, err := s.saleRepo.History(limit)
	if err != nil {
		return nil, apperr.Classify(err)
	}
	return entries, nil
}

func (s *salesService) SaleItems(saleID uuid.UUID) ([]repository.SaleItemDetail, error) {
	if err := validator.Required(saleID, "sale id"); err != nil {
		return nil, err
	}
	items, err := s.saleRepo.ItemsBySale(saleID)
	if err != nil {
		return nil, apperr.Classify(err)
	}
	return items, nil
}

func (s *salesService) SalesByCustomer(customerID uuid.UUID) ([]model.Sale, error) {
	if err := validator.Required(customerID, "customer id"); err != nil {
		return nil, err
	}
	sales, err := s.saleRepo.FindByCustomer(customerID)
	if err != nil {
		return nil, apperr.Classify(err)
	}
	return sales, nil
}

func (s *salesService) PurchaseHistory(limit int) ([]repository.PurchaseHistoryEntry, error) {
	if limit <= 0 {
		limit = 100
	}
	entries, err := s.purchaseRepo.History(limit)
	if err != nil {
		return nil, apperr.Classify(err)
	}
	return entries, nil
}
