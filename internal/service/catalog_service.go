package service

import (
	"log"

	"go-commerce-api/internal/apperr"
	"go-commerce-api/internal/model"
	"go-commerce-api/internal/repository"
	"go-commerce-api/internal/ws"
	"go-commerce-api/pkg/validator"

	"github.com/google/uuid"
)

// SaleProductDetails is the slim projection the sale entry form needs.
type SaleProductDetails struct {
	Name  string  `json:"name"`
	Price float64 `json:"price"`
	Stock int     `json:"stock"`
}

type CatalogService interface {
	CreateProduct(req *model.Product) error
	GetAllProducts() ([]model.Product, error)
	GetProduct(id uuid.UUID) (*model.Product, error)
	UpdateProduct(id uuid.UUID, req *model.Product) error
	DeleteProduct(id uuid.UUID) error
	SearchProducts(query, category string) ([]model.Product, error)
	GetAllCategories() ([]string, error)
	ProductDetailsForSale(id uuid.UUID) (*SaleProductDetails, error)
}

type catalogService struct {
	productRepo repository.ProductRepository
	hub         *ws.Hub
}

func NewCatalogService(pRepo repository.ProductRepository, hub *ws.Hub) CatalogService {
	return &catalogService{productRepo: pRepo, hub: hub}
}

// validateProduct runs the struct-tag rules (required name/category,
// non-negative prices and stock) first, then the trim-aware required
// checks the tags cannot express.
func validateProduct(p *model.Product) error {
	if err := validator.FirstError(p); err != nil {
		return err
	}
	if err := validator.Required(p.Name, "product name"); err != nil {
		return err
	}
	return validator.Required(p.Category, "product category")
}

func (s *catalogService) CreateProduct(req *model.Product) error {
	if err := validateProduct(req); err != nil {
		return err
	}

	if err := s.productRepo.Create(req); err != nil {
		return apperr.Classify(err)
	}

	log.Printf("Product '%s' (%s) created", req.Name, req.ID)
	if s.hub != nil {
		s.hub.Publish("product_created", map[string]interface{}{
			"product_id": req.ID,
			"name":       req.Name,
			"stock":      req.QuantityInStock,
		})
	}
	return nil
}

func (s *catalogService) GetAllProducts() ([]model.Product, error) {
	products, err := s.productRepo.FindAll()
	if err != nil {
		return nil, apperr.Classify(err)
	}
	return products, nil
}

func (s *catalogService) GetProduct(id uuid.UUID) (*model.Product, error) {
	if err := validator.Required(id, "product id"); err != nil {
		return nil, err
	}
	product, err := s.productRepo.FindByID(id)
	if err != nil {
		return nil, apperr.Classify(err)
	}
	return product, nil
}

// UpdateProduct changes descriptive fields and prices. Stock is not
// settable here; it only moves via purchases and sales.
func (s *catalogService) UpdateProduct(id uuid.UUID, req *model.Product) error {
	if err := validator.Required(id, "product id"); err != nil {
		return err
	}
	if err := validateProduct(req); err != nil {
		return err
	}

	if err := s.productRepo.Update(id, req); err != nil {
		return apperr.Classify(err)
	}

	log.Printf("Product %s updated", id)
	if s.hub != nil {
		s.hub.Publish("product_updated", map[string]interface{}{
			"product_id": id,
			"name":       req.Name,
		})
	}
	return nil
}

// DeleteProduct fails with ErrReferencedElsewhere while any sale item
// references the product; its purchases cascade away with it.
func (s *catalogService) DeleteProduct(id uuid.UUID) error {
	if err := validator.Required(id, "product id"); err != nil {
		return err
	}

	if err := s.productRepo.Delete(id); err != nil {
		return apperr.Classify(err)
	}

	log.Printf("Product %s deleted", id)
	if s.hub != nil {
		s.hub.Publish("product_deleted", map[string]interface{}{"product_id": id})
	}
	return nil
}

func (s *catalogService) SearchProducts(query, category string) ([]model.Product, error) {
	products, err := s.productRepo.Search(query, category)
	if err != nil {
		return nil, apperr.Classify(err)
	}
	return products, nil
}

func (s *catalogService) GetAllCategories() ([]string, error) {
	categories, err := s.productRepo.Categories()
	if err != nil {
		return nil, apperr.Classify(err)
	}
	return categories, nil
}

func (s *catalogService) ProductDetailsForSale(id uuid.UUID) (*SaleProductDetails, error) {
	product, err := s.GetProduct(id)
	if err != nil {
		return nil, err
	}
	return &SaleProductDetails{
		Name:  product.Name,
		Price: product.SellingPrice,
		Stock: product.QuantityInStock,
	}, nil
}
