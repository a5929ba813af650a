package service

import (
	"log"

	"go-commerce-api/internal/apperr"
	"go-commerce-api/internal/model"
	"go-commerce-api/internal/repository"
	"go-commerce-api/pkg/validator"

	"github.com/google/uuid"
)

type CustomerService interface {
	CreateCustomer(req *model.Customer) error
	GetAllCustomers() ([]model.Customer, error)
	GetCustomer(id uuid.UUID) (*model.Customer, error)
	UpdateCustomer(id uuid.UUID, req *model.Customer) error
	DeleteCustomer(id uuid.UUID) error
}

type customerService struct {
	customerRepo repository.CustomerRepository
}

func NewCustomerService(cRepo repository.CustomerRepository) CustomerService {
	return &customerService{customerRepo: cRepo}
}

// validateCustomer: the struct tags require the name and, when present,
// well-formed phone and email; the trim-aware check catches
// whitespace-only names the tags let through.
func validateCustomer(c *model.Customer) error {
	if err := validator.FirstError(c); err != nil {
		return err
	}
	return validator.Required(c.Name, "customer name")
}

func (s *customerService) CreateCustomer(req *model.Customer) error {
	if err := validateCustomer(req); err != nil {
		return err
	}

	// Duplicate phone/email surface as ErrDuplicateEntry via the unique
	// indexes.
	if err := s.customerRepo.Create(req); err != nil {
		return apperr.Classify(err)
	}

	log.Printf("Customer '%s' (%s) created", req.Name, req.ID)
	return nil
}

func (s *customerService) GetAllCustomers() ([]model.Customer, error) {
	customers, err := s.customerRepo.FindAll()
	if err != nil {
		return nil, apperr.Classify(err)
	}
	return customers, nil
}

func (s *customerService) GetCustomer(id uuid.UUID) (*model.Customer, error) {
	if err := validator.Required(id, "customer id"); err != nil {
		return nil, err
	}
	customer, err := s.customerRepo.FindByID(id)
	if err != nil {
		return nil, apperr.Classify(err)
	}
	return customer, nil
}

func (s *customerService) UpdateCustomer(id uuid.UUID, req *model.Customer) error {
	if err := validator.Required(id, "customer id"); err != nil {
		return err
	}
	if err := validateCustomer(req); err != nil {
		return err
	}

	if err := s.customerRepo.Update(id, req); err != nil {
		return apperr.Classify(err)
	}

	log.Printf("Customer %s updated", id)
	return nil
}

// DeleteCustomer succeeds even when sales reference the customer: their
// customer_id is set to NULL by the schema, the sales themselves stay.
func (s *customerService) DeleteCustomer(id uuid.UUID) error {
	if err := validator.Required(id, "customer id"); err != nil {
		return err
	}

	if err := s.customerRepo.Delete(id); err != nil {
		return apperr.Classify(err)
	}

	log.Printf("Customer %s deleted", id)
	return nil
}
