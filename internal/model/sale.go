package model

import (
	"time"

	"github.com/google/uuid"
)

// Sale is the header row of a multi-line transaction. TotalAmount is
// always derived from the line items, never taken from the caller.
type Sale struct {
	BaseModel
	CustomerID *uuid.UUID `gorm:"type:uuid;index" json:"customer_id,omitempty"`
	Customer   *Customer  `json:"customer,omitempty" validate:"-"`

	SaleDate    time.Time `gorm:"not null;index" json:"sale_date"`
	TotalAmount float64   `gorm:"not null;check:total_amount >= 0" json:"total_amount"`

	// Owned exclusively by the sale: created together, deleted together.
	Items []SaleItem `gorm:"constraint:OnDelete:CASCADE" json:"items,omitempty" validate:"-"`
}

// SaleItem is one product+quantity+price line within a sale. Inserting
// one decreases the referenced product's stock in the same transaction.
// A product referenced by any sale item cannot be deleted.
type SaleItem struct {
	BaseModel
	SaleID    uuid.UUID `gorm:"type:uuid;not null;index" json:"sale_id"`
	ProductID uuid.UUID `gorm:"type:uuid;not null;index" json:"product_id" validate:"uuid_required"`
	Product   Product   `json:"product,omitempty" validate:"-"`

	Quantity    int     `gorm:"not null;check:quantity > 0" json:"quantity" validate:"required,gt=0"`
	PriceAtSale float64 `gorm:"not null;check:price_at_sale >= 0" json:"price_at_sale" validate:"gte=0"`
}
