package model

import (
	"time"

	"github.com/google/uuid"
)

// Purchase records goods received from a supplier. Inserting one
// increases the referenced product's stock in the same transaction.
type Purchase struct {
	BaseModel
	ProductID uuid.UUID `gorm:"type:uuid;not null;index" json:"product_id" validate:"uuid_required"`
	Product   Product   `json:"product,omitempty" validate:"-"`

	Quantity     int       `gorm:"not null;check:quantity > 0" json:"quantity" validate:"required,gt=0"`
	CostPerUnit  float64   `gorm:"not null;check:cost_per_unit >= 0" json:"cost_per_unit" validate:"gte=0"`
	Supplier     *string   `gorm:"type:varchar(255)" json:"supplier,omitempty"`
	PurchaseDate time.Time `gorm:"not null;index" json:"purchase_date"`
}
