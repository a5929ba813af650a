package model

type Product struct {
	BaseModel
	Name        string  `gorm:"type:varchar(255);uniqueIndex;not null" json:"name" validate:"required"`
	Description *string `gorm:"type:text" json:"description,omitempty"`
	Category    string  `gorm:"type:varchar(100);not null;index" json:"category" validate:"required"`

	PurchasePrice float64 `gorm:"not null;check:purchase_price >= 0" json:"purchase_price" validate:"gte=0"`
	SellingPrice  float64 `gorm:"not null;check:selling_price >= 0" json:"selling_price" validate:"gte=0"`

	// Maintained exclusively by purchase / sale-item inserts after creation.
	// The check constraint is the last line of defense against overselling:
	// a violation aborts the whole enclosing transaction.
	QuantityInStock int `gorm:"not null;default:0;check:quantity_in_stock >= 0" json:"quantity_in_stock" validate:"gte=0"`

	// Purchases die with the product; sale items block its deletion.
	Purchases []Purchase `gorm:"constraint:OnDelete:CASCADE" json:"purchases,omitempty" validate:"-"`
	SaleItems []SaleItem `gorm:"constraint:OnDelete:RESTRICT" json:"sale_items,omitempty" validate:"-"`
}
