package model

type Customer struct {
	BaseModel
	Name    string  `gorm:"type:varchar(255);not null" json:"name" validate:"required"`
	Address *string `gorm:"type:varchar(255)" json:"address,omitempty"`
	Phone   *string `gorm:"type:varchar(32);uniqueIndex" json:"phone,omitempty" validate:"omitempty,phone_format"`
	Email   *string `gorm:"type:varchar(255);uniqueIndex" json:"email,omitempty" validate:"omitempty,email_format"`

	// Deleting a customer detaches their sales (customer_id set to NULL)
	// instead of deleting them.
	Sales []Sale `gorm:"constraint:OnDelete:SET NULL" json:"sales,omitempty" validate:"-"`
}
