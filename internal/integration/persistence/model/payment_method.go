package model

import (
	"time"

	"gorm.io/gorm"

	"github.com/finance-tracker/wallet-api/internal/domain/entity"
)

// PaymentMethodModel represents the payment_methods table in the database.
type PaymentMethodModel struct {
	ID        int64          `gorm:"primaryKey;autoIncrement"`
	Name      string         `gorm:"type:varchar(50);not null;index"`
	Type      string         `gorm:"type:varchar(20);not null"`
	Color     string         `gorm:"type:varchar(7)"`
	CreatedAt time.Time      `gorm:"not null"`
	UpdatedAt time.Time      `gorm:"not null"`
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

// TableName returns the table name for the PaymentMethodModel.
func (PaymentMethodModel) TableName() string {
	return "payment_methods"
}

// ToEntity converts a PaymentMethodModel to a domain PaymentMethod entity.
func (m *PaymentMethodModel) ToEntity() *entity.PaymentMethod {
	var deletedAt *time.Time
	if m.DeletedAt.Valid {
		deletedAt = &m.DeletedAt.Time
	}

	return &entity.PaymentMethod{
		ID:        m.ID,
		Name:      m.Name,
		Type:      entity.PaymentMethodType(m.Type),
		Color:     m.Color,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
		DeletedAt: deletedAt,
	}
}

// PaymentMethodFromEntity creates a PaymentMethodModel from a domain PaymentMethod entity.
func PaymentMethodFromEntity(paymentMethod *entity.PaymentMethod) *PaymentMethodModel {
	var deletedAt gorm.DeletedAt
	if paymentMethod.DeletedAt != nil {
		deletedAt = gorm.DeletedAt{Time: *paymentMethod.DeletedAt, Valid: true}
	}

	return &PaymentMethodModel{
		ID:        paymentMethod.ID,
		Name:      paymentMethod.Name,
		Type:      string(paymentMethod.Type),
		Color:     paymentMethod.Color,
		CreatedAt: paymentMethod.CreatedAt,
		UpdatedAt: paymentMethod.UpdatedAt,
		DeletedAt: deletedAt,
	}
}
