// Package model defines database models for persistence layer.
package model

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/finance-tracker/wallet-api/internal/domain/entity"
)

// TransactionModel represents the transactions table in the database.
type TransactionModel struct {
	ID              int64           `gorm:"primaryKey;autoIncrement"`
	Date            time.Time       `gorm:"type:date;not null;index"`
	Description     string          `gorm:"type:varchar(255);not null"`
	Amount          decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	Type            string          `gorm:"type:varchar(10);not null;index"`
	CategoryID      *int64          `gorm:"index"`
	PaymentMethodID *int64          `gorm:"index"`
	Notes           string          `gorm:"type:text"`
	CreatedAt       time.Time       `gorm:"not null"`
	UpdatedAt       time.Time       `gorm:"not null"`
	DeletedAt       gorm.DeletedAt  `gorm:"index"` // Soft-delete support

	// Installment purchase fields
	InstallmentID     *int64 `gorm:"index"`
	InstallmentNumber *int   `gorm:"type:integer"`

	// Relationships (not loaded by default, use Preload)
	Category      *CategoryModel      `gorm:"foreignKey:CategoryID;references:ID"`
	PaymentMethod *PaymentMethodModel `gorm:"foreignKey:PaymentMethodID;references:ID"`
	Installment   *InstallmentModel   `gorm:"foreignKey:InstallmentID;references:ID"`
}

// TableName returns the table name for the TransactionModel.
func (TransactionModel) TableName() string {
	return "transactions"
}

// ToEntity converts a TransactionModel to a domain Transaction entity.
// Loaded relationships are converted as well.
func (m *TransactionModel) ToEntity() *entity.Transaction {
	var deletedAt *time.Time
	if m.DeletedAt.Valid {
		deletedAt = &m.DeletedAt.Time
	}

	txn := &entity.Transaction{
		ID:                m.ID,
		Date:              m.Date,
		Description:       m.Description,
		Amount:            m.Amount,
		Type:              entity.TransactionType(m.Type),
		CategoryID:        m.CategoryID,
		PaymentMethodID:   m.PaymentMethodID,
		Notes:             m.Notes,
		InstallmentID:     m.InstallmentID,
		InstallmentNumber: m.InstallmentNumber,
		CreatedAt:         m.CreatedAt,
		UpdatedAt:         m.UpdatedAt,
		DeletedAt:         deletedAt,
	}

	if m.Category != nil {
		txn.Category = m.Category.ToEntity()
	}
	if m.PaymentMethod != nil {
		txn.PaymentMethod = m.PaymentMethod.ToEntity()
	}
	if m.Installment != nil {
		txn.Installment = m.Installment.ToEntity().Ref()
	}

	return txn
}

// TransactionFromEntity creates a TransactionModel from a domain Transaction entity.
func TransactionFromEntity(transaction *entity.Transaction) *TransactionModel {
	var deletedAt gorm.DeletedAt
	if transaction.DeletedAt != nil {
		deletedAt = gorm.DeletedAt{Time: *transaction.DeletedAt, Valid: true}
	}

	return &TransactionModel{
		ID:                transaction.ID,
		Date:              transaction.Date,
		Description:       transaction.Description,
		Amount:            transaction.Amount,
		Type:              string(transaction.Type),
		CategoryID:        transaction.CategoryID,
		PaymentMethodID:   transaction.PaymentMethodID,
		Notes:             transaction.Notes,
		InstallmentID:     transaction.InstallmentID,
		InstallmentNumber: transaction.InstallmentNumber,
		CreatedAt:         transaction.CreatedAt,
		UpdatedAt:         transaction.UpdatedAt,
		DeletedAt:         deletedAt,
	}
}
