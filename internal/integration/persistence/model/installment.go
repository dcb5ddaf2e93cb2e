package model

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/finance-tracker/wallet-api/internal/domain/entity"
)

// InstallmentModel represents the installments table in the database.
type InstallmentModel struct {
	ID                 int64           `gorm:"primaryKey;autoIncrement"`
	Description        string          `gorm:"type:varchar(255);not null"`
	TotalAmount        decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	InstallmentCount   int             `gorm:"type:integer;not null"`
	CurrentInstallment int             `gorm:"type:integer;not null;default:0"`
	Type               string          `gorm:"type:varchar(10);not null"`
	CategoryID         *int64          `gorm:"index"`
	PaymentMethodID    *int64          `gorm:"index"`
	FirstDueDate       time.Time       `gorm:"type:date;not null"`
	CreatedAt          time.Time       `gorm:"not null"`
	UpdatedAt          time.Time       `gorm:"not null"`
	DeletedAt          gorm.DeletedAt  `gorm:"index"`
}

// TableName returns the table name for the InstallmentModel.
func (InstallmentModel) TableName() string {
	return "installments"
}

// ToEntity converts an InstallmentModel to a domain Installment entity.
func (m *InstallmentModel) ToEntity() *entity.Installment {
	var deletedAt *time.Time
	if m.DeletedAt.Valid {
		deletedAt = &m.DeletedAt.Time
	}

	return &entity.Installment{
		ID:                 m.ID,
		Description:        m.Description,
		TotalAmount:        m.TotalAmount,
		InstallmentCount:   m.InstallmentCount,
		CurrentInstallment: m.CurrentInstallment,
		Type:               entity.TransactionType(m.Type),
		CategoryID:         m.CategoryID,
		PaymentMethodID:    m.PaymentMethodID,
		FirstDueDate:       m.FirstDueDate,
		CreatedAt:          m.CreatedAt,
		UpdatedAt:          m.UpdatedAt,
		DeletedAt:          deletedAt,
	}
}

// InstallmentFromEntity creates an InstallmentModel from a domain Installment entity.
func InstallmentFromEntity(installment *entity.Installment) *InstallmentModel {
	var deletedAt gorm.DeletedAt
	if installment.DeletedAt != nil {
		deletedAt = gorm.DeletedAt{Time: *installment.DeletedAt, Valid: true}
	}

	return &InstallmentModel{
		ID:                 installment.ID,
		Description:        installment.Description,
		TotalAmount:        installment.TotalAmount,
		InstallmentCount:   installment.InstallmentCount,
		CurrentInstallment: installment.CurrentInstallment,
		Type:               string(installment.Type),
		CategoryID:         installment.CategoryID,
		PaymentMethodID:    installment.PaymentMethodID,
		FirstDueDate:       installment.FirstDueDate,
		CreatedAt:          installment.CreatedAt,
		UpdatedAt:          installment.UpdatedAt,
		DeletedAt:          deletedAt,
	}
}

// AllModels returns every model managed by auto-migration.
func AllModels() []any {
	return []any{
		&CategoryModel{},
		&PaymentMethodModel{},
		&InstallmentModel{},
		&TransactionModel{},
	}
}
