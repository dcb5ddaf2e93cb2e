package persistence

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/finance-tracker/wallet-api/internal/application/adapter"
	"github.com/finance-tracker/wallet-api/internal/domain/entity"
	domainerror "github.com/finance-tracker/wallet-api/internal/domain/error"
	"github.com/finance-tracker/wallet-api/internal/integration/persistence/model"
)

// installmentRepository implements the adapter.InstallmentRepository interface.
type installmentRepository struct {
	db *gorm.DB
}

// NewInstallmentRepository creates a new installment repository instance.
func NewInstallmentRepository(db *gorm.DB) adapter.InstallmentRepository {
	return &installmentRepository{
		db: db,
	}
}

// CreateWithTransactions stores the purchase and its occurrences in one database transaction.
func (r *installmentRepository) CreateWithTransactions(ctx context.Context, installment *entity.Installment, transactions []*entity.Transaction) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		installmentModel := model.InstallmentFromEntity(installment)
		if err := tx.Create(installmentModel).Error; err != nil {
			return err
		}
		installment.ID = installmentModel.ID

		for _, txn := range transactions {
			installmentID := installmentModel.ID
			txn.InstallmentID = &installmentID
			transactionModel := model.TransactionFromEntity(txn)
			if err := tx.Create(transactionModel).Error; err != nil {
				return err
			}
			txn.ID = transactionModel.ID
			txn.Installment = installment.Ref()
		}
		return nil
	})
}

// FindByID retrieves an installment purchase by its ID.
func (r *installmentRepository) FindByID(ctx context.Context, id int64) (*entity.Installment, error) {
	var installmentModel model.InstallmentModel
	result := r.db.WithContext(ctx).Where("id = ?", id).First(&installmentModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrInstallmentNotFound
		}
		return nil, result.Error
	}
	return installmentModel.ToEntity(), nil
}

// UpdateProgress sets the number of installments reported as paid.
func (r *installmentRepository) UpdateProgress(ctx context.Context, id int64, currentInstallment int) error {
	result := r.db.WithContext(ctx).
		Model(&model.InstallmentModel{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"current_installment": currentInstallment,
			"updated_at":          time.Now().UTC(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerror.ErrInstallmentNotFound
	}
	return nil
}

// IncrementProgress marks one more installment as paid. The increment and the
// completion check happen in one conditional UPDATE, so concurrent payments never
// overwrite each other or run past the installment count.
func (r *installmentRepository) IncrementProgress(ctx context.Context, id int64) (*entity.Installment, error) {
	var updated *entity.Installment
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&model.InstallmentModel{}).
			Where("id = ? AND current_installment < installment_count", id).
			Updates(map[string]interface{}{
				"current_installment": gorm.Expr("current_installment + 1"),
				"updated_at":          time.Now().UTC(),
			})
		if result.Error != nil {
			return result.Error
		}

		var installmentModel model.InstallmentModel
		if err := tx.Where("id = ?", id).First(&installmentModel).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domainerror.ErrInstallmentNotFound
			}
			return err
		}
		if result.RowsAffected == 0 {
			return domainerror.ErrInstallmentAlreadyCompleted
		}

		updated = installmentModel.ToEntity()
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// DeleteWithTransactions soft-deletes the purchase and all of its transactions.
func (r *installmentRepository) DeleteWithTransactions(ctx context.Context, id int64) (int64, error) {
	var deletedCount int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Delete(&model.InstallmentModel{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return domainerror.ErrInstallmentNotFound
		}

		result = tx.Where("installment_id = ?", id).Delete(&model.TransactionModel{})
		if result.Error != nil {
			return result.Error
		}
		deletedCount = result.RowsAffected
		return nil
	})
	if err != nil {
		return 0, err
	}
	return deletedCount, nil
}
