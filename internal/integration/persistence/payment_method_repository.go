package persistence

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/finance-tracker/wallet-api/internal/application/adapter"
	"github.com/finance-tracker/wallet-api/internal/domain/entity"
	domainerror "github.com/finance-tracker/wallet-api/internal/domain/error"
	"github.com/finance-tracker/wallet-api/internal/integration/persistence/model"
)

type paymentMethodRepository struct {
	db *gorm.DB
}

// NewPaymentMethodRepository creates a new payment method repository instance.
func NewPaymentMethodRepository(db *gorm.DB) adapter.PaymentMethodRepository {
	return &paymentMethodRepository{
		db: db,
	}
}

func (r *paymentMethodRepository) Create(ctx context.Context, paymentMethod *entity.PaymentMethod) error {
	paymentMethodModel := model.PaymentMethodFromEntity(paymentMethod)
	if err := r.db.WithContext(ctx).Create(paymentMethodModel).Error; err != nil {
		return err
	}
	paymentMethod.ID = paymentMethodModel.ID
	return nil
}

func (r *paymentMethodRepository) FindByID(ctx context.Context, id int64) (*entity.PaymentMethod, error) {
	var paymentMethodModel model.PaymentMethodModel
	result := r.db.WithContext(ctx).Where("id = ?", id).First(&paymentMethodModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrPaymentMethodNotFound
		}
		return nil, result.Error
	}
	return paymentMethodModel.ToEntity(), nil
}

func (r *paymentMethodRepository) FindAll(ctx context.Context) ([]*entity.PaymentMethod, error) {
	var paymentMethodModels []model.PaymentMethodModel
	if err := r.db.WithContext(ctx).Order("name ASC").Find(&paymentMethodModels).Error; err != nil {
		return nil, err
	}

	paymentMethods := make([]*entity.PaymentMethod, len(paymentMethodModels))
	for i := range paymentMethodModels {
		paymentMethods[i] = paymentMethodModels[i].ToEntity()
	}
	return paymentMethods, nil
}

func (r *paymentMethodRepository) ExistsByName(ctx context.Context, name string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.PaymentMethodModel{}).
		Where("name = ?", name).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
