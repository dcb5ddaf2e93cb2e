package transaction

import (
	"context"

	"github.com/finance-tracker/wallet-api/internal/application/adapter"
	"github.com/finance-tracker/wallet-api/internal/domain/entity"
	domainerror "github.com/finance-tracker/wallet-api/internal/domain/error"
)

type fakeTransactionRepo struct {
	transactions []*entity.Transaction
	nextID       int64
	listErr      error
	totalsErr    error
	lastFilter   adapter.TransactionFilter
	lastPage     adapter.TransactionPagination
	deleted      []int64
}

func (f *fakeTransactionRepo) Create(_ context.Context, txn *entity.Transaction) error {
	f.nextID++
	txn.ID = f.nextID
	f.transactions = append(f.transactions, txn)
	return nil
}

func (f *fakeTransactionRepo) FindByID(_ context.Context, id int64) (*entity.Transaction, error) {
	for _, txn := range f.transactions {
		if txn.ID == id {
			return txn, nil
		}
	}
	return nil, domainerror.ErrTransactionNotFound
}

func (f *fakeTransactionRepo) FindByFilter(_ context.Context, filter adapter.TransactionFilter, pagination adapter.TransactionPagination) (*adapter.TransactionListResult, error) {
	f.lastFilter = filter
	f.lastPage = pagination
	if f.listErr != nil {
		return nil, f.listErr
	}
	return &adapter.TransactionListResult{
		Transactions: f.transactions,
		Total:        int64(len(f.transactions)),
		Page:         pagination.Page,
		Limit:        pagination.Limit,
		TotalPages:   1,
	}, nil
}

func (f *fakeTransactionRepo) FindByInstallmentID(_ context.Context, installmentID int64) ([]*entity.Transaction, error) {
	var found []*entity.Transaction
	for _, txn := range f.transactions {
		if txn.InstallmentID != nil && *txn.InstallmentID == installmentID {
			found = append(found, txn)
		}
	}
	return found, nil
}

func (f *fakeTransactionRepo) GetTotals(_ context.Context, _ adapter.TransactionFilter) (*adapter.TransactionTotals, error) {
	if f.totalsErr != nil {
		return nil, f.totalsErr
	}
	totals := &adapter.TransactionTotals{}
	for _, txn := range f.transactions {
		if txn.Type == entity.TransactionTypeIncome {
			totals.IncomeTotal = totals.IncomeTotal.Add(txn.Amount)
		} else {
			totals.ExpenseTotal = totals.ExpenseTotal.Add(txn.Amount)
		}
	}
	totals.NetTotal = totals.IncomeTotal.Sub(totals.ExpenseTotal)
	return totals, nil
}

func (f *fakeTransactionRepo) Delete(_ context.Context, id int64) error {
	f.deleted = append(f.deleted, id)
	return nil
}

type fakeCategoryRepo struct {
	categories map[int64]*entity.Category
	findErr    error
}

func (f *fakeCategoryRepo) Create(context.Context, *entity.Category) error { return nil }

func (f *fakeCategoryRepo) FindByID(_ context.Context, id int64) (*entity.Category, error) {
	if f.findErr != nil {
		return nil, f.findErr
	}
	if c, ok := f.categories[id]; ok {
		return c, nil
	}
	return nil, domainerror.ErrCategoryNotFound
}

func (f *fakeCategoryRepo) FindAll(context.Context, *entity.CategoryType) ([]*entity.Category, error) {
	return nil, nil
}

func (f *fakeCategoryRepo) ExistsByName(context.Context, string) (bool, error) { return false, nil }

type fakePaymentMethodRepo struct {
	paymentMethods map[int64]*entity.PaymentMethod
	findErr        error
}

func (f *fakePaymentMethodRepo) Create(context.Context, *entity.PaymentMethod) error { return nil }

func (f *fakePaymentMethodRepo) FindByID(_ context.Context, id int64) (*entity.PaymentMethod, error) {
	if f.findErr != nil {
		return nil, f.findErr
	}
	if pm, ok := f.paymentMethods[id]; ok {
		return pm, nil
	}
	return nil, domainerror.ErrPaymentMethodNotFound
}

func (f *fakePaymentMethodRepo) FindAll(context.Context) ([]*entity.PaymentMethod, error) {
	return nil, nil
}

func (f *fakePaymentMethodRepo) ExistsByName(context.Context, string) (bool, error) {
	return false, nil
}
