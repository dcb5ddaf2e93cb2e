package installment

import (
	"context"
	"errors"
	"strconv"

	"github.com/finance-tracker/wallet-api/internal/application/adapter"
	"github.com/finance-tracker/wallet-api/internal/domain/entity"
	domainerror "github.com/finance-tracker/wallet-api/internal/domain/error"
)

// fakeStore backs both the transaction and installment repository fakes.
type fakeStore struct {
	installments map[int64]*entity.Installment
	transactions []*entity.Transaction
	nextID       int64
	pageCalls    int
	listErr      error
}

func newFakeStore() *fakeStore {
	return &fakeStore{installments: map[int64]*entity.Installment{}}
}

type fakeTransactionRepo struct{ *fakeStore }

func (f fakeTransactionRepo) Create(_ context.Context, txn *entity.Transaction) error {
	f.nextID++
	txn.ID = f.nextID
	f.transactions = append(f.transactions, txn)
	return nil
}

func (f fakeTransactionRepo) FindByID(_ context.Context, id int64) (*entity.Transaction, error) {
	for _, txn := range f.transactions {
		if txn.ID == id {
			return txn, nil
		}
	}
	return nil, domainerror.ErrTransactionNotFound
}

// FindByFilter honours only InstallmentOnly and pagination.
func (f fakeTransactionRepo) FindByFilter(_ context.Context, filter adapter.TransactionFilter, pagination adapter.TransactionPagination) (*adapter.TransactionListResult, error) {
	f.pageCalls++
	if f.listErr != nil {
		return nil, f.listErr
	}

	var matched []*entity.Transaction
	for _, txn := range f.transactions {
		if filter.InstallmentOnly && txn.InstallmentID == nil {
			continue
		}
		if txn.InstallmentID != nil {
			if purchase, ok := f.installments[*txn.InstallmentID]; ok {
				txn.Installment = purchase.Ref()
			}
		}
		matched = append(matched, txn)
	}

	total := len(matched)
	start := min((pagination.Page-1)*pagination.Limit, total)
	end := min(start+pagination.Limit, total)
	totalPages := (total + pagination.Limit - 1) / pagination.Limit
	if totalPages == 0 {
		totalPages = 1
	}

	return &adapter.TransactionListResult{
		Transactions: matched[start:end],
		Total:        int64(total),
		Page:         pagination.Page,
		Limit:        pagination.Limit,
		TotalPages:   totalPages,
	}, nil
}

func (f fakeTransactionRepo) FindByInstallmentID(_ context.Context, installmentID int64) ([]*entity.Transaction, error) {
	var found []*entity.Transaction
	for _, txn := range f.transactions {
		if txn.InstallmentID != nil && *txn.InstallmentID == installmentID {
			found = append(found, txn)
		}
	}
	return found, nil
}

func (f fakeTransactionRepo) GetTotals(context.Context, adapter.TransactionFilter) (*adapter.TransactionTotals, error) {
	return &adapter.TransactionTotals{}, nil
}

func (f fakeTransactionRepo) Delete(context.Context, int64) error { return nil }

type fakeInstallmentRepo struct{ *fakeStore }

func (f fakeInstallmentRepo) CreateWithTransactions(_ context.Context, installment *entity.Installment, transactions []*entity.Transaction) error {
	f.nextID++
	installment.ID = f.nextID
	f.installments[installment.ID] = installment
	for _, txn := range transactions {
		f.nextID++
		txn.ID = f.nextID
		id := installment.ID
		txn.InstallmentID = &id
		f.transactions = append(f.transactions, txn)
	}
	return nil
}

func (f fakeInstallmentRepo) FindByID(_ context.Context, id int64) (*entity.Installment, error) {
	if purchase, ok := f.installments[id]; ok {
		copied := *purchase
		return &copied, nil
	}
	return nil, domainerror.ErrInstallmentNotFound
}

func (f fakeInstallmentRepo) UpdateProgress(_ context.Context, id int64, current int) error {
	purchase, ok := f.installments[id]
	if !ok {
		return domainerror.ErrInstallmentNotFound
	}
	purchase.CurrentInstallment = current
	return nil
}

func (f fakeInstallmentRepo) IncrementProgress(_ context.Context, id int64) (*entity.Installment, error) {
	purchase, ok := f.installments[id]
	if !ok {
		return nil, domainerror.ErrInstallmentNotFound
	}
	if purchase.IsCompleted() {
		return nil, domainerror.ErrInstallmentAlreadyCompleted
	}
	purchase.CurrentInstallment++
	copied := *purchase
	return &copied, nil
}

func (f fakeInstallmentRepo) DeleteWithTransactions(_ context.Context, id int64) (int64, error) {
	if _, ok := f.installments[id]; !ok {
		return 0, domainerror.ErrInstallmentNotFound
	}
	delete(f.installments, id)

	var kept []*entity.Transaction
	var removed int64
	for _, txn := range f.transactions {
		if txn.InstallmentID != nil && *txn.InstallmentID == id {
			removed++
			continue
		}
		kept = append(kept, txn)
	}
	f.transactions = kept
	return removed, nil
}

type fakeCategoryRepo struct{}

func (fakeCategoryRepo) Create(context.Context, *entity.Category) error { return nil }

func (fakeCategoryRepo) FindByID(_ context.Context, id int64) (*entity.Category, error) {
	if id == 1 {
		return &entity.Category{ID: 1, Name: "Electronics", Type: entity.CategoryTypeExpense}, nil
	}
	return nil, domainerror.ErrCategoryNotFound
}

func (fakeCategoryRepo) FindAll(context.Context, *entity.CategoryType) ([]*entity.Category, error) {
	return nil, nil
}

func (fakeCategoryRepo) ExistsByName(context.Context, string) (bool, error) { return false, nil }

type fakePaymentMethodRepo struct{}

func (fakePaymentMethodRepo) Create(context.Context, *entity.PaymentMethod) error { return nil }

func (fakePaymentMethodRepo) FindByID(_ context.Context, id int64) (*entity.PaymentMethod, error) {
	if id == 1 {
		return &entity.PaymentMethod{ID: 1, Name: "Visa", Type: entity.PaymentMethodTypeCreditCard}, nil
	}
	return nil, domainerror.ErrPaymentMethodNotFound
}

func (fakePaymentMethodRepo) FindAll(context.Context) ([]*entity.PaymentMethod, error) {
	return nil, nil
}

func (fakePaymentMethodRepo) ExistsByName(context.Context, string) (bool, error) { return false, nil }

// fakeStatsCache is an in-memory StatsCache that can be told to fail.
// Entries are keyed by version and key like the Redis implementation.
type fakeStatsCache struct {
	entries       map[string]*entity.InstallmentStatsSummary
	version       int64
	invalidations int
	fail          bool
}

func newFakeStatsCache() *fakeStatsCache {
	return &fakeStatsCache{entries: map[string]*entity.InstallmentStatsSummary{}}
}

var errCacheDown = errors.New("cache down")

func fakeCacheKey(version int64, key string) string {
	return strconv.FormatInt(version, 10) + ":" + key
}

func (c *fakeStatsCache) Get(_ context.Context, key string) (adapter.StatsLookup, error) {
	if c.fail {
		return adapter.StatsLookup{}, errCacheDown
	}
	return adapter.StatsLookup{Stats: c.entries[fakeCacheKey(c.version, key)], Version: c.version}, nil
}

func (c *fakeStatsCache) Set(_ context.Context, key string, version int64, stats *entity.InstallmentStatsSummary) error {
	if c.fail {
		return errCacheDown
	}
	c.entries[fakeCacheKey(version, key)] = stats
	return nil
}

func (c *fakeStatsCache) Invalidate(context.Context) error {
	c.invalidations++
	if c.fail {
		return errCacheDown
	}
	c.version++
	return nil
}

func (c *fakeStatsCache) Ping(context.Context) bool { return !c.fail }
