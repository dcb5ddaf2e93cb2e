package installment

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/finance-tracker/wallet-api/internal/application/adapter"
	"github.com/finance-tracker/wallet-api/internal/domain/entity"
	domainerror "github.com/finance-tracker/wallet-api/internal/domain/error"
)

type fixture struct {
	store *fakeStore
	cache *fakeStatsCache
}

func newFixture() *fixture {
	return &fixture{store: newFakeStore(), cache: newFakeStatsCache()}
}

func (f *fixture) create() *CreateInstallmentPurchaseUseCase {
	return NewCreateInstallmentPurchaseUseCase(fakeInstallmentRepo{f.store}, fakeCategoryRepo{}, fakePaymentMethodRepo{}, f.cache)
}

func (f *fixture) list() *ListInstallmentGroupsUseCase {
	return NewListInstallmentGroupsUseCase(fakeTransactionRepo{f.store})
}

func (f *fixture) stats() *GetInstallmentStatsUseCase {
	return NewGetInstallmentStatsUseCase(fakeTransactionRepo{f.store}, f.cache)
}

func (f *fixture) pay() *PayInstallmentUseCase {
	return NewPayInstallmentUseCase(fakeInstallmentRepo{f.store}, f.cache)
}

func (f *fixture) remove() *DeleteInstallmentPurchaseUseCase {
	return NewDeleteInstallmentPurchaseUseCase(fakeInstallmentRepo{f.store}, f.cache)
}

func purchaseInput(total string, count, paid int) CreateInstallmentPurchaseInput {
	categoryID := int64(1)
	return CreateInstallmentPurchaseInput{
		Description:      "Phone",
		TotalAmount:      decimal.RequireFromString(total),
		InstallmentCount: count,
		PaidInstallments: paid,
		CategoryID:       &categoryID,
		FirstDueDate:     time.Date(2024, time.January, 31, 0, 0, 0, 0, time.UTC),
	}
}

func TestSplitAmount(t *testing.T) {
	tests := []struct {
		name     string
		total    string
		count    int
		expected []string
	}{
		{name: "even", total: "300", count: 3, expected: []string{"100", "100", "100"}},
		{name: "remainder goes to first", total: "100", count: 3, expected: []string{"33.34", "33.33", "33.33"}},
		{name: "cents", total: "10.01", count: 2, expected: []string{"5.01", "5"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			parts := SplitAmount(decimal.RequireFromString(tt.total), tt.count)
			if len(parts) != len(tt.expected) {
				t.Fatalf("expected %d parts, got %d", len(tt.expected), len(parts))
			}
			sum := decimal.Zero
			for i, part := range parts {
				if !part.Equal(decimal.RequireFromString(tt.expected[i])) {
					t.Errorf("part %d: expected %s, got %s", i, tt.expected[i], part)
				}
				sum = sum.Add(part)
			}
			if !sum.Equal(decimal.RequireFromString(tt.total)) {
				t.Errorf("expected parts to sum to %s, got %s", tt.total, sum)
			}
		})
	}
}

func TestDueDate(t *testing.T) {
	first := time.Date(2024, time.January, 31, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		index    int
		expected time.Time
	}{
		{index: 0, expected: first},
		{index: 1, expected: time.Date(2024, time.February, 29, 0, 0, 0, 0, time.UTC)},
		{index: 2, expected: time.Date(2024, time.March, 31, 0, 0, 0, 0, time.UTC)},
		{index: 13, expected: time.Date(2025, time.February, 28, 0, 0, 0, 0, time.UTC)},
	}

	for _, tt := range tests {
		if got := DueDate(first, tt.index); !got.Equal(tt.expected) {
			t.Errorf("index %d: expected %s, got %s", tt.index, tt.expected.Format(time.DateOnly), got.Format(time.DateOnly))
		}
	}
}

func TestCreateInstallmentPurchase(t *testing.T) {
	f := newFixture()

	output, err := f.create().Execute(context.Background(), purchaseInput("100", 3, 1))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	group := output.Group
	if group.InstallmentCount != 3 || group.PaidInstallments != 1 || group.RemainingInstallments != 2 {
		t.Errorf("unexpected progress: %d paid of %d, %d remaining", group.PaidInstallments, group.InstallmentCount, group.RemainingInstallments)
	}
	if !group.TotalAmount.Equal(decimal.NewFromInt(100)) {
		t.Errorf("expected group total 100, got %s", group.TotalAmount)
	}
	if group.Type != entity.TransactionTypeExpense {
		t.Errorf("expected default type expense, got %s", group.Type)
	}
	if group.Category == nil || group.Category.Name != "Electronics" {
		t.Errorf("expected category on the group")
	}
	if len(group.Transactions) != 3 {
		t.Fatalf("expected 3 transactions, got %d", len(group.Transactions))
	}
	for i, label := range []string{"1/3", "2/3", "3/3"} {
		if group.Transactions[i].PositionLabel != label {
			t.Errorf("expected label %s, got %s", label, group.Transactions[i].PositionLabel)
		}
	}
	if f.cache.invalidations != 1 {
		t.Errorf("expected cache to be invalidated once, got %d", f.cache.invalidations)
	}
}

func TestCreateInstallmentPurchase_Validation(t *testing.T) {
	missing := int64(9)

	tests := []struct {
		name         string
		input        CreateInstallmentPurchaseInput
		expectedCode domainerror.InstallmentErrorCode
	}{
		{name: "single installment", input: purchaseInput("100", 1, 0), expectedCode: domainerror.ErrCodeInvalidInstallmentCount},
		{name: "too many installments", input: purchaseInput("100", MaxInstallments+1, 0), expectedCode: domainerror.ErrCodeInvalidInstallmentCount},
		{name: "zero total", input: purchaseInput("0", 3, 0), expectedCode: domainerror.ErrCodeInvalidInstallmentAmount},
		{name: "paid above count", input: purchaseInput("100", 3, 4), expectedCode: domainerror.ErrCodeInvalidPaidInstallments},
		{name: "missing description", input: func() CreateInstallmentPurchaseInput {
			in := purchaseInput("100", 3, 0)
			in.Description = ""
			return in
		}(), expectedCode: domainerror.ErrCodeMissingInstallmentFields},
		{name: "invalid type", input: func() CreateInstallmentPurchaseInput {
			in := purchaseInput("100", 3, 0)
			in.Type = "transfer"
			return in
		}(), expectedCode: domainerror.ErrCodeInvalidInstallmentType},
		{name: "unknown payment method", input: func() CreateInstallmentPurchaseInput {
			in := purchaseInput("100", 3, 0)
			in.PaymentMethodID = &missing
			return in
		}(), expectedCode: domainerror.ErrCodeInstallmentPaymentMethod},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()
			_, err := f.create().Execute(context.Background(), tt.input)

			var insErr *domainerror.InstallmentError
			if !errors.As(err, &insErr) {
				t.Fatalf("expected InstallmentError, got %v", err)
			}
			if insErr.Code != tt.expectedCode {
				t.Errorf("expected code %s, got %s", tt.expectedCode, insErr.Code)
			}
			if len(f.store.transactions) != 0 {
				t.Errorf("expected nothing to be stored")
			}
		})
	}
}

type unreachableCategoryRepo struct{ fakeCategoryRepo }

var errDBDown = errors.New("connection refused")

func (unreachableCategoryRepo) FindByID(context.Context, int64) (*entity.Category, error) {
	return nil, errDBDown
}

type unreachablePaymentMethodRepo struct{ fakePaymentMethodRepo }

func (unreachablePaymentMethodRepo) FindByID(context.Context, int64) (*entity.PaymentMethod, error) {
	return nil, errDBDown
}

func TestCreateInstallmentPurchase_LookupFailureIsNotNotFound(t *testing.T) {
	paymentMethodID := int64(1)
	input := purchaseInput("100", 3, 0)
	input.PaymentMethodID = &paymentMethodID

	tests := []struct {
		name           string
		categories     adapter.CategoryRepository
		paymentMethods adapter.PaymentMethodRepository
	}{
		{name: "category lookup fails", categories: unreachableCategoryRepo{}, paymentMethods: fakePaymentMethodRepo{}},
		{name: "payment method lookup fails", categories: fakeCategoryRepo{}, paymentMethods: unreachablePaymentMethodRepo{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()
			uc := NewCreateInstallmentPurchaseUseCase(fakeInstallmentRepo{f.store}, tt.categories, tt.paymentMethods, f.cache)

			_, err := uc.Execute(context.Background(), input)
			if !errors.Is(err, errDBDown) {
				t.Fatalf("expected the repository error to be wrapped, got %v", err)
			}
			var insErr *domainerror.InstallmentError
			if errors.As(err, &insErr) {
				t.Errorf("expected an internal error, got coded error %s", insErr.Code)
			}
			if len(f.store.transactions) != 0 {
				t.Errorf("expected nothing to be stored")
			}
		})
	}
}

func TestListInstallmentGroups(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	if _, err := f.create().Execute(ctx, purchaseInput("300", 3, 1)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	coffee := entity.NewTransaction(time.Date(2024, time.February, 1, 0, 0, 0, 0, time.UTC), "Coffee", decimal.NewFromInt(5), entity.TransactionTypeExpense, nil, nil, "")
	if err := (fakeTransactionRepo{f.store}).Create(ctx, coffee); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	output, err := f.list().Execute(ctx, ListInstallmentGroupsInput{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(output.InstallmentGroups) != 1 {
		t.Fatalf("expected 1 group, got %d", len(output.InstallmentGroups))
	}
	if len(output.RegularTransactions) != 1 || output.RegularTransactions[0].Description != "Coffee" {
		t.Errorf("expected the coffee to stay a regular transaction")
	}
	if output.Pagination.Limit != 20 {
		t.Errorf("expected default limit 20, got %d", output.Pagination.Limit)
	}

	group := output.InstallmentGroups[0]
	if !group.TotalAmount.Equal(decimal.NewFromInt(300)) || group.RemainingInstallments != 2 || group.IsCompleted {
		t.Errorf("unexpected group: total %s, remaining %d, completed %v", group.TotalAmount, group.RemainingInstallments, group.IsCompleted)
	}
}

func TestListInstallmentGroups_TruncatedPage(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	if _, err := f.create().Execute(ctx, purchaseInput("300", 3, 0)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	output, err := f.list().Execute(ctx, ListInstallmentGroupsInput{Page: 1, Limit: 2})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	group := output.InstallmentGroups[0]
	if len(group.Transactions) != 2 {
		t.Errorf("expected 2 occurrences on the page, got %d", len(group.Transactions))
	}
	if group.InstallmentCount != 3 {
		t.Errorf("expected installment count from the purchase, got %d", group.InstallmentCount)
	}
	if !group.TotalAmount.Equal(decimal.NewFromInt(200)) {
		t.Errorf("expected total of the visible occurrences, got %s", group.TotalAmount)
	}
}

func TestGetInstallmentStats(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	if _, err := f.create().Execute(ctx, purchaseInput("100", 4, 3)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := f.create().Execute(ctx, purchaseInput("25", 2, 2)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	output, err := f.stats().Execute(ctx, GetInstallmentStatsInput{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if output.Cached {
		t.Error("expected a computed result on first call")
	}

	stats := output.Stats
	if stats.TotalGroups != 2 || stats.CompletedGroups != 1 || stats.ActiveGroups != 1 {
		t.Errorf("unexpected group counts: %+v", stats)
	}
	if !stats.PaidAmount.Equal(decimal.RequireFromString("100")) {
		t.Errorf("expected paid 100, got %s", stats.PaidAmount)
	}
	if !stats.CompletionPercentage.Equal(decimal.NewFromInt(80)) {
		t.Errorf("expected 80%%, got %s", stats.CompletionPercentage)
	}

	again, err := f.stats().Execute(ctx, GetInstallmentStatsInput{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !again.Cached {
		t.Error("expected the second call to be served from cache")
	}
}

// payingTransactionRepo records a payment right after the listing is read, so the
// stats computed from that listing are already stale.
type payingTransactionRepo struct {
	fakeTransactionRepo
	pay func()
}

func (r payingTransactionRepo) FindByFilter(ctx context.Context, filter adapter.TransactionFilter, pagination adapter.TransactionPagination) (*adapter.TransactionListResult, error) {
	result, err := r.fakeTransactionRepo.FindByFilter(ctx, filter, pagination)
	if r.pay != nil {
		r.pay()
	}
	return result, err
}

func TestGetInstallmentStats_WriteDuringComputationIsNotCached(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	created, err := f.create().Execute(ctx, purchaseInput("100", 2, 0))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	paid := false
	repo := payingTransactionRepo{fakeTransactionRepo: fakeTransactionRepo{f.store}}
	repo.pay = func() {
		if paid {
			return
		}
		paid = true
		if _, err := f.pay().Execute(ctx, PayInstallmentInput{InstallmentID: created.Group.InstallmentID}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	// Snapshots the listing before the payment lands.
	stale, err := NewGetInstallmentStatsUseCase(repo, f.cache).Execute(ctx, GetInstallmentStatsInput{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !stale.Stats.PaidAmount.IsZero() {
		t.Fatalf("expected the racing read to see paid 0, got %s", stale.Stats.PaidAmount)
	}

	fresh, err := f.stats().Execute(ctx, GetInstallmentStatsInput{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if fresh.Cached {
		t.Error("expected the stale summary not to be served from cache")
	}
	if !fresh.Stats.PaidAmount.Equal(decimal.NewFromInt(50)) {
		t.Errorf("expected paid 50, got %s", fresh.Stats.PaidAmount)
	}
}

func TestGetInstallmentStats_WalksEveryPage(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	// 3 purchases of 48 installments span two pages of 100.
	for i := 0; i < 3; i++ {
		if _, err := f.create().Execute(ctx, purchaseInput("480", 48, 0)); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	f.store.pageCalls = 0

	output, err := f.stats().Execute(ctx, GetInstallmentStatsInput{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if f.store.pageCalls != 2 {
		t.Errorf("expected 2 page loads, got %d", f.store.pageCalls)
	}
	if output.Stats.TotalGroups != 3 {
		t.Errorf("expected 3 groups, got %d", output.Stats.TotalGroups)
	}
	if !output.Stats.TotalAmount.Equal(decimal.NewFromInt(1440)) {
		t.Errorf("expected total 1440, got %s", output.Stats.TotalAmount)
	}
}

func TestGetInstallmentStats_CacheFailureIsIgnored(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	if _, err := f.create().Execute(ctx, purchaseInput("100", 2, 1)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	f.cache.fail = true

	output, err := f.stats().Execute(ctx, GetInstallmentStatsInput{})
	if err != nil {
		t.Fatalf("expected cache failures to be ignored, got %v", err)
	}
	if !output.Stats.PaidAmount.Equal(decimal.NewFromInt(50)) {
		t.Errorf("expected paid 50, got %s", output.Stats.PaidAmount)
	}
}

func TestGetInstallmentStats_ListFailure(t *testing.T) {
	f := newFixture()
	f.store.listErr = errors.New("db down")

	if _, err := f.stats().Execute(context.Background(), GetInstallmentStatsInput{}); err == nil {
		t.Error("expected an error")
	}
}

func TestStatsCacheKey(t *testing.T) {
	start := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)
	expense := entity.TransactionTypeExpense
	pm := int64(3)

	key := statsCacheKey(FilterInput{StartDate: &start, Type: &expense, PaymentMethodID: &pm})
	expected := "start=2024-01-01|end=|type=expense|pm=3|cat="
	if key != expected {
		t.Errorf("expected %q, got %q", expected, key)
	}
}

func TestPayInstallment(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	created, err := f.create().Execute(ctx, purchaseInput("100", 2, 0))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	id := created.Group.InstallmentID

	output, err := f.pay().Execute(ctx, PayInstallmentInput{InstallmentID: id})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if output.Progress.PaidInstallments != 1 || output.Progress.IsCompleted {
		t.Errorf("expected 1 paid and not completed, got %+v", output.Progress)
	}

	output, err = f.pay().Execute(ctx, PayInstallmentInput{InstallmentID: id})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !output.Progress.IsCompleted || output.Progress.RemainingInstallments != 0 {
		t.Errorf("expected completed purchase, got %+v", output.Progress)
	}

	if _, err := f.pay().Execute(ctx, PayInstallmentInput{InstallmentID: id}); !errors.Is(err, domainerror.ErrInstallmentAlreadyCompleted) {
		t.Errorf("expected ErrInstallmentAlreadyCompleted, got %v", err)
	}

	tooMany := 5
	if _, err := f.pay().Execute(ctx, PayInstallmentInput{InstallmentID: id, PaidInstallments: &tooMany}); !errors.Is(err, domainerror.ErrInvalidPaidInstallments) {
		t.Errorf("expected ErrInvalidPaidInstallments, got %v", err)
	}

	reset := 0
	output, err = f.pay().Execute(ctx, PayInstallmentInput{InstallmentID: id, PaidInstallments: &reset})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if output.Progress.PaidInstallments != 0 {
		t.Errorf("expected progress to be reset, got %d", output.Progress.PaidInstallments)
	}

	if _, err := f.pay().Execute(ctx, PayInstallmentInput{InstallmentID: 999}); !errors.Is(err, domainerror.ErrInstallmentNotFound) {
		t.Errorf("expected ErrInstallmentNotFound, got %v", err)
	}

	// create + three successful payments
	if f.cache.invalidations != 4 {
		t.Errorf("expected 4 invalidations, got %d", f.cache.invalidations)
	}
}

func TestDeleteInstallmentPurchase(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	created, err := f.create().Execute(ctx, purchaseInput("100", 4, 0))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	output, err := f.remove().Execute(ctx, DeleteInstallmentPurchaseInput{InstallmentID: created.Group.InstallmentID})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if output.DeletedTransactions != 4 {
		t.Errorf("expected 4 transactions deleted, got %d", output.DeletedTransactions)
	}
	if len(f.store.transactions) != 0 {
		t.Errorf("expected store to be empty, got %d", len(f.store.transactions))
	}

	_, err = f.remove().Execute(ctx, DeleteInstallmentPurchaseInput{InstallmentID: created.Group.InstallmentID})
	if !errors.Is(err, domainerror.ErrInstallmentNotFound) {
		t.Errorf("expected ErrInstallmentNotFound, got %v", err)
	}
}
