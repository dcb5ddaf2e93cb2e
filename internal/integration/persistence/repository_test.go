package persistence

import (
	"context"
	"database/sql"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/finance-tracker/wallet-api/internal/application/adapter"
	"github.com/finance-tracker/wallet-api/internal/domain/entity"
	domainerror "github.com/finance-tracker/wallet-api/internal/domain/error"
	"github.com/finance-tracker/wallet-api/internal/integration/persistence/model"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dbSQL, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("failed to open sqlite: %v", err)
	}
	// A single connection keeps every query on the same in-memory database.
	dbSQL.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = dbSQL.Close() })

	db, err := gorm.Open(sqlite.Dialector{Conn: dbSQL}, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to connect to database: %v", err)
	}
	if err := db.AutoMigrate(model.AllModels()...); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	return db
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func seedInstallment(t *testing.T, db *gorm.DB, count, paid int, categoryID *int64) (*entity.Installment, []*entity.Transaction) {
	t.Helper()

	installment := entity.NewInstallment("Laptop", decimal.NewFromInt(int64(count)*100), count, paid,
		entity.TransactionTypeExpense, categoryID, nil, day(2024, time.January, 10))

	transactions := make([]*entity.Transaction, count)
	for i := 0; i < count; i++ {
		number := i + 1
		txn := entity.NewTransaction(installment.FirstDueDate.AddDate(0, i, 0), "Laptop",
			decimal.NewFromInt(100), entity.TransactionTypeExpense, categoryID, nil, "")
		txn.InstallmentNumber = &number
		transactions[i] = txn
	}

	if err := NewInstallmentRepository(db).CreateWithTransactions(context.Background(), installment, transactions); err != nil {
		t.Fatalf("failed to seed installment: %v", err)
	}
	return installment, transactions
}

func TestInstallmentRepository_CreateWithTransactions(t *testing.T) {
	db := newTestDB(t)
	installment, transactions := seedInstallment(t, db, 3, 1, nil)

	if installment.ID == 0 {
		t.Fatal("expected installment ID to be assigned")
	}
	for i, txn := range transactions {
		if txn.ID == 0 {
			t.Errorf("expected transaction %d to have an ID", i)
		}
		if txn.InstallmentID == nil || *txn.InstallmentID != installment.ID {
			t.Errorf("expected transaction %d to reference installment %d, got %v", i, installment.ID, txn.InstallmentID)
		}
	}

	stored, err := NewTransactionRepository(db).FindByInstallmentID(context.Background(), installment.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(stored) != 3 {
		t.Fatalf("expected 3 transactions, got %d", len(stored))
	}
	for i, txn := range stored {
		if txn.InstallmentNumber == nil || *txn.InstallmentNumber != i+1 {
			t.Errorf("expected installment number %d, got %v", i+1, txn.InstallmentNumber)
		}
		if !txn.IsInstallment() {
			t.Errorf("expected loaded transaction %d to carry its installment reference", i)
			continue
		}
		if *txn.Installment.InstallmentCount != 3 || *txn.Installment.CurrentInstallment != 1 {
			t.Errorf("expected progress 1/3, got %d/%d", *txn.Installment.CurrentInstallment, *txn.Installment.InstallmentCount)
		}
	}
}

func TestInstallmentRepository_UpdateProgress(t *testing.T) {
	db := newTestDB(t)
	repo := NewInstallmentRepository(db)
	installment, _ := seedInstallment(t, db, 4, 0, nil)
	ctx := context.Background()

	if err := repo.UpdateProgress(ctx, installment.ID, 2); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	found, err := repo.FindByID(ctx, installment.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if found.CurrentInstallment != 2 {
		t.Errorf("expected current installment 2, got %d", found.CurrentInstallment)
	}

	if err := repo.UpdateProgress(ctx, 999, 1); !errors.Is(err, domainerror.ErrInstallmentNotFound) {
		t.Errorf("expected ErrInstallmentNotFound, got %v", err)
	}
}

func TestInstallmentRepository_IncrementProgress(t *testing.T) {
	db := newTestDB(t)
	repo := NewInstallmentRepository(db)
	installment, _ := seedInstallment(t, db, 2, 0, nil)
	ctx := context.Background()

	updated, err := repo.IncrementProgress(ctx, installment.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated.CurrentInstallment != 1 {
		t.Errorf("expected current installment 1, got %d", updated.CurrentInstallment)
	}

	if _, err := repo.IncrementProgress(ctx, installment.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := repo.IncrementProgress(ctx, installment.ID); !errors.Is(err, domainerror.ErrInstallmentAlreadyCompleted) {
		t.Errorf("expected ErrInstallmentAlreadyCompleted, got %v", err)
	}

	found, err := repo.FindByID(ctx, installment.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if found.CurrentInstallment != 2 {
		t.Errorf("expected progress to stop at 2, got %d", found.CurrentInstallment)
	}

	if _, err := repo.IncrementProgress(ctx, 999); !errors.Is(err, domainerror.ErrInstallmentNotFound) {
		t.Errorf("expected ErrInstallmentNotFound, got %v", err)
	}
}

func TestInstallmentRepository_IncrementProgress_Concurrent(t *testing.T) {
	db := newTestDB(t)
	repo := NewInstallmentRepository(db)
	installment, _ := seedInstallment(t, db, 6, 0, nil)
	ctx := context.Background()

	const payers = 8
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		succeeded int
		completed int
	)
	for i := 0; i < payers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := repo.IncrementProgress(ctx, installment.ID)
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				succeeded++
			case errors.Is(err, domainerror.ErrInstallmentAlreadyCompleted):
				completed++
			default:
				t.Errorf("unexpected error: %v", err)
			}
		}()
	}
	wg.Wait()

	if succeeded != 6 || completed != 2 {
		t.Errorf("expected 6 payments and 2 rejections, got %d and %d", succeeded, completed)
	}

	found, err := repo.FindByID(ctx, installment.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if found.CurrentInstallment != 6 {
		t.Errorf("expected every payment to count, got %d", found.CurrentInstallment)
	}
}

func TestInstallmentRepository_DeleteWithTransactions(t *testing.T) {
	db := newTestDB(t)
	repo := NewInstallmentRepository(db)
	installment, _ := seedInstallment(t, db, 3, 0, nil)
	ctx := context.Background()

	removed, err := repo.DeleteWithTransactions(ctx, installment.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if removed != 3 {
		t.Errorf("expected 3 transactions removed, got %d", removed)
	}

	if _, err := repo.FindByID(ctx, installment.ID); !errors.Is(err, domainerror.ErrInstallmentNotFound) {
		t.Errorf("expected ErrInstallmentNotFound after delete, got %v", err)
	}
	remaining, err := NewTransactionRepository(db).FindByInstallmentID(ctx, installment.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(remaining) != 0 {
		t.Errorf("expected no transactions left, got %d", len(remaining))
	}

	if _, err := repo.DeleteWithTransactions(ctx, installment.ID); !errors.Is(err, domainerror.ErrInstallmentNotFound) {
		t.Errorf("expected ErrInstallmentNotFound on second delete, got %v", err)
	}
}

func TestTransactionRepository_FindByFilter(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	repo := NewTransactionRepository(db)

	category := entity.NewCategory("Electronics", entity.DefaultCategoryColor, entity.DefaultCategoryIcon, entity.CategoryTypeExpense)
	if err := NewCategoryRepository(db).Create(ctx, category); err != nil {
		t.Fatalf("failed to create category: %v", err)
	}

	seedInstallment(t, db, 3, 1, &category.ID)
	salary := entity.NewTransaction(day(2024, time.January, 5), "Salary", decimal.NewFromInt(5000), entity.TransactionTypeIncome, nil, nil, "")
	if err := repo.Create(ctx, salary); err != nil {
		t.Fatalf("failed to create transaction: %v", err)
	}

	t.Run("lists everything newest first", func(t *testing.T) {
		result, err := repo.FindByFilter(ctx, adapter.TransactionFilter{}, adapter.TransactionPagination{Page: 1, Limit: 20})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if result.Total != 4 {
			t.Errorf("expected 4 transactions, got %d", result.Total)
		}
		if len(result.Transactions) != 4 {
			t.Fatalf("expected 4 rows, got %d", len(result.Transactions))
		}
		if !result.Transactions[0].Date.Equal(day(2024, time.March, 10)) {
			t.Errorf("expected newest transaction first, got %s", result.Transactions[0].Date)
		}
		if result.Transactions[0].Category == nil || result.Transactions[0].Category.Name != "Electronics" {
			t.Errorf("expected category to be preloaded")
		}
	})

	t.Run("installment only", func(t *testing.T) {
		result, err := repo.FindByFilter(ctx, adapter.TransactionFilter{InstallmentOnly: true}, adapter.TransactionPagination{Page: 1, Limit: 20})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if result.Total != 3 {
			t.Errorf("expected 3 installment transactions, got %d", result.Total)
		}
	})

	t.Run("date range and pagination", func(t *testing.T) {
		start := day(2024, time.January, 1)
		end := day(2024, time.January, 31)
		result, err := repo.FindByFilter(ctx,
			adapter.TransactionFilter{StartDate: &start, EndDate: &end},
			adapter.TransactionPagination{Page: 2, Limit: 1})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if result.Total != 2 {
			t.Errorf("expected 2 transactions in January, got %d", result.Total)
		}
		if result.TotalPages != 2 {
			t.Errorf("expected 2 pages, got %d", result.TotalPages)
		}
		if len(result.Transactions) != 1 || result.Transactions[0].Description != "Salary" {
			t.Errorf("expected the older January transaction on page 2")
		}
	})
}

func TestTransactionRepository_GetTotals(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	repo := NewTransactionRepository(db)

	seedInstallment(t, db, 2, 0, nil)
	salary := entity.NewTransaction(day(2024, time.January, 5), "Salary", decimal.NewFromInt(1000), entity.TransactionTypeIncome, nil, nil, "")
	if err := repo.Create(ctx, salary); err != nil {
		t.Fatalf("failed to create transaction: %v", err)
	}

	totals, err := repo.GetTotals(ctx, adapter.TransactionFilter{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !totals.IncomeTotal.Equal(decimal.NewFromInt(1000)) {
		t.Errorf("expected income 1000, got %s", totals.IncomeTotal)
	}
	if !totals.ExpenseTotal.Equal(decimal.NewFromInt(200)) {
		t.Errorf("expected expense 200, got %s", totals.ExpenseTotal)
	}
	if !totals.NetTotal.Equal(decimal.NewFromInt(800)) {
		t.Errorf("expected net 800, got %s", totals.NetTotal)
	}
}

func TestTransactionRepository_Delete(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	repo := NewTransactionRepository(db)

	txn := entity.NewTransaction(day(2024, time.January, 5), "Coffee", decimal.NewFromInt(5), entity.TransactionTypeExpense, nil, nil, "")
	if err := repo.Create(ctx, txn); err != nil {
		t.Fatalf("failed to create transaction: %v", err)
	}

	if err := repo.Delete(ctx, txn.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := repo.FindByID(ctx, txn.ID); !errors.Is(err, domainerror.ErrTransactionNotFound) {
		t.Errorf("expected ErrTransactionNotFound, got %v", err)
	}
	if err := repo.Delete(ctx, txn.ID); !errors.Is(err, domainerror.ErrTransactionNotFound) {
		t.Errorf("expected ErrTransactionNotFound on second delete, got %v", err)
	}
}

func TestCategoryRepository(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	repo := NewCategoryRepository(db)

	for _, c := range []*entity.Category{
		entity.NewCategory("Salary", "#10B981", "briefcase", entity.CategoryTypeIncome),
		entity.NewCategory("Groceries", "#F59E0B", "cart", entity.CategoryTypeExpense),
	} {
		if err := repo.Create(ctx, c); err != nil {
			t.Fatalf("failed to create category: %v", err)
		}
	}

	all, err := repo.FindAll(ctx, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(all) != 2 || all[0].Name != "Groceries" {
		t.Errorf("expected categories ordered by name, got %d", len(all))
	}

	income := entity.CategoryTypeIncome
	filtered, err := repo.FindAll(ctx, &income)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(filtered) != 1 || filtered[0].Name != "Salary" {
		t.Errorf("expected only the income category")
	}

	exists, err := repo.ExistsByName(ctx, "Salary")
	if err != nil || !exists {
		t.Errorf("expected Salary to exist, got %v (err %v)", exists, err)
	}
	if _, err := repo.FindByID(ctx, 42); !errors.Is(err, domainerror.ErrCategoryNotFound) {
		t.Errorf("expected ErrCategoryNotFound, got %v", err)
	}
}

func TestPaymentMethodRepository(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	repo := NewPaymentMethodRepository(db)

	card := entity.NewPaymentMethod("Visa", entity.PaymentMethodTypeCreditCard, entity.DefaultPaymentMethodColor)
	if err := repo.Create(ctx, card); err != nil {
		t.Fatalf("failed to create payment method: %v", err)
	}

	found, err := repo.FindByID(ctx, card.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if found.Type != entity.PaymentMethodTypeCreditCard {
		t.Errorf("expected credit_card, got %s", found.Type)
	}

	exists, err := repo.ExistsByName(ctx, "Visa")
	if err != nil || !exists {
		t.Errorf("expected Visa to exist, got %v (err %v)", exists, err)
	}
	if _, err := repo.FindByID(ctx, 42); !errors.Is(err, domainerror.ErrPaymentMethodNotFound) {
		t.Errorf("expected ErrPaymentMethodNotFound, got %v", err)
	}
}
