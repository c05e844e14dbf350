//go:build integration
// +build integration

// To enable gopls support for this file, add the following to your VSCode settings.json:
// "gopls": {
//   "buildFlags": ["-tags=integration"]
// }

package postgres_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	cartpostgres "github.com/LienoPC/EZ-Electronics-sub000/internal/domains/cart/adapters/persistence/postgres"
	cartdomain "github.com/LienoPC/EZ-Electronics-sub000/internal/domains/cart/domain"
	cartports "github.com/LienoPC/EZ-Electronics-sub000/internal/domains/cart/ports"
	productpostgres "github.com/LienoPC/EZ-Electronics-sub000/internal/domains/products/adapters/persistence/postgres"
	productdomain "github.com/LienoPC/EZ-Electronics-sub000/internal/domains/products/domain"
	"github.com/LienoPC/EZ-Electronics-sub000/internal/platform/migrations"
)

func setupPostgresContainer(t *testing.T) (*gorm.DB, func()) {
	ctx := context.Background()

	pgContainer, err := tcpostgres.RunContainer(ctx,
		testcontainers.WithImage("postgres:15-alpine"),
		tcpostgres.WithDatabase("ezelectronics_test"),
		tcpostgres.WithUsername("test"),
		tcpostgres.WithPassword("test"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	require.NoError(t, err)

	dsn, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	err = migrations.Run(db)
	require.NoError(t, err)

	cleanup := func() {
		sqlDB, _ := db.DB()
		if sqlDB != nil {
			sqlDB.Close()
		}
		pgContainer.Terminate(ctx)
	}

	return db, cleanup
}

func seedProduct(t *testing.T, db *gorm.DB, model string, quantity int32, price float64) {
	t.Helper()
	repo := productpostgres.NewRepository(db)
	product, err := productdomain.NewProduct(model, productdomain.CategorySmartphone, quantity, "", price, time.Now().AddDate(0, 0, -1))
	require.NoError(t, err)
	_, err = repo.Save(context.Background(), product)
	require.NoError(t, err)
}

func line(t *testing.T, model string, price float64, quantity int32) cartdomain.LineItem {
	t.Helper()
	item, err := cartdomain.NewLineItem(model, "Smartphone", price, quantity)
	require.NoError(t, err)
	return item
}

func TestCartRepository_UpsertMergesAndRecomputesTotal(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db, cleanup := setupPostgresContainer(t)
	defer cleanup()

	seedProduct(t, db, "iPhone 13", 10, 899.99)
	repo := cartpostgres.NewRepository(db)
	ctx := context.Background()

	cart, err := repo.UpsertLineItem(ctx, "alice", line(t, "iPhone 13", 899.99, 1))
	require.NoError(t, err)
	assert.NotZero(t, cart.ID)
	assert.Len(t, cart.Items, 1)

	cart, err = repo.UpsertLineItem(ctx, "alice", line(t, "iPhone 13", 899.99, 1))
	require.NoError(t, err)
	assert.Len(t, cart.Items, 1)
	assert.Equal(t, int32(2), cart.Items[0].Quantity)
	assert.InDelta(t, 1799.98, cart.Total, 0.001)
}

func TestCartRepository_OneUnpaidCartPerCustomer(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db, cleanup := setupPostgresContainer(t)
	defer cleanup()

	seedProduct(t, db, "iPhone 13", 100, 899.99)
	repo := cartpostgres.NewRepository(db)
	ctx := context.Background()
	const workers = 16

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = repo.UpsertLineItem(ctx, "alice", line(t, "iPhone 13", 899.99, 1))
		}()
	}
	wg.Wait()

	cart, err := repo.FindUnpaid(ctx, "alice")
	require.NoError(t, err)
	assert.Len(t, cart.Items, 1)
	assert.Equal(t, int32(workers), cart.Items[0].Quantity)

	all, err := repo.ListAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestCartRepository_CheckoutDecrementsStockAtomically(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db, cleanup := setupPostgresContainer(t)
	defer cleanup()

	seedProduct(t, db, "iPhone 13", 3, 899.99)
	repo := cartpostgres.NewRepository(db)
	ctx := context.Background()

	_, err := repo.UpsertLineItem(ctx, "alice", line(t, "iPhone 13", 899.99, 2))
	require.NoError(t, err)

	paidAt := time.Now().UTC().Truncate(time.Second)
	cart, err := repo.Checkout(ctx, "alice", paidAt)
	require.NoError(t, err)
	assert.True(t, cart.Paid)
	require.NotNil(t, cart.PaymentDate)

	products := productpostgres.NewRepository(db)
	product, err := products.GetByModel(ctx, "iPhone 13")
	require.NoError(t, err)
	assert.Equal(t, int32(1), product.Quantity)

	next, err := repo.FindUnpaid(ctx, "alice")
	require.NoError(t, err)
	assert.Zero(t, next.ID)

	history, err := repo.ListPaidForCustomer(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.True(t, history[0].Paid)
}

func TestCartRepository_CheckoutStockConflictRollsBack(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db, cleanup := setupPostgresContainer(t)
	defer cleanup()

	seedProduct(t, db, "iPhone 13", 5, 899.99)
	seedProduct(t, db, "Galaxy S22", 1, 799.99)
	repo := cartpostgres.NewRepository(db)
	ctx := context.Background()

	_, err := repo.UpsertLineItem(ctx, "alice", line(t, "iPhone 13", 899.99, 2))
	require.NoError(t, err)
	_, err = repo.UpsertLineItem(ctx, "alice", line(t, "Galaxy S22", 799.99, 2))
	require.NoError(t, err)

	_, err = repo.Checkout(ctx, "alice", time.Now())
	require.ErrorIs(t, err, cartports.ErrStockConflict)

	products := productpostgres.NewRepository(db)
	phone, err := products.GetByModel(ctx, "iPhone 13")
	require.NoError(t, err)
	assert.Equal(t, int32(5), phone.Quantity)

	cart, err := repo.FindUnpaid(ctx, "alice")
	require.NoError(t, err)
	assert.False(t, cart.Paid)
	assert.Len(t, cart.Items, 2)
}

func TestCartRepository_ContendedCheckoutSingleWinner(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db, cleanup := setupPostgresContainer(t)
	defer cleanup()

	seedProduct(t, db, "iPhone 13", 1, 899.99)
	repo := cartpostgres.NewRepository(db)
	ctx := context.Background()

	_, err := repo.UpsertLineItem(ctx, "alice", line(t, "iPhone 13", 899.99, 1))
	require.NoError(t, err)
	_, err = repo.UpsertLineItem(ctx, "bob", line(t, "iPhone 13", 899.99, 1))
	require.NoError(t, err)

	var wg sync.WaitGroup
	errCh := make(chan error, 2)
	for _, customer := range []string{"alice", "bob"} {
		wg.Add(1)
		go func(customer string) {
			defer wg.Done()
			_, err := repo.Checkout(ctx, customer, time.Now())
			errCh <- err
		}(customer)
	}
	wg.Wait()
	close(errCh)

	var successes, conflicts int
	for err := range errCh {
		if err == nil {
			successes++
			continue
		}
		require.ErrorIs(t, err, cartports.ErrStockConflict)
		conflicts++
	}
	assert.Equal(t, 1, successes)
	assert.Equal(t, 1, conflicts)

	products := productpostgres.NewRepository(db)
	product, err := products.GetByModel(ctx, "iPhone 13")
	require.NoError(t, err)
	assert.Equal(t, int32(0), product.Quantity)
}

func TestCartRepository_RemoveAndClear(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db, cleanup := setupPostgresContainer(t)
	defer cleanup()

	seedProduct(t, db, "iPhone 13", 10, 100)
	repo := cartpostgres.NewRepository(db)
	ctx := context.Background()

	_, err := repo.DecrementOrRemoveLineItem(ctx, "alice", "iPhone 13")
	require.ErrorIs(t, err, cartports.ErrCartNotFound)

	_, err = repo.UpsertLineItem(ctx, "alice", line(t, "iPhone 13", 100, 2))
	require.NoError(t, err)

	_, err = repo.DecrementOrRemoveLineItem(ctx, "alice", "Ghost Phone")
	require.ErrorIs(t, err, cartports.ErrProductNotInCart)

	cart, err := repo.DecrementOrRemoveLineItem(ctx, "alice", "iPhone 13")
	require.NoError(t, err)
	assert.Equal(t, int32(1), cart.Items[0].Quantity)
	assert.InDelta(t, 100, cart.Total, 0.001)

	cart, err = repo.ClearLineItems(ctx, "alice")
	require.NoError(t, err)
	assert.True(t, cart.IsEmpty())
	assert.Zero(t, cart.Total)
	assert.NotZero(t, cart.ID)
}
