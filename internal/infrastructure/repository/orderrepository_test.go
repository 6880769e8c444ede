package repository

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gately/internal/domain/order"
	vo "gately/internal/domain/order/valueobjects"
	"gately/internal/domain/shared/money"
)

func createTestOrder(t *testing.T, repo *OrderRepositoryImpl, buyerEmail string) *order.Order {
	o, err := order.NewOrder(1, 2, buyerEmail, "Rahim Uddin", money.New(300000, "BDT"), 0)
	require.NoError(t, err)
	require.NoError(t, o.AddItem(10, money.New(100000, "BDT"), 3))
	require.NoError(t, repo.Create(context.Background(), o))
	return o
}

func TestOrderRepository_Create(t *testing.T) {
	gdb := setupTestDB(t)
	repo := NewOrderRepository(gdb, testLogger())
	ctx := context.Background()

	o := createTestOrder(t, repo, "buyer@example.com")
	assert.NotZero(t, o.ID())
	assert.NotZero(t, o.Items()[0].ID())

	reloaded, err := repo.FindByID(ctx, o.ID())
	require.NoError(t, err)
	require.NotNil(t, reloaded)
	assert.Equal(t, o.LookupToken(), reloaded.LookupToken())
	assert.Equal(t, vo.OrderStatusPending, reloaded.Status())
	require.Len(t, reloaded.Items(), 1)
	assert.Equal(t, 3, reloaded.Items()[0].Quantity())
	assert.Equal(t, int64(300000), reloaded.Items()[0].Subtotal().Amount())
}

func TestOrderRepository_FindByIDAndEmail(t *testing.T) {
	gdb := setupTestDB(t)
	repo := NewOrderRepository(gdb, testLogger())
	ctx := context.Background()

	o := createTestOrder(t, repo, "owner@example.com")

	t.Run("matching email resolves", func(t *testing.T) {
		found, err := repo.FindByIDAndEmail(ctx, o.ID(), "owner@example.com")
		require.NoError(t, err)
		assert.NotNil(t, found)
	})

	t.Run("foreign email reads as not found", func(t *testing.T) {
		found, err := repo.FindByIDAndEmail(ctx, o.ID(), "stranger@example.com")
		require.NoError(t, err)
		assert.Nil(t, found)
	})
}

func TestOrderRepository_FindByBuyerEmail(t *testing.T) {
	gdb := setupTestDB(t)
	repo := NewOrderRepository(gdb, testLogger())
	ctx := context.Background()

	createTestOrder(t, repo, "repeat@example.com")
	createTestOrder(t, repo, "repeat@example.com")
	createTestOrder(t, repo, "someone-else@example.com")

	orders, err := repo.FindByBuyerEmail(ctx, "repeat@example.com")
	require.NoError(t, err)
	assert.Len(t, orders, 2)
}

func TestOrderRepository_FindByTenantAndCode(t *testing.T) {
	gdb := setupTestDB(t)
	repo := NewOrderRepository(gdb, testLogger())
	ctx := context.Background()

	o := createTestOrder(t, repo, "search@example.com")

	t.Run("resolves by numeric ID", func(t *testing.T) {
		found, err := repo.FindByTenantAndCode(ctx, 1, fmt.Sprintf("%d", o.ID()))
		require.NoError(t, err)
		require.NotNil(t, found)
		assert.Equal(t, o.ID(), found.ID())
	})

	t.Run("resolves by lookup token", func(t *testing.T) {
		found, err := repo.FindByTenantAndCode(ctx, 1, o.LookupToken())
		require.NoError(t, err)
		require.NotNil(t, found)
		assert.Equal(t, o.ID(), found.ID())
	})

	t.Run("wrong tenant reads as not found", func(t *testing.T) {
		found, err := repo.FindByTenantAndCode(ctx, 99, o.LookupToken())
		require.NoError(t, err)
		assert.Nil(t, found)
	})
}

func TestOrderRepository_UpdateStatus(t *testing.T) {
	gdb := setupTestDB(t)
	repo := NewOrderRepository(gdb, testLogger())
	ctx := context.Background()

	o := createTestOrder(t, repo, "complete@example.com")
	require.NoError(t, o.MarkCompleted("pay_test_123"))
	require.NoError(t, repo.UpdateStatus(ctx, o))

	reloaded, err := repo.FindByID(ctx, o.ID())
	require.NoError(t, err)
	assert.Equal(t, vo.OrderStatusCompleted, reloaded.Status())
	require.NotNil(t, reloaded.PaymentReference())
	assert.Equal(t, "pay_test_123", *reloaded.PaymentReference())
}
