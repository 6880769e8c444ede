package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"gately/internal/domain/catalog"
	"gately/internal/domain/discount"
	discountvo "gately/internal/domain/discount/valueobjects"
	"gately/internal/domain/shared/money"
	"gately/internal/infrastructure/persistence/models"
	"gately/internal/shared/logger"
)

func setupTestDB(t *testing.T) *gorm.DB {
	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = gdb.AutoMigrate(
		&models.EventModel{},
		&models.TicketTypeModel{},
		&models.DiscountCodeModel{},
		&models.OrderModel{},
		&models.OrderItemModel{},
		&models.TicketModel{},
	)
	require.NoError(t, err)

	return gdb
}

func testLogger() logger.Interface {
	return logger.NewLogger()
}

func createTestEvent(t *testing.T, gdb *gorm.DB, slug string) *catalog.Event {
	start := time.Now().UTC().Add(7 * 24 * time.Hour)
	event, err := catalog.NewEvent(1, "Event "+slug, slug, start, start.Add(6*time.Hour))
	require.NoError(t, err)
	require.NoError(t, event.Publish())

	repo := NewEventRepository(gdb, testLogger())
	require.NoError(t, repo.Create(context.Background(), event))
	return event
}

func createTestTicketType(t *testing.T, gdb *gorm.DB, eventID uint, total int) *catalog.TicketType {
	now := time.Now().UTC()
	tt, err := catalog.NewTicketType(eventID, "General Admission", money.New(100000, "BDT"), total, now.Add(-time.Hour), now.Add(30*24*time.Hour))
	require.NoError(t, err)

	repo := NewTicketTypeRepository(gdb, testLogger())
	require.NoError(t, repo.Create(context.Background(), tt))
	return tt
}

func createTestDiscountCode(t *testing.T, gdb *gorm.DB, eventID uint, code string, maxRedemptions int) *discount.DiscountCode {
	now := time.Now().UTC()
	dc, err := discount.NewDiscountCode(eventID, code, discountvo.DiscountTypePercentage, 10, now.Add(-time.Hour), now.Add(24*time.Hour), maxRedemptions)
	require.NoError(t, err)

	repo := NewDiscountCodeRepository(gdb, testLogger())
	require.NoError(t, repo.Create(context.Background(), dc))
	return dc
}
