package usecases

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"gately/internal/domain/catalog"
	"gately/internal/domain/discount"
	discountvo "gately/internal/domain/discount/valueobjects"
	ordervo "gately/internal/domain/order/valueobjects"
	"gately/internal/domain/shared/money"
	"gately/internal/infrastructure/auth"
	"gately/internal/infrastructure/email"
	"gately/internal/infrastructure/persistence/models"
	"gately/internal/infrastructure/repository"
	"gately/internal/shared/config"
	"gately/internal/shared/db"
	"gately/internal/shared/errors"
	"gately/internal/shared/logger"
)

type checkoutFixture struct {
	gdb            *gorm.DB
	uc             *CheckoutUseCase
	eventRepo      *repository.EventRepositoryImpl
	ticketTypeRepo *repository.TicketTypeRepositoryImpl
	discountRepo   *repository.DiscountCodeRepositoryImpl
	orderRepo      *repository.OrderRepositoryImpl
	ticketRepo     *repository.TicketRepositoryImpl
	signer         *auth.HMACCredentialSigner
}

func newCheckoutFixture(t *testing.T, policy config.TicketingConfig) *checkoutFixture {
	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, gdb.AutoMigrate(
		&models.EventModel{},
		&models.TicketTypeModel{},
		&models.DiscountCodeModel{},
		&models.OrderModel{},
		&models.OrderItemModel{},
		&models.TicketModel{},
	))

	log := logger.NewLogger()
	f := &checkoutFixture{
		gdb:            gdb,
		eventRepo:      repository.NewEventRepository(gdb, log),
		ticketTypeRepo: repository.NewTicketTypeRepository(gdb, log),
		discountRepo:   repository.NewDiscountCodeRepository(gdb, log),
		orderRepo:      repository.NewOrderRepository(gdb, log),
		ticketRepo:     repository.NewTicketRepository(gdb, log),
		signer:         auth.NewHMACCredentialSigner("test-qr-secret"),
	}
	f.uc = NewCheckoutUseCase(
		f.eventRepo, f.ticketTypeRepo, f.discountRepo, f.orderRepo, f.ticketRepo,
		f.signer, db.NewTransactionManager(gdb), email.NewNoopOrderNotifier(), policy, log,
	)
	return f
}

func defaultPolicy() config.TicketingConfig {
	return config.TicketingConfig{
		QRSecret:                "test-qr-secret",
		SynchronousPayment:      true,
		DefaultCurrency:         "BDT",
		CancellationCutoffHours: 24,
	}
}

func (f *checkoutFixture) seedEvent(t *testing.T, slug string) *catalog.Event {
	start := time.Now().UTC().Add(7 * 24 * time.Hour)
	event, err := catalog.NewEvent(1, "Event "+slug, slug, start, start.Add(6*time.Hour))
	require.NoError(t, err)
	require.NoError(t, event.Publish())
	require.NoError(t, f.eventRepo.Create(context.Background(), event))
	return event
}

func (f *checkoutFixture) seedTicketType(t *testing.T, eventID uint, price int64, total int) *catalog.TicketType {
	now := time.Now().UTC()
	tt, err := catalog.NewTicketType(eventID, "GA", money.New(price, "BDT"), total, now.Add(-time.Hour), now.Add(30*24*time.Hour))
	require.NoError(t, err)
	require.NoError(t, f.ticketTypeRepo.Create(context.Background(), tt))
	return tt
}

func (f *checkoutFixture) seedDiscount(t *testing.T, eventID uint, code string, dt discountvo.DiscountType, value int64, maxRedemptions int) *discount.DiscountCode {
	now := time.Now().UTC()
	dc, err := discount.NewDiscountCode(eventID, code, dt, value, now.Add(-time.Hour), now.Add(24*time.Hour), maxRedemptions)
	require.NoError(t, err)
	require.NoError(t, f.discountRepo.Create(context.Background(), dc))
	return dc
}

func TestCheckoutUseCase_Execute(t *testing.T) {
	ctx := context.Background()

	t.Run("happy path issues signed tickets and completes the order", func(t *testing.T) {
		f := newCheckoutFixture(t, defaultPolicy())
		event := f.seedEvent(t, "main")
		tt := f.seedTicketType(t, event.ID(), 100000, 50)

		result, err := f.uc.Execute(ctx, CheckoutCommand{
			EventID:    event.ID(),
			BuyerEmail: "buyer@example.com",
			BuyerName:  "Rahim Uddin",
			Items: []CheckoutItem{
				{TicketTypeID: tt.ID(), Quantity: 2, AttendeeNames: []string{"Karim"}},
			},
		})
		require.NoError(t, err)

		assert.Equal(t, ordervo.OrderStatusCompleted.String(), result.Status)
		assert.Equal(t, int64(200000), result.Subtotal)
		assert.Equal(t, int64(0), result.DiscountAmount)
		assert.Equal(t, int64(200000), result.Total)
		assert.Equal(t, "BDT", result.Currency)
		assert.NotEmpty(t, result.LookupToken)
		require.Len(t, result.Tickets, 2)

		// First ticket is named, second falls back to the buyer.
		assert.Equal(t, "Karim", result.Tickets[0].AttendeeName)
		assert.Equal(t, "Rahim Uddin", result.Tickets[1].AttendeeName)

		for _, issued := range result.Tickets {
			assert.True(t, f.signer.Verify([]byte(issued.QRPayload), issued.QRSignature))
		}

		// Inventory moved and the order row carries the payment reference.
		reloaded, err := f.ticketTypeRepo.FindByID(ctx, tt.ID())
		require.NoError(t, err)
		assert.Equal(t, 2, reloaded.QuantitySold())

		persisted, err := f.orderRepo.FindByID(ctx, result.OrderID)
		require.NoError(t, err)
		require.NotNil(t, persisted.PaymentReference())
		assert.Contains(t, *persisted.PaymentReference(), "pay_")
	})

	t.Run("asynchronous payment leaves the order pending", func(t *testing.T) {
		policy := defaultPolicy()
		policy.SynchronousPayment = false
		f := newCheckoutFixture(t, policy)
		event := f.seedEvent(t, "pending")
		tt := f.seedTicketType(t, event.ID(), 100000, 10)

		result, err := f.uc.Execute(ctx, CheckoutCommand{
			EventID:    event.ID(),
			BuyerEmail: "buyer@example.com",
			BuyerName:  "Rahim Uddin",
			Items:      []CheckoutItem{{TicketTypeID: tt.ID(), Quantity: 1}},
		})
		require.NoError(t, err)
		assert.Equal(t, ordervo.OrderStatusPending.String(), result.Status)

		persisted, err := f.orderRepo.FindByID(ctx, result.OrderID)
		require.NoError(t, err)
		assert.Nil(t, persisted.PaymentReference())
	})

	t.Run("percentage discount reduces the total", func(t *testing.T) {
		f := newCheckoutFixture(t, defaultPolicy())
		event := f.seedEvent(t, "disc")
		tt := f.seedTicketType(t, event.ID(), 99900, 10)
		f.seedDiscount(t, event.ID(), "SAVE25", discountvo.DiscountTypePercentage, 25, 5)

		result, err := f.uc.Execute(ctx, CheckoutCommand{
			EventID:      event.ID(),
			BuyerEmail:   "buyer@example.com",
			BuyerName:    "Rahim Uddin",
			Items:        []CheckoutItem{{TicketTypeID: tt.ID(), Quantity: 1}},
			DiscountCode: "save25",
		})
		require.NoError(t, err)

		assert.Equal(t, int64(99900), result.Subtotal)
		assert.Equal(t, int64(24975), result.DiscountAmount)
		assert.Equal(t, int64(74925), result.Total)

		// The redemption counter moved inside the same transaction.
		dc, err := f.discountRepo.FindByEventAndCode(ctx, event.ID(), "SAVE25")
		require.NoError(t, err)
		assert.Equal(t, 1, dc.TimesRedeemed())
	})

	t.Run("fixed discount never drives the total negative", func(t *testing.T) {
		f := newCheckoutFixture(t, defaultPolicy())
		event := f.seedEvent(t, "fixed")
		tt := f.seedTicketType(t, event.ID(), 30000, 10)
		f.seedDiscount(t, event.ID(), "BIGOFF", discountvo.DiscountTypeFixedAmount, 50000, 5)

		result, err := f.uc.Execute(ctx, CheckoutCommand{
			EventID:      event.ID(),
			BuyerEmail:   "buyer@example.com",
			BuyerName:    "Rahim Uddin",
			Items:        []CheckoutItem{{TicketTypeID: tt.ID(), Quantity: 1}},
			DiscountCode: "BIGOFF",
		})
		require.NoError(t, err)
		assert.Equal(t, int64(30000), result.DiscountAmount)
		assert.Equal(t, int64(0), result.Total)
	})

	t.Run("invalid discount code aborts checkout", func(t *testing.T) {
		f := newCheckoutFixture(t, defaultPolicy())
		event := f.seedEvent(t, "badcode")
		tt := f.seedTicketType(t, event.ID(), 100000, 10)

		_, err := f.uc.Execute(ctx, CheckoutCommand{
			EventID:      event.ID(),
			BuyerEmail:   "buyer@example.com",
			BuyerName:    "Rahim Uddin",
			Items:        []CheckoutItem{{TicketTypeID: tt.ID(), Quantity: 1}},
			DiscountCode: "NOPE",
		})
		require.Error(t, err)
		assert.True(t, errors.IsBadRequestError(err))

		// Nothing was reserved.
		reloaded, err := f.ticketTypeRepo.FindByID(ctx, tt.ID())
		require.NoError(t, err)
		assert.Equal(t, 0, reloaded.QuantitySold())
	})

	t.Run("insufficient inventory names the sold-out type and rolls everything back", func(t *testing.T) {
		f := newCheckoutFixture(t, defaultPolicy())
		event := f.seedEvent(t, "soldout")
		tt := f.seedTicketType(t, event.ID(), 100000, 1)

		_, err := f.uc.Execute(ctx, CheckoutCommand{
			EventID:    event.ID(),
			BuyerEmail: "buyer@example.com",
			BuyerName:  "Rahim Uddin",
			Items:      []CheckoutItem{{TicketTypeID: tt.ID(), Quantity: 2}},
		})
		require.Error(t, err)
		assert.True(t, errors.IsBadRequestError(err))
		assert.Contains(t, err.Error(), "Insufficient inventory for GA")

		var orderCount int64
		require.NoError(t, f.gdb.Model(&models.OrderModel{}).Count(&orderCount).Error)
		assert.Zero(t, orderCount)
	})

	t.Run("second buyer of the last ticket gets a bad request", func(t *testing.T) {
		f := newCheckoutFixture(t, defaultPolicy())
		event := f.seedEvent(t, "last-seat")
		tt := f.seedTicketType(t, event.ID(), 100000, 1)

		_, err := f.uc.Execute(ctx, CheckoutCommand{
			EventID:    event.ID(),
			BuyerEmail: "first@example.com",
			BuyerName:  "Rahim Uddin",
			Items:      []CheckoutItem{{TicketTypeID: tt.ID(), Quantity: 1}},
		})
		require.NoError(t, err)

		_, err = f.uc.Execute(ctx, CheckoutCommand{
			EventID:    event.ID(),
			BuyerEmail: "second@example.com",
			BuyerName:  "Karim Mia",
			Items:      []CheckoutItem{{TicketTypeID: tt.ID(), Quantity: 1}},
		})
		require.Error(t, err)
		assert.True(t, errors.IsBadRequestError(err))
	})

	t.Run("partial failure releases earlier reservations via rollback", func(t *testing.T) {
		f := newCheckoutFixture(t, defaultPolicy())
		event := f.seedEvent(t, "partial")
		plenty := f.seedTicketType(t, event.ID(), 100000, 10)
		scarce := f.seedTicketType(t, event.ID(), 200000, 1)

		_, err := f.uc.Execute(ctx, CheckoutCommand{
			EventID:    event.ID(),
			BuyerEmail: "buyer@example.com",
			BuyerName:  "Rahim Uddin",
			Items: []CheckoutItem{
				{TicketTypeID: plenty.ID(), Quantity: 3},
				{TicketTypeID: scarce.ID(), Quantity: 2},
			},
		})
		require.Error(t, err)

		reloaded, err := f.ticketTypeRepo.FindByID(ctx, plenty.ID())
		require.NoError(t, err)
		assert.Equal(t, 0, reloaded.QuantitySold())
	})

	t.Run("draft event reads as not found", func(t *testing.T) {
		f := newCheckoutFixture(t, defaultPolicy())
		start := time.Now().UTC().Add(7 * 24 * time.Hour)
		draft, err := catalog.NewEvent(1, "Draft", "draft", start, start.Add(time.Hour))
		require.NoError(t, err)
		require.NoError(t, f.eventRepo.Create(ctx, draft))
		tt := f.seedTicketType(t, draft.ID(), 100000, 10)

		_, err = f.uc.Execute(ctx, CheckoutCommand{
			EventID:    draft.ID(),
			BuyerEmail: "buyer@example.com",
			BuyerName:  "Rahim Uddin",
			Items:      []CheckoutItem{{TicketTypeID: tt.ID(), Quantity: 1}},
		})
		require.Error(t, err)
		assert.True(t, errors.IsNotFoundError(err))
	})

	t.Run("ticket type from another event is rejected", func(t *testing.T) {
		f := newCheckoutFixture(t, defaultPolicy())
		event := f.seedEvent(t, "mine")
		other := f.seedEvent(t, "theirs")
		foreign := f.seedTicketType(t, other.ID(), 100000, 10)

		_, err := f.uc.Execute(ctx, CheckoutCommand{
			EventID:    event.ID(),
			BuyerEmail: "buyer@example.com",
			BuyerName:  "Rahim Uddin",
			Items:      []CheckoutItem{{TicketTypeID: foreign.ID(), Quantity: 1}},
		})
		require.Error(t, err)
		assert.True(t, errors.IsBadRequestError(err))
	})

	t.Run("validation rejects bad commands before touching the database", func(t *testing.T) {
		f := newCheckoutFixture(t, defaultPolicy())

		cases := []struct {
			name string
			cmd  CheckoutCommand
		}{
			{"missing event", CheckoutCommand{BuyerEmail: "a@b.c", BuyerName: "A", Items: []CheckoutItem{{TicketTypeID: 1, Quantity: 1}}}},
			{"missing email", CheckoutCommand{EventID: 1, BuyerName: "A", Items: []CheckoutItem{{TicketTypeID: 1, Quantity: 1}}}},
			{"no items", CheckoutCommand{EventID: 1, BuyerEmail: "a@b.c", BuyerName: "A"}},
			{"zero quantity", CheckoutCommand{EventID: 1, BuyerEmail: "a@b.c", BuyerName: "A", Items: []CheckoutItem{{TicketTypeID: 1}}}},
			{"over the per-item cap", CheckoutCommand{EventID: 1, BuyerEmail: "a@b.c", BuyerName: "A", Items: []CheckoutItem{{TicketTypeID: 1, Quantity: MaxQuantityPerItem + 1}}}},
			{"duplicate ticket type", CheckoutCommand{EventID: 1, BuyerEmail: "a@b.c", BuyerName: "A", Items: []CheckoutItem{{TicketTypeID: 1, Quantity: 1}, {TicketTypeID: 1, Quantity: 1}}}},
			{"too many attendee names", CheckoutCommand{EventID: 1, BuyerEmail: "a@b.c", BuyerName: "A", Items: []CheckoutItem{{TicketTypeID: 1, Quantity: 1, AttendeeNames: []string{"X", "Y"}}}}},
		}

		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				_, err := f.uc.Execute(ctx, tc.cmd)
				require.Error(t, err)
				assert.True(t, errors.IsBadRequestError(err))
			})
		}
	})
}
