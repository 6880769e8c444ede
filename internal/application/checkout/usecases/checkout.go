// Package usecases implements the checkout pipeline: price, reserve,
// persist, and issue signed tickets in one transaction.
package usecases

import (
	"context"
	"fmt"
	"time"

	"gately/internal/domain/catalog"
	"gately/internal/domain/discount"
	"gately/internal/domain/order"
	"gately/internal/domain/shared/money"
	"gately/internal/domain/ticketing"
	"gately/internal/infrastructure/email"
	"gately/internal/shared/biztime"
	"gately/internal/shared/config"
	"gately/internal/shared/db"
	"gately/internal/shared/errors"
	"gately/internal/shared/id"
	"gately/internal/shared/logger"
)

// MaxQuantityPerItem caps how many tickets of one type a single checkout
// may buy.
const MaxQuantityPerItem = 10

type CheckoutItem struct {
	TicketTypeID uint
	Quantity     int
	// AttendeeNames optionally names each ticket holder. Missing entries
	// fall back to the buyer's name.
	AttendeeNames []string
}

type CheckoutCommand struct {
	EventID      uint
	BuyerEmail   string
	BuyerName    string
	Items        []CheckoutItem
	DiscountCode string
}

type IssuedTicket struct {
	TicketID     uint
	TicketTypeID uint
	AttendeeName string
	QRPayload    string
	QRSignature  string
}

type CheckoutResult struct {
	OrderID        uint
	LookupToken    string
	Status         string
	Subtotal       int64
	DiscountAmount int64
	Total          int64
	Currency       string
	Tickets        []IssuedTicket
	CreatedAt      time.Time
}

type CheckoutUseCase struct {
	eventRepo      catalog.EventRepository
	ticketTypeRepo catalog.TicketTypeRepository
	discountRepo   discount.Repository
	orderRepo      order.Repository
	ticketRepo     ticketing.Repository
	signer         ticketing.CredentialSigner
	txManager      *db.TransactionManager
	notifier       email.OrderNotifier
	policy         config.TicketingConfig
	logger         logger.Interface
}

func NewCheckoutUseCase(
	eventRepo catalog.EventRepository,
	ticketTypeRepo catalog.TicketTypeRepository,
	discountRepo discount.Repository,
	orderRepo order.Repository,
	ticketRepo ticketing.Repository,
	signer ticketing.CredentialSigner,
	txManager *db.TransactionManager,
	notifier email.OrderNotifier,
	policy config.TicketingConfig,
	logger logger.Interface,
) *CheckoutUseCase {
	return &CheckoutUseCase{
		eventRepo:      eventRepo,
		ticketTypeRepo: ticketTypeRepo,
		discountRepo:   discountRepo,
		orderRepo:      orderRepo,
		ticketRepo:     ticketRepo,
		signer:         signer,
		txManager:      txManager,
		notifier:       notifier,
		policy:         policy,
		logger:         logger,
	}
}

// Execute runs the whole checkout in one transaction. The conditional
// inventory and redemption updates are the concurrency control; if any
// step fails the reservation rolls back with everything else.
func (uc *CheckoutUseCase) Execute(ctx context.Context, cmd CheckoutCommand) (*CheckoutResult, error) {
	uc.logger.Infow("executing checkout", "event_id", cmd.EventID, "buyer_email", cmd.BuyerEmail, "items", len(cmd.Items))

	if err := uc.validateCommand(cmd); err != nil {
		return nil, err
	}

	var result *CheckoutResult
	var event *catalog.Event
	var completedOrder *order.Order

	err := uc.txManager.RunInTransaction(ctx, func(txCtx context.Context) error {
		var txErr error
		result, event, completedOrder, txErr = uc.executeInTx(txCtx, cmd)
		return txErr
	})
	if err != nil {
		return nil, err
	}

	if completedOrder != nil {
		uc.notifier.NotifyOrderConfirmed(email.OrderSummary{
			OrderID:      completedOrder.ID(),
			LookupToken:  completedOrder.LookupToken(),
			EventName:    event.Name(),
			BuyerName:    completedOrder.BuyerName(),
			BuyerEmail:   completedOrder.BuyerEmail(),
			TotalAmount:  completedOrder.Total().Amount(),
			Currency:     completedOrder.Total().Currency(),
			TicketCount:  len(result.Tickets),
			DiscountUsed: completedOrder.DiscountAmount() > 0,
		})
	}

	uc.logger.Infow("checkout completed",
		"order_id", result.OrderID,
		"total", result.Total,
		"tickets", len(result.Tickets))

	return result, nil
}

func (uc *CheckoutUseCase) executeInTx(ctx context.Context, cmd CheckoutCommand) (*CheckoutResult, *catalog.Event, *order.Order, error) {
	now := biztime.NowUTC()

	event, err := uc.eventRepo.FindByID(ctx, cmd.EventID)
	if err != nil {
		return nil, nil, nil, err
	}
	if event == nil {
		return nil, nil, nil, errors.NewNotFoundError("event not found")
	}
	if !event.IsPurchasable() {
		// Drafts and private events are invisible to buyers.
		return nil, nil, nil, errors.NewNotFoundError("event not found")
	}

	types, err := uc.loadTicketTypes(ctx, event, cmd.Items, now)
	if err != nil {
		return nil, nil, nil, err
	}

	subtotal, err := uc.computeSubtotal(cmd.Items, types)
	if err != nil {
		return nil, nil, nil, err
	}

	discountAmount, appliedCode, err := uc.applyDiscount(ctx, event.ID(), cmd.DiscountCode, subtotal.Amount(), now)
	if err != nil {
		return nil, nil, nil, err
	}

	// Claim stock before writing anything order-shaped. A failed claim
	// aborts the transaction with nothing to unwind.
	for _, item := range cmd.Items {
		if err := uc.ticketTypeRepo.Reserve(ctx, item.TicketTypeID, item.Quantity); err != nil {
			if err == catalog.ErrInsufficientInventory {
				tt := types[item.TicketTypeID]
				return nil, nil, nil, errors.NewBadRequestError(
					fmt.Sprintf("Insufficient inventory for %s. Available: %d", tt.Name(), tt.Available()))
			}
			return nil, nil, nil, err
		}
	}

	if appliedCode != nil {
		if err := uc.discountRepo.Redeem(ctx, appliedCode.ID()); err != nil {
			if err == discount.ErrRedemptionCapReached {
				return nil, nil, nil, errors.NewBadRequestError("Discount code has reached maximum redemptions")
			}
			return nil, nil, nil, err
		}
	}

	total := money.New(subtotal.Amount()-discountAmount, subtotal.Currency())
	newOrder, err := order.NewOrder(event.TenantID(), event.ID(), cmd.BuyerEmail, cmd.BuyerName, total, discountAmount)
	if err != nil {
		return nil, nil, nil, errors.NewBadRequestError(err.Error())
	}
	if appliedCode != nil {
		newOrder.SetMetadata("discount_code", appliedCode.Code())
	}

	for _, item := range cmd.Items {
		tt := types[item.TicketTypeID]
		if err := newOrder.AddItem(tt.ID(), tt.Price(), item.Quantity); err != nil {
			return nil, nil, nil, errors.NewBadRequestError(err.Error())
		}
	}

	if err := uc.orderRepo.Create(ctx, newOrder); err != nil {
		return nil, nil, nil, err
	}

	var completedOrder *order.Order
	if uc.policy.SynchronousPayment {
		paymentRef, err := id.GenerateWithPrefix("pay", id.DefaultLength)
		if err != nil {
			return nil, nil, nil, err
		}
		if err := newOrder.MarkCompleted(paymentRef); err != nil {
			return nil, nil, nil, errors.NewInternalError(err.Error())
		}
		if err := uc.orderRepo.UpdateStatus(ctx, newOrder); err != nil {
			return nil, nil, nil, err
		}
		completedOrder = newOrder
	}

	tickets, err := uc.issueTickets(ctx, event, newOrder, cmd, now)
	if err != nil {
		return nil, nil, nil, err
	}

	result := &CheckoutResult{
		OrderID:        newOrder.ID(),
		LookupToken:    newOrder.LookupToken(),
		Status:         newOrder.Status().String(),
		Subtotal:       subtotal.Amount(),
		DiscountAmount: discountAmount,
		Total:          total.Amount(),
		Currency:       total.Currency(),
		Tickets:        tickets,
		CreatedAt:      newOrder.CreatedAt(),
	}

	return result, event, completedOrder, nil
}

// loadTicketTypes fetches and gates every requested type: it must exist,
// belong to the event, and be on sale right now.
func (uc *CheckoutUseCase) loadTicketTypes(ctx context.Context, event *catalog.Event, items []CheckoutItem, now time.Time) (map[uint]*catalog.TicketType, error) {
	ids := make([]uint, 0, len(items))
	for _, item := range items {
		ids = append(ids, item.TicketTypeID)
	}

	found, err := uc.ticketTypeRepo.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	types := make(map[uint]*catalog.TicketType, len(found))
	for _, tt := range found {
		types[tt.ID()] = tt
	}

	for _, item := range items {
		tt, ok := types[item.TicketTypeID]
		if !ok {
			return nil, errors.NewNotFoundError("ticket type not found")
		}
		if tt.EventID() != event.ID() {
			return nil, errors.NewBadRequestError("ticket type does not belong to this event")
		}
		if !tt.IsOnSale(now) {
			return nil, errors.NewBadRequestError("ticket type is not on sale")
		}
	}

	return types, nil
}

func (uc *CheckoutUseCase) computeSubtotal(items []CheckoutItem, types map[uint]*catalog.TicketType) (money.Money, error) {
	currency := uc.policy.DefaultCurrency
	if currency == "" {
		currency = money.DefaultCurrency
	}

	subtotal := money.New(0, currency)
	for _, item := range items {
		tt := types[item.TicketTypeID]
		line := tt.Price().MulQuantity(item.Quantity)
		sum, err := subtotal.Add(line)
		if err != nil {
			return money.Money{}, errors.NewBadRequestError(err.Error())
		}
		subtotal = sum
	}

	return subtotal, nil
}

// applyDiscount resolves and validates the code when one was supplied. A
// code that fails validation aborts the checkout; buyers validate codes
// separately and should never reach here with a stale one.
func (uc *CheckoutUseCase) applyDiscount(ctx context.Context, eventID uint, rawCode string, subtotal int64, now time.Time) (int64, *discount.DiscountCode, error) {
	if rawCode == "" {
		return 0, nil, nil
	}

	code := discount.NormalizeCode(rawCode)
	dc, err := uc.discountRepo.FindByEventAndCode(ctx, eventID, code)
	if err != nil {
		return 0, nil, err
	}
	if dc == nil {
		return 0, nil, errors.NewBadRequestError("Discount code not found or invalid")
	}

	verdict := dc.Validate(now)
	if !verdict.Valid {
		return 0, nil, errors.NewBadRequestError(verdict.Reason)
	}

	return dc.ComputeDiscount(subtotal), dc, nil
}

// issueTickets expands order items into tickets, persists them to obtain
// IDs, then signs and stores each credential. Both phases share the
// checkout transaction, so a signing failure voids the whole order.
func (uc *CheckoutUseCase) issueTickets(ctx context.Context, event *catalog.Event, o *order.Order, cmd CheckoutCommand, now time.Time) ([]IssuedTicket, error) {
	var tickets []*ticketing.Ticket
	for _, item := range cmd.Items {
		for i := 0; i < item.Quantity; i++ {
			name := cmd.BuyerName
			if i < len(item.AttendeeNames) && item.AttendeeNames[i] != "" {
				name = item.AttendeeNames[i]
			}
			t, err := ticketing.NewTicket(o.ID(), item.TicketTypeID, name, cmd.BuyerEmail)
			if err != nil {
				return nil, errors.NewBadRequestError(err.Error())
			}
			tickets = append(tickets, t)
		}
	}

	if err := uc.ticketRepo.CreateBatch(ctx, tickets); err != nil {
		return nil, err
	}

	issued := make([]IssuedTicket, 0, len(tickets))
	for _, t := range tickets {
		payload := ticketing.CredentialPayload{
			TicketID:     t.ID(),
			OrderID:      o.ID(),
			EventID:      event.ID(),
			AttendeeName: t.AttendeeName(),
			IssuedAt:     now.UnixMilli(),
		}
		encoded, err := payload.Encode()
		if err != nil {
			return nil, errors.NewInternalError(err.Error())
		}
		signature := uc.signer.Sign(encoded)

		if err := t.AttachCredential(string(encoded), signature); err != nil {
			return nil, errors.NewInternalError(err.Error())
		}
		if err := uc.ticketRepo.UpdateCredential(ctx, t); err != nil {
			return nil, err
		}

		issued = append(issued, IssuedTicket{
			TicketID:     t.ID(),
			TicketTypeID: t.TicketTypeID(),
			AttendeeName: t.AttendeeName(),
			QRPayload:    t.QRPayload(),
			QRSignature:  t.QRSignature(),
		})
	}

	return issued, nil
}

func (uc *CheckoutUseCase) validateCommand(cmd CheckoutCommand) error {
	if cmd.EventID == 0 {
		return errors.NewBadRequestError("event ID is required")
	}
	if cmd.BuyerEmail == "" {
		return errors.NewBadRequestError("buyer email is required")
	}
	if cmd.BuyerName == "" {
		return errors.NewBadRequestError("buyer name is required")
	}
	if len(cmd.Items) == 0 {
		return errors.NewBadRequestError("at least one item is required")
	}

	seen := make(map[uint]bool, len(cmd.Items))
	for _, item := range cmd.Items {
		if item.TicketTypeID == 0 {
			return errors.NewBadRequestError("ticket type ID is required")
		}
		if seen[item.TicketTypeID] {
			return errors.NewBadRequestError("duplicate ticket type in items")
		}
		seen[item.TicketTypeID] = true
		if item.Quantity <= 0 {
			return errors.NewBadRequestError("quantity must be positive")
		}
		if item.Quantity > MaxQuantityPerItem {
			return errors.NewBadRequestError("quantity exceeds per-order limit")
		}
		if len(item.AttendeeNames) > item.Quantity {
			return errors.NewBadRequestError("more attendee names than tickets")
		}
	}

	return nil
}
