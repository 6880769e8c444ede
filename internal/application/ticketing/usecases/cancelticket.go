package usecases

import (
	"context"
	"time"

	"gately/internal/domain/catalog"
	"gately/internal/domain/order"
	"gately/internal/domain/ticketing"
	vo "gately/internal/domain/ticketing/valueobjects"
	"gately/internal/infrastructure/email"
	"gately/internal/shared/config"
	"gately/internal/shared/db"
	"gately/internal/shared/errors"
	"gately/internal/shared/logger"
)

type CancelTicketCommand struct {
	TicketID   uint
	BuyerEmail string
}

type CancelTicketResult struct {
	TicketID       uint
	OrderID        uint
	OrderCancelled bool

	// RefundAmount is the unit price of the cancelled ticket, a hint for
	// the external payment collaborator; this service moves no money.
	RefundAmount int64
	Currency     string
}

type CancelTicketUseCase struct {
	ticketRepo     ticketing.Repository
	orderRepo      order.Repository
	eventRepo      catalog.EventRepository
	ticketTypeRepo catalog.TicketTypeRepository
	txManager      *db.TransactionManager
	notifier       email.OrderNotifier
	policy         config.TicketingConfig
	logger         logger.Interface
}

func NewCancelTicketUseCase(
	ticketRepo ticketing.Repository,
	orderRepo order.Repository,
	eventRepo catalog.EventRepository,
	ticketTypeRepo catalog.TicketTypeRepository,
	txManager *db.TransactionManager,
	notifier email.OrderNotifier,
	policy config.TicketingConfig,
	logger logger.Interface,
) *CancelTicketUseCase {
	return &CancelTicketUseCase{
		ticketRepo:     ticketRepo,
		orderRepo:      orderRepo,
		eventRepo:      eventRepo,
		ticketTypeRepo: ticketTypeRepo,
		txManager:      txManager,
		notifier:       notifier,
		policy:         policy,
		logger:         logger,
	}
}

// Execute cancels one ticket for its buyer: ownership check, cutoff check,
// conditional status flip, stock release, and cascade to the order when
// the last active ticket goes. All of it in one transaction so the sibling
// count sees the ticket just cancelled.
func (uc *CancelTicketUseCase) Execute(ctx context.Context, cmd CancelTicketCommand) (*CancelTicketResult, error) {
	if cmd.TicketID == 0 {
		return nil, errors.NewBadRequestError("ticket ID is required")
	}
	if cmd.BuyerEmail == "" {
		return nil, errors.NewBadRequestError("buyer email is required")
	}

	var result *CancelTicketResult
	var cancelledOrder *order.Order
	var eventName string

	err := uc.txManager.RunInTransaction(ctx, func(txCtx context.Context) error {
		t, err := uc.ticketRepo.FindByID(txCtx, cmd.TicketID)
		if err != nil {
			return err
		}
		if t == nil {
			return errors.NewNotFoundError("ticket not found")
		}

		o, err := uc.orderRepo.FindByID(txCtx, t.OrderID())
		if err != nil {
			return err
		}
		if o == nil {
			return errors.NewNotFoundError("order not found")
		}
		if o.BuyerEmail() != cmd.BuyerEmail {
			return errors.NewForbiddenError("ticket does not belong to this buyer")
		}

		event, err := uc.eventRepo.FindByID(txCtx, o.EventID())
		if err != nil {
			return err
		}
		if event == nil {
			return errors.NewNotFoundError("event not found")
		}

		cutoff := time.Duration(uc.policy.CancellationCutoffHours) * time.Hour
		if event.StartsWithin(cutoff) {
			return errors.NewBadRequestError("tickets cannot be cancelled this close to the event")
		}

		if err := t.Cancel(); err != nil {
			return errors.NewConflictError(err.Error())
		}
		if err := uc.ticketRepo.TransitionStatus(txCtx, t, vo.TicketStatusValid); err != nil {
			if err == ticketing.ErrStaleTicketState {
				return errors.NewConflictError("ticket was already scanned or cancelled")
			}
			return err
		}

		if err := uc.ticketTypeRepo.Release(txCtx, t.TicketTypeID(), 1); err != nil {
			return err
		}

		remaining, err := uc.ticketRepo.CountNotCancelledByOrderID(txCtx, o.ID())
		if err != nil {
			return err
		}

		orderCancelled := false
		if remaining == 0 {
			if err := o.MarkCancelled(); err != nil {
				return errors.NewInternalError(err.Error())
			}
			if err := uc.orderRepo.UpdateStatus(txCtx, o); err != nil {
				return err
			}
			orderCancelled = true
			cancelledOrder = o
			eventName = event.Name()
		}

		var refund int64
		for _, item := range o.Items() {
			if item.TicketTypeID() == t.TicketTypeID() {
				refund = item.UnitPrice().Amount()
				break
			}
		}

		result = &CancelTicketResult{
			TicketID:       t.ID(),
			OrderID:        o.ID(),
			OrderCancelled: orderCancelled,
			RefundAmount:   refund,
			Currency:       o.Total().Currency(),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if cancelledOrder != nil {
		uc.notifier.NotifyOrderCancelled(email.OrderSummary{
			OrderID:     cancelledOrder.ID(),
			LookupToken: cancelledOrder.LookupToken(),
			EventName:   eventName,
			BuyerName:   cancelledOrder.BuyerName(),
			BuyerEmail:  cancelledOrder.BuyerEmail(),
			TotalAmount: cancelledOrder.Total().Amount(),
			Currency:    cancelledOrder.Total().Currency(),
		})
	}

	uc.logger.Infow("ticket cancelled",
		"ticket_id", result.TicketID,
		"order_id", result.OrderID,
		"order_cancelled", result.OrderCancelled)

	return result, nil
}
