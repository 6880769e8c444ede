package usecases

import (
	"context"
	"time"

	"gately/internal/domain/order"
	"gately/internal/shared/errors"
	"gately/internal/shared/logger"
)

type BuyerOrderSummary struct {
	OrderID     uint
	EventID     uint
	Total       int64
	Currency    string
	Status      string
	LookupToken string
	ItemCount   int
	CreatedAt   time.Time
}

type ListBuyerOrdersResult struct {
	Orders []BuyerOrderSummary
}

type ListBuyerOrdersUseCase struct {
	orderRepo order.Repository
	logger    logger.Interface
}

func NewListBuyerOrdersUseCase(orderRepo order.Repository, logger logger.Interface) *ListBuyerOrdersUseCase {
	return &ListBuyerOrdersUseCase{
		orderRepo: orderRepo,
		logger:    logger,
	}
}

func (uc *ListBuyerOrdersUseCase) Execute(ctx context.Context, buyerEmail string) (*ListBuyerOrdersResult, error) {
	if buyerEmail == "" {
		return nil, errors.NewBadRequestError("buyer email is required")
	}

	orders, err := uc.orderRepo.FindByBuyerEmail(ctx, buyerEmail)
	if err != nil {
		return nil, err
	}

	summaries := make([]BuyerOrderSummary, 0, len(orders))
	for _, o := range orders {
		summaries = append(summaries, BuyerOrderSummary{
			OrderID:     o.ID(),
			EventID:     o.EventID(),
			Total:       o.Total().Amount(),
			Currency:    o.Total().Currency(),
			Status:      o.Status().String(),
			LookupToken: o.LookupToken(),
			ItemCount:   len(o.Items()),
			CreatedAt:   o.CreatedAt(),
		})
	}

	return &ListBuyerOrdersResult{Orders: summaries}, nil
}
