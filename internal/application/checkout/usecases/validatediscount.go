package usecases

import (
	"context"

	"gately/internal/domain/discount"
	"gately/internal/shared/biztime"
	"gately/internal/shared/errors"
	"gately/internal/shared/logger"
)

type ValidateDiscountCommand struct {
	EventID uint
	Code    string
	// Subtotal, when positive, lets the response carry the computed
	// discount for the buyer's current selection.
	Subtotal int64
}

type ValidateDiscountResult struct {
	Valid          bool
	Reason         string
	DiscountType   string
	DiscountValue  int64
	DiscountAmount int64
}

// ValidateDiscountUseCase answers the pre-checkout "is this code good"
// question. Invalid codes are a normal result, never an error; the reason
// strings are shown to buyers as-is.
type ValidateDiscountUseCase struct {
	discountRepo discount.Repository
	logger       logger.Interface
}

func NewValidateDiscountUseCase(discountRepo discount.Repository, logger logger.Interface) *ValidateDiscountUseCase {
	return &ValidateDiscountUseCase{
		discountRepo: discountRepo,
		logger:       logger,
	}
}

func (uc *ValidateDiscountUseCase) Execute(ctx context.Context, cmd ValidateDiscountCommand) (*ValidateDiscountResult, error) {
	if cmd.EventID == 0 {
		return nil, errors.NewBadRequestError("event ID is required")
	}
	if cmd.Code == "" {
		return nil, errors.NewBadRequestError("discount code is required")
	}

	code := discount.NormalizeCode(cmd.Code)
	dc, err := uc.discountRepo.FindByEventAndCode(ctx, cmd.EventID, code)
	if err != nil {
		return nil, err
	}
	if dc == nil {
		return &ValidateDiscountResult{
			Valid:  false,
			Reason: "Discount code not found or invalid",
		}, nil
	}

	verdict := dc.Validate(biztime.NowUTC())
	if !verdict.Valid {
		return &ValidateDiscountResult{
			Valid:  false,
			Reason: verdict.Reason,
		}, nil
	}

	result := &ValidateDiscountResult{
		Valid:         true,
		DiscountType:  verdict.DiscountType.String(),
		DiscountValue: verdict.DiscountValue,
	}
	if cmd.Subtotal > 0 {
		result.DiscountAmount = dc.ComputeDiscount(cmd.Subtotal)
	}

	return result, nil
}
