package discount

import (
	"context"
	"errors"
)

// ErrRedemptionCapReached is returned by Redeem when the conditional
// increment matches no row: the cap was hit between validation and
// redemption.
var ErrRedemptionCapReached = errors.New("discount code redemption cap reached")

type Repository interface {
	// FindByEventAndCode looks up an active code for the event. The code
	// argument is normalized by the caller via NormalizeCode.
	FindByEventAndCode(ctx context.Context, eventID uint, code string) (*DiscountCode, error)

	Create(ctx context.Context, dc *DiscountCode) error

	// Redeem increments times_redeemed by one with the cap re-checked in
	// the same statement (times_redeemed = times_redeemed + 1 WHERE
	// times_redeemed < max_redemptions). Returns ErrRedemptionCapReached
	// when no row matched.
	Redeem(ctx context.Context, id uint) error
}
