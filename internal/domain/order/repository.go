package order

import "context"

type Repository interface {
	// Create persists the order and its items, writing generated IDs back
	// to the aggregate.
	Create(ctx context.Context, o *Order) error

	FindByID(ctx context.Context, id uint) (*Order, error)
	FindByIDAndEmail(ctx context.Context, id uint, buyerEmail string) (*Order, error)
	FindByBuyerEmail(ctx context.Context, buyerEmail string) ([]*Order, error)

	// FindByTenantAndCode resolves an order by numeric ID string or public
	// lookup token, scoped to a tenant. Used by staff order search.
	FindByTenantAndCode(ctx context.Context, tenantID uint, code string) (*Order, error)

	// UpdateStatus persists a status transition.
	UpdateStatus(ctx context.Context, o *Order) error
}
