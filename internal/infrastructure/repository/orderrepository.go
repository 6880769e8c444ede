package repository

import (
	"context"
	"fmt"
	"strconv"

	"gorm.io/gorm"

	"gately/internal/domain/order"
	"gately/internal/infrastructure/persistence/mappers"
	"gately/internal/infrastructure/persistence/models"
	"gately/internal/shared/db"
	"gately/internal/shared/logger"
)

type OrderRepositoryImpl struct {
	db     *gorm.DB
	mapper mappers.OrderMapper
	logger logger.Interface
}

// NewOrderRepository creates a new order repository.
func NewOrderRepository(gdb *gorm.DB, log logger.Interface) *OrderRepositoryImpl {
	return &OrderRepositoryImpl{
		db:     gdb,
		mapper: mappers.NewOrderMapper(),
		logger: log,
	}
}

// Create persists the order and its line items, writing generated IDs back
// to the aggregate. Items are inserted after the order row so they carry
// the generated order ID.
func (r *OrderRepositoryImpl) Create(ctx context.Context, o *order.Order) error {
	model, err := r.mapper.ToModel(o)
	if err != nil {
		return err
	}

	tx := db.GetTxFromContext(ctx, r.db)
	if err := tx.Create(model).Error; err != nil {
		r.logger.Errorw("failed to create order", "buyer_email", o.BuyerEmail(), "error", err)
		return fmt.Errorf("failed to create order: %w", err)
	}
	o.SetID(model.ID)

	for _, item := range o.Items() {
		itemModel := r.mapper.ItemToModel(item, model.ID)
		if err := tx.Create(itemModel).Error; err != nil {
			r.logger.Errorw("failed to create order item", "order_id", model.ID, "ticket_type_id", item.TicketTypeID(), "error", err)
			return fmt.Errorf("failed to create order item: %w", err)
		}
		item.SetID(itemModel.ID)
	}

	return nil
}

// FindByID retrieves an order with its items. Returns nil when not found.
func (r *OrderRepositoryImpl) FindByID(ctx context.Context, id uint) (*order.Order, error) {
	var model models.OrderModel

	tx := db.GetTxFromContext(ctx, r.db)
	if err := tx.Preload("Items").First(&model, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		r.logger.Errorw("failed to find order by ID", "id", id, "error", err)
		return nil, fmt.Errorf("failed to find order: %w", err)
	}

	return r.mapper.ToDomain(&model)
}

// FindByIDAndEmail retrieves an order only when the buyer email matches.
// This is the ownership check for self-service order access.
func (r *OrderRepositoryImpl) FindByIDAndEmail(ctx context.Context, id uint, buyerEmail string) (*order.Order, error) {
	var model models.OrderModel

	tx := db.GetTxFromContext(ctx, r.db)
	if err := tx.
		Preload("Items").
		Where("id = ? AND buyer_email = ?", id, buyerEmail).
		First(&model).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		r.logger.Errorw("failed to find order by ID and email", "id", id, "error", err)
		return nil, fmt.Errorf("failed to find order: %w", err)
	}

	return r.mapper.ToDomain(&model)
}

// FindByBuyerEmail retrieves all orders for a buyer, newest first.
func (r *OrderRepositoryImpl) FindByBuyerEmail(ctx context.Context, buyerEmail string) ([]*order.Order, error) {
	var modelList []models.OrderModel

	tx := db.GetTxFromContext(ctx, r.db)
	if err := tx.
		Preload("Items").
		Where("buyer_email = ?", buyerEmail).
		Order("created_at DESC").
		Find(&modelList).Error; err != nil {
		r.logger.Errorw("failed to find orders by buyer email", "error", err)
		return nil, fmt.Errorf("failed to find orders: %w", err)
	}

	orders := make([]*order.Order, 0, len(modelList))
	for i := range modelList {
		o, err := r.mapper.ToDomain(&modelList[i])
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}

	return orders, nil
}

// FindByTenantAndCode resolves an order by numeric ID string or public
// lookup token, scoped to a tenant. Both forms are accepted because staff
// paste whatever the buyer shows them.
func (r *OrderRepositoryImpl) FindByTenantAndCode(ctx context.Context, tenantID uint, code string) (*order.Order, error) {
	var model models.OrderModel

	tx := db.GetTxFromContext(ctx, r.db)
	query := tx.Preload("Items").Where("tenant_id = ?", tenantID)

	if id, err := strconv.ParseUint(code, 10, 64); err == nil {
		query = query.Where("id = ? OR lookup_token = ?", uint(id), code)
	} else {
		query = query.Where("lookup_token = ?", code)
	}

	if err := query.First(&model).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		r.logger.Errorw("failed to find order by tenant and code", "tenant_id", tenantID, "error", err)
		return nil, fmt.Errorf("failed to find order: %w", err)
	}

	return r.mapper.ToDomain(&model)
}

// UpdateStatus persists a status transition together with the payment
// reference and updated timestamp.
func (r *OrderRepositoryImpl) UpdateStatus(ctx context.Context, o *order.Order) error {
	tx := db.GetTxFromContext(ctx, r.db)
	result := tx.
		Model(&models.OrderModel{}).
		Where("id = ?", o.ID()).
		Updates(map[string]interface{}{
			"status":            o.Status().String(),
			"payment_reference": o.PaymentReference(),
			"updated_at":        o.UpdatedAt(),
		})

	if result.Error != nil {
		r.logger.Errorw("failed to update order status", "id", o.ID(), "status", o.Status(), "error", result.Error)
		return fmt.Errorf("failed to update order status: %w", result.Error)
	}

	return nil
}
