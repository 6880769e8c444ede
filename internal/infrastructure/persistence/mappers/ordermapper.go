package mappers

import (
	"encoding/json"
	"fmt"

	"gately/internal/domain/order"
	vo "gately/internal/domain/order/valueobjects"
	"gately/internal/domain/shared/money"
	"gately/internal/infrastructure/persistence/models"
)

// OrderMapper handles the conversion between Order domain entities and persistence models.
type OrderMapper interface {
	ToModel(o *order.Order) (*models.OrderModel, error)
	ToDomain(model *models.OrderModel) (*order.Order, error)
	ItemToModel(i *order.Item, orderID uint) *models.OrderItemModel
}

type OrderMapperImpl struct{}

// NewOrderMapper creates a new OrderMapper.
func NewOrderMapper() OrderMapper {
	return &OrderMapperImpl{}
}

// ToModel converts an order domain entity to a persistence model. Items are
// mapped separately so the repository controls insert order inside the
// transaction.
func (m *OrderMapperImpl) ToModel(o *order.Order) (*models.OrderModel, error) {
	model := &models.OrderModel{
		ID:               o.ID(),
		TenantID:         o.TenantID(),
		EventID:          o.EventID(),
		BuyerEmail:       o.BuyerEmail(),
		BuyerName:        o.BuyerName(),
		TotalAmount:      o.Total().Amount(),
		DiscountAmount:   o.DiscountAmount(),
		Currency:         o.Total().Currency(),
		Status:           o.Status().String(),
		PaymentReference: o.PaymentReference(),
		LookupToken:      o.LookupToken(),
		CreatedAt:        o.CreatedAt(),
		UpdatedAt:        o.UpdatedAt(),
	}

	if len(o.Metadata()) > 0 {
		metaJSON, err := json.Marshal(o.Metadata())
		if err != nil {
			return nil, fmt.Errorf("failed to marshal order metadata: %w", err)
		}
		model.Metadata = metaJSON
	}

	return model, nil
}

// ItemToModel converts an order line item to a persistence model.
func (m *OrderMapperImpl) ItemToModel(i *order.Item, orderID uint) *models.OrderItemModel {
	return &models.OrderItemModel{
		ID:           i.ID(),
		OrderID:      orderID,
		TicketTypeID: i.TicketTypeID(),
		UnitPrice:    i.UnitPrice().Amount(),
		Quantity:     i.Quantity(),
		Subtotal:     i.Subtotal().Amount(),
	}
}

// ToDomain converts an order persistence model to a domain entity,
// including any preloaded line items.
func (m *OrderMapperImpl) ToDomain(model *models.OrderModel) (*order.Order, error) {
	var metadata map[string]interface{}
	if len(model.Metadata) > 0 {
		if err := json.Unmarshal(model.Metadata, &metadata); err != nil {
			return nil, fmt.Errorf("failed to unmarshal order metadata (id=%d): %w", model.ID, err)
		}
	}

	items := make([]*order.Item, 0, len(model.Items))
	for _, im := range model.Items {
		items = append(items, order.ReconstructItem(
			im.ID,
			im.OrderID,
			im.TicketTypeID,
			money.New(im.UnitPrice, model.Currency),
			im.Quantity,
			money.New(im.Subtotal, model.Currency),
		))
	}

	return order.ReconstructOrder(order.OrderReconstructParams{
		ID:               model.ID,
		TenantID:         model.TenantID,
		EventID:          model.EventID,
		BuyerEmail:       model.BuyerEmail,
		BuyerName:        model.BuyerName,
		Total:            money.New(model.TotalAmount, model.Currency),
		DiscountAmount:   model.DiscountAmount,
		Status:           vo.OrderStatus(model.Status),
		PaymentReference: model.PaymentReference,
		LookupToken:      model.LookupToken,
		Items:            items,
		Metadata:         metadata,
		CreatedAt:        model.CreatedAt,
		UpdatedAt:        model.UpdatedAt,
	}), nil
}
