package mappers

import (
	"gately/internal/domain/catalog"
	vo "gately/internal/domain/catalog/valueobjects"
	"gately/internal/domain/shared/money"
	"gately/internal/infrastructure/persistence/models"
)

// TicketTypeMapper handles the conversion between TicketType domain entities and persistence models.
type TicketTypeMapper interface {
	ToModel(t *catalog.TicketType) *models.TicketTypeModel
	ToDomain(model *models.TicketTypeModel) *catalog.TicketType
}

type TicketTypeMapperImpl struct{}

// NewTicketTypeMapper creates a new TicketTypeMapper.
func NewTicketTypeMapper() TicketTypeMapper {
	return &TicketTypeMapperImpl{}
}

// ToModel converts a ticket type domain entity to a persistence model.
// QuantitySold is carried for inserts only; updates to it go through the
// repository's conditional expressions.
func (m *TicketTypeMapperImpl) ToModel(t *catalog.TicketType) *models.TicketTypeModel {
	return &models.TicketTypeModel{
		ID:            t.ID(),
		EventID:       t.EventID(),
		Name:          t.Name(),
		Description:   t.Description(),
		Price:         t.Price().Amount(),
		Currency:      t.Price().Currency(),
		QuantityTotal: t.QuantityTotal(),
		QuantitySold:  t.QuantitySold(),
		SalesStart:    t.SalesStart(),
		SalesEnd:      t.SalesEnd(),
		Status:        t.Status().String(),
		CreatedAt:     t.CreatedAt(),
		UpdatedAt:     t.UpdatedAt(),
	}
}

// ToDomain converts a ticket type persistence model to a domain entity.
func (m *TicketTypeMapperImpl) ToDomain(model *models.TicketTypeModel) *catalog.TicketType {
	return catalog.ReconstructTicketType(catalog.TicketTypeReconstructParams{
		ID:            model.ID,
		EventID:       model.EventID,
		Name:          model.Name,
		Description:   model.Description,
		Price:         money.New(model.Price, model.Currency),
		QuantityTotal: model.QuantityTotal,
		QuantitySold:  model.QuantitySold,
		SalesStart:    model.SalesStart,
		SalesEnd:      model.SalesEnd,
		Status:        vo.TicketTypeStatus(model.Status),
		CreatedAt:     model.CreatedAt,
		UpdatedAt:     model.UpdatedAt,
	})
}
