package mappers

import (
	"gately/internal/domain/discount"
	vo "gately/internal/domain/discount/valueobjects"
	"gately/internal/infrastructure/persistence/models"
)

// DiscountCodeMapper handles the conversion between DiscountCode domain entities and persistence models.
type DiscountCodeMapper interface {
	ToModel(d *discount.DiscountCode) *models.DiscountCodeModel
	ToDomain(model *models.DiscountCodeModel) *discount.DiscountCode
}

type DiscountCodeMapperImpl struct{}

// NewDiscountCodeMapper creates a new DiscountCodeMapper.
func NewDiscountCodeMapper() DiscountCodeMapper {
	return &DiscountCodeMapperImpl{}
}

// ToModel converts a discount code domain entity to a persistence model.
// TimesRedeemed is carried for inserts only; increments go through the
// repository's conditional expression.
func (m *DiscountCodeMapperImpl) ToModel(d *discount.DiscountCode) *models.DiscountCodeModel {
	return &models.DiscountCodeModel{
		ID:             d.ID(),
		EventID:        d.EventID(),
		Code:           d.Code(),
		DiscountType:   d.DiscountType().String(),
		DiscountValue:  d.DiscountValue(),
		StartsAt:       d.StartsAt(),
		ExpiresAt:      d.ExpiresAt(),
		MaxRedemptions: d.MaxRedemptions(),
		TimesRedeemed:  d.TimesRedeemed(),
		Status:         d.Status().String(),
		CreatedAt:      d.CreatedAt(),
		UpdatedAt:      d.UpdatedAt(),
	}
}

// ToDomain converts a discount code persistence model to a domain entity.
func (m *DiscountCodeMapperImpl) ToDomain(model *models.DiscountCodeModel) *discount.DiscountCode {
	return discount.ReconstructDiscountCode(discount.DiscountCodeReconstructParams{
		ID:             model.ID,
		EventID:        model.EventID,
		Code:           model.Code,
		DiscountType:   vo.DiscountType(model.DiscountType),
		DiscountValue:  model.DiscountValue,
		StartsAt:       model.StartsAt,
		ExpiresAt:      model.ExpiresAt,
		MaxRedemptions: model.MaxRedemptions,
		TimesRedeemed:  model.TimesRedeemed,
		Status:         vo.DiscountCodeStatus(model.Status),
		CreatedAt:      model.CreatedAt,
		UpdatedAt:      model.UpdatedAt,
	})
}
