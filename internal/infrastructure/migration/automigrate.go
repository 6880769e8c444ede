package migration

import (
	"gately/internal/infrastructure/persistence/models"
)

func AutoMigrateModels() []interface{} {
	return []interface{}{
		&models.EventModel{},
		&models.TicketTypeModel{},
		&models.DiscountCodeModel{},
		&models.OrderModel{},
		&models.OrderItemModel{},
		&models.TicketModel{},
	}
}
