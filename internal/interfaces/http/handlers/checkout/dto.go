package checkout

import (
	"gately/internal/application/checkout/usecases"
)

type CheckoutItemRequest struct {
	TicketTypeID  uint     `json:"ticket_type_id" binding:"required"`
	Quantity      int      `json:"quantity" binding:"required,min=1,max=10"`
	AttendeeNames []string `json:"attendee_names" binding:"omitempty,dive,max=200"`
}

// CheckoutRequest is the checkout body. BuyerEmail may be omitted by
// authenticated buyers; it is then taken from the verified token.
type CheckoutRequest struct {
	EventID      uint                  `json:"event_id" binding:"required"`
	BuyerEmail   string                `json:"buyer_email" binding:"omitempty,email"`
	BuyerName    string                `json:"buyer_name" binding:"required,max=200"`
	Items        []CheckoutItemRequest `json:"items" binding:"required,min=1,dive"`
	DiscountCode string                `json:"discount_code" binding:"omitempty,max=50"`
}

func (r CheckoutRequest) ToCommand() usecases.CheckoutCommand {
	items := make([]usecases.CheckoutItem, 0, len(r.Items))
	for _, item := range r.Items {
		items = append(items, usecases.CheckoutItem{
			TicketTypeID:  item.TicketTypeID,
			Quantity:      item.Quantity,
			AttendeeNames: item.AttendeeNames,
		})
	}

	return usecases.CheckoutCommand{
		EventID:      r.EventID,
		BuyerEmail:   r.BuyerEmail,
		BuyerName:    r.BuyerName,
		Items:        items,
		DiscountCode: r.DiscountCode,
	}
}

type ValidateDiscountRequest struct {
	EventID  uint   `json:"event_id" binding:"required"`
	Code     string `json:"code" binding:"required,max=50"`
	Subtotal int64  `json:"subtotal" binding:"omitempty,min=0"`
}

func (r ValidateDiscountRequest) ToCommand() usecases.ValidateDiscountCommand {
	return usecases.ValidateDiscountCommand{
		EventID:  r.EventID,
		Code:     r.Code,
		Subtotal: r.Subtotal,
	}
}
