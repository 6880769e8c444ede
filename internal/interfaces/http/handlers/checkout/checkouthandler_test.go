package checkout

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gately/internal/application/checkout/usecases"
	"gately/internal/infrastructure/auth"
	"gately/internal/interfaces/http/handlers/testutil"
	"gately/internal/shared/errors"
)

type mockCheckoutUC struct {
	result *usecases.CheckoutResult
	err    error
	gotCmd usecases.CheckoutCommand
}

func (m *mockCheckoutUC) Execute(ctx context.Context, cmd usecases.CheckoutCommand) (*usecases.CheckoutResult, error) {
	m.gotCmd = cmd
	return m.result, m.err
}

type mockValidateDiscountUC struct {
	result *usecases.ValidateDiscountResult
	err    error
}

func (m *mockValidateDiscountUC) Execute(ctx context.Context, cmd usecases.ValidateDiscountCommand) (*usecases.ValidateDiscountResult, error) {
	return m.result, m.err
}

func validCheckoutRequest() CheckoutRequest {
	return CheckoutRequest{
		EventID:    1,
		BuyerEmail: "buyer@example.com",
		BuyerName:  "Rahim Uddin",
		Items: []CheckoutItemRequest{
			{TicketTypeID: 10, Quantity: 2, AttendeeNames: []string{"Karim"}},
		},
	}
}

func TestCheckoutHandler_Checkout(t *testing.T) {
	t.Run("success returns 201 with the order", func(t *testing.T) {
		mockUC := &mockCheckoutUC{result: &usecases.CheckoutResult{
			OrderID:     7,
			LookupToken: "ord_abc",
			Status:      "completed",
			Total:       200000,
			Currency:    "BDT",
		}}
		handler := NewCheckoutHandler(mockUC, nil)

		c, w := testutil.NewTestContext(http.MethodPost, "/checkout", validCheckoutRequest())
		handler.Checkout(c)

		assert.Equal(t, http.StatusCreated, w.Code)

		var resp testutil.APIResponse
		require.NoError(t, testutil.ParseResponse(w, &resp))
		assert.True(t, resp.Success)
		assert.Equal(t, "Order placed successfully", resp.Message)

		// The command carries the request's items.
		assert.Equal(t, uint(1), mockUC.gotCmd.EventID)
		require.Len(t, mockUC.gotCmd.Items, 1)
		assert.Equal(t, 2, mockUC.gotCmd.Items[0].Quantity)
	})

	t.Run("malformed body is a 400", func(t *testing.T) {
		handler := NewCheckoutHandler(&mockCheckoutUC{}, nil)

		c, w := testutil.NewTestContext(http.MethodPost, "/checkout", map[string]interface{}{
			"event_id": "not-a-number",
		})
		handler.Checkout(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("authenticated buyer's email is taken from claims", func(t *testing.T) {
		req := validCheckoutRequest()
		req.BuyerEmail = ""
		mockUC := &mockCheckoutUC{result: &usecases.CheckoutResult{OrderID: 1}}
		handler := NewCheckoutHandler(mockUC, nil)

		c, w := testutil.NewTestContext(http.MethodPost, "/checkout", req)
		testutil.SetClaims(c, 9, "buyer@example.com", 1, auth.RoleAttendee)
		handler.Checkout(c)

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Equal(t, "buyer@example.com", mockUC.gotCmd.BuyerEmail)
	})

	t.Run("guest without an email is rejected by the use case", func(t *testing.T) {
		req := validCheckoutRequest()
		req.BuyerEmail = ""
		mockUC := &mockCheckoutUC{err: errors.NewBadRequestError("buyer email is required")}
		handler := NewCheckoutHandler(mockUC, nil)

		c, w := testutil.NewTestContext(http.MethodPost, "/checkout", req)
		handler.Checkout(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Empty(t, mockUC.gotCmd.BuyerEmail)
	})

	t.Run("quantity above the cap fails binding", func(t *testing.T) {
		req := validCheckoutRequest()
		req.Items[0].Quantity = 11
		handler := NewCheckoutHandler(&mockCheckoutUC{}, nil)

		c, w := testutil.NewTestContext(http.MethodPost, "/checkout", req)
		handler.Checkout(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("sold-out inventory maps to 400 with the reason", func(t *testing.T) {
		mockUC := &mockCheckoutUC{err: errors.NewBadRequestError("Insufficient inventory for GA. Available: 0")}
		handler := NewCheckoutHandler(mockUC, nil)

		c, w := testutil.NewTestContext(http.MethodPost, "/checkout", validCheckoutRequest())
		handler.Checkout(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)

		var resp testutil.APIResponse
		require.NoError(t, testutil.ParseResponse(w, &resp))
		assert.False(t, resp.Success)
		require.NotNil(t, resp.Error)
		assert.Equal(t, "Insufficient inventory for GA. Available: 0", resp.Error.Message)
	})
}

func TestCheckoutHandler_ValidateDiscount(t *testing.T) {
	t.Run("soft failure still returns 200", func(t *testing.T) {
		mockUC := &mockValidateDiscountUC{result: &usecases.ValidateDiscountResult{
			Valid:  false,
			Reason: "Discount code has expired",
		}}
		handler := NewCheckoutHandler(nil, mockUC)

		c, w := testutil.NewTestContext(http.MethodPost, "/checkout/validate-discount", ValidateDiscountRequest{
			EventID: 1,
			Code:    "OLD",
		})
		handler.ValidateDiscount(c)

		assert.Equal(t, http.StatusOK, w.Code)

		var resp testutil.APIResponse
		require.NoError(t, testutil.ParseResponse(w, &resp))
		assert.True(t, resp.Success)
	})

	t.Run("missing code fails binding", func(t *testing.T) {
		handler := NewCheckoutHandler(nil, &mockValidateDiscountUC{})

		c, w := testutil.NewTestContext(http.MethodPost, "/checkout/validate-discount", ValidateDiscountRequest{
			EventID: 1,
		})
		handler.ValidateDiscount(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}
