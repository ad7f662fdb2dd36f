package http

import (
	"errors"
	"net/http"
	"time"

	"swiftserve/internal/core/application/usecases/queries"
	"swiftserve/internal/core/domain/model/order"
	"swiftserve/internal/core/domain/services"
	"swiftserve/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// ErrorResponse is the body returned for every failed request.
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// writeError translates application and domain errors into HTTP responses.
// Ordering matters: a missing order reads as 404 even when the caller also
// lacks permission, and a typed transition failure reads as 409.
func writeError(ctx echo.Context, err error) error {
	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		return writeErrorStatus(ctx, http.StatusNotFound, err)
	case errors.Is(err, services.ErrUnauthorized):
		return writeErrorStatus(ctx, http.StatusForbidden, err)
	case errors.Is(err, ErrNoSession):
		return writeErrorStatus(ctx, http.StatusUnauthorized, err)
	case errors.Is(err, order.ErrAlreadyClaimed),
		errors.Is(err, order.ErrInvalidTransition):
		return writeErrorStatus(ctx, http.StatusConflict, err)
	case errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		return writeErrorStatus(ctx, http.StatusBadRequest, err)
	default:
		return ctx.JSON(http.StatusInternalServerError, ErrorResponse{
			Code:    http.StatusInternalServerError,
			Message: "internal server error",
		})
	}
}

func writeErrorStatus(ctx echo.Context, status int, err error) error {
	return ctx.JSON(status, ErrorResponse{Code: status, Message: err.Error()})
}

func writeBadRequest(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusBadRequest, ErrorResponse{
		Code:    http.StatusBadRequest,
		Message: message,
	})
}

// PlaceOrderRequest is the checkout payload. Line items carry menu snapshots
// so the order keeps its priced contents even if the menu changes later.
type PlaceOrderRequest struct {
	RestaurantID    string             `json:"restaurant_id"`
	Lines           []OrderLineRequest `json:"lines"`
	DeliveryName    string             `json:"delivery_name"`
	DeliveryPhone   string             `json:"delivery_phone"`
	DeliveryAddress string             `json:"delivery_address"`
}

// OrderLineRequest is one cart line in a checkout payload.
type OrderLineRequest struct {
	MenuItemID     string `json:"menu_item_id"`
	Name           string `json:"name"`
	UnitPriceCents int64  `json:"unit_price_cents"`
	Quantity       int    `json:"quantity"`
}

// PlaceOrderResponse returns the identifier of the newly created order.
type PlaceOrderResponse struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}

// UpdateStatusRequest carries the requested target status by its wire name,
// e.g. "Preparing" or "Out for Delivery".
type UpdateStatusRequest struct {
	Status string `json:"status"`
}

// StatusTransitionResponse reports the applied transition.
type StatusTransitionResponse struct {
	OrderID  string `json:"order_id"`
	Previous string `json:"previous"`
	Status   string `json:"status"`
}

// ClaimResponse reports a successful claim.
type ClaimResponse struct {
	OrderID string `json:"order_id"`
	Status  string `json:"status"`
	AgentID string `json:"agent_id"`
}

// OrderSummaryResponse is one row in a customer's order history.
type OrderSummaryResponse struct {
	ID             string    `json:"id"`
	RestaurantName string    `json:"restaurant_name"`
	Status         string    `json:"status"`
	TotalCents     int64     `json:"total_cents"`
	CreatedAt      time.Time `json:"created_at"`
}

// RestaurantOrderResponse is one order on the kitchen dashboard.
type RestaurantOrderResponse struct {
	ID              string    `json:"id"`
	Status          string    `json:"status"`
	TotalCents      int64     `json:"total_cents"`
	DeliveryName    string    `json:"delivery_name"`
	DeliveryAddress string    `json:"delivery_address"`
	CreatedAt       time.Time `json:"created_at"`
}

// AvailableOrderResponse is one claimable order in the agent's feed.
type AvailableOrderResponse struct {
	ID                string    `json:"id"`
	RestaurantName    string    `json:"restaurant_name"`
	RestaurantAddress string    `json:"restaurant_address"`
	DeliveryAddress   string    `json:"delivery_address"`
	TotalCents        int64     `json:"total_cents"`
	CreatedAt         time.Time `json:"created_at"`
}

// AgentOrderResponse is one row in an agent's active or delivered list.
type AgentOrderResponse struct {
	ID                string    `json:"id"`
	RestaurantName    string    `json:"restaurant_name"`
	RestaurantAddress string    `json:"restaurant_address"`
	DeliveryAddress   string    `json:"delivery_address"`
	Status            string    `json:"status"`
	TotalCents        int64     `json:"total_cents"`
	CreatedAt         time.Time `json:"created_at"`
}

// OrderDetailsResponse is the full view of a single order.
type OrderDetailsResponse struct {
	ID                string              `json:"id"`
	Status            string              `json:"status"`
	RestaurantName    string              `json:"restaurant_name"`
	RestaurantAddress string              `json:"restaurant_address"`
	AgentID           *string             `json:"agent_id,omitempty"`
	DeliveryName      string              `json:"delivery_name"`
	DeliveryPhone     string              `json:"delivery_phone"`
	DeliveryAddress   string              `json:"delivery_address"`
	TotalCents        int64               `json:"total_cents"`
	CreatedAt         time.Time           `json:"created_at"`
	Lines             []OrderLineResponse `json:"lines"`
}

// OrderLineResponse is one line-item snapshot in the detail view.
type OrderLineResponse struct {
	Name           string `json:"name"`
	UnitPriceCents int64  `json:"unit_price_cents"`
	Quantity       int    `json:"quantity"`
	SubtotalCents  int64  `json:"subtotal_cents"`
}

func toOrderDetailsResponse(resp queries.GetOrderDetailsQueryResponse) OrderDetailsResponse {
	out := OrderDetailsResponse{
		ID:                resp.ID.String(),
		Status:            resp.Status.String(),
		RestaurantName:    resp.RestaurantName,
		RestaurantAddress: resp.RestaurantAddress,
		DeliveryName:      resp.DeliveryName,
		DeliveryPhone:     resp.DeliveryPhone,
		DeliveryAddress:   resp.DeliveryAddress,
		TotalCents:        resp.Total.Cents(),
		CreatedAt:         resp.CreatedAt,
		Lines:             make([]OrderLineResponse, len(resp.Lines)),
	}
	if resp.AgentID != nil {
		agentID := resp.AgentID.String()
		out.AgentID = &agentID
	}
	for i, line := range resp.Lines {
		out.Lines[i] = OrderLineResponse{
			Name:           line.Name,
			UnitPriceCents: line.UnitPrice.Cents(),
			Quantity:       line.Quantity,
			SubtotalCents:  line.Subtotal.Cents(),
		}
	}
	return out
}
