package http

import (
	"net/http"

	"swiftserve/internal/adapters/in/ws"
	"swiftserve/internal/core/application/usecases/commands"
	"swiftserve/internal/core/application/usecases/queries"
	"swiftserve/internal/core/domain/model/kernel"
	"swiftserve/internal/core/domain/model/order"

	"github.com/labstack/echo/v4"
)

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	// Command handlers
	placeOrderHandler        commands.PlaceOrderCommandHandler
	updateOrderStatusHandler commands.UpdateOrderStatusCommandHandler
	claimOrderHandler        commands.ClaimOrderCommandHandler

	// Query handlers
	getCustomerOrdersHandler   queries.GetCustomerOrdersQueryHandler
	getRestaurantOrdersHandler queries.GetRestaurantOrdersQueryHandler
	getOrderDetailsHandler     queries.GetOrderDetailsQueryHandler
	getAvailableOrdersHandler  queries.GetAvailableOrdersQueryHandler
	getAgentOrdersHandler      queries.GetAgentOrdersQueryHandler

	hub *ws.Hub
}

// NewServer creates a new HTTP server with the required command and query handlers.
func NewServer(
	placeOrderHandler commands.PlaceOrderCommandHandler,
	updateOrderStatusHandler commands.UpdateOrderStatusCommandHandler,
	claimOrderHandler commands.ClaimOrderCommandHandler,
	getCustomerOrdersHandler queries.GetCustomerOrdersQueryHandler,
	getRestaurantOrdersHandler queries.GetRestaurantOrdersQueryHandler,
	getOrderDetailsHandler queries.GetOrderDetailsQueryHandler,
	getAvailableOrdersHandler queries.GetAvailableOrdersQueryHandler,
	getAgentOrdersHandler queries.GetAgentOrdersQueryHandler,
	hub *ws.Hub,
) *Server {
	return &Server{
		placeOrderHandler:          placeOrderHandler,
		updateOrderStatusHandler:   updateOrderStatusHandler,
		claimOrderHandler:          claimOrderHandler,
		getCustomerOrdersHandler:   getCustomerOrdersHandler,
		getRestaurantOrdersHandler: getRestaurantOrdersHandler,
		getOrderDetailsHandler:     getOrderDetailsHandler,
		getAvailableOrdersHandler:  getAvailableOrdersHandler,
		getAgentOrdersHandler:      getAgentOrdersHandler,
		hub:                        hub,
	}
}

// RegisterRoutes mounts all routes. Everything except the health check sits
// behind the session gate; the websocket endpoint shares it so connections
// are tied to an authenticated account. The rate limiter runs after the gate
// so throttling keys on the authenticated account rather than the caller's
// address.
func (s *Server) RegisterRoutes(e *echo.Echo, gate *SessionGate, limiter *RateLimiter) {
	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	})

	authed := e.Group("", gate.Middleware(), limiter.Middleware())
	authed.GET("/ws", s.ServeWebsocket)

	api := authed.Group("/api/v1")
	api.POST("/orders", s.PlaceOrder)
	api.GET("/orders", s.GetCustomerOrders)
	api.GET("/orders/:id", s.GetOrderDetails)
	api.POST("/orders/:id/status", s.UpdateOrderStatus)
	api.POST("/orders/:id/accept", s.statusShortcut(order.Preparing))
	api.POST("/orders/:id/reject", s.statusShortcut(order.Rejected))
	api.POST("/orders/:id/ready", s.statusShortcut(order.Ready))
	api.POST("/orders/:id/deliver", s.statusShortcut(order.Delivered))
	api.POST("/orders/:id/claim", s.ClaimOrder)
	api.GET("/restaurant/orders", s.GetRestaurantOrders)
	api.GET("/agent/available", s.GetAvailableOrders)
	api.GET("/agent/orders", s.GetAgentOrders)
}

// ServeWebsocket upgrades the request and hands the connection to the hub.
func (s *Server) ServeWebsocket(ctx echo.Context) error {
	return s.hub.ServeConnection(ctx.Response(), ctx.Request())
}

// PlaceOrder handles POST /api/v1/orders - a customer checks out a cart.
func (s *Server) PlaceOrder(ctx echo.Context) error {
	actor, err := ActorFrom(ctx)
	if err != nil {
		return writeError(ctx, err)
	}

	var req PlaceOrderRequest
	if err := ctx.Bind(&req); err != nil {
		return writeBadRequest(ctx, "Invalid request body")
	}

	restaurantID, err := kernel.UUIDFromString(req.RestaurantID)
	if err != nil {
		return writeBadRequest(ctx, "Invalid restaurant id")
	}

	lines := make([]order.LineItem, 0, len(req.Lines))
	for _, l := range req.Lines {
		menuItemID, err := kernel.UUIDFromString(l.MenuItemID)
		if err != nil {
			return writeBadRequest(ctx, "Invalid menu item id")
		}
		unitPrice, err := kernel.NewMoney(l.UnitPriceCents)
		if err != nil {
			return writeBadRequest(ctx, "Invalid unit price: "+err.Error())
		}
		line, err := order.NewLineItem(menuItemID, l.Name, unitPrice, l.Quantity)
		if err != nil {
			return writeBadRequest(ctx, "Invalid line item: "+err.Error())
		}
		lines = append(lines, line)
	}

	orderID := kernel.NewUUID()
	cmd, err := commands.NewPlaceOrderCommand(orderID, actor, restaurantID, lines,
		req.DeliveryName, req.DeliveryPhone, req.DeliveryAddress)
	if err != nil {
		return writeBadRequest(ctx, "Invalid order data: "+err.Error())
	}

	if err := s.placeOrderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, PlaceOrderResponse{
		ID:     orderID.String(),
		Status: order.Placed.String(),
	})
}

// UpdateOrderStatus handles POST /api/v1/orders/:id/status - the generic
// transition endpoint. The target status travels in the body by wire name.
func (s *Server) UpdateOrderStatus(ctx echo.Context) error {
	var req UpdateStatusRequest
	if err := ctx.Bind(&req); err != nil {
		return writeBadRequest(ctx, "Invalid request body")
	}

	requested, err := order.ParseStatus(req.Status)
	if err != nil {
		return writeBadRequest(ctx, "Unknown status: "+req.Status)
	}

	return s.applyTransition(ctx, requested)
}

// statusShortcut builds a handler for the role-specific action endpoints
// (accept, reject, ready, deliver), which are sugar over the generic one.
func (s *Server) statusShortcut(target order.Status) echo.HandlerFunc {
	return func(ctx echo.Context) error {
		return s.applyTransition(ctx, target)
	}
}

func (s *Server) applyTransition(ctx echo.Context, requested order.Status) error {
	actor, err := ActorFrom(ctx)
	if err != nil {
		return writeError(ctx, err)
	}

	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return writeBadRequest(ctx, "Invalid order id")
	}

	cmd, err := commands.NewUpdateOrderStatusCommand(orderID, actor, requested)
	if err != nil {
		return writeError(ctx, err)
	}

	transition, err := s.updateOrderStatusHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, StatusTransitionResponse{
		OrderID:  orderID.String(),
		Previous: transition.Previous.String(),
		Status:   transition.New.String(),
	})
}

// ClaimOrder handles POST /api/v1/orders/:id/claim - an agent claims a Ready
// order. At most one agent wins a contested claim; the rest get 409.
func (s *Server) ClaimOrder(ctx echo.Context) error {
	actor, err := ActorFrom(ctx)
	if err != nil {
		return writeError(ctx, err)
	}

	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return writeBadRequest(ctx, "Invalid order id")
	}

	cmd, err := commands.NewClaimOrderCommand(orderID, actor)
	if err != nil {
		return writeError(ctx, err)
	}

	claimed, err := s.claimOrderHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, ClaimResponse{
		OrderID: claimed.ID().String(),
		Status:  claimed.Status().String(),
		AgentID: actor.ID().String(),
	})
}

// GetCustomerOrders handles GET /api/v1/orders - the caller's order history.
func (s *Server) GetCustomerOrders(ctx echo.Context) error {
	actor, err := ActorFrom(ctx)
	if err != nil {
		return writeError(ctx, err)
	}

	query, err := queries.NewGetCustomerOrdersQuery(actor.ID())
	if err != nil {
		return writeError(ctx, err)
	}

	orders, err := s.getCustomerOrdersHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	response := make([]OrderSummaryResponse, len(orders))
	for i, o := range orders {
		response[i] = OrderSummaryResponse{
			ID:             o.ID.String(),
			RestaurantName: o.RestaurantName,
			Status:         o.Status.String(),
			TotalCents:     o.Total.Cents(),
			CreatedAt:      o.CreatedAt,
		}
	}
	return ctx.JSON(http.StatusOK, response)
}

// GetRestaurantOrders handles GET /api/v1/restaurant/orders - the kitchen
// dashboard list for the restaurant the caller owns.
func (s *Server) GetRestaurantOrders(ctx echo.Context) error {
	actor, err := ActorFrom(ctx)
	if err != nil {
		return writeError(ctx, err)
	}

	query, err := queries.NewGetRestaurantOrdersQuery(actor.ID())
	if err != nil {
		return writeError(ctx, err)
	}

	orders, err := s.getRestaurantOrdersHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	response := make([]RestaurantOrderResponse, len(orders))
	for i, o := range orders {
		response[i] = RestaurantOrderResponse{
			ID:              o.ID.String(),
			Status:          o.Status.String(),
			TotalCents:      o.Total.Cents(),
			DeliveryName:    o.DeliveryName,
			DeliveryAddress: o.DeliveryAddress,
			CreatedAt:       o.CreatedAt,
		}
	}
	return ctx.JSON(http.StatusOK, response)
}

// GetOrderDetails handles GET /api/v1/orders/:id - the full order view,
// visible to its customer, its restaurant owner, and its (or any candidate)
// agent.
func (s *Server) GetOrderDetails(ctx echo.Context) error {
	actor, err := ActorFrom(ctx)
	if err != nil {
		return writeError(ctx, err)
	}

	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return writeBadRequest(ctx, "Invalid order id")
	}

	query, err := queries.NewGetOrderDetailsQuery(orderID, actor)
	if err != nil {
		return writeError(ctx, err)
	}

	details, err := s.getOrderDetailsHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, toOrderDetailsResponse(details))
}

// GetAvailableOrders handles GET /api/v1/agent/available - the polling
// fallback for agents who want the current claimable set without a socket.
func (s *Server) GetAvailableOrders(ctx echo.Context) error {
	query := queries.NewGetAvailableOrdersQuery()

	orders, err := s.getAvailableOrdersHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	response := make([]AvailableOrderResponse, len(orders))
	for i, o := range orders {
		response[i] = AvailableOrderResponse{
			ID:                o.ID.String(),
			RestaurantName:    o.RestaurantName,
			RestaurantAddress: o.RestaurantAddress,
			DeliveryAddress:   o.DeliveryAddress,
			TotalCents:        o.Total.Cents(),
			CreatedAt:         o.CreatedAt,
		}
	}
	return ctx.JSON(http.StatusOK, response)
}

// GetAgentOrders handles GET /api/v1/agent/orders?scope=active|history -
// the caller's in-flight deliveries or completed ones.
func (s *Server) GetAgentOrders(ctx echo.Context) error {
	actor, err := ActorFrom(ctx)
	if err != nil {
		return writeError(ctx, err)
	}

	scope, err := parseAgentScope(ctx.QueryParam("scope"))
	if err != nil {
		return writeBadRequest(ctx, "Unknown scope: "+ctx.QueryParam("scope"))
	}

	query, err := queries.NewGetAgentOrdersQuery(actor.ID(), scope)
	if err != nil {
		return writeError(ctx, err)
	}

	orders, err := s.getAgentOrdersHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	response := make([]AgentOrderResponse, len(orders))
	for i, o := range orders {
		response[i] = AgentOrderResponse{
			ID:                o.ID.String(),
			RestaurantName:    o.RestaurantName,
			RestaurantAddress: o.RestaurantAddress,
			DeliveryAddress:   o.DeliveryAddress,
			Status:            o.Status.String(),
			TotalCents:        o.Total.Cents(),
			CreatedAt:         o.CreatedAt,
		}
	}
	return ctx.JSON(http.StatusOK, response)
}

func parseAgentScope(raw string) (queries.AgentOrdersScope, error) {
	switch raw {
	case "", "active":
		return queries.AgentOrdersActive, nil
	case "history":
		return queries.AgentOrdersHistory, nil
	default:
		return 0, echo.ErrBadRequest
	}
}
