// Package http exposes the REST and websocket surface of the tracking
// service. It coordinates between echo handlers and the application's
// command and query use cases; no business rules live here.
package http

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"tracking/internal/adapters/out/ws"
	"tracking/internal/core/application/usecases/commands"
	"tracking/internal/core/application/usecases/queries"
	"tracking/internal/core/domain/model/account"
	"tracking/internal/core/domain/model/kernel"
	"tracking/internal/core/domain/model/order"
	"tracking/internal/pkg/errs"
	"tracking/internal/pkg/token"

	"github.com/labstack/echo/v4"
	echoSwagger "github.com/swaggo/echo-swagger"
)

// dateLayout is the wire format of the from_date/to_date listing filters.
const dateLayout = "2006-01-02"

// Server wires HTTP requests to command and query handlers.
type Server struct {
	createOrderHandler  commands.CreateOrderCommandHandler
	changeStatusHandler commands.ChangeOrderStatusCommandHandler
	registerUserHandler commands.RegisterUserCommandHandler

	getOrderHandler     queries.GetOrderQueryHandler
	listOrdersHandler   queries.ListOrdersQueryHandler
	getHistoryHandler   queries.GetOrderHistoryQueryHandler
	listStatusesHandler queries.ListStatusesQueryHandler
	authenticateHandler queries.AuthenticateUserQueryHandler

	tokens         *token.Service
	hub            *ws.Hub
	auth           *AuthMiddleware
	deliveryAPIKey string
}

// NewServer creates the HTTP server facade over the application layer.
func NewServer(
	createOrderHandler commands.CreateOrderCommandHandler,
	changeStatusHandler commands.ChangeOrderStatusCommandHandler,
	registerUserHandler commands.RegisterUserCommandHandler,
	getOrderHandler queries.GetOrderQueryHandler,
	listOrdersHandler queries.ListOrdersQueryHandler,
	getHistoryHandler queries.GetOrderHistoryQueryHandler,
	listStatusesHandler queries.ListStatusesQueryHandler,
	authenticateHandler queries.AuthenticateUserQueryHandler,
	tokens *token.Service,
	hub *ws.Hub,
	deliveryAPIKey string,
) *Server {
	return &Server{
		createOrderHandler:  createOrderHandler,
		changeStatusHandler: changeStatusHandler,
		registerUserHandler: registerUserHandler,
		getOrderHandler:     getOrderHandler,
		listOrdersHandler:   listOrdersHandler,
		getHistoryHandler:   getHistoryHandler,
		listStatusesHandler: listStatusesHandler,
		authenticateHandler: authenticateHandler,
		tokens:              tokens,
		hub:                 hub,
		auth:                NewAuthMiddleware(tokens),
		deliveryAPIKey:      deliveryAPIKey,
	}
}

// RegisterRoutes mounts every endpoint on the echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	e.GET("/health", s.Health)
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	e.POST("/users", s.RegisterUser)
	e.POST("/login", s.Login)

	authed := e.Group("", s.auth.RequireUser)
	authed.GET("/orders", s.ListOrders)
	authed.GET("/orders/:order_id", s.GetOrder)
	authed.GET("/orders/:order_id/history", s.GetOrderHistory)
	authed.GET("/order-statuses", s.ListStatuses)

	authed.POST("/orders", s.CreateOrder, s.auth.RequireRole(account.RoleMerchant))
	authed.PUT("/orders/:order_id/status", s.ChangeOrderStatus,
		s.auth.RequireRole(account.RoleOperationsTeam))

	e.PUT("/delivery/orders/:order_id/status", s.DeliveryChangeOrderStatus,
		RequireAPIKey(s.deliveryAPIKey))

	e.GET("/ws/orders", s.SubscribeOrders)
}

// errorResponse is the stable JSON error body of every endpoint.
type errorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// writeError maps application errors to HTTP statuses. Unrecognized errors
// become a 500 with a fixed message; driver and storage details never reach
// the client.
func writeError(c echo.Context, err error) error {
	var code int
	var message string

	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		code, message = http.StatusNotFound, err.Error()
	case errors.Is(err, errs.ErrObjectAlreadyExists):
		code, message = http.StatusConflict, err.Error()
	case errors.Is(err, order.ErrInvalidTransition):
		code, message = http.StatusBadRequest, err.Error()
	case errors.Is(err, queries.ErrAccessDenied):
		code, message = http.StatusForbidden, err.Error()
	case errors.Is(err, queries.ErrInvalidCredentials):
		code, message = http.StatusUnauthorized, err.Error()
	case errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		code, message = http.StatusBadRequest, err.Error()
	default:
		code, message = http.StatusInternalServerError, "internal server error"
	}

	return c.JSON(code, errorResponse{Code: code, Message: message})
}

// Health godoc
//
//	@Summary	Service liveness probe
//	@Tags		system
//	@Success	200	{string}	string	"Healthy"
//	@Router		/health [get]
func (s *Server) Health(c echo.Context) error {
	return c.String(http.StatusOK, "Healthy")
}

type registerUserRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

type registerUserResponse struct {
	Username string `json:"username"`
	Role     string `json:"role"`
}

// RegisterUser godoc
//
//	@Summary	Register a user account
//	@Tags		auth
//	@Accept		json
//	@Produce	json
//	@Param		user	body		registerUserRequest	true	"account to create"
//	@Success	201		{object}	registerUserResponse
//	@Failure	400		{object}	errorResponse
//	@Failure	409		{object}	errorResponse
//	@Router		/users [post]
func (s *Server) RegisterUser(c echo.Context) error {
	var req registerUserRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{
			Code:    http.StatusBadRequest,
			Message: "invalid request body",
		})
	}

	role, err := account.ParseRole(req.Role)
	if err != nil {
		return writeError(c, err)
	}

	cmd, err := commands.NewRegisterUserCommand(req.Username, req.Password, role)
	if err != nil {
		return writeError(c, err)
	}

	if err = s.registerUserHandler.Handle(c.Request().Context(), cmd); err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusCreated, registerUserResponse{
		Username: req.Username,
		Role:     role.String(),
	})
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	Username    string `json:"username"`
	Role        string `json:"role"`
}

// Login godoc
//
//	@Summary	Exchange credentials for a bearer token
//	@Tags		auth
//	@Accept		json
//	@Produce	json
//	@Param		credentials	body		loginRequest	true	"login credentials"
//	@Success	200			{object}	loginResponse
//	@Failure	401			{object}	errorResponse
//	@Router		/login [post]
func (s *Server) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{
			Code:    http.StatusBadRequest,
			Message: "invalid request body",
		})
	}

	query, err := queries.NewAuthenticateUserQuery(req.Username, req.Password)
	if err != nil {
		return writeError(c, err)
	}

	identity, err := s.authenticateHandler.Handle(c.Request().Context(), query)
	if err != nil {
		return writeError(c, err)
	}

	accessToken, err := s.tokens.Issue(identity.Username, identity.Role)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, loginResponse{
		AccessToken: accessToken,
		TokenType:   "bearer",
		Username:    identity.Username,
		Role:        identity.Role,
	})
}

type customerRequest struct {
	Name    string `json:"name"`
	Contact string `json:"contact"`
	Address string `json:"address"`
}

type createOrderRequest struct {
	OrderID     string          `json:"order_id"`
	ProductName string          `json:"product_name"`
	Customer    customerRequest `json:"customer"`
}

type orderResponse struct {
	OrderID         string    `json:"order_id"`
	ProductName     string    `json:"product_name"`
	CustomerName    string    `json:"customer_name"`
	CustomerContact string    `json:"customer_contact"`
	CustomerAddress string    `json:"customer_address"`
	MerchantName    string    `json:"merchant_name"`
	Status          string    `json:"status"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// CreateOrder godoc
//
//	@Summary	Register a new delivery order
//	@Tags		orders
//	@Accept		json
//	@Produce	json
//	@Param		order	body		createOrderRequest	true	"order to create"
//	@Success	201		{object}	orderResponse
//	@Failure	400		{object}	errorResponse
//	@Failure	409		{object}	errorResponse
//	@Security	BearerAuth
//	@Router		/orders [post]
func (s *Server) CreateOrder(c echo.Context) error {
	principal, ok := principalFrom(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, errorResponse{
			Code:    http.StatusUnauthorized,
			Message: "missing bearer token",
		})
	}

	var req createOrderRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{
			Code:    http.StatusBadRequest,
			Message: "invalid request body",
		})
	}

	orderID, err := kernel.NewOrderID(req.OrderID)
	if err != nil {
		return writeError(c, err)
	}

	customer, err := kernel.NewCustomer(req.Customer.Name, req.Customer.Contact, req.Customer.Address)
	if err != nil {
		return writeError(c, err)
	}

	cmd, err := commands.NewCreateOrderCommand(orderID, req.ProductName, customer, principal.Identity)
	if err != nil {
		return writeError(c, err)
	}

	created, err := s.createOrderHandler.Handle(c.Request().Context(), cmd)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusCreated, orderResponse{
		OrderID:         created.ID().String(),
		ProductName:     created.ProductName(),
		CustomerName:    created.Customer().Name(),
		CustomerContact: created.Customer().Contact(),
		CustomerAddress: created.Customer().Address(),
		MerchantName:    created.MerchantName(),
		Status:          created.Status().String(),
		CreatedAt:       created.CreatedAt(),
		UpdatedAt:       created.UpdatedAt(),
	})
}

// ListOrders godoc
//
//	@Summary	List orders with filters and pagination
//	@Tags		orders
//	@Produce	json
//	@Param		status			query		string	false	"active or an exact status"
//	@Param		merchant		query		string	false	"merchant filter (operations only)"
//	@Param		customer_contact	query	string	false	"customer contact filter"
//	@Param		from_date		query		string	false	"YYYY-MM-DD"
//	@Param		to_date			query		string	false	"YYYY-MM-DD, inclusive"
//	@Param		skip			query		int		false	"offset"
//	@Param		limit			query		int		false	"page size, max 100"
//	@Success	200				{array}		orderResponse
//	@Failure	400				{object}	errorResponse
//	@Security	BearerAuth
//	@Router		/orders [get]
func (s *Server) ListOrders(c echo.Context) error {
	principal, ok := principalFrom(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, errorResponse{
			Code:    http.StatusUnauthorized,
			Message: "missing bearer token",
		})
	}

	filter, err := listFilterFromRequest(c)
	if err != nil {
		return writeError(c, err)
	}

	query, err := queries.NewListOrdersQuery(principal, filter)
	if err != nil {
		return writeError(c, err)
	}

	result, err := s.listOrdersHandler.Handle(c.Request().Context(), query)
	if err != nil {
		return writeError(c, err)
	}

	response := make([]orderResponse, 0, len(result))
	for _, o := range result {
		response = append(response, orderResponse(o))
	}

	return c.JSON(http.StatusOK, response)
}

// GetOrder godoc
//
//	@Summary	Get one order's current state
//	@Tags		orders
//	@Produce	json
//	@Param		order_id	path		string	true	"order identifier"
//	@Success	200			{object}	orderResponse
//	@Failure	403			{object}	errorResponse
//	@Failure	404			{object}	errorResponse
//	@Security	BearerAuth
//	@Router		/orders/{order_id} [get]
func (s *Server) GetOrder(c echo.Context) error {
	principal, ok := principalFrom(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, errorResponse{
			Code:    http.StatusUnauthorized,
			Message: "missing bearer token",
		})
	}

	orderID, err := kernel.NewOrderID(c.Param("order_id"))
	if err != nil {
		return writeError(c, err)
	}

	query, err := queries.NewGetOrderQuery(orderID, principal)
	if err != nil {
		return writeError(c, err)
	}

	result, err := s.getOrderHandler.Handle(c.Request().Context(), query)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, orderResponse(result))
}

type historyRecordResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	UpdatedBy string    `json:"updated_by"`
	Source    string    `json:"source"`
}

// GetOrderHistory godoc
//
//	@Summary	Get an order's status history, oldest first
//	@Tags		orders
//	@Produce	json
//	@Param		order_id	path		string	true	"order identifier"
//	@Success	200			{array}		historyRecordResponse
//	@Failure	403			{object}	errorResponse
//	@Failure	404			{object}	errorResponse
//	@Security	BearerAuth
//	@Router		/orders/{order_id}/history [get]
func (s *Server) GetOrderHistory(c echo.Context) error {
	principal, ok := principalFrom(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, errorResponse{
			Code:    http.StatusUnauthorized,
			Message: "missing bearer token",
		})
	}

	orderID, err := kernel.NewOrderID(c.Param("order_id"))
	if err != nil {
		return writeError(c, err)
	}

	query, err := queries.NewGetOrderHistoryQuery(orderID, principal)
	if err != nil {
		return writeError(c, err)
	}

	records, err := s.getHistoryHandler.Handle(c.Request().Context(), query)
	if err != nil {
		return writeError(c, err)
	}

	response := make([]historyRecordResponse, 0, len(records))
	for _, record := range records {
		response = append(response, historyRecordResponse(record))
	}

	return c.JSON(http.StatusOK, response)
}

type changeStatusRequest struct {
	Status string `json:"status"`
}

type changeStatusResponse struct {
	OrderID   string    `json:"order_id"`
	OldStatus string    `json:"old_status"`
	NewStatus string    `json:"new_status"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ChangeOrderStatus godoc
//
//	@Summary	Move an order to a new status (operations channel)
//	@Tags		orders
//	@Accept		json
//	@Produce	json
//	@Param		order_id	path		string				true	"order identifier"
//	@Param		status		body		changeStatusRequest	true	"target status"
//	@Success	200			{object}	changeStatusResponse
//	@Failure	400			{object}	errorResponse
//	@Failure	404			{object}	errorResponse
//	@Security	BearerAuth
//	@Router		/orders/{order_id}/status [put]
func (s *Server) ChangeOrderStatus(c echo.Context) error {
	principal, ok := principalFrom(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, errorResponse{
			Code:    http.StatusUnauthorized,
			Message: "missing bearer token",
		})
	}

	return s.applyStatusChange(c, principal.Identity, order.SourceOperations)
}

type deliveryChangeStatusRequest struct {
	Status     string `json:"status"`
	DeliveryID string `json:"delivery_id"`
}

// DeliveryChangeOrderStatus godoc
//
//	@Summary	Move an order to a new status (delivery channel)
//	@Tags		delivery
//	@Accept		json
//	@Produce	json
//	@Param		order_id	path		string						true	"order identifier"
//	@Param		update		body		deliveryChangeStatusRequest	true	"target status and agent"
//	@Success	200			{object}	changeStatusResponse
//	@Failure	400			{object}	errorResponse
//	@Failure	401			{object}	errorResponse
//	@Failure	404			{object}	errorResponse
//	@Router		/delivery/orders/{order_id}/status [put]
func (s *Server) DeliveryChangeOrderStatus(c echo.Context) error {
	var req deliveryChangeStatusRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{
			Code:    http.StatusBadRequest,
			Message: "invalid request body",
		})
	}

	return s.changeStatus(c, req.Status, req.DeliveryID, order.SourceDelivery)
}

func (s *Server) applyStatusChange(c echo.Context, actor string, source order.Source) error {
	var req changeStatusRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{
			Code:    http.StatusBadRequest,
			Message: "invalid request body",
		})
	}

	return s.changeStatus(c, req.Status, actor, source)
}

// changeStatus funnels both entry channels into the one transition command.
// The channels differ only in the actor identity and the source tag.
func (s *Server) changeStatus(c echo.Context, rawStatus, actor string, source order.Source) error {
	orderID, err := kernel.NewOrderID(c.Param("order_id"))
	if err != nil {
		return writeError(c, err)
	}

	newStatus, err := order.ParseStatus(rawStatus)
	if err != nil {
		return writeError(c, err)
	}

	cmd, err := commands.NewChangeOrderStatusCommand(orderID, newStatus, actor, source)
	if err != nil {
		return writeError(c, err)
	}

	result, err := s.changeStatusHandler.Handle(c.Request().Context(), cmd)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, changeStatusResponse{
		OrderID:   orderID.String(),
		OldStatus: result.OldStatus.String(),
		NewStatus: result.NewStatus.String(),
		UpdatedAt: result.UpdatedAt,
	})
}

type statusListResponse struct {
	Statuses []string `json:"statuses"`
}

// ListStatuses godoc
//
//	@Summary	List every order status in lifecycle order
//	@Tags		orders
//	@Produce	json
//	@Success	200	{object}	statusListResponse
//	@Security	BearerAuth
//	@Router		/order-statuses [get]
func (s *Server) ListStatuses(c echo.Context) error {
	statuses, err := s.listStatusesHandler.Handle(c.Request().Context(), queries.NewListStatusesQuery())
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, statusListResponse{Statuses: statuses})
}

// listFilterFromRequest parses the listing query parameters.
func listFilterFromRequest(c echo.Context) (queries.ListOrdersFilter, error) {
	filter := queries.ListOrdersFilter{
		Status:          c.QueryParam("status"),
		Merchant:        c.QueryParam("merchant"),
		CustomerContact: c.QueryParam("customer_contact"),
	}

	if raw := c.QueryParam("from_date"); raw != "" {
		parsed, err := time.Parse(dateLayout, raw)
		if err != nil {
			return queries.ListOrdersFilter{}, errs.NewValueIsInvalidErrorWithCause("from_date", err)
		}
		filter.FromDate = &parsed
	}

	if raw := c.QueryParam("to_date"); raw != "" {
		parsed, err := time.Parse(dateLayout, raw)
		if err != nil {
			return queries.ListOrdersFilter{}, errs.NewValueIsInvalidErrorWithCause("to_date", err)
		}
		filter.ToDate = &parsed
	}

	var err error
	if filter.Skip, err = intQueryParam(c, "skip"); err != nil {
		return queries.ListOrdersFilter{}, err
	}
	if filter.Limit, err = intQueryParam(c, "limit"); err != nil {
		return queries.ListOrdersFilter{}, err
	}

	return filter, nil
}

func intQueryParam(c echo.Context, name string) (int, error) {
	raw := c.QueryParam(name)
	if raw == "" {
		return 0, nil
	}

	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, errs.NewValueIsInvalidErrorWithCause(name, err)
	}
	return value, nil
}
