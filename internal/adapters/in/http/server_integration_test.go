package http_test

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	tracking_http "tracking/internal/adapters/in/http"
	postgres_adapter "tracking/internal/adapters/out/postgres"
	"tracking/internal/adapters/out/postgres/historyrepo"
	"tracking/internal/adapters/out/postgres/orderrepo"
	"tracking/internal/adapters/out/postgres/userrepo"
	"tracking/internal/adapters/out/ws"
	"tracking/internal/core/application/usecases/commands"
	"tracking/internal/core/application/usecases/queries"
	"tracking/internal/pkg/keylock"
	"tracking/internal/pkg/token"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	_ "github.com/lib/pq"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

const testDeliveryAPIKey = "delivery-test-key"

type orderUoWFactory struct{ inner *postgres_adapter.GormUnitOfWorkFactory }

func (f orderUoWFactory) Create() commands.OrderUoW { return f.inner.Create() }

type userUoWFactory struct{ inner *postgres_adapter.GormUnitOfWorkFactory }

func (f userUoWFactory) Create() commands.UserUoW { return f.inner.Create() }

// ServerIntegrationTestSuite drives the whole service through its HTTP and
// websocket surface against a real PostgreSQL instance.
type ServerIntegrationTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
	server    *httptest.Server
}

func (suite *ServerIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2)),
	)
	suite.Require().NoError(err)
	suite.container = container

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	sqlDB, err := sql.Open("postgres", dsn)
	suite.Require().NoError(err)

	db, err := gorm.Open(gorm_postgres.New(gorm_postgres.Config{Conn: sqlDB}), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	err = db.AutoMigrate(&orderrepo.OrderDTO{}, &historyrepo.HistoryRecordDTO{}, &userrepo.UserDTO{})
	suite.Require().NoError(err)

	tokens, err := token.NewService("integration-secret", time.Hour)
	suite.Require().NoError(err)

	hub := ws.NewHub(slog.New(slog.NewTextHandler(io.Discard, nil)))
	uowFactory := postgres_adapter.NewGormUnitOfWorkFactory(db)

	server := tracking_http.NewServer(
		commands.NewCreateOrderCommandHandler(orderUoWFactory{uowFactory}, hub),
		commands.NewChangeOrderStatusCommandHandler(orderUoWFactory{uowFactory}, hub, keylock.NewKeyedMutex()),
		commands.NewRegisterUserCommandHandler(userUoWFactory{uowFactory}),
		queries.NewGetOrderQueryHandler(db),
		queries.NewListOrdersQueryHandler(db),
		queries.NewGetOrderHistoryQueryHandler(db),
		queries.NewListStatusesQueryHandler(),
		queries.NewAuthenticateUserQueryHandler(db),
		tokens,
		hub,
		testDeliveryAPIKey,
	)

	e := echo.New()
	server.RegisterRoutes(e)
	suite.server = httptest.NewServer(e)
}

func (suite *ServerIntegrationTestSuite) TearDownSuite() {
	if suite.server != nil {
		suite.server.Close()
	}
	if suite.container != nil {
		err := suite.container.Terminate(context.Background())
		suite.Require().NoError(err)
	}
}

func (suite *ServerIntegrationTestSuite) SetupTest() {
	err := suite.db.Exec("TRUNCATE TABLE orders, status_history, users").Error
	suite.Require().NoError(err)

	suite.registerUser("ops1", "ops-pass", "operations_team")
	suite.registerUser("acme", "acme-pass", "merchant")
	suite.registerUser("globex", "globex-pass", "merchant")
}

func (suite *ServerIntegrationTestSuite) doJSON(
	method, path, bearer, apiKey string, body any,
) (int, map[string]any) {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		suite.Require().NoError(err)
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequest(method, suite.server.URL+path, reader)
	suite.Require().NoError(err)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if bearer != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+bearer)
	}
	if apiKey != "" {
		req.Header.Set("X-API-Key", apiKey)
	}

	resp, err := suite.server.Client().Do(req)
	suite.Require().NoError(err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	suite.Require().NoError(err)

	var decoded map[string]any
	if len(raw) > 0 && json.Valid(raw) {
		_ = json.Unmarshal(raw, &decoded)
	}
	return resp.StatusCode, decoded
}

func (suite *ServerIntegrationTestSuite) doJSONList(
	method, path, bearer string,
) (int, []map[string]any) {
	req, err := http.NewRequest(method, suite.server.URL+path, nil)
	suite.Require().NoError(err)
	req.Header.Set(echo.HeaderAuthorization, "Bearer "+bearer)

	resp, err := suite.server.Client().Do(req)
	suite.Require().NoError(err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	suite.Require().NoError(err)

	var decoded []map[string]any
	_ = json.Unmarshal(raw, &decoded)
	return resp.StatusCode, decoded
}

func (suite *ServerIntegrationTestSuite) registerUser(username, password, role string) {
	status, _ := suite.doJSON(http.MethodPost, "/users", "", "", map[string]string{
		"username": username,
		"password": password,
		"role":     role,
	})
	suite.Require().Equal(http.StatusCreated, status)
}

func (suite *ServerIntegrationTestSuite) login(username, password string) string {
	status, body := suite.doJSON(http.MethodPost, "/login", "", "", map[string]string{
		"username": username,
		"password": password,
	})
	suite.Require().Equal(http.StatusOK, status)
	bearer, _ := body["access_token"].(string)
	suite.Require().NotEmpty(bearer)
	return bearer
}

func (suite *ServerIntegrationTestSuite) createOrder(bearer, orderID string) {
	status, body := suite.doJSON(http.MethodPost, "/orders", bearer, "", map[string]any{
		"order_id":     orderID,
		"product_name": "Espresso machine",
		"customer": map[string]string{
			"name":    "Jane Doe",
			"contact": "+12025550142",
			"address": "12 Main St",
		},
	})
	suite.Require().Equal(http.StatusCreated, status, "body: %v", body)
	suite.Require().Equal("created", body["status"])
}

func (suite *ServerIntegrationTestSuite) TestRegisterUser_Duplicate() {
	status, body := suite.doJSON(http.MethodPost, "/users", "", "", map[string]string{
		"username": "acme",
		"password": "other",
		"role":     "merchant",
	})
	suite.Equal(http.StatusConflict, status)
	suite.Contains(body["message"], "already exists")
}

func (suite *ServerIntegrationTestSuite) TestLogin_BadCredentials() {
	status, _ := suite.doJSON(http.MethodPost, "/login", "", "", map[string]string{
		"username": "acme",
		"password": "wrong",
	})
	suite.Equal(http.StatusUnauthorized, status)
}

func (suite *ServerIntegrationTestSuite) TestOrderLifecycle() {
	merchant := suite.login("acme", "acme-pass")
	ops := suite.login("ops1", "ops-pass")

	suite.createOrder(merchant, "ORD-100")

	// Duplicate order id is a conflict.
	status, _ := suite.doJSON(http.MethodPost, "/orders", merchant, "", map[string]any{
		"order_id":     "ORD-100",
		"product_name": "Espresso machine",
		"customer": map[string]string{
			"name":    "Jane Doe",
			"contact": "+12025550142",
			"address": "12 Main St",
		},
	})
	suite.Equal(http.StatusConflict, status)

	// Operations moves the order forward.
	status, body := suite.doJSON(http.MethodPut, "/orders/ORD-100/status", ops, "", map[string]string{
		"status": "picked_up",
	})
	suite.Require().Equal(http.StatusOK, status)
	suite.Equal("created", body["old_status"])
	suite.Equal("picked_up", body["new_status"])

	// Policy rejects skipping in_transit.
	status, body = suite.doJSON(http.MethodPut, "/orders/ORD-100/status", ops, "", map[string]string{
		"status": "delivered",
	})
	suite.Require().Equal(http.StatusBadRequest, status)
	suite.Contains(body["message"], "invalid status transition from picked_up to delivered")

	// The delivery channel moves it to in_transit.
	status, body = suite.doJSON(
		http.MethodPut, "/delivery/orders/ORD-100/status", "", testDeliveryAPIKey,
		map[string]string{"status": "in_transit", "delivery_id": "courier-7"},
	)
	suite.Require().Equal(http.StatusOK, status)
	suite.Equal("in_transit", body["new_status"])

	// The delivery channel is subject to the same transition policy.
	status, _ = suite.doJSON(
		http.MethodPut, "/delivery/orders/ORD-100/status", "", testDeliveryAPIKey,
		map[string]string{"status": "picked_up", "delivery_id": "courier-7"},
	)
	suite.Equal(http.StatusBadRequest, status)

	// The ledger reads as a timeline with actor and source attribution.
	status, history := suite.doJSONList(http.MethodGet, "/orders/ORD-100/history", merchant)
	suite.Require().Equal(http.StatusOK, status)
	suite.Require().Len(history, 3)
	suite.Equal("created", history[0]["status"])
	suite.Equal("system", history[0]["updated_by"])
	suite.Equal("picked_up", history[1]["status"])
	suite.Equal("ops1", history[1]["updated_by"])
	suite.Equal("operations", history[1]["source"])
	suite.Equal("in_transit", history[2]["status"])
	suite.Equal("courier-7", history[2]["updated_by"])
	suite.Equal("delivery", history[2]["source"])
}

func (suite *ServerIntegrationTestSuite) TestCreateOrder_OperationsForbidden() {
	ops := suite.login("ops1", "ops-pass")
	status, _ := suite.doJSON(http.MethodPost, "/orders", ops, "", map[string]any{
		"order_id":     "ORD-1",
		"product_name": "Espresso machine",
		"customer": map[string]string{
			"name":    "Jane Doe",
			"contact": "+12025550142",
			"address": "12 Main St",
		},
	})
	suite.Equal(http.StatusForbidden, status)
}

func (suite *ServerIntegrationTestSuite) TestMerchantCannotTransition() {
	merchant := suite.login("acme", "acme-pass")
	suite.createOrder(merchant, "ORD-1")

	status, _ := suite.doJSON(http.MethodPut, "/orders/ORD-1/status", merchant, "", map[string]string{
		"status": "picked_up",
	})
	suite.Equal(http.StatusForbidden, status)

	// The order is observably unchanged.
	getStatus, body := suite.doJSON(http.MethodGet, "/orders/ORD-1", merchant, "", nil)
	suite.Require().Equal(http.StatusOK, getStatus)
	suite.Equal("created", body["status"])
}

func (suite *ServerIntegrationTestSuite) TestDeliveryChannel_WrongKey() {
	merchant := suite.login("acme", "acme-pass")
	suite.createOrder(merchant, "ORD-1")

	status, _ := suite.doJSON(http.MethodPut, "/delivery/orders/ORD-1/status", "", "wrong-key",
		map[string]string{"status": "picked_up", "delivery_id": "courier-7"})
	suite.Equal(http.StatusUnauthorized, status)
}

func (suite *ServerIntegrationTestSuite) TestGetOrder_ScopingAndNotFound() {
	merchant := suite.login("acme", "acme-pass")
	other := suite.login("globex", "globex-pass")
	ops := suite.login("ops1", "ops-pass")
	suite.createOrder(merchant, "ORD-1")

	status, _ := suite.doJSON(http.MethodGet, "/orders/ORD-1", other, "", nil)
	suite.Equal(http.StatusForbidden, status)

	status, body := suite.doJSON(http.MethodGet, "/orders/ORD-1", ops, "", nil)
	suite.Require().Equal(http.StatusOK, status)
	suite.Equal("acme", body["merchant_name"])

	status, _ = suite.doJSON(http.MethodGet, "/orders/ORD-404", ops, "", nil)
	suite.Equal(http.StatusNotFound, status)
}

func (suite *ServerIntegrationTestSuite) TestListOrders_MerchantScoping() {
	acme := suite.login("acme", "acme-pass")
	globex := suite.login("globex", "globex-pass")
	suite.createOrder(acme, "ORD-1")
	suite.createOrder(globex, "ORD-2")

	status, result := suite.doJSONList(http.MethodGet, "/orders?merchant=globex", acme)
	suite.Require().Equal(http.StatusOK, status)
	suite.Require().Len(result, 1)
	suite.Equal("ORD-1", result[0]["order_id"])
}

func (suite *ServerIntegrationTestSuite) TestListStatuses() {
	status, _ := suite.doJSON(http.MethodGet, "/order-statuses", "", "", nil)
	suite.Equal(http.StatusUnauthorized, status)

	merchant := suite.login("acme", "acme-pass")
	status, body := suite.doJSON(http.MethodGet, "/order-statuses", merchant, "", nil)
	suite.Require().Equal(http.StatusOK, status)
	statuses, ok := body["statuses"].([]any)
	suite.Require().True(ok)
	suite.Len(statuses, 5)
	suite.Equal("created", statuses[0])
}

func (suite *ServerIntegrationTestSuite) wsURL(bearer string) string {
	return "ws" + strings.TrimPrefix(suite.server.URL, "http") +
		fmt.Sprintf("/ws/orders?token=%s", bearer)
}

func (suite *ServerIntegrationTestSuite) dialWS(bearer string) *websocket.Conn {
	conn, resp, err := websocket.DefaultDialer.Dial(suite.wsURL(bearer), nil)
	if resp != nil && resp.Body != nil {
		resp.Body.Close()
	}
	suite.Require().NoError(err)
	return conn
}

func readEvent(conn *websocket.Conn, timeout time.Duration) (map[string]any, error) {
	_ = conn.SetReadDeadline(time.Now().Add(timeout))
	var event map[string]any
	err := conn.ReadJSON(&event)
	return event, err
}

func (suite *ServerIntegrationTestSuite) TestWebsocketFanout() {
	acme := suite.login("acme", "acme-pass")
	globex := suite.login("globex", "globex-pass")
	ops := suite.login("ops1", "ops-pass")

	opsConn := suite.dialWS(ops)
	defer opsConn.Close()
	acmeConn := suite.dialWS(acme)
	defer acmeConn.Close()
	globexConn := suite.dialWS(globex)
	defer globexConn.Close()

	suite.createOrder(acme, "ORD-1")

	opsEvent, err := readEvent(opsConn, 3*time.Second)
	suite.Require().NoError(err)
	suite.Equal("ORD-1", opsEvent["order_id"])
	suite.Equal("created", opsEvent["status"])

	acmeEvent, err := readEvent(acmeConn, 3*time.Second)
	suite.Require().NoError(err)
	suite.Equal("ORD-1", acmeEvent["order_id"])

	metadata, ok := acmeEvent["metadata"].(map[string]any)
	suite.Require().True(ok)
	suite.Equal("system", metadata["updated_by"])
	suite.Equal("system", metadata["source"])

	// The foreign merchant hears nothing.
	_, err = readEvent(globexConn, 500*time.Millisecond)
	suite.Require().Error(err)

	status, _ := suite.doJSON(http.MethodPut, "/orders/ORD-1/status", ops, "", map[string]string{
		"status": "picked_up",
	})
	suite.Require().Equal(http.StatusOK, status)

	opsEvent, err = readEvent(opsConn, 3*time.Second)
	suite.Require().NoError(err)
	suite.Equal("picked_up", opsEvent["status"])
}

func (suite *ServerIntegrationTestSuite) TestWebsocketInvalidToken() {
	conn, resp, err := websocket.DefaultDialer.Dial(suite.wsURL("garbage"), nil)
	if resp != nil && resp.Body != nil {
		resp.Body.Close()
	}
	suite.Require().NoError(err)
	defer conn.Close()

	_ = conn.SetReadDeadline(time.Now().Add(3 * time.Second))
	_, _, err = conn.ReadMessage()
	suite.Require().Error(err)
	suite.True(websocket.IsCloseError(err, websocket.ClosePolicyViolation), "got: %v", err)
}

func TestServerIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(ServerIntegrationTestSuite))
}
