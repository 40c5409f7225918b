package httpserver

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/Skotchmaster/shop_cart/internal/models"
	"github.com/Skotchmaster/shop_cart/internal/repo"
	"github.com/Skotchmaster/shop_cart/internal/service"
	"github.com/Skotchmaster/shop_cart/internal/transport"
)

type testEnv struct {
	T  *testing.T
	E  *echo.Echo
	C  *CartHTTP
	I  *ItemHTTP
	O  *OrderHTTP
	DB *gorm.DB
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Item{},
		&models.Cart{},
		&models.LineItem{},
		&models.Order{},
		&models.OrderItem{},
	))

	r := &repo.GormRepo{DB: db}
	cartSvc := &service.CartService{Repo: r, DecrementInventory: true}
	itemSvc := &service.ItemService{Repo: r}
	orderSvc := &service.OrderService{Repo: r}

	return &testEnv{
		T:  t,
		E:  echo.New(),
		C:  &CartHTTP{Svc: cartSvc},
		I:  &ItemHTTP{Svc: itemSvc},
		O:  &OrderHTTP{Svc: orderSvc},
		DB: db,
	}
}

func (env *testEnv) doJSONRequest(method, path string, body interface{}) (*httptest.ResponseRecorder, echo.Context) {
	var buf bytes.Buffer
	if body != nil {
		require.NoError(env.T, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)

	rec := httptest.NewRecorder()
	c := env.E.NewContext(req, rec)
	c.Set("user_id", uint(1))
	return rec, c
}

func (env *testEnv) createItem(price float64, inventory uint) *models.Item {
	item := &models.Item{Name: "test_item", Description: "test_description", Price: price, Inventory: inventory}
	require.NoError(env.T, env.DB.Create(item).Error)
	return item
}

func TestAddToCartHandler(t *testing.T) {
	env := newTestEnv(t)
	item := env.createItem(10.99, 4)

	rec, c := env.doJSONRequest(http.MethodPost, "/cart/items", transport.AddItemRequest{ItemID: item.ID, Quantity: 2})
	require.NoError(t, env.C.AddToCart(c))
	require.Equal(t, http.StatusCreated, rec.Code)

	var resp transport.AddItemResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.True(t, resp.Added)
	require.NotNil(t, resp.LineItem)
	require.Equal(t, item.ID, resp.LineItem.ItemID)
	require.Equal(t, uint(2), resp.LineItem.Quantity)
}

func TestAddToCartHandler_SoldOut(t *testing.T) {
	env := newTestEnv(t)
	item := env.createItem(10.99, 0)

	rec, c := env.doJSONRequest(http.MethodPost, "/cart/items", transport.AddItemRequest{ItemID: item.ID, Quantity: 2})
	require.NoError(t, env.C.AddToCart(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp transport.AddItemResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.False(t, resp.Added)
	require.Nil(t, resp.LineItem)
}

func TestAddToCartHandler_Validation(t *testing.T) {
	env := newTestEnv(t)

	rec, c := env.doJSONRequest(http.MethodPost, "/cart/items", transport.AddItemRequest{ItemID: 0, Quantity: 1})
	require.NoError(t, env.C.AddToCart(c))
	require.Equal(t, http.StatusBadRequest, rec.Code)

	rec, c = env.doJSONRequest(http.MethodPost, "/cart/items", transport.AddItemRequest{ItemID: 42, Quantity: 1})
	require.NoError(t, env.C.AddToCart(c))
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGetCartHandler(t *testing.T) {
	env := newTestEnv(t)
	item := env.createItem(10.99, 4)

	_, c := env.doJSONRequest(http.MethodPost, "/cart/items", transport.AddItemRequest{ItemID: item.ID, Quantity: 3})
	require.NoError(t, env.C.AddToCart(c))

	rec, c := env.doJSONRequest(http.MethodGet, "/cart", nil)
	require.NoError(t, env.C.GetCart(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp []models.LineItem
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp, 1)
	require.Equal(t, item.ID, resp[0].ItemID)
	require.Equal(t, uint(3), resp[0].Quantity)
}

func TestGetCartHandler_NotFound(t *testing.T) {
	env := newTestEnv(t)

	rec, c := env.doJSONRequest(http.MethodGet, "/cart", nil)
	require.NoError(t, env.C.GetCart(c))
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGetTotalHandler(t *testing.T) {
	env := newTestEnv(t)
	first := env.createItem(10.99, 4)
	second := env.createItem(10.99, 4)

	_, c := env.doJSONRequest(http.MethodPost, "/cart/items", transport.AddItemRequest{ItemID: first.ID, Quantity: 1})
	require.NoError(t, env.C.AddToCart(c))
	_, c = env.doJSONRequest(http.MethodPost, "/cart/items", transport.AddItemRequest{ItemID: second.ID, Quantity: 1})
	require.NoError(t, env.C.AddToCart(c))

	rec, c := env.doJSONRequest(http.MethodGet, "/cart/total", nil)
	require.NoError(t, env.C.GetTotal(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp transport.TotalResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Equal(t, 21.98, resp.Total)
}

func TestCheckoutHandler(t *testing.T) {
	env := newTestEnv(t)
	item := env.createItem(10.99, 4)

	_, c := env.doJSONRequest(http.MethodPost, "/cart/items", transport.AddItemRequest{ItemID: item.ID, Quantity: 2})
	require.NoError(t, env.C.AddToCart(c))

	rec, c := env.doJSONRequest(http.MethodPost, "/cart/checkout", nil)
	require.NoError(t, env.C.Checkout(c))
	require.Equal(t, http.StatusCreated, rec.Code)

	var resp transport.CheckoutResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotZero(t, resp.OrderID)
	require.Equal(t, models.OrderStatusNew, resp.Status)
	require.Equal(t, 21.98, resp.Total)
	require.Len(t, resp.Items, 1)
	require.Equal(t, item.ID, resp.Items[0].ItemID)
	require.Equal(t, uint(2), resp.Items[0].Quantity)

	rec, c = env.doJSONRequest(http.MethodGet, "/cart", nil)
	require.NoError(t, env.C.GetCart(c))
	var remaining []models.LineItem
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &remaining))
	require.Len(t, remaining, 0)
}

func TestDeleteCartHandler(t *testing.T) {
	env := newTestEnv(t)
	item := env.createItem(10.99, 4)

	_, c := env.doJSONRequest(http.MethodPost, "/cart/items", transport.AddItemRequest{ItemID: item.ID, Quantity: 2})
	require.NoError(t, env.C.AddToCart(c))

	rec, c := env.doJSONRequest(http.MethodDelete, "/cart", nil)
	require.NoError(t, env.C.DeleteCart(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var count int64
	require.NoError(t, env.DB.Model(&models.LineItem{}).Count(&count).Error)
	require.Equal(t, int64(0), count)
}

func TestListOrdersHandler(t *testing.T) {
	env := newTestEnv(t)
	item := env.createItem(10.99, 4)

	_, c := env.doJSONRequest(http.MethodPost, "/cart/items", transport.AddItemRequest{ItemID: item.ID, Quantity: 1})
	require.NoError(t, env.C.AddToCart(c))
	_, c = env.doJSONRequest(http.MethodPost, "/cart/checkout", nil)
	require.NoError(t, env.C.Checkout(c))

	rec, c := env.doJSONRequest(http.MethodGet, "/orders", nil)
	require.NoError(t, env.O.ListOrders(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp []models.Order
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp, 1)
	require.Equal(t, uint(1), resp[0].UserID)
}

func TestOrderItemsHandler(t *testing.T) {
	env := newTestEnv(t)
	item := env.createItem(10.99, 4)

	_, c := env.doJSONRequest(http.MethodPost, "/cart/items", transport.AddItemRequest{ItemID: item.ID, Quantity: 2})
	require.NoError(t, env.C.AddToCart(c))
	_, c = env.doJSONRequest(http.MethodPost, "/cart/checkout", nil)
	require.NoError(t, env.C.Checkout(c))

	var order models.Order
	require.NoError(t, env.DB.First(&order).Error)

	id := strconv.Itoa(int(order.ID))
	rec, c := env.doJSONRequest(http.MethodGet, "/orders/"+id+"/items", nil)
	c.SetParamNames("id")
	c.SetParamValues(id)
	require.NoError(t, env.O.GetOrderItems(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp []models.OrderItem
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp, 1)
	require.Equal(t, item.ID, resp[0].ItemID)
	require.Equal(t, uint(2), resp[0].Quantity)
	require.Equal(t, 10.99, resp[0].UnitPrice)
}

func TestOrderItemsHandler_ForeignOrder(t *testing.T) {
	env := newTestEnv(t)

	order := models.Order{UserID: 2, CreatedAt: 1, Total: 10.99, Status: models.OrderStatusNew}
	require.NoError(t, env.DB.Create(&order).Error)

	id := strconv.Itoa(int(order.ID))
	rec, c := env.doJSONRequest(http.MethodGet, "/orders/"+id+"/items", nil)
	c.SetParamNames("id")
	c.SetParamValues(id)
	require.NoError(t, env.O.GetOrderItems(c))
	require.Equal(t, http.StatusNotFound, rec.Code)
}
