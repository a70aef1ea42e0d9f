package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/swnshop/microservices/common/errors"
	"github.com/swnshop/microservices/common/logger"
	"github.com/swnshop/microservices/services/basket-service/models"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	logger.Initialize("test")
	os.Exit(m.Run())
}

type memoryBasketRepo struct {
	baskets map[string]*models.Basket
}

func newMemoryBasketRepo() *memoryBasketRepo {
	return &memoryBasketRepo{baskets: map[string]*models.Basket{}}
}

func (r *memoryBasketRepo) GetBasket(ctx context.Context, userName string) (*models.Basket, error) {
	return r.baskets[userName], nil
}

func (r *memoryBasketRepo) SaveBasket(ctx context.Context, basket *models.Basket) error {
	r.baskets[basket.UserName] = basket
	return nil
}

func (r *memoryBasketRepo) DeleteBasket(ctx context.Context, userName string) error {
	delete(r.baskets, userName)
	return nil
}

func (r *memoryBasketRepo) ListBaskets(ctx context.Context) ([]models.Basket, error) {
	out := []models.Basket{}
	for _, b := range r.baskets {
		out = append(out, *b)
	}
	return out, nil
}

type stubCheckout struct {
	payload *models.OrderPayload
	err     error
}

func (s *stubCheckout) Checkout(ctx context.Context, req models.CheckoutRequest) (*models.OrderPayload, error) {
	return s.payload, s.err
}

func newRouter(repo BasketRepo, checkout Checkouter) *gin.Engine {
	r := gin.New()
	controller := NewBasketController(repo, checkout)
	basket := r.Group("/basket")
	basket.GET("", controller.GetAllBaskets)
	basket.GET("/:userName", controller.GetBasket)
	basket.POST("", controller.CreateBasket)
	basket.DELETE("/:userName", controller.DeleteBasket)
	basket.POST("/checkout", controller.CheckoutBasket)
	return r
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestBasketRoundTrip(t *testing.T) {
	repo := newMemoryBasketRepo()
	r := newRouter(repo, &stubCheckout{})

	basket := models.Basket{
		UserName: "swn",
		Items: []models.BasketItem{
			{ProductID: "p1", ProductName: "IPhone X", Price: 10, Quantity: 2, Color: "Red"},
			{ProductID: "p2", ProductName: "Samsung 10", Price: 5, Quantity: 1, Color: "Blue"},
		},
	}

	w := doJSON(t, r, http.MethodPost, "/basket", basket)
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, r, http.MethodGet, "/basket/swn", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Body models.Basket `json:"body"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

	// Same item sequence back, same order, no field loss.
	assert.Equal(t, basket.Items, resp.Body.Items)
}

func TestGetBasket_AbsentIs404(t *testing.T) {
	r := newRouter(newMemoryBasketRepo(), &stubCheckout{})

	w := doJSON(t, r, http.MethodGet, "/basket/ghost", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCreateBasket_RejectsBadItems(t *testing.T) {
	r := newRouter(newMemoryBasketRepo(), &stubCheckout{})

	w := doJSON(t, r, http.MethodPost, "/basket", gin.H{
		"userName": "swn",
		"items":    []gin.H{{"productId": "p1", "price": 10, "quantity": 0}},
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDeleteBasket_AbsentIsStillOK(t *testing.T) {
	r := newRouter(newMemoryBasketRepo(), &stubCheckout{})

	w := doJSON(t, r, http.MethodDelete, "/basket/ghost", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestCheckout_ErrorKindsMapToStatusCodes(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want int
	}{
		{"validation", apperrors.Validation("userName is required in checkout request", nil), http.StatusBadRequest},
		{"not found", apperrors.NotFound("no basket found for user ghost"), http.StatusNotFound},
		{"dependency", apperrors.Dependency("failed to publish checkout event", nil), http.StatusBadGateway},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := newRouter(newMemoryBasketRepo(), &stubCheckout{err: tc.err})
			w := doJSON(t, r, http.MethodPost, "/basket/checkout", gin.H{"userName": "ghost"})
			assert.Equal(t, tc.want, w.Code)
		})
	}
}

func TestCheckout_CleanupFailureStillReturns200(t *testing.T) {
	payload := &models.OrderPayload{CheckoutID: "c1", UserName: "swn", TotalPrice: 25}
	stub := &stubCheckout{
		payload: payload,
		err:     apperrors.Dependency("checkout published but basket cleanup failed", nil),
	}
	r := newRouter(newMemoryBasketRepo(), stub)

	w := doJSON(t, r, http.MethodPost, "/basket/checkout", gin.H{"userName": "swn"})
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Body models.OrderPayload `json:"body"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 25.0, resp.Body.TotalPrice)
}
