package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/swnshop/microservices/common/logger"
	"github.com/swnshop/microservices/services/order-service/models"
)

func TestMain(m *testing.M) {
	logger.Initialize("test")
	os.Exit(m.Run())
}

type fakeOrderStore struct {
	orders    []models.Order
	createErr error
	existsErr error
}

func (s *fakeOrderStore) CreateOrder(ctx context.Context, order *models.Order) error {
	if s.createErr != nil {
		return s.createErr
	}
	s.orders = append(s.orders, *order)
	return nil
}

func (s *fakeOrderStore) ExistsByCheckoutID(ctx context.Context, userName, checkoutID string) (bool, error) {
	if s.existsErr != nil {
		return false, s.existsErr
	}
	for _, o := range s.orders {
		if o.UserName == userName && o.CheckoutID == checkoutID {
			return true, nil
		}
	}
	return false, nil
}

func checkoutEventBody(t *testing.T, payload models.OrderPayload) string {
	t.Helper()
	detail, err := json.Marshal(payload)
	require.NoError(t, err)
	return fmt.Sprintf(`{"id":"evt-1","detail-type":"CheckoutBasket","source":"com.swn.basket.checkoutbasket","detail":%s}`, detail)
}

func swnPayload() models.OrderPayload {
	return models.OrderPayload{
		CheckoutID: "ck-123",
		UserName:   "swn",
		Items: []models.OrderItem{
			{ProductID: "p1", Price: 10, Quantity: 2},
			{ProductID: "p2", Price: 5, Quantity: 1},
		},
		TotalPrice: 25,
	}
}

func TestHandleMessage_CreatesOrder(t *testing.T) {
	store := &fakeOrderStore{}
	consumer := NewCheckoutConsumer(store, "CheckoutBasket", nil)
	consumer.now = func() time.Time {
		return time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)
	}

	err := consumer.HandleMessage(context.Background(), checkoutEventBody(t, swnPayload()))
	require.NoError(t, err)

	require.Len(t, store.orders, 1)
	order := store.orders[0]
	assert.Equal(t, "swn", order.UserName)
	assert.Equal(t, "2026-08-31T12:00:00Z", order.OrderDate)
	assert.Equal(t, "ck-123", order.CheckoutID)
	assert.Equal(t, 25.0, order.TotalPrice)
	assert.Len(t, order.Items, 2)
}

func TestHandleMessage_RedeliveryCreatesNoDuplicate(t *testing.T) {
	store := &fakeOrderStore{}
	consumer := NewCheckoutConsumer(store, "CheckoutBasket", nil)

	body := checkoutEventBody(t, swnPayload())
	require.NoError(t, consumer.HandleMessage(context.Background(), body))
	require.NoError(t, consumer.HandleMessage(context.Background(), body))

	assert.Len(t, store.orders, 1)
}

func TestHandleMessage_DistinctCheckoutsBothStored(t *testing.T) {
	store := &fakeOrderStore{}
	consumer := NewCheckoutConsumer(store, "CheckoutBasket", nil)

	first := swnPayload()
	second := swnPayload()
	second.CheckoutID = "ck-456"

	require.NoError(t, consumer.HandleMessage(context.Background(), checkoutEventBody(t, first)))
	require.NoError(t, consumer.HandleMessage(context.Background(), checkoutEventBody(t, second)))

	assert.Len(t, store.orders, 2)
}

func TestHandleMessage_MalformedBodyIsDropped(t *testing.T) {
	store := &fakeOrderStore{}
	consumer := NewCheckoutConsumer(store, "CheckoutBasket", nil)

	// nil means the message is deleted instead of redelivered forever.
	assert.NoError(t, consumer.HandleMessage(context.Background(), "{not json"))
	assert.Empty(t, store.orders)
}

func TestHandleMessage_MalformedDetailIsDropped(t *testing.T) {
	store := &fakeOrderStore{}
	consumer := NewCheckoutConsumer(store, "CheckoutBasket", nil)

	body := `{"id":"evt-2","detail-type":"CheckoutBasket","detail":"not an object"}`
	assert.NoError(t, consumer.HandleMessage(context.Background(), body))
	assert.Empty(t, store.orders)
}

func TestHandleMessage_OtherDetailTypeIgnored(t *testing.T) {
	store := &fakeOrderStore{}
	consumer := NewCheckoutConsumer(store, "CheckoutBasket", nil)

	body := `{"id":"evt-3","detail-type":"SomethingElse","detail":{}}`
	assert.NoError(t, consumer.HandleMessage(context.Background(), body))
	assert.Empty(t, store.orders)
}

func TestHandleMessage_MissingUserNameIsDropped(t *testing.T) {
	store := &fakeOrderStore{}
	consumer := NewCheckoutConsumer(store, "CheckoutBasket", nil)

	payload := swnPayload()
	payload.UserName = ""
	assert.NoError(t, consumer.HandleMessage(context.Background(), checkoutEventBody(t, payload)))
	assert.Empty(t, store.orders)
}

func TestHandleMessage_StoreFailureIsRetried(t *testing.T) {
	store := &fakeOrderStore{createErr: errors.New("store down")}
	consumer := NewCheckoutConsumer(store, "CheckoutBasket", nil)

	err := consumer.HandleMessage(context.Background(), checkoutEventBody(t, swnPayload()))
	assert.Error(t, err)

	// The store recovers and the redelivered message lands exactly once.
	store.createErr = nil
	require.NoError(t, consumer.HandleMessage(context.Background(), checkoutEventBody(t, swnPayload())))
	assert.Len(t, store.orders, 1)
}
