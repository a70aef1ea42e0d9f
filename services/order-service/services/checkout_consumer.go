package services

import (
	"context"
	"encoding/json"
	"time"

	"go.uber.org/zap"

	apperrors "github.com/swnshop/microservices/common/errors"
	"github.com/swnshop/microservices/common/logger"
	"github.com/swnshop/microservices/pkg/aws"
	"github.com/swnshop/microservices/services/order-service/models"
)

// OrderStore is the slice of the order repository the consumer needs.
type OrderStore interface {
	CreateOrder(ctx context.Context, order *models.Order) error
	ExistsByCheckoutID(ctx context.Context, userName, checkoutID string) (bool, error)
}

// busEvent is the EventBridge envelope as delivered to an SQS target.
type busEvent struct {
	ID         string          `json:"id"`
	DetailType string          `json:"detail-type"`
	Source     string          `json:"source"`
	Detail     json.RawMessage `json:"detail"`
}

// CheckoutConsumer turns CheckoutBasket events into durable order
// records. Delivery is at-least-once and unordered, so every decision
// here has to survive re-execution: malformed payloads are dropped (the
// queue's redrive policy is the dead-letter story), duplicates are
// detected by checkout ID, and only store failures are handed back for
// redelivery.
type CheckoutConsumer struct {
	orders     OrderStore
	detailType string
	metrics    *aws.MetricsClient
	now        func() time.Time
}

func NewCheckoutConsumer(orders OrderStore, detailType string, metrics *aws.MetricsClient) *CheckoutConsumer {
	return &CheckoutConsumer{
		orders:     orders,
		detailType: detailType,
		metrics:    metrics,
		now:        time.Now,
	}
}

// HandleMessage processes one queue message. A nil return removes the
// message from the queue; an error leaves it for redelivery.
func (c *CheckoutConsumer) HandleMessage(ctx context.Context, body string) error {
	var event busEvent
	if err := json.Unmarshal([]byte(body), &event); err != nil {
		serr := apperrors.Serialization("malformed event envelope", err)
		logger.Error(ctx, "dropping message", serr)
		return nil
	}

	if event.DetailType != c.detailType {
		logger.Warn(ctx, "ignoring event with unexpected detail type",
			zap.String("detail_type", event.DetailType), zap.String("event_id", event.ID))
		return nil
	}

	var payload models.OrderPayload
	if err := json.Unmarshal(event.Detail, &payload); err != nil {
		serr := apperrors.Serialization("malformed order payload", err)
		logger.Error(ctx, "dropping message", serr, zap.String("event_id", event.ID))
		return nil
	}
	if payload.UserName == "" {
		logger.Error(ctx, "dropping message",
			apperrors.Validation("order payload missing userName", nil),
			zap.String("event_id", event.ID))
		return nil
	}

	if payload.CheckoutID != "" {
		exists, err := c.orders.ExistsByCheckoutID(ctx, payload.UserName, payload.CheckoutID)
		if err != nil {
			return apperrors.Dependency("failed to check for existing order", err)
		}
		if exists {
			logger.Warn(ctx, "duplicate checkout event, skipping",
				zap.String("user", payload.UserName),
				zap.String("checkout_id", payload.CheckoutID))
			if c.metrics.IsEnabled() {
				_ = c.metrics.RecordCount(ctx, aws.MetricDuplicatesSkipped,
					map[string]string{"Service": "order-service"})
			}
			return nil
		}
	}

	order := &models.Order{
		UserName:      payload.UserName,
		OrderDate:     c.now().UTC().Format(time.RFC3339),
		CheckoutID:    payload.CheckoutID,
		FirstName:     payload.FirstName,
		LastName:      payload.LastName,
		Email:         payload.Email,
		Address:       payload.Address,
		PaymentMethod: payload.PaymentMethod,
		CardInfo:      payload.CardInfo,
		Items:         payload.Items,
		TotalPrice:    payload.TotalPrice,
	}

	if err := c.orders.CreateOrder(ctx, order); err != nil {
		// Redeliver: the dedup check above keeps the retry idempotent.
		return apperrors.Dependency("failed to create order", err)
	}

	logger.Info(ctx, "order created",
		zap.String("user", order.UserName),
		zap.String("order_date", order.OrderDate),
		zap.String("checkout_id", order.CheckoutID),
		zap.Float64("total_price", order.TotalPrice),
		zap.Int("items", len(order.Items)))

	if c.metrics.IsEnabled() {
		dims := map[string]string{"Service": "order-service"}
		_ = c.metrics.RecordCount(ctx, aws.MetricOrdersCreated, dims)
		_ = c.metrics.RecordValue(ctx, "OrderTotalPrice", order.TotalPrice, dims)
	}

	return nil
}
