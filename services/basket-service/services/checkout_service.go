package services

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"
	"go.uber.org/zap"

	apperrors "github.com/swnshop/microservices/common/errors"
	"github.com/swnshop/microservices/common/logger"
	"github.com/swnshop/microservices/pkg/aws"
	"github.com/swnshop/microservices/services/basket-service/models"
)

// BasketStore is the slice of the basket repository the checkout needs.
type BasketStore interface {
	GetBasket(ctx context.Context, userName string) (*models.Basket, error)
	DeleteBasket(ctx context.Context, userName string) error
}

// CheckoutService turns a user's basket into a published order event.
//
// The sequence is read -> compute -> publish -> delete, strictly in that
// order. Once the bus has acknowledged the event the checkout is
// committed: a failed basket delete afterwards leaves the basket behind
// but must never un-publish the order. The inverse ordering would risk
// losing a checkout, so delete never runs before a successful publish.
type CheckoutService struct {
	baskets    BasketStore
	bus        aws.EventPublisher
	detailType string
	metrics    *aws.MetricsClient
}

func NewCheckoutService(baskets BasketStore, bus aws.EventPublisher, detailType string, metrics *aws.MetricsClient) *CheckoutService {
	return &CheckoutService{
		baskets:    baskets,
		bus:        bus,
		detailType: detailType,
		metrics:    metrics,
	}
}

// Checkout validates the request, reads the basket, builds the order
// payload, publishes it and clears the basket.
//
// On a delete failure the already-built payload is returned together
// with the error: the event is on the bus, the order will be created,
// and the leftover basket is a cleanup problem rather than a failed
// checkout.
func (s *CheckoutService) Checkout(ctx context.Context, req models.CheckoutRequest) (*models.OrderPayload, error) {
	if req.UserName == "" {
		return nil, apperrors.Validation("userName is required in checkout request", nil)
	}
	logger.Info(ctx, "checkout attempt",
		zap.String("user", req.UserName), zap.String("state", "validated"))

	basket, err := s.baskets.GetBasket(ctx, req.UserName)
	if err != nil {
		return nil, apperrors.Dependency("failed to read basket", err)
	}
	if basket == nil {
		return nil, apperrors.NotFound("no basket found for user " + req.UserName)
	}
	if len(basket.Items) == 0 {
		return nil, apperrors.Validation("basket for user "+req.UserName+" has no items", nil)
	}
	logger.Info(ctx, "checkout attempt",
		zap.String("user", req.UserName), zap.String("state", "basket_read"),
		zap.Int("items", len(basket.Items)))

	payload := buildOrderPayload(req, basket)

	detail, err := json.Marshal(payload)
	if err != nil {
		return nil, apperrors.Serialization("failed to encode order payload", err)
	}
	if err := s.bus.Publish(ctx, s.detailType, detail); err != nil {
		return nil, apperrors.Dependency("failed to publish checkout event", err)
	}
	logger.Info(ctx, "checkout attempt",
		zap.String("user", req.UserName), zap.String("state", "published"),
		zap.String("checkout_id", payload.CheckoutID),
		zap.Float64("total_price", payload.TotalPrice))

	if s.metrics.IsEnabled() {
		dims := map[string]string{"Service": "basket-service"}
		_ = s.metrics.RecordCount(ctx, aws.MetricCheckoutsPublished, dims)
	}

	if err := s.baskets.DeleteBasket(ctx, req.UserName); err != nil {
		logger.Error(ctx, "basket left behind after published checkout", err,
			zap.String("user", req.UserName),
			zap.String("checkout_id", payload.CheckoutID))
		return payload, apperrors.Dependency("checkout published but basket cleanup failed", err)
	}
	logger.Info(ctx, "checkout attempt",
		zap.String("user", req.UserName), zap.String("state", "basket_cleared"),
		zap.String("checkout_id", payload.CheckoutID))

	return payload, nil
}

// buildOrderPayload combines the checkout request and the basket into the
// event detail. Fields are copied one by one; the total is computed from
// the exact item slice read in this invocation, price times quantity.
// A caller-supplied totalPrice is ignored.
func buildOrderPayload(req models.CheckoutRequest, basket *models.Basket) *models.OrderPayload {
	var total float64
	for _, item := range basket.Items {
		total += item.Price * float64(item.Quantity)
	}

	return &models.OrderPayload{
		CheckoutID:    uuid.New().String(),
		UserName:      req.UserName,
		FirstName:     req.FirstName,
		LastName:      req.LastName,
		Email:         req.Email,
		Address:       req.Address,
		PaymentMethod: req.PaymentMethod,
		CardInfo:      req.CardInfo,
		Items:         basket.Items,
		TotalPrice:    total,
	}
}
