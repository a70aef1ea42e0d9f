package controllers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	apperrors "github.com/swnshop/microservices/common/errors"
	"github.com/swnshop/microservices/common/logger"
	"github.com/swnshop/microservices/services/basket-service/models"
)

// BasketRepo is what the controller needs from the repository layer.
type BasketRepo interface {
	GetBasket(ctx context.Context, userName string) (*models.Basket, error)
	SaveBasket(ctx context.Context, basket *models.Basket) error
	DeleteBasket(ctx context.Context, userName string) error
	ListBaskets(ctx context.Context) ([]models.Basket, error)
}

// Checkouter runs the checkout handoff.
type Checkouter interface {
	Checkout(ctx context.Context, req models.CheckoutRequest) (*models.OrderPayload, error)
}

type BasketController struct {
	Repo     BasketRepo
	Checkout Checkouter
}

func NewBasketController(repo BasketRepo, checkout Checkouter) *BasketController {
	return &BasketController{Repo: repo, Checkout: checkout}
}

// GetBasket handles GET /basket/:userName
func (bc *BasketController) GetBasket(c *gin.Context) {
	userName := c.Param("userName")

	basket, err := bc.Repo.GetBasket(c, userName)
	if err != nil {
		logger.Error(c, "failed to get basket", err, zap.String("user", userName))
		apperrors.Respond(c, "GET", apperrors.Dependency("failed to get basket", err))
		return
	}
	if basket == nil {
		apperrors.Respond(c, "GET", apperrors.NotFound("no basket found for user "+userName))
		return
	}

	ok(c, "GET", basket)
}

// GetAllBaskets handles GET /basket
func (bc *BasketController) GetAllBaskets(c *gin.Context) {
	baskets, err := bc.Repo.ListBaskets(c)
	if err != nil {
		logger.Error(c, "failed to list baskets", err)
		apperrors.Respond(c, "GET", apperrors.Dependency("failed to list baskets", err))
		return
	}

	ok(c, "GET", baskets)
}

// CreateBasket handles POST /basket, overwriting any existing basket for
// the user.
func (bc *BasketController) CreateBasket(c *gin.Context) {
	var basket models.Basket
	if err := c.ShouldBindJSON(&basket); err != nil {
		apperrors.Respond(c, "POST", apperrors.Validation("invalid basket payload", err))
		return
	}

	if err := bc.Repo.SaveBasket(c, &basket); err != nil {
		logger.Error(c, "failed to save basket", err, zap.String("user", basket.UserName))
		apperrors.Respond(c, "POST", apperrors.Dependency("failed to save basket", err))
		return
	}

	ok(c, "POST", basket)
}

// DeleteBasket handles DELETE /basket/:userName
func (bc *BasketController) DeleteBasket(c *gin.Context) {
	userName := c.Param("userName")

	if err := bc.Repo.DeleteBasket(c, userName); err != nil {
		logger.Error(c, "failed to delete basket", err, zap.String("user", userName))
		apperrors.Respond(c, "DELETE", apperrors.Dependency("failed to delete basket", err))
		return
	}

	ok(c, "DELETE", gin.H{"userName": userName})
}

// CheckoutBasket handles POST /basket/checkout
func (bc *BasketController) CheckoutBasket(c *gin.Context) {
	var req models.CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.Respond(c, "POST", apperrors.Validation("invalid checkout request", err))
		return
	}

	payload, err := bc.Checkout.Checkout(c, req)
	if err != nil {
		// A payload alongside the error means the event was published and
		// only the basket cleanup failed. The checkout is committed; report
		// success and leave the stale basket to reconciliation.
		if payload != nil {
			logger.Warn(c, "checkout committed with pending basket cleanup",
				zap.String("user", req.UserName), zap.Error(err))
			ok(c, "POST", payload)
			return
		}
		apperrors.Respond(c, "POST", err)
		return
	}

	ok(c, "POST", payload)
}

func ok(c *gin.Context, operation string, body interface{}) {
	c.JSON(http.StatusOK, gin.H{
		"message": "Successfully finished operation: \"" + operation + "\"",
		"body":    body,
	})
}
