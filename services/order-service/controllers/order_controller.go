package controllers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	apperrors "github.com/swnshop/microservices/common/errors"
	"github.com/swnshop/microservices/common/logger"
	"github.com/swnshop/microservices/services/order-service/models"
)

// OrderRepo is what the controller needs from the repository layer.
type OrderRepo interface {
	GetOrdersByUser(ctx context.Context, userName string) ([]models.Order, error)
	ListOrders(ctx context.Context) ([]models.Order, error)
}

type OrderController struct {
	Repo OrderRepo
}

func NewOrderController(repo OrderRepo) *OrderController {
	return &OrderController{Repo: repo}
}

// GetOrders handles GET /order/:userName
func (oc *OrderController) GetOrders(c *gin.Context) {
	userName := c.Param("userName")

	orders, err := oc.Repo.GetOrdersByUser(c, userName)
	if err != nil {
		logger.Error(c, "failed to query orders", err, zap.String("user", userName))
		apperrors.Respond(c, "GET", apperrors.Dependency("failed to query orders", err))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Successfully finished operation: \"GET\"",
		"body":    orders,
	})
}

// GetAllOrders handles GET /order
func (oc *OrderController) GetAllOrders(c *gin.Context) {
	orders, err := oc.Repo.ListOrders(c)
	if err != nil {
		logger.Error(c, "failed to list orders", err)
		apperrors.Respond(c, "GET", apperrors.Dependency("failed to list orders", err))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Successfully finished operation: \"GET\"",
		"body":    orders,
	})
}
