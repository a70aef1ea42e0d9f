package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/swnshop/microservices/services/order-service/controllers"
)

func RegisterOrderRoutes(r *gin.Engine, controller *controllers.OrderController) {
	order := r.Group("/order")
	{
		order.GET("", controller.GetAllOrders)
		order.GET("/:userName", controller.GetOrders)
	}
}
