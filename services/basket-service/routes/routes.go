package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/swnshop/microservices/services/basket-service/controllers"
)

func RegisterBasketRoutes(r *gin.Engine, controller *controllers.BasketController) {
	basket := r.Group("/basket")
	{
		basket.GET("", controller.GetAllBaskets)
		basket.GET("/:userName", controller.GetBasket)
		basket.POST("", controller.CreateBasket)
		basket.DELETE("/:userName", controller.DeleteBasket)
		basket.POST("/checkout", controller.CheckoutBasket)
	}
}
