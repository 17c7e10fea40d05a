package router

import (
	"github.com/gin-gonic/gin"

	"github.com/BolivianProgrammer/RazorPedidos/internal/domain/repository"
	"github.com/BolivianProgrammer/RazorPedidos/internal/interfaces/http/handler"
	"github.com/BolivianProgrammer/RazorPedidos/internal/interfaces/http/middleware"
)

// RegisterRoutes wires the API. Product reads are public; everything else
// requires a resolvable principal.
func RegisterRoutes(
	r *gin.Engine,
	users repository.UserRepository,
	orderHandler *handler.OrderHandler,
	productHandler *handler.ProductHandler,
	userHandler *handler.UserHandler,
) {
	api := r.Group("/api")
	{
		api.GET("/products", productHandler.ListProducts)
		api.GET("/products/:id", productHandler.GetProduct)
	}

	authed := api.Group("")
	authed.Use(middleware.Principal(users))
	{
		authed.POST("/orders", orderHandler.PlaceOrder)
		authed.GET("/orders", orderHandler.ListOrders)
		authed.GET("/orders/recent", orderHandler.RecentOrders)
		authed.GET("/orders/:id", orderHandler.GetOrder)
		authed.PATCH("/orders/:id/status", orderHandler.ChangeStatus)
		authed.DELETE("/orders/:id", orderHandler.DeleteOrder)
		authed.POST("/admin/orders", orderHandler.CreateOrder)

		authed.POST("/products", productHandler.CreateProduct)
		authed.PUT("/products/:id", productHandler.UpdateProduct)
		authed.DELETE("/products/:id", productHandler.DeleteProduct)

		authed.GET("/users", userHandler.ListUsers)
		authed.GET("/users/:id", userHandler.GetUser)
		authed.POST("/users", userHandler.CreateUser)
		authed.PUT("/users/:id", userHandler.UpdateUser)
		authed.DELETE("/users/:id", userHandler.DeleteUser)
	}
}
