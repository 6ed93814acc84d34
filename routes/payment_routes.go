package routes

import (
	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/taruns1620/connectify_hub_backend/controllers"
	"github.com/taruns1620/connectify_hub_backend/middleware"
	"github.com/taruns1620/connectify_hub_backend/websocket"
)

// RegisterPaymentRoutes sets up the online payment routes. The gateway
// webhook is public and authenticated by its HMAC signature instead.
func RegisterPaymentRoutes(e *echo.Echo, db *mongo.Client, hub *websocket.Hub) {
	paymentController := controllers.NewPaymentController(db, hub)

	e.POST("/api/payments/webhook", paymentController.HandleWebhook)

	api := e.Group("/api", middleware.JWTMiddleware())
	api.POST("/payments/initiate", paymentController.InitiatePayment)
}
