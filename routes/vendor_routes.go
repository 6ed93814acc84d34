package routes

import (
	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/taruns1620/connectify_hub_backend/controllers"
	"github.com/taruns1620/connectify_hub_backend/middleware"
	"github.com/taruns1620/connectify_hub_backend/models"
	"github.com/taruns1620/connectify_hub_backend/websocket"
)

// RegisterVendorRoutes sets up vendor onboarding and vendor-only routes.
func RegisterVendorRoutes(e *echo.Echo, db *mongo.Client, hub *websocket.Hub) {
	vendorController := controllers.NewVendorController(db, hub)

	api := e.Group("/api", middleware.JWTMiddleware())

	api.POST("/vendors/register", vendorController.SubmitRegistration)
	api.GET("/vendors/registration", vendorController.GetMyRegistration)

	vendors := api.Group("/vendors", middleware.RequireUserType(models.UserTypeVendor))
	vendors.GET("/qrcode", vendorController.GetVendorQRCode)
}
