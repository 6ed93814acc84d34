package routes

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/taruns1620/connectify_hub_backend/controllers"
	"github.com/taruns1620/connectify_hub_backend/middleware"
	"github.com/taruns1620/connectify_hub_backend/models"
	"github.com/taruns1620/connectify_hub_backend/websocket"
)

// RegisterUserRoutes sets up the authenticated client-facing routes.
func RegisterUserRoutes(e *echo.Echo, db *mongo.Client, hub *websocket.Hub) {
	userController := controllers.NewUserController(db)
	referralController := controllers.NewReferralController(db)
	cashController := controllers.NewCashController(db, hub)
	payoutController := controllers.NewPayoutController(db)

	api := e.Group("/api", middleware.JWTMiddleware())

	api.GET("/users/me", userController.GetMe)
	api.PUT("/users/me/fcm-token", userController.UpdateFCMToken)
	api.GET("/users/me/notifications", userController.ListNotifications)

	api.POST("/referrals", referralController.HandleReferral)
	api.GET("/referrals/me", referralController.GetReferralData)

	api.POST("/checkin", cashController.Checkin)
	api.POST("/cash-transactions/:id/respond", cashController.RespondToCashTransaction)

	api.POST("/users/me/payout-address", payoutController.RegisterPayoutAddress)

	// WebSocket endpoint for live notifications
	api.GET("/ws", func(c echo.Context) error {
		userIDStr, err := middleware.ExtractUserID(c)
		if err != nil {
			return c.JSON(http.StatusUnauthorized, models.Response{
				Status:  http.StatusUnauthorized,
				Message: "Unauthorized",
			})
		}
		userID, err := primitive.ObjectIDFromHex(userIDStr)
		if err != nil {
			return c.JSON(http.StatusBadRequest, models.Response{
				Status:  http.StatusBadRequest,
				Message: "Invalid user ID",
			})
		}
		isAdmin := middleware.ExtractUserType(c) == models.UserTypeAdmin
		return websocket.HandleWebSocket(c, hub, userID, isAdmin)
	})
}
