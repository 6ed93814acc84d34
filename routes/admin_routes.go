package routes

import (
	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/taruns1620/connectify_hub_backend/controllers"
	"github.com/taruns1620/connectify_hub_backend/middleware"
	"github.com/taruns1620/connectify_hub_backend/websocket"
)

// RegisterAdminRoutes sets up the admin-only management routes.
func RegisterAdminRoutes(e *echo.Echo, db *mongo.Client, hub *websocket.Hub) {
	approvalController := controllers.NewApprovalController(db)
	cashController := controllers.NewCashController(db, hub)
	payoutController := controllers.NewPayoutController(db)

	admin := e.Group("/api/admin", middleware.JWTMiddleware(), middleware.RequireAdmin())

	admin.GET("/vendors/pending", approvalController.ListPendingRegistrations)
	admin.POST("/vendors/:id/approve", approvalController.ApproveVendorRegistration)
	admin.POST("/vendors/:id/reject", approvalController.RejectVendorRegistration)
	admin.PUT("/vendors/:id/rate", payoutController.UpdateVendorRate)

	admin.GET("/cash-transactions/pending", cashController.ListPendingCashTransactions)
	admin.POST("/cash-transactions/:id/verify", cashController.VerifyCashPayment)

	admin.GET("/commissions", payoutController.ListCommissions)
	admin.POST("/commissions/:id/payouts/:leg/paid", payoutController.MarkPayoutPaid)

	admin.GET("/rate-schedule", payoutController.GetRateSchedule)
	admin.PUT("/rate-schedule", payoutController.UpdateRateSchedule)
}
