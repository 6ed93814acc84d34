package controllers

import (
	"context"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/taruns1620/connectify_hub_backend/config"
	"github.com/taruns1620/connectify_hub_backend/middleware"
	"github.com/taruns1620/connectify_hub_backend/models"
	"github.com/taruns1620/connectify_hub_backend/repositories"
	"github.com/taruns1620/connectify_hub_backend/utils"
)

type PayoutController struct {
	db *mongo.Client
}

func NewPayoutController(db *mongo.Client) *PayoutController {
	return &PayoutController{db: db}
}

// RegisterPayoutAddress stores the caller's payout address and, within the
// same transaction, moves any of their payout legs still inside the claim
// window from pending_payment_address to processing.
func (poc *PayoutController) RegisterPayoutAddress(c echo.Context) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

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

	var req models.RegisterPayoutAddressRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Payout address is required",
		})
	}

	userRepo := repositories.NewUserRepository(poc.db)
	commissionRepo := repositories.NewCommissionRepository(poc.db)

	result, err := repositories.WithTransaction(ctx, poc.db, func(sc mongo.SessionContext) (interface{}, error) {
		if err := userRepo.SetPayoutAddress(sc, userID, req.PayoutAddress); err != nil {
			return nil, err
		}
		released, err := commissionRepo.ReleasePendingLegsForUser(sc, userID, time.Now())
		if err != nil {
			return nil, err
		}
		return released, nil
	})
	if err != nil {
		status := utils.HTTPStatus(err)
		if status == http.StatusInternalServerError {
			log.Printf("Payout address registration failed for %s: %v", userID.Hex(), err)
		}
		return c.JSON(status, models.Response{
			Status:  status,
			Message: err.Error(),
		})
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Payout address registered",
		Data: map[string]interface{}{
			"releasedPayouts": result.(int64),
		},
	})
}

// ListCommissions returns recent commission records for the admin dashboard.
func (poc *PayoutController) ListCommissions(c echo.Context) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	limit := int64(100)
	if limitStr := c.QueryParam("limit"); limitStr != "" {
		if parsed, err := strconv.ParseInt(limitStr, 10, 64); err == nil && parsed > 0 && parsed <= 500 {
			limit = parsed
		}
	}

	commissionRepo := repositories.NewCommissionRepository(poc.db)
	commissions, err := commissionRepo.List(ctx, limit)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Database error",
		})
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Commissions retrieved",
		Data:    commissions,
	})
}

// MarkPayoutPaid records that the hub disbursed one leg of a commission.
// The leg must currently be in processing.
func (poc *PayoutController) MarkPayoutPaid(c echo.Context) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	commissionID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid commission ID",
		})
	}

	leg := c.Param("leg")
	if leg != "client" && leg != "referrer" && leg != "vendor" {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Leg must be client, referrer or vendor",
		})
	}

	commissionsCollection := config.GetCollection(poc.db, "commissions")

	_, err = repositories.WithTransaction(ctx, poc.db, func(sc mongo.SessionContext) (interface{}, error) {
		var commission models.Commission
		err := commissionsCollection.FindOne(sc, bson.M{"_id": commissionID}).Decode(&commission)
		if err == mongo.ErrNoDocuments {
			return nil, utils.NewAppError(utils.ErrNotFound, "commission not found")
		}
		if err != nil {
			return nil, err
		}

		now := time.Now()
		update := bson.M{}

		switch leg {
		case "client":
			if commission.ClientPayoutStatus != models.PayoutStatusProcessing {
				return nil, utils.AppErrorf(utils.ErrFailedPrecondition,
					"client payout is %q, not processing", commission.ClientPayoutStatus)
			}
			update["clientPayoutStatus"] = models.PayoutStatusPaid
			update["clientPaidAt"] = now
		case "referrer":
			if commission.ReferrerPayoutStatus != models.PayoutStatusProcessing {
				return nil, utils.AppErrorf(utils.ErrFailedPrecondition,
					"referrer payout is %q, not processing", commission.ReferrerPayoutStatus)
			}
			update["referrerPayoutStatus"] = models.PayoutStatusPaid
			update["referrerPaidAt"] = now
		case "vendor":
			if commission.VendorPaid {
				return nil, utils.NewAppError(utils.ErrFailedPrecondition, "vendor payout already marked paid")
			}
			update["vendorPaid"] = true
			update["vendorPaidAt"] = now
		}

		_, err = commissionsCollection.UpdateByID(sc, commissionID, bson.M{"$set": update})
		return nil, err
	})
	if err != nil {
		status := utils.HTTPStatus(err)
		if status == http.StatusInternalServerError {
			log.Printf("Mark payout paid failed for %s leg %s: %v", commissionID.Hex(), leg, err)
		}
		return c.JSON(status, models.Response{
			Status:  status,
			Message: err.Error(),
		})
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Payout marked as paid",
	})
}

// GetRateSchedule returns the active tier table.
func (poc *PayoutController) GetRateSchedule(c echo.Context) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	scheduleRepo := repositories.NewRateScheduleRepository(poc.db)
	schedule, err := scheduleRepo.FindActive(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Database error",
		})
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Rate schedule retrieved",
		Data:    schedule,
	})
}

// UpdateRateSchedule replaces the active tier table with a new version.
// Commissions already recorded keep the splits they were computed with.
func (poc *PayoutController) UpdateRateSchedule(c echo.Context) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var req models.UpdateRateScheduleRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "At least one tier is required and shares must be fractions",
		})
	}

	for _, tier := range req.Tiers {
		if tier.ReferrerShare < 0 || tier.ClientShare < 0 || tier.ReferrerShare+tier.ClientShare > 1 {
			return c.JSON(http.StatusBadRequest, models.Response{
				Status:  http.StatusBadRequest,
				Message: "Tier shares must be non-negative and sum to at most 1",
			})
		}
	}

	scheduleRepo := repositories.NewRateScheduleRepository(poc.db)
	schedule, err := scheduleRepo.Replace(ctx, req.Tiers, req.NoReferrerClientShare)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to update rate schedule",
		})
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Rate schedule updated",
		Data:    schedule,
	})
}

// UpdateVendorRate changes the commission rate on a vendor's profile.
func (poc *PayoutController) UpdateVendorRate(c echo.Context) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	vendorID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid vendor ID",
		})
	}

	var req models.UpdateVendorRateRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Commission rate must be between 0 and 100",
		})
	}

	usersCollection := config.GetCollection(poc.db, "users")

	result, err := usersCollection.UpdateOne(ctx,
		bson.M{"_id": vendorID, "userType": models.UserTypeVendor, "vendorInfo": bson.M{"$ne": nil}},
		bson.M{"$set": bson.M{
			"vendorInfo.commissionRate": req.CommissionRatePercent,
			"updatedAt":                 time.Now(),
		}})
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Database error",
		})
	}
	if result.MatchedCount == 0 {
		return c.JSON(http.StatusNotFound, models.Response{
			Status:  http.StatusNotFound,
			Message: "Vendor not found",
		})
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Vendor commission rate updated",
	})
}
