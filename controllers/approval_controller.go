package controllers

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/taruns1620/connectify_hub_backend/config"
	"github.com/taruns1620/connectify_hub_backend/middleware"
	"github.com/taruns1620/connectify_hub_backend/models"
	"github.com/taruns1620/connectify_hub_backend/repositories"
	"github.com/taruns1620/connectify_hub_backend/services"
	"github.com/taruns1620/connectify_hub_backend/utils"
)

type ApprovalController struct {
	db *mongo.Client
}

func NewApprovalController(db *mongo.Client) *ApprovalController {
	return &ApprovalController{db: db}
}

// ApproveVendorRegistration promotes a pending registration to an active
// vendor account. The registration update and the user profile update happen
// in a single transaction so a crash cannot leave an approved registration
// without a vendor profile.
func (apc *ApprovalController) ApproveVendorRegistration(c echo.Context) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	registrationID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid registration ID",
		})
	}

	adminIDStr, err := middleware.ExtractUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, models.Response{
			Status:  http.StatusUnauthorized,
			Message: "Unauthorized",
		})
	}
	adminID, err := primitive.ObjectIDFromHex(adminIDStr)
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid admin ID",
		})
	}

	var req models.ApproveVendorRequest
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

	registrationsCollection := config.GetCollection(apc.db, "vendor_registrations")
	usersCollection := config.GetCollection(apc.db, "users")

	var approvedReg models.VendorRegistration
	_, err = repositories.WithTransaction(ctx, apc.db, func(sc mongo.SessionContext) (interface{}, error) {
		var reg models.VendorRegistration
		err := registrationsCollection.FindOne(sc, bson.M{"_id": registrationID}).Decode(&reg)
		if err == mongo.ErrNoDocuments {
			return nil, utils.NewAppError(utils.ErrNotFound, "vendor registration not found")
		}
		if err != nil {
			return nil, err
		}

		if err := services.EnsurePending(reg.Status, models.RegistrationStatusPending, "vendor registration"); err != nil {
			return nil, err
		}

		var user models.User
		err = usersCollection.FindOne(sc, bson.M{"_id": reg.UserID}).Decode(&user)
		if err == mongo.ErrNoDocuments {
			return nil, utils.NewAppError(utils.ErrNotFound, "registering user not found")
		}
		if err != nil {
			return nil, err
		}

		now := time.Now()
		profile, err := services.BuildVendorProfile(reg, req.CommissionRatePercent, req.BonusRules, now)
		if err != nil {
			return nil, err
		}

		_, err = registrationsCollection.UpdateByID(sc, registrationID, bson.M{
			"$set": bson.M{
				"status":                models.RegistrationStatusApproved,
				"commissionRatePercent": req.CommissionRatePercent,
				"bonusRules":            req.BonusRules,
				"adminId":               adminID,
				"processedAt":           now,
			},
		})
		if err != nil {
			return nil, err
		}

		userUpdate := bson.M{
			"userType":   models.UserTypeVendor,
			"vendorInfo": profile,
			"isActive":   true,
			"updatedAt":  now,
		}
		if reg.PayoutAddress != "" && user.PayoutAddress == "" {
			userUpdate["payoutAddress"] = reg.PayoutAddress
		}
		_, err = usersCollection.UpdateByID(sc, reg.UserID, bson.M{"$set": userUpdate})
		if err != nil {
			return nil, err
		}

		approvedReg = reg
		return nil, nil
	})
	if err != nil {
		status := utils.HTTPStatus(err)
		if status == http.StatusInternalServerError {
			log.Printf("Vendor approval transaction failed: %v", err)
		}
		return c.JSON(status, models.Response{
			Status:  status,
			Message: err.Error(),
		})
	}

	if approvedReg.Phone != "" {
		message := "Congratulations! Your Connectify Hub vendor registration has been approved. You can now accept check-ins."
		go utils.SendSMS(apc.db, approvedReg.Phone, message, utils.SMSTriggerVendorDecision, registrationID.Hex())
	}
	go utils.SendPushNotification(apc.db, approvedReg.UserID, "Registration approved", "Your vendor account is now active.")
	go utils.SaveNotification(apc.db, approvedReg.UserID, "Registration approved",
		"Your vendor account is now active.", "vendor_approved", nil)

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Vendor registration approved",
		Data: map[string]interface{}{
			"registrationId":        registrationID.Hex(),
			"commissionRatePercent": req.CommissionRatePercent,
		},
	})
}

// RejectVendorRegistration marks a pending registration as rejected.
func (apc *ApprovalController) RejectVendorRegistration(c echo.Context) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	registrationID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid registration ID",
		})
	}

	adminIDStr, err := middleware.ExtractUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, models.Response{
			Status:  http.StatusUnauthorized,
			Message: "Unauthorized",
		})
	}
	adminID, _ := primitive.ObjectIDFromHex(adminIDStr)

	var req models.RejectVendorRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	registrationRepo := repositories.NewRegistrationRepository(apc.db)

	reg, err := registrationRepo.FindByID(ctx, registrationID)
	if err == mongo.ErrNoDocuments {
		return c.JSON(http.StatusNotFound, models.Response{
			Status:  http.StatusNotFound,
			Message: "Vendor registration not found",
		})
	}
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Database error",
		})
	}

	// The pending check rides on the update filter so a racing approve
	// cannot be overwritten.
	if err := registrationRepo.MarkRejected(ctx, registrationID, adminID, req.Reason, time.Now()); err != nil {
		status := utils.HTTPStatus(err)
		if status == http.StatusInternalServerError {
			log.Printf("Vendor rejection failed: %v", err)
		}
		return c.JSON(status, models.Response{
			Status:  status,
			Message: err.Error(),
		})
	}

	if reg.Phone != "" {
		message := "Your Connectify Hub vendor registration was not approved."
		if req.Reason != "" {
			message = fmt.Sprintf("Your Connectify Hub vendor registration was not approved. Reason: %s", req.Reason)
		}
		go utils.SendSMS(apc.db, reg.Phone, message, utils.SMSTriggerVendorDecision, registrationID.Hex())
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Vendor registration rejected",
	})
}

// ListPendingRegistrations returns registrations awaiting review, oldest first.
func (apc *ApprovalController) ListPendingRegistrations(c echo.Context) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	registrationsCollection := config.GetCollection(apc.db, "vendor_registrations")

	opts := options.Find().SetSort(bson.M{"createdAt": 1})
	cursor, err := registrationsCollection.Find(ctx, bson.M{"status": models.RegistrationStatusPending}, opts)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Database error",
		})
	}
	defer cursor.Close(ctx)

	registrations := []models.VendorRegistration{}
	if err := cursor.All(ctx, &registrations); err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to decode registrations",
		})
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Pending registrations retrieved",
		Data:    registrations,
	})
}
