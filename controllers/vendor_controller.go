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
	"github.com/taruns1620/connectify_hub_backend/utils"
	"github.com/taruns1620/connectify_hub_backend/websocket"
)

type VendorController struct {
	db  *mongo.Client
	hub *websocket.Hub
}

func NewVendorController(db *mongo.Client, hub *websocket.Hub) *VendorController {
	return &VendorController{db: db, hub: hub}
}

// validateRegistrationVariant checks that the fields matching the declared
// vendor type are present.
func validateRegistrationVariant(req models.VendorRegistrationRequest) error {
	switch req.VendorType {
	case models.VendorTypeShop:
		if req.ShopName == "" || req.ShopAddress == "" {
			return utils.NewAppError(utils.ErrInvalidArgument, "shop registrations require shopName and shopAddress")
		}
	case models.VendorTypeOffice:
		if req.OfficeName == "" || req.OfficeAddress == "" {
			return utils.NewAppError(utils.ErrInvalidArgument, "office registrations require officeName and officeAddress")
		}
	case models.VendorTypeFreelancer:
		if req.FullName == "" || req.ServiceArea == "" {
			return utils.NewAppError(utils.ErrInvalidArgument, "freelancer registrations require fullName and serviceArea")
		}
	default:
		return utils.AppErrorf(utils.ErrInvalidArgument, "unknown vendor type %q", req.VendorType)
	}
	return nil
}

// SubmitRegistration files a vendor onboarding request for admin review.
func (vc *VendorController) SubmitRegistration(c echo.Context) error {
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

	var req models.VendorRegistrationRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Vendor type, category and phone are required",
		})
	}
	if err := validateRegistrationVariant(req); err != nil {
		return c.JSON(utils.HTTPStatus(err), models.Response{
			Status:  utils.HTTPStatus(err),
			Message: err.Error(),
		})
	}

	registrationsCollection := config.GetCollection(vc.db, "vendor_registrations")

	// One pending registration per user
	count, err := registrationsCollection.CountDocuments(ctx, bson.M{
		"userId": userID,
		"status": models.RegistrationStatusPending,
	})
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Database error",
		})
	}
	if count > 0 {
		return c.JSON(http.StatusConflict, models.Response{
			Status:  http.StatusConflict,
			Message: "You already have a registration awaiting review",
		})
	}

	registration := models.VendorRegistration{
		ID:            primitive.NewObjectID(),
		UserID:        userID,
		VendorType:    req.VendorType,
		Category:      req.Category,
		Phone:         req.Phone,
		ShopName:      req.ShopName,
		ShopAddress:   req.ShopAddress,
		OfficeName:    req.OfficeName,
		OfficeAddress: req.OfficeAddress,
		FullName:      req.FullName,
		ServiceArea:   req.ServiceArea,
		PayoutAddress: req.PayoutAddress,
		Status:        models.RegistrationStatusPending,
		CreatedAt:     time.Now(),
	}

	if _, err := registrationsCollection.InsertOne(ctx, registration); err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to submit registration",
		})
	}

	if vc.hub != nil {
		vc.hub.NotifyRegistrationPending(map[string]interface{}{
			"registrationId": registration.ID.Hex(),
			"vendorType":     registration.VendorType,
			"category":       registration.Category,
		})
	}
	go func() {
		if err := utils.NotifyAdminsByEmail(
			"New vendor registration awaiting review",
			fmt.Sprintf("A new %s registration (%s) was submitted and is awaiting review.",
				registration.VendorType, registration.ID.Hex()),
		); err != nil {
			log.Printf("Admin email notification failed: %v", err)
		}
	}()

	return c.JSON(http.StatusCreated, models.Response{
		Status:  http.StatusCreated,
		Message: "Registration submitted, awaiting admin review",
		Data: map[string]interface{}{
			"registrationId": registration.ID.Hex(),
		},
	})
}

// GetMyRegistration returns the caller's most recent registration.
func (vc *VendorController) GetMyRegistration(c echo.Context) error {
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

	registrationsCollection := config.GetCollection(vc.db, "vendor_registrations")

	opts := options.FindOne().SetSort(bson.M{"createdAt": -1})
	var registration models.VendorRegistration
	err = registrationsCollection.FindOne(ctx, bson.M{"userId": userID}, opts).Decode(&registration)
	if err == mongo.ErrNoDocuments {
		return c.JSON(http.StatusNotFound, models.Response{
			Status:  http.StatusNotFound,
			Message: "No registration found",
		})
	}
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Database error",
		})
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Registration retrieved",
		Data:    registration,
	})
}

// GetVendorQRCode returns the check-in QR code for the calling vendor. The
// code encodes the vendor's user ID, which clients scan at check-in.
func (vc *VendorController) GetVendorQRCode(c echo.Context) error {
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

	usersCollection := config.GetCollection(vc.db, "users")
	var vendor models.User
	err = usersCollection.FindOne(ctx, bson.M{
		"_id":      userID,
		"userType": models.UserTypeVendor,
	}).Decode(&vendor)
	if err == mongo.ErrNoDocuments {
		return c.JSON(http.StatusForbidden, models.Response{
			Status:  http.StatusForbidden,
			Message: "Only approved vendors have a check-in QR code",
		})
	}
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Database error",
		})
	}

	qrCode, err := utils.GenerateQRCode(userID.Hex())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to generate QR code",
		})
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "QR code generated",
		Data: map[string]interface{}{
			"vendorCode": userID.Hex(),
			"qrCode":     qrCode,
		},
	})
}
