package controllers

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/taruns1620/connectify_hub_backend/config"
	"github.com/taruns1620/connectify_hub_backend/middleware"
	"github.com/taruns1620/connectify_hub_backend/models"
	"github.com/taruns1620/connectify_hub_backend/utils"
)

const referralPoints = 5

type ReferralController struct {
	db *mongo.Client
}

func NewReferralController(db *mongo.Client) *ReferralController {
	return &ReferralController{db: db}
}

// linkReferral attaches a referrer to the given user by referral code and
// credits the referrer's points. Shared with the OTP verification flow.
func linkReferral(ctx context.Context, db *mongo.Client, userID primitive.ObjectID, referralCode string) error {
	usersCollection := config.GetCollection(db, "users")

	var referrer models.User
	err := usersCollection.FindOne(ctx, bson.M{"referralCode": referralCode}).Decode(&referrer)
	if err == mongo.ErrNoDocuments {
		return utils.NewAppError(utils.ErrNotFound, "referral code not found")
	}
	if err != nil {
		return err
	}

	if referrer.ID == userID {
		return utils.NewAppError(utils.ErrInvalidArgument, "cannot refer yourself")
	}

	var user models.User
	if err := usersCollection.FindOne(ctx, bson.M{"_id": userID}).Decode(&user); err != nil {
		return err
	}
	if user.ReferredBy != nil {
		return utils.NewAppError(utils.ErrFailedPrecondition, "user already has a referrer")
	}

	now := time.Now()
	_, err = usersCollection.UpdateByID(ctx, userID, bson.M{
		"$set": bson.M{"referredBy": referrer.ID, "updatedAt": now},
	})
	if err != nil {
		return err
	}

	_, err = usersCollection.UpdateByID(ctx, referrer.ID, bson.M{
		"$push": bson.M{"referrals": userID},
		"$inc":  bson.M{"points": referralPoints},
		"$set":  bson.M{"updatedAt": now},
	})
	if err != nil {
		return err
	}

	if referrer.Phone != "" {
		message := "Someone just joined Connectify Hub with your referral code. You earned reward points!"
		go utils.SendSMS(db, referrer.Phone, message, utils.SMSTriggerReferral, userID.Hex())
	}

	return nil
}

// HandleReferral lets an authenticated user submit a referral code after signup.
func (rc *ReferralController) HandleReferral(c echo.Context) error {
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

	var req models.ReferralRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Referral code is required",
		})
	}

	if err := linkReferral(ctx, rc.db, userID, req.ReferralCode); err != nil {
		return c.JSON(utils.HTTPStatus(err), models.Response{
			Status:  utils.HTTPStatus(err),
			Message: err.Error(),
		})
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Referral applied successfully",
	})
}

// GetReferralData returns the caller's referral code, stats, share link and QR image.
func (rc *ReferralController) GetReferralData(c echo.Context) error {
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

	usersCollection := config.GetCollection(rc.db, "users")

	var user models.User
	if err := usersCollection.FindOne(ctx, bson.M{"_id": userID}).Decode(&user); err != nil {
		return c.JSON(http.StatusNotFound, models.Response{
			Status:  http.StatusNotFound,
			Message: "User not found",
		})
	}

	// Older accounts may predate referral codes
	if user.ReferralCode == "" {
		var code string
		var codeErr error
		if user.UserType == models.UserTypeVendor {
			code, codeErr = utils.GenerateVendorReferralCode()
		} else {
			code, codeErr = utils.GenerateClientReferralCode()
		}
		if codeErr != nil {
			return c.JSON(http.StatusInternalServerError, models.Response{
				Status:  http.StatusInternalServerError,
				Message: "Failed to generate referral code",
			})
		}
		_, err = usersCollection.UpdateByID(ctx, userID, bson.M{
			"$set": bson.M{"referralCode": code, "updatedAt": time.Now()},
		})
		if err != nil {
			return c.JSON(http.StatusInternalServerError, models.Response{
				Status:  http.StatusInternalServerError,
				Message: "Failed to store referral code",
			})
		}
		user.ReferralCode = code
	}

	baseURL := os.Getenv("WEBSITE_URL")
	if baseURL == "" {
		baseURL = "https://connectifyhub.app"
	}
	referralLink := fmt.Sprintf("%s/join?ref=%s", baseURL, user.ReferralCode)

	qrCode, err := utils.GenerateQRCode(referralLink)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to generate QR code",
		})
	}

	data := models.ReferralData{
		ReferralCode:  user.ReferralCode,
		ReferralCount: len(user.Referrals),
		Points:        user.Points,
		ReferralLink:  referralLink,
		QRCode:        qrCode,
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Referral data retrieved",
		Data:    data,
	})
}
