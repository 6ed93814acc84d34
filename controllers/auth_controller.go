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
	"golang.org/x/crypto/bcrypt"

	"github.com/taruns1620/connectify_hub_backend/config"
	"github.com/taruns1620/connectify_hub_backend/middleware"
	"github.com/taruns1620/connectify_hub_backend/models"
	"github.com/taruns1620/connectify_hub_backend/utils"
)

const otpValidity = 10 * time.Minute

type AuthController struct {
	db *mongo.Client
}

func NewAuthController(db *mongo.Client) *AuthController {
	return &AuthController{db: db}
}

// RequestOTP sends a one-time code to the given phone number, creating a
// skeleton client account on first contact.
func (ac *AuthController) RequestOTP(c echo.Context) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var req models.RequestOTPRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Phone number is required",
		})
	}

	if err := utils.ValidateOTPAttempts(req.Phone, config.GetRedisClient()); err != nil {
		return c.JSON(http.StatusTooManyRequests, models.Response{
			Status:  http.StatusTooManyRequests,
			Message: "Too many OTP requests, try again later",
		})
	}

	otp, err := utils.GenerateSecureOTP()
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to generate OTP",
		})
	}

	usersCollection := config.GetCollection(ac.db, "users")
	now := time.Now()
	otpInfo := models.OTPInfo{
		OTP:       otp,
		ExpiresAt: now.Add(otpValidity),
	}

	var user models.User
	err = usersCollection.FindOne(ctx, bson.M{"phone": req.Phone}).Decode(&user)
	if err == mongo.ErrNoDocuments {
		referralCode, codeErr := utils.GenerateClientReferralCode()
		if codeErr != nil {
			return c.JSON(http.StatusInternalServerError, models.Response{
				Status:  http.StatusInternalServerError,
				Message: "Failed to create account",
			})
		}
		newUser := models.User{
			ID:           primitive.NewObjectID(),
			Phone:        req.Phone,
			UserType:     models.UserTypeClient,
			ReferralCode: referralCode,
			OTPInfo:      &otpInfo,
			CreatedAt:    now,
			UpdatedAt:    now,
		}
		if _, insErr := usersCollection.InsertOne(ctx, newUser); insErr != nil {
			return c.JSON(http.StatusInternalServerError, models.Response{
				Status:  http.StatusInternalServerError,
				Message: "Failed to create account",
			})
		}
	} else if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Database error",
		})
	} else {
		_, err = usersCollection.UpdateByID(ctx, user.ID, bson.M{
			"$set": bson.M{"otpInfo": otpInfo, "updatedAt": now},
		})
		if err != nil {
			return c.JSON(http.StatusInternalServerError, models.Response{
				Status:  http.StatusInternalServerError,
				Message: "Failed to store OTP",
			})
		}
	}

	message := fmt.Sprintf("Your Connectify Hub verification code is: %s. This code will expire in 10 minutes.", otp)
	go utils.SendSMS(ac.db, req.Phone, message, utils.SMSTriggerOTP, "")

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "OTP sent successfully",
	})
}

// VerifyOTP checks the code and issues a JWT pair.
func (ac *AuthController) VerifyOTP(c echo.Context) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var req models.VerifyOTPRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Phone and OTP are required",
		})
	}

	usersCollection := config.GetCollection(ac.db, "users")

	var user models.User
	err := usersCollection.FindOne(ctx, bson.M{"phone": req.Phone}).Decode(&user)
	if err == mongo.ErrNoDocuments {
		return c.JSON(http.StatusNotFound, models.Response{
			Status:  http.StatusNotFound,
			Message: "No account found for this phone number",
		})
	}
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Database error",
		})
	}

	if user.OTPInfo == nil || user.OTPInfo.OTP != req.OTP {
		return c.JSON(http.StatusUnauthorized, models.Response{
			Status:  http.StatusUnauthorized,
			Message: "Invalid OTP",
		})
	}
	if time.Now().After(user.OTPInfo.ExpiresAt) {
		return c.JSON(http.StatusUnauthorized, models.Response{
			Status:  http.StatusUnauthorized,
			Message: "OTP has expired",
		})
	}

	update := bson.M{
		"phoneVerified": true,
		"isActive":      true,
		"updatedAt":     time.Now(),
	}
	if req.FullName != "" && user.FullName == "" {
		update["fullName"] = req.FullName
	}

	_, err = usersCollection.UpdateByID(ctx, user.ID, bson.M{
		"$set":   update,
		"$unset": bson.M{"otpInfo": ""},
	})
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to update account",
		})
	}

	// First login may carry a referral code
	if req.ReferralCode != "" && user.ReferredBy == nil {
		if err := linkReferral(ctx, ac.db, user.ID, req.ReferralCode); err != nil {
			log.Printf("Referral link failed for user %s: %v", user.ID.Hex(), err)
		}
	}

	token, refreshToken, err := middleware.GenerateJWT(user.ID.Hex(), user.Phone, user.UserType)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to generate token",
		})
	}

	user.Password = ""
	user.OTPInfo = nil

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Login successful",
		Data: map[string]interface{}{
			"token":        token,
			"refreshToken": refreshToken,
			"user":         user,
		},
	})
}

// AdminLogin authenticates an admin by email and password.
func (ac *AuthController) AdminLogin(c echo.Context) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var req models.AdminLoginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Email and password are required",
		})
	}

	usersCollection := config.GetCollection(ac.db, "users")

	var admin models.User
	err := usersCollection.FindOne(ctx, bson.M{
		"email":    req.Email,
		"userType": models.UserTypeAdmin,
	}).Decode(&admin)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, models.Response{
			Status:  http.StatusUnauthorized,
			Message: "Invalid credentials",
		})
	}

	if err := bcrypt.CompareHashAndPassword([]byte(admin.Password), []byte(req.Password)); err != nil {
		return c.JSON(http.StatusUnauthorized, models.Response{
			Status:  http.StatusUnauthorized,
			Message: "Invalid credentials",
		})
	}

	token, refreshToken, err := middleware.GenerateJWT(admin.ID.Hex(), admin.Phone, admin.UserType)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to generate token",
		})
	}

	admin.Password = ""

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Login successful",
		Data: map[string]interface{}{
			"token":        token,
			"refreshToken": refreshToken,
			"user":         admin,
		},
	})
}
