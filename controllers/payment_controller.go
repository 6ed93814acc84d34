package controllers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/taruns1620/connectify_hub_backend/config"
	"github.com/taruns1620/connectify_hub_backend/middleware"
	"github.com/taruns1620/connectify_hub_backend/models"
	"github.com/taruns1620/connectify_hub_backend/repositories"
	"github.com/taruns1620/connectify_hub_backend/security"
	"github.com/taruns1620/connectify_hub_backend/services"
	"github.com/taruns1620/connectify_hub_backend/utils"
	"github.com/taruns1620/connectify_hub_backend/websocket"
)

type PaymentController struct {
	db      *mongo.Client
	hub     *websocket.Hub
	gateway *services.GatewayService
}

func NewPaymentController(db *mongo.Client, hub *websocket.Hub) *PaymentController {
	return &PaymentController{
		db:      db,
		hub:     hub,
		gateway: services.NewGatewayService(),
	}
}

// InitiatePayment creates a gateway payment session for an online bill and
// returns the collect URL the client should be redirected to.
func (pc *PaymentController) InitiatePayment(c echo.Context) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	clientIDStr, err := middleware.ExtractUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, models.Response{
			Status:  http.StatusUnauthorized,
			Message: "Unauthorized",
		})
	}

	var req models.InitiatePaymentRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Vendor ID and a positive bill amount are required",
		})
	}

	vendorID, err := primitive.ObjectIDFromHex(req.VendorID)
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid vendor ID",
		})
	}

	usersCollection := config.GetCollection(pc.db, "users")
	var vendor models.User
	err = usersCollection.FindOne(ctx, bson.M{
		"_id":      vendorID,
		"userType": models.UserTypeVendor,
	}).Decode(&vendor)
	if err == mongo.ErrNoDocuments {
		return c.JSON(http.StatusNotFound, models.Response{
			Status:  http.StatusNotFound,
			Message: "Vendor not found",
		})
	}
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Database error",
		})
	}
	if vendor.VendorInfo == nil || !vendor.VendorInfo.IsActive {
		return c.JSON(http.StatusConflict, models.Response{
			Status:  http.StatusConflict,
			Message: "Vendor is not active",
		})
	}

	currency := req.Currency
	if currency == "" {
		currency = "USD"
	}

	externalID := uuid.New().String()
	websiteURL := os.Getenv("WEBSITE_URL")

	amount := req.BillAmount
	collectURL, err := pc.gateway.CreatePayment(models.GatewayRequest{
		Amount:             &amount,
		Currency:           currency,
		Invoice:            fmt.Sprintf("checkin-%s-%s", req.VendorID, clientIDStr),
		ExternalID:         externalID,
		SuccessCallbackURL: websiteURL + "/payment/success",
		FailureCallbackURL: websiteURL + "/payment/failure",
	})
	if err != nil {
		log.Printf("Gateway payment creation failed: %v", err)
		return c.JSON(http.StatusBadGateway, models.Response{
			Status:  http.StatusBadGateway,
			Message: "Payment gateway error",
		})
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Payment session created",
		Data: map[string]interface{}{
			"collectUrl": collectURL,
			"externalId": externalID,
		},
	})
}

// HandleWebhook processes the gateway's payment callback. A successful
// payment creates the commission record atomically; replays of the same
// gateway transaction are acknowledged without creating a duplicate.
func (pc *PaymentController) HandleWebhook(c echo.Context) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	body, err := io.ReadAll(c.Request().Body)
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Failed to read request body",
		})
	}

	signature := c.Request().Header.Get("X-Webhook-Signature")
	if !security.VerifyWebhookSignature(body, signature) {
		return c.JSON(http.StatusForbidden, models.Response{
			Status:  http.StatusForbidden,
			Message: "Invalid webhook signature",
		})
	}

	var payload models.PaymentWebhookPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid webhook payload",
		})
	}
	if err := c.Validate(&payload); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Webhook payload is missing required fields",
		})
	}

	// Failed and cancelled payments are acknowledged but create nothing.
	if payload.Status != models.GatewayStatusSuccess {
		log.Printf("Webhook for transaction %s ignored, status %q", payload.TransactionID, payload.Status)
		return c.JSON(http.StatusOK, models.Response{
			Status:  http.StatusOK,
			Message: "Webhook acknowledged",
		})
	}

	vendorID, err := primitive.ObjectIDFromHex(payload.VendorID)
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid vendor ID in payload",
		})
	}
	clientID, err := primitive.ObjectIDFromHex(payload.ClientID)
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid client ID in payload",
		})
	}

	usersCollection := config.GetCollection(pc.db, "users")
	commissionRepo := repositories.NewCommissionRepository(pc.db)
	scheduleRepo := repositories.NewRateScheduleRepository(pc.db)
	commissionsCollection := config.GetCollection(pc.db, "commissions")

	var notifyClient, notifyReferrer models.User
	var hasReferrer bool

	result, err := repositories.WithTransaction(ctx, pc.db, func(sc mongo.SessionContext) (interface{}, error) {
		// Idempotency: a replayed webhook must not create a second commission.
		count, err := commissionsCollection.CountDocuments(sc, bson.M{"gatewayTxnId": payload.TransactionID})
		if err != nil {
			return nil, err
		}
		if count > 0 {
			return nil, nil
		}

		var vendor models.User
		err = usersCollection.FindOne(sc, bson.M{"_id": vendorID, "userType": models.UserTypeVendor}).Decode(&vendor)
		if err == mongo.ErrNoDocuments {
			return nil, utils.NewAppError(utils.ErrNotFound, "vendor not found")
		}
		if err != nil {
			return nil, err
		}
		if vendor.VendorInfo == nil {
			return nil, utils.NewAppError(utils.ErrFailedPrecondition, "vendor has no commission rate configured")
		}

		var client models.User
		err = usersCollection.FindOne(sc, bson.M{"_id": clientID}).Decode(&client)
		if err == mongo.ErrNoDocuments {
			return nil, utils.NewAppError(utils.ErrNotFound, "client not found")
		}
		if err != nil {
			return nil, err
		}
		notifyClient = client

		var referrerID *primitive.ObjectID
		var referrerLeg *services.PartyPayout
		if payload.ReferrerID != "" {
			rid, err := primitive.ObjectIDFromHex(payload.ReferrerID)
			if err != nil {
				return nil, utils.NewAppError(utils.ErrInvalidArgument, "invalid referrer ID in payload")
			}
			var referrer models.User
			err = usersCollection.FindOne(sc, bson.M{"_id": rid}).Decode(&referrer)
			if err == mongo.ErrNoDocuments {
				return nil, utils.NewAppError(utils.ErrNotFound, "referrer not found")
			}
			if err != nil {
				return nil, err
			}
			notifyReferrer = referrer
			referrerID = &rid
			hasReferrer = true
			referrerLeg = &services.PartyPayout{HasPayoutAddress: referrer.PayoutAddress != ""}
		}

		rate := vendor.VendorInfo.CommissionRate
		if err := services.ValidateSplitInputs(payload.Amount, rate); err != nil {
			return nil, err
		}

		schedule, err := scheduleRepo.FindActive(sc)
		if err != nil {
			return nil, err
		}

		split := services.ComputeCommissionSplit(schedule, payload.Amount, rate, hasReferrer)

		now := time.Now()
		if referrerLeg != nil {
			referrerLeg.Amount = split.ReferrerPayout
		}
		resolution := services.ResolvePayoutStatuses(
			services.PartyPayout{Amount: split.ClientCashback, HasPayoutAddress: client.PayoutAddress != ""},
			referrerLeg, now)

		commission := models.Commission{
			ID:                    primitive.NewObjectID(),
			VendorID:              vendorID,
			ClientID:              clientID,
			RefID:                 referrerID,
			BillAmount:            payload.Amount,
			CommissionRatePercent: rate,
			BaseCommissionAmount:  split.BaseCommissionAmount,
			ReferrerPayout:        split.ReferrerPayout,
			ClientCashback:        split.ClientCashback,
			HubShare:              split.HubShare,
			VendorPayout:          split.VendorPayout,
			PaymentType:           models.PaymentTypeOnline,
			Status:                models.CommissionStatusSettled,
			ClientPayoutStatus:    resolution.ClientStatus,
			ReferrerPayoutStatus:  resolution.ReferrerStatus,
			PayoutExpiresAt:       resolution.ExpiresAt,
			GatewayTxnID:          payload.TransactionID,
			CreatedAt:             now,
		}

		commissionID, err := commissionRepo.Insert(sc, commission)
		if err != nil {
			return nil, err
		}
		return commissionID, nil
	})
	if errors.Is(err, repositories.ErrDuplicateGatewayTxn) {
		err = nil
		result = nil
	}
	if err != nil {
		status := utils.HTTPStatus(err)
		if status == http.StatusInternalServerError {
			log.Printf("Webhook commission transaction failed: %v", err)
		}
		return c.JSON(status, models.Response{
			Status:  status,
			Message: err.Error(),
		})
	}

	if result == nil {
		// Duplicate delivery
		return c.JSON(http.StatusOK, models.Response{
			Status:  http.StatusOK,
			Message: "Webhook already processed",
		})
	}

	commissionID := result.(primitive.ObjectID)

	if notifyClient.PayoutAddress == "" && notifyClient.Phone != "" {
		message := "You earned cashback on your recent purchase! Add a payout address within 2 hours to claim it."
		go utils.SendSMS(pc.db, notifyClient.Phone, message, utils.SMSTriggerPayoutDeadline, commissionID.Hex())
	}
	if hasReferrer && notifyReferrer.PayoutAddress == "" && notifyReferrer.Phone != "" {
		message := "You earned a referral commission! Add a payout address within 2 hours to claim it."
		go utils.SendSMS(pc.db, notifyReferrer.Phone, message, utils.SMSTriggerPayoutDeadline, commissionID.Hex())
	}
	if pc.hub != nil {
		pc.hub.BroadcastToAdmins(websocket.Notification{
			Type:    websocket.NotificationTypeCommissionCreated,
			Message: "Commission created from online payment",
			Data: map[string]interface{}{
				"commissionId":  commissionID.Hex(),
				"transactionId": payload.TransactionID,
			},
		})
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Webhook processed",
		Data: map[string]interface{}{
			"commissionId": commissionID.Hex(),
		},
	})
}
