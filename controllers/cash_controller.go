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

	"github.com/taruns1620/connectify_hub_backend/config"
	"github.com/taruns1620/connectify_hub_backend/middleware"
	"github.com/taruns1620/connectify_hub_backend/models"
	"github.com/taruns1620/connectify_hub_backend/repositories"
	"github.com/taruns1620/connectify_hub_backend/services"
	"github.com/taruns1620/connectify_hub_backend/utils"
	"github.com/taruns1620/connectify_hub_backend/websocket"
)

type CashController struct {
	db  *mongo.Client
	hub *websocket.Hub
}

func NewCashController(db *mongo.Client, hub *websocket.Hub) *CashController {
	return &CashController{db: db, hub: hub}
}

// Checkin records a client's visit to a vendor. The scanned QR code carries
// the vendor's user ID. A pending cash transaction is created and the client
// is asked by SMS to confirm the charge.
func (cc *CashController) Checkin(c echo.Context) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	clientIDStr, err := middleware.ExtractUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, models.Response{
			Status:  http.StatusUnauthorized,
			Message: "Unauthorized",
		})
	}
	clientID, err := primitive.ObjectIDFromHex(clientIDStr)
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid user ID",
		})
	}

	var req models.CheckinRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Vendor code and a positive bill amount are required",
		})
	}

	vendorID, err := primitive.ObjectIDFromHex(req.VendorCode)
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid vendor code",
		})
	}

	usersCollection := config.GetCollection(cc.db, "users")

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

	var client models.User
	if err := usersCollection.FindOne(ctx, bson.M{"_id": clientID}).Decode(&client); err != nil {
		return c.JSON(http.StatusNotFound, models.Response{
			Status:  http.StatusNotFound,
			Message: "Client account not found",
		})
	}

	txn := models.CashTransaction{
		ID:         primitive.NewObjectID(),
		VendorID:   vendorID,
		ClientID:   clientID,
		BillAmount: req.BillAmount,
		Status:     models.CashTxnStatusPending,
		CreatedAt:  time.Now(),
	}

	txnsCollection := config.GetCollection(cc.db, "cash_transactions")
	if _, err := txnsCollection.InsertOne(ctx, txn); err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to record check-in",
		})
	}

	if client.Phone != "" {
		message := fmt.Sprintf("You checked in at %s with a bill of %.2f. Reply in the app to confirm this charge.",
			vendor.VendorInfo.Name, req.BillAmount)
		go utils.SendSMS(cc.db, client.Phone, message, utils.SMSTriggerCashVerification, txn.ID.Hex())
	}
	go utils.SendPushNotification(cc.db, clientID, "Confirm your purchase",
		fmt.Sprintf("Please confirm your %.2f bill at %s.", req.BillAmount, vendor.VendorInfo.Name))

	return c.JSON(http.StatusCreated, models.Response{
		Status:  http.StatusCreated,
		Message: "Check-in recorded, awaiting client confirmation",
		Data: map[string]interface{}{
			"transactionId": txn.ID.Hex(),
		},
	})
}

// RespondToCashTransaction records the client's yes/no answer to the
// verification request. Only the client named on the transaction may respond,
// and only once.
func (cc *CashController) RespondToCashTransaction(c echo.Context) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	txnID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid transaction ID",
		})
	}

	clientIDStr, err := middleware.ExtractUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, models.Response{
			Status:  http.StatusUnauthorized,
			Message: "Unauthorized",
		})
	}
	clientID, err := primitive.ObjectIDFromHex(clientIDStr)
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid user ID",
		})
	}

	var req models.CashResponseRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	txnsCollection := config.GetCollection(cc.db, "cash_transactions")

	var txn models.CashTransaction
	err = txnsCollection.FindOne(ctx, bson.M{"_id": txnID}).Decode(&txn)
	if err == mongo.ErrNoDocuments {
		return c.JSON(http.StatusNotFound, models.Response{
			Status:  http.StatusNotFound,
			Message: "Cash transaction not found",
		})
	}
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Database error",
		})
	}

	if txn.ClientID != clientID {
		return c.JSON(http.StatusForbidden, models.Response{
			Status:  http.StatusForbidden,
			Message: "You are not the client on this transaction",
		})
	}
	if txn.Status != models.CashTxnStatusPending {
		return c.JSON(http.StatusConflict, models.Response{
			Status:  http.StatusConflict,
			Message: "Transaction has already been processed",
		})
	}
	if txn.ClientVerified != nil {
		return c.JSON(http.StatusConflict, models.Response{
			Status:  http.StatusConflict,
			Message: "You have already responded to this transaction",
		})
	}

	now := time.Now()
	_, err = txnsCollection.UpdateByID(ctx, txnID, bson.M{
		"$set": bson.M{
			"clientVerified":    req.Confirmed,
			"clientRespondedAt": now,
		},
	})
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to record response",
		})
	}

	if cc.hub != nil {
		cc.hub.NotifyCashVerificationPending(map[string]interface{}{
			"transactionId": txnID.Hex(),
			"vendorId":      txn.VendorID.Hex(),
			"clientId":      clientID.Hex(),
			"billAmount":    txn.BillAmount,
			"confirmed":     req.Confirmed,
		})
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Response recorded",
	})
}

// VerifyCashPayment is the admin's final decision on a cash transaction. When
// the client confirmed the charge, the commission record is created in the
// same transaction that flips the cash transaction to approved, so the two can
// never disagree.
func (cc *CashController) VerifyCashPayment(c echo.Context) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	txnID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid transaction ID",
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

	usersCollection := config.GetCollection(cc.db, "users")
	txnsCollection := config.GetCollection(cc.db, "cash_transactions")
	commissionRepo := repositories.NewCommissionRepository(cc.db)
	scheduleRepo := repositories.NewRateScheduleRepository(cc.db)

	var notifyClient models.User

	result, err := repositories.WithTransaction(ctx, cc.db, func(sc mongo.SessionContext) (interface{}, error) {
		var txn models.CashTransaction
		err := txnsCollection.FindOne(sc, bson.M{"_id": txnID}).Decode(&txn)
		if err == mongo.ErrNoDocuments {
			return nil, utils.NewAppError(utils.ErrNotFound, "cash transaction not found")
		}
		if err != nil {
			return nil, err
		}

		if err := services.EnsurePending(txn.Status, models.CashTxnStatusPending, "cash transaction"); err != nil {
			return nil, err
		}

		approved, reason := services.DecideCashVerification(txn)
		now := time.Now()

		if !approved {
			_, err = txnsCollection.UpdateByID(sc, txnID, bson.M{
				"$set": bson.M{
					"status":       models.CashTxnStatusRejected,
					"rejectReason": reason,
					"adminId":      adminID,
					"verifiedAt":   now,
				},
			})
			if err != nil {
				return nil, err
			}
			return models.VerifyCashResult{
				Status: models.CashTxnStatusRejected,
				Reason: reason,
			}, nil
		}

		var vendor models.User
		err = usersCollection.FindOne(sc, bson.M{"_id": txn.VendorID}).Decode(&vendor)
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
		err = usersCollection.FindOne(sc, bson.M{"_id": txn.ClientID}).Decode(&client)
		if err == mongo.ErrNoDocuments {
			return nil, utils.NewAppError(utils.ErrNotFound, "client not found")
		}
		if err != nil {
			return nil, err
		}
		notifyClient = client

		rate := vendor.VendorInfo.CommissionRate
		if err := services.ValidateSplitInputs(txn.BillAmount, rate); err != nil {
			return nil, err
		}

		schedule, err := scheduleRepo.FindActive(sc)
		if err != nil {
			return nil, err
		}

		// Cash check-ins never carry a referrer; the client earns the
		// no-referrer cashback share.
		split := services.ComputeCommissionSplit(schedule, txn.BillAmount, rate, false)
		resolution := services.ResolvePayoutStatuses(
			services.PartyPayout{Amount: split.ClientCashback, HasPayoutAddress: client.PayoutAddress != ""},
			nil, now)

		commission := models.Commission{
			ID:                    primitive.NewObjectID(),
			VendorID:              txn.VendorID,
			ClientID:              txn.ClientID,
			BillAmount:            txn.BillAmount,
			CommissionRatePercent: rate,
			BaseCommissionAmount:  split.BaseCommissionAmount,
			ReferrerPayout:        split.ReferrerPayout,
			ClientCashback:        split.ClientCashback,
			HubShare:              split.HubShare,
			VendorPayout:          split.VendorPayout,
			PaymentType:           models.PaymentTypeCash,
			Status:                models.CommissionStatusSettled,
			ClientPayoutStatus:    resolution.ClientStatus,
			ReferrerPayoutStatus:  resolution.ReferrerStatus,
			PayoutExpiresAt:       resolution.ExpiresAt,
			CashTxnID:             txnID.Hex(),
			CreatedAt:             now,
		}

		commissionID, err := commissionRepo.Insert(sc, commission)
		if err != nil {
			return nil, err
		}

		_, err = txnsCollection.UpdateByID(sc, txnID, bson.M{
			"$set": bson.M{
				"status":       models.CashTxnStatusApproved,
				"commissionId": commissionID,
				"adminId":      adminID,
				"verifiedAt":   now,
			},
		})
		if err != nil {
			return nil, err
		}

		return models.VerifyCashResult{
			Status:             models.CashTxnStatusApproved,
			CommissionCreated:  true,
			CommissionID:       commissionID.Hex(),
			ClientPayoutStatus: resolution.ClientStatus,
		}, nil
	})
	if err != nil {
		status := utils.HTTPStatus(err)
		if status == http.StatusInternalServerError {
			log.Printf("Cash verification transaction failed: %v", err)
		}
		return c.JSON(status, models.Response{
			Status:  status,
			Message: err.Error(),
		})
	}

	verifyResult := result.(models.VerifyCashResult)

	if verifyResult.CommissionCreated {
		if verifyResult.ClientPayoutStatus == models.PayoutStatusPendingAddress && notifyClient.Phone != "" {
			message := "You earned cashback on your recent purchase! Add a payout address within 2 hours to claim it."
			go utils.SendSMS(cc.db, notifyClient.Phone, message, utils.SMSTriggerPayoutDeadline, verifyResult.CommissionID)
		}
		if cc.hub != nil {
			cc.hub.BroadcastToAdmins(websocket.Notification{
				Type:    websocket.NotificationTypeCommissionCreated,
				Message: "Commission created from cash transaction",
				Data: map[string]interface{}{
					"commissionId":  verifyResult.CommissionID,
					"transactionId": txnID.Hex(),
				},
			})
		}
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Cash transaction verified",
		Data:    verifyResult,
	})
}

// ListPendingCashTransactions returns cash transactions awaiting admin review.
func (cc *CashController) ListPendingCashTransactions(c echo.Context) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	txnsCollection := config.GetCollection(cc.db, "cash_transactions")

	cursor, err := txnsCollection.Find(ctx, bson.M{"status": models.CashTxnStatusPending})
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Database error",
		})
	}
	defer cursor.Close(ctx)

	txns := []models.CashTransaction{}
	if err := cursor.All(ctx, &txns); err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to decode transactions",
		})
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Pending cash transactions retrieved",
		Data:    txns,
	})
}
