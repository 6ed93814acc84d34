package utils

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/mongo"

	"github.com/taruns1620/connectify_hub_backend/config"
	"github.com/taruns1620/connectify_hub_backend/models"
)

// SMS trigger events recorded in the SMS log.
const (
	SMSTriggerOTP              = "otp"
	SMSTriggerCashVerification = "cash_verification"
	SMSTriggerReferral         = "referral"
	SMSTriggerPayoutDeadline   = "payout_deadline"
	SMSTriggerVendorDecision   = "vendor_decision"
)

// SMSService sends SMS messages through the bulk SMS HTTP API.
type SMSService struct {
	Username string
	Password string
	SenderID string
	APIPath  string
	Client   *http.Client
}

// SMSResponse represents the response from the bulk SMS API
type SMSResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	Data    struct {
		MessageID string `json:"message_id"`
		Cost      string `json:"cost"`
	} `json:"data"`
}

// NewSMSService creates a new SMS service instance
func NewSMSService() *SMSService {
	return &SMSService{
		Username: os.Getenv("SMS_USERNAME"),
		Password: os.Getenv("SMS_PASSWORD"),
		SenderID: os.Getenv("SMS_SENDER_ID"),
		APIPath:  os.Getenv("SMS_API_URL"),
		Client: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// Send delivers one SMS to the destination number.
func (s *SMSService) Send(phoneNumber, message string) error {
	if s.APIPath == "" {
		return fmt.Errorf("SMS_API_URL is not configured")
	}

	if !strings.HasPrefix(phoneNumber, "+") {
		phoneNumber = "+" + phoneNumber
	}

	params := url.Values{}
	params.Set("username", s.Username)
	params.Set("password", s.Password)
	params.Set("senderid", s.SenderID)
	params.Set("destination", phoneNumber)
	params.Set("message", message)

	fullURL := fmt.Sprintf("%s?%s", s.APIPath, params.Encode())

	req, err := http.NewRequest("POST", fullURL, nil)
	if err != nil {
		return fmt.Errorf("failed to create HTTP request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json; charset=utf-8")

	resp, err := s.Client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send SMS request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("SMS API returned status %d: %s", resp.StatusCode, string(body))
	}

	var smsResp SMSResponse
	if err := json.Unmarshal(body, &smsResp); err != nil {
		// Some gateway responses are plain text on success
		responseStr := strings.TrimSpace(string(body))
		if strings.Contains(strings.ToLower(responseStr), "success") ||
			strings.Contains(strings.ToLower(responseStr), "sent") {
			return nil
		}
		return fmt.Errorf("failed to parse SMS response: %w", err)
	}

	if smsResp.Status == "success" || smsResp.Status == "sent" {
		return nil
	}

	return fmt.Errorf("SMS sending failed: %s", smsResp.Message)
}

// SendSMS sends a message and records the attempt in the sms_logs
// collection. Failures are logged and recorded but never propagated: SMS
// delivery is best-effort and must not roll back the business operation
// that triggered it.
func SendSMS(db *mongo.Client, destination, message, triggerEvent, relatedID string) {
	err := NewSMSService().Send(destination, message)

	entry := models.SMSLog{
		Destination:  destination,
		Message:      message,
		TriggerEvent: triggerEvent,
		RelatedID:    relatedID,
		Sent:         err == nil,
		CreatedAt:    time.Now(),
	}
	if err != nil {
		entry.Error = err.Error()
		log.Printf("SMS delivery failed (%s, %s): %v", triggerEvent, destination, err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if _, logErr := config.GetCollection(db, "sms_logs").InsertOne(ctx, entry); logErr != nil {
		log.Printf("Failed to record SMS log entry: %v", logErr)
	}
}
