package services

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/taruns1620/connectify_hub_backend/models"
)

// GatewayService handles interactions with the payment gateway API.
type GatewayService struct {
	baseURL    string
	channel    string
	secret     string
	websiteURL string
}

// NewGatewayService creates a new gateway service instance
func NewGatewayService() *GatewayService {
	baseURL := os.Getenv("GATEWAY_BASE_URL")
	channel := os.Getenv("GATEWAY_CHANNEL")
	secret := os.Getenv("GATEWAY_SECRET")
	websiteURL := os.Getenv("GATEWAY_WEBSITE_URL")

	if baseURL == "" || channel == "" || secret == "" {
		log.Printf("WARNING: payment gateway credentials not fully configured")
		log.Printf("Set GATEWAY_BASE_URL, GATEWAY_CHANNEL, GATEWAY_SECRET and GATEWAY_WEBSITE_URL")
	}

	return &GatewayService{
		baseURL:    baseURL,
		channel:    channel,
		secret:     secret,
		websiteURL: websiteURL,
	}
}

func (s *GatewayService) getHeaders() map[string]string {
	return map[string]string{
		"Content-Type": "application/json",
		"channel":      s.channel,
		"secret":       s.secret,
		"websiteurl":   s.websiteURL,
	}
}

// makeRequest performs an HTTP request to the gateway API
func (s *GatewayService) makeRequest(method, endpoint string, payload interface{}) (*models.GatewayResponse, error) {
	if s.channel == "" || s.secret == "" {
		return nil, fmt.Errorf("missing gateway credentials")
	}

	url := s.baseURL + endpoint

	var body io.Reader
	if payload != nil {
		jsonData, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request: %w", err)
		}
		body = bytes.NewBuffer(jsonData)
	}

	req, err := http.NewRequest(method, url, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	for key, value := range s.getHeaders() {
		req.Header.Set(key, value)
	}

	client := &http.Client{
		Timeout: 30 * time.Second,
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	var gatewayResp models.GatewayResponse
	if err := json.Unmarshal(respBody, &gatewayResp); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w\nResponse body: %s", err, string(respBody))
	}

	if !gatewayResp.Status {
		code := "unknown"
		if gatewayResp.Code != nil {
			code = fmt.Sprintf("%v", gatewayResp.Code)
		}
		return &gatewayResp, fmt.Errorf("gateway API error: %s", code)
	}

	return &gatewayResp, nil
}

// CreatePayment creates a payment and returns the collect URL the client is
// redirected to.
func (s *GatewayService) CreatePayment(req models.GatewayRequest) (string, error) {
	resp, err := s.makeRequest("POST", "payment/collect", req)
	if err != nil {
		return "", err
	}

	if collectURL, ok := resp.Data["collectUrl"].(string); ok {
		return collectURL, nil
	}

	return "", fmt.Errorf("failed to parse collect URL from response")
}

// GetPaymentStatus returns the status of a payment transaction
func (s *GatewayService) GetPaymentStatus(currency, externalID string) (string, error) {
	payload := models.GatewayRequest{
		Currency:   currency,
		ExternalID: externalID,
	}

	resp, err := s.makeRequest("POST", "payment/collect/status", payload)
	if err != nil {
		return "", err
	}

	if status, ok := resp.Data["collectStatus"].(string); ok {
		return status, nil
	}

	return "", fmt.Errorf("failed to parse payment status from response")
}
