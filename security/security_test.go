package security

import (
	"testing"
)

func TestVerifyWebhookSignature(t *testing.T) {
	body := []byte(`{"transactionId":"txn-123","amount":500,"status":"success"}`)
	secret := "test-webhook-secret"

	t.Setenv("GATEWAY_WEBHOOK_SECRET", secret)

	valid := SignWebhookPayload(body, secret)
	if !VerifyWebhookSignature(body, valid) {
		t.Error("valid signature rejected")
	}
	if VerifyWebhookSignature(body, "deadbeef") {
		t.Error("bogus signature accepted")
	}
	if VerifyWebhookSignature([]byte(`{"tampered":true}`), valid) {
		t.Error("signature accepted for tampered body")
	}
}

func TestVerifyWebhookSignatureNoSecret(t *testing.T) {
	t.Setenv("GATEWAY_WEBHOOK_SECRET", "")

	if !VerifyWebhookSignature([]byte("anything"), "") {
		t.Error("verification should be skipped when no secret is configured")
	}
}
