package razorpay

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"testing"
)

func sign(payload, secret string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(payload))
	return hex.EncodeToString(mac.Sum(nil))
}

func TestVerifyPaymentSignature(t *testing.T) {
	secret := "test_secret"
	good := sign("order_123|pay_456", secret)

	if !VerifyPaymentSignature("order_123", "pay_456", good, secret) {
		t.Error("valid signature rejected")
	}
	if VerifyPaymentSignature("order_123", "pay_456", good, "other_secret") {
		t.Error("signature accepted with wrong secret")
	}
	if VerifyPaymentSignature("order_999", "pay_456", good, secret) {
		t.Error("signature accepted for different order")
	}
	if VerifyPaymentSignature("order_123", "pay_456", "", secret) {
		t.Error("empty signature accepted")
	}
	if VerifyPaymentSignature("order_123", "pay_456", good, "") {
		t.Error("empty secret accepted")
	}
}

func TestVerifySubscriptionSignature(t *testing.T) {
	secret := "test_secret"
	good := sign("pay_456|sub_789", secret)

	if !VerifySubscriptionSignature("pay_456", "sub_789", good, secret) {
		t.Error("valid signature rejected")
	}
	// The payload order matters: payment id first, subscription id second.
	swapped := sign("sub_789|pay_456", secret)
	if VerifySubscriptionSignature("pay_456", "sub_789", swapped, secret) {
		t.Error("swapped payload accepted")
	}
}

func TestVerifyWebhookSignature(t *testing.T) {
	secret := "webhook_secret"
	body := []byte(`{"event":"subscription.activated","payload":{}}`)
	good := sign(string(body), secret)

	if !VerifyWebhookSignature(body, good, secret) {
		t.Error("valid signature rejected")
	}

	tampered := []byte(`{"event":"subscription.activated","payload":{"x":1}}`)
	if VerifyWebhookSignature(tampered, good, secret) {
		t.Error("tampered body accepted")
	}
}
