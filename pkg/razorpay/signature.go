package razorpay

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
)

// VerifyPaymentSignature checks the checkout callback signature for a
// one-time order payment. The signed payload is "orderId|paymentId".
func VerifyPaymentSignature(orderId, paymentId, signature, secret string) bool {
	return verify([]byte(orderId+"|"+paymentId), signature, secret)
}

// VerifySubscriptionSignature checks the checkout callback signature
// for a subscription payment. The signed payload is
// "paymentId|subscriptionId".
func VerifySubscriptionSignature(paymentId, subscriptionId, signature, secret string) bool {
	return verify([]byte(paymentId+"|"+subscriptionId), signature, secret)
}

// VerifyWebhookSignature checks the X-Razorpay-Signature header against
// the raw request body.
func VerifyWebhookSignature(body []byte, signature, secret string) bool {
	return verify(body, signature, secret)
}

func verify(payload []byte, signature, secret string) bool {
	if signature == "" || secret == "" {
		return false
	}
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(payload)
	expected := hex.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(expected), []byte(signature))
}
