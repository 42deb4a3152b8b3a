package dto

import "encoding/json"

// RazorpayWebhookEvent mirrors the gateway webhook envelope. Only the
// fields the billing flows read are mapped; the rest stays raw.
type RazorpayWebhookEvent struct {
	Event   string `json:"event"`
	Payload struct {
		Subscription struct {
			Entity struct {
				Id     string          `json:"id"`
				Status string          `json:"status"`
				Notes  json.RawMessage `json:"notes"`
			} `json:"entity"`
		} `json:"subscription"`
		Payment struct {
			Entity struct {
				Id     string `json:"id"`
				Amount int64  `json:"amount"`
				Status string `json:"status"`
			} `json:"entity"`
		} `json:"payment"`
	} `json:"payload"`
}
