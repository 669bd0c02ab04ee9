package messaging

import (
	"api/middlewares"
	"api/utils"
	"bytes"
	"encoding/json"
	"net/http"
	"os"
	"time"

	"go.uber.org/zap"
)

type Recipient struct {
	Phone string `json:"phone"`
	Name  string `json:"name"`
}

type outboundMessage struct {
	Action     string      `json:"action"`
	Message    string      `json:"message"`
	Recipients []Recipient `json:"recipients"`
}

type sendResponse struct {
	Sent bool `json:"sent"`
}

// SendBulk forwards a templated message to the externally configured
// webhook. One POST, boolean outcome, no retry.
func SendBulk(w http.ResponseWriter, r *http.Request) {
	if _, ok := middlewares.SessionFromRequest(r); !ok {
		utils.SendResponse(w, http.StatusUnauthorized, "Missing session", nil, 0)
		return
	}

	payload := outboundMessage{}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.SendResponse(w, http.StatusBadRequest, "Malformed message payload", nil, 0)
		return
	}
	if payload.Message == "" || len(payload.Recipients) == 0 {
		utils.SendResponse(w, http.StatusBadRequest, "Message and recipients are required", nil, 0)
		return
	}
	if payload.Action == "" {
		payload.Action = "bulk_message"
	}
	for i := range payload.Recipients {
		payload.Recipients[i].Phone = utils.NormalizePhone(payload.Recipients[i].Phone)
	}

	webhookURL := os.Getenv(utils.WEBHOOK_URL)
	if webhookURL == "" {
		utils.SendResponse(w, http.StatusServiceUnavailable, "Outbound messaging is not configured", nil, 0)
		return
	}

	body, err := json.Marshal(payload)
	if err != nil {
		utils.SendResponse(w, http.StatusInternalServerError, "Cannot encode message payload", nil, 0)
		return
	}

	client := &http.Client{Timeout: 15 * time.Second}
	resp, err := client.Post(webhookURL, "application/json", bytes.NewReader(body))
	if err != nil {
		utils.Log.Warn("outbound webhook failed", zap.Error(err))
		utils.SendResponse(w, http.StatusOK, "", sendResponse{Sent: false}, 0)
		return
	}
	defer resp.Body.Close()

	sent := resp.StatusCode >= 200 && resp.StatusCode < 300
	if !sent {
		utils.Log.Warn("outbound webhook rejected", zap.Int("status", resp.StatusCode))
	}

	utils.SendResponse(w, http.StatusOK, "", sendResponse{Sent: sent}, 0)
}
