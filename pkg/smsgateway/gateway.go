package smsgateway

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rewardhub/rewardhub-backend/internal/config"
	"go.uber.org/zap"
)

// Gateway represents an SMS gateway used for OTP delivery
type Gateway interface {
	SendSMS(phone, message string) (string, error)
}

// HTTPGateway sends SMS through a JSON-over-HTTP provider
type HTTPGateway struct {
	BaseURL    string
	APIKey     string
	SenderID   string
	httpClient *http.Client
	logger     *zap.Logger
}

// MockGateway logs the message instead of sending it. Used in development
// and tests.
type MockGateway struct {
	logger *zap.Logger
}

// New creates the gateway selected by configuration
func New(cfg *config.Config, logger *zap.Logger) Gateway {
	if cfg.SMS.MockSMS {
		return &MockGateway{logger: logger}
	}
	return &HTTPGateway{
		BaseURL:  cfg.SMS.BaseURL,
		APIKey:   cfg.SMS.APIKey,
		SenderID: cfg.SMS.SenderID,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		logger: logger,
	}
}

type sendRequest struct {
	To      string `json:"to"`
	From    string `json:"from"`
	Message string `json:"message"`
}

type sendResponse struct {
	MessageID string `json:"messageId"`
	Status    string `json:"status"`
}

// SendSMS delivers one message and returns the provider message id
func (g *HTTPGateway) SendSMS(phone, message string) (string, error) {
	payload, err := json.Marshal(sendRequest{To: phone, From: g.SenderID, Message: message})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequest(http.MethodPost, g.BaseURL+"/v1/messages", bytes.NewReader(payload))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+g.APIKey)

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return "", fmt.Errorf("sms gateway returned %d: %s", resp.StatusCode, string(body))
	}

	var out sendResponse
	if err := json.Unmarshal(body, &out); err != nil {
		return "", err
	}

	g.logger.Debug("sms sent", zap.String("phone", phone), zap.String("messageId", out.MessageID))
	return out.MessageID, nil
}

// SendSMS logs the message and reports success
func (g *MockGateway) SendSMS(phone, message string) (string, error) {
	g.logger.Info("mock sms", zap.String("phone", phone), zap.String("message", message))
	return fmt.Sprintf("mock-%d", time.Now().UnixNano()), nil
}
