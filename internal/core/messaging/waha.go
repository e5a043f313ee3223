package messaging

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"
)

// WAHAProvider sends messages through a WAHA (WhatsApp HTTP API) gateway.
type WAHAProvider struct {
	baseURL   string
	apiKey    string
	sessionID string
	client    *http.Client
	connected bool
}

func NewWAHAProvider(baseURL, apiKey, sessionID string) *WAHAProvider {
	return &WAHAProvider{
		baseURL:   strings.TrimRight(baseURL, "/"),
		apiKey:    apiKey,
		sessionID: sessionID,
		client: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

func (w *WAHAProvider) GetProviderName() string {
	return "WAHA"
}

func (w *WAHAProvider) Connect() error {
	endpoint := fmt.Sprintf("%s/api/sessions/%s/start", w.baseURL, w.sessionID)

	req, err := http.NewRequest("POST", endpoint, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	if w.apiKey != "" {
		req.Header.Set("X-Api-Key", w.apiKey)
	}

	resp, err := w.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to start WAHA session: %w", err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)

	// 200/201 = started, 409/422 = session already exists or running
	switch resp.StatusCode {
	case http.StatusOK, http.StatusCreated:
		log.Printf("✅ WAHA session '%s' started", w.sessionID)
	case http.StatusConflict, http.StatusUnprocessableEntity:
		log.Printf("ℹ️ WAHA session '%s' already exists/started", w.sessionID)
	default:
		return fmt.Errorf("WAHA returned status %d: %s", resp.StatusCode, string(body))
	}

	w.connected = true
	return nil
}

func (w *WAHAProvider) IsConnected() bool {
	return w.connected
}

func (w *WAHAProvider) SendMessage(phoneNumber, message string) error {
	// Chat id format: 628123456789@c.us
	chatID := strings.TrimPrefix(phoneNumber, "+") + "@c.us"

	payload := map[string]interface{}{
		"session": w.sessionID,
		"chatId":  chatID,
		"text":    message,
	}

	jsonData, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal payload: %w", err)
	}

	endpoint := fmt.Sprintf("%s/api/sendText", w.baseURL)
	req, err := http.NewRequest("POST", endpoint, bytes.NewBuffer(jsonData))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if w.apiKey != "" {
		req.Header.Set("X-Api-Key", w.apiKey)
	}

	resp, err := w.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send message: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("WAHA returned status %d: %s", resp.StatusCode, string(body))
	}

	return nil
}
