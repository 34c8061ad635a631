// Package notifier talks to the email/notification collaborator. Every call
// is fire-and-forget from the caller's point of view: a notification
// failure must never fail the core operation that triggered it.
package notifier

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	logger     zerolog.Logger
}

type DeliveryEmailRequest struct {
	JobID         string `json:"job_id"`
	CustomerName  string `json:"customer_name"`
	CustomerEmail string `json:"customer_email"`
	Address       string `json:"address"`
	DeliveryURL   string `json:"delivery_url"`
}

type RevisionRequestedEvent struct {
	OrderID         string   `json:"order_id"`
	JobID           string   `json:"job_id,omitempty"`
	FileIDs         []string `json:"file_ids"`
	Comments        string   `json:"comments"`
	RemainingRounds int      `json:"remaining_rounds"`
}

func NewClient(baseURL, apiKey string, logger zerolog.Logger) *Client {
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		logger: logger,
	}
}

// Enabled reports whether a notification endpoint is configured at all.
func (c *Client) Enabled() bool {
	return c.baseURL != ""
}

// SendDeliveryEmail asks the collaborator to email the client their
// delivery link. Runs in the request goroutine's background; errors are
// logged and swallowed.
func (c *Client) SendDeliveryEmail(req DeliveryEmailRequest) {
	c.post("/emails/delivery", req)
}

// NotifyRevisionRequested tells the photographer a client asked for
// rework.
func (c *Client) NotifyRevisionRequested(event RevisionRequestedEvent) {
	c.post("/events/revision-requested", event)
}

func (c *Client) post(path string, payload interface{}) {
	if !c.Enabled() {
		return
	}

	err := c.retryWithBackoff(func() error {
		return c.doPost(path, payload)
	}, 3)
	if err != nil {
		c.logger.Warn().Err(err).Str("path", path).Msg("notification delivery failed")
	}
}

func (c *Client) doPost(path string, payload interface{}) error {
	jsonData, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal request: %w", err)
	}

	url := strings.TrimSuffix(c.baseURL, "/") + path
	req, err := http.NewRequest("POST", url, bytes.NewBuffer(jsonData))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("x-api-key", c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("notification rejected: status %d, body: %s", resp.StatusCode, string(body))
	}

	return nil
}

// retryWithBackoff executes fn with exponential backoff retry logic.
func (c *Client) retryWithBackoff(fn func() error, maxRetries int) error {
	backoffs := []time.Duration{1 * time.Second, 2 * time.Second, 4 * time.Second}

	var lastErr error
	for i := 0; i < maxRetries; i++ {
		err := fn()
		if err == nil {
			return nil
		}

		lastErr = err
		if i < len(backoffs) {
			time.Sleep(backoffs[i])
		}
	}

	return fmt.Errorf("failed after %d retries: %w", maxRetries, lastErr)
}
