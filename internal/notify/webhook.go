package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// WebhookSender posts messages as JSON to a provider endpoint. The
// messaging providers (email relay, SMS gateway) sit behind plain HTTP
// hooks, so one sender type covers both.
type WebhookSender struct {
	endpoint string
	client   *http.Client
}

// NewWebhookSender creates a sender for the given endpoint with a
// bounded request timeout.
func NewWebhookSender(endpoint string, timeout time.Duration) *WebhookSender {
	if timeout <= 0 {
		timeout = 3 * time.Second
	}
	return &WebhookSender{
		endpoint: endpoint,
		client:   &http.Client{Timeout: timeout},
	}
}

// Send posts the message and treats any non-2xx response as a failure.
func (s *WebhookSender) Send(ctx context.Context, m Message) error {
	body, err := json.Marshal(m)
	if err != nil {
		return fmt.Errorf("encode message: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("post %s notification: %w", m.Channel, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("post %s notification: status %d", m.Channel, resp.StatusCode)
	}
	return nil
}

var _ Sender = (*WebhookSender)(nil)
