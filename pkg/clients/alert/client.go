// Package alert posts operational notices (daily summaries, low-stock
// warnings) to a configured webhook endpoint.
package alert

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
)

// Client exposes the outbound notification operation.
type Client interface {
	Send(ctx context.Context, text string) error
}

// WebhookClient is a resty-backed implementation posting Slack-style JSON
// text payloads.
type WebhookClient struct {
	httpClient *resty.Client
	webhookURL string
}

// NewWebhookClient builds a client for the given webhook URL.
func NewWebhookClient(webhookURL string) *WebhookClient {
	restyClient := resty.New().
		SetHeader("Content-Type", "application/json").
		SetTimeout(10 * time.Second)

	return &WebhookClient{
		httpClient: restyClient,
		webhookURL: webhookURL,
	}
}

// Send posts the message. Non-2xx responses are returned as errors so the
// caller can log and move on; alert delivery is best effort.
func (c *WebhookClient) Send(ctx context.Context, text string) error {
	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetBody(map[string]string{"text": text}).
		Post(c.webhookURL)
	if err != nil {
		return fmt.Errorf("post alert webhook: %w", err)
	}

	if resp.StatusCode() >= http.StatusBadRequest {
		return fmt.Errorf("alert webhook rejected message: status=%d body=%s", resp.StatusCode(), resp.String())
	}

	return nil
}
