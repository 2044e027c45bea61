package alert

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
)

// Notification kinds posted to the webhook.
const (
	KindDailyReport = "daily_report"
	KindLowStock    = "low_stock"
)

// Client exposes the outbound notification operation used by the scheduler.
type Client interface {
	Notify(ctx context.Context, n Notification) error
}

// Notification is the JSON payload delivered to the configured webhook.
type Notification struct {
	Kind    string     `json:"kind"`
	Message string     `json:"message"`
	Items   []StockRow `json:"items,omitempty"`
}

// StockRow is one product line inside a low-stock notification.
type StockRow struct {
	ProductID int64  `json:"product_id"`
	Name      string `json:"name"`
	Quantity  int    `json:"quantity"`
}

// WebhookClient is a resty-backed implementation of Client.
type WebhookClient struct {
	httpClient *resty.Client
	url        string
}

// NewClient builds a webhook notifier for the given URL.
func NewClient(webhookURL string) *WebhookClient {
	restyClient := resty.New()
	restyClient.
		SetHeader("Content-Type", "application/json").
		SetTimeout(15 * time.Second)

	return &WebhookClient{
		httpClient: restyClient,
		url:        webhookURL,
	}
}

// Notify POSTs the notification to the webhook and fails on any non-2xx
// response.
func (c *WebhookClient) Notify(ctx context.Context, n Notification) error {
	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetBody(n).
		Post(c.url)
	if err != nil {
		return fmt.Errorf("post %s notification: %w", n.Kind, err)
	}

	if resp.IsError() {
		return fmt.Errorf("webhook rejected %s notification: status %d: %s", n.Kind, resp.StatusCode(), resp.String())
	}

	return nil
}
