package publish

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-resty/resty/v2"

	domain "github.com/global-mysterysnailrevolution/zoho-price-matcher/pkg/types"
)

// ErrRateLimited is returned when the webhook answers 429.
var ErrRateLimited = errors.New("webhook rate limited (429)")

// WebhookPublisher implements Publisher via a JSON POST to a fixed URL.
type WebhookPublisher struct {
	url        string
	headers    map[string]string
	httpClient *http.Client
	client     *resty.Client
}

// WebhookOption configures a WebhookPublisher.
type WebhookOption func(*WebhookPublisher)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(c *http.Client) WebhookOption {
	return func(w *WebhookPublisher) {
		w.httpClient = c
	}
}

// WithHeaders adds static headers, such as an authorization token, to
// every request.
func WithHeaders(h map[string]string) WebhookOption {
	return func(w *WebhookPublisher) {
		w.headers = h
	}
}

// NewWebhookPublisher creates a new WebhookPublisher.
func NewWebhookPublisher(url string, opts ...WebhookOption) *WebhookPublisher {
	w := &WebhookPublisher{
		url:        url,
		httpClient: http.DefaultClient,
	}
	for _, opt := range opts {
		opt(w)
	}
	w.client = resty.NewWithClient(w.httpClient).
		SetHeader("Content-Type", "application/json").
		SetHeaders(w.headers)
	return w
}

// webhookPayload is the JSON body posted for each result.
type webhookPayload struct {
	Item   webhookItem          `json:"item"`
	Result domain.PricingResult `json:"result"`
	// Price is the value to write back to inventory. It is empty unless the
	// outcome is priced.
	Price string `json:"price,omitempty"`
}

type webhookItem struct {
	Name         string `json:"name"`
	Manufacturer string `json:"manufacturer,omitempty"`
	Barcode      string `json:"barcode,omitempty"`
}

// Publish posts result for item.
func (w *WebhookPublisher) Publish(
	ctx context.Context,
	result *domain.PricingResult,
	item domain.ItemDescriptor,
) error {
	return w.post(ctx, buildPayload(result, item))
}

func buildPayload(result *domain.PricingResult, item domain.ItemDescriptor) webhookPayload {
	p := webhookPayload{
		Item: webhookItem{
			Name:         item.RawName,
			Manufacturer: result.Manufacturer,
			Barcode:      item.Barcode,
		},
		Result: *result,
	}
	if p.Item.Manufacturer == "" {
		p.Item.Manufacturer = item.ManufacturerHint
	}
	if result.Outcome == domain.OutcomePriced {
		p.Price = result.FinalPrice.StringFixed(2)
	}
	return p
}

func (w *WebhookPublisher) post(ctx context.Context, payload webhookPayload) error {
	resp, err := w.client.R().
		SetContext(ctx).
		SetBody(payload).
		Post(w.url)
	if err != nil {
		return fmt.Errorf("sending webhook: %w", err)
	}

	if resp.StatusCode() == http.StatusTooManyRequests {
		return ErrRateLimited
	}

	if resp.IsError() || resp.StatusCode() < 200 || resp.StatusCode() >= 300 {
		return fmt.Errorf("webhook returned %d: %s", resp.StatusCode(), resp.Body())
	}

	return nil
}
