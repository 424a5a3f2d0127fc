package sources

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/shopspring/decimal"

	"github.com/global-mysterysnailrevolution/zoho-price-matcher/pkg/extract"
	domain "github.com/global-mysterysnailrevolution/zoho-price-matcher/pkg/types"
)

const offersPath = "/offers"

// HTTPSource queries a JSON offers API of the form
// GET {base}/offers?q=<query>&id=<identifier>.
type HTTPSource struct {
	id           string
	baseURL      string
	headers      map[string]string
	httpClient   *http.Client
	client       *resty.Client
	supplierOnly bool
	log          *slog.Logger
}

// HTTPOption configures the HTTPSource.
type HTTPOption func(*HTTPSource)

// WithHeaders sets headers sent with every request.
func WithHeaders(h map[string]string) HTTPOption {
	return func(s *HTTPSource) {
		s.headers = h
	}
}

// WithSupplierOnly drops offers whose URL is not on a recognized supplier
// domain.
func WithSupplierOnly(on bool) HTTPOption {
	return func(s *HTTPSource) {
		s.supplierOnly = on
	}
}

// WithHTTPClient replaces the underlying transport client.
func WithHTTPClient(hc *http.Client) HTTPOption {
	return func(s *HTTPSource) {
		s.httpClient = hc
	}
}

// WithHTTPLogger sets the logger.
func WithHTTPLogger(l *slog.Logger) HTTPOption {
	return func(s *HTTPSource) {
		s.log = l
	}
}

// NewHTTPSource creates an offers API source rooted at baseURL.
func NewHTTPSource(id, baseURL string, opts ...HTTPOption) *HTTPSource {
	s := &HTTPSource{
		id:         id,
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 30 * time.Second},
		log:        slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.client = resty.NewWithClient(s.httpClient).
		SetBaseURL(s.baseURL).
		SetHeader("Accept", "application/json").
		SetHeaders(s.headers)
	return s
}

// ID implements Source.
func (s *HTTPSource) ID() string { return s.id }

type offersResponse struct {
	Offers []offer `json:"offers"`
}

type offer struct {
	Title        string     `json:"title"`
	Price        offerPrice `json:"price"`
	Manufacturer string     `json:"manufacturer"`
	PartNumber   string     `json:"part_number"`
	PackQuantity int        `json:"pack_quantity"`
	URL          string     `json:"url"`
	Description  string     `json:"description"`
}

// offerPrice accepts a JSON number or a display string such as "$1,299.00".
type offerPrice struct {
	value *decimal.Decimal
}

func (p *offerPrice) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		if d, ok := extract.ParsePrice(s); ok {
			p.value = &d
		}
		return nil
	}
	d, err := decimal.NewFromString(string(data))
	if err != nil {
		return fmt.Errorf("parsing offer price %s: %w", data, err)
	}
	p.value = &d
	return nil
}

// Query implements Source. Rate-limit and server errors are retryable;
// other client errors are permanent.
func (s *HTTPSource) Query(
	ctx context.Context,
	query, identifier string,
) ([]domain.SourceObservation, error) {
	var body offersResponse

	req := s.client.R().
		SetContext(ctx).
		SetQueryParam("q", query).
		SetResult(&body)
	if identifier != "" {
		req.SetQueryParam("id", identifier)
	}

	resp, err := req.Get(offersPath)
	if err != nil {
		return nil, fmt.Errorf("querying %s: %w", s.id, err)
	}
	if resp.IsError() {
		err := fmt.Errorf("%s returned status %d", s.id, resp.StatusCode())
		if resp.StatusCode() == http.StatusTooManyRequests || resp.StatusCode() >= 500 {
			return nil, err
		}
		return nil, Permanent(err)
	}

	return s.toObservations(body.Offers), nil
}

func (s *HTTPSource) toObservations(offers []offer) []domain.SourceObservation {
	out := make([]domain.SourceObservation, 0, len(offers))
	for i := range offers {
		o := &offers[i]
		if s.supplierOnly && !IsSupplierURL(o.URL) {
			s.log.Debug("skipping non-supplier offer", "source", s.id, "url", o.URL)
			continue
		}
		obs := domain.SourceObservation{
			SourceID:     s.id,
			Title:        o.Title,
			Price:        o.Price.value,
			Manufacturer: o.Manufacturer,
			PartNumber:   o.PartNumber,
			PackQuantity: o.PackQuantity,
			URL:          o.URL,
			Description:  o.Description,
		}
		if obs.PartNumber == "" {
			obs.PartNumber = extract.PartNumber(o.Title)
		}
		if obs.PackQuantity == 0 {
			obs.PackQuantity = extract.PackQuantity(o.Title)
		}
		out = append(out, obs)
	}
	return out
}
