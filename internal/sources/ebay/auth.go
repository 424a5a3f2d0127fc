package ebay

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/go-resty/resty/v2"
)

const (
	defaultTokenURL = "https://api.ebay.com/identity/v1/oauth2/token" //nolint:gosec // not a credential
	defaultScope    = "https://api.ebay.com/oauth/api_scope"
	refreshBuffer   = 60 * time.Second
)

// OAuthTokenProvider implements TokenProvider using the OAuth2 client
// credentials flow. Tokens are cached and refreshed within 60 seconds of
// expiry. Safe for concurrent use.
type OAuthTokenProvider struct {
	appID    string
	certID   string
	tokenURL string
	scope    string
	client   *resty.Client

	mu      sync.Mutex
	token   string
	expiry  time.Time
	nowFunc func() time.Time
}

// OAuthOption configures the OAuthTokenProvider.
type OAuthOption func(*OAuthTokenProvider)

// WithTokenURL overrides the default token endpoint.
func WithTokenURL(u string) OAuthOption {
	return func(p *OAuthTokenProvider) {
		if u != "" {
			p.tokenURL = u
		}
	}
}

// WithScope overrides the requested OAuth scope.
func WithScope(s string) OAuthOption {
	return func(p *OAuthTokenProvider) {
		p.scope = s
	}
}

// WithNowFunc overrides the time function for testing.
func WithNowFunc(f func() time.Time) OAuthOption {
	return func(p *OAuthTokenProvider) {
		p.nowFunc = f
	}
}

// NewOAuthTokenProvider creates a token provider for the given application
// credentials.
func NewOAuthTokenProvider(
	appID, certID string,
	opts ...OAuthOption,
) *OAuthTokenProvider {
	p := &OAuthTokenProvider{
		appID:    appID,
		certID:   certID,
		tokenURL: defaultTokenURL,
		scope:    defaultScope,
		client:   resty.New().SetTimeout(10 * time.Second),
		nowFunc:  time.Now,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Token returns a valid access token, refreshing it when necessary.
func (p *OAuthTokenProvider) Token(ctx context.Context) (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.token != "" && p.nowFunc().Before(p.expiry.Add(-refreshBuffer)) {
		return p.token, nil
	}

	return p.refreshLocked(ctx)
}

func (p *OAuthTokenProvider) refreshLocked(ctx context.Context) (string, error) {
	resp, err := p.client.R().
		SetContext(ctx).
		SetBasicAuth(p.appID, p.certID).
		SetFormData(map[string]string{
			"grant_type": "client_credentials",
			"scope":      p.scope,
		}).
		Post(p.tokenURL)
	if err != nil {
		return "", fmt.Errorf("executing token request: %w", err)
	}

	if resp.IsError() {
		var errResp tokenErrorResponse
		_ = json.Unmarshal(resp.Body(), &errResp) //nolint:errcheck // best-effort error parsing
		return "", fmt.Errorf(
			"token request failed (status %d): %s - %s",
			resp.StatusCode(),
			errResp.Error,
			errResp.ErrorDescription,
		)
	}

	var tok tokenResponse
	if err := json.Unmarshal(resp.Body(), &tok); err != nil {
		return "", fmt.Errorf("parsing token response: %w", err)
	}
	if tok.AccessToken == "" {
		return "", errors.New("parsing token response: empty access token")
	}

	p.token = tok.AccessToken
	p.expiry = p.nowFunc().Add(time.Duration(tok.ExpiresIn) * time.Second)

	return p.token, nil
}
