package introspect

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/vitalsync/fhir-gateway/internal/idp"
	"github.com/vitalsync/fhir-gateway/internal/logger"
)

// requestTimeout bounds a single introspection round trip. There are no
// retries; the caller treats any failure as a deny.
const requestTimeout = 10 * time.Second

const introspectPath = "/v1/introspect"

// Client calls the identity provider's introspection endpoint using the
// client-credential basic authentication scheme from the provider config.
type Client struct {
	httpClient *http.Client

	// fallbackDomain is used to derive an issuer when the provider config
	// does not carry one: https://<domain>/oauth2/default.
	fallbackDomain string
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the default HTTP client; tests use this to drop
// the timeout or point at a test server transport.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithFallbackDomain sets the provider domain used when the configuration
// has no issuer.
func WithFallbackDomain(domain string) Option {
	return func(c *Client) { c.fallbackDomain = domain }
}

// NewClient creates an introspection client with the fixed request timeout.
func NewClient(opts ...Option) *Client {
	c := &Client{
		httpClient: &http.Client{Timeout: requestTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// endpoint builds the introspection URL from the configured issuer, deriving
// a default issuer from the fallback domain when none is configured.
func (c *Client) endpoint(cfg *idp.ProviderConfig) string {
	issuer := cfg.Issuer
	if issuer == "" {
		issuer = fmt.Sprintf("https://%s/oauth2/default", c.fallbackDomain)
	}
	return strings.TrimRight(issuer, "/") + introspectPath
}

// Introspect asks the identity provider whether token is currently valid and
// returns its claims. Exactly one POST is made; failures map onto the
// package's error types and the caller converts them into a deny.
func (c *Client) Introspect(ctx context.Context, token string, cfg *idp.ProviderConfig) (*Result, error) {
	form := url.Values{
		"token":           {token},
		"token_type_hint": {"access_token"},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint(cfg), strings.NewReader(form.Encode()))
	if err != nil {
		return nil, &ProtocolError{Err: err}
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")
	req.SetBasicAuth(cfg.ClientID, cfg.ClientSecret)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		logger.Errorw("introspection transport failure", "err", err)
		return nil, &TransportError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		logger.Errorw("introspection HTTP failure", "status", resp.StatusCode)
		return nil, &HTTPError{StatusCode: resp.StatusCode, Status: resp.Status}
	}

	var result Result
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		logger.Errorw("introspection response not decodable", "err", err)
		return nil, &ProtocolError{Err: err}
	}

	logger.Infow("introspection response", "active", result.Active)
	return &result, nil
}
