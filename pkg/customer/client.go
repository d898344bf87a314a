// Package customer implements the client side of the customer accounts API
// login protocol: the PKCE authorization URL, the authorization-code, refresh
// and RFC 8693 token-exchange grants, and the identity-token claims decoder.
package customer

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/jthernandez999/pineapple-pier-sub000/pkg/oauth2"
)

const (
	grantAuthorizationCode = "authorization_code"
	grantRefreshToken      = "refresh_token"
	grantTokenExchange     = "urn:ietf:params:oauth:grant-type:token-exchange"
	tokenTypeAccessToken   = "urn:ietf:params:oauth:token-type:access_token"
)

// requestTimeout bounds every provider round trip. Expiry of the timeout is
// reported as a normal exchange failure, not a special case.
const requestTimeout = 10 * time.Second

type Client struct {
	cfg        *Config
	httpClient *http.Client
}

func NewClient(cfg *Config) (*Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Client{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: requestTimeout},
	}, nil
}

func (c *Client) ClientID() string {
	return c.cfg.ClientID
}

func (c *Client) Origin() string {
	return c.cfg.Origin
}

// RedirectURI is the fixed callback target registered with the provider.
func (c *Client) RedirectURI() string {
	return c.cfg.Origin + "/authorize"
}

// AuthCodeURL builds the provider authorization URL with the PKCE and
// anti-forgery parameters.
func (c *Client) AuthCodeURL(state, nonce, verifier string) string {
	codeChallenge := oauth2.S256ChallengeFromVerifier(verifier)
	query := url.Values{}
	query.Add("client_id", c.cfg.ClientID)
	query.Add("redirect_uri", c.RedirectURI())
	query.Add("response_type", "code")
	query.Add("scope", strings.Join(c.cfg.Scopes, " "))
	query.Add("state", state)
	query.Add("nonce", nonce)
	query.Add("code_challenge", codeChallenge)
	query.Add("code_challenge_method", string(oauth2.CodeChallengeMethodS256))

	return fmt.Sprintf("%s/auth/oauth/authorize?%s", c.cfg.APIURL, query.Encode())
}

// Exchange swaps the authorization code for the provider token set, proving
// possession of the original request with the PKCE verifier.
func (c *Client) Exchange(ctx context.Context, code, verifier string) (*oauth2.TokenResponse, error) {
	params := url.Values{}
	params.Set("grant_type", grantAuthorizationCode)
	params.Set("client_id", c.cfg.ClientID)
	params.Set("redirect_uri", c.RedirectURI())
	params.Set("code", code)
	params.Set("code_verifier", verifier)

	return c.postToken(ctx, params)
}

// Refresh mints a new provider token set from a refresh token.
func (c *Client) Refresh(ctx context.Context, refreshToken string) (*oauth2.TokenResponse, error) {
	params := url.Values{}
	params.Set("grant_type", grantRefreshToken)
	params.Set("client_id", c.cfg.ClientID)
	params.Set("refresh_token", refreshToken)

	return c.postToken(ctx, params)
}

// ExchangeCustomerToken scopes a provider access token into a customer token
// usable against the commerce API (RFC 8693 token exchange). Both initial
// login and refresh go through here so the two paths cannot diverge.
func (c *Client) ExchangeCustomerToken(ctx context.Context, accessToken string) (*oauth2.TokenResponse, error) {
	params := url.Values{}
	params.Set("grant_type", grantTokenExchange)
	params.Set("client_id", c.cfg.ClientID)
	params.Set("subject_token", accessToken)
	params.Set("subject_token_type", tokenTypeAccessToken)

	return c.postToken(ctx, params)
}

// LogoutURL builds the provider logout URL. The ID token is passed only as a
// hint, it plays no further role in authorization.
func (c *Client) LogoutURL(idTokenHint string) string {
	query := url.Values{}
	query.Set("id_token_hint", idTokenHint)
	query.Set("post_logout_redirect_uri", c.cfg.Origin)
	return fmt.Sprintf("%s/auth/logout?%s", c.cfg.APIURL, query.Encode())
}

// tokenEnvelope also captures the "errors" field some provider responses
// carry in an otherwise well-formed 2xx body.
type tokenEnvelope struct {
	oauth2.TokenResponse
	Errors json.RawMessage `json:"errors"`
}

func (c *Client) postToken(ctx context.Context, params url.Values) (*oauth2.TokenResponse, error) {
	endpoint := c.cfg.APIURL + "/auth/oauth/token"

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(params.Encode()))
	if err != nil {
		return nil, fmt.Errorf("unable to build token request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("unable to reach token endpoint: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("unable to read token response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var provErr oauth2.Error
		if err := json.Unmarshal(body, &provErr); err == nil && provErr.Code != "" {
			return nil, &provErr
		}
		return nil, fmt.Errorf("token endpoint returned status %d", resp.StatusCode)
	}

	var envelope tokenEnvelope
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, fmt.Errorf("unable to decode token response: %w", err)
	}
	if len(envelope.Errors) > 0 && string(envelope.Errors) != "null" {
		return nil, fmt.Errorf("token endpoint reported errors: %s", envelope.Errors)
	}

	return &envelope.TokenResponse, nil
}
