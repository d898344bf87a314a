package customer

import (
	"fmt"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Config holds the customer accounts API settings. All three URLs/identifiers
// are required for every flow in the subsystem; a missing value is a startup
// error, never a per-request recoverable condition.
type Config struct {
	// APIURL is the base URL of the customer accounts API, e.g.
	// "https://shopify.com/12345678"
	APIURL string `validate:"required,url"`
	// ClientID identifies the storefront towards the customer accounts API
	ClientID string `validate:"required"`
	// Origin is the public URL of the storefront, e.g. "https://shop.example.com"
	Origin string `validate:"required,url"`
	// Scopes requested during authorization
	Scopes []string `validate:"required,min=1"`
}

var defaultScopes = []string{"openid", "email", "customer-account-api:full"}

// ConfigFromEnv reads the customer API configuration from the environment.
// Validation happens in NewClient.
func ConfigFromEnv() *Config {
	scopes := defaultScopes
	if s := os.Getenv("SHOP_SCOPES"); s != "" {
		scopes = strings.Fields(s)
	}
	return &Config{
		APIURL:   strings.TrimRight(os.Getenv("SHOP_CUSTOMER_API_URL"), "/"),
		ClientID: os.Getenv("SHOP_CLIENT_ID"),
		Origin:   strings.TrimRight(os.Getenv("SHOP_ORIGIN_URL"), "/"),
		Scopes:   scopes,
	}
}

func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid customer accounts API config: %w", err)
	}
	return nil
}
