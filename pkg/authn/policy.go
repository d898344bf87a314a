package authn

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// RoutePolicy declares which path prefixes the gatekeeper guards and where a
// denied request lands. It is deployment configuration, not code: storefronts
// differ in which sections require a logged-in customer.
type RoutePolicy struct {
	ProtectedPrefixes []string `yaml:"protected_prefixes"`
	LoggedOutPath     string   `yaml:"logged_out_path"`
}

func DefaultRoutePolicy() *RoutePolicy {
	return &RoutePolicy{
		ProtectedPrefixes: []string{"/account"},
		LoggedOutPath:     "/",
	}
}

func LoadRoutePolicy(path string) (*RoutePolicy, error) {
	yamlData, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read route policy '%s': %w", path, err)
	}
	var policy RoutePolicy
	if err := yaml.Unmarshal(yamlData, &policy); err != nil {
		return nil, fmt.Errorf("failed to unmarshal route policy '%s': %w", path, err)
	}
	if len(policy.ProtectedPrefixes) == 0 {
		policy.ProtectedPrefixes = DefaultRoutePolicy().ProtectedPrefixes
	}
	if policy.LoggedOutPath == "" {
		policy.LoggedOutPath = "/"
	}
	return &policy, nil
}

func (p *RoutePolicy) Protected(path string) bool {
	for _, prefix := range p.ProtectedPrefixes {
		if strings.HasPrefix(path, prefix) {
			return true
		}
	}
	return false
}
