// Package config holds the service configuration.
package config

import (
	"net/url"

	"github.com/attestware/potoken/internal/util"
)

var _ = util.Validator(&Config{})

// Config represents the configuration of the token service.
type Config struct {
	// Addr contains the address that the token API listens on, e.g.,
	// ":8979".  This field is required.
	Addr string

	// AttestationHost contains the base URL of the remote attestation
	// service, e.g., "https://attestation.example.com".  Challenges are
	// fetched from and integrity tokens are generated by this host.  This
	// field is required unless Testing is set.
	AttestationHost string

	// Debug can be set to true to log every HTTP request.  Do not set this
	// in production; request logging slows down token generation.
	Debug bool

	// Testing replaces the remote attestation stack with a local engine
	// that needs no attestation service.  Tokens minted this way prove
	// nothing about the client environment, so never set this in
	// production.
	Testing bool
}

// Validate returns configuration problems keyed by the offending flag.
func (c *Config) Validate() map[string]string {
	problems := make(map[string]string)

	if c.Addr == "" {
		problems["-addr"] = "must not be empty"
	}
	if c.Testing {
		return problems
	}

	if c.AttestationHost == "" {
		problems["-attestation-host"] = "must be provided unless -insecure is set"
	} else if u, err := url.Parse(c.AttestationHost); err != nil || u.Scheme == "" || u.Host == "" {
		problems["-attestation-host"] = "must be an absolute URL"
	}
	return problems
}
