package config

import (
	"testing"

	"github.com/attestware/potoken/internal/util"
	"github.com/stretchr/testify/require"
)

func TestConfig(t *testing.T) {
	cases := []struct {
		name     string
		cfg      *Config
		wantErrs int
	}{
		{
			name: "valid config",
			cfg: &Config{
				Addr:            ":8979",
				AttestationHost: "https://attestation.example.com",
			},
		},
		{
			name: "testing needs no attestation host",
			cfg: &Config{
				Addr:    ":8979",
				Testing: true,
			},
		},
		{
			name:     "missing everything",
			cfg:      &Config{},
			wantErrs: 2,
		},
		{
			name: "relative attestation host",
			cfg: &Config{
				Addr:            ":8979",
				AttestationHost: "attestation.example.com",
			},
			wantErrs: 1,
		},
		{
			name: "missing addr",
			cfg: &Config{
				AttestationHost: "https://attestation.example.com",
			},
			wantErrs: 1,
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			errs := c.cfg.Validate()
			require.Equal(t, c.wantErrs, len(errs), util.SprintErrs(errs))
		})
	}
}
