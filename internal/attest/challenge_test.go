package attest

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func validChallenge() *Challenge {
	return &Challenge{
		Program:         []byte("program blob"),
		EntryPoint:      "runTrayride",
		Hash:            "abc123",
		Interpreter:     []byte("function(){}"),
		ExperimentState: []byte("exp state"),
	}
}

func TestChallengeValidate(t *testing.T) {
	cases := []struct {
		name    string
		mutate  func(*Challenge)
		wantErr bool
	}{
		{
			name:   "complete challenge",
			mutate: func(*Challenge) {},
		},
		{
			name:    "missing program",
			mutate:  func(c *Challenge) { c.Program = nil },
			wantErr: true,
		},
		{
			name:    "missing entry point",
			mutate:  func(c *Challenge) { c.EntryPoint = "" },
			wantErr: true,
		},
		{
			name:    "missing hash",
			mutate:  func(c *Challenge) { c.Hash = "" },
			wantErr: true,
		},
		{
			name:    "missing interpreter",
			mutate:  func(c *Challenge) { c.Interpreter = nil },
			wantErr: true,
		},
		{
			name:    "missing experiment state",
			mutate:  func(c *Challenge) { c.ExperimentState = nil },
			wantErr: true,
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			challenge := validChallenge()
			c.mutate(challenge)

			err := challenge.Validate()
			if c.wantErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
			}
		})
	}
}
