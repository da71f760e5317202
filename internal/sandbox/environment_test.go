package sandbox

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHost(t *testing.T) {
	env := Host()
	require.NotNil(t, env)
	for _, global := range []string{"window", "document", "navigator", "location"} {
		require.Contains(t, env.Globals, global)
	}

	// The environment is constructed exactly once.
	require.Same(t, env, Host())
}

func TestHostConcurrent(t *testing.T) {
	var (
		wg   sync.WaitGroup
		envs = make([]*Environment, 16)
	)
	for i := range envs {
		wg.Add(1)
		go func() {
			defer wg.Done()
			envs[i] = Host()
		}()
	}
	wg.Wait()

	for _, env := range envs {
		require.Same(t, envs[0], env)
	}
}
