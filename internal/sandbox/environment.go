package sandbox

import "sync"

// Environment is the host environment that challenge programs run in.
// Executed programs expect browser-like global objects, so the
// environment exposes stand-ins for them.  Programs may stash state in
// the globals between executions.
type Environment struct {
	Globals map[string]any
}

var (
	hostOnce sync.Once
	hostEnv  *Environment
)

// Host returns the process-wide host environment, constructing it on
// first use.  The environment must never be reinitialized; it lives until
// process exit.
func Host() *Environment {
	hostOnce.Do(func() {
		hostEnv = &Environment{
			Globals: map[string]any{
				"window":    map[string]any{},
				"document":  map[string]any{},
				"navigator": map[string]any{},
				"location":  map[string]any{},
			},
		}
	})
	return hostEnv
}
