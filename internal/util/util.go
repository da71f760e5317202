// Package util provides small helpers used across the code base.
package util

import "slices"

func Must[T any](v T, err error) T {
	if err != nil {
		panic(err)
	}
	return v
}

// SprintErrs renders a validation problem map in stable order.
func SprintErrs(errs map[string]string) string {
	var s string

	// Sort the error keys.
	errKeys := []string{}
	for key := range errs {
		errKeys = append(errKeys, key)
	}
	slices.Sort(errKeys)

	for _, key := range errKeys {
		s += key + ": " + errs[key] + "\n"
	}

	return s
}

// Validator is implemented by configuration types.
type Validator interface {
	Validate() map[string]string
}
