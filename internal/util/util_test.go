package util

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMust(t *testing.T) {
	t.Parallel()

	require.Equal(t, 1, Must(1, nil))
	require.Panics(t, func() {
		_ = Must("foo", errors.New("an error"))
	})
}

func TestSprintErrs(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		errs map[string]string
		want string
	}{
		{
			name: "nil",
			errs: nil,
		},
		{
			name: "one error",
			errs: map[string]string{
				"foo": "bar",
			},
			want: "foo: bar\n",
		},
		{
			name: "sorted errors",
			errs: map[string]string{
				"a": "foo",
				"b": "bar",
				"c": "baz",
			},
			want: "a: foo\nb: bar\nc: baz\n",
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			require.Equal(t, c.want, SprintErrs(c.errs))
		})
	}
}
