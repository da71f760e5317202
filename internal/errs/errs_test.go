package errs

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestWrap(t *testing.T) {
	var err = errors.New("foo")
	Wrap(&err, "bar")
	require.Equal(t, "bar: foo", err.Error())
}

func TestWrapNil(t *testing.T) {
	var err error
	Wrap(&err, "bar")
	require.NoError(t, err)
}

func TestWrapErr(t *testing.T) {
	var wrapped = errors.New("network down")
	WrapErr(&wrapped, MintingFailed)
	require.ErrorIs(t, wrapped, MintingFailed)
	require.Equal(t, "token minting failed: network down", wrapped.Error())
}
