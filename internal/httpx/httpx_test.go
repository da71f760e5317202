package httpx

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPost(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(
		func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

			var tuple []string
			body, err := io.ReadAll(r.Body)
			require.NoError(t, err)
			require.NoError(t, json.Unmarshal(body, &tuple))
			require.Equal(t, []string{"key", "payload"}, tuple)

			io.WriteString(w, "ok")
		},
	))
	defer srv.Close()

	body, err := Post(context.Background(), srv.Client(), srv.URL, []string{"key", "payload"})
	require.NoError(t, err)
	require.Equal(t, "ok", string(body))
}

func TestGet(t *testing.T) {
	cases := []struct {
		name    string
		status  int
		body    string
		wantErr bool
	}{
		{
			name:   "ok",
			status: http.StatusOK,
			body:   "interpreter source",
		},
		{
			name:    "not found",
			status:  http.StatusNotFound,
			wantErr: true,
		},
		{
			name:    "server error",
			status:  http.StatusInternalServerError,
			wantErr: true,
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(
				func(w http.ResponseWriter, r *http.Request) {
					w.WriteHeader(c.status)
					io.WriteString(w, c.body)
				},
			))
			defer srv.Close()

			body, err := Get(context.Background(), srv.Client(), srv.URL)
			if c.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.Equal(t, c.body, string(body))
		})
	}
}

func TestGetUnreachable(t *testing.T) {
	// Grab an address and immediately close it again.
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	_, err := Get(context.Background(), NewClient(), url)
	require.Error(t, err)
}
