package main

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeAddr(t *testing.T) {
	tests := map[string]string{
		"":               "127.0.0.1:8080",
		"garbage":        "127.0.0.1:8080",
		":9090":          "127.0.0.1:9090",
		"0.0.0.0:8080":   "127.0.0.1:8080",
		"[::]:8080":      "127.0.0.1:8080",
		"10.0.0.5:8081":  "10.0.0.5:8081",
		"localhost:8082": "localhost:8082",
	}

	for in, want := range tests {
		assert.Equal(t, want, normalizeAddr(in), "input %q", in)
	}
}

func TestCheck(t *testing.T) {
	tests := []struct {
		name           string
		status         int
		body           string
		requireBackend bool
		want           int
	}{
		{"live", http.StatusOK, `{"status":"ok","backend":"unauthenticated"}`, false, 0},
		{"backend required and ok", http.StatusOK, `{"status":"ok","backend":"ok"}`, true, 0},
		{"backend required and rejected", http.StatusOK, `{"status":"ok","backend":"rejected"}`, true, 1},
		{"server error", http.StatusInternalServerError, `{"error":"internal server error"}`, false, 1},
		{"unexpected body", http.StatusOK, `not json`, false, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "/api/v1/health", r.URL.Path)
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			assert.Equal(t, tt.want, check(srv.URL, tt.requireBackend))
		})
	}
}

func TestCheck_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	assert.Equal(t, 1, check(url, false))
}
