// Command healthcheck probes the console's health endpoint from inside the
// container. It exits 0 when the process is live and, with -backend, only
// when the backend also accepts the stored admin key.
package main

import (
	"context"
	"flag"
	"io"
	"net"
	"net/http"
	"os"
	"time"

	"github.com/tidwall/gjson"
)

const defaultAddr = "127.0.0.1:8080"

func main() {
	requireBackend := flag.Bool("backend", false, "also require the backend to accept the stored admin key")
	flag.Parse()

	os.Exit(check("http://"+normalizeAddr(os.Getenv("VIUELPADEL_LISTEN_ADDR")), *requireBackend))
}

// check returns the process exit code for a probe of baseURL.
func check(baseURL string, requireBackend bool) int {
	client := &http.Client{Timeout: 2 * time.Second}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, baseURL+"/api/v1/health", nil)
	if err != nil {
		return 1
	}

	resp, err := client.Do(req)
	if err != nil {
		return 1
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return 1
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	if err != nil {
		return 1
	}
	if gjson.GetBytes(body, "status").String() != "ok" {
		return 1
	}
	if requireBackend && gjson.GetBytes(body, "backend").String() != "ok" {
		return 1
	}

	return 0
}

// normalizeAddr ensures the healthcheck connects to loopback rather than the
// bind-all address. The probe runs inside the same container as the server.
func normalizeAddr(raw string) string {
	if raw == "" {
		return defaultAddr
	}

	host, port, err := net.SplitHostPort(raw)
	if err != nil {
		return defaultAddr
	}

	if host == "" || host == "0.0.0.0" || host == "::" {
		host = "127.0.0.1"
	}

	return net.JoinHostPort(host, port)
}
