package middleware

import (
	"net"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestClientIP(t *testing.T) {
	tests := []struct {
		name       string
		header     string
		remoteAddr string
		want       string
	}{
		{"single forwarded ip", "203.0.113.1", "198.51.100.10:1234", "203.0.113.1"},
		{"multiple ips use first", " 203.0.113.1 , 198.51.100.2 ", "198.51.100.10:1234", "203.0.113.1"},
		{"invalid forwarded falls back", "invalid", "198.51.100.10:1234", "198.51.100.10"},
		{"empty forwarded uses remote host", "", "198.51.100.10:1234", "198.51.100.10"},
		{"ipv6 forwarded", "2001:db8::1", net.JoinHostPort("2001:db8::2", "443"), "2001:db8::1"},
		{"remote without port", "invalid", "203.0.113.1", "203.0.113.1"},
		{"unparseable remote keeps raw address", "", "pipe-7f3a", "pipe-7f3a"},
		{"distinct unparseable remotes stay distinct", "", "pipe-9c21", "pipe-9c21"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.RemoteAddr = tc.remoteAddr
			if tc.header != "" {
				req.Header.Set("X-Forwarded-For", tc.header)
			}
			if got := clientIP(req); got != tc.want {
				t.Fatalf("clientIP() = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestRateLimitBlocksOverLimit(t *testing.T) {
	handler := RateLimit(2, time.Minute)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	for i := 0; i < 2; i++ {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = "198.51.100.10:1234"
		handler.ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("request %d status = %d, want 200", i, rec.Code)
		}
	}

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "198.51.100.10:1234"
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("status = %d, want 429", rec.Code)
	}
}
