package security

import (
	"net/http/httptest"
	"testing"
	"time"
)

func TestRateLimiterAllow(t *testing.T) {
	rl := NewRateLimiter(3, time.Minute)

	for i := 0; i < 3; i++ {
		if !rl.Allow("1.2.3.4") {
			t.Fatalf("request %d denied, want allowed", i+1)
		}
	}
	if rl.Allow("1.2.3.4") {
		t.Error("request over limit allowed")
	}

	// Separate IPs have separate buckets
	if !rl.Allow("5.6.7.8") {
		t.Error("fresh IP denied")
	}
}

func TestGetClientIP(t *testing.T) {
	tests := []struct {
		name    string
		headers map[string]string
		remote  string
		want    string
	}{
		{"remote addr only", nil, "10.0.0.1:5000", "10.0.0.1:5000"},
		{"x-real-ip", map[string]string{"X-Real-IP": "10.0.0.2"}, "10.0.0.1:5000", "10.0.0.2"},
		{"x-forwarded-for single", map[string]string{"X-Forwarded-For": "10.0.0.3"}, "10.0.0.1:5000", "10.0.0.3"},
		{"x-forwarded-for chain", map[string]string{"X-Forwarded-For": "10.0.0.4, 10.0.0.5"}, "10.0.0.1:5000", "10.0.0.4"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest("GET", "/", nil)
			r.RemoteAddr = tt.remote
			for k, v := range tt.headers {
				r.Header.Set(k, v)
			}
			if got := GetClientIP(r); got != tt.want {
				t.Errorf("GetClientIP() = %q, want %q", got, tt.want)
			}
		})
	}
}
