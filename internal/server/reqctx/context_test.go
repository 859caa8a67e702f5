package reqctx

import (
	"context"
	"net/http/httptest"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/maruel/ksid"
)

func TestGetClientIP(t *testing.T) {
	tests := []struct {
		name       string
		remoteAddr string
		headers    map[string]string
		want       string
	}{
		{"ipv4", "192.0.2.1:1234", nil, "192.0.2.1"},
		{"ipv6", "[2001:db8::1]:8080", nil, "2001:db8::1"},
		{"ipv6 without port", "[::1]", nil, "::1"},
		{"no port", "192.0.2.1", nil, "192.0.2.1"},
		{"forwarded", "10.0.0.1:80", map[string]string{"X-Forwarded-For": "203.0.113.7, 10.0.0.2"}, "203.0.113.7"},
		{"forwarded single", "10.0.0.1:80", map[string]string{"X-Forwarded-For": " 203.0.113.8 "}, "203.0.113.8"},
		{"real ip", "10.0.0.1:80", map[string]string{"X-Real-IP": "203.0.113.9"}, "203.0.113.9"},
		{
			"forwarded wins",
			"10.0.0.1:80",
			map[string]string{"X-Forwarded-For": "203.0.113.7", "X-Real-IP": "203.0.113.9"},
			"203.0.113.7",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest("GET", "/books", nil)
			r.RemoteAddr = tt.remoteAddr
			for k, v := range tt.headers {
				r.Header.Set(k, v)
			}
			if got := GetClientIP(r); got != tt.want {
				t.Errorf("GetClientIP() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestContextValues(t *testing.T) {
	ctx := context.Background()
	if ClientIP(ctx) != "" || UserAgent(ctx) != "" || CountryCode(ctx) != "" || RequestID(ctx) != 0 {
		t.Fatal("expected empty values on a bare context")
	}
	id := ksid.NewID()
	ctx = WithClientIP(ctx, "192.0.2.1")
	ctx = WithUserAgent(ctx, "curl/8.0")
	ctx = WithCountryCode(ctx, "CA")
	ctx = WithRequestID(ctx, id)
	if got := ClientIP(ctx); got != "192.0.2.1" {
		t.Errorf("ClientIP() = %q", got)
	}
	if got := UserAgent(ctx); got != "curl/8.0" {
		t.Errorf("UserAgent() = %q", got)
	}
	if got := CountryCode(ctx); got != "CA" {
		t.Errorf("CountryCode() = %q", got)
	}
	if got := RequestID(ctx); got != id {
		t.Errorf("RequestID() = %v, want %v", got, id)
	}
}

func TestLogAttrs(t *testing.T) {
	if got := LogAttrs(context.Background()); len(got) != 0 {
		t.Errorf("LogAttrs(bare) = %v, want empty", got)
	}
	id := ksid.NewID()
	ctx := WithRequestID(context.Background(), id)
	ctx = WithClientIP(ctx, "192.0.2.1")
	ctx = WithUserAgent(ctx, "curl/8.0")
	want := []any{"id", id.String(), "ip", "192.0.2.1", "ua", "curl/8.0"}
	if diff := cmp.Diff(want, LogAttrs(ctx)); diff != "" {
		t.Errorf("LogAttrs mismatch (-want +got):\n%s", diff)
	}
}
