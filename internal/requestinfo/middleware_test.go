// internal/requestinfo/middleware_test.go
//
// Unit-tests for the Enrich middleware and its IP extraction rules.

package requestinfo

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestEnrich_AttachesRequestInfo(t *testing.T) {
	var got *RequestInfo
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = FromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodPost, "/leads/capture", nil)
	req.Header.Set("User-Agent",
		"Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0.0.0 Safari/537.36")
	req.Header.Set("Accept-Language", "pt-BR,pt;q=0.9,en;q=0.8")
	req.Header.Set("Referer", "https://example.com/pricing")
	rr := httptest.NewRecorder()

	Enrich(next).ServeHTTP(rr, req)

	if got == nil {
		t.Fatal("RequestInfo missing from context")
	}
	if got.UA.Browser != "Chrome" {
		t.Fatalf("browser = %q, want Chrome", got.UA.Browser)
	}
	if got.UA.PrimaryLang != "pt-br" {
		t.Fatalf("lang = %q, want pt-br", got.UA.PrimaryLang)
	}
	if got.Referer != "https://example.com/pricing" {
		t.Fatalf("referer = %q", got.Referer)
	}
}

func TestClientIP_ForwardedChain(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Forwarded-For", "203.0.113.7, 10.0.0.1")
	req.RemoteAddr = "10.0.0.9:1234"

	if got := clientIP(req); got == nil || got.String() != "203.0.113.7" {
		t.Fatalf("clientIP = %v, want 203.0.113.7", got)
	}
}

func TestClientIP_RemoteAddrFallback(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "192.0.2.4:5678"

	if got := clientIP(req); got == nil || got.String() != "192.0.2.4" {
		t.Fatalf("clientIP = %v, want 192.0.2.4", got)
	}
}

func TestMeta_OmitsEmptyFields(t *testing.T) {
	info := &RequestInfo{UA: UA{Raw: "curl/8.0", Browser: "Unknown"}}
	m := info.Meta()

	if _, ok := m["referer"]; ok {
		t.Fatal("empty referer should be omitted")
	}
	if _, ok := m["ip"]; ok {
		t.Fatal("nil IP should be omitted")
	}
	if m["user_agent"] != "curl/8.0" {
		t.Fatalf("user_agent = %v", m["user_agent"])
	}
}
