package http

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/MKhiriev/go-tree-sync/internal/config"
	"github.com/MKhiriev/go-tree-sync/internal/logger"
	"github.com/MKhiriev/go-tree-sync/internal/service"
)

// executeMiddleware прогоняет запрос через middleware и сообщает, был ли
// вызван следующий обработчик.
func executeMiddleware(mw func(http.Handler) http.Handler, req *http.Request) (*httptest.ResponseRecorder, bool) {
	called := false
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		w.WriteHeader(http.StatusOK)
	})

	rec := httptest.NewRecorder()
	mw(next).ServeHTTP(rec, req)
	return rec, called
}

func handlerWith(token string, allowed ...string) *Handler {
	return NewHandler(&service.Services{}, config.Server{RoutePrefix: "/_sync", AllowedIPs: allowed}, config.App{Token: token}, logger.Nop())
}

// ── auth ─────────────────────────────────────────────────────────────────────

func TestAuth(t *testing.T) {
	tests := []struct {
		name       string
		token      string
		header     string
		wantCalled bool
	}{
		{"valid token", "s3cret", "Bearer s3cret", true},
		{"scheme is case-insensitive", "s3cret", "bearer s3cret", true},
		{"missing header", "s3cret", "", false},
		{"wrong token", "s3cret", "Bearer guess", false},
		{"token prefix only", "s3cret", "Bearer s3cre", false},
		{"wrong scheme", "s3cret", "Basic s3cret", false},
		{"no token after scheme", "s3cret", "Bearer ", false},
		{"scheme only", "s3cret", "Bearer", false},
		{"origin without token rejects everything", "", "Bearer ", false},
		{"origin without token rejects any token", "", "Bearer anything", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := handlerWith(tt.token)
			req := httptest.NewRequest(http.MethodGet, "/_sync/manifest", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}

			rec, called := executeMiddleware(h.auth, req)

			assert.Equal(t, tt.wantCalled, called)
			if !tt.wantCalled {
				assert.Equal(t, http.StatusForbidden, rec.Code)
				assert.JSONEq(t, `{"error":"Forbidden"}`, rec.Body.String())
			}
		})
	}
}

func TestGetTokenFromAuthHeader(t *testing.T) {
	tests := []struct {
		header    string
		wantToken string
		wantErr   error
	}{
		{"Bearer abc", "abc", nil},
		{"BEARER  abc ", "abc", nil},
		{"Bearer", "", ErrInvalidAuthorizationHeader},
		{"Token abc", "", ErrInvalidAuthorizationHeader},
		{"Bearer   ", "", ErrEmptyToken},
	}

	for _, tt := range tests {
		t.Run(tt.header, func(t *testing.T) {
			token, err := getTokenFromAuthHeader(tt.header)

			assert.ErrorIs(t, err, tt.wantErr)
			assert.Equal(t, tt.wantToken, token)
		})
	}
}

// ── allow-list ───────────────────────────────────────────────────────────────

func TestAllowList(t *testing.T) {
	tests := []struct {
		name       string
		allowed    []string
		remoteAddr string
		wantCalled bool
	}{
		{"empty list allows everyone", nil, "203.0.113.7:5555", true},
		{"exact address", []string{"203.0.113.7"}, "203.0.113.7:5555", true},
		{"inside block", []string{"10.0.0.0/8"}, "10.20.30.40:1234", true},
		{"bare address from RealIP", []string{"10.0.0.0/8"}, "10.1.1.1", true},
		{"ipv4-mapped ipv6", []string{"10.0.0.0/8"}, "[::ffff:10.1.1.1]:80", true},
		{"ipv6 loopback", []string{"::1"}, "[::1]:80", true},
		{"outside block", []string{"10.0.0.0/8"}, "192.168.0.1:1234", false},
		{"unparsable address", []string{"10.0.0.0/8"}, "not-an-ip", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := handlerWith(testToken, tt.allowed...)
			req := httptest.NewRequest(http.MethodGet, "/_sync/manifest", nil)
			req.RemoteAddr = tt.remoteAddr

			rec, called := executeMiddleware(h.allowList, req)

			assert.Equal(t, tt.wantCalled, called)
			if !tt.wantCalled {
				assert.Equal(t, http.StatusForbidden, rec.Code)
			}
		})
	}
}

func TestAllowList_InvalidEntriesRejectEveryone(t *testing.T) {
	// список задан, но ни одна запись не разобралась: пускать нельзя никого
	h := handlerWith(testToken, "garbage", " ")
	req := httptest.NewRequest(http.MethodGet, "/_sync/manifest", nil)

	rec, called := executeMiddleware(h.allowList, req)

	assert.False(t, called)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestAllowList_BlankEntriesLeaveAccessOpen(t *testing.T) {
	h := handlerWith(testToken, "", "  ")
	req := httptest.NewRequest(http.MethodGet, "/_sync/manifest", nil)

	_, called := executeMiddleware(h.allowList, req)

	assert.True(t, called)
}

// ── forwarding headers ───────────────────────────────────────────────────────

func proxiedHandler(trusted ...string) *Handler {
	return NewHandler(
		&service.Services{AppInfoService: &stubAppInfoService{version: "v"}},
		config.Server{RoutePrefix: "/_sync", AllowedIPs: []string{"198.51.100.0/24"}, TrustedProxies: trusted},
		config.App{Token: testToken},
		logger.Nop(),
	)
}

func TestAllowList_ForwardingHeadersThroughRouter(t *testing.T) {
	tests := []struct {
		name       string
		trusted    []string
		peer       string
		header     string
		forwarded  string
		wantStatus int
	}{
		{"spoofed forwarded-for from untrusted peer", nil, "203.0.113.66:4444", "X-Forwarded-For", "198.51.100.9", http.StatusForbidden},
		{"spoofed real-ip from untrusted peer", nil, "203.0.113.66:4444", "X-Real-IP", "198.51.100.9", http.StatusForbidden},
		{"peer outside trusted proxies", []string{"10.0.0.1"}, "203.0.113.66:4444", "X-Forwarded-For", "198.51.100.9", http.StatusForbidden},
		{"allowed peer ignores header", nil, "198.51.100.20:4444", "X-Forwarded-For", "203.0.113.1", http.StatusOK},
		{"trusted proxy forwards allowed client", []string{"10.0.0.0/8"}, "10.0.0.1:4444", "X-Forwarded-For", "198.51.100.9", http.StatusOK},
		{"trusted proxy forwards denied client", []string{"10.0.0.0/8"}, "10.0.0.1:4444", "X-Forwarded-For", "203.0.113.1", http.StatusForbidden},
		{"trusted proxy via real-ip", []string{"10.0.0.1"}, "10.0.0.1:4444", "X-Real-IP", "198.51.100.9", http.StatusOK},
		{"trusted proxy without header", []string{"10.0.0.1"}, "10.0.0.1:4444", "", "", http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := proxiedHandler(tt.trusted...)
			req := authorized(http.MethodGet, "/_sync/version", nil)
			req.RemoteAddr = tt.peer
			if tt.header != "" {
				req.Header.Set(tt.header, tt.forwarded)
			}

			assert.Equal(t, tt.wantStatus, serve(h, req).Code)
		})
	}
}

func TestWithRealIP_KeepsPeerWithoutTrustedProxies(t *testing.T) {
	h := handlerWith(testToken)
	req := httptest.NewRequest(http.MethodGet, "/_sync/manifest", nil)
	req.RemoteAddr = "203.0.113.66:4444"
	req.Header.Set("X-Forwarded-For", "198.51.100.9")

	var seen string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { seen = r.RemoteAddr })
	h.withRealIP(next).ServeHTTP(httptest.NewRecorder(), req)

	assert.Equal(t, "203.0.113.66:4444", seen)
}
