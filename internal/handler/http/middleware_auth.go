package http

import (
	"crypto/subtle"
	"net/http"
	"net/netip"
	"strings"

	"github.com/go-chi/chi/v5/middleware"

	"github.com/MKhiriev/go-tree-sync/internal/logger"
	"github.com/MKhiriev/go-tree-sync/internal/utils"
)

// auth is an HTTP middleware that checks the shared bearer token.
//
// The token from the "Authorization" header is compared with the configured
// secret in constant time. Requests are rejected with 403 Forbidden when:
//   - the header is absent ([ErrEmptyAuthorizationHeader]);
//   - it is not a bearer token ([ErrInvalidAuthorizationHeader], [ErrEmptyToken]);
//   - the token differs from the secret, or no secret is configured
//     ([ErrInvalidToken]).
func (h *Handler) auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromRequest(r)

		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			log.Err(ErrEmptyAuthorizationHeader).Send()
			utils.WriteJSONError(w, http.StatusText(http.StatusForbidden), http.StatusForbidden)
			return
		}

		token, err := getTokenFromAuthHeader(authHeader)
		if err != nil {
			log.Err(err).Send()
			utils.WriteJSONError(w, http.StatusText(http.StatusForbidden), http.StatusForbidden)
			return
		}

		if h.token == "" || subtle.ConstantTimeCompare([]byte(token), []byte(h.token)) != 1 {
			log.Err(ErrInvalidToken).Msg("token rejected")
			utils.WriteJSONError(w, http.StatusText(http.StatusForbidden), http.StatusForbidden)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// getTokenFromAuthHeader extracts the token from a raw "Authorization"
// header value of the form:
//
//	Authorization: Bearer <token>
//
// The scheme is matched case-insensitively.
func getTokenFromAuthHeader(authHeader string) (string, error) {
	scheme, token, found := strings.Cut(authHeader, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", ErrInvalidAuthorizationHeader
	}

	token = strings.TrimSpace(token)
	if token == "" {
		return "", ErrEmptyToken
	}

	return token, nil
}

// withRealIP rewrites RemoteAddr from X-Forwarded-For, X-Real-IP or
// True-Client-IP, but only for requests whose TCP peer is a trusted proxy.
// Anyone else keeps the address the connection came from.
func (h *Handler) withRealIP(next http.Handler) http.Handler {
	if len(h.trusted) == 0 {
		return next
	}

	viaProxy := middleware.RealIP(next)
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if addr, ok := remoteAddr(r.RemoteAddr); ok && containsAddr(h.trusted, addr) {
			viaProxy.ServeHTTP(w, r)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// allowList rejects requests whose source address falls outside the
// configured networks. The address is the TCP peer unless withRealIP
// replaced it for a trusted proxy.
func (h *Handler) allowList(next http.Handler) http.Handler {
	if !h.restricted {
		return next
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		addr, ok := remoteAddr(r.RemoteAddr)
		if !ok || !h.isAllowed(addr) {
			logger.FromRequest(r).Err(ErrAddressNotAllowed).Str("remote_addr", r.RemoteAddr).Send()
			utils.WriteJSONError(w, http.StatusText(http.StatusForbidden), http.StatusForbidden)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (h *Handler) isAllowed(addr netip.Addr) bool {
	return containsAddr(h.allowed, addr)
}

func containsAddr(prefixes []netip.Prefix, addr netip.Addr) bool {
	for _, p := range prefixes {
		if p.Contains(addr) {
			return true
		}
	}
	return false
}

// remoteAddr parses "host:port" as set by net/http, or a bare address as
// set by middleware.RealIP.
func remoteAddr(s string) (netip.Addr, bool) {
	if ap, err := netip.ParseAddrPort(s); err == nil {
		return ap.Addr().Unmap(), true
	}
	addr, err := netip.ParseAddr(s)
	if err != nil {
		return netip.Addr{}, false
	}
	return addr.Unmap(), true
}
