package utils

import (
	"net"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
)

// HTTPClient is a wrapper around the resty.Client HTTP client.
// It embeds *resty.Client to expose all of its methods directly,
// while allowing extension with additional application-specific behavior.
type HTTPClient struct {
	*resty.Client
}

// NewHTTPClient creates an HTTPClient pointed at baseURL.
//
// The client has no overall request timeout: archive downloads may stream
// for a long time, so deadlines are applied per request through the context.
// connectTimeout bounds only TCP connection establishment. A zero value
// leaves the dialer default in place.
//
// Each call returns an independent client instance with its own
// configuration, connection pool, and state.
//
// Example usage:
//
//	client := utils.NewHTTPClient("http://origin:8080/_sync", 30*time.Second)
//	resp, err := client.R().Get("/manifest")
func NewHTTPClient(baseURL string, connectTimeout time.Duration) *HTTPClient {
	dialer := &net.Dialer{
		Timeout:   connectTimeout,
		KeepAlive: 30 * time.Second,
	}

	transport := http.DefaultTransport.(*http.Transport).Clone()
	transport.DialContext = dialer.DialContext
	// Archives are already gzip; letting the transport decompress them would
	// hide the real byte count from the caller.
	transport.DisableCompression = true

	client := resty.New().
		SetTransport(transport).
		SetBaseURL(baseURL)

	return &HTTPClient{Client: client}
}
