package http

import (
	"net/netip"
	"strings"

	"github.com/MKhiriev/go-tree-sync/internal/config"
	"github.com/MKhiriev/go-tree-sync/internal/logger"
	"github.com/MKhiriev/go-tree-sync/internal/service"
)

type Handler struct {
	services *service.Services

	token  string
	prefix string

	// restricted is set when any allow-list entry was configured, even if
	// none of them parsed. An empty allowed list then admits nobody.
	restricted bool
	allowed    []netip.Prefix
	trusted    []netip.Prefix

	logger *logger.Logger
}

func NewHandler(services *service.Services, serverCfg config.Server, appCfg config.App, logger *logger.Logger) *Handler {
	h := &Handler{
		services:   services,
		token:      appCfg.Token,
		prefix:     strings.TrimSuffix(serverCfg.RoutePrefix, "/"),
		restricted: hasEntries(serverCfg.AllowedIPs),
		allowed:    parseAllowList(serverCfg.AllowedIPs, logger),
		trusted:    parseAllowList(serverCfg.TrustedProxies, logger),
		logger:     logger,
	}

	if h.token == "" {
		logger.Warn().Msg("no token configured: every request will be rejected")
	}
	if h.restricted && len(h.allowed) == 0 {
		logger.Error().Strs("allowed_ips", serverCfg.AllowedIPs).Msg("no valid allow-list entry: every request will be rejected")
	}
	logger.Info().Str("prefix", h.prefix).
		Int("allowed_networks", len(h.allowed)).
		Int("trusted_proxies", len(h.trusted)).
		Msg("http handler created")
	return h
}

func hasEntries(entries []string) bool {
	for _, entry := range entries {
		if strings.TrimSpace(entry) != "" {
			return true
		}
	}
	return false
}

// parseAllowList turns IPs and CIDR blocks into prefixes. A bare IP becomes a
// single-address prefix.
func parseAllowList(entries []string, logger *logger.Logger) []netip.Prefix {
	prefixes := make([]netip.Prefix, 0, len(entries))
	for _, entry := range entries {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		if p, err := netip.ParsePrefix(entry); err == nil {
			prefixes = append(prefixes, p.Masked())
			continue
		}
		addr, err := netip.ParseAddr(entry)
		if err != nil {
			logger.Warn().Str("entry", entry).Msg("ignoring invalid address entry")
			continue
		}
		addr = addr.Unmap()
		prefixes = append(prefixes, netip.PrefixFrom(addr, addr.BitLen()))
	}
	return prefixes
}
