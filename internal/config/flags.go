package config

import (
	"errors"
	"flag"
	"fmt"
	"net"
	"sort"
	"strconv"
	"strings"
	"time"
)

// NetAddress holds structured network address data for host and port.
// It implements the flag.Value interface.
type NetAddress struct {
	Host string
	Port int
}

// ParseFlags parses the origin server's command-line flags from args.
//
// Flags:
//
//	-a server address in format [host]:[port]
//	-c/-config json file path with configs
//	-request-timeout request timeout (e.g., "30s", "1m")
//	-prefix route prefix (e.g., "/_sync")
//	-base-dir directory anchoring relative roots
//	-roots root mapping in format key:dir[,key:dir...]
//	-allowed-ips comma separated addresses or CIDR blocks
//	-trusted-proxies comma separated proxy addresses or CIDR blocks
//	-log-level zerolog level name
func ParseFlags(args []string) (*StructuredConfig, error) {
	var serverAddress NetAddress
	var jsonConfigPath string
	var requestTimeout time.Duration
	var routePrefix string
	var baseDir string
	var roots RootsFlag
	var allowedIPs string
	var trustedProxies string
	var logLevel string

	fs := flag.NewFlagSet("tree-sync-server", flag.ContinueOnError)
	fs.Var(&serverAddress, "a", "Net address host:port")
	fs.StringVar(&jsonConfigPath, "c", "", "JSON config file path")
	fs.StringVar(&jsonConfigPath, "config", "", "JSON config file path (alias)")
	fs.DurationVar(&requestTimeout, "request-timeout", 0, "Request timeout (e.g., 30s, 1m)")
	fs.StringVar(&routePrefix, "prefix", "", "Route prefix (e.g., /_sync)")
	fs.StringVar(&baseDir, "base-dir", "", "Directory anchoring relative roots")
	fs.Var(&roots, "roots", "Root mapping key:dir[,key:dir...]")
	fs.StringVar(&allowedIPs, "allowed-ips", "", "Comma separated allowed addresses or CIDR blocks")
	fs.StringVar(&trustedProxies, "trusted-proxies", "", "Comma separated proxies whose forwarding headers are trusted")
	fs.StringVar(&logLevel, "log-level", "", "Log level (debug, info, warn, error)")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("error parsing flags: %w", err)
	}

	return &StructuredConfig{
		App: App{
			LogLevel: logLevel,
		},
		Server: Server{
			HTTPAddress:    serverAddress.String(),
			RequestTimeout: requestTimeout,
			RoutePrefix:    routePrefix,
			AllowedIPs:     SplitList(allowedIPs),
			TrustedProxies: SplitList(trustedProxies),
		},
		Storage: Storage{
			BaseDir: baseDir,
			Roots:   roots.Map(),
		},
		JSONFilePath: jsonConfigPath,
	}, nil
}

// String returns a canonical host:port string for a NetAddress.
func (a *NetAddress) String() string {
	if a.Host == "" && a.Port == 0 {
		return ""
	}

	return a.Host + ":" + strconv.Itoa(a.Port)
}

// Set parses the input string of form host:port and populates the NetAddress.
// It validates the port range and checks IP correctness unless host is
// "localhost" or empty (listen on every interface).
func (a *NetAddress) Set(s string) error {
	host, portStr, err := net.SplitHostPort(s)
	if err != nil {
		return errors.New("need address in a form `host:port`")
	}

	port, err := strconv.Atoi(portStr)
	if err != nil {
		return err
	}

	if port < 1 || port > 65535 {
		return errors.New("port number must be in range 1-65535")
	}

	if host != "localhost" && host != "" {
		if ip := net.ParseIP(host); ip == nil {
			return errors.New("incorrect IP-address provided")
		}
	}

	a.Host = host
	a.Port = port
	return nil
}

// RootsFlag collects key:dir pairs. It implements flag.Value and may be
// repeated or given a comma separated list.
type RootsFlag map[string]string

// String renders the mapping sorted by key.
func (r *RootsFlag) String() string {
	if r == nil || len(*r) == 0 {
		return ""
	}
	keys := make([]string, 0, len(*r))
	for k := range *r {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	pairs := make([]string, 0, len(keys))
	for _, k := range keys {
		pairs = append(pairs, k+":"+(*r)[k])
	}
	return strings.Join(pairs, ",")
}

// Set parses "key:dir[,key:dir...]".
func (r *RootsFlag) Set(s string) error {
	if *r == nil {
		*r = make(RootsFlag)
	}
	for _, pair := range SplitList(s) {
		key, dir, ok := strings.Cut(pair, ":")
		key, dir = strings.TrimSpace(key), strings.TrimSpace(dir)
		if !ok || key == "" || dir == "" {
			return fmt.Errorf("need root in a form `key:dir`, got %q", pair)
		}
		(*r)[key] = dir
	}
	return nil
}

// Type names the value for pflag-based command lines.
func (r *RootsFlag) Type() string {
	return "roots"
}

// Map returns the collected mapping, or nil when empty.
func (r RootsFlag) Map() map[string]string {
	if len(r) == 0 {
		return nil
	}
	return map[string]string(r)
}

// SplitList splits a comma separated list, trimming blanks and dropping
// empty items.
func SplitList(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
