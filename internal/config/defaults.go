package config

import (
	"os"
	"time"
)

const (
	defaultHTTPAddress    = "localhost:8080"
	defaultRoutePrefix    = "/_sync"
	defaultRequestTimeout = 60 * time.Second
	defaultConnectTimeout = 30 * time.Second
	defaultParallelism    = 1
	defaultLogLevel       = "info"
)

func defaults() *StructuredConfig {
	return &StructuredConfig{
		App: App{
			LogLevel: defaultLogLevel,
		},
		Server: Server{
			HTTPAddress:    defaultHTTPAddress,
			RequestTimeout: defaultRequestTimeout,
			RoutePrefix:    defaultRoutePrefix,
		},
		Adapter: Adapter{
			RequestTimeout: defaultRequestTimeout,
			ConnectTimeout: defaultConnectTimeout,
		},
		Storage: Storage{
			BaseDir: ".",
			TempDir: os.TempDir(),
		},
		Workers: Workers{
			Parallelism: defaultParallelism,
		},
	}
}

// defaultRoots is applied only when no source configured any root.
func defaultRoots() map[string]string {
	return map[string]string{
		"content": "content",
		"assets":  "public/assets",
	}
}
