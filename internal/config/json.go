package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// StructuredJSONConfig mirrors [StructuredConfig] with JSON-friendly field
// types. Durations accept either strings ("30s") or nanosecond numbers.
type StructuredJSONConfig struct {
	App struct {
		Token    string `json:"token"`
		Version  string `json:"version"`
		LogLevel string `json:"log_level"`
	} `json:"app,omitempty"`

	Server struct {
		HTTPAddress    string   `json:"address"`
		RequestTimeout Duration `json:"request_timeout"`
		RoutePrefix    string   `json:"route_prefix"`
		AllowedIPs     []string `json:"allowed_ips"`
		TrustedProxies []string `json:"trusted_proxies"`
	} `json:"server,omitempty"`

	Adapter struct {
		Remote         string   `json:"remote"`
		RequestTimeout Duration `json:"request_timeout"`
		ConnectTimeout Duration `json:"connect_timeout"`
	} `json:"adapter,omitempty"`

	Storage struct {
		BaseDir       string            `json:"base_dir"`
		Roots         map[string]string `json:"roots"`
		TempDir       string            `json:"temp_dir"`
		LockDir       string            `json:"lock_dir"`
		ArchivePrefix string            `json:"archive_prefix"`
	} `json:"storage,omitempty"`

	Workers struct {
		Parallelism int `json:"parallelism"`
	} `json:"workers,omitempty"`
}

func parseJSON(jsonFilePath string) (*StructuredConfig, error) {
	jsonFile, err := os.Open(jsonFilePath)
	if err != nil {
		return nil, fmt.Errorf("error reading a json file: %w", err)
	}
	defer jsonFile.Close()

	var jsonCfg StructuredJSONConfig
	if err := json.NewDecoder(jsonFile).Decode(&jsonCfg); err != nil {
		return nil, fmt.Errorf("error decoding json configs: %w", err)
	}

	cfg := &StructuredConfig{
		App: App{
			Token:    jsonCfg.App.Token,
			Version:  jsonCfg.App.Version,
			LogLevel: jsonCfg.App.LogLevel,
		},
		Server: Server{
			HTTPAddress:    jsonCfg.Server.HTTPAddress,
			RequestTimeout: time.Duration(jsonCfg.Server.RequestTimeout),
			RoutePrefix:    jsonCfg.Server.RoutePrefix,
			AllowedIPs:     jsonCfg.Server.AllowedIPs,
			TrustedProxies: jsonCfg.Server.TrustedProxies,
		},
		Adapter: Adapter{
			Remote:         jsonCfg.Adapter.Remote,
			RequestTimeout: time.Duration(jsonCfg.Adapter.RequestTimeout),
			ConnectTimeout: time.Duration(jsonCfg.Adapter.ConnectTimeout),
		},
		Storage: Storage{
			BaseDir:       jsonCfg.Storage.BaseDir,
			Roots:         jsonCfg.Storage.Roots,
			TempDir:       jsonCfg.Storage.TempDir,
			LockDir:       jsonCfg.Storage.LockDir,
			ArchivePrefix: jsonCfg.Storage.ArchivePrefix,
		},
		Workers: Workers{
			Parallelism: jsonCfg.Workers.Parallelism,
		},
	}

	return cfg, nil
}

// Duration is a wrapper around time.Duration that supports JSON unmarshaling from strings like "1h", "30s"
type Duration time.Duration

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v interface{}
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}

	switch value := v.(type) {
	case float64:
		*d = Duration(time.Duration(value))
		return nil
	case string:
		tmp, err := time.ParseDuration(value)
		if err != nil {
			return err
		}
		*d = Duration(tmp)
		return nil
	default:
		return json.Unmarshal(b, (*time.Duration)(d))
	}
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}
