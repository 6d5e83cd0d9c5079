package client

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-tree-sync/internal/config"
	"github.com/MKhiriev/go-tree-sync/internal/logger"
	"github.com/MKhiriev/go-tree-sync/internal/service"
	"github.com/MKhiriev/go-tree-sync/models"
)

func setClientEnv(t *testing.T) {
	t.Helper()
	t.Setenv("APP_TOKEN", "secret")
	t.Setenv("ADAPTER_REMOTE", "http://origin.test:8080")
	t.Setenv("STORAGE_ROOTS", "content:content,assets:public/assets")
	t.Setenv("STORAGE_TEMP_DIR", t.TempDir())
	t.Setenv("CONFIG", "")
}

// commandHarness запускает команды с заглушками вместо настоящего origin
type commandHarness struct {
	pull *stubPullService
	ui   *stubUI
	cfg  *config.ClientConfig
	out  bytes.Buffer
	err  bytes.Buffer
}

func (h *commandHarness) factory(cfg *config.ClientConfig, _ io.Reader, _ io.Writer, _ *logger.Logger) *App {
	h.cfg = cfg
	return newTestApp(h.pull, h.ui, cfg.Workers.Parallelism)
}

func (h *commandHarness) run(args ...string) int {
	cmd := newRootCommand(models.NewAppBuildInfo("1.2.3", "2026-10-01", "abc123"), h.factory)
	cmd.SetOut(&h.out)
	cmd.SetErr(&h.err)
	return Execute(context.Background(), cmd, args)
}

// ── pull ─────────────────────────────────────────────────────────────────────

func TestPullCommand_Flags(t *testing.T) {
	setClientEnv(t)
	h := &commandHarness{pull: &stubPullService{plans: []models.RootPlan{deltaPlan("content")}}, ui: &stubUI{}}

	code := h.run("pull", "--only", "content,assets", "--dry-run", "--full", "--parallel", "3")

	require.Equal(t, ExitOK, code, h.err.String())
	assert.Equal(t, models.PullOptions{
		Keys:   []string{"content", "assets"},
		DryRun: true,
		Full:   true,
	}, h.pull.gotOpts)
	assert.Equal(t, 3, h.cfg.Workers.Parallelism)
	assert.Equal(t, "http://origin.test:8080/_sync", h.cfg.Adapter.BaseURL)
}

func TestPullCommand_ExitCodes(t *testing.T) {
	tests := []struct {
		name string
		args []string
		pull *stubPullService
		env  map[string]string
		want int
	}{
		{
			name: "synced",
			args: []string{"pull", "--force"},
			pull: &stubPullService{plans: []models.RootPlan{deltaPlan("content")}},
			want: ExitOK,
		},
		{
			name: "failed root",
			args: []string{"pull", "--force"},
			pull: &stubPullService{plans: []models.RootPlan{{Key: "content", Err: service.ErrFilesystem}}},
			want: ExitFailure,
		},
		{
			name: "origin unreachable",
			args: []string{"pull"},
			pull: &stubPullService{planErr: service.ErrTransport},
			want: ExitFailure,
		},
		{
			name: "unknown root key",
			args: []string{"pull", "--only", "nope"},
			pull: &stubPullService{planErr: service.ErrConfiguration},
			want: ExitConfigError,
		},
		{
			name: "missing token",
			args: []string{"pull"},
			pull: &stubPullService{},
			env:  map[string]string{"APP_TOKEN": ""},
			want: ExitConfigError,
		},
		{
			name: "bad remote",
			args: []string{"pull"},
			pull: &stubPullService{},
			env:  map[string]string{"ADAPTER_REMOTE": "ftp://origin"},
			want: ExitConfigError,
		},
		{
			name: "unknown flag",
			args: []string{"pull", "--everything"},
			pull: &stubPullService{},
			want: ExitConfigError,
		},
		{
			name: "stray argument",
			args: []string{"pull", "content"},
			pull: &stubPullService{},
			want: ExitConfigError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setClientEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			h := &commandHarness{pull: tt.pull, ui: &stubUI{}}
			assert.Equal(t, tt.want, h.run(tt.args...), h.err.String())
			if tt.want != ExitOK {
				assert.Contains(t, h.err.String(), "Error:")
			}
		})
	}
}

func TestPullCommand_ConfigFile(t *testing.T) {
	setClientEnv(t)
	h := &commandHarness{pull: &stubPullService{}, ui: &stubUI{}}

	code := h.run("pull", "-c", "/definitely/not/here.json")

	assert.Equal(t, ExitConfigError, code)
	assert.Nil(t, h.cfg)
}

// ── version ──────────────────────────────────────────────────────────────────

func TestVersionCommand_Origin(t *testing.T) {
	setClientEnv(t)

	var gotRemote string
	cmd := &cobraHarness{}
	code := cmd.run(t, func(_ context.Context, cfg *config.ClientConfig) (string, error) {
		gotRemote = cfg.Adapter.BaseURL
		return "9.9.9", nil
	}, "version", "--origin")

	require.Equal(t, ExitOK, code, cmd.err.String())
	assert.Equal(t, "http://origin.test:8080/_sync", gotRemote)
	assert.Contains(t, cmd.out.String(), "Origin version: 9.9.9")
}

func TestVersionCommand_OriginUnreachable(t *testing.T) {
	setClientEnv(t)

	cmd := &cobraHarness{}
	code := cmd.run(t, func(context.Context, *config.ClientConfig) (string, error) {
		return "", errors.New("connection refused")
	}, "version", "--origin")

	assert.Equal(t, ExitFailure, code)
	assert.Contains(t, cmd.err.String(), "connection refused")
}

// cobraHarness запускает только команду version с подменённым запросом к origin
type cobraHarness struct {
	out bytes.Buffer
	err bytes.Buffer
}

func (h *cobraHarness) run(t *testing.T, originVersion originVersionFunc, args ...string) int {
	t.Helper()
	root := &cobra.Command{Use: "sync", SilenceUsage: true, SilenceErrors: true}
	root.AddCommand(newVersionCommand(models.NewAppBuildInfo("1.2.3", "", ""), originVersion))
	root.SetOut(&h.out)
	root.SetErr(&h.err)
	return Execute(context.Background(), root, args)
}

func TestVersionCommand(t *testing.T) {
	h := &commandHarness{}

	require.Equal(t, ExitOK, h.run("version"))

	out := h.out.String()
	assert.Contains(t, out, "1.2.3")
	assert.Contains(t, out, "2026-10-01")
	assert.Contains(t, out, "abc123")
}
