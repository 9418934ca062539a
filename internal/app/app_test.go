package app

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"browsershell/internal/config"
	"browsershell/internal/history"
	"browsershell/internal/prefs"
	"browsershell/internal/queue"
	"browsershell/pkg/logging"
)

// isolate points the config loader at an empty home and working directory.
func isolate(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Chdir(t.TempDir())
	for _, k := range []string{"ENGINE", "ENGINE_URL", "INSPECT_ADDR", "HOME_URL", "HISTORY_PATH", "LOG_LEVEL"} {
		t.Setenv("BROWSERSHELL_"+k, "")
	}
	return home
}

func TestApplyOverrides(t *testing.T) {
	base := config.GetDefaultConfig()

	tests := []struct {
		name  string
		flags Config
		check func(t *testing.T, got config.Config)
	}{
		{
			name:  "no flags",
			flags: Config{},
			check: func(t *testing.T, got config.Config) {
				assert.Equal(t, base, got)
			},
		},
		{
			name:  "debug",
			flags: Config{Debug: true},
			check: func(t *testing.T, got config.Config) {
				assert.Equal(t, "debug", got.LogLevel)
			},
		},
		{
			name:  "engine url implies remote",
			flags: Config{EngineURL: "ws://localhost:9000"},
			check: func(t *testing.T, got config.Config) {
				assert.Equal(t, config.EngineRemote, got.Engine.Kind)
				assert.Equal(t, "ws://localhost:9000", got.Engine.URL)
			},
		},
		{
			name:  "explicit kind wins",
			flags: Config{EngineKind: "sim", EngineURL: "ws://localhost:9000"},
			check: func(t *testing.T, got config.Config) {
				assert.Equal(t, config.EngineSim, got.Engine.Kind)
			},
		},
		{
			name:  "inspector and remote control",
			flags: Config{InspectAddr: "127.0.0.1:9999", RemoteControl: true},
			check: func(t *testing.T, got config.Config) {
				assert.True(t, got.Inspector.Enabled)
				assert.Equal(t, "127.0.0.1:9999", got.Inspector.Addr)
				assert.True(t, got.RemoteControl.Enabled)
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.check(t, tt.flags.applyOverrides(base))
		})
	}
}

func TestStartURL(t *testing.T) {
	s := config.GetDefaultConfig()
	assert.Equal(t, config.DefaultHomeURL, (&Config{}).startURL(s))
	assert.Equal(t, "https://go.dev/", (&Config{StartURL: "https://go.dev/"}).startURL(s))
}

func TestLogLevel(t *testing.T) {
	assert.Equal(t, logging.LevelDebug, logLevel(&Config{Debug: true}, "error"))
	assert.Equal(t, logging.LevelWarn, logLevel(&Config{}, "warn"))
	assert.Equal(t, logging.LevelInfo, logLevel(&Config{}, ""))
}

func TestInitializeServicesWithSimEngine(t *testing.T) {
	home := isolate(t)
	s := config.GetDefaultConfig()

	svc, err := InitializeServices(context.Background(), s, logging.NewSink())
	require.NoError(t, err)
	t.Cleanup(func() { _ = svc.Close() })

	assert.NotNil(t, svc.Shell)
	assert.Nil(t, svc.Remote)
	require.NotNil(t, svc.History)
	assert.FileExists(t, filepath.Join(home, ".config", "browsershell", "history.db"))
	// three host queues and the history backlog
	assert.Len(t, svc.Queues(), 4)
}

func TestInitializeServicesWithoutHistory(t *testing.T) {
	isolate(t)
	s := config.GetDefaultConfig()
	off := false
	s.History.Enabled = &off

	svc, err := InitializeServices(context.Background(), s, logging.NewSink())
	require.NoError(t, err)
	t.Cleanup(func() { _ = svc.Close() })
	assert.Nil(t, svc.History)
	assert.Len(t, svc.Queues(), 3)
}

func TestVisitsReachHistoryAfterClose(t *testing.T) {
	isolate(t)
	s := config.GetDefaultConfig()

	svc, err := InitializeServices(context.Background(), s, logging.NewSink())
	require.NoError(t, err)
	require.NoError(t, svc.Shell.Start("https://example.org/"))
	require.NoError(t, svc.Shell.Tick())

	path, err := config.ExpandHome(s.History.Path)
	require.NoError(t, err)
	require.NoError(t, svc.Close())

	reopened, err := history.Open(path)
	require.NoError(t, err)
	defer reopened.Close()
	visits, err := reopened.Recent(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, visits, 1)
	assert.Equal(t, "https://example.org/", visits[0].URL)
}

func TestRemoteEngineUnreachable(t *testing.T) {
	isolate(t)
	s := config.GetDefaultConfig()
	s.Engine.Kind = config.EngineRemote
	s.Engine.URL = "ws://127.0.0.1:1/engine"

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	_, err := InitializeServices(ctx, s, logging.NewSink())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to connect to engine")
}

func TestRemoteEngineRejectsUnknownOverflow(t *testing.T) {
	isolate(t)
	s := config.GetDefaultConfig()
	s.Engine.Kind = config.EngineRemote
	s.Engine.URL = "ws://127.0.0.1:1/engine"
	s.Engine.Overflow = "wait"

	_, err := InitializeServices(context.Background(), s, logging.NewSink())
	assert.ErrorIs(t, err, queue.ErrUnknownOverflow)
}

func TestDarkThemeIsSaved(t *testing.T) {
	isolate(t)
	s := config.GetDefaultConfig()
	s.PrefsPath = filepath.Join(t.TempDir(), "prefs.toml")

	svc, err := InitializeServices(context.Background(), s, logging.NewSink())
	require.NoError(t, err)
	t.Cleanup(func() { _ = svc.Close() })

	svc.saveDarkTheme(true)
	p, err := prefs.Load(s.PrefsPath)
	require.NoError(t, err)
	assert.True(t, p.DarkTheme)

	// unchanged theme does not rewrite the file
	require.NoError(t, os.Remove(s.PrefsPath))
	svc.saveDarkTheme(true)
	assert.NoFileExists(t, s.PrefsPath)
}

func TestNewApplicationRejectsBadConfig(t *testing.T) {
	isolate(t)
	var out bytes.Buffer

	_, err := newApplication(context.Background(), &Config{EngineKind: "servo"}, &out)
	require.Error(t, err)
	assert.ErrorIs(t, err, config.ErrInvalid)
}

func TestHeadlessRunStopsOnCancel(t *testing.T) {
	isolate(t)
	var out bytes.Buffer

	a, err := newApplication(context.Background(), &Config{
		NoTUI:       true,
		InspectAddr: "127.0.0.1:0",
		StartURL:    "https://example.org/",
	}, &out)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- a.Run(ctx) }()

	require.Eventually(t, func() bool {
		w, ok := a.services.WindowStore.Snapshot()
		return ok && w.Tabs.Len() == 1
	}, 2*time.Second, 10*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return")
	}
}
