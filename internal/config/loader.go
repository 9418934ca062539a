package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"browsershell/internal/queue"
)

// For mocking in tests
var osUserHomeDir = os.UserHomeDir
var osGetwd = os.Getwd
var osLookupEnv = os.LookupEnv

const (
	userConfigDir    = ".config/browsershell"
	projectConfigDir = ".browsershell"
	configFileName   = "config.yaml"
	dotEnvFileName   = ".env"
	envPrefix        = "BROWSERSHELL_"
)

// ErrInvalid wraps every validation failure.
var ErrInvalid = errors.New("invalid configuration")

// LoadConfig layers the default, user, project and explicit configuration,
// applies environment overrides and validates the result. explicitPath may
// be empty; when set the file must exist.
func LoadConfig(explicitPath string) (Config, error) {
	// 1. Start with the default configuration
	config := GetDefaultConfig()

	// 2. User and project files are optional
	for _, layer := range []struct {
		name string
		path func() (string, error)
	}{
		{"user", getUserConfigPath},
		{"project", getProjectConfigPath},
	} {
		path, err := layer.path()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: Could not determine %s config path: %v\n", layer.name, err)
			continue
		}
		if _, err := os.Stat(path); os.IsNotExist(err) {
			continue
		}
		overlay, err := loadConfigFromFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("error loading %s config from %s: %w", layer.name, path, err)
		}
		config = mergeConfigs(config, overlay)
	}

	// 3. An explicit file must load
	if explicitPath != "" {
		overlay, err := loadConfigFromFile(explicitPath)
		if err != nil {
			return Config{}, fmt.Errorf("error loading config from %s: %w", explicitPath, err)
		}
		config = mergeConfigs(config, overlay)
	}

	// 4. Environment
	dotEnv, err := readDotEnv()
	if err != nil {
		return Config{}, err
	}
	config = applyEnv(config, envLookup(dotEnv))

	if err := config.Validate(); err != nil {
		return Config{}, err
	}
	return config, nil
}

var getUserConfigPath = func() (string, error) {
	homeDir, err := osUserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, userConfigDir, configFileName), nil
}

var getProjectConfigPath = func() (string, error) {
	wd, err := osGetwd()
	if err != nil {
		return "", err
	}
	return filepath.Join(wd, projectConfigDir, configFileName), nil
}

// loadConfigFromFile loads a Config from a YAML file.
func loadConfigFromFile(filePath string) (Config, error) {
	var config Config
	data, err := os.ReadFile(filePath)
	if err != nil {
		return Config{}, err
	}
	if err := yaml.Unmarshal(data, &config); err != nil {
		return Config{}, err
	}
	return config, nil
}

// readDotEnv reads ./.env without touching the process environment.
func readDotEnv() (map[string]string, error) {
	wd, err := osGetwd()
	if err != nil {
		return nil, nil
	}
	path := filepath.Join(wd, dotEnvFileName)
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, nil
	}
	values, err := godotenv.Read(path)
	if err != nil {
		return nil, fmt.Errorf("error reading %s: %w", path, err)
	}
	return values, nil
}

// envLookup prefers the process environment over the .env values.
func envLookup(dotEnv map[string]string) func(string) (string, bool) {
	return func(key string) (string, bool) {
		if v, ok := osLookupEnv(key); ok {
			return v, true
		}
		v, ok := dotEnv[key]
		return v, ok
	}
}

func applyEnv(config Config, lookup func(string) (string, bool)) Config {
	str := func(name string, dst *string) {
		if v, ok := lookup(envPrefix + name); ok && strings.TrimSpace(v) != "" {
			*dst = strings.TrimSpace(v)
		}
	}
	str("HOME_URL", &config.HomeURL)
	str("SEARCH_URL", &config.SearchURL)
	str("LOG_LEVEL", &config.LogLevel)
	str("ENGINE_URL", &config.Engine.URL)
	str("HISTORY_PATH", &config.History.Path)
	str("EXPORT_DIR", &config.ExportDir)

	var kind string
	str("ENGINE", &kind)
	if kind != "" {
		config.Engine.Kind = EngineKind(kind)
	}

	var addr string
	str("INSPECT_ADDR", &addr)
	if addr != "" {
		config.Inspector.Addr = addr
		config.Inspector.Enabled = true
	}
	return config
}

// mergeConfigs merges 'overlay' config into 'base' config.
func mergeConfigs(base, overlay Config) Config {
	merged := base

	if overlay.HomeURL != "" {
		merged.HomeURL = overlay.HomeURL
	}
	if overlay.SearchURL != "" {
		merged.SearchURL = overlay.SearchURL
	}
	// Suffixes accumulate across layers
	for _, s := range overlay.BareDomainSuffixes {
		if !contains(merged.BareDomainSuffixes, s) {
			merged.BareDomainSuffixes = append(merged.BareDomainSuffixes, s)
		}
	}
	if overlay.ZoomStep != 0 {
		merged.ZoomStep = overlay.ZoomStep
	}
	if overlay.FocusUrlbarOnNewTab != nil {
		merged.FocusUrlbarOnNewTab = overlay.FocusUrlbarOnNewTab
	}
	if overlay.LogLevel != "" {
		merged.LogLevel = overlay.LogLevel
	}

	if overlay.Engine.Kind != "" {
		merged.Engine.Kind = overlay.Engine.Kind
	}
	if overlay.Engine.URL != "" {
		merged.Engine.URL = overlay.Engine.URL
	}
	if overlay.Engine.QueueSize != 0 {
		merged.Engine.QueueSize = overlay.Engine.QueueSize
	}
	if overlay.Engine.Overflow != "" {
		merged.Engine.Overflow = overlay.Engine.Overflow
	}

	if overlay.Inspector.Enabled {
		merged.Inspector.Enabled = true
	}
	if overlay.Inspector.Addr != "" {
		merged.Inspector.Addr = overlay.Inspector.Addr
	}

	if overlay.RemoteControl.Enabled {
		merged.RemoteControl.Enabled = true
	}
	if overlay.RemoteControl.Host != "" {
		merged.RemoteControl.Host = overlay.RemoteControl.Host
	}
	if overlay.RemoteControl.Port != 0 {
		merged.RemoteControl.Port = overlay.RemoteControl.Port
	}

	if overlay.History.Enabled != nil {
		merged.History.Enabled = overlay.History.Enabled
	}
	if overlay.History.Path != "" {
		merged.History.Path = overlay.History.Path
	}

	if overlay.ExportDir != "" {
		merged.ExportDir = overlay.ExportDir
	}
	if overlay.PrefsPath != "" {
		merged.PrefsPath = overlay.PrefsPath
	}
	return merged
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

// Validate reports the first setting the shell cannot run with.
func (c Config) Validate() error {
	switch c.Engine.Kind {
	case EngineSim:
	case EngineRemote:
		if c.Engine.URL == "" {
			return fmt.Errorf("%w: engine.url is required for the remote engine", ErrInvalid)
		}
	default:
		return fmt.Errorf("%w: unknown engine kind %q", ErrInvalid, c.Engine.Kind)
	}
	if c.Engine.QueueSize < 0 {
		return fmt.Errorf("%w: engine.queueSize must not be negative, got %d", ErrInvalid, c.Engine.QueueSize)
	}
	if _, err := queue.ParseOverflowAction(c.Engine.Overflow); err != nil {
		return fmt.Errorf("%w: engine.overflow: %v", ErrInvalid, err)
	}
	if c.ZoomStep <= 0 {
		return fmt.Errorf("%w: zoomStep must be positive, got %v", ErrInvalid, c.ZoomStep)
	}
	if !strings.Contains(c.SearchURL, "%s") {
		return fmt.Errorf("%w: searchURL %q has no %%s placeholder", ErrInvalid, c.SearchURL)
	}
	if c.RemoteControl.Enabled && (c.RemoteControl.Port <= 0 || c.RemoteControl.Port > 65535) {
		return fmt.Errorf("%w: remoteControl.port %d out of range", ErrInvalid, c.RemoteControl.Port)
	}
	switch strings.ToLower(c.LogLevel) {
	case "", "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("%w: unknown logLevel %q", ErrInvalid, c.LogLevel)
	}
	return nil
}

// ExpandHome replaces a leading ~ with the user's home directory.
func ExpandHome(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if !strings.HasPrefix(trimmed, "~") {
		return trimmed, nil
	}
	home, err := osUserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home dir: %w", err)
	}
	return filepath.Join(home, strings.TrimPrefix(trimmed, "~")), nil
}

// GetUserConfigDir returns the user configuration directory path
func GetUserConfigDir() (string, error) {
	homeDir, err := osUserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, userConfigDir), nil
}
