package app

import (
	"browsershell/internal/config"
)

// Config holds the command line choices that shape a run. Zero values leave
// the loaded configuration alone.
type Config struct {
	// Configuration file given with --config
	ConfigPath string

	// First page; the configured home page when empty
	StartURL string

	// UI mode
	NoTUI bool

	// Debug settings
	Debug bool

	// Engine overrides
	EngineKind string
	EngineURL  string

	// Enables the inspector on this address
	InspectAddr string

	// Enables the MCP remote control server
	RemoteControl bool

	// Build version, reported to MCP clients
	Version string
}

// applyOverrides layers the flags over the loaded configuration.
func (c *Config) applyOverrides(s config.Config) config.Config {
	if c.Debug {
		s.LogLevel = "debug"
	}
	if c.EngineKind != "" {
		s.Engine.Kind = config.EngineKind(c.EngineKind)
	}
	if c.EngineURL != "" {
		s.Engine.URL = c.EngineURL
		// a URL alone means the remote engine
		if c.EngineKind == "" {
			s.Engine.Kind = config.EngineRemote
		}
	}
	if c.InspectAddr != "" {
		s.Inspector.Enabled = true
		s.Inspector.Addr = c.InspectAddr
	}
	if c.RemoteControl {
		s.RemoteControl.Enabled = true
	}
	return s
}

// startURL is the page the first tab opens.
func (c *Config) startURL(s config.Config) string {
	if c.StartURL != "" {
		return c.StartURL
	}
	return s.HomeURL
}
