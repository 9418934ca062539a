package config

// Config is the top-level configuration structure for browsershell.
type Config struct {
	HomeURL             string   `yaml:"homeURL,omitempty"`             // Loaded when no URL is given on the command line
	SearchURL           string   `yaml:"searchURL,omitempty"`           // Search template, %s is replaced by the query
	BareDomainSuffixes  []string `yaml:"bareDomainSuffixes,omitempty"`  // Extra suffixes that make input look like a domain
	ZoomStep            float64  `yaml:"zoomStep,omitempty"`            // Factor of one zoom in/out step
	FocusUrlbarOnNewTab *bool    `yaml:"focusUrlbarOnNewTab,omitempty"` // Default: true
	LogLevel            string   `yaml:"logLevel,omitempty"`            // debug, info, warn or error

	Engine        EngineConfig        `yaml:"engine"`
	Inspector     InspectorConfig     `yaml:"inspector"`
	RemoteControl RemoteControlConfig `yaml:"remoteControl"`
	History       HistoryConfig       `yaml:"history"`

	ExportDir string `yaml:"exportDir,omitempty"` // Where microdata is written (default: home directory)
	PrefsPath string `yaml:"prefsPath,omitempty"`
}

// EngineKind selects the engine implementation.
type EngineKind string

const (
	EngineSim    EngineKind = "sim"
	EngineRemote EngineKind = "remote"
)

// EngineConfig defines which engine drives the browser sessions.
type EngineConfig struct {
	Kind EngineKind `yaml:"kind,omitempty"`
	URL  string     `yaml:"url,omitempty"` // Websocket URL, required for the remote engine

	// Remote engine event queue: its size and what happens to an event
	// arriving while it is full (drop, block or evict-oldest).
	QueueSize int    `yaml:"queueSize,omitempty"`
	Overflow  string `yaml:"overflow,omitempty"`
}

// InspectorConfig defines the read-only HTTP state API.
type InspectorConfig struct {
	Enabled bool   `yaml:"enabled,omitempty"`
	Addr    string `yaml:"addr,omitempty"` // Listen address (default: localhost:8095)
}

// RemoteControlConfig defines the MCP server that lets agents drive the tabs.
type RemoteControlConfig struct {
	Enabled bool   `yaml:"enabled,omitempty"`
	Host    string `yaml:"host,omitempty"` // Host to bind to (default: localhost)
	Port    int    `yaml:"port,omitempty"` // Port for the SSE endpoint (default: 8096)
}

// HistoryConfig defines the visit history database.
type HistoryConfig struct {
	Enabled *bool  `yaml:"enabled,omitempty"` // Default: true
	Path    string `yaml:"path,omitempty"`
}

// FocusUrlbar reports whether new tabs start with the urlbar focused.
func (c Config) FocusUrlbar() bool {
	return c.FocusUrlbarOnNewTab == nil || *c.FocusUrlbarOnNewTab
}

// HistoryEnabled reports whether visits are recorded.
func (c Config) HistoryEnabled() bool {
	return c.History.Enabled == nil || *c.History.Enabled
}
