package config

import "browsershell/internal/urlbar"

const (
	DefaultHomeURL       = "https://servo.org/"
	DefaultZoomStep      = 1.1
	DefaultInspectorAddr = "localhost:8095"
	DefaultRemoteHost    = "localhost"
	DefaultRemotePort    = 8096
	DefaultQueueSize     = 1024
	DefaultOverflow      = "evict-oldest"
	DefaultHistoryPath   = "~/" + userConfigDir + "/history.db"
	DefaultPrefsPath     = "~/" + userConfigDir + "/prefs.toml"
)

// GetDefaultConfig returns the configuration used when no file sets a value.
// The simulated engine is selected; inspector and remote control are off.
func GetDefaultConfig() Config {
	return Config{
		HomeURL:   DefaultHomeURL,
		SearchURL: urlbar.DefaultSearchURL,
		ZoomStep:  DefaultZoomStep,
		LogLevel:  "info",
		Engine: EngineConfig{
			Kind:      EngineSim,
			QueueSize: DefaultQueueSize,
			Overflow:  DefaultOverflow,
		},
		Inspector: InspectorConfig{
			Addr: DefaultInspectorAddr,
		},
		RemoteControl: RemoteControlConfig{
			Host: DefaultRemoteHost,
			Port: DefaultRemotePort,
		},
		History: HistoryConfig{
			Path: DefaultHistoryPath,
		},
		PrefsPath: DefaultPrefsPath,
	}
}
