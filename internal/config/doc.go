// Package config provides configuration management for browsershell.
//
// Configuration is layered: each source that exists is merged over the
// previous one, field by field.
//
// # Configuration Layers
//
//  1. Default Configuration (built in)
//     - The shell runs out of the box with the simulated engine
//
//  2. User Configuration (~/.config/browsershell/config.yaml)
//     - Personal settings that apply everywhere
//
//  3. Project Configuration (./.browsershell/config.yaml)
//     - Settings for the current directory
//
//  4. Explicit file passed with --config
//
//  5. Environment (BROWSERSHELL_*, then ./.env)
//     - Variables already set in the process win over the .env file
//
// # Configuration Structure
//
//	homeURL: "https://example.org/"
//	searchURL: "https://duckduckgo.com/html/?q=%s"
//	bareDomainSuffixes: [".io", ".dev"]
//	zoomStep: 1.1
//	logLevel: "info"
//	engine:
//	  kind: "remote"          # or "sim"
//	  url: "ws://localhost:9222/engine"
//	  queueSize: 1024
//	  overflow: "evict-oldest"  # drop, block or evict-oldest
//	inspector:
//	  enabled: true
//	  addr: "localhost:8095"
//	remoteControl:
//	  enabled: true
//	  host: "localhost"
//	  port: 8096
//	history:
//	  enabled: true
//	  path: "~/.config/browsershell/history.db"
//	exportDir: "~/Downloads"
//	prefsPath: "~/.config/browsershell/prefs.toml"
//
// # Environment Variables
//
//   - BROWSERSHELL_HOME_URL
//   - BROWSERSHELL_SEARCH_URL
//   - BROWSERSHELL_LOG_LEVEL
//   - BROWSERSHELL_ENGINE (sim or remote)
//   - BROWSERSHELL_ENGINE_URL
//   - BROWSERSHELL_INSPECT_ADDR (also enables the inspector)
//   - BROWSERSHELL_HISTORY_PATH
//   - BROWSERSHELL_EXPORT_DIR
//
// # Usage Example
//
//	cfg, err := config.LoadConfig("")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.Engine.Kind, cfg.HomeURL)
package config
