package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"browsershell/internal/app"
)

const versionTemplate = `{{printf "browsershell version %s\n" .Version}}`

// Flags of the root command.
var (
	flagConfig        string
	flagEngine        string
	flagEngineURL     string
	flagDebug         bool
	flagInspectAddr   string
	flagRemoteControl bool
	flagNoTUI         bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "browsershell [url]",
	Short: "A tabbed browser shell for the terminal",
	Long: `browsershell is the user interface shell of a web browser. It keeps
tabs, the location bar, navigation history and zoom, and drives page
rendering through an engine.

Engines:
  sim     built-in simulated engine (default)
  remote  an engine process reached over a websocket (--engine-url)

Optional services:
  --inspect-addr    read-only HTTP API over the app and window state
  --remote-control  MCP server that lets agents drive the tabs

With --no-tui the shell runs without a terminal and is only reachable
through those services.

Configuration:
  browsershell reads ~/.config/browsershell/config.yaml, then
  .browsershell/config.yaml in the current directory, then
  BROWSERSHELL_* variables and ./.env.`,
	Args: cobra.MaximumNArgs(1),
	// SilenceUsage is set to true to prevent printing usage message on errors
	// handled by us (e.g. invalid configuration, unreachable engine)
	SilenceUsage: true,
	RunE:         runRoot,
}

func runRoot(cmd *cobra.Command, args []string) error {
	cfg := &app.Config{
		ConfigPath:    flagConfig,
		NoTUI:         flagNoTUI,
		Debug:         flagDebug,
		EngineKind:    flagEngine,
		EngineURL:     flagEngineURL,
		InspectAddr:   flagInspectAddr,
		RemoteControl: flagRemoteControl,
		Version:       cmd.Root().Version,
	}
	if len(args) == 1 {
		cfg.StartURL = args[0]
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	application, err := app.NewApplication(ctx, cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize application: %w", err)
	}
	return application.Run(ctx)
}

// SetVersion sets the version for the root command
func SetVersion(v string) {
	rootCmd.Version = v
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	rootCmd.SetVersionTemplate(versionTemplate)

	if err := rootCmd.Execute(); err != nil {
		// Cobra prints the error, we just exit non-zero
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newSelfUpdateCmd())

	f := rootCmd.Flags()
	f.StringVar(&flagConfig, "config", "", "Configuration file layered over the default locations")
	f.StringVar(&flagEngine, "engine", "", "Engine kind: sim or remote")
	f.StringVar(&flagEngineURL, "engine-url", "", "Websocket URL of a remote engine (implies --engine remote)")
	f.BoolVar(&flagDebug, "debug", false, "Enable debug logging")
	f.StringVar(&flagInspectAddr, "inspect-addr", "", "Serve the state inspector on this address")
	f.BoolVar(&flagRemoteControl, "remote-control", false, "Start the MCP remote control server")
	f.BoolVar(&flagNoTUI, "no-tui", false, "Run without the terminal UI")
}
