package cmd

import (
	"fmt"

	tea "charm.land/bubbletea/v2"
	"github.com/spf13/cobra"
	"github.com/zhubert/parley/internal/app"
	"github.com/zhubert/parley/internal/config"
	"github.com/zhubert/parley/internal/logger"
)

var (
	debugMode             bool
	quietMode             bool
	configPath            string
	serverFlag            string
	userFlag              string
	transportFlag         string
	version, commit, date string
)

// SetVersionInfo sets version information from ldflags
func SetVersionInfo(v, c, d string) {
	version, commit, date = v, c, d
}

var rootCmd = &cobra.Command{
	Use:   "parley",
	Short: "Terminal client for line-based chat servers",
	Long: `Parley connects to a chat server over TCP or WebSocket and shows the
shared Lobby and every private conversation as tabs.

Whispers from other users open their own tab. Anything typed into a
private tab is sent to that user only.`,
	RunE:          runTUI,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.PersistentFlags().BoolVar(&debugMode, "debug", true, "Enable debug logging (on by default)")
	rootCmd.PersistentFlags().BoolVarP(&quietMode, "quiet", "q", false, "Reduce logging to info level only")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default ~/.parley/config.json)")
	rootCmd.PersistentFlags().StringVarP(&serverFlag, "server", "s", "", "Server address, host:port")
	rootCmd.PersistentFlags().StringVarP(&userFlag, "user", "u", "", "Username to log in as")
	rootCmd.PersistentFlags().StringVar(&transportFlag, "transport", "", "Transport to use: tcp or ws")
}

func initConfig() {
	if quietMode {
		logger.SetDebug(false)
	} else if debugMode {
		logger.SetDebug(true)
	}
}

// Execute runs the root command
func Execute() error {
	rootCmd.Version = version
	rootCmd.SetVersionTemplate(versionTemplate())
	return rootCmd.Execute()
}

func versionTemplate() string {
	if commit != "none" && commit != "" {
		return fmt.Sprintf("parley %s\n  commit: %s\n  built:  %s\n", version, commit, date)
	}
	return fmt.Sprintf("parley %s\n", version)
}

// loadConfig reads --config when given, otherwise the default location.
func loadConfig() (*config.Config, error) {
	if configPath != "" {
		return config.LoadFrom(configPath)
	}
	return config.Load()
}

// validateTransport rejects unknown --transport values early.
func validateTransport(t string) error {
	switch t {
	case "", "tcp", "ws":
		return nil
	}
	return fmt.Errorf("unknown transport %q (want tcp or ws)", t)
}

func runTUI(cmd *cobra.Command, args []string) error {
	if err := validateTransport(transportFlag); err != nil {
		return err
	}

	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("error loading config: %w", err)
	}

	// Ensure logger is closed on exit
	defer logger.Close()
	logger.WithComponent("cmd").Info("starting", "version", version, "config", cfg.Path())

	m := app.New(cfg, app.Options{
		Server:    serverFlag,
		Username:  userFlag,
		Transport: transportFlag,
	})
	defer m.Shutdown()
	p := tea.NewProgram(m)

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running app: %w", err)
	}
	return nil
}
