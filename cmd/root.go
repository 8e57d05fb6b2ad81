package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"visitor-kiosk/internal/api"
	"visitor-kiosk/internal/config"
	"visitor-kiosk/internal/directory"
	"visitor-kiosk/internal/kiosk"
)

var (
	cfgFile string
	quiet   bool
	cfg     *config.Config
	dir     directory.Service
)

var rootCmd = &cobra.Command{
	Use:   "visitor-kiosk",
	Short: "Visitor check-in kiosk",
	Long:  `Kiosk client for the "Qui est là ?" visitor backend: registers entries, confirms exits and reopens visits, with badge printing and QR scanning.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		var err error
		if cfgFile != "" {
			cfg, err = config.LoadConfig(cfgFile)
		} else {
			cfg, err = config.LoadConfig()
		}
		if err != nil {
			slog.Error("Failed to load configuration", "error", err)
			os.Exit(1)
		}
		config.Cfg = cfg

		initLogger(cfg)

		client := api.NewClient(cfg.APIBaseURL, time.Duration(cfg.HTTPTimeout)*time.Second)
		dir = directory.NewService(client)
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Initialize logger
func initLogger(cfg *config.Config) *slog.Logger {
	var level slog.Level
	switch strings.ToUpper(cfg.LogLevel) {
	case "DEBUG":
		level = slog.LevelDebug
	case "INFO":
		level = slog.LevelInfo
	case "WARN", "WARNING":
		level = slog.LevelWarn
	case "ERROR":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
		println("Invalid log level in config, defaulting to INFO")
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	slog.Debug("Logger initialized", "level", level.String(), "kiosk", cfg.KioskName)
	return logger
}

// notifier picks where one-shot CLI flows send their screen notices:
// the terminal, or the structured log with --quiet.
func notifier() kiosk.Notifier {
	if quiet {
		return kiosk.LogNotifier{}
	}
	return terminalNotifier{}
}

// terminalNotifier prints screen notices for one-shot CLI flows.
type terminalNotifier struct{}

func (terminalNotifier) Notify(level kiosk.NoticeLevel, message string) {
	switch level {
	case kiosk.NoticeError:
		fmt.Fprintf(os.Stderr, "!! %s\n", message)
	case kiosk.NoticeSuccess:
		fmt.Printf("** %s\n", message)
	default:
		fmt.Printf("-- %s\n", message)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./instance/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&quiet, "quiet", false, "send screen notices to the log instead of the terminal")
}
