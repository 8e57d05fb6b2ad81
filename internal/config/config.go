package config

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/viper"
)

type Config struct {
	// Base URL of the visitor backend, e.g. http://localhost:8000/api
	APIBaseURL string `mapstructure:"api_base_url"`
	// HTTP timeout for backend calls, in seconds
	HTTPTimeout uint   `mapstructure:"http_timeout"`
	LogLevel    string `mapstructure:"log_level"`

	// Address the kiosk facade listens on
	ListenAddr string `mapstructure:"listen_addr"`
	// Kiosk identifier used in logs, e.g. "accueil-1"
	KioskName string `mapstructure:"kiosk_name"`

	// Badge scanner device path. Empty means decoded badge IDs are read from stdin.
	ScannerDevice string `mapstructure:"scanner_device"`

	// QR image size in pixels for generated badge codes
	QRImageSize int `mapstructure:"qr_image_size"`
	// Directory where printable badges are spooled for the printer daemon
	SpoolDir string `mapstructure:"spool_dir"`
}

var Cfg *Config

// Check if running in Docker container by checking for the presence of /.dockerenv file
func runningInDocker() bool {
	if _, err := os.Stat("/.dockerenv"); err == nil {
		return true
	}
	return false
}

func getConfigPath() string {
	if runningInDocker() {
		return "/app/instance"
	}
	return "./instance"
}

// LoadConfig reads configuration from environment variables and returns a Config struct.
func LoadConfig(configFile ...string) (*Config, error) {
	var cfg Config

	v := viper.New()
	v.SetConfigName("config")
	v.AddConfigPath(getConfigPath())
	v.AddConfigPath(".")
	v.SetEnvPrefix("")

	if len(configFile) > 0 {
		for _, path := range configFile {
			v.SetConfigFile(path)
		}
	}

	for k, val := range Defaults() {
		v.SetDefault(k, val)
	}

	// Load configuration from environment variables
	v.AutomaticEnv()

	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unable to decode into struct: %v", err)
	}

	if cfg.APIBaseURL == "" {
		return nil, fmt.Errorf("API_BASE_URL must be set")
	}

	// Default spool dir lives in the instance folder
	if cfg.SpoolDir == "" {
		cfg.SpoolDir = fmt.Sprintf("%s/spool", getConfigPath())
	}

	if cfg.HTTPTimeout == 0 {
		slog.Warn("HTTP_TIMEOUT is zero, backend calls will never time out")
	}

	return &cfg, nil
}
