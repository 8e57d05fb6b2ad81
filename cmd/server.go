package cmd

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	app "visitor-kiosk/internal"
	"visitor-kiosk/internal/badge"
	"visitor-kiosk/internal/config"
	"visitor-kiosk/internal/routes"
	"visitor-kiosk/internal/scanner"
)

var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Start the kiosk facade server",
	Long:  `Serves the local HTTP API consumed by the kiosk display: screen sessions, visitor lookups, entry/exit/return submissions and badge QR images.`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("Starting visitor kiosk...")
		ServerMain()
	},
}

func ServerMain() {
	if config.Cfg == nil {
		panic("Config not initialized.")
	}

	printer := badge.NewSpoolPrinter(cfg.SpoolDir, cfg.QRImageSize)
	scans := scanner.NewManager(scanner.DeviceOpener(cfg.ScannerDevice))

	sessions := routes.NewSessions(routes.Deps{
		Directory: dir,
		Printer:   printer,
		Scanner:   scans,
	})

	server := app.HTTPServer(sessions, cfg.QRImageSize)

	slog.Info("Kiosk facade listening", "addr", cfg.ListenAddr, "backend", cfg.APIBaseURL)
	server.Run(cfg.ListenAddr)
}

func init() {
	rootCmd.AddCommand(serverCmd)
}
