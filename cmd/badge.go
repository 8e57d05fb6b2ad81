package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"visitor-kiosk/internal/badge"
)

var badgeCmd = &cobra.Command{
	Use:   "badge <badge-id>",
	Short: "Render a badge QR code in the terminal",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		qr, err := badge.EncodeTerminal(args[0])
		if err != nil {
			fmt.Fprintf(os.Stderr, "QR encoding failed: %v\n", err)
			os.Exit(1)
		}
		fmt.Println(qr)
	},
}

func init() {
	rootCmd.AddCommand(badgeCmd)
}
