package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"visitor-kiosk/internal/kiosk"
)

var exitCmd = &cobra.Command{
	Use:   "exit",
	Short: "Record a visitor exit",
	Long:  `Looks up a present visitor by email or badge identifier and closes their active visit.`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()

		email, _ := cmd.Flags().GetString("email")
		badgeID, _ := cmd.Flags().GetString("badge-id")
		if (email == "") == (badgeID == "") {
			fmt.Fprintln(os.Stderr, "Provide exactly one of --email or --badge-id")
			os.Exit(1)
		}

		screen := kiosk.NewExitScreen(dir, notifier(), nil)

		var err error
		if email != "" {
			_, err = screen.LookupEmail(ctx, email)
		} else {
			_, err = screen.LookupBadge(ctx, badgeID)
		}
		if err != nil {
			fmt.Fprintf(os.Stderr, "Lookup failed: %v\n", err)
			os.Exit(1)
		}

		if v, ok := screen.Visitor(); ok {
			printVisitor(v)
		}

		if err := screen.Confirm(ctx); err != nil {
			fmt.Fprintf(os.Stderr, "Exit failed: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	exitCmd.Flags().String("email", "", "Visitor email")
	exitCmd.Flags().String("badge-id", "", "Badge identifier")
	rootCmd.AddCommand(exitCmd)
}
