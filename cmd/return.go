package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"visitor-kiosk/internal/kiosk"
)

var returnCmd = &cobra.Command{
	Use:   "return",
	Short: "Reopen a visit for a returning visitor",
	Long: `Looks up a visitor who already exited and reopens their visit with a new
purpose. The visitor keeps their existing record; no new badge is printed.`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()

		email, _ := cmd.Flags().GetString("email")
		visitType, _ := cmd.Flags().GetString("type")
		staffID, _ := cmd.Flags().GetInt64("staff-id")
		trainingID, _ := cmd.Flags().GetInt64("training-id")

		screen := kiosk.NewReturnScreen(ctx, dir, notifier())

		visitor, err := screen.LookupEmail(ctx, email)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Lookup failed: %v\n", err)
			os.Exit(1)
		}
		printVisitor(visitor)

		err = screen.Confirm(ctx, kiosk.ReturnForm{
			VisitType:     visitType,
			StaffMemberID: staffID,
			TrainingID:    trainingID,
		})
		if err != nil {
			fmt.Fprintf(os.Stderr, "Return failed: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	returnCmd.Flags().String("email", "", "Visitor email")
	returnCmd.Flags().String("type", "", "Visit type: personnel or formation")
	returnCmd.Flags().Int64("staff-id", 0, "Staff member to visit (with --type personnel)")
	returnCmd.Flags().Int64("training-id", 0, "Training to attend (with --type formation)")
	returnCmd.MarkFlagRequired("email")
	rootCmd.AddCommand(returnCmd)
}
