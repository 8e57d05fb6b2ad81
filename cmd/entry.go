package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"visitor-kiosk/internal/badge"
	"visitor-kiosk/internal/directory"
	"visitor-kiosk/internal/kiosk"
)

var entryCmd = &cobra.Command{
	Use:   "entry",
	Short: "Register a visitor entry",
	Long: `Registers a new visit and prints the badge. The visit type decides the
required selection: --type personnel needs --staff-id, --type formation
needs --training-id.`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()

		firstName, _ := cmd.Flags().GetString("first-name")
		lastName, _ := cmd.Flags().GetString("last-name")
		email, _ := cmd.Flags().GetString("email")
		visitType, _ := cmd.Flags().GetString("type")
		staffID, _ := cmd.Flags().GetInt64("staff-id")
		trainingID, _ := cmd.Flags().GetInt64("training-id")
		noPrint, _ := cmd.Flags().GetBool("no-print")
		lookup, _ := cmd.Flags().GetString("lookup")

		var printer badge.Printer = badge.NewSpoolPrinter(cfg.SpoolDir, cfg.QRImageSize)
		if noPrint {
			printer = badge.Discard{}
		}

		screen := kiosk.NewEntryScreen(ctx, dir, notifier(), printer, nil)

		// Optional returning-visitor lookup to prefill missing fields
		if lookup != "" {
			visitor, err := screen.LookupEmail(ctx, lookup)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Lookup failed: %v\n", err)
				os.Exit(1)
			}
			printVisitor(visitor)
			if form, ok := screen.Prefill(); ok {
				if firstName == "" {
					firstName = form.FirstName
				}
				if lastName == "" {
					lastName = form.LastName
				}
				if email == "" {
					email = form.Email
				}
			}
		}

		data, err := screen.Submit(ctx, kiosk.EntryForm{
			FirstName:     firstName,
			LastName:      lastName,
			Email:         email,
			VisitType:     visitType,
			StaffMemberID: staffID,
			TrainingID:    trainingID,
		})
		if err != nil {
			fmt.Fprintf(os.Stderr, "Entry failed: %v\n", err)
			os.Exit(1)
		}

		fmt.Println()
		fmt.Print(badge.Card(data))
		if qr, err := badge.EncodeTerminal(data.BadgeID); err == nil {
			fmt.Println(qr)
		}
	},
}

func printVisitor(v directory.Visitor) {
	status := directory.ResolveStatus(v)
	fmt.Printf("%s %s <%s>: %s\n", v.FirstName, v.LastName, v.Email, status.Label())
}

func init() {
	entryCmd.Flags().String("first-name", "", "Visitor first name")
	entryCmd.Flags().String("last-name", "", "Visitor last name")
	entryCmd.Flags().String("email", "", "Visitor email")
	entryCmd.Flags().String("type", "", "Visit type: personnel or formation")
	entryCmd.Flags().Int64("staff-id", 0, "Staff member to visit (with --type personnel)")
	entryCmd.Flags().Int64("training-id", 0, "Training to attend (with --type formation)")
	entryCmd.Flags().Bool("no-print", false, "Skip badge spooling")
	entryCmd.Flags().String("lookup", "", "Prefill from a returning visitor's email")
	rootCmd.AddCommand(entryCmd)
}
