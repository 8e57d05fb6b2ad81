package cmd

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var staffCmd = &cobra.Command{
	Use:   "staff",
	Short: "List staff members visitors can be received by",
	Run: func(cmd *cobra.Command, args []string) {
		staff, err := dir.StaffMembers(context.Background())
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to list staff members: %v\n", err)
			os.Exit(1)
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 3, ' ', 0)
		fmt.Fprintln(w, "ID\tNAME\tFUNCTION\tROOM")
		for _, m := range staff {
			fmt.Fprintf(w, "%d\t%s %s\t%s\t%s\n", m.ID, m.FirstName, m.LastName, m.Function, m.Room)
		}
		w.Flush()
	},
}

var trainingsCmd = &cobra.Command{
	Use:   "trainings",
	Short: "List trainings scheduled for today",
	Run: func(cmd *cobra.Command, args []string) {
		trainings, err := dir.TrainingsToday(context.Background())
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to list trainings: %v\n", err)
			os.Exit(1)
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 3, ' ', 0)
		fmt.Fprintln(w, "ID\tTITLE\tROOM")
		for _, t := range trainings {
			fmt.Fprintf(w, "%d\t%s\t%s\n", t.ID, t.Title, t.Room)
		}
		w.Flush()
	},
}

func init() {
	rootCmd.AddCommand(staffCmd)
	rootCmd.AddCommand(trainingsCmd)
}
