package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"
)

var (
	addCategory string
	addDue      string
)

var addCmd = &cobra.Command{
	Use:   "add <text>",
	Short: "Add a task",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, _, cleanup, err := setup()
		if err != nil {
			return err
		}
		defer cleanup()

		var due *time.Time
		if addDue != "" {
			d, err := time.Parse("2006-01-02", addDue)
			if err != nil {
				return fmt.Errorf("invalid --due, expected YYYY-MM-DD: %w", err)
			}
			due = &d
		}

		res, err := a.Add(strings.Join(args, " "), addCategory, due)
		if err != nil {
			return err
		}
		fmt.Println(res.Note.Message)
		return nil
	},
}

func init() {
	addCmd.Flags().StringVarP(&addCategory, "category", "c", "", "task category (default Personal)")
	addCmd.Flags().StringVarP(&addDue, "due", "d", "", "due date, YYYY-MM-DD")
}
