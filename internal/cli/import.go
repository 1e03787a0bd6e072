package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Append tasks from a JSON file",
	Long:  "Reads a JSON array of task records and appends the valid ones. Existing tasks are never overwritten.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("read %s: %w", args[0], err)
		}

		a, _, cleanup, err := setup()
		if err != nil {
			return err
		}
		defer cleanup()

		res, err := a.ImportTasks(data)
		if err != nil {
			return err
		}
		fmt.Println(res.Note.Message)
		return nil
	},
}
