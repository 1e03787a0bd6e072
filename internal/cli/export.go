package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"taskdeck/internal/task"
)

var exportCmd = &cobra.Command{
	Use:   "export [file]",
	Short: "Write a plain-text task report",
	Long:  "Writes a report grouping tasks by category with completion and overdue markers. With no file argument the report goes to stdout.",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, cfg, cleanup, err := setup()
		if err != nil {
			return err
		}
		defer cleanup()

		report, err := a.ExportReport()
		if errors.Is(err, task.ErrNoTasks) {
			fmt.Println("no tasks to export")
			return nil
		}
		if err != nil {
			return err
		}

		if len(args) == 0 {
			fmt.Print(report)
			return nil
		}
		path := args[0]
		if path == "" {
			path = cfg.ExportPath
		}
		if err := os.WriteFile(path, []byte(report), 0o644); err != nil {
			return fmt.Errorf("write report: %w", err)
		}
		fmt.Println("exported to", path)
		return nil
	},
}
