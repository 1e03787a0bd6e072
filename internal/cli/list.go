package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"taskdeck/internal/task"
)

var (
	listFilter   string
	listCategory string
	listSort     string
	listSearch   string
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Print the filtered, sorted task list",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, _, cleanup, err := setup()
		if err != nil {
			return err
		}
		defer cleanup()

		a.SetFilter(listFilter)
		a.SetCategory(listCategory)
		a.SetSort(listSort)
		res := a.SetSearchQuery(listSearch)

		if len(res.View) == 0 {
			fmt.Println("no tasks")
			return nil
		}
		now := time.Now()
		for _, t := range res.View {
			mark := "[ ]"
			if t.Completed {
				mark = "[x]"
			}
			line := fmt.Sprintf("%s %-8s P%d  %s", mark, t.Category, t.Priority, t.Text)
			if t.DueDate != nil {
				line += "  (due " + t.DueDate.Format("2006-01-02") + ")"
			}
			if t.Overdue(now) {
				line += "  OVERDUE"
			}
			fmt.Println(line)
		}
		return nil
	},
}

func init() {
	listCmd.Flags().StringVarP(&listFilter, "filter", "f", task.FilterAll, "status filter: all, pending, completed")
	listCmd.Flags().StringVarP(&listCategory, "category", "c", "all", "category filter, or all")
	listCmd.Flags().StringVarP(&listSort, "sort", "s", task.SortNewest, "sort: newest, oldest, due-date, category, alphabetical")
	listCmd.Flags().StringVarP(&listSearch, "search", "q", "", "substring search over text and category")
}
