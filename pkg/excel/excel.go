package excel

import (
	"fmt"
	"io"
	"strings"
	"time"

	"ucode/ucode_go_task_service/config"
	"ucode/ucode_go_task_service/models"

	"github.com/pkg/errors"
	"github.com/xuri/excelize/v2"
)

const sheet = "Sheet1"

var taskHeaders = []string{"Title", "Status", "Assignee", "Tags", "Due", "Project", "Created"}

// WriteTasks renders tasks as a single sheet workbook, one task per row
// under a header row.
func WriteTasks(w io.Writer, tasks []*models.Task) error {
	file := excelize.NewFile()
	defer file.Close()

	for i, header := range taskHeaders {
		if err := file.SetCellValue(sheet, convertToTitle(i)+"1", header); err != nil {
			return errors.Wrap(err, "set header")
		}
	}

	for i, task := range tasks {
		row := fmt.Sprint(i + 2)

		for j, value := range taskRow(task) {
			if err := file.SetCellValue(sheet, convertToTitle(j)+row, value); err != nil {
				return errors.Wrapf(err, "set cell %s%s", convertToTitle(j), row)
			}
		}
	}

	if err := file.SetColWidth(sheet, "A", "A", 40); err != nil {
		return errors.Wrap(err, "set column width")
	}

	if _, err := file.WriteTo(w); err != nil {
		return errors.Wrap(err, "write workbook")
	}

	return nil
}

func taskRow(task *models.Task) []any {
	var assignee, project string
	if task.Assignee != nil {
		assignee = task.Assignee.FullName
	}
	if task.Project != nil {
		project = task.Project.Name
	}

	return []any{
		task.Title,
		task.Status,
		assignee,
		strings.Join(task.Tags, ", "),
		formatTime(task.DueAt),
		project,
		formatTime(task.CreatedAt),
	}
}

func formatTime(value string) string {
	if value == "" {
		return ""
	}

	t, err := time.Parse(config.DatabaseTimeLayout, value)
	if err != nil {
		return value
	}

	return t.Format(time.DateTime)
}

// convertToTitle maps a zero based column index to its letters, 0 -> A, 26 -> AA.
func convertToTitle(columnNumber int) string {
	columnNumber += 1
	title := ""
	for columnNumber > 0 {
		columnNumber--
		title = string(rune('A'+columnNumber%26)) + title
		columnNumber /= 26
	}

	return title
}
