package excel

import (
	"bytes"
	"testing"

	"ucode/ucode_go_task_service/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestConvertToTitle(t *testing.T) {
	assert.Equal(t, "A", convertToTitle(0))
	assert.Equal(t, "Z", convertToTitle(25))
	assert.Equal(t, "AA", convertToTitle(26))
	assert.Equal(t, "AZ", convertToTitle(51))
}

func TestWriteTasks(t *testing.T) {
	tasks := []*models.Task{
		{
			Title:     "Ship it",
			Status:    "DONE",
			Tags:      []string{"backend", "urgent"},
			DueAt:     "2024-05-01T10:00:00Z",
			CreatedAt: "2024-04-01T08:30:00Z",
			Project:   &models.Project{Name: "Launch"},
			Assignee:  &models.User{FullName: "Ada Lovelace"},
		},
		{Title: "Unassigned", Status: "TODO"},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteTasks(&buf, tasks))

	file, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer file.Close()

	rows, err := file.GetRows(sheet)
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, taskHeaders, rows[0])
	assert.Equal(t, []string{"Ship it", "DONE", "Ada Lovelace", "backend, urgent", "2024-05-01 10:00:00", "Launch", "2024-04-01 08:30:00"}, rows[1])
	assert.Equal(t, []string{"Unassigned", "TODO"}, rows[2])
}

func TestWriteTasks_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteTasks(&buf, nil))

	file, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer file.Close()

	rows, err := file.GetRows(sheet)
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}
