package export

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/yonghwan1106/e-ansimcare/internal/generator"
)

func TestWrite_SnapshotWorkbook(t *testing.T) {
	snap := generator.New(generator.Options{
		Config: generator.Config{Households: 12, SeniorVolunteers: 3, EmployeeVolunteers: 2, Activities: 20, Alerts: 1},
		Seed:   11,
		Now:    func() time.Time { return time.Date(2024, 12, 15, 0, 0, 0, 0, time.UTC) },
	}).Generate()

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, SnapshotSheets(snap)...))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{SheetHouseholds, SheetVolunteers, SheetActivities}, f.GetSheetList())
	assert.Equal(t, SheetHouseholds, f.GetSheetName(f.GetActiveSheetIndex()))

	rows, err := f.GetRows(SheetHouseholds)
	require.NoError(t, err)
	require.Len(t, rows, 13)
	assert.Equal(t, "ID", rows[0][0])
	assert.Equal(t, "위험등급", rows[0][5])
	first := snap.Households()[0]
	assert.Equal(t, first.ID, rows[1][0])
	assert.Equal(t, first.RiskLevel.Label(), rows[1][5])

	rows, err = f.GetRows(SheetVolunteers)
	require.NoError(t, err)
	assert.Len(t, rows, 6)

	rows, err = f.GetRows(SheetActivities)
	require.NoError(t, err)
	assert.Len(t, rows, 21)
}

func TestWrite_HeaderOnlySheet(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, HouseholdSheet(nil)))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(SheetHouseholds)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Len(t, rows[0], 15)
}

func TestWrite_NoSheets(t *testing.T) {
	assert.Error(t, Write(&bytes.Buffer{}))
}
