// Package export writes snapshot collections to spreadsheet workbooks.
package export

import (
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/yonghwan1106/e-ansimcare/internal/dataset"
	"github.com/yonghwan1106/e-ansimcare/internal/domain"
)

// Sheet is one worksheet: a header row followed by rows of cell values.
type Sheet struct {
	Name    string
	Headers []string
	Widths  []float64
	Rows    [][]any
}

const (
	SheetHouseholds = "Households"
	SheetVolunteers = "Volunteers"
	SheetActivities = "Activities"
)

func HouseholdSheet(hs []domain.Household) Sheet {
	s := Sheet{
		Name: SheetHouseholds,
		Headers: []string{
			"ID", "시도", "시군구", "읍면동", "위험점수", "위험등급", "상태", "가구원수",
			"주거형태", "난방유형", "가구특성", "평균사용량(kWh)", "발견일", "담당자", "연계사업",
		},
		Widths: []float64{12, 12, 12, 12, 10, 10, 12, 10, 12, 12, 28, 16, 12, 10, 20},
	}
	for _, h := range hs {
		s.Rows = append(s.Rows, []any{
			h.ID, h.Region.Sido, h.Region.Sigungu, h.Region.Dong,
			h.RiskScore, h.RiskLevel.Label(), h.Status.Label(), h.HouseholdSize,
			h.HousingType, h.HeatingType, strings.Join(h.Characteristics, ", "),
			h.AverageUsage, h.DetectedAt.String(), h.AssignedTo,
			strings.Join(h.ConnectedPrograms, ", "),
		})
	}
	return s
}

func VolunteerSheet(vs []domain.Volunteer) Sheet {
	s := Sheet{
		Name:    SheetVolunteers,
		Headers: []string{"ID", "이름", "유형", "소속", "지역", "연락처", "방문횟수", "활동시간", "상태"},
		Widths:  []float64{12, 10, 10, 16, 10, 16, 10, 10, 10},
	}
	for _, v := range vs {
		s.Rows = append(s.Rows, []any{
			v.ID, v.Name, v.Type.Label(), v.Affiliation, v.Region, v.Contact,
			v.TotalVisits, v.TotalHours, string(v.Status),
		})
	}
	return s
}

func ActivitySheet(as []domain.VisitActivity) Sheet {
	s := Sheet{
		Name: SheetActivities,
		Headers: []string{
			"ID", "봉사자ID", "봉사자", "가구ID", "주소", "예정일", "방문일", "유형", "상태",
			"건강상태", "소요시간(분)", "후속조치",
		},
		Widths: []float64{12, 12, 10, 12, 28, 12, 12, 14, 12, 10, 12, 10},
	}
	for _, a := range as {
		var actual, health string
		if a.ActualDate != nil {
			actual = a.ActualDate.String()
		}
		if a.HealthStatus != nil {
			health = string(*a.HealthStatus)
		}
		follow := "N"
		if a.FollowUpRequired {
			follow = "Y"
		}
		s.Rows = append(s.Rows, []any{
			a.ID, a.VolunteerID, a.VolunteerName, a.HouseholdID, a.HouseholdAddress,
			a.ScheduledDate.String(), actual, string(a.VisitType), string(a.Status),
			health, a.DurationMinutes, follow,
		})
	}
	return s
}

// SnapshotSheets is the full workbook layout for a snapshot.
func SnapshotSheets(s *dataset.Snapshot) []Sheet {
	return []Sheet{
		HouseholdSheet(s.Households()),
		VolunteerSheet(s.Volunteers()),
		ActivitySheet(s.Activities()),
	}
}

// Write renders sheets into one workbook on w.
func Write(w io.Writer, sheets ...Sheet) error {
	if len(sheets) == 0 {
		return fmt.Errorf("no sheets to write")
	}
	f := excelize.NewFile()
	defer f.Close()

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#E6F3FF"}, Pattern: 1},
		Border: []excelize.Border{
			{Type: "left", Color: "000000", Style: 1},
			{Type: "top", Color: "000000", Style: 1},
			{Type: "bottom", Color: "000000", Style: 1},
			{Type: "right", Color: "000000", Style: 1},
		},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return fmt.Errorf("failed to create header style: %w", err)
	}

	for _, s := range sheets {
		if _, err := f.NewSheet(s.Name); err != nil {
			return fmt.Errorf("failed to create sheet %s: %w", s.Name, err)
		}
		if err := writeSheet(f, s, headerStyle); err != nil {
			return err
		}
	}
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return fmt.Errorf("failed to drop default sheet: %w", err)
	}
	idx, err := f.GetSheetIndex(sheets[0].Name)
	if err != nil {
		return fmt.Errorf("failed to find sheet %s: %w", sheets[0].Name, err)
	}
	f.SetActiveSheet(idx)

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

func writeSheet(f *excelize.File, s Sheet, headerStyle int) error {
	for col, header := range s.Headers {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return fmt.Errorf("failed to convert coordinates: %w", err)
		}
		if err := f.SetCellValue(s.Name, cell, header); err != nil {
			return fmt.Errorf("failed to set header cell %s: %w", cell, err)
		}
		if err := f.SetCellStyle(s.Name, cell, cell, headerStyle); err != nil {
			return fmt.Errorf("failed to set header style: %w", err)
		}
		if col < len(s.Widths) {
			name, _ := excelize.ColumnNumberToName(col + 1)
			if err := f.SetColWidth(s.Name, name, name, s.Widths[col]); err != nil {
				return fmt.Errorf("failed to set column width: %w", err)
			}
		}
	}

	for i, row := range s.Rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return fmt.Errorf("failed to convert coordinates: %w", err)
		}
		if err := f.SetSheetRow(s.Name, cell, &row); err != nil {
			return fmt.Errorf("failed to write %s row %d: %w", s.Name, i+2, err)
		}
	}

	return f.SetPanes(s.Name, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	})
}
