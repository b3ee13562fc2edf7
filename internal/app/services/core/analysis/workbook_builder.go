package analysis

import (
	"bytes"
	"fmt"

	"slotplan-service/internal/app/models"
	"slotplan-service/internal/pkg/dto/responses"

	"github.com/xuri/excelize/v2"
)

var capacitySheetHeader = []string{"Day", "RED", "AMBER", "YELLOW", "GREEN"}

var gapSheetHeader = []string{"Day", "Urgency", "Needed", "Capacity", "Gap"}

var paretoSheetHeader = []string{"Pathway", "Symptom", "Count", "Percent", "Cumulative Percent"}

// BuildAnalysisWorkbook renders a report into a spreadsheet planners can
// take back into the tools the exports came from.
func BuildAnalysisWorkbook(report *responses.AnalysisReport) ([]byte, error) {
	f := excelize.NewFile()

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{
			Bold: true,
		},
		Fill: excelize.Fill{
			Type:    "pattern",
			Color:   []string{"#E6F3FF"},
			Pattern: 1,
		},
		Alignment: &excelize.Alignment{
			Horizontal: "center",
			Vertical:   "center",
		},
	})
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to create header style: %w", err)
	}

	if err := writeSummarySheet(f, headerStyle, report); err != nil {
		f.Close()
		return nil, err
	}
	if err := writeCapacitySheet(f, headerStyle, report); err != nil {
		f.Close()
		return nil, err
	}
	if len(report.Gaps) > 0 {
		if err := writeGapSheet(f, headerStyle, report); err != nil {
			f.Close()
			return nil, err
		}
	}
	if report.Profile != nil && len(report.RecommendedPlan) > 0 {
		if err := writeRecommendationSheet(f, headerStyle, report); err != nil {
			f.Close()
			return nil, err
		}
	}
	if report.Demand != nil && len(report.Demand.Pareto) > 0 {
		if err := writeParetoSheet(f, headerStyle, report); err != nil {
			f.Close()
			return nil, err
		}
	}

	f.DeleteSheet("Sheet1")
	f.SetActiveSheet(0)

	var buf bytes.Buffer
	if _, err := f.WriteTo(&buf); err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}
	if err := f.Close(); err != nil {
		return nil, fmt.Errorf("failed to close workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func writeSummarySheet(f *excelize.File, headerStyle int, report *responses.AnalysisReport) error {
	const sheet = "Summary"
	if _, err := f.NewSheet(sheet); err != nil {
		return fmt.Errorf("failed to create sheet %s: %w", sheet, err)
	}

	rows := [][]interface{}{
		{"Dataset", report.DatasetID},
		{"Generated At", report.GeneratedAt.Format("2006-01-02 15:04:05")},
		{"Weekend Requests Accepted", report.AcceptWeekendRequests},
	}
	if report.PlanID != "" {
		rows = append(rows, []interface{}{"Capacity Plan", report.PlanID})
	}
	if report.Demand != nil {
		rows = append(rows,
			[]interface{}{"Total Requests", report.Demand.TotalRequests},
			[]interface{}{"Medical Requests", report.Demand.MedicalRequests},
			[]interface{}{"Weeks Observed", report.Demand.NumWeeks},
			[]interface{}{"Trailing 7-Day Average", report.Demand.SevenDayAverage},
		)
	}
	if report.Consistency != nil {
		rows = append(rows, []interface{}{"Manually Triaged Requests", report.Consistency.EligibleRequests})
	}

	for rowIdx, row := range rows {
		for colIdx, value := range row {
			if err := setCell(f, sheet, colIdx+1, rowIdx+1, value); err != nil {
				return err
			}
		}
		labelCell, err := excelize.CoordinatesToCellName(1, rowIdx+1)
		if err != nil {
			return err
		}
		if err := f.SetCellStyle(sheet, labelCell, labelCell, headerStyle); err != nil {
			return fmt.Errorf("failed to style cell %s: %w", labelCell, err)
		}
	}

	return f.SetColWidth(sheet, "A", "A", 28)
}

func writeCapacitySheet(f *excelize.File, headerStyle int, report *responses.AnalysisReport) error {
	const sheet = "Weekly Capacity"
	if _, err := f.NewSheet(sheet); err != nil {
		return fmt.Errorf("failed to create sheet %s: %w", sheet, err)
	}
	if err := writeHeaderRow(f, sheet, headerStyle, capacitySheetHeader); err != nil {
		return err
	}
	if report.Profile == nil {
		return nil
	}

	for rowIdx, day := range report.Profile.Days {
		row := rowIdx + 2
		if err := setCell(f, sheet, 1, row, day); err != nil {
			return err
		}
		for tierIdx, tier := range models.AllUrgencies() {
			if err := setCell(f, sheet, tierIdx+2, row, report.Profile.Needed[day][string(tier)]); err != nil {
				return err
			}
		}
	}
	return nil
}

func writeGapSheet(f *excelize.File, headerStyle int, report *responses.AnalysisReport) error {
	const sheet = "Gaps"
	if _, err := f.NewSheet(sheet); err != nil {
		return fmt.Errorf("failed to create sheet %s: %w", sheet, err)
	}
	if err := writeHeaderRow(f, sheet, headerStyle, gapSheetHeader); err != nil {
		return err
	}

	row := 2
	for _, gapRow := range report.Gaps {
		for _, tier := range models.AllUrgencies() {
			tierName := string(tier)
			if err := setCell(f, sheet, 1, row, gapRow.Day); err != nil {
				return err
			}
			if err := setCell(f, sheet, 2, row, tierName); err != nil {
				return err
			}
			if err := setCell(f, sheet, 3, row, gapRow.Needed[tierName]); err != nil {
				return err
			}
			if err := setCell(f, sheet, 4, row, gapRow.Capacity[tierName]); err != nil {
				return err
			}
			if err := setCell(f, sheet, 5, row, gapRow.Gap[tierName]); err != nil {
				return err
			}
			row++
		}
	}
	return nil
}

func writeRecommendationSheet(f *excelize.File, headerStyle int, report *responses.AnalysisReport) error {
	const sheet = "Recommended Plan"
	if _, err := f.NewSheet(sheet); err != nil {
		return fmt.Errorf("failed to create sheet %s: %w", sheet, err)
	}
	if err := writeHeaderRow(f, sheet, headerStyle, capacitySheetHeader); err != nil {
		return err
	}

	for rowIdx, day := range report.Profile.Days {
		row := rowIdx + 2
		if err := setCell(f, sheet, 1, row, day); err != nil {
			return err
		}
		for tierIdx, tier := range models.AllUrgencies() {
			if err := setCell(f, sheet, tierIdx+2, row, report.RecommendedPlan[day][string(tier)]); err != nil {
				return err
			}
		}
	}
	return nil
}

func writeParetoSheet(f *excelize.File, headerStyle int, report *responses.AnalysisReport) error {
	const sheet = "Pareto"
	if _, err := f.NewSheet(sheet); err != nil {
		return fmt.Errorf("failed to create sheet %s: %w", sheet, err)
	}
	if err := writeHeaderRow(f, sheet, headerStyle, paretoSheetHeader); err != nil {
		return err
	}

	for rowIdx, entry := range report.Demand.Pareto {
		row := rowIdx + 2
		if err := setCell(f, sheet, 1, row, entry.Pathway); err != nil {
			return err
		}
		if err := setCell(f, sheet, 2, row, entry.Symptom); err != nil {
			return err
		}
		if err := setCell(f, sheet, 3, row, entry.Count); err != nil {
			return err
		}
		if err := setCell(f, sheet, 4, row, entry.Percent); err != nil {
			return err
		}
		if err := setCell(f, sheet, 5, row, entry.CumulativePercent); err != nil {
			return err
		}
	}
	return f.SetColWidth(sheet, "A", "B", 24)
}

func writeHeaderRow(f *excelize.File, sheet string, headerStyle int, headers []string) error {
	for col, header := range headers {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, header); err != nil {
			return fmt.Errorf("failed to set header cell %s: %w", cell, err)
		}
		if err := f.SetCellStyle(sheet, cell, cell, headerStyle); err != nil {
			return fmt.Errorf("failed to style header cell %s: %w", cell, err)
		}
	}
	return nil
}

func setCell(f *excelize.File, sheet string, col, row int, value interface{}) error {
	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return err
	}
	return f.SetCellValue(sheet, cell, value)
}
