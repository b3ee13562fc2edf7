package ingest

import (
	"testing"
	"time"

	"slotplan-service/internal/app/models"

	"github.com/stretchr/testify/assert"
	"github.com/xuri/excelize/v2"
)

func buildWorkbook(t *testing.T, rows [][]interface{}) []byte {
	t.Helper()
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	for r, row := range rows {
		for c, value := range row {
			cell, err := excelize.CoordinatesToCellName(c+1, r+1)
			assert.NoError(t, err)
			assert.NoError(t, f.SetCellValue(sheet, cell, value))
		}
	}
	buf, err := f.WriteToBuffer()
	assert.NoError(t, err)
	return buf.Bytes()
}

var exportHeader = []interface{}{
	"Request Date", "Request Day", "Request Hour", "Request Type", "Pathway",
	"Urgency", "Automated", "Slot Type", "Appointment Status", "Patient Age",
	"Is Adult", "Time to Processed (mins)",
}

func TestParseWorkbook(t *testing.T) {
	t.Run("Parses Standard Export Rows", func(t *testing.T) {
		content := buildWorkbook(t, [][]interface{}{
			exportHeader,
			{"2025-06-02", "Monday", 9, "Medical", "Triage.Headache", "RED", "No", "Urgent Same Day", "Booked", 34, "Yes", 12.5},
			{"2025-06-03", "Tuesday", 14, "Admin", "Admin.Fit Note", "", "Yes", "-", "", 52, "Yes", ""},
		})

		requests, err := ParseWorkbook(content)
		assert.NoError(t, err)
		assert.Len(t, requests, 2)

		first := requests[0]
		assert.NotNil(t, first.RequestDate, "date column should parse")
		assert.Equal(t, time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC), *first.RequestDate)
		assert.Equal(t, "Monday", first.RequestDay)
		if assert.NotNil(t, first.RequestHour) {
			assert.Equal(t, 9, *first.RequestHour)
		}
		assert.Equal(t, "Medical", first.RequestType)
		assert.Equal(t, "Triage.Headache", first.Pathway)
		assert.Equal(t, models.UrgencyRed, first.Urgency)
		assert.False(t, first.Automated)
		assert.Equal(t, "Urgent Same Day", first.SlotType)
		assert.Equal(t, 34, first.PatientAge)
		assert.True(t, first.IsAdult)
		if assert.NotNil(t, first.TimeToProcessedMins) {
			assert.Equal(t, 12.5, *first.TimeToProcessedMins)
		}

		second := requests[1]
		assert.Equal(t, models.Urgency(""), second.Urgency, "admin rows carry no urgency")
		assert.True(t, second.Automated)
		assert.False(t, second.HasSlotType())
		assert.Nil(t, second.TimeToProcessedMins)
	})

	t.Run("Accepts Decorated Header Names", func(t *testing.T) {
		decorated := []interface{}{
			"Request Date (UTC)", "Request Day Name", "Request Hour (24h)", "Request Type", "Pathway Code",
			"Urgency Tier", "Automated?", "Slot Type Assigned", "Appointment Status", "Patient Age (years)",
			"Is Adult", "Time to Processed Mins",
		}
		content := buildWorkbook(t, [][]interface{}{
			decorated,
			{"2025-06-02", "Mon", 9, "Medical", "Triage.Rash", "AMBER", "No", "Next Day GP", "Booked", 7, "No", 3},
		})

		requests, err := ParseWorkbook(content)
		assert.NoError(t, err)
		assert.Len(t, requests, 1)
		assert.Equal(t, models.UrgencyAmber, requests[0].Urgency)
		assert.False(t, requests[0].IsAdult)
	})

	t.Run("Rejects Foreign Spreadsheet", func(t *testing.T) {
		content := buildWorkbook(t, [][]interface{}{
			{"Product", "Price", "Quantity"},
			{"Stapler", 3.50, 12},
		})

		requests, err := ParseWorkbook(content)
		assert.Error(t, err, "a sheet without triage columns should be refused")
		assert.Nil(t, requests)
	})

	t.Run("Accepts Export At Match Threshold", func(t *testing.T) {
		// 10 of 12 expected columns present.
		partial := []interface{}{
			"Request Date", "Request Hour", "Request Type", "Pathway", "Urgency",
			"Automated", "Slot Type", "Appointment Status", "Patient Age", "Is Adult",
		}
		content := buildWorkbook(t, [][]interface{}{
			partial,
			{"2025-06-02", 9, "Medical", "Triage.Headache", "GREEN", "No", "Routine", "Booked", 40, "Yes"},
		})

		requests, err := ParseWorkbook(content)
		assert.NoError(t, err)
		assert.Len(t, requests, 1)
	})

	t.Run("Rejects Export Below Match Threshold", func(t *testing.T) {
		// 9 of 12 expected columns present.
		partial := []interface{}{
			"Request Date", "Request Hour", "Request Type", "Pathway", "Urgency",
			"Automated", "Slot Type", "Appointment Status", "Patient Age",
		}
		content := buildWorkbook(t, [][]interface{}{
			partial,
			{"2025-06-02", 9, "Medical", "Triage.Headache", "GREEN", "No", "Routine", "Booked", 40},
		})

		_, err := ParseWorkbook(content)
		assert.Error(t, err)
	})

	t.Run("Degrades Malformed Cells To Zero Values", func(t *testing.T) {
		content := buildWorkbook(t, [][]interface{}{
			exportHeader,
			{"not a date", "Someday", 99, "Medical", "Triage.Chest Pain", "PURPLE", "maybe", "Urgent", "Booked", "old", "Yes", "slow"},
		})

		requests, err := ParseWorkbook(content)
		assert.NoError(t, err)
		assert.Len(t, requests, 1)

		row := requests[0]
		assert.Nil(t, row.RequestDate)
		assert.Nil(t, row.RequestHour, "hour 99 is out of range")
		assert.Equal(t, models.Urgency(""), row.Urgency)
		assert.False(t, row.Automated)
		assert.Equal(t, 0, row.PatientAge)
		assert.Nil(t, row.TimeToProcessedMins)
	})

	t.Run("Skips Fully Blank Rows", func(t *testing.T) {
		content := buildWorkbook(t, [][]interface{}{
			exportHeader,
			{"2025-06-02", "Monday", 9, "Medical", "Triage.Headache", "RED", "No", "Urgent", "Booked", 34, "Yes", 1},
			{"", "", "", "", "", "", "", "", "", "", "", ""},
			{"2025-06-03", "Tuesday", 10, "Medical", "Triage.Rash", "GREEN", "No", "Routine", "Booked", 28, "Yes", 2},
		})

		requests, err := ParseWorkbook(content)
		assert.NoError(t, err)
		assert.Len(t, requests, 2)
	})

	t.Run("Derives Day From Date When Column Blank", func(t *testing.T) {
		content := buildWorkbook(t, [][]interface{}{
			exportHeader,
			{"2025-06-06", "", 9, "Medical", "Triage.Headache", "RED", "No", "Urgent", "Booked", 34, "Yes", 1},
		})

		requests, err := ParseWorkbook(content)
		assert.NoError(t, err)
		assert.Len(t, requests, 1)
		assert.Equal(t, "Friday", requests[0].RequestDay)
	})

	t.Run("Rejects Garbage Bytes", func(t *testing.T) {
		_, err := ParseWorkbook([]byte("definitely not a zip archive"))
		assert.Error(t, err)
	})
}
