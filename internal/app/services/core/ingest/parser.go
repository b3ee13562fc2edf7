package ingest

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"
	"time"

	"slotplan-service/internal/app/models"
	"slotplan-service/internal/pkg/exceptions"

	"github.com/xuri/excelize/v2"
)

// expectedHeaders are the column tokens a triage export is recognized by.
// Matching is by substring on the lowercased header cell, so decorated
// headers like "Request Date (UTC)" still map.
var expectedHeaders = []string{
	"request date",
	"request day",
	"request hour",
	"request type",
	"pathway",
	"urgency",
	"automated",
	"slot type",
	"appointment status",
	"patient age",
	"is adult",
	"time to processed",
}

// headerMatchThresholdPct is the share of expected columns that must be
// present before a sheet is treated as a triage export.
const headerMatchThresholdPct = 80

// dateLayouts covers the formats clinic systems have been seen exporting.
var dateLayouts = []string{
	"2006-01-02",
	"02/01/2006",
	"2006-01-02 15:04:05",
	"02/01/2006 15:04",
	time.RFC3339,
}

// ParseWorkbook reads the first sheet of an xlsx export and normalizes every
// data row into a TriageRequest. Identity fields (ID, DatasetID, Tenant) are
// left for the caller to fill. Rows whose mapped cells are all empty are
// skipped; individually malformed cells degrade to their zero value rather
// than failing the file.
func ParseWorkbook(content []byte) ([]models.TriageRequest, error) {
	f, err := excelize.OpenReader(bytes.NewReader(content))
	if err != nil {
		return nil, exceptions.ErrIngestOpenWorkbook(err)
	}
	defer f.Close()

	sheetName := f.GetSheetName(0)
	if sheetName == "" {
		return nil, exceptions.ErrIngestHeaderMismatch(fmt.Errorf("workbook has no sheets"))
	}

	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, exceptions.ErrIngestOpenWorkbook(err)
	}
	if len(rows) == 0 {
		return nil, exceptions.ErrIngestHeaderMismatch(fmt.Errorf("sheet %s is empty", sheetName))
	}

	columns, matched := mapHeaderColumns(rows[0])
	if matched*100 < len(expectedHeaders)*headerMatchThresholdPct {
		return nil, exceptions.ErrIngestHeaderMismatch(
			fmt.Errorf("matched %d of %d expected columns", matched, len(expectedHeaders)))
	}

	requests := make([]models.TriageRequest, 0, len(rows)-1)
	for _, row := range rows[1:] {
		request, ok := parseRow(row, columns)
		if !ok {
			continue
		}
		requests = append(requests, request)
	}
	return requests, nil
}

// mapHeaderColumns resolves each expected token to the first header cell
// containing it and reports how many tokens were found.
func mapHeaderColumns(headerRow []string) (map[string]int, int) {
	normalized := make([]string, len(headerRow))
	for i, cell := range headerRow {
		normalized[i] = strings.ToLower(strings.TrimSpace(cell))
	}

	columns := make(map[string]int, len(expectedHeaders))
	for _, token := range expectedHeaders {
		for i, cell := range normalized {
			if strings.Contains(cell, token) {
				columns[token] = i
				break
			}
		}
	}
	return columns, len(columns)
}

func parseRow(row []string, columns map[string]int) (models.TriageRequest, bool) {
	empty := true
	for _, idx := range columns {
		if cellAt(row, idx) != "" {
			empty = false
			break
		}
	}
	if empty {
		return models.TriageRequest{}, false
	}

	request := models.TriageRequest{
		RequestType:       cellFor(row, columns, "request type"),
		Pathway:           cellFor(row, columns, "pathway"),
		SlotType:          cellFor(row, columns, "slot type"),
		AppointmentStatus: cellFor(row, columns, "appointment status"),
		Automated:         parseBoolish(cellFor(row, columns, "automated")),
		IsAdult:           parseBoolish(cellFor(row, columns, "is adult")),
	}

	if urgency, ok := models.ParseUrgency(cellFor(row, columns, "urgency")); ok {
		request.Urgency = urgency
	}
	if age, err := strconv.Atoi(cellFor(row, columns, "patient age")); err == nil {
		request.PatientAge = age
	}
	request.RequestDate = parseDate(cellFor(row, columns, "request date"))
	request.RequestHour = parseHour(cellFor(row, columns, "request hour"))
	request.TimeToProcessedMins = parseMinutes(cellFor(row, columns, "time to processed"))

	request.RequestDay = cellFor(row, columns, "request day")
	if request.RequestDay == "" && request.RequestDate != nil {
		request.RequestDay = request.RequestDate.Weekday().String()
	}
	return request, true
}

// cellFor treats a column the header mapping never found as empty, so the
// zero index never aliases the first column.
func cellFor(row []string, columns map[string]int, token string) string {
	idx, ok := columns[token]
	if !ok {
		return ""
	}
	return cellAt(row, idx)
}

// cellAt tolerates the short rows excelize returns when trailing cells are
// empty.
func cellAt(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

func parseDate(s string) *time.Time {
	if s == "" {
		return nil
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			t = t.UTC()
			return &t
		}
	}
	return nil
}

func parseHour(s string) *int {
	if s == "" {
		return nil
	}
	hour, err := strconv.Atoi(s)
	if err != nil || hour < 0 || hour > 23 {
		return nil
	}
	return &hour
}

func parseMinutes(s string) *float64 {
	if s == "" {
		return nil
	}
	mins, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	return &mins
}

func parseBoolish(s string) bool {
	switch strings.ToLower(s) {
	case "true", "yes", "y", "1":
		return true
	}
	return false
}
