// Package export writes day agendas to Excel files for the shop's records.
package export

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
	"github.com/xuri/excelize/v2"

	"figaro/internal/classify"
	"figaro/internal/dateutil"
	"figaro/internal/models"
)

const sheetName = "Agenda"

// AgendaSource provides the appointments of a single day.
type AgendaSource interface {
	AppointmentsOn(ctx context.Context, date string) ([]models.Appointment, error)
}

// Exporter renders agendas under a configured directory.
type Exporter struct {
	source AgendaSource
	path   string
	logger *zerolog.Logger
}

// NewExporter builds an exporter writing into path.
func NewExporter(source AgendaSource, path string, logger *zerolog.Logger) *Exporter {
	return &Exporter{source: source, path: path, logger: logger}
}

// ExportDay writes one day's agenda, ordered by start time, and returns the
// file path.
func (e *Exporter) ExportDay(ctx context.Context, date string) (string, error) {
	if _, ok := dateutil.ParseDateInput(date); !ok {
		return "", fmt.Errorf("invalid agenda date: %q", date)
	}

	if err := os.MkdirAll(e.path, 0o755); err != nil {
		return "", fmt.Errorf("error creating export directory: %v", err)
	}

	appointments, err := e.source.AppointmentsOn(ctx, date)
	if err != nil {
		return "", fmt.Errorf("error getting appointments: %v", err)
	}
	appointments = classify.SortByStartTime(appointments)

	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(sheetName)
	if err != nil {
		return "", fmt.Errorf("error creating sheet: %v", err)
	}
	f.SetActiveSheet(index)

	writeTitle(f, date)
	writeHeaders(f)
	writeRows(f, appointments)

	_ = f.SetColWidth(sheetName, "A", "A", 10)
	_ = f.SetColWidth(sheetName, "B", "D", 25)
	_ = f.DeleteSheet("Sheet1")

	fileName := fmt.Sprintf("agenda_%s.xlsx", date)
	filePath := filepath.Join(e.path, fileName)

	if err := f.SaveAs(filePath); err != nil {
		return "", fmt.Errorf("error saving file: %v", err)
	}

	e.logger.Info().Str("file_path", filePath).Int("appointments", len(appointments)).Msg("agenda exported")
	return filePath, nil
}

// ExportPeriod writes one file per day in the inclusive range and returns the
// paths in day order.
func (e *Exporter) ExportPeriod(ctx context.Context, startDate, endDate time.Time) ([]string, error) {
	var paths []string
	for current := startDate; !current.After(endDate); current = current.AddDate(0, 0, 1) {
		path, err := e.ExportDay(ctx, dateutil.FormatDateForInput(current))
		if err != nil {
			return nil, err
		}
		paths = append(paths, path)
	}
	return paths, nil
}

func writeTitle(f *excelize.File, date string) {
	title := "Agenda del " + date
	if parsed, ok := dateutil.ParseDateInput(date); ok {
		title = "Agenda del " + parsed.Format("02.01.2006")
	}
	_ = f.SetCellValue(sheetName, "A1", title)
	_ = f.MergeCell(sheetName, "A1", "D1")

	style, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 14},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	_ = f.SetCellStyle(sheetName, "A1", "A1", style)
}

func writeHeaders(f *excelize.File) {
	headers := []string{"Orario", "Servizio", "Barbiere", "Stato"}
	for i, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 2)
		_ = f.SetCellValue(sheetName, cell, header)

		style, _ := f.NewStyle(&excelize.Style{
			Fill: excelize.Fill{Type: "pattern", Color: []string{"#DDEBF7"}, Pattern: 1},
			Font: &excelize.Font{Bold: true},
		})
		_ = f.SetCellStyle(sheetName, cell, cell, style)
	}
}

func writeRows(f *excelize.File, appointments []models.Appointment) {
	for i, a := range appointments {
		row := i + 3

		serviceName := "Servizio"
		if a.Service != nil && a.Service.Name != "" {
			serviceName = a.Service.Name
		}

		_ = f.SetCellValue(sheetName, fmt.Sprintf("A%d", row), dateutil.FormatTime(a.StartTime))
		_ = f.SetCellValue(sheetName, fmt.Sprintf("B%d", row), serviceName)
		_ = f.SetCellValue(sheetName, fmt.Sprintf("C%d", row), a.Barber.FullName())
		_ = f.SetCellValue(sheetName, fmt.Sprintf("D%d", row), a.Status)

		if styleID, err := statusStyle(f, a.Status); err == nil {
			cell := fmt.Sprintf("D%d", row)
			_ = f.SetCellStyle(sheetName, cell, cell, styleID)
		}
	}
}

// statusStyle colours the status cell the way the dashboard colours its
// badges.
func statusStyle(f *excelize.File, status string) (int, error) {
	var color string
	switch classify.StatusDisplayClass(status) {
	case classify.ClassConfirmed, classify.ClassCompleted:
		color = "#C6EFCE"
	case classify.ClassCancelled:
		color = "#FFC7CE"
	case classify.ClassPending:
		color = "#FFEB9C"
	default:
		color = "#FFFFFF"
	}

	return f.NewStyle(&excelize.Style{
		Fill: excelize.Fill{Type: "pattern", Color: []string{color}, Pattern: 1},
	})
}
