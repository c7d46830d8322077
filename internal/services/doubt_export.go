package services

import (
	"fmt"
	"io"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/SAP-F-2025/career-service/internal/models"
)

const (
	DoubtsSheet   = "Doubts"
	MessagesSheet = "Messages"
)

var (
	doubtHeaders   = []interface{}{"ID", "Title", "Status", "Resolution Notes", "Created At", "Updated At"}
	messageHeaders = []interface{}{"Doubt ID", "Message ID", "Sender", "Message", "Created At"}
)

func writeDoubtWorkbook(w io.Writer, doubts []*models.Doubt, messages []*models.DoubtMessage) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", DoubtsSheet); err != nil {
		return fmt.Errorf("failed to name sheet: %w", err)
	}
	if _, err := f.NewSheet(MessagesSheet); err != nil {
		return fmt.Errorf("failed to add sheet: %w", err)
	}

	if err := setRow(f, DoubtsSheet, 1, doubtHeaders); err != nil {
		return err
	}
	for i, d := range doubts {
		notes := ""
		if d.ResolutionNotes != nil {
			notes = *d.ResolutionNotes
		}
		row := []interface{}{d.ID, d.Title, string(d.Status), notes, formatTime(d.CreatedAt), formatTime(d.UpdatedAt)}
		if err := setRow(f, DoubtsSheet, i+2, row); err != nil {
			return err
		}
	}

	if err := setRow(f, MessagesSheet, 1, messageHeaders); err != nil {
		return err
	}
	for i, m := range messages {
		row := []interface{}{m.DoubtID, m.ID, string(m.Sender), m.Message, formatTime(m.CreatedAt)}
		if err := setRow(f, MessagesSheet, i+2, row); err != nil {
			return err
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

func setRow(f *excelize.File, sheet string, row int, values []interface{}) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	if err := f.SetSheetRow(sheet, cell, &values); err != nil {
		return fmt.Errorf("failed to write %s row %d: %w", sheet, row, err)
	}
	return nil
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}
