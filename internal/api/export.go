package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"shareit/internal/models"

	"github.com/xuri/excelize/v2"
)

// BookingSource is the slice of the store the exporter needs.
type BookingSource interface {
	GetAllBookings(ctx context.Context) ([]*models.Booking, error)
}

// Exporter renders an xlsx snapshot of all bookings for back-office use.
type Exporter struct {
	source BookingSource
}

func NewExporter(source BookingSource) *Exporter {
	return &Exporter{source: source}
}

func (e *Exporter) WriteBookings(ctx context.Context, w http.ResponseWriter) error {
	bookings, err := e.source.GetAllBookings(ctx)
	if err != nil {
		return fmt.Errorf("error getting bookings: %w", err)
	}

	f := excelize.NewFile()
	defer f.Close()

	const sheetName = "Bookings"
	index, err := f.NewSheet(sheetName)
	if err != nil {
		return fmt.Errorf("error creating sheet: %w", err)
	}
	f.SetActiveSheet(index)
	_ = f.DeleteSheet("Sheet1")

	headers := []string{"ID", "Item", "Booker", "Start", "End", "Status"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(sheetName, cell, h)
	}

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
	})
	_ = f.SetCellStyle(sheetName, "A1", "F1", headerStyle)

	for row, b := range bookings {
		values := []interface{}{
			b.ID,
			b.ItemID,
			b.BookerID,
			b.Start.Format(time.RFC3339),
			b.End.Format(time.RFC3339),
			b.Status,
		}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			_ = f.SetCellValue(sheetName, cell, v)
		}
	}

	_ = f.SetColWidth(sheetName, "D", "E", 22)

	fileName := fmt.Sprintf("bookings_%s.xlsx", time.Now().Format("2006-01-02"))
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", fileName))

	_, err = f.WriteTo(w)
	return err
}

func (s *HTTPServer) handleExport(w http.ResponseWriter, r *http.Request) {
	if s.exports == nil {
		writeError(w, http.StatusNotFound, "export is not configured")
		return
	}

	if err := s.exports.WriteBookings(r.Context(), w); err != nil {
		s.log.Error().Err(err).Msg("export bookings")
		writeError(w, http.StatusInternalServerError, "export failed")
		return
	}
}
