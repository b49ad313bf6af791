package handlers

import (
	"net/http"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/fleetworks/fleet-maintenance-api/config"
	"github.com/fleetworks/fleet-maintenance-api/sheets"
)

// ExportLogsHandler streams the current maintenance logs as an XLSX
// workbook, one row per record in the same column layout as the sheet
// mirror. Accepts the same optional vehicle filter as the list endpoint.
func (m Maintenance) ExportLogsHandler(w http.ResponseWriter, r *http.Request) {
	vehicle := r.URL.Query().Get("vehicle")

	logs, err := m.fetchLogs(r.Context(), vehicle)
	if err != nil {
		config.ErrorStatus("failed to fetch logs", http.StatusInternalServerError, w, err)
		return
	}

	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			zap.S().Warnw("failed to close export workbook", "error", err)
		}
	}()

	sheetName := "Maintenance Logs"
	index, err := f.NewSheet(sheetName)
	if err != nil {
		config.ErrorStatus("failed to create export sheet", http.StatusInternalServerError, w, err)
		return
	}
	f.SetActiveSheet(index)
	_ = f.DeleteSheet("Sheet1")

	headers := sheets.Headers()
	for i, header := range headers {
		cellName, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			config.ErrorStatus("failed to build export sheet", http.StatusInternalServerError, w, err)
			return
		}
		_ = f.SetCellValue(sheetName, cellName, header)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
	})
	if err == nil {
		_ = f.SetRowStyle(sheetName, 1, 1, headerStyle)
	}

	for rowIndex, rec := range logs {
		for colIndex, value := range sheets.BuildRow(rec) {
			cellName, err := excelize.CoordinatesToCellName(colIndex+1, rowIndex+2)
			if err != nil {
				continue
			}
			_ = f.SetCellValue(sheetName, cellName, value)
		}
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="maintenance_logs.xlsx"`)
	if err := f.Write(w); err != nil {
		zap.S().Errorw("failed to stream export workbook", "error", err)
	}
}
