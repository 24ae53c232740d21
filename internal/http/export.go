package httpapi

import (
	"bytes"
	"fmt"
	"net/http"
	"strconv"

	"go.uber.org/zap"

	"github.com/yonghwan1106/e-ansimcare/internal/export"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// handleExportHouseholds exports the households matching the /households
// filters, unpaginated.
func (s *Server) handleExportHouseholds(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodGet) {
		return
	}
	f, bad, ok := householdFilter(r)
	if !ok {
		writeBadParam(w, bad)
		return
	}
	s.writeWorkbook(w, "households.xlsx", export.HouseholdSheet(s.snap.FindHouseholds(f)))
}

func (s *Server) handleExportSnapshot(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodGet) {
		return
	}
	name := fmt.Sprintf("snapshot-%s.xlsx", s.snap.Meta().ID)
	s.writeWorkbook(w, name, export.SnapshotSheets(s.snap)...)
}

func (s *Server) writeWorkbook(w http.ResponseWriter, filename string, sheets ...export.Sheet) {
	var buf bytes.Buffer
	if err := export.Write(&buf, sheets...); err != nil {
		s.log.Error("export workbook", zap.String("file", filename), zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "export_failed"})
		return
	}
	w.Header().Set("Content-Type", xlsxContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.WriteHeader(http.StatusOK)
	_, _ = buf.WriteTo(w)
}
