package handlers

import (
	"bytes"
	"fmt"
	"net/http"

	"github.com/mauv0809/driveway-hoops/internal/export"
)

// writeAttachment buffers the render so a failure can still produce an error status.
func writeAttachment(w http.ResponseWriter, contentType, name string, body *bytes.Buffer) {
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
	w.WriteHeader(http.StatusOK)
	body.WriteTo(w)
}

func SeasonExportHandler(e *export.Exporter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var buf bytes.Buffer
		name, err := e.WriteSeasonFile(&buf, r.PathValue("id"), export.File(r.PathValue("file")))
		if err != nil {
			writeError(w, "Failed to export season", err)
			return
		}
		writeAttachment(w, "text/csv", name, &buf)
	}
}

func GameExportHandler(e *export.Exporter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var buf bytes.Buffer
		name, err := e.WriteGameFile(&buf, r.PathValue("id"))
		if err != nil {
			writeError(w, "Failed to export game", err)
			return
		}
		writeAttachment(w, "text/csv", name, &buf)
	}
}

func BackupHandler(e *export.Exporter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var buf bytes.Buffer
		name, err := e.WriteBackup(&buf)
		if err != nil {
			writeError(w, "Failed to export backup", err)
			return
		}
		writeAttachment(w, "application/json", name, &buf)
	}
}
