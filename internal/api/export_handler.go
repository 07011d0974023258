package api

import (
	"encoding/json"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/seqtools/edl-agent/internal/archive"
	"github.com/seqtools/edl-agent/internal/export"
	"github.com/seqtools/edl-agent/internal/store"
	"github.com/seqtools/edl-agent/internal/timeline"
)

func exportProjectHandler(cfg ServerConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, ok := loadProject(w, r, cfg)
		if !ok {
			return
		}

		var req ExportRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			WriteError(w, http.StatusBadRequest, "invalid request body", "BAD_REQUEST")
			return
		}

		format, err := export.ParseFormat(req.Format)
		if err != nil {
			WriteError(w, http.StatusBadRequest, err.Error(), "BAD_REQUEST")
			return
		}

		if err := export.ValidateOutputDir(req.OutputDir); err != nil {
			WriteError(w, http.StatusBadRequest, err.Error(), "BAD_REQUEST")
			return
		}

		var t timeline.Project
		if err := json.Unmarshal(p.Timeline, &t); err != nil {
			WriteError(w, http.StatusInternalServerError, "stored timeline is corrupt", "INTERNAL_ERROR")
			return
		}

		filename := export.SanitizeFilename(req.Filename, 120)
		if filename == "" {
			filename = export.SanitizeFilename(p.Name, 120)
		}
		if filename == "" {
			filename = "timeline_export"
		}
		outputPath := filepath.Join(req.OutputDir, filename+format.Ext())

		now := time.Now().UTC()
		rec := &store.Export{
			ID:         store.NewID(),
			ProjectID:  p.ID,
			Format:     string(format),
			OutputPath: outputPath,
			Status:     store.ExportStatusRunning,
			CreatedAt:  now,
			UpdatedAt:  now,
		}
		if err := cfg.Repository.CreateExport(r.Context(), rec); err != nil {
			WriteError(w, http.StatusInternalServerError, "failed to record export", "INTERNAL_ERROR")
			return
		}

		if err := export.WriteFile(outputPath, format, &t, req.Options, cfg.Logger); err != nil {
			if uerr := cfg.Repository.UpdateExportStatus(r.Context(), rec.ID, store.ExportStatusFailed, err.Error()); uerr != nil {
				cfg.Logger.Warn("failed to update export status", "export_id", rec.ID, "error", uerr)
			}
			cfg.Logger.Error("export failed", "project_id", p.ID, "format", format, "error", err)
			WriteError(w, http.StatusInternalServerError, "failed to write export file", "INTERNAL_ERROR")
			return
		}

		if uerr := cfg.Repository.UpdateExportStatus(r.Context(), rec.ID, store.ExportStatusCompleted, ""); uerr != nil {
			cfg.Logger.Warn("failed to update export status", "export_id", rec.ID, "error", uerr)
		}
		rec.Status = store.ExportStatusCompleted

		WriteJSON(w, http.StatusOK, ExportToResponse(rec))
	}
}

func archiveProjectHandler(cfg ServerConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, ok := loadProject(w, r, cfg)
		if !ok {
			return
		}

		var t timeline.Project
		if err := json.Unmarshal(p.Timeline, &t); err != nil {
			WriteError(w, http.StatusInternalServerError, "stored timeline is corrupt", "INTERNAL_ERROR")
			return
		}

		w.Header().Set("Content-Type", "application/xml")
		if err := archive.Save(w, &t); err != nil {
			cfg.Logger.Error("archive write failed", "project_id", p.ID, "error", err)
		}
	}
}

// importProjectHandler creates a new project from an uploaded archive.
func importProjectHandler(cfg ServerConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req ImportRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			WriteError(w, http.StatusBadRequest, "invalid request body", "BAD_REQUEST")
			return
		}

		src, err := archive.Load(strings.NewReader(req.Archive))
		if err != nil {
			WriteError(w, http.StatusBadRequest, err.Error(), "BAD_REQUEST")
			return
		}

		result, report := archive.Apply(nil, src, archive.ModeNew, req.FrameOffset, req.ChannelOffset)

		raw, err := json.Marshal(result)
		if err != nil {
			WriteError(w, http.StatusInternalServerError, "failed to encode timeline", "INTERNAL_ERROR")
			return
		}

		name := result.Name
		if name == "" {
			name = "Imported Timeline"
		}

		now := time.Now().UTC()
		p := &store.Project{
			ID:        store.NewID(),
			Name:      name,
			Timeline:  raw,
			CreatedAt: now,
			UpdatedAt: now,
		}
		if err := cfg.Repository.CreateProject(r.Context(), p); err != nil {
			WriteError(w, http.StatusInternalServerError, "failed to create project", "INTERNAL_ERROR")
			return
		}

		WriteJSON(w, http.StatusCreated, ImportResponse{ProjectID: p.ID, Report: report})
	}
}

// importIntoProjectHandler merges an uploaded archive into an existing
// project according to the requested mode.
func importIntoProjectHandler(cfg ServerConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, ok := loadProject(w, r, cfg)
		if !ok {
			return
		}

		var req ImportRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			WriteError(w, http.StatusBadRequest, "invalid request body", "BAD_REQUEST")
			return
		}

		mode, err := archive.ParseMode(req.Mode)
		if err != nil {
			WriteError(w, http.StatusBadRequest, err.Error(), "BAD_REQUEST")
			return
		}

		var dst timeline.Project
		if err := json.Unmarshal(p.Timeline, &dst); err != nil {
			WriteError(w, http.StatusInternalServerError, "stored timeline is corrupt", "INTERNAL_ERROR")
			return
		}

		src, err := archive.Load(strings.NewReader(req.Archive))
		if err != nil {
			WriteError(w, http.StatusBadRequest, err.Error(), "BAD_REQUEST")
			return
		}

		result, report := archive.Apply(&dst, src, mode, req.FrameOffset, req.ChannelOffset)

		raw, err := json.Marshal(result)
		if err != nil {
			WriteError(w, http.StatusInternalServerError, "failed to encode timeline", "INTERNAL_ERROR")
			return
		}

		p.Timeline = raw
		if err := cfg.Repository.UpdateProject(r.Context(), p); err != nil {
			WriteError(w, http.StatusInternalServerError, "failed to update project", "INTERNAL_ERROR")
			return
		}

		WriteJSON(w, http.StatusOK, ImportResponse{ProjectID: p.ID, Report: report})
	}
}
