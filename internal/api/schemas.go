package api

import (
	"encoding/json"
	"time"

	"github.com/seqtools/edl-agent/internal/export"
	"github.com/seqtools/edl-agent/internal/store"
)

type HealthResponse struct {
	Status   string `json:"status"`
	Version  string `json:"version"`
	UptimeS  int64  `json:"uptime_s"`
	DeviceID string `json:"device_id"`
}

type StatusResponse struct {
	State          string          `json:"state"`
	LastError      string          `json:"last_error,omitempty"`
	ProjectsCount  int             `json:"projects_count"`
	ExportsRunning int             `json:"exports_running"`
	ActiveExport   *ExportResponse `json:"active_export,omitempty"`
}

type ProjectRequest struct {
	Name     string          `json:"name"`
	Timeline json.RawMessage `json:"timeline"`
}

type ProjectResponse struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Timeline  json.RawMessage `json:"timeline,omitempty"`
	CreatedAt string          `json:"created_at"`
	UpdatedAt string          `json:"updated_at"`
}

type ProjectsResponse struct {
	Projects []ProjectResponse `json:"projects"`
}

type ExportRequest struct {
	Format    string         `json:"format"`
	OutputDir string         `json:"output_dir"`
	Filename  string         `json:"filename,omitempty"`
	Options   export.Options `json:"options"`
}

type ExportResponse struct {
	ID         string `json:"id"`
	ProjectID  string `json:"project_id"`
	Format     string `json:"format"`
	OutputPath string `json:"output_path"`
	Status     string `json:"status"`
	Error      string `json:"error,omitempty"`
	CreatedAt  string `json:"created_at"`
	UpdatedAt  string `json:"updated_at"`
}

type ExportsResponse struct {
	Exports []ExportResponse `json:"exports"`
}

type ImportRequest struct {
	Archive       string `json:"archive"`
	Mode          string `json:"mode,omitempty"`
	FrameOffset   int    `json:"frame_offset,omitempty"`
	ChannelOffset int    `json:"channel_offset,omitempty"`
}

type ImportResponse struct {
	ProjectID string   `json:"project_id"`
	Report    []string `json:"report,omitempty"`
}

type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

func ProjectToResponse(p *store.Project, includeTimeline bool) ProjectResponse {
	resp := ProjectResponse{
		ID:        p.ID,
		Name:      p.Name,
		CreatedAt: p.CreatedAt.Format(time.RFC3339),
		UpdatedAt: p.UpdatedAt.Format(time.RFC3339),
	}
	if includeTimeline {
		resp.Timeline = json.RawMessage(p.Timeline)
	}
	return resp
}

func ExportToResponse(e *store.Export) ExportResponse {
	return ExportResponse{
		ID:         e.ID,
		ProjectID:  e.ProjectID,
		Format:     e.Format,
		OutputPath: e.OutputPath,
		Status:     e.Status,
		Error:      e.Error,
		CreatedAt:  e.CreatedAt.Format(time.RFC3339),
		UpdatedAt:  e.UpdatedAt.Format(time.RFC3339),
	}
}
