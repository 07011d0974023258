package api

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/seqtools/edl-agent/internal/config"
	"github.com/seqtools/edl-agent/internal/store"
	"github.com/seqtools/edl-agent/internal/timeline"
)

func NewRouter(cfg ServerConfig) *chi.Mux {
	r := chi.NewRouter()

	r.Use(RequestIDMiddleware())
	r.Use(RecoveryMiddleware(cfg.Logger))
	r.Use(LoggingMiddleware(cfg.Logger))

	r.Get("/health", healthHandler(cfg))

	r.Group(func(r chi.Router) {
		r.Use(AuthMiddleware(cfg.Repository, cfg.Logger))

		r.Get("/status", statusHandler(cfg))
		r.Get("/projects", listProjectsHandler(cfg))
		r.Post("/projects", createProjectHandler(cfg))
		r.Get("/projects/{id}", getProjectHandler(cfg))
		r.Put("/projects/{id}", updateProjectHandler(cfg))
		r.Delete("/projects/{id}", deleteProjectHandler(cfg))
		r.Post("/projects/{id}/export", exportProjectHandler(cfg))
		r.Get("/projects/{id}/archive", archiveProjectHandler(cfg))
		r.Post("/projects/{id}/import", importIntoProjectHandler(cfg))
		r.Post("/import", importProjectHandler(cfg))
		r.Get("/exports", listExportsHandler(cfg))
	})

	return r
}

func healthHandler(cfg ServerConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		uptime := int64(time.Since(cfg.StartTime).Seconds())
		WriteJSON(w, http.StatusOK, HealthResponse{
			Status:   "ok",
			Version:  config.Version,
			UptimeS:  uptime,
			DeviceID: cfg.DeviceID,
		})
	}
}

func statusHandler(cfg ServerConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		projectsCount, _ := cfg.Repository.CountProjects(ctx)
		exports, _ := cfg.Repository.ListExports(ctx, "", 10)

		state := "idle"
		var activeExport *ExportResponse
		exportsRunning := 0
		lastError := ""

		for _, e := range exports {
			if e.Status == store.ExportStatusRunning {
				state = "exporting"
				resp := ExportToResponse(e)
				activeExport = &resp
				exportsRunning++
			}
			if e.Status == store.ExportStatusFailed && lastError == "" {
				lastError = e.Error
			}
		}

		if lastError != "" && state == "idle" {
			state = "error"
		}

		WriteJSON(w, http.StatusOK, StatusResponse{
			State:          state,
			LastError:      lastError,
			ProjectsCount:  projectsCount,
			ExportsRunning: exportsRunning,
			ActiveExport:   activeExport,
		})
	}
}

func listProjectsHandler(cfg ServerConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		projects, err := cfg.Repository.ListProjects(r.Context())
		if err != nil {
			WriteError(w, http.StatusInternalServerError, "failed to list projects", "INTERNAL_ERROR")
			return
		}

		resp := ProjectsResponse{Projects: make([]ProjectResponse, len(projects))}
		for i, p := range projects {
			resp.Projects[i] = ProjectToResponse(p, false)
		}
		WriteJSON(w, http.StatusOK, resp)
	}
}

func createProjectHandler(cfg ServerConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req ProjectRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			WriteError(w, http.StatusBadRequest, "invalid request body", "BAD_REQUEST")
			return
		}

		if req.Name == "" {
			WriteError(w, http.StatusBadRequest, "name is required", "BAD_REQUEST")
			return
		}
		if err := validateTimeline(req.Timeline); err != nil {
			WriteError(w, http.StatusBadRequest, err.Error(), "BAD_REQUEST")
			return
		}

		now := time.Now().UTC()
		p := &store.Project{
			ID:        store.NewID(),
			Name:      req.Name,
			Timeline:  req.Timeline,
			CreatedAt: now,
			UpdatedAt: now,
		}
		if err := cfg.Repository.CreateProject(r.Context(), p); err != nil {
			WriteError(w, http.StatusInternalServerError, "failed to create project", "INTERNAL_ERROR")
			return
		}

		WriteJSON(w, http.StatusCreated, ProjectToResponse(p, false))
	}
}

func getProjectHandler(cfg ServerConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, ok := loadProject(w, r, cfg)
		if !ok {
			return
		}
		WriteJSON(w, http.StatusOK, ProjectToResponse(p, true))
	}
}

func updateProjectHandler(cfg ServerConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, ok := loadProject(w, r, cfg)
		if !ok {
			return
		}

		var req ProjectRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			WriteError(w, http.StatusBadRequest, "invalid request body", "BAD_REQUEST")
			return
		}

		if req.Name != "" {
			p.Name = req.Name
		}
		if len(req.Timeline) > 0 {
			if err := validateTimeline(req.Timeline); err != nil {
				WriteError(w, http.StatusBadRequest, err.Error(), "BAD_REQUEST")
				return
			}
			p.Timeline = req.Timeline
		}

		if err := cfg.Repository.UpdateProject(r.Context(), p); err != nil {
			WriteError(w, http.StatusInternalServerError, "failed to update project", "INTERNAL_ERROR")
			return
		}

		WriteJSON(w, http.StatusOK, ProjectToResponse(p, false))
	}
}

func deleteProjectHandler(cfg ServerConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		if id == "" {
			WriteError(w, http.StatusBadRequest, "project id required", "BAD_REQUEST")
			return
		}

		if err := cfg.Repository.DeleteProject(r.Context(), id); err != nil {
			WriteError(w, http.StatusInternalServerError, err.Error(), "INTERNAL_ERROR")
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}

func listExportsHandler(cfg ServerConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		projectID := r.URL.Query().Get("project_id")
		limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

		exports, err := cfg.Repository.ListExports(r.Context(), projectID, limit)
		if err != nil {
			WriteError(w, http.StatusInternalServerError, "failed to list exports", "INTERNAL_ERROR")
			return
		}

		resp := ExportsResponse{Exports: make([]ExportResponse, len(exports))}
		for i, e := range exports {
			resp.Exports[i] = ExportToResponse(e)
		}
		WriteJSON(w, http.StatusOK, resp)
	}
}

// loadProject fetches the project named by the {id} URL param, writing
// the error response itself when the lookup fails.
func loadProject(w http.ResponseWriter, r *http.Request, cfg ServerConfig) (*store.Project, bool) {
	id := chi.URLParam(r, "id")
	if id == "" {
		WriteError(w, http.StatusBadRequest, "project id required", "BAD_REQUEST")
		return nil, false
	}

	p, err := cfg.Repository.GetProject(r.Context(), id)
	if err != nil {
		WriteError(w, http.StatusInternalServerError, err.Error(), "INTERNAL_ERROR")
		return nil, false
	}
	if p == nil {
		WriteError(w, http.StatusNotFound, "project not found", "NOT_FOUND")
		return nil, false
	}
	return p, true
}

func validateTimeline(raw json.RawMessage) error {
	var t timeline.Project
	if err := json.Unmarshal(raw, &t); err != nil {
		return err
	}
	return nil
}
