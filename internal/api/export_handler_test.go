package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/seqtools/edl-agent/internal/store"
)

const exportTimeline = `{
	"name": "Session",
	"frame_start": 1,
	"frame_end": 100,
	"fps": 24,
	"fps_base": 1,
	"sample_rate": 48000,
	"elements": [
		{
			"kind": "audio",
			"name": "Song",
			"channel": 1,
			"final_start": 0,
			"final_end": 48,
			"audio": {"filepath": "/media/song.wav", "volume": 1}
		}
	]
}`

func seedProject(repo *fakeRepo) *store.Project {
	p := &store.Project{ID: "p1", Name: "Session", Timeline: []byte(exportTimeline)}
	repo.projects[p.ID] = p
	return p
}

func TestExportProject_Vegas(t *testing.T) {
	outDir := t.TempDir()
	repo := newFakeRepo()
	seedProject(repo)
	router := NewRouter(testConfig(repo))

	body := []byte(`{"format":"vegas","output_dir":"` + outDir + `"}`)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, authedRequest(http.MethodPost, "/projects/p1/export", body))

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rr.Code, rr.Body.String())
	}

	var resp ExportResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("response unmarshal error: %v", err)
	}
	if resp.Status != store.ExportStatusCompleted {
		t.Fatalf("export status = %s, want completed", resp.Status)
	}
	if !strings.HasSuffix(resp.OutputPath, "Session.txt") {
		t.Fatalf("output path = %s", resp.OutputPath)
	}

	content, err := os.ReadFile(resp.OutputPath)
	if err != nil {
		t.Fatalf("failed reading output file: %v", err)
	}
	if !strings.Contains(string(content), "/media/song.wav") {
		t.Fatalf("written file missing media path: %q", string(content))
	}

	if len(repo.exports) != 1 {
		t.Fatalf("exports recorded = %d, want 1", len(repo.exports))
	}
}

func TestExportProject_StatusUpdateFailureIsNotFatal(t *testing.T) {
	outDir := t.TempDir()
	repo := newFakeRepo()
	seedProject(repo)
	repo.failStatusUpdate = true
	router := NewRouter(testConfig(repo))

	body := []byte(`{"format":"vegas","output_dir":"` + outDir + `"}`)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, authedRequest(http.MethodPost, "/projects/p1/export", body))

	// The file was written, so a failed history update must not turn the
	// whole export into an error response.
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rr.Code, rr.Body.String())
	}

	var resp ExportResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("response unmarshal error: %v", err)
	}
	if resp.Status != store.ExportStatusCompleted {
		t.Fatalf("export status = %s, want completed", resp.Status)
	}
	if _, err := os.Stat(resp.OutputPath); err != nil {
		t.Fatalf("output file missing: %v", err)
	}
}

func TestExportProject_BadFormat(t *testing.T) {
	repo := newFakeRepo()
	seedProject(repo)
	router := NewRouter(testConfig(repo))

	body := []byte(`{"format":"protools","output_dir":"` + t.TempDir() + `"}`)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, authedRequest(http.MethodPost, "/projects/p1/export", body))

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusBadRequest)
	}
}

func TestExportProject_BadOutputDir(t *testing.T) {
	repo := newFakeRepo()
	seedProject(repo)
	router := NewRouter(testConfig(repo))

	body := []byte(`{"format":"vegas","output_dir":"/definitely/not/here"}`)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, authedRequest(http.MethodPost, "/projects/p1/export", body))

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusBadRequest)
	}
}

func TestArchiveThenImport_RoundTrip(t *testing.T) {
	repo := newFakeRepo()
	seedProject(repo)
	router := NewRouter(testConfig(repo))

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, authedRequest(http.MethodGet, "/projects/p1/archive", nil))
	if rr.Code != http.StatusOK {
		t.Fatalf("archive status = %d", rr.Code)
	}
	if ct := rr.Header().Get("Content-Type"); ct != "application/xml" {
		t.Fatalf("content type = %s", ct)
	}
	xmlDoc := rr.Body.String()

	req := ImportRequest{Archive: xmlDoc}
	body, _ := json.Marshal(req)
	rr = httptest.NewRecorder()
	router.ServeHTTP(rr, authedRequest(http.MethodPost, "/import", body))
	if rr.Code != http.StatusCreated {
		t.Fatalf("import status = %d, body %s", rr.Code, rr.Body.String())
	}

	var resp ImportResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("response unmarshal error: %v", err)
	}
	if resp.ProjectID == "" || len(resp.Report) != 0 {
		t.Fatalf("import = %+v", resp)
	}

	imported := repo.projects[resp.ProjectID]
	if imported == nil || imported.Name != "Session" {
		t.Fatalf("imported project = %+v", imported)
	}
}

func TestImportIntoProject_Append(t *testing.T) {
	repo := newFakeRepo()
	seedProject(repo)
	router := NewRouter(testConfig(repo))

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, authedRequest(http.MethodGet, "/projects/p1/archive", nil))
	xmlDoc := rr.Body.String()

	body, _ := json.Marshal(ImportRequest{Archive: xmlDoc, Mode: "append", ChannelOffset: 1})
	rr = httptest.NewRecorder()
	router.ServeHTTP(rr, authedRequest(http.MethodPost, "/projects/p1/import", body))
	if rr.Code != http.StatusOK {
		t.Fatalf("import status = %d, body %s", rr.Code, rr.Body.String())
	}

	var stored struct {
		Elements []struct {
			Channel int `json:"channel"`
		} `json:"elements"`
	}
	if err := json.Unmarshal(repo.projects["p1"].Timeline, &stored); err != nil {
		t.Fatalf("stored timeline unmarshal error: %v", err)
	}
	if len(stored.Elements) != 2 {
		t.Fatalf("elements = %d, want original + appended", len(stored.Elements))
	}
	if stored.Elements[1].Channel != 2 {
		t.Fatalf("appended channel = %d, want 2", stored.Elements[1].Channel)
	}
}

func TestImport_BadArchive(t *testing.T) {
	repo := newFakeRepo()
	router := NewRouter(testConfig(repo))

	body, _ := json.Marshal(ImportRequest{Archive: "<timeline"})
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, authedRequest(http.MethodPost, "/import", body))

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusBadRequest)
	}
}
