package store

import (
	"crypto/rand"
	"fmt"
	"time"
)

// Project is a stored timeline. The timeline itself is kept as a JSON
// document so the schema does not chase every timeline field.
type Project struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Timeline  []byte    `json:"-"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

const (
	ExportStatusPending   = "pending"
	ExportStatusRunning   = "running"
	ExportStatusCompleted = "completed"
	ExportStatusFailed    = "failed"
)

// Export records one export run of a project to an EDL file.
type Export struct {
	ID         string    `json:"id"`
	ProjectID  string    `json:"project_id"`
	Format     string    `json:"format"`
	OutputPath string    `json:"output_path"`
	Status     string    `json:"status"`
	Error      string    `json:"error,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

type ConfigEntry struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

func NewID() string {
	b := make([]byte, 16)
	rand.Read(b)
	return fmt.Sprintf("%x-%x-%x-%x-%x", b[0:4], b[4:6], b[6:8], b[8:10], b[10:])
}
