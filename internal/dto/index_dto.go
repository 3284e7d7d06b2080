package dto

import (
	"time"

	"github.com/google/uuid"
)

type IndexStatusResponse struct {
	Ready      bool       `json:"ready"`
	Generation *uuid.UUID `json:"generation,omitempty"`
	Backend    string     `json:"backend,omitempty"`
	Documents  int        `json:"documents"`
	Chunks     int        `json:"chunks"`
	BuiltAt    *time.Time `json:"built_at,omitempty"`
}

type RebuildIndexResponse struct {
	JobId   uuid.UUID `json:"job_id"`
	RootDir string    `json:"root_dir"`
}

// RebuildIndexMessage is the payload queued on the REBUILD_INDEX topic. It
// carries no path: queued rebuilds always read the configured corpus root.
type RebuildIndexMessage struct {
	JobId uuid.UUID `json:"job_id"`
}

type ResolveNavigationRequest struct {
	Text string `query:"text" validate:"required,max=1000"`
}

type ResolveNavigationResponse struct {
	Resolved   bool   `json:"resolved"`
	URL        string `json:"url,omitempty"`
	PageName   string `json:"page_name,omitempty"`
	University string `json:"university,omitempty"`
}
