package response

import "github.com/sunthewhat/easy-cert-render/internal/renderer"

type RenderedArtifact struct {
	ID           string                   `json:"id"`
	URL          string                   `json:"url"`
	Backend      string                   `json:"backend"`
	MimeType     string                   `json:"mimeType"`
	Attempts     []renderer.RenderAttempt `json:"attempts"`
	Degradations []renderer.Degradation   `json:"degradations,omitempty"`
}

type FailedArtifact struct {
	ID       string                   `json:"id"`
	Error    string                   `json:"error"`
	Problems []string                 `json:"problems,omitempty"`
	Attempts []renderer.RenderAttempt `json:"attempts,omitempty"`
}

type BatchSummary struct {
	BatchID    string             `json:"batchId"`
	Succeeded  []RenderedArtifact `json:"succeeded"`
	Failed     []FailedArtifact   `json:"failed"`
	ArchiveURL string             `json:"archiveUrl,omitempty"`
}

type BackendList struct {
	Configured []string `json:"configured"`
	Known      []string `json:"known"`
}
