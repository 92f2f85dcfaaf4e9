package payload

import "github.com/sunthewhat/easy-cert-render/internal/renderer"

// RenderPayload is the body of a single render. Template configs are checked
// by the pipeline, which reports every problem at once, so the struct
// validator skips them.
type RenderPayload struct {
	Template renderer.TemplateConfig `json:"template" validate:"-"`
	Context  renderer.RenderContext  `json:"context"`
	// Backends overrides the configured priority list for this request.
	Backends []string `json:"backends" validate:"omitempty,unique,dive,oneof=engine vector remote paginated"`
}

type BatchRenderItem struct {
	// ID names the stored artifact. Omitted IDs are generated.
	ID       string                  `json:"id" validate:"omitempty,max=128,excludesall=/\\"`
	Template renderer.TemplateConfig `json:"template" validate:"-"`
	Context  renderer.RenderContext  `json:"context"`
}

type BatchRenderPayload struct {
	Items   []BatchRenderItem `json:"items" validate:"required,min=1,max=500,dive"`
	Archive bool              `json:"archive"`
}

type DocumentRenderPayload struct {
	Template renderer.TemplateConfig  `json:"template" validate:"-"`
	Contexts []renderer.RenderContext `json:"contexts" validate:"required,min=1,max=500"`
}

type EventRenderPayload struct {
	// ParticipantIDs limits the run to these participants. Empty renders everyone.
	ParticipantIDs []string `json:"participantIds" validate:"omitempty,dive,required"`
	Archive        bool     `json:"archive"`
}

type SaveTemplatePayload struct {
	Name     string                  `json:"name" validate:"required,max=200"`
	Template renderer.TemplateConfig `json:"template" validate:"-"`
}
