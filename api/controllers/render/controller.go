package render_controller

import (
	eventmodel "github.com/sunthewhat/easy-cert-render/api/model/eventModel"
	participantmodel "github.com/sunthewhat/easy-cert-render/api/model/participantModel"
	templatemodel "github.com/sunthewhat/easy-cert-render/api/model/templateModel"
	"github.com/sunthewhat/easy-cert-render/common/util"
	"github.com/sunthewhat/easy-cert-render/internal/renderer"
)

// RenderController handles certificate rendering HTTP requests
type RenderController struct {
	pipeline        *renderer.Pipeline
	templateRepo    templatemodel.ITemplateRepository
	eventRepo       eventmodel.IEventRepository
	participantRepo participantmodel.IParticipantRepository
	store           util.ArtifactStore
	verifyHost      string
}

// NewRenderController creates a new render controller with injected dependencies
func NewRenderController(
	pipeline *renderer.Pipeline,
	templateRepo templatemodel.ITemplateRepository,
	eventRepo eventmodel.IEventRepository,
	participantRepo participantmodel.IParticipantRepository,
	store util.ArtifactStore,
	verifyHost string,
) *RenderController {
	return &RenderController{
		pipeline:        pipeline,
		templateRepo:    templateRepo,
		eventRepo:       eventRepo,
		participantRepo: participantRepo,
		store:           store,
		verifyHost:      verifyHost,
	}
}
