package render_controller

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	participantmodel "github.com/sunthewhat/easy-cert-render/api/model/participantModel"
	templatemodel "github.com/sunthewhat/easy-cert-render/api/model/templateModel"
	"github.com/sunthewhat/easy-cert-render/common/util"
	"github.com/sunthewhat/easy-cert-render/internal/renderer"
	"github.com/sunthewhat/easy-cert-render/type/payload"
	"github.com/sunthewhat/easy-cert-render/type/response"
	"github.com/sunthewhat/easy-cert-render/type/shared/model"
)

// RenderEvent renders the stored template of an event for its participants,
// uploads the certificates and records the outcome on each participant.
func (ctrl *RenderController) RenderEvent(c *fiber.Ctx) error {
	eventId := c.Params("eventId")

	var body payload.EventRenderPayload
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&body); err != nil {
			slog.Warn("Render Event invalid request body", "error", err, "event_id", eventId)
			return response.SendFailed(c, "Invalid request body")
		}
	}

	if err := util.ValidateStruct(body); err != nil {
		return response.SendFailed(c, "Invalid request", util.GetValidationErrors(err))
	}

	event, err := ctrl.eventRepo.GetById(eventId)
	if err != nil {
		return response.SendInternalError(c, err)
	}
	if event == nil {
		return response.SendNotFound(c, "Event not found")
	}

	template, err := ctrl.templateRepo.GetByEventId(eventId)
	if err != nil {
		return response.SendInternalError(c, err)
	}
	if template == nil {
		return response.SendNotFound(c, "Template not found for event")
	}

	config, err := templatemodel.DecodeConfig(template)
	if err != nil {
		slog.Error("Render Event stored template unreadable", "error", err, "event_id", eventId)
		return response.SendInternalError(c, err)
	}
	if err := config.Validate(); err != nil {
		return sendRenderError(c, err)
	}

	participants, err := ctrl.participantRepo.GetParticipantsByEventId(eventId)
	if err != nil {
		return response.SendInternalError(c, err)
	}
	participants = selectParticipants(participants, body.ParticipantIDs)
	if len(participants) == 0 {
		return response.SendFailed(c, "No participants to render")
	}

	items := make([]renderer.BatchItem, len(participants))
	for i, participant := range participants {
		items[i] = renderer.BatchItem{
			ID:      participant.ID,
			Config:  ctrl.participantConfig(config, participant.ID),
			Context: renderContext(event, participant),
		}
	}

	runID := uuid.NewString()
	result := ctrl.pipeline.GenerateBatch(c.UserContext(), items)
	summary := ctrl.storeBatch(c.UserContext(), runID, util.SafeObjectName(event.ID), result, body.Archive)

	for _, artifact := range summary.Succeeded {
		if err := ctrl.participantRepo.UpdateRenderResult(artifact.ID, artifact.URL, artifact.Backend); err != nil {
			slog.Warn("Render Event failed to record result", "error", err, "participant_id", artifact.ID)
		}
	}
	for _, artifact := range summary.Failed {
		if err := ctrl.participantRepo.MarkRenderFailed(artifact.ID, artifact.Error); err != nil {
			slog.Warn("Render Event failed to record failure", "error", err, "participant_id", artifact.ID)
		}
	}

	slog.Info("Render Event completed",
		"event_id", eventId,
		"run_id", runID,
		"succeeded", len(summary.Succeeded),
		"failed", len(summary.Failed))

	return response.SendSuccess(c, "Event certificates rendered", summary)
}

// participantConfig points the QR code of a participant at its verification page
// unless the template carries its own QR text.
func (ctrl *RenderController) participantConfig(config renderer.TemplateConfig, participantId string) renderer.TemplateConfig {
	if config.IncludeQRCode && config.QRCodeText == "" && ctrl.verifyHost != "" {
		config.QRCodeText = fmt.Sprintf("%s/validate/result/%s", strings.TrimRight(ctrl.verifyHost, "/"), participantId)
	}
	return config
}

func renderContext(event *model.Event, participant *participantmodel.CombinedParticipant) renderer.RenderContext {
	return renderer.RenderContext{
		ParticipantID:  participant.ID,
		UserName:       participant.DisplayName(),
		EventName:      event.Name,
		EventDate:      event.Date,
		EventStartTime: event.StartTime,
		EventEndTime:   event.EndTime,
	}
}

func selectParticipants(participants []*participantmodel.CombinedParticipant, ids []string) []*participantmodel.CombinedParticipant {
	if len(ids) == 0 {
		return participants
	}

	wanted := make(map[string]bool, len(ids))
	for _, id := range ids {
		wanted[id] = true
	}

	selected := make([]*participantmodel.CombinedParticipant, 0, len(ids))
	for _, participant := range participants {
		if wanted[participant.ID] {
			selected = append(selected, participant)
		}
	}
	return selected
}

func (ctrl *RenderController) SaveTemplate(c *fiber.Ctx) error {
	eventId := c.Params("eventId")

	var body payload.SaveTemplatePayload
	if err := c.BodyParser(&body); err != nil {
		slog.Warn("Render SaveTemplate invalid request body", "error", err, "event_id", eventId)
		return response.SendFailed(c, "Invalid request body")
	}

	if err := util.ValidateStruct(body); err != nil {
		return response.SendFailed(c, "Invalid request", util.GetValidationErrors(err))
	}

	if err := body.Template.Validate(); err != nil {
		return sendRenderError(c, err)
	}

	event, err := ctrl.eventRepo.GetById(eventId)
	if err != nil {
		return response.SendInternalError(c, err)
	}
	if event == nil {
		return response.SendNotFound(c, "Event not found")
	}

	saved, err := ctrl.templateRepo.Save(eventId, body.Name, body.Template)
	if err != nil {
		return response.SendInternalError(c, err)
	}

	return response.SendSuccess(c, "Template saved", saved)
}

func (ctrl *RenderController) GetTemplate(c *fiber.Ctx) error {
	eventId := c.Params("eventId")

	template, err := ctrl.templateRepo.GetByEventId(eventId)
	if err != nil {
		return response.SendInternalError(c, err)
	}
	if template == nil {
		return response.SendNotFound(c, "Template not found for event")
	}

	config, err := templatemodel.DecodeConfig(template)
	if err != nil {
		return response.SendInternalError(c, err)
	}

	return response.SendSuccess(c, "Template fetched", config)
}
