package render_controller

import (
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/sunthewhat/easy-cert-render/common/util"
	"github.com/sunthewhat/easy-cert-render/type/payload"
	"github.com/sunthewhat/easy-cert-render/type/response"
)

// Document renders every context as one page of a single PDF.
func (ctrl *RenderController) Document(c *fiber.Ctx) error {
	var body payload.DocumentRenderPayload
	if err := c.BodyParser(&body); err != nil {
		slog.Warn("Render Document invalid request body", "error", err)
		return response.SendFailed(c, "Invalid request body")
	}

	if err := util.ValidateStruct(body); err != nil {
		return response.SendFailed(c, "Invalid request", util.GetValidationErrors(err))
	}

	result, err := ctrl.pipeline.GenerateDocument(c.UserContext(), body.Template, body.Contexts)
	if err != nil {
		return sendRenderError(c, err)
	}

	return sendArtifact(c, result, "certificates")
}
