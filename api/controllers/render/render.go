package render_controller

import (
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/sunthewhat/easy-cert-render/common/util"
	"github.com/sunthewhat/easy-cert-render/internal/renderer"
	"github.com/sunthewhat/easy-cert-render/type/payload"
	"github.com/sunthewhat/easy-cert-render/type/response"
)

func (ctrl *RenderController) Render(c *fiber.Ctx) error {
	var body payload.RenderPayload
	if err := c.BodyParser(&body); err != nil {
		slog.Warn("Render Invalid request body", "error", err)
		return response.SendFailed(c, "Invalid request body")
	}

	if err := util.ValidateStruct(body); err != nil {
		return response.SendFailed(c, "Invalid request", util.GetValidationErrors(err))
	}

	priority, err := ctrl.priority(body.Backends)
	if err != nil {
		return response.SendFailed(c, err.Error())
	}

	var result *renderer.RenderResult
	if priority == nil {
		result, err = ctrl.pipeline.Generate(c.UserContext(), body.Template, body.Context)
	} else {
		result, err = ctrl.pipeline.GenerateWith(c.UserContext(), body.Template, body.Context, priority)
	}
	if err != nil {
		return sendRenderError(c, err)
	}

	return sendArtifact(c, result, "certificate")
}

// priority resolves a per-request backend override against the configured
// backends. An empty override means the configured order.
func (ctrl *RenderController) priority(names []string) ([]renderer.Backend, error) {
	if len(names) == 0 {
		return nil, nil
	}

	backends := make([]renderer.Backend, 0, len(names))
	for _, name := range names {
		backend, ok := ctrl.pipeline.Backend(name)
		if !ok {
			return nil, fmt.Errorf("backend %s is not configured", name)
		}
		backends = append(backends, backend)
	}
	return backends, nil
}

func sendRenderError(c *fiber.Ctx, err error) error {
	var configErr *renderer.ConfigInvalidError
	if errors.As(err, &configErr) {
		return response.SendFailed(c, "Invalid template config", configErr.Problems)
	}

	var exhausted *renderer.ChainExhaustedError
	if errors.As(err, &exhausted) {
		return response.SendBadGateway(c, "All render backends failed", exhausted.Attempts)
	}

	if errors.Is(err, renderer.ErrChainExhausted) {
		return response.SendBadGateway(c, err.Error())
	}

	slog.Error("Render Unexpected error", "error", err)
	return response.SendInternalError(c, err)
}

func sendArtifact(c *fiber.Ctx, result *renderer.RenderResult, name string) error {
	c.Set(fiber.HeaderContentType, result.MimeType)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`inline; filename="%s.%s"`, name, extension(result.MimeType)))
	c.Set("X-Render-Backend", result.Backend)
	c.Set("X-Render-Attempts", strconv.Itoa(len(result.Attempts)))
	if len(result.Degradations) > 0 {
		elements := make([]string, len(result.Degradations))
		for i, d := range result.Degradations {
			elements[i] = d.Element
		}
		c.Set("X-Render-Degraded", strings.Join(elements, ","))
	}
	return c.Status(fiber.StatusOK).Send(result.Bytes)
}

func extension(mimeType string) string {
	switch mimeType {
	case renderer.MimeSVG:
		return "svg"
	case renderer.MimePDF:
		return "pdf"
	default:
		return "png"
	}
}
