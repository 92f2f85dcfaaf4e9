package render_controller

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sunthewhat/easy-cert-render/internal/renderer"
	"github.com/sunthewhat/easy-cert-render/type/response"
)

func (ctrl *RenderController) Backends(c *fiber.Ctx) error {
	return response.SendSuccess(c, "Backends fetched", response.BackendList{
		Configured: ctrl.pipeline.Backends(),
		Known:      renderer.KnownBackends(),
	})
}
