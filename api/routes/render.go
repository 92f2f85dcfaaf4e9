package routes

import (
	"github.com/gofiber/fiber/v2"
	render_controller "github.com/sunthewhat/easy-cert-render/api/controllers/render"
)

func renderRoutes(api fiber.Router, ctrl *render_controller.RenderController) {
	renderGroup := api.Group("render")

	renderGroup.Get("backends", ctrl.Backends)
	renderGroup.Post("", ctrl.Render)
	renderGroup.Post("batch", ctrl.Batch)
	renderGroup.Post("document", ctrl.Document)
}

func eventRoutes(api fiber.Router, ctrl *render_controller.RenderController) {
	eventGroup := api.Group("event/:eventId")

	eventGroup.Get("template", ctrl.GetTemplate)
	eventGroup.Put("template", ctrl.SaveTemplate)
	eventGroup.Post("render", ctrl.RenderEvent)
}
