package routes

import (
	"github.com/gofiber/fiber/v2"
	render_controller "github.com/sunthewhat/easy-cert-render/api/controllers/render"
)

func Init(router fiber.Router, renderCtrl *render_controller.RenderController) {
	api := router.Group("api")

	renderRoutes(api, renderCtrl)
	eventRoutes(api, renderCtrl)
}
