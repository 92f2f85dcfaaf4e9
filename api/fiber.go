package api

import (
	"log/slog"
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	render_controller "github.com/sunthewhat/easy-cert-render/api/controllers/render"
	"github.com/sunthewhat/easy-cert-render/api/handler"
	"github.com/sunthewhat/easy-cert-render/api/middleware"
	eventmodel "github.com/sunthewhat/easy-cert-render/api/model/eventModel"
	participantmodel "github.com/sunthewhat/easy-cert-render/api/model/participantModel"
	templatemodel "github.com/sunthewhat/easy-cert-render/api/model/templateModel"
	"github.com/sunthewhat/easy-cert-render/api/routes"
	"github.com/sunthewhat/easy-cert-render/common"
	"github.com/sunthewhat/easy-cert-render/common/util"
)

func InitFiber() {
	cfg := fiber.Config{
		AppName:       "easycert render",
		ErrorHandler:  handler.HandleError,
		Prefork:       false,
		StrictRouting: true,
		Network:       fiber.NetworkTCP,
		BodyLimit:     16 * 1024 * 1024,
		ReadTimeout:   30 * time.Second,
	}
	app := fiber.New(cfg)

	app.Use(logger.New())
	app.Use(middleware.Recover())
	app.Use(middleware.Cors())

	routes.Init(app, newRenderController())

	app.Use(handler.HandleNotFound)

	slog.Info("Starting server", "port", *common.Config.Port)
	err := app.Listen(*common.Config.Port)

	if err != nil {
		slog.Error("Failed to start server", "error", err)
		os.Exit(1)
	}
}

func newRenderController() *render_controller.RenderController {
	secure := true
	if common.Config.MinIoSecure != nil {
		secure = *common.Config.MinIoSecure
	}

	return render_controller.NewRenderController(
		common.Pipeline,
		templatemodel.NewTemplateRepository(common.Gorm),
		eventmodel.NewEventRepository(common.Gorm),
		participantmodel.NewParticipantRepository(common.Gorm, common.Mongo),
		util.NewMinIOStore(common.MinIOClient, *common.Config.MinIoEndpoint, *common.Config.BucketCertificate, secure),
		*common.Config.VerifyHost,
	)
}
