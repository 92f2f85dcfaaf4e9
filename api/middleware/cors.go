package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/sunthewhat/easy-cert-render/common"
)

func Cors() fiber.Handler {
	return cors.New(cors.Config{
		AllowOrigins:  allowOrigins(common.Config.Cors),
		AllowMethods:  "GET,POST,PUT,OPTIONS",
		AllowHeaders:  "Origin, Content-Type, Accept",
		ExposeHeaders: "X-Render-Backend, X-Render-Attempts, Content-Disposition",
	})
}

func allowOrigins(origins []*string) string {
	var values []string
	for _, origin := range origins {
		if origin != nil && *origin != "" {
			values = append(values, *origin)
		}
	}
	if len(values) == 0 {
		return "*"
	}
	return strings.Join(values, ",")
}
