package system

import (
	"go-procure/internal/config"

	"github.com/gofiber/fiber/v2"
)

type StaticApi struct {
	config *config.Config
}

func NewStaticApi(cfg *config.Config) *StaticApi {
	return &StaticApi{config: cfg}
}

// Setup serves the uploaded images (logos, category images, banners) at the
// same public path the stored URLs point at.
func (h *StaticApi) Setup(app *fiber.App) {
	app.Static("/images", h.config.ImagePath)
}
