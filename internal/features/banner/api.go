package banner

import (
	"go-procure/internal/config"
	"go-procure/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

type BannerApi struct {
	BannerController *BannerController
	Config           *config.Config
}

func NewBannerApi(bannerController *BannerController, config *config.Config) *BannerApi {
	return &BannerApi{
		BannerController: bannerController,
		Config:           config,
	}
}

func (api *BannerApi) Setup(app *fiber.App) {
	home := app.Group("/api/home")
	home.Get("/", api.BannerController.GetAllData)
	home.Post("/banner", api.BannerController.CreateBanner)

	admin := home.Group("/admin/banner", middleware.AuthMiddleware(api.Config.SkipAuth))
	admin.Get("/", api.BannerController.GetBanners)
	admin.Get("/:id", api.BannerController.GetBannerById)
	admin.Put("/:id", api.BannerController.UpdateBanner)
	admin.Delete("/:id", api.BannerController.DeleteBanner)
}
