package clienthistory

import (
	"go-procure/internal/config"
	"go-procure/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

type ClientHistoryApi struct {
	ClientHistoryController *ClientHistoryController
	Config                  *config.Config
}

func NewClientHistoryApi(clientHistoryController *ClientHistoryController, config *config.Config) *ClientHistoryApi {
	return &ClientHistoryApi{
		ClientHistoryController: clientHistoryController,
		Config:                  config,
	}
}

func (api *ClientHistoryApi) Setup(app *fiber.App) {
	admin := app.Group("/api/admin/clientHistory", middleware.AuthMiddleware(api.Config.SkipAuth))
	admin.Post("/add", api.ClientHistoryController.AddClientHistory)
	admin.Get("/:clientId", api.ClientHistoryController.GetClientHistory)
}
