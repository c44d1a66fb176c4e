package client

import (
	"go-procure/internal/config"
	"go-procure/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

type ClientApi struct {
	ClientController *ClientController
	Config           *config.Config
}

func NewClientApi(clientController *ClientController, config *config.Config) *ClientApi {
	return &ClientApi{
		ClientController: clientController,
		Config:           config,
	}
}

func (api *ClientApi) Setup(app *fiber.App) {
	admin := app.Group("/api/admin/clients", middleware.AuthMiddleware(api.Config.SkipAuth))
	admin.Get("/", api.ClientController.GetAllClients)
	admin.Post("/", api.ClientController.CreateClient)
	admin.Get("/:id", api.ClientController.GetClientById)
	admin.Put("/:id", api.ClientController.UpdateClient)
	admin.Delete("/:id", api.ClientController.DeleteClient)
}
