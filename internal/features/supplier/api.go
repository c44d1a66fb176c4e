package supplier

import (
	"go-procure/internal/config"
	"go-procure/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

type SupplierApi struct {
	SupplierController *SupplierController
	Config             *config.Config
}

func NewSupplierApi(supplierController *SupplierController, config *config.Config) *SupplierApi {
	return &SupplierApi{
		SupplierController: supplierController,
		Config:             config,
	}
}

func (api *SupplierApi) Setup(app *fiber.App) {
	admin := app.Group("/api/admin/suppliers", middleware.AuthMiddleware(api.Config.SkipAuth))
	api.register(admin)

	// Public mount, same handlers
	public := app.Group("/api/suppliers")
	api.register(public)
}

func (api *SupplierApi) register(group fiber.Router) {
	group.Get("/", api.SupplierController.GetAllSuppliers)
	group.Get("/search/name", api.SupplierController.GetSuppliersByName)
	group.Get("/search/q", api.SupplierController.GetSuppliersByQuery)
	group.Get("/name/logo", api.SupplierController.GetSuppliers)
	group.Post("/suppliers", api.SupplierController.InsertSupplier)
	group.Post("/", api.SupplierController.CreateSupplier)
	group.Get("/:id", api.SupplierController.GetSupplierById)
	group.Put("/:id", api.SupplierController.UpdateSupplier)
	group.Delete("/:id", api.SupplierController.DeleteSupplier)
}
