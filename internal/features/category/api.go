package category

import (
	"go-procure/internal/config"
	"go-procure/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

type CategoryApi struct {
	CategoryController *CategoryController
	Config             *config.Config
}

func NewCategoryApi(categoryController *CategoryController, config *config.Config) *CategoryApi {
	return &CategoryApi{
		CategoryController: categoryController,
		Config:             config,
	}
}

func (api *CategoryApi) Setup(app *fiber.App) {
	admin := app.Group("/api/admin/cat", middleware.AuthMiddleware(api.Config.SkipAuth))
	api.register(admin)

	// Public mount, same handlers
	public := app.Group("/api/category")
	api.register(public)
}

func (api *CategoryApi) register(group fiber.Router) {
	group.Post("/categories", api.CategoryController.AddCategory)
	group.Post("/category", api.CategoryController.CreateCategory)
	group.Get("/categories", api.CategoryController.GetCategories)
	group.Get("/categories/:id", api.CategoryController.GetCategoryById)
	group.Put("/categories/:id", api.CategoryController.UpdateCategory)
	group.Put("/categories/:id/image", api.CategoryController.UpdateCategoryWithImage)
	group.Delete("/categories/:id", api.CategoryController.DeleteCategory)
	group.Get("/category", api.CategoryController.GetAllCategories)
	group.Get("/search", api.CategoryController.GetQueryCategories)
}
