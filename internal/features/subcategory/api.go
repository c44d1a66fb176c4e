package subcategory

import (
	"go-procure/internal/config"
	"go-procure/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

type SubCategoryApi struct {
	SubCategoryController *SubCategoryController
	Config                *config.Config
}

func NewSubCategoryApi(subCategoryController *SubCategoryController, config *config.Config) *SubCategoryApi {
	return &SubCategoryApi{
		SubCategoryController: subCategoryController,
		Config:                config,
	}
}

func (api *SubCategoryApi) Setup(app *fiber.App) {
	admin := app.Group("/api/admin/sub", middleware.AuthMiddleware(api.Config.SkipAuth))
	admin.Post("/categories/:categoryId/subcategories", api.SubCategoryController.AddSubcategory)
	admin.Get("/categories/:categoryId/subcategories", api.SubCategoryController.GetSubcategoriesByCategory)
	admin.Get("/subcategories", api.SubCategoryController.GetAllSubcategories)
	admin.Put("/subcategories/:subcategoryId", api.SubCategoryController.UpdateSubcategory)
	admin.Delete("/subcategories/:subcategoryId", api.SubCategoryController.DeleteSubcategory)
}
