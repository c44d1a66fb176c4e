package product

import (
	"go-procure/internal/config"
	"go-procure/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

type ProductApi struct {
	ProductController *ProductController
	Config            *config.Config
}

func NewProductApi(productController *ProductController, config *config.Config) *ProductApi {
	return &ProductApi{
		ProductController: productController,
		Config:            config,
	}
}

func (api *ProductApi) Setup(app *fiber.App) {
	admin := app.Group("/api/admin/products", middleware.AuthMiddleware(api.Config.SkipAuth))

	admin.Post("/bulk-upload/:supplierId", api.ProductController.UploadBulkProducts)

	// Specific routes before /:id so they are not swallowed by the param.
	admin.Get("/search/q", api.ProductController.GetProductsByQuery)
	admin.Get("/category/:category", api.ProductController.GetProductsByCategory)
	admin.Get("/subcategory/:subcategory", api.ProductController.GetProductsBySubcategory)

	admin.Get("/categories", api.ProductController.GetAllCategories)
	admin.Get("/subcategories", api.ProductController.GetAllSubCategories)
	admin.Get("/subcategories/by/:categoryId", api.ProductController.GetSubcategoriesByCategory)

	admin.Post("/", api.ProductController.CreateProduct)
	admin.Get("/", api.ProductController.GetProducts)
	admin.Get("/:id", api.ProductController.GetProductById)
	admin.Put("/:id", api.ProductController.UpdateProduct)
	admin.Delete("/:id", api.ProductController.DeleteProduct)
}
