package search

import (
	"github.com/gofiber/fiber/v2"
)

type SearchApi struct {
	SearchController *SearchController
}

func NewSearchApi(searchController *SearchController) *SearchApi {
	return &SearchApi{SearchController: searchController}
}

func (api *SearchApi) Setup(app *fiber.App) {
	group := app.Group("/api")
	group.Get("/search", api.SearchController.GlobalSearch)
	group.Get("/products/search", api.SearchController.GetProductsByProductName)
	group.Get("/itemcode/search", api.SearchController.GetProductsByItemCode)
	group.Get("/category/search", api.SearchController.GetProductsByCategoryName)
	group.Get("/subcategory/search", api.SearchController.GetProductsBySubCategoryName)
	group.Get("/supplier/search", api.SearchController.GetProductsBySupplierName)
}
