package search

import (
	"context"
	"errors"

	common_models "go-procure/internal/common/models"

	"github.com/gofiber/fiber/v2"
)

type SearchController struct {
	SearchService SearchService
}

func NewSearchController(searchService SearchService) *SearchController {
	return &SearchController{SearchService: searchService}
}

type searchFn func(ctx context.Context, query string, page, limit int64) ([]SearchRow, int64, error)

func (ctrl *SearchController) respond(c *fiber.Ctx, search searchFn, defaultLimit int64) error {
	query := c.Query("q")
	page := int64(c.QueryInt("page", 1))
	limit := int64(c.QueryInt("limit", int(defaultLimit)))

	rows, total, err := search(c.UserContext(), query, page, limit)
	if errors.Is(err, ErrNoSuppliers) {
		return c.Status(fiber.StatusNotFound).JSON(common_models.Envelope{
			Code:    404,
			Error:   true,
			Message: "No suppliers found with the given name",
			Data:    []SearchRow{},
		})
	}
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(common_models.Envelope{
			Code: 500, Error: true, Message: "Internal server error",
		})
	}

	pagination := common_models.NewPagination(total, page, limit, len(rows))
	return c.JSON(common_models.Envelope{
		Code:       200,
		Pagination: &pagination,
		Data:       rows,
	})
}

// GlobalSearch godoc
// @Summary Search products by name, item code, category or subcategory
// @Tags search
// @Produce json
// @Param q query string false "Search term"
// @Param page query int false "Page"
// @Param limit query int false "Page size"
// @Success 200 {object} common_models.Envelope
// @Router /api/search [get]
func (ctrl *SearchController) GlobalSearch(c *fiber.Ctx) error {
	return ctrl.respond(c, ctrl.SearchService.Global, 10)
}

func (ctrl *SearchController) GetProductsByProductName(c *fiber.Ctx) error {
	return ctrl.respond(c, ctrl.SearchService.ByProductName, 10)
}

func (ctrl *SearchController) GetProductsByItemCode(c *fiber.Ctx) error {
	return ctrl.respond(c, ctrl.SearchService.ByItemCode, 10)
}

func (ctrl *SearchController) GetProductsByCategoryName(c *fiber.Ctx) error {
	return ctrl.respond(c, ctrl.SearchService.ByCategoryName, 10)
}

// Subcategory search serves picker widgets, so it defaults to a much larger
// page.
func (ctrl *SearchController) GetProductsBySubCategoryName(c *fiber.Ctx) error {
	return ctrl.respond(c, ctrl.SearchService.BySubCategoryName, 500)
}

func (ctrl *SearchController) GetProductsBySupplierName(c *fiber.Ctx) error {
	return ctrl.respond(c, ctrl.SearchService.BySupplierName, 10)
}
