package clienthistory

import (
	"go-procure/pkg/utils"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type ClientHistoryController struct {
	HistoryRepo ClientHistoryRepository
}

func NewClientHistoryController(historyRepo ClientHistoryRepository) *ClientHistoryController {
	return &ClientHistoryController{HistoryRepo: historyRepo}
}

type addHistoryRequest struct {
	ClientID      string `json:"clientId"`
	EnquiryStatus string `json:"enquiryStatus"`
}

func (ctrl *ClientHistoryController) AddClientHistory(c *fiber.Ctx) error {
	var req addHistoryRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid request body"})
	}

	clientID, err := primitive.ObjectIDFromHex(req.ClientID)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid clientId"})
	}
	if !ValidStatus(req.EnquiryStatus) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "enquiryStatus must be one of: Pending, In Progress, Completed, Cancelled",
		})
	}

	history := &ClientHistory{ClientID: clientID, EnquiryStatus: req.EnquiryStatus}
	if err := ctrl.HistoryRepo.Create(c.UserContext(), history); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Error adding client history", "error": err.Error()})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Client history entry added successfully",
		"history": history,
	})
}

func (ctrl *ClientHistoryController) GetClientHistory(c *fiber.Ctx) error {
	clientID, err := primitive.ObjectIDFromHex(c.Params("clientId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid clientId"})
	}

	history, err := ctrl.HistoryRepo.FindByClient(c.UserContext(), clientID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Error fetching client history", "error": err.Error()})
	}

	result := make([]fiber.Map, 0, len(history))
	for _, h := range history {
		result = append(result, fiber.Map{
			"_id":           h.ID,
			"clientId":      h.Client,
			"enquiryStatus": h.EnquiryStatus,
			"createdAt":     h.CreatedAt,
			"updatedAt":     h.UpdatedAt,
			"createdAtIST":  utils.FormatIST(h.CreatedAt),
			"updatedAtIST":  utils.FormatIST(h.UpdatedAt),
		})
	}

	return c.JSON(fiber.Map{
		"message": "Client history fetched successfully",
		"history": result,
	})
}
