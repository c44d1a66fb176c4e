package client

import (
	"errors"

	common_models "go-procure/internal/common/models"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type ClientController struct {
	ClientService ClientService
}

func NewClientController(clientService ClientService) *ClientController {
	return &ClientController{ClientService: clientService}
}

type clientRequest struct {
	Name        string `json:"name"`
	CompanyName string `json:"companyName"`
	PhoneNo     string `json:"phoneNo"`
	Email       string `json:"email"`
	Product     string `json:"product"`
	SubCategory string `json:"subCategory"`
	Supplier    string `json:"supplier"`
}

func envelopeError(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(common_models.Envelope{
		Code:    status,
		Error:   true,
		Message: message,
	})
}

// GetAllClients godoc
// @Summary List clients with pagination, search and populated references
// @Tags clients
// @Produce json
// @Param page query int false "Page"
// @Param limit query int false "Page size"
// @Param search query string false "Name, company, email or phone filter"
// @Success 200 {object} common_models.Envelope
// @Router /api/admin/clients [get]
func (ctrl *ClientController) GetAllClients(c *fiber.Ctx) error {
	page := int64(c.QueryInt("page", 1))
	limit := int64(c.QueryInt("limit", 10))
	search := c.Query("search")

	clients, total, err := ctrl.ClientService.List(c.UserContext(), search, page, limit)
	if err != nil {
		return envelopeError(c, fiber.StatusInternalServerError, "Error fetching clients: "+err.Error())
	}

	pagination := common_models.NewPagination(total, page, limit, len(clients))
	return c.JSON(common_models.Envelope{
		Code:       200,
		Message:    "Clients fetched successfully",
		Pagination: &pagination,
		Data:       fiber.Map{"clients": clients},
	})
}

func (ctrl *ClientController) GetClientById(c *fiber.Ctx) error {
	id, err := primitive.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return envelopeError(c, fiber.StatusNotFound, "Client not found")
	}

	client, err := ctrl.ClientService.Get(c.UserContext(), id)
	if errors.Is(err, ErrNotFound) {
		return envelopeError(c, fiber.StatusNotFound, "Client not found")
	}
	if err != nil {
		return envelopeError(c, fiber.StatusInternalServerError, "Error fetching client: "+err.Error())
	}

	return c.JSON(common_models.Envelope{
		Code:    200,
		Message: "Client fetched successfully",
		Data:    fiber.Map{"client": client},
	})
}

func (ctrl *ClientController) CreateClient(c *fiber.Ctx) error {
	var req clientRequest
	if err := c.BodyParser(&req); err != nil {
		return envelopeError(c, fiber.StatusBadRequest, "Invalid request body")
	}

	input, err := req.toInput()
	if err != nil {
		return envelopeError(c, fiber.StatusBadRequest, err.Error())
	}

	client, err := ctrl.ClientService.Create(c.UserContext(), input)
	if err != nil {
		return ctrl.serviceError(c, err, "Error creating client: ")
	}

	return c.Status(fiber.StatusCreated).JSON(common_models.Envelope{
		Code:    201,
		Message: "Client created successfully",
		Data:    fiber.Map{"client": client},
	})
}

func (ctrl *ClientController) UpdateClient(c *fiber.Ctx) error {
	id, err := primitive.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return envelopeError(c, fiber.StatusNotFound, "Client not found")
	}

	var req clientRequest
	if err := c.BodyParser(&req); err != nil {
		return envelopeError(c, fiber.StatusBadRequest, "Invalid request body")
	}

	input, err := req.toInput()
	if err != nil {
		return envelopeError(c, fiber.StatusBadRequest, err.Error())
	}

	client, err := ctrl.ClientService.Update(c.UserContext(), id, input)
	if err != nil {
		return ctrl.serviceError(c, err, "Error updating client: ")
	}

	return c.JSON(common_models.Envelope{
		Code:    200,
		Message: "Client updated successfully",
		Data:    fiber.Map{"client": client},
	})
}

func (ctrl *ClientController) DeleteClient(c *fiber.Ctx) error {
	id, err := primitive.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return envelopeError(c, fiber.StatusNotFound, "Client not found")
	}

	if err := ctrl.ClientService.Delete(c.UserContext(), id); err != nil {
		if errors.Is(err, ErrNotFound) {
			return envelopeError(c, fiber.StatusNotFound, "Client not found")
		}
		return envelopeError(c, fiber.StatusInternalServerError, "Error deleting client: "+err.Error())
	}

	return c.JSON(common_models.Envelope{
		Code:    200,
		Message: "Client deleted successfully",
	})
}

func (ctrl *ClientController) serviceError(c *fiber.Ctx, err error, prefix string) error {
	switch {
	case errors.Is(err, ErrNotFound):
		return envelopeError(c, fiber.StatusNotFound, "Client not found")
	case errors.Is(err, ErrMissingFields):
		return envelopeError(c, fiber.StatusBadRequest, "All fields (name, companyName, phoneNo, email) are required")
	case errors.Is(err, ErrBadEmail):
		return envelopeError(c, fiber.StatusBadRequest, "Invalid email format")
	case errors.Is(err, ErrEmailExists):
		return envelopeError(c, fiber.StatusConflict, "Client with this email already exists")
	case errors.Is(err, ErrBadProduct):
		return envelopeError(c, fiber.StatusNotFound, "Invalid Product ID")
	case errors.Is(err, ErrBadSubCategory):
		return envelopeError(c, fiber.StatusNotFound, "Invalid SubCategory ID")
	case errors.Is(err, ErrBadSupplier):
		return envelopeError(c, fiber.StatusNotFound, "Invalid Supplier ID")
	default:
		return envelopeError(c, fiber.StatusInternalServerError, prefix+err.Error())
	}
}

func (req *clientRequest) toInput() (ClientInput, error) {
	input := ClientInput{
		Name:        req.Name,
		CompanyName: req.CompanyName,
		PhoneNo:     req.PhoneNo,
		Email:       req.Email,
	}

	parse := func(hex, label string) (*primitive.ObjectID, error) {
		if hex == "" {
			return nil, nil
		}
		id, err := primitive.ObjectIDFromHex(hex)
		if err != nil {
			return nil, errors.New("Invalid " + label + " ID")
		}
		return &id, nil
	}

	var err error
	if input.Product, err = parse(req.Product, "product"); err != nil {
		return input, err
	}
	if input.SubCategory, err = parse(req.SubCategory, "subCategory"); err != nil {
		return input, err
	}
	if input.Supplier, err = parse(req.Supplier, "supplier"); err != nil {
		return input, err
	}
	return input, nil
}
