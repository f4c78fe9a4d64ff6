package category

import (
	"github.com/gofiber/fiber/v2"
)

type Handler struct {
	service *Service
}

type createRequest struct {
	Name     string `json:"name"`
	ParentID *int   `json:"parent_category_id,omitempty"`
}

func NewHandler(s *Service) *Handler {
	return &Handler{service: s}
}

func (h *Handler) RegisterPublicRoutes(app *fiber.App) {
	app.Get("/categories", h.listCategories)
}

func (h *Handler) RegisterProtectedRoutes(app *fiber.App) {
	app.Post("/categories", h.createCategory)
}

func (h *Handler) listCategories(c *fiber.Ctx) error {
	items, err := h.service.List()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "failed to list categories"})
	}
	return c.JSON(items)
}

func (h *Handler) createCategory(c *fiber.Ctx) error {
	payload := new(createRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}

	created, err := h.service.Create(Category{Name: payload.Name, ParentID: payload.ParentID})
	if err != nil {
		switch err {
		case ErrParentNotFound:
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "parent category not found"})
		case ErrCyclicParent:
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "category parent chain contains a cycle"})
		default:
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
		}
	}

	return c.Status(fiber.StatusCreated).JSON(created)
}
