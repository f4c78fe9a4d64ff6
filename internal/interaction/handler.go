package interaction

import (
	"github.com/gofiber/fiber/v2"

	"github.com/pattaradanai-k/product-recommend-backend/internal/product"
	"github.com/pattaradanai-k/product-recommend-backend/internal/user"
)

type Handler struct {
	service  *Service
	users    *user.Service
	products *product.Service
}

type feedbackRequest struct {
	UserID       int     `json:"user_id"`
	ProductID    int     `json:"product_id"`
	Rating       int     `json:"rating"`
	FeedbackText *string `json:"feedback_text,omitempty"`
}

func NewHandler(service *Service, users *user.Service, products *product.Service) *Handler {
	return &Handler{service: service, users: users, products: products}
}

func (h *Handler) RegisterProtectedRoutes(app *fiber.App) {
	app.Post("/products/feedback", h.submitFeedback)
}

func (h *Handler) submitFeedback(c *fiber.Ctx) error {
	if _, err := user.GetUserIDFromCtx(c); err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}

	payload := new(feedbackRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}

	// rating range is checked before any lookup so a bad request never
	// touches storage
	if payload.Rating < 1 || payload.Rating > 5 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "rating must be between 1 and 5"})
	}

	if _, err := h.products.GetByID(payload.ProductID); err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "product not found"})
	}
	if _, err := h.users.GetByID(payload.UserID); err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "user not found"})
	}

	created, err := h.service.SubmitFeedback(Feedback{
		UserID:       payload.UserID,
		ProductID:    payload.ProductID,
		Rating:       payload.Rating,
		FeedbackText: payload.FeedbackText,
	})
	if err != nil {
		if err == ErrInvalidRating {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "failed to submit feedback"})
	}

	return c.JSON(created)
}
