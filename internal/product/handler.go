package product

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/pattaradanai-k/product-recommend-backend/internal/user"
)

const (
	defaultSearchLimit = 20
	maxSearchLimit     = 100
)

// ViewRecorder upserts the (user, product) interaction when an authenticated
// user opens a product detail page.
type ViewRecorder interface {
	RecordView(userID, productID int) error
}

type Handler struct {
	service *Service
	views   ViewRecorder
}

func NewHandler(service *Service, views ViewRecorder) *Handler {
	return &Handler{service: service, views: views}
}

func (h *Handler) RegisterPublicRoutes(app *fiber.App) {
	app.Get("/products/search", h.search)
}

func (h *Handler) RegisterProtectedRoutes(app *fiber.App) {
	app.Get("/products/:id<[0-9]+>", h.getProduct)
}

func (h *Handler) search(c *fiber.Ctx) error {
	params := SearchParams{
		Query:    c.Query("query"),
		Category: c.Query("category"),
		SortBy:   c.Query("sort_by", SortRelevance),
		Limit:    defaultSearchLimit,
	}

	if params.Query == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "query is required"})
	}
	if !ValidSort(params.SortBy) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "sort_by must be one of relevance, price_asc, price_desc, rating"})
	}

	if v := c.Query("min_price"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid min_price"})
		}
		params.MinPrice = &f
	}
	if v := c.Query("max_price"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid max_price"})
		}
		params.MaxPrice = &f
	}
	if v := c.Query("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid limit"})
		}
		if n > maxSearchLimit {
			n = maxSearchLimit
		}
		params.Limit = n
	}
	if v := c.Query("offset"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid offset"})
		}
		params.Offset = n
	}

	items, err := h.service.Search(c.UserContext(), params)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "failed to search products"})
	}
	return c.JSON(items)
}

func (h *Handler) getProduct(c *fiber.Ctx) error {
	userID, err := user.GetUserIDFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}

	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid product id"})
	}

	p, err := h.service.GetByID(id)
	if err != nil {
		if err == ErrNotFound {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "product not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "failed to load product"})
	}

	// view tracking is best effort; a failed upsert never blocks the read
	if h.views != nil {
		_ = h.views.RecordView(userID, id)
	}

	return c.JSON(p)
}
