package image

import (
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"
)

// Handler serves stored pictures.
type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterPublicRoutes(app fiber.Router) {
	app.Get("/api/v1/images/:id", h.getImage)
	app.Get("/api/v1/images/:id/thumbnail", h.getThumbnail)
}

func (h *Handler) getImage(c *fiber.Ctx) error {
	data, err := h.service.Open(c.UserContext(), c.Params("id"))
	if err != nil {
		return h.fail(c, err)
	}
	c.Set(fiber.HeaderContentType, http.DetectContentType(data))
	c.Set(fiber.HeaderCacheControl, "public, max-age=86400, immutable")
	return c.Send(data)
}

func (h *Handler) getThumbnail(c *fiber.Ctx) error {
	data, err := h.service.Thumbnail(c.UserContext(), c.Params("id"))
	if err != nil {
		return h.fail(c, err)
	}
	c.Set(fiber.HeaderContentType, "image/png")
	return c.Send(data)
}

func (h *Handler) fail(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "image not found"})
	case errors.Is(err, ErrInvalidImage):
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{"message": err.Error()})
	default:
		return err
	}
}
