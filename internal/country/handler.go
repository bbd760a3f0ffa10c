package country

import "github.com/gofiber/fiber/v2"

type Handler struct {
	catalog *Catalog
}

func NewHandler(catalog *Catalog) *Handler {
	return &Handler{catalog: catalog}
}

func (h *Handler) RegisterPublicRoutes(app fiber.Router) {
	app.Get("/api/v1/countries", h.getCountries)
}

func (h *Handler) getCountries(c *fiber.Ctx) error {
	return c.JSON(h.catalog.Snapshot())
}
