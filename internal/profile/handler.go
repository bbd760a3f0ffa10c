package profile

import (
	"errors"
	"io"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/wichananm65/profile-registry/internal/image"
)

type Handler struct {
	service *Service
}

// profileRequest is the form payload, sent either as JSON or as
// multipart/form-data with the picture under "profilePicture".
type profileRequest struct {
	Name     string `json:"name" form:"name"`
	Email    string `json:"email" form:"email"`
	Phone    string `json:"phone" form:"phone"`
	DOB      string `json:"dob" form:"dob"`
	City     string `json:"city" form:"city"`
	District string `json:"district" form:"district"`
	Province string `json:"province" form:"province"`
	Country  string `json:"country" form:"country"`
	// Touched lists the fields the user has interacted with; only used by
	// the validate route.
	Touched []string `json:"touched" form:"touched"`
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterPublicRoutes(app fiber.Router) {
	app.Get("/api/v1/provinces", h.getProvinces)
	app.Get("/api/v1/profiles", h.getTable)
	app.Get("/api/v1/profiles/all", h.getAll)
	app.Get("/api/v1/profiles/session", h.getSession)
	app.Post("/api/v1/profiles/validate", h.validate)
	app.Post("/api/v1/profiles", h.submit)
	app.Post("/api/v1/profiles/:index/edit", h.beginEdit)
	app.Delete("/api/v1/profiles/:index", h.deleteProfile)
}

func (h *Handler) getProvinces(c *fiber.Ctx) error {
	return c.JSON(Provinces)
}

func (h *Handler) getTable(c *fiber.Ctx) error {
	state := NewTableState().
		WithRowsPerPage(c.QueryInt("rowsPerPage", DefaultRowsPerPage)).
		WithPage(c.QueryInt("page", 0))
	return c.JSON(ToTableResponse(h.service.Table(state)))
}

// getAll lists every profile in storage order.
func (h *Handler) getAll(c *fiber.Ctx) error {
	return c.JSON(h.service.List())
}

func (h *Handler) getSession(c *fiber.Ctx) error {
	target, position, editing := h.service.Editing()
	if !editing {
		return c.JSON(fiber.Map{"state": "idle"})
	}
	return c.JSON(fiber.Map{"state": "editing", "index": position, "profile": target})
}

func (h *Handler) validate(c *fiber.Ctx) error {
	candidate, touched, err := parseCandidate(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}

	errs := h.service.Validate(candidate)
	shown := errs
	if touched != nil {
		shown = errs.Touched(touched...)
	}
	return c.JSON(fiber.Map{"valid": len(errs) == 0, "errors": shown})
}

func (h *Handler) submit(c *fiber.Ctx) error {
	candidate, _, err := parseCandidate(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}

	result, err := h.service.Submit(c.UserContext(), candidate)
	if err != nil {
		var validationErr *ValidationError
		switch {
		case errors.As(err, &validationErr):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"message": "validation failed",
				"errors":  validationErr.Errors,
			})
		case errors.Is(err, ErrEmailExists):
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"message": "Email already exists"})
		case errors.Is(err, image.ErrInvalidImage):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"message": "validation failed",
				"errors":  Errors{"profilePicture": "Profile picture could not be read as an image"},
			})
		default:
			return err
		}
	}

	status := fiber.StatusCreated
	if result.Updated {
		status = fiber.StatusOK
	}
	return c.Status(status).JSON(fiber.Map{
		"message": result.Message,
		"profile": result.Profile,
	})
}

func (h *Handler) beginEdit(c *fiber.Ctx) error {
	index, err := c.ParamsInt("index")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid index"})
	}

	p, err := h.service.BeginEdit(index)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "profile not found"})
		}
		return err
	}
	return c.JSON(fiber.Map{"index": index, "profile": p})
}

func (h *Handler) deleteProfile(c *fiber.Ctx) error {
	index, err := c.ParamsInt("index")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid index"})
	}

	result, err := h.service.Delete(c.UserContext(), index)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"deleted": result.Deleted, "message": result.Message})
}

// parseCandidate reads the payload and, for multipart requests, the picture
// file. touched is nil when the client did not send the field.
func parseCandidate(c *fiber.Ctx) (Candidate, []string, error) {
	payload := new(profileRequest)
	if err := c.BodyParser(payload); err != nil {
		return Candidate{}, nil, err
	}

	candidate := Candidate{
		Name:     payload.Name,
		Email:    payload.Email,
		Phone:    payload.Phone,
		DOB:      payload.DOB,
		City:     payload.City,
		District: payload.District,
		Province: payload.Province,
		Country:  payload.Country,
	}

	if strings.HasPrefix(c.Get(fiber.HeaderContentType), fiber.MIMEMultipartForm) {
		if file, err := c.FormFile("profilePicture"); err == nil && file != nil {
			f, err := file.Open()
			if err != nil {
				return Candidate{}, nil, err
			}
			defer f.Close()
			data, err := io.ReadAll(f)
			if err != nil {
				return Candidate{}, nil, err
			}
			candidate.Picture = &Upload{
				Filename:    file.Filename,
				ContentType: file.Header.Get(fiber.HeaderContentType),
				Data:        data,
			}
		}
	}
	return candidate, payload.Touched, nil
}
