package handler

import (
	"github.com/gofiber/fiber/v2"

	"pubmed-research-api/internal/models"
	"pubmed-research-api/internal/service"
)

// PublicationHandler wires HTTP → ResearchService for single-record lookups.
type PublicationHandler struct {
	svc service.ResearchService
}

func NewPublicationHandler(svc service.ResearchService) *PublicationHandler {
	return &PublicationHandler{svc: svc}
}

// Register mounts the /publication endpoint on the supplied router.
func (h *PublicationHandler) Register(r fiber.Router) {
	r.Post("/publication", h.publication)
}

// publication handles POST /publication  { "pmid": "35000000" }
func (h *PublicationHandler) publication(c *fiber.Ctx) error {
	var req models.PublicationRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid JSON body")
	}
	if err := req.Validate(); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	data, err := h.svc.PublicationDetails(c.UserContext(), req.PMID)
	return respond(c, data, err, "Failed to get publication details")
}
