package handler

import (
	"github.com/gofiber/fiber/v2"

	"pubmed-research-api/internal/models"
	"pubmed-research-api/internal/service"
)

// SimilarHandler wires HTTP → ResearchService for related-article lookups.
type SimilarHandler struct {
	svc service.ResearchService
}

func NewSimilarHandler(svc service.ResearchService) *SimilarHandler {
	return &SimilarHandler{svc: svc}
}

// Register mounts the /similar endpoint on the supplied router.
func (h *SimilarHandler) Register(r fiber.Router) {
	r.Post("/similar", h.similar)
}

// similar handles POST /similar  { "pmid": "35000000", "max_results": 10 }
func (h *SimilarHandler) similar(c *fiber.Ctx) error {
	var req models.SimilarRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid JSON body")
	}
	if err := req.Validate(); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	data, err := h.svc.SimilarArticles(c.UserContext(), req)
	return respond(c, data, err, "Failed to get similar articles")
}
