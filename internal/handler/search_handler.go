package handler

import (
	"github.com/gofiber/fiber/v2"

	"pubmed-research-api/internal/models"
	"pubmed-research-api/internal/service"
)

// SearchHandler wires HTTP → ResearchService for publication search.
type SearchHandler struct {
	svc service.ResearchService
}

func NewSearchHandler(svc service.ResearchService) *SearchHandler {
	return &SearchHandler{svc: svc}
}

// Register mounts the /search endpoint on the supplied router.
func (h *SearchHandler) Register(r fiber.Router) {
	r.Post("/search", h.search)
}

// search handles POST /search  { "query": "...", "max_results": 10 }
func (h *SearchHandler) search(c *fiber.Ctx) error {
	var req models.SearchRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid JSON body")
	}
	if err := req.Validate(); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	data, err := h.svc.Search(c.UserContext(), req)
	return respond(c, data, err, "Search failed")
}
