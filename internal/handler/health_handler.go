package handler

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"pubmed-research-api/internal/models"
)

// HealthHandler serves the liveness probe and the root identity endpoint.
// Both are static: the probe carries no dependency on upstream reachability.
type HealthHandler struct{}

func NewHealthHandler() *HealthHandler {
	return &HealthHandler{}
}

func (h *HealthHandler) Register(r fiber.Router) {
	r.Get("/", h.root)
	r.Get("/health", h.health)
}

func (h *HealthHandler) health(c *fiber.Ctx) error {
	return c.JSON(models.Health{
		Status:    "healthy",
		Service:   ServiceName,
		Version:   ServiceVersion,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
}

func (h *HealthHandler) root(c *fiber.Ctx) error {
	return c.JSON(models.APIInfo{
		Name:        ServiceName,
		Version:     ServiceVersion,
		Description: "REST API for PubMed scientific publications",
		Health:      "/health",
		Tools:       "/tools",
	})
}
