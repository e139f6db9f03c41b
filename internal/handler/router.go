package handler

import (
	"github.com/gofiber/fiber/v2"

	"pubmed-research-api/internal/service"
)

// Service identity, shared by the health probe, the root endpoint and the
// Fiber app name.
const (
	ServiceName    = "PubMed Research API"
	ServiceVersion = "1.0.0"
)

// RegisterRoutes mounts every endpoint on the app.
func RegisterRoutes(app *fiber.App, researchSvc service.ResearchService) {
	NewSearchHandler(researchSvc).Register(app)
	NewPublicationHandler(researchSvc).Register(app)
	NewSimilarHandler(researchSvc).Register(app)
	NewToolsHandler().Register(app)
	NewHealthHandler().Register(app)
}
