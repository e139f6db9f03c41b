package handler

import (
	"github.com/gofiber/fiber/v2"

	"pubmed-research-api/internal/models"
)

// ToolsHandler serves the operation catalog agent platforms import to learn
// the endpoints and their parameter schemas.
type ToolsHandler struct{}

func NewToolsHandler() *ToolsHandler {
	return &ToolsHandler{}
}

func (h *ToolsHandler) Register(r fiber.Router) {
	r.Get("/tools", h.tools)
}

func (h *ToolsHandler) tools(c *fiber.Ctx) error {
	return c.JSON(models.ToolsResponse{
		Success: true,
		Tools:   toolCatalog(),
	})
}

// toolCatalog mirrors the request schemas of the three operations. Keep it in
// sync with the models package validation rules.
func toolCatalog() []models.Tool {
	return []models.Tool{
		{
			Name:        "search_pubmed",
			Description: "Search PubMed for scientific publications using keywords, authors, or topics",
			Parameters: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"query": map[string]interface{}{
						"type":        "string",
						"description": "Search query for PubMed. Examples: 'cancer treatment', 'machine learning medicine'",
					},
					"max_results": map[string]interface{}{
						"type":        "integer",
						"description": "Maximum number of results to return",
						"default":     models.DefaultMaxResults,
						"minimum":     1,
						"maximum":     models.SearchMaxResults,
					},
					"sort": map[string]interface{}{
						"type":        "string",
						"description": "Sort order for results",
						"enum":        []string{"relevance", "pub_date", "author", "journal"},
						"default":     "relevance",
					},
					"date_range": map[string]interface{}{
						"type":        "string",
						"description": "Date range filter. Examples: '2020:2024', '2023', 'last_5_years', 'last_year'",
					},
				},
				"required": []string{"query"},
			},
		},
		{
			Name:        "get_publication_details",
			Description: "Get detailed information about a specific publication by PMID",
			Parameters: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"pmid": map[string]interface{}{
						"type":        "string",
						"description": "PubMed ID (PMID) of the publication",
					},
				},
				"required": []string{"pmid"},
			},
		},
		{
			Name:        "get_similar_articles",
			Description: "Find articles similar to a given publication",
			Parameters: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"pmid": map[string]interface{}{
						"type":        "string",
						"description": "PubMed ID of the reference publication",
					},
					"max_results": map[string]interface{}{
						"type":        "integer",
						"description": "Maximum number of similar articles to return",
						"default":     models.DefaultMaxResults,
						"minimum":     1,
						"maximum":     models.SimilarMaxResults,
					},
				},
				"required": []string{"pmid"},
			},
		},
	}
}
