package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"pubmed-research-api/internal/models"
	"pubmed-research-api/internal/pubmed"
)

// ---- Upstream contract ------------------------------------------------------

// PubMedAPI is the slice of the E-utilities client the service depends on.
type PubMedAPI interface {
	// Search returns PMIDs matching term, at most limit of them.
	Search(ctx context.Context, term, sort string, limit int) ([]string, error)
	// Fetch retrieves full records for the given PMIDs.
	Fetch(ctx context.Context, pmids []string) ([]pubmed.Article, error)
	// Related returns PMIDs linked to pmid, the input excluded.
	Related(ctx context.Context, pmid string, limit int) ([]string, error)
}

// NoResultsError marks an upstream query that completed but matched nothing.
// Handlers map it to a failure envelope rather than a transport fault.
type NoResultsError struct {
	Message string
}

func (e *NoResultsError) Error() string { return e.Message }

// ---- Service interface + implementation ------------------------------------

// ResearchService runs the three PubMed operations and renders their results
// as markdown. Each call is a single upstream exchange with no retries.
type ResearchService interface {
	// Search finds publications matching the query and returns a numbered
	// markdown list.
	Search(ctx context.Context, req models.SearchRequest) (string, error)
	// PublicationDetails returns a structured markdown block for one PMID.
	PublicationDetails(ctx context.Context, pmid string) (string, error)
	// SimilarArticles returns a numbered markdown list of the articles
	// PubMed links to the given PMID.
	SimilarArticles(ctx context.Context, req models.SimilarRequest) (string, error)
}

type researchService struct {
	api PubMedAPI
	log *zap.Logger
}

// NewResearchService wires the upstream client and logger.
func NewResearchService(api PubMedAPI, log *zap.Logger) ResearchService {
	return &researchService{api: api, log: log}
}

// Search looks up PMIDs for the query, fetches their records and renders the
// publication list.
func (s *researchService) Search(ctx context.Context, req models.SearchRequest) (string, error) {
	term := buildTerm(req.Query, req.DateRange)
	limit := req.Limit()

	s.log.Info("searching publications",
		zap.String("term", term),
		zap.String("sort", req.SortOrder()),
		zap.Int("limit", limit),
	)

	ids, err := s.api.Search(ctx, term, req.SortOrder(), limit)
	if err != nil {
		s.log.Error("esearch failed", zap.String("term", term), zap.Error(err))
		return "", fmt.Errorf("esearch: %w", err)
	}
	if len(ids) == 0 {
		return "", &NoResultsError{Message: "No publications found for your query."}
	}
	if len(ids) > limit {
		ids = ids[:limit]
	}

	articles, err := s.api.Fetch(ctx, ids)
	if err != nil {
		s.log.Error("efetch failed", zap.Int("ids", len(ids)), zap.Error(err))
		return "", fmt.Errorf("efetch: %w", err)
	}
	if len(articles) > limit {
		articles = articles[:limit]
	}
	if len(articles) == 0 {
		return "", &NoResultsError{Message: "No valid publications found."}
	}

	s.log.Info("search complete", zap.Int("results", len(articles)))
	return formatPublicationList(articles), nil
}

// PublicationDetails fetches one record and renders the detail block.
func (s *researchService) PublicationDetails(ctx context.Context, pmid string) (string, error) {
	s.log.Info("fetching publication", zap.String("pmid", pmid))

	articles, err := s.api.Fetch(ctx, []string{pmid})
	if err != nil {
		s.log.Error("efetch failed", zap.String("pmid", pmid), zap.Error(err))
		return "", fmt.Errorf("efetch: %w", err)
	}
	if len(articles) == 0 {
		return "", &NoResultsError{Message: fmt.Sprintf("No publication found for PMID: %s", pmid)}
	}

	return formatPublicationDetail(articles[0]), nil
}

// SimilarArticles resolves the neighbor links for the PMID, fetches the
// linked records and renders them as a publication list.
func (s *researchService) SimilarArticles(ctx context.Context, req models.SimilarRequest) (string, error) {
	limit := req.Limit()

	s.log.Info("finding similar articles", zap.String("pmid", req.PMID), zap.Int("limit", limit))

	ids, err := s.api.Related(ctx, req.PMID, limit)
	if err != nil {
		s.log.Error("elink failed", zap.String("pmid", req.PMID), zap.Error(err))
		return "", fmt.Errorf("elink: %w", err)
	}
	if len(ids) == 0 {
		return "", &NoResultsError{Message: fmt.Sprintf("No similar articles found for PMID: %s", req.PMID)}
	}

	articles, err := s.api.Fetch(ctx, ids)
	if err != nil {
		s.log.Error("efetch failed", zap.Int("ids", len(ids)), zap.Error(err))
		return "", fmt.Errorf("efetch: %w", err)
	}
	if len(articles) > limit {
		articles = articles[:limit]
	}
	if len(articles) == 0 {
		return "", &NoResultsError{Message: fmt.Sprintf("No similar articles found for PMID: %s", req.PMID)}
	}

	s.log.Info("similar lookup complete", zap.String("pmid", req.PMID), zap.Int("results", len(articles)))
	return formatSimilarList(req.PMID, articles), nil
}

// buildTerm appends the publication-date filter to the query term.
func buildTerm(query, dateRange string) string {
	if dateRange == "" {
		return query
	}
	year := time.Now().Year()
	switch dateRange {
	case "last_year":
		return fmt.Sprintf("%s AND %d:%d[pdat]", query, year-1, year)
	case "last_5_years":
		return fmt.Sprintf("%s AND %d:%d[pdat]", query, year-5, year)
	}
	return fmt.Sprintf("%s AND %s[pdat]", query, dateRange)
}
