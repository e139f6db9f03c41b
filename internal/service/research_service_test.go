package service

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"pubmed-research-api/internal/models"
	"pubmed-research-api/internal/pubmed"
)

// fakeAPI implements PubMedAPI with pluggable behaviour and call counters.
type fakeAPI struct {
	searchFn  func(term, sort string, limit int) ([]string, error)
	fetchFn   func(pmids []string) ([]pubmed.Article, error)
	relatedFn func(pmid string, limit int) ([]string, error)

	searchCalls  int
	fetchCalls   int
	relatedCalls int
}

func (f *fakeAPI) Search(_ context.Context, term, sort string, limit int) ([]string, error) {
	f.searchCalls++
	if f.searchFn == nil {
		return nil, nil
	}
	return f.searchFn(term, sort, limit)
}

func (f *fakeAPI) Fetch(_ context.Context, pmids []string) ([]pubmed.Article, error) {
	f.fetchCalls++
	if f.fetchFn == nil {
		return nil, nil
	}
	return f.fetchFn(pmids)
}

func (f *fakeAPI) Related(_ context.Context, pmid string, limit int) ([]string, error) {
	f.relatedCalls++
	if f.relatedFn == nil {
		return nil, nil
	}
	return f.relatedFn(pmid, limit)
}

func newTestService(f *fakeAPI) ResearchService {
	return NewResearchService(f, zap.NewNop())
}

func intPtr(n int) *int { return &n }

func sampleArticle(pmid string) pubmed.Article {
	return pubmed.Article{
		PMID:    pmid,
		Title:   "Title " + pmid,
		Journal: "Journal " + pmid,
		Year:    "2022",
		Authors: []pubmed.Author{{LastName: "Smith", ForeName: "Jane"}},
		Abstract: []pubmed.AbstractSection{
			{Text: "Abstract " + pmid},
		},
	}
}

func TestSearchRendersList(t *testing.T) {
	var fetched []string
	f := &fakeAPI{
		searchFn: func(term, sort string, limit int) ([]string, error) {
			return []string{"101", "102"}, nil
		},
		fetchFn: func(pmids []string) ([]pubmed.Article, error) {
			fetched = pmids
			return []pubmed.Article{sampleArticle("101"), sampleArticle("102")}, nil
		},
	}

	out, err := newTestService(f).Search(context.Background(), models.SearchRequest{Query: "covid"})
	require.NoError(t, err)

	assert.Equal(t, []string{"101", "102"}, fetched)
	assert.Contains(t, out, "Found 2 publications:")
	assert.Contains(t, out, "**1. Title 101**")
	assert.Contains(t, out, "**2. Title 102**")
	assert.Contains(t, out, "https://pubmed.ncbi.nlm.nih.gov/101/")
}

func TestSearchPassesTermSortAndLimit(t *testing.T) {
	var gotTerm, gotSort string
	var gotLimit int
	f := &fakeAPI{
		searchFn: func(term, sort string, limit int) ([]string, error) {
			gotTerm, gotSort, gotLimit = term, sort, limit
			return []string{"1"}, nil
		},
		fetchFn: func(pmids []string) ([]pubmed.Article, error) {
			return []pubmed.Article{sampleArticle("1")}, nil
		},
	}

	req := models.SearchRequest{
		Query:      "crispr",
		MaxResults: intPtr(25),
		Sort:       "pub_date",
		DateRange:  "2020:2024",
	}
	_, err := newTestService(f).Search(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, "crispr AND 2020:2024[pdat]", gotTerm)
	assert.Equal(t, "pub_date", gotSort)
	assert.Equal(t, 25, gotLimit)
}

func TestSearchNoMatches(t *testing.T) {
	f := &fakeAPI{
		searchFn: func(term, sort string, limit int) ([]string, error) {
			return nil, nil
		},
	}

	_, err := newTestService(f).Search(context.Background(), models.SearchRequest{Query: "zzzz"})

	var nr *NoResultsError
	require.ErrorAs(t, err, &nr)
	assert.Equal(t, "No publications found for your query.", nr.Message)
	// No fetch when the search already came back empty.
	assert.Equal(t, 0, f.fetchCalls)
}

func TestSearchNoParseableRecords(t *testing.T) {
	f := &fakeAPI{
		searchFn: func(term, sort string, limit int) ([]string, error) {
			return []string{"1"}, nil
		},
		fetchFn: func(pmids []string) ([]pubmed.Article, error) {
			return nil, nil
		},
	}

	_, err := newTestService(f).Search(context.Background(), models.SearchRequest{Query: "covid"})

	var nr *NoResultsError
	require.ErrorAs(t, err, &nr)
	assert.Equal(t, "No valid publications found.", nr.Message)
}

func TestSearchTrimsToLimit(t *testing.T) {
	var fetched []string
	f := &fakeAPI{
		searchFn: func(term, sort string, limit int) ([]string, error) {
			// Upstream can return more IDs than asked for.
			return []string{"1", "2", "3", "4"}, nil
		},
		fetchFn: func(pmids []string) ([]pubmed.Article, error) {
			fetched = pmids
			return []pubmed.Article{sampleArticle("1"), sampleArticle("2")}, nil
		},
	}

	req := models.SearchRequest{Query: "covid", MaxResults: intPtr(2)}
	out, err := newTestService(f).Search(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, []string{"1", "2"}, fetched)
	assert.Contains(t, out, "Found 2 publications:")
}

func TestSearchUpstreamError(t *testing.T) {
	f := &fakeAPI{
		searchFn: func(term, sort string, limit int) ([]string, error) {
			return nil, errors.New("connection refused")
		},
	}

	_, err := newTestService(f).Search(context.Background(), models.SearchRequest{Query: "covid"})
	require.Error(t, err)

	var nr *NoResultsError
	assert.False(t, errors.As(err, &nr))
	assert.Contains(t, err.Error(), "esearch")
	assert.Contains(t, err.Error(), "connection refused")
}

func TestUpstreamFailureLogsOmitAPIKey(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // every call now fails to connect

	const key = "secret-api-key-123"
	client := pubmed.NewClient(pubmed.Options{
		BaseURL: srv.URL,
		APIKey:  key,
		Timeout: time.Second,
	})

	core, logs := observer.New(zap.DebugLevel)
	svc := NewResearchService(client, zap.New(core))

	_, err := svc.Search(context.Background(), models.SearchRequest{Query: "covid"})
	require.Error(t, err)
	assert.NotContains(t, err.Error(), key)

	// The key rides on every upstream call as a query parameter; no log
	// entry may carry it, in the message or in any field.
	entries := logs.All()
	require.NotEmpty(t, entries)
	for _, entry := range entries {
		assert.NotContains(t, entry.Message, key)
		for name, value := range entry.ContextMap() {
			assert.NotContains(t, fmt.Sprint(value), key, "field %q on %q", name, entry.Message)
		}
	}
}

func TestSearchFetchError(t *testing.T) {
	f := &fakeAPI{
		searchFn: func(term, sort string, limit int) ([]string, error) {
			return []string{"1"}, nil
		},
		fetchFn: func(pmids []string) ([]pubmed.Article, error) {
			return nil, errors.New("boom")
		},
	}

	_, err := newTestService(f).Search(context.Background(), models.SearchRequest{Query: "covid"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "efetch")
}

func TestPublicationDetails(t *testing.T) {
	var fetched []string
	f := &fakeAPI{
		fetchFn: func(pmids []string) ([]pubmed.Article, error) {
			fetched = pmids
			return []pubmed.Article{sampleArticle("12345")}, nil
		},
	}

	out, err := newTestService(f).PublicationDetails(context.Background(), "12345")
	require.NoError(t, err)

	assert.Equal(t, []string{"12345"}, fetched)
	assert.Contains(t, out, "**Publication Details for PMID: 12345**")
	assert.Contains(t, out, "**Title**: Title 12345")
}

func TestPublicationNotFound(t *testing.T) {
	f := &fakeAPI{
		fetchFn: func(pmids []string) ([]pubmed.Article, error) {
			return nil, nil
		},
	}

	_, err := newTestService(f).PublicationDetails(context.Background(), "999")

	var nr *NoResultsError
	require.ErrorAs(t, err, &nr)
	assert.Equal(t, "No publication found for PMID: 999", nr.Message)
}

func TestSimilarArticles(t *testing.T) {
	var gotPMID string
	var gotLimit int
	f := &fakeAPI{
		relatedFn: func(pmid string, limit int) ([]string, error) {
			gotPMID, gotLimit = pmid, limit
			return []string{"201", "202"}, nil
		},
		fetchFn: func(pmids []string) ([]pubmed.Article, error) {
			return []pubmed.Article{sampleArticle("201"), sampleArticle("202")}, nil
		},
	}

	req := models.SimilarRequest{PMID: "100", MaxResults: intPtr(5)}
	out, err := newTestService(f).SimilarArticles(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, "100", gotPMID)
	assert.Equal(t, 5, gotLimit)
	assert.Contains(t, out, "Found 2 similar articles for PMID 100:")
	assert.Contains(t, out, "**1. Title 201**")
}

func TestSimilarNoneFound(t *testing.T) {
	f := &fakeAPI{
		relatedFn: func(pmid string, limit int) ([]string, error) {
			return nil, nil
		},
	}

	_, err := newTestService(f).SimilarArticles(context.Background(), models.SimilarRequest{PMID: "100"})

	var nr *NoResultsError
	require.ErrorAs(t, err, &nr)
	assert.Equal(t, "No similar articles found for PMID: 100", nr.Message)
	assert.Equal(t, 0, f.fetchCalls)
}

func TestSimilarLinkError(t *testing.T) {
	f := &fakeAPI{
		relatedFn: func(pmid string, limit int) ([]string, error) {
			return nil, errors.New("boom")
		},
	}

	_, err := newTestService(f).SimilarArticles(context.Background(), models.SimilarRequest{PMID: "100"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "elink")
}

func TestBuildTerm(t *testing.T) {
	year := time.Now().Year()

	tests := []struct {
		name      string
		query     string
		dateRange string
		want      string
	}{
		{name: "no range", query: "covid", dateRange: "", want: "covid"},
		{name: "single year", query: "covid", dateRange: "2023", want: "covid AND 2023[pdat]"},
		{name: "year range", query: "covid", dateRange: "2020:2024", want: "covid AND 2020:2024[pdat]"},
		{
			name:      "last year",
			query:     "covid",
			dateRange: "last_year",
			want:      fmt.Sprintf("covid AND %d:%d[pdat]", year-1, year),
		},
		{
			name:      "last 5 years",
			query:     "covid",
			dateRange: "last_5_years",
			want:      fmt.Sprintf("covid AND %d:%d[pdat]", year-5, year),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, buildTerm(tt.query, tt.dateRange))
		})
	}
}
