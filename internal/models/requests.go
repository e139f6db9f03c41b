package models

import (
	"fmt"
	"regexp"
	"unicode/utf8"
)

// Bounds for the per-operation max_results ranges.
const (
	DefaultMaxResults = 10
	SearchMaxResults  = 100
	SimilarMaxResults = 50

	maxQueryLen = 500
)

var (
	pmidRe      = regexp.MustCompile(`^\d+$`)
	yearRe      = regexp.MustCompile(`^\d{4}$`)
	yearRangeRe = regexp.MustCompile(`^\d{4}:\d{4}$`)
)

// sortOrders are the esearch sort values PubMed accepts.
var sortOrders = map[string]bool{
	"relevance": true,
	"pub_date":  true,
	"author":    true,
	"journal":   true,
}

// SearchRequest is the payload for POST /search.
// MaxResults is a pointer so an absent field (use the default) can be told
// apart from an explicit out-of-range zero.
type SearchRequest struct {
	Query      string `json:"query"`
	MaxResults *int   `json:"max_results"`
	Sort       string `json:"sort"`       // relevance | pub_date | author | journal
	DateRange  string `json:"date_range"` // "2023", "2020:2024", "last_year", "last_5_years"
}

// Validate checks field presence and bounds. Pure; no side effects.
func (r SearchRequest) Validate() error {
	if r.Query == "" {
		return fmt.Errorf("query is required")
	}
	if utf8.RuneCountInString(r.Query) > maxQueryLen {
		return fmt.Errorf("query must be between 1 and %d characters", maxQueryLen)
	}
	if r.MaxResults != nil && (*r.MaxResults < 1 || *r.MaxResults > SearchMaxResults) {
		return fmt.Errorf("max_results must be between 1 and %d", SearchMaxResults)
	}
	if r.Sort != "" && !sortOrders[r.Sort] {
		return fmt.Errorf("sort must be one of: relevance, pub_date, author, journal")
	}
	if r.DateRange != "" && !validDateRange(r.DateRange) {
		return fmt.Errorf("date_range must be a year (2023), a year range (2020:2024), last_year, or last_5_years")
	}
	return nil
}

// Limit returns max_results with the default applied.
func (r SearchRequest) Limit() int {
	if r.MaxResults == nil {
		return DefaultMaxResults
	}
	return *r.MaxResults
}

// SortOrder returns the sort field with the default applied.
func (r SearchRequest) SortOrder() string {
	if r.Sort == "" {
		return "relevance"
	}
	return r.Sort
}

// PublicationRequest is the payload for POST /publication.
type PublicationRequest struct {
	PMID string `json:"pmid"`
}

func (r PublicationRequest) Validate() error {
	return validatePMID(r.PMID)
}

// SimilarRequest is the payload for POST /similar.
type SimilarRequest struct {
	PMID       string `json:"pmid"`
	MaxResults *int   `json:"max_results"`
}

func (r SimilarRequest) Validate() error {
	if err := validatePMID(r.PMID); err != nil {
		return err
	}
	if r.MaxResults != nil && (*r.MaxResults < 1 || *r.MaxResults > SimilarMaxResults) {
		return fmt.Errorf("max_results must be between 1 and %d", SimilarMaxResults)
	}
	return nil
}

// Limit returns max_results with the default applied.
func (r SimilarRequest) Limit() int {
	if r.MaxResults == nil {
		return DefaultMaxResults
	}
	return *r.MaxResults
}

func validatePMID(pmid string) error {
	if pmid == "" {
		return fmt.Errorf("pmid is required")
	}
	if !pmidRe.MatchString(pmid) {
		return fmt.Errorf("pmid must be a numeric string")
	}
	return nil
}

func validDateRange(dr string) bool {
	switch dr {
	case "last_year", "last_5_years":
		return true
	}
	return yearRe.MatchString(dr) || yearRangeRe.MatchString(dr)
}
