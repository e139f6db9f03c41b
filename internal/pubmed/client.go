// Package pubmed is a minimal client for the NCBI E-utilities endpoints the
// facade needs: esearch (query to PMIDs), efetch (PMIDs to records) and
// elink (PMID to related PMIDs). Responses are XML; the decoded records come
// back as Article values.
package pubmed

import (
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// DefaultBaseURL is the public E-utilities endpoint root.
const DefaultBaseURL = "https://eutils.ncbi.nlm.nih.gov/entrez/eutils"

// Client is a thin wrapper around the E-utilities HTTP API. All methods are
// safe for concurrent use.
type Client struct {
	http    *http.Client
	baseURL string
	apiKey  string
	email   string
	tool    string
}

// Options configures a Client. Every field is optional.
type Options struct {
	BaseURL string        // defaults to DefaultBaseURL
	APIKey  string        // NCBI API key; empty means the anonymous rate cap
	Email   string        // contact email attached to every call
	Tool    string        // tool identifier attached to every call
	Timeout time.Duration // per-call bound; defaults to 30s
}

// NewClient returns a ready-to-use E-utilities client.
func NewClient(opts Options) *Client {
	base := strings.TrimRight(opts.BaseURL, "/")
	if base == "" {
		base = DefaultBaseURL
	}
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		http:    &http.Client{Timeout: timeout},
		baseURL: base,
		apiKey:  opts.APIKey,
		email:   opts.Email,
		tool:    opts.Tool,
	}
}

// Search runs esearch against the pubmed database and returns matching PMIDs.
//
//	term  - full query, including any [pdat] filters
//	sort  - "relevance" | "pub_date" | "author" | "journal"
//	limit - maximum number of IDs to return (retmax)
func (c *Client) Search(ctx context.Context, term, sort string, limit int) ([]string, error) {
	q := url.Values{}
	q.Set("db", "pubmed")
	q.Set("term", term)
	q.Set("retmax", strconv.Itoa(limit))
	if sort != "" {
		q.Set("sort", sort)
	}

	var res esearchResult
	if err := c.get(ctx, "esearch.fcgi", q, &res); err != nil {
		return nil, err
	}
	return res.IDs, nil
}

// Fetch retrieves the full records for the given PMIDs.
func (c *Client) Fetch(ctx context.Context, pmids []string) ([]Article, error) {
	q := url.Values{}
	q.Set("db", "pubmed")
	q.Set("id", strings.Join(pmids, ","))
	q.Set("rettype", "abstract")

	var set articleSet
	if err := c.get(ctx, "efetch.fcgi", q, &set); err != nil {
		return nil, err
	}

	articles := make([]Article, 0, len(set.Articles))
	for _, w := range set.Articles {
		articles = append(articles, newArticle(w))
	}
	return articles, nil
}

// Related runs elink in neighbor mode and returns the PMIDs PubMed links to
// the given one, the input itself excluded.
func (c *Client) Related(ctx context.Context, pmid string, limit int) ([]string, error) {
	q := url.Values{}
	q.Set("dbfrom", "pubmed")
	q.Set("db", "pubmed")
	q.Set("id", pmid)
	q.Set("cmd", "neighbor")
	q.Set("linkname", "pubmed_pubmed")
	// One extra because the article can appear among its own neighbors.
	q.Set("retmax", strconv.Itoa(limit+1))

	var res elinkResult
	if err := c.get(ctx, "elink.fcgi", q, &res); err != nil {
		return nil, err
	}

	var ids []string
	for _, ls := range res.LinkSets {
		for _, db := range ls.LinkDbs {
			// elink can return link sets beyond the requested neighbor one.
			if db.DbTo != "pubmed" || db.LinkName != "pubmed_pubmed" {
				continue
			}
			for _, id := range db.IDs {
				if id != pmid {
					ids = append(ids, id)
				}
			}
		}
	}
	if len(ids) > limit {
		ids = ids[:limit]
	}
	return ids, nil
}

// get issues a GET to the named E-utilities endpoint and decodes the XML
// response into v. The identity parameters are attached to every call.
func (c *Client) get(ctx context.Context, endpoint string, q url.Values, v interface{}) error {
	q.Set("retmode", "xml")
	if c.apiKey != "" {
		q.Set("api_key", c.apiKey)
	}
	if c.email != "" {
		q.Set("email", c.email)
	}
	if c.tool != "" {
		q.Set("tool", c.tool)
	}

	u := fmt.Sprintf("%s/%s?%s", c.baseURL, endpoint, q.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return fmt.Errorf("pubmed: %s: %w", endpoint, stripURL(err))
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("pubmed: %s: %w", endpoint, stripURL(err))
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("pubmed: %s: unexpected status %s", endpoint, resp.Status)
	}

	if err := xml.NewDecoder(resp.Body).Decode(v); err != nil {
		return fmt.Errorf("pubmed: %s: decode response: %w", endpoint, err)
	}
	return nil
}

// stripURL unwraps *url.Error, whose message embeds the full request URL,
// api_key included. Timeout and cancellation identity live on the inner
// error.
func stripURL(err error) error {
	var ue *url.Error
	if errors.As(err, &ue) {
		return ue.Err
	}
	return err
}
