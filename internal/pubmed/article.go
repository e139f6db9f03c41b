package pubmed

import "strings"

// Article is one decoded PubMed record, cleaned up for presentation: text is
// whitespace-trimmed, authors without a last name (collective names) are
// dropped, keywords are deduplicated and MeSH terms capped at ten.
type Article struct {
	PMID        string
	Title       string
	Journal     string
	Year        string
	Month       string
	Day         string
	MedlineDate string
	Authors     []Author
	Abstract    []AbstractSection
	DOI         string
	Keywords    []string
	MeshTerms   []string
}

// Author is one personal author of an article.
type Author struct {
	LastName string
	ForeName string
	Initials string
}

// AbstractSection is one AbstractText block; Label is set for structured
// abstracts (BACKGROUND, METHODS, ...).
type AbstractSection struct {
	Label string
	Text  string
}

// URL returns the article's public PubMed page.
func (a Article) URL() string {
	return "https://pubmed.ncbi.nlm.nih.gov/" + a.PMID + "/"
}

// FullDate returns the most specific publication date available: MedlineDate
// verbatim when set, otherwise "Year Month Day" from whichever parts exist.
// Empty when the record carries no date at all.
func (a Article) FullDate() string {
	if a.MedlineDate != "" {
		return a.MedlineDate
	}
	var parts []string
	if a.Year != "" {
		parts = append(parts, a.Year)
		if a.Month != "" {
			parts = append(parts, a.Month)
			if a.Day != "" {
				parts = append(parts, a.Day)
			}
		}
	}
	return strings.Join(parts, " ")
}

// FlatAbstract joins all abstract sections into one plain string, labels
// dropped. Empty when the record has no abstract.
func (a Article) FlatAbstract() string {
	parts := make([]string, 0, len(a.Abstract))
	for _, s := range a.Abstract {
		if s.Text != "" {
			parts = append(parts, s.Text)
		}
	}
	return strings.Join(parts, " ")
}

const maxMeshTerms = 10

// newArticle converts one wire record into the cleaned-up domain shape.
func newArticle(w pubmedArticle) Article {
	cit := w.Citation
	rec := cit.Article

	a := Article{
		PMID:        strings.TrimSpace(cit.PMID),
		Title:       strings.TrimSpace(string(rec.Title)),
		Journal:     strings.TrimSpace(rec.Journal.Title),
		Year:        strings.TrimSpace(rec.Journal.Date.Year),
		Month:       strings.TrimSpace(rec.Journal.Date.Month),
		Day:         strings.TrimSpace(rec.Journal.Date.Day),
		MedlineDate: strings.TrimSpace(rec.Journal.Date.MedlineDate),
	}

	for _, au := range rec.Authors {
		if au.LastName == "" {
			continue
		}
		a.Authors = append(a.Authors, Author{
			LastName: au.LastName,
			ForeName: au.ForeName,
			Initials: au.Initials,
		})
	}

	for _, ab := range rec.Abstract {
		text := strings.TrimSpace(ab.Text)
		if text == "" {
			continue
		}
		a.Abstract = append(a.Abstract, AbstractSection{Label: ab.Label, Text: text})
	}

	for _, loc := range rec.ELocations {
		if strings.EqualFold(loc.Type, "doi") {
			a.DOI = strings.TrimSpace(loc.Value)
			break
		}
	}

	seen := make(map[string]bool)
	for _, kw := range cit.Keywords {
		k := strings.TrimSpace(string(kw))
		if k == "" || seen[strings.ToLower(k)] {
			continue
		}
		seen[strings.ToLower(k)] = true
		a.Keywords = append(a.Keywords, k)
	}

	for _, m := range cit.Mesh {
		if len(a.MeshTerms) == maxMeshTerms {
			break
		}
		if term := strings.TrimSpace(string(m)); term != "" {
			a.MeshTerms = append(a.MeshTerms, term)
		}
	}

	return a
}
