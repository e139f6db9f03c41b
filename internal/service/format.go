package service

import (
	"fmt"
	"strings"

	"pubmed-research-api/internal/pubmed"
)

// Markdown renderers for the three operations. The shapes are part of the
// wire contract: agent platforms parse these strings, so the layout and the
// fallback values are fixed.

const abstractPreviewLen = 300

// formatPublicationList renders articles as the numbered list returned by
// search.
func formatPublicationList(articles []pubmed.Article) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Found %d publications:\n", len(articles)))
	writeEntries(&sb, articles)
	return sb.String()
}

// formatSimilarList renders the same numbered list with a header naming the
// source PMID.
func formatSimilarList(pmid string, articles []pubmed.Article) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Found %d similar articles for PMID %s:\n", len(articles), pmid))
	writeEntries(&sb, articles)
	return sb.String()
}

func writeEntries(sb *strings.Builder, articles []pubmed.Article) {
	for i, a := range articles {
		if i > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString(fmt.Sprintf("\n**%d. %s**\n", i+1, orDefault(a.Title, "No title available")))
		sb.WriteString(fmt.Sprintf("- **PMID**: %s\n", a.PMID))
		sb.WriteString(fmt.Sprintf("- **Authors**: %s\n", listAuthors(a.Authors)))
		sb.WriteString(fmt.Sprintf("- **Journal**: %s\n", orDefault(a.Journal, "Unknown journal")))
		sb.WriteString(fmt.Sprintf("- **Year**: %s\n", orDefault(a.Year, "Unknown year")))
		sb.WriteString(fmt.Sprintf("- **Abstract**: %s\n", abstractPreview(a)))
		sb.WriteString(fmt.Sprintf("- **PubMed URL**: %s\n", a.URL()))
	}
}

// formatPublicationDetail renders the single-entry block returned by the
// publication endpoint. DOI, keyword and MeSH sections appear only when the
// record carries them.
func formatPublicationDetail(a pubmed.Article) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("\n**Publication Details for PMID: %s**\n", a.PMID))
	sb.WriteString(fmt.Sprintf("\n**Title**: %s\n", orDefault(a.Title, "No title available")))
	sb.WriteString(fmt.Sprintf("\n**Authors**: %s\n", detailAuthors(a.Authors)))
	sb.WriteString(fmt.Sprintf("\n**Journal**: %s\n", orDefault(a.Journal, "Unknown journal")))
	sb.WriteString(fmt.Sprintf("\n**Publication Date**: %s\n", orDefault(a.FullDate(), "Unknown year")))
	sb.WriteString(fmt.Sprintf("\n**Abstract**: %s\n", structuredAbstract(a)))
	if a.DOI != "" {
		sb.WriteString(fmt.Sprintf("\n**DOI**: %s\n", a.DOI))
	}
	if len(a.Keywords) > 0 {
		sb.WriteString(fmt.Sprintf("\n**Keywords**: %s\n", strings.Join(a.Keywords, ", ")))
	}
	if len(a.MeshTerms) > 0 {
		sb.WriteString(fmt.Sprintf("\n**MeSH Terms**: %s\n", strings.Join(a.MeshTerms, ", ")))
	}
	sb.WriteString(fmt.Sprintf("\n**PubMed URL**: %s\n", a.URL()))
	return sb.String()
}

// listAuthors renders the first three authors as "Last, Fore".
func listAuthors(authors []pubmed.Author) string {
	if len(authors) == 0 {
		return "Not specified"
	}
	if len(authors) > 3 {
		authors = authors[:3]
	}
	names := make([]string, len(authors))
	for i, au := range authors {
		names[i] = au.LastName + ", " + au.ForeName
	}
	return strings.Join(names, ", ")
}

// detailAuthors renders the full author list as "Last Fore" (initials as
// fallback), capped at fifteen names with an et-al marker beyond that.
func detailAuthors(authors []pubmed.Author) string {
	if len(authors) == 0 {
		return "Not specified"
	}
	etAl := len(authors) > 15
	if etAl {
		authors = authors[:15]
	}
	names := make([]string, len(authors))
	for i, au := range authors {
		switch {
		case au.ForeName != "":
			names[i] = au.LastName + " " + au.ForeName
		case au.Initials != "":
			names[i] = au.LastName + " " + au.Initials
		default:
			names[i] = au.LastName
		}
	}
	joined := strings.Join(names, ", ")
	if etAl {
		joined += ", et al."
	}
	return joined
}

// abstractPreview returns the flattened abstract cut to the list preview
// length.
func abstractPreview(a pubmed.Article) string {
	text := a.FlatAbstract()
	if text == "" {
		return "No abstract available"
	}
	return truncate(text, abstractPreviewLen)
}

// structuredAbstract renders the full abstract; labelled sections keep their
// labels and become separate paragraphs.
func structuredAbstract(a pubmed.Article) string {
	parts := make([]string, 0, len(a.Abstract))
	for _, s := range a.Abstract {
		if s.Text == "" {
			continue
		}
		if s.Label != "" {
			parts = append(parts, fmt.Sprintf("**%s:** %s", s.Label, s.Text))
		} else {
			parts = append(parts, s.Text)
		}
	}
	if len(parts) == 0 {
		return "No abstract available"
	}
	return strings.Join(parts, "\n\n")
}

// truncate caps s at n runes, marking the cut with an ellipsis.
func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n]) + "..."
}

func orDefault(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}
