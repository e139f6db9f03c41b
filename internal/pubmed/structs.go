package pubmed

import (
	"encoding/xml"
	"strings"
)

// Wire shapes for the E-utilities XML payloads. Only the elements the facade
// reads are mapped; the decoder ignores everything else.

type esearchResult struct {
	XMLName xml.Name `xml:"eSearchResult"`
	IDs     []string `xml:"IdList>Id"`
}

type elinkResult struct {
	XMLName  xml.Name  `xml:"eLinkResult"`
	LinkSets []linkSet `xml:"LinkSet"`
}

type linkSet struct {
	LinkDbs []linkSetDb `xml:"LinkSetDb"`
}

type linkSetDb struct {
	DbTo     string   `xml:"DbTo"`
	LinkName string   `xml:"LinkName"`
	IDs      []string `xml:"Link>Id"`
}

type articleSet struct {
	XMLName  xml.Name        `xml:"PubmedArticleSet"`
	Articles []pubmedArticle `xml:"PubmedArticle"`
}

type pubmedArticle struct {
	Citation medlineCitation `xml:"MedlineCitation"`
}

type medlineCitation struct {
	PMID     string        `xml:"PMID"`
	Article  articleRecord `xml:"Article"`
	Keywords []flatText    `xml:"KeywordList>Keyword"`
	Mesh     []flatText    `xml:"MeshHeadingList>MeshHeading>DescriptorName"`
}

type articleRecord struct {
	Title      flatText       `xml:"ArticleTitle"`
	Journal    journalInfo    `xml:"Journal"`
	Abstract   []abstractText `xml:"Abstract>AbstractText"`
	Authors    []wireAuthor   `xml:"AuthorList>Author"`
	ELocations []eLocation    `xml:"ELocationID"`
}

type journalInfo struct {
	Title string  `xml:"Title"`
	Date  pubDate `xml:"JournalIssue>PubDate"`
}

// pubDate is either Year/Month/Day parts or a free-form MedlineDate
// ("2003 Jan-Feb"), never both.
type pubDate struct {
	Year        string `xml:"Year"`
	Month       string `xml:"Month"`
	Day         string `xml:"Day"`
	MedlineDate string `xml:"MedlineDate"`
}

type wireAuthor struct {
	LastName string `xml:"LastName"`
	ForeName string `xml:"ForeName"`
	Initials string `xml:"Initials"`
}

type eLocation struct {
	Type  string `xml:"EIdType,attr"`
	Value string `xml:",chardata"`
}

// abstractText is one AbstractText element: an optional Label attribute
// (structured abstracts) plus mixed content.
type abstractText struct {
	Label string
	Text  string
}

func (a *abstractText) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
	for _, attr := range start.Attr {
		if attr.Name.Local == "Label" {
			a.Label = attr.Value
		}
	}
	text, err := flatten(d)
	if err != nil {
		return err
	}
	a.Text = text
	return nil
}

// flatText decodes an element whose content may carry inline markup (<i>,
// <sub>, <sup> and friends appear in titles, abstracts and keywords). The
// markup is dropped and all character data kept.
type flatText string

func (t *flatText) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
	s, err := flatten(d)
	if err != nil {
		return err
	}
	*t = flatText(s)
	return nil
}

// flatten consumes tokens up to the current element's matching end tag,
// concatenating character data at every depth.
func flatten(d *xml.Decoder) (string, error) {
	var sb strings.Builder
	depth := 1
	for depth > 0 {
		tok, err := d.Token()
		if err != nil {
			return "", err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			depth++
		case xml.EndElement:
			depth--
		case xml.CharData:
			sb.Write(t)
		}
	}
	return sb.String(), nil
}
