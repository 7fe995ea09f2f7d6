package lib

import (
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// minUnitLength filters out navigation crumbs, stray punctuation and
// other sub-sentence noise; units shorter than this are discarded.
const minUnitLength = 11

// excludedTags never contribute text.
var excludedTags = map[string]bool{
	"script": true,
	"style":  true,
	"nav":    true,
	"footer": true,
	"header": true,
	"aside":  true,
}

// structuralTags are treated as one paragraph unit: their full text is
// taken and their children are not visited again, so nested text is
// emitted exactly once.
var structuralTags = map[string]bool{
	"h1": true, "h2": true, "h3": true, "h4": true, "h5": true, "h6": true,
	"p": true, "div": true, "section": true, "article": true,
}

// ExtractText flattens a parsed HTML document into paragraph-structured
// plain text. The rendering is lossy but readable - meant for LLM
// consumption, not for faithful HTML-to-text conversion.
func ExtractText(doc *html.Node) string {
	body := findTag(doc, "body")
	if body == nil {
		body = doc
	}

	var units []string
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		switch n.Type {
		case html.TextNode:
			if text := strings.TrimSpace(n.Data); text != "" {
				units = append(units, text)
			}
			return
		case html.ElementNode:
			if excludedTags[n.Data] {
				return
			}
			if structuralTags[n.Data] {
				if text := strings.TrimSpace(nodeText(n)); text != "" {
					units = append(units, text)
				}
				return
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	for c := body.FirstChild; c != nil; c = c.NextSibling {
		walk(c)
	}

	filtered := units[:0]
	for _, u := range units {
		if utf8.RuneCountInString(u) >= minUnitLength {
			filtered = append(filtered, u)
		}
	}
	return strings.Join(filtered, "\n\n")
}

// ExtractMetadata pulls the page title and meta description out of a
// parsed document
func ExtractMetadata(doc *html.Node) (title, description string) {
	gq := goquery.NewDocumentFromNode(doc)
	title = strings.TrimSpace(gq.Find("title").First().Text())
	description, _ = gq.Find(`meta[name="description"]`).First().Attr("content")
	description = strings.TrimSpace(description)
	return title, description
}

// nodeText concatenates all descendant text, skipping excluded elements
func nodeText(n *html.Node) string {
	var sb strings.Builder
	var collect func(*html.Node)
	collect = func(node *html.Node) {
		if node.Type == html.TextNode {
			sb.WriteString(node.Data)
			return
		}
		if node.Type == html.ElementNode && excludedTags[node.Data] {
			return
		}
		for c := node.FirstChild; c != nil; c = c.NextSibling {
			collect(c)
		}
	}
	collect(n)
	return sb.String()
}

func findTag(n *html.Node, tag string) *html.Node {
	if n.Type == html.ElementNode && n.Data == tag {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findTag(c, tag); found != nil {
			return found
		}
	}
	return nil
}
