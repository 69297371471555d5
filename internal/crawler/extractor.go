package crawler

import (
	"bytes"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/charset"
)

// Candidate is one raw URL string found in a page, together with the kind
// of element that carried it. Candidates are unresolved and unvalidated;
// the engine normalizes them against the page's final URL.
type Candidate struct {
	// Raw is the attribute value as written in the markup.
	Raw string

	// Source is the kind of element the value came from.
	Source SourceKind
}

// textContentTypes are the MIME types worth scanning for URLs. Anything
// else short-circuits to no candidates.
var textContentTypes = []string{
	"text/html",
	"application/xhtml+xml",
	"text/xml",
	"application/xml",
	"text/plain",
}

// isTextContent reports whether the content type is scannable. An empty
// content type is treated as text, since many small servers omit the
// header for HTML.
func isTextContent(contentType string) bool {
	if contentType == "" {
		return true
	}
	mime := strings.TrimSpace(strings.ToLower(strings.Split(contentType, ";")[0]))
	for _, t := range textContentTypes {
		if mime == t {
			return true
		}
	}
	return false
}

// Extract scans a response body for candidate URLs. It recognizes anchor
// hrefs, script sources, form actions, and a catch-all set of other
// URL-bearing attributes. Malformed markup is scanned best-effort; the
// html parser recovers rather than fails, so a broken fragment never
// aborts extraction. Non-text content types yield nothing.
func Extract(body []byte, contentType string) []Candidate {
	if len(body) == 0 || !isTextContent(contentType) {
		return nil
	}

	// Decode legacy charsets (declared in the header or a meta tag)
	// before parsing; x/net/html expects UTF-8.
	reader, err := charset.NewReader(bytes.NewReader(body), contentType)
	if err != nil {
		reader = bytes.NewReader(body)
	}

	doc, err := html.Parse(reader)
	if err != nil {
		return nil
	}

	var candidates []Candidate
	add := func(raw string, kind SourceKind) {
		if strings.TrimSpace(raw) == "" {
			return
		}
		candidates = append(candidates, Candidate{Raw: raw, Source: kind})
	}

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "a":
				add(getAttr(n, "href"), SourceHref)
			case "script":
				add(getAttr(n, "src"), SourceScript)
			case "form":
				add(getAttr(n, "action"), SourceForm)
			case "img", "iframe", "embed", "source":
				add(getAttr(n, "src"), SourceOther)
			case "area", "link":
				add(getAttr(n, "href"), SourceOther)
			case "object":
				add(getAttr(n, "data"), SourceOther)
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)

	return candidates
}

// getAttr retrieves an attribute value from an HTML node.
func getAttr(n *html.Node, key string) string {
	for _, attr := range n.Attr {
		if attr.Key == key {
			return attr.Val
		}
	}
	return ""
}
