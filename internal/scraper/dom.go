package scraper

import (
	"fmt"
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// selection adapts a single-node goquery selection to Element.
type selection struct {
	s *goquery.Selection
}

// Parse reads an HTML document and returns its root element.
func Parse(r io.Reader) (Element, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("html parse failed: %w", err)
	}
	return selection{s: doc.Selection}, nil
}

func (e selection) Tag() string {
	return goquery.NodeName(e.s)
}

func (e selection) Text() string {
	if len(e.s.Nodes) == 0 {
		return ""
	}
	return ExtractText(e.s.Nodes[0])
}

func (e selection) Attr(name string) (string, bool) {
	return e.s.Attr(name)
}

func (e selection) Find(tag string, match func(Element) bool) (Element, bool) {
	var found *goquery.Selection
	e.s.Find(tag).EachWithBreak(func(_ int, s *goquery.Selection) bool {
		if match == nil || match(selection{s: s}) {
			found = s
			return false
		}
		return true
	})
	if found == nil {
		return nil, false
	}
	return selection{s: found}, true
}

func (e selection) FindAll(tag string) []Element {
	var out []Element
	e.s.Find(tag).Each(func(_ int, s *goquery.Selection) {
		out = append(out, selection{s: s})
	})
	return out
}

func (e selection) NextSibling(tag string) (Element, bool) {
	next := e.s.NextAllFiltered(tag).First()
	if next.Length() == 0 {
		return nil, false
	}
	return selection{s: next}, true
}

// ExtractText concatenates every text node below n in document order.
func ExtractText(n *html.Node) string {
	if n.Type == html.TextNode {
		return n.Data
	}
	var sb strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		sb.WriteString(ExtractText(c))
	}
	return sb.String()
}
