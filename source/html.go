package source

import (
	"fmt"
	"net/url"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Page holds styles referenced or embedded by HTML document.
type Page struct {
	// Links are absolute URLs of linked stylesheets in document order.
	Links []string
	// Styles are texts of <style> elements in document order.
	Styles []string
}

// ScrapeHTML finds <link rel="stylesheet"> and <style> elements. Relative
// links are resolved against base.
func ScrapeHTML(body string, base *url.URL) (*Page, error) {
	doc, err := html.Parse(strings.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("unable to parse HTML: %w", err)
	}

	page := &Page{}
	for n := range doc.Descendants() {
		if n.Type != html.ElementNode {
			continue
		}
		switch n.DataAtom {
		case atom.Link:
			if !isStylesheetLink(n) {
				continue
			}
			href := strings.TrimSpace(attr(n, "href"))
			ref, err := url.Parse(href)
			if err != nil {
				return nil, fmt.Errorf("bad stylesheet link %q: %w", href, err)
			}
			if base != nil {
				ref = base.ResolveReference(ref)
			}
			page.Links = append(page.Links, ref.String())
		case atom.Style:
			var sb strings.Builder
			for c := n.FirstChild; c != nil; c = c.NextSibling {
				if c.Type == html.TextNode {
					sb.WriteString(c.Data)
				}
			}
			page.Styles = append(page.Styles, sb.String())
		}
	}
	return page, nil
}

func isStylesheetLink(n *html.Node) bool {
	if attr(n, "href") == "" {
		return false
	}
	for _, rel := range strings.Fields(attr(n, "rel")) {
		if strings.EqualFold(rel, "stylesheet") {
			return true
		}
	}
	return false
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}
