package normalize

import (
	"strings"

	"golang.org/x/net/html"
)

// StripMarkup reduces an HTML document to its visible text: tags become
// separators, script/style/noscript subtrees are skipped, and runs of
// whitespace collapse to single spaces. Non-HTML input passes through with
// the same whitespace collapsing.
func StripMarkup(content string) string {
	doc, err := html.Parse(strings.NewReader(content))
	if err != nil {
		return CollapseWhitespace(content)
	}

	var buf strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "script", "style", "noscript", "iframe":
				return
			}
		}
		if n.Type == html.TextNode {
			if text := strings.TrimSpace(n.Data); text != "" {
				buf.WriteString(text)
				buf.WriteString(" ")
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)

	return CollapseWhitespace(buf.String())
}

// CollapseWhitespace trims the text and folds every whitespace run into a
// single space.
func CollapseWhitespace(text string) string {
	return strings.Join(strings.Fields(text), " ")
}
