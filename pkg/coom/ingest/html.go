package ingest

import (
	"io"
	"strings"

	"golang.org/x/net/html"
)

// ExtractText parses HTML and returns its visible text, with script and
// style contents dropped. Feeding the result to a Tokenizer lets HTML
// documents enter a corpus alongside plain text.
func ExtractText(r io.Reader) (string, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return "", err
	}

	var buf strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && (n.Data == "script" || n.Data == "style") {
			return
		}
		if n.Type == html.TextNode {
			buf.WriteString(n.Data)
			buf.WriteByte(' ')
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)

	return strings.TrimSpace(buf.String()), nil
}

// StripHTML is ExtractText over a string, falling back to the input
// when parsing fails.
func StripHTML(s string) string {
	text, err := ExtractText(strings.NewReader(s))
	if err != nil {
		return s
	}
	return text
}
