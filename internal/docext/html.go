package docext

import (
	"strings"

	"golang.org/x/net/html"
)

// FromHTML renders an HTML email body as visible plain text. Script, style
// and similar non-content subtrees are skipped; block-level elements get
// line breaks so field labels stay line-oriented for the fallback patterns.
func FromHTML(htmlContent string) (string, error) {
	doc, err := html.Parse(strings.NewReader(htmlContent))
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	var walk func(*html.Node)

	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "script", "style", "noscript", "iframe", "head":
				return
			}
		}

		if n.Type == html.TextNode {
			text := strings.TrimSpace(n.Data)
			if text != "" {
				if sb.Len() > 0 && !strings.HasSuffix(sb.String(), "\n") {
					sb.WriteByte(' ')
				}
				sb.WriteString(text)
			}
		}

		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}

		if n.Type == html.ElementNode && isBlockElement(n.Data) {
			sb.WriteByte('\n')
		}
	}

	walk(doc)

	return collapseBlankLines(sb.String()), nil
}

func isBlockElement(tag string) bool {
	switch tag {
	case "p", "div", "br", "li", "tr", "table", "ul", "ol",
		"h1", "h2", "h3", "h4", "h5", "h6", "blockquote", "pre", "section", "article":
		return true
	}
	return false
}

// collapseBlankLines trims trailing space per line and squeezes runs of
// blank lines down to one.
func collapseBlankLines(text string) string {
	lines := strings.Split(text, "\n")
	var out []string
	blank := false
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			if !blank && len(out) > 0 {
				out = append(out, "")
			}
			blank = true
			continue
		}
		out = append(out, line)
		blank = false
	}
	return strings.TrimSpace(strings.Join(out, "\n"))
}
