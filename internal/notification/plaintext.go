package notification

import (
	"strings"

	"golang.org/x/net/html"
)

// blockTags end a line of text when they open or close.
var blockTags = map[string]bool{
	"p": true, "div": true, "br": true, "tr": true, "table": true,
	"h1": true, "h2": true, "h3": true, "li": true, "ul": true, "ol": true,
}

// PlainText strips markup from an HTML document for the text/plain part.
// Head, style and script content is dropped, whitespace is collapsed and
// block elements become line breaks.
func PlainText(doc string) string {
	z := html.NewTokenizer(strings.NewReader(doc))

	var lines []string
	var line strings.Builder
	skip := 0

	flush := func() {
		if s := strings.Join(strings.Fields(line.String()), " "); s != "" {
			lines = append(lines, s)
		}
		line.Reset()
	}

	for {
		tt := z.Next()
		switch tt {
		case html.ErrorToken:
			flush()
			return strings.Join(lines, "\n")
		case html.StartTagToken, html.EndTagToken, html.SelfClosingTagToken:
			name, _ := z.TagName()
			tag := string(name)
			switch tag {
			case "head", "style", "script", "title":
				if tt == html.StartTagToken {
					skip++
				} else if tt == html.EndTagToken && skip > 0 {
					skip--
				}
				continue
			case "td":
				line.WriteByte(' ')
			}
			if blockTags[tag] {
				flush()
			}
		case html.TextToken:
			if skip == 0 {
				line.Write(z.Text())
			}
		}
	}
}
