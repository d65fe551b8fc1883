package content

import (
	"strings"
	"unicode"

	"golang.org/x/net/html"
)

// PlainText returns the visible text of an HTML fragment with whitespace
// collapsed. Script and style contents are skipped.
func PlainText(fragment string) string {
	z := html.NewTokenizer(strings.NewReader(fragment))
	var b strings.Builder
	skip := 0
	for {
		switch z.Next() {
		case html.ErrorToken:
			return strings.Join(strings.Fields(b.String()), " ")
		case html.StartTagToken:
			name, _ := z.TagName()
			if isHidden(string(name)) {
				skip++
			}
			if !inlineTags[string(name)] {
				b.WriteByte(' ')
			}
		case html.EndTagToken:
			name, _ := z.TagName()
			if isHidden(string(name)) && skip > 0 {
				skip--
			}
			if !inlineTags[string(name)] {
				b.WriteByte(' ')
			}
		case html.SelfClosingTagToken:
			b.WriteByte(' ')
		case html.TextToken:
			if skip == 0 {
				b.Write(z.Text())
			}
		}
	}
}

// inlineTags do not separate words.
var inlineTags = map[string]bool{
	"a": true, "abbr": true, "b": true, "code": true, "del": true, "em": true,
	"i": true, "mark": true, "s": true, "small": true, "span": true,
	"strong": true, "sub": true, "sup": true, "u": true,
}

func isHidden(tag string) bool {
	return tag == "script" || tag == "style"
}

// Excerpt shortens the plain text of fragment to at most limit runes,
// cutting at a word boundary and appending an ellipsis when truncated.
func Excerpt(fragment string, limit int) string {
	text := PlainText(fragment)
	runes := []rune(text)
	if limit <= 0 || len(runes) <= limit {
		return text
	}
	cut := limit
	for cut > 0 && !unicode.IsSpace(runes[cut]) {
		cut--
	}
	if cut == 0 {
		cut = limit
	}
	return strings.TrimRightFunc(string(runes[:cut]), func(r rune) bool {
		return unicode.IsSpace(r) || unicode.IsPunct(r)
	}) + "…"
}
