// Package sanitize filters user supplied text before it is echoed back in
// an HTML-safe form.
//
// The filter is whitelist based: known formatting tags survive with their
// allowed attributes, every other tag is escaped so it renders as text, and
// comments are removed. Text outside tags only has '<' and '>' escaped;
// quotes and existing entities are left as they are.
package sanitize

import (
	"strings"

	"golang.org/x/net/html"
)

// Policy maps an allowed tag name to its allowed attribute names.
type Policy struct {
	tags map[string]map[string]struct{}
}

// NewPolicy builds a policy from a tag -> attributes whitelist.
func NewPolicy(whitelist map[string][]string) *Policy {
	p := &Policy{tags: make(map[string]map[string]struct{}, len(whitelist))}
	for tag, attrs := range whitelist {
		set := make(map[string]struct{}, len(attrs))
		for _, attr := range attrs {
			set[strings.ToLower(attr)] = struct{}{}
		}
		p.tags[strings.ToLower(tag)] = set
	}
	return p
}

var defaultPolicy = NewPolicy(map[string][]string{
	"a":          {"target", "href", "title"},
	"abbr":       {"title"},
	"address":    nil,
	"area":       {"shape", "coords", "href", "alt"},
	"article":    nil,
	"aside":      nil,
	"audio":      {"autoplay", "controls", "crossorigin", "loop", "muted", "preload", "src"},
	"b":          nil,
	"bdi":        {"dir"},
	"bdo":        {"dir"},
	"big":        nil,
	"blockquote": {"cite"},
	"br":         nil,
	"caption":    nil,
	"center":     nil,
	"cite":       nil,
	"code":       nil,
	"col":        {"align", "valign", "span", "width"},
	"colgroup":   {"align", "valign", "span", "width"},
	"dd":         nil,
	"del":        {"datetime"},
	"details":    {"open"},
	"div":        nil,
	"dl":         nil,
	"dt":         nil,
	"em":         nil,
	"figcaption": nil,
	"figure":     nil,
	"font":       {"color", "size", "face"},
	"footer":     nil,
	"h1":         nil,
	"h2":         nil,
	"h3":         nil,
	"h4":         nil,
	"h5":         nil,
	"h6":         nil,
	"header":     nil,
	"hr":         nil,
	"i":          nil,
	"img":        {"src", "alt", "title", "width", "height", "loading"},
	"ins":        {"datetime"},
	"kbd":        nil,
	"li":         nil,
	"mark":       nil,
	"nav":        nil,
	"ol":         nil,
	"p":          nil,
	"pre":        nil,
	"s":          nil,
	"section":    nil,
	"small":      nil,
	"span":       nil,
	"sub":        nil,
	"summary":    nil,
	"sup":        nil,
	"strong":     nil,
	"strike":     nil,
	"table":      {"width", "border", "align", "valign"},
	"tbody":      {"align", "valign"},
	"td":         {"width", "rowspan", "colspan", "align", "valign"},
	"tfoot":      {"align", "valign"},
	"th":         {"width", "rowspan", "colspan", "align", "valign"},
	"thead":      {"align", "valign"},
	"tr":         {"rowspan", "align", "valign"},
	"tt":         nil,
	"u":          nil,
	"ul":         nil,
	"video":      {"autoplay", "controls", "crossorigin", "loop", "muted", "playsinline", "poster", "preload", "src", "height", "width"},
})

// DefaultPolicy returns the policy used by HTML.
func DefaultPolicy() *Policy {
	return defaultPolicy
}

// HTML filters s with the default policy.
func HTML(s string) string {
	return defaultPolicy.Sanitize(s)
}

var textEscaper = strings.NewReplacer("<", "&lt;", ">", "&gt;")

var attrEscaper = strings.NewReplacer(`"`, "&quot;", "<", "&lt;", ">", "&gt;")

// Sanitize filters s according to the policy.
func (p *Policy) Sanitize(s string) string {
	if s == "" {
		return s
	}

	var b strings.Builder
	b.Grow(len(s))

	z := html.NewTokenizer(strings.NewReader(s))
	for {
		tt := z.Next()
		if tt == html.ErrorToken {
			// At EOF Raw still holds an unterminated tag, which renders as text.
			b.WriteString(textEscaper.Replace(string(z.Raw())))
			return b.String()
		}

		// Raw must be copied before the next call to Next or Token.
		raw := string(z.Raw())

		switch tt {
		case html.TextToken:
			b.WriteString(textEscaper.Replace(raw))

		case html.CommentToken:
			// dropped

		case html.StartTagToken, html.SelfClosingTagToken:
			token := z.Token()
			allowed, ok := p.tags[token.Data]
			if !ok {
				b.WriteString(textEscaper.Replace(raw))
				continue
			}
			writeStartTag(&b, token, allowed, tt == html.SelfClosingTagToken)

		case html.EndTagToken:
			name, _ := z.TagName()
			if _, ok := p.tags[string(name)]; !ok {
				b.WriteString(textEscaper.Replace(raw))
				continue
			}
			b.WriteString("</")
			b.Write(name)
			b.WriteString(">")

		default:
			// Doctype and anything else renders as text.
			b.WriteString(textEscaper.Replace(raw))
		}
	}
}

func writeStartTag(b *strings.Builder, token html.Token, allowed map[string]struct{}, selfClosing bool) {
	b.WriteString("<")
	b.WriteString(token.Data)

	for _, attr := range token.Attr {
		if attr.Namespace != "" {
			continue
		}
		if _, ok := allowed[attr.Key]; !ok {
			continue
		}

		value := strings.TrimSpace(attr.Val)
		if (attr.Key == "href" || attr.Key == "src") && !safeURL(value) {
			continue
		}

		b.WriteString(" ")
		b.WriteString(attr.Key)
		b.WriteString(`="`)
		b.WriteString(attrEscaper.Replace(value))
		b.WriteString(`"`)
	}

	if selfClosing {
		b.WriteString(" /")
	}
	b.WriteString(">")
}

var safeURLPrefixes = []string{
	"#", "/", "./", "../",
	"http://", "https://", "ftp://",
	"mailto:", "tel:", "data:image/",
}

// safeURL reports whether a link target uses a scheme that cannot execute
// script. Relative and fragment links are allowed.
func safeURL(value string) bool {
	if value == "" {
		return false
	}

	lower := strings.ToLower(value)
	for _, prefix := range safeURLPrefixes {
		if strings.HasPrefix(lower, prefix) {
			return true
		}
	}

	// A bare relative path ("images/a.png") carries no scheme at all.
	colon := strings.IndexByte(lower, ':')
	return colon < 0
}
