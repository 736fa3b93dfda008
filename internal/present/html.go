package present

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"github.com/microcosm-cc/bluemonday"
)

// contentClasses are the presentation classes the article editor attaches
// to bare block elements.
var contentClasses = []struct {
	tag, class string
}{
	{"h1", "text-4xl font-bold mb-4"},
	{"h2", "text-3xl font-bold mb-3"},
	{"h3", "text-2xl font-bold mb-2"},
	{"p", "text-base mb-4"},
	{"ul", "list-disc list-inside mb-4"},
	{"ol", "list-decimal list-inside mb-4"},
	{"li", "mb-2"},
}

var articlePolicy = func() *bluemonday.Policy {
	p := bluemonday.UGCPolicy()
	p.AllowAttrs("class").Globally()
	p.AllowAttrs("target").Matching(regexp.MustCompile(`^_blank$`)).OnElements("a")
	return p
}()

// SanitizeHTML strips scripts, event handlers and unsafe URLs from
// admin-authored article HTML before it is rendered.
func SanitizeHTML(konten string) string {
	return articlePolicy.Sanitize(konten)
}

// DecorateContent adds the presentation classes to h1-h3, p, ul, ol and li
// elements that carry no class yet. Running it twice changes nothing.
func DecorateContent(konten string) (string, error) {
	if strings.TrimSpace(konten) == "" {
		return konten, nil
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(konten))
	if err != nil {
		return "", fmt.Errorf("present.DecorateContent: %w", err)
	}
	for _, cc := range contentClasses {
		doc.Find(cc.tag).Each(func(_ int, s *goquery.Selection) {
			if _, ok := s.Attr("class"); !ok {
				s.SetAttr("class", cc.class)
			}
		})
	}
	out, err := doc.Find("body").Html()
	if err != nil {
		return "", fmt.Errorf("present.DecorateContent: %w", err)
	}
	return out, nil
}

var blankRuns = regexp.MustCompile(`\n{3,}`)

// HTMLToText renders article HTML as plain text for the terminal: block
// elements become paragraphs, list items get a bullet, links keep their URL.
func HTMLToText(konten string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(konten))
	if err != nil {
		return strings.TrimSpace(konten)
	}
	var b strings.Builder
	writeText(&b, doc.Find("body"))
	out := blankRuns.ReplaceAllString(b.String(), "\n\n")
	lines := strings.Split(strings.TrimSpace(out), "\n")
	for i, l := range lines {
		lines[i] = strings.TrimRight(l, " ")
	}
	return strings.Join(lines, "\n")
}

func writeText(b *strings.Builder, sel *goquery.Selection) {
	sel.Contents().Each(func(_ int, s *goquery.Selection) {
		switch name := goquery.NodeName(s); name {
		case "#text":
			// Whitespace at the node edges separates it from its inline
			// neighbours; runs inside collapse to one space.
			raw := s.Text()
			txt := strings.Join(strings.Fields(raw), " ")
			if txt == "" {
				if raw != "" && needsSpace(b) {
					b.WriteByte(' ')
				}
				return
			}
			first, _ := utf8.DecodeRuneInString(raw)
			if unicode.IsSpace(first) && needsSpace(b) {
				b.WriteByte(' ')
			}
			b.WriteString(txt)
			if last, _ := utf8.DecodeLastRuneInString(raw); unicode.IsSpace(last) {
				b.WriteByte(' ')
			}
		case "script", "style":
		case "br":
			b.WriteByte('\n')
		case "li":
			newline(b)
			if goquery.NodeName(s.Parent()) == "ol" {
				fmt.Fprintf(b, "%d. ", s.Index()+1)
			} else {
				b.WriteString("• ")
			}
			writeText(b, s)
			b.WriteByte('\n')
		case "a":
			writeText(b, s)
			if href, ok := s.Attr("href"); ok && href != "" && href != strings.TrimSpace(s.Text()) {
				fmt.Fprintf(b, " (%s)", href)
			}
		case "h1", "h2", "h3", "h4", "h5", "h6", "p", "div", "ul", "ol", "blockquote", "section", "table", "tr":
			paragraph(b)
			writeText(b, s)
			paragraph(b)
		default:
			writeText(b, s)
		}
	})
}

func needsSpace(b *strings.Builder) bool {
	s := b.String()
	if s == "" {
		return false
	}
	last := s[len(s)-1]
	return last != ' ' && last != '\n'
}

func newline(b *strings.Builder) {
	s := b.String()
	if s != "" && !strings.HasSuffix(s, "\n") {
		b.WriteByte('\n')
	}
}

func paragraph(b *strings.Builder) {
	s := b.String()
	if s == "" || strings.HasSuffix(s, "\n\n") {
		return
	}
	if strings.HasSuffix(s, "\n") {
		b.WriteByte('\n')
		return
	}
	b.WriteString("\n\n")
}
