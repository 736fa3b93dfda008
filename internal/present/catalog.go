// Package present holds the display rules of the public pages: filtering,
// ordering, labels and number/date formatting.
package present

import (
	"regexp"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/ikyyy777/TPLM-website-wisata-desa-banjarpanepen/pkg/domain"
)

var titleCaser = cases.Title(language.Indonesian)

// FilterByCategory returns the destinations whose kategori equals cat,
// ignoring case. An empty cat or "semua" returns the full list.
func FilterByCategory(list []domain.Destination, cat string) []domain.Destination {
	cat = domain.NormalizeCategory(cat)
	if cat == "" || cat == domain.AllCategories {
		return list
	}
	out := make([]domain.Destination, 0, len(list))
	for _, d := range list {
		if strings.EqualFold(strings.TrimSpace(d.Kategori), cat) {
			out = append(out, d)
		}
	}
	return out
}

// CategoryOptions returns the filter choices: "semua" followed by cats
// normalized and without duplicates.
func CategoryOptions(cats []string) []string {
	out := []string{domain.AllCategories}
	seen := map[string]bool{domain.AllCategories: true}
	for _, c := range cats {
		c = domain.NormalizeCategory(c)
		if c == "" || seen[c] {
			continue
		}
		seen[c] = true
		out = append(out, c)
	}
	return out
}

// CategoryLabel capitalises a category name for display.
func CategoryLabel(cat string) string {
	return titleCaser.String(domain.NormalizeCategory(cat))
}

var nonSlug = regexp.MustCompile(`[^a-z0-9]+`)

// Slug turns a title into a URL fragment: "Curug Gomblang!" -> "curug-gomblang".
func Slug(title string) string {
	return strings.Trim(nonSlug.ReplaceAllString(strings.ToLower(title), "-"), "-")
}
