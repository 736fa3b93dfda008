package domain

import "strings"

// AllCategories is the pseudo-category that disables filtering on public pages.
const AllCategories = "semua"

// NormalizeCategory returns the canonical (trimmed, lowercase) category name.
// Categories are unique by this form.
func NormalizeCategory(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
