package domain

import "strings"

// Categorize resolves the category label for a raw item name. Matching is
// two-pass over the rule table: an exact pass across every (rule, keyword)
// pair first, then a substring pass across the same pairs. The first match
// in table order wins. Blank input and unmatched names resolve to
// Uncategorized.
func Categorize(name string) string {
	normalized := strings.ToLower(strings.TrimSpace(name))
	if normalized == "" {
		return Uncategorized
	}
	for _, rule := range Rules {
		for _, kw := range rule.Keywords {
			if normalized == kw {
				return rule.Category
			}
		}
	}
	for _, rule := range Rules {
		for _, kw := range rule.Keywords {
			if strings.Contains(normalized, kw) {
				return rule.Category
			}
		}
	}
	return Uncategorized
}
