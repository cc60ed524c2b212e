package common

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// NormalizeHumanName collapses runs of whitespace and trims the ends.
func NormalizeHumanName(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// Initials returns the upper-cased first letters of the first and last word
// of name, the first letter alone for a single word, or "?" for a blank name.
func Initials(name string) string {
	parts := strings.Fields(name)
	switch len(parts) {
	case 0:
		return "?"
	case 1:
		return firstUpper(parts[0])
	}
	return firstUpper(parts[0]) + firstUpper(parts[len(parts)-1])
}

func firstUpper(s string) string {
	r, _ := utf8.DecodeRuneInString(s)
	return string(unicode.ToUpper(r))
}

// SplitList parses a comma separated column into trimmed, non-empty items.
func SplitList(s string) []string {
	out := []string{}
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// NormalizeItem trims a list item and drops commas, which the stored column
// uses as a separator.
func NormalizeItem(s string) string {
	return strings.TrimSpace(strings.ReplaceAll(s, ",", ""))
}

// JoinList is the inverse of SplitList. Items go through NormalizeItem and
// blanks are dropped.
func JoinList(items []string) string {
	clean := make([]string, 0, len(items))
	for _, it := range items {
		if it = NormalizeItem(it); it != "" {
			clean = append(clean, it)
		}
	}
	return strings.Join(clean, ",")
}

// NormalizeList applies NormalizeItem, drops blanks and removes duplicates
// while keeping first-seen order. The result survives JoinList/SplitList
// unchanged.
func NormalizeList(items []string) []string {
	out := make([]string, 0, len(items))
	seen := make(map[string]struct{}, len(items))
	for _, it := range items {
		it = NormalizeItem(it)
		if it == "" {
			continue
		}
		if _, dup := seen[it]; dup {
			continue
		}
		seen[it] = struct{}{}
		out = append(out, it)
	}
	return out
}
