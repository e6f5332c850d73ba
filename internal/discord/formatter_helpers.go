package discord

import (
	"regexp"
	"strings"
)

var (
	mdLinkPattern   = regexp.MustCompile(`\[([^\]]+)\]\([^)]+\)`)
	urlPattern      = regexp.MustCompile(`https?://\S+`)
	mdMarkPattern   = regexp.MustCompile("[*_~`]")
	bracketPattern  = regexp.MustCompile(`\[.*?\]`)
	parenPattern    = regexp.MustCompile(`\(.*?\)`)
	specialsPattern = regexp.MustCompile(`[^\p{L}\p{N}\s\-.,!?]`)
)

// CleanTitle strips markdown formatting, embedded URLs, bracketed or
// parenthesized fragments, and stray special characters from a scraped
// title, collapsing the remaining whitespace.
func CleanTitle(title string) string {
	s := mdLinkPattern.ReplaceAllString(title, "$1")
	s = urlPattern.ReplaceAllString(s, "")
	s = mdMarkPattern.ReplaceAllString(s, "")
	s = bracketPattern.ReplaceAllString(s, "")
	s = parenPattern.ReplaceAllString(s, "")
	s = specialsPattern.ReplaceAllString(s, "")
	return strings.Join(strings.Fields(s), " ")
}

// capitalize upper-cases the first rune of a search term for display
func capitalize(s string) string {
	if s == "" {
		return s
	}
	r := []rune(s)
	return strings.ToUpper(string(r[0])) + string(r[1:])
}
