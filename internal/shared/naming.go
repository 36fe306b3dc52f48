package shared

import (
	"regexp"
	"sort"
	"strconv"
	"strings"
)

var (
	digitRun     = regexp.MustCompile(`(\d+)`)
	invalidChars = regexp.MustCompile(`[<>:"/\\|?*]`)
	whitespace   = regexp.MustCompile(`\s+`)
)

// naturalToken is one piece of a natural sort key: either a number or a lowercased string.
type naturalToken struct {
	num   int
	text  string
	isNum bool
}

func naturalKey(s string) []naturalToken {
	parts := digitRun.Split(s, -1)
	nums := digitRun.FindAllString(s, -1)

	tokens := make([]naturalToken, 0, len(parts)+len(nums))
	for i, part := range parts {
		if part != "" {
			tokens = append(tokens, naturalToken{text: strings.ToLower(part)})
		}
		if i < len(nums) {
			n, _ := strconv.Atoi(nums[i])
			tokens = append(tokens, naturalToken{num: n, isNum: true})
		}
	}
	return tokens
}

// NaturalLess reports whether a sorts before b in natural order,
// so "Chapter 2" comes before "Chapter 10".
func NaturalLess(a, b string) bool {
	ka, kb := naturalKey(a), naturalKey(b)
	for i := 0; i < len(ka) && i < len(kb); i++ {
		ta, tb := ka[i], kb[i]
		switch {
		case ta.isNum && tb.isNum:
			if ta.num != tb.num {
				return ta.num < tb.num
			}
		case !ta.isNum && !tb.isNum:
			if ta.text != tb.text {
				return ta.text < tb.text
			}
		default:
			// Numbers sort before text at the same position
			return ta.isNum
		}
	}
	return len(ka) < len(kb)
}

// SortNatural sorts a slice of strings in place using natural order.
func SortNatural(items []string) {
	sort.Slice(items, func(i, j int) bool {
		return NaturalLess(items[i], items[j])
	})
}

// SanitizeTitle strips characters the upload API rejects in snippets.
func SanitizeTitle(text string) string {
	text = strings.ReplaceAll(text, "`", "")
	return strings.ReplaceAll(text, "'", "")
}

// SanitizeFileName removes characters that are invalid in file names,
// collapses whitespace runs to single underscores, and truncates the result.
func SanitizeFileName(name string) string {
	name = invalidChars.ReplaceAllString(name, "")
	name = whitespace.ReplaceAllString(strings.TrimSpace(name), "_")
	if len(name) > 150 {
		name = name[:150]
	}
	return name
}
