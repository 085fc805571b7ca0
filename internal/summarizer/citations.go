package summarizer

import (
	"regexp"
	"strings"
)

// MinCitationChars is the minimum length a citation line must keep
// after its enumeration marker is stripped.
const MinCitationChars = 10

var (
	leadingNumberRe = regexp.MustCompile(`^\d+\.?\s*`)
	leadingBulletRe = regexp.MustCompile(`^[-*•]\s*`)
)

// ExtractCitations pulls discrete citation strings out of generated
// free text. A line is retained when it is non-empty and starts with a
// digit or a bullet marker; the marker is stripped and short leftovers
// are dropped. Order is preserved and duplicates pass through
// unchanged; the result is capped at maxCitations.
func ExtractCitations(text string, maxCitations int) []string {
	if maxCitations <= 0 {
		maxCitations = 10
	}

	var citations []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if !startsCitation(line) {
			continue
		}
		citation := leadingNumberRe.ReplaceAllString(line, "")
		citation = leadingBulletRe.ReplaceAllString(citation, "")
		citation = strings.TrimSpace(citation)
		if len(citation) < MinCitationChars {
			continue
		}
		citations = append(citations, citation)
		if len(citations) == maxCitations {
			break
		}
	}
	return citations
}

func startsCitation(line string) bool {
	r := []rune(line)[0]
	return (r >= '0' && r <= '9') || r == '-' || r == '*' || r == '•'
}
