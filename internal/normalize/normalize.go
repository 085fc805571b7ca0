// Package normalize cleans raw search fragments before they are handed
// to the generation pipeline. Cleaning is a pure function of its input;
// fragments that carry too little text after cleaning are dropped
// rather than padded.
package normalize

import (
	"regexp"
	"strings"
)

// Separator joins retained fragments so the boundary between sources
// stays locatable downstream.
const Separator = "\n\n---\n\n"

// DefaultMinFragmentChars is the minimum cleaned length a fragment must
// have to be retained.
const DefaultMinFragmentChars = 100

var (
	whitespaceRe = regexp.MustCompile(`\s+`)
	markupTagRe  = regexp.MustCompile(`<[^>]+>`)
	urlRe        = regexp.MustCompile(`https?://\S+`)
	// Conservative allow-list: word characters, whitespace and common
	// punctuation survive; everything else is stripped.
	disallowedRe = regexp.MustCompile(`[^\w\s.,;:()"'-]`)
)

// Fragment is one raw retrieved text item with its origin label.
type Fragment struct {
	Content string `json:"content"`
	Source  string `json:"source"`
}

// Normalizer cleans and concatenates search fragments.
type Normalizer struct {
	minFragmentChars int
}

// New returns a Normalizer with the given retention threshold.
// Non-positive values fall back to DefaultMinFragmentChars.
func New(minFragmentChars int) *Normalizer {
	if minFragmentChars <= 0 {
		minFragmentChars = DefaultMinFragmentChars
	}
	return &Normalizer{minFragmentChars: minFragmentChars}
}

// CleanText normalizes a single fragment: whitespace runs collapse to a
// single space, markup tags and URLs are removed, characters outside the
// allow-list are stripped, and the result is trimmed.
func CleanText(text string) string {
	text = whitespaceRe.ReplaceAllString(text, " ")
	text = markupTagRe.ReplaceAllString(text, "")
	text = urlRe.ReplaceAllString(text, "")
	text = disallowedRe.ReplaceAllString(text, "")
	return strings.TrimSpace(text)
}

// Combine cleans every fragment, drops the ones below the retention
// threshold, and joins the survivors with Separator. It returns the
// combined content and the number of fragments retained. An empty
// result is not an error here; the caller decides what that means.
func (n *Normalizer) Combine(fragments []Fragment) (string, int) {
	var kept []string
	for _, f := range fragments {
		if f.Content == "" {
			continue
		}
		cleaned := CleanText(f.Content)
		if len(cleaned) >= n.minFragmentChars {
			kept = append(kept, cleaned)
		}
	}
	return strings.Join(kept, Separator), len(kept)
}
