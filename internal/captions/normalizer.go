package captions

import (
	"regexp"
	"strings"
)

// DefaultFillers is the stock hesitation vocabulary removed from transcripts
var DefaultFillers = []string{"uh", "um", "hmm"}

// Cleanup patterns applied after filler removal
var (
	extraSpaces  = regexp.MustCompile(`\s{2,}`)
	spacedPunct  = regexp.MustCompile(`\s+([.,!?])`)
	leadingComma = regexp.MustCompile(`^,\s*`)
)

// Normalizer removes filler words from a transcript and cleans up the
// whitespace artifacts the removals leave behind. The vocabulary is fixed at
// construction; each token matches as a case-insensitive whole word with an
// optional trailing comma or period.
type Normalizer struct {
	fillers  []string
	patterns []*regexp.Regexp
}

// NewNormalizer compiles a normalizer for the given filler vocabulary.
// An empty vocabulary falls back to DefaultFillers.
func NewNormalizer(fillers []string) *Normalizer {
	if len(fillers) == 0 {
		fillers = DefaultFillers
	}

	patterns := make([]*regexp.Regexp, len(fillers))
	for i, filler := range fillers {
		patterns[i] = regexp.MustCompile(`(?i)\b` + regexp.QuoteMeta(filler) + `[.,]?\b`)
	}

	return &Normalizer{
		fillers:  append([]string(nil), fillers...),
		patterns: patterns,
	}
}

// Fillers returns the configured vocabulary in removal order
func (n *Normalizer) Fillers() []string {
	return append([]string(nil), n.fillers...)
}

// Normalize applies the cleanup steps in a fixed order: filler removal,
// whitespace collapsing, space-before-punctuation removal, leading comma
// removal, trim. The order matters because later steps clean up what earlier
// ones leave behind.
func (n *Normalizer) Normalize(text string) string {
	// Remove each filler with its optional trailing comma/period
	for _, pattern := range n.patterns {
		text = pattern.ReplaceAllString(text, "")
	}

	// Remove extra spaces and fix space before punctuation
	text = extraSpaces.ReplaceAllString(text, " ")
	text = spacedPunct.ReplaceAllString(text, "${1}")

	// Handle leftover commas at the beginning of the text
	text = leadingComma.ReplaceAllString(text, "")

	return strings.TrimSpace(text)
}
