// Package normalize cleans scientific plant names for external
// matching: known typo and synonym corrections, author-citation
// stripping, and detection of non-scientific material descriptors that
// should never be submitted to a matching service.
package normalize

import (
	"regexp"
	"strings"
)

// Candidates is the ordered set of names to try against an external
// matching service: the cleaned name first, the raw input as a fallback
// when cleaning changed it. Skipped marks names that are not scientific
// names at all.
type Candidates struct {
	Names   []string
	Skipped bool
}

// Normalizer applies a compiled rules table to raw scientific names.
type Normalizer struct {
	rules *compiledRules
}

// New builds a Normalizer from a custom rules table.
func New(rules *Rules) (*Normalizer, error) {
	compiled, err := compileRules(rules)
	if err != nil {
		return nil, err
	}
	return &Normalizer{rules: compiled}, nil
}

// Default returns a Normalizer using the embedded rules table.
func Default() *Normalizer {
	return &Normalizer{rules: loadDefaultRules()}
}

// Normalize cleans a raw scientific name using the embedded rules.
func Normalize(raw string) Candidates {
	return Default().Normalize(raw)
}

var (
	// Parenthesized author-citation clauses, e.g. "(Thunb. ex Murray)".
	parenthetical = regexp.MustCompile(`\([^()]*\)`)

	// The bare "Author ex Author" idiom outside parentheses.
	exIdiom = regexp.MustCompile(`\s+\p{Lu}[\p{L}.\-]*\s+[eE]x\s+\p{Lu}[\p{L}.\-]*`)

	// Leftover empty parentheses after stripping.
	emptyParens = regexp.MustCompile(`\(\s*\)`)

	whitespace = regexp.MustCompile(`\s+`)
)

// Normalize cleans the raw name and returns the candidate sequence.
func (n *Normalizer) Normalize(raw string) Candidates {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return Candidates{}
	}

	for _, re := range n.rules.skips {
		if re.MatchString(trimmed) {
			return Candidates{Names: []string{trimmed}, Skipped: true}
		}
	}

	cleaned := n.applyCorrections(trimmed)
	cleaned = parenthetical.ReplaceAllString(cleaned, " ")
	cleaned = exIdiom.ReplaceAllString(cleaned, " ")
	cleaned = n.stripAuthors(cleaned)
	cleaned = tidy(cleaned)

	if cleaned == "" || cleaned == trimmed {
		return Candidates{Names: []string{trimmed}}
	}
	return Candidates{Names: []string{cleaned, trimmed}}
}

// applyCorrections applies the single best correction: the longest
// matching pattern wins, ties resolved by declaration order.
func (n *Normalizer) applyCorrections(name string) string {
	best := -1
	for i, c := range n.rules.corrections {
		if !strings.Contains(name, c.Match) {
			continue
		}
		if best == -1 || len(c.Match) > len(n.rules.corrections[best].Match) {
			best = i
		}
	}
	if best == -1 {
		return name
	}
	c := n.rules.corrections[best]
	return strings.ReplaceAll(name, c.Match, c.Replace)
}

// stripAuthors removes bare author abbreviations on token boundaries.
// Each pattern consumes its delimiting whitespace; tidy restores single
// spacing afterwards.
func (n *Normalizer) stripAuthors(name string) string {
	for _, re := range n.rules.authors {
		for re.MatchString(name) {
			name = re.ReplaceAllString(name, " ")
		}
	}
	return name
}

// tidy collapses whitespace, drops empty parenthetical remnants and
// dangling separators, and strips a single trailing period.
func tidy(name string) string {
	name = emptyParens.ReplaceAllString(name, " ")
	name = whitespace.ReplaceAllString(name, " ")
	name = strings.TrimSpace(name)
	name = strings.Trim(name, ",;")
	name = strings.TrimSpace(name)
	if strings.HasSuffix(name, ".") && !strings.HasSuffix(name, "..") {
		name = strings.TrimSuffix(name, ".")
		name = strings.TrimSpace(name)
	}
	return name
}
