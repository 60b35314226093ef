package normalize

import (
	_ "embed"
	"fmt"
	"regexp"
	"sync"

	"github.com/goccy/go-yaml"
)

//go:embed rules.yaml
var rulesData []byte

// Correction is one typo or outdated-synonym fix.
type Correction struct {
	Match   string `yaml:"match"`
	Replace string `yaml:"replace"`
}

// Rules is the data-driven half of the normalizer: the correction
// table, the author-abbreviation strip list, and the skip patterns.
type Rules struct {
	Corrections         []Correction `yaml:"corrections"`
	AuthorAbbreviations []string     `yaml:"authorAbbreviations"`
	SkipPatterns        []string     `yaml:"skipPatterns"`
}

// compiledRules holds the pre-compiled form used during normalization.
type compiledRules struct {
	corrections []Correction
	authors     []*regexp.Regexp
	skips       []*regexp.Regexp
}

func compileRules(r *Rules) (*compiledRules, error) {
	c := &compiledRules{corrections: r.Corrections}
	for _, abbr := range r.AuthorAbbreviations {
		// Whole-token boundary: the abbreviation must be delimited by
		// start/end or whitespace, not be a substring of another word.
		re, err := regexp.Compile(`(?:^|\s)` + regexp.QuoteMeta(abbr) + `(?:\s|$)`)
		if err != nil {
			return nil, fmt.Errorf("author abbreviation %q: %w", abbr, err)
		}
		c.authors = append(c.authors, re)
	}
	for _, pattern := range r.SkipPatterns {
		re, err := regexp.Compile(pattern)
		if err != nil {
			return nil, fmt.Errorf("skip pattern %q: %w", pattern, err)
		}
		c.skips = append(c.skips, re)
	}
	return c, nil
}

var (
	defaultRulesOnce sync.Once
	defaultRules     *compiledRules
)

// loadDefaultRules parses the embedded rules table. The table ships
// inside the binary, so a parse failure is a build defect.
func loadDefaultRules() *compiledRules {
	defaultRulesOnce.Do(func() {
		var r Rules
		if err := yaml.Unmarshal(rulesData, &r); err != nil {
			panic(fmt.Sprintf("normalize: embedded rules.yaml: %v", err))
		}
		compiled, err := compileRules(&r)
		if err != nil {
			panic(fmt.Sprintf("normalize: embedded rules.yaml: %v", err))
		}
		defaultRules = compiled
	})
	return defaultRules
}
