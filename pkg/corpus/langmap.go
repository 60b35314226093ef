package corpus

import (
	"strings"

	"golang.org/x/text/language"
)

// Language tags with special meaning for corpus completeness rules.
const (
	TagEnglish     = "en"
	TagTraditional = "zh-Hant"
	TagSimplified  = "zh-Hans"
)

// MinimumTags is the language set every "complete" map must carry.
var MinimumTags = []string{TagEnglish, TagTraditional, TagSimplified}

// LanguageMap maps a language tag to localized text for one field.
type LanguageMap map[string]string

// Get returns the text for a tag, or "" if absent.
func (m LanguageMap) Get(tag string) string {
	if m == nil {
		return ""
	}
	return m[tag]
}

// Has reports whether the map carries non-blank text for the tag.
func (m LanguageMap) Has(tag string) bool {
	return strings.TrimSpace(m.Get(tag)) != ""
}

// Missing returns the subset of tags with no non-blank value, in the
// order given.
func (m LanguageMap) Missing(tags ...string) []string {
	var missing []string
	for _, tag := range tags {
		if !m.Has(tag) {
			missing = append(missing, tag)
		}
	}
	return missing
}

// Complete reports whether the map carries every minimum language tag.
func (m LanguageMap) Complete() bool {
	return len(m.Missing(MinimumTags...)) == 0
}

// Set assigns text for a tag, allocating the map's caller responsibility.
// It returns false (and leaves the map untouched) when the tag already
// holds a non-blank value; existing content is never overwritten.
func (m LanguageMap) Set(tag, text string) bool {
	if m.Has(tag) {
		return false
	}
	m[tag] = text
	return true
}

// ValidTag reports whether tag parses as a BCP 47 language tag.
func ValidTag(tag string) bool {
	if tag == "" {
		return false
	}
	_, err := language.Parse(tag)
	return err == nil
}
