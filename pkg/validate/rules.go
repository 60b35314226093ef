package validate

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/openherb/herbarium/pkg/corpus"
)

// requiredClassification lists the classification fields each system
// profile must carry. Western profiles have no mandatory controlled
// vocabulary beyond the common required fields.
var requiredClassification = map[corpus.Role][]string{
	corpus.RoleTCM:      {"hasNature", "hasFlavor", "entersMeridian"},
	corpus.RoleAyurveda: {"hasRasa", "hasVirya", "hasVipaka", "hasGuna"},
	corpus.RoleWestern:  {},
}

func plantIssues(p *corpus.Plant) []Issue {
	var issues []Issue

	if p.ID == "" {
		issues = append(issues, issue(Error, "@id", MissingField, "plant documents require an @id"))
	}
	if strings.TrimSpace(p.ScientificName) == "" {
		issues = append(issues, issue(Error, "scientificName", MissingField, "plant documents require a scientific name"))
	}

	issues = append(issues, requiredLangMap("name", p.Name, p.Extra, true)...)
	issues = append(issues, optionalLangMap("commonName", p.CommonName, p.Extra)...)
	issues = append(issues, optionalLangMap("description", p.Description, p.Extra)...)

	// Scoping: plants are language-agnostic botany. Any content field,
	// scoped or generic, is a blocking error.
	for _, key := range sortedKeys(p.Extra) {
		if corpus.IsContentKey(key) {
			issues = append(issues, issue(Error, key, ScopeViolation,
				"system content belongs on a system profile, not the plant"))
		}
	}

	return issues
}

func profileIssues(p *corpus.Profile) []Issue {
	var issues []Issue
	system := p.System

	if p.ID == "" {
		issues = append(issues, issue(Error, "@id", MissingField, "profile documents require an @id"))
	}
	if p.DerivedFromPlant == nil {
		issues = append(issues, issue(Error, "derivedFromPlant", MissingField, "profiles must reference their plant"))
	}

	issues = append(issues, requiredLangMap("name", p.Name, p.Extra, true)...)

	for _, field := range requiredClassification[system] {
		if !profileHasClassification(p, field) {
			issues = append(issues, issue(Error, field, MissingField,
				fmt.Sprintf("%s profiles require %s", system, field)))
		}
	}

	// Scoping: content fields must carry this profile's system prefix.
	for _, key := range contentKeys(p) {
		if sys, _, ok := corpus.ParseContentKey(key); ok {
			if sys != system {
				issues = append(issues, issue(Error, key, ScopeViolation,
					fmt.Sprintf("field is scoped to %s but this is a %s profile", sys, system)))
			}
			continue
		}
		if suffix, ok := corpus.GenericContentSuffix(key); ok {
			issues = append(issues, issue(Warning, key, ScopeViolation,
				fmt.Sprintf("use the system-scoped name %s", corpus.ContentKey(system, suffix))))
		}
	}

	// Content fields that decoded are language maps; check completeness.
	for _, key := range sortedLangKeys(p.Content) {
		issues = append(issues, langMapIssues(key, p.Content[key], false)...)
	}
	// Content keys that did not decode as maps sit in Extra.
	for _, key := range sortedKeys(p.Extra) {
		if corpus.IsContentKey(key) {
			issues = append(issues, issue(Warning, key, WrongShape,
				"content fields must be language maps, not bare strings"))
		}
	}

	return issues
}

func schemeIssues(s *corpus.ConceptScheme) []Issue {
	var issues []Issue
	if s.ID == "" {
		issues = append(issues, issue(Error, "@id", MissingField, "reference datasets require an @id"))
	}
	for _, concept := range s.Concepts {
		prefix := "concepts[" + concept.ID + "]."
		if concept.ID == "" {
			issues = append(issues, issue(Error, "concepts[].@id", MissingField, "every concept requires an @id"))
		}
		if concept.PrefLabel == nil {
			if _, present := concept.Extra["prefLabel"]; present {
				issues = append(issues, issue(Warning, prefix+"prefLabel", WrongShape,
					"prefLabel must be a language map"))
			} else {
				issues = append(issues, issue(Error, prefix+"prefLabel", MissingField,
					"every concept requires a preferred label"))
			}
			continue
		}
		issues = append(issues, langMapIssues(prefix+"prefLabel", concept.PrefLabel, false)...)
		if concept.Definition != nil {
			issues = append(issues, langMapIssues(prefix+"definition", concept.Definition, false)...)
		}
	}
	return issues
}

// requiredLangMap checks a mandatory multilingual field. critical makes
// missing minimum-set translations blocking (identity fields like name).
func requiredLangMap(field string, m corpus.LanguageMap, extra map[string]json.RawMessage, critical bool) []Issue {
	if m == nil {
		if _, present := extra[field]; present {
			return []Issue{issue(Warning, field, WrongShape,
				"multilingual fields must be language maps, not bare strings")}
		}
		return []Issue{issue(Error, field, MissingField, "required multilingual field is absent")}
	}
	return langMapIssues(field, m, critical)
}

// optionalLangMap checks a multilingual field that may be absent.
func optionalLangMap(field string, m corpus.LanguageMap, extra map[string]json.RawMessage) []Issue {
	if m == nil {
		if _, present := extra[field]; present {
			return []Issue{issue(Warning, field, WrongShape,
				"multilingual fields must be language maps, not bare strings")}
		}
		return nil
	}
	return langMapIssues(field, m, false)
}

// langMapIssues checks tag validity and minimum-set completeness.
func langMapIssues(field string, m corpus.LanguageMap, critical bool) []Issue {
	var issues []Issue

	tags := make([]string, 0, len(m))
	for tag := range m {
		tags = append(tags, tag)
	}
	sort.Strings(tags)
	for _, tag := range tags {
		if !corpus.ValidTag(tag) {
			issues = append(issues, issue(Warning, field, WrongShape,
				fmt.Sprintf("invalid language tag %q", tag)))
		}
	}

	severity := Warning
	if critical {
		severity = Error
	}
	for _, tag := range m.Missing(corpus.MinimumTags...) {
		issues = append(issues, issue(severity, field, MissingTranslation,
			fmt.Sprintf("missing %s translation", tag)))
	}
	return issues
}

// profileHasClassification reports whether the named classification
// field carries at least one reference.
func profileHasClassification(p *corpus.Profile, field string) bool {
	switch field {
	case "hasNature":
		return p.Nature != nil
	case "hasFlavor":
		return len(p.Flavors) > 0
	case "entersMeridian":
		return len(p.Meridians) > 0
	case "hasRasa":
		return len(p.Rasas) > 0
	case "hasVirya":
		return p.Virya != nil
	case "hasVipaka":
		return p.Vipaka != nil
	case "hasGuna":
		return len(p.Gunas) > 0
	default:
		return false
	}
}

// contentKeys returns every content-field name present on the profile,
// whether it decoded into Content or fell through to Extra.
func contentKeys(p *corpus.Profile) []string {
	seen := make(map[string]bool)
	var keys []string
	for k := range p.Content {
		if !seen[k] {
			seen[k] = true
			keys = append(keys, k)
		}
	}
	for k := range p.Extra {
		if corpus.IsContentKey(k) && !seen[k] {
			seen[k] = true
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	return keys
}

func sortedKeys(m map[string]json.RawMessage) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func sortedLangKeys(m map[string]corpus.LanguageMap) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
