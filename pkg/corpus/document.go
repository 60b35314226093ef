// Package corpus models the medicinal-plant knowledge base: a directory
// tree of JSON-LD documents addressed by relative IRIs such as
// plant/ginseng or tcm/ren-shen. It provides the document types, the
// codec that round-trips them byte-stably, the walker that enumerates
// them by role, and atomic write-back.
package corpus

import (
	"encoding/json"
	"strings"
)

// Document is the tagged union over per-role corpus record types.
type Document interface {
	// DocID returns the document's relative IRI (@id).
	DocID() string
	// DocRole returns the corpus role the document was loaded as.
	DocRole() Role
}

// Localizable is a document (or nested record) carrying language-mapped
// fields that the translation filler can inspect and back-fill.
type Localizable interface {
	Document
	// LanguageFields lists the language maps present on the document.
	LanguageFields() []LangField
	// Subject returns a short human-readable handle used when
	// synthesizing placeholder text.
	Subject() string
}

// LangField names one language-mapped field on a document. Map is the
// live map; writes through it mutate the document.
type LangField struct {
	Name string
	Map  LanguageMap
}

// ContentSuffixes are the free-text content fields a system profile may
// carry, in their canonical (unprefixed) spelling.
var ContentSuffixes = []string{"History", "TraditionalUsage", "ModernResearch", "Functions"}

// genericContentKeys maps the forbidden unscoped spellings to their
// canonical suffix.
var genericContentKeys = map[string]string{
	"history":          "History",
	"traditionalUsage": "TraditionalUsage",
	"modernResearch":   "ModernResearch",
	"functions":        "Functions",
}

// ContentKey returns the system-scoped field name for a content suffix,
// e.g. ContentKey(RoleTCM, "History") == "tcmHistory".
func ContentKey(system Role, suffix string) string {
	return string(system) + suffix
}

// ParseContentKey splits a system-scoped content key into its owning
// system and suffix. ok is false for keys that are not scoped content
// fields.
func ParseContentKey(key string) (system Role, suffix string, ok bool) {
	for _, sys := range SystemRoles {
		prefix := string(sys)
		if !strings.HasPrefix(key, prefix) {
			continue
		}
		rest := key[len(prefix):]
		for _, s := range ContentSuffixes {
			if rest == s {
				return sys, s, true
			}
		}
	}
	return "", "", false
}

// GenericContentSuffix reports whether key is an unscoped content field
// spelling, returning its canonical suffix.
func GenericContentSuffix(key string) (suffix string, ok bool) {
	suffix, ok = genericContentKeys[key]
	return suffix, ok
}

// IsContentKey reports whether key names a content field in either its
// system-scoped or forbidden generic form.
func IsContentKey(key string) bool {
	if _, _, ok := ParseContentKey(key); ok {
		return true
	}
	_, ok := genericContentKeys[key]
	return ok
}

// Parse decodes a corpus document of the given role.
func Parse(role Role, data []byte) (Document, error) {
	switch role {
	case RolePlant:
		var p Plant
		if err := json.Unmarshal(data, &p); err != nil {
			return nil, err
		}
		return &p, nil
	case RoleTCM, RoleAyurveda, RoleWestern:
		var pr Profile
		if err := json.Unmarshal(data, &pr); err != nil {
			return nil, err
		}
		pr.System = role
		return &pr, nil
	case RoleReference:
		var s ConceptScheme
		if err := json.Unmarshal(data, &s); err != nil {
			return nil, err
		}
		return &s, nil
	default:
		return nil, &UnknownRoleError{Role: role}
	}
}

// UnknownRoleError reports an attempt to parse a document under an
// unrecognized role.
type UnknownRoleError struct {
	Role Role
}

func (e *UnknownRoleError) Error() string {
	return "unknown corpus role: " + string(e.Role)
}

// decodeString pops a JSON string, reporting false for other shapes.
func decodeString(raw json.RawMessage) (string, bool) {
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return "", false
	}
	return s, true
}

// popLangMap moves fields[key] into a language map when well-shaped;
// badly shaped values stay behind in extra for the validator to flag.
func popLangMap(fields map[string]json.RawMessage, extra map[string]json.RawMessage, key string) LanguageMap {
	raw, present := fields[key]
	if !present {
		return nil
	}
	delete(fields, key)
	m, ok := decodeLangMap(raw)
	if !ok {
		extra[key] = raw
		return nil
	}
	return m
}

// popString moves fields[key] into a string, leaving malformed values in extra.
func popString(fields map[string]json.RawMessage, extra map[string]json.RawMessage, key string) string {
	raw, present := fields[key]
	if !present {
		return ""
	}
	delete(fields, key)
	s, ok := decodeString(raw)
	if !ok {
		extra[key] = raw
		return ""
	}
	return s
}

// popRef moves fields[key] into a Ref pointer.
func popRef(fields map[string]json.RawMessage, key string) *Ref {
	raw, present := fields[key]
	if !present {
		return nil
	}
	delete(fields, key)
	var r Ref
	_ = r.UnmarshalJSON(raw) // never fails; unknown shapes are preserved
	return &r
}

// popRefs moves fields[key] into a Ref slice. A single reference value is
// accepted in place of a one-element array.
func popRefs(fields map[string]json.RawMessage, key string) []Ref {
	raw, present := fields[key]
	if !present {
		return nil
	}
	delete(fields, key)
	var refs []Ref
	if err := json.Unmarshal(raw, &refs); err == nil {
		return refs
	}
	var single Ref
	_ = single.UnmarshalJSON(raw)
	return []Ref{single}
}
