// Package translate back-fills missing language variants on corpus
// documents. Simplified Chinese is derived from traditional by glyph
// substitution; everything else becomes a clearly marked placeholder
// for a human-review pass. Authored content is never overwritten, and
// filling is idempotent.
package translate

import (
	"fmt"

	"github.com/openherb/herbarium/pkg/corpus"
)

// Marker prefixes every synthesized placeholder so a review pass can
// find machine-generated values with a plain text search.
const Marker = "[TODO-translate]"

// ChangeKind classifies how a value was produced.
type ChangeKind string

// Change kinds.
const (
	// Derived values come from the traditional→simplified glyph table.
	Derived ChangeKind = "derived"
	// Copied values reuse the simplified text as a stand-in for the
	// traditional variant. A temporary approximation, not a reverse
	// transliteration.
	Copied ChangeKind = "copied"
	// Placeholder values are synthesized markers awaiting translation.
	Placeholder ChangeKind = "placeholder"
)

// Change records one filled language variant.
type Change struct {
	DocID string     `json:"docId"`
	Field string     `json:"field"`
	Tag   string     `json:"tag"`
	Kind  ChangeKind `json:"kind"`
	Value string     `json:"value"`
}

// Fill back-fills every language-mapped field present on the document
// and returns the change log. An empty log means the document was
// already complete (or carries no language maps).
func Fill(doc corpus.Document) []Change {
	switch d := doc.(type) {
	case *corpus.ConceptScheme:
		var changes []Change
		for _, concept := range d.Concepts {
			changes = append(changes, fillLocalizable(concept)...)
		}
		return changes
	case corpus.Localizable:
		return fillLocalizable(d)
	default:
		return nil
	}
}

func fillLocalizable(doc corpus.Localizable) []Change {
	var changes []Change
	for _, field := range doc.LanguageFields() {
		changes = append(changes, fillField(doc.DocID(), doc.Subject(), field)...)
	}
	return changes
}

// fillField applies the fill rules to one language map.
func fillField(docID, subject string, field corpus.LangField) []Change {
	m := field.Map
	var changes []Change

	record := func(tag string, kind ChangeKind, value string) {
		if m.Set(tag, value) {
			changes = append(changes, Change{
				DocID: docID,
				Field: field.Name,
				Tag:   tag,
				Kind:  kind,
				Value: value,
			})
		}
	}

	hant := m.Has(corpus.TagTraditional)
	hans := m.Has(corpus.TagSimplified)
	en := m.Has(corpus.TagEnglish)

	switch {
	case hant && !hans:
		record(corpus.TagSimplified, Derived, ToSimplified(m.Get(corpus.TagTraditional)))
	case hans && !hant:
		record(corpus.TagTraditional, Copied, m.Get(corpus.TagSimplified))
	case en && !hant && !hans:
		record(corpus.TagTraditional, Placeholder, placeholder(subject, field.Name, corpus.TagTraditional))
		record(corpus.TagSimplified, Placeholder, placeholder(subject, field.Name, corpus.TagSimplified))
	}

	if (hant || hans) && !en {
		record(corpus.TagEnglish, Placeholder, placeholder(subject, field.Name, corpus.TagEnglish))
	}

	return changes
}

// placeholder synthesizes a marked stand-in naming the subject and the
// missing field. Domain content is never fabricated.
func placeholder(subject, field, tag string) string {
	return fmt.Sprintf("%s %s: %s (%s)", Marker, subject, field, tag)
}
