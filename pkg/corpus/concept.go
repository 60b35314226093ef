package corpus

import "encoding/json"

// Concept is one controlled-vocabulary entry (a nature, flavor,
// meridian, dosha, rasa, ...). The broader/narrower/related relations
// form a directed, possibly cyclic graph; they hold IDs only and are
// resolved against the corpus-wide concept arena, never owned.
type Concept struct {
	ID         string
	Type       string
	PrefLabel  LanguageMap
	Definition LanguageMap
	Broader    []Ref
	Narrower   []Ref
	Related    []Ref
	Extra      map[string]json.RawMessage
}

// DocID implements Document.
func (c *Concept) DocID() string { return c.ID }

// DocRole implements Document.
func (c *Concept) DocRole() Role { return RoleReference }

// Subject implements Localizable.
func (c *Concept) Subject() string {
	if c.PrefLabel.Has(TagEnglish) {
		return c.PrefLabel.Get(TagEnglish)
	}
	return Slug(c.ID)
}

// LanguageFields implements Localizable.
func (c *Concept) LanguageFields() []LangField {
	var fields []LangField
	if c.PrefLabel != nil {
		fields = append(fields, LangField{Name: "prefLabel", Map: c.PrefLabel})
	}
	if c.Definition != nil {
		fields = append(fields, LangField{Name: "definition", Map: c.Definition})
	}
	return fields
}

// UnmarshalJSON decodes a concept entry.
func (c *Concept) UnmarshalJSON(data []byte) error {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}
	extra := make(map[string]json.RawMessage)

	c.ID = popString(fields, extra, "@id")
	c.Type = popString(fields, extra, "@type")
	c.PrefLabel = popLangMap(fields, extra, "prefLabel")
	c.Definition = popLangMap(fields, extra, "definition")
	c.Broader = popRefs(fields, "broader")
	c.Narrower = popRefs(fields, "narrower")
	c.Related = popRefs(fields, "related")

	for k, v := range fields {
		extra[k] = v
	}
	if len(extra) > 0 {
		c.Extra = extra
	}
	return nil
}

// MarshalJSON encodes the concept with stable key order.
func (c *Concept) MarshalJSON() ([]byte, error) {
	w := newObjectWriter()
	if c.ID != "" {
		w.field("@id", c.ID)
	}
	if c.Type != "" {
		w.field("@type", c.Type)
	}
	if c.PrefLabel != nil {
		w.field("prefLabel", c.PrefLabel)
	}
	if c.Definition != nil {
		w.field("definition", c.Definition)
	}
	if len(c.Broader) > 0 {
		w.field("broader", c.Broader)
	}
	if len(c.Narrower) > 0 {
		w.field("narrower", c.Narrower)
	}
	if len(c.Related) > 0 {
		w.field("related", c.Related)
	}
	w.extras(c.Extra)
	return w.bytes()
}

// ConceptScheme is one reference dataset file: a named collection of
// concepts for a single vocabulary (natures, flavors, meridians, ...).
type ConceptScheme struct {
	Context   json.RawMessage
	ID        string
	Type      string
	PrefLabel LanguageMap
	Concepts  []*Concept
	Extra     map[string]json.RawMessage
}

// DocID implements Document.
func (s *ConceptScheme) DocID() string { return s.ID }

// DocRole implements Document.
func (s *ConceptScheme) DocRole() Role { return RoleReference }

// UnmarshalJSON decodes a reference dataset file.
func (s *ConceptScheme) UnmarshalJSON(data []byte) error {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}
	extra := make(map[string]json.RawMessage)

	if raw, ok := fields["@context"]; ok {
		s.Context = raw
		delete(fields, "@context")
	}
	s.ID = popString(fields, extra, "@id")
	s.Type = popString(fields, extra, "@type")
	s.PrefLabel = popLangMap(fields, extra, "prefLabel")

	if raw, ok := fields["concepts"]; ok {
		delete(fields, "concepts")
		if err := json.Unmarshal(raw, &s.Concepts); err != nil {
			extra["concepts"] = raw
		}
	}

	for k, v := range fields {
		extra[k] = v
	}
	if len(extra) > 0 {
		s.Extra = extra
	}
	return nil
}

// MarshalJSON encodes the scheme with stable key order.
func (s *ConceptScheme) MarshalJSON() ([]byte, error) {
	w := newObjectWriter()
	w.raw("@context", s.Context)
	if s.ID != "" {
		w.field("@id", s.ID)
	}
	if s.Type != "" {
		w.field("@type", s.Type)
	}
	if s.PrefLabel != nil {
		w.field("prefLabel", s.PrefLabel)
	}
	if len(s.Concepts) > 0 {
		w.field("concepts", s.Concepts)
	}
	w.extras(s.Extra)
	return w.bytes()
}
