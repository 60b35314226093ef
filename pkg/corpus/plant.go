package corpus

import (
	"encoding/json"
	"strings"
)

// Plant is the botanical, language-agnostic record for one species or
// taxon. It must never carry medicine-system content; that belongs on
// the system profiles that reference it.
type Plant struct {
	Context        json.RawMessage
	ID             string
	Type           string
	ScientificName string
	Name           LanguageMap
	CommonName     LanguageMap
	Description    LanguageMap
	Family         string
	Genus          string
	Category       *Ref
	Compounds      []Ref
	SameAs         []Ref
	GBIFID         int64
	WikidataID     string

	// Extra holds unknown fields verbatim so hand-authored additions
	// survive a rewrite. Scope violations surface here too: a plant
	// carrying tcmFunctions lands in Extra and the validator flags it.
	Extra map[string]json.RawMessage
}

// DocID implements Document.
func (p *Plant) DocID() string { return p.ID }

// DocRole implements Document.
func (p *Plant) DocRole() Role { return RolePlant }

// Slug returns the plant's identifier slug.
func (p *Plant) Slug() string { return Slug(p.ID) }

// Subject implements Localizable.
func (p *Plant) Subject() string {
	if p.Name.Has(TagEnglish) {
		return p.Name.Get(TagEnglish)
	}
	if p.ScientificName != "" {
		return p.ScientificName
	}
	return p.Slug()
}

// LanguageFields implements Localizable.
func (p *Plant) LanguageFields() []LangField {
	var fields []LangField
	if p.Name != nil {
		fields = append(fields, LangField{Name: "name", Map: p.Name})
	}
	if p.CommonName != nil {
		fields = append(fields, LangField{Name: "commonName", Map: p.CommonName})
	}
	if p.Description != nil {
		fields = append(fields, LangField{Name: "description", Map: p.Description})
	}
	return fields
}

// HasSameAsDomain reports whether any cross-reference URL contains the
// given service domain. Used for the linker's idempotence short-circuit.
func (p *Plant) HasSameAsDomain(domain string) bool {
	for _, ref := range p.SameAs {
		if strings.Contains(ref.ID, domain) {
			return true
		}
	}
	return false
}

// AddSameAs appends a cross-reference URL unless an entry with the same
// normalized URL already exists. Returns true when the link was added.
func (p *Plant) AddSameAs(url string) bool {
	key := NormalizeURL(url)
	for _, ref := range p.SameAs {
		if NormalizeURL(ref.ID) == key {
			return false
		}
	}
	p.SameAs = append(p.SameAs, ObjectRef(url))
	return true
}

// UnmarshalJSON decodes a plant document, keeping unknown fields in Extra.
func (p *Plant) UnmarshalJSON(data []byte) error {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}
	extra := make(map[string]json.RawMessage)

	if raw, ok := fields["@context"]; ok {
		p.Context = raw
		delete(fields, "@context")
	}
	p.ID = popString(fields, extra, "@id")
	p.Type = popString(fields, extra, "@type")
	p.ScientificName = popString(fields, extra, "scientificName")
	p.Name = popLangMap(fields, extra, "name")
	p.CommonName = popLangMap(fields, extra, "commonName")
	p.Description = popLangMap(fields, extra, "description")
	p.Family = popString(fields, extra, "family")
	p.Genus = popString(fields, extra, "genus")
	p.Category = popRef(fields, "category")
	p.Compounds = popRefs(fields, "hasChemicalCompound")
	p.SameAs = popRefs(fields, "sameAs")
	p.WikidataID = popString(fields, extra, "wikidataID")

	if raw, ok := fields["gbifID"]; ok {
		delete(fields, "gbifID")
		if err := json.Unmarshal(raw, &p.GBIFID); err != nil {
			extra["gbifID"] = raw
		}
	}

	for k, v := range fields {
		extra[k] = v
	}
	if len(extra) > 0 {
		p.Extra = extra
	}
	return nil
}

// MarshalJSON encodes the plant with stable key order.
func (p *Plant) MarshalJSON() ([]byte, error) {
	w := newObjectWriter()
	w.raw("@context", p.Context)
	if p.ID != "" {
		w.field("@id", p.ID)
	}
	if p.Type != "" {
		w.field("@type", p.Type)
	}
	if p.ScientificName != "" {
		w.field("scientificName", p.ScientificName)
	}
	if p.Name != nil {
		w.field("name", p.Name)
	}
	if p.CommonName != nil {
		w.field("commonName", p.CommonName)
	}
	if p.Description != nil {
		w.field("description", p.Description)
	}
	if p.Family != "" {
		w.field("family", p.Family)
	}
	if p.Genus != "" {
		w.field("genus", p.Genus)
	}
	if p.Category != nil {
		w.field("category", p.Category)
	}
	if len(p.Compounds) > 0 {
		w.field("hasChemicalCompound", p.Compounds)
	}
	if len(p.SameAs) > 0 {
		w.field("sameAs", p.SameAs)
	}
	if p.GBIFID != 0 {
		w.field("gbifID", p.GBIFID)
	}
	if p.WikidataID != "" {
		w.field("wikidataID", p.WikidataID)
	}
	w.extras(p.Extra)
	return w.bytes()
}
