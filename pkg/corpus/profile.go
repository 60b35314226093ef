package corpus

import (
	"encoding/json"
	"sort"
)

// Profile is the interpretation of a plant within one medicine system.
// The System field is assigned from the directory the document was
// loaded from; it is not serialized.
type Profile struct {
	Context json.RawMessage
	ID      string
	Type    string
	System  Role
	Name    LanguageMap

	// DerivedFromPlant points back to exactly one Plant.
	DerivedFromPlant *Ref
	PlantPart        string

	// TCM classification.
	Nature    *Ref
	Flavors   []Ref
	Meridians []Ref

	// Ayurveda classification.
	Rasas  []Ref
	Virya  *Ref
	Vipaka *Ref
	Gunas  []Ref
	Doshas []Ref

	// Content holds the system-namespaced free-text fields (tcmHistory,
	// ayurvedaTraditionalUsage, ...) keyed by their wire name. Unscoped
	// spellings decode here too so the validator can suggest the
	// prefixed name without losing the text.
	Content map[string]LanguageMap

	Extra map[string]json.RawMessage
}

// DocID implements Document.
func (p *Profile) DocID() string { return p.ID }

// DocRole implements Document.
func (p *Profile) DocRole() Role {
	if p.System != "" {
		return p.System
	}
	return RoleTCM
}

// Slug returns the profile's identifier slug.
func (p *Profile) Slug() string { return Slug(p.ID) }

// Subject implements Localizable.
func (p *Profile) Subject() string {
	if p.Name.Has(TagEnglish) {
		return p.Name.Get(TagEnglish)
	}
	return p.Slug()
}

// LanguageFields implements Localizable.
func (p *Profile) LanguageFields() []LangField {
	var fields []LangField
	if p.Name != nil {
		fields = append(fields, LangField{Name: "name", Map: p.Name})
	}
	keys := make([]string, 0, len(p.Content))
	for k := range p.Content {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if p.Content[k] != nil {
			fields = append(fields, LangField{Name: k, Map: p.Content[k]})
		}
	}
	return fields
}

// PlantID returns the referenced plant IRI, or "" when absent.
func (p *Profile) PlantID() string {
	if p.DerivedFromPlant == nil {
		return ""
	}
	return p.DerivedFromPlant.ID
}

// ClassificationRefs returns every controlled-vocabulary reference the
// profile carries, for resolution against the reference corpus.
func (p *Profile) ClassificationRefs() []Ref {
	var refs []Ref
	appendOne := func(r *Ref) {
		if r != nil {
			refs = append(refs, *r)
		}
	}
	appendOne(p.Nature)
	refs = append(refs, p.Flavors...)
	refs = append(refs, p.Meridians...)
	refs = append(refs, p.Rasas...)
	appendOne(p.Virya)
	appendOne(p.Vipaka)
	refs = append(refs, p.Gunas...)
	refs = append(refs, p.Doshas...)
	return refs
}

// UnmarshalJSON decodes a profile document. Content fields (scoped or
// generic) are collected into Content; everything else unknown lands in
// Extra.
func (p *Profile) UnmarshalJSON(data []byte) error {
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
	p.Name = popLangMap(fields, extra, "name")
	p.DerivedFromPlant = popRef(fields, "derivedFromPlant")
	p.PlantPart = popString(fields, extra, "plantPart")

	p.Nature = popRef(fields, "hasNature")
	p.Flavors = popRefs(fields, "hasFlavor")
	p.Meridians = popRefs(fields, "entersMeridian")

	p.Rasas = popRefs(fields, "hasRasa")
	p.Virya = popRef(fields, "hasVirya")
	p.Vipaka = popRef(fields, "hasVipaka")
	p.Gunas = popRefs(fields, "hasGuna")
	p.Doshas = popRefs(fields, "balancesDosha")

	for k, v := range fields {
		if IsContentKey(k) {
			if m, ok := decodeLangMap(v); ok {
				if p.Content == nil {
					p.Content = make(map[string]LanguageMap)
				}
				p.Content[k] = m
				continue
			}
		}
		extra[k] = v
	}
	if len(extra) > 0 {
		p.Extra = extra
	}
	return nil
}

// MarshalJSON encodes the profile with stable key order.
func (p *Profile) MarshalJSON() ([]byte, error) {
	w := newObjectWriter()
	w.raw("@context", p.Context)
	if p.ID != "" {
		w.field("@id", p.ID)
	}
	if p.Type != "" {
		w.field("@type", p.Type)
	}
	if p.Name != nil {
		w.field("name", p.Name)
	}
	if p.DerivedFromPlant != nil {
		w.field("derivedFromPlant", p.DerivedFromPlant)
	}
	if p.PlantPart != "" {
		w.field("plantPart", p.PlantPart)
	}
	if p.Nature != nil {
		w.field("hasNature", p.Nature)
	}
	if len(p.Flavors) > 0 {
		w.field("hasFlavor", p.Flavors)
	}
	if len(p.Meridians) > 0 {
		w.field("entersMeridian", p.Meridians)
	}
	if len(p.Rasas) > 0 {
		w.field("hasRasa", p.Rasas)
	}
	if p.Virya != nil {
		w.field("hasVirya", p.Virya)
	}
	if p.Vipaka != nil {
		w.field("hasVipaka", p.Vipaka)
	}
	if len(p.Gunas) > 0 {
		w.field("hasGuna", p.Gunas)
	}
	if len(p.Doshas) > 0 {
		w.field("balancesDosha", p.Doshas)
	}
	keys := make([]string, 0, len(p.Content))
	for k := range p.Content {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		w.field(k, p.Content[k])
	}
	w.extras(p.Extra)
	return w.bytes()
}
