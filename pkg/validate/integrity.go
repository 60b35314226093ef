package validate

import (
	"fmt"

	"github.com/openherb/herbarium/pkg/corpus"
)

// classificationFields pairs each profile classification field with an
// accessor so resolution findings name the field they came from.
func classificationFields(p *corpus.Profile) map[string][]corpus.Ref {
	fields := make(map[string][]corpus.Ref)
	if p.Nature != nil {
		fields["hasNature"] = []corpus.Ref{*p.Nature}
	}
	if len(p.Flavors) > 0 {
		fields["hasFlavor"] = p.Flavors
	}
	if len(p.Meridians) > 0 {
		fields["entersMeridian"] = p.Meridians
	}
	if len(p.Rasas) > 0 {
		fields["hasRasa"] = p.Rasas
	}
	if p.Virya != nil {
		fields["hasVirya"] = []corpus.Ref{*p.Virya}
	}
	if p.Vipaka != nil {
		fields["hasVipaka"] = []corpus.Ref{*p.Vipaka}
	}
	if len(p.Gunas) > 0 {
		fields["hasGuna"] = p.Gunas
	}
	if len(p.Doshas) > 0 {
		fields["balancesDosha"] = p.Doshas
	}
	return fields
}

// resolutionIssues resolves a document's references against the corpus.
// Unresolved references are reported distinctly from malformed ones.
// References outside the recognized IRI prefixes are left alone.
func resolutionIssues(c *corpus.Corpus, doc corpus.Document) []Issue {
	p, ok := doc.(*corpus.Profile)
	if !ok {
		return nil
	}

	var issues []Issue

	if ref := p.DerivedFromPlant; ref != nil {
		switch {
		case ref.Malformed():
			issues = append(issues, issue(Error, "derivedFromPlant", MalformedReference,
				"reference is neither an IRI string nor an @id object"))
		case ref.ID == "":
			issues = append(issues, issue(Error, "derivedFromPlant", MalformedReference,
				"reference carries no identifier"))
		default:
			if _, found := c.Plant(ref.ID); !found {
				issues = append(issues, issue(Error, "derivedFromPlant", UnresolvedReference,
					fmt.Sprintf("no plant document with id %s", ref.ID)))
			}
		}
	}

	fields := classificationFields(p)
	for _, field := range []string{"hasNature", "hasFlavor", "entersMeridian", "hasRasa", "hasVirya", "hasVipaka", "hasGuna", "balancesDosha"} {
		for _, ref := range fields[field] {
			if ref.Malformed() {
				issues = append(issues, issue(Error, field, MalformedReference,
					"reference is neither an IRI string nor an @id object"))
				continue
			}
			if !corpus.RecognizedIRI(ref.ID) {
				continue // permissive: unknown formats are not failures
			}
			if _, found := c.Concept(ref.ID); !found {
				issues = append(issues, issue(Error, field, UnresolvedReference,
					fmt.Sprintf("no reference concept with id %s", ref.ID)))
			}
		}
	}

	return issues
}
