package linker

import (
	"context"
	"net/url"
	"strings"
	"time"

	"github.com/openherb/herbarium/internal/transport"
	"github.com/openherb/herbarium/pkg/corpus"
)

// Wikidata endpoints.
const (
	DefaultWikidataAPI    = "https://www.wikidata.org/w/api.php"
	DefaultWikidataSPARQL = "https://query.wikidata.org/sparql"
)

// taxonHints mark entity-search descriptions that look like a plant or
// taxon rather than a film, a person, or a village.
var taxonHints = []string{
	"species", "genus", "taxon", "plant", "herb", "fungus",
	"tree", "shrub", "vine", "flowering",
}

// Wikidata matches names via the entity-search API, falling back to a
// SPARQL taxon-name query when the search finds nothing.
type Wikidata struct {
	api    string
	sparql string
	client *transport.Client
}

// NewWikidata creates the Wikidata matching service.
func NewWikidata(timeout time.Duration) *Wikidata {
	return &Wikidata{
		api:    DefaultWikidataAPI,
		sparql: DefaultWikidataSPARQL,
		client: transport.New(timeout),
	}
}

// NewWikidataWithEndpoints creates a Wikidata service against custom
// endpoints. Tests point these at a local server.
func NewWikidataWithEndpoints(api, sparql string, timeout time.Duration) *Wikidata {
	w := NewWikidata(timeout)
	w.api = api
	w.sparql = sparql
	return w
}

// Name implements Service.
func (w *Wikidata) Name() string { return "wikidata" }

// Domain implements Service.
func (w *Wikidata) Domain() string { return "wikidata.org" }

type wbSearchResponse struct {
	Search []struct {
		ID          string `json:"id"`
		Label       string `json:"label"`
		Description string `json:"description"`
	} `json:"search"`
}

type sparqlResponse struct {
	Results struct {
		Bindings []struct {
			Item struct {
				Value string `json:"value"`
			} `json:"item"`
		} `json:"bindings"`
	} `json:"results"`
}

// Match implements Service. Entity search returns no score, so the
// confidence is synthesized: a taxon-like description clears the gate,
// a hit without one is reported below it for manual review.
func (w *Wikidata) Match(ctx context.Context, name string) (*Match, error) {
	endpoint := w.api + "?action=wbsearchentities&format=json&language=en&type=item&limit=7&search=" +
		url.QueryEscape(name)

	var resp wbSearchResponse
	if err := w.client.GetJSON(ctx, w.Name(), endpoint, &resp); err != nil {
		return nil, err
	}

	for _, hit := range resp.Search {
		if taxonLike(hit.Description) {
			return &Match{
				ExternalID: hit.ID,
				Kind:       "entity-search",
				Confidence: 90,
				Label:      hit.Label,
			}, nil
		}
	}

	if len(resp.Search) > 0 {
		hit := resp.Search[0]
		return &Match{
			ExternalID: hit.ID,
			Confidence: 40,
			Label:      hit.Label,
		}, nil
	}

	return w.matchByTaxonName(ctx, name)
}

// matchByTaxonName is the structured fallback: an exact taxon-name
// (P225) binding is as strong as a match gets.
func (w *Wikidata) matchByTaxonName(ctx context.Context, name string) (*Match, error) {
	query := `SELECT ?item WHERE { ?item wdt:P225 "` + strings.ReplaceAll(name, `"`, `\"`) + `" } LIMIT 1`
	endpoint := w.sparql + "?format=json&query=" + url.QueryEscape(query)

	var resp sparqlResponse
	if err := w.client.GetJSON(ctx, w.Name(), endpoint, &resp); err != nil {
		return nil, err
	}
	if len(resp.Results.Bindings) == 0 {
		return nil, nil
	}

	value := resp.Results.Bindings[0].Item.Value
	qid := value[strings.LastIndexByte(value, '/')+1:]
	if qid == "" {
		return nil, nil
	}
	return &Match{
		ExternalID: qid,
		Kind:       "taxon-name",
		Confidence: 100,
		Label:      name,
	}, nil
}

// URL implements Service, returning the canonical entity IRI used in
// sameAs cross-references.
func (w *Wikidata) URL(m *Match) string {
	return "http://www.wikidata.org/entity/" + m.ExternalID
}

// Apply implements Service, recording the Q identifier.
func (w *Wikidata) Apply(p *corpus.Plant, m *Match) {
	p.WikidataID = m.ExternalID
}

// taxonLike reports whether an entity description suggests a taxon.
func taxonLike(description string) bool {
	d := strings.ToLower(description)
	for _, hint := range taxonHints {
		if strings.Contains(d, hint) {
			return true
		}
	}
	return false
}
