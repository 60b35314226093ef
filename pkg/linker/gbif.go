package linker

import (
	"context"
	"net/url"
	"strconv"
	"time"

	"github.com/openherb/herbarium/internal/transport"
	"github.com/openherb/herbarium/pkg/corpus"
)

// DefaultGBIFBase is the GBIF species API root.
const DefaultGBIFBase = "https://api.gbif.org/v1"

// GBIF matches scientific names against the GBIF backbone taxonomy.
type GBIF struct {
	base   string
	client *transport.Client
}

// NewGBIF creates the GBIF matching service.
func NewGBIF(timeout time.Duration) *GBIF {
	return &GBIF{
		base:   DefaultGBIFBase,
		client: transport.New(timeout),
	}
}

// NewGBIFWithBase creates a GBIF service against a custom API root.
// Tests point this at a local server.
func NewGBIFWithBase(base string, timeout time.Duration) *GBIF {
	g := NewGBIF(timeout)
	g.base = base
	return g
}

// Name implements Service.
func (g *GBIF) Name() string { return "gbif" }

// Domain implements Service.
func (g *GBIF) Domain() string { return "gbif.org" }

// gbifMatchResponse is the subset of the species/match payload we read.
type gbifMatchResponse struct {
	UsageKey       int64  `json:"usageKey"`
	MatchType      string `json:"matchType"`
	Confidence     int    `json:"confidence"`
	ScientificName string `json:"scientificName"`
}

// Match implements Service using the fuzzy species/match endpoint.
func (g *GBIF) Match(ctx context.Context, name string) (*Match, error) {
	endpoint := g.base + "/species/match?name=" + url.QueryEscape(name)

	var resp gbifMatchResponse
	if err := g.client.GetJSON(ctx, g.Name(), endpoint, &resp); err != nil {
		return nil, err
	}

	// GBIF answers matchType NONE (with high "confidence") when it has
	// nothing; that is no match, not a low-confidence match.
	if resp.MatchType == "" || resp.MatchType == "NONE" || resp.UsageKey == 0 {
		return nil, nil
	}

	return &Match{
		ExternalID: strconv.FormatInt(resp.UsageKey, 10),
		Kind:       resp.MatchType,
		Confidence: resp.Confidence,
		Label:      resp.ScientificName,
	}, nil
}

// URL implements Service.
func (g *GBIF) URL(m *Match) string {
	return "https://www.gbif.org/species/" + m.ExternalID
}

// Apply implements Service, recording the numeric usage key.
func (g *GBIF) Apply(p *corpus.Plant, m *Match) {
	if key, err := strconv.ParseInt(m.ExternalID, 10, 64); err == nil {
		p.GBIFID = key
	}
}
