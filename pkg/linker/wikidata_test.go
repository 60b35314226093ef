package linker

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openherb/herbarium/pkg/corpus"
)

func wikidataServer(t *testing.T, search, sparql string) *Wikidata {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/api", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "wbsearchentities", r.URL.Query().Get("action"))
		_, _ = w.Write([]byte(search))
	})
	mux.HandleFunc("/sparql", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(sparql))
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return NewWikidataWithEndpoints(srv.URL+"/api", srv.URL+"/sparql", time.Second)
}

func TestWikidataTaxonLikeHitClearsGate(t *testing.T) {
	w := wikidataServer(t, `{"search": [
		{"id": "Q182881", "label": "Panax ginseng", "description": "species of plant"}
	]}`, `{}`)

	m, err := w.Match(context.Background(), "Panax ginseng")
	require.NoError(t, err)
	require.NotNil(t, m)

	assert.Equal(t, "Q182881", m.ExternalID)
	assert.Equal(t, "entity-search", m.Kind)
	assert.GreaterOrEqual(t, m.Confidence, 80)
	assert.Equal(t, "http://www.wikidata.org/entity/Q182881", w.URL(m))
}

func TestWikidataSkipsNonTaxonHits(t *testing.T) {
	w := wikidataServer(t, `{"search": [
		{"id": "Q1", "label": "Ginseng", "description": "1995 film"},
		{"id": "Q182881", "label": "Panax ginseng", "description": "species of flowering plant"}
	]}`, `{}`)

	m, err := w.Match(context.Background(), "Ginseng")
	require.NoError(t, err)
	require.NotNil(t, m)
	assert.Equal(t, "Q182881", m.ExternalID, "the first taxon-like hit wins, not the first hit")
}

func TestWikidataNonTaxonOnlyStaysBelowGate(t *testing.T) {
	w := wikidataServer(t, `{"search": [
		{"id": "Q1", "label": "Ginseng", "description": "1995 film"}
	]}`, `{}`)

	m, err := w.Match(context.Background(), "Ginseng")
	require.NoError(t, err)
	require.NotNil(t, m)

	assert.Empty(t, m.Kind, "an unconvincing hit must never be accepted")
	assert.Less(t, m.Confidence, 80)
}

func TestWikidataSPARQLFallback(t *testing.T) {
	w := wikidataServer(t, `{"search": []}`, `{"results": {"bindings": [
		{"item": {"value": "http://www.wikidata.org/entity/Q182881"}}
	]}}`)

	m, err := w.Match(context.Background(), "Panax ginseng")
	require.NoError(t, err)
	require.NotNil(t, m)

	assert.Equal(t, "Q182881", m.ExternalID)
	assert.Equal(t, "taxon-name", m.Kind)
	assert.GreaterOrEqual(t, m.Confidence, 80)
}

func TestWikidataNoResultAnywhere(t *testing.T) {
	w := wikidataServer(t, `{"search": []}`, `{"results": {"bindings": []}}`)

	m, err := w.Match(context.Background(), "Nonexistus plantus")
	require.NoError(t, err)
	assert.Nil(t, m)
}

func TestWikidataApply(t *testing.T) {
	plant := &corpus.Plant{ID: "plant/ginseng"}
	w := NewWikidata(time.Second)

	w.Apply(plant, &Match{ExternalID: "Q182881"})
	assert.Equal(t, "Q182881", plant.WikidataID)
}
