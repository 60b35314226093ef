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
	"github.com/openherb/herbarium/pkg/normalize"
)

func TestGBIFMatchExact(t *testing.T) {
	var requests int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		assert.Equal(t, "/species/match", r.URL.Path)
		assert.Equal(t, "Panax ginseng", r.URL.Query().Get("name"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"usageKey": 3190638,
			"matchType": "EXACT",
			"confidence": 98,
			"scientificName": "Panax ginseng C.A.Mey."
		}`))
	}))
	defer srv.Close()

	g := NewGBIFWithBase(srv.URL, time.Second)
	m, err := g.Match(context.Background(), "Panax ginseng")
	require.NoError(t, err)
	require.NotNil(t, m)

	assert.Equal(t, "3190638", m.ExternalID)
	assert.Equal(t, "EXACT", m.Kind)
	assert.Equal(t, 98, m.Confidence)
	assert.Equal(t, 1, requests)
	assert.Equal(t, "https://www.gbif.org/species/3190638", g.URL(m))
}

func TestGBIFMatchNoneIsNoMatch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		// GBIF reports NONE with a high confidence; that is still no match.
		_, _ = w.Write([]byte(`{"matchType": "NONE", "confidence": 100}`))
	}))
	defer srv.Close()

	g := NewGBIFWithBase(srv.URL, time.Second)
	m, err := g.Match(context.Background(), "Nonexistus plantus")
	require.NoError(t, err)
	assert.Nil(t, m)
}

func TestGBIFServerErrorSurfaces(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	g := NewGBIFWithBase(srv.URL, time.Second)
	_, err := g.Match(context.Background(), "Panax ginseng")
	require.Error(t, err)
}

func TestGBIFApply(t *testing.T) {
	plant := &corpus.Plant{ID: "plant/ginseng"}
	g := NewGBIF(time.Second)

	g.Apply(plant, &Match{ExternalID: "3190638"})
	assert.Equal(t, int64(3190638), plant.GBIFID)
}

// End to end through the linker: the accepted match lands on the plant
// and a rerun is a no-op without further requests.
func TestGBIFLinkIsIdempotent(t *testing.T) {
	var requests int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		requests++
		_, _ = w.Write([]byte(`{"usageKey": 3190638, "matchType": "EXACT", "confidence": 97}`))
	}))
	defer srv.Close()

	l := New(NewGBIFWithBase(srv.URL, time.Second), Config{Delay: time.Nanosecond})
	l.sleep = func(time.Duration) {}

	plant := &corpus.Plant{ID: "plant/ginseng", ScientificName: "Panax ginseng"}
	cands := normalize.Candidates{Names: []string{"Panax ginseng"}}

	first := l.Link(context.Background(), plant, cands)
	require.Equal(t, StatusLinked, first.Status)
	assert.Equal(t, int64(3190638), plant.GBIFID)
	assert.Equal(t, 1, requests)

	second := l.Link(context.Background(), plant, cands)
	assert.Equal(t, StatusAlreadyLinked, second.Status)
	assert.Equal(t, 1, requests, "a linked plant is never re-queried")
}
