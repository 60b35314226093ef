package corpus_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openherb/herbarium/pkg/corpus"
)

func TestRefRoundTrip(t *testing.T) {
	tests := []struct {
		name string
		wire string
		id   string
	}{
		{"bare string", `"plant/ginseng"`, "plant/ginseng"},
		{"object form", `{"@id":"plant/ginseng"}`, "plant/ginseng"},
		{"url", `"https://www.gbif.org/species/3190638"`, "https://www.gbif.org/species/3190638"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var r corpus.Ref
			require.NoError(t, json.Unmarshal([]byte(tt.wire), &r))
			assert.Equal(t, tt.id, r.ID)
			assert.False(t, r.Malformed())

			out, err := json.Marshal(r)
			require.NoError(t, err)
			assert.JSONEq(t, tt.wire, string(out), "the wire form must survive a round trip")
		})
	}
}

func TestRefMalformedPreserved(t *testing.T) {
	for _, wire := range []string{`42`, `["plant/a"]`, `{"id":"missing-at"}`, `null`} {
		var r corpus.Ref
		require.NoError(t, json.Unmarshal([]byte(wire), &r), "wire %s", wire)
		assert.True(t, r.Malformed(), "wire %s", wire)
		assert.Empty(t, r.ID)

		out, err := json.Marshal(r)
		require.NoError(t, err)
		assert.JSONEq(t, wire, string(out), "malformed shapes are preserved verbatim")
	}
}

func TestRefConstructors(t *testing.T) {
	bare, err := json.Marshal(corpus.IRI("plant/ginseng"))
	require.NoError(t, err)
	assert.Equal(t, `"plant/ginseng"`, string(bare))

	obj, err := json.Marshal(corpus.ObjectRef("plant/ginseng"))
	require.NoError(t, err)
	assert.JSONEq(t, `{"@id":"plant/ginseng"}`, string(obj))

	assert.True(t, corpus.Ref{}.IsZero())
	assert.False(t, corpus.IRI("x").IsZero())
}

func TestNormalizeURL(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"https://www.gbif.org/species/123", "www.gbif.org/species/123"},
		{"http://www.gbif.org/species/123", "www.gbif.org/species/123"},
		{"https://WWW.GBIF.org/species/123", "www.gbif.org/species/123"},
		{"https://www.wikidata.org/entity/Q42/", "www.wikidata.org/entity/Q42"},
		{"  https://example.org  ", "example.org"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, corpus.NormalizeURL(tt.in), "input %q", tt.in)
	}
}
