package corpus_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openherb/herbarium/pkg/corpus"
)

// writeCorpus lays out a small corpus tree for loader tests.
func writeCorpus(t *testing.T, files map[string]string) string {
	t.Helper()
	root := t.TempDir()
	for rel, content := range files {
		path := filepath.Join(root, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	}
	return root
}

func TestLoadWalksRoles(t *testing.T) {
	root := writeCorpus(t, map[string]string{
		"plants/ginseng.json": `{"@id": "plant/ginseng", "scientificName": "Panax ginseng"}`,
		"plants/gan-cao.json": `{"@id": "plant/gan-cao", "scientificName": "Glycyrrhiza uralensis"}`,
		"tcm/ren-shen.json":   `{"@id": "tcm/ren-shen", "derivedFromPlant": "plant/ginseng"}`,
		"reference/natures.json": `{"@id": "scheme/natures", "concepts": [
			{"@id": "nature/warm", "prefLabel": {"en": "Warm"}}
		]}`,
		"plants/notes.txt": "not a corpus document",
	})

	c, err := corpus.Load(root)
	require.NoError(t, err)

	assert.Equal(t, 4, c.DocumentCount())
	assert.Empty(t, c.Failures)

	_, ok := c.Plant("plant/ginseng")
	assert.True(t, ok)
	_, ok = c.Concept("nature/warm")
	assert.True(t, ok)

	profile, ok := c.Profiles["tcm/ren-shen"]
	require.True(t, ok)
	assert.Equal(t, corpus.RoleTCM, profile.System)
	assert.Len(t, c.ProfilesBySystem[corpus.RoleTCM], 1)
}

func TestLoadIsolatesParseFailures(t *testing.T) {
	root := writeCorpus(t, map[string]string{
		"plants/good.json":   `{"@id": "plant/good", "scientificName": "Panax ginseng"}`,
		"plants/broken.json": `{"@id": "plant/broken",`,
	})

	c, err := corpus.Load(root)
	require.NoError(t, err, "one broken file must not abort the batch")

	assert.Equal(t, 1, c.DocumentCount())
	require.Len(t, c.Failures, 1)
	assert.Equal(t, "plants/broken.json", c.Failures[0].Path)
	assert.Error(t, c.Failures[0].Err)
	assert.Nil(t, c.Failures[0].Doc)
}

func TestLoadWithFilter(t *testing.T) {
	root := writeCorpus(t, map[string]string{
		"plants/ginseng.json": `{"@id": "plant/ginseng"}`,
		"plants/gan-cao.json": `{"@id": "plant/gan-cao"}`,
		"tcm/gan-cao.json":    `{"@id": "tcm/gan-cao"}`,
	})

	c, err := corpus.Load(root, corpus.WithFilter("gan*"))
	require.NoError(t, err)
	assert.Equal(t, 2, c.DocumentCount())

	c, err = corpus.Load(root, corpus.WithFilter("plants/**"))
	require.NoError(t, err)
	assert.Equal(t, 2, c.DocumentCount())
}

func TestLoadWithRoles(t *testing.T) {
	root := writeCorpus(t, map[string]string{
		"plants/ginseng.json": `{"@id": "plant/ginseng"}`,
		"tcm/ren-shen.json":   `{"@id": "tcm/ren-shen"}`,
	})

	c, err := corpus.Load(root, corpus.WithRoles(corpus.RolePlant))
	require.NoError(t, err)
	assert.Equal(t, 1, c.DocumentCount())
	assert.Empty(t, c.Profiles)
}

func TestLoadMissingRoleDirsTolerated(t *testing.T) {
	root := writeCorpus(t, map[string]string{
		"plants/ginseng.json": `{"@id": "plant/ginseng"}`,
	})

	c, err := corpus.Load(root)
	require.NoError(t, err, "corpora may carry only a subset of roles")
	assert.Equal(t, 1, c.DocumentCount())
}

func TestLoadRejectsMissingRoot(t *testing.T) {
	_, err := corpus.Load(filepath.Join(t.TempDir(), "absent"))
	require.Error(t, err)
}
