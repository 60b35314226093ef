package validate_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openherb/herbarium/pkg/corpus"
	"github.com/openherb/herbarium/pkg/validate"
)

func loadFixture(t *testing.T, files map[string]string) *corpus.Corpus {
	t.Helper()
	root := t.TempDir()
	for rel, content := range files {
		path := filepath.Join(root, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	}
	c, err := corpus.Load(root)
	require.NoError(t, err)
	return c
}

func resultFor(t *testing.T, rep *validate.Report, id string) *validate.Result {
	t.Helper()
	for _, r := range rep.Results {
		if r.ID == id {
			return r
		}
	}
	t.Fatalf("no result for %s", id)
	return nil
}

const fixturePlant = `{
	"@id": "plant/ginseng",
	"scientificName": "Panax ginseng",
	"name": {"en": "Ginseng", "zh-Hant": "人參", "zh-Hans": "人参"}
}`

const fixtureNatures = `{
	"@id": "scheme/natures",
	"concepts": [
		{"@id": "nature/warm", "prefLabel": {"en": "Warm", "zh-Hant": "溫", "zh-Hans": "温"}}
	]
}`

func TestCorpusResolvesReferences(t *testing.T) {
	c := loadFixture(t, map[string]string{
		"plants/ginseng.json":    fixturePlant,
		"reference/natures.json": fixtureNatures,
		"tcm/ren-shen.json": `{
			"@id": "tcm/ren-shen",
			"name": {"en": "Ren Shen", "zh-Hant": "人參", "zh-Hans": "人参"},
			"derivedFromPlant": "plant/ginseng",
			"hasNature": "nature/warm",
			"hasFlavor": ["flavor/sweet"],
			"entersMeridian": ["meridian/spleen"]
		}`,
	})

	rep := validate.Corpus(c)
	result := resultFor(t, rep, "tcm/ren-shen")

	// flavor/sweet and meridian/spleen have no reference documents here.
	unresolved := issuesOfKind(result.Issues, validate.UnresolvedReference)
	require.Len(t, unresolved, 2)
	fields := []string{unresolved[0].Field, unresolved[1].Field}
	assert.Contains(t, fields, "hasFlavor")
	assert.Contains(t, fields, "entersMeridian")
}

func TestCorpusFlagsOrphanedProfile(t *testing.T) {
	c := loadFixture(t, map[string]string{
		"reference/natures.json": fixtureNatures,
		"tcm/orphan.json": `{
			"@id": "tcm/orphan",
			"name": {"en": "Orphan", "zh-Hant": "孤", "zh-Hans": "孤"},
			"derivedFromPlant": "plant/missing",
			"hasNature": "nature/warm",
			"hasFlavor": ["flavor/sweet"],
			"entersMeridian": ["meridian/spleen"]
		}`,
	})

	rep := validate.Corpus(c)
	result := resultFor(t, rep, "tcm/orphan")

	var found bool
	for _, iss := range result.Issues {
		if iss.Field == "derivedFromPlant" {
			found = true
			assert.Equal(t, validate.UnresolvedReference, iss.Kind)
			assert.Equal(t, validate.Error, iss.Severity)
		}
	}
	assert.True(t, found, "a dangling plant reference must be reported")
}

func TestCorpusFlagsMalformedReference(t *testing.T) {
	c := loadFixture(t, map[string]string{
		"plants/ginseng.json": fixturePlant,
		"tcm/bad.json": `{
			"@id": "tcm/bad",
			"name": {"en": "Bad", "zh-Hant": "壞", "zh-Hans": "坏"},
			"derivedFromPlant": 42,
			"hasNature": "nature/warm",
			"hasFlavor": ["flavor/sweet"],
			"entersMeridian": ["meridian/spleen"]
		}`,
	})

	rep := validate.Corpus(c)
	result := resultFor(t, rep, "tcm/bad")

	malformed := issuesOfKind(result.Issues, validate.MalformedReference)
	require.NotEmpty(t, malformed)
	assert.Equal(t, "derivedFromPlant", malformed[0].Field)
}

func TestCorpusUnrecognizedPrefixesTolerated(t *testing.T) {
	c := loadFixture(t, map[string]string{
		"plants/ginseng.json": fixturePlant,
		"tcm/ren-shen.json": `{
			"@id": "tcm/ren-shen",
			"name": {"en": "Ren Shen", "zh-Hant": "人參", "zh-Hans": "人参"},
			"derivedFromPlant": "plant/ginseng",
			"hasNature": "http://example.org/external/warm",
			"hasFlavor": ["flavor/sweet"],
			"entersMeridian": ["meridian/spleen"]
		}`,
	})

	rep := validate.Corpus(c)
	result := resultFor(t, rep, "tcm/ren-shen")

	for _, iss := range issuesOfKind(result.Issues, validate.UnresolvedReference) {
		assert.NotEqual(t, "hasNature", iss.Field,
			"references outside the corpus addressing scheme are not failures")
	}
}

func TestCorpusCarriesParseFailures(t *testing.T) {
	c := loadFixture(t, map[string]string{
		"plants/ginseng.json": fixturePlant,
		"plants/broken.json":  `{"@id":`,
	})

	rep := validate.Corpus(c)
	require.Len(t, rep.ParseFailures, 1)
	assert.True(t, rep.Failed())
}
