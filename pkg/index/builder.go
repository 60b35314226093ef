// Package index aggregates a validated corpus into the denormalized
// lookup artifacts the presentation layer consumes: flat plant and
// profile summaries, and a merged herbs view joining each profile to
// its plant with a single display category per herb.
package index

import (
	"path/filepath"
	"sort"

	"github.com/agentstation/utc"
	"github.com/bmatcuk/doublestar/v4"

	"github.com/openherb/herbarium/pkg/constants"
	"github.com/openherb/herbarium/pkg/corpus"
	"github.com/openherb/herbarium/pkg/logging"
)

// PlantSummary is one row of the flat plants artifact.
type PlantSummary struct {
	ID             string             `json:"id"`
	Slug           string             `json:"slug"`
	ScientificName string             `json:"scientificName,omitempty"`
	Name           corpus.LanguageMap `json:"name,omitempty"`
	Category       string             `json:"category"`
	GBIFID         int64              `json:"gbifID,omitempty"`
	WikidataID     string             `json:"wikidataID,omitempty"`
}

// ProfileSummary is one row of the flat profiles artifact.
type ProfileSummary struct {
	ID     string             `json:"id"`
	Slug   string             `json:"slug"`
	System corpus.Role        `json:"system"`
	Name   corpus.LanguageMap `json:"name,omitempty"`
	Plant  string             `json:"plant,omitempty"`
}

// Herb is one row of the merged view: a plant together with every
// system profile derived from it. Plants with no profile appear as
// bare entries with an empty Systems list.
type Herb struct {
	ID             string             `json:"id"`
	Slug           string             `json:"slug"`
	ScientificName string             `json:"scientificName,omitempty"`
	Name           corpus.LanguageMap `json:"name,omitempty"`
	Category       string             `json:"category"`
	Systems        []string           `json:"systems,omitempty"`
	Profiles       []string           `json:"profiles,omitempty"`
}

// Orphan records a profile whose plant reference did not resolve. It is
// reported, never silently dropped.
type Orphan struct {
	ProfileID string `json:"profileId"`
	PlantID   string `json:"plantId"`
}

// Index is the full build output.
type Index struct {
	Generated  utc.Time
	Plants     []PlantSummary
	Profiles   []ProfileSummary
	Herbs      []Herb
	Categories map[string]int
	Orphans    []Orphan
}

// Artifact is the serialized form of one generated JSON document.
type Artifact struct {
	Version    string           `json:"version"`
	Generated  utc.Time         `json:"generated"`
	Counts     map[string]int   `json:"counts"`
	Categories map[string]int   `json:"categories,omitempty"`
	Plants     []PlantSummary   `json:"plants,omitempty"`
	Profiles   []ProfileSummary `json:"profiles,omitempty"`
	Herbs      []Herb           `json:"herbs,omitempty"`
}

// slugHeuristics classify herbs by pinyin slug conventions when no
// explicit category reference is present. Order matters: first match
// wins.
var slugHeuristics = []struct {
	pattern  string
	category string
}{
	{"*-hua", "flower"},
	{"*-zi", "seed"},
	{"*-ren", "seed"},
	{"*-gen", "root"},
	{"*-shen", "root"},
	{"*-pi", "bark"},
	{"*-ye", "leaf"},
	{"*-cao", "herb"},
	{"*-teng", "vine"},
	{"*-guo", "fruit"},
	{"*-shi", "fruit"},
	{"*-jun", "fungus"},
	{"*-zhi", "fungus"},
}

// DefaultCategory buckets everything the precedence chain cannot place.
const DefaultCategory = "other"

// Categorize assigns exactly one display category: explicit category
// reference first, slug heuristics second, default bucket last.
func Categorize(p *corpus.Plant) string {
	if p.Category != nil && p.Category.ID != "" {
		return corpus.Slug(p.Category.ID)
	}
	slug := p.Slug()
	for _, h := range slugHeuristics {
		if ok, _ := doublestar.Match(h.pattern, slug); ok {
			return h.category
		}
	}
	return DefaultCategory
}

// Build aggregates the corpus. Orphaned profiles are logged and carried
// on the Index; every plant yields exactly one herb entry, so the herb
// count always equals the plant count.
func Build(c *corpus.Corpus) *Index {
	idx := &Index{
		Generated:  utc.Now(),
		Categories: make(map[string]int),
	}

	herbsByPlant := make(map[string]*Herb)

	plantIDs := make([]string, 0, len(c.Plants))
	for id := range c.Plants {
		plantIDs = append(plantIDs, id)
	}
	sort.Strings(plantIDs)

	for _, id := range plantIDs {
		p := c.Plants[id]
		category := Categorize(p)
		idx.Categories[category]++

		idx.Plants = append(idx.Plants, PlantSummary{
			ID:             p.ID,
			Slug:           p.Slug(),
			ScientificName: p.ScientificName,
			Name:           p.Name,
			Category:       category,
			GBIFID:         p.GBIFID,
			WikidataID:     p.WikidataID,
		})

		herb := &Herb{
			ID:             p.ID,
			Slug:           p.Slug(),
			ScientificName: p.ScientificName,
			Name:           p.Name,
			Category:       category,
		}
		herbsByPlant[p.ID] = herb
		idx.Herbs = append(idx.Herbs, *herb)
	}

	profileIDs := make([]string, 0, len(c.Profiles))
	for id := range c.Profiles {
		profileIDs = append(profileIDs, id)
	}
	sort.Strings(profileIDs)

	for _, id := range profileIDs {
		pr := c.Profiles[id]
		idx.Profiles = append(idx.Profiles, ProfileSummary{
			ID:     pr.ID,
			Slug:   pr.Slug(),
			System: pr.System,
			Name:   pr.Name,
			Plant:  pr.PlantID(),
		})

		herb, found := herbsByPlant[pr.PlantID()]
		if !found {
			logging.Warn().
				Str("profile", pr.ID).
				Str("plant", pr.PlantID()).
				Msg("profile references unknown plant")
			idx.Orphans = append(idx.Orphans, Orphan{ProfileID: pr.ID, PlantID: pr.PlantID()})
			continue
		}
		herb.Systems = appendUnique(herb.Systems, string(pr.System))
		herb.Profiles = append(herb.Profiles, pr.ID)
	}

	// herbsByPlant entries were mutated after insertion; rebuild the
	// slice view in the same order.
	for i := range idx.Herbs {
		idx.Herbs[i] = *herbsByPlant[idx.Herbs[i].ID]
	}

	return idx
}

// WithProfiles counts herbs carrying at least one system profile.
func (idx *Index) WithProfiles() int {
	n := 0
	for _, h := range idx.Herbs {
		if len(h.Systems) > 0 {
			n++
		}
	}
	return n
}

// PlantOnly counts herbs with no system profile.
func (idx *Index) PlantOnly() int {
	return len(idx.Herbs) - idx.WithProfiles()
}

// Write persists the three artifacts (plants.json, profiles.json,
// herbs.json) under dir in the corpus wire format.
func (idx *Index) Write(dir string) error {
	plants := Artifact{
		Version:   constants.IndexVersion,
		Generated: idx.Generated,
		Counts:    map[string]int{"plants": len(idx.Plants)},
		Plants:    idx.Plants,
	}
	if err := corpus.WriteJSON(filepath.Join(dir, "plants.json"), plants); err != nil {
		return err
	}

	profiles := Artifact{
		Version:   constants.IndexVersion,
		Generated: idx.Generated,
		Counts:    map[string]int{"profiles": len(idx.Profiles), "orphans": len(idx.Orphans)},
		Profiles:  idx.Profiles,
	}
	if err := corpus.WriteJSON(filepath.Join(dir, "profiles.json"), profiles); err != nil {
		return err
	}

	herbs := Artifact{
		Version:   constants.IndexVersion,
		Generated: idx.Generated,
		Counts: map[string]int{
			"herbs":          len(idx.Herbs),
			"withProfiles":   idx.WithProfiles(),
			"plantOnly":      idx.PlantOnly(),
			"orphanProfiles": len(idx.Orphans),
		},
		Categories: idx.Categories,
		Herbs:      idx.Herbs,
	}
	return corpus.WriteJSON(filepath.Join(dir, "herbs.json"), herbs)
}

func appendUnique(list []string, s string) []string {
	for _, existing := range list {
		if existing == s {
			return list
		}
	}
	return append(list, s)
}
