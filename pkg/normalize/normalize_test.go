package normalize_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openherb/herbarium/pkg/normalize"
)

func TestNormalizeCleansNames(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want []string
	}{
		{
			name: "correction then author strip",
			raw:  "Polygonum multiflorum Thunb.",
			want: []string{"Reynoutria multiflora", "Polygonum multiflorum Thunb."},
		},
		{
			name: "bare author abbreviation",
			raw:  "Glycyrrhiza uralensis Fisch.",
			want: []string{"Glycyrrhiza uralensis", "Glycyrrhiza uralensis Fisch."},
		},
		{
			name: "dotted author with initials",
			raw:  "Panax ginseng C.A.Mey.",
			want: []string{"Panax ginseng", "Panax ginseng C.A.Mey."},
		},
		{
			name: "parenthesized citation clause",
			raw:  "Citrus aurantium (Christm.) Swingle",
			want: []string{"Citrus aurantium Swingle", "Citrus aurantium (Christm.) Swingle"},
		},
		{
			name: "ex idiom outside parentheses",
			raw:  "Magnolia officinalis Rehder ex Wilson",
			want: []string{"Magnolia officinalis", "Magnolia officinalis Rehder ex Wilson"},
		},
		{
			name: "already clean",
			raw:  "Panax ginseng",
			want: []string{"Panax ginseng"},
		},
		{
			name: "rank markers survive",
			raw:  "Ziziphus jujuba var. spinosa",
			want: []string{"Ziziphus jujuba var. spinosa"},
		},
		{
			name: "surrounding whitespace",
			raw:  "  Panax ginseng  ",
			want: []string{"Panax ginseng"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cands := normalize.Normalize(tt.raw)
			assert.False(t, cands.Skipped)
			assert.Equal(t, tt.want, cands.Names)
		})
	}
}

func TestNormalizeSkipsNonScientificNames(t *testing.T) {
	for _, raw := range []string{
		"Ginseng extract",
		"Honey-fried licorice root",
		"Dried tangerine peel",
		"ASU",
	} {
		cands := normalize.Normalize(raw)
		assert.True(t, cands.Skipped, "input %q", raw)
		assert.Equal(t, []string{raw}, cands.Names,
			"skipped names are passed through for reporting, never cleaned")
	}
}

func TestNormalizeEmptyInput(t *testing.T) {
	cands := normalize.Normalize("   ")
	assert.Empty(t, cands.Names)
	assert.False(t, cands.Skipped)
}

func TestNormalizeLongestCorrectionWins(t *testing.T) {
	n, err := normalize.New(&normalize.Rules{
		Corrections: []normalize.Correction{
			{Match: "Ligusticum", Replace: "WRONG"},
			{Match: "Ligusticum wallichii", Replace: "Ligusticum striatum"},
		},
	})
	require.NoError(t, err)

	cands := n.Normalize("Ligusticum wallichii")
	require.NotEmpty(t, cands.Names)
	assert.Equal(t, "Ligusticum striatum", cands.Names[0])
}

func TestNormalizeCustomRules(t *testing.T) {
	n, err := normalize.New(&normalize.Rules{
		AuthorAbbreviations: []string{"Sm."},
		SkipPatterns:        []string{"(?i)tincture"},
	})
	require.NoError(t, err)

	cands := n.Normalize("Salvia miltiorrhiza Sm.")
	assert.Equal(t, []string{"Salvia miltiorrhiza", "Salvia miltiorrhiza Sm."}, cands.Names)

	assert.True(t, n.Normalize("Salvia tincture").Skipped)
}

func TestNormalizeRejectsBadSkipPattern(t *testing.T) {
	_, err := normalize.New(&normalize.Rules{SkipPatterns: []string{"("}})
	require.Error(t, err)
}
