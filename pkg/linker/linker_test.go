package linker

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openherb/herbarium/pkg/corpus"
	"github.com/openherb/herbarium/pkg/normalize"
)

// fakeService is a scripted Service for exercising the linker loop
// without a network.
type fakeService struct {
	matches map[string]*Match
	err     error
	calls   int
}

func (f *fakeService) Name() string   { return "fake" }
func (f *fakeService) Domain() string { return "fake.example" }

func (f *fakeService) Match(_ context.Context, name string) (*Match, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.matches[name], nil
}

func (f *fakeService) URL(m *Match) string {
	return "https://fake.example/taxon/" + m.ExternalID
}

func (f *fakeService) Apply(p *corpus.Plant, m *Match) {
	p.WikidataID = m.ExternalID
}

func newTestLinker(svc Service) *Linker {
	l := New(svc, Config{Delay: time.Nanosecond})
	l.sleep = func(time.Duration) {}
	return l
}

func candidates(names ...string) normalize.Candidates {
	return normalize.Candidates{Names: names}
}

func TestLinkAcceptsAtThreshold(t *testing.T) {
	svc := &fakeService{matches: map[string]*Match{
		"Panax ginseng": {ExternalID: "123", Kind: "EXACT", Confidence: 80},
	}}
	plant := &corpus.Plant{ID: "plant/ginseng"}

	res := newTestLinker(svc).Link(context.Background(), plant, candidates("Panax ginseng"))

	assert.Equal(t, StatusLinked, res.Status)
	assert.Equal(t, "123", res.ExternalID)
	assert.Equal(t, "https://fake.example/taxon/123", res.URL)
	assert.Equal(t, "Panax ginseng", res.MatchedName)
	assert.True(t, plant.HasSameAsDomain("fake.example"), "accepted matches are merged into the document")
	assert.Equal(t, "123", plant.WikidataID, "the service records its identifier")
}

func TestLinkRejectsBelowThreshold(t *testing.T) {
	svc := &fakeService{matches: map[string]*Match{
		"Panax ginseng": {ExternalID: "123", Kind: "FUZZY", Confidence: 79},
	}}
	plant := &corpus.Plant{ID: "plant/ginseng"}

	res := newTestLinker(svc).Link(context.Background(), plant, candidates("Panax ginseng"))

	assert.Equal(t, StatusLowConfidence, res.Status)
	assert.Equal(t, "123", res.ExternalID, "the best candidate is reported for review")
	assert.Equal(t, 79, res.Confidence)
	assert.Empty(t, plant.SameAs, "rejected matches never touch the document")
}

func TestLinkNeverAcceptsEmptyKind(t *testing.T) {
	svc := &fakeService{matches: map[string]*Match{
		"Panax ginseng": {ExternalID: "123", Confidence: 100},
	}}
	plant := &corpus.Plant{ID: "plant/ginseng"}

	res := newTestLinker(svc).Link(context.Background(), plant, candidates("Panax ginseng"))

	assert.Equal(t, StatusLowConfidence, res.Status)
	assert.Empty(t, plant.SameAs)
}

func TestLinkAlreadyLinkedMakesNoCalls(t *testing.T) {
	svc := &fakeService{}
	plant := &corpus.Plant{ID: "plant/ginseng"}
	plant.AddSameAs("https://fake.example/taxon/123")

	res := newTestLinker(svc).Link(context.Background(), plant, candidates("Panax ginseng"))

	assert.Equal(t, StatusAlreadyLinked, res.Status)
	assert.Zero(t, svc.calls, "idempotent short-circuit must not hit the network")
}

func TestLinkSkippedCandidates(t *testing.T) {
	svc := &fakeService{}
	plant := &corpus.Plant{ID: "plant/extract"}

	res := newTestLinker(svc).Link(context.Background(), plant,
		normalize.Candidates{Names: []string{"Ginseng extract"}, Skipped: true})

	assert.Equal(t, StatusSkipped, res.Status)
	assert.Zero(t, svc.calls)
}

func TestLinkErrorsDegradeToNoMatch(t *testing.T) {
	svc := &fakeService{err: context.DeadlineExceeded}
	plant := &corpus.Plant{ID: "plant/ginseng"}

	res := newTestLinker(svc).Link(context.Background(), plant,
		candidates("Reynoutria multiflora", "Polygonum multiflorum"))

	assert.Equal(t, StatusNotFound, res.Status)
	assert.Equal(t, 2, res.Failures)
	assert.Equal(t, 2, svc.calls, "every candidate is still attempted")
	assert.Empty(t, plant.SameAs)
}

func TestLinkFallsBackToSecondCandidate(t *testing.T) {
	svc := &fakeService{matches: map[string]*Match{
		"Polygonum multiflorum": {ExternalID: "77", Kind: "EXACT", Confidence: 96},
	}}
	plant := &corpus.Plant{ID: "plant/he-shou-wu"}

	res := newTestLinker(svc).Link(context.Background(), plant,
		candidates("Reynoutria multiflora", "Polygonum multiflorum"))

	assert.Equal(t, StatusLinked, res.Status)
	assert.Equal(t, "Polygonum multiflorum", res.MatchedName)
	assert.Equal(t, []string{"Reynoutria multiflora", "Polygonum multiflorum"}, res.Searched)
}

func TestLinkThrottlesBetweenCalls(t *testing.T) {
	svc := &fakeService{}
	l := New(svc, Config{Delay: 50 * time.Millisecond})

	var slept []time.Duration
	l.sleep = func(d time.Duration) { slept = append(slept, d) }

	plant := &corpus.Plant{ID: "plant/ginseng"}
	l.Link(context.Background(), plant, candidates("a", "b", "c"))

	require.Len(t, slept, 2, "every call after the first waits out the delay")
	for _, d := range slept {
		assert.Greater(t, d, time.Duration(0))
	}
}

func TestConfigDefaultsKeepDelayPositive(t *testing.T) {
	cfg := Config{}.withDefaults()
	assert.Greater(t, cfg.Delay, time.Duration(0), "batch pacing is mandatory")
	assert.Greater(t, cfg.Timeout, time.Duration(0))
	assert.Equal(t, 80, cfg.MinConfidence)

	cfg = Config{Delay: -1}.withDefaults()
	assert.Greater(t, cfg.Delay, time.Duration(0))
}
