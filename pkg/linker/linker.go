// Package linker attaches external-authority cross-references to plant
// documents: GBIF backbone taxonomy and Wikidata entities, matched by
// normalized scientific name with confidence gating. Network failures
// degrade to "no match"; an unreachable service never aborts a batch.
package linker

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/openherb/herbarium/pkg/constants"
	"github.com/openherb/herbarium/pkg/corpus"
	"github.com/openherb/herbarium/pkg/logging"
	"github.com/openherb/herbarium/pkg/normalize"
)

// Status classifies the outcome of linking one entity.
type Status string

// Link outcomes.
const (
	StatusLinked        Status = "linked"
	StatusLowConfidence Status = "lowConfidence"
	StatusNotFound      Status = "notFound"
	StatusAlreadyLinked Status = "alreadyLinked"
	StatusSkipped       Status = "skipped"
)

// Match is one candidate reported by an external matching service.
// Kind is the service's match type; an empty Kind is never accepted
// regardless of confidence.
type Match struct {
	ExternalID string
	Kind       string
	Confidence int
	Label      string
}

// Service is an external matching authority.
type Service interface {
	// Name identifies the service in logs and reports.
	Name() string
	// Domain is the substring that marks an existing cross-reference
	// as belonging to this service.
	Domain() string
	// Match looks one name up. (nil, nil) means the service answered
	// but had no candidate.
	Match(ctx context.Context, name string) (*Match, error)
	// URL constructs the cross-reference URL for an accepted match.
	URL(m *Match) string
	// Apply records the authority's identifier on the plant.
	Apply(p *corpus.Plant, m *Match)
}

// Config carries the explicit knobs threaded into a Linker. Zero values
// fall back to the package defaults; Delay can never end up zero, the
// rate limit is mandatory when iterating a batch.
type Config struct {
	Timeout       time.Duration
	Delay         time.Duration
	MinConfidence int
}

func (c Config) withDefaults() Config {
	if c.Timeout <= 0 {
		c.Timeout = constants.MatchTimeout
	}
	if c.Delay <= 0 {
		c.Delay = constants.LinkDelay
	}
	if c.MinConfidence <= 0 {
		c.MinConfidence = constants.MinConfidence
	}
	return c
}

// Result is the outcome of linking one entity.
type Result struct {
	Status      Status   `json:"status"`
	Service     string   `json:"service"`
	ExternalID  string   `json:"externalId,omitempty"`
	URL         string   `json:"url,omitempty"`
	Confidence  int      `json:"confidence,omitempty"`
	MatchedName string   `json:"matchedName,omitempty"`
	Searched    []string `json:"searched,omitempty"`
	Failures    int      `json:"failures,omitempty"` // lookups lost to service errors
}

// Linker runs confidence-gated lookups against one service, strictly
// sequentially, pausing between successive calls.
type Linker struct {
	svc  Service
	cfg  Config
	log  zerolog.Logger
	last time.Time

	// sleep is a seam for tests; defaults to time.Sleep.
	sleep func(time.Duration)
}

// New creates a Linker for the given service.
func New(svc Service, cfg Config) *Linker {
	return &Linker{
		svc:   svc,
		cfg:   cfg.withDefaults(),
		log:   logging.Default().With().Str("service", svc.Name()).Logger(),
		sleep: time.Sleep,
	}
}

// Link tries the candidate names in order against the service and, on
// an accepted match, merges the cross-reference into the plant. When
// the plant already carries a cross-reference on the service's domain
// it returns StatusAlreadyLinked without any network call.
func (l *Linker) Link(ctx context.Context, plant *corpus.Plant, cands normalize.Candidates) Result {
	res := Result{Service: l.svc.Name()}

	if cands.Skipped {
		res.Status = StatusSkipped
		res.Searched = cands.Names
		return res
	}
	if plant.HasSameAsDomain(l.svc.Domain()) {
		res.Status = StatusAlreadyLinked
		return res
	}

	var best *Match
	for _, name := range cands.Names {
		res.Searched = append(res.Searched, name)

		l.throttle()
		callCtx, cancel := context.WithTimeout(ctx, l.cfg.Timeout)
		m, err := l.svc.Match(callCtx, name)
		cancel()

		if err != nil {
			// Degrade to "no match from this attempt".
			res.Failures++
			l.log.Warn().Err(err).Str("name", name).Msg("lookup failed")
			continue
		}
		if m == nil {
			continue
		}

		if m.Kind != "" && m.Confidence >= l.cfg.MinConfidence {
			url := l.svc.URL(m)
			plant.AddSameAs(url)
			l.svc.Apply(plant, m)
			res.Status = StatusLinked
			res.ExternalID = m.ExternalID
			res.URL = url
			res.Confidence = m.Confidence
			res.MatchedName = name
			l.log.Info().
				Str("plant", plant.ID).
				Str("name", name).
				Int("confidence", m.Confidence).
				Str("id", m.ExternalID).
				Msg("linked")
			return res
		}

		if best == nil || m.Confidence > best.Confidence {
			best = m
		}
	}

	if best != nil {
		res.Status = StatusLowConfidence
		res.ExternalID = best.ExternalID
		res.Confidence = best.Confidence
		return res
	}
	res.Status = StatusNotFound
	return res
}

// throttle enforces the minimum inter-call delay.
func (l *Linker) throttle() {
	if !l.last.IsZero() {
		if elapsed := time.Since(l.last); elapsed < l.cfg.Delay {
			l.sleep(l.cfg.Delay - elapsed)
		}
	}
	l.last = time.Now()
}
