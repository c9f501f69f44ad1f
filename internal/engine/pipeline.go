package engine

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/Niroshana-SinharaRalalage/LankaConnect-sub020/internal/domain/conflict"
	"github.com/Niroshana-SinharaRalalage/LankaConnect-sub020/internal/domain/dedupe"
	"github.com/Niroshana-SinharaRalalage/LankaConnect-sub020/internal/domain/model"
	"github.com/Niroshana-SinharaRalalage/LankaConnect-sub020/internal/domain/normalize"
	"github.com/Niroshana-SinharaRalalage/LankaConnect-sub020/internal/domain/rank"
	"github.com/Niroshana-SinharaRalalage/LankaConnect-sub020/internal/domain/score"
	"github.com/Niroshana-SinharaRalalage/LankaConnect-sub020/internal/domain/tiebreak"
	"github.com/Niroshana-SinharaRalalage/LankaConnect-sub020/internal/domain/types"
	"github.com/Niroshana-SinharaRalalage/LankaConnect-sub020/internal/providers/prefs"
	"github.com/Niroshana-SinharaRalalage/LankaConnect-sub020/pkg/logger"
	"github.com/Niroshana-SinharaRalalage/LankaConnect-sub020/pkg/metrics"
)

// opRequest describes one pipeline run. Each public operation builds a
// request selecting the stages and emphasis it needs.
type opRequest struct {
	name string

	// date is the target date context; zero means "now".
	date time.Time

	// festival names the festival period to optimize for; empty for
	// non-festival requests.
	festival string

	// criteria restricts which calculators run; nil runs all of them.
	criteria []types.Criterion

	// boost lists criteria whose weight is multiplied by the
	// configured variant boost factor.
	boost []types.Criterion

	// personalized blends learned weights in by confidence.
	personalized bool

	// culturalFilter excludes events whose genuine (non-fallback)
	// cultural score sits below the user's sensitivity floor.
	culturalFilter bool

	// calendarValidate drops events the calendar rejects outright.
	calendarValidate bool

	// clusterAnalysis feeds community-cluster membership into the
	// geographic scores.
	clusterAnalysis bool

	// ageFilter excludes events whose age gate the user fails.
	ageFilter bool

	// resolveConflicts runs the conflict resolver after ranking.
	resolveConflicts bool

	// locationAudit runs explicit location edge-case handling and logs
	// each handled event.
	locationAudit bool
}

// userContext bundles the per-request configuration resolved from the
// preference store at the start of each operation.
type userContext struct {
	profile       model.UserProfile
	weights       types.Weights
	cascade       []types.TieBreakRule
	conflictRules types.ConflictRules
}

// run executes the pipeline for one request. It is the single path
// behind every public operation.
func (e *Engine) run(ctx context.Context, userID string, events []model.Event, req opRequest) ([]types.Recommendation, error) {
	start := time.Now()
	requestID := uuid.NewString()
	log := e.log.Named(req.name)

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCancelled, err)
	}

	uc, err := e.resolveUser(ctx, userID, req)
	if err != nil {
		return nil, err
	}

	// Duplicate candidates are dropped up front; this is an explicit,
	// reported filtering step.
	events, dropped := dedupe.Events(events)
	for _, id := range dropped {
		metrics.RecordCandidateFiltered("duplicate")
		log.Debug(ctx, "dropped duplicate candidate",
			logger.String("requestID", requestID),
			logger.String("eventID", id),
		)
	}

	if req.calendarValidate {
		events, err = e.validateAgainstCalendar(ctx, log, requestID, events)
		if err != nil {
			return nil, err
		}
	}

	if req.ageFilter {
		events = e.filterByAge(ctx, log, requestID, uc.profile, events)
	}

	look, err := e.buildLookup(ctx, uc.profile, events, req)
	if err != nil {
		return nil, err
	}

	if req.locationAudit {
		e.auditLocations(ctx, log, requestID, uc.profile, events)
	}

	// Travel-ceiling exclusion happens before scoring: events beyond
	// the ceiling are excluded outright, never merely down-scored.
	// Events with unknown distance are kept and scored by fallback.
	events = e.filterByDistance(ctx, log, requestID, uc.profile, events, look)

	calcs := score.All()
	if len(req.criteria) > 0 {
		calcs = score.ForCriteria(req.criteria...)
	}

	raw, edges, err := e.scoreAll(ctx, uc.profile, events, look, calcs)
	if err != nil {
		return nil, err
	}

	// Composites aggregate the normalized scores; the raw components
	// travel with each recommendation for traceability, the cultural
	// floor and the tie-break cascade.
	normalized := normalize.MinMax(raw)

	recs := make([]types.Recommendation, len(events))
	for i, ev := range events {
		composite := rank.Aggregate(normalized[i], uc.weights, edges[i])
		composite.Components = raw[i]
		recs[i] = types.Recommendation{Event: ev, Score: composite}
	}
	rank.Sort(recs)

	if req.culturalFilter {
		recs = e.filterByCulturalFloor(ctx, log, requestID, uc.profile, recs)
	}

	if req.resolveConflicts {
		recs = e.resolveConflicts(ctx, log, requestID, uc, recs)
	}

	breaker := tiebreak.NewBreaker(
		tiebreak.WithTolerance(e.tieTolerance),
		tiebreak.WithCascade(uc.cascade...),
		tiebreak.WithNow(e.now()),
	)
	breaker.Sort(recs)

	if e.maxResults > 0 && len(recs) > e.maxResults {
		recs = recs[:e.maxResults]
	}

	elapsed := float64(time.Since(start).Milliseconds())
	metrics.ObservePipelineLatency(req.name, elapsed)
	metrics.RecordRecommendationsServed(req.name, len(recs))
	log.Info(ctx, "request served",
		logger.String("requestID", requestID),
		logger.String("userID", userID),
		logger.Int("candidates", len(events)),
		logger.Int("recommendations", len(recs)),
		logger.Float64("elapsedMS", elapsed),
	)
	return recs, nil
}

// resolveUser fetches the profile and request-scoped configuration from
// the preference store and validates it. Configuration problems are
// caller bugs and surface as errors; they never degrade silently.
func (e *Engine) resolveUser(ctx context.Context, userID string, req opRequest) (userContext, error) {
	profile, err := e.prefs.GetProfile(ctx, userID)
	if err != nil {
		return userContext{}, fmt.Errorf("resolve profile: %w", err)
	}

	weights, err := e.prefs.GetScoringWeights(ctx, userID)
	if err != nil {
		return userContext{}, fmt.Errorf("resolve weights: %w", err)
	}
	if weights == nil {
		weights = e.cfg.Weights()
	}

	if req.personalized {
		personal, confidence, perr := e.prefs.GetPersonalizedWeights(ctx, userID)
		if perr != nil {
			return userContext{}, fmt.Errorf("resolve personalized weights: %w", perr)
		}
		weights = weights.Blend(personal, confidence)
	}
	if err := validateWeights(weights); err != nil {
		return userContext{}, err
	}
	if len(req.boost) > 0 {
		weights = rank.Boost(weights, e.boostFactor, req.boost...)
	}

	cascade, err := e.prefs.GetTieBreakRules(ctx, userID)
	if err != nil {
		return userContext{}, fmt.Errorf("resolve tie-break rules: %w", err)
	}
	if err := validateCascade(cascade); err != nil {
		return userContext{}, err
	}

	rules, err := e.prefs.GetConflictRules(ctx, userID)
	if err != nil {
		return userContext{}, fmt.Errorf("resolve conflict rules: %w", err)
	}

	return userContext{
		profile:       profile,
		weights:       weights,
		cascade:       cascade,
		conflictRules: rules,
	}, nil
}

func validateWeights(w types.Weights) error {
	if len(w) == 0 {
		return fmt.Errorf("%w: empty", ErrInvalidWeights)
	}
	anyPositive := false
	for criterion, v := range w {
		if v < 0 {
			return fmt.Errorf("%w: %s is negative", ErrInvalidWeights, criterion)
		}
		if v > 0 {
			anyPositive = true
		}
	}
	if !anyPositive {
		return fmt.Errorf("%w: all weights are zero", ErrInvalidWeights)
	}
	return nil
}

func validateCascade(cascade []types.TieBreakRule) error {
	if len(cascade) == 0 {
		return fmt.Errorf("%w: empty", ErrInvalidCascade)
	}
	for _, rule := range cascade {
		if !types.KnownTieBreakRule(rule) {
			return fmt.Errorf("%w: unknown rule %q", ErrInvalidCascade, rule)
		}
	}
	return nil
}

// scoreAll fans candidate scoring across a bounded worker pool and joins
// before returning. Results are written by index so the output order is
// deterministic regardless of scheduling.
func (e *Engine) scoreAll(ctx context.Context, user model.UserProfile, events []model.Event, look *score.Lookup, calcs []score.Calculator) ([]types.ComponentScores, [][]types.Criterion, error) {
	n := len(events)
	components := make([]types.ComponentScores, n)
	edges := make([][]types.Criterion, n)

	workers := e.workerCount
	if workers > n {
		workers = n
	}
	if workers < 1 {
		workers = 1
	}

	jobs := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				select {
				case <-ctx.Done():
					return
				case i, ok := <-jobs:
					if !ok {
						return
					}
					comp := make(types.ComponentScores, len(calcs))
					var edge []types.Criterion
					for _, c := range calcs {
						v, fallback := c.Score(user, events[i], look)
						comp[c.Criterion()] = types.Clamp01(v)
						if fallback {
							edge = append(edge, c.Criterion())
							metrics.RecordEdgeCaseFallback(string(c.Criterion()))
						}
					}
					components[i] = comp
					edges[i] = edge
				}
			}
		}()
	}

feed:
	for i := 0; i < n; i++ {
		select {
		case <-ctx.Done():
			break feed
		case jobs <- i:
		}
	}
	close(jobs)
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return nil, nil, fmt.Errorf("%w: %w", ErrCancelled, err)
	}
	metrics.RecordEventsScored(n)
	return components, edges, nil
}

// filterByDistance applies the hard travel ceiling. Unknown distances
// pass through; the geographic calculator scores them by fallback.
func (e *Engine) filterByDistance(ctx context.Context, log logger.Logger, requestID string, profile model.UserProfile, events []model.Event, look *score.Lookup) []model.Event {
	if profile.MaxTravelKM <= 0 {
		return events
	}
	kept := events[:0:0]
	for _, ev := range events {
		dist, known := look.DistanceKM[ev.ID]
		if known && dist > profile.MaxTravelKM {
			metrics.RecordCandidateFiltered("distance_ceiling")
			log.Debug(ctx, "excluded event beyond travel ceiling",
				logger.String("requestID", requestID),
				logger.String("eventID", ev.ID),
				logger.Float64("distanceKM", dist),
				logger.Float64("ceilingKM", profile.MaxTravelKM),
			)
			continue
		}
		kept = append(kept, ev)
	}
	return kept
}

// filterByCulturalFloor drops recommendations whose genuine cultural
// score sits below the sensitivity floor. Fallback-scored events pass:
// missing data must not get an event rejected.
func (e *Engine) filterByCulturalFloor(ctx context.Context, log logger.Logger, requestID string, profile model.UserProfile, recs []types.Recommendation) []types.Recommendation {
	floor := profile.Sensitivity.AppropriatenessFloor()
	if floor <= 0 {
		return recs
	}
	kept := recs[:0:0]
	for _, rec := range recs {
		cultural, scored := rec.Score.Components[types.CriterionCultural]
		if scored && !rec.Score.HasEdgeCase(types.CriterionCultural) && cultural < floor {
			metrics.RecordCandidateFiltered("cultural_floor")
			log.Debug(ctx, "excluded culturally inappropriate event",
				logger.String("requestID", requestID),
				logger.String("eventID", rec.Event.ID),
				logger.Float64("culturalScore", cultural),
				logger.Float64("floor", floor),
			)
			continue
		}
		kept = append(kept, rec)
	}
	return kept
}

// filterByAge drops events whose minimum-age gate the user fails.
func (e *Engine) filterByAge(ctx context.Context, log logger.Logger, requestID string, profile model.UserProfile, events []model.Event) []model.Event {
	kept := events[:0:0]
	for _, ev := range events {
		if prefs.AgeCompatibility(profile, ev) == 0 {
			metrics.RecordCandidateFiltered("age_gate")
			log.Debug(ctx, "excluded event behind age gate",
				logger.String("requestID", requestID),
				logger.String("eventID", ev.ID),
				logger.Int("minAge", ev.MinAge),
			)
			continue
		}
		kept = append(kept, ev)
	}
	return kept
}

// validateAgainstCalendar drops events the calendar rejects. A provider
// failure keeps the event: validation is advisory, not data-destroying.
func (e *Engine) validateAgainstCalendar(ctx context.Context, log logger.Logger, requestID string, events []model.Event) ([]model.Event, error) {
	kept := events[:0:0]
	for _, ev := range events {
		var v struct {
			valid  bool
			reason string
		}
		ok := e.provider(ctx, "calendar", func(pctx context.Context) error {
			res, err := e.calendar.ValidateEventAgainstCalendar(pctx, ev)
			if err != nil {
				return err
			}
			v.valid = res.IsValid
			v.reason = res.Reason
			return nil
		})
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrCancelled, err)
		}
		if ok && !v.valid {
			metrics.RecordCandidateFiltered("calendar_invalid")
			log.Debug(ctx, "excluded calendar-invalid event",
				logger.String("requestID", requestID),
				logger.String("eventID", ev.ID),
				logger.String("reason", v.reason),
			)
			continue
		}
		kept = append(kept, ev)
	}
	return kept, nil
}

// resolveConflicts runs the table-driven conflict resolver and records
// the audit trail.
func (e *Engine) resolveConflicts(ctx context.Context, log logger.Logger, requestID string, uc userContext, recs []types.Recommendation) []types.Recommendation {
	resolver := conflict.NewResolver(
		conflict.WithRules(uc.conflictRules),
		conflict.WithCulturalFloor(uc.profile.Sensitivity.AppropriatenessFloor()),
	)
	accepted, groups := resolver.Resolve(recs)
	for _, g := range groups {
		metrics.RecordConflictDetected(string(g.Kind))
		metrics.RecordConflictResolved(string(g.Kind), string(g.Outcome))
		log.Info(ctx, "resolved conflict",
			logger.String("requestID", requestID),
			logger.String("kind", string(g.Kind)),
			logger.String("outcome", string(g.Outcome)),
			logger.String("reason", g.Reason),
		)
	}
	return accepted
}

// auditLocations runs explicit edge-case handling for each candidate and
// logs what was handled. Scoring itself already degrades gracefully;
// this stage exists for auditability of the degradation.
func (e *Engine) auditLocations(ctx context.Context, log logger.Logger, requestID string, profile model.UserProfile, events []model.Event) {
	for _, ev := range events {
		ev := ev
		_ = e.provider(ctx, "geo", func(pctx context.Context) error {
			res, err := e.geo.HandleLocationEdgeCase(pctx, profile.Home, ev)
			if err != nil {
				return err
			}
			if res.Handled {
				log.Info(ctx, "location edge case handled",
					logger.String("requestID", requestID),
					logger.String("eventID", ev.ID),
					logger.String("reason", res.Reason),
					logger.Float64("fallbackScore", res.Score),
				)
			}
			return nil
		})
	}
}
