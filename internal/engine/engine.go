// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package engine turns candidate schema.org items into a single canonical
// reservation. JSON-LD candidates are tried first, then microdata; the first
// candidate whose @type matches and whose record clears the acceptance gate
// wins.
package engine

import (
	"fmt"

	"github.com/pdiddy/reservation-engine/internal/normalize"
	"github.com/pdiddy/reservation-engine/internal/schemaorg"
	"github.com/pdiddy/reservation-engine/internal/score"
	"github.com/pdiddy/reservation-engine/pkg/logger"
	"github.com/pdiddy/reservation-engine/pkg/types"
)

// Candidates are the structured-data items found in one document, grouped
// by syntax and kept in document order.
type Candidates struct {
	JSONLD    []schemaorg.Node `json:"jsonld" yaml:"jsonld"`
	Microdata []schemaorg.Node `json:"microdata" yaml:"microdata"`
}

// Len returns the total number of candidates.
func (c Candidates) Len() int {
	return len(c.JSONLD) + len(c.Microdata)
}

// Dispatcher routes one item to the extractor for a reservation type.
// normalize.Dispatcher is the production implementation.
type Dispatcher interface {
	Dispatch(item schemaorg.Node, rt types.ReservationType) (types.Reservation, bool, error)
}

// Option configures an Engine.
type Option func(*Engine)

// WithDispatcher replaces the built-in dispatcher.
func WithDispatcher(d Dispatcher) Option {
	return func(e *Engine) { e.dispatcher = d }
}

// Engine normalizes candidates. It keeps no per-call state and is safe for
// concurrent use.
type Engine struct {
	dispatcher Dispatcher
	log        *logger.Logger
}

// New returns an Engine logging to log. A nil log discards output.
func New(log *logger.Logger, opts ...Option) *Engine {
	if log == nil {
		log = logger.Nop()
	}
	e := &Engine{
		dispatcher: normalize.NewDispatcher(),
		log:        log.Named("engine"),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

type source struct {
	method types.Method
	items  []schemaorg.Node
}

// Normalize evaluates candidates for rt and returns the first accepted
// record. When nothing qualifies it returns types.NotFound, with Error set
// to the last internal failure if an extractor failed along the way.
func (e *Engine) Normalize(c Candidates, rt types.ReservationType) (res types.Result) {
	log := e.log.With(logger.String("type", string(rt)))

	defer func() {
		if r := recover(); r != nil {
			log.Error("normalization failed", logger.Any("panic", r))
			res = types.NotFound()
			res.Error = fmt.Sprintf("normalization failed: %v", r)
		}
	}()

	var lastErr error
	for _, src := range []source{
		{method: types.MethodJSONLD, items: c.JSONLD},
		{method: types.MethodMicrodata, items: c.Microdata},
	} {
		for i, item := range src.items {
			rec, ok, err := e.dispatcher.Dispatch(item, rt)
			if err != nil {
				log.Error("extractor failed",
					logger.String("method", string(src.method)),
					logger.Int("index", i),
					logger.Error(err))
				lastErr = err
				continue
			}
			if !ok {
				continue
			}

			report := score.Evaluate(rec, rt)
			if !score.Accepted(report.Score) {
				log.Info("candidate incomplete, will fall back",
					logger.String("method", string(src.method)),
					logger.Int("index", i),
					logger.Float64("completeness", report.Score),
					logger.Strings("missing", report.Missing))
				continue
			}

			log.Debug("candidate accepted",
				logger.String("method", string(src.method)),
				logger.Int("index", i),
				logger.Float64("completeness", report.Score))
			return types.Result{
				Success:      true,
				Method:       src.method,
				Data:         rec,
				Completeness: report.Score,
				Confidence:   score.Classify(report.Score),
			}
		}
	}

	res = types.NotFound()
	if lastErr != nil {
		res.Error = lastErr.Error()
	}
	return res
}
