// Package pipeline composes normalization, prompt building, the gateway
// call, reply extraction, and filtering into one run. A run is fail-fast:
// the first stage error is surfaced and no partial output is produced.
package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"glacier/internal/extract"
	"glacier/internal/filter"
	"glacier/internal/gateway"
	"glacier/internal/inputs"
	"glacier/internal/prompt"
	"glacier/internal/tokens"
)

// ProgressFunc receives stage updates during a run. Query-stage updates are
// emitted from concurrent batch workers, so implementations must be safe for
// concurrent use.
type ProgressFunc func(stage, message string)

// Options configure one pipeline instance. Everything is explicit; pipelines
// with different configurations can coexist, e.g. in tests.
type Options struct {
	Tech       string
	KnownURLs  []string
	Exclusions []string
	Params     prompt.Params

	Gateway  gateway.Gateway
	Strategy extract.Strategy
	Pricing  tokens.Pricing

	// RateLimit caps gateway calls per second across batches; zero means
	// unlimited. Concurrency bounds in-flight calls; zero means 10.
	RateLimit   float64
	Concurrency int
	Timeout     time.Duration

	OnProgress ProgressFunc
}

// Result is the outcome of one successful run.
type Result struct {
	RunID    uuid.UUID
	URLs     []string
	Batches  int
	Estimate tokens.Estimate
}

// Pipeline executes runs. Construct with New; the zero value is not usable.
type Pipeline struct {
	opts    Options
	builder *prompt.Builder
}

const defaultConcurrency = 10

// New returns a ready pipeline, applying defaults for the extraction
// strategy and concurrency bound.
func New(opts Options) *Pipeline {
	if opts.Strategy == nil {
		opts.Strategy = extract.LineStrategy{}
	}
	if opts.Concurrency <= 0 {
		opts.Concurrency = defaultConcurrency
	}

	return &Pipeline{
		opts:    opts,
		builder: prompt.NewBuilder(tokens.NewEstimator(opts.Pricing)),
	}
}

// Run performs one full request/response cycle and returns the filtered
// result set.
func (p *Pipeline) Run(ctx context.Context) (*Result, error) {
	if p.opts.Gateway == nil {
		return nil, fmt.Errorf("pipeline: no gateway configured")
	}

	runID := uuid.New()
	tech, known, exclusions := p.normalized()

	requests, err := p.buildRequests(tech, known, exclusions)
	if err != nil {
		return nil, err
	}
	p.progress("prompt", fmt.Sprintf("composed %d request(s)", len(requests)))

	replies, err := p.sendAll(ctx, requests)
	if err != nil {
		return nil, err
	}

	var candidates []string
	for i, reply := range replies {
		extracted, err := p.opts.Strategy.Extract(reply)
		if err != nil {
			return nil, fmt.Errorf("parse reply (batch %d/%d): %w", i+1, len(replies), err)
		}
		candidates = append(candidates, extracted...)
	}
	p.progress("parse", fmt.Sprintf("extracted %d candidate(s)", len(candidates)))

	urls := filter.Filter(candidates, known, exclusions)
	p.progress("filter", fmt.Sprintf("%d candidate(s) survived filtering", len(urls)))

	return &Result{
		RunID:    runID,
		URLs:     urls,
		Batches:  len(requests),
		Estimate: p.estimate(requests),
	}, nil
}

// EstimateOnly projects token and cost totals without constructing or
// calling any gateway.
func (p *Pipeline) EstimateOnly() (*Result, error) {
	tech, known, exclusions := p.normalized()

	requests, err := p.buildRequests(tech, known, exclusions)
	if err != nil {
		return nil, err
	}

	return &Result{
		RunID:    uuid.New(),
		Batches:  len(requests),
		Estimate: p.estimate(requests),
	}, nil
}

// normalized canonicalizes the three raw inputs.
func (p *Pipeline) normalized() (string, []string, []string) {
	return inputs.NormalizeDescription(p.opts.Tech),
		inputs.NormalizeLines(p.opts.KnownURLs),
		inputs.NormalizeLines(p.opts.Exclusions)
}

// buildRequests batches the known URLs under the token budget and composes
// one request per batch, distributing the result count across them.
func (p *Pipeline) buildRequests(tech string, known, exclusions []string) ([]*prompt.Request, error) {
	batches, err := p.builder.SplitBatches(tech, known, exclusions, p.opts.Params)
	if err != nil {
		return nil, fmt.Errorf("build prompt: %w", err)
	}

	counts := prompt.DistributeResults(p.opts.Params.NumResults, len(batches))

	requests := make([]*prompt.Request, len(batches))
	for i, batch := range batches {
		params := p.opts.Params
		params.NumResults = counts[i]

		req, err := p.builder.Build(tech, batch, exclusions, params)
		if err != nil {
			return nil, fmt.Errorf("build prompt (batch %d/%d): %w", i+1, len(batches), err)
		}
		requests[i] = req
	}

	return requests, nil
}

// sendAll issues the gateway calls, bounded by the concurrency limit and the
// optional rate limiter. Replies come back in request order; the first
// failure cancels the rest.
func (p *Pipeline) sendAll(ctx context.Context, requests []*prompt.Request) ([]string, error) {
	var limiter *rate.Limiter
	if p.opts.RateLimit > 0 {
		limiter = rate.NewLimiter(rate.Limit(p.opts.RateLimit), 1)
	}

	replies := make([]string, len(requests))

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(p.opts.Concurrency)

	for i, req := range requests {
		i, req := i, req
		g.Go(func() error {
			if limiter != nil {
				if err := limiter.Wait(gCtx); err != nil {
					return fmt.Errorf("query model (batch %d/%d): %w", i+1, len(requests), err)
				}
			}

			callCtx := gCtx
			if p.opts.Timeout > 0 {
				var cancel context.CancelFunc
				callCtx, cancel = context.WithTimeout(gCtx, p.opts.Timeout)
				defer cancel()
			}

			reply, err := p.opts.Gateway.Send(callCtx, req.Text, req.Params)
			if err != nil {
				return fmt.Errorf("query model (batch %d/%d): %w", i+1, len(requests), err)
			}
			replies[i] = reply
			p.progress("query", fmt.Sprintf("batch %d/%d answered", i+1, len(requests)))
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return replies, nil
}

// estimate totals the pre-flight projections for the composed requests.
func (p *Pipeline) estimate(requests []*prompt.Request) tokens.Estimate {
	estimator := p.builder.Estimator()

	var total tokens.Estimate
	for _, req := range requests {
		total = total.Add(estimator.Estimate(req.Text, req.Params.Model, req.Params.NumResults, req.Params.MaxTokens))
	}
	return total
}

func (p *Pipeline) progress(stage, message string) {
	if p.opts.OnProgress != nil {
		p.opts.OnProgress(stage, message)
	}
}
