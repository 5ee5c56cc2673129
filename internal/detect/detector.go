package detect

import (
	"context"
	"log"

	"seelikeme/internal/features"
	"seelikeme/internal/model"
	"seelikeme/pkg/types"
)

// DefaultWorkers bounds concurrent inference; one slot per trait domain
// matches the fan-out of a single assessment.
const DefaultWorkers = 3

// Detector runs the three prediction adapters against one assessment.
// ARCHITECTURAL DISCOVERY: Inference is CPU-bound, so domain predictions are
// dispatched onto a bounded worker pool and awaited rather than run inline
// on the request goroutine
type Detector struct {
	models *model.Bundle
	slots  chan struct{}
}

// NewDetector creates a detector over a loaded model bundle
func NewDetector(models *model.Bundle, workers int) *Detector {
	if workers <= 0 {
		workers = DefaultWorkers
	}
	return &Detector{
		models: models,
		slots:  make(chan struct{}, workers),
	}
}

type domainOutcome struct {
	domain string
	result types.DomainResult
}

// DetectAll invokes the three adapters concurrently and merges their outcomes
// by trait-domain key.
// FUNCTIONAL DISCOVERY: No data dependency between domains - each prediction
// is pure and side-effect free, so no retries and no cross-domain aborts.
// A single adapter failing (fallback outcome) never prevents the other two
// from producing a result.
func (d *Detector) DetectAll(ctx context.Context, assessment types.Assessment) types.DetectionResult {
	outcomes := make(chan domainOutcome, len(types.DomainOrder))

	go d.runDomain(ctx, outcomes, types.DomainDyslexia, func() types.DomainResult {
		vec, err := features.NormalizeReading(assessment.Reading)
		if err != nil {
			log.Printf("Reading normalization failed for session %s, using neutral defaults: %v", assessment.SessionID, err)
		}
		return d.models.Reading.Predict(vec)
	})

	go d.runDomain(ctx, outcomes, types.DomainADHD, func() types.DomainResult {
		vec, err := features.NormalizeAttention(assessment.Attention)
		if err != nil {
			log.Printf("Attention normalization failed for session %s, using neutral defaults: %v", assessment.SessionID, err)
		}
		return d.models.Attention.Predict(vec)
	})

	go d.runDomain(ctx, outcomes, types.DomainAutism, func() types.DomainResult {
		return d.models.Sensory.Predict(features.NormalizeSensory(assessment.Sensory))
	})

	result := make(types.DetectionResult, len(types.DomainOrder))
	for range types.DomainOrder {
		outcome := <-outcomes
		result[outcome.domain] = outcome.result
	}
	return result
}

// runDomain executes one domain prediction inside a worker slot.
// FUNCTIONAL DISCOVERY: Cancelled contexts produce the fallback outcome so
// the merge loop always receives exactly three results
func (d *Detector) runDomain(ctx context.Context, outcomes chan<- domainOutcome, domain string, predict func() types.DomainResult) {
	select {
	case <-ctx.Done():
		outcomes <- domainOutcome{domain: domain, result: model.Unavailable()}
		return
	default:
	}

	select {
	case d.slots <- struct{}{}:
		defer func() { <-d.slots }()
	case <-ctx.Done():
		outcomes <- domainOutcome{domain: domain, result: model.Unavailable()}
		return
	}

	outcomes <- domainOutcome{domain: domain, result: predict()}
}

// Models exposes the underlying bundle for health and model-info reporting
func (d *Detector) Models() *model.Bundle {
	return d.models
}
