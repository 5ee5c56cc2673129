package model

import (
	"log"
	"path/filepath"

	"seelikeme/pkg/types"
)

// Cutoffs carries the per-domain high-confidence thresholds from configuration.
// These are part of the observable contract with the client.
type Cutoffs struct {
	Dyslexia float64
	ADHD     float64
	Autism   float64
}

// Bundle holds the three loaded prediction adapters.
// ARCHITECTURAL DISCOVERY: Constructed once at process start and passed by
// reference to request-handling code - no ambient model globals
type Bundle struct {
	Reading   *VectorAdapter
	Attention *VectorAdapter
	Sensory   *SensoryAdapter
}

// Feature-vector lengths each adapter slot feeds its artifact
const (
	vectorFeatureCount  = 5
	sensoryFeatureCount = 7
)

// LoadBundle loads the canonical artifacts from dir.
// FUNCTIONAL DISCOVERY: A missing, malformed or misfiled artifact leaves that
// single adapter unavailable instead of aborting startup - detection must
// degrade, not fail, under partial model availability
func LoadBundle(dir string, cutoffs Cutoffs) *Bundle {
	return &Bundle{
		Reading:   NewVectorAdapter(loadOptional(dir, ArtifactDyslexia, types.DomainDyslexia, vectorFeatureCount), cutoffs.Dyslexia),
		Attention: NewVectorAdapter(loadOptional(dir, ArtifactADHD, types.DomainADHD, vectorFeatureCount), cutoffs.ADHD),
		Sensory:   NewSensoryAdapter(loadOptional(dir, ArtifactAutism, types.DomainAutism, sensoryFeatureCount), cutoffs.Autism),
	}
}

// NewBundle assembles a bundle from in-memory artifacts (nil entries allowed)
func NewBundle(dyslexia, adhd, autism *Artifact, cutoffs Cutoffs) *Bundle {
	return &Bundle{
		Reading:   NewVectorAdapter(dyslexia, cutoffs.Dyslexia),
		Attention: NewVectorAdapter(adhd, cutoffs.ADHD),
		Sensory:   NewSensoryAdapter(autism, cutoffs.Autism),
	}
}

// LoadedDomains reports per-domain model availability for health reporting
func (b *Bundle) LoadedDomains() map[string]bool {
	return map[string]bool{
		types.DomainDyslexia: b.Reading.Loaded(),
		types.DomainADHD:     b.Attention.Loaded(),
		types.DomainAutism:   b.Sensory.Loaded(),
	}
}

// AllLoaded reports whether every domain has a usable model
func (b *Bundle) AllLoaded() bool {
	return b.Reading.Loaded() && b.Attention.Loaded() && b.Sensory.Loaded()
}

func loadOptional(dir, name, domain string, featureCount int) *Artifact {
	path := filepath.Join(dir, name)
	artifact, err := LoadArtifact(path)
	if err != nil {
		log.Printf("Model artifact unavailable, adapter will use fallback outcome: %v", err)
		return nil
	}

	// A self-consistent artifact can still be misfiled under another slot's
	// canonical name; such a parameter set must degrade like a missing one,
	// never reach the predict path
	if artifact.Domain != domain || len(artifact.FeatureNames) != featureCount {
		log.Printf("Model artifact %s does not fit the %s slot (domain=%s features=%d, want %d), adapter will use fallback outcome",
			name, domain, artifact.Domain, len(artifact.FeatureNames), featureCount)
		return nil
	}

	log.Printf("Loaded model artifact: domain=%s method=%s accuracy=%.2f", artifact.Domain, artifact.Method, artifact.Accuracy)
	return artifact
}
