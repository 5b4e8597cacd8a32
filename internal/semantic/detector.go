// Package semantic surfaces organizations whose free-text descriptions are
// near-identical even when their names differ. A seeded sample of the
// resolved set is embedded in one batch call and every unordered pair is
// scored by cosine similarity.
package semantic

import (
	"context"
	"fmt"
	"math"
	"math/rand"

	"github.com/rs/zerolog"

	"github.com/soukayna-thr/Supply-Chain-Traceability-OAR/internal/embedding"
	"github.com/soukayna-thr/Supply-Chain-Traceability-OAR/internal/model"
)

type Detector struct {
	embedder   embedding.Embedder
	sampleSize int
	threshold  float64
	seed       int64
	logger     zerolog.Logger
}

// NewDetector builds a Detector. sampleSize bounds how many organizations
// are embedded; threshold is the inclusive similarity cutoff in (0,1];
// seed drives the sampling so identical inputs reproduce the same sample.
func NewDetector(embedder embedding.Embedder, sampleSize int, threshold float64, seed int64, logger zerolog.Logger) *Detector {
	return &Detector{
		embedder:   embedder,
		sampleSize: sampleSize,
		threshold:  threshold,
		seed:       seed,
		logger:     logger,
	}
}

// Detect samples the organization set, embeds the sampled descriptions and
// returns every pair scoring at or above the threshold. Scores are rounded
// to 3 decimals; pairs are ordered i<j by sample position so mirrors never
// appear. Provider failures abort this run only.
func (d *Detector) Detect(ctx context.Context, orgs []model.OrganizationRecord) ([]model.DuplicatePair, error) {
	sample := d.sample(orgs)
	if len(sample) < 2 {
		d.logger.Info().Int("sampled", len(sample)).Msg("sample too small for pairwise comparison")
		return nil, nil
	}
	d.logger.Info().Int("sampled", len(sample)).Msg("embedding sampled descriptions")

	texts := make([]string, len(sample))
	for i, org := range sample {
		texts[i] = org.Description
	}
	vectors, err := d.embedder.EmbedBatch(ctx, texts)
	if err != nil {
		return nil, fmt.Errorf("embed %d descriptions: %w", len(texts), err)
	}
	if len(vectors) != len(sample) {
		return nil, fmt.Errorf("%w: got %d vectors for %d inputs", embedding.ErrProvider, len(vectors), len(sample))
	}

	var pairs []model.DuplicatePair
	for i := 0; i < len(sample); i++ {
		for j := i + 1; j < len(sample); j++ {
			score := Cosine(vectors[i], vectors[j])
			if score >= d.threshold {
				pairs = append(pairs, model.DuplicatePair{
					OrganizationID1: sample[i].OrganizationID,
					Name1:           sample[i].Name,
					OrganizationID2: sample[j].OrganizationID,
					Name2:           sample[j].Name,
					Similarity:      round3(score),
				})
			}
		}
	}

	d.logger.Info().Int("pairs", len(pairs)).Msg("semantic duplicate detection complete")
	return pairs, nil
}

// sample draws up to sampleSize organizations with a generator seeded from
// the configured seed. Same seed, same input order, same sample.
func (d *Detector) sample(orgs []model.OrganizationRecord) []model.OrganizationRecord {
	if len(orgs) <= d.sampleSize {
		out := make([]model.OrganizationRecord, len(orgs))
		copy(out, orgs)
		return out
	}

	rng := rand.New(rand.NewSource(d.seed))
	idx := rng.Perm(len(orgs))[:d.sampleSize]
	out := make([]model.OrganizationRecord, 0, d.sampleSize)
	for _, i := range idx {
		out = append(out, orgs[i])
	}
	return out
}

// Cosine computes cosine similarity between two vectors. Zero vectors or
// mismatched dimensions score 0.
func Cosine(a, b []float32) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}
	var dot, na, nb float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		na += float64(a[i]) * float64(a[i])
		nb += float64(b[i]) * float64(b[i])
	}
	if na == 0 || nb == 0 {
		return 0
	}
	return dot / (math.Sqrt(na) * math.Sqrt(nb))
}

func round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}
