package semantic

import (
	"context"
	"errors"
	"fmt"
	"math"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/soukayna-thr/Supply-Chain-Traceability-OAR/internal/embedding"
	"github.com/soukayna-thr/Supply-Chain-Traceability-OAR/internal/model"
)

// stubEmbedder returns fixed vectors keyed by input text.
type stubEmbedder struct {
	vectors map[string][]float32
	err     error
	calls   int
}

func (s *stubEmbedder) EmbedBatch(_ context.Context, texts []string) ([][]float32, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	out := make([][]float32, len(texts))
	for i, t := range texts {
		v, ok := s.vectors[t]
		if !ok {
			return nil, fmt.Errorf("no stub vector for %q", t)
		}
		out[i] = v
	}
	return out, nil
}

func orgWithDesc(id, desc string) model.OrganizationRecord {
	return model.OrganizationRecord{OrganizationID: id, Name: id, Description: desc}
}

func TestCosineSymmetric(t *testing.T) {
	a := []float32{0.3, 0.9, 0.1}
	b := []float32{0.7, 0.2, 0.5}
	assert.Equal(t, Cosine(a, b), Cosine(b, a))
}

func TestCosineIdenticalAndOrthogonal(t *testing.T) {
	a := []float32{1, 0}
	assert.InDelta(t, 1.0, Cosine(a, a), 1e-12)
	assert.Equal(t, 0.0, Cosine([]float32{1, 0}, []float32{0, 1}))
	assert.Equal(t, 0.0, Cosine([]float32{0, 0}, []float32{1, 0}))
	assert.Equal(t, 0.0, Cosine([]float32{1}, []float32{1, 0}))
}

func TestDetectReportsPairsAboveThreshold(t *testing.T) {
	stub := &stubEmbedder{vectors: map[string][]float32{
		"alpha": {1, 0},
		"beta":  {1, 0},
		"gamma": {0, 1},
	}}
	d := NewDetector(stub, 10, 0.85, 42, zerolog.Nop())

	pairs, err := d.Detect(context.Background(), []model.OrganizationRecord{
		orgWithDesc("ORG_1", "alpha"),
		orgWithDesc("ORG_2", "beta"),
		orgWithDesc("ORG_3", "gamma"),
	})
	require.NoError(t, err)
	require.Len(t, pairs, 1)
	assert.Equal(t, "ORG_1", pairs[0].OrganizationID1)
	assert.Equal(t, "ORG_2", pairs[0].OrganizationID2)
	assert.Equal(t, 1.0, pairs[0].Similarity)
	assert.Equal(t, 1, stub.calls, "descriptions must be embedded in a single batch")
}

func TestDetectNoSelfOrMirroredPairs(t *testing.T) {
	// All vectors identical: every unordered pair scores 1.0 and must be
	// reported exactly once, ordered by sample position.
	vectors := map[string][]float32{}
	var recs []model.OrganizationRecord
	for i := 0; i < 4; i++ {
		desc := fmt.Sprintf("desc-%d", i)
		vectors[desc] = []float32{1, 2, 3}
		recs = append(recs, orgWithDesc(fmt.Sprintf("ORG_%d", i), desc))
	}
	d := NewDetector(&stubEmbedder{vectors: vectors}, 10, 0.85, 42, zerolog.Nop())

	pairs, err := d.Detect(context.Background(), recs)
	require.NoError(t, err)
	assert.Len(t, pairs, 6)

	seen := map[string]bool{}
	for _, p := range pairs {
		assert.NotEqual(t, p.OrganizationID1, p.OrganizationID2)
		key := p.OrganizationID1 + "|" + p.OrganizationID2
		assert.False(t, seen[key], "pair %s reported twice", key)
		seen[key] = true
		assert.False(t, seen[p.OrganizationID2+"|"+p.OrganizationID1])
	}
}

func TestDetectThresholdBoundary(t *testing.T) {
	a := []float32{1, 0}
	b := []float32{1, 1}
	boundary := Cosine(a, b)

	stub := &stubEmbedder{vectors: map[string][]float32{"a": a, "b": b}}
	recs := []model.OrganizationRecord{orgWithDesc("ORG_A", "a"), orgWithDesc("ORG_B", "b")}

	// Exactly at the threshold: included.
	at := NewDetector(stub, 10, boundary, 42, zerolog.Nop())
	pairs, err := at.Detect(context.Background(), recs)
	require.NoError(t, err)
	assert.Len(t, pairs, 1)

	// One ULP above the score: excluded.
	above := NewDetector(stub, 10, math.Nextafter(boundary, 1), 42, zerolog.Nop())
	pairs, err = above.Detect(context.Background(), recs)
	require.NoError(t, err)
	assert.Empty(t, pairs)
}

func TestDetectSampleDeterministic(t *testing.T) {
	vectors := map[string][]float32{}
	var recs []model.OrganizationRecord
	for i := 0; i < 20; i++ {
		desc := fmt.Sprintf("desc-%d", i)
		vectors[desc] = []float32{float32(i + 1), 1}
		recs = append(recs, orgWithDesc(fmt.Sprintf("ORG_%02d", i), desc))
	}

	run := func() []model.DuplicatePair {
		d := NewDetector(&stubEmbedder{vectors: vectors}, 5, 0.9, 7, zerolog.Nop())
		pairs, err := d.Detect(context.Background(), recs)
		require.NoError(t, err)
		return pairs
	}

	assert.Equal(t, run(), run(), "same seed and input must reproduce the same report")
}

func TestDetectProviderFailure(t *testing.T) {
	stub := &stubEmbedder{err: fmt.Errorf("%w: model unavailable", embedding.ErrProvider)}
	d := NewDetector(stub, 10, 0.85, 42, zerolog.Nop())

	_, err := d.Detect(context.Background(), []model.OrganizationRecord{
		orgWithDesc("ORG_1", "a"),
		orgWithDesc("ORG_2", "b"),
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, embedding.ErrProvider))
}

func TestDetectTinySample(t *testing.T) {
	d := NewDetector(&stubEmbedder{}, 10, 0.85, 42, zerolog.Nop())
	pairs, err := d.Detect(context.Background(), []model.OrganizationRecord{orgWithDesc("ORG_1", "a")})
	require.NoError(t, err)
	assert.Empty(t, pairs)
}

func TestDetectScoreRounded(t *testing.T) {
	a := []float32{1, 0}
	b := []float32{1, 1}
	boundary := Cosine(a, b) // 1/sqrt(2), irrational

	stub := &stubEmbedder{vectors: map[string][]float32{"a": a, "b": b}}
	d := NewDetector(stub, 10, boundary, 42, zerolog.Nop())

	pairs, err := d.Detect(context.Background(), []model.OrganizationRecord{
		orgWithDesc("ORG_A", "a"), orgWithDesc("ORG_B", "b"),
	})
	require.NoError(t, err)
	require.Len(t, pairs, 1)
	assert.Equal(t, 0.707, pairs[0].Similarity)
}
