// Package dedupe collapses near-duplicate organization records. The pass is
// order-sensitive on purpose: the first occurrence of a cluster is always
// the retained representative, and a dropped duplicate's fields are
// discarded, not merged into the survivor.
package dedupe

import (
	"github.com/rs/zerolog"

	"github.com/soukayna-thr/Supply-Chain-Traceability-OAR/internal/model"
)

type seenKey struct {
	name    string
	country string
}

// Stats summarizes one deduplication pass.
type Stats struct {
	Input    int
	Retained int
	Dropped  int
}

type Deduplicator struct {
	threshold float64
	logger    zerolog.Logger
}

// NewDeduplicator builds a Deduplicator with the given similarity
// threshold on the 0-100 scale. Scores strictly above it count as
// duplicates.
func NewDeduplicator(threshold float64, logger zerolog.Logger) *Deduplicator {
	return &Deduplicator{threshold: threshold, logger: logger}
}

// Dedupe walks records in input order and returns the subsequence of first
// representatives. A candidate is compared against every already-accepted
// key with exactly the same canonical country; any token-sort score above
// the threshold drops it. Worst case O(n²) when all records share a
// country, accepted for exact recall.
func (d *Deduplicator) Dedupe(records []model.OrganizationRecord) ([]model.OrganizationRecord, Stats) {
	retained := make([]model.OrganizationRecord, 0, len(records))
	seen := make([]seenKey, 0, len(records))

	for _, rec := range records {
		match, dup := d.findDuplicate(rec, seen)
		if dup {
			d.logger.Debug().
				Str("dropped", rec.Name).
				Str("retained", match.name).
				Str("country", rec.Country).
				Msg("near-duplicate organization dropped")
			continue
		}
		retained = append(retained, rec)
		seen = append(seen, seenKey{name: rec.Name, country: rec.Country})
	}

	stats := Stats{
		Input:    len(records),
		Retained: len(retained),
		Dropped:  len(records) - len(retained),
	}
	d.logger.Info().
		Int("input", stats.Input).
		Int("retained", stats.Retained).
		Int("dropped", stats.Dropped).
		Msg("deduplication pass complete")
	return retained, stats
}

func (d *Deduplicator) findDuplicate(rec model.OrganizationRecord, seen []seenKey) (seenKey, bool) {
	for _, key := range seen {
		if rec.Country != key.country {
			continue
		}
		if TokenSortRatio(rec.Name, key.name) > d.threshold {
			return key, true
		}
	}
	return seenKey{}, false
}
