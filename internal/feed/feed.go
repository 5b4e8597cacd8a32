// Package feed produces the synthetic source feed of unresolved
// organization records, standing in for the public registry when live
// access is unavailable. Generation is fully driven by a seeded random
// source so a run is reproducible byte for byte.
package feed

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/soukayna-thr/Supply-Chain-Traceability-OAR/internal/config"
	"github.com/soukayna-thr/Supply-Chain-Traceability-OAR/internal/model"
)

var nameSuffixes = []string{"Ltd", "SARL", "SA", "SPA", "LDA", "Company"}

type Generator struct {
	cfg    config.FeedConfig
	logger zerolog.Logger
	now    func() time.Time
}

func NewGenerator(cfg config.FeedConfig, logger zerolog.Logger) *Generator {
	return &Generator{cfg: cfg, logger: logger, now: time.Now}
}

// Generate emits cfg.Total raw records spread evenly over the configured
// countries.
func (g *Generator) Generate() []model.RawOrganization {
	rng := rand.New(rand.NewSource(g.cfg.Seed))
	perCountry := 0
	if len(g.cfg.Countries) > 0 {
		perCountry = g.cfg.Total / len(g.cfg.Countries)
	}

	extractedAt := g.now().UTC().Format(time.RFC3339)
	rows := make([]model.RawOrganization, 0, perCountry*len(g.cfg.Countries))

	seq := 1
	for _, country := range g.cfg.Countries {
		g.logger.Info().Str("country", country).Int("count", perCountry).Msg("generating feed records")
		for i := 0; i < perCountry; i++ {
			industry := pick(rng, g.cfg.Industries)
			rows = append(rows, model.RawOrganization{
				Name:               fmt.Sprintf("%s Industrial Group %d %s", country, seq, pick(rng, nameSuffixes)),
				Country:            country,
				RegistrationNumber: fmt.Sprintf("%s-%06d", countryCode(country), 100000+rng.Intn(900000)),
				Industry:           industry,
				Description:        description(industry),
				Website:            fmt.Sprintf("https://www.company%d.com", seq),
				DeclaredSiteCount:  1 + rng.Intn(12),
				Source:             "OpenSupplyHub (synthetic)",
				ExtractedAt:        extractedAt,
			})
			seq++
		}
	}

	g.logger.Info().Int("total", len(rows)).Msg("synthetic feed generated")
	return rows
}

func pick(rng *rand.Rand, options []string) string {
	if len(options) == 0 {
		return ""
	}
	return options[rng.Intn(len(options))]
}

func countryCode(country string) string {
	runes := []rune(country)
	if len(runes) < 2 {
		return "XX"
	}
	return strings.ToUpper(string(runes[:2]))
}

func description(industry string) string {
	return fmt.Sprintf(
		"Company operating in the %s sector, specializing in regional and international supply chains.",
		strings.ToLower(industry),
	)
}
