// Package pipeline sequences the resolution stages over file artifacts:
// feed, clean, sites, validate, detect, export. Each stage reads the
// latest input artifact, computes with pure components and writes a new
// timestamped artifact; no state is carried between stage invocations.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/soukayna-thr/Supply-Chain-Traceability-OAR/internal/artifact"
	"github.com/soukayna-thr/Supply-Chain-Traceability-OAR/internal/config"
	"github.com/soukayna-thr/Supply-Chain-Traceability-OAR/internal/dedupe"
	"github.com/soukayna-thr/Supply-Chain-Traceability-OAR/internal/embedding"
	"github.com/soukayna-thr/Supply-Chain-Traceability-OAR/internal/feed"
	"github.com/soukayna-thr/Supply-Chain-Traceability-OAR/internal/identity"
	"github.com/soukayna-thr/Supply-Chain-Traceability-OAR/internal/model"
	"github.com/soukayna-thr/Supply-Chain-Traceability-OAR/internal/normalize"
	"github.com/soukayna-thr/Supply-Chain-Traceability-OAR/internal/relcheck"
	"github.com/soukayna-thr/Supply-Chain-Traceability-OAR/internal/semantic"
	"github.com/soukayna-thr/Supply-Chain-Traceability-OAR/internal/sites"
	"github.com/soukayna-thr/Supply-Chain-Traceability-OAR/internal/stats"
)

// Artifact stems, one per handoff table.
const (
	StemRaw              = "organizations_raw"
	StemOrganizations    = "organizations_cleaned"
	StemSites            = "sites_cleaned"
	StemLinks            = "organization_sites"
	StemRelOrganizations = "organizations"
	StemRelSites         = "sites"
	StemRelLinks         = "organization_sites"
	StemDuplicates       = "duplicate_organizations"
	StemReport           = "validation_report"
	StemStats            = "summary_stats"
	StemFinalOrgs        = "organizations_final"
	StemFinalSites       = "sites_final"
	StemFinalLinks       = "organization_sites_final"
	StemFinalDuplicates  = "duplicate_organizations_final"
)

type Pipeline struct {
	cfg    *config.Config
	logger zerolog.Logger

	raw        *artifact.Store
	processed  *artifact.Store
	relational *artifact.Store
	ai         *artifact.Store
	final      *artifact.Store

	// Embedder is built from config on first use unless injected.
	Embedder embedding.Embedder

	now func() time.Time
}

func New(cfg *config.Config, logger zerolog.Logger) *Pipeline {
	return &Pipeline{
		cfg:        cfg,
		logger:     logger,
		raw:        artifact.NewStore(cfg.Artifacts.RawDir, logger),
		processed:  artifact.NewStore(cfg.Artifacts.ProcessedDir, logger),
		relational: artifact.NewStore(cfg.Artifacts.RelationalDir, logger),
		ai:         artifact.NewStore(cfg.Artifacts.AIDir, logger),
		final:      artifact.NewStore(cfg.Artifacts.FinalDir, logger),
		now:        time.Now,
	}
}

// Feed generates the synthetic source feed artifact.
func (p *Pipeline) Feed() error {
	p.banner("feed")
	rows := feed.NewGenerator(p.cfg.Feed, p.logger).Generate()
	return p.raw.SaveRawOrganizations(StemRaw, rows)
}

// Clean normalizes the raw feed, assigns content-addressed identifiers and
// collapses near-duplicates, writing the unique organization set.
func (p *Pipeline) Clean() error {
	p.banner("clean")
	raws, err := p.raw.LoadRawOrganizations(StemRaw)
	if err != nil {
		return err
	}

	norm := normalize.New(p.cfg.Normalization.LegalSuffixes, p.cfg.Normalization.Countries)
	firstSeen := p.now().UTC().Format("2006-01-02")

	records := make([]model.OrganizationRecord, 0, len(raws))
	for _, r := range raws {
		name := norm.Name(r.Name)
		country := norm.Country(r.Country)
		records = append(records, model.OrganizationRecord{
			OrganizationID:    identity.OrganizationID(name, country),
			Name:              name,
			Country:           country,
			Industry:          r.Industry,
			Description:       r.Description,
			Website:           r.Website,
			DeclaredSiteCount: r.DeclaredSiteCount,
			FirstSeen:         firstSeen,
		})
	}

	d := dedupe.NewDeduplicator(p.cfg.Dedupe.Threshold, p.logger)
	retained, _ := d.Dedupe(records)
	return p.processed.SaveOrganizations(StemOrganizations, retained)
}

// Sites expands each retained organization into its declared sites and
// links.
func (p *Pipeline) Sites() error {
	p.banner("sites")
	orgs, err := p.processed.LoadOrganizations(StemOrganizations)
	if err != nil {
		return err
	}
	siteRecs, links := sites.NewGenerator(p.logger).Generate(orgs)
	if err := p.processed.SaveSites(StemSites, siteRecs); err != nil {
		return err
	}
	return p.processed.SaveLinks(StemLinks, links)
}

// Validate checks referential integrity across the three sets, persists
// the advisory report and republishes the sets as the relational artifact
// generation. Integrity violations never fail the stage.
func (p *Pipeline) Validate() error {
	p.banner("validate")
	orgs, sitesRecs, links, err := p.loadProcessedSets()
	if err != nil {
		return err
	}

	report := relcheck.Validate(orgs, sitesRecs, links)
	p.logReport(report)

	if err := p.relational.SaveDocument(StemReport, report); err != nil {
		return err
	}
	if err := p.relational.SaveOrganizations(StemRelOrganizations, orgs); err != nil {
		return err
	}
	if err := p.relational.SaveSites(StemRelSites, sitesRecs); err != nil {
		return err
	}
	return p.relational.SaveLinks(StemRelLinks, links)
}

// Detect runs semantic duplicate detection over a seeded sample of the
// unique organization set. Embedding provider failures abort this stage
// only.
func (p *Pipeline) Detect(ctx context.Context) error {
	p.banner("detect")
	orgs, err := p.processed.LoadOrganizations(StemOrganizations)
	if err != nil {
		return err
	}

	embedder := p.Embedder
	if embedder == nil {
		embedder, err = embedding.New(ctx, p.cfg.Embedding)
		if err != nil {
			return err
		}
	}

	detector := semantic.NewDetector(
		embedder,
		p.cfg.Semantic.SampleSize,
		p.cfg.Semantic.Threshold,
		p.cfg.Semantic.Seed,
		p.logger,
	)
	pairs, err := detector.Detect(ctx, orgs)
	if err != nil {
		return err
	}
	return p.ai.SaveDuplicatePairs(StemDuplicates, pairs)
}

// Export republishes the validated sets and the duplicate-pair report into
// the final directory and writes the summary-stats document.
func (p *Pipeline) Export() error {
	p.banner("export")
	orgs, err := p.relational.LoadOrganizations(StemRelOrganizations)
	if err != nil {
		return err
	}
	siteRecs, err := p.relational.LoadSites(StemRelSites)
	if err != nil {
		return err
	}
	links, err := p.relational.LoadLinks(StemRelLinks)
	if err != nil {
		return err
	}

	if err := p.final.SaveOrganizations(StemFinalOrgs, orgs); err != nil {
		return err
	}
	if err := p.final.SaveSites(StemFinalSites, siteRecs); err != nil {
		return err
	}
	if err := p.final.SaveLinks(StemFinalLinks, links); err != nil {
		return err
	}

	// The duplicate report is optional here: the detect stage may not
	// have run.
	pairs, err := p.ai.LoadDuplicatePairs(StemDuplicates)
	switch {
	case err == nil:
		if err := p.final.SaveDuplicatePairs(StemFinalDuplicates, pairs); err != nil {
			return err
		}
	case errors.Is(err, artifact.ErrNotFound):
		p.logger.Info().Msg("no duplicate-pair artifact found, skipping")
	default:
		return err
	}

	summary := stats.Summarize(orgs, siteRecs, links)
	p.logger.Info().
		Int("total_organizations", summary.TotalOrganizations).
		Int("total_sites", summary.TotalSites).
		Float64("average_sites_per_organization", summary.AverageSitesPerOrg).
		Msg("summary statistics computed")
	return p.final.SaveDocument(StemStats, summary)
}

// Run executes the full stage sequence.
func (p *Pipeline) Run(ctx context.Context) error {
	stages := []struct {
		name string
		fn   func() error
	}{
		{"feed", p.Feed},
		{"clean", p.Clean},
		{"sites", p.Sites},
		{"validate", p.Validate},
		{"detect", func() error { return p.Detect(ctx) }},
		{"export", p.Export},
	}
	for _, stage := range stages {
		if err := stage.fn(); err != nil {
			return fmt.Errorf("stage %s: %w", stage.name, err)
		}
	}
	p.logger.Info().Msg("pipeline executed successfully")
	return nil
}

// RelationalSets loads the latest validated sets, for the graph exporter
// and other downstream consumers.
func (p *Pipeline) RelationalSets() ([]model.OrganizationRecord, []model.SiteRecord, []model.Link, error) {
	orgs, err := p.relational.LoadOrganizations(StemRelOrganizations)
	if err != nil {
		return nil, nil, nil, err
	}
	siteRecs, err := p.relational.LoadSites(StemRelSites)
	if err != nil {
		return nil, nil, nil, err
	}
	links, err := p.relational.LoadLinks(StemRelLinks)
	if err != nil {
		return nil, nil, nil, err
	}
	return orgs, siteRecs, links, nil
}

func (p *Pipeline) loadProcessedSets() ([]model.OrganizationRecord, []model.SiteRecord, []model.Link, error) {
	orgs, err := p.processed.LoadOrganizations(StemOrganizations)
	if err != nil {
		return nil, nil, nil, err
	}
	siteRecs, err := p.processed.LoadSites(StemSites)
	if err != nil {
		return nil, nil, nil, err
	}
	links, err := p.processed.LoadLinks(StemLinks)
	if err != nil {
		return nil, nil, nil, err
	}
	return orgs, siteRecs, links, nil
}

func (p *Pipeline) logReport(report model.ValidationReport) {
	event := p.logger.Warn()
	if report.Clean() {
		event = p.logger.Info()
	}
	event.
		Int("missing_organizations", len(report.MissingOrganizations)).
		Int("missing_sites", len(report.MissingSites)).
		Int("orphan_organizations", len(report.OrphanOrganizations)).
		Int("orphan_sites", len(report.OrphanSites)).
		Bool("duplicate_organization_ids", report.DuplicateOrgIDs).
		Bool("duplicate_site_ids", report.DuplicateSiteIDs).
		Bool("duplicate_links", report.DuplicateLinks).
		Msg("relational validation summary")
}

func (p *Pipeline) banner(stage string) {
	p.logger.Info().Str("stage", stage).Msg("stage start")
}
