package service

import (
	"context"
	"net/netip"

	"github.com/maksimkurb/bigip-sd/src/internal/classifier"
	"github.com/maksimkurb/bigip-sd/src/internal/config"
	"github.com/maksimkurb/bigip-sd/src/internal/diagnostics"
	"github.com/maksimkurb/bigip-sd/src/internal/export"
	"github.com/maksimkurb/bigip-sd/src/internal/lists"
	"github.com/maksimkurb/bigip-sd/src/internal/log"
	"github.com/maksimkurb/bigip-sd/src/internal/resolver"
)

// Stats summarizes one pipeline run.
type Stats struct {
	URLs      int
	Subnets   int
	Sites     int
	Matched   int
	Unmatched int
	Skipped   int
}

// Result is the outcome of a pipeline run.
type Result struct {
	Targets     classifier.Targets
	Records     []export.Record
	Diagnostics diagnostics.Record
	Stats       Stats
}

// TargetService turns URL and subnet lists into labeled export records.
type TargetService struct {
	resolver        resolver.Resolver
	opts            resolver.Options
	matchedLabels   export.Labels
	unmatchedLabels export.Labels
}

// NewTargetService creates a new target service.
//
// Parameters:
//   - r: Resolves URL hosts
//   - cfg: Supplies pacing and the label sets; nil means defaults
func NewTargetService(r resolver.Resolver, cfg *config.Config) *TargetService {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	return &TargetService{
		resolver: r,
		opts: resolver.Options{
			QueriesPerSecond: cfg.Resolver.QueriesPerSecond,
		},
		matchedLabels:   export.NewLabels(cfg.Export.MatchedLabels),
		unmatchedLabels: export.NewLabels(cfg.Export.UnmatchedLabels),
	}
}

// Generate runs the full pipeline.
//
// Both files are loaded before the first lookup so that an unreadable subnet
// list fails the run without any DNS traffic. Diagnostics are ordered URL
// lines, subnet lines, then lookups.
func (s *TargetService) Generate(ctx context.Context, urlsPath, subnetsPath string) (*Result, error) {
	urlList, subnetList, err := s.load(urlsPath, subnetsPath)
	if err != nil {
		return nil, err
	}

	log.Infof("Resolving %d URLs using %s...", len(urlList.URLs), s.resolver)
	sites, resolveDiags := resolver.ResolveSites(ctx, s.resolver, urlList.URLs, s.opts)

	targets := classifier.Classify(sites, subnetList.Subnets)

	result := &Result{
		Targets: targets,
		Records: export.Build(targets, s.matchedLabels, s.unmatchedLabels),
	}
	result.Diagnostics.Merge(urlList.Diagnostics)
	result.Diagnostics.Merge(subnetList.Diagnostics)
	result.Diagnostics.Merge(resolveDiags)
	result.Stats = Stats{
		URLs:      len(urlList.URLs),
		Subnets:   len(subnetList.Subnets),
		Sites:     len(sites),
		Matched:   len(targets.Matched),
		Unmatched: len(targets.Unmatched),
		Skipped:   result.Diagnostics.Len(),
	}

	log.Infof("Classified %d sites: %d matched, %d unmatched, %d entries skipped",
		result.Stats.Sites, result.Stats.Matched, result.Stats.Unmatched, result.Stats.Skipped)

	return result, nil
}

// Check loads and parses both files without resolving anything.
func (s *TargetService) Check(urlsPath, subnetsPath string) (*Result, error) {
	urlList, subnetList, err := s.load(urlsPath, subnetsPath)
	if err != nil {
		return nil, err
	}

	result := &Result{}
	result.Diagnostics.Merge(urlList.Diagnostics)
	result.Diagnostics.Merge(subnetList.Diagnostics)
	result.Stats = Stats{
		URLs:    len(urlList.URLs),
		Subnets: len(subnetList.Subnets),
		Skipped: result.Diagnostics.Len(),
	}
	return result, nil
}

// Resolve loads the URL list and resolves every host.
func (s *TargetService) Resolve(ctx context.Context, urlsPath string) ([]resolver.Site, diagnostics.Record, error) {
	urlList, err := lists.LoadURLs(urlsPath)
	if err != nil {
		return nil, diagnostics.Record{}, err
	}

	sites, resolveDiags := resolver.ResolveSites(ctx, s.resolver, urlList.URLs, s.opts)

	var record diagnostics.Record
	record.Merge(urlList.Diagnostics)
	record.Merge(resolveDiags)
	return sites, record, nil
}

// Subnets loads the subnet list.
func (s *TargetService) Subnets(subnetsPath string) ([]netip.Prefix, diagnostics.Record, error) {
	subnetList, err := lists.LoadSubnets(subnetsPath)
	if err != nil {
		return nil, diagnostics.Record{}, err
	}
	return subnetList.Subnets, subnetList.Diagnostics, nil
}

func (s *TargetService) load(urlsPath, subnetsPath string) (*lists.URLList, *lists.SubnetList, error) {
	urlList, err := lists.LoadURLs(urlsPath)
	if err != nil {
		log.Errorf("Failed to load URL list: %v", err)
		return nil, nil, err
	}

	subnetList, err := lists.LoadSubnets(subnetsPath)
	if err != nil {
		log.Errorf("Failed to load subnet list: %v", err)
		return nil, nil, err
	}

	return urlList, subnetList, nil
}
