package parser

import (
	"context"
	"fmt"
	"log/slog"

	"legtracker/internal/config"
	"legtracker/internal/domain"
	"legtracker/internal/ports"
	"legtracker/internal/scanner"
)

// StrategySource implements BillListSource via registered scanner strategies.
type StrategySource struct {
	registry *scanner.Registry
	sites    []config.SiteConfig
	logger   *slog.Logger
}

var _ ports.BillListSource = (*StrategySource)(nil)

// NewStrategySource wires scanner registry with config-defined sites.
func NewStrategySource(reg *scanner.Registry, sites []config.SiteConfig, log *slog.Logger) *StrategySource {
	return &StrategySource{
		registry: reg,
		sites:    sites,
		logger:   log,
	}
}

// FetchListings iterates over configured sites and executes their scanners.
func (s *StrategySource) FetchListings(ctx context.Context) ([]domain.BillListing, error) {
	if s.registry == nil {
		return nil, fmt.Errorf("scanner registry is not configured")
	}

	s.debug("fetch listings", "sites", len(s.sites))

	var aggregated []domain.BillListing
	for _, site := range s.sites {
		s.debug("process site", "site", site.Name, "scanner", site.Scanner, "sessions", len(site.Sessions))
		strategy, err := s.registry.Resolve(site.Scanner)
		if err != nil {
			return nil, fmt.Errorf("site %s: %w", site.Name, err)
		}

		req := scanner.Request{
			SiteName: site.Name,
			Options:  site.Options,
			Sessions: toScannerSessions(site.Sessions),
		}

		results, err := strategy.Scan(ctx, req)
		if err != nil {
			return nil, fmt.Errorf("scan site %s: %w", site.Name, err)
		}

		s.debug("site produced listings", "site", site.Name, "count", len(results))
		aggregated = append(aggregated, results...)
	}

	s.debug("strategy source done", "total_listings", len(aggregated))
	return aggregated, nil
}

func toScannerSessions(cfg []config.SessionConfig) []scanner.Session {
	sessions := make([]scanner.Session, 0, len(cfg))
	for _, s := range cfg {
		sessions = append(sessions, scanner.Session{
			Name: s.Name,
			URL:  s.URL,
		})
	}
	return sessions
}

func (s *StrategySource) debug(msg string, args ...interface{}) {
	if s.logger != nil {
		s.logger.Debug(msg, args...)
	}
}
