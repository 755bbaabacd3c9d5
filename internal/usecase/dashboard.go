package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"legtracker/internal/domain"
	"legtracker/internal/legislature"
	"legtracker/internal/logging"
	"legtracker/internal/ports"
	"legtracker/internal/view"
)

// DashboardDeps wires the driven adapters into the dashboard builder.
type DashboardDeps struct {
	Source    ports.DatasetSource
	Snapshots ports.SnapshotRepository
	Notifier  ports.Notifier
	Pipeline  *legislature.Pipeline
	Linker    *legislature.Linker
	Office    string
	Title     string
	Logger    *slog.Logger
	Clock     func() time.Time
}

// Build is one complete set of pages computed from a single dataset load.
type Build struct {
	ID              string
	GeneratedAt     time.Time
	Sponsors        view.SponsorPage
	Representatives view.RepresentativePage
	Index           view.IndexPage
	Diagnostics     []legislature.Diagnostic
	// Changes is filled by Rebuild only.
	Changes []domain.StageChange
	Links           legislature.Links

	meta        view.Meta
	reps        []domain.Representative
	allBill     legislature.Aggregate
	officeBills legislature.Aggregate
}

// RepresentativesFor returns the representative page for another office. The
// build's own office is served from the precomputed page.
func (b *Build) RepresentativesFor(office string) view.RepresentativePage {
	if office == "" || office == b.meta.Office {
		return b.Representatives
	}
	meta := b.meta
	meta.Office = office
	return view.BuildRepresentativePage(b.reps, b.allBill, b.Links, meta)
}

// Dashboard implements the fetch, aggregate, render workflow and keeps the
// last successful build for readers.
type Dashboard struct {
	source    ports.DatasetSource
	snapshots ports.SnapshotRepository
	notifier  ports.Notifier
	pipeline  *legislature.Pipeline
	linker    *legislature.Linker
	office    string
	title     string
	logger    *slog.Logger
	clock     func() time.Time

	mu      sync.RWMutex
	current *Build
}

// NewDashboard constructs the orchestration component.
func NewDashboard(deps DashboardDeps) *Dashboard {
	d := &Dashboard{
		source:    deps.Source,
		snapshots: deps.Snapshots,
		notifier:  deps.Notifier,
		pipeline:  deps.Pipeline,
		linker:    deps.Linker,
		office:    deps.Office,
		title:     deps.Title,
		logger:    deps.Logger,
		clock:     deps.Clock,
	}
	if d.pipeline == nil {
		d.pipeline = legislature.MustDefaultPipeline()
	}
	if d.linker == nil {
		d.linker = legislature.NewLinker(0)
	}
	if d.logger == nil {
		d.logger = logging.Discard()
	}
	if d.clock == nil {
		d.clock = time.Now
	}
	return d
}

// Current returns the last successful build.
func (d *Dashboard) Current() (*Build, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.current, d.current != nil
}

// Rebuild computes a new build, reports stage changes against the previous
// snapshot and swaps the build in. On failure the previous build keeps
// serving.
func (d *Dashboard) Rebuild(ctx context.Context, trigger time.Time) error {
	build, err := d.Build(ctx)
	if err != nil {
		d.logger.Error("rebuild failed, keeping previous pages", "trigger", trigger, "error", err)
		return err
	}
	build.Changes = d.trackStages(ctx, build.ID, build.officeBills)

	d.mu.Lock()
	d.current = build
	d.mu.Unlock()

	d.logger.Info("build published",
		"build_id", build.ID,
		"sponsors", build.Index.Sponsors,
		"bills", build.Index.Bills,
		"representatives", build.Index.Representatives,
		"diagnostics", len(build.Diagnostics),
		"stage_changes", len(build.Changes),
	)
	return nil
}

// Build runs one pass without publishing it. It reads the datasets only:
// no snapshot is stored and no digest is sent.
func (d *Dashboard) Build(ctx context.Context) (*Build, error) {
	if d.source == nil {
		return nil, fmt.Errorf("build: no dataset source configured")
	}

	dataset, diagnostics, err := d.source.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load datasets: %w", err)
	}

	meta := view.Meta{
		Title:       d.title,
		Office:      d.office,
		BuildID:     uuid.NewString(),
		GeneratedAt: d.clock(),
	}

	officeBills := legislature.AggregateBills(view.FilterBillsByOffice(dataset.Bills, d.office))
	allBills := officeBills
	if d.office != "" {
		allBills = legislature.AggregateBills(dataset.Bills)
	}
	diagnostics = append(diagnostics, allBills.Diagnostics...)

	links := d.linker.Link(allBills.Sponsors(), dataset.Representatives)

	sponsors, stageDiags := view.BuildSponsorPage(officeBills, d.pipeline, meta)
	diagnostics = append(diagnostics, stageDiags...)
	reps := view.BuildRepresentativePage(dataset.Representatives, allBills, links, meta)

	build := &Build{
		ID:              meta.BuildID,
		GeneratedAt:     meta.GeneratedAt,
		Sponsors:        sponsors,
		Representatives: reps,
		Index:           view.BuildIndexPage(sponsors, reps, diagnostics, meta),
		Diagnostics:     diagnostics,
		Links:           links,
		meta:            meta,
		reps:            dataset.Representatives,
		allBill:         allBills,
		officeBills:     officeBills,
	}

	for _, diag := range diagnostics {
		d.logger.Warn("record diagnostic", "kind", diag.Kind, "index", diag.Index,
			"sponsor", diag.Sponsor, "bill", diag.BillNumber, "error", diag.Err)
	}
	if len(links.Unmatched) > 0 {
		d.logger.Debug("sponsors without representative", "count", len(links.Unmatched))
	}

	return build, nil
}

// trackStages diffs against the previous build, sends the digest and stores
// the new snapshot. Storage and notification failures do not fail the build.
func (d *Dashboard) trackStages(ctx context.Context, buildID string, agg legislature.Aggregate) []domain.StageChange {
	if d.snapshots == nil {
		return nil
	}

	previous, err := d.snapshots.LatestStages(ctx)
	if err != nil {
		d.logger.Warn("load previous stages", "error", err)
		return nil
	}

	snapshots := Snapshots(buildID, agg, d.pipeline, d.clock())
	changes := DiffStages(previous, agg)

	if len(changes) > 0 && d.notifier != nil {
		if err := d.notifier.PublishDigest(ctx, FormatDigest(changes)); err != nil {
			d.logger.Warn("publish digest", "changes", len(changes), "error", err)
		}
	}

	if err := d.snapshots.SaveBuild(ctx, buildID, snapshots); err != nil {
		d.logger.Warn("save stage snapshot", "build_id", buildID, "error", err)
	}
	return changes
}
