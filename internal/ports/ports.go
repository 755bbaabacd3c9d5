package ports

import (
	"context"
	"io"
	"time"

	"legtracker/internal/domain"
	"legtracker/internal/legislature"
	"legtracker/internal/view"
)

// DatasetSource pulls the representatives and bills documents for one build.
type DatasetSource interface {
	Load(ctx context.Context) (domain.Dataset, []legislature.Diagnostic, error)
}

// SnapshotRepository keeps the last known stage of every bill between builds.
type SnapshotRepository interface {
	LatestStages(ctx context.Context) (map[SnapshotKey]domain.StageSnapshot, error)
	SaveBuild(ctx context.Context, buildID string, snapshots []domain.StageSnapshot) error
}

// SnapshotKey identifies a bill across builds.
type SnapshotKey struct {
	Sponsor    string
	BillNumber string
}

// Renderer turns view models into page bytes.
type Renderer interface {
	RenderSponsors(w io.Writer, page view.SponsorPage) error
	RenderRepresentatives(w io.Writer, page view.RepresentativePage) error
	RenderIndex(w io.Writer, page view.IndexPage) error
}

// Notifier streams stage-change digests to Telegram or other channels.
type Notifier interface {
	PublishDigest(ctx context.Context, digest string) error
}

// BillListSource scrapes bill listings from the legislature website.
type BillListSource interface {
	FetchListings(ctx context.Context) ([]domain.BillListing, error)
}

// Scheduler controls when builds execute.
type Scheduler interface {
	Start(ctx context.Context, job func(time.Time)) error
	Stop(ctx context.Context) error
}
