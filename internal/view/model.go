// Package view turns aggregated bills and representatives into render-ready
// page models. Nothing here does I/O; the web renderer consumes the output.
package view

import (
	"time"

	"legtracker/internal/domain"
)

// Meta is shared by every page of one build.
type Meta struct {
	Title       string
	Office      string
	BuildID     string
	GeneratedAt time.Time
}

// SponsorPage lists sponsors with their latest bills.
type SponsorPage struct {
	Meta
	Sections []SponsorSection
}

// SponsorSection is one sponsor column plus its bill cards.
type SponsorSection struct {
	Sponsor string
	Anchor  string
	Profile domain.SponsorProfile
	Bills   []BillCard
}

// BillCard is a single bill with its progress bar.
type BillCard struct {
	Number         string
	Title          string
	Description    string
	Status         string
	Day            int
	Sentiment      string
	SentimentColor string
	Percentage     float64
	Progress       int
	ProgressColor  string
	Tier           string
	KnownStage     bool
}

// RepresentativePage lists representative cards for one office.
type RepresentativePage struct {
	Meta
	Cards []RepresentativeCard
}

// RepresentativeCard is a representative with party colour and bill chart.
type RepresentativeCard struct {
	Name           string
	District       string
	Party          string
	Counties       string
	Email          string
	Webpage        string
	LegislationURL string
	ImageID        string
	ImageURL       string
	Color          string
	Sponsor        string
	Chart          BarChart
}

// IndexPage summarises a build.
type IndexPage struct {
	Meta
	Sponsors        int
	Bills           int
	Representatives int
	Diagnostics     []string
}

// BarChart is a small two-series SVG chart with precomputed geometry.
type BarChart struct {
	Width  float64
	Height float64
	Bars   []Bar
}

// Bar is one column of a BarChart.
type Bar struct {
	Label  string
	Value  int
	Fill   string
	Stroke string
	X      float64
	Y      float64
	W      float64
	H      float64
	LabelX float64
	LabelY float64
}
