package domain

import "time"

// Sentiment is the qualitative read attached to a bill for display colouring.
type Sentiment string

const (
	SentimentPositive Sentiment = "Positive"
	SentimentNeutral  Sentiment = "Neutral"
	SentimentNegative Sentiment = "Negative"
)

// BillRecord is a single observation of a bill at some stage of the session.
// Several records may share (Sponsor, Number); the latest RecordDate wins.
type BillRecord struct {
	Sponsor          string
	Number           string
	Title            string
	Description      string
	StatusTag        string
	DayOfLegislature int
	Sentiment        Sentiment
	RecordDate       time.Time

	ImageURL string
	District string
	Counties string
	Office   string
	Webpage  string
}

// SponsorProfile holds the presentation details shown next to a sponsor's bills.
type SponsorProfile struct {
	ImageURL string
	District string
	Counties string
	Office   string
	Webpage  string
}

// Profile extracts the sponsor presentation fields from the record.
func (b BillRecord) Profile() SponsorProfile {
	return SponsorProfile{
		ImageURL: b.ImageURL,
		District: b.District,
		Counties: b.Counties,
		Office:   b.Office,
		Webpage:  b.Webpage,
	}
}

// BillListing is a row scraped from the legislature's bill list page.
type BillListing struct {
	Category   string    `json:"category"`
	Number     string    `json:"bill_number"`
	Title      string    `json:"bill_title"`
	SponsorRaw string    `json:"bill_sponsor_raw"`
	Sponsor    string    `json:"bill_sponsor"`
	DateRaw    string    `json:"bill_date_raw"`
	Date       time.Time `json:"bill_date"`
	URL        string    `json:"bill_url"`
	ScrapedAt  time.Time `json:"scrape_timestamp"`
}

// StageSnapshot is the persisted stage of one bill for one dashboard build.
type StageSnapshot struct {
	BuildID    string
	Sponsor    string
	BillNumber string
	StatusTag  string
	Percentage float64
	RecordDate time.Time
	CapturedAt time.Time
}

// StageChange describes a bill that moved to another stage between builds.
type StageChange struct {
	Sponsor    string
	BillNumber string
	Title      string
	From       string
	To         string
}
