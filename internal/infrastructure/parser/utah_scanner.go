package parser

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"legtracker/internal/domain"
	"legtracker/internal/legislature"
	"legtracker/internal/scanner"
)

const userAgent = "Mozilla/5.0 (compatible; legtracker/1.0)"

var (
	billNumberExpr = regexp.MustCompile(`(?i)^(H\.B\.|S\.B\.|H\.J\.R\.|S\.J\.R\.|H\.C\.R\.|S\.C\.R\.)`)

	listingDateLayouts = []string{
		"1/2/2006",
		"01/02/2006",
		"1/2/2006 3:04 PM",
		"Jan 2, 2006",
		"January 2, 2006",
		"2006-01-02",
		time.RFC3339,
	}
)

// UtahScanner reads the numbered bill list published by le.utah.gov.
type UtahScanner struct {
	client *http.Client
	now    func() time.Time
	logger *slog.Logger
}

var _ scanner.Scanner = (*UtahScanner)(nil)

// NewUtahScanner wires an HTTP client; nil gets a 20s timeout client.
func NewUtahScanner(client *http.Client, logger *slog.Logger) *UtahScanner {
	if client == nil {
		client = &http.Client{Timeout: 20 * time.Second}
	}
	return &UtahScanner{client: client, now: time.Now, logger: logger}
}

// Name identifies the strategy inside the registry.
func (u *UtahScanner) Name() string {
	return "utah-le"
}

// Scan fetches every session's bill list and returns the listings, without
// duplicates of the same (number, title, URL).
func (u *UtahScanner) Scan(ctx context.Context, req scanner.Request) ([]domain.BillListing, error) {
	if len(req.Sessions) == 0 {
		return nil, fmt.Errorf("no sessions provided for site %s", req.SiteName)
	}

	scrapedAt := u.now().UTC()
	seen := map[string]struct{}{}
	var results []domain.BillListing

	for _, session := range req.Sessions {
		pageURL, err := url.Parse(session.URL)
		if err != nil {
			return nil, fmt.Errorf("session %s: invalid url: %w", session.Name, err)
		}

		doc, err := u.fetchDocument(ctx, pageURL.String())
		if err != nil {
			return nil, fmt.Errorf("session %s: %w", session.Name, err)
		}

		listings := extractListings(doc, pageURL)
		if len(listings) == 0 {
			u.warn("no bill rows found", "session", session.Name, "url", session.URL)
		}

		for _, l := range listings {
			key := l.Number + "\x00" + l.Title + "\x00" + l.URL
			if _, ok := seen[key]; ok {
				continue
			}
			seen[key] = struct{}{}
			l.ScrapedAt = scrapedAt
			results = append(results, l)
		}
	}

	return results, nil
}

func (u *UtahScanner) fetchDocument(ctx context.Context, pageURL string) (*goquery.Document, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := u.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request document: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("bill list returned %s", resp.Status)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parse document: %w", err)
	}

	return doc, nil
}

// extractListings walks group titles and bill anchors in document order so
// every bill picks up the nearest preceding category. Pages without
// a.billlink anchors fall back to anchors whose text looks like a bill number.
func extractListings(doc *goquery.Document, base *url.URL) []domain.BillListing {
	selector := "div.grouptitle, a.billlink"
	if doc.Find("a.billlink").Length() == 0 {
		selector = "div.grouptitle, a[href]"
	}

	var (
		category string
		out      []domain.BillListing
	)
	doc.Find(selector).Each(func(_ int, s *goquery.Selection) {
		if s.Is("div.grouptitle") {
			category = strings.TrimSpace(s.Text())
			return
		}

		number := strings.TrimSpace(s.Text())
		if number == "" {
			return
		}
		if !s.HasClass("billlink") && !billNumberExpr.MatchString(number) {
			return
		}

		out = append(out, parseListing(s, number, category, base))
	})

	return out
}

func parseListing(anchor *goquery.Selection, number, category string, base *url.URL) domain.BillListing {
	container := anchor.Closest("li")
	if container.Length() == 0 {
		container = anchor.Parent()
	}

	listing := domain.BillListing{
		Category: category,
		Number:   number,
		Title:    strings.TrimSpace(container.Find("b").First().Text()),
	}

	if href, ok := anchor.Attr("href"); ok && href != "" {
		if ref, err := url.Parse(href); err == nil {
			listing.URL = base.ResolveReference(ref).String()
		}
	}

	listing.SponsorRaw = strings.TrimSpace(container.Find("i").First().Text())
	listing.Sponsor = legislature.NormalizeSponsor(listing.SponsorRaw)

	listing.DateRaw = strings.TrimSpace(container.Find("em").Last().Text())
	listing.Date = parseListingDate(listing.DateRaw)

	return listing
}

func parseListingDate(raw string) time.Time {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}
	}
	for _, layout := range listingDateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.UTC()
		}
	}
	return time.Time{}
}

func (u *UtahScanner) warn(msg string, args ...any) {
	if u.logger != nil {
		u.logger.Warn(msg, args...)
	}
}
