package view

import (
	"strings"
	"unicode"

	"legtracker/internal/domain"
	"legtracker/internal/legislature"
)

const otherPartyColor = "#a8e3f0"

var partyColors = map[string]string{
	"R":          "#F63D23",
	"Republican": "#F63D23",
	"D":          "#0B41F5",
	"Democrat":   "#0B41F5",
	"Democratic": "#0B41F5",
}

// PartyColor returns the card background for a party code.
func PartyColor(party string) string {
	if c, ok := partyColors[strings.TrimSpace(party)]; ok {
		return c
	}
	return otherPartyColor
}

// BuildSponsorPage renders every sponsor group into bill cards. Bills whose
// status is not on the pipeline are drawn at 0% in the gray tier and
// reported as unknown-stage diagnostics.
func BuildSponsorPage(agg legislature.Aggregate, pipeline *legislature.Pipeline, meta Meta) (SponsorPage, []legislature.Diagnostic) {
	page := SponsorPage{Meta: meta, Sections: make([]SponsorSection, 0, len(agg.Groups))}
	var diagnostics []legislature.Diagnostic

	for _, group := range agg.Groups {
		section := SponsorSection{
			Sponsor: group.Sponsor,
			Anchor:  Anchor(group.Sponsor),
			Profile: group.Profile,
		}
		for _, bill := range group.Bills() {
			progress, err := pipeline.ProgressOrDefault(bill.StatusTag)
			if err != nil {
				diagnostics = append(diagnostics, legislature.Diagnostic{
					Kind:       legislature.DiagnosticUnknownStage,
					Index:      -1,
					Sponsor:    bill.Sponsor,
					BillNumber: bill.Number,
					Err:        err,
				})
			}
			section.Bills = append(section.Bills, billCard(bill, progress, err == nil))
		}
		page.Sections = append(page.Sections, section)
	}

	return page, diagnostics
}

func billCard(bill domain.BillRecord, progress legislature.ProgressView, known bool) BillCard {
	return BillCard{
		Number:         bill.Number,
		Title:          bill.Title,
		Description:    bill.Description,
		Status:         bill.StatusTag,
		Day:            bill.DayOfLegislature,
		Sentiment:      string(bill.Sentiment),
		SentimentColor: legislature.SentimentColor(bill.Sentiment),
		Percentage:     progress.Percentage,
		Progress:       progress.Rounded(),
		ProgressColor:  progress.Tier.Color(),
		Tier:           string(progress.Tier),
		KnownStage:     known,
	}
}

// BuildRepresentativePage keeps representatives whose Office equals meta.Office
// and attaches a Sponsored/Passed chart. Embedded per-representative bills
// win; otherwise the linked sponsor group is counted.
func BuildRepresentativePage(reps []domain.Representative, agg legislature.Aggregate, links legislature.Links, meta Meta) RepresentativePage {
	page := RepresentativePage{Meta: meta}

	for _, rep := range reps {
		if rep.Office != meta.Office {
			continue
		}

		card := RepresentativeCard{
			Name:           rep.Name,
			District:       rep.District,
			Party:          rep.Party,
			Counties:       rep.Counties,
			Email:          rep.Email,
			Webpage:        rep.Webpage,
			LegislationURL: rep.LegislationURL,
			ImageID:        rep.ImageID,
			ImageURL:       rep.ImageURL,
			Color:          PartyColor(rep.Party),
		}

		var sponsored, passed int
		if len(rep.Bills) > 0 {
			sponsored = len(rep.Bills)
			for _, b := range rep.Bills {
				if b.Passed {
					passed++
				}
			}
		}
		if link, ok := links.ForRepresentative(rep.Name); ok {
			card.Sponsor = link.Sponsor
			if group, found := agg.Lookup(link.Sponsor); found && len(rep.Bills) == 0 {
				sponsored = group.Len()
				for _, b := range group.Bills() {
					if b.StatusTag == legislature.StagePassed {
						passed++
					}
				}
			}
		}

		card.Chart = SponsoredPassedChart(sponsored, passed)
		page.Cards = append(page.Cards, card)
	}

	return page
}

// FilterBillsByOffice keeps bills for the given office. Records that carry no
// office are kept since the bills dataset does not always fill it in.
func FilterBillsByOffice(records []domain.BillRecord, office string) []domain.BillRecord {
	if office == "" {
		return records
	}
	out := make([]domain.BillRecord, 0, len(records))
	for _, r := range records {
		if r.Office == "" || r.Office == office {
			out = append(out, r)
		}
	}
	return out
}

// BuildIndexPage summarises a build for the landing page.
func BuildIndexPage(sponsors SponsorPage, reps RepresentativePage, diagnostics []legislature.Diagnostic, meta Meta) IndexPage {
	page := IndexPage{
		Meta:            meta,
		Sponsors:        len(sponsors.Sections),
		Representatives: len(reps.Cards),
	}
	for _, s := range sponsors.Sections {
		page.Bills += len(s.Bills)
	}
	for _, d := range diagnostics {
		page.Diagnostics = append(page.Diagnostics, d.String())
	}
	return page
}

// Anchor turns a sponsor name into an HTML id.
func Anchor(name string) string {
	var b strings.Builder
	b.WriteString("sponsor")
	dash := true
	for _, r := range strings.ToLower(name) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			if dash {
				b.WriteByte('-')
				dash = false
			}
			b.WriteRune(r)
			continue
		}
		dash = true
	}
	return b.String()
}

// SponsorStats is the bill tally shown next to a sponsor.
type SponsorStats struct {
	Total       int
	Passed      int
	Failed      int
	PassRate    float64
	AvgProgress float64
}

// StatsFor tallies a sponsor section. Every bill not passed counts as failed.
func StatsFor(section SponsorSection) SponsorStats {
	stats := SponsorStats{Total: len(section.Bills)}
	if stats.Total == 0 {
		return stats
	}

	var progress float64
	for _, bill := range section.Bills {
		if bill.Status == legislature.StagePassed {
			stats.Passed++
		}
		progress += bill.Percentage
	}
	stats.Failed = stats.Total - stats.Passed
	stats.PassRate = float64(stats.Passed) / float64(stats.Total) * 100
	stats.AvgProgress = progress / float64(stats.Total)
	return stats
}
