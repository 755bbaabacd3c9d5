package legislature

import (
	"sort"
	"strings"

	"legtracker/internal/domain"
)

// SponsorGroup holds the latest record of every bill credited to one sponsor.
type SponsorGroup struct {
	Sponsor string
	Profile domain.SponsorProfile

	order []string
	bills map[string]domain.BillRecord
}

// Len returns the number of distinct bill numbers in the group.
func (g SponsorGroup) Len() int {
	return len(g.order)
}

// Bill returns the authoritative record for a bill number.
func (g SponsorGroup) Bill(number string) (domain.BillRecord, bool) {
	b, ok := g.bills[number]
	return b, ok
}

// Bills returns the kept records in first-seen bill number order.
func (g SponsorGroup) Bills() []domain.BillRecord {
	out := make([]domain.BillRecord, 0, len(g.order))
	for _, number := range g.order {
		out = append(out, g.bills[number])
	}
	return out
}

// Aggregate is the grouped and deduplicated view of a bills dataset.
type Aggregate struct {
	Groups      []SponsorGroup
	Diagnostics []Diagnostic
}

// Lookup finds the group for a sponsor name.
func (a Aggregate) Lookup(sponsor string) (SponsorGroup, bool) {
	for _, g := range a.Groups {
		if g.Sponsor == sponsor {
			return g, true
		}
	}
	return SponsorGroup{}, false
}

// Sponsors lists sponsor names in display order.
func (a Aggregate) Sponsors() []string {
	names := make([]string, len(a.Groups))
	for i, g := range a.Groups {
		names[i] = g.Sponsor
	}
	return names
}

// AggregateBills folds the records into sponsor groups. Records without a
// sponsor or bill number are skipped and reported. For each bill number the
// record with the strictly latest RecordDate is kept; on equal dates the first
// one seen stays. Sponsors are ordered by distinct bill count, descending,
// with ties in first-encounter order.
func AggregateBills(records []domain.BillRecord) Aggregate {
	var (
		groups      []*SponsorGroup
		index       = map[string]int{}
		diagnostics []Diagnostic
	)

	for i, rec := range records {
		sponsor := strings.TrimSpace(rec.Sponsor)
		number := strings.TrimSpace(rec.Number)

		if sponsor == "" || number == "" {
			var missing []string
			if sponsor == "" {
				missing = append(missing, "sponsor")
			}
			if number == "" {
				missing = append(missing, "bill number")
			}
			diagnostics = append(diagnostics, Diagnostic{
				Kind:       DiagnosticMalformed,
				Index:      i,
				Sponsor:    sponsor,
				BillNumber: number,
				Err:        &MalformedRecordError{Index: i, Missing: missing},
			})
			continue
		}

		rec.Sponsor = sponsor
		rec.Number = number

		pos, ok := index[sponsor]
		if !ok {
			pos = len(groups)
			index[sponsor] = pos
			groups = append(groups, &SponsorGroup{
				Sponsor: sponsor,
				bills:   map[string]domain.BillRecord{},
			})
		}
		group := groups[pos]

		current, exists := group.bills[number]
		switch {
		case !exists:
			group.order = append(group.order, number)
			group.bills[number] = rec
		case rec.RecordDate.After(current.RecordDate):
			group.bills[number] = rec
		}
	}

	out := make([]SponsorGroup, len(groups))
	for i, g := range groups {
		if len(g.order) > 0 {
			g.Profile = g.bills[g.order[0]].Profile()
		}
		out[i] = *g
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Len() > out[j].Len()
	})

	return Aggregate{Groups: out, Diagnostics: diagnostics}
}
