package legislature

import (
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"legtracker/internal/domain"
)

func day(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func rec(sponsor, number, status, date string) domain.BillRecord {
	return domain.BillRecord{
		Sponsor:    sponsor,
		Number:     number,
		Title:      number + " title",
		StatusTag:  status,
		RecordDate: day(date),
	}
}

func TestAggregateBillsKeepsLatestRecord(t *testing.T) {
	t.Parallel()

	agg := AggregateBills([]domain.BillRecord{
		rec("X", "1", "Rules 1", "2024-01-01"),
		rec("X", "1", "Committee 1", "2024-03-01"),
	})

	if len(agg.Groups) != 1 {
		t.Fatalf("expected 1 group, got %d", len(agg.Groups))
	}
	bill, ok := agg.Groups[0].Bill("1")
	if !ok {
		t.Fatalf("bill 1 missing from group X")
	}
	if !bill.RecordDate.Equal(day("2024-03-01")) {
		t.Fatalf("kept record dated %s, want 2024-03-01", bill.RecordDate.Format("2006-01-02"))
	}
	if bill.StatusTag != "Committee 1" {
		t.Fatalf("unexpected status: %s", bill.StatusTag)
	}
}

func TestAggregateBillsOlderRecordDoesNotOverwrite(t *testing.T) {
	t.Parallel()

	agg := AggregateBills([]domain.BillRecord{
		rec("X", "1", "Committee 1", "2024-03-01"),
		rec("X", "1", "Rules 1", "2024-01-01"),
	})

	bill, _ := agg.Groups[0].Bill("1")
	if bill.StatusTag != "Committee 1" {
		t.Fatalf("older record replaced newer one: %s", bill.StatusTag)
	}
}

func TestAggregateBillsEqualDatesKeepFirstSeen(t *testing.T) {
	t.Parallel()

	agg := AggregateBills([]domain.BillRecord{
		rec("X", "1", "Rules 1", "2024-02-01"),
		rec("X", "1", "Committee 1", "2024-02-01"),
	})

	bill, _ := agg.Groups[0].Bill("1")
	if bill.StatusTag != "Rules 1" {
		t.Fatalf("tie should keep the first record, got %s", bill.StatusTag)
	}
}

func TestAggregateBillsOrdersSponsorsByBillCount(t *testing.T) {
	t.Parallel()

	agg := AggregateBills([]domain.BillRecord{
		rec("A", "1", "Rules 1", "2024-01-01"),
		rec("B", "1", "Rules 1", "2024-01-01"),
		rec("B", "2", "Rules 1", "2024-01-01"),
		rec("C", "1", "Rules 1", "2024-01-01"),
		rec("C", "1", "Rules 2", "2024-01-05"),
		rec("D", "1", "Rules 1", "2024-01-01"),
		rec("D", "2", "Rules 1", "2024-01-01"),
	})

	want := []string{"B", "D", "A", "C"}
	if diff := cmp.Diff(want, agg.Sponsors()); diff != "" {
		t.Fatalf("sponsor order mismatch (-want +got):\n%s", diff)
	}
}

func TestAggregateBillsSkipsMalformedRecords(t *testing.T) {
	t.Parallel()

	agg := AggregateBills([]domain.BillRecord{
		rec("", "1", "Rules 1", "2024-01-01"),
		rec("X", "  ", "Rules 1", "2024-01-01"),
		rec("X", "2", "Rules 1", "2024-01-01"),
	})

	if len(agg.Groups) != 1 || agg.Groups[0].Len() != 1 {
		t.Fatalf("expected one group with one bill, got %+v", agg.Sponsors())
	}
	if len(agg.Diagnostics) != 2 {
		t.Fatalf("expected 2 diagnostics, got %d", len(agg.Diagnostics))
	}

	first := agg.Diagnostics[0]
	if first.Kind != DiagnosticMalformed || first.Index != 0 {
		t.Fatalf("unexpected diagnostic: %v", first)
	}
	var malformed *MalformedRecordError
	if !errors.As(first.Err, &malformed) {
		t.Fatalf("expected MalformedRecordError, got %T", first.Err)
	}
	if diff := cmp.Diff([]string{"sponsor"}, malformed.Missing); diff != "" {
		t.Fatalf("missing fields mismatch (-want +got):\n%s", diff)
	}
}

func TestAggregateBillsIsIdempotent(t *testing.T) {
	t.Parallel()

	input := []domain.BillRecord{
		rec("A", "1", "Rules 1", "2024-01-01"),
		rec("B", "7", "Governor", "2024-02-11"),
		rec("A", "1", "Committee 1", "2024-01-09"),
		rec("A", "3", "Rules 2", "2024-01-03"),
		rec("", "9", "Rules 1", "2024-01-03"),
	}

	first := AggregateBills(input)
	second := AggregateBills(input)

	opts := cmp.AllowUnexported(SponsorGroup{})
	if diff := cmp.Diff(first.Groups, second.Groups, opts); diff != "" {
		t.Fatalf("aggregation not idempotent (-first +second):\n%s", diff)
	}
	if len(first.Diagnostics) != len(second.Diagnostics) {
		t.Fatalf("diagnostic count changed: %d vs %d", len(first.Diagnostics), len(second.Diagnostics))
	}
}

func TestAggregateBillsKeptRecordIsNewest(t *testing.T) {
	t.Parallel()

	input := []domain.BillRecord{
		rec("A", "1", "Rules 1", "2024-01-05"),
		rec("A", "1", "Rules 2", "2024-01-02"),
		rec("A", "1", "Governor", "2024-02-20"),
		rec("A", "1", "Committee 1", "2024-02-01"),
		rec("B", "1", "Rules 1", "2024-03-01"),
		rec("A", "2", "Rules 1", "2024-01-01"),
	}

	agg := AggregateBills(input)
	for _, g := range agg.Groups {
		for _, kept := range g.Bills() {
			for _, r := range input {
				if r.Sponsor == g.Sponsor && r.Number == kept.Number && r.RecordDate.After(kept.RecordDate) {
					t.Fatalf("%s/%s kept %s but %s is newer", g.Sponsor, kept.Number,
						kept.RecordDate.Format("2006-01-02"), r.RecordDate.Format("2006-01-02"))
				}
			}
		}
	}
}

func TestAggregateBillsProfileFromFirstBill(t *testing.T) {
	t.Parallel()

	first := rec("A", "HB1", "Rules 1", "2024-01-01")
	first.District = "12"
	first.ImageURL = "https://img/a.jpg"
	second := rec("A", "HB2", "Rules 1", "2024-01-01")
	second.District = "99"

	agg := AggregateBills([]domain.BillRecord{first, second})
	group, ok := agg.Lookup("A")
	if !ok {
		t.Fatalf("sponsor A not found")
	}
	if group.Profile.District != "12" || group.Profile.ImageURL != "https://img/a.jpg" {
		t.Fatalf("unexpected profile: %+v", group.Profile)
	}

	numbers := []string{}
	for _, b := range group.Bills() {
		numbers = append(numbers, b.Number)
	}
	if diff := cmp.Diff([]string{"HB1", "HB2"}, numbers); diff != "" {
		t.Fatalf("bill order mismatch (-want +got):\n%s", diff)
	}
}
