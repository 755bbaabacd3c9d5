package usecase

import (
	"fmt"
	"strings"
	"time"

	"legtracker/internal/domain"
	"legtracker/internal/legislature"
	"legtracker/internal/ports"
)

const newBillStage = "(new)"

// Snapshots captures the current stage of every aggregated bill.
func Snapshots(buildID string, agg legislature.Aggregate, pipeline *legislature.Pipeline, now time.Time) []domain.StageSnapshot {
	var out []domain.StageSnapshot
	for _, group := range agg.Groups {
		for _, bill := range group.Bills() {
			progress, _ := pipeline.ProgressOrDefault(bill.StatusTag)
			out = append(out, domain.StageSnapshot{
				BuildID:    buildID,
				Sponsor:    group.Sponsor,
				BillNumber: bill.Number,
				StatusTag:  bill.StatusTag,
				Percentage: progress.Percentage,
				RecordDate: bill.RecordDate,
				CapturedAt: now,
			})
		}
	}
	return out
}

// DiffStages lists bills whose stage differs from the previous build. Bills
// unseen before are reported only when a previous build exists.
func DiffStages(previous map[ports.SnapshotKey]domain.StageSnapshot, agg legislature.Aggregate) []domain.StageChange {
	if len(previous) == 0 {
		return nil
	}

	var changes []domain.StageChange
	for _, group := range agg.Groups {
		for _, bill := range group.Bills() {
			key := ports.SnapshotKey{Sponsor: group.Sponsor, BillNumber: bill.Number}
			prev, ok := previous[key]
			if ok && prev.StatusTag == bill.StatusTag {
				continue
			}
			change := domain.StageChange{
				Sponsor:    group.Sponsor,
				BillNumber: bill.Number,
				Title:      bill.Title,
				To:         bill.StatusTag,
			}
			if ok {
				change.From = prev.StatusTag
			}
			changes = append(changes, change)
		}
	}
	return changes
}

// FormatDigest renders stage changes as a plain-text message.
func FormatDigest(changes []domain.StageChange) string {
	if len(changes) == 0 {
		return ""
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Bill stage changes: %d\n", len(changes))
	for _, c := range changes {
		from := c.From
		if from == "" {
			from = newBillStage
		}
		fmt.Fprintf(&b, "%s (%s): %s → %s\n", c.BillNumber, c.Sponsor, from, c.To)
	}
	return strings.TrimSuffix(b.String(), "\n")
}
