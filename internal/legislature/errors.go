package legislature

import (
	"fmt"
	"strings"
)

// MalformedRecordError reports a bill record that lacks an identity field.
type MalformedRecordError struct {
	Index   int
	Missing []string
}

func (e *MalformedRecordError) Error() string {
	return fmt.Sprintf("record %d: missing %s", e.Index, strings.Join(e.Missing, ", "))
}

// UnknownStageError reports a status tag that is not part of the pipeline.
type UnknownStageError struct {
	Tag string
}

func (e *UnknownStageError) Error() string {
	return fmt.Sprintf("unknown stage %q", e.Tag)
}

// DiagnosticKind classifies a skipped or degraded record.
type DiagnosticKind string

const (
	DiagnosticMalformed    DiagnosticKind = "malformed_record"
	DiagnosticUnknownStage DiagnosticKind = "unknown_stage"
	DiagnosticBadDate      DiagnosticKind = "bad_date"
)

// Diagnostic is a side-channel report about one input record. Records with
// diagnostics are either excluded (malformed) or rendered with a fallback.
type Diagnostic struct {
	Kind       DiagnosticKind
	Index      int
	Sponsor    string
	BillNumber string
	Err        error
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("%s [%d] %s/%s: %v", d.Kind, d.Index, d.Sponsor, d.BillNumber, d.Err)
}
