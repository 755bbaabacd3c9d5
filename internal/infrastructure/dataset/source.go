package dataset

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/go-resty/resty/v2"
	"golang.org/x/sync/errgroup"

	"legtracker/internal/config"
	"legtracker/internal/domain"
	"legtracker/internal/legislature"
	"legtracker/internal/ports"
)

// Dataset names used in errors and logs.
const (
	Representatives = "representatives"
	Bills           = "bills"
)

// FetchError reports a dataset that could not be read or decoded. It aborts
// the whole build.
type FetchError struct {
	Dataset string
	Source  string
	Err     error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetch %s dataset from %s: %v", e.Dataset, e.Source, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// Source loads both documents from files or over HTTP.
type Source struct {
	client *resty.Client
	reps   config.SourceConfig
	bills  config.SourceConfig
	logger *slog.Logger
}

var _ ports.DatasetSource = (*Source)(nil)

// NewSource wires a resty client; a nil client gets one built from cfg.
func NewSource(cfg config.DatasetsConfig, client *resty.Client, logger *slog.Logger) *Source {
	if client == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = 20 * time.Second
		}
		client = resty.New().
			SetTimeout(timeout).
			SetHeader("Accept", "application/json")
		if cfg.UserAgent != "" {
			client.SetHeader("User-Agent", cfg.UserAgent)
		}
	}
	return &Source{
		client: client,
		reps:   cfg.Representatives,
		bills:  cfg.Bills,
		logger: logger,
	}
}

// Load fetches representatives and bills concurrently and normalises them.
// Either document failing aborts the load.
func (s *Source) Load(ctx context.Context) (domain.Dataset, []legislature.Diagnostic, error) {
	var (
		rawReps  []byte
		rawBills []byte
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		raw, err := s.read(gctx, Representatives, s.reps)
		rawReps = raw
		return err
	})
	g.Go(func() error {
		raw, err := s.read(gctx, Bills, s.bills)
		rawBills = raw
		return err
	})
	if err := g.Wait(); err != nil {
		return domain.Dataset{}, nil, err
	}

	reps, err := DecodeRepresentatives(rawReps)
	if err != nil {
		return domain.Dataset{}, nil, &FetchError{Dataset: Representatives, Source: describe(s.reps), Err: err}
	}
	bills, diagnostics, err := DecodeBills(rawBills)
	if err != nil {
		return domain.Dataset{}, nil, &FetchError{Dataset: Bills, Source: describe(s.bills), Err: err}
	}

	s.debug("datasets loaded", "representatives", len(reps), "bills", len(bills), "bad_dates", len(diagnostics))
	return domain.Dataset{Representatives: reps, Bills: bills}, diagnostics, nil
}

func (s *Source) read(ctx context.Context, name string, src config.SourceConfig) ([]byte, error) {
	where := describe(src)
	switch {
	case src.File != "":
		raw, err := os.ReadFile(src.File)
		if err != nil {
			return nil, &FetchError{Dataset: name, Source: where, Err: err}
		}
		return raw, nil
	case src.URL != "":
		s.debug("request dataset", "dataset", name, "url", src.URL)
		resp, err := s.client.R().SetContext(ctx).Get(src.URL)
		if err != nil {
			return nil, &FetchError{Dataset: name, Source: where, Err: err}
		}
		if resp.IsError() {
			return nil, &FetchError{Dataset: name, Source: where, Err: fmt.Errorf("unexpected status %s", resp.Status())}
		}
		return resp.Body(), nil
	default:
		return nil, &FetchError{Dataset: name, Source: where, Err: errors.New("either file or url must be provided")}
	}
}

func describe(src config.SourceConfig) string {
	if src.File != "" {
		return src.File
	}
	if src.URL != "" {
		return src.URL
	}
	return "<unset>"
}

// DecodeRepresentatives parses the representatives document.
func DecodeRepresentatives(raw []byte) ([]domain.Representative, error) {
	var wire []wireRepresentative
	if err := json.Unmarshal(raw, &wire); err != nil {
		return nil, fmt.Errorf("parse representatives: %w", err)
	}

	reps := make([]domain.Representative, 0, len(wire))
	for _, w := range wire {
		rep := domain.Representative{
			Office:         string(w.Office),
			Name:           string(w.Name),
			District:       string(w.District),
			Party:          string(w.Party),
			Counties:       string(w.Counties),
			Email:          string(w.Email),
			Webpage:        string(w.Webpage),
			LegislationURL: string(w.LegislationURL),
			ImageID:        string(w.ImageID),
			ImageURL:       string(w.ImageURL),
		}
		for _, b := range w.Bills {
			rep.Bills = append(rep.Bills, domain.RepresentativeBill{Number: string(b.Number), Passed: bool(b.Passed)})
		}
		reps = append(reps, rep)
	}
	return reps, nil
}

// DecodeBills parses the bills document. Records with an unreadable date keep
// a zero RecordDate, so any dated record for the same bill supersedes them,
// and are reported as bad-date diagnostics.
func DecodeBills(raw []byte) ([]domain.BillRecord, []legislature.Diagnostic, error) {
	var wire []wireBillRecord
	if err := json.Unmarshal(raw, &wire); err != nil {
		return nil, nil, fmt.Errorf("parse bills: %w", err)
	}

	var diagnostics []legislature.Diagnostic
	bills := make([]domain.BillRecord, 0, len(wire))
	for i, w := range wire {
		rec := domain.BillRecord{
			Sponsor:     string(w.Sponsor),
			Number:      string(w.Number),
			Title:       string(w.Title),
			Description: string(w.Description),
			StatusTag:   string(w.ProcessTag),
			Sentiment:   domain.Sentiment(w.Read),
			ImageURL:    string(w.ImageURL),
			District:    string(w.District),
			Counties:    string(w.Counties),
			Office:      string(w.Office),
			Webpage:     string(w.Webpage),
		}
		if d, err := strconv.Atoi(string(w.DayOfLegislature)); err == nil {
			rec.DayOfLegislature = d
		}

		date, err := parseRecordDate(string(w.Date))
		if err != nil {
			diagnostics = append(diagnostics, legislature.Diagnostic{
				Kind:       legislature.DiagnosticBadDate,
				Index:      i,
				Sponsor:    rec.Sponsor,
				BillNumber: rec.Number,
				Err:        err,
			})
		}
		rec.RecordDate = date

		bills = append(bills, rec)
	}
	return bills, diagnostics, nil
}

func (s *Source) debug(msg string, args ...any) {
	if s.logger != nil {
		s.logger.Debug(msg, args...)
	}
}
