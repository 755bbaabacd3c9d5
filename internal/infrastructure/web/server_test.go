package web

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"legtracker/internal/domain"
	"legtracker/internal/legislature"
	"legtracker/internal/usecase"
)

type staticSource struct {
	dataset domain.Dataset
}

func (s staticSource) Load(context.Context) (domain.Dataset, []legislature.Diagnostic, error) {
	return s.dataset, nil, nil
}

func newDashboard(t *testing.T, build bool) *usecase.Dashboard {
	t.Helper()
	d := usecase.NewDashboard(usecase.DashboardDeps{
		Source: staticSource{dataset: domain.Dataset{
			Representatives: []domain.Representative{
				{Office: "House", Name: "John Doe", Party: "R"},
				{Office: "Senate", Name: "Ann Lee", Party: "D"},
			},
			Bills: []domain.BillRecord{
				{Sponsor: "Doe, John", Number: "HB1", Title: "Water", StatusTag: "Rules 1", Office: "House"},
			},
		}},
		Office: "House",
		Title:  "Utah Bills",
	})
	if build {
		if err := d.Rebuild(context.Background(), time.Now()); err != nil {
			t.Fatalf("Rebuild: %v", err)
		}
	}
	return d
}

func get(t *testing.T, srv *Server, target string) (*http.Response, string) {
	t.Helper()
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	resp := rec.Result()
	body, _ := io.ReadAll(resp.Body)
	return resp, string(body)
}

func TestServerRoutes(t *testing.T) {
	t.Parallel()

	srv := NewServer(":0", time.Second, newDashboard(t, true), mustRenderer(t), nil)

	cases := []struct {
		target string
		status int
		want   string
	}{
		{"/", http.StatusOK, "1 sponsors"},
		{"/sponsors", http.StatusOK, "HB1: Water"},
		{"/representatives", http.StatusOK, "John Doe"},
		{"/representatives?office=Senate", http.StatusOK, "Ann Lee"},
		{"/healthz", http.StatusOK, "ok "},
		{"/missing", http.StatusNotFound, ""},
	}
	for _, tc := range cases {
		resp, body := get(t, srv, tc.target)
		if resp.StatusCode != tc.status {
			t.Fatalf("%s: status %d, want %d", tc.target, resp.StatusCode, tc.status)
		}
		if !strings.Contains(body, tc.want) {
			t.Fatalf("%s: body missing %q", tc.target, tc.want)
		}
	}

	_, senate := get(t, srv, "/representatives?office=Senate")
	if strings.Contains(senate, "John Doe") {
		t.Fatalf("senate page should not list house members")
	}
}

func TestServerBeforeFirstBuild(t *testing.T) {
	t.Parallel()

	srv := NewServer(":0", time.Second, newDashboard(t, false), mustRenderer(t), nil)

	for _, target := range []string{"/", "/sponsors", "/healthz"} {
		resp, _ := get(t, srv, target)
		if resp.StatusCode != http.StatusServiceUnavailable {
			t.Fatalf("%s: expected 503, got %d", target, resp.StatusCode)
		}
	}
}

func TestServerRunStopsOnCancel(t *testing.T) {
	t.Parallel()

	srv := NewServer("127.0.0.1:0", time.Second, newDashboard(t, true), mustRenderer(t), nil)
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() { done <- srv.Run(ctx) }()
	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Run: %v", err)
		}
	case <-time.After(3 * time.Second):
		t.Fatalf("server did not stop")
	}
}
