package scanner

import (
	"context"
	"testing"

	"legtracker/internal/domain"
)

type stubScanner struct{ name string }

func (s stubScanner) Name() string { return s.name }

func (s stubScanner) Scan(context.Context, Request) ([]domain.BillListing, error) {
	return nil, nil
}

func TestRegistryResolve(t *testing.T) {
	t.Parallel()

	reg := NewRegistry()
	reg.Register(stubScanner{name: "utah-le"})
	reg.Register(stubScanner{name: "alpha"})

	if _, err := reg.Resolve("utah-le"); err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if _, err := reg.Resolve("missing"); err == nil {
		t.Fatalf("expected error for unknown scanner")
	}

	names := reg.Names()
	if len(names) != 2 || names[0] != "alpha" || names[1] != "utah-le" {
		t.Fatalf("unexpected names: %v", names)
	}
}

func TestRegistryZeroValue(t *testing.T) {
	t.Parallel()

	var reg Registry
	reg.Register(stubScanner{name: "late"})
	if _, err := reg.Resolve("late"); err != nil {
		t.Fatalf("zero-value registry should accept registrations: %v", err)
	}
}
