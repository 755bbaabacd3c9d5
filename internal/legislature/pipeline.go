package legislature

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

// DefaultStages is the fixed order a bill moves through during a session.
var DefaultStages = []string{
	"Rules 1", "Committee 1", "Floor Vote 1.1", "Floor Vote 1.2", "Floor Vote 1.3",
	"Rules 2", "Committee 2", "Floor Vote 2.1", "Floor Vote 2.2", "Floor Vote 2.3",
	"Governor", "Bill Passed", "Concurrence", "Graveyard", "Vetoed",
}

// StagePassed marks a bill as passed for the Sponsored/Passed charts.
const StagePassed = "Bill Passed"

// Tier buckets a progress percentage for colouring.
type Tier string

const (
	TierUnknown Tier = "unknown"
	TierLow     Tier = "low"
	TierMid     Tier = "mid"
	TierHigh    Tier = "high"
)

// Tier thresholds: low < 25 <= mid < 75 <= high.
const (
	midThreshold  = 25.0
	highThreshold = 75.0
)

var tierColors = map[Tier]string{
	TierUnknown: "#9E9E9E",
	TierLow:     "#F44336",
	TierMid:     "#FFC107",
	TierHigh:    "#4CAF50",
}

// Color returns the bar colour for the tier.
func (t Tier) Color() string {
	if c, ok := tierColors[t]; ok {
		return c
	}
	return tierColors[TierUnknown]
}

// TierFor classifies a percentage.
func TierFor(percentage float64) Tier {
	switch {
	case percentage < midThreshold:
		return TierLow
	case percentage < highThreshold:
		return TierMid
	default:
		return TierHigh
	}
}

// ProgressView is the derived position of a bill on the pipeline.
type ProgressView struct {
	Percentage float64
	Tier       Tier
}

// Rounded returns the percentage rounded to a whole number for labels.
func (p ProgressView) Rounded() int {
	return int(math.Round(p.Percentage))
}

// Pipeline is an immutable ordered list of stage names.
type Pipeline struct {
	stages []string
	index  map[string]int
}

// NewPipeline validates and freezes a stage order. Stage names must be
// non-empty and unique.
func NewPipeline(stages []string) (*Pipeline, error) {
	if len(stages) == 0 {
		return nil, errors.New("pipeline needs at least one stage")
	}

	p := &Pipeline{
		stages: make([]string, len(stages)),
		index:  make(map[string]int, len(stages)),
	}
	for i, s := range stages {
		if strings.TrimSpace(s) == "" {
			return nil, fmt.Errorf("stage %d is empty", i)
		}
		if prev, dup := p.index[s]; dup {
			return nil, fmt.Errorf("stage %q repeated at %d and %d", s, prev, i)
		}
		p.stages[i] = s
		p.index[s] = i
	}
	return p, nil
}

// MustDefaultPipeline returns the standard fifteen-stage pipeline.
func MustDefaultPipeline() *Pipeline {
	p, err := NewPipeline(DefaultStages)
	if err != nil {
		panic(err)
	}
	return p
}

// Stages returns a copy of the stage order.
func (p *Pipeline) Stages() []string {
	return append([]string(nil), p.stages...)
}

// Len returns the number of stages.
func (p *Pipeline) Len() int {
	return len(p.stages)
}

// Index locates a status tag by exact match.
func (p *Pipeline) Index(tag string) (int, bool) {
	i, ok := p.index[tag]
	return i, ok
}

// Progress maps a status tag to its completion percentage and tier.
func (p *Pipeline) Progress(tag string) (ProgressView, error) {
	i, ok := p.index[tag]
	if !ok {
		return ProgressView{}, &UnknownStageError{Tag: tag}
	}

	pct := 100.0
	if len(p.stages) > 1 {
		pct = float64(i) / float64(len(p.stages)-1) * 100
	}
	pct = math.Max(0, math.Min(100, pct))

	return ProgressView{Percentage: pct, Tier: TierFor(pct)}, nil
}

// ProgressOrDefault renders unknown stages as 0% in the unknown (gray) tier.
// The error is still returned so the caller can report it.
func (p *Pipeline) ProgressOrDefault(tag string) (ProgressView, error) {
	view, err := p.Progress(tag)
	if err != nil {
		return ProgressView{Percentage: 0, Tier: TierUnknown}, err
	}
	return view, nil
}
