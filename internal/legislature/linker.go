package legislature

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/antzucaro/matchr"

	"legtracker/internal/domain"
)

// DefaultLinkThreshold is the minimum Jaro-Winkler similarity for a fuzzy link.
const DefaultLinkThreshold = 0.88

var titlePrefix = regexp.MustCompile(`(?i)^(representative|senator|rep|sen)(\.\s*|\s+)`)

// NameKey reduces a person's name to "last_f" so that "Doe, John",
// "John Doe" and "Rep. John Q. Doe" collide.
func NameKey(name string) string {
	first, last := splitName(name)
	switch {
	case last == "" && first == "":
		return ""
	case last == "":
		return strings.ToLower(strings.ReplaceAll(first, " ", ""))
	}

	key := strings.ToLower(strings.ReplaceAll(last, " ", ""))
	for _, r := range first {
		if unicode.IsLetter(r) {
			return key + "_" + string(unicode.ToLower(r))
		}
	}
	return key
}

// NormalizeSponsor strips enclosing parentheses and a leading title such as
// "Rep." or "Senator" from a scraped sponsor string.
func NormalizeSponsor(raw string) string {
	s := strings.TrimSpace(raw)
	s = strings.TrimSpace(strings.TrimSuffix(strings.TrimPrefix(s, "("), ")"))
	return strings.TrimSpace(titlePrefix.ReplaceAllString(s, ""))
}

// canonicalName renders a name as lower-case "first last".
func canonicalName(name string) string {
	first, last := splitName(name)
	return strings.ToLower(strings.TrimSpace(first + " " + last))
}

func splitName(name string) (first, last string) {
	s := strings.TrimSpace(name)
	s = strings.Trim(s, "()")
	s = titlePrefix.ReplaceAllString(s, "")
	s = strings.TrimSpace(strings.ReplaceAll(s, ".", ""))
	if s == "" {
		return "", ""
	}

	if left, right, ok := strings.Cut(s, ","); ok {
		return strings.TrimSpace(right), strings.TrimSpace(left)
	}

	parts := strings.Fields(s)
	if len(parts) < 2 {
		return s, ""
	}
	return parts[0], parts[len(parts)-1]
}

// Link ties a bill sponsor name to a representative record.
type Link struct {
	Sponsor        string
	Representative string
	Score          float64
}

// Links is the outcome of a linking pass, keyed both ways.
type Links struct {
	bySponsor map[string]Link
	byRep     map[string]Link
	Unmatched []string
}

// ForSponsor returns the link for a sponsor.
func (l Links) ForSponsor(sponsor string) (Link, bool) {
	link, ok := l.bySponsor[sponsor]
	return link, ok
}

// ForRepresentative returns the link for a representative name.
func (l Links) ForRepresentative(name string) (Link, bool) {
	link, ok := l.byRep[name]
	return link, ok
}

// Len returns the number of linked sponsors.
func (l Links) Len() int {
	return len(l.bySponsor)
}

// Linker matches sponsors to representatives.
type Linker struct {
	threshold float64
}

// NewLinker builds a linker; a non-positive threshold uses the default.
func NewLinker(threshold float64) *Linker {
	if threshold <= 0 || threshold > 1 {
		threshold = DefaultLinkThreshold
	}
	return &Linker{threshold: threshold}
}

// Link pairs each sponsor with at most one representative. Exact name keys
// are matched first, then the most similar remaining name at or above the
// threshold.
func (lk *Linker) Link(sponsors []string, reps []domain.Representative) Links {
	out := Links{
		bySponsor: map[string]Link{},
		byRep:     map[string]Link{},
	}

	keyed := map[string]string{}
	for _, rep := range reps {
		key := NameKey(rep.Name)
		if key == "" {
			continue
		}
		if _, taken := keyed[key]; !taken {
			keyed[key] = rep.Name
		}
	}

	add := func(link Link) {
		out.bySponsor[link.Sponsor] = link
		out.byRep[link.Representative] = link
	}

	var pending []string
	for _, sponsor := range sponsors {
		name, ok := keyed[NameKey(sponsor)]
		if ok {
			if _, used := out.byRep[name]; !used {
				add(Link{Sponsor: sponsor, Representative: name, Score: 1})
				continue
			}
		}
		pending = append(pending, sponsor)
	}

	for _, sponsor := range pending {
		target := canonicalName(sponsor)
		var (
			best      string
			bestScore float64
		)
		for _, rep := range reps {
			if _, used := out.byRep[rep.Name]; used {
				continue
			}
			score := matchr.JaroWinkler(target, canonicalName(rep.Name), false)
			if score > bestScore {
				best, bestScore = rep.Name, score
			}
		}
		if best != "" && bestScore >= lk.threshold {
			add(Link{Sponsor: sponsor, Representative: best, Score: bestScore})
			continue
		}
		out.Unmatched = append(out.Unmatched, sponsor)
	}

	return out
}
