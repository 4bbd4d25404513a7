package extraction

import (
	"fmt"
	"regexp"
	"sort"

	"github.com/alexanderramin/actionmenu/internal/domain"
)

// Hit is one trigger match inside a segment. Start and End are byte offsets
// into the segment.
type Hit struct {
	Name   string
	Class  domain.Classification
	Weight float64
	Lead   bool
	Start  int
	End    int
}

// Verdict is a classifier's decision for one segment.
type Verdict struct {
	Class domain.Classification
	// Score is the weighted hit count of the winning family.
	Score float64
	// Hits holds every trigger hit in the segment, ordered by position.
	Hits []Hit
}

// TextClassifier decides whether a segment is actionable and what it is.
// ok is false when no trigger fires.
type TextClassifier interface {
	Classify(segment string) (v Verdict, ok bool)
}

// KeywordClassifier scores segments against trigger tables.
type KeywordClassifier struct {
	triggers []*compiledTrigger
}

type compiledTrigger struct {
	Trigger
	regex *regexp.Regexp
}

// NewKeywordClassifier compiles the trigger table. An empty table falls back
// to DefaultTriggers.
func NewKeywordClassifier(triggers []Trigger) (*KeywordClassifier, error) {
	if len(triggers) == 0 {
		triggers = DefaultTriggers()
	}
	compiled := make([]*compiledTrigger, 0, len(triggers))
	for _, t := range triggers {
		if !t.Class.Valid() {
			return nil, fmt.Errorf("trigger %s: unknown class %q", t.Name, t.Class)
		}
		if t.Weight <= 0 {
			return nil, fmt.Errorf("trigger %s: weight must be positive", t.Name)
		}
		re, err := regexp.Compile("(?i)" + t.Regex)
		if err != nil {
			return nil, fmt.Errorf("trigger %s: %w", t.Name, err)
		}
		compiled = append(compiled, &compiledTrigger{Trigger: t, regex: re})
	}
	return &KeywordClassifier{triggers: compiled}, nil
}

// MustKeywordClassifier is NewKeywordClassifier for tables known to compile.
func MustKeywordClassifier(triggers []Trigger) *KeywordClassifier {
	c, err := NewKeywordClassifier(triggers)
	if err != nil {
		panic(err)
	}
	return c
}

// Classify sums trigger weights per family. Each trigger counts once per
// segment. The highest sum wins; ties go to the earlier family in
// domain.Classifications.
func (k *KeywordClassifier) Classify(segment string) (Verdict, bool) {
	var hits []Hit
	scores := make(map[domain.Classification]float64, len(domain.Classifications))
	for _, t := range k.triggers {
		loc := t.regex.FindStringIndex(segment)
		if loc == nil {
			continue
		}
		hits = append(hits, Hit{
			Name:   t.Name,
			Class:  t.Class,
			Weight: t.Weight,
			Lead:   t.Lead,
			Start:  loc[0],
			End:    loc[1],
		})
		scores[t.Class] += t.Weight
	}
	if len(hits) == 0 {
		return Verdict{}, false
	}

	var best domain.Classification
	for _, c := range domain.Classifications {
		if scores[c] > scores[best] {
			best = c
		}
	}

	sort.SliceStable(hits, func(i, j int) bool { return hits[i].Start < hits[j].Start })
	return Verdict{Class: best, Score: scores[best], Hits: hits}, true
}
