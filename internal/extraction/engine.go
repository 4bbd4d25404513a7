package extraction

import (
	"math"
	"regexp"
	"sort"

	"github.com/alexanderramin/actionmenu/internal/domain"
)

// Config tunes the engine. Zero values select the defaults.
type Config struct {
	Classifier TextClassifier
	Categories []CategoryRule
	Signals    []Signal

	// MinTokens is the segment length below which confidence is halved.
	MinTokens int
	// MinConfidence drops candidates scoring below it.
	MinConfidence float64
}

const (
	defaultMinTokens = 3

	// Confidence = triggerShare*min(score,1) + lengthShare*min(tokens,fullLength)/fullLength.
	triggerShare = 0.7
	lengthShare  = 0.3
	fullLength   = 12
	shortPenalty = 0.5
)

// Engine runs the extraction pipeline. It holds no mutable state and is
// safe for concurrent use.
type Engine struct {
	classifier    TextClassifier
	categories    *categoryIndex
	signals       []compiledSignal
	minTokens     int
	minConfidence float64
}

type compiledSignal struct {
	tag string
	re  *regexp.Regexp
}

// NewEngine builds an engine from cfg.
func NewEngine(cfg Config) (*Engine, error) {
	classifier := cfg.Classifier
	if classifier == nil {
		kc, err := NewKeywordClassifier(nil)
		if err != nil {
			return nil, err
		}
		classifier = kc
	}
	categories := cfg.Categories
	if len(categories) == 0 {
		categories = DefaultCategories()
	}
	signals := cfg.Signals
	if len(signals) == 0 {
		signals = DefaultSignals()
	}
	compiled := make([]compiledSignal, 0, len(signals))
	for _, s := range signals {
		re, err := regexp.Compile("(?i)" + s.Regex)
		if err != nil {
			return nil, err
		}
		compiled = append(compiled, compiledSignal{tag: s.Tag, re: re})
	}
	minTokens := cfg.MinTokens
	if minTokens <= 0 {
		minTokens = defaultMinTokens
	}
	return &Engine{
		classifier:    classifier,
		categories:    newCategoryIndex(categories),
		signals:       compiled,
		minTokens:     minTokens,
		minConfidence: cfg.MinConfidence,
	}, nil
}

// MustNewEngine is NewEngine for configurations known to be valid.
func MustNewEngine(cfg Config) *Engine {
	e, err := NewEngine(cfg)
	if err != nil {
		panic(err)
	}
	return e
}

// Extract returns pending, unlinked suggestions in source order. The same
// text always yields the same result. It never fails: text without triggers
// (including the empty string) yields an empty slice.
func (e *Engine) Extract(text string) []domain.Suggestion {
	out := []domain.Suggestion{}
	seen := make(map[string]int)

	for _, seg := range splitSegments(text) {
		cand, ok := e.candidate(seg)
		if !ok || cand.Confidence < e.minConfidence {
			continue
		}
		key := normalizeKey(cand.Proposed.Title)
		if i, dup := seen[key]; dup {
			if cand.Confidence > out[i].Confidence {
				out[i] = cand
			}
			continue
		}
		seen[key] = len(out)
		out = append(out, cand)
	}
	return out
}

func (e *Engine) candidate(seg segment) (domain.Suggestion, bool) {
	verdict, ok := e.classifier.Classify(seg.Text)
	if !ok {
		return domain.Suggestion{}, false
	}
	title := extractTitle(seg.Text, verdict.Hits)
	if normalizeKey(title) == "" {
		return domain.Suggestion{}, false
	}

	proposed := domain.ProposedFields{
		Title:    title,
		Category: e.categories.guess(title),
		DueHint:  dueHint(seg.Text),
	}
	if verdict.Class == domain.ClassHabit {
		proposed.Frequency = frequencyHint(seg.Text)
	}

	return domain.Suggestion{
		Span:           seg.Text,
		Offset:         seg.Offset,
		Classification: verdict.Class,
		Confidence:     e.confidence(seg.Text, verdict.Score),
		Proposed:       proposed,
		Status:         domain.SuggestionPending,
	}, true
}

func (e *Engine) confidence(text string, score float64) float64 {
	tokens, wordShare := tokenStats(text)
	c := triggerShare*math.Min(score, 1) + lengthShare*math.Min(float64(tokens), fullLength)/fullLength
	if tokens < e.minTokens {
		c *= shortPenalty
	}
	c *= wordShare
	c = math.Max(0, math.Min(1, c))
	return math.Round(c*1000) / 1000
}

// Signals returns the sorted, unique mood and blockage tags found in text.
func (e *Engine) Signals(text string) []string {
	var tags []string
	for _, s := range e.signals {
		if s.re.MatchString(text) {
			tags = append(tags, s.tag)
		}
	}
	sort.Strings(tags)
	return tags
}
