package extraction

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/alexanderramin/actionmenu/internal/domain"
)

const titleCutset = " \t.,;:!?-–—\"'“”‘’()"

// extractTitle takes the text after the lead-in trigger (chained lead-ins
// such as "I want to remember to" are all skipped). Without a lead-in the
// whole segment is the title. Source casing is kept.
func extractTitle(seg string, hits []Hit) string {
	cut := -1
	for _, h := range hits {
		if !h.Lead {
			continue
		}
		if cut < 0 {
			cut = h.End
			continue
		}
		if h.Start >= cut && strings.TrimSpace(seg[cut:h.Start]) == "" {
			cut = h.End
		}
	}
	if cut < 0 {
		return cleanTitle(seg)
	}
	if t := cleanTitle(seg[cut:]); t != "" {
		return t
	}
	// Lead-in at the end of the segment ("... is what I want to").
	for _, h := range hits {
		if h.Lead {
			return cleanTitle(seg[:h.Start] + " " + seg[h.End:])
		}
	}
	return ""
}

func cleanTitle(s string) string {
	return strings.Trim(strings.Join(strings.Fields(s), " "), titleCutset)
}

// normalizeKey is the de-duplication key: lower case, punctuation removed,
// whitespace collapsed.
func normalizeKey(title string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(title) {
		switch {
		case unicode.IsLetter(r), unicode.IsDigit(r):
			b.WriteRune(r)
		case unicode.IsSpace(r):
			b.WriteRune(' ')
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

func words(s string) []string {
	return strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return !unicode.IsLetter(r) && r != '\''
	})
}

type categoryIndex struct {
	order []string
	words map[string]string
}

func newCategoryIndex(rules []CategoryRule) *categoryIndex {
	idx := &categoryIndex{words: make(map[string]string)}
	for _, r := range rules {
		idx.order = append(idx.order, r.Category)
		for _, kw := range r.Keywords {
			kw = strings.ToLower(kw)
			if _, taken := idx.words[kw]; !taken {
				idx.words[kw] = r.Category
			}
		}
	}
	return idx
}

// guess returns the category with the most vocabulary hits in text, ties
// broken by vocabulary order, or domain.DefaultCategory.
func (c *categoryIndex) guess(text string) string {
	counts := make(map[string]int)
	for _, w := range words(text) {
		w = strings.TrimSuffix(w, "'s")
		if cat, ok := c.words[w]; ok {
			counts[cat]++
			continue
		}
		if cat, ok := c.words[strings.TrimSuffix(w, "s")]; ok {
			counts[cat]++
		}
	}
	best, bestCount := domain.DefaultCategory, 0
	for _, cat := range c.order {
		if counts[cat] > bestCount {
			best, bestCount = cat, counts[cat]
		}
	}
	return best
}

type cadenceRule struct {
	cadence domain.Cadence
	re      *regexp.Regexp
}

// Checked in order: the narrower weekday and weekly cues win over daily.
var cadenceRules = []cadenceRule{
	{domain.CadenceWeekdays, regexp.MustCompile(`(?i)\bweekdays?\b|\bworkdays?\b|\bmonday\s+(?:to|through)\s+friday\b`)},
	{domain.CadenceWeekly, regexp.MustCompile(`(?i)\bweekly\b|\bonce\s+a\s+week\b|\b(?:every|each)\s+(?:week|weekend|monday|tuesday|wednesday|thursday|friday|saturday|sunday)s?\b|\bon\s+(?:mondays|tuesdays|wednesdays|thursdays|fridays|saturdays|sundays)\b`)},
	{domain.CadenceDaily, regexp.MustCompile(`(?i)\bdaily\b|\bnightly\b|\b(?:every|each)\s+(?:single\s+)?(?:day|morning|afternoon|evening|night)\b|\bbefore\s+bed\b`)},
}

// frequencyHint scans for cadence words. Empty when none is present.
func frequencyHint(text string) domain.Cadence {
	for _, r := range cadenceRules {
		if r.re.MatchString(text) {
			return r.cadence
		}
	}
	return ""
}

var dueHintRe = regexp.MustCompile(`(?i)\b(?:today|tonight|tomorrow|(?:this|next)\s+(?:week|weekend|month|year))\b`)

// dueHint returns the first relative time phrase, lower-cased.
func dueHint(text string) string {
	m := dueHintRe.FindString(text)
	if m == "" {
		return ""
	}
	return strings.Join(strings.Fields(strings.ToLower(m)), " ")
}
