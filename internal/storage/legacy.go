package storage

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/alexanderramin/actionmenu/internal/domain"
)

// The prototype wrote naive UTC timestamps with microseconds and a literal Z.
const legacyTimeLayout = "2006-01-02T15:04:05.000000Z"

// legacyConfidence is given to prototype suggestions, which were never scored.
const legacyConfidence = 0.5

// legacyNamespace seeds deterministic ids for prototype records that had none
// (weekly-action labels, embedded journal suggestions).
var legacyNamespace = uuid.MustParse("6f1c3c0e-5f0a-4c8e-9a51-2b7d3e0c4a11")

var legacyBuckets = map[string]domain.Stage{
	"Today":      domain.StageToday,
	"This Week":  domain.StageLater,
	"This Month": domain.StageLater,
}

var legacyHorizons = map[string]domain.Horizon{
	"today":      domain.HorizonToday,
	"this week":  domain.HorizonThisWeek,
	"this month": domain.HorizonThisMonth,
	"long term":  domain.HorizonLongTerm,
}

var legacyKinds = map[string]domain.Classification{
	"goal":   domain.ClassGoal,
	"habit":  domain.ClassHabit,
	"action": domain.ClassQuickAction,
}

// migrateLegacyToV2 maps the prototype's snake_case state file onto the v2
// document: quick capture and weekly-action buckets become quick actions,
// embedded journal suggestions become pending suggestions, and time entries
// are merged with their flow logs into work sessions. Timer categories have
// no v2 counterpart and are dropped.
func migrateLegacyToV2(raw map[string]any) (map[string]any, error) {
	out := map[string]any{}

	refl := object(raw, "reflections")
	out["reflections"] = map[string]any{
		"values":     str(refl, "values"),
		"milestones": str(refl, "milestones"),
		"energy":     str(refl, "energy"),
	}

	goals, goalIDs, err := legacyGoals(raw)
	if err != nil {
		return nil, err
	}
	out["goals"] = goals
	out["habits"] = legacyHabits(raw, goalIDs)

	actions, err := legacyQuickActions(raw)
	if err != nil {
		return nil, err
	}
	out["quickActions"] = actions

	entries, suggestions, err := legacyJournal(raw)
	if err != nil {
		return nil, err
	}
	out["journalEntries"] = entries
	out["suggestions"] = suggestions

	sessions, err := legacySessions(raw)
	if err != nil {
		return nil, err
	}
	out["workSessions"] = sessions
	return out, nil
}

// legacyGoals also returns a lookup from goal id and lower-cased title to
// id; the prototype linked habits to goals by either.
func legacyGoals(raw map[string]any) ([]any, map[string]string, error) {
	var out []any
	ids := make(map[string]string)
	for i, g := range objects(raw, "goals") {
		id := str(g, "id")
		if id == "" {
			return nil, nil, fmt.Errorf("goals[%d]: missing id", i)
		}
		title := str(g, "title")
		horizon, ok := legacyHorizons[strings.ToLower(strings.TrimSpace(str(g, "horizon")))]
		if !ok {
			horizon = domain.HorizonLongTerm
		}
		out = append(out, map[string]any{
			"id":         id,
			"title":      title,
			"category":   legacyCategory(str(g, "category")),
			"specific":   str(g, "specific"),
			"measurable": str(g, "measurable"),
			"achievable": str(g, "achievable"),
			"relevant":   str(g, "relevant"),
			"timeBound":  str(g, "time_bound"),
			"horizon":    string(horizon),
			"status":     string(domain.GoalActive),
		})
		ids[id] = id
		if key := strings.ToLower(strings.TrimSpace(title)); key != "" {
			if _, taken := ids[key]; !taken {
				ids[key] = id
			}
		}
	}
	return out, ids, nil
}

func legacyHabits(raw map[string]any, goalIDs map[string]string) []any {
	var out []any
	for _, h := range objects(raw, "habits") {
		rec := map[string]any{
			"id":            str(h, "id"),
			"title":         str(h, "name"),
			"cadence":       string(legacyCadence(str(h, "frequency"))),
			"anchor":        str(h, "anchor"),
			"successMetric": str(h, "success_metric"),
			"status":        string(domain.HabitActive),
		}
		if link := strings.TrimSpace(str(h, "linked_goal")); link != "" {
			if id, ok := goalIDs[link]; ok {
				rec["linkedGoalId"] = id
			} else if id, ok := goalIDs[strings.ToLower(link)]; ok {
				rec["linkedGoalId"] = id
			}
		}
		out = append(out, rec)
	}
	return out
}

func legacyQuickActions(raw map[string]any) ([]any, error) {
	var out []any
	for i, q := range objects(raw, "quick_capture") {
		created, err := legacyTime(str(q, "created_at"))
		if err != nil {
			return nil, fmt.Errorf("quick_capture[%d]: %w", i, err)
		}
		out = append(out, map[string]any{
			"id":        str(q, "id"),
			"title":     str(q, "text"),
			"stage":     strings.ToLower(strings.TrimSpace(str(q, "status"))),
			"createdAt": created,
			"updatedAt": created,
		})
	}

	weekly := object(raw, "weekly_actions")
	buckets := make([]string, 0, len(weekly))
	for b := range weekly {
		buckets = append(buckets, b)
	}
	sort.Slice(buckets, func(i, j int) bool {
		return bucketRank(buckets[i]) < bucketRank(buckets[j]) ||
			(bucketRank(buckets[i]) == bucketRank(buckets[j]) && buckets[i] < buckets[j])
	})
	for _, b := range buckets {
		stage, ok := legacyBuckets[b]
		if !ok {
			stage = domain.StageInbox
		}
		labels, _ := weekly[b].([]any)
		for i, l := range labels {
			label, _ := l.(string)
			if strings.TrimSpace(label) == "" {
				continue
			}
			out = append(out, map[string]any{
				"id":    legacyID("weekly", b, strconv.Itoa(i), label),
				"title": label,
				"stage": string(stage),
			})
		}
	}
	return out, nil
}

func bucketRank(b string) int {
	switch b {
	case "Today":
		return 0
	case "This Week":
		return 1
	case "This Month":
		return 2
	}
	return 3
}

func legacyJournal(raw map[string]any) ([]any, []any, error) {
	var entries, suggestions []any
	for i, e := range objects(raw, "journal_entries") {
		id := str(e, "id")
		if id == "" {
			return nil, nil, fmt.Errorf("journal_entries[%d]: missing id", i)
		}
		created, err := legacyTime(str(e, "created_at"))
		if err != nil {
			return nil, nil, fmt.Errorf("journal_entries[%d]: %w", i, err)
		}
		body := str(e, "text")
		tags := stringList(e, "tags")

		ids := []any{}
		for j, s := range objectList(e["suggestions"]) {
			text := strings.TrimSpace(str(s, "text"))
			kind := strings.ToLower(str(s, "kind"))
			if kind == "blockage" {
				tags = appendUnique(tags, "blocked")
				continue
			}
			class, ok := legacyKinds[kind]
			if !ok || text == "" {
				continue
			}
			offset := strings.Index(body, text)
			if offset < 0 {
				offset = 0
			}
			sid := legacyID("suggestion", id, strconv.Itoa(j))
			ids = append(ids, sid)
			suggestions = append(suggestions, map[string]any{
				"id":             sid,
				"entryId":        id,
				"span":           text,
				"offset":         offset,
				"classification": string(class),
				"confidence":     legacyConfidence,
				"proposed": map[string]any{
					"title":    text,
					"category": domain.DefaultCategory,
				},
				"status":    string(domain.SuggestionPending),
				"createdAt": created,
			})
		}

		tagList := make([]any, 0, len(tags))
		for _, t := range tags {
			tagList = append(tagList, t)
		}
		entries = append(entries, map[string]any{
			"id":            id,
			"body":          body,
			"tags":          tagList,
			"suggestionIds": ids,
			"createdAt":     created,
		})
	}
	return entries, suggestions, nil
}

func legacySessions(raw map[string]any) ([]any, error) {
	flows := make(map[string]map[string]any)
	for _, f := range objects(raw, "flow_logs") {
		flows[str(f, "time_entry_id")] = f
	}

	var out []any
	for i, t := range objects(raw, "time_entries") {
		start, err := legacyTimeValue(str(t, "start"))
		if err != nil {
			return nil, fmt.Errorf("time_entries[%d] start: %w", i, err)
		}
		end, err := legacyTimeValue(str(t, "end"))
		if err != nil {
			return nil, fmt.Errorf("time_entries[%d] end: %w", i, err)
		}
		id := str(t, "id")
		rec := map[string]any{
			"id":              id,
			"activity":        str(t, "activity"),
			"category":        str(t, "category"),
			"startedAt":       start.Format(time.RFC3339Nano),
			"durationSeconds": end.Sub(start).Seconds(),
		}
		if f, ok := flows[id]; ok {
			rec["flowBefore"] = num(f, "flow_before")
			rec["flowAfter"] = num(f, "flow_after")
			rec["emotionBefore"] = str(f, "emotion_before")
			rec["emotionAfter"] = str(f, "emotion_after")
			rec["note"] = joinNonEmpty("\n", str(f, "feeling_message"), str(f, "feeling_motivation"))
		}
		out = append(out, rec)
	}
	return out, nil
}

func legacyCategory(c string) string {
	c = strings.ToLower(strings.TrimSpace(c))
	return domain.CoalesceStr(c, domain.DefaultCategory)
}

// legacyCadence maps the prototype's free-text frequency onto a cadence.
func legacyCadence(freq string) domain.Cadence {
	f := strings.ToLower(freq)
	switch {
	case strings.Contains(f, "weekday"):
		return domain.CadenceWeekdays
	case strings.Contains(f, "week"):
		return domain.CadenceWeekly
	default:
		return domain.CadenceDaily
	}
}

func legacyID(parts ...string) string {
	return uuid.NewSHA1(legacyNamespace, []byte(strings.Join(parts, "\x00"))).String()
}

func legacyTimeValue(s string) (time.Time, error) {
	if t, err := time.Parse(legacyTimeLayout, s); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("unrecognised timestamp %q", s)
	}
	return t.UTC(), nil
}

func legacyTime(s string) (string, error) {
	t, err := legacyTimeValue(s)
	if err != nil {
		return "", err
	}
	return t.Format(time.RFC3339Nano), nil
}

// --- untyped map helpers ---

func object(m map[string]any, key string) map[string]any {
	o, _ := m[key].(map[string]any)
	return o
}

func objects(m map[string]any, key string) []map[string]any {
	return objectList(m[key])
}

func objectList(v any) []map[string]any {
	list, _ := v.([]any)
	out := make([]map[string]any, 0, len(list))
	for _, it := range list {
		if o, ok := it.(map[string]any); ok {
			out = append(out, o)
		}
	}
	return out
}

func str(m map[string]any, key string) string {
	s, _ := m[key].(string)
	return s
}

func num(m map[string]any, key string) float64 {
	n, _ := m[key].(float64)
	return n
}

func stringList(m map[string]any, key string) []string {
	list, _ := m[key].([]any)
	var out []string
	for _, it := range list {
		if s, ok := it.(string); ok && s != "" {
			out = appendUnique(out, s)
		}
	}
	return out
}

func appendUnique(list []string, s string) []string {
	for _, have := range list {
		if have == s {
			return list
		}
	}
	return append(list, s)
}

func joinNonEmpty(sep string, parts ...string) string {
	var kept []string
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, sep)
}
