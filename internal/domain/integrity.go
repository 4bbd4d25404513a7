package domain

import "fmt"

// Validate checks every cross-entity invariant and returns an
// *IntegrityError listing all problems, or nil.
func (s *State) Validate() error {
	if problems := s.audit(false); len(problems) > 0 {
		return &IntegrityError{Problems: problems}
	}
	return nil
}

// Repair fixes every problem Validate would report and returns one line per
// action taken. Dangling suggestions are dropped; dangling references on
// entities are cleared; unknown enum values are reset to their defaults.
func (s *State) Repair() []string {
	return s.audit(true)
}

type reporter func(format string, args ...any)

func (s *State) audit(fix bool) []string {
	var problems []string
	report := func(format string, args ...any) {
		problems = append(problems, fmt.Sprintf(format, args...))
	}

	s.JournalEntries = uniqueByID(s.JournalEntries, func(e *JournalEntry) string { return e.ID }, "journal entry", fix, report)
	s.Suggestions = uniqueByID(s.Suggestions, func(sg *Suggestion) string { return sg.ID }, "suggestion", fix, report)
	s.Goals = uniqueByID(s.Goals, func(g *Goal) string { return g.ID }, "goal", fix, report)
	s.Habits = uniqueByID(s.Habits, func(h *Habit) string { return h.ID }, "habit", fix, report)
	s.QuickActions = uniqueByID(s.QuickActions, func(q *QuickAction) string { return q.ID }, "quick action", fix, report)
	s.WorkSessions = uniqueByID(s.WorkSessions, func(w *WorkSession) string { return w.ID }, "work session", fix, report)

	entries := make(map[string]*JournalEntry, len(s.JournalEntries))
	for _, e := range s.JournalEntries {
		entries[e.ID] = e
	}

	suggestions := s.auditSuggestions(entries, fix, report)
	s.auditEntryLists(entries, suggestions, fix, report)
	s.auditEntities(suggestions, fix, report)
	s.auditSessions(fix, report)

	return problems
}

func uniqueByID[T any](items []T, id func(T) string, kind string, fix bool, report reporter) []T {
	seen := make(map[string]bool, len(items))
	kept := make([]T, 0, len(items))
	for _, it := range items {
		key := id(it)
		switch {
		case key == "":
			report("%s with empty id", kind)
			if fix {
				continue
			}
		case seen[key]:
			report("duplicate %s id %s", kind, key)
			if fix {
				continue
			}
		}
		seen[key] = true
		kept = append(kept, it)
	}
	if !fix {
		return items
	}
	return kept
}

func (s *State) auditSuggestions(entries map[string]*JournalEntry, fix bool, report reporter) map[string]*Suggestion {
	byID := make(map[string]*Suggestion, len(s.Suggestions))
	kept := make([]*Suggestion, 0, len(s.Suggestions))
	for _, sg := range s.Suggestions {
		var reason string
		switch {
		case entries[sg.EntryID] == nil:
			reason = "references missing journal entry " + sg.EntryID
		case !sg.Classification.Valid():
			reason = "has unknown classification " + string(sg.Classification)
		case !sg.Status.Valid():
			reason = "has unknown status " + string(sg.Status)
		}
		if reason != "" {
			report("suggestion %s %s", sg.ID, reason)
			if fix {
				continue
			}
		}
		if sg.Confidence < 0 || sg.Confidence > 1 {
			report("suggestion %s confidence %.3f outside [0,1]", sg.ID, sg.Confidence)
			if fix {
				sg.Confidence = min(max(sg.Confidence, 0), 1)
			}
		}
		byID[sg.ID] = sg
		kept = append(kept, sg)
	}
	if fix {
		s.Suggestions = kept
	}
	return byID
}

func (s *State) auditEntryLists(entries map[string]*JournalEntry, suggestions map[string]*Suggestion, fix bool, report reporter) {
	listed := make(map[string]bool, len(suggestions))
	for _, e := range s.JournalEntries {
		var kept []string
		for _, id := range e.SuggestionIDs {
			sg := suggestions[id]
			switch {
			case sg == nil:
				report("journal entry %s lists missing suggestion %s", e.ID, id)
				continue
			case sg.EntryID != e.ID:
				report("journal entry %s lists suggestion %s of entry %s", e.ID, id, sg.EntryID)
				continue
			case listed[id]:
				report("journal entry %s lists suggestion %s twice", e.ID, id)
				continue
			}
			listed[id] = true
			kept = append(kept, id)
		}
		if fix {
			e.SuggestionIDs = kept
		}
	}
	for _, sg := range s.Suggestions {
		if listed[sg.ID] || suggestions[sg.ID] == nil || entries[sg.EntryID] == nil {
			continue
		}
		report("suggestion %s is missing from journal entry %s", sg.ID, sg.EntryID)
		if fix {
			e := entries[sg.EntryID]
			e.SuggestionIDs = append(e.SuggestionIDs, sg.ID)
		}
	}
}

func (s *State) auditEntities(suggestions map[string]*Suggestion, fix bool, report reporter) {
	used := make(map[string]string)
	origin := func(kind, id string, ref *string, want Classification) {
		if *ref == "" {
			return
		}
		sg := suggestions[*ref]
		var reason string
		switch {
		case sg == nil:
			reason = "references missing suggestion"
		case sg.Status != SuggestionAccepted:
			reason = "references " + string(sg.Status) + " suggestion"
		case sg.Classification != want:
			reason = "references " + string(sg.Classification) + " suggestion"
		case used[*ref] != "":
			reason = "is shared with " + used[*ref]
		}
		if reason != "" {
			report("%s %s origin %s %s", kind, id, *ref, reason)
			if fix {
				*ref = ""
			}
			return
		}
		used[*ref] = kind + " " + id
	}

	goals := make(map[string]bool, len(s.Goals))
	for _, g := range s.Goals {
		goals[g.ID] = true
		if !g.Status.Valid() {
			report("goal %s has unknown status %q", g.ID, g.Status)
			if fix {
				g.Status = GoalActive
			}
		}
		if !g.Horizon.Valid() {
			report("goal %s has unknown horizon %q", g.ID, g.Horizon)
			if fix {
				g.Horizon = HorizonLongTerm
			}
		}
		origin("goal", g.ID, &g.OriginSuggestionID, ClassGoal)
	}
	for _, h := range s.Habits {
		if !h.Status.Valid() {
			report("habit %s has unknown status %q", h.ID, h.Status)
			if fix {
				h.Status = HabitActive
			}
		}
		if !h.Cadence.Valid() {
			report("habit %s has unknown cadence %q", h.ID, h.Cadence)
			if fix {
				h.Cadence = CadenceDaily
			}
		}
		if h.LinkedGoalID != "" && !goals[h.LinkedGoalID] {
			report("habit %s links missing goal %s", h.ID, h.LinkedGoalID)
			if fix {
				h.LinkedGoalID = ""
			}
		}
		origin("habit", h.ID, &h.OriginSuggestionID, ClassHabit)
	}
	for _, q := range s.QuickActions {
		if !q.Stage.Valid() {
			report("quick action %s has unknown stage %q", q.ID, q.Stage)
			if fix {
				q.Stage = StageInbox
			}
		}
		origin("quick action", q.ID, &q.OriginSuggestionID, ClassQuickAction)
	}
}

func (s *State) auditSessions(fix bool, report reporter) {
	for _, w := range s.WorkSessions {
		var missing bool
		switch w.LinkedKind {
		case LinkNone:
			missing = w.LinkedID != ""
		case LinkGoal:
			missing = !s.hasGoal(w.LinkedID)
		case LinkHabit:
			missing = !s.hasHabit(w.LinkedID)
		default:
			missing = true
		}
		if missing {
			target := CoalesceStr(string(w.LinkedKind), "entity")
			if w.LinkedID != "" {
				target += " " + w.LinkedID
			}
			report("work session %s links missing %s", w.ID, target)
			if fix {
				w.LinkedID = ""
				w.LinkedKind = LinkNone
			}
		}
	}
}
