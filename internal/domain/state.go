package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// State is the whole persisted graph. It is passed explicitly between the
// store and the services; nothing in the core holds it globally.
type State struct {
	Reflections    Reflections
	Goals          []*Goal
	Habits         []*Habit
	QuickActions   []*QuickAction
	JournalEntries []*JournalEntry
	Suggestions    []*Suggestion
	WorkSessions   []*WorkSession

	newID func() string
}

// NewState returns an empty, valid state.
func NewState() *State {
	return &State{}
}

// SetIDGenerator replaces the UUID generator. Tests use it for stable ids.
func (s *State) SetIDGenerator(gen func() string) {
	s.newID = gen
}

func (s *State) nextID() string {
	if s.newID != nil {
		return s.newID()
	}
	return uuid.New().String()
}

// Clone returns a deep copy that shares no mutable memory with s.
func (s *State) Clone() *State {
	c := &State{
		Reflections: s.Reflections,
		newID:       s.newID,
	}
	if s.Reflections.UpdatedAt != nil {
		t := *s.Reflections.UpdatedAt
		c.Reflections.UpdatedAt = &t
	}
	for _, g := range s.Goals {
		cp := *g
		c.Goals = append(c.Goals, &cp)
	}
	for _, h := range s.Habits {
		cp := *h
		c.Habits = append(c.Habits, &cp)
	}
	for _, q := range s.QuickActions {
		cp := *q
		c.QuickActions = append(c.QuickActions, &cp)
	}
	for _, e := range s.JournalEntries {
		c.JournalEntries = append(c.JournalEntries, e.clone())
	}
	for _, sg := range s.Suggestions {
		c.Suggestions = append(c.Suggestions, sg.clone())
	}
	for _, w := range s.WorkSessions {
		cp := *w
		c.WorkSessions = append(c.WorkSessions, &cp)
	}
	return c
}

// --- lookups ---

func (s *State) Goal(id string) (*Goal, error) {
	for _, g := range s.Goals {
		if g.ID == id {
			return g, nil
		}
	}
	return nil, notFound("goal", id)
}

func (s *State) Habit(id string) (*Habit, error) {
	for _, h := range s.Habits {
		if h.ID == id {
			return h, nil
		}
	}
	return nil, notFound("habit", id)
}

func (s *State) QuickAction(id string) (*QuickAction, error) {
	for _, q := range s.QuickActions {
		if q.ID == id {
			return q, nil
		}
	}
	return nil, notFound("quick action", id)
}

func (s *State) JournalEntry(id string) (*JournalEntry, error) {
	for _, e := range s.JournalEntries {
		if e.ID == id {
			return e, nil
		}
	}
	return nil, notFound("journal entry", id)
}

func (s *State) Suggestion(id string) (*Suggestion, error) {
	for _, sg := range s.Suggestions {
		if sg.ID == id {
			return sg, nil
		}
	}
	return nil, notFound("suggestion", id)
}

// SuggestionsForEntry returns the entry's suggestions in extraction order.
func (s *State) SuggestionsForEntry(entryID string) []*Suggestion {
	e, err := s.JournalEntry(entryID)
	if err != nil {
		return nil
	}
	out := make([]*Suggestion, 0, len(e.SuggestionIDs))
	for _, id := range e.SuggestionIDs {
		if sg, err := s.Suggestion(id); err == nil {
			out = append(out, sg)
		}
	}
	return out
}

// EntityForOrigin returns the kind and id of the entity promoted from the
// given suggestion, if any.
func (s *State) EntityForOrigin(suggestionID string) (Classification, string, bool) {
	for _, g := range s.Goals {
		if g.OriginSuggestionID == suggestionID {
			return ClassGoal, g.ID, true
		}
	}
	for _, h := range s.Habits {
		if h.OriginSuggestionID == suggestionID {
			return ClassHabit, h.ID, true
		}
	}
	for _, q := range s.QuickActions {
		if q.OriginSuggestionID == suggestionID {
			return ClassQuickAction, q.ID, true
		}
	}
	return "", "", false
}

// --- mutations ---

// AddGoal assigns an id (when empty) and appends the goal after checking
// its origin reference.
func (s *State) AddGoal(g *Goal) error {
	g.Category = CoalesceStr(strings.TrimSpace(g.Category), DefaultCategory)
	if err := s.claimID("goal", &g.ID, s.hasGoal); err != nil {
		return err
	}
	if err := s.checkOrigin("goal", g.OriginSuggestionID, ClassGoal); err != nil {
		return err
	}
	s.Goals = append(s.Goals, g)
	return nil
}

func (s *State) AddHabit(h *Habit) error {
	if h.LinkedGoalID != "" && !s.hasGoal(h.LinkedGoalID) {
		return &IntegrityError{Problems: []string{fmt.Sprintf("habit links missing goal %s", h.LinkedGoalID)}}
	}
	if err := s.claimID("habit", &h.ID, s.hasHabit); err != nil {
		return err
	}
	if err := s.checkOrigin("habit", h.OriginSuggestionID, ClassHabit); err != nil {
		return err
	}
	s.Habits = append(s.Habits, h)
	return nil
}

func (s *State) AddQuickAction(q *QuickAction) error {
	if err := s.claimID("quick action", &q.ID, s.hasQuickAction); err != nil {
		return err
	}
	if err := s.checkOrigin("quick action", q.OriginSuggestionID, ClassQuickAction); err != nil {
		return err
	}
	s.QuickActions = append(s.QuickActions, q)
	return nil
}

// AddJournalEntry stores e. Empty tag and suggestion lists are stored as nil.
func (s *State) AddJournalEntry(e *JournalEntry) error {
	if len(e.Tags) == 0 {
		e.Tags = nil
	}
	if len(e.SuggestionIDs) == 0 {
		e.SuggestionIDs = nil
	}
	if err := s.claimID("journal entry", &e.ID, s.hasEntry); err != nil {
		return err
	}
	s.JournalEntries = append(s.JournalEntries, e)
	return nil
}

// AddSuggestions records pending suggestions against an existing entry, in
// the given order, and returns the stored copies.
func (s *State) AddSuggestions(entryID string, candidates []Suggestion, now time.Time) ([]*Suggestion, error) {
	entry, err := s.JournalEntry(entryID)
	if err != nil {
		return nil, err
	}
	added := make([]*Suggestion, 0, len(candidates))
	for i := range candidates {
		sg := candidates[i].clone()
		if sg.Status == "" {
			sg.Status = SuggestionPending
		}
		if sg.Status != SuggestionPending {
			return nil, invalid("suggestion", "status", "new suggestions must be pending")
		}
		if !sg.Classification.Valid() {
			return nil, invalid("suggestion", "classification", "unknown value "+string(sg.Classification))
		}
		if err := s.claimID("suggestion", &sg.ID, s.hasSuggestion); err != nil {
			return nil, err
		}
		sg.EntryID = entry.ID
		if sg.CreatedAt.IsZero() {
			sg.CreatedAt = now
		}
		s.Suggestions = append(s.Suggestions, sg)
		entry.SuggestionIDs = append(entry.SuggestionIDs, sg.ID)
		added = append(added, sg)
	}
	return added, nil
}

// AppendWorkSession validates and appends a closed session.
func (s *State) AppendWorkSession(w *WorkSession) error {
	if err := w.Validate(); err != nil {
		return err
	}
	switch w.LinkedKind {
	case LinkGoal:
		if !s.hasGoal(w.LinkedID) {
			return notFound("goal", w.LinkedID)
		}
	case LinkHabit:
		if !s.hasHabit(w.LinkedID) {
			return notFound("habit", w.LinkedID)
		}
	}
	if err := s.claimID("work session", &w.ID, s.hasSession); err != nil {
		return err
	}
	s.WorkSessions = append(s.WorkSessions, w)
	return nil
}

// SetReflections replaces the reflections block.
func (s *State) SetReflections(r Reflections, now time.Time) {
	r.UpdatedAt = &now
	s.Reflections = r
}

func (s *State) claimID(kind string, id *string, exists func(string) bool) error {
	if *id == "" {
		*id = s.nextID()
	}
	if exists(*id) {
		return &IntegrityError{Problems: []string{fmt.Sprintf("duplicate %s id %s", kind, *id)}}
	}
	return nil
}

func (s *State) checkOrigin(kind, origin string, want Classification) error {
	if origin == "" {
		return nil
	}
	sg, err := s.Suggestion(origin)
	if err != nil {
		return &IntegrityError{Problems: []string{fmt.Sprintf("%s origin references missing suggestion %s", kind, origin)}}
	}
	if sg.Status != SuggestionAccepted {
		return &IntegrityError{Problems: []string{fmt.Sprintf("%s origin suggestion %s is %s, not accepted", kind, origin, sg.Status)}}
	}
	if sg.Classification != want {
		return &IntegrityError{Problems: []string{fmt.Sprintf("%s origin suggestion %s is classified %s", kind, origin, sg.Classification)}}
	}
	if _, id, ok := s.EntityForOrigin(origin); ok {
		return &IntegrityError{Problems: []string{fmt.Sprintf("suggestion %s already promoted to %s", origin, id)}}
	}
	return nil
}

func (s *State) hasGoal(id string) bool {
	_, err := s.Goal(id)
	return err == nil
}

func (s *State) hasHabit(id string) bool {
	_, err := s.Habit(id)
	return err == nil
}

func (s *State) hasQuickAction(id string) bool {
	_, err := s.QuickAction(id)
	return err == nil
}

func (s *State) hasEntry(id string) bool {
	_, err := s.JournalEntry(id)
	return err == nil
}

func (s *State) hasSuggestion(id string) bool {
	_, err := s.Suggestion(id)
	return err == nil
}

func (s *State) hasSession(id string) bool {
	for _, w := range s.WorkSessions {
		if w.ID == id {
			return true
		}
	}
	return false
}
