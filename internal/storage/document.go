package storage

import (
	"math"
	"time"

	"github.com/alexanderramin/actionmenu/internal/domain"
)

// document is the on-disk shape of the current schema version. Field names
// are the stable wire contract; renaming one needs a migration.
type document struct {
	SchemaVersion  int                 `json:"schemaVersion"`
	SavedAt        time.Time           `json:"savedAt"`
	Reflections    reflectionsRecord   `json:"reflections"`
	Goals          []goalRecord        `json:"goals"`
	Habits         []habitRecord       `json:"habits"`
	QuickActions   []quickActionRecord `json:"quickActions"`
	JournalEntries []journalRecord     `json:"journalEntries"`
	Suggestions    []suggestionRecord  `json:"suggestions"`
	WorkSessions   []sessionRecord     `json:"workSessions"`
}

type reflectionsRecord struct {
	Values     string     `json:"values,omitempty"`
	Milestones string     `json:"milestones,omitempty"`
	Energy     string     `json:"energy,omitempty"`
	UpdatedAt  *time.Time `json:"updatedAt,omitempty"`
}

type goalRecord struct {
	ID                 string    `json:"id"`
	Title              string    `json:"title"`
	Category           string    `json:"category"`
	Specific           string    `json:"specific,omitempty"`
	Measurable         string    `json:"measurable,omitempty"`
	Achievable         string    `json:"achievable,omitempty"`
	Relevant           string    `json:"relevant,omitempty"`
	TimeBound          string    `json:"timeBound,omitempty"`
	Horizon            string    `json:"horizon"`
	Status             string    `json:"status"`
	OriginSuggestionID string    `json:"originSuggestionId,omitempty"`
	CreatedAt          time.Time `json:"createdAt"`
	UpdatedAt          time.Time `json:"updatedAt"`
}

type habitRecord struct {
	ID                 string    `json:"id"`
	Title              string    `json:"title"`
	Cadence            string    `json:"cadence"`
	MenuSlot           string    `json:"menuSlot,omitempty"`
	Anchor             string    `json:"anchor,omitempty"`
	SuccessMetric      string    `json:"successMetric,omitempty"`
	LinkedGoalID       string    `json:"linkedGoalId,omitempty"`
	Status             string    `json:"status"`
	OriginSuggestionID string    `json:"originSuggestionId,omitempty"`
	CreatedAt          time.Time `json:"createdAt"`
	UpdatedAt          time.Time `json:"updatedAt"`
}

type quickActionRecord struct {
	ID                 string    `json:"id"`
	Title              string    `json:"title"`
	Stage              string    `json:"stage"`
	OriginSuggestionID string    `json:"originSuggestionId,omitempty"`
	CreatedAt          time.Time `json:"createdAt"`
	UpdatedAt          time.Time `json:"updatedAt"`
}

type journalRecord struct {
	ID            string    `json:"id"`
	Body          string    `json:"body"`
	Mood          string    `json:"mood,omitempty"`
	Tags          []string  `json:"tags,omitempty"`
	SuggestionIDs []string  `json:"suggestionIds"`
	CreatedAt     time.Time `json:"createdAt"`
}

type proposedRecord struct {
	Title     string `json:"title"`
	Category  string `json:"category"`
	DueHint   string `json:"dueHint,omitempty"`
	Frequency string `json:"frequency,omitempty"`
}

type suggestionRecord struct {
	ID             string         `json:"id"`
	EntryID        string         `json:"entryId"`
	Span           string         `json:"span"`
	Offset         int            `json:"offset"`
	Classification string         `json:"classification"`
	Confidence     float64        `json:"confidence"`
	Proposed       proposedRecord `json:"proposed"`
	Status         string         `json:"status"`
	CreatedAt      time.Time      `json:"createdAt"`
	ResolvedAt     *time.Time     `json:"resolvedAt,omitempty"`
}

type sessionRecord struct {
	ID              string    `json:"id"`
	LinkedID        string    `json:"linkedId,omitempty"`
	LinkedKind      string    `json:"linkedKind,omitempty"`
	Activity        string    `json:"activity,omitempty"`
	Category        string    `json:"category,omitempty"`
	StartedAt       time.Time `json:"startedAt"`
	DurationSeconds float64   `json:"durationSeconds"`
	FlowBefore      int       `json:"flowBefore,omitempty"`
	FlowAfter       int       `json:"flowAfter,omitempty"`
	EmotionBefore   string    `json:"emotionBefore,omitempty"`
	EmotionAfter    string    `json:"emotionAfter,omitempty"`
	Note            string    `json:"note,omitempty"`
}

func utcPtr(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	u := t.UTC()
	return &u
}

func newDocument(s *domain.State, savedAt time.Time) *document {
	doc := &document{
		SchemaVersion: CurrentSchemaVersion,
		SavedAt:       savedAt.UTC(),
		Reflections: reflectionsRecord{
			Values:     s.Reflections.Values,
			Milestones: s.Reflections.Milestones,
			Energy:     s.Reflections.Energy,
			UpdatedAt:  utcPtr(s.Reflections.UpdatedAt),
		},
		Goals:          make([]goalRecord, 0, len(s.Goals)),
		Habits:         make([]habitRecord, 0, len(s.Habits)),
		QuickActions:   make([]quickActionRecord, 0, len(s.QuickActions)),
		JournalEntries: make([]journalRecord, 0, len(s.JournalEntries)),
		Suggestions:    make([]suggestionRecord, 0, len(s.Suggestions)),
		WorkSessions:   make([]sessionRecord, 0, len(s.WorkSessions)),
	}
	for _, g := range s.Goals {
		doc.Goals = append(doc.Goals, goalRecord{
			ID:                 g.ID,
			Title:              g.Title,
			Category:           g.Category,
			Specific:           g.Specific,
			Measurable:         g.Measurable,
			Achievable:         g.Achievable,
			Relevant:           g.Relevant,
			TimeBound:          g.TimeBound,
			Horizon:            string(g.Horizon),
			Status:             string(g.Status),
			OriginSuggestionID: g.OriginSuggestionID,
			CreatedAt:          g.CreatedAt.UTC(),
			UpdatedAt:          g.UpdatedAt.UTC(),
		})
	}
	for _, h := range s.Habits {
		doc.Habits = append(doc.Habits, habitRecord{
			ID:                 h.ID,
			Title:              h.Title,
			Cadence:            string(h.Cadence),
			MenuSlot:           h.MenuSlot,
			Anchor:             h.Anchor,
			SuccessMetric:      h.SuccessMetric,
			LinkedGoalID:       h.LinkedGoalID,
			Status:             string(h.Status),
			OriginSuggestionID: h.OriginSuggestionID,
			CreatedAt:          h.CreatedAt.UTC(),
			UpdatedAt:          h.UpdatedAt.UTC(),
		})
	}
	for _, q := range s.QuickActions {
		doc.QuickActions = append(doc.QuickActions, quickActionRecord{
			ID:                 q.ID,
			Title:              q.Title,
			Stage:              string(q.Stage),
			OriginSuggestionID: q.OriginSuggestionID,
			CreatedAt:          q.CreatedAt.UTC(),
			UpdatedAt:          q.UpdatedAt.UTC(),
		})
	}
	for _, e := range s.JournalEntries {
		ids := e.SuggestionIDs
		if ids == nil {
			ids = []string{}
		}
		doc.JournalEntries = append(doc.JournalEntries, journalRecord{
			ID:            e.ID,
			Body:          e.Body,
			Mood:          e.Mood,
			Tags:          e.Tags,
			SuggestionIDs: ids,
			CreatedAt:     e.CreatedAt.UTC(),
		})
	}
	for _, sg := range s.Suggestions {
		doc.Suggestions = append(doc.Suggestions, suggestionRecord{
			ID:             sg.ID,
			EntryID:        sg.EntryID,
			Span:           sg.Span,
			Offset:         sg.Offset,
			Classification: string(sg.Classification),
			Confidence:     sg.Confidence,
			Proposed: proposedRecord{
				Title:     sg.Proposed.Title,
				Category:  sg.Proposed.Category,
				DueHint:   sg.Proposed.DueHint,
				Frequency: string(sg.Proposed.Frequency),
			},
			Status:     string(sg.Status),
			CreatedAt:  sg.CreatedAt.UTC(),
			ResolvedAt: utcPtr(sg.ResolvedAt),
		})
	}
	for _, w := range s.WorkSessions {
		doc.WorkSessions = append(doc.WorkSessions, sessionRecord{
			ID:              w.ID,
			LinkedID:        w.LinkedID,
			LinkedKind:      string(w.LinkedKind),
			Activity:        w.Activity,
			Category:        w.Category,
			StartedAt:       w.StartedAt.UTC(),
			DurationSeconds: w.Duration.Seconds(),
			FlowBefore:      w.FlowBefore,
			FlowAfter:       w.FlowAfter,
			EmotionBefore:   w.EmotionBefore,
			EmotionAfter:    w.EmotionAfter,
			Note:            w.Note,
		})
	}
	return doc
}

// state converts the document without validating it; enum values are
// copied verbatim so the integrity audit can see and report them.
func (d *document) state() *domain.State {
	s := domain.NewState()
	s.Reflections = domain.Reflections{
		Values:     d.Reflections.Values,
		Milestones: d.Reflections.Milestones,
		Energy:     d.Reflections.Energy,
		UpdatedAt:  d.Reflections.UpdatedAt,
	}
	for _, g := range d.Goals {
		s.Goals = append(s.Goals, &domain.Goal{
			ID:                 g.ID,
			Title:              g.Title,
			Category:           domain.CoalesceStr(g.Category, domain.DefaultCategory),
			Specific:           g.Specific,
			Measurable:         g.Measurable,
			Achievable:         g.Achievable,
			Relevant:           g.Relevant,
			TimeBound:          g.TimeBound,
			Horizon:            domain.Horizon(g.Horizon),
			Status:             domain.GoalStatus(g.Status),
			OriginSuggestionID: g.OriginSuggestionID,
			CreatedAt:          g.CreatedAt,
			UpdatedAt:          g.UpdatedAt,
		})
	}
	for _, h := range d.Habits {
		s.Habits = append(s.Habits, &domain.Habit{
			ID:                 h.ID,
			Title:              h.Title,
			Cadence:            domain.Cadence(h.Cadence),
			MenuSlot:           h.MenuSlot,
			Anchor:             h.Anchor,
			SuccessMetric:      h.SuccessMetric,
			LinkedGoalID:       h.LinkedGoalID,
			Status:             domain.HabitStatus(h.Status),
			OriginSuggestionID: h.OriginSuggestionID,
			CreatedAt:          h.CreatedAt,
			UpdatedAt:          h.UpdatedAt,
		})
	}
	for _, q := range d.QuickActions {
		s.QuickActions = append(s.QuickActions, &domain.QuickAction{
			ID:                 q.ID,
			Title:              q.Title,
			Stage:              domain.Stage(q.Stage),
			OriginSuggestionID: q.OriginSuggestionID,
			CreatedAt:          q.CreatedAt,
			UpdatedAt:          q.UpdatedAt,
		})
	}
	for _, e := range d.JournalEntries {
		entry := &domain.JournalEntry{
			ID:        e.ID,
			Body:      e.Body,
			Mood:      e.Mood,
			CreatedAt: e.CreatedAt,
		}
		if len(e.Tags) > 0 {
			entry.Tags = e.Tags
		}
		if len(e.SuggestionIDs) > 0 {
			entry.SuggestionIDs = e.SuggestionIDs
		}
		s.JournalEntries = append(s.JournalEntries, entry)
	}
	for _, sg := range d.Suggestions {
		s.Suggestions = append(s.Suggestions, &domain.Suggestion{
			ID:             sg.ID,
			EntryID:        sg.EntryID,
			Span:           sg.Span,
			Offset:         sg.Offset,
			Classification: domain.Classification(sg.Classification),
			Confidence:     sg.Confidence,
			Proposed: domain.ProposedFields{
				Title:     sg.Proposed.Title,
				Category:  sg.Proposed.Category,
				DueHint:   sg.Proposed.DueHint,
				Frequency: domain.Cadence(sg.Proposed.Frequency),
			},
			Status:     domain.SuggestionStatus(sg.Status),
			CreatedAt:  sg.CreatedAt,
			ResolvedAt: sg.ResolvedAt,
		})
	}
	for _, w := range d.WorkSessions {
		s.WorkSessions = append(s.WorkSessions, &domain.WorkSession{
			ID:            w.ID,
			LinkedID:      w.LinkedID,
			LinkedKind:    domain.LinkKind(w.LinkedKind),
			Activity:      w.Activity,
			Category:      w.Category,
			StartedAt:     w.StartedAt,
			Duration:      time.Duration(math.Round(w.DurationSeconds * float64(time.Second))),
			FlowBefore:    w.FlowBefore,
			FlowAfter:     w.FlowAfter,
			EmotionBefore: w.EmotionBefore,
			EmotionAfter:  w.EmotionAfter,
			Note:          w.Note,
		})
	}
	return s
}
