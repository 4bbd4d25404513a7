package extraction

import "github.com/alexanderramin/actionmenu/internal/domain"

// Trigger is one phrase pattern in a classification family. Patterns are
// matched case-insensitively. A Lead trigger introduces the actionable text,
// so whatever follows it becomes the suggestion title.
type Trigger struct {
	Name   string
	Class  domain.Classification
	Regex  string
	Weight float64
	Lead   bool
}

const (
	strongWeight = 1.0
	weakWeight   = 0.5
)

// DefaultTriggers is the built-in trigger table.
func DefaultTriggers() []Trigger {
	return []Trigger{
		// Intent markers bias towards goals.
		{Name: "want_to", Class: domain.ClassGoal, Regex: `\bI\s+want\s+to\b`, Weight: strongWeight, Lead: true},
		{Name: "would_like_to", Class: domain.ClassGoal, Regex: `\bI(?:'d|’d|\s+would)\s+(?:like|love)\s+to\b`, Weight: strongWeight, Lead: true},
		{Name: "will", Class: domain.ClassGoal, Regex: `\bI\s+will\b|\bI(?:'ll|’ll)\b`, Weight: strongWeight, Lead: true},
		{Name: "going_to", Class: domain.ClassGoal, Regex: `\bI(?:'m|’m|\s+am)\s+going\s+to\b`, Weight: strongWeight, Lead: true},
		{Name: "plan_to", Class: domain.ClassGoal, Regex: `\bI\s+(?:plan|intend|aim|hope)\s+to\b`, Weight: strongWeight, Lead: true},
		{Name: "my_goal", Class: domain.ClassGoal, Regex: `\bmy\s+goal\s+is(?:\s+to)?\b`, Weight: strongWeight, Lead: true},
		{Name: "goal_label", Class: domain.ClassGoal, Regex: `\bgoal\s*:`, Weight: strongWeight, Lead: true},
		{Name: "should", Class: domain.ClassGoal, Regex: `\bI\s+(?:should|ought\s+to)\b`, Weight: weakWeight, Lead: true},

		// Cadence and routine markers bias towards habits.
		{Name: "every_period", Class: domain.ClassHabit, Regex: `\bevery\s+(?:single\s+)?(?:day|morning|afternoon|evening|night|week|weekday|weekend|monday|tuesday|wednesday|thursday|friday|saturday|sunday)s?\b`, Weight: strongWeight},
		{Name: "each_period", Class: domain.ClassHabit, Regex: `\beach\s+(?:day|morning|afternoon|evening|night|week)\b`, Weight: strongWeight},
		{Name: "cadence_word", Class: domain.ClassHabit, Regex: `\b(?:daily|nightly|weekly)\b`, Weight: strongWeight},
		{Name: "weekdays", Class: domain.ClassHabit, Regex: `\bweekdays\b`, Weight: strongWeight},
		{Name: "before_bed", Class: domain.ClassHabit, Regex: `\bbefore\s+bed\b`, Weight: strongWeight},
		{Name: "habit_label", Class: domain.ClassHabit, Regex: `\bhabit\s*:`, Weight: strongWeight, Lead: true},
		{Name: "routine", Class: domain.ClassHabit, Regex: `\broutine\b|\b(?:a|new|daily)\s+habit\b`, Weight: weakWeight},

		// Task markers bias towards quick actions.
		{Name: "remember_to", Class: domain.ClassQuickAction, Regex: `\b(?:remember|don(?:'|’)t\s+forget|do\s+not\s+forget)\s+to\b`, Weight: weakWeight, Lead: true},
		{Name: "need_to", Class: domain.ClassQuickAction, Regex: `\b(?:I\s+)?(?:need|have|got)\s+to\b`, Weight: weakWeight, Lead: true},
		{Name: "must", Class: domain.ClassQuickAction, Regex: `\b(?:I\s+)?must\b`, Weight: weakWeight, Lead: true},
		{Name: "todo", Class: domain.ClassQuickAction, Regex: `\bto-?do\s*:|\btodo\b`, Weight: weakWeight, Lead: true},
		{Name: "imperative", Class: domain.ClassQuickAction, Regex: `^(?:please\s+)?(?:call|email|text|send|buy|book|schedule|finish|draft|pay|fix|clean|review|submit|order|cancel|renew|return|reply|print|mail|wash|water|pick\s+up|drop\s+off|sign\s+up)\b`, Weight: weakWeight},
	}
}

// CategoryRule maps vocabulary words to a category tag.
type CategoryRule struct {
	Category string
	Keywords []string
}

// DefaultCategories is the built-in category vocabulary, in tie-break order.
func DefaultCategories() []CategoryRule {
	return []CategoryRule{
		{Category: "health", Keywords: []string{
			"run", "running", "marathon", "gym", "workout", "exercise", "meditate", "meditation",
			"sleep", "dentist", "doctor", "walk", "yoga", "stretch", "diet", "health",
			"swim", "bike", "lift", "therapy", "vitamins",
		}},
		{Category: "career", Keywords: []string{
			"work", "job", "boss", "promotion", "career", "resume", "interview", "meeting",
			"project", "client", "report", "deadline", "manager", "team", "portfolio", "linkedin",
		}},
		{Category: "relationships", Keywords: []string{
			"mom", "dad", "mother", "father", "friend", "friends", "family", "partner", "wife",
			"husband", "kids", "sister", "brother", "grandma", "grandpa", "birthday",
		}},
		{Category: "finance", Keywords: []string{
			"budget", "save", "savings", "money", "pay", "bill", "bills", "tax", "taxes",
			"invest", "rent", "bank", "debt", "insurance", "invoice",
		}},
		{Category: "learning", Keywords: []string{
			"read", "books", "learn", "study", "course", "class", "practice", "language",
			"spanish", "french", "german", "lecture", "chapter", "exam",
		}},
		{Category: "home", Keywords: []string{
			"clean", "laundry", "dishes", "garden", "groceries", "kitchen", "house", "repair",
			"vacuum", "trash", "plants", "declutter",
		}},
		{Category: "creativity", Keywords: []string{
			"write", "writing", "draw", "paint", "music", "guitar", "piano", "journal", "blog",
			"novel", "poem", "photography", "sing",
		}},
	}
}

// Signal is a mood or blockage cue recorded as a tag on the journal entry.
type Signal struct {
	Tag   string
	Regex string
}

// DefaultSignals lists the blockage and low-energy cues.
func DefaultSignals() []Signal {
	return []Signal{
		{Tag: "stuck", Regex: `\bstuck\b`},
		{Tag: "blocked", Regex: `\bblock(?:ed|er|ers)\b`},
		{Tag: "anxious", Regex: `\b(?:anxious|anxiety|worried|afraid|fear(?:ful)?|nervous)\b`},
		{Tag: "overwhelmed", Regex: `\boverwhelm(?:ed|ing)?\b`},
		{Tag: "tired", Regex: `\b(?:tired|exhausted|drained)\b`},
		{Tag: "burned_out", Regex: `\b(?:burned|burnt)\s+out\b|\bburnout\b`},
		{Tag: "procrastinating", Regex: `\bprocrastinat\w*`},
	}
}
