package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/alexanderramin/actionmenu/internal/domain"
)

// resolvePrefix maps a full id or a unique id prefix onto an id from ids.
func resolvePrefix(kind, ref string, ids []string) (string, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return "", &domain.ValidationError{Entity: kind, Field: "id", Reason: "must not be empty"}
	}
	var matches []string
	for _, id := range ids {
		if id == ref {
			return id, nil
		}
		if strings.HasPrefix(id, ref) {
			matches = append(matches, id)
		}
	}
	switch len(matches) {
	case 0:
		return "", fmt.Errorf("%s %q: %w", kind, ref, domain.ErrNotFound)
	case 1:
		return matches[0], nil
	default:
		return "", fmt.Errorf("%s id %q is ambiguous (%d matches)", kind, ref, len(matches))
	}
}

func (a *App) resolve(ctx context.Context, kind, ref string) (string, error) {
	st, err := a.State.Snapshot(ctx)
	if err != nil {
		return "", err
	}
	var ids []string
	switch kind {
	case "suggestion":
		for _, s := range st.Suggestions {
			ids = append(ids, s.ID)
		}
	case "journal entry":
		for _, e := range st.JournalEntries {
			ids = append(ids, e.ID)
		}
	case "goal":
		for _, g := range st.Goals {
			ids = append(ids, g.ID)
		}
	case "habit":
		for _, h := range st.Habits {
			ids = append(ids, h.ID)
		}
	case "quick action":
		for _, q := range st.QuickActions {
			ids = append(ids, q.ID)
		}
	default:
		return "", fmt.Errorf("unknown entity kind %q", kind)
	}
	return resolvePrefix(kind, ref, ids)
}
