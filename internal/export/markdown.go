// Package export writes journal entries out as Markdown notes with YAML
// frontmatter.
package export

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/alexanderramin/actionmenu/internal/app"
	"gopkg.in/yaml.v3"
)

const separator = "---\n"

type noteMeta struct {
	ID          string           `yaml:"id"`
	Created     time.Time        `yaml:"created"`
	Mood        string           `yaml:"mood,omitempty"`
	Tags        []string         `yaml:"tags,omitempty"`
	Suggestions []noteSuggestion `yaml:"suggestions,omitempty"`
}

type noteSuggestion struct {
	ID             string  `yaml:"id"`
	Classification string  `yaml:"classification"`
	Title          string  `yaml:"title"`
	Category       string  `yaml:"category"`
	Status         string  `yaml:"status"`
	Confidence     float64 `yaml:"confidence"`
}

// RenderFrontmatter prefixes body with meta encoded as a YAML block.
func RenderFrontmatter(meta any, body string) (string, error) {
	raw, err := yaml.Marshal(meta)
	if err != nil {
		return "", fmt.Errorf("marshal frontmatter: %w", err)
	}
	var buf bytes.Buffer
	buf.WriteString(separator)
	buf.Write(raw)
	buf.WriteString(separator)
	if !strings.HasPrefix(body, "\n") {
		buf.WriteString("\n")
	}
	buf.WriteString(body)
	if !strings.HasSuffix(body, "\n") {
		buf.WriteString("\n")
	}
	return buf.String(), nil
}

// RenderEntryNote renders one entry with its suggestions in extraction order.
func RenderEntryNote(v *app.JournalEntryView) (string, error) {
	e := v.Entry
	meta := noteMeta{
		ID:      e.ID,
		Created: e.CreatedAt.UTC(),
		Mood:    e.Mood,
		Tags:    e.Tags,
	}
	for _, s := range v.Suggestions {
		meta.Suggestions = append(meta.Suggestions, noteSuggestion{
			ID:             s.ID,
			Classification: string(s.Classification),
			Title:          s.Proposed.Title,
			Category:       s.Proposed.Category,
			Status:         string(s.Status),
			Confidence:     s.Confidence,
		})
	}
	return RenderFrontmatter(meta, e.Body)
}

// NoteFileName is stable for an entry: creation time then a short id.
func NoteFileName(v *app.JournalEntryView) string {
	id := v.Entry.ID
	if len(id) > 8 {
		id = id[:8]
	}
	return v.Entry.CreatedAt.UTC().Format("2006-01-02-150405") + "-" + id + ".md"
}

// WriteNotes writes one note per entry into dir, replacing notes of the same
// name, and returns the written paths.
func WriteNotes(dir string, views []*app.JournalEntryView) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating export directory: %w", err)
	}
	paths := make([]string, 0, len(views))
	for _, v := range views {
		note, err := RenderEntryNote(v)
		if err != nil {
			return paths, fmt.Errorf("rendering entry %s: %w", v.Entry.ID, err)
		}
		path := filepath.Join(dir, NoteFileName(v))
		if err := os.WriteFile(path, []byte(note), 0o644); err != nil {
			return paths, fmt.Errorf("writing %s: %w", path, err)
		}
		paths = append(paths, path)
	}
	return paths, nil
}
