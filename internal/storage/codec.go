package storage

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/alexanderramin/actionmenu/internal/domain"
)

// LoadOptions controls how a stored document is accepted.
type LoadOptions struct {
	// Repair fixes integrity problems instead of failing the load. Every
	// action taken is listed in LoadResult.Repairs.
	Repair bool
}

// LoadResult is a decoded, validated state plus what happened on the way.
type LoadResult struct {
	State *domain.State
	// FromVersion is the schema version found in storage (0 when nothing
	// was stored yet).
	FromVersion int
	Migrated    bool
	Repairs     []string
}

// Encode serialises s as a current-version document.
func Encode(s *domain.State, savedAt time.Time) ([]byte, error) {
	data, err := json.MarshalIndent(newDocument(s, savedAt), "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encoding state: %w", err)
	}
	return append(data, '\n'), nil
}

// Decode parses, migrates and validates a stored document. Integrity
// problems fail the call unless opts.Repair is set.
func Decode(data []byte, opts LoadOptions) (*LoadResult, error) {
	doc, from, err := decodeDocument(data)
	if err != nil {
		return nil, err
	}
	res := &LoadResult{
		State:       doc.state(),
		FromVersion: from,
		Migrated:    from != CurrentSchemaVersion,
	}
	if opts.Repair {
		res.Repairs = res.State.Repair()
		return res, nil
	}
	if err := res.State.Validate(); err != nil {
		return nil, err
	}
	return res, nil
}
