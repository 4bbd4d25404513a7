package storage

import (
	"encoding/json"
	"fmt"

	"github.com/alexanderramin/actionmenu/internal/domain"
)

// CurrentSchemaVersion is the document version this build writes.
const CurrentSchemaVersion = 2

// legacyVersion is assigned to documents without a schemaVersion key: the
// prototype's state file.
const legacyVersion = 1

// migration upgrades a raw document from version N to N+1. Migrations are
// pure and append-only: migrations[i] turns version i+1 into version i+2.
type migration func(raw map[string]any) (map[string]any, error)

var migrations = []migration{
	migrateLegacyToV2,
}

// schemaVersion reads the declared version, treating a missing key as the
// legacy prototype format.
func schemaVersion(raw map[string]any) (int, error) {
	v, ok := raw["schemaVersion"]
	if !ok {
		return legacyVersion, nil
	}
	n, ok := v.(float64)
	if !ok || n != float64(int(n)) {
		return 0, fmt.Errorf("schemaVersion %v is not an integer", v)
	}
	return int(n), nil
}

// upgrade runs every migration between the declared version and
// CurrentSchemaVersion. Versions outside [1, CurrentSchemaVersion] fail
// closed.
func upgrade(raw map[string]any) (map[string]any, int, error) {
	from, err := schemaVersion(raw)
	if err != nil {
		return nil, 0, err
	}
	if from < legacyVersion || from > CurrentSchemaVersion {
		return nil, from, &domain.SchemaError{Version: from, Supported: CurrentSchemaVersion}
	}
	for v := from; v < CurrentSchemaVersion; v++ {
		next, err := migrations[v-1](raw)
		if err != nil {
			return nil, from, fmt.Errorf("migrating schema v%d to v%d: %w", v, v+1, err)
		}
		next["schemaVersion"] = float64(v + 1)
		raw = next
	}
	return raw, from, nil
}

// decodeDocument parses raw JSON into the current document shape, migrating
// older versions first.
func decodeDocument(data []byte) (*document, int, error) {
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, 0, fmt.Errorf("parsing document: %w", err)
	}
	if raw == nil {
		return nil, 0, fmt.Errorf("parsing document: not a JSON object")
	}
	upgraded, from, err := upgrade(raw)
	if err != nil {
		return nil, from, err
	}
	if from == CurrentSchemaVersion {
		var doc document
		if err := json.Unmarshal(data, &doc); err != nil {
			return nil, from, fmt.Errorf("reading v%d document: %w", from, err)
		}
		return &doc, from, nil
	}
	// Round-trip the migrated map through JSON so the typed decode applies
	// the same rules as for a native document.
	buf, err := json.Marshal(upgraded)
	if err != nil {
		return nil, from, fmt.Errorf("re-encoding migrated document: %w", err)
	}
	var doc document
	if err := json.Unmarshal(buf, &doc); err != nil {
		return nil, from, fmt.Errorf("reading migrated document: %w", err)
	}
	return &doc, from, nil
}
