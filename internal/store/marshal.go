package store

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/roach88/stringvault/internal/analysis"
)

// marshalProperties converts a property record to JSON TEXT for storage.
// HTML escaping is disabled so characters like '<' stay readable in the column.
func marshalProperties(p analysis.Properties) (string, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(p); err != nil {
		return "", fmt.Errorf("marshal properties: %w", err)
	}
	// Encoder adds a trailing newline, remove it
	return strings.TrimSpace(buf.String()), nil
}

// unmarshalProperties parses JSON TEXT to a property record.
// A nil frequency map is replaced by an empty one.
func unmarshalProperties(data string) (analysis.Properties, error) {
	var p analysis.Properties
	if err := json.Unmarshal([]byte(data), &p); err != nil {
		return analysis.Properties{}, fmt.Errorf("unmarshal properties: %w", err)
	}
	if p.CharacterFrequency == nil {
		p.CharacterFrequency = map[string]int{}
	}
	return p, nil
}
