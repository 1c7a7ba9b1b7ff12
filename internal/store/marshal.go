package store

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/roach88/mediatree/internal/media"
)

// marshalRecord converts a Record to JSON TEXT for the data column.
// HTML escaping is disabled so titles such as "Tom & Jerry" are stored
// as written.
func marshalRecord(rec media.Record) (string, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(rec); err != nil {
		return "", fmt.Errorf("marshal record %s: %w", rec.ID, err)
	}
	// Encoder appends a newline
	return strings.TrimSuffix(buf.String(), "\n"), nil
}

// unmarshalRecord parses the data column back into a Record.
func unmarshalRecord(data string) (media.Record, error) {
	var rec media.Record
	dec := json.NewDecoder(strings.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&rec); err != nil {
		return media.Record{}, fmt.Errorf("unmarshal record: %w", err)
	}
	return rec, nil
}
