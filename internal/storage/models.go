package storage

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"tally/internal/model"
)

// JSON codecs for the embedded documents (thought notes on a session,
// the session snapshot and category stats on a receipt). Null and empty
// are both decoded as absent.

func marshalNotes(notes []model.ThoughtNote) (*string, error) {
	if len(notes) == 0 {
		return nil, nil
	}
	data, err := json.Marshal(notes)
	if err != nil {
		return nil, fmt.Errorf("marshal thought notes: %w", err)
	}
	s := string(data)
	return &s, nil
}

func unmarshalNotes(raw sql.NullString) ([]model.ThoughtNote, error) {
	if !raw.Valid || raw.String == "" {
		return nil, nil
	}
	var notes []model.ThoughtNote
	if err := json.Unmarshal([]byte(raw.String), &notes); err != nil {
		return nil, fmt.Errorf("unmarshal thought notes: %w", err)
	}
	return notes, nil
}

func marshalJSON(v any, what string) (string, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("marshal %s: %w", what, err)
	}
	return string(data), nil
}

func nullToPtr(ns sql.NullString) *string {
	if !ns.Valid || ns.String == "" {
		return nil
	}
	v := ns.String
	return &v
}
