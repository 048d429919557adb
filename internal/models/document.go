package models

import (
	"bytes"
	"fmt"
	"sort"

	json "github.com/goccy/go-json"
)

// Document is the whole persisted configuration keyed by user id. Records
// stay as raw JSON until one of them is read or replaced, so entries that
// are not touched are written back exactly as they were loaded.
type Document map[string]json.RawMessage

func NewDocument() Document {
	return make(Document)
}

// DecodeDocument parses a stored document. An empty payload is an empty document.
func DecodeDocument(data []byte) (Document, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return NewDocument(), nil
	}
	doc := NewDocument()
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	if doc == nil {
		doc = NewDocument()
	}
	return doc, nil
}

// ParseDocument parses a document supplied by a client. Empty and null
// payloads are rejected since they would wipe every record.
func ParseDocument(data []byte) (Document, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil, errNotObject
	}
	return DecodeDocument(trimmed)
}

// Encode renders the document with two-space indentation.
func (d Document) Encode() ([]byte, error) {
	if d == nil {
		d = NewDocument()
	}
	return json.MarshalIndent(d, "", "  ")
}

// Record extracts and decodes the record of userID.
func (d Document) Record(userID string) (UserRecord, bool, error) {
	raw, ok := d[userID]
	if !ok {
		return UserRecord{}, false, nil
	}
	rec, err := DecodeRecord(raw)
	if err != nil {
		return UserRecord{}, true, fmt.Errorf("decode record %q: %w", userID, err)
	}
	return rec, true, nil
}

// RecordOrEmpty returns the record of userID, or an empty one for a new user.
func (d Document) RecordOrEmpty(userID string) (UserRecord, error) {
	rec, ok, err := d.Record(userID)
	if err != nil {
		return UserRecord{}, err
	}
	if !ok {
		return NewEmptyRecord(), nil
	}
	return rec, nil
}

// SetRecord replaces the entry of userID only.
func (d Document) SetRecord(userID string, rec UserRecord) error {
	rec = rec.Clone()
	rec.Normalize()
	raw, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("encode record %q: %w", userID, err)
	}
	d[userID] = raw
	return nil
}

func (d Document) Clone() Document {
	out := make(Document, len(d))
	for k, v := range d {
		out[k] = append(json.RawMessage(nil), v...)
	}
	return out
}

func (d Document) Users() []string {
	users := make([]string, 0, len(d))
	for k := range d {
		users = append(users, k)
	}
	sort.Strings(users)
	return users
}
