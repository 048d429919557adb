package models

import (
	"testing"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeDocument_Empty(t *testing.T) {
	for _, in := range []string{"", "  \n", "{}"} {
		doc, err := DecodeDocument([]byte(in))
		require.NoError(t, err)
		assert.NotNil(t, doc)
		assert.Empty(t, doc)
	}
}

func TestDecodeDocument_Invalid(t *testing.T) {
	_, err := DecodeDocument([]byte(`{"a":`))
	assert.Error(t, err)
}

func TestParseDocument_RejectsEmptyAndNull(t *testing.T) {
	for _, in := range []string{"", "  \n", "null", "\tnull "} {
		_, err := ParseDocument([]byte(in))
		assert.Error(t, err, "%q", in)
	}

	doc, err := ParseDocument([]byte(` {"u1":{}} `))
	require.NoError(t, err)
	assert.Equal(t, []string{"u1"}, doc.Users())
}

func TestDocument_SetRecordLeavesOthersUntouched(t *testing.T) {
	other := `{"global_keywords":{"z":{"discount":"7"}},"custom_field":true}`
	doc, err := DecodeDocument([]byte(`{"other":` + other + `}`))
	require.NoError(t, err)

	rec := NewEmptyRecord()
	rec.NegativeKeywords = []string{"junk"}
	require.NoError(t, doc.SetRecord("me", rec))

	out, err := doc.Encode()
	require.NoError(t, err)

	var raw map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(out, &raw))
	assert.JSONEq(t, other, string(raw["other"]))

	mine, ok, err := doc.Record("me")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, []string{"junk"}, mine.NegativeKeywords)
}

func TestDocument_RecordOrEmpty(t *testing.T) {
	doc := NewDocument()

	rec, err := doc.RecordOrEmpty("nobody")
	require.NoError(t, err)
	assert.True(t, rec.Equal(NewEmptyRecord()))

	_, ok, err := doc.Record("nobody")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestDocument_RecordDecodeError(t *testing.T) {
	doc := Document{"broken": json.RawMessage(`{"global_keywords":[1]}`)}

	_, ok, err := doc.Record("broken")
	assert.True(t, ok)
	assert.Error(t, err)
}

func TestDocument_EncodeIndented(t *testing.T) {
	doc := NewDocument()
	require.NoError(t, doc.SetRecord("u", NewEmptyRecord()))

	out, err := doc.Encode()
	require.NoError(t, err)
	assert.Contains(t, string(out), "\n  \"u\": {")
}

func TestDocument_CloneAndUsers(t *testing.T) {
	doc := Document{"b": json.RawMessage(`{}`), "a": json.RawMessage(`{}`)}
	cp := doc.Clone()
	cp["c"] = json.RawMessage(`{}`)

	assert.Equal(t, []string{"a", "b"}, doc.Users())
	assert.Equal(t, []string{"a", "b", "c"}, cp.Users())
}
