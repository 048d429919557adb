package models

import (
	"bytes"
	"errors"
	"fmt"

	json "github.com/goccy/go-json"
)

var errNotObject = errors.New("expected a JSON object")

type discountValue struct {
	Discount Discount `json:"discount"`
}

func (g GlobalKeywords) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, kw := range g {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(kw.Keyword)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		val, err := json.Marshal(discountValue{Discount: kw.Discount})
		if err != nil {
			return nil, err
		}
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func (g *GlobalKeywords) UnmarshalJSON(data []byte) error {
	if isNull(data) {
		*g = GlobalKeywords{}
		return nil
	}
	keys, values, err := decodeOrderedObject(data)
	if err != nil {
		return fmt.Errorf("global_keywords: %w", err)
	}
	out := make(GlobalKeywords, 0, len(keys))
	for _, k := range keys {
		var v discountValue
		if err := json.Unmarshal(values[k], &v); err != nil {
			return fmt.Errorf("global_keywords[%q]: %w", k, err)
		}
		out = append(out, GlobalKeyword{Keyword: k, Discount: v.Discount})
	}
	*g = out
	return nil
}

func (c ChannelKeywords) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, e := range c {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(e.ChannelID)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		kws := e.Keywords
		if kws == nil {
			kws = []ChannelKeyword{}
		}
		val, err := json.Marshal(kws)
		if err != nil {
			return nil, err
		}
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func (c *ChannelKeywords) UnmarshalJSON(data []byte) error {
	if isNull(data) {
		*c = ChannelKeywords{}
		return nil
	}
	keys, values, err := decodeOrderedObject(data)
	if err != nil {
		return fmt.Errorf("channel_keywords: %w", err)
	}
	out := make(ChannelKeywords, 0, len(keys))
	for _, k := range keys {
		kws := []ChannelKeyword{}
		if !isNull(values[k]) {
			if err := json.Unmarshal(values[k], &kws); err != nil {
				return fmt.Errorf("channel_keywords[%q]: %w", k, err)
			}
		}
		out = append(out, ChannelEntry{ChannelID: k, Keywords: kws})
	}
	*c = out
	return nil
}

// UnmarshalJSON accepts the legacy bare-string form, which stands for a
// channel whose nickname is its id.
func (b *BlacklistedChannel) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var id string
		if err := json.Unmarshal(data, &id); err != nil {
			return err
		}
		*b = BlacklistedChannel{ChannelID: id, Nickname: id}
		return nil
	}
	type plain BlacklistedChannel
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	*b = BlacklistedChannel(p)
	return nil
}

func (r *UserRecord) UnmarshalJSON(data []byte) error {
	type plain UserRecord
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	*r = UserRecord(p)
	r.Normalize()
	return nil
}

// DecodeRecord parses one user's record and normalizes legacy shapes.
func DecodeRecord(data []byte) (UserRecord, error) {
	if isNull(data) {
		return NewEmptyRecord(), nil
	}
	var rec UserRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return UserRecord{}, err
	}
	return rec, nil
}

// decodeOrderedObject returns the keys of a JSON object in document order
// together with their raw values. A repeated key keeps its first position
// and its last value.
func decodeOrderedObject(data []byte) ([]string, map[string]json.RawMessage, error) {
	keys, err := objectKeys(data)
	if err != nil {
		return nil, nil, err
	}
	values := make(map[string]json.RawMessage, len(keys))
	if err := json.Unmarshal(data, &values); err != nil {
		return nil, nil, err
	}
	return keys, values, nil
}

func objectKeys(data []byte) ([]string, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return nil, errNotObject
	}

	var keys []string
	seen := make(map[string]struct{})
	depth := 1
	expectKey := true
	for depth > 0 {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		if d, ok := tok.(json.Delim); ok {
			switch d {
			case '{', '[':
				depth++
			case '}', ']':
				depth--
				if depth == 1 {
					expectKey = true
				}
			}
			continue
		}
		if depth != 1 {
			continue
		}
		if !expectKey {
			expectKey = true
			continue
		}
		key, ok := tok.(string)
		if !ok {
			return nil, errNotObject
		}
		if _, dup := seen[key]; !dup {
			seen[key] = struct{}{}
			keys = append(keys, key)
		}
		expectKey = false
	}
	return keys, nil
}

func isNull(data []byte) bool {
	data = bytes.TrimSpace(data)
	return len(data) == 0 || bytes.Equal(data, []byte("null"))
}
