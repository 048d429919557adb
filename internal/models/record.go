package models

import (
	"strings"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

type GlobalKeyword struct {
	Keyword  string
	Discount Discount
}

// GlobalKeywords keeps keyword rules in insertion order. Keys are unique
// under case-insensitive comparison.
type GlobalKeywords []GlobalKeyword

type ChannelKeyword struct {
	Keyword  string   `json:"keyword"`
	Discount Discount `json:"discount"`
}

type ChannelEntry struct {
	ChannelID string
	Keywords  []ChannelKeyword
}

// ChannelKeywords keeps per-channel overrides in insertion order so a
// channel id can be renamed without losing its position.
type ChannelKeywords []ChannelEntry

type BlacklistedChannel struct {
	ChannelID string `json:"channel_id"`
	Nickname  string `json:"nickname"`
}

type UserRecord struct {
	GlobalKeywords      GlobalKeywords       `json:"global_keywords"`
	ChannelKeywords     ChannelKeywords      `json:"channel_keywords"`
	NegativeKeywords    []string             `json:"negative_keywords"`
	BlacklistedChannels []BlacklistedChannel `json:"blacklisted_channels"`
}

func NewEmptyRecord() UserRecord {
	return UserRecord{
		GlobalKeywords:      GlobalKeywords{},
		ChannelKeywords:     ChannelKeywords{},
		NegativeKeywords:    []string{},
		BlacklistedChannels: []BlacklistedChannel{},
	}
}

// Normalize replaces nil sub-collections with empty ones.
func (r *UserRecord) Normalize() {
	if r.GlobalKeywords == nil {
		r.GlobalKeywords = GlobalKeywords{}
	}
	if r.ChannelKeywords == nil {
		r.ChannelKeywords = ChannelKeywords{}
	}
	for i := range r.ChannelKeywords {
		if r.ChannelKeywords[i].Keywords == nil {
			r.ChannelKeywords[i].Keywords = []ChannelKeyword{}
		}
	}
	if r.NegativeKeywords == nil {
		r.NegativeKeywords = []string{}
	}
	if r.BlacklistedChannels == nil {
		r.BlacklistedChannels = []BlacklistedChannel{}
	}
}

// Clone returns a deep copy; no container of the result aliases r.
func (r UserRecord) Clone() UserRecord {
	out := UserRecord{
		GlobalKeywords:      r.GlobalKeywords.Clone(),
		ChannelKeywords:     r.ChannelKeywords.Clone(),
		NegativeKeywords:    append(make([]string, 0, len(r.NegativeKeywords)), r.NegativeKeywords...),
		BlacklistedChannels: append(make([]BlacklistedChannel, 0, len(r.BlacklistedChannels)), r.BlacklistedChannels...),
	}
	return out
}

// recordFields has no methods, so cmp walks the fields instead of calling
// UserRecord.Equal again.
type recordFields UserRecord

// Equal reports structural equality. Nil and empty collections compare equal.
func (r UserRecord) Equal(other UserRecord) bool {
	return cmp.Equal(recordFields(r), recordFields(other), cmpopts.EquateEmpty())
}

// Diff renders a human readable structural difference, empty when equal.
func (r UserRecord) Diff(other UserRecord) string {
	return cmp.Diff(recordFields(r), recordFields(other), cmpopts.EquateEmpty())
}

func (g GlobalKeywords) Clone() GlobalKeywords {
	return append(make(GlobalKeywords, 0, len(g)), g...)
}

// Index returns the position of key compared exactly, or -1.
func (g GlobalKeywords) Index(key string) int {
	for i, kw := range g {
		if kw.Keyword == key {
			return i
		}
	}
	return -1
}

// IndexFold returns the position of the first key equal to key under
// case-insensitive comparison, or -1.
func (g GlobalKeywords) IndexFold(key string) int {
	for i, kw := range g {
		if strings.EqualFold(kw.Keyword, key) {
			return i
		}
	}
	return -1
}

func (g GlobalKeywords) Get(key string) (GlobalKeyword, bool) {
	if i := g.Index(key); i >= 0 {
		return g[i], true
	}
	return GlobalKeyword{}, false
}

func (c ChannelKeywords) Clone() ChannelKeywords {
	out := make(ChannelKeywords, len(c))
	for i, e := range c {
		out[i] = ChannelEntry{
			ChannelID: e.ChannelID,
			Keywords:  append(make([]ChannelKeyword, 0, len(e.Keywords)), e.Keywords...),
		}
	}
	return out
}

func (c ChannelKeywords) Index(channelID string) int {
	for i, e := range c {
		if e.ChannelID == channelID {
			return i
		}
	}
	return -1
}

func (c ChannelKeywords) Get(channelID string) ([]ChannelKeyword, bool) {
	if i := c.Index(channelID); i >= 0 {
		return c[i].Keywords, true
	}
	return nil, false
}

func (c ChannelKeywords) IDs() []string {
	ids := make([]string, len(c))
	for i, e := range c {
		ids[i] = e.ChannelID
	}
	return ids
}
