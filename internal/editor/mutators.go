package editor

import (
	"fmt"
	"strconv"
	"strings"

	"pingerconf/internal/models"
)

const (
	collGlobal    = "global_keywords"
	collChannel   = "channel_keywords"
	collNegative  = "negative_keywords"
	collBlacklist = "blacklisted_channels"
)

// Mutator transforms a record into a new one. Implementations must not
// write through any container reachable from their input.
type Mutator func(models.UserRecord) (models.UserRecord, error)

func notFound(collection string, key string) error {
	return &models.NotFoundError{Collection: collection, Key: key}
}

func indexKey(i int) string {
	return "index " + strconv.Itoa(i)
}

// UpsertGlobalKeyword sets the discount of key, appending it when new.
func UpsertGlobalKeyword(rec models.UserRecord, key string, discount models.Discount) (models.UserRecord, error) {
	if j := rec.GlobalKeywords.IndexFold(key); j >= 0 && rec.GlobalKeywords[j].Keyword != key {
		return rec, &models.DuplicateKeyError{Key: key, Existing: rec.GlobalKeywords[j].Keyword}
	}
	out := rec.GlobalKeywords.Clone()
	if i := out.Index(key); i >= 0 {
		out[i].Discount = discount
	} else {
		out = append(out, models.GlobalKeyword{Keyword: key, Discount: discount})
	}
	rec.GlobalKeywords = out
	return rec, nil
}

// RenameGlobalKeyword replaces oldKey by newKey in place.
func RenameGlobalKeyword(rec models.UserRecord, oldKey, newKey string, discount models.Discount) (models.UserRecord, error) {
	i := rec.GlobalKeywords.Index(oldKey)
	if i < 0 {
		return rec, notFound(collGlobal, oldKey)
	}
	for j, kw := range rec.GlobalKeywords {
		if j != i && strings.EqualFold(kw.Keyword, newKey) {
			return rec, &models.DuplicateKeyError{Key: newKey, Existing: kw.Keyword}
		}
	}
	out := rec.GlobalKeywords.Clone()
	out[i] = models.GlobalKeyword{Keyword: newKey, Discount: discount}
	rec.GlobalKeywords = out
	return rec, nil
}

func DeleteGlobalKeyword(rec models.UserRecord, key string) (models.UserRecord, error) {
	i := rec.GlobalKeywords.Index(key)
	if i < 0 {
		return rec, notFound(collGlobal, key)
	}
	out := make(models.GlobalKeywords, 0, len(rec.GlobalKeywords)-1)
	out = append(out, rec.GlobalKeywords[:i]...)
	out = append(out, rec.GlobalKeywords[i+1:]...)
	rec.GlobalKeywords = out
	return rec, nil
}

// UpsertChannelKeyword replaces the row at index, or appends it when index
// equals the current length. A missing channel is created at the end.
func UpsertChannelKeyword(rec models.UserRecord, channelID string, index int, keyword string, discount models.Discount) (models.UserRecord, error) {
	row := models.ChannelKeyword{Keyword: keyword, Discount: discount}
	out := rec.ChannelKeywords.Clone()
	ci := out.Index(channelID)
	if ci < 0 {
		if index != 0 {
			return rec, notFound(collChannel, channelID+" "+indexKey(index))
		}
		out = append(out, models.ChannelEntry{ChannelID: channelID, Keywords: []models.ChannelKeyword{row}})
		rec.ChannelKeywords = out
		return rec, nil
	}
	kws := out[ci].Keywords
	switch {
	case index >= 0 && index < len(kws):
		kws[index] = row
	case index == len(kws):
		kws = append(kws, row)
	default:
		return rec, notFound(collChannel, channelID+" "+indexKey(index))
	}
	out[ci].Keywords = kws
	rec.ChannelKeywords = out
	return rec, nil
}

// AddChannelKeyword appends an empty row to the channel.
func AddChannelKeyword(rec models.UserRecord, channelID string) (models.UserRecord, error) {
	kws, _ := rec.ChannelKeywords.Get(channelID)
	return UpsertChannelKeyword(rec, channelID, len(kws), "", 0)
}

// AddNewChannel appends a channel under the first free "channel-N"
// placeholder id, seeded with one empty row.
func AddNewChannel(rec models.UserRecord) (models.UserRecord, string, error) {
	id := ""
	for n := 1; ; n++ {
		id = fmt.Sprintf("channel-%d", n)
		if rec.ChannelKeywords.Index(id) < 0 {
			break
		}
	}
	rec, err := UpsertChannelKeyword(rec, id, 0, "", 0)
	return rec, id, err
}

// DeleteChannelKeyword removes the row at index and drops the channel once
// it has no rows left.
func DeleteChannelKeyword(rec models.UserRecord, channelID string, index int) (models.UserRecord, error) {
	ci := rec.ChannelKeywords.Index(channelID)
	if ci < 0 {
		return rec, notFound(collChannel, channelID)
	}
	kws := rec.ChannelKeywords[ci].Keywords
	if index < 0 || index >= len(kws) {
		return rec, notFound(collChannel, channelID+" "+indexKey(index))
	}
	out := rec.ChannelKeywords.Clone()
	if len(kws) == 1 {
		out = append(out[:ci], out[ci+1:]...)
	} else {
		out[ci].Keywords = append(out[ci].Keywords[:index], out[ci].Keywords[index+1:]...)
	}
	rec.ChannelKeywords = out
	return rec, nil
}

// RenameChannelID rekeys a channel without moving it among its siblings.
func RenameChannelID(rec models.UserRecord, oldID, newID string) (models.UserRecord, error) {
	ci := rec.ChannelKeywords.Index(oldID)
	if ci < 0 {
		return rec, notFound(collChannel, oldID)
	}
	if oldID == newID {
		return rec, nil
	}
	if rec.ChannelKeywords.Index(newID) >= 0 {
		return rec, &models.DuplicateKeyError{Key: newID, Existing: newID}
	}
	out := rec.ChannelKeywords.Clone()
	out[ci].ChannelID = newID
	rec.ChannelKeywords = out
	return rec, nil
}

func InsertNegativeKeyword(rec models.UserRecord, index int, value string) (models.UserRecord, error) {
	if index < 0 || index > len(rec.NegativeKeywords) {
		return rec, notFound(collNegative, indexKey(index))
	}
	out := make([]string, 0, len(rec.NegativeKeywords)+1)
	out = append(out, rec.NegativeKeywords[:index]...)
	out = append(out, value)
	out = append(out, rec.NegativeKeywords[index:]...)
	rec.NegativeKeywords = out
	return rec, nil
}

func AddNegativeKeyword(rec models.UserRecord) (models.UserRecord, error) {
	return InsertNegativeKeyword(rec, len(rec.NegativeKeywords), "")
}

func UpdateNegativeKeyword(rec models.UserRecord, index int, value string) (models.UserRecord, error) {
	if index < 0 || index >= len(rec.NegativeKeywords) {
		return rec, notFound(collNegative, indexKey(index))
	}
	out := append([]string(nil), rec.NegativeKeywords...)
	out[index] = value
	rec.NegativeKeywords = out
	return rec, nil
}

// DeleteNegativeKeyword removes by position; duplicates are allowed so a
// value does not identify an entry.
func DeleteNegativeKeyword(rec models.UserRecord, index int) (models.UserRecord, error) {
	if index < 0 || index >= len(rec.NegativeKeywords) {
		return rec, notFound(collNegative, indexKey(index))
	}
	out := make([]string, 0, len(rec.NegativeKeywords)-1)
	out = append(out, rec.NegativeKeywords[:index]...)
	out = append(out, rec.NegativeKeywords[index+1:]...)
	rec.NegativeKeywords = out
	return rec, nil
}

// InsertBlacklistedChannel expects channelID to be sanitized already.
func InsertBlacklistedChannel(rec models.UserRecord, index int, channelID, nickname string) (models.UserRecord, error) {
	if index < 0 || index > len(rec.BlacklistedChannels) {
		return rec, notFound(collBlacklist, indexKey(index))
	}
	entry := models.BlacklistedChannel{ChannelID: channelID, Nickname: nickname}
	out := make([]models.BlacklistedChannel, 0, len(rec.BlacklistedChannels)+1)
	out = append(out, rec.BlacklistedChannels[:index]...)
	out = append(out, entry)
	out = append(out, rec.BlacklistedChannels[index:]...)
	rec.BlacklistedChannels = out
	return rec, nil
}

func AddBlacklistedChannel(rec models.UserRecord) (models.UserRecord, error) {
	return InsertBlacklistedChannel(rec, len(rec.BlacklistedChannels), "", "")
}

func UpdateBlacklistedChannel(rec models.UserRecord, index int, channelID, nickname string) (models.UserRecord, error) {
	if index < 0 || index >= len(rec.BlacklistedChannels) {
		return rec, notFound(collBlacklist, indexKey(index))
	}
	out := append([]models.BlacklistedChannel(nil), rec.BlacklistedChannels...)
	out[index] = models.BlacklistedChannel{ChannelID: channelID, Nickname: nickname}
	rec.BlacklistedChannels = out
	return rec, nil
}

func DeleteBlacklistedChannel(rec models.UserRecord, index int) (models.UserRecord, error) {
	if index < 0 || index >= len(rec.BlacklistedChannels) {
		return rec, notFound(collBlacklist, indexKey(index))
	}
	out := make([]models.BlacklistedChannel, 0, len(rec.BlacklistedChannels)-1)
	out = append(out, rec.BlacklistedChannels[:index]...)
	out = append(out, rec.BlacklistedChannels[index+1:]...)
	rec.BlacklistedChannels = out
	return rec, nil
}
