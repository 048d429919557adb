package editor

import (
	"fmt"

	"github.com/gookit/validate"

	"pingerconf/internal/models"
)

const (
	OpUpsertGlobalKeyword      = "upsertGlobalKeyword"
	OpRenameGlobalKeyword      = "renameGlobalKeyword"
	OpDeleteGlobalKeyword      = "deleteGlobalKeyword"
	OpUpsertChannelKeyword     = "upsertChannelKeyword"
	OpAddChannelKeyword        = "addChannelKeyword"
	OpAddNewChannel            = "addNewChannel"
	OpDeleteChannelKeyword     = "deleteChannelKeyword"
	OpRenameChannelID          = "renameChannelId"
	OpInsertNegativeKeyword    = "insertNegativeKeyword"
	OpAddNegativeKeyword       = "addNegativeKeyword"
	OpUpdateNegativeKeyword    = "updateNegativeKeyword"
	OpDeleteNegativeKeyword    = "deleteNegativeKeyword"
	OpInsertBlacklistedChannel = "insertBlacklistedChannel"
	OpAddBlacklistedChannel    = "addBlacklistedChannel"
	OpUpdateBlacklistedChannel = "updateBlacklistedChannel"
	OpDeleteBlacklistedChannel = "deleteBlacklistedChannel"
)

// Operation is the wire form of a single draft edit.
type Operation struct {
	Op           string          `json:"op" validate:"required|in:upsertGlobalKeyword,renameGlobalKeyword,deleteGlobalKeyword,upsertChannelKeyword,addChannelKeyword,addNewChannel,deleteChannelKeyword,renameChannelId,insertNegativeKeyword,addNegativeKeyword,updateNegativeKeyword,deleteNegativeKeyword,insertBlacklistedChannel,addBlacklistedChannel,updateBlacklistedChannel,deleteBlacklistedChannel"`
	Key          string          `json:"key"`
	NewKey       string          `json:"newKey"`
	ChannelID    string          `json:"channelId"`
	NewChannelID string          `json:"newChannelId"`
	Index        *int            `json:"index"`
	Keyword      string          `json:"keyword"`
	Value        string          `json:"value"`
	Nickname     string          `json:"nickname"`
	Discount     models.Discount `json:"discount"`
}

func invalidOperation(field, value, reason string) error {
	return &models.ValidationError{Field: field, Value: value, Reason: reason}
}

func (o *Operation) index() (int, error) {
	if o.Index == nil {
		return 0, invalidOperation("index", "", "required for "+o.Op)
	}
	return *o.Index, nil
}

func (o *Operation) blacklistID() (string, error) {
	id, ok := models.SanitizeChannelID(o.ChannelID)
	if !ok {
		return "", invalidOperation("channelId", o.ChannelID, fmt.Sprintf("at most %d digits", models.ChannelIDLength))
	}
	return id, nil
}

// Mutator validates the operation and binds its arguments. Blacklist
// channel ids are reduced to digits here, before reaching the mutator.
func (o *Operation) Mutator() (Mutator, error) {
	v := validate.Struct(o)
	if !v.Validate() {
		return nil, invalidOperation("op", o.Op, v.Errors.One())
	}
	discount := o.Discount

	switch o.Op {
	case OpUpsertGlobalKeyword:
		if o.Key == "" {
			return nil, invalidOperation("key", o.Key, "must not be empty")
		}
		return func(r models.UserRecord) (models.UserRecord, error) {
			return UpsertGlobalKeyword(r, o.Key, discount)
		}, nil
	case OpRenameGlobalKeyword:
		if o.NewKey == "" {
			return nil, invalidOperation("newKey", o.NewKey, "must not be empty")
		}
		return func(r models.UserRecord) (models.UserRecord, error) {
			return RenameGlobalKeyword(r, o.Key, o.NewKey, discount)
		}, nil
	case OpDeleteGlobalKeyword:
		return func(r models.UserRecord) (models.UserRecord, error) {
			return DeleteGlobalKeyword(r, o.Key)
		}, nil
	case OpUpsertChannelKeyword:
		idx, err := o.index()
		if err != nil {
			return nil, err
		}
		return func(r models.UserRecord) (models.UserRecord, error) {
			return UpsertChannelKeyword(r, o.ChannelID, idx, o.Keyword, discount)
		}, nil
	case OpAddChannelKeyword:
		return func(r models.UserRecord) (models.UserRecord, error) {
			return AddChannelKeyword(r, o.ChannelID)
		}, nil
	case OpAddNewChannel:
		return func(r models.UserRecord) (models.UserRecord, error) {
			r, _, err := AddNewChannel(r)
			return r, err
		}, nil
	case OpDeleteChannelKeyword:
		idx, err := o.index()
		if err != nil {
			return nil, err
		}
		return func(r models.UserRecord) (models.UserRecord, error) {
			return DeleteChannelKeyword(r, o.ChannelID, idx)
		}, nil
	case OpRenameChannelID:
		return func(r models.UserRecord) (models.UserRecord, error) {
			return RenameChannelID(r, o.ChannelID, o.NewChannelID)
		}, nil
	case OpInsertNegativeKeyword:
		idx, err := o.index()
		if err != nil {
			return nil, err
		}
		return func(r models.UserRecord) (models.UserRecord, error) {
			return InsertNegativeKeyword(r, idx, o.Value)
		}, nil
	case OpAddNegativeKeyword:
		return AddNegativeKeyword, nil
	case OpUpdateNegativeKeyword:
		idx, err := o.index()
		if err != nil {
			return nil, err
		}
		return func(r models.UserRecord) (models.UserRecord, error) {
			return UpdateNegativeKeyword(r, idx, o.Value)
		}, nil
	case OpDeleteNegativeKeyword:
		idx, err := o.index()
		if err != nil {
			return nil, err
		}
		return func(r models.UserRecord) (models.UserRecord, error) {
			return DeleteNegativeKeyword(r, idx)
		}, nil
	case OpInsertBlacklistedChannel, OpUpdateBlacklistedChannel:
		idx, err := o.index()
		if err != nil {
			return nil, err
		}
		id, err := o.blacklistID()
		if err != nil {
			return nil, err
		}
		if o.Op == OpInsertBlacklistedChannel {
			return func(r models.UserRecord) (models.UserRecord, error) {
				return InsertBlacklistedChannel(r, idx, id, o.Nickname)
			}, nil
		}
		return func(r models.UserRecord) (models.UserRecord, error) {
			return UpdateBlacklistedChannel(r, idx, id, o.Nickname)
		}, nil
	case OpAddBlacklistedChannel:
		return AddBlacklistedChannel, nil
	case OpDeleteBlacklistedChannel:
		idx, err := o.index()
		if err != nil {
			return nil, err
		}
		return func(r models.UserRecord) (models.UserRecord, error) {
			return DeleteBlacklistedChannel(r, idx)
		}, nil
	}
	return nil, invalidOperation("op", o.Op, "unknown operation")
}
