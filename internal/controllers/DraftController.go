package controllers

import (
	"errors"
	"net/http"

	json "github.com/goccy/go-json"

	"pingerconf/internal/editor"
	"pingerconf/internal/models"
	"pingerconf/internal/providers"
)

type sortedView struct {
	GlobalKeywords  models.GlobalKeywords  `json:"global_keywords"`
	ChannelKeywords models.ChannelKeywords `json:"channel_keywords"`
}

type draftResponse struct {
	UserID string            `json:"userId"`
	Record models.UserRecord `json:"record"`
	Dirty  bool              `json:"dirty"`
	Saving bool              `json:"saving"`
	Sorted *sortedView       `json:"sorted,omitempty"`
}

// DraftController exposes the edit session of the authenticated user.
type DraftController struct {
	logger   providers.Logger
	registry *editor.Registry
}

func NewDraftController(logger providers.Logger, registry *editor.Registry) *DraftController {
	return &DraftController{
		logger:   logger,
		registry: registry,
	}
}

func (dc *DraftController) draft(w http.ResponseWriter, r *http.Request) (*editor.DraftStore, bool) {
	userID, ok := providers.UserIDFromContext(r.Context())
	if !ok {
		providers.WriteError(w, http.StatusUnauthorized, "unauthorized", "invalid or missing session")
		return nil, false
	}
	d, err := dc.registry.Get(r.Context(), userID)
	if err != nil {
		dc.logger.Errorf(providers.GetLogTypeByRequestType(r.Method), "Error loading draft of user %s: %s", userID, err)
		writeDomainError(w, err)
		return nil, false
	}
	return d, true
}

func (dc *DraftController) respond(w http.ResponseWriter, r *http.Request, d *editor.DraftStore) {
	resp := draftResponse{
		UserID: d.UserID(),
		Record: d.Current(),
		Dirty:  d.IsDirty(),
		Saving: d.IsSaving(),
	}
	q := r.URL.Query()
	globalSort := models.ParseSortOrder(q.Get("globalSort"))
	channelSort := models.ParseSortOrder(q.Get("channelSort"))
	if globalSort != models.SortNone || channelSort != models.SortNone {
		resp.Sorted = &sortedView{
			GlobalKeywords:  models.SortedGlobalKeywords(resp.Record.GlobalKeywords, globalSort, q.Get("editing")),
			ChannelKeywords: models.SortedChannelKeywords(resp.Record.ChannelKeywords, channelSort),
		}
	}
	providers.WriteJSON(w, http.StatusOK, resp)
}

func (dc *DraftController) GetDraft(w http.ResponseWriter, r *http.Request) {
	d, ok := dc.draft(w, r)
	if !ok {
		return
	}
	dc.respond(w, r, d)
}

// ApplyOperation applies one edit to the draft.
func (dc *DraftController) ApplyOperation(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodySize)
	var op editor.Operation
	if err := json.NewDecoder(r.Body).Decode(&op); err != nil {
		providers.WriteError(w, http.StatusBadRequest, "bad_request", "invalid operation payload")
		return
	}
	mutator, err := op.Mutator()
	if err != nil {
		providers.WriteError(w, http.StatusBadRequest, "bad_request", err.Error())
		return
	}

	d, ok := dc.draft(w, r)
	if !ok {
		return
	}
	if err := d.Apply(mutator); err != nil {
		dc.logger.Debugf(providers.TypePost, "Operation %s rejected for user %s: %s", op.Op, d.UserID(), err)
		writeDomainError(w, err)
		return
	}
	dc.respond(w, r, d)
}

// SaveDraft persists the draft and makes it the new baseline.
func (dc *DraftController) SaveDraft(w http.ResponseWriter, r *http.Request) {
	d, ok := dc.draft(w, r)
	if !ok {
		return
	}
	if err := d.Save(r.Context()); err != nil {
		if !errors.Is(err, models.ErrValidation) && !errors.Is(err, editor.ErrSaveInFlight) {
			dc.logger.Errorf(providers.TypePost, "Error saving draft of user %s: %s", d.UserID(), err)
		}
		writeDomainError(w, err)
		return
	}
	dc.respond(w, r, d)
}

// DiscardDraft drops unsaved edits and reloads the stored record.
func (dc *DraftController) DiscardDraft(w http.ResponseWriter, r *http.Request) {
	userID, ok := providers.UserIDFromContext(r.Context())
	if !ok {
		providers.WriteError(w, http.StatusUnauthorized, "unauthorized", "invalid or missing session")
		return
	}
	d, err := dc.registry.Reload(r.Context(), userID)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	dc.respond(w, r, d)
}
