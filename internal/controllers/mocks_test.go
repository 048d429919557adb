package controllers

import (
	"context"
	"net/http"

	"pingerconf/internal/models"
	"pingerconf/internal/providers"
)

type mockService struct {
	doc        models.Document
	bytes      []byte
	err        error
	replaceErr error
	replaced   models.Document
}

func (m *mockService) FetchDocument(_ context.Context) (models.Document, error) {
	return m.doc, m.err
}

func (m *mockService) DocumentBytes(_ context.Context) ([]byte, error) {
	return m.bytes, m.err
}

func (m *mockService) ReplaceDocument(_ context.Context, doc models.Document) error {
	if m.replaceErr != nil {
		return m.replaceErr
	}
	m.replaced = doc
	return nil
}

func (m *mockService) FetchRecord(_ context.Context, userID string) (models.UserRecord, error) {
	if m.err != nil {
		return models.UserRecord{}, m.err
	}
	return m.doc.RecordOrEmpty(userID)
}

func (m *mockService) SaveRecord(_ context.Context, userID string, rec models.UserRecord) error {
	if m.err != nil {
		return m.err
	}
	return m.doc.SetRecord(userID, rec)
}

func (m *mockService) CountUsers(_ context.Context) (int, error) {
	return len(m.doc), m.err
}

type mockGate struct {
	password string
}

func (g *mockGate) Verify(password string) bool {
	return g.password != "" && password == g.password
}

type fixedCounter int

func (c fixedCounter) Len() int { return int(c) }

func withUser(r *http.Request, userID string) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), providers.ContextUserID, userID))
}
