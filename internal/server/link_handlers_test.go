package server

import (
	"net/http"
	"testing"

	"cloudzz/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLinkCRUDFlow(t *testing.T) {
	s := setupHandlerTest(t)
	user := createHandlerTestUser(t, s, "alice")

	app := newAuthedApp(user.ID)
	app.Get("/links", s.GetLinks)
	app.Post("/links", s.CreateLink)
	app.Patch("/links/reorder", s.ReorderLinks)
	app.Patch("/links/:id", s.UpdateLink)
	app.Delete("/links/:id", s.DeleteLink)

	// Create three links; positions come back 0, 1, 2.
	for i, title := range []string{"first", "second", "third"} {
		resp, err := app.Test(jsonRequest(t, http.MethodPost, "/links", map[string]string{
			"title": title,
			"url":   "https://example.com/" + title,
		}))
		require.NoError(t, err)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var link models.Link
		decodeBody(t, resp, &link)
		assert.Equal(t, i, link.Position)
	}

	// List is sorted by position.
	resp, err := app.Test(jsonRequest(t, http.MethodGet, "/links", nil))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var links []models.Link
	decodeBody(t, resp, &links)
	require.Len(t, links, 3)
	assert.Equal(t, "first", links[0].Title)

	// Patch the first link's title only.
	resp, err = app.Test(jsonRequest(t, http.MethodPatch, "/links/1", map[string]string{
		"title": "renamed",
	}))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var updated models.Link
	decodeBody(t, resp, &updated)
	assert.Equal(t, "renamed", updated.Title)
	assert.Equal(t, "https://example.com/first", updated.URL)

	// Reorder takes a bare array and reverses the page.
	resp, err = app.Test(jsonRequest(t, http.MethodPatch, "/links/reorder", []map[string]any{
		{"id": 1, "order": 2},
		{"id": 2, "order": 1},
		{"id": 3, "order": 0},
	}))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, err = app.Test(jsonRequest(t, http.MethodGet, "/links", nil))
	require.NoError(t, err)
	decodeBody(t, resp, &links)
	assert.Equal(t, "third", links[0].Title)

	// Delete answers 204 and a repeat answers 404.
	resp, err = app.Test(jsonRequest(t, http.MethodDelete, "/links/1", nil))
	require.NoError(t, err)
	require.Equal(t, http.StatusNoContent, resp.StatusCode)
	_ = resp.Body.Close()

	resp, err = app.Test(jsonRequest(t, http.MethodDelete, "/links/1", nil))
	require.NoError(t, err)
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
	_ = resp.Body.Close()
}

func TestLinkHandlers_ForeignLinkIsNotFound(t *testing.T) {
	s := setupHandlerTest(t)
	alice := createHandlerTestUser(t, s, "alice")
	bob := createHandlerTestUser(t, s, "bob")

	link := &models.Link{UserID: alice.ID, Title: "a", URL: "https://a.example"}
	require.NoError(t, s.db.Create(link).Error)

	app := newAuthedApp(bob.ID)
	app.Patch("/links/:id", s.UpdateLink)
	app.Delete("/links/:id", s.DeleteLink)

	// Never 403: the response must not confirm the link exists.
	resp, err := app.Test(jsonRequest(t, http.MethodPatch, "/links/1", map[string]string{"title": "x"}))
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	_ = resp.Body.Close()

	resp, err = app.Test(jsonRequest(t, http.MethodDelete, "/links/1", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	_ = resp.Body.Close()
}

func TestReorderLinks_ForeignLinkForbidden(t *testing.T) {
	s := setupHandlerTest(t)
	alice := createHandlerTestUser(t, s, "alice")
	bob := createHandlerTestUser(t, s, "bob")

	aliceLink := &models.Link{UserID: alice.ID, Title: "a", URL: "https://a.example", Position: 0}
	bobLink := &models.Link{UserID: bob.ID, Title: "b", URL: "https://b.example", Position: 0}
	require.NoError(t, s.db.Create(aliceLink).Error)
	require.NoError(t, s.db.Create(bobLink).Error)

	app := newAuthedApp(alice.ID)
	app.Patch("/links/reorder", s.ReorderLinks)

	resp, err := app.Test(jsonRequest(t, http.MethodPatch, "/links/reorder", []map[string]any{
		{"id": aliceLink.ID, "order": 1},
		{"id": bobLink.ID, "order": 0},
	}))
	require.NoError(t, err)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	_ = resp.Body.Close()

	// Alice's own link kept its position; the batch was all-or-nothing.
	var reloaded models.Link
	require.NoError(t, s.db.First(&reloaded, aliceLink.ID).Error)
	assert.Equal(t, 0, reloaded.Position)
}

func TestReorderLinks_MalformedBatch(t *testing.T) {
	s := setupHandlerTest(t)
	user := createHandlerTestUser(t, s, "alice")

	app := newAuthedApp(user.ID)
	app.Patch("/links/reorder", s.ReorderLinks)

	// Not an array.
	resp, err := app.Test(jsonRequest(t, http.MethodPatch, "/links/reorder", map[string]any{
		"links": []map[string]any{{"id": 1, "order": 0}},
	}))
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	_ = resp.Body.Close()

	// Entry without an id.
	resp, err = app.Test(jsonRequest(t, http.MethodPatch, "/links/reorder", []map[string]any{
		{"order": 0},
	}))
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	_ = resp.Body.Close()

	// Negative order.
	resp, err = app.Test(jsonRequest(t, http.MethodPatch, "/links/reorder", []map[string]any{
		{"id": 1, "order": -1},
	}))
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	_ = resp.Body.Close()
}

func TestLinkWireFieldIsOrder(t *testing.T) {
	s := setupHandlerTest(t)
	user := createHandlerTestUser(t, s, "alice")

	app := newAuthedApp(user.ID)
	app.Post("/links", s.CreateLink)
	app.Patch("/links/:id", s.UpdateLink)

	resp, err := app.Test(jsonRequest(t, http.MethodPost, "/links", map[string]string{
		"title": "a", "url": "https://a.example",
	}))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]any
	decodeBody(t, resp, &body)
	assert.Contains(t, body, "order")
	assert.NotContains(t, body, "position")

	// The patch body uses the same field name.
	resp, err = app.Test(jsonRequest(t, http.MethodPatch, "/links/1", map[string]any{"order": 5}))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var updated models.Link
	decodeBody(t, resp, &updated)
	assert.Equal(t, 5, updated.Position)
}

func TestCreateLink_Validation(t *testing.T) {
	s := setupHandlerTest(t)
	user := createHandlerTestUser(t, s, "alice")

	app := newAuthedApp(user.ID)
	app.Post("/links", s.CreateLink)

	tests := []struct {
		name string
		body map[string]string
	}{
		{"missing title", map[string]string{"url": "https://example.com"}},
		{"missing url", map[string]string{"title": "x"}},
		{"bad scheme", map[string]string{"title": "x", "url": "javascript:alert(1)"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := app.Test(jsonRequest(t, http.MethodPost, "/links", tt.body))
			require.NoError(t, err)
			assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
			_ = resp.Body.Close()
		})
	}
}
