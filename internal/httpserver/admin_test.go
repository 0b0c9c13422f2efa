package httpserver_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/vine-riddle/internal/httpserver"
	"github.com/robalobadob/vine-riddle/internal/puzzle"
	"github.com/robalobadob/vine-riddle/internal/store"
)

func login(t *testing.T, h http.Handler, password string) *httptest.ResponseRecorder {
	t.Helper()
	body, err := json.Marshal(map[string]string{"password": password})
	require.NoError(t, err)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/admin/login", bytes.NewReader(body)))
	return rec
}

func TestAdminLogin(t *testing.T) {
	p, err := puzzle.Default()
	require.NoError(t, err)
	hash, err := httpserver.HashPassword("correct horse")
	require.NoError(t, err)

	h := httpserver.New(httpserver.Options{
		Puzzle:        p,
		Store:         store.NewMemoryStore(),
		VisitorSecret: testSecret,
		AdminHash:     hash,
	}).Router()

	assert.Equal(t, http.StatusUnauthorized, login(t, h, "wrong horse").Code)
	assert.Equal(t, http.StatusUnauthorized, login(t, h, "short").Code)

	rec := login(t, h, "correct horse")
	require.Equal(t, http.StatusOK, rec.Code)
	var res struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&res))
	require.NotEmpty(t, res.Token)

	req := httptest.NewRequest(http.MethodGet, "/stats/export.xlsx", nil)
	req.Header.Set("Authorization", "Bearer "+res.Token)
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestAdminLoginDisabled(t *testing.T) {
	p, err := puzzle.Default()
	require.NoError(t, err)
	h := httpserver.New(httpserver.Options{Puzzle: p, Store: store.NewMemoryStore()}).Router()
	assert.Equal(t, http.StatusNotFound, login(t, h, "whatever1").Code)
}
