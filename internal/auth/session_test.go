package auth_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"secretgate/internal/auth"
	"secretgate/internal/logging"
	"secretgate/internal/user"
)

func newTestSessions(t *testing.T) (*auth.Sessions, *memUserStore) {
	t.Helper()

	tokens, err := auth.NewPasetoService(newTestKey(t))
	require.NoError(t, err)

	users := newMemUserStore()
	sessions := auth.NewSessions(tokens, newMemSessionStore(), users, logging.NewLogger(true), "session", time.Hour, false)
	return sessions, users
}

func issueFor(t *testing.T, sessions *auth.Sessions, u *user.User) *http.Cookie {
	t.Helper()
	rec := httptest.NewRecorder()
	require.NoError(t, sessions.Issue(rec, u))

	resp := http.Response{Header: rec.Header()}
	for _, c := range resp.Cookies() {
		if c.Name == "session" {
			return c
		}
	}
	t.Fatal("no session cookie issued")
	return nil
}

func TestSessions_IssueAndResolve(t *testing.T) {
	sessions, users := newTestSessions(t)
	u, err := users.Create(context.Background(), "ada@example.com", "hash", "Ada Lovelace")
	require.NoError(t, err)

	cookie := issueFor(t, sessions, u)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(cookie)

	resolved, err := sessions.Resolve(req)
	require.NoError(t, err)
	require.NotNil(t, resolved)
	assert.Equal(t, u.ID, resolved.ID)
	assert.Equal(t, "Ada Lovelace", resolved.Name)
}

func TestSessions_ResolveAnonymous(t *testing.T) {
	sessions, _ := newTestSessions(t)

	// No cookie at all
	resolved, err := sessions.Resolve(httptest.NewRequest(http.MethodGet, "/", nil))
	require.NoError(t, err)
	assert.Nil(t, resolved)

	// Garbage cookie value
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: "session", Value: "garbage"})
	resolved, err = sessions.Resolve(req)
	require.NoError(t, err)
	assert.Nil(t, resolved)
}

func TestSessions_ResolveDeletedUser(t *testing.T) {
	sessions, users := newTestSessions(t)
	u, err := users.Create(context.Background(), "ada@example.com", "hash", "Ada Lovelace")
	require.NoError(t, err)

	cookie := issueFor(t, sessions, u)

	// A token for an id the store does not know resolves to anonymous
	users.mu.Lock()
	delete(users.byID, u.ID)
	users.mu.Unlock()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(cookie)
	resolved, err := sessions.Resolve(req)
	require.NoError(t, err)
	assert.Nil(t, resolved)
}

func TestSessions_ClearRevokesToken(t *testing.T) {
	sessions, users := newTestSessions(t)
	u, err := users.Create(context.Background(), "ada@example.com", "hash", "Ada Lovelace")
	require.NoError(t, err)

	cookie := issueFor(t, sessions, u)

	logoutReq := httptest.NewRequest(http.MethodGet, "/logout", nil)
	logoutReq.AddCookie(cookie)
	sessions.Clear(httptest.NewRecorder(), logoutReq)

	// The old token value no longer resolves even though it has not expired
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(cookie)
	resolved, err := sessions.Resolve(req)
	require.NoError(t, err)
	assert.Nil(t, resolved)
}
