package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umputun/sitefeed/pkg/domain"
)

func TestSessionRepository(t *testing.T) {
	repos := setupTestDB(t)
	ctx := context.Background()

	_, err := repos.Session.Session(ctx, "https://example.com")
	assert.True(t, errors.Is(err, domain.ErrNotFound))

	s := domain.SessionCookieSet{Origin: "https://example.com", Name: "member", LoggedIn: true,
		Cookies: map[string]string{"sid": "abc", "pref": "dark"}, Headers: map[string]string{"X-Token": "t1"}}
	require.NoError(t, repos.Session.SaveSession(ctx, s))

	got, err := repos.Session.Session(ctx, "https://example.com")
	require.NoError(t, err)
	assert.Equal(t, "member", got.Name)
	assert.True(t, got.LoggedIn)
	assert.Equal(t, s.Cookies, got.Cookies)
	assert.Equal(t, s.Headers, got.Headers)

	s.Cookies = map[string]string{"sid": "def"}
	s.Headers = nil
	require.NoError(t, repos.Session.SaveSession(ctx, s))
	got, err = repos.Session.Session(ctx, "https://example.com")
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"sid": "def"}, got.Cookies)
	assert.Empty(t, got.Headers)

	require.NoError(t, repos.Session.MarkLoggedOut(ctx, "https://example.com"))
	got, err = repos.Session.Session(ctx, "https://example.com")
	require.NoError(t, err)
	assert.False(t, got.LoggedIn)
	assert.NotNil(t, got.LastValidated)

	require.NoError(t, repos.Session.SaveSession(ctx, domain.SessionCookieSet{Origin: "https://a.example.com", Name: "a"}))
	all, err := repos.Session.Sessions(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "https://a.example.com", all[0].Origin)
	assert.Empty(t, all[0].Cookies)
	assert.Equal(t, "https://example.com", all[1].Origin)

	require.NoError(t, repos.Session.DeleteSession(ctx, "https://example.com"))
	_, err = repos.Session.Session(ctx, "https://example.com")
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}
